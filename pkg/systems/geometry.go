package systems

import (
	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
)

// boxRect 返回方块当前显示位置的左上角（包含拖拽/弹回偏移）
func boxRect(em *ecs.EntityManager, id ecs.EntityID) (x, y float64, box *components.BoxComponent, ok bool) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, id)
	box, ok2 := ecs.GetComponent[*components.BoxComponent](em, id)
	if !ok1 || !ok2 {
		return 0, 0, nil, false
	}
	ox, oy := box.Origin()
	x, y = pos.X+ox, pos.Y+oy
	if d, ok := ecs.GetComponent[*components.DraggableComponent](em, id); ok && d.Controller != nil {
		p := d.Controller.Position()
		x += p.X
		y += p.Y
	}
	return x, y, box, true
}

// controllerOf 返回实体的拖拽控制器
func controllerOf(em *ecs.EntityManager, id ecs.EntityID) *drag.Controller {
	d, ok := ecs.GetComponent[*components.DraggableComponent](em, id)
	if !ok {
		return nil
	}
	return d.Controller
}

// drawOrder 返回方块实体的绘制顺序：按 ID 升序，正在拖拽或弹回的元素最后绘制
func drawOrder(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.BoxComponent, *components.PositionComponent](em)
	order := make([]ecs.EntityID, 0, len(ids))
	var moving []ecs.EntityID
	for _, id := range ids {
		if c := controllerOf(em, id); c != nil && c.State() != drag.StateIdle {
			moving = append(moving, id)
			continue
		}
		order = append(order, id)
	}
	return append(order, moving...)
}

// hitTest 返回指针下最上层的方块，没有时返回 0
func hitTest(em *ecs.EntityManager, px, py float64) ecs.EntityID {
	order := drawOrder(em)
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		x, y, box, ok := boxRect(em, id)
		if ok && box.Contains(x, y, px, py) {
			return id
		}
	}
	return 0
}
