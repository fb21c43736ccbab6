package entities

import (
	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
	"github.com/caaaan/springbox/pkg/spring"
)

// NewSpringBox 创建配置中第 index 个可拖拽方块
//
// 参数：
//   - em: 实体管理器
//   - session: 页面会话（门控、强制开关、设置）
//   - cfg: 演示配置
//   - index: 元素在 cfg.Elements 中的下标
//
// 返回：
//   - 方块实体ID
//   - 方块的拖拽控制器
//
// 锁存策略元素从设置恢复开关状态；停留策略和锁存策略元素从设置恢复静止位置。
func NewSpringBox(em *ecs.EntityManager, session *game.Session, cfg *config.DemoConfig, index int) (ecs.EntityID, *drag.Controller) {
	el := &cfg.Elements[index]
	id := gate.ElementID(el.ID)
	tracker := session.Gate()
	settings := session.Settings()

	tracker.Configure(id, el.GateOptions())
	if el.GatePolicy == gate.PolicyToggleLatch {
		tracker.SetLatched(id, settings.Latched(el.ID))
	}

	ctrl := drag.NewController(id, tracker, session.Override(), spring.NewAnimator(), el.DragOptions())
	if el.ReleasePolicy == drag.ReleaseStayAtDrop || el.GatePolicy == gate.PolicyToggleLatch {
		if p, ok := settings.Position(el.ID); ok {
			ctrl.SetRest(drag.Vec2{X: p.X, Y: p.Y})
		}
	}

	x, y := cfg.CellOrigin(index)
	entity := em.CreateEntity()
	em.AddComponent(entity, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entity, &components.BoxComponent{
		Width:       el.Width,
		Height:      el.Height,
		CellWidth:   cfg.Layout.CellWidth,
		CellHeight:  cfg.Layout.CellHeight,
		Title:       el.Title,
		Label:       el.Label,
		ForceLabel:  el.ForceLabel,
		ActiveLabel: el.ActiveLabel,
		Fill:        el.Fill,
		ActiveFill:  el.ActiveFill,
	})
	em.AddComponent(entity, &components.DraggableComponent{Controller: ctrl})
	em.AddComponent(entity, &components.ClickEffectComponent{})
	em.AddComponent(entity, &components.HoverComponent{})

	return entity, ctrl
}
