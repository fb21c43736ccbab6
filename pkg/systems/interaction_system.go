package systems

import (
	"log"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
)

// InteractionSystem 方块的点击与拖拽交互系统
//
// 职责：
//   - 更新悬停状态
//   - 按下时记录候选元素
//   - 指针移动超过 dragThreshold 且元素允许拖拽时开始拖拽
//   - 释放时结束拖拽；若未开始拖拽且仍在同一元素上，则计为一次点击
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput
	session       *game.Session
	dragThreshold float64

	pressed     ecs.EntityID
	pressOrigin drag.Vec2
	dragging    bool
}

// NewInteractionSystem 创建交互系统
func NewInteractionSystem(em *ecs.EntityManager, session *game.Session, input PointerInput, dragThreshold float64) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		input:         input,
		session:       session,
		dragThreshold: dragThreshold,
	}
}

// Pressed 当前按下的元素（0 表示没有）
func (s *InteractionSystem) Pressed() ecs.EntityID {
	return s.pressed
}

// Dragging 是否有元素正在被拖拽
func (s *InteractionSystem) Dragging() bool {
	return s.dragging
}

// Update 处理本帧指针输入
func (s *InteractionSystem) Update(deltaTime float64) {
	p := s.input.Pointer()
	pointer := drag.Vec2{X: float64(p.X), Y: float64(p.Y)}

	s.updateHover(pointer)

	if p.JustPressed && s.pressed == 0 {
		if id := hitTest(s.entityManager, pointer.X, pointer.Y); id != 0 {
			s.press(id, pointer)
		}
	}

	if s.pressed == 0 {
		return
	}

	ctrl := controllerOf(s.entityManager, s.pressed)
	if ctrl == nil || ctrl.Closed() {
		s.clear()
		return
	}

	if p.Pressed && !s.dragging && pointer.Sub(s.pressOrigin).Len() > s.dragThreshold {
		if ctrl.BeginDrag(s.pressOrigin) {
			s.dragging = true
		}
	}
	if s.dragging {
		ctrl.Move(pointer)
	}

	if p.JustReleased || !p.Pressed {
		s.release(ctrl, pointer)
	}
}

func (s *InteractionSystem) press(id ecs.EntityID, pointer drag.Vec2) {
	s.pressed = id
	s.pressOrigin = pointer
	s.dragging = false
	if hover, ok := ecs.GetComponent[*components.HoverComponent](s.entityManager, id); ok {
		hover.Pressed = true
	}
}

func (s *InteractionSystem) release(ctrl *drag.Controller, pointer drag.Vec2) {
	id := s.pressed
	if s.dragging {
		ctrl.EndDrag()
		s.session.Audio().PlaySound(game.SoundRelease)
	} else if hitTest(s.entityManager, pointer.X, pointer.Y) == id {
		s.click(id, ctrl)
	}
	s.clear()
}

func (s *InteractionSystem) click(id ecs.EntityID, ctrl *drag.Controller) {
	if !ctrl.Click(s.session.Now()) {
		log.Printf("[InteractionSystem] click on %s not counted (state=%s)", ctrl.ID(), ctrl.State())
		return
	}
	if effect, ok := ecs.GetComponent[*components.ClickEffectComponent](s.entityManager, id); ok {
		effect.Trigger()
	}
	s.session.Audio().PlaySound(game.SoundClick)
}

func (s *InteractionSystem) clear() {
	if s.pressed != 0 {
		if hover, ok := ecs.GetComponent[*components.HoverComponent](s.entityManager, s.pressed); ok {
			hover.Pressed = false
		}
	}
	s.pressed = 0
	s.dragging = false
}

// Cancel 中止进行中的拖拽（窗口失焦或场景切换时调用）
func (s *InteractionSystem) Cancel() {
	if s.dragging {
		if ctrl := controllerOf(s.entityManager, s.pressed); ctrl != nil {
			ctrl.Cancel()
		}
	}
	s.clear()
}

func (s *InteractionSystem) updateHover(pointer drag.Vec2) {
	hovered := hitTest(s.entityManager, pointer.X, pointer.Y)
	if s.dragging {
		hovered = s.pressed
	}
	for _, id := range ecs.GetEntitiesWith1[*components.HoverComponent](s.entityManager) {
		hover, _ := ecs.GetComponent[*components.HoverComponent](s.entityManager, id)
		hover.IsHovered = id == hovered
	}
}
