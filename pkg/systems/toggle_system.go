package systems

import (
	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
)

// ToggleSystem 强制拖拽开关的交互系统
// 在开关上按下并在开关上释放时切换会话的 Override
type ToggleSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput
	session       *game.Session

	pressed ecs.EntityID
}

// NewToggleSystem 创建开关系统
func NewToggleSystem(em *ecs.EntityManager, session *game.Session, input PointerInput) *ToggleSystem {
	return &ToggleSystem{
		entityManager: em,
		input:         input,
		session:       session,
	}
}

// Update 处理开关点击
func (s *ToggleSystem) Update(deltaTime float64) {
	p := s.input.Pointer()
	px, py := float64(p.X), float64(p.Y)
	hit := s.toggleAt(px, py)

	for _, id := range ecs.GetEntitiesWith2[*components.ToggleComponent, *components.HoverComponent](s.entityManager) {
		hover, _ := ecs.GetComponent[*components.HoverComponent](s.entityManager, id)
		hover.IsHovered = id == hit
		hover.Pressed = id == s.pressed && p.Pressed
	}

	if p.JustPressed {
		s.pressed = hit
	}
	if !p.JustReleased {
		return
	}

	pressed := s.pressed
	s.pressed = 0
	if pressed == 0 || pressed != hit {
		return
	}

	s.session.Override().Toggle()
	s.session.Audio().PlaySound(game.SoundToggle)
}

// toggleAt 返回点 (px, py) 下的开关实体
func (s *ToggleSystem) toggleAt(px, py float64) ecs.EntityID {
	for _, id := range ecs.GetEntitiesWith2[*components.ToggleComponent, *components.PositionComponent](s.entityManager) {
		toggle, _ := ecs.GetComponent[*components.ToggleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if toggle.Contains(pos.X, pos.Y, px, py) {
			return id
		}
	}
	return 0
}
