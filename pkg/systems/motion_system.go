package systems

import (
	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
)

// MotionSystem 每帧推进弹簧动画、门控延迟重置、开关滑块和点击闪烁
type MotionSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	elapsed       float64
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(em *ecs.EntityManager, session *game.Session) *MotionSystem {
	return &MotionSystem{entityManager: em, session: session}
}

// Elapsed 累计运行时间（秒），用于指示点脉冲
func (s *MotionSystem) Elapsed() float64 {
	return s.elapsed
}

// Update 推进一帧
func (s *MotionSystem) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.session.Tick()

	for _, id := range ecs.GetEntitiesWith1[*components.DraggableComponent](s.entityManager) {
		d, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, id)
		if d.Controller != nil && !d.Controller.Closed() {
			d.Controller.Update(deltaTime)
		}
	}

	on := s.session.Override().Enabled()
	for _, id := range ecs.GetEntitiesWith1[*components.ToggleComponent](s.entityManager) {
		toggle, _ := ecs.GetComponent[*components.ToggleComponent](s.entityManager, id)
		toggle.SetOn(on)
		toggle.Knob.Update(deltaTime)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ClickEffectComponent](s.entityManager) {
		effect, _ := ecs.GetComponent[*components.ClickEffectComponent](s.entityManager, id)
		if effect.Remaining > 0 {
			effect.Remaining -= deltaTime
			if effect.Remaining < 0 {
				effect.Remaining = 0
			}
		}
	}
}
