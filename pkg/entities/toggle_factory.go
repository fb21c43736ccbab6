package entities

import (
	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/ecs"
)

// NewForceToggle 创建强制拖拽开关实体
// labelWidth 为 "<label>: OFF" 的绘制宽度，决定开关轨道的位置
func NewForceToggle(em *ecs.EntityManager, t config.ToggleConfig, labelWidth float64, on bool) ecs.EntityID {
	entity := em.CreateEntity()
	em.AddComponent(entity, &components.PositionComponent{X: t.X, Y: t.Y})
	em.AddComponent(entity, components.NewToggleComponent(t.Label, t.HintOn, t.HintOff, labelWidth, on))
	em.AddComponent(entity, &components.HoverComponent{})
	return entity
}
