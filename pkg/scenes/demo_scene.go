package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/entities"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
	"github.com/caaaan/springbox/pkg/systems"
	"github.com/caaaan/springbox/pkg/utils"
)

// DemoSceneName 演示场景在 SceneManager 中的名称
const DemoSceneName = "demo"

// poller 每帧需要先采样的输入
type poller interface {
	Poll()
}

// DemoScene 演示页面：说明面板、强制拖拽开关和一组弹簧方块
//
// 场景从配置创建实体，并从设置恢复停留位置和锁存状态。
// 会话由 App 持有，场景重建时复用同一个会话。
type DemoScene struct {
	cfg     *config.DemoConfig
	session *game.Session

	entityManager *ecs.EntityManager
	input         systems.PointerInput

	interactionSystem *systems.InteractionSystem
	toggleSystem      *systems.ToggleSystem
	motionSystem      *systems.MotionSystem
	renderSystem      *systems.RenderSystem

	elements map[gate.ElementID]ecs.EntityID
	closed   bool
}

// NewDemoScene 创建使用鼠标/触摸输入的演示场景
func NewDemoScene(cfg *config.DemoConfig, session *game.Session) *DemoScene {
	return NewDemoSceneWithInput(cfg, session, systems.NewEbitenPointerInput())
}

// NewDemoSceneWithInput 创建带自定义指针输入的演示场景（用于测试）
func NewDemoSceneWithInput(cfg *config.DemoConfig, session *game.Session, input systems.PointerInput) *DemoScene {
	em := ecs.NewEntityManager()
	scene := &DemoScene{
		cfg:           cfg,
		session:       session,
		entityManager: em,
		input:         input,
		elements:      make(map[gate.ElementID]ecs.EntityID, len(cfg.Elements)),
	}

	scene.interactionSystem = systems.NewInteractionSystem(em, session, input, cfg.DragThreshold)
	scene.toggleSystem = systems.NewToggleSystem(em, session, input)
	scene.motionSystem = systems.NewMotionSystem(em, session)
	scene.renderSystem = systems.NewRenderSystem(em, session, systems.RenderOptions{
		Title:        cfg.Window.Title,
		Instructions: cfg.Instructions,
		ScreenWidth:  float64(cfg.Window.Width),
		PanelTop:     52,
	})

	session.Gate().OnThreshold(scene.onThreshold)
	scene.createToggle()
	for i := range cfg.Elements {
		scene.createElement(i)
	}

	log.Printf("[DemoScene] created %d elements (force=%v)", len(scene.elements), session.Override().Enabled())
	return scene
}

func (s *DemoScene) createToggle() {
	t := s.cfg.Toggle
	labelWidth := utils.MeasureText(systems.ToggleLabel(t.Label, false), s.renderSystem.LabelFace())
	entities.NewForceToggle(s.entityManager, t, labelWidth, s.session.Override().Enabled())
}

func (s *DemoScene) createElement(index int) {
	entity, ctrl := entities.NewSpringBox(s.entityManager, s.session, s.cfg, index)
	ctrl.OnRelease(s.onRelease)
	s.elements[ctrl.ID()] = entity
}

// onRelease 记录停留位置；弹回时丢弃之前保存的位置
func (s *DemoScene) onRelease(id gate.ElementID, offset drag.Vec2, policy drag.ReleasePolicy) {
	settings := s.session.Settings()
	if policy != drag.ReleaseStayAtDrop {
		settings.ClearPosition(string(id))
		return
	}
	if ctrl := s.Controller(id); ctrl != nil {
		rest := ctrl.Rest()
		settings.SetPosition(string(id), rest.X, rest.Y)
	}
}

// onThreshold 门控打开或锁存翻转时播放音效并记录锁存状态
func (s *DemoScene) onThreshold(id gate.ElementID, rec gate.Record) {
	if s.session.Gate().PolicyOf(id) == gate.PolicyToggleLatch {
		s.session.Settings().SetLatched(string(id), rec.Latched)
	}
	s.session.Audio().PlaySound(game.SoundUnlock)
}

// Controller 返回元素的拖拽控制器
func (s *DemoScene) Controller(id gate.ElementID) *drag.Controller {
	e, ok := s.elements[id]
	if !ok {
		return nil
	}
	d, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, e)
	if !ok {
		return nil
	}
	return d.Controller
}

// Entity 返回元素对应的实体
func (s *DemoScene) Entity(id gate.ElementID) (ecs.EntityID, bool) {
	e, ok := s.elements[id]
	return e, ok
}

// EntityManager 返回场景的实体管理器
func (s *DemoScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Update 更新场景
func (s *DemoScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	if p, ok := s.input.(poller); ok {
		p.Poll()
	}
	s.toggleSystem.Update(deltaTime)
	s.interactionSystem.Update(deltaTime)
	s.motionSystem.Update(deltaTime)
	s.renderSystem.Update(deltaTime)
}

// Draw 绘制场景
func (s *DemoScene) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	s.renderSystem.Draw(screen)
}

// SaveOnExit 保存强制开关、停留位置和锁存状态
func (s *DemoScene) SaveOnExit() bool {
	if !s.session.IsOpen() {
		return false
	}
	if err := s.session.Settings().Save(); err != nil {
		log.Printf("[DemoScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// Close 卸载所有元素：结束拖拽并释放门控记录
func (s *DemoScene) Close() {
	if s.closed {
		return
	}
	for _, e := range s.elements {
		if d, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, e); ok {
			d.Controller.Close()
		}
	}
	s.interactionSystem.Cancel()
	if s.session.IsOpen() {
		s.session.Gate().OnThreshold(nil)
	}
	s.entityManager.Clear()
	s.closed = true
	log.Printf("[DemoScene] closed")
}
