package entities

import (
	"testing"
	"time"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
)

func loadConfig(t *testing.T) *config.DemoConfig {
	t.Helper()
	cfg, err := config.LoadDemoConfig("../../data/demo.yaml")
	if err != nil {
		t.Fatalf("LoadDemoConfig() error: %v", err)
	}
	return cfg
}

func indexOf(t *testing.T, cfg *config.DemoConfig, id string) int {
	t.Helper()
	for i := range cfg.Elements {
		if cfg.Elements[i].ID == id {
			return i
		}
	}
	t.Fatalf("element %q not found in demo config", id)
	return -1
}

func openSession(t *testing.T, cfg *config.DemoConfig, settings *game.SettingsManager) *game.Session {
	t.Helper()
	clock := gate.NewManualClock(time.Unix(1_700_000_000, 0))
	session := game.OpenSession(clock, cfg.GateOptions(), settings)
	t.Cleanup(session.Close)
	return session
}

func TestNewSpringBox(t *testing.T) {
	cfg := loadConfig(t)
	session := openSession(t, cfg, nil)
	em := ecs.NewEntityManager()

	index := indexOf(t, cfg, "basic")
	entity, ctrl := NewSpringBox(em, session, cfg, index)

	box, ok := ecs.GetComponent[*components.BoxComponent](em, entity)
	if !ok {
		t.Fatal("BoxComponent missing")
	}
	if box.Width != cfg.Elements[index].Width || box.CellWidth != cfg.Layout.CellWidth {
		t.Errorf("box size = %vx%v cell %v, want %v cell %v",
			box.Width, box.Height, box.CellWidth, cfg.Elements[index].Width, cfg.Layout.CellWidth)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, entity)
	if !ok {
		t.Fatal("PositionComponent missing")
	}
	x, y := cfg.CellOrigin(index)
	if pos.X != x || pos.Y != y {
		t.Errorf("position = (%v, %v), want (%v, %v)", pos.X, pos.Y, x, y)
	}

	d, ok := ecs.GetComponent[*components.DraggableComponent](em, entity)
	if !ok || d.Controller != ctrl {
		t.Fatal("DraggableComponent should hold the returned controller")
	}
	if !ecs.HasComponent[*components.ClickEffectComponent](em, entity) {
		t.Error("ClickEffectComponent missing")
	}
	if !ecs.HasComponent[*components.HoverComponent](em, entity) {
		t.Error("HoverComponent missing")
	}

	if ctrl.CanDrag() {
		t.Error("unlock element should not be draggable before any click")
	}
	if got := session.Gate().OptionsOf(gate.ElementID("basic")); got != cfg.Elements[index].GateOptions() {
		t.Errorf("gate options = %+v, want %+v", got, cfg.Elements[index].GateOptions())
	}
}

func TestNewSpringBox_RestoresSettings(t *testing.T) {
	cfg := loadConfig(t)
	settings := game.NewSettingsManager(nil)
	settings.SetPosition("free-pull", 100, -50)
	settings.SetLatched("latch", true)
	settings.SetPosition("latch", -20, 10)
	// 回弹策略元素即使有保存的位置也从原点开始
	settings.SetPosition("basic", 30, 30)
	session := openSession(t, cfg, settings)
	em := ecs.NewEntityManager()

	tests := []struct {
		name        string
		id          string
		wantRest    drag.Vec2
		wantEnabled bool
	}{
		{"停留策略恢复位置", "free-pull", drag.Vec2{X: 100, Y: -50}, false},
		{"锁存策略恢复开关和位置", "latch", drag.Vec2{X: -20, Y: 10}, true},
		{"回弹策略忽略位置", "basic", drag.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ctrl := NewSpringBox(em, session, cfg, indexOf(t, cfg, tt.id))
			if got := ctrl.Rest(); got != tt.wantRest {
				t.Errorf("Rest() = %+v, want %+v", got, tt.wantRest)
			}
			if got := ctrl.Position(); got != tt.wantRest {
				t.Errorf("Position() = %+v, want %+v", got, tt.wantRest)
			}
			if got := ctrl.Enabled(); got != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", got, tt.wantEnabled)
			}
		})
	}
}

func TestNewForceToggle(t *testing.T) {
	em := ecs.NewEntityManager()
	tc := config.ToggleConfig{X: 40, Y: 120, Label: "Force Draggable", HintOn: "on", HintOff: "off"}

	entity := NewForceToggle(em, tc, 100, true)

	toggle, ok := ecs.GetComponent[*components.ToggleComponent](em, entity)
	if !ok {
		t.Fatal("ToggleComponent missing")
	}
	if toggle.TrackX != 112 {
		t.Errorf("TrackX = %v, want 112", toggle.TrackX)
	}
	if !toggle.KnobOn || toggle.Knob.Value().X != components.ToggleKnobTravel {
		t.Errorf("knob should start at the on position, got %+v", toggle.Knob.Value())
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, entity)
	if pos == nil || pos.X != 40 || pos.Y != 120 {
		t.Errorf("position = %+v, want (40, 120)", pos)
	}
	if !ecs.HasComponent[*components.HoverComponent](em, entity) {
		t.Error("HoverComponent missing")
	}
}
