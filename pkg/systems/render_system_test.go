package systems

import (
	"testing"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/gate"
)

func TestBoxLabel(t *testing.T) {
	w := newTestWorld(t)
	_, unlock := w.addBox("basic", 0, 0, springBackOptions())
	latchOpts := springBackOptions()
	latchOpts.Gate = gate.PolicyToggleLatch
	_, latch := w.addBox("latch", 300, 0, latchOpts)

	box := &components.BoxComponent{Label: "Click 5x to Enable", ForceLabel: "Drag Me", ActiveLabel: "Spring Back Enabled"}

	if got := BoxLabel(box, unlock, false); got != box.Label {
		t.Errorf("解锁元素 = %q, want %q", got, box.Label)
	}
	if got := BoxLabel(box, unlock, true); got != box.ForceLabel {
		t.Errorf("强制开关打开 = %q, want %q", got, box.ForceLabel)
	}
	if got := BoxLabel(box, latch, true); got != box.Label {
		t.Errorf("锁存关闭 = %q, want %q", got, box.Label)
	}

	w.session.Gate().SetLatched(latch.ID(), true)
	if got := BoxLabel(box, latch, false); got != box.ActiveLabel {
		t.Errorf("锁存打开 = %q, want %q", got, box.ActiveLabel)
	}
	if BoxFill(box, latch) != box.ActiveFill || BoxFill(box, unlock) != box.Fill {
		t.Error("BoxFill 应按锁存状态选择颜色")
	}
}

func TestCounterText(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		override  bool
		policy    gate.Policy
		wantText  string
		wantShown bool
	}{
		{"没有点击", 0, false, gate.PolicyUnlockUntilDrag, "", false},
		{"三次点击", 3, false, gate.PolicyUnlockUntilDrag, "3/5", true},
		{"达到阈值", 5, false, gate.PolicyUnlockUntilDrag, "", false},
		{"强制开关打开", 3, true, gate.PolicyUnlockUntilDrag, "", false},
		{"锁存元素不受强制开关影响", 2, true, gate.PolicyToggleLatch, "2/5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, shown := CounterText(tt.count, 5, tt.override, tt.policy)
			if text != tt.wantText || shown != tt.wantShown {
				t.Errorf("CounterText() = (%q, %v), want (%q, %v)", text, shown, tt.wantText, tt.wantShown)
			}
		})
	}
}

func TestToggleLabel(t *testing.T) {
	if got := ToggleLabel("Force Draggable", true); got != "Force Draggable: ON" {
		t.Errorf("got %q", got)
	}
	if got := ToggleLabel("Force Draggable", false); got != "Force Draggable: OFF" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSystem_DragScale(t *testing.T) {
	w := newTestWorld(t)
	w.session.Override().Set(true)
	e, ctrl := w.addBox("basic", 100, 100, springBackOptions())
	rs := &RenderSystem{entityManager: w.em, session: w.session, scales: make(map[ecs.EntityID]float64)}

	if !ctrl.BeginDrag(drag.Vec2{X: 196, Y: 196}) {
		t.Fatal("BeginDrag failed")
	}
	for i := 0; i < 120; i++ {
		rs.Update(frame)
	}
	if s := rs.Scale(e); !near(s, DragScale) {
		t.Errorf("拖拽中缩放 = %v, want %v", s, DragScale)
	}

	ctrl.EndDrag()
	for i := 0; i < 120; i++ {
		rs.Update(frame)
	}
	if s := rs.Scale(e); !near(s, 1) {
		t.Errorf("松手后缩放 = %v, want 1", s)
	}
}

func TestClickFlash(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		wantScale float64
		wantAlpha float64
	}{
		{"刚点击", 1, 0.5, 0.7},
		{"一半", 0.5, 0.5 + 0.7*0.75, 0.7 * 0.125},
		{"结束", 0, 1.2, 0},
		{"超出范围", 2, 0.5, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, alpha := ClickFlash(tt.intensity)
			if !near(scale, tt.wantScale) || !near(alpha, tt.wantAlpha) {
				t.Errorf("ClickFlash(%v) = (%v, %v), want (%v, %v)",
					tt.intensity, scale, alpha, tt.wantScale, tt.wantAlpha)
			}
		})
	}
}
