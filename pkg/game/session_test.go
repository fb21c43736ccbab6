package game

import (
	"testing"
	"time"

	"github.com/caaaan/springbox/pkg/gate"
)

func newTestSession(t *testing.T) (*Session, *gate.ManualClock) {
	t.Helper()
	clock := gate.NewManualClock(time.Unix(1_700_000_000, 0))
	s := OpenSession(clock, gate.DefaultOptions(), nil)
	t.Cleanup(s.Close)
	return s, clock
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s: 期望 panic", name)
			return
		}
		if r != ErrSessionClosed {
			t.Errorf("%s: panic = %v, want %q", name, r, ErrSessionClosed)
		}
	}()
	fn()
}

// TestOpenSession 测试会话创建后的默认状态
func TestOpenSession(t *testing.T) {
	s, _ := newTestSession(t)

	if !s.IsOpen() {
		t.Fatal("新会话应处于打开状态")
	}
	if s.Gate() == nil || s.Override() == nil || s.Settings() == nil {
		t.Fatal("会话组件不应为 nil")
	}
	if s.Override().Enabled() {
		t.Error("默认强制开关应关闭")
	}
	if s.Audio() != nil {
		t.Error("未设置音频时应为 nil")
	}
	if got := s.Gate().Defaults().Threshold; got != gate.DefaultThreshold {
		t.Errorf("Threshold = %d, want %d", got, gate.DefaultThreshold)
	}
}

// TestOpenSessionRestoresForce 测试从设置恢复强制开关
func TestOpenSessionRestoresForce(t *testing.T) {
	settings := NewSettingsManager(nil)
	settings.SetForceDraggable(true)

	s := OpenSession(nil, gate.DefaultOptions(), settings)
	defer s.Close()

	if !s.Override().Enabled() {
		t.Error("应从设置恢复强制开关")
	}
}

// TestSessionTick 测试 Tick 触发延迟重置
func TestSessionTick(t *testing.T) {
	s, clock := newTestSession(t)
	id := gate.ElementID("box")

	s.Gate().RegisterClick(id, s.Now())
	s.Gate().RegisterClick(id, s.Now())
	if got := s.Gate().Count(id); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	clock.Advance(time.Second)
	s.Tick()
	if got := s.Gate().Count(id); got != 2 {
		t.Errorf("窗口内 Tick 不应清零, Count = %d", got)
	}

	clock.Advance(time.Second)
	s.Tick()
	if got := s.Gate().Count(id); got != 0 {
		t.Errorf("窗口结束后 Count = %d, want 0", got)
	}
}

// TestSessionClose 测试关闭后访问会 panic
func TestSessionClose(t *testing.T) {
	s, _ := newTestSession(t)
	s.Gate().RegisterClick("a", s.Now())

	tracker := s.Gate()
	s.Close()
	s.Close()

	if s.IsOpen() {
		t.Error("关闭后 IsOpen 应为 false")
	}
	if len(tracker.IDs()) != 0 {
		t.Errorf("关闭后应清除所有记录, got %v", tracker.IDs())
	}

	expectPanic(t, "Gate", func() { s.Gate() })
	expectPanic(t, "Override", func() { s.Override() })
	expectPanic(t, "Tick", func() { s.Tick() })
	expectPanic(t, "SetAudio", func() { s.SetAudio(nil) })
}

// TestNilSession 测试 nil 会话
func TestNilSession(t *testing.T) {
	var s *Session
	if s.IsOpen() {
		t.Error("nil 会话不应打开")
	}
	s.Close()
	expectPanic(t, "nil Gate", func() { s.Gate() })
}
