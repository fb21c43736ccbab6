package gate

import (
	"testing"
	"time"
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestTracker 创建使用手动时钟的跟踪器
func newTestTracker() (*Tracker, *ManualClock) {
	clock := NewManualClock(testStart)
	return NewTracker(clock, DefaultOptions()), clock
}

// clickN 以固定间隔点击 n 次
func clickN(tr *Tracker, clock *ManualClock, id ElementID, n int, gap time.Duration) {
	for i := 0; i < n; i++ {
		if i > 0 {
			clock.Advance(gap)
		}
		tr.RegisterClick(id, clock.Now())
	}
}

// TestIsEnabledMatchesThreshold 测试 IsEnabled 与计数/阈值的关系
func TestIsEnabledMatchesThreshold(t *testing.T) {
	for n := 0; n <= 7; n++ {
		tr, clock := newTestTracker()
		clickN(tr, clock, "box", n, 100*time.Millisecond)

		want := n >= DefaultThreshold
		if got := tr.IsEnabled("box"); got != want {
			t.Errorf("%d 次点击后 IsEnabled = %v, 期望 %v", n, got, want)
		}
		if got := tr.Count("box"); got != n {
			t.Errorf("%d 次点击后 Count = %d", n, got)
		}
	}
}

// TestFourClicksThenFifth 测试 4 次点击未解锁，第 5 次解锁
func TestFourClicksThenFifth(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 4, 500*time.Millisecond)

	if tr.IsEnabled("A") {
		t.Fatal("4 次点击后不应解锁")
	}
	if tr.Count("A") != 4 {
		t.Fatalf("Count = %d, 期望 4", tr.Count("A"))
	}

	clock.Advance(500 * time.Millisecond)
	tr.RegisterClick("A", clock.Now())
	if !tr.IsEnabled("A") {
		t.Fatal("第 5 次点击后应解锁")
	}
}

// TestGapBreaksStreak 测试超过窗口的间隔会把计数重置为 1
func TestGapBreaksStreak(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 3, 100*time.Millisecond)

	clock.Advance(DefaultWindow)
	tr.RegisterClick("A", clock.Now())
	if got := tr.Count("A"); got != 1 {
		t.Fatalf("间隔等于窗口后 Count = %d, 期望 1", got)
	}

	clickN(tr, clock, "A", 1, 100*time.Millisecond)
	if tr.IsEnabled("A") {
		t.Error("被打断的连击不应解锁")
	}
}

// TestWindowBoundaryIsStrict 测试窗口边界采用严格小于判断
func TestWindowBoundaryIsStrict(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want int
	}{
		{"窗口内", DefaultWindow - time.Millisecond, 2},
		{"恰好等于窗口", DefaultWindow, 1},
		{"超出窗口", DefaultWindow + time.Millisecond, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, clock := newTestTracker()
			tr.RegisterClick("A", clock.Now())
			clock.Advance(tt.gap)
			tr.RegisterClick("A", clock.Now())
			if got := tr.Count("A"); got != tt.want {
				t.Errorf("Count = %d, 期望 %d", got, tt.want)
			}
		})
	}
}

// TestDeferredResetFires 测试窗口内没有新点击时计数归零
func TestDeferredResetFires(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 5, 100*time.Millisecond)

	clock.Advance(DefaultWindow - time.Millisecond)
	tr.Tick(clock.Now())
	if tr.Count("A") != 5 {
		t.Fatalf("窗口未到期时 Count = %d, 期望 5", tr.Count("A"))
	}

	clock.Advance(time.Millisecond)
	tr.Tick(clock.Now())
	if tr.Count("A") != 0 {
		t.Fatalf("窗口到期后 Count = %d, 期望 0", tr.Count("A"))
	}
	if tr.IsEnabled("A") {
		t.Error("窗口到期后不应保持解锁")
	}
	if _, armed := tr.PendingReset("A"); armed {
		t.Error("触发后不应再有待处理的重置")
	}
}

// TestClickRearmsDeferredReset 测试每次点击都会重新布置延迟重置
func TestClickRearmsDeferredReset(t *testing.T) {
	tr, clock := newTestTracker()
	tr.RegisterClick("A", clock.Now())

	clock.Advance(1500 * time.Millisecond)
	tr.RegisterClick("A", clock.Now())

	deadline, armed := tr.PendingReset("A")
	if !armed {
		t.Fatal("点击后应有待处理的重置")
	}
	if want := clock.Now().Add(DefaultWindow); !deadline.Equal(want) {
		t.Errorf("截止时间 = %v, 期望 %v", deadline, want)
	}

	// 第一次点击的截止时间已过，但不应触发
	clock.Advance(600 * time.Millisecond)
	tr.Tick(clock.Now())
	if tr.Count("A") != 2 {
		t.Errorf("旧的截止时间不应触发重置, Count = %d", tr.Count("A"))
	}
}

// TestResetCancelsTimer 测试 Reset 取消待触发的重置，且重复调用无副作用
func TestResetCancelsTimer(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 5, 100*time.Millisecond)

	tr.Reset("A")
	tr.Reset("A")

	if tr.Count("A") != 0 {
		t.Errorf("Reset 后 Count = %d", tr.Count("A"))
	}
	if _, armed := tr.PendingReset("A"); armed {
		t.Error("Reset 后不应有待处理的重置")
	}

	// 未注册的元素
	tr.Reset("missing")
	if tr.Count("missing") != 0 || tr.IsEnabled("missing") {
		t.Error("未注册元素应视为计数 0")
	}
}

// TestResetAll 测试 ResetAll 清零所有元素
func TestResetAll(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 5, 100*time.Millisecond)
	clickN(tr, clock, "B", 2, 100*time.Millisecond)
	tr.Configure("C", Options{Threshold: 3, Policy: PolicyToggleLatch})
	clickN(tr, clock, "C", 4, 100*time.Millisecond)

	tr.ResetAll()

	for _, id := range []ElementID{"A", "B", "C"} {
		if tr.Count(id) != 0 {
			t.Errorf("%s: ResetAll 后 Count = %d", id, tr.Count(id))
		}
		if _, armed := tr.PendingReset(id); armed {
			t.Errorf("%s: ResetAll 后仍有待处理的重置", id)
		}
	}
	if !tr.Latched("C") {
		t.Error("ResetAll 不应清除锁存开关")
	}
}

// TestToggleLatchPolicy 测试达到阈值时翻转锁存开关
func TestToggleLatchPolicy(t *testing.T) {
	tr, clock := newTestTracker()
	tr.Configure("T", Options{Policy: PolicyToggleLatch})

	clickN(tr, clock, "T", 5, 100*time.Millisecond)
	if !tr.Latched("T") {
		t.Fatal("5 次点击后锁存开关应打开")
	}
	if tr.Count("T") != 0 {
		t.Errorf("翻转后 Count = %d, 期望 0", tr.Count("T"))
	}
	if tr.IsEnabled("T") {
		t.Error("锁存策略下计数已清零, IsEnabled 应为 false")
	}
	if _, armed := tr.PendingReset("T"); armed {
		t.Error("翻转后不应有待处理的重置")
	}

	// 单次点击不会翻转
	clock.Advance(100 * time.Millisecond)
	tr.RegisterClick("T", clock.Now())
	if !tr.Latched("T") {
		t.Error("单次点击不应翻转锁存开关")
	}

	clickN(tr, clock, "T", 4, 100*time.Millisecond)
	if tr.Latched("T") {
		t.Error("第二轮 5 次点击后锁存开关应关闭")
	}
}

// TestOnThreshold 测试阈值回调只在达到阈值时触发一次
func TestOnThreshold(t *testing.T) {
	tr, clock := newTestTracker()
	var fired []Record
	tr.OnThreshold(func(id ElementID, rec Record) {
		fired = append(fired, rec)
	})

	clickN(tr, clock, "A", 7, 100*time.Millisecond)
	if len(fired) != 1 {
		t.Fatalf("回调次数 = %d, 期望 1", len(fired))
	}
	if fired[0].ID != "A" || fired[0].Count != DefaultThreshold {
		t.Errorf("回调记录 = %+v", fired[0])
	}
}

// TestPerElementThreshold 测试按元素配置阈值和窗口
func TestPerElementThreshold(t *testing.T) {
	tr, clock := newTestTracker()
	tr.Configure("quick", Options{Threshold: 2, Window: 300 * time.Millisecond})

	clickN(tr, clock, "quick", 2, 200*time.Millisecond)
	if !tr.IsEnabled("quick") {
		t.Error("阈值为 2 时两次点击应解锁")
	}

	clock.Advance(300 * time.Millisecond)
	tr.Tick(clock.Now())
	if tr.IsEnabled("quick") {
		t.Error("自定义窗口到期后应重置")
	}

	opts := tr.OptionsOf("other")
	if opts.Threshold != DefaultThreshold || opts.Window != DefaultWindow {
		t.Errorf("未配置元素应使用默认参数, got %+v", opts)
	}
}

// TestForget 测试 Forget 取消定时器并删除记录
func TestForget(t *testing.T) {
	tr, clock := newTestTracker()
	clickN(tr, clock, "A", 3, 100*time.Millisecond)

	tr.Forget("A")
	clock.Advance(DefaultWindow)
	tr.Tick(clock.Now())

	if len(tr.IDs()) != 0 {
		t.Errorf("Forget 后仍有记录: %v", tr.IDs())
	}
	if rec := tr.Snapshot("A"); rec.Count != 0 || rec.Latched {
		t.Errorf("Forget 后快照 = %+v", rec)
	}
}

// TestParsePolicy 测试策略名称解析
func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicyUnlockUntilDrag, false},
		{"unlock", PolicyUnlockUntilDrag, false},
		{"Toggle", PolicyToggleLatch, false},
		{"toggle-latch", PolicyToggleLatch, false},
		{"bogus", PolicyUnlockUntilDrag, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) err = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, 期望 %v", tt.input, got, tt.want)
		}
	}
}
