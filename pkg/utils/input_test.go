package utils

import "testing"

func TestPointerAdvance(t *testing.T) {
	type frame struct {
		down         bool
		x, y         int
		justPressed  bool
		justReleased bool
	}

	tests := []struct {
		name   string
		frames []frame
	}{
		{
			name: "按下-移动-释放",
			frames: []frame{
				{down: false, x: 10, y: 10},
				{down: true, x: 10, y: 10, justPressed: true},
				{down: true, x: 40, y: 12},
				{down: false, x: 40, y: 12, justReleased: true},
				{down: false, x: 41, y: 12},
			},
		},
		{
			name: "连续两次点击",
			frames: []frame{
				{down: true, x: 5, y: 5, justPressed: true},
				{down: false, x: 5, y: 5, justReleased: true},
				{down: true, x: 5, y: 5, justPressed: true},
				{down: false, x: 5, y: 5, justReleased: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s PointerState
			for i, f := range tt.frames {
				s = advance(s, f.down, f.x, f.y, false)
				if s.JustPressed != f.justPressed || s.JustReleased != f.justReleased {
					t.Errorf("帧 %d: JustPressed=%v JustReleased=%v, want %v %v",
						i, s.JustPressed, s.JustReleased, f.justPressed, f.justReleased)
				}
				if s.X != f.x || s.Y != f.y || s.Pressed != f.down {
					t.Errorf("帧 %d: 状态 %+v 与输入不一致", i, s)
				}
			}
		})
	}
}

func TestNewPointerTracker(t *testing.T) {
	pt := NewPointerTracker()
	if pt.State().Pressed || pt.touching {
		t.Error("新的跟踪器不应处于按下状态")
	}
}
