package main

import (
	"testing"

	"github.com/caaaan/springbox/pkg/drag"
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		name          string
		params        drag.SpringParams
		wantOvershoot bool
	}{
		{"欠阻尼有过冲", drag.SpringParams{Stiffness: 600, Damping: 10, Mass: 1}, true},
		{"过阻尼无过冲", drag.SpringParams{Stiffness: 100, Damping: 40, Mass: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := simulate(tt.params, drag.Vec2{X: 100}, 1.0/60, 2000)
			if res.Frames <= 0 {
				t.Fatalf("spring did not settle: %+v", res)
			}
			if got := res.Overshoot > 0.5; got != tt.wantOvershoot {
				t.Errorf("overshoot = %.3f, want overshoot=%v", res.Overshoot, tt.wantOvershoot)
			}
		})
	}
}

func TestSimulateZeroStiffness(t *testing.T) {
	res := simulate(drag.SpringParams{}, drag.Vec2{X: 50}, 1.0/60, 10)
	if res.Frames != 1 {
		t.Errorf("zero stiffness should snap on the first frame, got %d frames", res.Frames)
	}
}

func TestRunRejectsBadTPS(t *testing.T) {
	if err := run([]string{"--tps", "0"}); err == nil {
		t.Error("expected error for tps=0")
	}
}
