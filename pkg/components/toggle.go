package components

import (
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/spring"
)

// 开关轨道和滑块尺寸
const (
	ToggleTrackWidth  = 56.0
	ToggleTrackHeight = 28.0
	ToggleKnobSize    = 20.0
	ToggleKnobTravel  = 26.0
)

// ToggleKnobSpring 滑块移动的弹簧参数
var ToggleKnobSpring = drag.SpringParams{Stiffness: 500, Damping: 30, Mass: 1}

// ToggleComponent 强制拖拽开关
// 开关状态本身由会话的 Override 持有，这里只保存外观、命中区域和滑块动画
type ToggleComponent struct {
	// Width/Height 命中区域（标签 + 轨道）
	Width  float64
	Height float64
	// TrackX 轨道相对开关原点的横向偏移
	TrackX float64

	Label   string
	HintOn  string
	HintOff string

	// Knob 滑块横向位移动画，KnobOn 是它当前的目标
	Knob   *spring.Animator
	KnobOn bool
}

// NewToggleComponent 创建开关组件，滑块初始位置与 on 一致
func NewToggleComponent(label, hintOn, hintOff string, labelWidth float64, on bool) *ToggleComponent {
	t := &ToggleComponent{
		Width:   labelWidth + 12 + ToggleTrackWidth,
		Height:  ToggleTrackHeight,
		TrackX:  labelWidth + 12,
		Label:   label,
		HintOn:  hintOn,
		HintOff: hintOff,
		Knob:    spring.NewAnimator(),
		KnobOn:  on,
	}
	if on {
		t.Knob.Set(drag.Vec2{X: ToggleKnobTravel})
	}
	return t
}

// Contains 判断点是否落在位于 (x, y) 的开关上
func (t *ToggleComponent) Contains(x, y, px, py float64) bool {
	return px >= x && px <= x+t.Width && py >= y && py <= y+t.Height
}

// SetOn 让滑块向 on 对应的位置运动
func (t *ToggleComponent) SetOn(on bool) {
	if t.KnobOn == on {
		return
	}
	t.KnobOn = on
	target := drag.Vec2{}
	if on {
		target.X = ToggleKnobTravel
	}
	t.Knob.AnimateTo(target, ToggleKnobSpring)
}
