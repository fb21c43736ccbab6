// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一鼠标左键和单点触摸
type PointerState struct {
	X, Y int
	// Pressed 指针当前是否按下
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放，X/Y 为释放位置
	JustReleased bool
	// IsTouch 是否来自触摸输入
	IsTouch bool
}

// PointerTracker 跟踪一个指针的按下、移动和释放
// 触摸优先；一次按下期间只跟踪第一个触点
type PointerTracker struct {
	state    PointerState
	touchID  ebiten.TouchID
	touching bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Update 采样本帧输入并返回新状态（每帧调用一次）
func (pt *PointerTracker) Update() PointerState {
	down, x, y, touch := pt.sample()
	pt.state = advance(pt.state, down, x, y, touch)
	return pt.state
}

// State 返回最近一次 Update 的结果
func (pt *PointerTracker) State() PointerState {
	return pt.state
}

func (pt *PointerTracker) sample() (down bool, x, y int, touch bool) {
	if pt.touching {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == pt.touchID {
				x, y = ebiten.TouchPosition(id)
				return true, x, y, true
			}
		}
		// 触点已抬起，使用最后的触摸位置
		pt.touching = false
		pt.touchID = -1
		return false, pt.state.X, pt.state.Y, true
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		pt.touchID = ids[0]
		pt.touching = true
		x, y = ebiten.TouchPosition(pt.touchID)
		return true, x, y, true
	}

	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y, false
}

// advance 根据上一帧状态和本帧采样计算按下/释放边沿
func advance(prev PointerState, down bool, x, y int, touch bool) PointerState {
	return PointerState{
		X:            x,
		Y:            y,
		Pressed:      down,
		JustPressed:  down && !prev.Pressed,
		JustReleased: !down && prev.Pressed,
		IsTouch:      touch,
	}
}
