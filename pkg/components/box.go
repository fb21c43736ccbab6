package components

import "image/color"

// BoxComponent 可拖拽方块的外观和可点击区域
type BoxComponent struct {
	Width  float64
	Height float64

	// CellWidth/CellHeight 布局格子尺寸，方块在格子内居中
	CellWidth  float64
	CellHeight float64

	Title      string // 格子上方的标题
	Label      string // 方块内文字（需要点击解锁时）
	ForceLabel string // 强制拖拽开启时的文字
	// ActiveLabel 锁存元素打开时的文字
	ActiveLabel string

	Fill       color.RGBA // 默认填充色
	ActiveFill color.RGBA // 锁存打开时的填充色
}

// Origin 方块左上角相对格子原点的偏移
func (b *BoxComponent) Origin() (float64, float64) {
	return (b.CellWidth - b.Width) / 2, (b.CellHeight - b.Height) / 2
}

// Contains 判断点 (px, py) 是否落在位于 (x, y) 的方块内
func (b *BoxComponent) Contains(x, y, px, py float64) bool {
	return px >= x && px <= x+b.Width && py >= y && py <= y+b.Height
}
