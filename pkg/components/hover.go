package components

// HoverComponent 鼠标悬停状态
type HoverComponent struct {
	IsHovered bool
	// Pressed 指针在该元素上按下且尚未松开
	Pressed bool
}
