package components

// PositionComponent 元素布局格子的左上角（屏幕坐标，像素）
// 拖拽偏移叠加在 Cell 之上，由 DraggableComponent 的控制器提供
type PositionComponent struct {
	X, Y float64
}
