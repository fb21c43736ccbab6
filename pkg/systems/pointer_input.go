package systems

import "github.com/caaaan/springbox/pkg/utils"

// PointerInput 指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	// Pointer 返回本帧的指针状态
	Pointer() utils.PointerState
}

// EbitenPointerInput Ebitengine 默认实现（鼠标 + 触摸）
// Poll 必须在每帧开始时调用一次，随后各系统读取同一份状态
type EbitenPointerInput struct {
	tracker *utils.PointerTracker
}

// NewEbitenPointerInput 创建默认指针输入
func NewEbitenPointerInput() *EbitenPointerInput {
	return &EbitenPointerInput{tracker: utils.NewPointerTracker()}
}

// Poll 采样本帧输入
func (e *EbitenPointerInput) Poll() {
	e.tracker.Update()
}

// Pointer 返回最近一次 Poll 的结果
func (e *EbitenPointerInput) Pointer() utils.PointerState {
	return e.tracker.State()
}
