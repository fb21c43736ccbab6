package drag

// Animator 负责把元素的视觉位置驱动到目标值
type Animator interface {
	// Follow 立即把值设为 v（跟随指针），速度由相邻帧的位移估计
	Follow(v Vec2)
	// AnimateTo 以弹簧参数向 target 运动，保留当前速度
	AnimateTo(target Vec2, p SpringParams)
	// Set 立即把值设为 v，不产生动画
	Set(v Vec2)
	// Value 返回当前值
	Value() Vec2
	// Update 推进 dt 秒
	Update(dt float64)
	// AtRest 动画是否已静止
	AtRest() bool
}

// Override 全局强制拖拽开关
type Override interface {
	Enabled() bool
}

// OverrideFunc 把函数适配为 Override
type OverrideFunc func() bool

// Enabled 返回开关状态
func (f OverrideFunc) Enabled() bool { return f() }
