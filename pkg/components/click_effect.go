package components

// ClickEffectDuration 点击闪烁持续时间（秒）
const ClickEffectDuration = 0.3

// ClickEffectComponent 点击反馈闪烁
// 每次计入门控的点击都会重新开始计时
type ClickEffectComponent struct {
	// Remaining 剩余时间（秒），0 表示无效果
	Remaining float64
}

// Trigger 重新开始闪烁
func (c *ClickEffectComponent) Trigger() {
	c.Remaining = ClickEffectDuration
}

// Intensity 当前强度（1.0 = 刚点击，0.0 = 结束）
func (c *ClickEffectComponent) Intensity() float64 {
	if c.Remaining <= 0 {
		return 0
	}
	return c.Remaining / ClickEffectDuration
}
