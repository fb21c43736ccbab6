package gate

import (
	"fmt"
	"strings"
	"time"
)

// Policy 决定连续点击达到阈值时发生什么
type Policy int

const (
	// PolicyUnlockUntilDrag 达到阈值后门控保持打开，直到拖拽结束或窗口超时
	PolicyUnlockUntilDrag Policy = iota
	// PolicyToggleLatch 达到阈值时翻转锁存开关，计数清零
	PolicyToggleLatch
)

const (
	// DefaultThreshold 打开门控需要的连续点击次数
	DefaultThreshold = 5
	// DefaultWindow 两次点击之间被视为连续的最大间隔
	DefaultWindow = 2000 * time.Millisecond
)

// String 返回策略在配置文件中的名称
func (p Policy) String() string {
	switch p {
	case PolicyUnlockUntilDrag:
		return "unlock"
	case PolicyToggleLatch:
		return "toggle"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy 解析配置文件中的策略名称
// 空字符串返回默认策略 PolicyUnlockUntilDrag
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unlock", "unlock-until-drag":
		return PolicyUnlockUntilDrag, nil
	case "toggle", "toggle-latch":
		return PolicyToggleLatch, nil
	default:
		return PolicyUnlockUntilDrag, fmt.Errorf("unknown gate policy %q", s)
	}
}

// Options 单个元素的门控参数
type Options struct {
	Threshold int           // 连续点击阈值，<=0 时使用默认值
	Window    time.Duration // 连续点击窗口，<=0 时使用默认值
	Policy    Policy
}

// DefaultOptions 返回默认门控参数（5 次点击，2 秒窗口，解锁直到拖拽）
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Window:    DefaultWindow,
		Policy:    PolicyUnlockUntilDrag,
	}
}

// withDefaults 用 base 填充未设置的字段
func (o Options) withDefaults(base Options) Options {
	if o.Threshold <= 0 {
		o.Threshold = base.Threshold
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Window <= 0 {
		o.Window = base.Window
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	return o
}
