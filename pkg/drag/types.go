package drag

import (
	"fmt"
	"math"
	"strings"
)

// Vec2 二维偏移（像素）
type Vec2 struct {
	X, Y float64
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale 返回 v * k
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len 返回向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// State 拖拽控制器状态
type State int

const (
	// StateIdle 静止
	StateIdle State = iota
	// StateDragging 拖拽中
	StateDragging
	// StateSpringingBack 松手后正在弹回（纯视觉状态，动画静止后回到 StateIdle）
	StateSpringingBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSpringingBack:
		return "springing-back"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ReleasePolicy 松手时的行为
type ReleasePolicy int

const (
	// ReleaseSpringBack 弹回静止位置，并要求重新点击解锁
	ReleaseSpringBack ReleasePolicy = iota
	// ReleaseStayAtDrop 停在松手位置，门控不受影响
	ReleaseStayAtDrop
)

func (p ReleasePolicy) String() string {
	switch p {
	case ReleaseSpringBack:
		return "spring-back"
	case ReleaseStayAtDrop:
		return "stay-at-drop"
	default:
		return fmt.Sprintf("ReleasePolicy(%d)", int(p))
	}
}

// ParseReleasePolicy 解析配置中的松手策略名称，空字符串为 spring-back
func ParseReleasePolicy(s string) (ReleasePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spring-back", "spring":
		return ReleaseSpringBack, nil
	case "stay-at-drop", "stay":
		return ReleaseStayAtDrop, nil
	default:
		return ReleaseSpringBack, fmt.Errorf("unknown release policy %q", s)
	}
}

// SpringParams 弹簧参数
type SpringParams struct {
	Stiffness float64 // 刚度，越大回弹越有力
	Damping   float64 // 阻尼，越大振荡越少
	Elastic   float64 // 拖拽弹性 0~1，约束为零时显示偏移 = 指针偏移 * Elastic
	Mass      float64 // 质量，<=0 时视为 1
}

// DefaultSpringParams 返回默认弹簧参数
func DefaultSpringParams() SpringParams {
	return SpringParams{
		Stiffness: 600,
		Damping:   20,
		Elastic:   0.7,
		Mass:      1,
	}
}

// Session 拖拽会话快照
type Session struct {
	Active  bool
	Origin  Vec2 // 开始拖拽时元素的位置（弹回途中被抓住时为当前视觉位置）
	Current Vec2 // 相对开始拖拽时指针位置的偏移
}
