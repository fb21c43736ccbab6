// Package spring 提供基于阻尼谐振子的 drag.Animator 实现
package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/caaaan/springbox/pkg/drag"
)

const (
	// RestDelta 位置与目标的距离小于该值时视为到位
	RestDelta = 0.001
	// RestSpeed 速度小于该值时视为静止
	RestSpeed = 0.01
)

// Coefficients 把刚度/阻尼/质量换算为角频率和阻尼比
func Coefficients(p drag.SpringParams) (angularFrequency, dampingRatio float64) {
	mass := p.Mass
	if mass <= 0 {
		mass = 1
	}
	if p.Stiffness <= 0 {
		return 0, 0
	}
	angularFrequency = math.Sqrt(p.Stiffness / mass)
	dampingRatio = p.Damping / (2 * math.Sqrt(p.Stiffness*mass))
	return angularFrequency, dampingRatio
}

// Animator 二维弹簧动画值
// 每个轴独立积分，共用同一组系数
type Animator struct {
	pos    drag.Vec2
	prev   drag.Vec2 // 上一次 Update 时的位置，用于估计跟随速度
	vel    drag.Vec2
	target drag.Vec2
	params drag.SpringParams

	animating bool
	spring    harmonica.Spring
	springDt  float64
}

var _ drag.Animator = (*Animator)(nil)

// NewAnimator 创建位于原点的动画值
func NewAnimator() *Animator {
	return &Animator{}
}

// Follow 跟随指针跳到 v，取消进行中的动画
// 速度在下一次 Update 时按位移估计，松手后 AnimateTo 带着这个速度出发
func (a *Animator) Follow(v drag.Vec2) {
	if a.animating {
		a.prev = a.pos
		a.vel = drag.Vec2{}
	}
	a.pos = v
	a.target = v
	a.animating = false
}

// Set 立即跳到 v，清除速度并取消进行中的动画
func (a *Animator) Set(v drag.Vec2) {
	a.pos = v
	a.prev = v
	a.vel = drag.Vec2{}
	a.target = v
	a.animating = false
}

// AnimateTo 以弹簧参数 p 向 target 运动，保留当前速度
func (a *Animator) AnimateTo(target drag.Vec2, p drag.SpringParams) {
	a.target = target
	a.params = p
	a.springDt = 0
	a.animating = true
	if p.Stiffness <= 0 {
		a.Set(target)
	}
}

// Value 返回当前位置
func (a *Animator) Value() drag.Vec2 { return a.pos }

// Velocity 返回当前速度（像素/秒）
func (a *Animator) Velocity() drag.Vec2 { return a.vel }

// Target 返回动画目标
func (a *Animator) Target() drag.Vec2 { return a.target }

// AtRest 动画是否已结束
func (a *Animator) AtRest() bool { return !a.animating }

// Update 推进 dt 秒
// 未在动画时只更新跟随速度
func (a *Animator) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if !a.animating {
		a.vel = a.pos.Sub(a.prev).Scale(1 / dt)
		a.prev = a.pos
		return
	}
	if dt != a.springDt {
		freq, ratio := Coefficients(a.params)
		a.spring = harmonica.NewSpring(dt, freq, ratio)
		a.springDt = dt
	}

	a.pos.X, a.vel.X = a.spring.Update(a.pos.X, a.vel.X, a.target.X)
	a.pos.Y, a.vel.Y = a.spring.Update(a.pos.Y, a.vel.Y, a.target.Y)
	a.prev = a.pos

	if a.pos.Sub(a.target).Len() < RestDelta && a.vel.Len() < RestSpeed {
		a.Set(a.target)
	}
}
