// Package drag 实现单个元素的拖拽会话状态机
//
// 控制器读取点击门控（或全局强制开关）决定是否接受拖拽，
// 松手时按策略弹回原位或停在松手处。视觉位置由外部 Animator 驱动。
package drag

import (
	"log"
	"time"

	"github.com/caaaan/springbox/pkg/gate"
)

// Gate 控制器依赖的门控能力，*gate.Tracker 实现了该接口
type Gate interface {
	gate.Store
	Latched(id gate.ElementID) bool
	Forget(id gate.ElementID)
}

// Options 控制器参数
type Options struct {
	Gate    gate.Policy   // 达到阈值时的行为
	Release ReleasePolicy // 解锁策略下的松手行为
	Spring  SpringParams
}

// Controller 单个元素的拖拽控制器
type Controller struct {
	id       gate.ElementID
	gate     Gate
	override Override
	animator Animator
	opts     Options

	state         State
	session       Session
	pointerOrigin Vec2
	dragBase      Vec2 // 本次拖拽开始时元素的视觉位置
	rest          Vec2
	closed        bool

	onRelease func(id gate.ElementID, offset Vec2, policy ReleasePolicy)
}

// NewController 创建拖拽控制器
//
// 参数：
//   - id: 元素标识
//   - g: 会话共享的门控
//   - override: 全局强制开关，可为 nil
//   - animator: 视觉位置驱动器
//   - opts: 控制器参数
func NewController(id gate.ElementID, g Gate, override Override, animator Animator, opts Options) *Controller {
	if opts.Spring.Mass <= 0 {
		opts.Spring.Mass = 1
	}
	c := &Controller{
		id:       id,
		gate:     g,
		override: override,
		animator: animator,
		opts:     opts,
		state:    StateIdle,
	}
	animator.Set(Vec2{})
	return c
}

// OnRelease 设置松手回调（可为 nil）
func (c *Controller) OnRelease(fn func(id gate.ElementID, offset Vec2, policy ReleasePolicy)) {
	c.onRelease = fn
}

// ID 返回元素标识
func (c *Controller) ID() gate.ElementID { return c.id }

// Options 返回控制器参数
func (c *Controller) Options() Options { return c.opts }

// State 返回当前状态
func (c *Controller) State() State { return c.state }

// Session 返回当前拖拽会话快照
func (c *Controller) Session() Session { return c.session }

// Offset 返回本次拖拽相对起点的偏移，未拖拽时为零
func (c *Controller) Offset() Vec2 {
	if !c.session.Active {
		return Vec2{}
	}
	return c.session.Current
}

// Position 返回元素当前的视觉位置
func (c *Controller) Position() Vec2 { return c.animator.Value() }

// Rest 返回元素的静止位置
func (c *Controller) Rest() Vec2 { return c.rest }

// SetRest 恢复保存的静止位置（拖拽中调用无效）
func (c *Controller) SetRest(v Vec2) {
	if c.state == StateDragging {
		return
	}
	c.rest = v
	c.animator.Set(v)
	c.state = StateIdle
}

// Closed 控制器是否已卸载
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) overrideOn() bool {
	return c.override != nil && c.override.Enabled()
}

// Enabled 门控是否打开（解锁策略）或锁存开关是否打开（锁存策略）
func (c *Controller) Enabled() bool {
	if c.opts.Gate == gate.PolicyToggleLatch {
		return c.gate.Latched(c.id)
	}
	return c.gate.IsEnabled(c.id) || c.overrideOn()
}

// CanDrag 当前是否允许开始拖拽
// 锁存策略下总是可拖拽，锁存开关只决定松手行为
func (c *Controller) CanDrag() bool {
	if c.closed {
		return false
	}
	if c.opts.Gate == gate.PolicyToggleLatch {
		return true
	}
	return c.gate.IsEnabled(c.id) || c.overrideOn()
}

// ReleasePolicy 返回下一次松手将采用的策略
func (c *Controller) ReleasePolicy() ReleasePolicy {
	if c.opts.Gate == gate.PolicyToggleLatch {
		if c.gate.Latched(c.id) {
			return ReleaseSpringBack
		}
		return ReleaseStayAtDrop
	}
	return c.opts.Release
}

// Click 处理一次点击
//
// 全局强制开关打开时（解锁策略）点击不计数；拖拽进行中的点击被忽略。
// 返回点击是否被计入门控。
func (c *Controller) Click(now time.Time) bool {
	if c.closed || c.state == StateDragging {
		return false
	}
	if c.opts.Gate == gate.PolicyUnlockUntilDrag && c.overrideOn() {
		return false
	}
	c.gate.RegisterClick(c.id, now)
	return true
}

// BeginDrag 在指针位置 pointer 开始拖拽
// 门控未打开且强制开关关闭时返回 false，状态不变。
// 弹回途中被抓住时从当前视觉位置继续拖拽。
func (c *Controller) BeginDrag(pointer Vec2) bool {
	if c.state == StateDragging || !c.CanDrag() {
		return false
	}
	c.dragBase = c.rest
	if c.state == StateSpringingBack {
		c.dragBase = c.animator.Value()
	}
	c.pointerOrigin = pointer
	c.session = Session{
		Active: true,
		Origin: c.dragBase,
	}
	c.state = StateDragging
	c.animator.Follow(c.dragBase)
	log.Printf("[Drag] %s: drag started (override=%v)", c.id, c.overrideOn())
	return true
}

// Move 更新指针位置
// 偏移总是从起点重新计算，重复调用同一位置结果不变
func (c *Controller) Move(pointer Vec2) {
	if c.state != StateDragging {
		return
	}
	c.session.Current = pointer.Sub(c.pointerOrigin)
	c.animator.Follow(c.displayed(c.session.Current))
}

// displayed 拖拽中的视觉位置
// 弹回策略相当于零约束拖拽，偏移按弹性系数缩放
func (c *Controller) displayed(offset Vec2) Vec2 {
	if c.ReleasePolicy() == ReleaseSpringBack && c.opts.Spring.Elastic > 0 {
		offset = offset.Scale(c.opts.Spring.Elastic)
	}
	return c.dragBase.Add(offset)
}

// EndDrag 松手
// 弹回策略回到原点 (0,0)，之前停留的位置被丢弃；停留策略停在松手处
func (c *Controller) EndDrag() {
	if c.state != StateDragging {
		return
	}
	offset := c.session.Current
	policy := c.ReleasePolicy()
	c.session = Session{}

	switch policy {
	case ReleaseStayAtDrop:
		c.rest = c.dragBase.Add(offset)
		c.animator.Set(c.rest)
		c.state = StateIdle
	default:
		c.rest = Vec2{}
		c.animator.AnimateTo(c.rest, c.opts.Spring)
		c.state = StateSpringingBack
		if c.opts.Gate == gate.PolicyUnlockUntilDrag && !c.overrideOn() {
			c.gate.Reset(c.id)
		}
	}

	log.Printf("[Drag] %s: released at (%.1f, %.1f), %s", c.id, offset.X, offset.Y, policy)
	if c.onRelease != nil {
		c.onRelease(c.id, offset, policy)
	}
}

// Cancel 中止拖拽（按正常松手处理）
func (c *Controller) Cancel() {
	c.EndDrag()
}

// Update 推进动画，弹回静止后回到 StateIdle
func (c *Controller) Update(dt float64) {
	c.animator.Update(dt)
	if c.state == StateSpringingBack && c.animator.AtRest() {
		c.state = StateIdle
	}
}

// Close 卸载元素：结束拖拽（不产生副作用）并释放门控记录
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.session = Session{}
	c.state = StateIdle
	c.gate.Forget(c.id)
	c.closed = true
}
