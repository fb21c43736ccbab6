package gate

import "time"

// deferredReset 单个元素的可取消延迟重置
//
// 每个元素最多只有一个待触发的重置。arm 总是先无条件 cancel 再设置新的
// 截止时间，所以旧的截止时间永远不会在新的点击之后触发。
// 触发由 Tracker.Tick 在主循环中轮询完成，不使用 goroutine。
type deferredReset struct {
	deadline time.Time
	armed    bool
}

// arm 取消旧的重置并在 at 时刻重新布置
func (d *deferredReset) arm(at time.Time) {
	d.cancel()
	d.deadline = at
	d.armed = true
}

// cancel 取消待触发的重置（未布置时为空操作）
func (d *deferredReset) cancel() {
	d.armed = false
	d.deadline = time.Time{}
}

// due 判断在 now 时刻重置是否已到期
func (d *deferredReset) due(now time.Time) bool {
	return d.armed && !now.Before(d.deadline)
}

// pending 返回截止时间以及是否处于布置状态
func (d *deferredReset) pending() (time.Time, bool) {
	return d.deadline, d.armed
}
