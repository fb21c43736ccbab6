// Package gate 实现点击门控：按元素记录连续点击次数，
// 连续点击达到阈值后门控打开（或翻转锁存开关）。
//
// Tracker 由页面会话创建一次，通过引用传给每个元素的控制器。
// 所有方法都应在同一个逻辑线程（Ebitengine 的 Update）中调用，内部不加锁。
package gate

import (
	"log"
	"sort"
	"time"
)

// ElementID 可拖拽元素的标识，在元素生命周期内保持不变
type ElementID string

// Store 是元素控制器看到的门控接口
type Store interface {
	RegisterClick(id ElementID, now time.Time)
	Reset(id ElementID)
	ResetAll()
	IsEnabled(id ElementID) bool
}

// Record 某个元素点击状态的快照
type Record struct {
	ID        ElementID
	Count     int
	LastClick time.Time
	Latched   bool
}

// ThresholdFunc 连续点击达到阈值时的回调
type ThresholdFunc func(id ElementID, rec Record)

// entry 单个元素的点击记录
type entry struct {
	opts      Options
	count     int
	lastClick time.Time
	latched   bool
	reset     deferredReset
}

// Tracker 点击门控跟踪器
type Tracker struct {
	clock       Clock
	defaults    Options
	entries     map[ElementID]*entry
	onThreshold ThresholdFunc
}

var _ Store = (*Tracker)(nil)

// NewTracker 创建点击门控跟踪器
//
// 参数：
//   - clock: 时间源，为 nil 时使用 SystemClock
//   - defaults: 未单独配置的元素使用的门控参数
func NewTracker(clock Clock, defaults Options) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{
		clock:    clock,
		defaults: defaults.withDefaults(DefaultOptions()),
		entries:  make(map[ElementID]*entry),
	}
}

// Clock 返回跟踪器使用的时间源
func (t *Tracker) Clock() Clock {
	return t.clock
}

// Defaults 返回默认门控参数
func (t *Tracker) Defaults() Options {
	return t.defaults
}

// OnThreshold 设置阈值回调（可为 nil）
func (t *Tracker) OnThreshold(fn ThresholdFunc) {
	t.onThreshold = fn
}

// Configure 为单个元素设置门控参数
// 已有的计数保留，但待触发的重置仍按旧窗口计算
func (t *Tracker) Configure(id ElementID, opts Options) {
	e := t.ensure(id)
	e.opts = opts.withDefaults(t.defaults)
}

// OptionsOf 返回元素生效的门控参数
func (t *Tracker) OptionsOf(id ElementID) Options {
	if e, ok := t.entries[id]; ok {
		return e.opts
	}
	return t.defaults
}

// PolicyOf 返回元素的阈值策略
func (t *Tracker) PolicyOf(id ElementID) Policy {
	return t.OptionsOf(id).Policy
}

func (t *Tracker) ensure(id ElementID) *entry {
	e, ok := t.entries[id]
	if !ok {
		e = &entry{opts: t.defaults}
		t.entries[id] = e
	}
	return e
}

// RegisterClick 记录一次点击
//
// 与上次点击间隔严格小于窗口、或当前计数为 0 时视为连续点击，计数加一；
// 否则计数从 1 重新开始。每次点击都会先取消再重新布置延迟重置。
func (t *Tracker) RegisterClick(id ElementID, now time.Time) {
	e := t.ensure(id)

	consecutive := e.count == 0 || now.Sub(e.lastClick) < e.opts.Window
	if consecutive {
		e.count++
	} else {
		e.count = 1
	}
	e.lastClick = now
	e.reset.cancel()

	if e.count >= e.opts.Threshold {
		switch e.opts.Policy {
		case PolicyToggleLatch:
			e.latched = !e.latched
			e.count = 0
			log.Printf("[Tracker] %s: latch toggled -> %v", id, e.latched)
			t.notify(id, e)
			return
		default:
			if e.count == e.opts.Threshold {
				log.Printf("[Tracker] %s: gate opened after %d clicks", id, e.count)
				t.notify(id, e)
			}
		}
	}

	e.reset.arm(now.Add(e.opts.Window))
}

func (t *Tracker) notify(id ElementID, e *entry) {
	if t.onThreshold != nil {
		t.onThreshold(id, snapshot(id, e))
	}
}

// IsEnabled 计数达到阈值时返回 true
// 未注册的元素视为计数 0
func (t *Tracker) IsEnabled(id ElementID) bool {
	e, ok := t.entries[id]
	if !ok {
		return false
	}
	return e.count >= e.opts.Threshold
}

// Count 返回元素当前的连续点击计数
func (t *Tracker) Count(id ElementID) int {
	if e, ok := t.entries[id]; ok {
		return e.count
	}
	return 0
}

// Latched 返回锁存开关状态（仅 PolicyToggleLatch 会改变它）
func (t *Tracker) Latched(id ElementID) bool {
	if e, ok := t.entries[id]; ok {
		return e.latched
	}
	return false
}

// SetLatched 直接设置锁存开关（用于恢复保存的状态）
func (t *Tracker) SetLatched(id ElementID, latched bool) {
	t.ensure(id).latched = latched
}

// Snapshot 返回元素点击状态的快照
func (t *Tracker) Snapshot(id ElementID) Record {
	if e, ok := t.entries[id]; ok {
		return snapshot(id, e)
	}
	return Record{ID: id}
}

// PendingReset 返回待触发重置的截止时间
func (t *Tracker) PendingReset(id ElementID) (time.Time, bool) {
	if e, ok := t.entries[id]; ok {
		return e.reset.pending()
	}
	return time.Time{}, false
}

// Reset 清零计数并取消待触发的重置，重复调用结果相同
func (t *Tracker) Reset(id ElementID) {
	e, ok := t.entries[id]
	if !ok {
		return
	}
	e.count = 0
	e.reset.cancel()
}

// ResetAll 清零所有元素的计数，锁存开关不受影响
func (t *Tracker) ResetAll() {
	for _, e := range t.entries {
		e.count = 0
		e.reset.cancel()
	}
	log.Printf("[Tracker] all click counts reset (%d elements)", len(t.entries))
}

// Forget 元素卸载时调用：取消待触发的重置并删除记录
func (t *Tracker) Forget(id ElementID) {
	if e, ok := t.entries[id]; ok {
		e.reset.cancel()
		delete(t.entries, id)
	}
}

// Tick 触发所有已到期的延迟重置
// 应在每帧 Update 中调用一次
func (t *Tracker) Tick(now time.Time) {
	for id, e := range t.entries {
		if e.reset.due(now) {
			e.count = 0
			e.reset.cancel()
			log.Printf("[Tracker] %s: click window expired, count reset", id)
		}
	}
}

// IDs 返回所有已跟踪元素的 ID（已排序）
func (t *Tracker) IDs() []ElementID {
	ids := make([]ElementID, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func snapshot(id ElementID, e *entry) Record {
	return Record{
		ID:        id,
		Count:     e.count,
		LastClick: e.lastClick,
		Latched:   e.latched,
	}
}
