package game

import (
	"log"

	"github.com/caaaan/springbox/pkg/gate"
)

// Override 全局强制拖拽开关
// 打开时所有解锁策略的元素无需点击即可拖拽；关闭时清零所有点击计数
type Override struct {
	enabled  bool
	tracker  *gate.Tracker
	settings *SettingsManager
	onChange []func(enabled bool)
}

func newOverride(tracker *gate.Tracker, settings *SettingsManager, enabled bool) *Override {
	return &Override{
		enabled:  enabled,
		tracker:  tracker,
		settings: settings,
	}
}

// Enabled 返回开关状态，实现 drag.Override
func (o *Override) Enabled() bool {
	return o.enabled
}

// Set 设置开关状态
// 从打开切换到关闭时调用 ResetAll，要求重新点击解锁
func (o *Override) Set(enabled bool) {
	if o.enabled == enabled {
		return
	}
	wasEnabled := o.enabled
	o.enabled = enabled

	if wasEnabled && !enabled {
		o.tracker.ResetAll()
	}
	if o.settings != nil {
		o.settings.SetForceDraggable(enabled)
	}

	log.Printf("[Override] Force Draggable: %v", enabled)
	for _, fn := range o.onChange {
		fn(enabled)
	}
}

// Toggle 切换开关并返回新状态
func (o *Override) Toggle() bool {
	o.Set(!o.enabled)
	return o.enabled
}

// OnChange 注册状态变化回调
func (o *Override) OnChange(fn func(enabled bool)) {
	o.onChange = append(o.onChange, fn)
}
