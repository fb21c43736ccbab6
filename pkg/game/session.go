package game

import (
	"log"
	"time"

	"github.com/caaaan/springbox/pkg/gate"
)

// ErrSessionClosed 在会话生命周期之外访问会话状态时 panic 的信息
// 这表示初始化顺序错误，不是可以恢复的运行时情况
const ErrSessionClosed = "game: session accessed outside its lifecycle (call OpenSession first)"

// Session 页面会话
//
// 每次启动创建一次，通过引用交给每个元素控制器。
// 持有点击门控、全局强制开关、设置和音频。
type Session struct {
	tracker  *gate.Tracker
	override *Override
	settings *SettingsManager
	audio    *AudioManager
	open     bool
}

// OpenSession 创建并打开会话
//
// 参数：
//   - clock: 门控使用的时间源，为 nil 时使用系统时间
//   - defaults: 默认门控参数
//   - settings: 设置管理器，为 nil 时使用内存设置
func OpenSession(clock gate.Clock, defaults gate.Options, settings *SettingsManager) *Session {
	if settings == nil {
		settings = NewSettingsManager(nil)
	}
	tracker := gate.NewTracker(clock, defaults)
	s := &Session{
		tracker:  tracker,
		settings: settings,
		open:     true,
	}
	s.override = newOverride(tracker, settings, settings.GetSettings().ForceDraggable)
	log.Printf("[Session] opened (threshold=%d, window=%v, force=%v)",
		tracker.Defaults().Threshold, tracker.Defaults().Window, s.override.Enabled())
	return s
}

func (s *Session) mustOpen() {
	if s == nil || !s.open {
		panic(ErrSessionClosed)
	}
}

// IsOpen 会话是否处于打开状态
func (s *Session) IsOpen() bool {
	return s != nil && s.open
}

// Gate 返回会话共享的点击门控
func (s *Session) Gate() *gate.Tracker {
	s.mustOpen()
	return s.tracker
}

// Override 返回全局强制拖拽开关
func (s *Session) Override() *Override {
	s.mustOpen()
	return s.override
}

// Settings 返回设置管理器
func (s *Session) Settings() *SettingsManager {
	s.mustOpen()
	return s.settings
}

// Audio 返回音频管理器（可能为 nil）
func (s *Session) Audio() *AudioManager {
	s.mustOpen()
	return s.audio
}

// SetAudio 设置音频管理器
func (s *Session) SetAudio(am *AudioManager) {
	s.mustOpen()
	s.audio = am
}

// Now 返回门控时钟的当前时间
func (s *Session) Now() time.Time {
	s.mustOpen()
	return s.tracker.Clock().Now()
}

// Tick 触发门控中到期的延迟重置
func (s *Session) Tick() {
	s.mustOpen()
	s.tracker.Tick(s.tracker.Clock().Now())
}

// Close 关闭会话：清除所有计数和待触发的重置
// 之后任何访问都会 panic
func (s *Session) Close() {
	if s == nil || !s.open {
		return
	}
	for _, id := range s.tracker.IDs() {
		s.tracker.Forget(id)
	}
	s.open = false
	log.Printf("[Session] closed")
}
