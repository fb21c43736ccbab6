package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Point 保存的元素静止位置
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DemoSettings 演示页面的持久化设置
type DemoSettings struct {
	ForceDraggable bool    `yaml:"forceDraggable"` // 强制拖拽开关
	SoundEnabled   bool    `yaml:"soundEnabled"`   // 音效开关
	SoundVolume    float64 `yaml:"soundVolume"`    // 音效音量 0.0 ~ 1.0

	// Positions 停留策略元素的静止位置（元素ID -> 偏移）
	Positions map[string]Point `yaml:"positions,omitempty"`
	// Latches 锁存策略元素的开关状态
	Latches map[string]bool `yaml:"latches,omitempty"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DemoSettings {
	return &DemoSettings{
		ForceDraggable: false,
		SoundEnabled:   true,
		SoundVolume:    0.6,
		Positions:      make(map[string]Point),
		Latches:        make(map[string]bool),
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DemoSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，会记录日志并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil 和错误，调用方可以退回降级模式
func OpenStorage(appName string) (*gdata.Manager, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage %q: %w", appName, err)
	}
	return manager, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Positions == nil {
		loaded.Positions = make(map[string]Point)
	}
	if loaded.Latches == nil {
		loaded.Latches = make(map[string]bool)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 是否有可用的持久化存储
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DemoSettings {
	return sm.settings
}

// SetForceDraggable 设置强制拖拽开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetForceDraggable(enabled bool) {
	sm.settings.ForceDraggable = enabled
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetPosition 记录元素的静止位置
func (sm *SettingsManager) SetPosition(id string, x, y float64) {
	sm.settings.Positions[id] = Point{X: x, Y: y}
}

// ClearPosition 删除元素保存的静止位置
func (sm *SettingsManager) ClearPosition(id string) {
	delete(sm.settings.Positions, id)
}

// Position 返回元素保存的静止位置
func (sm *SettingsManager) Position(id string) (Point, bool) {
	p, ok := sm.settings.Positions[id]
	return p, ok
}

// SetLatched 记录锁存元素的开关状态
func (sm *SettingsManager) SetLatched(id string, latched bool) {
	if !latched {
		delete(sm.settings.Latches, id)
		return
	}
	sm.settings.Latches[id] = true
}

// Latched 返回锁存元素保存的开关状态
func (sm *SettingsManager) Latched(id string) bool {
	return sm.settings.Latches[id]
}

// ClearLayout 清除所有保存的位置和锁存状态
func (sm *SettingsManager) ClearLayout() {
	sm.settings.Positions = make(map[string]Point)
	sm.settings.Latches = make(map[string]bool)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
