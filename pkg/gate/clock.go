package gate

import (
	"sync"
	"time"
)

// Clock 提供当前时间
// 点击窗口判定和延迟重置都通过 Clock 取时间，测试时可替换为 ManualClock
type Clock interface {
	Now() time.Time
}

// SystemClock 使用带单调时钟读数的系统时间
type SystemClock struct{}

// Now 返回当前时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 可手动推进的时钟
// 用于测试和输入回放，零值从 Unix 0 开始
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock 创建一个从指定时间开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now 返回当前模拟时间
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set 设置当前模拟时间
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance 将模拟时间向前推进 d
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}
