package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/embedded"
	"github.com/caaaan/springbox/pkg/gate"
)

// DefaultDemoConfigPath 嵌入的默认演示配置
const DefaultDemoConfigPath = "data/demo.yaml"

// 窗口默认尺寸
const (
	GameWindowWidth  = 1024
	GameWindowHeight = 720
)

// 元素默认值（与网页版 ClickableDraggable 的默认属性一致）
const (
	DefaultElementSize   = 150.0
	DefaultStiffness     = 600.0
	DefaultDamping       = 20.0
	DefaultElastic       = 0.7
	DefaultDragThreshold = 3.0
	DefaultLabel         = "Click 5x to Enable"
	DefaultForceLabel    = "Drag Me"
	DefaultActiveLabel   = "Spring Back Enabled"
	DefaultColor         = "rgb(99, 102, 241)"
	DefaultActiveColor   = "rgb(34, 197, 94)"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid demo config")

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// GateConfig 默认门控参数
type GateConfig struct {
	Threshold int    `yaml:"threshold"`
	WindowMS  int    `yaml:"window_ms"`
	Policy    string `yaml:"policy"`
}

// LayoutConfig 元素网格布局
type LayoutConfig struct {
	Columns    int     `yaml:"columns"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Gap        float64 `yaml:"gap"`
	Top        float64 `yaml:"top"`
}

// ToggleConfig 强制拖拽开关的位置和文字
type ToggleConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Label   string  `yaml:"label"`
	HintOn  string  `yaml:"hint_on"`
	HintOff string  `yaml:"hint_off"`
}

// ElementConfig 单个可拖拽元素
type ElementConfig struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Label       string  `yaml:"label"`
	ForceLabel  string  `yaml:"force_label"`
	ActiveLabel string  `yaml:"active_label"`
	Color       string  `yaml:"color"`
	ActiveColor string  `yaml:"active_color"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Stiffness   float64 `yaml:"stiffness"`
	Damping     float64 `yaml:"damping"`
	Elastic     float64 `yaml:"elastic"`
	Release     string  `yaml:"release"`
	Policy      string  `yaml:"policy"`
	Threshold   int     `yaml:"threshold"`
	WindowMS    int     `yaml:"window_ms"`

	// 以下字段由 Normalize 解析得到
	GatePolicy    gate.Policy        `yaml:"-"`
	ReleasePolicy drag.ReleasePolicy `yaml:"-"`
	Fill          color.RGBA         `yaml:"-"`
	ActiveFill    color.RGBA         `yaml:"-"`
}

// DemoConfig 演示页面完整配置
type DemoConfig struct {
	Window        WindowConfig    `yaml:"window"`
	Gate          GateConfig      `yaml:"gate"`
	DragThreshold float64         `yaml:"drag_threshold"`
	Layout        LayoutConfig    `yaml:"layout"`
	Toggle        ToggleConfig    `yaml:"toggle"`
	Instructions  []string        `yaml:"instructions"`
	Elements      []ElementConfig `yaml:"elements"`

	GatePolicy gate.Policy `yaml:"-"`
}

// LoadDemoConfig 从磁盘读取配置文件
func LoadDemoConfig(path string) (*DemoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demo config %s: %w", path, err)
	}
	return ParseDemoConfig(data)
}

// LoadEmbeddedDemoConfig 从嵌入资源读取默认配置
func LoadEmbeddedDemoConfig() (*DemoConfig, error) {
	data, err := embedded.ReadFile(DefaultDemoConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded demo config: %w", err)
	}
	return ParseDemoConfig(data)
}

// ParseDemoConfig 解析 YAML 并填充默认值、校验
func ParseDemoConfig(data []byte) (*DemoConfig, error) {
	var cfg DemoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse demo config YAML: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize 填充默认值并解析策略与颜色
func (c *DemoConfig) Normalize() error {
	if c.Window.Width <= 0 {
		c.Window.Width = GameWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = GameWindowHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = "Spring-Back Draggable Elements"
	}
	if c.Gate.Threshold <= 0 {
		c.Gate.Threshold = gate.DefaultThreshold
	}
	if c.Gate.WindowMS <= 0 {
		c.Gate.WindowMS = int(gate.DefaultWindow / time.Millisecond)
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = DefaultDragThreshold
	}
	if c.Layout.Columns <= 0 {
		c.Layout.Columns = 4
	}
	if c.Layout.CellWidth <= 0 {
		c.Layout.CellWidth = 192
	}
	if c.Layout.CellHeight <= 0 {
		c.Layout.CellHeight = 192
	}
	if c.Layout.Gap < 0 {
		c.Layout.Gap = 0
	}
	if c.Toggle.Label == "" {
		c.Toggle.Label = "Force Draggable"
	}

	policy, err := gate.ParsePolicy(c.Gate.Policy)
	if err != nil {
		return fmt.Errorf("%w: gate: %v", ErrInvalidConfig, err)
	}
	c.GatePolicy = policy

	if len(c.Elements) == 0 {
		return fmt.Errorf("%w: at least one element is required", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Elements))
	for i := range c.Elements {
		el := &c.Elements[i]
		if strings.TrimSpace(el.ID) == "" {
			return fmt.Errorf("%w: element %d: id is required", ErrInvalidConfig, i)
		}
		if seen[el.ID] {
			return fmt.Errorf("%w: duplicate element id %q", ErrInvalidConfig, el.ID)
		}
		seen[el.ID] = true

		if err := el.normalize(c); err != nil {
			return fmt.Errorf("%w: element %s: %v", ErrInvalidConfig, el.ID, err)
		}
	}
	return nil
}

func (el *ElementConfig) normalize(c *DemoConfig) error {
	if el.Title == "" {
		el.Title = el.ID
	}
	if el.Label == "" {
		el.Label = DefaultLabel
	}
	if el.ForceLabel == "" {
		el.ForceLabel = DefaultForceLabel
	}
	if el.ActiveLabel == "" {
		el.ActiveLabel = DefaultActiveLabel
	}
	if el.Color == "" {
		el.Color = DefaultColor
	}
	if el.ActiveColor == "" {
		el.ActiveColor = DefaultActiveColor
	}
	if el.Width == 0 {
		el.Width = DefaultElementSize
	}
	if el.Height == 0 {
		el.Height = DefaultElementSize
	}
	if el.Stiffness == 0 {
		el.Stiffness = DefaultStiffness
	}
	if el.Damping == 0 {
		el.Damping = DefaultDamping
	}
	if el.Elastic == 0 {
		el.Elastic = DefaultElastic
	}
	if el.Threshold <= 0 {
		el.Threshold = c.Gate.Threshold
	}
	if el.WindowMS <= 0 {
		el.WindowMS = c.Gate.WindowMS
	}

	if el.Width < 0 || el.Height < 0 {
		return fmt.Errorf("size must be positive, got %vx%v", el.Width, el.Height)
	}
	if el.Stiffness < 0 || el.Damping < 0 {
		return fmt.Errorf("stiffness and damping must be positive, got %v/%v", el.Stiffness, el.Damping)
	}
	if el.Elastic < 0 || el.Elastic > 1 {
		return fmt.Errorf("elastic must be in [0, 1], got %v", el.Elastic)
	}

	policy := c.GatePolicy
	if el.Policy != "" {
		p, err := gate.ParsePolicy(el.Policy)
		if err != nil {
			return err
		}
		policy = p
	}
	el.GatePolicy = policy

	release, err := drag.ParseReleasePolicy(el.Release)
	if err != nil {
		return err
	}
	el.ReleasePolicy = release

	if el.Fill, err = ParseColor(el.Color); err != nil {
		return err
	}
	if el.ActiveFill, err = ParseColor(el.ActiveColor); err != nil {
		return err
	}
	return nil
}

// GateOptions 返回元素的门控参数
func (el *ElementConfig) GateOptions() gate.Options {
	return gate.Options{
		Threshold: el.Threshold,
		Window:    time.Duration(el.WindowMS) * time.Millisecond,
		Policy:    el.GatePolicy,
	}
}

// DragOptions 返回元素的拖拽控制器参数
func (el *ElementConfig) DragOptions() drag.Options {
	return drag.Options{
		Gate:    el.GatePolicy,
		Release: el.ReleasePolicy,
		Spring: drag.SpringParams{
			Stiffness: el.Stiffness,
			Damping:   el.Damping,
			Elastic:   el.Elastic,
			Mass:      1,
		},
	}
}

// GateOptions 返回默认门控参数
func (c *DemoConfig) GateOptions() gate.Options {
	return gate.Options{
		Threshold: c.Gate.Threshold,
		Window:    time.Duration(c.Gate.WindowMS) * time.Millisecond,
		Policy:    c.GatePolicy,
	}
}

// CellOrigin 返回第 index 个元素所在格子的左上角坐标
// 每行居中排列
func (c *DemoConfig) CellOrigin(index int) (float64, float64) {
	cols := c.Layout.Columns
	row, col := index/cols, index%cols

	inRow := cols
	if remaining := len(c.Elements) - row*cols; remaining < cols {
		inRow = remaining
	}
	rowWidth := float64(inRow)*c.Layout.CellWidth + float64(inRow-1)*c.Layout.Gap
	startX := (float64(c.Window.Width) - rowWidth) / 2

	x := startX + float64(col)*(c.Layout.CellWidth+c.Layout.Gap)
	y := c.Layout.Top + float64(row)*(c.Layout.CellHeight+c.Layout.Gap)
	return x, y
}

// ParseColor 解析 "rgb(r, g, b)" 或 "#rrggbb" 格式的颜色
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("bad rgb color %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return color.RGBA{}, fmt.Errorf("bad rgb component %q in %q", p, s)
			}
			rgb[i] = uint8(n)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("unsupported color format %q", s)
}
