package systems

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/caaaan/springbox/pkg/components"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/ecs"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
	"github.com/caaaan/springbox/pkg/utils"
)

// 渲染常量
const (
	DragScale         = 1.05 // 拖拽时方块放大倍数
	PressScale        = 0.98 // 按下时方块缩小倍数
	IndicatorRadius   = 4.0
	IndicatorPeriod   = 2.0 // 指示点脉冲周期（秒）
	scaleApproachRate = 12.0
)

var (
	backgroundColor = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	panelColor      = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	trackOffColor   = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	trackOnColor    = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	enabledDot      = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	disabledDot     = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	hintColor       = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	shadowColor     = color.RGBA{A: 60}
)

// RenderOptions 渲染系统的页面文字
type RenderOptions struct {
	Title        string
	Instructions []string
	ScreenWidth  float64
	PanelTop     float64
}

// RenderSystem 绘制演示页面：说明面板、强制拖拽开关和所有方块
type RenderSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session
	opts          RenderOptions

	titleFace *text.GoTextFace
	labelFace *text.GoTextFace
	smallFace *text.GoTextFace

	elapsed float64
	scales  map[ecs.EntityID]float64
}

// NewRenderSystem 创建渲染系统
// 字体加载失败时退回 ebitenutil 调试字体
func NewRenderSystem(em *ecs.EntityManager, session *game.Session, opts RenderOptions) *RenderSystem {
	rs := &RenderSystem{
		entityManager: em,
		session:       session,
		opts:          opts,
		scales:        make(map[ecs.EntityID]float64),
	}

	var err error
	if rs.titleFace, err = utils.LoadDefaultFace(22); err != nil {
		log.Printf("[RenderSystem] Warning: %v (using debug font)", err)
		return rs
	}
	rs.labelFace, _ = utils.LoadDefaultFace(15)
	rs.smallFace, _ = utils.LoadDefaultFace(12)
	return rs
}

// LabelFace 返回标签字体（可能为 nil）
func (rs *RenderSystem) LabelFace() *text.GoTextFace {
	return rs.labelFace
}

// Update 推进动画时钟和缩放过渡
func (rs *RenderSystem) Update(deltaTime float64) {
	rs.elapsed += deltaTime

	k := utils.Clamp01(deltaTime * scaleApproachRate)
	for _, id := range ecs.GetEntitiesWith1[*components.BoxComponent](rs.entityManager) {
		target := targetScale(rs.entityManager, id)
		current, ok := rs.scales[id]
		if !ok {
			current = 1
		}
		rs.scales[id] = utils.Lerp(current, target, k)
	}
}

// Scale 返回实体当前的显示缩放
func (rs *RenderSystem) Scale(id ecs.EntityID) float64 {
	if s, ok := rs.scales[id]; ok {
		return s
	}
	return 1
}

func targetScale(em *ecs.EntityManager, id ecs.EntityID) float64 {
	if c := controllerOf(em, id); c != nil && c.State() == drag.StateDragging {
		return DragScale
	}
	if hover, ok := ecs.GetComponent[*components.HoverComponent](em, id); ok && hover.Pressed {
		return PressScale
	}
	return 1
}

// Draw 绘制整个页面
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	rs.drawHeader(screen)
	rs.drawToggles(screen)

	for _, id := range drawOrder(rs.entityManager) {
		rs.drawTitle(screen, id)
	}
	for _, id := range drawOrder(rs.entityManager) {
		rs.drawBox(screen, id)
	}
}

func (rs *RenderSystem) drawHeader(screen *ebiten.Image) {
	cx := rs.opts.ScreenWidth / 2
	utils.DrawCenteredText(screen, []string{rs.opts.Title}, rs.titleFace, cx, 28, color.White)

	if len(rs.opts.Instructions) == 0 {
		return
	}
	const lineHeight = 18.0
	panelW := 560.0
	panelH := 34 + lineHeight*float64(len(rs.opts.Instructions))
	panelX := cx - panelW/2
	vector.DrawFilledRect(screen, float32(panelX), float32(rs.opts.PanelTop), float32(panelW), float32(panelH), panelColor, true)

	y := rs.opts.PanelTop + 8
	utils.DrawText(screen, "Instructions:", rs.labelFace, panelX+16, y, color.White)
	for i, line := range rs.opts.Instructions {
		utils.DrawText(screen, "• "+line, rs.smallFace, panelX+24, y+22+lineHeight*float64(i), color.White)
	}
}

func (rs *RenderSystem) drawToggles(screen *ebiten.Image) {
	on := rs.session.Override().Enabled()
	for _, id := range ecs.GetEntitiesWith2[*components.ToggleComponent, *components.PositionComponent](rs.entityManager) {
		toggle, _ := ecs.GetComponent[*components.ToggleComponent](rs.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, id)

		utils.DrawText(screen, ToggleLabel(toggle.Label, on), rs.labelFace, pos.X, pos.Y+5, color.White)

		trackX := float32(pos.X + toggle.TrackX)
		trackY := float32(pos.Y)
		trackColor := trackOffColor
		if on {
			trackColor = trackOnColor
		}
		r := float32(components.ToggleTrackHeight / 2)
		w := float32(components.ToggleTrackWidth)
		vector.DrawFilledRect(screen, trackX+r, trackY, w-2*r, 2*r, trackColor, true)
		vector.DrawFilledCircle(screen, trackX+r, trackY+r, r, trackColor, true)
		vector.DrawFilledCircle(screen, trackX+w-r, trackY+r, r, trackColor, true)

		knobR := float32(components.ToggleKnobSize / 2)
		knobX := trackX + 4 + knobR + float32(toggle.Knob.Value().X)
		vector.DrawFilledCircle(screen, knobX, trackY+r+1, knobR, shadowColor, true)
		vector.DrawFilledCircle(screen, knobX, trackY+r, knobR, color.White, true)

		hint := toggle.HintOff
		if on {
			hint = toggle.HintOn
		}
		utils.DrawCenteredText(screen, []string{hint}, rs.smallFace, rs.opts.ScreenWidth/2, pos.Y+toggle.Height+14, hintColor)
	}
}

func (rs *RenderSystem) drawTitle(screen *ebiten.Image, id ecs.EntityID) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, id)
	box, _ := ecs.GetComponent[*components.BoxComponent](rs.entityManager, id)
	utils.DrawCenteredText(screen, []string{box.Title}, rs.labelFace, pos.X+box.CellWidth/2, pos.Y-6, color.White)
}

func (rs *RenderSystem) drawBox(screen *ebiten.Image, id ecs.EntityID) {
	x, y, box, ok := boxRect(rs.entityManager, id)
	if !ok {
		return
	}
	ctrl := controllerOf(rs.entityManager, id)
	override := rs.session.Override().Enabled()

	// 以中心缩放
	s := rs.Scale(id)
	w, h := box.Width*s, box.Height*s
	x -= (w - box.Width) / 2
	y -= (h - box.Height) / 2

	shadow := 4.0
	if ctrl != nil && ctrl.State() == drag.StateDragging {
		shadow = 10
	}
	vector.DrawFilledRect(screen, float32(x), float32(y+shadow), float32(w), float32(h), shadowColor, true)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), BoxFill(box, ctrl), true)

	if effect, ok := ecs.GetComponent[*components.ClickEffectComponent](rs.entityManager, id); ok {
		rs.drawClickEffect(screen, effect, x, y, w, h)
	}
	if ctrl != nil && ctrl.State() == drag.StateDragging {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 26, G: 26, B: 26, A: 26}, true)
	}
	if hover, ok := ecs.GetComponent[*components.HoverComponent](rs.entityManager, id); ok && hover.IsHovered {
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{R: 80, G: 80, B: 80, A: 80}, true)
	}

	lines := utils.WrapText(BoxLabel(box, ctrl, override), rs.labelFace, w-24)
	utils.DrawCenteredText(screen, lines, rs.labelFace, x+w/2, y+h/2, color.White)

	if ctrl == nil {
		return
	}
	rs.drawIndicator(screen, ctrl, x+w-12, y+12)

	record := rs.session.Gate().Snapshot(ctrl.ID())
	threshold := rs.session.Gate().OptionsOf(ctrl.ID()).Threshold
	if counter, show := CounterText(record.Count, threshold, override, ctrl.Options().Gate); show {
		cw := utils.MeasureText(counter, rs.smallFace) + 16
		cx, cy := x+w/2, y+h-18
		vector.DrawFilledRect(screen, float32(cx-cw/2), float32(cy-10), float32(cw), 20, color.RGBA{R: 51, G: 51, B: 51, A: 51}, true)
		utils.DrawCenteredText(screen, []string{counter}, rs.smallFace, cx, cy, color.White)
	}
}

// drawClickEffect 白色闪光：从 0.5 倍放大到 1.2 倍并淡出
func (rs *RenderSystem) drawClickEffect(screen *ebiten.Image, effect *components.ClickEffectComponent, x, y, w, h float64) {
	intensity := effect.Intensity()
	if intensity <= 0 {
		return
	}
	scale, alpha := ClickFlash(intensity)

	fw, fh := w*scale, h*scale
	fx, fy := x+(w-fw)/2, y+(h-fh)/2
	a := uint8(alpha * 255)
	vector.DrawFilledRect(screen, float32(fx), float32(fy), float32(fw), float32(fh), color.RGBA{R: a, G: a, B: a, A: a}, true)
}

// ClickFlash 返回点击闪光的缩放和不透明度
// 缩放按 ease-out-quad 从 0.5 到 1.2，不透明度按 ease-out-cubic 从 0.7 淡出
func ClickFlash(intensity float64) (scale, alpha float64) {
	progress := 1 - utils.Clamp01(intensity)
	scale = utils.Lerp(0.5, 1.2, utils.EaseOutQuad(progress))
	alpha = 0.7 * (1 - utils.EaseOutCubic(progress))
	return scale, alpha
}

// drawIndicator 右上角的可拖拽指示点，可拖拽时脉冲放大到 1.5 倍
func (rs *RenderSystem) drawIndicator(screen *ebiten.Image, ctrl *drag.Controller, cx, cy float64) {
	clr := disabledDot
	r := IndicatorRadius
	if ctrl.Enabled() {
		clr = enabledDot
		r *= 1 + 0.5*utils.Pulse(rs.elapsed, IndicatorPeriod)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), clr, true)
}

// BoxLabel 返回方块内显示的文字
func BoxLabel(box *components.BoxComponent, ctrl *drag.Controller, override bool) string {
	if ctrl != nil && ctrl.Options().Gate == gate.PolicyToggleLatch {
		if ctrl.Enabled() {
			return box.ActiveLabel
		}
		return box.Label
	}
	if override {
		return box.ForceLabel
	}
	return box.Label
}

// BoxFill 返回方块填充色，锁存打开时使用 ActiveFill
func BoxFill(box *components.BoxComponent, ctrl *drag.Controller) color.RGBA {
	if ctrl != nil && ctrl.Options().Gate == gate.PolicyToggleLatch && ctrl.Enabled() {
		return box.ActiveFill
	}
	return box.Fill
}

// CounterText 返回点击计数文字及是否显示
// 解锁策略：强制开关关闭且 0 < count < threshold 时显示；锁存策略不受强制开关影响
func CounterText(count, threshold int, override bool, policy gate.Policy) (string, bool) {
	if policy == gate.PolicyUnlockUntilDrag && override {
		return "", false
	}
	if count <= 0 || count >= threshold {
		return "", false
	}
	return fmt.Sprintf("%d/%d", count, threshold), true
}

// ToggleLabel 返回开关标签文字
func ToggleLabel(label string, on bool) string {
	if on {
		return label + ": ON"
	}
	return label + ": OFF"
}
