package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DebugGlyphWidth/DebugGlyphHeight ebitenutil 调试字体的字符尺寸
const (
	DebugGlyphWidth  = 6
	DebugGlyphHeight = 16
)

// LoadDefaultFace 加载内置的 Go Regular 字体
func LoadDefaultFace(size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("无法创建字体源: %w", err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// MeasureText 测量单行文本宽度
// font 为 nil 时按调试字体估算
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" {
		return 0
	}
	if font == nil {
		return float64(len(textStr) * DebugGlyphWidth)
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// WrapText 将文本按指定宽度在空格处换行
// 单个单词超过最大宽度时独占一行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || maxWidth <= 0 || MeasureText(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if currentLine != "" && MeasureText(testLine, font) > maxWidth {
			lines = append(lines, currentLine)
			currentLine = word
			continue
		}
		currentLine = testLine
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// DrawCenteredText 以 (cx, cy) 为中心绘制多行文本
// font 为 nil 时使用 ebitenutil 调试字体（颜色固定为白色）
func DrawCenteredText(screen *ebiten.Image, lines []string, font *text.GoTextFace, cx, cy float64, clr color.Color) {
	lineHeight := float64(DebugGlyphHeight)
	if font != nil {
		lineHeight = font.Size * 1.3
	}
	top := cy - lineHeight*float64(len(lines))/2

	for i, line := range lines {
		y := top + lineHeight*float64(i) + lineHeight/2
		if font == nil {
			x := cx - MeasureText(line, nil)/2
			ebitenutil.DebugPrintAt(screen, line, int(x), int(y-DebugGlyphHeight/2))
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y)
		op.ColorScale.ScaleWithColor(clr)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, line, font, op)
	}
}

// DrawText 在 (x, y) 左上角绘制单行文本
func DrawText(screen *ebiten.Image, line string, font *text.GoTextFace, x, y float64, clr color.Color) {
	if font == nil {
		ebitenutil.DebugPrintAt(screen, line, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, line, font, op)
}
