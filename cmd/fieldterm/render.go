package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/storybook/internal/particle"
)

// 每个终端字符格代表的像素尺寸，模拟仍以像素为单位进行
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// 终端背景色，与故事书背景一致
var background = color.RGBA{R: 0x1f, G: 0x0f, B: 0x1a, A: 0xff}

// cellWriter tcell.Screen 中绘制需要的部分
type cellWriter interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// boundsFor 返回 cols x rows 字符格对应的模拟区域
func boundsFor(cols, rows int) particle.Bounds {
	return particle.Bounds{W: float64(cols) * cellWidth, H: float64(rows) * cellHeight}
}

func glyphRune(g particle.Glyph) rune {
	switch g {
	case particle.GlyphSparkle:
		return '✦'
	case particle.GlyphConfetti:
		return '▪'
	default:
		return '♥'
	}
}

// blend 按透明度把颜色混合到背景上（终端没有 alpha 通道）
func blend(c color.RGBA, alpha float64) tcell.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(bg) + (float64(fg)-float64(bg))*alpha))
	}
	return tcell.NewRGBColor(mix(c.R, background.R), mix(c.G, background.G), mix(c.B, background.B))
}

// drawParticles 把粒子映射到字符格，返回绘制的格数
// 落在区域外或完全透明的粒子不绘制；同一格内后绘制的粒子覆盖先绘制的
func drawParticles(w cellWriter, ps []particle.Particle, preset *particle.Preset, cols, rows int) int {
	drawn := 0
	bg := blend(background, 1)
	for _, q := range ps {
		if q.Opacity <= 0 {
			continue
		}
		x := int(math.Floor(q.X / cellWidth))
		y := int(math.Floor(q.Y / cellHeight))
		if x < 0 || y < 0 || x >= cols || y >= rows {
			continue
		}
		c := preset.Colors[0]
		if q.Color >= 0 && q.Color < len(preset.Colors) {
			c = preset.Colors[q.Color]
		}
		style := tcell.StyleDefault.Background(bg).Foreground(blend(c, q.Opacity))
		w.SetContent(x, y, glyphRune(q.Glyph), nil, style)
		drawn++
	}
	return drawn
}

// fill 用背景色填满 cols x rows
func fill(w cellWriter, cols, rows int) {
	style := tcell.StyleDefault.Background(blend(background, 1))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			w.SetContent(x, y, ' ', nil, style)
		}
	}
}
