package systems

import (
	"image/color"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// tinySparkle 小于该尺寸的闪光画成带光晕的圆点
const tinySparkle = 4.0

// DrawGlyph 在 (x, y) 处绘制一个装饰字形
// clr 为不透明颜色，alpha 为额外透明度
func DrawGlyph(dst *ebiten.Image, glyph particle.Glyph, x, y, size, rotation float64, clr color.RGBA, alpha float64) {
	if dst == nil || alpha <= 0 || size <= 0 {
		return
	}
	switch glyph {
	case particle.GlyphHeart:
		utils.FillPolygon(dst, utils.HeartPolygon(x, y, size, rotation), clr, alpha)
	case particle.GlyphSparkle:
		if size < tinySparkle {
			vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*3), premultiply(clr, alpha*0.3), true)
			vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size), premultiply(clr, alpha), true)
			return
		}
		utils.FillPolygon(dst, utils.SparklePolygon(x, y, size, rotation), clr, alpha)
	case particle.GlyphConfetti:
		utils.FillPolygon(dst, utils.ConfettiPolygon(x, y, size, rotation), clr, alpha)
	}
}

// premultiply 将不透明颜色按 alpha 转换为预乘颜色（image/color 约定）
func premultiply(c color.RGBA, alpha float64) color.RGBA {
	if alpha > 1 {
		alpha = 1
	}
	a := float64(c.A) / 0xff * alpha
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(a * 0xff),
	}
}
