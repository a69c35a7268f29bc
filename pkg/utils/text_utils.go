package utils

import (
	"image/color"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本（"\n" 为强制换行）
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行（英文单词不拆开）
//   - 中日韩字符之间可以断行
//   - 如果单词太长超过最大宽度，强制按字符断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, font *text.GoTextFace, maxWidth float64) []string {
	if measureTextWidth(paragraph, font) <= maxWidth {
		return []string{paragraph}
	}

	var lines []string
	current := ""
	for _, token := range tokenize(paragraph) {
		candidate := current + token
		if current == "" {
			candidate = strings.TrimLeft(token, " ")
		}
		if measureTextWidth(strings.TrimRight(candidate, " "), font) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, strings.TrimSpace(current))
		}
		token = strings.TrimLeft(token, " ")

		// 单个词超宽：按字符强制断行
		if measureTextWidth(token, font) > maxWidth {
			pieces := breakRunes(token, font, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		current = token
	}
	if strings.TrimSpace(current) != "" || len(lines) == 0 {
		lines = append(lines, strings.TrimSpace(current))
	}
	return lines
}

// tokenize 将文本拆分为可断行的单元：带前导空格的单词，或单个中日韩字符
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case r == ' ':
			// 空格属于下一个单词的前缀
			if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				flush()
			}
			b.WriteRune(r)
		case isWideRune(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isWideRune(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r)
}

// breakRunes 按字符强制断行，返回至少一个元素
func breakRunes(word string, font *text.GoTextFace, maxWidth float64) []string {
	var pieces []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && measureTextWidth(candidate, font) > maxWidth {
			pieces = append(pieces, current)
			candidate = string(r)
		}
		current = candidate
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}

// LineHeight 返回字体的行高
func LineHeight(font *text.GoTextFace, spacing float64) float64 {
	if font == nil {
		return 0
	}
	return font.Size * spacing
}

// DrawCenteredText 以 (cx, y) 为顶部中心绘制单行文本
func DrawCenteredText(dst *ebiten.Image, str string, font *text.GoTextFace, cx, y float64, clr color.Color) {
	if dst == nil || font == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, font, op)
}

// DrawWrappedText 以 (cx, y) 为顶部中心绘制自动换行的文本，返回占用的高度
func DrawWrappedText(dst *ebiten.Image, str string, font *text.GoTextFace, cx, y, maxWidth, spacing float64, clr color.Color) float64 {
	if font == nil || str == "" {
		return 0
	}
	lh := LineHeight(font, spacing)
	lines := WrapText(str, font, maxWidth)
	for i, line := range lines {
		DrawCenteredText(dst, line, font, cx, y+float64(i)*lh, clr)
	}
	return float64(len(lines)) * lh
}

// WrappedHeight 返回文本换行后占用的高度（不绘制）
func WrappedHeight(str string, font *text.GoTextFace, maxWidth, spacing float64) float64 {
	if font == nil || str == "" {
		return 0
	}
	return float64(len(WrapText(str, font, maxWidth))) * LineHeight(font, spacing)
}

// MeasureText 返回单行文本的宽度（像素）
func MeasureText(str string, font *text.GoTextFace) float64 {
	return measureTextWidth(str, font)
}

// DrawText 以 (x, y) 为左上角绘制单行文本
func DrawText(dst *ebiten.Image, str string, font *text.GoTextFace, x, y float64, clr color.Color) {
	if dst == nil || font == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, font, op)
}
