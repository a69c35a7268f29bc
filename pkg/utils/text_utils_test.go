package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: source, Size: size}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := testFace(t, 22)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "Hello", 1000, 1},
		{"长文本自动换行", "You make my heart melt when your eyes glow as you smile.", 200, 2},
		{"强制换行", "first\nsecond", 1000, 2},
		{"中文逐字断行", "当我试着描述我们的时候总是回到这句话", 120, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("got %d lines, want at least %d: %q", len(lines), tt.expectMin, lines)
			}
			for _, line := range lines {
				if w := measureTextWidth(line, font); w > tt.maxWidth+0.5 && len([]rune(line)) > 1 {
					t.Errorf("line %q is %.1fpx wide, max %.1f", line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 测试英文单词不会被拆开
func TestWrapTextKeepsWords(t *testing.T) {
	font := testFace(t, 22)
	input := "I promise to hold your hand through easy days and hard ones"
	lines := WrapText(input, font, 260)

	if got := strings.Join(lines, " "); got != input {
		t.Errorf("rejoined lines = %q, want %q", got, input)
	}
}

// TestWrapTextLongWord 测试超长单词被强制断开
func TestWrapTextLongWord(t *testing.T) {
	font := testFace(t, 22)
	lines := WrapText(strings.Repeat("w", 80), font, 100)
	if len(lines) < 2 {
		t.Errorf("long word should be broken, got %d lines", len(lines))
	}
	if strings.Join(lines, "") != strings.Repeat("w", 80) {
		t.Error("forced breaks must not lose characters")
	}
}

// TestWrapTextEdgeCases 测试边界输入
func TestWrapTextEdgeCases(t *testing.T) {
	if lines := WrapText("", nil, 100); len(lines) != 1 || lines[0] != "" {
		t.Errorf("empty text = %q", lines)
	}
	if lines := WrapText("abc", nil, 100); len(lines) != 1 {
		t.Errorf("nil font should return the text unchanged, got %q", lines)
	}
}

func TestLineHeight(t *testing.T) {
	if LineHeight(nil, 1.5) != 0 {
		t.Error("nil font should have zero line height")
	}
	if got := LineHeight(testFace(t, 20), 1.5); got != 30 {
		t.Errorf("LineHeight = %v, want 30", got)
	}
}
