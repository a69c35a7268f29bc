package main

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/storybook/internal/particle"
)

type cell struct {
	r     rune
	style tcell.Style
}

// recordingScreen 记录 SetContent 调用
type recordingScreen struct {
	cells map[[2]int]cell
}

func newRecordingScreen() *recordingScreen {
	return &recordingScreen{cells: make(map[[2]int]cell)}
}

func (s *recordingScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = cell{r: mainc, style: style}
}

func TestDrawParticles(t *testing.T) {
	presets := particle.DefaultPresets()
	hearts := presets[particle.PresetHearts]

	ps := []particle.Particle{
		{X: 4, Y: 4, Opacity: 1, Glyph: particle.GlyphHeart},                // (0,0)
		{X: 8*5 + 1, Y: 16*2 + 1, Opacity: 0.5, Glyph: particle.GlyphHeart}, // (5,2)
		{X: -10, Y: 4, Opacity: 1, Glyph: particle.GlyphHeart},              // 左侧越界
		{X: 4, Y: 16 * 10, Opacity: 1, Glyph: particle.GlyphHeart},          // 下方越界
		{X: 20, Y: 20, Opacity: 0, Glyph: particle.GlyphHeart},              // 完全透明
	}

	s := newRecordingScreen()
	drawn := drawParticles(s, ps, &hearts, 10, 5)
	if drawn != 2 {
		t.Fatalf("drawn = %d, want 2", drawn)
	}
	if got := s.cells[[2]int{0, 0}].r; got != '♥' {
		t.Errorf("cell (0,0) = %q, want heart", got)
	}
	if _, ok := s.cells[[2]int{5, 2}]; !ok {
		t.Error("cell (5,2) should be drawn")
	}

	// 半透明粒子的前景色比不透明的更接近背景
	full, _, _ := s.cells[[2]int{0, 0}].style.Decompose()
	half, _, _ := s.cells[[2]int{5, 2}].style.Decompose()
	if full == half {
		t.Error("opacity should change the blended foreground colour")
	}
}

func TestGlyphRune(t *testing.T) {
	tests := []struct {
		name  string
		glyph particle.Glyph
		want  rune
	}{
		{name: "心形", glyph: particle.GlyphHeart, want: '♥'},
		{name: "闪光", glyph: particle.GlyphSparkle, want: '✦'},
		{name: "彩纸", glyph: particle.GlyphConfetti, want: '▪'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := glyphRune(tt.glyph); got != tt.want {
				t.Errorf("glyphRune(%v) = %q, want %q", tt.glyph, got, tt.want)
			}
		})
	}
}

func TestBlendEndpoints(t *testing.T) {
	if got, want := blend(particle.ColorWhite, 0), tcell.NewRGBColor(int32(background.R), int32(background.G), int32(background.B)); got != want {
		t.Errorf("blend(alpha 0) = %v, want background %v", got, want)
	}
	if got, want := blend(particle.ColorWhite, 1), tcell.NewRGBColor(255, 255, 255); got != want {
		t.Errorf("blend(alpha 1) = %v, want %v", got, want)
	}
}

// TestSimulatedFieldStaysInCap 终端区域上运行的粒子场同样遵守上限
func TestSimulatedFieldStaysInCap(t *testing.T) {
	presets := particle.DefaultPresets()
	hearts := presets[particle.PresetHearts]
	rng := rand.New(rand.NewSource(1))
	b := boundsFor(80, 23)

	ps := particle.Seed(&hearts, b, rng)
	for i := 0; i < 600; i++ {
		ps = particle.Step(ps, &hearts, b, 1.0/30, rng)
		if len(ps) > hearts.MaxCount {
			t.Fatalf("frame %d: %d particles, cap %d", i, len(ps), hearts.MaxCount)
		}
	}

	s := newRecordingScreen()
	if drawn := drawParticles(s, ps, &hearts, 80, 23); drawn > len(ps) {
		t.Errorf("drawn %d cells for %d particles", drawn, len(ps))
	}
}
