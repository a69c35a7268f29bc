package particle

import "image/color"

// 默认调色板
var (
	ColorCoral = color.RGBA{R: 0xff, G: 0x7a, B: 0x7a, A: 0xff}
	ColorBlush = color.RGBA{R: 0xff, G: 0xb3, B: 0xc1, A: 0xff}
	ColorGold  = color.RGBA{R: 0xff, G: 0xd9, B: 0x66, A: 0xff}
	ColorWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorPink  = color.RGBA{R: 0xff, G: 0x99, B: 0xcc, A: 0xff}
	ColorGlow  = color.RGBA{R: 0xff, G: 0x99, B: 0x99, A: 0xff}
)

// 内置预设名称
const (
	PresetHearts   = "hearts"
	PresetSparkles = "sparkles"
	PresetConfetti = "confetti"
)

// DefaultPresets returns the built-in presets, used when the preset file is
// missing or does not define a name.
func DefaultPresets() map[string]Preset {
	presets := map[string]Preset{
		PresetHearts: {
			Name:        PresetHearts,
			Glyph:       GlyphHeart,
			Direction:   DirectionUp,
			SeedCount:   15,
			MaxCount:    30,
			SpawnChance: 0.02,
			Size:        Range{Min: 10, Max: 25},
			Speed:       Range{Min: 30, Max: 120},
			Opacity:     Range{Min: 0.2, Max: 0.6},
			Spin:        Range{Min: -0.6, Max: 0.6},
			Sway:        30,
			Colors:      []color.RGBA{ColorCoral},
		},
		PresetSparkles: {
			Name:           PresetSparkles,
			Glyph:          GlyphSparkle,
			Direction:      DirectionUp,
			SeedCount:      8,
			MaxCount:       15,
			SpawnChance:    0.01,
			Size:           Range{Min: 0.5, Max: 2},
			Speed:          Range{Min: 18, Max: 66},
			Opacity:        Range{Min: 0.1, Max: 0.35},
			FadeByDistance: 0.67,
			SpawnBand:      Range{Min: 0.2, Max: 0.8},
			Colors:         []color.RGBA{ColorGlow},
		},
		PresetConfetti: {
			Name:      PresetConfetti,
			Glyph:     GlyphConfetti,
			Direction: DirectionDown,
			SeedCount: 80,
			MaxCount:  80,
			Size:      Range{Min: 5, Max: 15},
			Speed:     Range{Min: 120, Max: 300},
			Drift:     Range{Min: -240, Max: 240},
			Opacity:   Range{Min: 0.9, Max: 1},
			Spin:      Range{Min: -6, Max: 6},
			Gravity:   360,
			Margin:    20,
			Transient: true,
			Colors:    []color.RGBA{ColorCoral, ColorBlush, ColorGold, ColorWhite, ColorPink},
		},
	}
	for name, p := range presets {
		p.Normalize()
		presets[name] = p
	}
	return presets
}
