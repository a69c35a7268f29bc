package particle

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	defaultMargin    = 50.0
	defaultSeedDepth = 200.0
)

// ParsePresetSpec converts a string-valued preset spec into a Preset.
//
// Unset numeric ranges keep zero values; Normalize fills the remaining
// defaults. Unknown glyph or direction names and malformed colours are errors.
func ParsePresetSpec(name string, spec PresetSpec) (Preset, error) {
	p := Preset{
		Name:           name,
		SeedCount:      spec.SeedCount,
		MaxCount:       spec.MaxCount,
		SpawnChance:    spec.SpawnChance,
		Size:           parseRange(spec.Size),
		Speed:          parseRange(spec.Speed),
		Drift:          parseRange(spec.Drift),
		Opacity:        parseRange(spec.Opacity),
		Spin:           parseRange(spec.Spin),
		Gravity:        spec.Gravity,
		Sway:           spec.Sway,
		FadeByDistance: spec.FadeByDistance,
		SpawnBand:      parseRange(spec.SpawnBand),
		SeedDepth:      spec.SeedDepth,
		Margin:         spec.Margin,
		Transient:      spec.Transient,
	}

	switch strings.ToLower(strings.TrimSpace(spec.Glyph)) {
	case "heart", "hearts", "":
		p.Glyph = GlyphHeart
	case "sparkle", "sparkles":
		p.Glyph = GlyphSparkle
	case "confetti":
		p.Glyph = GlyphConfetti
	default:
		return Preset{}, fmt.Errorf("preset %s: unknown glyph %q", name, spec.Glyph)
	}

	switch strings.ToLower(strings.TrimSpace(spec.Direction)) {
	case "up", "":
		p.Direction = DirectionUp
	case "down":
		p.Direction = DirectionDown
	default:
		return Preset{}, fmt.Errorf("preset %s: unknown direction %q", name, spec.Direction)
	}

	for i, c := range spec.Colors {
		rgba, err := ParseHexColor(c)
		if err != nil {
			return Preset{}, fmt.Errorf("preset %s: colors[%d]: %w", name, i, err)
		}
		p.Colors = append(p.Colors, rgba)
	}

	if p.SeedCount < 0 || p.MaxCount < 0 {
		return Preset{}, fmt.Errorf("preset %s: counts cannot be negative", name)
	}
	if p.SpawnChance < 0 || p.SpawnChance > 1 {
		return Preset{}, fmt.Errorf("preset %s: spawnChance must be within [0, 1], got %v", name, p.SpawnChance)
	}

	p.Normalize()
	return p, nil
}

// Normalize fills defaults and enforces SeedCount <= MaxCount.
func (p *Preset) Normalize() {
	if p.MaxCount == 0 {
		p.MaxCount = p.SeedCount
	}
	if p.SeedCount > p.MaxCount {
		p.SeedCount = p.MaxCount
	}
	if p.Size.IsZero() {
		p.Size = Range{Min: 4, Max: 8}
	}
	if p.Opacity.IsZero() {
		p.Opacity = Range{Min: 1, Max: 1}
	}
	if p.SpawnBand.IsZero() {
		p.SpawnBand = Range{Min: 0, Max: 1}
	}
	if p.Margin == 0 {
		p.Margin = defaultMargin
	}
	if p.SeedDepth == 0 {
		p.SeedDepth = defaultSeedDepth
	}
	if len(p.Colors) == 0 {
		p.Colors = []color.RGBA{{R: 0xff, G: 0x7a, B: 0x7a, A: 0xff}}
	}
}

func parseRange(s string) Range {
	lo, hi, _, _ := ParseValue(s)
	return Range{Min: lo, Max: hi}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
