package particle

import (
	"image/color"
	"testing"
)

func TestParsePresetSpec(t *testing.T) {
	spec := PresetSpec{
		Glyph:       "confetti",
		Direction:   "down",
		SeedCount:   80,
		SpawnChance: 0,
		Size:        "[5 15]",
		Speed:       "[120 300]",
		Drift:       "[-240 240]",
		Gravity:     360,
		Transient:   true,
		Colors:      []string{"#ff7a7a", "#FFD966"},
	}

	p, err := ParsePresetSpec("confetti", spec)
	if err != nil {
		t.Fatalf("ParsePresetSpec failed: %v", err)
	}
	if p.Glyph != GlyphConfetti || p.Direction != DirectionDown {
		t.Errorf("glyph/direction = %v/%v", p.Glyph, p.Direction)
	}
	// maxCount 缺省时等于 seedCount
	if p.MaxCount != 80 {
		t.Errorf("MaxCount = %d, want 80", p.MaxCount)
	}
	if p.Drift != (Range{Min: -240, Max: 240}) {
		t.Errorf("Drift = %+v", p.Drift)
	}
	if len(p.Colors) != 2 || p.Colors[1] != (color.RGBA{R: 0xff, G: 0xd9, B: 0x66, A: 0xff}) {
		t.Errorf("Colors = %v", p.Colors)
	}
	if !p.Transient {
		t.Error("Transient should be carried over")
	}
}

func TestParsePresetSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		spec PresetSpec
	}{
		{"未知字形", PresetSpec{Glyph: "star"}},
		{"未知方向", PresetSpec{Direction: "left"}},
		{"无效颜色", PresetSpec{Colors: []string{"red"}}},
		{"负数数量", PresetSpec{SeedCount: -1}},
		{"概率超过1", PresetSpec{SpawnChance: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePresetSpec("bad", tt.spec); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := Preset{SeedCount: 40, MaxCount: 30}
	p.Normalize()

	if p.SeedCount != 30 {
		t.Errorf("SeedCount should be clamped to MaxCount, got %d", p.SeedCount)
	}
	if p.Margin != defaultMargin || p.SeedDepth != defaultSeedDepth {
		t.Errorf("defaults not applied: margin=%v seedDepth=%v", p.Margin, p.SeedDepth)
	}
	if p.SpawnBand != (Range{Min: 0, Max: 1}) {
		t.Errorf("SpawnBand = %+v", p.SpawnBand)
	}
	if len(p.Colors) != 1 {
		t.Errorf("expected one default colour, got %d", len(p.Colors))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"ff99cc", color.RGBA{0xff, 0x99, 0xcc, 0xff}, false},
		{"#ff99cc80", color.RGBA{0xff, 0x99, 0xcc, 0x80}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
