package config

import (
	"testing"

	"github.com/gonewx/storybook/internal/particle"
)

func TestParseParticlePresets(t *testing.T) {
	data := []byte(`
presets:
  hearts:
    glyph: heart
    seedCount: 5
    maxCount: 10
    spawnChance: 0.5
    size: "[4 6]"
    speed: "[10 20]"
  snow:
    glyph: sparkle
    direction: down
    seedCount: 40
    speed: "[20 40]"
    colors: ["#ffffff"]
`)

	presets, err := ParseParticlePresets(data)
	if err != nil {
		t.Fatalf("ParseParticlePresets failed: %v", err)
	}

	hearts := presets[particle.PresetHearts]
	if hearts.SeedCount != 5 || hearts.MaxCount != 10 || hearts.SpawnChance != 0.5 {
		t.Errorf("hearts override not applied: %+v", hearts)
	}

	snow, ok := presets["snow"]
	if !ok {
		t.Fatal("custom preset missing")
	}
	if snow.Direction != particle.DirectionDown || snow.MaxCount != 40 {
		t.Errorf("snow = %+v", snow)
	}

	// 文件未覆盖的内置预设仍然存在
	if _, ok := presets[particle.PresetConfetti]; !ok {
		t.Error("built-in confetti preset should be kept")
	}
}

func TestParseParticlePresetsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"无效YAML", "presets: ["},
		{"未知字形", "presets:\n  x: {glyph: star}"},
		{"概率越界", "presets:\n  x: {spawnChance: 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseParticlePresets([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
