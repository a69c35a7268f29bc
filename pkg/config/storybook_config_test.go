package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/storybook/pkg/types"
)

const sampleStory = `
title: Our Story
scenes:
  - id: landing
    kind: card
    ambient: hearts
    title: Hello
    button: Begin
  - id: reasons
    kind: reveal
    ambient: sparkles
    items: [one, two, three]
    itemDelay: 700ms
    baseOffset: 300ms
    burst: 12
  - id: quiz
    kind: quiz
    options:
      - label: Your eyes
      - label: Everything
        correct: true
        hidden: true
  - id: final
    kind: final
`

func TestParseStorybookConfig(t *testing.T) {
	cfg, err := ParseStorybookConfig([]byte(sampleStory))
	if err != nil {
		t.Fatalf("ParseStorybookConfig failed: %v", err)
	}

	chain := cfg.Chain()
	want := []types.SceneID{types.SceneLanding, types.SceneReasons, types.SceneQuiz, types.SceneFinal}
	if len(chain) != len(want) {
		t.Fatalf("Chain() = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("Chain()[%d] = %v, want %v", i, chain[i], want[i])
		}
	}

	reasons, ok := cfg.Scene(types.SceneReasons)
	if !ok {
		t.Fatal("reasons scene not found")
	}
	if reasons.ItemDelay != 700*time.Millisecond || reasons.BaseOffset != 300*time.Millisecond {
		t.Errorf("durations = %v/%v", reasons.ItemDelay, reasons.BaseOffset)
	}
	// 默认值
	if reasons.SettleOffset != DefaultSettleOffset {
		t.Errorf("SettleOffset = %v, want default", reasons.SettleOffset)
	}
	if reasons.Button != "Continue" {
		t.Errorf("Button = %q, want default", reasons.Button)
	}

	landing, _ := cfg.Scene(types.SceneLanding)
	if landing.Button != "Begin" {
		t.Errorf("explicit button overwritten: %q", landing.Button)
	}

	if _, ok := cfg.Scene(types.SceneLetter); ok {
		t.Error("Scene() should not find scenes outside the config")
	}
}

func TestParseStorybookConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"无效YAML", "scenes: [", "parse"},
		{"空场景列表", "scenes: []", "empty"},
		{"未知场景", "scenes:\n  - {id: credits, kind: card}", "unknown scene id"},
		{"重复场景", "scenes:\n  - {id: landing, kind: card}\n  - {id: landing, kind: card}", "duplicate"},
		{"未知类型", "scenes:\n  - {id: landing, kind: video}", "unknown kind"},
		{"终幕不在最后", "scenes:\n  - {id: final, kind: final}\n  - {id: landing, kind: card}", "last"},
		{"负数延时", "scenes:\n  - {id: landing, kind: card, itemDelay: -1s}", "negative"},
		{"负数爆发", "scenes:\n  - {id: landing, kind: card, burst: -3}", "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStorybookConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadStorybookConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	if err := os.WriteFile(path, []byte(sampleStory), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStorybookConfig(path)
	if err != nil {
		t.Fatalf("LoadStorybookConfig failed: %v", err)
	}
	if cfg.Title != "Our Story" {
		t.Errorf("Title = %q", cfg.Title)
	}

	if _, err := LoadStorybookConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should return an error")
	}
}

func TestFallbackStorybook(t *testing.T) {
	cfg := FallbackStorybook()
	if err := validateStorybookConfig(cfg); err != nil {
		t.Fatalf("fallback storybook is invalid: %v", err)
	}
	chain := cfg.Chain()
	if len(chain) != 2 || chain[0] != types.SceneLanding || chain[1] != types.SceneFinal {
		t.Errorf("fallback chain = %v", chain)
	}
}

func TestExplicitZeroDurations(t *testing.T) {
	cfg, err := ParseStorybookConfig([]byte(`
scenes:
  - id: reasons
    kind: reveal
    items: [one]
    settleOffset: 0s
    exitDelay: 0
  - id: vow
    kind: reveal
    items: [one]
  - id: final
    kind: final
`))
	if err != nil {
		t.Fatalf("ParseStorybookConfig failed: %v", err)
	}

	tests := []struct {
		name string
		id   types.SceneID
		got  func(sd *SceneDescriptor) time.Duration
		want time.Duration
	}{
		{"显式 settleOffset: 0", types.SceneReasons, func(sd *SceneDescriptor) time.Duration { return sd.SettleOffset }, 0},
		{"显式 exitDelay: 0", types.SceneReasons, func(sd *SceneDescriptor) time.Duration { return sd.ExitDelay }, 0},
		{"未写出的 itemDelay", types.SceneReasons, func(sd *SceneDescriptor) time.Duration { return sd.ItemDelay }, DefaultItemDelay},
		{"未写出的 settleOffset", types.SceneVow, func(sd *SceneDescriptor) time.Duration { return sd.SettleOffset }, DefaultSettleOffset},
		{"未写出的 exitDelay", types.SceneVow, func(sd *SceneDescriptor) time.Duration { return sd.ExitDelay }, DefaultExitDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, ok := cfg.Scene(tt.id)
			if !ok {
				t.Fatalf("scene %s not found", tt.id)
			}
			if got := tt.got(sd); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStorybookConfigSpinKind(t *testing.T) {
	cfg, err := ParseStorybookConfig([]byte(`
scenes:
  - id: spinwheel
    kind: spin
    items: [sing, dance]
  - id: final
    kind: final
`))
	if err != nil {
		t.Fatalf("spin kind should be accepted: %v", err)
	}
	if sd, _ := cfg.Scene(types.SceneSpinWheel); sd.Kind != KindSpin {
		t.Errorf("kind = %q, want %q", sd.Kind, KindSpin)
	}
}
