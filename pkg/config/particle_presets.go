package config

import (
	"fmt"
	"sort"

	"github.com/gonewx/storybook/internal/particle"
	"gopkg.in/yaml.v3"
)

// ParticlePresetsFile 粒子预设文件结构
//
// Example:
//
//	presets:
//	  hearts:
//	    glyph: heart
//	    seedCount: 15
//	    maxCount: 30
//	    size: "[10 25]"
type ParticlePresetsFile struct {
	Presets map[string]particle.PresetSpec `yaml:"presets"`
}

// LoadParticlePresets 加载粒子预设，文件中未定义的名称使用内置默认值
func LoadParticlePresets(path string) (map[string]particle.Preset, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle presets: %w", err)
	}
	return ParseParticlePresets(data)
}

// ParseParticlePresets 解析粒子预设并与内置默认值合并
func ParseParticlePresets(data []byte) (map[string]particle.Preset, error) {
	var file ParticlePresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse particle presets YAML: %w", err)
	}

	presets := particle.DefaultPresets()

	// 按名称排序，保证错误信息稳定
	names := make([]string, 0, len(file.Presets))
	for name := range file.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := particle.ParsePresetSpec(name, file.Presets[name])
		if err != nil {
			return nil, err
		}
		presets[name] = p
	}
	return presets, nil
}
