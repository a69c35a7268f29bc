// Package scenes 实现故事书的全屏场景
//
// 所有内容场景都由 StoryScene 承载，按 config.SceneDescriptor 的 Kind 选择表现形式；
// FallbackScene 是场景挂载失败时的降级状态。场景通过 game.MountContext 获得
// 本次激活专属的转场触发器和定时器，卸载时释放自己持有的全部粒子场、揭示调度器和爆发特效。
package scenes

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/types"
	"github.com/gonewx/storybook/pkg/utils"
)

// Scene is an alias for game.Scene.
type Scene = game.Scene

// Deps 场景共享的依赖（在 app.NewApp 中创建一次）
type Deps struct {
	Story    *config.StorybookConfig
	Presets  map[string]particle.Preset
	Media    *game.MediaRegistry
	Settings *game.SettingsManager // 可为 nil，使用默认设置

	// ReducedMotion 本次运行强制减少动态效果（命令行/环境变量），不写入 Settings
	ReducedMotion bool

	// Input 读取本帧输入，为 nil 时使用 utils.GetInputState
	Input utils.InputFunc

	// Seed 随机种子，0 表示每个场景使用随机种子
	Seed int64
}

// withDefaults 填充缺省依赖
func (d Deps) withDefaults() Deps {
	if d.Presets == nil {
		d.Presets = particle.DefaultPresets()
	}
	if d.Media == nil {
		d.Media = game.NewMediaRegistry(nil)
	}
	if d.Input == nil {
		d.Input = utils.GetInputState
	}
	return d
}

// viewerSettings 返回当前观看偏好，叠加本次运行的减少动态效果开关
func (d Deps) viewerSettings() game.ViewerSettings {
	prefs := *game.DefaultSettings()
	if d.Settings != nil {
		prefs = *d.Settings.GetSettings()
	}
	prefs.ReducedMotion = prefs.ReducedMotion || d.ReducedMotion
	return prefs
}

func (d Deps) newRand() *rand.Rand {
	seed := d.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSceneFactory 返回按场景ID创建 StoryScene 的工厂
// 故事配置中不存在的ID返回错误，由 Sequencer 改为挂载降级场景
func NewSceneFactory(deps Deps) game.SceneFactory {
	deps = deps.withDefaults()
	return func(id types.SceneID) (game.Scene, error) {
		if deps.Story == nil {
			return nil, fmt.Errorf("no storybook loaded")
		}
		desc, ok := deps.Story.Scene(id)
		if !ok {
			return nil, fmt.Errorf("scene %s is not part of the storybook", id)
		}
		return NewStoryScene(*desc, deps), nil
	}
}

// NewFallbackFactory 返回创建降级场景的工厂
func NewFallbackFactory(deps Deps) game.FallbackFactory {
	deps = deps.withDefaults()
	return func(id types.SceneID, cause error) game.Scene {
		return NewFallbackScene(id, cause, deps)
	}
}
