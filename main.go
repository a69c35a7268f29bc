// Storybook 桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            Enable verbose logging
//	--scene <id>         Start from the given scene (e.g. quiz)
//	--reduced-motion     Disable ambient particles and bursts for this run
//	--config <path>      Storybook YAML (default: data/storybook.yaml)
//
// Environment variables (override flags):
//
//	STORYBOOK_VERBOSE, STORYBOOK_START_SCENE, STORYBOOK_REDUCED_MOTION, STORYBOOK_CONFIG
//
// Controls:
//
//	Click/Tap/Enter  - Activate the primary button
//	Shift            - Skip to the next scene
//	F11              - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/gonewx/storybook/pkg/app"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag       = flag.Bool("verbose", false, "Enable verbose logging")
	sceneFlag         = flag.String("scene", "", "Start from the given scene (e.g. quiz)")
	reducedMotionFlag = flag.Bool("reduced-motion", false, "Disable ambient particles and bursts for this run")
	configFlag        = flag.String("config", app.DefaultStoryPath, "Storybook YAML path")
)

func main() {
	flag.Parse()

	cfg := app.Config{
		Verbose:       *verboseFlag,
		StartScene:    *sceneFlag,
		ReducedMotion: *reducedMotionFlag,
		ConfigPath:    *configFlag,
	}
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("环境变量解析失败: %v", err)
	}

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	storybook, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("故事书初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	title := storybook.Story().Title
	if title == "" {
		title = config.WindowTitle
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(storybook); err != nil {
		log.Fatal(err)
	}
}
