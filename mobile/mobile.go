//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 使用 Makefile 构建（推荐）：
//
//	make build-android    # Android
//	make build-ios        # iOS (仅 macOS)
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/storybook/pkg/app"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/embedded"
)

func init() {
	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	// 移动端没有命令行参数，只读取环境变量
	cfg := app.Config{}
	if err := config.ParseEnv(&cfg); err != nil {
		log.Printf("[Mobile] Ignoring environment overrides: %v", err)
	}

	storybook, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("故事书初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(storybook)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
