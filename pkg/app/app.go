// Package app 提供故事书应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/embedded"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/scenes"
	"github.com/gonewx/storybook/pkg/types"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 默认配置路径
const (
	DefaultStoryPath     = "data/storybook.yaml"
	DefaultParticlesPath = "data/particles.yaml"

	settingsAppName = "storybook"
	frameDeltaTime  = 1.0 / 60.0
)

// Config 定义应用启动配置
// 字段先由命令行参数填充，再由环境变量覆盖（config.ParseEnv）
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"STORYBOOK_VERBOSE"`
	// StartScene 从指定场景开始（如 "quiz"），为空则从第一个场景开始
	StartScene string `env:"STORYBOOK_START_SCENE"`
	// ReducedMotion 强制减少动态效果（仅本次运行，不写入设置）
	ReducedMotion bool `env:"STORYBOOK_REDUCED_MOTION"`
	// ConfigPath 故事配置文件路径，为空使用 DefaultStoryPath
	ConfigPath string `env:"STORYBOOK_CONFIG"`
}

// App 是故事书应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sched     *game.Scheduler
	sequencer *game.Sequencer
	settings  *game.SettingsManager
	media     *game.MediaRegistry
	story     *config.StorybookConfig

	verbose                  bool
	width, height            int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时从磁盘读取 data/ 和 assets/。
// 配置错误不是致命的：故事配置加载失败时使用 config.FallbackStorybook()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage directory unavailable: %v", err)
	}
	settings := game.OpenSettingsManager(settingsAppName)

	storyPath := cfg.ConfigPath
	if storyPath == "" {
		storyPath = DefaultStoryPath
	}
	story, err := config.LoadStorybookConfig(storyPath)
	if err != nil {
		log.Printf("[App] Failed to load storybook %s: %v (using fallback story)", storyPath, err)
		story = config.FallbackStorybook()
	}
	log.Printf("[App] Loaded storybook %q with %d scenes", story.Title, len(story.Scenes))

	presets, err := config.LoadParticlePresets(DefaultParticlesPath)
	if err != nil {
		log.Printf("[App] Failed to load particle presets: %v (using defaults)", err)
		presets = particle.DefaultPresets()
	}

	media := game.NewMediaRegistry(openMedia)
	sched := game.NewScheduler()

	deps := scenes.Deps{
		Story:    story,
		Presets:  presets,
		Media:    media,
		Settings: settings,

		ReducedMotion: cfg.ReducedMotion,
	}
	sequencer, err := game.NewSequencer(story.Chain(), scenes.NewSceneFactory(deps), scenes.NewFallbackFactory(deps), sched)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene sequencer: %w", err)
	}
	sequencer.OnSceneChange(func(id types.SceneID) {
		log.Printf("[App] Scene changed: %s", id)
	})

	start := chooseStartScene(story, cfg.StartScene)

	a := &App{
		sched:     sched,
		sequencer: sequencer,
		settings:  settings,
		media:     media,
		story:     story,
		verbose:   cfg.Verbose,
		width:     config.DefaultWindowWidth,
		height:    config.DefaultWindowHeight,
	}
	sequencer.Resize(a.width, a.height)

	if err := sequencer.Activate(start); err != nil {
		return nil, fmt.Errorf("failed to activate scene %s: %w", start, err)
	}
	log.Printf("[App] Starting scene: %s", start)

	if settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// chooseStartScene 解析起始场景；名称无效时记录警告并从第一个场景开始
func chooseStartScene(story *config.StorybookConfig, name string) types.SceneID {
	id, err := startScene(story, name)
	if err != nil {
		first := story.Chain()[0]
		log.Printf("[App] Warning: %v (starting from %s)", err, first)
		return first
	}
	return id
}

// startScene 解析起始场景，空名称表示故事的第一个场景
func startScene(story *config.StorybookConfig, name string) (types.SceneID, error) {
	chain := story.Chain()
	if name == "" {
		return chain[0], nil
	}
	id, err := types.ParseSceneID(name)
	if err != nil {
		return types.SceneUnknown, fmt.Errorf("invalid start scene: %w", err)
	}
	if _, ok := story.Scene(id); !ok {
		return types.SceneUnknown, fmt.Errorf("start scene %s is not part of the story", id)
	}
	return id, nil
}

// openMedia 优先从嵌入资源打开，未初始化或路径不在嵌入目录中时读取磁盘
func openMedia(path string) (io.ReadCloser, error) {
	slashed := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if embedded.IsInitialized() && (strings.HasPrefix(slashed, "assets/") || strings.HasPrefix(slashed, "data/")) {
		return embedded.Open(slashed)
	}
	return os.Open(path)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次），推进虚拟时钟一帧
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端没有窗口）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// Shift 跳到下一个场景（调试），与观看者触发的路径相同
	if inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) {
		log.Printf("[App] Skip requested on %s", a.sequencer.Current())
		a.sequencer.Skip()
	}

	a.sched.Advance(frameDeltaTime)
	a.sequencer.Update(frameDeltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sequencer.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 场景是全屏、分辨率无关的：直接使用外部尺寸，尺寸变化时通知当前场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.width, a.height
	}
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.sequencer.Resize(outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

// Sequencer 返回场景序列
func (a *App) Sequencer() *game.Sequencer {
	return a.sequencer
}

// Story 返回当前使用的故事配置
func (a *App) Story() *config.StorybookConfig {
	return a.story
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
