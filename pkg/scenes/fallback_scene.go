package scenes

import (
	"log"
	"math"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/entities"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/types"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	fallbackMessage = "This part of the story could not be shown."
	fallbackButton  = "Continue"
)

// FallbackScene 场景挂载失败时显示的降级场景
// 只有一段说明和一个"继续"按钮，叙事仍可以前进；不创建任何动画
type FallbackScene struct {
	id    types.SceneID
	cause error
	input utils.InputFunc

	ctx     game.MountContext
	mounted bool
	width   float64
	height  float64

	entityManager *ecs.EntityManager
	buttonSystem  *systems.ButtonSystem
	buttonRender  *systems.ButtonRenderSystem
	button        ecs.EntityID

	font       *text.GoTextFace
	buttonFont *text.GoTextFace
}

// NewFallbackScene 创建降级场景
func NewFallbackScene(id types.SceneID, cause error, deps Deps) *FallbackScene {
	deps = deps.withDefaults()
	return &FallbackScene{
		id:         id,
		cause:      cause,
		input:      deps.Input,
		font:       deps.Media.Font(game.FontRegular, config.BodyFontSize),
		buttonFont: deps.Media.Font(game.FontBold, config.ButtonFontSize),
	}
}

// Cause 返回导致降级的错误
func (f *FallbackScene) Cause() error {
	return f.cause
}

// Mount 创建"继续"按钮
func (f *FallbackScene) Mount(ctx game.MountContext) error {
	if f.mounted {
		return nil
	}
	f.ctx = ctx
	if ctx.Width > 0 && ctx.Height > 0 {
		f.width, f.height = float64(ctx.Width), float64(ctx.Height)
	}
	f.entityManager = ecs.NewEntityManager()
	f.buttonSystem = systems.NewButtonSystem(f.entityManager)
	f.buttonRender = systems.NewButtonRenderSystem(f.entityManager)
	f.button = entities.NewButton(f.entityManager, 0, 0, entities.ButtonSpec{
		Label:   fallbackButton,
		Font:    f.buttonFont,
		Style:   components.ButtonPrimary,
		Width:   config.ButtonWidth,
		Height:  config.ButtonHeight,
		Default: true,
		OnClick: f.Trigger,
	})
	f.mounted = true
	f.place()

	log.Printf("[FallbackScene] Showing fallback for %s: %v", f.id, f.cause)
	return nil
}

// Unmount 销毁按钮
func (f *FallbackScene) Unmount() {
	if !f.mounted {
		return
	}
	f.mounted = false
	f.entityManager.DestroyAll()
}

// Trigger 前进到下一个场景
func (f *FallbackScene) Trigger() {
	if f.mounted && f.ctx.Advance != nil {
		f.ctx.Advance()
	}
}

// Resize 重新摆放按钮
func (f *FallbackScene) Resize(width, height int) {
	f.width, f.height = float64(width), float64(height)
	if f.mounted {
		f.place()
	}
}

func (f *FallbackScene) place() {
	entities.MoveButton(f.entityManager, f.button, (f.width-config.ButtonWidth)/2, f.height/2+config.SectionSpacing)
}

// Update 处理按钮输入
func (f *FallbackScene) Update(deltaTime float64) {
	if !f.mounted {
		return
	}
	f.buttonSystem.Update(f.input())
}

// Draw 绘制说明和按钮
func (f *FallbackScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if !f.mounted {
		return
	}
	w := math.Max(0, config.CardWidth(f.width)-2*config.CardPadding)
	h := utils.WrappedHeight(fallbackMessage, f.font, w, config.LineSpacing)
	utils.DrawWrappedText(screen, fallbackMessage, f.font, f.width/2, f.height/2-h, w, config.LineSpacing, config.MutedTextColor)
	f.buttonRender.Draw(screen)
}
