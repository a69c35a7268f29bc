package systems

import (
	"image/color"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的按钮实体：圆角背景 + 居中文字，颜色随状态变化
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	fill, label := buttonColors(button)
	radius := min(config.ButtonRadius, button.Height/2)
	utils.DrawRoundedPanel(screen, pos.X, pos.Y, button.Width, button.Height, radius, fill)

	if button.Font == nil || button.Label == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X+button.Width/2, pos.Y+button.Height/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(label)
	text.Draw(screen, button.Label, button.Font, op)
}

// buttonColors 返回按钮的背景色和文字色
func buttonColors(b *components.ButtonComponent) (fill, label color.RGBA) {
	hovered := b.State == components.UIHovered || b.State == components.UIClicked

	switch {
	case b.Marked:
		return config.WrongColor, config.MutedTextColor
	case b.Style == components.ButtonPrimary:
		if hovered {
			return config.AccentHover, config.BackgroundColor
		}
		return config.AccentColor, config.BackgroundColor
	default:
		if hovered {
			return config.AccentColor, config.BackgroundColor
		}
		return config.CardColor, config.TextColor
	}
}
