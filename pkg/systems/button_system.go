package systems

import (
	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、点击和键盘确认
//
// 职责：
//   - 检测悬停（更新按钮状态为 UIHovered，进入时触发 OnHover）
//   - 检测点击/触摸（触发 OnClick 回调）
//   - Enter / Space 激活默认按钮
//
// 每帧最多触发一个 OnClick：回调可能拆除或重建按钮，之后的按钮本帧不再处理。
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 根据本帧输入更新按钮状态，返回是否有按钮被激活
func (s *ButtonSystem) Update(in utils.InputState) bool {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	var clicked *components.ButtonComponent
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Interactive() {
			button.State = components.UIDisabled
			continue
		}

		hovered := in.HoveringIn(pos.X, pos.Y, button.Width, button.Height)
		activated := (hovered && in.JustPressed) || (in.Confirm && button.Default)

		switch {
		case activated && clicked == nil:
			button.State = components.UIClicked
			clicked = button
		case hovered:
			entering := button.State == components.UINormal || button.State == components.UIDisabled
			if entering && button.OnHover != nil {
				button.OnHover()
			}
			button.State = components.UIHovered
		default:
			button.State = components.UINormal
		}
	}

	// 回调放在遍历之后执行
	if clicked != nil && clicked.OnClick != nil {
		clicked.OnClick()
	}
	return clicked != nil
}
