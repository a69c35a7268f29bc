package entities

import (
	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonSpec 按钮实体的创建参数
type ButtonSpec struct {
	Label   string
	Font    *text.GoTextFace
	Style   components.ButtonStyle
	Width   float64
	Height  float64
	Default bool // Enter / Space 激活
	OnClick func()
}

// NewButton 创建按钮实体
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮位置（左上角，屏幕坐标）
//   - spec: 文字、外观、尺寸和回调
//
// 返回：
//   - 按钮实体ID
//
// 新按钮默认可见且启用。
func NewButton(em *ecs.EntityManager, x, y float64, spec ButtonSpec) ecs.EntityID {
	entity := em.CreateEntity()

	em.AddComponent(entity, &components.PositionComponent{
		X: x,
		Y: y,
	})

	em.AddComponent(entity, &components.ButtonComponent{
		Label:   spec.Label,
		Font:    spec.Font,
		Style:   spec.Style,
		Width:   spec.Width,
		Height:  spec.Height,
		State:   components.UINormal,
		Enabled: true,
		Visible: true,
		Default: spec.Default,
		OnClick: spec.OnClick,
	})

	return entity
}

// MoveButton 修改按钮位置，实体不存在时返回 false
func MoveButton(em *ecs.EntityManager, id ecs.EntityID, x, y float64) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return false
	}
	pos.X, pos.Y = x, y
	return true
}

// ButtonRect 返回按钮的位置和尺寸
func ButtonRect(em *ecs.EntityManager, id ecs.EntityID) (x, y, w, h float64, ok bool) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, id)
	button, ok2 := ecs.GetComponent[*components.ButtonComponent](em, id)
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, false
	}
	return pos.X, pos.Y, button.Width, button.Height, true
}
