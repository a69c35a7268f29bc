package components

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonStyle 定义按钮的外观
type ButtonStyle int

const (
	// ButtonPrimary 主按钮（强调色填充）
	ButtonPrimary ButtonStyle = iota
	// ButtonSecondary 次要按钮（卡片色填充，强调色文字）
	ButtonSecondary
	// ButtonOption 选择题选项（宽按钮，错误后变暗）
	ButtonOption
)

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的所有数据：外观、文字、状态、回调
//
// 位置由 PositionComponent 提供（左上角，屏幕坐标），
// 场景在布局变化时直接修改位置和尺寸。
type ButtonComponent struct {
	// Label 按钮上显示的文字
	Label string
	// Font 文字字体
	Font *text.GoTextFace
	// Style 外观
	Style ButtonStyle

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hovered/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool
	// Visible 是否显示（隐藏的按钮既不绘制也不响应）
	Visible bool
	// Marked 标记状态（例如已经选过的错误选项），绘制为暗色
	Marked bool
	// Default 为 true 时 Enter / Space 激活此按钮
	Default bool

	// OnClick 点击回调函数
	OnClick func()
	// OnHover 指针进入按钮时的回调（每次进入触发一次）
	OnHover func()
}

// Interactive 返回按钮当前是否可以响应输入
func (b *ButtonComponent) Interactive() bool {
	return b.Visible && b.Enabled
}
