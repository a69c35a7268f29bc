package config

import "image/color"

// 布局配置常量
// 场景是全屏、分辨率无关的：位置按可见区域尺寸计算，这里只定义尺寸和间距

// Window 窗口配置
const (
	// DefaultWindowWidth 桌面窗口的初始宽度
	DefaultWindowWidth = 1280
	// DefaultWindowHeight 桌面窗口的初始高度
	DefaultWindowHeight = 720
	// WindowTitle 窗口标题
	WindowTitle = "Storybook"
)

// Typography 字号（像素）
const (
	TitleFontSize   = 44.0
	BodyFontSize    = 24.0
	ItemFontSize    = 22.0
	ButtonFontSize  = 22.0
	CaptionFontSize = 20.0
	LetterFontSize  = 22.0
	LineSpacing     = 1.45 // 行高 = 字号 * LineSpacing
)

// Card 内容卡片
const (
	CardMaxWidth   = 760.0
	CardMarginX    = 24.0 // 窄屏时卡片与屏幕边缘的最小距离
	CardPadding    = 32.0
	CardRadius     = 24.0
	ItemSpacing    = 12.0
	SectionSpacing = 28.0
)

// Button 按钮
const (
	ButtonWidth   = 220.0
	ButtonHeight  = 56.0
	ButtonRadius  = 28.0
	ButtonSpacing = 16.0
)

// 调色板
var (
	BackgroundColor = color.RGBA{R: 0x1f, G: 0x0f, B: 0x1a, A: 0xff}
	CardColor       = color.RGBA{R: 0x3a, G: 0x1c, B: 0x2e, A: 0xff}
	TextColor       = color.RGBA{R: 0xff, G: 0xf1, B: 0xf4, A: 0xff}
	MutedTextColor  = color.RGBA{R: 0xd9, G: 0xb8, B: 0xc4, A: 0xff}
	AccentColor     = color.RGBA{R: 0xff, G: 0x7a, B: 0x7a, A: 0xff}
	AccentHover     = color.RGBA{R: 0xff, G: 0x99, B: 0x99, A: 0xff}
	WrongColor      = color.RGBA{R: 0x6e, G: 0x4a, B: 0x5a, A: 0xff}
	ReelColor       = color.RGBA{R: 0x52, G: 0x2a, B: 0x40, A: 0xff}
)

// CardWidth 返回给定屏幕宽度下的卡片宽度
func CardWidth(screenWidth float64) float64 {
	w := screenWidth - 2*CardMarginX
	if w > CardMaxWidth {
		return CardMaxWidth
	}
	if w < 0 {
		return 0
	}
	return w
}
