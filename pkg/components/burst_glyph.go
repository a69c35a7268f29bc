package components

import (
	"image/color"

	"github.com/gonewx/storybook/internal/particle"
)

// BurstGlyphComponent 爆发特效中的单个字形
//
// 字形从起点沿随机方向缓出移动到 (OriginX+DX, OriginY+DY)，
// 位置由 BurstSystem 按生命周期进度计算，透明度由 Alpha 曲线决定。
type BurstGlyphComponent struct {
	Glyph particle.Glyph
	Color color.RGBA

	OriginX, OriginY float64 // 起点
	DX, DY           float64 // 终点相对起点的偏移
	TravelTime       float64 // 移动到终点所需时间(秒)，之后停留并淡出

	Size     float64
	Rotation float64 // 当前旋转（弧度）
	Spin     float64 // 旋转速度（弧度/秒）
	Alpha    float64 // 当前透明度 0-1

	Batch int // 所属的 Emit 批次
}
