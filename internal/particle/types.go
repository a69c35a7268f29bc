// Package particle provides the data model and the pure simulation step for
// the ambient decorative glyph fields (hearts, sparkles, confetti).
//
// Nothing in this package draws: Step takes a particle slice and returns the
// updated slice, so the simulation can be tested without a display surface.
// Presets are authored as string-valued specs (see PresetSpec) using the
// "[min max]" range grammar understood by ParseValue.
package particle

import (
	"image/color"
	"math/rand"
)

// Glyph 粒子字形类型
type Glyph int

const (
	GlyphHeart    Glyph = iota // 心形
	GlyphSparkle               // 四角星闪光
	GlyphConfetti              // 彩纸条
)

// String returns the preset-file name of the glyph.
func (g Glyph) String() string {
	switch g {
	case GlyphHeart:
		return "heart"
	case GlyphSparkle:
		return "sparkle"
	case GlyphConfetti:
		return "confetti"
	}
	return "unknown"
}

// Direction 粒子的行进方向
// 上升（心形、闪光）或下落（彩纸），决定回收边界和重力符号
type Direction int

const (
	DirectionUp   Direction = iota // 从底部升起，越过顶部后回收
	DirectionDown                  // 从顶部落下，越过底部后回收
)

// Sign returns the screen-space Y sign of travel (+1 down, -1 up).
func (d Direction) Sign() float64 {
	if d == DirectionDown {
		return 1
	}
	return -1
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64
	Max float64
}

// Sample returns a random value inside the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}

// IsZero reports whether the range was left unset.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Bounds 可见区域尺寸（像素）
type Bounds struct {
	W float64
	H float64
}

// Valid reports whether the bounds describe a usable surface.
func (b Bounds) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Particle 单个粒子（值对象）
// 粒子没有身份，只有在池中的槽位下标；离开可见区域后原地被覆盖（回收）
type Particle struct {
	X, Y   float64 // 位置（像素）
	VX, VY float64 // 速度（像素/秒）

	Size     float64 // 尺寸（像素）
	Rotation float64 // 当前旋转（弧度）
	Spin     float64 // 旋转速度（弧度/秒）

	Opacity     float64 // 当前透明度 0-1
	BaseOpacity float64 // 生成时的透明度（按距离淡出的基准）
	StartY      float64 // 生成时的 Y 坐标（计算行进距离）
	SwayPhase   float64 // 横向摆动相位

	Glyph Glyph // 字形
	Color int   // 调色板下标
}

// Preset 粒子场预设（已解析的数值形式）
type Preset struct {
	Name      string
	Glyph     Glyph
	Direction Direction

	SeedCount   int     // 启动时的初始粒子数
	MaxCount    int     // 硬上限，池大小永远不超过此值
	SpawnChance float64 // 每帧额外注入一个粒子的概率

	Size    Range // 尺寸（像素）
	Speed   Range // 沿行进方向的初速度（像素/秒）
	Drift   Range // 横向初速度（像素/秒）
	Opacity Range // 初始透明度
	Spin    Range // 旋转速度（弧度/秒）

	Gravity        float64 // 沿行进方向的加速度（像素/秒²）
	Sway           float64 // 横向正弦摆动幅度（像素/秒）
	FadeByDistance float64 // >0 时透明度随行进距离衰减，行进 H*FadeByDistance 后归零
	SpawnBand      Range   // 生成区域的横向比例（0-1），默认整个宽度
	SeedDepth      float64 // 下落型粒子初始散布在顶部以上的深度（像素）
	Margin         float64 // 越过可见区域多少像素后回收
	Transient      bool    // 为 true 时离开区域的粒子不回收而是移除（一次性彩纸雨）

	Colors []color.RGBA // 调色板
}

// PresetSpec 预设的配置文件形式（字符串值，使用 ParseValue 语法）
//
// Example:
//
//	hearts:
//	  glyph: heart
//	  direction: up
//	  seedCount: 15
//	  maxCount: 30
//	  spawnChance: 0.02
//	  size: "[10 25]"
//	  speed: "[30 120]"
type PresetSpec struct {
	Glyph          string   `yaml:"glyph"`
	Direction      string   `yaml:"direction"`
	SeedCount      int      `yaml:"seedCount"`
	MaxCount       int      `yaml:"maxCount"`
	SpawnChance    float64  `yaml:"spawnChance"`
	Size           string   `yaml:"size"`
	Speed          string   `yaml:"speed"`
	Drift          string   `yaml:"drift"`
	Opacity        string   `yaml:"opacity"`
	Spin           string   `yaml:"spin"`
	Gravity        float64  `yaml:"gravity"`
	Sway           float64  `yaml:"sway"`
	FadeByDistance float64  `yaml:"fadeByDistance"`
	SpawnBand      string   `yaml:"spawnBand"`
	SeedDepth      float64  `yaml:"seedDepth"`
	Margin         float64  `yaml:"margin"`
	Transient      bool     `yaml:"transient"`
	Colors         []string `yaml:"colors"`
}
