package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleField 持续动画的环境装饰粒子场（心形、闪光、彩纸）
//
// 粒子池只由自己的帧回调修改；模拟由 particle.Step 完成，Draw 只读取粒子状态。
// 减少动态效果的偏好只在 Start 时读取一次：此时不生成任何粒子，也不注册帧回调。
// 可见区域不可用（尺寸为 0）时降级为空操作，之后收到有效尺寸再开始。
type ParticleField struct {
	preset particle.Preset
	timers *game.TimerGroup
	rng    *rand.Rand

	particles []particle.Particle
	bounds    particle.Bounds

	started bool // Start 已调用且未 Stop
	running bool // 帧回调已注册
	reduced bool
}

// NewParticleField 创建粒子场
// rng 为 nil 时使用独立的随机源
func NewParticleField(sched *game.Scheduler, preset particle.Preset, rng *rand.Rand) *ParticleField {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	preset.Normalize()
	return &ParticleField{
		preset: preset,
		timers: game.NewTimerGroup(sched),
		rng:    rng,
	}
}

// ScaleDensity 按倍率缩放初始数量和上限，必须在 Start 之前调用
func (f *ParticleField) ScaleDensity(density float64) {
	if f.started {
		return
	}
	density = math.Max(0, math.Min(1, density))
	f.preset.SeedCount = int(math.Round(float64(f.preset.SeedCount) * density))
	f.preset.MaxCount = int(math.Round(float64(f.preset.MaxCount) * density))
}

// Start 启动粒子场，返回 false 表示已经启动（空操作）
func (f *ParticleField) Start(size particle.Bounds, reducedMotion bool) bool {
	if f.started {
		return false
	}
	f.started = true
	f.reduced = reducedMotion
	f.bounds = size

	if reducedMotion {
		log.Printf("[ParticleField] %s: reduced motion, field disabled", f.preset.Name)
		return true
	}
	if !size.Valid() {
		log.Printf("[ParticleField] %s: surface unavailable (%.0fx%.0f), waiting for resize", f.preset.Name, size.W, size.H)
		return true
	}
	f.run()
	return true
}

func (f *ParticleField) run() {
	f.particles = particle.Seed(&f.preset, f.bounds, f.rng)
	if f.preset.MaxCount == 0 {
		return
	}
	f.timers.OnFrame(f.step)
	f.running = true
}

// step 帧回调
func (f *ParticleField) step(dt float64) {
	f.particles = particle.Step(f.particles, &f.preset, f.bounds, dt, f.rng)
	// 一次性的粒子场全部离开后停止帧循环
	if len(f.particles) == 0 && f.preset.Transient {
		f.timers.CancelAll()
		f.running = false
	}
}

// Resize 更新回收边界，不重启模拟（保留现有粒子位置）
func (f *ParticleField) Resize(size particle.Bounds) {
	f.bounds = size
	if f.started && !f.reduced && !f.running && size.Valid() && f.particles == nil {
		f.run()
	}
}

// Stop 停止帧循环并释放粒子池；未启动时为空操作
func (f *ParticleField) Stop() {
	if !f.started {
		return
	}
	f.timers.CancelAll()
	f.particles = nil
	f.started = false
	f.running = false
}

// Draw 绘制所有粒子
func (f *ParticleField) Draw(screen *ebiten.Image) {
	colors := f.preset.Colors
	for i := range f.particles {
		p := &f.particles[i]
		clr := colors[p.Color%len(colors)]
		DrawGlyph(screen, p.Glyph, p.X, p.Y, p.Size, p.Rotation, clr, p.Opacity)
	}
}

// Count 返回当前粒子数量
func (f *ParticleField) Count() int {
	return len(f.particles)
}

// Running 返回帧循环是否在运行
func (f *ParticleField) Running() bool {
	return f.running
}

// Started 返回 Start 是否已生效
func (f *ParticleField) Started() bool {
	return f.started
}

// Preset 返回粒子场使用的预设
func (f *ParticleField) Preset() particle.Preset {
	return f.preset
}

// Particles 返回粒子的只读快照
func (f *ParticleField) Particles() []particle.Particle {
	return append([]particle.Particle(nil), f.particles...)
}
