package systems

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// BurstConfig 爆发特效参数
type BurstConfig struct {
	Glyph    particle.Glyph
	Colors   []color.RGBA
	Size     particle.Range // 字形尺寸（像素）
	Distance particle.Range // 移动距离（像素）
	Travel   particle.Range // 移动时间（秒）
	Lifetime particle.Range // 总寿命（秒），包含移动后的停留和淡出
	Spin     particle.Range // 旋转速度（弧度/秒）

	// Alpha 按寿命进度的透明度曲线，使用关键帧语法 "time,value ..."
	Alpha string
}

// DefaultBurstConfig 默认的心形爆发
func DefaultBurstConfig() BurstConfig {
	return BurstConfig{
		Glyph:    particle.GlyphHeart,
		Colors:   []color.RGBA{particle.ColorCoral, particle.ColorBlush, particle.ColorPink},
		Size:     particle.Range{Min: 16, Max: 34},
		Distance: particle.Range{Min: 120, Max: 320},
		Travel:   particle.Range{Min: 0.9, Max: 1.8},
		Lifetime: particle.Range{Min: 1.8, Max: 2.6},
		Spin:     particle.Range{Min: -1.5, Max: 1.5},
		Alpha:    "0,1 0.75,1 1,0",
	}
}

// BurstSystem 一次性的庆祝字形爆发
//
// 每个字形是一个 ECS 实体（位置、字形、生命周期组件），寿命结束后自行销毁。
// 每次 Emit 额外登记一个截止回调：即使宿主场景不再调用 Update，
// 批次中残留的字形也会在最长寿命之后被清除。
// Teardown 立即销毁所有仍然存活的字形并取消所有截止回调。
type BurstSystem struct {
	entityManager  *ecs.EntityManager
	lifetimeSystem *LifetimeSystem
	timers         *game.TimerGroup
	rng            *rand.Rand

	config    BurstConfig
	alphaKF   []particle.Keyframe
	alphaMode string
	batch     int
}

// NewBurstSystem 创建爆发特效系统
// em 为场景私有的实体管理器；rng 为 nil 时使用独立的随机源
func NewBurstSystem(em *ecs.EntityManager, sched *game.Scheduler, config BurstConfig, rng *rand.Rand) *BurstSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if len(config.Colors) == 0 {
		config.Colors = []color.RGBA{particle.ColorCoral}
	}
	_, _, kf, mode := particle.ParseValue(config.Alpha)
	return &BurstSystem{
		entityManager:  em,
		lifetimeSystem: NewLifetimeSystem(em),
		timers:         game.NewTimerGroup(sched),
		rng:            rng,
		config:         config,
		alphaKF:        kf,
		alphaMode:      mode,
	}
}

// Emit 从 origin 发射 count 个字形，返回实际创建的数量
// 多次调用的批次互相独立
func (s *BurstSystem) Emit(originX, originY float64, count int) int {
	if count <= 0 {
		return 0
	}
	s.batch++
	batch := s.batch

	maxLife := 0.0
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		dist := s.config.Distance.Sample(s.rng)
		life := s.config.Lifetime.Sample(s.rng)
		travel := math.Min(s.config.Travel.Sample(s.rng), life)
		maxLife = math.Max(maxLife, life)

		id := s.entityManager.CreateEntity()
		s.entityManager.AddComponent(id, &components.PositionComponent{X: originX, Y: originY})
		s.entityManager.AddComponent(id, &components.BurstGlyphComponent{
			Glyph:      s.config.Glyph,
			Color:      s.config.Colors[s.rng.Intn(len(s.config.Colors))],
			OriginX:    originX,
			OriginY:    originY,
			DX:         math.Cos(angle) * dist,
			DY:         math.Sin(angle) * dist,
			TravelTime: travel,
			Size:       s.config.Size.Sample(s.rng),
			Rotation:   s.rng.Float64()*math.Pi/3 - math.Pi/6,
			Spin:       s.config.Spin.Sample(s.rng),
			Alpha:      1,
			Batch:      batch,
		})
		s.entityManager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: life})
	}

	deadline := time.Duration(maxLife * float64(time.Second))
	s.timers.After(deadline, func() { s.clearBatch(batch) })
	return count
}

// Update 推进所有字形的动画，并移除寿命结束的字形
func (s *BurstSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.BurstGlyphComponent,
		*components.LifetimeComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		glyph, _ := ecs.GetComponent[*components.BurstGlyphComponent](s.entityManager, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		age := life.CurrentLifetime + deltaTime
		t := 1.0
		if glyph.TravelTime > 0 {
			t = math.Min(1, age/glyph.TravelTime)
		}
		eased := utils.EaseOutCubic(t)
		pos.X = glyph.OriginX + glyph.DX*eased
		pos.Y = glyph.OriginY + glyph.DY*eased
		glyph.Rotation += glyph.Spin * deltaTime

		progress := 1.0
		if life.MaxLifetime > 0 {
			progress = math.Min(1, age/life.MaxLifetime)
		}
		glyph.Alpha = s.alphaAt(progress)
	}

	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

func (s *BurstSystem) alphaAt(progress float64) float64 {
	if len(s.alphaKF) == 0 {
		return 1 - progress
	}
	return particle.EvaluateKeyframes(s.alphaKF, progress, s.alphaMode)
}

// clearBatch 截止回调：销毁批次中仍然存活的字形
func (s *BurstSystem) clearBatch(batch int) {
	for _, id := range ecs.GetEntitiesWith1[*components.BurstGlyphComponent](s.entityManager) {
		glyph, _ := ecs.GetComponent[*components.BurstGlyphComponent](s.entityManager, id)
		if glyph.Batch == batch {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// Teardown 立即移除所有仍然存活的字形并取消截止回调
func (s *BurstSystem) Teardown() {
	s.timers.CancelAll()
	for _, id := range ecs.GetEntitiesWith1[*components.BurstGlyphComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Active 返回仍然存活的字形数量
func (s *BurstSystem) Active() int {
	return len(ecs.GetEntitiesWith1[*components.BurstGlyphComponent](s.entityManager))
}

// Draw 绘制所有字形
func (s *BurstSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.BurstGlyphComponent](s.entityManager)
	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		glyph, _ := ecs.GetComponent[*components.BurstGlyphComponent](s.entityManager, id)
		DrawGlyph(screen, glyph.Glyph, pos.X, pos.Y, glyph.Size, glyph.Rotation, glyph.Color, glyph.Alpha)
	}
}
