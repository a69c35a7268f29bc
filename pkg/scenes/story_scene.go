package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gonewx/storybook/internal/particle"
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

// StoryScene 由场景描述驱动的内容场景
//
// 生命周期：
//   - NewStoryScene 只保存描述，不分配任何资源
//   - Mount 创建实体管理器、按钮、爆发特效和环境粒子场，并启动本场景的节奏
//   - Unmount 停止粒子场、重置揭示调度器、拆除爆发特效；重复调用为空操作
//
// 所有延时回调都登记在 MountContext.Timers 或组件自己的 TimerGroup 中，
// 卸载后不会再有任何回调修改本场景。
type StoryScene struct {
	desc config.SceneDescriptor
	deps Deps
	rng  *rand.Rand

	ctx           game.MountContext
	mounted       bool
	width         float64
	height        float64
	reducedMotion bool

	// ECS：按钮和爆发字形
	entityManager *ecs.EntityManager
	buttonSystem  *systems.ButtonSystem
	buttonRender  *systems.ButtonRenderSystem
	burst         *systems.BurstSystem

	ambient     *systems.ParticleField // 环境粒子（可为 nil）
	celebration *systems.ParticleField // 庆祝彩纸（揭晓场景接受后创建）
	reveal      *systems.RevealScheduler
	revealedAt  []time.Duration // 每个条目出现的时间（-1 表示尚未出现）

	fonts  sceneFonts
	layout sceneLayout

	primary        ecs.EntityID // 主按钮，0 表示没有
	captionVisible bool

	quiz     quizState
	letter   letterState
	gallery  galleryState
	proposal proposalState
	spin     spinState
}

type sceneFonts struct {
	title   *text.GoTextFace
	body    *text.GoTextFace
	item    *text.GoTextFace
	caption *text.GoTextFace
	letter  *text.GoTextFace
	button  *text.GoTextFace
}

// NewStoryScene 创建场景（尚未挂载）
func NewStoryScene(desc config.SceneDescriptor, deps Deps) *StoryScene {
	deps = deps.withDefaults()
	if desc.Kind == config.KindProposal {
		if desc.Accept == "" {
			desc.Accept = "Yes"
		}
		if desc.Decline == "" {
			desc.Decline = "No"
		}
	}
	return &StoryScene{
		desc: desc,
		deps: deps,
		rng:  deps.newRand(),
		fonts: sceneFonts{
			title:   deps.Media.Font(game.FontBold, config.TitleFontSize),
			body:    deps.Media.Font(game.FontRegular, config.BodyFontSize),
			item:    deps.Media.Font(game.FontRegular, config.ItemFontSize),
			caption: deps.Media.Font(game.FontRegular, config.CaptionFontSize),
			letter:  deps.Media.Font(game.FontRegular, config.LetterFontSize),
			button:  deps.Media.Font(game.FontBold, config.ButtonFontSize),
		},
	}
}

// ID 返回场景ID
func (s *StoryScene) ID() types.SceneID {
	return s.desc.ID
}

// Kind 返回场景的表现形式
func (s *StoryScene) Kind() config.SceneKind {
	return s.desc.Kind
}

// validate 检查内容是否足以渲染本场景
func (s *StoryScene) validate() error {
	return ValidateScene(&s.desc)
}

// ValidateScene 检查场景内容是否足以挂载
// 结构性错误由 config 包在加载时检查；这里只检查各类型场景需要的内容
func ValidateScene(desc *config.SceneDescriptor) error {
	switch desc.Kind {
	case config.KindQuiz:
		return validateQuiz(desc.Options)
	case config.KindLetter:
		if desc.Body == "" {
			return fmt.Errorf("letter has no text")
		}
	case config.KindGallery:
		if galleryLen(desc) == 0 {
			return fmt.Errorf("gallery has no memories")
		}
	case config.KindSpin:
		return validateSpin(desc)
	}
	return nil
}

// Mount 挂载场景，重复挂载为空操作
func (s *StoryScene) Mount(ctx game.MountContext) error {
	if s.mounted {
		return nil
	}
	if err := s.validate(); err != nil {
		return fmt.Errorf("scene %s: %w", s.desc.ID, err)
	}

	s.ctx = ctx
	if ctx.Width > 0 && ctx.Height > 0 {
		s.width, s.height = float64(ctx.Width), float64(ctx.Height)
	}
	prefs := s.deps.viewerSettings()
	s.reducedMotion = prefs.ReducedMotion

	s.entityManager = ecs.NewEntityManager()
	s.buttonSystem = systems.NewButtonSystem(s.entityManager)
	s.buttonRender = systems.NewButtonRenderSystem(s.entityManager)
	s.burst = systems.NewBurstSystem(s.entityManager, ctx.Scheduler, systems.DefaultBurstConfig(), s.rng)
	s.mounted = true

	if err := s.mountKind(); err != nil {
		s.Unmount()
		return fmt.Errorf("scene %s: %w", s.desc.ID, err)
	}
	s.relayout()
	s.startAmbient(prefs)
	s.startKind()

	log.Printf("[StoryScene] Mounted %s (%s), ambient=%q", s.desc.ID, s.desc.Kind, s.desc.Ambient)
	return nil
}

func (s *StoryScene) mountKind() error {
	switch s.desc.Kind {
	case config.KindCard:
		s.primary = s.newButton(s.desc.Button, components.ButtonPrimary, true, s.advance)
	case config.KindReveal:
		s.mountReveal()
	case config.KindQuiz:
		s.mountQuiz()
	case config.KindLetter:
		s.mountLetter()
	case config.KindGallery:
		return s.mountGallery()
	case config.KindProposal:
		s.mountProposal()
	case config.KindSpin:
		s.mountSpin()
	}
	return nil
}

func (s *StoryScene) startKind() {
	switch s.desc.Kind {
	case config.KindReveal:
		s.startReveal()
	case config.KindLetter:
		s.startLetter()
	case config.KindProposal:
		s.startProposal()
	case config.KindFinal:
		s.emitBurst(s.cardCenter())
	}
}

// startAmbient 启动环境粒子场；预设不存在时只记录警告
func (s *StoryScene) startAmbient(prefs game.ViewerSettings) {
	if s.desc.Ambient == "" {
		return
	}
	preset, ok := s.deps.Presets[s.desc.Ambient]
	if !ok {
		log.Printf("[StoryScene] Warning: scene %s: unknown ambient preset %q", s.desc.ID, s.desc.Ambient)
		return
	}
	s.ambient = systems.NewParticleField(s.ctx.Scheduler, preset, s.rng)
	s.ambient.ScaleDensity(prefs.ParticleDensity)
	s.ambient.Start(s.bounds(), prefs.ReducedMotion)
}

// Unmount 释放场景持有的全部动画资源
func (s *StoryScene) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	if s.ambient != nil {
		s.ambient.Stop()
	}
	if s.celebration != nil {
		s.celebration.Stop()
		s.celebration = nil
	}
	if s.reveal != nil {
		s.reveal.Reset()
	}
	s.stopSpin()
	s.burst.Teardown()
	s.entityManager.DestroyAll()
	s.primary = 0

	log.Printf("[StoryScene] Unmounted %s", s.desc.ID)
}

// Mounted 返回场景是否处于挂载状态
func (s *StoryScene) Mounted() bool {
	return s.mounted
}

// Resize 更新可见区域尺寸，粒子场保留现有粒子只更新回收边界
func (s *StoryScene) Resize(width, height int) {
	s.width, s.height = float64(width), float64(height)
	if !s.mounted {
		return
	}
	if s.ambient != nil {
		s.ambient.Resize(s.bounds())
	}
	if s.celebration != nil {
		s.celebration.Resize(s.bounds())
	}
	s.relayout()
}

// Trigger 以用户操作相同的路径前进（调试跳过）
func (s *StoryScene) Trigger() {
	if !s.mounted {
		return
	}
	switch s.desc.Kind {
	case config.KindReveal:
		s.triggerReveal()
	case config.KindQuiz:
		s.triggerQuiz()
	case config.KindLetter:
		s.triggerLetter()
	case config.KindProposal:
		s.triggerProposal()
	case config.KindSpin:
		s.triggerSpin()
	case config.KindFinal:
		// 终点场景没有后继
	default:
		s.advance()
	}
}

// Update 更新爆发特效和按钮交互
// 按钮回调可能触发转场并同步卸载本场景，所以按钮系统最后更新
func (s *StoryScene) Update(deltaTime float64) {
	if !s.mounted {
		return
	}
	in := s.deps.Input()
	s.burst.Update(deltaTime)

	if s.desc.Kind == config.KindLetter && s.updateLetter(in) {
		return
	}
	s.buttonSystem.Update(in)
}

// Draw 绘制场景
func (s *StoryScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if !s.mounted {
		return
	}
	if s.ambient != nil {
		s.ambient.Draw(screen)
	}

	l := &s.layout
	utils.DrawRoundedPanel(screen, l.cardX, l.cardY, l.cardW, l.cardH, config.CardRadius, config.CardColor)

	cx := l.contentX + l.contentW/2
	if s.titleVisible() {
		utils.DrawWrappedText(screen, s.desc.Title, s.fonts.title, cx, l.titleY, l.contentW, config.LineSpacing, config.TextColor)
	}
	if s.bodyVisible() {
		utils.DrawWrappedText(screen, s.desc.Body, s.fonts.body, cx, l.bodyY, l.contentW, config.LineSpacing, config.MutedTextColor)
	}

	switch s.desc.Kind {
	case config.KindReveal:
		s.drawReveal(screen)
	case config.KindQuiz:
		s.drawQuiz(screen)
	case config.KindLetter:
		s.drawLetter(screen)
	case config.KindGallery:
		s.drawGallery(screen)
	case config.KindSpin:
		s.drawSpin(screen)
	}

	s.buttonRender.Draw(screen)
	s.burst.Draw(screen)
	if s.celebration != nil {
		s.celebration.Draw(screen)
	}
}

func (s *StoryScene) titleVisible() bool {
	if s.desc.Kind == config.KindProposal {
		return s.proposal.headlineVisible
	}
	return true
}

func (s *StoryScene) bodyVisible() bool {
	switch s.desc.Kind {
	case config.KindLetter:
		return false // 信的正文由打字机绘制
	case config.KindProposal:
		return s.proposal.subtextVisible
	}
	return true
}

// advance 请求转场；每次激活只有第一次调用生效
func (s *StoryScene) advance() {
	if s.ctx.Advance != nil {
		s.ctx.Advance()
	}
}

// emitBurst 在 (x, y) 爆发庆祝字形；减少动态效果时不爆发
func (s *StoryScene) emitBurst(x, y float64) int {
	if s.desc.Burst <= 0 || s.reducedMotion {
		return 0
	}
	return s.burst.Emit(x, y, s.desc.Burst)
}

func (s *StoryScene) bounds() particle.Bounds {
	return particle.Bounds{W: s.width, H: s.height}
}

func (s *StoryScene) cardCenter() (float64, float64) {
	return s.layout.cardX + s.layout.cardW/2, s.layout.cardY + s.layout.cardH/2
}

// newButton 创建按钮实体，宽度随文字自适应
func (s *StoryScene) newButton(label string, style components.ButtonStyle, isDefault bool, onClick func()) ecs.EntityID {
	return entities.NewButton(s.entityManager, 0, 0, entities.ButtonSpec{
		Label:   label,
		Font:    s.fonts.button,
		Style:   style,
		Width:   s.buttonWidth(label),
		Height:  config.ButtonHeight,
		Default: isDefault,
		OnClick: onClick,
	})
}

func (s *StoryScene) buttonWidth(label string) float64 {
	if s.fonts.button == nil {
		return config.ButtonWidth
	}
	w, _ := text.Measure(label, s.fonts.button, 0)
	return math.Max(config.ButtonWidth, w+config.ButtonHeight)
}

// button 返回按钮组件，实体不存在时返回 nil
func (s *StoryScene) button(id ecs.EntityID) *components.ButtonComponent {
	if id == 0 || s.entityManager == nil {
		return nil
	}
	b, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return b
}

func (s *StoryScene) setButtonVisible(id ecs.EntityID, visible bool) {
	if b := s.button(id); b != nil {
		b.Visible = visible
	}
}

// fade 返回按 alpha 缩放的预乘颜色
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// after 登记本次激活专属的延时回调
func (s *StoryScene) after(d time.Duration, fn func()) {
	if s.ctx.Timers == nil {
		return
	}
	s.ctx.Timers.After(d, fn)
}
