package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/game"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 转盘节奏：匀速滚动 spinDuration，然后逐步减速 spinSlowSteps 次停在结果上
const (
	spinTick        = 80 * time.Millisecond
	spinDuration    = 3200 * time.Millisecond
	spinSlowStart   = 120 * time.Millisecond
	spinSlowSteps   = 8
	spinSlowBase    = 70 * time.Millisecond
	spinSlowGrow    = 90 * time.Millisecond
	spinSettlePause = 1400 * time.Millisecond

	spinReelPadding = 16.0
	spinLabel       = "Spin"
	spinningLabel   = "Spinning..."
	retryLabel      = "Retry"
)

// spinState 转盘状态
// 滚动和减速的所有回调都登记在 timers 中，重来和卸载时一次性取消
type spinState struct {
	timers *game.TimerGroup

	spinButton  ecs.EntityID
	retryButton ecs.EntityID

	index    int  // 滚动中当前显示的选项
	spinning bool
	result   int  // 停下的选项，-1 表示还没有结果
	settled  bool // 结果出现后的停顿已经结束，显示说明文字
	spins    int
}

// slowStepDelay 第 step 次减速之后到下一次的间隔
func slowStepDelay(step int) time.Duration {
	return spinSlowBase + time.Duration(step)*spinSlowGrow
}

// SpinLandingAfter 从点击转动到停在结果上的总时长
func SpinLandingAfter() time.Duration {
	d := spinDuration + spinSlowStart
	for step := 1; step < spinSlowSteps; step++ {
		d += slowStepDelay(step)
	}
	return d
}

func validateSpin(desc *config.SceneDescriptor) error {
	if len(desc.Items) == 0 {
		return fmt.Errorf("spin wheel has no options")
	}
	return nil
}

func (s *StoryScene) mountSpin() {
	s.spin = spinState{
		timers: game.NewTimerGroup(s.ctx.Scheduler),
		index:  s.rng.Intn(len(s.desc.Items)),
		result: -1,
	}
	s.spin.spinButton = s.newButton(spinLabel, components.ButtonPrimary, true, s.startSpin)
	s.primary = s.newButton(s.desc.Button, components.ButtonPrimary, true, s.advance)
	s.spin.retryButton = s.newButton(retryLabel, components.ButtonSecondary, false, s.retrySpin)
	s.showSpinButtons()
}

// startSpin 开始一次转动；转动中或已有结果时忽略
func (s *StoryScene) startSpin() {
	if !s.mounted || s.spin.spinning || s.spin.result >= 0 {
		return
	}
	s.spin.spins++
	final := s.rng.Intn(len(s.desc.Items))
	if s.reducedMotion {
		s.landSpin(final)
		return
	}

	s.spin.spinning = true
	if b := s.button(s.spin.spinButton); b != nil {
		b.Label = spinningLabel
		b.Enabled = false
	}

	var tickID game.TimerID
	var tick func()
	tick = func() {
		s.spin.index = (s.spin.index + 1) % len(s.desc.Items)
		tickID = s.spin.timers.After(spinTick, tick)
	}
	tickID = s.spin.timers.After(spinTick, tick)

	s.spin.timers.After(spinDuration, func() {
		s.spin.timers.Cancel(tickID)
		step := 0
		var slow func()
		slow = func() {
			step++
			s.spin.index = (final + step) % len(s.desc.Items)
			if step < spinSlowSteps {
				s.spin.timers.After(slowStepDelay(step), slow)
				return
			}
			s.landSpin(final)
		}
		s.spin.timers.After(spinSlowStart, slow)
	})
	log.Printf("[StoryScene] %s: spin #%d started", s.desc.ID, s.spin.spins)
}

// landSpin 停在结果上：爆发庆祝字形，显示完成和重来按钮
func (s *StoryScene) landSpin(final int) {
	s.spin.timers.CancelAll()
	s.spin.spinning = false
	s.spin.result = final
	s.spin.index = final
	s.showSpinButtons()

	x, y := s.reelCenter()
	s.emitBurst(x, y)
	log.Printf("[StoryScene] %s: spin landed on %q", s.desc.ID, s.desc.Items[final])

	if s.reducedMotion {
		s.spin.settled = true
		return
	}
	s.spin.timers.After(spinSettlePause, func() { s.spin.settled = true })
}

// retrySpin 取消所有未触发的回调并回到转动之前
func (s *StoryScene) retrySpin() {
	if !s.mounted {
		return
	}
	if n := s.spin.timers.CancelAll(); n > 0 {
		log.Printf("[StoryScene] %s: retry cancelled %d pending callbacks", s.desc.ID, n)
	}
	s.spin.spinning = false
	s.spin.result = -1
	s.spin.settled = false
	s.spin.index = s.rng.Intn(len(s.desc.Items))
	s.showSpinButtons()
}

// showSpinButtons 没有结果时只显示转动按钮，有结果时显示完成和重来
func (s *StoryScene) showSpinButtons() {
	landed := s.spin.result >= 0
	if b := s.button(s.spin.spinButton); b != nil {
		b.Label = spinLabel
		b.Enabled = true
		b.Visible = !landed
	}
	s.setButtonVisible(s.primary, landed)
	s.setButtonVisible(s.spin.retryButton, landed)
	s.placeButtons()
}

// triggerSpin 立即停在一个结果上并前进
func (s *StoryScene) triggerSpin() {
	if s.spin.result < 0 {
		s.landSpin(s.rng.Intn(len(s.desc.Items)))
	}
	s.advance()
}

// stopSpin 卸载时取消转盘的全部回调
func (s *StoryScene) stopSpin() {
	if s.spin.timers != nil {
		s.spin.timers.CancelAll()
	}
	s.spin.spinning = false
}

// SpinResult 返回停下的选项下标，还没有结果时返回 -1
func (s *StoryScene) SpinResult() int {
	return s.spin.result
}

func (s *StoryScene) reelHeight(width float64) float64 {
	h := 2 * utils.LineHeight(s.fonts.item, config.LineSpacing)
	for _, item := range s.desc.Items {
		h = max(h, utils.WrappedHeight(item, s.fonts.item, width-2*spinReelPadding, config.LineSpacing))
	}
	return h + 2*spinReelPadding
}

func (s *StoryScene) reelCenter() (float64, float64) {
	l := &s.layout
	return l.contentX + l.contentW/2, l.blockY + l.blockH/2
}

func (s *StoryScene) drawSpin(screen *ebiten.Image) {
	l := &s.layout
	utils.DrawRoundedPanel(screen, l.contentX, l.blockY, l.contentW, l.blockH, config.ButtonRadius, config.ReelColor)

	index, clr := s.spin.index, config.TextColor
	if s.spin.result >= 0 {
		index, clr = s.spin.result, config.AccentColor
	}
	if index < 0 || index >= len(s.desc.Items) {
		return
	}
	label := s.desc.Items[index]
	w := l.contentW - 2*spinReelPadding
	h := utils.WrappedHeight(label, s.fonts.item, w, config.LineSpacing)
	cx, cy := s.reelCenter()
	utils.DrawWrappedText(screen, label, s.fonts.item, cx, cy-h/2, w, config.LineSpacing, clr)

	if s.spin.settled && s.desc.Caption != "" {
		utils.DrawWrappedText(screen, s.desc.Caption, s.fonts.caption, cx, l.captionY,
			l.contentW, config.LineSpacing, config.MutedTextColor)
	}
}
