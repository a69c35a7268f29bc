package scenes

import (
	"log"
	"time"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 条目出现时的淡入时长和上浮距离
const (
	revealFadeIn = 300 * time.Millisecond
	revealRise   = 12.0
)

// mountReveal 逐项揭示列表：完成后显示说明文字、爆发庆祝字形并出现按钮
func (s *StoryScene) mountReveal() {
	s.reveal = systems.NewRevealScheduler(s.ctx.Scheduler, systems.RevealTiming{
		BaseOffset:   s.desc.BaseOffset,
		SettleOffset: s.desc.SettleOffset,
	})
	s.revealedAt = make([]time.Duration, len(s.desc.Items))
	for i := range s.revealedAt {
		s.revealedAt[i] = -1
	}
	s.reveal.OnTick(func(visible int) {
		now := s.now()
		for i := 0; i < visible && i < len(s.revealedAt); i++ {
			if s.revealedAt[i] < 0 {
				s.revealedAt[i] = now
			}
		}
	})
	s.reveal.OnComplete(s.onRevealComplete)

	if !s.desc.AutoAdvance {
		s.primary = s.newButton(s.desc.Button, components.ButtonPrimary, true, s.advance)
		s.setButtonVisible(s.primary, false)
	}
}

func (s *StoryScene) startReveal() {
	n := len(s.desc.Items)
	if s.reducedMotion {
		s.reveal.RevealAll(n)
		return
	}
	s.reveal.Start(n, s.desc.ItemDelay)
}

func (s *StoryScene) onRevealComplete() {
	if !s.mounted {
		return
	}
	s.captionVisible = true
	s.setButtonVisible(s.primary, true)
	if n := s.emitBurst(s.cardCenter()); n > 0 {
		log.Printf("[StoryScene] %s: reveal complete, burst of %d", s.desc.ID, n)
	}
	if s.desc.AutoAdvance {
		s.after(s.desc.ExitDelay, s.advance)
	}
}

// triggerReveal 立即揭示全部条目并前进
func (s *StoryScene) triggerReveal() {
	if !s.reveal.Complete() {
		s.reveal.RevealAll(len(s.desc.Items))
	}
	s.advance()
}

func (s *StoryScene) drawReveal(screen *ebiten.Image) {
	l := &s.layout
	cx := l.contentX + l.contentW/2
	now := s.now()

	for i := 0; i < s.reveal.Visible() && i < len(s.desc.Items) && i < len(l.itemYs); i++ {
		progress := 1.0
		if !s.reducedMotion && i < len(s.revealedAt) && s.revealedAt[i] >= 0 {
			progress = utils.Progress(now-s.revealedAt[i], revealFadeIn)
		}
		rise := utils.Lerp(revealRise, 0, utils.EaseOutCubic(progress))
		utils.DrawWrappedText(screen, s.desc.Items[i], s.fonts.item, cx, l.blockY+l.itemYs[i]+rise,
			l.contentW, config.LineSpacing, fade(config.TextColor, utils.EaseInOutCubic(progress)))
	}

	if s.captionVisible {
		utils.DrawWrappedText(screen, s.desc.Caption, s.fonts.caption, cx, l.captionY,
			l.contentW, config.LineSpacing, config.AccentColor)
	}
}

// now 返回虚拟时钟的当前时间
func (s *StoryScene) now() time.Duration {
	if s.ctx.Scheduler == nil {
		return 0
	}
	return s.ctx.Scheduler.Now()
}
