package scenes

import (
	"log"
	"time"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/entities"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/utils"
)

// 揭晓场景的出场节奏：标题 -> 副标题 -> 按钮
const (
	headlineDelay    = 160 * time.Millisecond
	subtextDelay     = 920 * time.Millisecond
	buttonsDelay     = 1620 * time.Millisecond
	celebrationDelay = 260 * time.Millisecond

	dodgeAttempts = 8
)

// proposalState 揭晓场景状态
// "是"触发庆祝并在 ExitDelay 后前进；"否"从不前进，悬停或点击时躲开
type proposalState struct {
	acceptButton  ecs.EntityID
	declineButton ecs.EntityID

	headlineVisible bool
	subtextVisible  bool
	buttonsVisible  bool

	accepted bool
	declined bool
	dodges   int
}

func (s *StoryScene) mountProposal() {
	s.proposal = proposalState{}
	s.proposal.acceptButton = s.newButton(s.desc.Accept, components.ButtonPrimary, true, s.accept)
	s.proposal.declineButton = s.newButton(s.desc.Decline, components.ButtonSecondary, false, s.decline)
	if b := s.button(s.proposal.declineButton); b != nil {
		b.OnHover = s.dodge
	}
	s.setButtonVisible(s.proposal.acceptButton, false)
	s.setButtonVisible(s.proposal.declineButton, false)
}

func (s *StoryScene) startProposal() {
	if s.reducedMotion {
		s.showHeadline()
		s.showSubtext()
		s.showProposalButtons()
		return
	}
	s.after(headlineDelay, s.showHeadline)
	s.after(subtextDelay, s.showSubtext)
	s.after(buttonsDelay, s.showProposalButtons)
}

func (s *StoryScene) showHeadline() { s.proposal.headlineVisible = true }

func (s *StoryScene) showSubtext() { s.proposal.subtextVisible = true }

func (s *StoryScene) showProposalButtons() {
	if s.proposal.accepted {
		return
	}
	s.proposal.buttonsVisible = true
	s.setButtonVisible(s.proposal.acceptButton, true)
	s.setButtonVisible(s.proposal.declineButton, true)
}

// accept 只生效一次：隐藏按钮，短暂停顿后庆祝，随后前进
func (s *StoryScene) accept() {
	if s.proposal.accepted {
		return
	}
	s.proposal.accepted = true
	s.proposal.headlineVisible = true
	s.proposal.subtextVisible = true
	s.proposal.buttonsVisible = false
	s.setButtonVisible(s.proposal.acceptButton, false)
	s.setButtonVisible(s.proposal.declineButton, false)

	log.Printf("[StoryScene] %s: accepted", s.desc.ID)
	s.after(celebrationDelay, func() {
		s.celebrate()
		s.after(s.desc.ExitDelay, s.advance)
	})
}

// triggerProposal 与点击"是"相同；已经接受时直接前进
func (s *StoryScene) triggerProposal() {
	if s.proposal.accepted {
		s.advance()
		return
	}
	s.accept()
}

// celebrate 爆发心形并下一场彩纸雨
func (s *StoryScene) celebrate() {
	if !s.mounted {
		return
	}
	s.emitBurst(s.cardCenter())

	preset, ok := s.deps.Presets[particle.PresetConfetti]
	if !ok || s.celebration != nil {
		return
	}
	s.celebration = systems.NewParticleField(s.ctx.Scheduler, preset, s.rng)
	s.celebration.Start(s.bounds(), s.reducedMotion)
}

// decline 不会前进：换上回复文字并躲开
func (s *StoryScene) decline() {
	if s.proposal.accepted {
		return
	}
	if !s.proposal.declined && s.desc.DeclineReply != "" {
		if b := s.button(s.proposal.declineButton); b != nil {
			b.Label = s.desc.DeclineReply
			b.Width = s.buttonWidth(b.Label)
		}
	}
	s.proposal.declined = true
	s.dodge()
}

// dodge 把"否"按钮移到屏幕内不与"是"重叠的随机位置
func (s *StoryScene) dodge() {
	b := s.button(s.proposal.declineButton)
	if b == nil || s.proposal.accepted || s.width <= 0 || s.height <= 0 {
		return
	}
	ax, ay, aw, ah, _ := entities.ButtonRect(s.entityManager, s.proposal.acceptButton)

	maxX := s.width - b.Width - config.CardMarginX
	maxY := s.height - b.Height - config.CardMarginX
	if maxX <= config.CardMarginX || maxY <= config.CardMarginX {
		return
	}

	var x, y float64
	for attempt := 0; attempt < dodgeAttempts; attempt++ {
		x = particle.RandomInRange(s.rng, config.CardMarginX, maxX)
		y = particle.RandomInRange(s.rng, config.CardMarginX, maxY)
		if !rectsOverlap(x, y, b.Width, b.Height, ax, ay, aw, ah) {
			break
		}
	}
	entities.MoveButton(s.entityManager, s.proposal.declineButton, x, y)
	s.proposal.dodges++
}

// Dodges 返回"否"按钮躲开的次数
func (s *StoryScene) Dodges() int {
	return s.proposal.dodges
}

func rectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return utils.PointInRect(x1, y1, x2-w1, y2-h1, w1+w2, h1+h2)
}
