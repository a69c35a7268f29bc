package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/entities"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// quizState 选择题状态
// 错误选项选过后变暗；所有可见的错误选项都尝试过之后，隐藏的选项出现
type quizState struct {
	options  []quizOption
	response string // 最近一次选择的反馈
	answered bool   // 已经选中正确答案
}

type quizOption struct {
	button ecs.EntityID
	option config.QuizOption
	tried  bool
}

func validateQuiz(options []config.QuizOption) error {
	if len(options) == 0 {
		return fmt.Errorf("quiz has no options")
	}
	for _, o := range options {
		if o.Correct {
			return nil
		}
	}
	return fmt.Errorf("quiz has no correct option")
}

func (s *StoryScene) mountQuiz() {
	s.quiz = quizState{}
	for i, opt := range s.desc.Options {
		index := i
		id := s.newButton(opt.Label, components.ButtonOption, false, func() { s.choose(index) })
		s.setButtonVisible(id, !opt.Hidden)
		s.quiz.options = append(s.quiz.options, quizOption{button: id, option: opt})
	}
}

// choose 处理选项点击
func (s *StoryScene) choose(index int) {
	if s.quiz.answered || index < 0 || index >= len(s.quiz.options) {
		return
	}
	opt := &s.quiz.options[index]
	if opt.tried {
		return
	}
	opt.tried = true
	s.quiz.response = opt.option.Response

	if !opt.option.Correct {
		if b := s.button(opt.button); b != nil {
			b.Marked = true
			b.Enabled = false
		}
		if s.allWrongTried() {
			s.revealHiddenOptions()
		}
		return
	}

	s.quiz.answered = true
	for _, o := range s.quiz.options {
		if b := s.button(o.button); b != nil {
			b.Enabled = false
		}
	}
	if x, y, w, h, ok := entities.ButtonRect(s.entityManager, opt.button); ok {
		s.emitBurst(x+w/2, y+h/2)
	}
	log.Printf("[StoryScene] %s: correct answer %q, leaving in %v", s.desc.ID, opt.option.Label, s.desc.ExitDelay)
	s.after(s.desc.ExitDelay, s.advance)
}

// allWrongTried 所有可见的错误选项是否都已经尝试过
func (s *StoryScene) allWrongTried() bool {
	for _, o := range s.quiz.options {
		if !o.option.Correct && !o.option.Hidden && !o.tried {
			return false
		}
	}
	return true
}

func (s *StoryScene) revealHiddenOptions() {
	for _, o := range s.quiz.options {
		if o.option.Hidden {
			s.setButtonVisible(o.button, true)
		}
	}
}

// triggerQuiz 直接选择第一个正确选项；已经答对时不再等待离场延时
func (s *StoryScene) triggerQuiz() {
	if s.quiz.answered {
		s.advance()
		return
	}
	s.revealHiddenOptions()
	for i, o := range s.quiz.options {
		if o.option.Correct {
			s.choose(i)
			return
		}
	}
}

func (s *StoryScene) drawQuiz(screen *ebiten.Image) {
	if s.quiz.response == "" {
		return
	}
	l := &s.layout
	clr := config.MutedTextColor
	if s.quiz.answered {
		clr = config.AccentColor
	}
	utils.DrawWrappedText(screen, s.quiz.response, s.fonts.caption, l.contentX+l.contentW/2, l.captionY,
		l.contentW, config.LineSpacing, clr)
}
