package scenes

import (
	"unicode/utf8"

	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// letterState 打字机状态
// 揭示调度器的"条目"是信的字符，间隔为打字速度
type letterState struct {
	runes int // 正文字符总数
}

func (s *StoryScene) mountLetter() {
	s.letter.runes = utf8.RuneCountInString(s.desc.Body)
	s.reveal = systems.NewRevealScheduler(s.ctx.Scheduler, systems.RevealTiming{
		BaseOffset:   s.desc.BaseOffset,
		SettleOffset: s.desc.SettleOffset,
	})
	s.reveal.OnComplete(func() {
		if s.mounted {
			s.setButtonVisible(s.primary, true)
		}
	})

	s.primary = s.newButton(s.desc.Button, components.ButtonPrimary, true, s.advance)
	s.setButtonVisible(s.primary, false)
}

func (s *StoryScene) startLetter() {
	if s.reducedMotion {
		s.reveal.RevealAll(s.letter.runes)
		return
	}
	s.reveal.Start(s.letter.runes, s.desc.TypingSpeed)
}

// updateLetter 打字过程中点击或确认键直接显示全文
// 返回 true 表示本帧输入已被消耗
func (s *StoryScene) updateLetter(in utils.InputState) bool {
	if s.reveal.Complete() || !(in.JustPressed || in.Confirm) {
		return false
	}
	s.reveal.RevealAll(s.letter.runes)
	return true
}

// triggerLetter 显示全文并前进
func (s *StoryScene) triggerLetter() {
	if !s.reveal.Complete() {
		s.reveal.RevealAll(s.letter.runes)
	}
	s.advance()
}

// drawLetter 按已揭示的字符数绘制换行后的信
func (s *StoryScene) drawLetter(screen *ebiten.Image) {
	l := &s.layout
	lines := utils.WrapText(s.desc.Body, s.fonts.letter, l.contentW)

	// 换行会去掉断行处的空格，可见字符数按比例映射到换行后的文本
	total := 0
	for _, line := range lines {
		total += utf8.RuneCountInString(line)
	}
	remaining := total
	if s.letter.runes > 0 && !s.reveal.Complete() {
		remaining = s.reveal.Visible() * total / s.letter.runes
	}

	lh := utils.LineHeight(s.fonts.letter, config.LineSpacing)
	cx := l.contentX + l.contentW/2
	for i, line := range lines {
		if remaining <= 0 {
			break
		}
		runes := []rune(line)
		n := min(len(runes), remaining)
		remaining -= n
		// 逐字出现时保持行的位置不变：按整行宽度居中后左对齐绘制
		s.drawLetterLine(screen, line, string(runes[:n]), cx, l.blockY+float64(i)*lh)
	}
}

func (s *StoryScene) drawLetterLine(screen *ebiten.Image, full, typed string, cx, y float64) {
	if typed == full {
		utils.DrawCenteredText(screen, typed, s.fonts.letter, cx, y, config.TextColor)
		return
	}
	w := utils.MeasureText(full, s.fonts.letter)
	utils.DrawText(screen, typed, s.fonts.letter, cx-w/2, y, config.TextColor)
}
