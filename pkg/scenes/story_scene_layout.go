package scenes

import (
	"math"

	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/entities"
	"github.com/gonewx/storybook/pkg/utils"
)

// sceneLayout 卡片和各区块的位置（屏幕坐标）
// 区块高度按全部内容预留，揭示过程中布局不会跳动
type sceneLayout struct {
	cardX, cardY, cardW, cardH float64
	contentX, contentW         float64

	titleY, bodyY float64
	blockY        float64 // 类型专属区块（条目、选项、信、相册）
	blockH        float64
	captionY      float64
	buttonsY      float64

	itemYs []float64 // 揭示条目相对 blockY 的位置
	imageH float64   // 相册图片区域高度
}

// relayout 根据当前尺寸和内容重新计算布局并摆放按钮
func (s *StoryScene) relayout() {
	l := sceneLayout{}
	l.cardW = config.CardWidth(s.width)
	l.contentW = math.Max(0, l.cardW-2*config.CardPadding)

	y := 0.0
	section := func(h float64) float64 {
		top := y
		if h > 0 {
			y += h + config.SectionSpacing
		}
		return top
	}

	l.titleY = section(utils.WrappedHeight(s.desc.Title, s.fonts.title, l.contentW, config.LineSpacing))
	if s.desc.Kind != config.KindLetter {
		l.bodyY = section(utils.WrappedHeight(s.desc.Body, s.fonts.body, l.contentW, config.LineSpacing))
	}
	l.blockH = s.blockHeight(&l)
	l.blockY = section(l.blockH)
	l.captionY = section(s.captionHeight(l.contentW))
	l.buttonsY = y

	if len(s.rowButtons()) > 0 {
		y += config.ButtonHeight
	} else if y > 0 {
		y -= config.SectionSpacing
	}

	l.cardH = y + 2*config.CardPadding
	l.cardX = (s.width - l.cardW) / 2
	l.cardY = math.Max(config.CardMarginX, (s.height-l.cardH)/2)
	l.contentX = l.cardX + config.CardPadding

	top := l.cardY + config.CardPadding
	l.titleY += top
	l.bodyY += top
	l.blockY += top
	l.captionY += top
	l.buttonsY += top

	s.layout = l
	s.placeButtons()
}

// blockHeight 类型专属区块的高度
func (s *StoryScene) blockHeight(l *sceneLayout) float64 {
	switch s.desc.Kind {
	case config.KindReveal:
		l.itemYs = l.itemYs[:0]
		h := 0.0
		for i, item := range s.desc.Items {
			if i > 0 {
				h += config.ItemSpacing
			}
			l.itemYs = append(l.itemYs, h)
			h += utils.WrappedHeight(item, s.fonts.item, l.contentW, config.LineSpacing)
		}
		return h
	case config.KindQuiz:
		n := float64(len(s.desc.Options))
		if n == 0 {
			return 0
		}
		return n*config.ButtonHeight + (n-1)*config.ButtonSpacing
	case config.KindLetter:
		return utils.WrappedHeight(s.desc.Body, s.fonts.letter, l.contentW, config.LineSpacing)
	case config.KindGallery:
		return s.galleryBlockHeight(l)
	case config.KindSpin:
		return s.reelHeight(l.contentW)
	}
	return 0
}

// captionHeight 说明文字区域的高度
func (s *StoryScene) captionHeight(width float64) float64 {
	lh := utils.LineHeight(s.fonts.caption, config.LineSpacing)
	switch s.desc.Kind {
	case config.KindReveal, config.KindSpin:
		return utils.WrappedHeight(s.desc.Caption, s.fonts.caption, width, config.LineSpacing)
	case config.KindQuiz:
		// 预留两行给选项反馈
		return 2 * lh
	case config.KindGallery:
		return lh // 页码
	}
	return 0
}

// rowButtons 底部按钮行中的按钮（按从左到右的顺序）
func (s *StoryScene) rowButtons() []ecs.EntityID {
	var ids []ecs.EntityID
	switch s.desc.Kind {
	case config.KindGallery:
		ids = append(ids, s.gallery.prevButton, s.primary)
	case config.KindProposal:
		ids = append(ids, s.proposal.acceptButton, s.proposal.declineButton)
	case config.KindSpin:
		if s.spin.result < 0 {
			ids = append(ids, s.spin.spinButton)
		} else {
			ids = append(ids, s.primary, s.spin.retryButton)
		}
	default:
		ids = append(ids, s.primary)
	}

	row := ids[:0]
	for _, id := range ids {
		if id != 0 {
			row = append(row, id)
		}
	}
	return row
}

// placeButtons 摆放底部按钮行和选择题选项
func (s *StoryScene) placeButtons() {
	if s.entityManager == nil {
		return
	}
	l := &s.layout

	row := s.rowButtons()
	total := 0.0
	for i, id := range row {
		if i > 0 {
			total += config.ButtonSpacing
		}
		if b := s.button(id); b != nil {
			total += b.Width
		}
	}
	x := l.contentX + (l.contentW-total)/2
	for _, id := range row {
		b := s.button(id)
		if b == nil {
			continue
		}
		entities.MoveButton(s.entityManager, id, x, l.buttonsY)
		x += b.Width + config.ButtonSpacing
	}

	for i := range s.quiz.options {
		opt := &s.quiz.options[i]
		if b := s.button(opt.button); b != nil {
			b.Width = l.contentW
		}
		y := l.blockY + float64(i)*(config.ButtonHeight+config.ButtonSpacing)
		entities.MoveButton(s.entityManager, opt.button, l.contentX, y)
	}
}
