package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/storybook/internal/particle"
	"github.com/gonewx/storybook/pkg/components"
	"github.com/gonewx/storybook/pkg/config"
	"github.com/gonewx/storybook/pkg/ecs"
	"github.com/gonewx/storybook/pkg/systems"
	"github.com/gonewx/storybook/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// galleryState 回忆相册状态：逐页翻看，最后一页的"下一页"前进到下一个场景
type galleryState struct {
	page       int
	prevButton ecs.EntityID
}

const (
	galleryImageRatio  = 0.62 // 图片区域高度 / 内容宽度
	galleryImageScreen = 0.42 // 图片区域高度 / 屏幕高度
	galleryNextLabel   = "Next"
	galleryBackLabel   = "Back"
)

// galleryLen 相册的页数（说明和图片取较多的一方）
func galleryLen(desc *config.SceneDescriptor) int {
	return max(len(desc.Items), len(desc.Images))
}

func (s *StoryScene) mountGallery() error {
	s.gallery = galleryState{}

	if len(s.desc.Images) > 0 {
		loaded := s.deps.Media.Preload(s.desc.Images)
		log.Printf("[StoryScene] %s: preloaded %d/%d images", s.desc.ID, loaded, len(s.desc.Images))
		if len(s.desc.Items) == 0 && s.loadedImages() == 0 {
			return fmt.Errorf("gallery has no captions and none of its %d images could be loaded", len(s.desc.Images))
		}
	}

	s.gallery.prevButton = s.newButton(galleryBackLabel, components.ButtonSecondary, false, s.prevPage)
	s.setButtonVisible(s.gallery.prevButton, false)
	s.primary = s.newButton(s.nextLabel(), components.ButtonPrimary, true, s.nextPage)
	return nil
}

func (s *StoryScene) loadedImages() int {
	n := 0
	for _, path := range s.desc.Images {
		if s.deps.Media.IsLoaded(path) {
			n++
		}
	}
	return n
}

// Page 返回相册当前页（从 0 开始）
func (s *StoryScene) Page() int {
	return s.gallery.page
}

func (s *StoryScene) nextLabel() string {
	if s.gallery.page >= galleryLen(&s.desc)-1 {
		return s.desc.Button
	}
	return galleryNextLabel
}

func (s *StoryScene) nextPage() {
	if s.gallery.page >= galleryLen(&s.desc)-1 {
		s.advance()
		return
	}
	s.setPage(s.gallery.page + 1)
}

func (s *StoryScene) prevPage() {
	if s.gallery.page > 0 {
		s.setPage(s.gallery.page - 1)
	}
}

func (s *StoryScene) setPage(page int) {
	s.gallery.page = page
	s.setButtonVisible(s.gallery.prevButton, page > 0)
	if b := s.button(s.primary); b != nil {
		b.Label = s.nextLabel()
		b.Width = s.buttonWidth(b.Label)
	}
	s.placeButtons()
}

func (s *StoryScene) galleryBlockHeight(l *sceneLayout) float64 {
	l.imageH = 0
	if len(s.desc.Images) > 0 {
		l.imageH = l.contentW * galleryImageRatio
		if s.height > 0 {
			l.imageH = math.Min(l.imageH, s.height*galleryImageScreen)
		}
	}

	captionH := 0.0
	for _, item := range s.desc.Items {
		captionH = math.Max(captionH, utils.WrappedHeight(item, s.fonts.item, l.contentW, config.LineSpacing))
	}
	if l.imageH > 0 && captionH > 0 {
		return l.imageH + config.ItemSpacing + captionH
	}
	return l.imageH + captionH
}

func (s *StoryScene) drawGallery(screen *ebiten.Image) {
	l := &s.layout
	page := s.gallery.page
	cx := l.contentX + l.contentW/2
	y := l.blockY

	if l.imageH > 0 {
		var img *ebiten.Image
		if page < len(s.desc.Images) {
			img = s.deps.Media.Image(s.desc.Images[page])
		}
		s.drawPhoto(screen, img, l.contentX, y, l.contentW, l.imageH)
		y += l.imageH + config.ItemSpacing
	}
	if page < len(s.desc.Items) {
		utils.DrawWrappedText(screen, s.desc.Items[page], s.fonts.item, cx, y, l.contentW, config.LineSpacing, config.TextColor)
	}

	indicator := fmt.Sprintf("%d / %d", page+1, galleryLen(&s.desc))
	utils.DrawCenteredText(screen, indicator, s.fonts.caption, cx, l.captionY, config.MutedTextColor)
}

// drawPhoto 等比缩放图片放入区域中央；图片不可用时绘制占位心形
func (s *StoryScene) drawPhoto(screen, img *ebiten.Image, x, y, w, h float64) {
	if img == nil {
		utils.DrawRoundedPanel(screen, x, y, w, h, config.CardRadius/2, config.BackgroundColor)
		systems.DrawGlyph(screen, particle.GlyphHeart, x+w/2, y+h/2, math.Min(w, h)*0.25, 0, config.AccentColor, 0.6)
		return
	}

	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Min(w/iw, h/ih)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+(w-iw*scale)/2, y+(h-ih*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
