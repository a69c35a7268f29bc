package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// OpenFunc 打开媒体文件（磁盘或嵌入资源）
type OpenFunc func(path string) (io.ReadCloser, error)

// FontWeight 内置字体字重
type FontWeight int

const (
	FontRegular FontWeight = iota
	FontBold
)

// MediaRegistry 进程级媒体注册表
//
// 在 app.NewApp 中创建一次，通过引用传递给各个场景，从不隐式重置。
// 同一路径只加载一次；加载失败会被记录但不是致命错误，
// 场景查询不到图片时绘制占位内容即可。
//
// Thread Safety Note:
// 与游戏主循环同线程使用，内部 map 不加锁。
type MediaRegistry struct {
	open OpenFunc

	images map[string]*ebiten.Image // path -> Image
	failed map[string]error         // path -> 加载错误

	faceSources map[FontWeight]*text.GoTextFaceSource
	faces       map[fontKey]*text.GoTextFace
}

type fontKey struct {
	weight FontWeight
	size   float64
}

// NewMediaRegistry 创建媒体注册表
// open 为 nil 时从磁盘读取
func NewMediaRegistry(open OpenFunc) *MediaRegistry {
	if open == nil {
		open = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}
	return &MediaRegistry{
		open:        open,
		images:      make(map[string]*ebiten.Image),
		failed:      make(map[string]error),
		faceSources: make(map[FontWeight]*text.GoTextFaceSource),
		faces:       make(map[fontKey]*text.GoTextFace),
	}
}

// Preload 加载一组图片，返回本次新加载成功的数量
// 已加载或已失败的路径不会重复尝试
func (r *MediaRegistry) Preload(paths []string) int {
	loaded := 0
	for _, path := range paths {
		if path == "" || r.IsLoaded(path) {
			continue
		}
		if _, failed := r.failed[path]; failed {
			continue
		}
		if _, err := r.LoadImage(path); err != nil {
			log.Printf("[MediaRegistry] preload %s failed: %v", path, err)
			continue
		}
		loaded++
	}
	return loaded
}

// LoadImage loads an image and caches it. Failures are remembered.
func (r *MediaRegistry) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := r.images[path]; ok {
		return img, nil
	}

	file, err := r.open(path)
	if err != nil {
		err = fmt.Errorf("failed to open image file %s: %w", path, err)
		r.failed[path] = err
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		err = fmt.Errorf("failed to decode image %s: %w", path, err)
		r.failed[path] = err
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	r.images[path] = ebitenImg
	delete(r.failed, path)
	return ebitenImg, nil
}

// IsLoaded 检查路径是否已成功加载
func (r *MediaRegistry) IsLoaded(path string) bool {
	_, ok := r.images[path]
	return ok
}

// Failed 返回路径的加载错误（未失败时为 nil）
func (r *MediaRegistry) Failed(path string) error {
	return r.failed[path]
}

// Image 返回已加载的图片，未加载时返回 nil
func (r *MediaRegistry) Image(path string) *ebiten.Image {
	return r.images[path]
}

// Font 返回指定字重和字号的文字字体（Go 字体族，无需资源文件）
// 字体源解析失败时返回 nil，调用方跳过文字绘制
func (r *MediaRegistry) Font(weight FontWeight, size float64) *text.GoTextFace {
	key := fontKey{weight: weight, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}

	source, ok := r.faceSources[weight]
	if !ok {
		data := goregular.TTF
		if weight == FontBold {
			data = gobold.TTF
		}
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			log.Printf("[MediaRegistry] failed to create font source: %v", err)
			return nil
		}
		r.faceSources[weight] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	r.faces[key] = face
	return face
}
