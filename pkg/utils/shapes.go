package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Point 二维点（像素）
type Point struct {
	X, Y float64
}

// heartSegments 心形轮廓的采样点数
const heartSegments = 28

// HeartPolygon 返回以 (cx, cy) 为中心、宽度约为 size 的心形轮廓
// 使用经典心形参数方程 x=16sin³t, y=13cos t-5cos2t-2cos3t-cos4t，按 rotation 旋转
func HeartPolygon(cx, cy, size, rotation float64) []Point {
	scale := size / 32
	pts := make([]Point, 0, heartSegments)
	for i := 0; i < heartSegments; i++ {
		t := 2 * math.Pi * float64(i) / heartSegments
		s := math.Sin(t)
		x := 16 * s * s * s
		y := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		pts = append(pts, Point{X: x * scale, Y: y * scale})
	}
	return transform(pts, cx, cy, rotation)
}

// SparklePolygon 返回四角星轮廓（外半径 size，内半径 size*0.35）
func SparklePolygon(cx, cy, size, rotation float64) []Point {
	inner := size * 0.35
	pts := make([]Point, 0, 8)
	for i := 0; i < 8; i++ {
		r := size
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi / 4 * float64(i)
		pts = append(pts, Point{X: r * math.Sin(a), Y: -r * math.Cos(a)})
	}
	return transform(pts, cx, cy, rotation)
}

// ConfettiPolygon 返回彩纸条矩形（长 size，宽 size*0.4）
func ConfettiPolygon(cx, cy, size, rotation float64) []Point {
	hw, hh := size/2, size*0.2
	pts := []Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	return transform(pts, cx, cy, rotation)
}

func transform(pts []Point, cx, cy, rotation float64) []Point {
	sin, cos := math.Sincos(rotation)
	for i, p := range pts {
		pts[i] = Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return pts
}

var whiteSubImage *ebiten.Image

// solidSource 返回 1x1 的纯白源图（DrawTriangles 的纹理）
func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// FillPolygon 以 clr 填充多边形，alpha 额外乘到颜色透明度上
func FillPolygon(dst *ebiten.Image, pts []Point, clr color.RGBA, alpha float64) {
	if dst == nil || len(pts) < 3 || alpha <= 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff * float32(math.Min(alpha, 1))
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	dst.DrawTriangles(vs, is, solidSource(), op)
}

// RoundedRectPolygon 返回圆角矩形轮廓，每个角用 6 段折线近似
func RoundedRectPolygon(x, y, w, h, radius float64) []Point {
	radius = math.Max(0, math.Min(radius, math.Min(w, h)/2))
	corners := [4]struct{ cx, cy, start float64 }{
		{x + w - radius, y + radius, -math.Pi / 2},
		{x + w - radius, y + h - radius, 0},
		{x + radius, y + h - radius, math.Pi / 2},
		{x + radius, y + radius, math.Pi},
	}
	const segments = 6
	pts := make([]Point, 0, 4*(segments+1))
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c.start + math.Pi/2*float64(i)/segments
			pts = append(pts, Point{X: c.cx + radius*math.Cos(a), Y: c.cy + radius*math.Sin(a)})
		}
	}
	return pts
}

// DrawRoundedPanel 绘制圆角面板（卡片、按钮背景）
func DrawRoundedPanel(dst *ebiten.Image, x, y, w, h, radius float64, clr color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	FillPolygon(dst, RoundedRectPolygon(x, y, w, h, radius), clr, 1)
}

// PointInRect 检查点是否在矩形内
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
