package utils

import (
	"math"
	"testing"
)

func bbox(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

func TestHeartPolygon(t *testing.T) {
	pts := HeartPolygon(100, 100, 32, 0)
	if len(pts) != heartSegments {
		t.Fatalf("len = %d, want %d", len(pts), heartSegments)
	}
	minX, minY, maxX, maxY := bbox(pts)
	if w := maxX - minX; w < 30 || w > 33 {
		t.Errorf("heart width = %v, want ~32", w)
	}
	// 心尖朝下：最低点在中心下方
	if maxY <= 100 || minY >= 100 {
		t.Errorf("heart should straddle its centre vertically: [%v, %v]", minY, maxY)
	}
}

func TestSparklePolygonRotation(t *testing.T) {
	pts := SparklePolygon(0, 0, 10, math.Pi/2)
	if len(pts) != 8 {
		t.Fatalf("len = %d, want 8", len(pts))
	}
	// 第一个顶点原本朝上 (0,-10)，旋转 90° 后朝右
	if math.Abs(pts[0].X-10) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
		t.Errorf("rotated tip = %+v, want (10, 0)", pts[0])
	}
}

func TestConfettiPolygon(t *testing.T) {
	minX, minY, maxX, maxY := bbox(ConfettiPolygon(50, 50, 10, 0))
	if maxX-minX != 10 || math.Abs((maxY-minY)-4) > 1e-9 {
		t.Errorf("confetti size = %vx%v, want 10x4", maxX-minX, maxY-minY)
	}
}

func TestRoundedRectPolygon(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"普通圆角", 12},
		{"半径过大被截断", 500},
		{"无圆角", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minX, minY, maxX, maxY := bbox(RoundedRectPolygon(10, 20, 200, 60, tt.radius))
			if math.Abs(minX-10) > 1e-9 || math.Abs(maxX-210) > 1e-9 {
				t.Errorf("x extent = [%v, %v], want [10, 210]", minX, maxX)
			}
			if math.Abs(minY-20) > 1e-9 || math.Abs(maxY-80) > 1e-9 {
				t.Errorf("y extent = [%v, %v], want [20, 80]", minY, maxY)
			}
		})
	}
}

func TestPointInRect(t *testing.T) {
	if !PointInRect(5, 5, 0, 0, 10, 10) {
		t.Error("point inside should match")
	}
	if PointInRect(11, 5, 0, 0, 10, 10) {
		t.Error("point outside should not match")
	}
}
