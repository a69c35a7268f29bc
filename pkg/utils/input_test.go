package utils

import "testing"

func TestInputStateClickedIn(t *testing.T) {
	tests := []struct {
		name  string
		state InputState
		want  bool
	}{
		{"矩形内点击", InputState{JustPressed: true, X: 110, Y: 60}, true},
		{"矩形外点击", InputState{JustPressed: true, X: 10, Y: 60}, false},
		{"矩形内悬停不算点击", InputState{X: 110, Y: 60}, false},
		{"左上角边界", InputState{JustPressed: true, X: 100, Y: 50}, true},
		{"右下角边界之外", InputState{JustPressed: true, X: 301, Y: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.ClickedIn(100, 50, 200, 50); got != tt.want {
				t.Errorf("ClickedIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputStateHoveringIn(t *testing.T) {
	s := InputState{X: 150, Y: 75}
	if !s.HoveringIn(100, 50, 200, 50) {
		t.Error("pointer inside the rect should hover")
	}
	if s.HoveringIn(0, 0, 100, 50) {
		t.Error("pointer outside the rect should not hover")
	}
}
