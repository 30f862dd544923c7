package cropper

import "testing"

func TestRectDerivedEdges(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 100, Height: 50}
	if got := r.Right(); got != 110 {
		t.Errorf("Right() = %v, want 110", got)
	}
	if got := r.Bottom(); got != 70 {
		t.Errorf("Bottom() = %v, want 70", got)
	}
	if got := r.CenterX(); got != 60 {
		t.Errorf("CenterX() = %v, want 60", got)
	}
	if got := r.CenterY(); got != 45 {
		t.Errorf("CenterY() = %v, want 45", got)
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"normal", Rect{Width: 10, Height: 10}, false},
		{"zero width", Rect{Width: 0, Height: 10}, true},
		{"zero height", Rect{Width: 10, Height: 0}, true},
		{"negative", Rect{Width: -5, Height: 10}, true},
		{"zero value", Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		want       float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"inverted range yields lo", 5, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}
