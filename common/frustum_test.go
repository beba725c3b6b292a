package common

import (
	"math"
	"testing"
)

func testFrustum() Frustum {
	view := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	proj := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	return ExtractFrustum(proj.Mul(view))
}

func TestFrustumContainsSphere(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name   string
		center Vec3
		radius float32
		want   bool
	}{
		{"origin", Vec3{}, 1, true},
		{"behind camera", Vec3{0, 0, 20}, 1, false},
		{"beyond far plane", Vec3{0, 0, -200}, 1, false},
		{"far left", Vec3{-100, 0, 0}, 1, false},
		{"straddling left plane", Vec3{-10.5, 0, 0}, 2, true},
		{"unbounded", Vec3{0, 0, 500}, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("ContainsSphere(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestExtractFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		if l := p.Normal.Len(); !approx(l, 1) {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
	}
}
