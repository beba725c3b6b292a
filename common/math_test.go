package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, -5, 0}, Vec3{0, -1, 0}},
		{"diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"zero", Vec3{}, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Vec3{1, 2, 3}, Vec3{1, 2, 8}); !approx(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := ModelMatrix(Vec3{1, 2, 3}, Vec3{0.3, 0.2, 0.1}, Vec3{2, 2, 2})
	got := IdentityMat4().Mul(m)
	if got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestModelMatrixTransformPoint(t *testing.T) {
	m := ModelMatrix(Vec3{10, 0, 0}, Vec3{}, Vec3{2, 2, 2})
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{12, 2, 2}
	if got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
	if s := m.MaxScale(); !approx(s, 2) {
		t.Errorf("MaxScale = %v, want 2", s)
	}
	if tr := m.Translation(); tr != (Vec3{10, 0, 0}) {
		t.Errorf("Translation = %v, want [10 0 0]", tr)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformPoint(eye)
	for i := range got {
		if !approx(got[i], 0) {
			t.Fatalf("view * eye = %v, want origin", got)
		}
	}
	// The target ends up on the negative z axis in view space.
	target := view.TransformPoint(Vec3{})
	if !approx(target[2], -5) {
		t.Errorf("view * target z = %v, want -5", target[2])
	}
}

func TestFloorInt(t *testing.T) {
	tests := []struct {
		fraction float32
		extent   int
		want     int
	}{
		{0.5, 801, 400},
		{1, 600, 600},
		{0.333, 100, 33},
		{0, 1024, 0},
	}
	for _, tt := range tests {
		if got := FloorInt(tt.fraction, tt.extent); got != tt.want {
			t.Errorf("FloorInt(%v, %d) = %d, want %d", tt.fraction, tt.extent, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want %q", got, "b")
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce = %d, want 0", got)
	}
}
