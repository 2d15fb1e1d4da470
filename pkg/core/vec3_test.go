package core

import (
	"math"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction Vec3
		expected  Vec3
	}{
		{"already unit", NewVec3(0, 0, -1), NewVec3(0, 0, -1)},
		{"long axis", NewVec3(0, 7, 0), NewVec3(0, 1, 0)},
		{"diagonal", NewVec3(3, 0, 4), NewVec3(0.6, 0, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(NewVec3(1, 2, 3), tt.direction)

			const tolerance = 1e-9
			if ray.Direction.Sub(tt.expected).Norm() > tolerance {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if math.Abs(ray.Direction.Norm()-1) > tolerance {
				t.Errorf("Expected unit direction, got length %g", ray.Direction.Norm())
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, -2))
	if got := ray.At(2.5); got != NewVec3(1, 0, -2.5) {
		t.Errorf("Expected (1, 0, -2.5), got %v", got)
	}
	if got := ray.At(0); got != ray.Origin {
		t.Errorf("Expected the origin at t=0, got %v", got)
	}
}

func TestComponent(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := Component(v, axis); got != expected {
			t.Errorf("Component(%d) = %g, want %g", axis, got, expected)
		}
	}
}

func TestMinMaxVec(t *testing.T) {
	a := NewVec3(1, -5, 3)
	b := NewVec3(-2, 4, 3)

	if got := MinVec(a, b); got != NewVec3(-2, -5, 3) {
		t.Errorf("MinVec = %v", got)
	}
	if got := MaxVec(a, b); got != NewVec3(1, 4, 3) {
		t.Errorf("MaxVec = %v", got)
	}
}
