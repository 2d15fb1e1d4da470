package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

func TestDirectionalLight(t *testing.T) {
	light, err := NewDirectionalLight(core.NewVec3(0, -2, 0), core.White, 0.8)
	if err != nil {
		t.Fatalf("NewDirectionalLight: %v", err)
	}

	dir, distance := light.Direction(core.NewVec3(5, 5, 5))
	if dir != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction toward the light (0,1,0), got %v", dir)
	}
	if !math.IsInf(distance, 1) {
		t.Errorf("Expected infinite distance, got %f", distance)
	}
	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(100, -3, 7)} {
		if got := light.Attenuation(p); got != 0.8 {
			t.Errorf("Expected constant attenuation 0.8 at %v, got %f", p, got)
		}
	}
	if light.CastsShadows() {
		t.Error("Directional lights must not cast shadows")
	}
}

func TestPointLight_Attenuation(t *testing.T) {
	light, err := NewPointLight(core.NewVec3(0, 0, 0), core.White, 2.0)
	if err != nil {
		t.Fatalf("NewPointLight: %v", err)
	}

	tests := []struct {
		name     string
		point    core.Vec3
		expected float64
	}{
		{"at the light", core.NewVec3(0, 0, 0), 2.0},
		{"one unit away", core.NewVec3(1, 0, 0), 2.0 / (1 + 0.09 + 0.032)},
		{"ten units away", core.NewVec3(0, 10, 0), 2.0 / (1 + 0.9 + 3.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := light.Attenuation(tt.point); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}

	dir, distance := light.Direction(core.NewVec3(0, 0, -4))
	if dir != core.NewVec3(0, 0, 1) || distance != 4 {
		t.Errorf("Expected direction (0,0,1) at distance 4, got %v at %f", dir, distance)
	}
	if !light.CastsShadows() {
		t.Error("Point lights must cast shadows")
	}
}

func TestSpotLight_ConeFactor(t *testing.T) {
	// Aimed straight down with a 10° inner and 30° outer half-angle
	light, err := NewSpotLight(core.NewVec3(0, 10, 0), core.NewVec3(0, 0, 0), core.White, 1, 10, 30)
	if err != nil {
		t.Fatalf("NewSpotLight: %v", err)
	}

	pointAtAngle := func(deg float64) core.Vec3 {
		rad := deg * math.Pi / 180
		return core.NewVec3(10*math.Tan(rad), 0, 0)
	}

	cos20 := math.Cos(20 * math.Pi / 180)
	cos10 := math.Cos(10 * math.Pi / 180)
	cos30 := math.Cos(30 * math.Pi / 180)

	tests := []struct {
		name     string
		point    core.Vec3
		expected float64
	}{
		{"on the axis", core.NewVec3(0, 0, 0), 1},
		{"inside the inner cone", pointAtAngle(5), 1},
		{"between the cones", pointAtAngle(20), (cos20 - cos30) / (cos10 - cos30)},
		{"outside the outer cone", pointAtAngle(45), 0},
		{"behind the light", core.NewVec3(0, 20, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := light.ConeFactor(tt.point); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}

	onAxis := core.NewVec3(0, 0, 0)
	if got, want := light.Attenuation(onAxis), light.PointLight.Attenuation(onAxis); got != want {
		t.Errorf("Expected on-axis attenuation %f, got %f", want, got)
	}
	if light.Type() != LightTypeSpot {
		t.Errorf("Expected spot type, got %s", light.Type())
	}
}

func TestLights_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		make func() error
	}{
		{"zero directional", func() error {
			_, err := NewDirectionalLight(core.Vec3{}, core.White, 1)
			return err
		}},
		{"negative point intensity", func() error {
			_, err := NewPointLight(core.Vec3{}, core.White, -1)
			return err
		}},
		{"spot aimed at itself", func() error {
			_, err := NewSpotLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.White, 1, 10, 20)
			return err
		}},
		{"spot outer inside inner", func() error {
			_, err := NewSpotLight(core.NewVec3(0, 1, 0), core.Vec3{}, core.White, 1, 30, 20)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.make(); !errors.Is(err, ErrInvalidLight) {
				t.Errorf("Expected ErrInvalidLight, got %v", err)
			}
		})
	}
}
