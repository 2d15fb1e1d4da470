package scene

import (
	"errors"
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/log"
)

var ErrSceneFrozen = errors.New("scene: scene is frozen")

const (
	// DefaultAmbient is the global ambient light constant
	DefaultAmbient = 0.1
	// hitEpsilon is the minimum distance accepted by FirstHit
	hitEpsilon = 1e-6
	// mirrorIOR gives preset mirrors a Schlick reflectance of about 0.9 head on
	mirrorIOR = 40
)

var logger = log.New("scene")

// Scene owns the acceleration structure, the light list and the background.
//
// A scene is built single-threaded and then frozen. Every render worker reads
// the BVH and the lights concurrently without locks, so no mutation is accepted
// after Freeze.
type Scene struct {
	Background core.Color
	Ambient    float64

	bvh        *geometry.BVH
	primitives []geometry.Primitive
	lights     []lights.Light
	frozen     bool
}

// New creates an empty scene with the given background color
func New(background core.Color) *Scene {
	return &Scene{
		Background: background,
		Ambient:    DefaultAmbient,
		bvh:        geometry.NewBVH(),
	}
}

// Add inserts primitives into the BVH in the order given
func (s *Scene) Add(primitives ...geometry.Primitive) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	for _, p := range primitives {
		s.bvh.Insert(p)
		s.primitives = append(s.primitives, p)
	}
	return nil
}

// AddLight registers a light
func (s *Scene) AddLight(light lights.Light) error {
	if s.frozen {
		return ErrSceneFrozen
	}
	s.lights = append(s.lights, light)
	return nil
}

// Freeze marks the scene read-only. It is idempotent.
func (s *Scene) Freeze() {
	if s.frozen {
		return
	}
	s.frozen = true

	stats := s.bvh.Stats()
	logger.Debugf("scene frozen: %d primitives, %d lights, BVH nodes=%d depth=%d avg leaf depth=%.1f",
		len(s.primitives), len(s.lights), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
}

// Frozen reports whether Freeze has been called
func (s *Scene) Frozen() bool {
	return s.frozen
}

// Lights returns the registered lights. The slice must not be modified.
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// Primitives returns the primitives in insertion order. The slice must not be modified.
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// BVH returns the scene acceleration structure
func (s *Scene) BVH() *geometry.BVH {
	return s.bvh
}

// ClosestHit returns the nearest hit whose distance lies within [near, far]
func (s *Scene) ClosestHit(ray core.Ray, near, far float64) (geometry.Intersection, bool) {
	for _, hit := range s.bvh.Traverse(ray) {
		if hit.T < near {
			continue
		}
		if hit.T > far {
			break
		}
		return hit, true
	}
	return geometry.Intersection{}, false
}

// FirstHit returns the nearest hit past a small epsilon whose primitive is not
// exclude. A nil exclude accepts every primitive.
func (s *Scene) FirstHit(ray core.Ray, exclude geometry.Primitive) (geometry.Intersection, bool) {
	for _, hit := range s.bvh.Traverse(ray) {
		if hit.T <= hitEpsilon {
			continue
		}
		if exclude != nil && hit.Primitive == exclude {
			continue
		}
		return hit, true
	}
	return geometry.Intersection{}, false
}

// IsInShadow reports whether light is blocked from point. The shadow ray starts
// at point offset along normal by bias and ignores the casting primitive.
// Lights that do not cast shadows never report occlusion.
func (s *Scene) IsInShadow(point, normal core.Vec3, light lights.Light, casting geometry.Primitive, bias float64) bool {
	if !light.CastsShadows() {
		return false
	}

	dir, distance := light.Direction(point)
	if dir.Norm2() == 0 {
		return false
	}

	origin := point.Add(normal.Mul(bias))
	hit, ok := s.FirstHit(core.Ray{Origin: origin, Direction: dir}, casting)
	if !ok {
		return false
	}
	return math.IsInf(distance, 1) || hit.T < distance
}
