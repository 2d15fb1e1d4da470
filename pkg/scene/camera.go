package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

var ErrInvalidCamera = errors.New("scene: invalid camera")

// Camera is a pinhole camera with a vertical field of view and clip distances
type Camera struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	FOV      float64 // Vertical field of view in degrees
	Near     float64 // Hits closer than Near are clipped
	Far      float64 // Hits farther than Far are clipped

	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfHeight float64 // tan(fov/2)
}

// CameraConfig describes a camera before its basis is derived
type CameraConfig struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	FOV      float64
	Near     float64
	Far      float64
}

// DefaultCameraConfig returns a camera at (0,0,5) looking at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      60,
		Near:     0.001,
		Far:      1e4,
	}
}

// NewCamera validates config and precomputes the camera basis
func NewCamera(config CameraConfig) (*Camera, error) {
	forward := config.LookAt.Sub(config.Position)
	if forward.Norm2() == 0 {
		return nil, fmt.Errorf("%w: position equals look-at point", ErrInvalidCamera)
	}
	forward = forward.Normalize()

	right := forward.Cross(config.Up)
	if right.Norm2() < 1e-12 {
		return nil, fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	right = right.Normalize()

	if !(config.FOV > 0 && config.FOV < 180) {
		return nil, fmt.Errorf("%w: field of view %g outside (0, 180)", ErrInvalidCamera, config.FOV)
	}
	if config.Near < 0 || !(config.Far > config.Near) {
		return nil, fmt.Errorf("%w: clip range [%g, %g]", ErrInvalidCamera, config.Near, config.Far)
	}

	return &Camera{
		Position:   config.Position,
		LookAt:     config.LookAt,
		Up:         config.Up,
		FOV:        config.FOV,
		Near:       config.Near,
		Far:        config.Far,
		forward:    forward,
		right:      right,
		up:         right.Cross(forward),
		halfHeight: math.Tan(config.FOV * math.Pi / 360),
	}, nil
}

// PrimaryRay returns the ray through the centre of pixel (x, y) of a width×height
// image. Row 0 is the top of the image.
func (c *Camera) PrimaryRay(x, y, width, height int) core.Ray {
	aspect := float64(width) / float64(height)

	ndcX := (float64(x)+0.5)/float64(width)*2 - 1
	ndcY := 1 - (float64(y)+0.5)/float64(height)*2

	px := ndcX * aspect * c.halfHeight
	py := ndcY * c.halfHeight

	direction := c.forward.Add(c.right.Mul(px)).Add(c.up.Mul(py))
	return core.NewRay(c.Position, direction)
}
