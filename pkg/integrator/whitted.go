package integrator

import (
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted ray tracing: local Blinn-Phong
// lighting with hard shadows plus one mirror ray and one refracted ray per hit.
//
// It only reads the scene, so a single instance is shared by every render worker.
type WhittedIntegrator struct {
	scene   *scene.Scene
	options Options
}

// NewWhittedIntegrator creates a new Whitted integrator over a frozen scene
func NewWhittedIntegrator(s *scene.Scene, options Options) *WhittedIntegrator {
	return &WhittedIntegrator{scene: s, options: options}
}

// Options returns the integrator settings
func (w *WhittedIntegrator) Options() Options {
	return w.options
}

// PixelColor shades hit and applies display gamma
func (w *WhittedIntegrator) PixelColor(ray core.Ray, hit geometry.Intersection) core.Color {
	return w.Shade(ray, hit).GammaCorrect(w.options.Gamma)
}

// Shade returns the linear color seen along ray at hit: local lighting blended
// with the Fresnel weighted reflection and refraction colors, clamped to [0, 1]
func (w *WhittedIntegrator) Shade(ray core.Ray, hit geometry.Intersection) core.Color {
	mat := hit.Material()
	local := w.localColor(ray.Direction, hit)
	if mat.Reflectivity <= 0 && mat.Transparency <= 0 {
		return local
	}

	// Mirrors need a large refraction index for strong head-on reflection
	cosTheta := math.Abs(ray.Direction.Dot(hit.Normal))
	fresnel := Schlick(cosTheta, mat.RefractionIndex)

	reflectFactor := fresnel * mat.Reflectivity
	refractFactor := (1 - fresnel) * mat.Transparency
	baseFactor := math.Max(0, 1-reflectFactor-refractFactor)

	color := local.Scale(baseFactor)
	if reflectFactor > 0 {
		color = color.Add(w.CastReflection(ray.Direction, hit, w.options.MaxDepth).Scale(reflectFactor))
	}
	if refractFactor > 0 {
		color = color.Add(w.CastRefraction(ray.Direction, hit, w.options.MaxDepth).Scale(refractFactor))
	}
	return color.Clamp()
}

// CastReflection follows the mirror direction of dir about the hit normal. Each
// surface found is lit locally and blended with its own reflection by its
// reflectivity. A zero budget or a miss yields the background color.
func (w *WhittedIntegrator) CastReflection(dir core.Vec3, hit geometry.Intersection, depth int) core.Color {
	return w.castReflection(dir, hit, depth, hit.Primitive)
}

// castReflection is CastReflection with an explicit excluded primitive. Rays
// reflected inside a transparent primitive must be allowed to hit it again.
func (w *WhittedIntegrator) castReflection(dir core.Vec3, hit geometry.Intersection, depth int, exclude geometry.Primitive) core.Color {
	if depth <= 0 {
		return w.scene.Background
	}

	normal := facing(hit.Normal, dir)
	reflected := core.Reflect(dir, normal).Normalize()
	origin := hit.Point.Add(normal.Mul(w.options.ShadowBias))

	next, ok := w.scene.FirstHit(core.Ray{Origin: origin, Direction: reflected}, exclude)
	if !ok {
		return w.scene.Background
	}

	local := w.localColor(reflected, next)
	reflectivity := next.Material().Reflectivity
	if reflectivity <= 0 {
		return local
	}
	return local.Lerp(w.CastReflection(reflected, next, depth-1), reflectivity).Clamp()
}

// CastRefraction bends dir through the hit surface with Snell's law. Total
// internal reflection hands over to CastReflection. Opaque materials, a zero
// budget and misses yield the background color.
func (w *WhittedIntegrator) CastRefraction(dir core.Vec3, hit geometry.Intersection, depth int) core.Color {
	mat := hit.Material()
	if depth <= 0 || mat.Transparency <= 0 {
		return w.scene.Background
	}

	normal := hit.Normal
	cosI := dir.Dot(normal)
	eta := 1 / mat.RefractionIndex
	if cosI > 0 {
		// Leaving the material
		normal = normal.Mul(-1)
		eta = mat.RefractionIndex
	} else {
		cosI = -cosI
	}

	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		inside := hit
		inside.Normal = normal
		return w.castReflection(dir, inside, depth, nil)
	}

	refracted := dir.Mul(eta).Add(normal.Mul(eta*cosI - math.Sqrt(k))).Normalize()
	origin := hit.Point.Sub(normal.Mul(w.options.ShadowBias))

	// The exit point usually lies on the same primitive, so nothing is excluded
	next, ok := w.scene.FirstHit(core.Ray{Origin: origin, Direction: refracted}, nil)
	if !ok {
		return w.scene.Background
	}

	local := w.localColor(refracted, next)
	transparency := next.Material().Transparency
	if transparency <= 0 {
		return local
	}
	return local.Lerp(w.CastRefraction(refracted, next, depth-1), transparency).Clamp()
}

// Schlick approximates the Fresnel reflectance for a ray meeting a surface of
// refraction index ior at angle acos(cosTheta) from the normal
func Schlick(cosTheta, ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	r0 *= r0
	cosTheta = math.Min(math.Max(cosTheta, 0), 1)
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

// localColor sums ambient, Lambertian and Blinn-Phong terms over every light
// for a surface seen along dir
func (w *WhittedIntegrator) localColor(dir core.Vec3, hit geometry.Intersection) core.Color {
	mat := hit.Material()
	base := hit.Color
	normal := facing(hit.Normal, dir)
	view := dir.Mul(-1)
	specularTint := core.White.Lerp(base, w.options.SpecularTint)

	color := base.Scale(mat.Ambient * w.scene.Ambient)
	for _, light := range w.scene.Lights() {
		lightDir, _ := light.Direction(hit.Point)
		if lightDir.Norm2() == 0 {
			continue
		}
		nDotL := normal.Dot(lightDir)
		if nDotL <= 0 {
			continue
		}
		if w.scene.IsInShadow(hit.Point, normal, light, hit.Primitive, w.options.ShadowBias) {
			continue
		}
		attenuation := light.Attenuation(hit.Point)
		radiance := light.Color().Scale(attenuation)

		color = color.Add(base.Mul(radiance).Scale(nDotL))

		half := lightDir.Add(view)
		if half.Norm2() > 0 {
			nDotH := math.Max(normal.Dot(half.Normalize()), 0)
			specular := mat.Specular * math.Pow(nDotH, mat.Shininess)
			color = color.Add(specularTint.Mul(radiance).Scale(specular))
		}
	}
	return color.Clamp()
}

// facing flips n so that it points against dir
func facing(n, dir core.Vec3) core.Vec3 {
	if n.Dot(dir) > 0 {
		return n.Mul(-1)
	}
	return n
}
