package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sample is a surface point in eye coordinates. Normal need not be unit length.
type Sample struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Banded palette, brightest first.
var bandColors = [4]mgl32.Vec3{
	{1.0, 0.5, 0.5},
	{0.6, 0.3, 0.3},
	{0.4, 0.2, 0.2},
	{0.2, 0.1, 0.1},
}

// Warm/cool model constants.
var (
	surfaceColor = mgl32.Vec3{0.75, 0.75, 0.75}
	warmColor    = mgl32.Vec3{0.1, 0.4, 0.8}
	coolColor    = mgl32.Vec3{0.6, 0, 0}
)

const (
	diffuseWarm = 0.45
	diffuseCool = 0.045

	ambientMaterial  = 0.2
	diffuseMaterial  = 0.8
	specularMaterial = 1.0
	shininess        = 32
)

// Shade evaluates m at s for a light at light (eye coordinates) and returns
// an RGB color in [0,1]. It computes what the model's GLSL program does per fragment.
func (m Model) Shade(s Sample, light mgl32.Vec4) mgl32.Vec3 {
	switch m {
	case ToneBased:
		return shadeTone(s, light)
	case LocalIllumination:
		return shadePhong(s, light)
	default:
		return shadeBanded(s, light)
	}
}

func shadeBanded(s Sample, light mgl32.Vec4) mgl32.Vec3 {
	lightDir := normalize(light.Vec3().Sub(s.Position))
	intensity := max(normalize(s.Normal).Dot(lightDir), 0)

	switch {
	case intensity > 0.95:
		return bandColors[0]
	case intensity > 0.5:
		return bandColors[1]
	case intensity > 0.25:
		return bandColors[2]
	default:
		return bandColors[3]
	}
}

func shadeTone(s Sample, light mgl32.Vec4) mgl32.Vec3 {
	n := normalize(s.Normal)
	l := normalize(light.Vec3().Sub(s.Position))
	r := normalize(reflect(l.Mul(-1), n))
	v := normalize(s.Position.Mul(-1))
	ndotl := (l.Dot(n) + 1) * 0.5

	kcool := minVec(coolColor.Add(surfaceColor.Mul(diffuseCool)), 1)
	kwarm := minVec(warmColor.Add(surfaceColor.Mul(diffuseWarm)), 1)
	kfinal := mix(kcool, kwarm, ndotl)

	spec := pow(max(r.Dot(v), 0), 32)
	return minVec(kfinal.Add(mgl32.Vec3{spec, spec, spec}), 1)
}

func shadePhong(s Sample, light mgl32.Vec4) mgl32.Vec3 {
	n := normalize(s.Normal)
	l := normalize(light.Vec3().Sub(s.Position))
	v := normalize(s.Position).Mul(-1)
	h := normalize(l.Add(v))
	w := light.W()

	intensity := ambientMaterial*w + diffuseMaterial*max(0, l.Dot(n))*w
	if l.Dot(v) > 0 {
		intensity += specularMaterial * pow(max(0, n.Dot(h)), shininess) * w
	}
	c := mgl32.Clamp(intensity, 0, 1)
	return mgl32.Vec3{c, c, c}
}

// normalize maps the zero vector to itself.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return mgl32.Vec3{}
}

func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func minVec(v mgl32.Vec3, limit float32) mgl32.Vec3 {
	return mgl32.Vec3{min(v[0], limit), min(v[1], limit), min(v[2], limit)}
}

func pow(x float32, y float64) float32 {
	return float32(math.Pow(float64(x), y))
}
