package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

func PlaneFromNormalAndPoint(normal, point mgl64.Vec3) Plane {
	return Plane{Normal: normal, Constant: -point.Dot(normal)}
}

func (p Plane) DistanceToPoint(v mgl64.Vec3) float64 {
	return p.Normal.Dot(v) + p.Constant
}

// IntersectPlane returns the hit point in front of the ray origin. A ray
// parallel to the plane, or a plane behind the origin, reports ok=false.
func (r Ray) IntersectPlane(p Plane) (mgl64.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < epsilon {
		return mgl64.Vec3{}, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// SafeNormalize normalizes v, reporting ok=false for zero or non-finite input.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}
