package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovY   float64 // degrees
	Aspect float64
	Near   float64
	Far    float64
}

func NewPerspectiveCamera(fovY, aspect, near, far float64) *Camera {
	return &Camera{
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// WorldDirection is the unit forward vector. ok is false when the camera
// sits on its own target.
func (c *Camera) WorldDirection() (mgl64.Vec3, bool) {
	if c == nil {
		return mgl64.Vec3{}, false
	}
	return SafeNormalize(c.Target.Sub(c.Position))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Valid reports whether the view is well defined: a forward direction exists
// and is not parallel to Up.
func (c *Camera) Valid() bool {
	dir, ok := c.WorldDirection()
	if !ok {
		return false
	}
	_, ok = SafeNormalize(dir.Cross(c.Up))
	return ok
}

// RayFromNDC builds a ray from the camera through normalized device
// coordinates (x right, y up, both in [-1,1]).
func (c *Camera) RayFromNDC(x, y float64) (Ray, bool) {
	if !c.Valid() {
		return Ray{}, false
	}
	inv := c.ViewProjection().Inv()
	p := inv.Mul4x1(mgl64.Vec4{x, y, 0.5, 1})
	if p.W() == 0 {
		return Ray{}, false
	}
	world := p.Vec3().Mul(1 / p.W())
	dir, ok := SafeNormalize(world.Sub(c.Position))
	if !ok {
		return Ray{}, false
	}
	return Ray{Origin: c.Position, Direction: dir}, true
}

// Project maps a world point to NDC. w is the clip-space w (view depth);
// points with w <= 0 are behind the camera.
func (c *Camera) Project(p mgl64.Vec3) (ndc mgl64.Vec3, w float64) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	w = clip.W()
	if w == 0 {
		return mgl64.Vec3{}, 0
	}
	return clip.Vec3().Mul(1 / w), w
}

// SphericalOffset is the offset at radius for an azimuth measured from +Z
// toward +X and a polar angle measured from +Y.
func SphericalOffset(radius, polar, azimuth float64) mgl64.Vec3 {
	sp, cp := math.Sincos(polar)
	sa, ca := math.Sincos(azimuth)
	return mgl64.Vec3{radius * sp * sa, radius * cp, radius * sp * ca}
}
