package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/scene"
	"go.uber.org/zap"
)

const (
	// GazePlaneDistance is how far in front of the camera the pointer ray is
	// intersected.
	GazePlaneDistance = 5.0
	MaxEyeYaw         = 0.2
)

// GazeSystem resolves the pointer into a world-space look-at point and aims
// every eye at it.
type GazeSystem struct{}

func NewGazeSystem() *GazeSystem {
	return &GazeSystem{}
}

func (g *GazeSystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok || cam.Camera == nil {
		return
	}
	ptr, ok := ecs.Singleton(w, component.PointerComponent.Kind())
	if !ok {
		return
	}
	gaze, ok := ecs.Singleton(w, component.GazeComponent.Kind())
	if !ok {
		return
	}

	if target, ok := GazeTarget(cam.Camera, ptr.X, ptr.Y); ok {
		gaze.Target = target
		gaze.Valid = true
	} else {
		gaze.Misses++
		if gaze.Misses == 1 {
			zap.L().Debug("gaze: pointer ray missed the gaze plane; keeping last target",
				zap.Float64("x", ptr.X), zap.Float64("y", ptr.Y))
		}
	}
	if !gaze.Valid {
		return
	}

	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		AimEye(eye, gaze.Target)
	})
}

// GazeTarget intersects the ray through the pointer with the plane facing
// the camera GazePlaneDistance units ahead of it.
func GazeTarget(cam *scene.Camera, x, y float64) (mgl64.Vec3, bool) {
	dir, ok := cam.WorldDirection()
	if !ok {
		return mgl64.Vec3{}, false
	}
	ray, ok := cam.RayFromNDC(x, y)
	if !ok {
		return mgl64.Vec3{}, false
	}
	plane := scene.PlaneFromNormalAndPoint(dir, cam.Position.Add(dir.Mul(GazePlaneDistance)))
	return ray.IntersectPlane(plane)
}

// AimEye points eye at a world-space target. It writes the clamped yaw and
// the tracking intensity; a target sitting on the eye leaves both unchanged.
func AimEye(eye *component.Eye, target mgl64.Vec3) {
	if eye == nil || eye.Node == nil {
		return
	}
	local := target
	if parent := eye.Node.Parent(); parent != nil {
		var ok bool
		local, ok = parent.WorldToLocal(target)
		if !ok {
			return
		}
	}

	delta := local.Sub(eye.Node.Position)
	toTarget, ok := scene.SafeNormalize(delta)
	if !ok {
		return
	}

	forward := mgl64.TransformNormal(mgl64.Vec3{0, 0, 1}, eye.Node.RotationMatrix())
	eye.TrackingIntensity = TrackingIntensity(forward, toTarget)
	eye.Node.Rotation[1] = EyeYaw(delta)
}

// TrackingIntensity remaps the forward/target alignment from [-1,1] to [0,1]
// and squares it.
func TrackingIntensity(forward, toTarget mgl64.Vec3) float64 {
	c := (common.Clamp(forward.Dot(toTarget), -1, 1) + 1) / 2
	return c * c
}

// EyeYaw is the clamped rotation about Y that faces delta.
func EyeYaw(delta mgl64.Vec3) float64 {
	return common.Clamp(math.Atan2(delta.X(), delta.Z()), -MaxEyeYaw, MaxEyeYaw)
}
