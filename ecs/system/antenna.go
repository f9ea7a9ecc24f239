package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

const (
	AntennaSpring      = 0.08
	AntennaDamping     = 0.92
	AntennaImpulseGain = 0.4
	AntennaClamp       = 0.25
	// AntennaTilt converts wiggle position to pivot rotation in radians.
	AntennaTilt = 0.5
)

// AntennaSystem wiggles the antenna against camera motion with a damped
// spring. It steps once per tick, independent of the tick duration, and holds
// still while the clock is paused.
type AntennaSystem struct{}

func NewAntennaSystem() *AntennaSystem {
	return &AntennaSystem{}
}

func (s *AntennaSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok || cam.Camera == nil {
		return
	}
	camPos := cam.Camera.Position
	paused := clockPaused(w)
	ecs.ForEach(w, component.AntennaComponent.Kind(), func(_ ecs.Entity, a *component.Antenna) {
		if paused {
			HoldAntenna(a, camPos)
			return
		}
		StepAntenna(a, camPos)
	})
}

// StepAntenna advances the spring by one tick for a camera at camPos. The
// first call only records the camera.
func StepAntenna(a *component.Antenna, camPos mgl64.Vec3) {
	if a == nil || !finiteVec3(camPos) {
		return
	}
	if !a.HasLast {
		a.LastCamera = camPos
		a.HasLast = true
		applyAntennaTilt(a)
		return
	}
	delta := camPos.Sub(a.LastCamera)
	a.LastCamera = camPos

	// camera x drives sideways tilt, camera z drives front/back tilt
	impulse := cp.Vector{X: -delta.X(), Y: -delta.Z()}.Mult(AntennaImpulseGain)
	a.Velocity = a.Velocity.Add(impulse)
	a.Velocity = a.Velocity.Add(a.Position.Mult(-AntennaSpring))
	a.Velocity = a.Velocity.Mult(AntennaDamping)
	a.Position = a.Position.Add(a.Velocity)
	a.Position = cp.Vector{
		X: cp.Clamp(a.Position.X, -AntennaClamp, AntennaClamp),
		Y: cp.Clamp(a.Position.Y, -AntennaClamp, AntennaClamp),
	}
	applyAntennaTilt(a)
}

// HoldAntenna records the camera without moving the spring, so camera motion
// made while paused does not kick the antenna on resume.
func HoldAntenna(a *component.Antenna, camPos mgl64.Vec3) {
	if a == nil || !finiteVec3(camPos) {
		return
	}
	a.LastCamera = camPos
	a.HasLast = true
}

func applyAntennaTilt(a *component.Antenna) {
	if a.Top == nil {
		return
	}
	a.Top.Rotation[0] = a.Position.Y * AntennaTilt
	a.Top.Rotation[2] = -a.Position.X * AntennaTilt
}

func finiteVec3(v mgl64.Vec3) bool {
	return common.IsFinite(v.X()) && common.IsFinite(v.Y()) && common.IsFinite(v.Z())
}
