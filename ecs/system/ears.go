package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/scene"
)

const (
	EarSmoothing    = 0.1
	EarTargetGain   = 2.0
	EarRetractScale = 0.25
)

// EarSystem slides each ear into the head and narrows it as the camera moves
// around to that ear's side.
type EarSystem struct{}

func NewEarSystem() *EarSystem {
	return &EarSystem{}
}

func (s *EarSystem) Update(w *ecs.World) {
	if s == nil || w == nil || clockPaused(w) {
		return
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok || cam.Camera == nil {
		return
	}
	camPos := cam.Camera.Position
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		StepEar(ear, camPos)
	})
}

// StepEar moves ear one low-pass step toward its retraction target for a
// camera at camPos and writes the ear's X offset and X scale.
func StepEar(ear *component.Ear, camPos mgl64.Vec3) {
	if ear == nil || ear.Node == nil {
		return
	}
	target, ok := EarRetractionTarget(ear.Head, ear.Outward, camPos)
	if !ok {
		return
	}
	ear.Retraction += (target - ear.Retraction) * EarSmoothing
	ApplyEarRetraction(ear)
}

// EarRetractionTarget measures the camera direction in head space against
// the ear's outward axis. ok is false when the camera sits on the head
// origin or the head transform is singular.
func EarRetractionTarget(head *scene.Node, outward, camPos mgl64.Vec3) (float64, bool) {
	local := camPos
	if head != nil {
		var ok bool
		local, ok = head.WorldToLocal(camPos)
		if !ok {
			return 0, false
		}
	}
	dir, ok := scene.SafeNormalize(local)
	if !ok {
		return 0, false
	}
	return common.Clamp01(dir.Dot(outward) * EarTargetGain), true
}

// ApplyEarRetraction writes position X and scale X from ear.Retraction.
func ApplyEarRetraction(ear *component.Ear) {
	if ear == nil || ear.Node == nil {
		return
	}
	ear.Node.Position[0] = common.Lerp(ear.ExtendedX, ear.RetractedX, ear.Retraction)
	ear.Node.Scale[0] = common.Lerp(1, EarRetractScale, ear.Retraction)
}
