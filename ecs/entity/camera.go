package entity

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/prefabs"
	"github.com/milk9111/robothead/scene"
)

// SpringFPS is the tick rate the orbit springs are tuned for.
const SpringFPS = 60

// BuildCamera creates the orbit camera entity. The camera starts at the spec
// pose with its goal equal to that pose.
func BuildCamera(w *ecs.World, spec *prefabs.CameraSpec, aspect float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("entity: nil world")
	}
	if spec == nil {
		return 0, fmt.Errorf("entity: nil camera spec")
	}

	cam := scene.NewPerspectiveCamera(spec.FovY, aspect, spec.Near, spec.Far)
	ctrl := &component.OrbitControls{}
	ApplyCameraSpec(cam, ctrl, spec)

	ctrl.Azimuth = common.DegToRad(spec.Azimuth)
	ctrl.Polar = common.Clamp(common.DegToRad(spec.Polar), component.OrbitMinPolar, component.OrbitMaxPolar)
	ctrl.Radius = common.Clamp(spec.Radius, ctrl.MinRadius, ctrl.MaxRadius)
	ctrl.GoalAzimuth, ctrl.GoalPolar, ctrl.GoalRadius = ctrl.Azimuth, ctrl.Polar, ctrl.Radius
	cam.Target = ctrl.Target
	cam.Position = ctrl.Target.Add(scene.SphericalOffset(ctrl.Radius, ctrl.Polar, ctrl.Azimuth))

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Camera: cam}); err != nil {
		return 0, fmt.Errorf("entity: add camera: %w", err)
	}
	if err := ecs.Add(w, e, component.OrbitControlsComponent.Kind(), ctrl); err != nil {
		return 0, fmt.Errorf("entity: add orbit controls: %w", err)
	}
	return e, nil
}

// ApplyCameraSpec copies lens, limits and spring tuning from spec without
// touching the current orbit pose.
func ApplyCameraSpec(cam *scene.Camera, ctrl *component.OrbitControls, spec *prefabs.CameraSpec) {
	if spec == nil {
		return
	}
	if cam != nil {
		if spec.FovY > 0 {
			cam.FovY = spec.FovY
		}
		if spec.Near > 0 {
			cam.Near = spec.Near
		}
		if spec.Far > cam.Near {
			cam.Far = spec.Far
		}
	}
	if ctrl == nil {
		return
	}
	ctrl.Target = spec.Target.Vec3()
	ctrl.MinRadius = spec.MinRadius
	ctrl.MaxRadius = spec.MaxRadius
	if ctrl.MinRadius <= 0 {
		ctrl.MinRadius = 3
	}
	if ctrl.MaxRadius < ctrl.MinRadius {
		ctrl.MaxRadius = ctrl.MinRadius
	}
	ctrl.RotateSpeed = spec.RotateSpeed
	ctrl.ZoomSpeed = spec.ZoomSpeed

	freq, damping := spec.SpringFrequency, spec.SpringDamping
	if freq <= 0 {
		freq = 6
	}
	if damping <= 0 {
		damping = 1
	}
	ctrl.Spring = harmonica.NewSpring(harmonica.FPS(SpringFPS), freq, damping)
}
