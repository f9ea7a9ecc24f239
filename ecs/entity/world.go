package entity

import (
	"fmt"

	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/prefabs"
)

// BuildSession creates the clock, pointer and hud singletons.
func BuildSession(w *ecs.World, hudVisible, debug bool) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("entity: nil world")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return 0, fmt.Errorf("entity: add clock: %w", err)
	}
	if err := ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
		return 0, fmt.Errorf("entity: add pointer: %w", err)
	}
	if err := ecs.Add(w, e, component.HudComponent.Kind(), &component.Hud{Visible: hudVisible, Debug: debug}); err != nil {
		return 0, fmt.Errorf("entity: add hud: %w", err)
	}
	return e, nil
}

// Scene bundles the entities a running viewer needs.
type Scene struct {
	Session ecs.Entity
	Robot   ecs.Entity
	Camera  ecs.Entity
}

func BuildScene(w *ecs.World, robot *prefabs.RobotSpec, camera *prefabs.CameraSpec, aspect float64, hudVisible, debug bool) (Scene, error) {
	var s Scene
	var err error
	if s.Session, err = BuildSession(w, hudVisible, debug); err != nil {
		return Scene{}, err
	}
	if s.Robot, err = BuildRobot(w, robot); err != nil {
		return Scene{}, err
	}
	if s.Camera, err = BuildCamera(w, camera, aspect); err != nil {
		return Scene{}, err
	}
	return s, nil
}
