package component

import "github.com/go-gl/mathgl/mgl64"

// Gaze is the world-space point both eyes aim at. Valid stays false until
// the first successful ray/plane hit; after that a failed hit keeps Target.
type Gaze struct {
	Target mgl64.Vec3
	Valid  bool
	Misses int
}

var GazeComponent = NewComponent[Gaze]()
