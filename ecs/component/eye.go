package component

import "github.com/milk9111/robothead/scene"

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Eye is one tracking eye. Node's parent is the frame the gaze target is
// resolved in; Node.Rotation.Y is the yaw the gaze system writes.
type Eye struct {
	Node *scene.Node
	Side Side

	// Blink is shared with the other eye and never written from here.
	Blink BlinkReader

	// TrackingIntensity is the shader uniform, in [0,1].
	TrackingIntensity float64
}

var EyeComponent = NewComponent[Eye]()
