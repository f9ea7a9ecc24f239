package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/scene"
)

// Ear slides toward the head and narrows as the camera moves to its side.
type Ear struct {
	Node *scene.Node
	// Head is the frame the camera direction is measured in.
	Head *scene.Node
	Side Side
	// Outward is -X for the left ear and +X for the right.
	Outward mgl64.Vec3

	ExtendedX  float64
	RetractedX float64

	Retraction float64
}

var EarComponent = NewComponent[Ear]()
