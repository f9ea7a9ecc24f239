package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/scene"
)

// Antenna holds the spring-damper wiggle. Position.X is sideways tilt and
// Position.Y the front/back (world z) tilt.
type Antenna struct {
	// Top pivots rod and tip together near the antenna base.
	Top *scene.Node

	Position cp.Vector
	Velocity cp.Vector

	LastCamera mgl64.Vec3
	HasLast    bool
}

var AntennaComponent = NewComponent[Antenna]()

// TipGlow pulses the antenna tip emissive intensity between Max and Min.
type TipGlow struct {
	Material *Material
	Max      float64
	Min      float64
	Yoyo     *common.Yoyo
}

var TipGlowComponent = NewComponent[TipGlow]()
