package component

import (
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/scene"
)

// IdleMotion sways Node between zero rotation and (Pitch, Yaw) radians.
type IdleMotion struct {
	Node  *scene.Node
	Pitch float64
	Yaw   float64
	Yoyo  *common.Yoyo
}

var IdleMotionComponent = NewComponent[IdleMotion]()
