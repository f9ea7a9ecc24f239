package component

import "github.com/milk9111/robothead/scene"

// Robot is the root of the assembled head.
type Robot struct {
	Name string
	Root *scene.Node
	Head *scene.Node
}

var RobotComponent = NewComponent[Robot]()
