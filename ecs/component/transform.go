package component

import "github.com/milk9111/robothead/scene"

// Transform attaches a scene node to an entity. The node owns the actual
// position/rotation/scale so parent chains resolve through the scene graph.
type Transform struct {
	Node *scene.Node
}

var TransformComponent = NewComponent[Transform]()
