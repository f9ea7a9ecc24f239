package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/scene"
)

type Shading int

const (
	ShadingStandard Shading = iota
	ShadingEye
)

// Material colors are linear RGB in [0,1].
type Material struct {
	Shading           Shading
	Color             mgl64.Vec3
	Emissive          mgl64.Vec3
	EmissiveIntensity float64
	// Transparent lets the eye lid alpha through; opaque eyes ignore it.
	Transparent bool
	// Eye supplies blink and tracking uniforms for ShadingEye.
	Eye *Eye
}

type Mesh struct {
	Node     *scene.Node
	Geometry *scene.Geometry
	Material *Material
	// Part names the prefab part this mesh came from, for hot reload.
	Part string
}

var MeshComponent = NewComponent[Mesh]()
