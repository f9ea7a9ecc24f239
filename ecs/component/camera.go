package component

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/scene"
)

type Camera struct {
	Camera *scene.Camera
}

var CameraComponent = NewComponent[Camera]()

// Polar limits keep the orbit off the poles where the view up vector
// degenerates.
const (
	OrbitMinPolar = 0.1
	OrbitMaxPolar = math.Pi - 0.1
)

// OrbitControls moves the camera on a sphere around Target. Azimuth is
// measured from +Z toward +X, Polar from +Y.
type OrbitControls struct {
	Target mgl64.Vec3

	Azimuth float64
	Polar   float64
	Radius  float64

	GoalAzimuth float64
	GoalPolar   float64
	GoalRadius  float64

	AzimuthVel float64
	PolarVel   float64
	RadiusVel  float64

	Spring harmonica.Spring

	RotateSpeed float64
	ZoomSpeed   float64
	MinRadius   float64
	MaxRadius   float64

	Dragging bool
	DragX    int
	DragY    int
}

var OrbitControlsComponent = NewComponent[OrbitControls]()
