package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/scene"
)

const (
	// zoomBase is the radius factor for one wheel notch at ZoomSpeed 1.
	zoomBase = 0.95
)

// OrbitInput is the pointer state the orbit controls read each tick.
type OrbitInput struct {
	Cursor   func() (int, int)
	Dragging func() bool
	Wheel    func() (float64, float64)
}

func ebitenOrbitInput() OrbitInput {
	return OrbitInput{
		Cursor: ebiten.CursorPosition,
		Dragging: func() bool {
			return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		},
		Wheel: ebiten.Wheel,
	}
}

// OrbitCameraSystem turns drag and wheel input into orbit goals and lets the
// camera chase them through a damped spring.
type OrbitCameraSystem struct {
	input  OrbitInput
	height float64
}

func NewOrbitCameraSystem() *OrbitCameraSystem {
	return NewOrbitCameraSystemWithInput(ebitenOrbitInput())
}

func NewOrbitCameraSystemWithInput(input OrbitInput) *OrbitCameraSystem {
	return &OrbitCameraSystem{input: input, height: common.BaseHeight}
}

// SetViewport sets the logical height a full-height drag is measured against.
func (o *OrbitCameraSystem) SetViewport(_, height int) {
	if o != nil && height > 0 {
		o.height = float64(height)
	}
}

func (o *OrbitCameraSystem) Update(w *ecs.World) {
	if o == nil || w == nil {
		return
	}
	e, ok := ecs.First(w, component.OrbitControlsComponent.Kind())
	if !ok {
		return
	}
	ctrl, _ := ecs.Get(w, e, component.OrbitControlsComponent.Kind())
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok || cam.Camera == nil {
		return
	}
	if clockPaused(w) {
		// a drag held across the pause restarts from wherever the cursor is
		ctrl.Dragging = false
		return
	}

	o.handleDrag(ctrl)
	o.handleWheel(ctrl)
	StepOrbit(ctrl)
	ApplyOrbit(ctrl, cam)
}

func (o *OrbitCameraSystem) handleDrag(ctrl *component.OrbitControls) {
	if o.input.Dragging == nil || o.input.Cursor == nil {
		return
	}
	if !o.input.Dragging() {
		ctrl.Dragging = false
		return
	}
	x, y := o.input.Cursor()
	if !ctrl.Dragging {
		ctrl.Dragging = true
		ctrl.DragX, ctrl.DragY = x, y
		return
	}
	dx := float64(x - ctrl.DragX)
	dy := float64(y - ctrl.DragY)
	ctrl.DragX, ctrl.DragY = x, y

	speed := ctrl.RotateSpeed
	if speed == 0 {
		speed = 1
	}
	scale := 2 * math.Pi * speed / o.height
	SetOrbitGoal(ctrl, ctrl.GoalAzimuth-dx*scale, ctrl.GoalPolar-dy*scale, ctrl.GoalRadius)
}

func (o *OrbitCameraSystem) handleWheel(ctrl *component.OrbitControls) {
	if o.input.Wheel == nil {
		return
	}
	_, wy := o.input.Wheel()
	if wy == 0 || !common.IsFinite(wy) {
		return
	}
	speed := ctrl.ZoomSpeed
	if speed == 0 {
		speed = 1
	}
	SetOrbitGoal(ctrl, ctrl.GoalAzimuth, ctrl.GoalPolar, ctrl.GoalRadius*math.Pow(zoomBase, wy*speed))
}

// SetOrbitGoal sets the pose the camera eases toward, clamping polar and
// radius into their allowed ranges. Non-finite values are ignored.
func SetOrbitGoal(ctrl *component.OrbitControls, azimuth, polar, radius float64) {
	if ctrl == nil {
		return
	}
	if common.IsFinite(azimuth) {
		ctrl.GoalAzimuth = azimuth
	}
	if common.IsFinite(polar) {
		ctrl.GoalPolar = common.Clamp(polar, component.OrbitMinPolar, component.OrbitMaxPolar)
	}
	if common.IsFinite(radius) {
		ctrl.GoalRadius = clampRadius(ctrl, radius)
	}
}

// SnapOrbit moves both the goal and the current pose, dropping any velocity.
func SnapOrbit(ctrl *component.OrbitControls, azimuth, polar, radius float64) {
	if ctrl == nil {
		return
	}
	SetOrbitGoal(ctrl, azimuth, polar, radius)
	ctrl.Azimuth, ctrl.Polar, ctrl.Radius = ctrl.GoalAzimuth, ctrl.GoalPolar, ctrl.GoalRadius
	ctrl.AzimuthVel, ctrl.PolarVel, ctrl.RadiusVel = 0, 0, 0
}

// StepOrbit advances the current pose one spring step toward the goal.
func StepOrbit(ctrl *component.OrbitControls) {
	if ctrl == nil {
		return
	}
	ctrl.Azimuth, ctrl.AzimuthVel = ctrl.Spring.Update(ctrl.Azimuth, ctrl.AzimuthVel, ctrl.GoalAzimuth)
	ctrl.Polar, ctrl.PolarVel = ctrl.Spring.Update(ctrl.Polar, ctrl.PolarVel, ctrl.GoalPolar)
	ctrl.Radius, ctrl.RadiusVel = ctrl.Spring.Update(ctrl.Radius, ctrl.RadiusVel, ctrl.GoalRadius)
	ctrl.Polar = common.Clamp(ctrl.Polar, component.OrbitMinPolar, component.OrbitMaxPolar)
	ctrl.Radius = clampRadius(ctrl, ctrl.Radius)
}

// ApplyOrbit places the camera on the orbit sphere looking at the target.
func ApplyOrbit(ctrl *component.OrbitControls, cam *component.Camera) {
	if ctrl == nil || cam == nil || cam.Camera == nil {
		return
	}
	cam.Camera.Position = ctrl.Target.Add(scene.SphericalOffset(ctrl.Radius, ctrl.Polar, ctrl.Azimuth))
	cam.Camera.Target = ctrl.Target
}

func clampRadius(ctrl *component.OrbitControls, r float64) float64 {
	lo, hi := ctrl.MinRadius, ctrl.MaxRadius
	if lo <= 0 {
		lo = 0.01
	}
	if hi < lo {
		hi = math.Inf(1)
	}
	return common.Clamp(r, lo, hi)
}
