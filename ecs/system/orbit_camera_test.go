package system

import (
	"math"
	"testing"

	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrbitInput is a scripted mouse.
type fakeOrbitInput struct {
	x, y    int
	down    bool
	wheelDY float64
}

func (f *fakeOrbitInput) input() OrbitInput {
	return OrbitInput{
		Cursor:   func() (int, int) { return f.x, f.y },
		Dragging: func() bool { return f.down },
		Wheel: func() (float64, float64) {
			dy := f.wheelDY
			f.wheelDY = 0
			return 0, dy
		},
	}
}

func orbitOf(t *testing.T, w *ecs.World) *component.OrbitControls {
	t.Helper()
	ctrl, ok := ecs.Singleton(w, component.OrbitControlsComponent.Kind())
	require.True(t, ok)
	return ctrl
}

func TestOrbitDragMovesGoal(t *testing.T) {
	w, _ := newTestWorld(t)
	ctrl := orbitOf(t, w)
	in := &fakeOrbitInput{x: 100, y: 100}
	sys := NewOrbitCameraSystemWithInput(in.input())
	sys.SetViewport(640, 360)

	az, polar := ctrl.GoalAzimuth, ctrl.GoalPolar
	in.down = true
	sys.Update(w)
	// pressing alone does not move the goal
	assert.Equal(t, az, ctrl.GoalAzimuth)

	in.x, in.y = 136, 118
	sys.Update(w)
	scale := 2 * math.Pi * ctrl.RotateSpeed / 360
	assert.InDelta(t, az-36*scale, ctrl.GoalAzimuth, 1e-12)
	assert.InDelta(t, polar-18*scale, ctrl.GoalPolar, 1e-12)

	in.down = false
	sys.Update(w)
	assert.False(t, ctrl.Dragging)
}

func TestOrbitWheelZooms(t *testing.T) {
	w, _ := newTestWorld(t)
	ctrl := orbitOf(t, w)
	in := &fakeOrbitInput{}
	sys := NewOrbitCameraSystemWithInput(in.input())

	r := ctrl.GoalRadius
	in.wheelDY = 1
	sys.Update(w)
	assert.InDelta(t, r*math.Pow(zoomBase, ctrl.ZoomSpeed), ctrl.GoalRadius, 1e-12)

	in.wheelDY = -1000
	sys.Update(w)
	assert.Equal(t, ctrl.MaxRadius, ctrl.GoalRadius)

	in.wheelDY = 1000
	sys.Update(w)
	assert.Equal(t, ctrl.MinRadius, ctrl.GoalRadius)
}

func TestSetOrbitGoalClamps(t *testing.T) {
	ctrl := &component.OrbitControls{MinRadius: 3, MaxRadius: 20, GoalRadius: 8, GoalPolar: 1}
	SetOrbitGoal(ctrl, 1, -5, 100)
	assert.Equal(t, 1.0, ctrl.GoalAzimuth)
	assert.Equal(t, component.OrbitMinPolar, ctrl.GoalPolar)
	assert.Equal(t, 20.0, ctrl.GoalRadius)

	SetOrbitGoal(ctrl, math.NaN(), 10, math.Inf(1))
	assert.Equal(t, 1.0, ctrl.GoalAzimuth)
	assert.Equal(t, component.OrbitMaxPolar, ctrl.GoalPolar)
	assert.Equal(t, 20.0, ctrl.GoalRadius)
}

func TestSnapOrbit(t *testing.T) {
	ctrl := &component.OrbitControls{MinRadius: 3, MaxRadius: 20, AzimuthVel: 4, RadiusVel: 2}
	SnapOrbit(ctrl, 0.5, 1.2, 10)
	assert.Equal(t, 0.5, ctrl.Azimuth)
	assert.Equal(t, 1.2, ctrl.Polar)
	assert.Equal(t, 10.0, ctrl.Radius)
	assert.Zero(t, ctrl.AzimuthVel)
	assert.Zero(t, ctrl.RadiusVel)
}

func TestStepOrbitConverges(t *testing.T) {
	w, _ := newTestWorld(t)
	ctrl := orbitOf(t, w)
	cam := cameraOf(t, w)
	SetOrbitGoal(ctrl, 1, 1.2, 12)

	sys := NewOrbitCameraSystemWithInput(OrbitInput{})
	for i := 0; i < 600; i++ {
		sys.Update(w)
		require.GreaterOrEqual(t, ctrl.Polar, component.OrbitMinPolar)
		require.LessOrEqual(t, ctrl.Polar, component.OrbitMaxPolar)
	}
	assert.InDelta(t, 1, ctrl.Azimuth, 1e-3)
	assert.InDelta(t, 1.2, ctrl.Polar, 1e-3)
	assert.InDelta(t, 12, ctrl.Radius, 1e-3)
	assert.InDelta(t, 12, cam.Camera.Position.Sub(ctrl.Target).Len(), 1e-3)
	assert.Equal(t, ctrl.Target, cam.Camera.Target)
}

func TestApplyOrbitPlacesCamera(t *testing.T) {
	w, _ := newTestWorld(t)
	ctrl := orbitOf(t, w)
	cam := cameraOf(t, w)
	SnapOrbit(ctrl, 0, math.Pi/2, 8)
	ApplyOrbit(ctrl, cam)
	pos := cam.Camera.Position.Sub(ctrl.Target)
	assert.InDelta(t, 0, pos.X(), 1e-9)
	assert.InDelta(t, 0, pos.Y(), 1e-9)
	assert.InDelta(t, 8, pos.Z(), 1e-9)

	SnapOrbit(ctrl, math.Pi/2, math.Pi/2, 8)
	ApplyOrbit(ctrl, cam)
	assert.InDelta(t, 8, cam.Camera.Position.Sub(ctrl.Target).X(), 1e-9)
	assert.True(t, cam.Camera.Valid())
}
