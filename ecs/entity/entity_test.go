package entity

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotSpec(t *testing.T) *prefabs.RobotSpec {
	t.Helper()
	spec, err := prefabs.LoadRobotSpec()
	require.NoError(t, err)
	return spec
}

func cameraSpec(t *testing.T) *prefabs.CameraSpec {
	t.Helper()
	spec, err := prefabs.LoadCameraSpec()
	require.NoError(t, err)
	return spec
}

func TestBuildRobotStructure(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildRobot(w, robotSpec(t))
	require.NoError(t, err)

	robot, ok := ecs.Get(w, e, component.RobotComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, robot.Head)
	assert.Same(t, robot.Root, robot.Head.Parent())

	parts := map[string]bool{}
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		parts[m.Part] = true
		assert.NotNil(t, m.Geometry, m.Part)
		assert.NotZero(t, m.Geometry.TriangleCount(), m.Part)
		assert.NotNil(t, robot.Head.Find(m.Part), m.Part)
	})
	for _, name := range []string{
		PartHead, PartEyeLeft, PartEyeRight, PartAntennaBase,
		PartAntennaRod, PartAntennaTip, PartEarLeft, PartEarRight,
	} {
		assert.True(t, parts[name], name)
	}
	assert.NotNil(t, robot.Head.Find(PartAntennaTop))
}

func TestBuildRobotSharesBlinkCell(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildRobot(w, robotSpec(t))
	require.NoError(t, err)
	blink, ok := ecs.Get(w, e, component.BlinkComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, blink.Cell)

	var eyes []*component.Eye
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		eyes = append(eyes, eye)
	})
	require.Len(t, eyes, 2)
	for _, eye := range eyes {
		assert.Same(t, blink.Cell, eye.Blink)
	}
	blink.Cell.Set(0.4)
	for _, eye := range eyes {
		assert.Equal(t, 0.4, eye.Blink.Value())
	}
}

func TestBuildRobotLayout(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildRobot(w, robotSpec(t))
	require.NoError(t, err)

	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		want := mgl64.Vec3{0.8, 0.1, 0.95}
		if eye.Side == component.SideLeft {
			want[0] = -0.8
		}
		assert.InDeltaSlice(t, want[:], eye.Node.Position[:], 1e-12)
	})
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		if m.Material.Shading != component.ShadingEye {
			return
		}
		require.NotNil(t, m.Material.Eye)
		assert.Same(t, m.Node, m.Material.Eye.Node)
	})
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		sign := 1.0
		if ear.Side == component.SideLeft {
			sign = -1
		}
		assert.Equal(t, sign*1.55, ear.ExtendedX)
		assert.Equal(t, sign*1.42, ear.RetractedX)
		assert.Equal(t, sign*1.55, ear.Node.Position[0])
		assert.Equal(t, sign, ear.Outward.X())
	})

	a, ok := ecs.Singleton(w, component.AntennaComponent.Kind())
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 1.0, 0}, a.Top.Position[:], 1e-12)
	tip := a.Top.Find(PartAntennaTip)
	require.NotNil(t, tip)
	assert.InDelta(t, 0.8+0.12*0.8, tip.Position.Y(), 1e-12)

	glow, ok := ecs.Singleton(w, component.TipGlowComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.0, glow.Material.EmissiveIntensity)
}

func TestApplyRobotSpecKeepsAnimationState(t *testing.T) {
	w := ecs.NewWorld()
	spec := robotSpec(t)
	e, err := BuildRobot(w, spec)
	require.NoError(t, err)

	blink, _ := ecs.Get(w, e, component.BlinkComponent.Kind())
	blink.Cell.Set(0.3)
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		ear.Retraction = 1
	})

	spec.Eyes.Spacing = 1.1
	spec.Ears.RetractedX = 1.3
	spec.Head.Material.Color = prefabs.YAMLColor{Color: color.RGBA{R: 255, A: 255}}
	require.NoError(t, ApplyRobotSpec(w, spec))

	assert.Equal(t, 0.3, blink.Cell.Value())
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		assert.InDelta(t, 1.1, math.Abs(eye.Node.Position[0]), 1e-12)
	})
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		assert.InDelta(t, 1.3, math.Abs(ear.Node.Position[0]), 1e-12)
	})
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		if m.Part == PartHead {
			assert.Equal(t, mgl64.Vec3{1, 0, 0}, m.Material.Color)
		}
	})
}

func TestValidateRobotSpec(t *testing.T) {
	assert.Error(t, ValidateRobotSpec(nil))
	assert.NoError(t, ValidateRobotSpec(robotSpec(t)))

	tests := map[string]func(*prefabs.RobotSpec){
		"head size":     func(s *prefabs.RobotSpec) { s.Head.Size[1] = 0 },
		"eye radius":    func(s *prefabs.RobotSpec) { s.Eyes.Radius = -1 },
		"rod height":    func(s *prefabs.RobotSpec) { s.Antenna.RodHeight = math.NaN() },
		"ear depth":     func(s *prefabs.RobotSpec) { s.Ears.Depth = 0 },
		"tip radius":    func(s *prefabs.RobotSpec) { s.Antenna.TipRadius = 0 },
		"eye thickness": func(s *prefabs.RobotSpec) { s.Eyes.Thickness = 0 },
	}
	for name, mutate := range tests {
		spec := robotSpec(t)
		mutate(spec)
		assert.Error(t, ValidateRobotSpec(spec), name)

		w := ecs.NewWorld()
		_, err := BuildRobot(w, spec)
		assert.Error(t, err, name)
	}
}

func TestBuildCameraPose(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildCamera(w, cameraSpec(t), 16.0/9.0)
	require.NoError(t, err)

	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	require.True(t, ok)
	ctrl, ok := ecs.Get(w, e, component.OrbitControlsComponent.Kind())
	require.True(t, ok)

	assert.InDelta(t, 80*math.Pi/180, ctrl.Polar, 1e-12)
	assert.Equal(t, ctrl.Polar, ctrl.GoalPolar)
	assert.Equal(t, 8.0, ctrl.GoalRadius)
	assert.InDelta(t, 8, cam.Camera.Position.Len(), 1e-9)
	assert.Greater(t, cam.Camera.Position.Z(), 0.0)
	assert.Equal(t, 50.0, cam.Camera.FovY)
	assert.True(t, cam.Camera.Valid())
}

func TestBuildCameraClampsSpec(t *testing.T) {
	spec := cameraSpec(t)
	spec.Polar = 0
	spec.Radius = 100
	spec.MinRadius = 0
	spec.SpringFrequency = 0

	w := ecs.NewWorld()
	e, err := BuildCamera(w, spec, 1)
	require.NoError(t, err)
	ctrl, _ := ecs.Get(w, e, component.OrbitControlsComponent.Kind())
	assert.Equal(t, component.OrbitMinPolar, ctrl.Polar)
	assert.Equal(t, 3.0, ctrl.MinRadius)
	assert.Equal(t, spec.MaxRadius, ctrl.Radius)
}

func TestBuildScene(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildScene(w, robotSpec(t), cameraSpec(t), 1.5, false, true)
	require.NoError(t, err)
	assert.NotEqual(t, s.Robot, s.Camera)

	hud, ok := ecs.Get(w, s.Session, component.HudComponent.Kind())
	require.True(t, ok)
	assert.False(t, hud.Visible)
	assert.True(t, hud.Debug)
	_, ok = ecs.Get(w, s.Session, component.ClockComponent.Kind())
	assert.True(t, ok)

	_, err = BuildScene(nil, robotSpec(t), cameraSpec(t), 1, true, false)
	assert.Error(t, err)
}
