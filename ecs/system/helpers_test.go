package system

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/ecs/entity"
	"github.com/milk9111/robothead/prefabs"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) (*ecs.World, entity.Scene) {
	t.Helper()
	robot, err := prefabs.LoadRobotSpec()
	require.NoError(t, err)
	camera, err := prefabs.LoadCameraSpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	s, err := entity.BuildScene(w, robot, camera, 16.0/9.0, true, false)
	require.NoError(t, err)
	return w, s
}

func testClock(t *testing.T, w *ecs.World) *component.Clock {
	t.Helper()
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	require.True(t, ok)
	return clock
}

// fakeNow is a hand-advanced time source.
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) Now() time.Time { return f.t }

func (f *fakeNow) Advance(d time.Duration) { f.t = f.t.Add(d) }

// pressedKeys reports the given keys as just pressed.
func pressedKeys(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
}

func blinkOf(t *testing.T, w *ecs.World) *component.Blink {
	t.Helper()
	b, ok := ecs.Singleton(w, component.BlinkComponent.Kind())
	require.True(t, ok)
	return b
}

func eyesOf(t *testing.T, w *ecs.World) []*component.Eye {
	t.Helper()
	var eyes []*component.Eye
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, e *component.Eye) {
		eyes = append(eyes, e)
	})
	require.Len(t, eyes, 2)
	return eyes
}

func earsOf(t *testing.T, w *ecs.World) []*component.Ear {
	t.Helper()
	var ears []*component.Ear
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, e *component.Ear) {
		ears = append(ears, e)
	})
	require.Len(t, ears, 2)
	return ears
}

func cameraOf(t *testing.T, w *ecs.World) *component.Camera {
	t.Helper()
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	require.True(t, ok)
	return cam
}
