package system

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTakeSnapshot(t *testing.T) {
	w, _ := newTestWorld(t)
	clock := testClock(t, w)
	clock.Frame, clock.ElapsedMS = 42, 700
	NewGazeSystem().Update(w)

	s := TakeSnapshot(w)
	assert.Equal(t, uint64(42), s.Frame)
	assert.Equal(t, 700.0, s.ElapsedMS)
	assert.Equal(t, "idle", s.BlinkPhase)
	assert.True(t, s.GazeValid)
	assert.Len(t, s.Eyes, 2)
	assert.Len(t, s.Ears, 2)
	assert.Equal(t, [3]float64(cameraOf(t, w).Camera.Position), s.Camera)
}

func TestSnapshotCopiesOnKey(t *testing.T) {
	w, _ := newTestWorld(t)
	var copied []byte
	sys := NewSnapshotSystemWith(pressedKeys(ebiten.KeyC), func(b []byte) error {
		copied = b
		return nil
	})
	sys.Update(w)
	require.NotEmpty(t, copied)

	var decoded Snapshot
	require.NoError(t, yaml.Unmarshal(copied, &decoded))
	assert.Len(t, decoded.Eyes, 2)

	evts := w.Events().Peek()
	require.NotEmpty(t, evts)
	last := evts[len(evts)-1]
	assert.Equal(t, ecs.EventSnapshotTaken, last.Type)
	taken, ok := last.Data.(SnapshotTaken)
	require.True(t, ok)
	assert.True(t, taken.Copied)
	assert.Equal(t, copied, taken.YAML)

	hud, ok := ecs.Singleton(w, component.HudComponent.Kind())
	require.True(t, ok)
	assert.Empty(t, hud.Toast, "the toast is raised by the hud")

	ApplyHudEvents(w, w.Events().Drain())
	assert.Equal(t, "state copied to clipboard", hud.Toast)
	assert.Empty(t, w.Events().Peek())
}

func TestSnapshotFallsBackToLog(t *testing.T) {
	w, _ := newTestWorld(t)
	sys := NewSnapshotSystemWith(pressedKeys(ebiten.KeyC), func([]byte) error {
		return errors.New("no display")
	})
	sys.Update(w)
	ApplyHudEvents(w, w.Events().Drain())
	hud, ok := ecs.Singleton(w, component.HudComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "clipboard unavailable, state logged", hud.Toast)
}

func TestSnapshotIdleWithoutKey(t *testing.T) {
	w, _ := newTestWorld(t)
	called := false
	sys := NewSnapshotSystemWith(pressedKeys(ebiten.KeyP), func([]byte) error {
		called = true
		return nil
	})
	sys.Update(w)
	assert.False(t, called)
	assert.Empty(t, w.Events().Peek())
}
