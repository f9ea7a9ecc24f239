package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefab(t *testing.T, name string, edit func(string) string) {
	t.Helper()
	data, err := prefabs.PrefabsFS.ReadFile(name)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(prefabs.Dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(prefabs.Dir, name), []byte(edit(string(data))), 0o644))
}

func TestReloadRobotSpec(t *testing.T) {
	t.Chdir(t.TempDir())
	w, _ := newTestWorld(t)
	r := NewReloadSystem(nil, nil)

	// unchanged content is a no-op
	assert.False(t, r.Apply(w, prefabs.RobotFile))

	writePrefab(t, prefabs.RobotFile, func(s string) string {
		return strings.Replace(s, "spacing: 0.8", "spacing: 1.0", 1)
	})
	require.True(t, r.Apply(w, prefabs.RobotFile))
	for _, eye := range eyesOf(t, w) {
		assert.InDelta(t, 1.0, abs(eye.Node.Position[0]), 1e-12)
	}
	evts := w.Events().Peek()
	require.NotEmpty(t, evts)
	assert.Equal(t, ecs.EventPrefabReloaded, evts[len(evts)-1].Type)

	// a second save with the same bytes is ignored
	assert.False(t, r.Apply(w, prefabs.RobotFile))
}

func TestReloadRejectsBadRobotSpec(t *testing.T) {
	t.Chdir(t.TempDir())
	w, _ := newTestWorld(t)
	r := NewReloadSystem(nil, nil)

	writePrefab(t, prefabs.RobotFile, func(s string) string {
		return strings.Replace(s, "radius: 0.5", "radius: -1", 1)
	})
	assert.False(t, r.Apply(w, prefabs.RobotFile))
	for _, eye := range eyesOf(t, w) {
		assert.InDelta(t, 0.8, abs(eye.Node.Position[0]), 1e-12)
	}
}

func TestReloadCameraSpec(t *testing.T) {
	t.Chdir(t.TempDir())
	w, _ := newTestWorld(t)
	r := NewReloadSystem(nil, nil)

	writePrefab(t, prefabs.CameraFile, func(s string) string {
		return strings.Replace(s, "max_radius: 20", "max_radius: 6", 1)
	})
	require.True(t, r.Apply(w, prefabs.CameraFile))
	ctrl := orbitOf(t, w)
	assert.Equal(t, 6.0, ctrl.MaxRadius)
	assert.Equal(t, 6.0, ctrl.GoalRadius)
}

func TestReloadScriptResetsAutopilot(t *testing.T) {
	t.Chdir(t.TempDir())
	w, _ := newTestWorld(t)
	auto := NewAutopilotSystem("missing.tengo")
	auto.Update(w)
	require.True(t, auto.Disabled())

	r := NewReloadSystem(nil, auto)
	writeScript(t, "missing.tengo", "update := func(engine, state) {}")
	require.True(t, r.Apply(w, "missing.tengo"))
	assert.False(t, auto.Disabled())
}

func TestReloadSystemDrainsEvents(t *testing.T) {
	t.Chdir(t.TempDir())
	w, _ := newTestWorld(t)
	events := make(chan string, 4)
	r := NewReloadSystem(events, nil)

	writePrefab(t, prefabs.RobotFile, func(s string) string {
		return strings.Replace(s, "spacing: 0.8", "spacing: 0.9", 1)
	})
	events <- filepath.Join(prefabs.Dir, prefabs.RobotFile)
	events <- filepath.Join(prefabs.Dir, "notes.txt")
	r.Update(w)
	assert.Empty(t, events)
	for _, eye := range eyesOf(t, w) {
		assert.InDelta(t, 0.9, abs(eye.Node.Position[0]), 1e-12)
	}

	close(events)
	r.Update(w)
	r.Update(w)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
