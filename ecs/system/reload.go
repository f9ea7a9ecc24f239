package system

import (
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/ecs/entity"
	"github.com/milk9111/robothead/prefabs"
	"github.com/milk9111/robothead/scene"
	"go.uber.org/zap"
)

// maxReloadsPerTick bounds how many queued file events one tick handles.
const maxReloadsPerTick = 8

// ReloadSystem applies prefab edits reported by a prefabs.Watcher. Content
// is hashed so saves that do not change a file are ignored.
type ReloadSystem struct {
	events    <-chan string
	hashes    map[string]uint64
	autopilot *AutopilotSystem
}

func NewReloadSystem(events <-chan string, autopilot *AutopilotSystem) *ReloadSystem {
	r := &ReloadSystem{
		events:    events,
		hashes:    map[string]uint64{},
		autopilot: autopilot,
	}
	for _, name := range []string{prefabs.RobotFile, prefabs.CameraFile} {
		if data, err := prefabs.Load(name); err == nil {
			r.hashes[name] = xxhash.Sum64(data)
		}
	}
	if data, err := prefabs.LoadScript(DefaultAutopilotScript); err == nil {
		r.hashes[DefaultAutopilotScript] = xxhash.Sum64(data)
	}
	return r
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r == nil || w == nil || r.events == nil {
		return
	}
	for i := 0; i < maxReloadsPerTick; i++ {
		select {
		case path, ok := <-r.events:
			if !ok {
				r.events = nil
				return
			}
			r.Apply(w, prefabs.BaseName(path))
		default:
			return
		}
	}
}

// Apply reloads one prefab or script by file name. It reports whether
// anything changed.
func (r *ReloadSystem) Apply(w *ecs.World, name string) bool {
	if r == nil || w == nil || name == "" {
		return false
	}
	isScript := strings.EqualFold(filepath.Ext(name), ".tengo")

	var data []byte
	var err error
	if isScript {
		data, err = prefabs.LoadScript(name)
	} else {
		data, err = prefabs.Load(name)
	}
	if err != nil {
		zap.L().Warn("reload: read failed", zap.String("file", name), zap.Error(err))
		return false
	}
	sum := xxhash.Sum64(data)
	if prev, ok := r.hashes[name]; ok && prev == sum {
		return false
	}

	switch {
	case isScript:
		if r.autopilot != nil {
			r.autopilot.Reload()
		}
	case name == prefabs.RobotFile:
		spec, err := prefabs.DecodeSpec[prefabs.RobotSpec](name, data)
		if err == nil {
			err = entity.ApplyRobotSpec(w, &spec)
		}
		if err != nil {
			zap.L().Warn("reload: robot spec rejected", zap.Error(err))
			return false
		}
	case name == prefabs.CameraFile:
		spec, err := prefabs.DecodeSpec[prefabs.CameraSpec](name, data)
		if err != nil {
			zap.L().Warn("reload: camera spec rejected", zap.Error(err))
			return false
		}
		e, ok := ecs.First(w, component.OrbitControlsComponent.Kind())
		if !ok {
			return false
		}
		ctrl, _ := ecs.Get(w, e, component.OrbitControlsComponent.Kind())
		var camera *scene.Camera
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			camera = cam.Camera
		}
		entity.ApplyCameraSpec(camera, ctrl, &spec)
		SetOrbitGoal(ctrl, ctrl.GoalAzimuth, ctrl.GoalPolar, ctrl.GoalRadius)
	default:
		return false
	}

	r.hashes[name] = sum
	w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: name})
	zap.L().Info("prefab reloaded", zap.String("file", name), zap.Uint64("hash", sum))
	return true
}
