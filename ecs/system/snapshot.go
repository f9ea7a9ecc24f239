package system

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// Snapshot is the animation state copied by the C key.
type Snapshot struct {
	Frame      uint64          `yaml:"frame"`
	ElapsedMS  float64         `yaml:"elapsed_ms"`
	Blink      float64         `yaml:"blink"`
	BlinkPhase string          `yaml:"blink_phase"`
	Gaze       [3]float64      `yaml:"gaze_target,flow"`
	GazeValid  bool            `yaml:"gaze_valid"`
	Camera     [3]float64      `yaml:"camera,flow"`
	Eyes       []EyeSnapshot   `yaml:"eyes"`
	Antenna    AntennaSnapshot `yaml:"antenna"`
	Ears       []EarSnapshot   `yaml:"ears"`
}

type EyeSnapshot struct {
	Side              string  `yaml:"side"`
	Yaw               float64 `yaml:"yaw"`
	TrackingIntensity float64 `yaml:"tracking_intensity"`
}

type AntennaSnapshot struct {
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
}

type EarSnapshot struct {
	Side       string  `yaml:"side"`
	Retraction float64 `yaml:"retraction"`
}

// TakeSnapshot collects the current animation state.
func TakeSnapshot(w *ecs.World) Snapshot {
	var s Snapshot
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		s.Frame, s.ElapsedMS = clock.Frame, clock.ElapsedMS
	}
	if blink, ok := ecs.Singleton(w, component.BlinkComponent.Kind()); ok {
		s.Blink = blink.Cell.Value()
		s.BlinkPhase = blink.Phase.String()
	}
	if gaze, ok := ecs.Singleton(w, component.GazeComponent.Kind()); ok {
		s.Gaze, s.GazeValid = [3]float64(gaze.Target), gaze.Valid
	}
	if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok && cam.Camera != nil {
		s.Camera = [3]float64(cam.Camera.Position)
	}
	ecs.ForEach(w, component.EyeComponent.Kind(), func(_ ecs.Entity, eye *component.Eye) {
		es := EyeSnapshot{Side: eye.Side.String(), TrackingIntensity: eye.TrackingIntensity}
		if eye.Node != nil {
			es.Yaw = eye.Node.Rotation[1]
		}
		s.Eyes = append(s.Eyes, es)
	})
	if a, ok := ecs.Singleton(w, component.AntennaComponent.Kind()); ok {
		s.Antenna.Position = [2]float64{a.Position.X, a.Position.Y}
		s.Antenna.Velocity = [2]float64{a.Velocity.X, a.Velocity.Y}
	}
	ecs.ForEach(w, component.EarComponent.Kind(), func(_ ecs.Entity, ear *component.Ear) {
		s.Ears = append(s.Ears, EarSnapshot{Side: ear.Side.String(), Retraction: ear.Retraction})
	})
	return s
}

// SnapshotTaken is the payload of ecs.EventSnapshotTaken.
type SnapshotTaken struct {
	YAML   []byte
	Copied bool
}

// SnapshotSystem copies a yaml snapshot to the clipboard when C is pressed.
// Without a clipboard the yaml goes to the log.
type SnapshotSystem struct {
	pressed func(ebiten.Key) bool
	write   func([]byte) error
}

func NewSnapshotSystem() *SnapshotSystem {
	return &SnapshotSystem{pressed: inpututil.IsKeyJustPressed, write: writeClipboard}
}

// NewSnapshotSystemWith injects the key source and the clipboard writer.
func NewSnapshotSystemWith(pressed func(ebiten.Key) bool, write func([]byte) error) *SnapshotSystem {
	return &SnapshotSystem{pressed: pressed, write: write}
}

func (s *SnapshotSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.pressed == nil || !s.pressed(ebiten.KeyC) {
		return
	}
	data, err := yaml.Marshal(TakeSnapshot(w))
	if err != nil {
		zap.L().Error("snapshot: encode", zap.Error(err))
		return
	}

	if s.write == nil {
		err = fmt.Errorf("snapshot: no clipboard writer")
	} else {
		err = s.write(data)
	}
	if err != nil {
		zap.L().Info("snapshot", zap.String("yaml", string(data)), zap.NamedError("clipboard", err))
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSnapshotTaken, Data: SnapshotTaken{YAML: data, Copied: err == nil}})
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func writeClipboard(data []byte) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
