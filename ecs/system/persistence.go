package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "viewer"
	settingsProperty = "settings.yaml"
)

// ViewerSettings is what survives between sessions.
type ViewerSettings struct {
	Azimuth    float64 `yaml:"azimuth"`
	Polar      float64 `yaml:"polar"`
	Radius     float64 `yaml:"radius"`
	HudVisible bool    `yaml:"hud_visible"`
}

// SettingsStore loads and saves ViewerSettings. ok is false when nothing has
// been saved yet.
type SettingsStore interface {
	Load() (settings ViewerSettings, ok bool, err error)
	Save(settings ViewerSettings) error
}

// GDataStore keeps settings in the per-user application data directory.
type GDataStore struct {
	manager *gdata.Manager
}

func OpenSettingsStore(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", appName, err)
	}
	return &GDataStore{manager: m}, nil
}

func (s *GDataStore) Load() (ViewerSettings, bool, error) {
	if s == nil || s.manager == nil {
		return ViewerSettings{}, false, nil
	}
	if !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return ViewerSettings{}, false, nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return ViewerSettings{}, false, fmt.Errorf("persistence: load: %w", err)
	}
	var settings ViewerSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return ViewerSettings{}, false, fmt.Errorf("persistence: decode: %w", err)
	}
	return settings, true, nil
}

func (s *GDataStore) Save(settings ViewerSettings) error {
	if s == nil || s.manager == nil {
		return errors.New("persistence: store not open")
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("persistence: encode: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("persistence: save: %w", err)
	}
	return nil
}

// PersistenceSystem restores viewer settings on its first tick. Save is
// called by the host on shutdown.
type PersistenceSystem struct {
	store    SettingsStore
	restored bool
}

func NewPersistenceSystem(store SettingsStore) *PersistenceSystem {
	return &PersistenceSystem{store: store}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil || p.restored {
		return
	}
	p.restored = true
	if p.store == nil {
		return
	}

	settings, ok, err := p.store.Load()
	if err != nil {
		zap.L().Warn("persistence: using defaults", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if ctrl, ok := ecs.Singleton(w, component.OrbitControlsComponent.Kind()); ok && settings.Radius > 0 {
		SnapOrbit(ctrl, settings.Azimuth, settings.Polar, settings.Radius)
	}
	if hud, ok := ecs.Singleton(w, component.HudComponent.Kind()); ok {
		hud.Visible = settings.HudVisible
	}
	zap.L().Info("persistence: restored viewer settings",
		zap.Float64("azimuth", settings.Azimuth),
		zap.Float64("polar", settings.Polar),
		zap.Float64("radius", settings.Radius))
}

// CurrentSettings reads the settings worth saving out of the world.
func CurrentSettings(w *ecs.World) ViewerSettings {
	var s ViewerSettings
	if ctrl, ok := ecs.Singleton(w, component.OrbitControlsComponent.Kind()); ok {
		s.Azimuth, s.Polar, s.Radius = ctrl.GoalAzimuth, ctrl.GoalPolar, ctrl.GoalRadius
	}
	if hud, ok := ecs.Singleton(w, component.HudComponent.Kind()); ok {
		s.HudVisible = hud.Visible
	}
	return s
}

func (p *PersistenceSystem) Save(w *ecs.World) error {
	if p == nil || p.store == nil || w == nil {
		return nil
	}
	return p.store.Save(CurrentSettings(w))
}
