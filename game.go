package main

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/ecs/entity"
	"github.com/milk9111/robothead/ecs/system"
	"github.com/milk9111/robothead/prefabs"
	"go.uber.org/zap"
)

type GameConfig struct {
	Debug     bool
	Seed      int64
	Autopilot bool
	// Reload carries changed prefab paths from a prefabs.Watcher. Nil disables
	// hot reload.
	Reload <-chan string
	// Store is nil when persistence is off.
	Store system.SettingsStore
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	scene     entity.Scene

	pointer     *system.PointerSystem
	orbit       *system.OrbitCameraSystem
	render      *system.RenderSystem
	persistence *system.PersistenceSystem

	width, height int
	stopped       atomic.Bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	robotSpec, err := prefabs.LoadRobotSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, robotSpec, cameraSpec, float64(common.BaseWidth)/common.BaseHeight, true, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("game: build scene: %w", err)
	}

	g := &Game{
		world:       w,
		scene:       scene,
		pointer:     system.NewPointerSystem(),
		orbit:       system.NewOrbitCameraSystem(),
		render:      system.NewRenderSystem(),
		persistence: system.NewPersistenceSystem(cfg.Store),
		width:       common.BaseWidth,
		height:      common.BaseHeight,
	}

	frame := frameSystems{
		pointer:     g.pointer,
		orbit:       g.orbit,
		persistence: g.persistence,
		render:      g.render,
		hud:         system.NewHudSystem(),
		snapshot:    system.NewSnapshotSystem(),
		seed:        cfg.Seed,
	}
	if cfg.Autopilot {
		frame.autopilot = system.NewAutopilotSystem(system.DefaultAutopilotScript)
	}
	if cfg.Reload != nil {
		frame.reload = system.NewReloadSystem(cfg.Reload, frame.autopilot)
	}
	g.scheduler = newFrameScheduler(frame)

	zap.L().Info("scene ready",
		zap.String("robot", robotSpec.Name),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("autopilot", cfg.Autopilot),
		zap.Bool("hot_reload", cfg.Reload != nil))
	return g, nil
}

// hudStage is the overlay: updated last and drawn over the scene.
type hudStage interface {
	ecs.System
	ecs.Drawer
}

// frameSystems holds the systems that carry handles outside the scheduler.
// autopilot and reload are optional.
type frameSystems struct {
	pointer     *system.PointerSystem
	orbit       *system.OrbitCameraSystem
	persistence *system.PersistenceSystem
	render      *system.RenderSystem
	hud         hudStage
	snapshot    *system.SnapshotSystem
	autopilot   *system.AutopilotSystem
	reload      *system.ReloadSystem
	seed        int64
}

// newFrameScheduler orders one tick: clock, input and camera controls, the
// time driven tweens, then gaze, antenna and ears, which all read the camera
// pose settled this tick. Reload, snapshot and the hud run last so the hud
// sees every event raised during the tick. The renderer draws before the hud.
func newFrameScheduler(f frameSystems) *ecs.Scheduler {
	s := ecs.NewScheduler(
		system.NewClockSystem(),
		f.pointer,
		f.persistence,
	)
	if f.autopilot != nil {
		s.Add(f.autopilot)
	}
	s.Add(f.orbit)
	s.Add(system.NewBlinkSystem(rand.New(rand.NewSource(f.seed))))
	s.Add(system.NewTipGlowSystem())
	s.Add(system.NewIdleMotionSystem())
	s.Add(system.NewGazeSystem())
	s.Add(system.NewAntennaSystem())
	s.Add(system.NewEarSystem())
	if f.reload != nil {
		s.Add(f.reload)
	}
	if f.snapshot != nil {
		s.Add(f.snapshot)
	}
	if f.hud != nil {
		s.Add(f.hud)
	}

	s.AddDrawer(f.render)
	if f.hud != nil {
		s.AddDrawer(f.hud)
	}
	return s
}

func (g *Game) Update() error {
	if g.stopped.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.render.ReloadShaders()
		system.ShowToast(g.world, "eye shader reloaded")
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
}

// Layout renders at the window size so resizing changes the camera aspect
// instead of stretching the image.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func (g *Game) resize(width, height int) {
	g.width, g.height = width, height
	g.pointer.SetViewport(width, height)
	g.orbit.SetViewport(width, height)
	if cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent.Kind()); ok && cam.Camera != nil {
		cam.Camera.Aspect = float64(width) / float64(height)
	}
}

// Stop asks the game loop to end on its next tick. Safe from any goroutine.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

// Shutdown persists viewer settings.
func (g *Game) Shutdown() {
	if err := g.persistence.Save(g.world); err != nil {
		zap.L().Warn("persistence: save failed", zap.Error(err))
	}
}
