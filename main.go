package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs/system"
	"github.com/milk9111/robothead/prefabs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const appName = "robothead"

type options struct {
	debug       bool
	seed        int64
	autopilot   bool
	watch       bool
	baseMonitor bool
	noPersist   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "An animated robot head that follows the pointer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.debug, "debug", false, "debug logging and live state readouts")
	f.Int64Var(&opts.seed, "seed", 0, "blink timing seed (0 picks one from the clock)")
	f.BoolVar(&opts.autopilot, "autopilot", false, "drive the camera and pointer from prefabs/scripts/orbit.tengo")
	f.BoolVar(&opts.watch, "watch", false, "hot reload prefabs and scripts from disk")
	f.BoolVarP(&opts.baseMonitor, "base-monitor", "m", false, "use the first monitor instead of the primary")
	f.BoolVar(&opts.noPersist, "no-persist", false, "do not restore or save viewer settings")
	return cmd
}

func run(ctx context.Context, opts options) error {
	logger, err := common.NewLogger(opts.debug, zap.String("session", uuid.NewString()))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	cfg := GameConfig{Debug: opts.debug, Seed: opts.seed, Autopilot: opts.autopilot}
	if !opts.noPersist {
		store, err := system.OpenSettingsStore(appName)
		if err != nil {
			logger.Warn("persistence disabled", zap.Error(err))
		} else {
			cfg.Store = store
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)

	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			cfg.Reload = watcher.Events
			group.Go(func() error { return watcher.Run(gctx) })
			group.Go(func() error {
				for err := range watcher.Errors {
					logger.Warn("prefab watcher", zap.Error(err))
				}
				return nil
			})
		}
	}

	game, err := NewGame(cfg)
	if err != nil {
		return err
	}

	if opts.baseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(appName)

	// stop the window when the process is interrupted
	go func() {
		<-gctx.Done()
		game.Stop()
	}()

	runErr := ebiten.RunGame(game)
	game.Shutdown()
	cancel()
	if err := group.Wait(); err != nil {
		logger.Warn("background tasks", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("game exited", zap.Error(runErr))
	}
	return runErr
}
