// dimenshift-gui - Windowed 4D Polytope Viewer
//
// Same scene and keys as the terminal viewer, drawn with ebiten.
// Mouse wheel zooms; H toggles the HUD.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/dimenshift/pkg/config"
	"github.com/taigrr/dimenshift/pkg/game"
	"github.com/taigrr/dimenshift/pkg/logging"
	"github.com/taigrr/dimenshift/pkg/render/ebitenview"
	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "Path to YAML config")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	g, err := game.New(cfg, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.FPS)

	logger.Info("window opened",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Window.FPS),
	)
	if err := ebiten.RunGame(ebitenview.NewViewer(g, logger)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
