// dimenshift - Terminal 4D Polytope Viewer
// Watch tesseracts, pentatopes and friends spin through the fourth
// dimension in your terminal.
//
// Controls:
//
//	Tab         - Next shape
//	O           - Toggle orbit / manual flight
//	W/S A/D Q/E - Move forward/back, left/right, down/up (manual)
//	I/K         - Move ana/kata along W (manual)
//	Arrows      - Turn in ZX (left/right) and XW (up/down) (manual)
//	+/-         - Zoom
//	Space       - Kick the bouncer
//	R           - Reset
//	?           - Toggle HUD overlay
//	Mouse       - Highlight the shape under the cursor
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/dimenshift/pkg/config"
	"github.com/taigrr/dimenshift/pkg/game"
	"github.com/taigrr/dimenshift/pkg/logging"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "", "Path to YAML config")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	bgColor    = flag.String("bg", "", "Background color R,G,B (overrides config)")
	shapeList  = flag.String("shape", "", "Comma-separated shapes to cycle (overrides config)")
	logPath    = flag.String("log", "", "Write logs to this file")
	snapshot   = flag.String("snapshot", "", "Render headless to this PNG and exit")
	frames     = flag.Int("frames", 60, "Frames to simulate before -snapshot")
	exportPath = flag.String("export", "", "Write the built-in polytopes to this GLB and exit")
	dumpConfig = flag.Bool("dump-config", false, "Print the effective config and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dimenshift - Terminal 4D Polytope Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dimenshift [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nShapes: %s\n", strings.Join(models.ShapeNames(), ", "))
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Next shape\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle orbit / manual flight\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D/Q/E - Move (manual)\n")
		fmt.Fprintf(os.Stderr, "  I/K         - Ana/kata (manual)\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Turn (manual)\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom\n")
		fmt.Fprintf(os.Stderr, "  Space       - Kick the bouncer\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}

	if *targetFPS > 0 {
		cfg.Window.FPS = *targetFPS
	}
	if *bgColor != "" {
		cfg.Window.Background = *bgColor
	}
	if *shapeList != "" {
		cfg.Scene.Shapes = splitList(*shapeList)
	}
	if *logPath != "" {
		cfg.Log.Outputs = []string{*logPath}
	}
	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *dumpConfig {
		return cfg.Encode(os.Stdout)
	}

	interactive := *snapshot == "" && *exportPath == ""

	// stderr would scribble over the alternate screen
	logger := logging.Nop()
	if !interactive || *logPath != "" {
		if logger, err = logging.New(cfg.Log); err != nil {
			return err
		}
	}
	defer logger.Sync() //nolint:errcheck

	switch {
	case *exportPath != "":
		return exportShapes(*exportPath, logger)
	case *snapshot != "":
		return renderSnapshot(cfg, logger, *snapshot, *frames)
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		return err
	}
	return runTerminal(g, cfg, logger)
}

// exportShapes writes every built-in polytope into one GLB.
func exportShapes(path string, logger *zap.Logger) error {
	var meshes []*models.Mesh
	for _, name := range models.ShapeNames() {
		m, err := models.ByName(name)
		if err != nil {
			return err
		}
		meshes = append(meshes, m)
	}
	if err := models.SaveGLB(path, meshes...); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Info("meshes exported", zap.String("path", path), zap.Int("meshes", len(meshes)))
	return nil
}

// renderSnapshot simulates frames at a fixed step and saves the last one.
func renderSnapshot(cfg config.Config, logger *zap.Logger, path string, frames int) error {
	g, err := game.New(cfg, logger)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
	dt := 1 / float32(cfg.Window.FPS)
	for range max(frames, 1) {
		g.Update(dt, game.Input{})
	}

	fb.Clear(g.Background())
	edges := g.Draw(render.NewWireframe(g.Camera(), fb))
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("path", path),
		zap.String("shape", g.Active().Name),
		zap.Int("edges", edges),
		zap.Int("frames", frames),
	)
	return nil
}

func runTerminal(g *game.Game, cfg config.Config, logger *zap.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan uv.Event, 64)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		in := term.Events()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-in:
				if !ok {
					return nil
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	eg.Go(func() error {
		err := frameLoop(ctx, term, g, cfg, width, height, events)
		if errors.Is(err, errQuit) {
			logger.Info("quit requested")
			err = nil
		}
		stop()
		return err
	})

	return eg.Wait()
}

var errQuit = errors.New("quit")

func frameLoop(ctx context.Context, term *uv.Terminal, g *game.Game, cfg config.Config, width, height int, events <-chan uv.Event) error {
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	wire := render.NewWireframe(g.Camera(), fb)

	hud := NewHUD()
	state := &inputState{hud: true}

	targetDuration := time.Second / time.Duration(cfg.Window.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					termRenderer = render.NewTerminalRenderer(term, width, height)
					fbWidth, fbHeight = termRenderer.FramebufferSize()
					fb.Resize(fbWidth, fbHeight)
				case uv.KeyPressEvent:
					state.apply(actionFor(ev.MatchString))
				case uv.MouseMotionEvent:
					state.cursor(ev.X, ev.Y)
				}
			default:
				break drain
			}
		}
		if state.quit {
			return errQuit
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		g.Update(float32(dt), state.frame(fbWidth, fbHeight))

		fb.Clear(g.Background())
		edges := g.Draw(wire)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, state.hud, g, edges)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
