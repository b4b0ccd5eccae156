package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/dimenshift/pkg/config"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stillConfig returns a scene with a fixed camera at (0, 0, 0, -3.5)
// looking along +W and no spin.
func stillConfig() config.Config {
	cfg := config.Default()
	cfg.Camera.Orbit = false
	cfg.Scene.SpinAlpha = 0
	cfg.Scene.SpinBeta = 0
	return cfg
}

func newGame(t *testing.T, cfg config.Config) (*Game, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := New(cfg, zap.New(core))
	require.NoError(t, err)
	return g, logs
}

func TestNewBuildsScene(t *testing.T) {
	g, logs := newGame(t, config.Default())

	assert.Len(t, g.Root().Children(), 5, "three shapes, grid and bouncer")
	require.Len(t, g.Shapes(), 3)
	assert.Equal(t, "tesseract", g.Active().Name)
	assert.Equal(t, 0, g.ActiveIndex())

	for i, s := range g.Shapes() {
		assert.Equal(t, i == 0, s.Visible, s.Name)
	}
	assert.NotNil(t, g.Root().Find("grid"))
	require.NotNil(t, g.Bouncer())
	assert.Equal(t, BouncerColor, g.Bouncer().Color)
	assert.True(t, g.Orbiting())
	assert.Equal(t, 1, logs.FilterMessage("scene built").Len())
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Shapes = []string{"hypersphere"}
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, models.ErrUnknownShape)

	cfg = config.Default()
	cfg.Scene.Bouncer.Shape = "blob"
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, models.ErrUnknownShape)

	cfg = config.Default()
	cfg.Window.FPS = 0
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = config.Default()
	cfg.Scene.MeshFiles = []string{filepath.Join(t.TempDir(), "missing.glb")}
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestMeshFilesAreCycled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cell.glb")
	require.NoError(t, models.SaveGLB(path, models.SixteenCell()))

	cfg := config.Default()
	cfg.Scene.Shapes = nil
	cfg.Scene.MeshFiles = []string{path}

	g, _ := newGame(t, cfg)
	require.Len(t, g.Shapes(), 1)
	assert.Equal(t, "16-cell", g.Active().Name)
	assert.Equal(t, 8, g.Active().Mesh.VertexCount())
}

func TestShapesCycleOnTimer(t *testing.T) {
	g, _ := newGame(t, config.Default())

	for range 4 {
		g.Update(1, Input{})
	}
	assert.Equal(t, "tesseract", g.Active().Name)

	g.Update(1, Input{})
	assert.Equal(t, "pentatope", g.Active().Name)
	assert.False(t, g.Shapes()[0].Visible)
	assert.True(t, g.Shapes()[1].Visible)

	for range 10 {
		g.Update(1, Input{})
	}
	assert.Equal(t, "tesseract", g.Active().Name, "wraps after the last shape")
}

func TestNextAndSetActiveWrap(t *testing.T) {
	g, logs := newGame(t, config.Default())

	g.Update(4.5, Input{})
	g.Update(1, Input{NextShape: true})
	assert.Equal(t, "pentatope", g.Active().Name)
	g.Update(3.5, Input{})
	assert.Equal(t, "pentatope", g.Active().Name, "next restarts the cycle timer")

	g.SetActive(-1)
	assert.Equal(t, "16-cell", g.Active().Name)
	g.SetActive(4)
	assert.Equal(t, "pentatope", g.Active().Name)
	assert.Equal(t, 3, logs.FilterMessage("shape changed").Len())
}

func TestActiveShapeSpins(t *testing.T) {
	g, _ := newGame(t, config.Default())

	g.Update(0.5, Input{})
	want := math4d.NewRotor(math4d.PlaneXW, 0.5).
		Mul(math4d.NewRotor(math4d.PlaneZW, 0.15)).
		Mul(math4d.NewRotor(math4d.PlaneXY, 0.25))
	assert.True(t, g.Active().WorldMatrix().ApproxEqual(want.Mat5(), 1e-5))
}

func TestBouncerFallsAndKicks(t *testing.T) {
	g, _ := newGame(t, config.Default())
	b := g.Bouncer()

	g.Update(0.1, Input{})
	assert.Less(t, b.WorldPosition().Y, float32(4))
	assert.Less(t, b.Body.Velocity.Y, float32(0))

	g.Update(0.1, Input{Kick: true})
	assert.Greater(t, b.Body.Velocity.Y, float32(0))
	assert.Greater(t, b.Body.Velocity.W, float32(0))

	for range 600 {
		g.Update(1.0/60, Input{})
	}
	assert.GreaterOrEqual(t, b.WorldPosition().Y, float32(-1))
	assert.Less(t, b.WorldPosition().Y, float32(0), "comes to rest near the floor")
}

func TestPickingHighlightsActiveShape(t *testing.T) {
	g, logs := newGame(t, stillConfig())

	g.Update(0.01, Input{CursorX: 400, CursorY: 300, HasCursor: true, Width: 800, Height: 600})
	assert.True(t, g.Active().Highlighted)

	g.Update(0.01, Input{CursorX: 400, CursorY: 300, HasCursor: true})
	assert.True(t, g.Active().Highlighted)

	g.Update(0.01, Input{CursorX: 0, CursorY: 0, HasCursor: true})
	assert.False(t, g.Active().Highlighted)

	assert.Equal(t, 2, logs.FilterMessage("pick changed").Len())

	// switching shapes clears the highlight
	g.Update(0.01, Input{CursorX: 400, CursorY: 300, HasCursor: true})
	require.True(t, g.Active().Highlighted)
	first := g.Active()
	g.Next()
	assert.False(t, first.Highlighted)
}

func TestViewportRescalesProjection(t *testing.T) {
	g, _ := newGame(t, config.Default())
	assert.InDelta(t, 600, g.Camera().Screen.PixelScale, 1e-4)

	g.Update(0, Input{Width: 200, Height: 120})
	assert.InDelta(t, 100, g.Camera().Screen.PixelScale, 1e-4)
}

func TestManualFlightAndOrbitToggle(t *testing.T) {
	g, _ := newGame(t, stillConfig())
	require.False(t, g.Orbiting())
	start := g.Camera().Position
	assert.True(t, start.ApproxEqual(math4d.V4(0, 0, 0, -3.5), 1e-5))

	for range 30 {
		g.Update(0.1, Input{Move: math4d.UnitW()})
	}
	assert.Greater(t, g.Camera().Position.W, start.W)
	assert.InDelta(t, 0.1, g.rig.Step(), 1e-6, "springs follow the frame time")

	g.Update(0.1, Input{ToggleOrbit: true})
	assert.True(t, g.Orbiting())
}

func TestZoomInput(t *testing.T) {
	g, _ := newGame(t, stillConfig())

	g.Update(0.1, Input{Zoom: 2})
	for range 10 {
		g.Update(0.1, Input{})
	}
	assert.InDelta(t, 3, g.Camera().FocalLength, 1e-4)
}

func TestReset(t *testing.T) {
	g, logs := newGame(t, stillConfig())

	for range 20 {
		g.Update(0.5, Input{Move: math4d.UnitX(), Zoom: 1})
	}
	require.NotEqual(t, 0, g.ActiveIndex())

	g.Update(0, Input{Reset: true})
	assert.Equal(t, 0, g.ActiveIndex())
	assert.InDelta(t, 0, g.Clock(), 1e-6)
	assert.InDelta(t, 2, g.Camera().FocalLength, 1e-6)
	assert.True(t, g.Camera().Position.ApproxEqual(math4d.V4(0, 0, 0, -3.5), 1e-5))
	assert.InDelta(t, 4, g.Bouncer().WorldPosition().Y, 1e-5)
	assert.Equal(t, math4d.Vec4{}, g.Bouncer().Body.Velocity)
	assert.Equal(t, 1, logs.FilterMessage("scene reset").Len())
}

func TestDrawCountsEdges(t *testing.T) {
	cfg := stillConfig()
	cfg.Scene.Grid.Enabled = false
	cfg.Scene.Bouncer.Enabled = false
	g, _ := newGame(t, cfg)

	fb := render.NewFramebuffer(800, 600)
	fb.Clear(g.Background())
	wf := render.NewWireframe(g.Camera(), fb)

	assert.Equal(t, 32, g.Draw(wf), "every tesseract edge is in front of the camera")
}
