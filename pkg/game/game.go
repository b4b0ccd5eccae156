// Package game runs the Dimenshift scene one frame at a time: shape
// cycling, the showcase spin, camera flight, physics and picking.
package game

import (
	"fmt"
	"image/color"

	"github.com/taigrr/dimenshift/pkg/config"
	"github.com/taigrr/dimenshift/pkg/controller"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/physics"
	"github.com/taigrr/dimenshift/pkg/render"
	"github.com/taigrr/dimenshift/pkg/scene"
	"go.uber.org/zap"
)

// Zoom step applied per unit of Input.Zoom.
const (
	ZoomStep    = 0.5
	ZoomSeconds = 0.25
)

// Tints per built-in polytope. Loaded meshes use scene.DefaultColor.
var (
	shapeColors = map[string]color.RGBA{
		"tesseract": {0, 255, 127, 255},
		"pentatope": {255, 127, 0, 255},
		"16-cell":   {204, 51, 255, 255},
		"24-cell":   {255, 77, 153, 255},
	}
	GridColor    = color.RGBA{77, 77, 77, 127}
	BouncerColor = color.RGBA{255, 255, 0, 255}
)

// Input is one frame of user intent. Backends fill it from their own
// event sources.
type Input struct {
	// Cursor in pixels; ignored unless HasCursor.
	CursorX, CursorY float32
	HasCursor        bool

	// Viewport size in pixels. Zero keeps the previous size.
	Width, Height int

	NextShape   bool
	ToggleOrbit bool
	Reset       bool
	Kick        bool

	Move math4d.Vec4 // local direction for manual flight, per second
	Yaw  float32     // ZX turn direction, -1..1
	Ana  float32     // XW turn direction, -1..1
	Zoom float32     // zoom steps, positive zooms in
}

// Game owns the scene and everything that moves it.
type Game struct {
	cfg config.Config
	log *zap.Logger

	camera  *render.Camera
	rig     *controller.CameraRig
	zoom    *controller.ZoomTween
	spinner *controller.Spinner
	world   *physics.World

	root    *scene.Node
	shapes  []*scene.Node
	active  int
	grid    *scene.Node
	bouncer *scene.Node

	background color.RGBA
	width      int
	height     int

	clock  float32
	cycle  float32
	picked bool
}

// New builds the scene described by cfg.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bg, err := config.ParseRGB(cfg.Window.Background)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		log:        logger,
		zoom:       controller.NewZoomTween(),
		spinner:    &controller.Spinner{AlphaRate: cfg.Scene.SpinAlpha, BetaRate: cfg.Scene.SpinBeta},
		root:       scene.NewNode("root"),
		background: bg,
	}

	g.world = &physics.World{
		Gravity:   cfg.Physics.Gravity.V(),
		Floor:     physics.Floor{Height: cfg.Physics.FloorHeight, Friction: cfg.Physics.FloorFriction},
		ClampDrag: cfg.Physics.ClampDrag,
	}

	g.camera = render.NewCamera(cfg.Camera.Position.V())
	g.camera.FocalLength = cfg.Camera.FocalLength
	g.camera.Screen = render.ScreenProjection{
		ViewerDistance: cfg.Screen.ViewerDistance,
		PixelScale:     cfg.Screen.PixelScale,
		Near:           cfg.Screen.Near,
	}

	orbit := controller.Orbit{
		Radius:     cfg.Camera.OrbitRadius,
		Speed:      cfg.Camera.OrbitSpeed,
		Height:     cfg.Camera.OrbitHeight,
		WCenter:    cfg.Camera.WCenter,
		WAmplitude: cfg.Camera.WAmplitude,
		WSpeed:     cfg.Camera.WSpeed,
	}
	g.rig = controller.NewCameraRig(orbit, cfg.Window.FPS, cfg.Camera.SpringFrequency, cfg.Camera.SpringDamping)

	if err := g.buildShapes(); err != nil {
		return nil, err
	}
	if err := g.buildExtras(); err != nil {
		return nil, err
	}

	g.SetViewport(cfg.Window.Width, cfg.Window.Height)
	g.placeCamera()
	g.SetActive(0)
	g.root.Update(0)

	g.log.Info("scene built",
		zap.Int("shapes", len(g.shapes)),
		zap.Bool("grid", g.grid != nil),
		zap.Bool("bouncer", g.bouncer != nil),
		zap.Bool("orbit", cfg.Camera.Orbit),
	)
	return g, nil
}

func (g *Game) buildShapes() error {
	for _, name := range g.cfg.Scene.Shapes {
		mesh, err := models.ByName(name)
		if err != nil {
			return fmt.Errorf("scene shape: %w", err)
		}
		node := scene.NewEntity(mesh.Name, mesh)
		if c, ok := shapeColors[mesh.Name]; ok {
			node.Color = c
		}
		g.addShape(node)
	}

	for _, path := range g.cfg.Scene.MeshFiles {
		mesh, err := models.LoadGLB(path)
		if err != nil {
			return fmt.Errorf("scene mesh file: %w", err)
		}
		g.addShape(scene.NewEntity(mesh.Name, mesh))
		g.log.Debug("mesh loaded",
			zap.String("path", path),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("edges", mesh.EdgeCount()),
		)
	}
	return nil
}

func (g *Game) addShape(n *scene.Node) {
	n.Visible = false
	g.shapes = append(g.shapes, n)
	g.root.AddChild(n)
}

func (g *Game) buildExtras() error {
	if gc := g.cfg.Scene.Grid; gc.Enabled {
		g.grid = scene.NewEntity("grid", models.HyperGrid(gc.HalfSize, gc.Step, gc.Y))
		g.grid.Color = GridColor
		g.root.AddChild(g.grid)
	}

	if bc := g.cfg.Scene.Bouncer; bc.Enabled {
		mesh, err := models.ByName(bc.Shape)
		if err != nil {
			return fmt.Errorf("bouncer: %w", err)
		}
		g.bouncer = scene.NewEntity("bouncer", mesh)
		g.bouncer.Color = BouncerColor
		g.bouncer.Body = &physics.RigidBody{
			Mass:       bc.Mass,
			Drag:       bc.Drag,
			Bounciness: bc.Bounciness,
		}
		g.bouncer.SetScale(math4d.One4().Scale(bc.Scale))
		g.bouncer.SetPosition(bc.Position.V())
		g.root.AddChild(g.bouncer)
	}
	return nil
}

func (g *Game) placeCamera() {
	if g.cfg.Camera.Orbit {
		g.rig.Reset(g.camera, g.clock)
		return
	}
	g.camera.Position = g.cfg.Camera.Position.V()
	g.camera.SetOrientation(math4d.IdentityRotor())
	g.rig.Hold(g.camera)
}

// Update advances the scene by dt seconds. The order is fixed: shape
// cycling, spin, camera, physics, world matrices, picking.
func (g *Game) Update(dt float32, in Input) {
	if in.Reset {
		g.Reset()
	}
	if in.ToggleOrbit {
		g.ToggleOrbit()
	}
	if in.NextShape {
		g.Next()
	}
	if in.Kick && g.bouncer != nil {
		g.bouncer.Body.ApplyImpulse(g.cfg.Scene.Bouncer.Impulse.V())
	}
	if in.Width > 0 && in.Height > 0 {
		g.SetViewport(in.Width, in.Height)
	}

	// cycling
	g.clock += dt
	g.cycle += dt
	if g.cycle >= g.cfg.Scene.CycleSeconds {
		g.cycle = 0
		g.SetActive(g.active + 1)
		g.log.Debug("shape cycled", zap.String("shape", g.Active().Name))
	}

	// spin
	g.spinner.Update(dt)
	g.Active().SetRotation(g.spinner.Rotor())

	// camera
	if g.rig.Manual() {
		g.rig.Nudge(in.Move.Scale(g.cfg.Camera.MoveSpeed * dt))
		g.rig.Turn(math4d.PlaneZX, in.Yaw*g.cfg.Camera.TurnSpeed*dt)
		g.rig.Turn(math4d.PlaneXW, in.Ana*g.cfg.Camera.TurnSpeed*dt)
	}
	g.rig.SetStep(dt)
	g.rig.Update(g.camera, g.clock)
	if in.Zoom != 0 {
		g.zoom.ZoomBy(g.camera, in.Zoom*ZoomStep, ZoomSeconds)
	}
	g.zoom.Update(g.camera, dt)

	// physics
	g.root.Walk(func(n *scene.Node) bool {
		if n.Body == nil {
			return true
		}
		pos := n.Transform.Position
		g.world.Step(n.Body, &pos, dt)
		n.SetPosition(pos)
		return true
	})

	g.root.Update(dt)

	if in.HasCursor {
		g.pick(in.CursorX, in.CursorY)
	}
}

func (g *Game) pick(x, y float32) {
	active := g.Active()
	ray := g.camera.ScreenPointToRay(x, y, g.width, g.height)
	hit, _, _ := ray.Intersects(active.WorldBounds())

	active.Highlighted = hit
	if hit != g.picked {
		g.picked = hit
		g.log.Info("pick changed", zap.String("shape", active.Name), zap.Bool("hit", hit))
	}
}

// Draw renders the scene and, if enabled, the world axes. It returns the
// number of scene edges drawn.
func (g *Game) Draw(w *render.Wireframe) int {
	if g.cfg.Scene.Axes {
		w.DrawAxes(1)
	}
	return w.DrawScene(g.root)
}

// SetViewport records the viewport size used for picking and rescales the
// pixel projection to it.
func (g *Game) SetViewport(width, height int) {
	g.width, g.height = width, height
	g.camera.Screen.PixelScale = g.cfg.Screen.ScaleFor(height)
}

// Active returns the displayed shape.
func (g *Game) Active() *scene.Node {
	return g.shapes[g.active]
}

// ActiveIndex returns the position of the displayed shape.
func (g *Game) ActiveIndex() int {
	return g.active
}

// Shapes returns the cycled shape entities in order.
func (g *Game) Shapes() []*scene.Node {
	return g.shapes
}

// SetActive shows shape i (wrapping in both directions) and hides the rest.
func (g *Game) SetActive(i int) {
	n := len(g.shapes)
	i = ((i % n) + n) % n

	prev := g.shapes[g.active]
	prev.Visible = false
	prev.Highlighted = false
	g.picked = false

	g.active = i
	cur := g.shapes[i]
	cur.Visible = true
	cur.SetRotation(g.spinner.Rotor())
	if prev != cur {
		g.log.Info("shape changed", zap.String("shape", cur.Name), zap.Int("index", i))
	}
}

// Next shows the following shape and restarts the cycle timer.
func (g *Game) Next() {
	g.cycle = 0
	g.SetActive(g.active + 1)
}

// ToggleOrbit switches between the automatic orbit and manual flight.
func (g *Game) ToggleOrbit() {
	g.rig.SetManual(!g.rig.Manual())
	g.log.Info("camera mode", zap.Bool("orbit", !g.rig.Manual()))
}

// Orbiting reports whether the camera follows the automatic orbit.
func (g *Game) Orbiting() bool {
	return !g.rig.Manual()
}

// Reset restores the clock, the first shape, the bouncer and the camera.
func (g *Game) Reset() {
	g.clock = 0
	g.cycle = 0
	g.spinner.Reset()
	g.SetActive(0)

	if g.bouncer != nil {
		g.bouncer.Body.Stop()
		g.bouncer.SetPosition(g.cfg.Scene.Bouncer.Position.V())
	}

	g.zoom.Stop()
	g.camera.FocalLength = g.cfg.Camera.FocalLength
	g.placeCamera()
	g.root.Update(0)
	g.log.Info("scene reset")
}

// Root returns the scene root.
func (g *Game) Root() *scene.Node {
	return g.root
}

// Camera returns the viewing camera.
func (g *Game) Camera() *render.Camera {
	return g.camera
}

// Bouncer returns the physics demo body, or nil when disabled.
func (g *Game) Bouncer() *scene.Node {
	return g.bouncer
}

// Background returns the clear color.
func (g *Game) Background() color.RGBA {
	return g.background
}

// Clock returns seconds since start or the last reset.
func (g *Game) Clock() float32 {
	return g.clock
}
