package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/dimenshift/pkg/game"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/render"
	"go.uber.org/zap"
)

// Viewer runs a game.Game as an ebiten.Game.
type Viewer struct {
	game   *game.Game
	log    *zap.Logger
	target *Target
	wire   *render.Wireframe

	width, height int
	HUD           bool
}

// NewViewer wraps g.
func NewViewer(g *game.Game, logger *zap.Logger) *Viewer {
	t := &Target{Width: 1, Antialias: true}
	return &Viewer{
		game:   g,
		log:    logger,
		target: t,
		wire:   render.NewWireframe(g.Camera(), t),
		HUD:    true,
	}
}

// Update polls input and advances the game one tick.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.log.Info("quit requested")
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.HUD = !v.HUD
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	v.game.Update(dt, v.input())
	return nil
}

func (v *Viewer) input() game.Input {
	mx, my := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()

	in := game.Input{
		CursorX:     float32(mx),
		CursorY:     float32(my),
		HasCursor:   true,
		Width:       v.width,
		Height:      v.height,
		NextShape:   inpututil.IsKeyJustPressed(ebiten.KeyTab),
		ToggleOrbit: inpututil.IsKeyJustPressed(ebiten.KeyO),
		Reset:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		Kick:        inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Move:        MoveAxes(ebiten.IsKeyPressed),
		Yaw:         axis(ebiten.IsKeyPressed, ebiten.KeyArrowRight, ebiten.KeyArrowLeft),
		Ana:         axis(ebiten.IsKeyPressed, ebiten.KeyArrowUp, ebiten.KeyArrowDown),
		Zoom:        float32(wheel),
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		in.Zoom++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		in.Zoom--
	}
	return in
}

// MoveAxes maps held keys to a local movement direction:
// D/A along X, E/Q along Y, W/S along Z and I/K along W.
func MoveAxes(pressed func(ebiten.Key) bool) math4d.Vec4 {
	return math4d.V4(
		axis(pressed, ebiten.KeyD, ebiten.KeyA),
		axis(pressed, ebiten.KeyE, ebiten.KeyQ),
		axis(pressed, ebiten.KeyW, ebiten.KeyS),
		axis(pressed, ebiten.KeyI, ebiten.KeyK),
	)
}

func axis(pressed func(ebiten.Key) bool, pos, neg ebiten.Key) float32 {
	var v float32
	if pressed(pos) {
		v++
	}
	if pressed(neg) {
		v--
	}
	return v
}

// Draw clears to the background and draws the scene.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.game.Background())
	v.target.Image = screen
	edges := v.game.Draw(v.wire)

	if v.HUD {
		mode := "orbit"
		if !v.game.Orbiting() {
			mode = "manual"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"%s  [%s]  edges %d  focal %.2f  FPS %.0f\nTab shape  O orbit  WASDQE/IK move  arrows turn  +/- zoom  Space kick  R reset",
			v.game.Active().Name, mode, edges, v.game.Camera().FocalLength, ebiten.ActualFPS(),
		), 4, 4)
	}
}

// Layout uses the window size as the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
