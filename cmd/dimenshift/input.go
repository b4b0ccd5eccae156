package main

import (
	"github.com/taigrr/dimenshift/pkg/game"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

type action int

const (
	actNone action = iota
	actQuit
	actNext
	actOrbit
	actReset
	actKick
	actZoomIn
	actZoomOut
	actHUD
	actRight
	actLeft
	actUp
	actDown
	actForward
	actBack
	actAna
	actKata
	actYawRight
	actYawLeft
	actTurnAna
	actTurnKata
)

// Key names as understood by uv.KeyPressEvent.MatchString.
var bindings = []struct {
	keys []string
	act  action
}{
	{[]string{"esc", "escape", "ctrl+c"}, actQuit},
	{[]string{"tab"}, actNext},
	{[]string{"o"}, actOrbit},
	{[]string{"r"}, actReset},
	{[]string{"space"}, actKick},
	{[]string{"+", "="}, actZoomIn},
	{[]string{"-", "_"}, actZoomOut},
	{[]string{"?", "shift+/"}, actHUD},
	{[]string{"d"}, actRight},
	{[]string{"a"}, actLeft},
	{[]string{"e"}, actUp},
	{[]string{"q"}, actDown},
	{[]string{"w"}, actForward},
	{[]string{"s"}, actBack},
	{[]string{"i"}, actAna},
	{[]string{"k"}, actKata},
	{[]string{"right"}, actYawRight},
	{[]string{"left"}, actYawLeft},
	{[]string{"up"}, actTurnAna},
	{[]string{"down"}, actTurnKata},
}

func actionFor(match func(keys ...string) bool) action {
	for _, b := range bindings {
		if match(b.keys...) {
			return b.act
		}
	}
	return actNone
}

// inputState turns terminal events into per-frame game input. Terminals
// rarely report key releases, so held directions decay each frame instead.
type inputState struct {
	move     math4d.Vec4
	yaw, ana float32

	cursorX, cursorY float32
	hasCursor        bool

	next, orbit, reset, kick bool
	zoom                     float32

	quit bool
	hud  bool
}

const (
	holdDecay = 0.9
	holdFloor = 0.01
)

func (s *inputState) apply(a action) {
	switch a {
	case actQuit:
		s.quit = true
	case actNext:
		s.next = true
	case actOrbit:
		s.orbit = true
	case actReset:
		s.reset = true
	case actKick:
		s.kick = true
	case actZoomIn:
		s.zoom++
	case actZoomOut:
		s.zoom--
	case actHUD:
		s.hud = !s.hud
	case actRight:
		s.move.X = 1
	case actLeft:
		s.move.X = -1
	case actUp:
		s.move.Y = 1
	case actDown:
		s.move.Y = -1
	case actForward:
		s.move.Z = 1
	case actBack:
		s.move.Z = -1
	case actAna:
		s.move.W = 1
	case actKata:
		s.move.W = -1
	case actYawRight:
		s.yaw = 1
	case actYawLeft:
		s.yaw = -1
	case actTurnAna:
		s.ana = 1
	case actTurnKata:
		s.ana = -1
	}
}

// cursor records a mouse position given in terminal cells. Each cell
// covers two framebuffer rows.
func (s *inputState) cursor(cellX, cellY int) {
	s.cursorX = float32(cellX) + 0.5
	s.cursorY = float32(cellY*2) + 1
	s.hasCursor = true
}

// frame returns the input for one frame, clears one-shot actions and
// decays held directions.
func (s *inputState) frame(width, height int) game.Input {
	in := game.Input{
		CursorX:     s.cursorX,
		CursorY:     s.cursorY,
		HasCursor:   s.hasCursor,
		Width:       width,
		Height:      height,
		NextShape:   s.next,
		ToggleOrbit: s.orbit,
		Reset:       s.reset,
		Kick:        s.kick,
		Move:        s.move,
		Yaw:         s.yaw,
		Ana:         s.ana,
		Zoom:        s.zoom,
	}

	s.next, s.orbit, s.reset, s.kick = false, false, false, false
	s.zoom = 0

	s.move = s.move.Scale(holdDecay)
	if s.move.Len() < holdFloor {
		s.move = math4d.Vec4{}
	}
	s.yaw = decay(s.yaw)
	s.ana = decay(s.ana)
	return in
}

func decay(v float32) float32 {
	v *= holdDecay
	if v > -holdFloor && v < holdFloor {
		return 0
	}
	return v
}
