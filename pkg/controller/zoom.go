package controller

import (
	"github.com/taigrr/dimenshift/pkg/render"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Focal length limits for ZoomTween.
const (
	MinFocalLength = 0.5
	MaxFocalLength = 8.0
)

// ZoomTween eases the camera's focal length toward a target.
type ZoomTween struct {
	Ease  ease.TweenFunc
	tween *gween.Tween
	end   float32
}

// NewZoomTween creates an idle zoom with an ease-out curve.
func NewZoomTween() *ZoomTween {
	return &ZoomTween{Ease: ease.OutCubic}
}

// ZoomTo starts a tween from the current focal length to target, clamped
// to [MinFocalLength, MaxFocalLength], over seconds.
func (z *ZoomTween) ZoomTo(cam *render.Camera, target, seconds float32) {
	target = min(max(target, MinFocalLength), MaxFocalLength)
	z.end = target
	z.tween = gween.New(cam.FocalLength, target, seconds, z.Ease)
}

// ZoomBy starts a tween to the current goal plus delta.
func (z *ZoomTween) ZoomBy(cam *render.Camera, delta, seconds float32) {
	from := cam.FocalLength
	if z.Active() {
		from = z.end
	}
	z.ZoomTo(cam, from+delta, seconds)
}

// Active reports whether a tween is running.
func (z *ZoomTween) Active() bool {
	return z.tween != nil
}

// Update advances the tween by dt seconds and writes the focal length.
func (z *ZoomTween) Update(cam *render.Camera, dt float32) {
	if z.tween == nil {
		return
	}
	val, done := z.tween.Update(dt)
	cam.FocalLength = val
	if done {
		z.tween = nil
	}
}

// Stop cancels a running tween, leaving the focal length where it is.
func (z *ZoomTween) Stop() {
	z.tween = nil
}
