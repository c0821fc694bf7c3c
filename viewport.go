package colorin

import (
	"math"

	"gioui.org/f32"
	"github.com/colorin/colorin/utils"
)

// Zoom limits and the step of the zoom slider.
const (
	MinScale  = 1.0
	MaxScale  = 5.0
	ScaleStep = 0.1
)

// Viewport holds the zoom level and the pan offset of the artwork.
// The pan offset is expressed in screen pixels and it is not bounded:
// the content can be dragged arbitrarily far, Reset brings it back.
type Viewport struct {
	Scale float64
	Pan   Point
}

// NewViewport returns the identity viewport.
func NewViewport() Viewport {
	return Viewport{Scale: MinScale}
}

// SetScale sets the zoom level, clamped to the [MinScale, MaxScale] interval.
func (v *Viewport) SetScale(scale float64) {
	if math.IsNaN(scale) {
		return
	}
	v.Scale = utils.Clamp(scale, MinScale, MaxScale)
}

// ZoomIn increases the zoom level by one slider step.
func (v *Viewport) ZoomIn() {
	v.SetScale(snapScale(v.Scale + ScaleStep))
}

// ZoomOut decreases the zoom level by one slider step.
func (v *Viewport) ZoomOut() {
	v.SetScale(snapScale(v.Scale - ScaleStep))
}

// SetPan sets the pan offset as it is.
func (v *Viewport) SetPan(p Point) {
	v.Pan = p
}

// Reset restores the identity viewport.
func (v *Viewport) Reset() {
	v.Scale = MinScale
	v.Pan = Point{}
}

// Apply maps a point of the untransformed content into screen space:
// translate(pan) composed with scale(scale), both relative to the top-left corner.
func (v Viewport) Apply(p Point) Point {
	return Point{
		X: v.Pan.X + p.X*v.Scale,
		Y: v.Pan.Y + p.Y*v.Scale,
	}
}

// Invert maps a screen point back into the untransformed content space.
func (v Viewport) Invert(p Point) Point {
	scale := v.Scale
	if scale == 0 {
		scale = MinScale
	}
	return Point{
		X: (p.X - v.Pan.X) / scale,
		Y: (p.Y - v.Pan.Y) / scale,
	}
}

// Transform returns the render transform of the content wrapper as an affine matrix.
func (v Viewport) Transform() f32.Affine2D {
	s := float32(v.Scale)
	return f32.NewAffine2D(
		s, 0, float32(v.Pan.X),
		0, s, float32(v.Pan.Y),
	)
}

// snapScale rounds the scale to the slider step, so repeated steps don't drift.
func snapScale(scale float64) float64 {
	return math.Round(scale/ScaleStep) * ScaleStep
}
