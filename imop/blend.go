// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used for mixing a layer with its backdrop.
// The image/draw core package implements only the source-over-destination and source
// operators, and none of the blend modes.
//
// It is used by the layer compositor for merging the line-art layer
// onto the paint layer: with the multiply mode the white paper of the line art
// becomes fully transparent and the black ink stays opaque over any color.
//
// All the arithmetic is carried out on 8-bit integer channels with rounding,
// so white is an exact identity for multiply and black is an exact absorbing element.
package imop

import (
	"errors"

	"github.com/colorin/colorin/utils"
)

const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// ErrUnsupportedMode is returned when the requested blend mode is not implemented.
var ErrUnsupportedMode = errors.New("unsupported blend mode")

// Modes lists the supported blend modes.
var Modes = []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	Mode string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(mode string) error {
	if !utils.Contains(Modes, mode) {
		return ErrUnsupportedMode
	}
	o.Mode = mode
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.Mode
}

// Mix returns the blending result B(cb, cs) of a backdrop and a source channel.
func (o *Blend) Mix(cb, cs uint8) uint8 {
	if o == nil {
		return cs
	}
	switch o.Mode {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return mul(cb, cs)
	case Screen:
		return cb + cs - mul(cb, cs)
	case Overlay:
		if cb < 0x80 {
			return mul(2*cb, cs)
		}
		return 0xff - mul(2*(0xff-cb), 0xff-cs)
	}
	return cs
}

// mul returns round(a*b/255) without floating point operations.
func mul(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 0x80
	return uint8((t + t>>8) >> 8)
}
