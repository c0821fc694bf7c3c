package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// HexToRGBA converts a color expressed in hexadecimal format to an opaque color.NRGBA.
// Both the long (#rrggbb) and the short (#rgb) notation are accepted, with or without the leading hash.
func HexToRGBA(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// RGBAToHex returns the #rrggbb notation of a color, ignoring its alpha channel.
func RGBAToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
