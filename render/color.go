package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// ParseColor turns #rgb or #rrggbb into an opaque colour, opacity in [0, 1]
// scales the alpha channel with 0 meaning fully opaque.
func ParseColor(hex string, opacity float64) (color.NRGBA, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("colour %q must start with #", hex)
	}
	digits := hex[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return color.NRGBA{}, fmt.Errorf("colour %q must have 3 or 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("could not parse colour %q: %w", hex, err)
	}
	alpha := uint8(255)
	if opacity > 0 && opacity < 1 {
		alpha = uint8(math.Round(opacity * 255))
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}, nil
}
