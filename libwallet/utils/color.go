package utils

import (
	"fmt"
	"strconv"
	"strings"

	"decred.org/dcrwallet/v2/errors"
)

type ColorScheme struct {
	R uint8   // Red Subpixel
	G uint8   // Green Subpixel
	B uint8   // Blue Subpixel
	O float64 // Opacity; value range 0-1
}

// ParseColorScheme reads a "#rrggbb" or "#rrggbbaa" hex colour. The alpha
// byte, when present, is mapped onto the 0-1 opacity range.
func ParseColorScheme(hex string) (ColorScheme, error) {
	const op errors.Op = "utils.ParseColorScheme"

	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 && len(s) != 8 {
		return ColorScheme{}, CodedError(op, errors.Invalid, ErrInvalid, "colour %q is not #rrggbb", hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorScheme{}, CodedError(op, errors.Invalid, ErrInvalid, "colour %q: %v", hex, err)
	}

	c := ColorScheme{O: 1}
	if len(s) == 8 {
		c.O = float64(v&0xff) / 255
		v >>= 8
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c, nil
}

// Hex returns the "#rrggbb" form of the colour, dropping opacity.
func (c ColorScheme) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
