package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 0 {
		return color.RGBA{}, reviewerr.Invalid("empty color string")
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, reviewerr.Invalid("invalid hex color %q: %v", hex, err)
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, reviewerr.Invalid("invalid hex color %q: %v", hex, err)
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, reviewerr.Invalid("invalid hex color length %d", len(hex))
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// HexColor formats c as "#RRGGBB", dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
