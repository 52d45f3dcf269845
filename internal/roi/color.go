package roi

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// ColorSpace names the channel layout a ColorRange is expressed in.
type ColorSpace string

const (
	// BGR channels are blue, green, red, each 0-255.
	BGR ColorSpace = "bgr"
	// HSV channels are hue 0-179, saturation 0-255, value 0-255.
	HSV ColorSpace = "hsv"
)

// ParseColorSpace accepts "bgr" or "hsv" in any case.
func ParseColorSpace(name string) (ColorSpace, error) {
	switch ColorSpace(strings.ToLower(name)) {
	case BGR:
		return BGR, nil
	case HSV:
		return HSV, nil
	default:
		return "", reviewerr.Invalid("unknown color space %q", name)
	}
}

// MaxHue is the largest hue on the 8-bit HSV scale.
const MaxHue = 179

// ColorRange is a per-channel inclusive range in one colour space.
type ColorRange struct {
	Space ColorSpace `json:"space" yaml:"space"`
	Lower [3]uint8   `json:"lower" yaml:"lower"`
	Upper [3]uint8   `json:"upper" yaml:"upper"`
}

// Channel ranges used by the review tool's colour filter.
var (
	// DefaultBGRRange is the fixed filter applied in batch mode.
	DefaultBGRRange = ColorRange{Space: BGR, Lower: [3]uint8{30, 4, 171}, Upper: [3]uint8{206, 203, 255}}
	// DefaultHSVTrackbars are the initial positions of the HSV trackbars.
	DefaultHSVTrackbars = ColorRange{Space: HSV, Lower: [3]uint8{0, 89, 209}, Upper: [3]uint8{179, 255, 255}}
	// DefaultBGRTrackbars are the initial positions of the BGR trackbars.
	DefaultBGRTrackbars = ColorRange{Space: BGR, Lower: [3]uint8{0, 89, 209}, Upper: [3]uint8{179, 255, 255}}
)

// Validate checks that every channel has lower <= upper and that hue bounds
// stay on the 0-179 scale.
func (r ColorRange) Validate() error {
	if _, err := ParseColorSpace(string(r.Space)); err != nil {
		return err
	}
	for ch := 0; ch < 3; ch++ {
		if r.Lower[ch] > r.Upper[ch] {
			return reviewerr.Invalid("%s channel %d: lower %d > upper %d", r.Space, ch, r.Lower[ch], r.Upper[ch])
		}
	}
	if r.Space == HSV && r.Upper[0] > MaxHue {
		return reviewerr.Invalid("hsv hue upper bound %d exceeds %d", r.Upper[0], MaxHue)
	}
	return nil
}

// ParseColorRange builds a validated range from a space name and two
// three-channel bound lists, each channel in [0, 255].
func ParseColorRange(space string, lower, upper []int) (ColorRange, error) {
	sp, err := ParseColorSpace(space)
	if err != nil {
		return ColorRange{}, err
	}
	lo, err := triple("lower", lower)
	if err != nil {
		return ColorRange{}, err
	}
	hi, err := triple("upper", upper)
	if err != nil {
		return ColorRange{}, err
	}
	r := ColorRange{Space: sp, Lower: lo, Upper: hi}
	if err := r.Validate(); err != nil {
		return ColorRange{}, err
	}
	return r, nil
}

func triple(name string, v []int) ([3]uint8, error) {
	var out [3]uint8
	if len(v) != 3 {
		return out, reviewerr.Invalid("%s bound needs 3 channels, got %d", name, len(v))
	}
	for i, ch := range v {
		if ch < 0 || ch > 255 {
			return out, reviewerr.Invalid("%s bound channel %d = %d outside [0, 255]", name, i, ch)
		}
		out[i] = uint8(ch)
	}
	return out, nil
}

// Ints returns the bounds as int slices, the inverse of ParseColorRange.
func (r ColorRange) Ints() (lower, upper []int) {
	for ch := 0; ch < 3; ch++ {
		lower = append(lower, int(r.Lower[ch]))
		upper = append(upper, int(r.Upper[ch]))
	}
	return lower, upper
}

// Contains reports whether the channel triple px lies inside the range.
func (r ColorRange) Contains(px [3]uint8) bool {
	for ch := 0; ch < 3; ch++ {
		if px[ch] < r.Lower[ch] || px[ch] > r.Upper[ch] {
			return false
		}
	}
	return true
}

func (r ColorRange) String() string {
	return fmt.Sprintf("%s %v..%v", r.Space, r.Lower, r.Upper)
}

// Channels converts c into the channel triple of space.
func Channels(c color.Color, space ColorSpace) [3]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if space == HSV {
		return toHSV(n.R, n.G, n.B)
	}
	return [3]uint8{n.B, n.G, n.R}
}

// toHSV maps 8-bit RGB onto the 8-bit HSV scale: hue in degrees halved and
// wrapped into 0-179, saturation and value stretched to 0-255.
func toHSV(r, g, b uint8) [3]uint8 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()

	hue := int(math.Round(h/2)) % (MaxHue + 1)
	return [3]uint8{
		uint8(hue),
		uint8(math.Round(s * 255)),
		uint8(math.Round(v * 255)),
	}
}

// ColorMask marks every pixel of img whose colour lies inside rng.
//
// Returns an error wrapping reviewerr.ErrInvalidParameter if any channel has
// lower > upper, and reviewerr.ErrEmptyInput for an image without pixels.
func ColorMask(img image.Image, rng ColorRange) (*Mask, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, reviewerr.Empty("image has no pixels")
	}

	m := NewMask(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if rng.Contains(Channels(img.At(x, y), rng.Space)) {
				m.Set(x, y, true)
			}
		}
	}
	return m, nil
}
