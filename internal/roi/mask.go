package roi

import (
	"image"
	"image/color"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// Mask is a binary selection with the same bounds as its source image.
type Mask struct {
	Rect image.Rectangle
	// Pix holds one entry per pixel in row-major order starting at Rect.Min.
	Pix []bool
}

// NewMask returns an all-zero mask covering bounds.
func NewMask(bounds image.Rectangle) *Mask {
	return &Mask{
		Rect: bounds,
		Pix:  make([]bool, bounds.Dx()*bounds.Dy()),
	}
}

func (m *Mask) offset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Rect.Dx() + (x - m.Rect.Min.X)
}

// At reports whether (x, y) is set. Points outside the mask are unset.
func (m *Mask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return false
	}
	return m.Pix[m.offset(x, y)]
}

// Set marks or clears (x, y). Points outside the mask are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return
	}
	m.Pix[m.offset(x, y)] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether both masks cover the same bounds with the same pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.Rect != o.Rect || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	pix := make([]bool, len(m.Pix))
	copy(pix, m.Pix)
	return &Mask{Rect: m.Rect, Pix: pix}
}

// Gray renders the mask as an 8-bit image: 255 where set, 0 elsewhere.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if m.Pix[m.offset(x, y)] {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

// Intersect returns the pixel-wise AND of a and b, which must share bounds.
func Intersect(a, b *Mask) (*Mask, error) {
	if a.Rect != b.Rect {
		return nil, reviewerr.Invalid("mask bounds differ: %v vs %v", a.Rect, b.Rect)
	}
	out := NewMask(a.Rect)
	for i := range a.Pix {
		out.Pix[i] = a.Pix[i] && b.Pix[i]
	}
	return out, nil
}
