package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette for plot elements.
var (
	TraceColor    = color.RGBA{0x1F, 0x77, 0xB4, 0xFF}
	BarColor      = color.RGBA{0x1C, 0x8A, 0xCD, 0xFF}
	BaselineColor = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	CeilingColor  = color.RGBA{0xFE, 0x99, 0x00, 0xFF}
	MarkerColor   = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	LabelColor    = color.RGBA{0x00, 0x00, 0xFF, 0xFF}
	AxisColor     = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	Background    = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

var face = basicfont.Face7x13

// canvas clips every write to an area of the destination image.
type canvas struct {
	dst  *image.RGBA
	clip image.Rectangle
}

func (c *canvas) set(x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(c.clip) {
		c.dst.Set(x, y, col)
	}
}

func fill(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// line draws a 1px segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// hline draws a horizontal line across the clip area. dash > 0 alternates
// dash-length runs of ink and gap.
func (c *canvas) hline(y int, dash int, col color.Color) {
	for x := c.clip.Min.X; x < c.clip.Max.X; x++ {
		if dash > 0 && ((x-c.clip.Min.X)/dash)%2 == 1 {
			continue
		}
		c.set(x, y, col)
	}
}

// star draws an eight-pointed marker of the given radius.
func (c *canvas) star(x, y, r int, col color.Color) {
	c.line(x-r, y, x+r, y, col)
	c.line(x, y-r, x, y+r, col)
	d := r * 7 / 10
	c.line(x-d, y-d, x+d, y+d, col)
	c.line(x-d, y+d, x+d, y-d, col)
}

// text draws s with its baseline-left at (x, y), without clipping to the
// canvas so labels may sit in the margins.
func text(dst *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the advance width of s in pixels.
func textWidth(s string) int {
	d := &font.Drawer{Face: face}
	return d.MeasureString(s).Ceil()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
