package roi

import (
	"image"
	"image/color"
	"testing"
)

func TestHighlight(t *testing.T) {
	img := createTwoBoxImage()
	before := append([]uint8(nil), img.Pix...)

	m := Rasterize([]ROI{{Point{2, 2}, Point{4, 4}}}, img.Bounds())
	out := Highlight(img, m, Yellow)

	if got := color.RGBAModel.Convert(out.At(3, 3)).(color.RGBA); got != Yellow {
		t.Errorf("masked pixel: got %v, want yellow", got)
	}
	if got := color.RGBAModel.Convert(out.At(5, 5)).(color.RGBA); got != red {
		t.Errorf("unmasked pixel: got %v, want red", got)
	}
	if got := color.RGBAModel.Convert(out.At(0, 0)).(color.RGBA); got != white {
		t.Errorf("unmasked pixel: got %v, want white", got)
	}

	for i := range before {
		if before[i] != img.Pix[i] {
			t.Fatal("Highlight mutated the source image")
		}
	}
}

func TestHighlight_OffsetImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 10, 10))
	fillRect(img, img.Bounds(), white)

	m := Rasterize([]ROI{{Point{6, 6}, Point{7, 7}}}, img.Bounds())
	out := Highlight(img, m, Yellow)

	yellow := 0
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(out.At(x, y)).(color.RGBA) == Yellow {
				yellow++
			}
		}
	}
	if yellow != 1 {
		t.Errorf("got %d highlighted pixels, want 1", yellow)
	}
}

func TestApply(t *testing.T) {
	img := createTwoBoxImage()
	cm, err := ColorMask(img, ColorRange{Space: BGR, Lower: [3]uint8{200, 0, 0}, Upper: [3]uint8{255, 50, 50}})
	if err != nil {
		t.Fatalf("ColorMask failed: %v", err)
	}

	out := Apply(img, cm)
	if got := color.RGBAModel.Convert(out.At(13, 13)).(color.RGBA); got != blue {
		t.Errorf("kept pixel: got %v, want blue", got)
	}
	if got := color.RGBAModel.Convert(out.At(3, 3)).(color.RGBA); got != Black {
		t.Errorf("dropped pixel: got %v, want black", got)
	}
}

func TestDrawFrame(t *testing.T) {
	img := createInMemoryImage(10, 10, white)
	out := DrawFrame(img, []ROI{{Point{6, 6}, Point{2, 2}}}, Green)

	for _, p := range []image.Point{{2, 2}, {6, 2}, {2, 6}, {6, 6}, {4, 2}} {
		if got := color.RGBAModel.Convert(out.At(p.X, p.Y)).(color.RGBA); got != Green {
			t.Errorf("frame pixel %v: got %v, want green", p, got)
		}
	}
	if got := color.RGBAModel.Convert(out.At(4, 4)).(color.RGBA); got != white {
		t.Errorf("interior pixel: got %v, want white", got)
	}
	if got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA); got != white {
		t.Error("DrawFrame mutated the source image")
	}
}
