package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"path/filepath"
	"testing"

	"honnef.co/go/curve"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

var testLogoColor = color.RGBA{R: 200, G: 10, B: 30, A: 255}

func solidLogo(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(testLogoColor), image.Point{}, draw.Src)
	return img
}

// nearColor tolerates the rounding of resampling filters.
func nearColor(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 2 && int(y)-int(x) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func newTestRasterizer(t *testing.T, logo image.Image) *Rasterizer {
	t.Helper()
	r, err := New(Options{DPI: 50, Background: config.ExportBackground}, logo)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func rasterize(t *testing.T, r *Rasterizer, d *scene.Display) *image.RGBA {
	t.Helper()
	img, err := r.Rasterize(d)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestNewRejectsDPI(t *testing.T) {
	if _, err := New(Options{}, nil); err == nil {
		t.Errorf("expected an error for zero dpi")
	}
}

func TestSize(t *testing.T) {
	w, h := DefaultOptions().Size()
	if w != 1754 || h != 1240 {
		t.Errorf("got %dx%d at 150 dpi, expected 1754x1240", w, h)
	}
}

func TestView(t *testing.T) {
	b := image.Rect(0, 0, 200, 100)
	v := NewView(b, -10, 10)
	for _, tc := range []struct {
		p      curve.Point
		px, py float64
	}{
		{curve.Pt(0, 0), 100, 50},
		{curve.Pt(-10, 0), 0, 50},
		{curve.Pt(10, 5), 200, 0},
		{curve.Pt(0, -5), 100, 100},
	} {
		x, y := v.ToPixel(tc.p)
		if math.Abs(x-tc.px) > 1e-9 || math.Abs(y-tc.py) > 1e-9 {
			t.Errorf("%s maps to (%v, %v), expected (%v, %v)", tc.p, x, y, tc.px, tc.py)
		}
	}
	x, _ := NewView(b, 0, 0).ToPixel(curve.Pt(1, 0))
	if x != 200 {
		t.Errorf("empty range must fall back to [-1, 1], got x=%v", x)
	}
}

func TestRasterizePoints(t *testing.T) {
	r := newTestRasterizer(t, nil)
	d := scene.NewDisplay()
	d.SetXLim(-10, 10)
	d.Points([]curve.Point{curve.Pt(0, 0)}, config.Accent)
	img := rasterize(t, r, d)

	w, h := r.opts.Size()
	if got := img.RGBAAt(w/2, h/2); got != config.Accent {
		t.Errorf("centre pixel is %v, expected %v", got, config.Accent)
	}
	if got := img.RGBAAt(0, 0); got != config.ExportBackground {
		t.Errorf("corner pixel is %v, expected background", got)
	}
}

func TestRasterizeDashedSegment(t *testing.T) {
	r, err := New(Options{DPI: 200, Background: config.ExportBackground}, nil)
	if err != nil {
		t.Fatal(err)
	}
	d := scene.NewDisplay()
	d.SetXLim(-1, 1)
	d.Segment(scene.Segment{From: curve.Pt(-0.9, 0), To: curve.Pt(0.9, 0)}, config.Red, true)
	img := rasterize(t, r, d)

	_, h := r.opts.Size()
	var on, off int
	for x := img.Bounds().Dx() / 10; x < img.Bounds().Dx()*9/10; x++ {
		if img.RGBAAt(x, h/2) == config.Red {
			on++
		} else {
			off++
		}
	}
	if on == 0 || off == 0 {
		t.Errorf("dashed line has %d drawn and %d skipped pixels", on, off)
	}
}

func countNonBackground(img *image.RGBA, bg color.RGBA) int {
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestRasterizeText(t *testing.T) {
	r := newTestRasterizer(t, nil)
	for _, rot := range []float64{0, -25} {
		d := scene.NewDisplay()
		d.SetXLim(-10, 10)
		d.Text(scene.Glyph{Text: "École", Size: config.LabelSize, Color: config.Green, Rotation: rot, Align: scene.AlignRight})
		img := rasterize(t, r, d)
		if n := countNonBackground(img, config.ExportBackground); n == 0 {
			t.Errorf("rotation %v: no text pixels painted", rot)
		}
		// Right aligned: nothing to the right of the anchor when upright.
		if rot == 0 {
			w, h := r.opts.Size()
			sub := img.SubImage(image.Rect(w/2+2, 0, w, h)).(*image.RGBA)
			if n := countNonBackground(sub, config.ExportBackground); n != 0 {
				t.Errorf("%d pixels painted right of a right-aligned anchor", n)
			}
		}
	}
}

func TestRunCentre(t *testing.T) {
	const w, h = 40.0, 10.0
	for _, tc := range []struct {
		deg    float64
		align  scene.Align
		cx, cy float64
	}{
		{0, scene.AlignRight, 80, 50},
		{0, scene.AlignLeft, 120, 50},
		{90, scene.AlignRight, 95, 50},
		{-90, scene.AlignLeft, 105, 50},
		{30, scene.AlignLeft, 100 + (w*math.Sqrt(3)/2+h/2)/2, 50},
	} {
		cx, cy := RunCentre(100, 50, w, h, tc.deg, tc.align)
		if math.Abs(cx-tc.cx) > 1e-9 || math.Abs(cy-tc.cy) > 1e-9 {
			t.Errorf("deg %v align %v: got (%v, %v), expected (%v, %v)", tc.deg, tc.align, cx, cy, tc.cx, tc.cy)
		}
	}
}

// A turned run keeps its whole bounding box on the aligned side of the
// anchor.
func TestRasterizeTurnedTextStaysOnItsSide(t *testing.T) {
	r := newTestRasterizer(t, nil)
	w, h := r.opts.Size()
	for _, rot := range []float64{60, -25, -130} {
		for _, align := range []scene.Align{scene.AlignLeft, scene.AlignRight} {
			d := scene.NewDisplay()
			d.SetXLim(-10, 10)
			d.Text(scene.Glyph{Text: "  e", Size: config.LabelSize, Color: config.Green, Rotation: rot, Align: align})
			img := rasterize(t, r, d)
			if n := countNonBackground(img, config.ExportBackground); n == 0 {
				t.Fatalf("rotation %v: no text pixels painted", rot)
			}
			wrong := image.Rect(w/2+2, 0, w, h)
			if align == scene.AlignLeft {
				wrong = image.Rect(0, 0, w/2-2, h)
			}
			if n := countNonBackground(img.SubImage(wrong).(*image.RGBA), config.ExportBackground); n != 0 {
				t.Errorf("rotation %v align %v: %d pixels on the wrong side of the anchor", rot, align, n)
			}
		}
	}
}

func TestFaceCached(t *testing.T) {
	r := newTestRasterizer(t, nil)
	f1, err := r.face(config.LabelSize)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := r.face(config.LabelSize)
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 || len(r.faces) != 1 {
		t.Errorf("face for the same size was built twice")
	}
}

func TestRasterizeLogo(t *testing.T) {
	logo := solidLogo(40, 20)
	r := newTestRasterizer(t, logo)
	d := scene.NewDisplay()
	d.SetXLim(-10, 10)

	rect := LogoRect(image.Rect(0, 0, 585, 413), logo.Bounds())
	centre := image.Pt((rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2)

	if got := rasterize(t, r, d).RGBAAt(centre.X, centre.Y); got != config.ExportBackground {
		t.Errorf("logo painted while hidden: %v", got)
	}
	d.Logo()
	if got := rasterize(t, r, d).RGBAAt(centre.X, centre.Y); !nearColor(got, testLogoColor) {
		t.Errorf("logo centre is %v, expected %v", got, testLogoColor)
	}
}

func TestLogoRect(t *testing.T) {
	got := LogoRect(image.Rect(0, 0, 1000, 800), image.Rect(0, 0, 300, 100))
	// The box would overhang the right edge, so it is pulled back inside.
	want := image.Rect(760, 80, 1000, 160)
	if got != want {
		t.Errorf("got %v, expected %v", got, want)
	}
	if got := LogoRect(image.Rect(0, 0, 10, 10), image.Rectangle{}); !got.Empty() {
		t.Errorf("got %v for an empty logo", got)
	}
}

func TestWriteAndLoadLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	n, err := WritePNG(path, solidLogo(8, 4))
	if err != nil {
		t.Fatal(err)
	}
	if n <= 0 {
		t.Errorf("got file size %d", n)
	}
	img, err := LoadLogo(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("got bounds %v", b)
	}
	if _, err := LoadLogo(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Errorf("expected an error for a missing logo")
	}
}
