// Package raster paints a recorded scene.Display into an RGBA image the size
// of an A4 landscape figure at a given resolution.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"honnef.co/go/curve"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

// Options configures rasterisation.
type Options struct {
	DPI        float64
	Background color.RGBA
}

// DefaultOptions returns the export settings: 150 dpi on white.
func DefaultOptions() Options {
	return Options{
		DPI:        config.ExportDPI,
		Background: config.ExportBackground,
	}
}

// Size returns the pixel size of the figure.
func (o Options) Size() (int, int) {
	return int(math.Round(config.FigureWidthIn * o.DPI)), int(math.Round(config.FigureHeightIn * o.DPI))
}

// Rasterizer turns displays into images. It caches font faces and is not
// safe for concurrent use.
type Rasterizer struct {
	opts  Options
	logo  image.Image
	font  *opentype.Font
	faces map[float64]font.Face
}

// New returns a Rasterizer that composites logo into the inset whenever a
// display shows it. logo may be nil.
func New(opts Options, logo image.Image) (*Rasterizer, error) {
	if opts.DPI <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %g", opts.DPI)
	}
	fnt, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse mono font: %w", err)
	}
	return &Rasterizer{
		opts:  opts,
		logo:  logo,
		font:  fnt,
		faces: make(map[float64]font.Face),
	}, nil
}

// View maps world coordinates, Y up with the origin centred, to pixels.
type View struct {
	cx, cy, scale float64
}

// NewView fits the horizontal range [lo, hi] to the width of b with equal
// aspect. An empty range falls back to [-1, 1].
func NewView(b image.Rectangle, lo, hi float64) View {
	if hi <= lo {
		lo, hi = -1, 1
	}
	scale := float64(b.Dx()) / (hi - lo)
	return View{
		cx:    float64(b.Min.X) - lo*scale,
		cy:    float64(b.Min.Y) + float64(b.Dy())/2,
		scale: scale,
	}
}

func (v View) ToPixel(p curve.Point) (float64, float64) {
	return v.cx + p.X*v.scale, v.cy - p.Y*v.scale
}

// Rasterize paints d onto a fresh image.
func (r *Rasterizer) Rasterize(d *scene.Display) (*image.RGBA, error) {
	w, h := r.opts.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)

	lo, hi := d.XLim()
	v := NewView(img.Bounds(), lo, hi)
	lw := r.opts.DPI / 72 // one point

	for _, prim := range d.Primitives() {
		switch prim.Kind {
		case scene.KindPoints:
			size := max(1, int(math.Round(r.opts.DPI/100)))
			for _, p := range prim.Points {
				x, y := v.ToPixel(p)
				stamp(img, x, y, size, prim.Color)
			}
		case scene.KindSegment:
			x0, y0 := v.ToPixel(prim.Segment.From)
			x1, y1 := v.ToPixel(prim.Segment.To)
			var on, off float64
			if prim.Dashed {
				on, off = 3.7*lw, 1.6*lw
			}
			line(img, x0, y0, x1, y1, on, off, max(1, int(math.Round(lw))), prim.Color)
		case scene.KindText:
			if err := r.text(img, v, prim.Glyph); err != nil {
				return nil, err
			}
		}
	}

	if d.HasLogo() && r.logo != nil {
		rect := LogoRect(img.Bounds(), r.logo.Bounds())
		draw.CatmullRom.Scale(img, rect, r.logo, r.logo.Bounds(), draw.Over, nil)
	}
	return img, nil
}

// stamp fills a size×size square centred on (x, y).
func stamp(img *image.RGBA, x, y float64, size int, c color.RGBA) {
	x0 := int(math.Floor(x)) - (size-1)/2
	y0 := int(math.Floor(y)) - (size-1)/2
	draw.Draw(img, image.Rect(x0, y0, x0+size, y0+size), image.NewUniform(c), image.Point{}, draw.Over)
}

// line strokes from (x0, y0) to (x1, y1). If on > 0 the line is dashed with
// on pixels drawn followed by off pixels skipped.
func line(img *image.RGBA, x0, y0, x1, y1, on, off float64, width int, c color.RGBA) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		stamp(img, x0, y0, width, c)
		return
	}
	period := on + off
	for s := 0.0; s <= length; s += 0.5 {
		if on > 0 && math.Mod(s, period) >= on {
			continue
		}
		t := s / length
		stamp(img, x0+(x1-x0)*t, y0+(y1-y0)*t, width, c)
	}
}
