package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/iburimskiy/ellipse-stack/internal/geometry"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

func (r *Rasterizer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     r.opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at %gpt: %w", size, err)
	}
	r.faces[size] = f
	return f, nil
}

// RunCentre returns the pixel position of the centre of a w×h text run
// anchored at (px, py) and turned anti-clockwise by deg degrees. The box
// bounding the turned run is aligned on the anchor: its left or right edge
// touches it and it is vertically centred on it.
func RunCentre(px, py, w, h, deg float64, a scene.Align) (float64, float64) {
	sin, cos := math.Sincos(geometry.Radians(deg))
	bw := w*math.Abs(cos) + h*math.Abs(sin)
	if a == scene.AlignRight {
		return px - bw/2, py
	}
	return px + bw/2, py
}

// text draws g turned anti-clockwise by g.Rotation degrees, its bounding box
// aligned on the anchor as described by RunCentre.
func (r *Rasterizer) text(dst *image.RGBA, v View, g scene.Glyph) error {
	face, err := r.face(g.Size)
	if err != nil {
		return err
	}
	w := font.MeasureString(face, g.Text).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	h := ascent + descent
	if w <= 0 || h <= 0 {
		return nil
	}

	run := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  run,
		Src:  image.NewUniform(g.Color),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(g.Text)

	px, py := v.ToPixel(g.Pos)
	hw, hh := float64(w)/2, float64(h)/2
	cx, cy := RunCentre(px, py, float64(w), float64(h), g.Rotation, g.Align)

	if g.Rotation == 0 {
		at := image.Pt(int(math.Round(cx-hw)), int(math.Round(cy-hh)))
		draw.Draw(dst, run.Bounds().Add(at), run, image.Point{}, draw.Over)
		return nil
	}

	// Turn about the run centre. Pixel space is Y down, so an anti-clockwise
	// turn flips the sine terms.
	sin, cos := math.Sincos(geometry.Radians(g.Rotation))
	s2d := f64.Aff3{
		cos, sin, cx - (cos*hw + sin*hh),
		-sin, cos, cy - (-sin*hw + cos*hh),
	}
	draw.BiLinear.Transform(dst, s2d, run, run.Bounds(), draw.Over, nil)
	return nil
}
