package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/geometry"
	"github.com/iburimskiy/ellipse-stack/internal/raster"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

// painter draws a scene.Display onto an offscreen image and keeps it until
// the display changes.
type painter struct {
	off     *ebiten.Image
	version uint64
	fresh   bool

	logo       *ebiten.Image
	logoBounds image.Rectangle

	font  *opentype.Font
	faces map[float64]*text.GoXFace
}

func newPainter(logo image.Image) (*painter, error) {
	fnt, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	p := &painter{
		off:   ebiten.NewImage(config.WindowWidth, config.WindowHeight),
		font:  fnt,
		faces: make(map[float64]*text.GoXFace),
	}
	if logo != nil {
		p.logo = ebiten.NewImageFromImage(logo)
		p.logoBounds = logo.Bounds()
	}
	return p, nil
}

func (p *painter) face(size float64) (*text.GoXFace, error) {
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     config.WindowDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	xf := text.NewGoXFace(f)
	p.faces[size] = xf
	return xf, nil
}

// paint draws d onto screen, repainting the offscreen copy if needed.
func (p *painter) paint(screen *ebiten.Image, d *scene.Display) error {
	if !p.fresh || d.Version() != p.version {
		if err := p.repaint(d); err != nil {
			return err
		}
		p.version = d.Version()
		p.fresh = true
	}
	screen.DrawImage(p.off, nil)
	return nil
}

func (p *painter) repaint(d *scene.Display) error {
	p.off.Clear()
	lo, hi := d.XLim()
	v := raster.NewView(p.off.Bounds(), lo, hi)
	lw := float32(config.WindowDPI) / 72

	for _, prim := range d.Primitives() {
		switch prim.Kind {
		case scene.KindPoints:
			for _, pt := range prim.Points {
				x, y := v.ToPixel(pt)
				vector.DrawFilledRect(p.off, float32(math.Floor(x)), float32(math.Floor(y)), 1, 1, prim.Color, false)
			}
		case scene.KindSegment:
			x0, y0 := v.ToPixel(prim.Segment.From)
			x1, y1 := v.ToPixel(prim.Segment.To)
			if !prim.Dashed {
				vector.StrokeLine(p.off, float32(x0), float32(y0), float32(x1), float32(y1), lw, prim.Color, true)
				continue
			}
			dashedLine(p.off, x0, y0, x1, y1, 3.7*float64(lw), 1.6*float64(lw), lw, prim.Color)
		case scene.KindText:
			if err := p.text(v, prim.Glyph); err != nil {
				return err
			}
		}
	}

	if d.HasLogo() && p.logo != nil {
		rect := raster.LogoRect(p.off.Bounds(), p.logoBounds)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(rect.Dx())/float64(p.logoBounds.Dx()), float64(rect.Dy())/float64(p.logoBounds.Dy()))
		op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
		op.Filter = ebiten.FilterLinear
		p.off.DrawImage(p.logo, op)
	}
	return nil
}

func (p *painter) text(v raster.View, g scene.Glyph) error {
	face, err := p.face(g.Size)
	if err != nil {
		return err
	}
	x, y := v.ToPixel(g.Pos)
	w, h := text.Measure(g.Text, face, 0)
	cx, cy := raster.RunCentre(x, y, w, h, g.Rotation, g.Align)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	// GeoM rotates clockwise on screen; glyph rotations are anti-clockwise.
	op.GeoM.Rotate(-geometry.Radians(g.Rotation))
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(g.Color)
	text.Draw(p.off, g.Text, face, op)
	return nil
}

func dashedLine(dst *ebiten.Image, x0, y0, x1, y1, on, off float64, width float32, c color.Color) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		return
	}
	dx, dy := (x1-x0)/length, (y1-y0)/length
	for s := 0.0; s < length; s += on + off {
		e := math.Min(s+on, length)
		vector.StrokeLine(dst,
			float32(x0+dx*s), float32(y0+dy*s),
			float32(x0+dx*e), float32(y0+dy*e),
			width, c, true)
	}
}
