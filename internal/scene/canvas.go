package scene

import (
	"image/color"

	"honnef.co/go/curve"
)

// Canvas receives drawing commands in world coordinates.
type Canvas interface {
	SetXLim(lo, hi float64)
	Points(pts []curve.Point, c color.RGBA)
	Segment(s Segment, c color.RGBA, dashed bool)
	Text(g Glyph)
	// Logo shows the logo inset; ClearLogo hides it again.
	Logo()
	ClearLogo()
	// ClearPrimitives removes points, segments and text but keeps the logo
	// and the extent.
	ClearPrimitives()
	// Reset returns the canvas to its empty state.
	Reset()
}

type Kind int

const (
	KindPoints Kind = iota
	KindSegment
	KindText
)

// Primitive is one recorded drawing command.
type Primitive struct {
	Kind    Kind
	Color   color.RGBA
	Points  []curve.Point
	Segment Segment
	Dashed  bool
	Glyph   Glyph
}

// Display is a Canvas that records its commands so a backend can paint
// them, and repaint them, later.
type Display struct {
	xlim    [2]float64
	prims   []Primitive
	logo    bool
	version uint64
}

var _ Canvas = (*Display)(nil)

func NewDisplay() *Display { return &Display{} }

func (d *Display) SetXLim(lo, hi float64) {
	d.xlim = [2]float64{lo, hi}
	d.version++
}

func (d *Display) Points(pts []curve.Point, c color.RGBA) {
	d.add(Primitive{Kind: KindPoints, Points: pts, Color: c})
}

func (d *Display) Segment(s Segment, c color.RGBA, dashed bool) {
	d.add(Primitive{Kind: KindSegment, Segment: s, Dashed: dashed, Color: c})
}

func (d *Display) Text(g Glyph) {
	d.add(Primitive{Kind: KindText, Glyph: g, Color: g.Color})
}

func (d *Display) Logo() {
	d.logo = true
	d.version++
}

func (d *Display) ClearLogo() {
	d.logo = false
	d.version++
}

func (d *Display) ClearPrimitives() {
	d.prims = nil
	d.version++
}

func (d *Display) Reset() {
	*d = Display{version: d.version + 1}
}

func (d *Display) add(p Primitive) {
	d.prims = append(d.prims, p)
	d.version++
}

func (d *Display) Primitives() []Primitive { return d.prims }
func (d *Display) HasLogo() bool           { return d.logo }
func (d *Display) XLim() (lo, hi float64)  { return d.xlim[0], d.xlim[1] }

// Version changes whenever the display does.
func (d *Display) Version() uint64 { return d.version }
