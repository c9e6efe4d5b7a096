package scene

import (
	"image/color"
	"math"
	"strings"

	"honnef.co/go/curve"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/geometry"
)

// Align is the horizontal anchoring of a glyph run. Runs are always
// vertically centred on their anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Role tells which decoration a glyph run belongs to.
type Role int

const (
	RoleLabel1 Role = iota
	RoleLabel2
	RoleMarker
)

// Glyph is one run of monospace text placed in world coordinates.
type Glyph struct {
	Role  Role
	Pos   curve.Point
	Text  string
	Align Align
	// Rotation is in degrees, anti-clockwise.
	Rotation float64
	Size     float64
	Color    color.RGBA
}

// PlaceAnchor returns where a text anchor goes on an ellipse drawn at angle
// degrees, together with the rotation of the text itself. When the ellipses
// are rotated the anchor is used as is. Otherwise it is derotated so the text
// turns against the stack as if the ellipse had turned.
func PlaceAnchor(raw curve.Point, angle float64, rotateEllipses bool) (curve.Point, float64) {
	if rotateEllipses {
		return raw, 0
	}
	return raw.Transform(geometry.Rotation(-angle)), -angle
}

func letterColor(i int) color.RGBA {
	return config.Palette[i%len(config.Palette)]
}

// Decorate lays out the label and marker glyphs for ellipse e of a stack
// described by p.
func Decorate(p config.Params, e geometry.Ellipse) []Glyph {
	label1 := []rune(config.Label1)
	label2 := []rune(config.Label2)
	anchor1 := curve.Pt(-p.A0/4, -1.1*p.B0)
	anchor2 := curve.Pt(p.A0/4, -1.1*p.B0)
	i := e.Index

	var out []Glyph
	if p.RotateText {
		if i < len(label1) {
			// The last ellipse takes every letter not placed yet.
			txt := string(label1[len(label1)-1-i])
			if i >= p.N-1 {
				txt = string(label1[:len(label1)-i])
			}
			pos, rot := PlaceAnchor(anchor1, e.Angle, p.RotateEllipses)
			out = append(out, Glyph{
				Role:     RoleLabel1,
				Pos:      pos,
				Text:     txt + strings.Repeat(" ", i),
				Align:    AlignRight,
				Rotation: rot,
				Size:     config.LabelSize,
				Color:    letterColor(i),
			})
		}
		if i < len(label2) {
			txt := string(label2[i])
			if i >= p.N-1 {
				txt = string(label2[i:])
			}
			pos, rot := PlaceAnchor(anchor2, e.Angle, p.RotateEllipses)
			out = append(out, Glyph{
				Role:     RoleLabel2,
				Pos:      pos,
				Text:     strings.Repeat(" ", i) + txt,
				Align:    AlignLeft,
				Rotation: rot,
				Size:     config.LabelSize,
				Color:    letterColor(i),
			})
		}
	} else if i == 0 {
		for ic := range label1 {
			out = append(out, Glyph{
				Role:  RoleLabel1,
				Pos:   anchor1,
				Text:  string(label1[len(label1)-1-ic]) + strings.Repeat(" ", ic),
				Align: AlignRight,
				Size:  config.LabelSize,
				Color: letterColor(ic),
			})
		}
		for ic := range label2 {
			out = append(out, Glyph{
				Role:  RoleLabel2,
				Pos:   anchor2,
				Text:  strings.Repeat(" ", ic) + string(label2[ic]),
				Align: AlignLeft,
				Size:  config.LabelSize,
				Color: letterColor(ic),
			})
		}
	}

	marker := curve.Pt(-0.8*e.A/math.Sqrt2, 1.4*e.B/math.Sqrt2)
	pos, rot := PlaceAnchor(marker, e.Angle, p.RotateEllipses)
	out = append(out, Glyph{
		Role:     RoleMarker,
		Pos:      pos,
		Text:     config.Marker,
		Align:    AlignLeft,
		Rotation: rot,
		Size:     config.MarkerSize,
		Color:    config.Accent,
	})
	return out
}
