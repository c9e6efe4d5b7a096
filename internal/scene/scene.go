// Package scene turns a parameter set into the drawable content of an
// ellipse stack: one frame per ellipse, holding its jittered point cloud,
// the crosshair at the origin and its text decorations.
package scene

import (
	"math/rand/v2"

	"honnef.co/go/curve"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/geometry"
)

type Segment struct {
	From, To curve.Point
}

// Frame is everything drawn for one ellipse.
type Frame struct {
	Ellipse   geometry.Ellipse
	Points    []curve.Point
	Crosshair [2]Segment
	Glyphs    []Glyph
	// Logo is set on the first frame only.
	Logo bool
}

type Scene struct {
	Params config.Params
	// XLim is the horizontal extent of the canvas, shared by every frame so
	// inner ellipses appear inset.
	XLim   [2]float64
	Frames []Frame
}

// Build computes the scene for p. The point clouds are drawn from rng; every
// other part of the scene depends on p alone.
func Build(p config.Params, rng *rand.Rand) Scene {
	seq := geometry.Sequence(p.A0, p.B0, p.NP0, p.N, p.DT, p.Extinction)
	sc := Scene{
		Params: p,
		XLim:   [2]float64{-config.XLimFactor * p.A0, config.XLimFactor * p.A0},
		Frames: make([]Frame, 0, len(seq)),
	}
	for _, e := range seq {
		pts := Sample(rng, e, config.Eps)
		if p.RotateEllipses {
			rot := geometry.Rotation(e.Angle)
			for i, pt := range pts {
				pts[i] = pt.Transform(rot)
			}
		}
		f := Frame{
			Ellipse: e,
			Points:  pts,
			Crosshair: [2]Segment{
				{curve.Pt(-e.A/100, 0), curve.Pt(e.A/100, 0)},
				{curve.Pt(0, -e.A/100), curve.Pt(0, e.A/100)},
			},
			Logo: e.Index == 0,
		}
		if p.PlotText {
			f.Glyphs = Decorate(p, e)
		}
		sc.Frames = append(sc.Frames, f)
	}
	return sc
}

// Draw issues frame i of s on c.
func (s Scene) Draw(c Canvas, i int) {
	f := s.Frames[i]
	c.Points(f.Points, config.Accent)
	for _, seg := range f.Crosshair {
		c.Segment(seg, config.Accent, true)
	}
	for _, g := range f.Glyphs {
		c.Text(g)
	}
	c.SetXLim(s.XLim[0], s.XLim[1])
	if f.Logo {
		c.Logo()
	}
}
