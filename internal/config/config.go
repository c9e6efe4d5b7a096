package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/iburimskiy/ellipse-stack/internal/geometry"
)

const (
	// A4 landscape, in inches.
	FigureWidthIn  = 11.693
	FigureHeightIn = 8.268

	// Live window: the A4 figure at 100 dpi.
	WindowDPI    = 100
	WindowWidth  = 1169
	WindowHeight = 827

	ExportDPI    = 150
	ExportDir    = "png"
	ExportPrefix = "ellipsis_"

	LogoPath = "CEA_Irfu.png"

	// Thickness of the band around each boundary in which points are
	// scattered, as a fraction of the axes.
	Eps = 0.15

	// Horizontal half-extent of the canvas in units of a0.
	XLimFactor = 1.35

	LabelSize  = 14
	MarkerSize = 10

	Label1 = "École maternelle"
	Label2 = "JACQUES PREVERT"
	Marker = "o"
)

var (
	// Matplotlib's single-letter colours y, c, g and r.
	Yellow = color.RGBA{R: 191, G: 191, A: 255}
	Cyan   = color.RGBA{G: 191, B: 191, A: 255}
	Green  = color.RGBA{G: 128, A: 255}
	Red    = color.RGBA{R: 255, A: 255}

	Accent  = Yellow
	Palette = []color.RGBA{Yellow, Cyan, Green, Red}

	InteractiveBackground = color.RGBA{A: 255}
	ExportBackground      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrInvalidParams is wrapped by every error returned from Params.Validate.
var ErrInvalidParams = errors.New("invalid parameters")

// Params is the full parameter set of one ellipse stack. It is a plain value:
// callers build a new one for every change and render from it.
type Params struct {
	N          int
	A0, B0     float64
	NP0        int
	DT         float64 // degrees
	Extinction geometry.Extinction

	RotateEllipses bool
	PlotText       bool
	// RotateText places one letter per ellipse; otherwise the labels are
	// laid out once, on the first ellipse.
	RotateText bool
}

// Default returns the parameters the program starts with.
func Default() Params {
	return Params{
		N:              15,
		A0:             8.4,
		B0:             5.9,
		NP0:            4000,
		DT:             25,
		Extinction:     geometry.ExtinctionQuadratic,
		RotateEllipses: true,
		PlotText:       true,
		RotateText:     true,
	}
}

// Range is an inclusive interval with the step used by interactive controls.
type Range struct {
	Min, Max, Step float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Bounds lists the allowed range of every numeric parameter.
var Bounds = struct {
	N, A, B, NP0, DT, Extinction Range
}{
	N:          Range{1, 50, 1},
	A:          Range{1, 10, 0.1},
	B:          Range{1, 10, 0.1},
	NP0:        Range{100, geometry.MaxPoints, 10},
	DT:         Range{10, 50, 1},
	Extinction: Range{0, geometry.NumExtinctions - 1, 1},
}

// Validate reports every field of p that lies outside Bounds.
func (p Params) Validate() error {
	var bad []string
	check := func(name string, v float64, r Range) {
		if !r.Contains(v) {
			bad = append(bad, fmt.Sprintf("%s=%g not in [%g, %g]", name, v, r.Min, r.Max))
		}
	}
	check("n", float64(p.N), Bounds.N)
	check("a0", p.A0, Bounds.A)
	check("b0", p.B0, Bounds.B)
	check("np0", float64(p.NP0), Bounds.NP0)
	check("dt", p.DT, Bounds.DT)
	if !p.Extinction.Valid() {
		bad = append(bad, fmt.Sprintf("extinction=%d not in [%g, %g]", int(p.Extinction), Bounds.Extinction.Min, Bounds.Extinction.Max))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(bad, ", "))
	}
	return nil
}

// Clamp saturates every numeric field of p to Bounds.
func (p Params) Clamp() Params {
	p.N = int(clamp(float64(p.N), Bounds.N))
	p.A0 = clamp(p.A0, Bounds.A)
	p.B0 = clamp(p.B0, Bounds.B)
	p.NP0 = int(clamp(float64(p.NP0), Bounds.NP0))
	p.DT = clamp(p.DT, Bounds.DT)
	p.Extinction = geometry.Extinction(clamp(float64(p.Extinction), Bounds.Extinction))
	return p
}

func clamp(v float64, r Range) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Layout names how the labels are laid out.
func (p Params) Layout() string {
	if p.RotateText {
		return "per-ellipse"
	}
	return "single"
}

func (p Params) String() string {
	return fmt.Sprintf("n=%d a0=%.1f b0=%.1f np0=%d dt=%.0f extinction=%d(%s) rotate=%t text=%t layout=%s",
		p.N, p.A0, p.B0, p.NP0, p.DT, int(p.Extinction), p.Extinction, p.RotateEllipses, p.PlotText, p.Layout())
}

// Field names a numeric parameter that can be stepped interactively.
type Field int

const (
	FieldN Field = iota
	FieldA0
	FieldB0
	FieldNP0
	FieldDT
)

// Step moves field f of p by dir steps of its Bounds step, snapped to the
// step grid and clamped to the bounds.
func (p Params) Step(f Field, dir int) Params {
	d := float64(dir)
	switch f {
	case FieldN:
		p.N += dir * int(Bounds.N.Step)
	case FieldA0:
		p.A0 = snap(p.A0+d*Bounds.A.Step, Bounds.A.Step)
	case FieldB0:
		p.B0 = snap(p.B0+d*Bounds.B.Step, Bounds.B.Step)
	case FieldNP0:
		p.NP0 += dir * int(Bounds.NP0.Step)
	case FieldDT:
		p.DT = snap(p.DT+d*Bounds.DT.Step, Bounds.DT.Step)
	}
	return p.Clamp()
}

func snap(v, step float64) float64 {
	return math.Round(v/step) * step
}
