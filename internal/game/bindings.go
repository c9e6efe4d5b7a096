package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/geometry"
)

const (
	// Frames a key must be held before it starts repeating, and the repeat
	// interval after that.
	repeatDelay    = 30
	repeatInterval = 4
)

type binding struct {
	key    ebiten.Key
	repeat bool
	apply  func(config.Params) config.Params
}

func step(f config.Field, dir int) func(config.Params) config.Params {
	return func(p config.Params) config.Params { return p.Step(f, dir) }
}

func extinction(e geometry.Extinction) func(config.Params) config.Params {
	return func(p config.Params) config.Params {
		p.Extinction = e
		return p
	}
}

var bindings = []binding{
	{ebiten.KeyArrowUp, true, step(config.FieldN, 1)},
	{ebiten.KeyArrowDown, true, step(config.FieldN, -1)},
	{ebiten.KeyArrowRight, true, step(config.FieldDT, 1)},
	{ebiten.KeyArrowLeft, true, step(config.FieldDT, -1)},
	{ebiten.KeyX, true, step(config.FieldA0, 1)},
	{ebiten.KeyZ, true, step(config.FieldA0, -1)},
	{ebiten.KeyV, true, step(config.FieldB0, 1)},
	{ebiten.KeyC, true, step(config.FieldB0, -1)},
	{ebiten.KeyEqual, true, step(config.FieldNP0, 1)},
	{ebiten.KeyMinus, true, step(config.FieldNP0, -1)},
	{ebiten.KeyDigit0, false, extinction(geometry.ExtinctionNone)},
	{ebiten.KeyDigit1, false, extinction(geometry.ExtinctionCubic)},
	{ebiten.KeyDigit2, false, extinction(geometry.ExtinctionQuadratic)},
	{ebiten.KeyDigit3, false, extinction(geometry.ExtinctionLinear)},
	{ebiten.KeyDigit4, false, extinction(geometry.ExtinctionSqrt)},
	{ebiten.KeyR, false, func(p config.Params) config.Params { p.RotateEllipses = !p.RotateEllipses; return p }},
	{ebiten.KeyT, false, func(p config.Params) config.Params { p.PlotText = !p.PlotText; return p }},
	{ebiten.KeyL, false, func(p config.Params) config.Params { p.RotateText = !p.RotateText; return p }},
}

const helpLine = "Up/Down n  Left/Right dt  Z/X a0  C/V b0  -/= np0  0-4 extinction  R rotate  T text  L layout  E export  Esc quit"

// triggered reports whether b fires this frame.
func (b binding) triggered() bool {
	if inpututil.IsKeyJustPressed(b.key) {
		return true
	}
	if !b.repeat {
		return false
	}
	d := inpututil.KeyPressDuration(b.key)
	return d >= repeatDelay && d%repeatInterval == 0
}

// applyBindings runs every triggered binding on p in order.
func applyBindings(p config.Params) config.Params {
	for _, b := range bindings {
		if b.triggered() {
			p = b.apply(p)
		}
	}
	return p
}
