package config

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default params rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Params)
		field string
	}{
		{"n zero", func(p *Params) { p.N = 0 }, "n="},
		{"n large", func(p *Params) { p.N = 51 }, "n="},
		{"a0 zero", func(p *Params) { p.A0 = 0 }, "a0="},
		{"b0 large", func(p *Params) { p.B0 = 10.5 }, "b0="},
		{"np0 small", func(p *Params) { p.NP0 = 10 }, "np0="},
		{"dt small", func(p *Params) { p.DT = 5 }, "dt="},
		{"extinction", func(p *Params) { p.Extinction = 7 }, "extinction="},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Default()
			tc.edit(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("got %v, expected ErrInvalidParams", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not name %q", err, tc.field)
			}
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	p := Params{}
	err := p.Validate()
	for _, field := range []string{"n=", "a0=", "b0=", "np0=", "dt="} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name %q", err, field)
		}
	}
}

func TestClamp(t *testing.T) {
	got := Params{N: 99, A0: 0.2, B0: 20, NP0: 1, DT: 90, Extinction: -1, PlotText: true}.Clamp()
	want := Params{N: 50, A0: 1, B0: 10, NP0: 100, DT: 50, Extinction: 0, PlotText: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clamp mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("clamped params rejected: %v", err)
	}
}

func TestStep(t *testing.T) {
	p := Default()
	tests := []struct {
		name string
		f    Field
		dir  int
		get  func(Params) float64
		want float64
	}{
		{"n up", FieldN, 1, func(p Params) float64 { return float64(p.N) }, 16},
		{"a0 down", FieldA0, -1, func(p Params) float64 { return p.A0 }, 8.3},
		{"b0 up", FieldB0, 1, func(p Params) float64 { return p.B0 }, 6.0},
		{"np0 up", FieldNP0, 1, func(p Params) float64 { return float64(p.NP0) }, 4010},
		{"dt down", FieldDT, -1, func(p Params) float64 { return p.DT }, 24},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.get(p.Step(tc.f, tc.dir)); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("got %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestStepSaturates(t *testing.T) {
	p := Default()
	for i := 0; i < 200; i++ {
		p = p.Step(FieldA0, 1).Step(FieldDT, -1)
	}
	if p.A0 != Bounds.A.Max || p.DT != Bounds.DT.Min {
		t.Errorf("got a0=%v dt=%v, expected %v and %v", p.A0, p.DT, Bounds.A.Max, Bounds.DT.Min)
	}
	// Repeated float steps stay on the 0.1 grid.
	p = Default()
	for i := 0; i < 7; i++ {
		p = p.Step(FieldB0, -1)
	}
	if math.Abs(p.B0-5.2) > 1e-9 {
		t.Errorf("got b0=%v, expected 5.2", p.B0)
	}
}

func TestStringShowsLayout(t *testing.T) {
	p := Default()
	if s := p.String(); !strings.Contains(s, "layout=per-ellipse") {
		t.Errorf("%q does not show the per-ellipse layout", s)
	}
	p.RotateText = false
	if s := p.String(); !strings.Contains(s, "layout=single") {
		t.Errorf("%q does not show the single layout", s)
	}
}
