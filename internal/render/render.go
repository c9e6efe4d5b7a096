// Package render runs one full pass over an ellipse stack. The pass is the
// same for every output; a Mode only decides what happens to the canvas
// after each ellipse has been drawn.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/raster"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

// Mode is either Interactive or ExportSequence.
type Mode interface {
	newPass(r *Renderer, d *scene.Display) (pass, error)
	String() string
}

type pass interface {
	frame(d *scene.Display, i int) error
	files() []string
}

// Interactive accumulates every ellipse on the display. Points and text left
// from the previous render are removed first; the logo stays.
type Interactive struct{}

func (Interactive) String() string { return "interactive" }

func (Interactive) newPass(_ *Renderer, d *scene.Display) (pass, error) {
	d.ClearPrimitives()
	return interactivePass{}, nil
}

type interactivePass struct{}

func (interactivePass) frame(*scene.Display, int) error { return nil }
func (interactivePass) files() []string                 { return nil }

// ExportSequence writes one PNG per ellipse, named Prefix followed by the
// two-digit ellipse index, into Dir. Only the first image carries the logo.
type ExportSequence struct {
	Dir    string
	Prefix string
	DPI    float64
}

// DefaultExport returns the standard export settings: 150 dpi PNGs named
// ellipsis_NN.png in ./png.
func DefaultExport() ExportSequence {
	return ExportSequence{
		Dir:    config.ExportDir,
		Prefix: config.ExportPrefix,
		DPI:    config.ExportDPI,
	}
}

func (e ExportSequence) String() string {
	return fmt.Sprintf("export(%s, %g dpi)", e.Dir, e.DPI)
}

// Path returns the file written for ellipse i.
func (e ExportSequence) Path(i int) string {
	return filepath.Join(e.Dir, fmt.Sprintf("%s%02d.png", e.Prefix, i))
}

func (e ExportSequence) newPass(r *Renderer, d *scene.Display) (pass, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	opts := raster.DefaultOptions()
	opts.DPI = e.DPI
	rz, err := raster.New(opts, r.logo)
	if err != nil {
		return nil, err
	}
	d.Reset()
	run := uuid.NewString()
	r.log.Info("export started", "run", run, "dir", e.Dir, "dpi", e.DPI)
	return &exportPass{
		seq: e,
		rz:  rz,
		log: r.log.With("run", run),
	}, nil
}

type exportPass struct {
	seq     ExportSequence
	rz      *raster.Rasterizer
	log     *slog.Logger
	written []string
}

func (p *exportPass) frame(d *scene.Display, i int) error {
	if i != 0 {
		d.ClearLogo()
	}
	path := p.seq.Path(i)
	img, err := p.rz.Rasterize(d)
	if err != nil {
		return fmt.Errorf("rasterize ellipse %d: %w", i, err)
	}
	size, err := raster.WritePNG(path, img)
	if err != nil {
		return fmt.Errorf("write ellipse %d: %w", i, err)
	}
	p.log.Debug("frame written", "path", path, "size", humanize.Bytes(uint64(size)))
	p.written = append(p.written, path)
	d.Reset()
	return nil
}

func (p *exportPass) files() []string { return p.written }

// Result summarises a finished render.
type Result struct {
	Frames  int
	Files   []string
	Elapsed time.Duration
}

// Renderer draws ellipse stacks. It owns the random source of the point
// clouds, so it must not be used from more than one goroutine.
type Renderer struct {
	rng  *rand.Rand
	logo image.Image
	log  *slog.Logger
}

// New returns a Renderer. logo is composited on the first ellipse of each
// export; a nil log discards messages.
func New(rng *rand.Rand, logo image.Image, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{rng: rng, logo: logo, log: log}
}

// Render draws the stack described by p on d according to mode. It returns
// early only if p is invalid, an image cannot be written or ctx is done
// between two ellipses.
func (r *Renderer) Render(ctx context.Context, p config.Params, mode Mode, d *scene.Display) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	sc := scene.Build(p, r.rng)

	ps, err := mode.newPass(r, d)
	if err != nil {
		return Result{}, err
	}
	for i := range sc.Frames {
		if err := ctx.Err(); err != nil {
			return Result{Frames: i, Files: ps.files()}, err
		}
		sc.Draw(d, i)
		if err := ps.frame(d, i); err != nil {
			return Result{Frames: i, Files: ps.files()}, err
		}
	}

	res := Result{Frames: len(sc.Frames), Files: ps.files(), Elapsed: time.Since(start)}
	r.log.Info("render finished",
		"mode", mode.String(),
		"params", p.String(),
		"frames", res.Frames,
		"files", len(res.Files),
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return res, nil
}
