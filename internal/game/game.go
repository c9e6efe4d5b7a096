// Package game hosts the live ellipse stack in an ebiten window. Key
// bindings produce a new parameter value and every change triggers one full
// re-render.
package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/render"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

type game struct {
	ctx      context.Context
	log      *slog.Logger
	renderer *render.Renderer
	export   render.ExportSequence

	params  config.Params
	display *scene.Display
	painter *painter

	status  string
	lastErr error
}

// New renders p once and returns the ebiten.Game showing it. Exports
// triggered from the window use the settings of export, with the directory
// chosen interactively.
func New(ctx context.Context, r *render.Renderer, logo image.Image, p config.Params, export render.ExportSequence, log *slog.Logger) (ebiten.Game, error) {
	pt, err := newPainter(logo)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	g := &game{
		ctx:      ctx,
		log:      log,
		renderer: r,
		export:   export,
		params:   p,
		display:  scene.NewDisplay(),
		painter:  pt,
	}
	if err := g.redraw(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) redraw() error {
	_, err := g.renderer.Render(g.ctx, g.params, render.Interactive{}, g.display)
	return err
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if next := applyBindings(g.params).Clamp(); next != g.params {
		g.params = next
		g.lastErr = g.redraw()
		g.log.Debug("parameters changed", "params", g.params.String())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if err := g.exportDialog(); err != nil {
			g.lastErr = err
			g.log.Error("export failed", "error", err)
		}
	}
	return nil
}

// exportDialog asks for an output directory and writes the image sequence
// of the current parameters there.
func (g *game) exportDialog() error {
	dir, err := zenity.SelectFile(
		zenity.Title("Export ellipse sequence"),
		zenity.Directory(),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	mode := g.export
	mode.Dir = dir
	res, err := g.renderer.Render(g.ctx, g.params, mode, scene.NewDisplay())
	if err != nil {
		return err
	}
	g.lastErr = nil
	g.status = fmt.Sprintf("exported %d images to %s in %s", len(res.Files), dir, formatDuration(res.Elapsed))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(config.InteractiveBackground)
	if err := g.painter.paint(screen, g.display); err != nil {
		g.lastErr = err
	}

	ebitenutil.DebugPrintAt(screen, statusLine(g.params), 12, 12)
	ebitenutil.DebugPrintAt(screen, helpLine, 12, config.WindowHeight-20)
	msg := g.status
	if g.lastErr != nil {
		msg = "Error: " + g.lastErr.Error()
	}
	if msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 12, 28)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
