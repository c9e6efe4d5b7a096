package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mattn/go-isatty"

	"github.com/iburimskiy/ellipse-stack/internal/config"
	"github.com/iburimskiy/ellipse-stack/internal/game"
	"github.com/iburimskiy/ellipse-stack/internal/geometry"
	"github.com/iburimskiy/ellipse-stack/internal/raster"
	"github.com/iburimskiy/ellipse-stack/internal/render"
	"github.com/iburimskiy/ellipse-stack/internal/scene"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func main() {
	def := config.Default()
	exp := render.DefaultExport()

	export := flag.Bool("export", false, "Write the image sequence and exit instead of opening a window")
	outDir := flag.String("out", exp.Dir, "Output directory for exported images")
	dpi := flag.Float64("dpi", exp.DPI, "Resolution of exported images")
	logoPath := flag.String("logo", config.LogoPath, "Logo image composited on the first ellipse")
	seed := flag.Uint64("seed", 0, "Seed of the point clouds (0 picks one from the clock)")
	verbose := flag.Bool("v", false, "Verbose logging")

	n := flag.Int("n", def.N, "Number of ellipses")
	a0 := flag.Float64("a", def.A0, "Semi-axis a of the first ellipse")
	b0 := flag.Float64("b", def.B0, "Semi-axis b of the first ellipse")
	np0 := flag.Int("np", def.NP0, "Points on the first ellipse")
	dt := flag.Float64("dt", def.DT, "Rotation step between ellipses, in degrees")
	ext := flag.Int("extinction", int(def.Extinction), "Point count decay: 0 none, 1 cubic, 2 quadratic, 3 linear, 4 sqrt")
	rotate := flag.Bool("rotate", def.RotateEllipses, "Rotate successive ellipses")
	plotText := flag.Bool("text", def.PlotText, "Draw the labels and marker")
	rotateText := flag.Bool("letter-per-ellipse", def.RotateText, "Place one label letter per ellipse instead of the whole labels on the first")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Ellipse Stack - nested elliptical scatter patterns

Usage:
  ellipse-stack [options]           open the interactive window
  ellipse-stack -export [options]   write %s00.png, %s01.png, ... and exit

Options:
`, exp.Prefix, exp.Prefix)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(*verbose)
	slog.SetDefault(log)

	params := config.Params{
		N:              *n,
		A0:             *a0,
		B0:             *b0,
		NP0:            *np0,
		DT:             *dt,
		Extinction:     geometry.Extinction(*ext),
		RotateEllipses: *rotate,
		PlotText:       *plotText,
		RotateText:     *rotateText,
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logo, err := raster.LoadLogo(*logoPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading logo: %v\n", err)
		os.Exit(1)
	}
	log.Debug("logo loaded", "path", *logoPath, "bounds", logo.Bounds().String())

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	renderer := render.New(scene.NewRand(*seed), logo, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp.Dir = *outDir
	exp.DPI = *dpi

	if *export {
		res, err := renderer.Render(ctx, params, exp, scene.NewDisplay())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d images to %s\n", len(res.Files), exp.Dir)
		return
	}

	g, err := game.New(ctx, renderer, logo, params, exp, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Ellipse Stack - arrows, Z/X, C/V, -/=, 0-4, R, T, L: edit  E: export  Esc: quit")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
