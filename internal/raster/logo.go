package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
)

// LoadLogo decodes the PNG or JPEG image at path.
func LoadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return img, nil
}

// LogoRect returns where a logo of bounds logo is composited on a canvas of
// bounds canvas: a box 10% of the canvas high, its left edge at 75% of the
// width and its top at 10% of the height. The logo keeps its aspect ratio and
// sits in the top right corner of the box, which never extends past the
// right edge of the canvas.
func LogoRect(canvas, logo image.Rectangle) image.Rectangle {
	cw, ch := float64(canvas.Dx()), float64(canvas.Dy())
	lw, lh := float64(logo.Dx()), float64(logo.Dy())
	if lw == 0 || lh == 0 {
		return image.Rectangle{}
	}
	boxH := 0.1 * ch
	boxW := 0.1 * cw * lw / lh
	right := math.Min(float64(canvas.Min.X)+0.75*cw+boxW, float64(canvas.Max.X))
	top := float64(canvas.Min.Y) + 0.1*ch

	s := math.Min(boxW/lw, boxH/lh)
	w, h := lw*s, lh*s
	return image.Rect(
		int(math.Round(right-w)), int(math.Round(top)),
		int(math.Round(right)), int(math.Round(top+h)),
	)
}

// WritePNG encodes img to path and returns the size of the written file.
func WritePNG(path string, img image.Image) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
