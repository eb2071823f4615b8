// Package hald maps a decoded HALD CLUT image (a square PNG encoding an
// N x N x N color cube) onto a lutgrid.Grid.
//
// A Hald image of level L is L^3 pixels square; its per-axis cube
// resolution is L^2, since total pixels (L^3)^2 = L^6 must equal the cube's
// total sample count (L^2)^3. The spec names both quantities "N" in
// different places; this package keeps them distinct (level, resolution)
// and verifies the consistent one: width must be a perfect cube.
package hald

import (
	"errors"
	"math"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

// maxLevel bounds the HALD level so the derived grid resolution level^2
// never exceeds lutgrid's per-axis cap of 256.
const maxLevel = 16

var (
	ErrNotSquare    = errors.New("hald: image is not square")
	ErrNotCubeLevel = errors.New("hald: width is not a perfect cube side length")
	ErrLevelRange   = errors.New("hald: level outside [2,16]")
)

// Pixel is one decoded HALD pixel's channel values, already separated from
// packed byte storage by the caller.
type Pixel struct {
	R, G, B uint32
}

// FromPixels builds a lutgrid.Grid from a row-major (R-fastest within a
// row, rows top-to-bottom) pixel buffer, per spec §4.I: pixel index
// p = y*width+x maps directly to grid sample index p, with R varying
// fastest across the flattened cube.
func FromPixels(width, height int, maxValue uint32, pixels []Pixel) (*lutgrid.Grid, error) {
	if width != height {
		return nil, ErrNotSquare
	}
	level := int(math.Round(math.Cbrt(float64(width))))
	if level*level*level != width {
		return nil, ErrNotCubeLevel
	}
	if level < 2 || level > maxLevel {
		return nil, ErrLevelRange
	}
	n := level * level
	if len(pixels) != n*n*n {
		return nil, ErrNotCubeLevel
	}

	samples := make([]lutgrid.Color, n*n*n)
	scale := 1.0 / float64(maxValue)
	for p, px := range pixels {
		samples[p] = lutgrid.Color{
			R: float64(px.R) * scale,
			G: float64(px.G) * scale,
			B: float64(px.B) * scale,
		}
	}
	return lutgrid.New(n, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
}
