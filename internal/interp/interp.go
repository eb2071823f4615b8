// Package interp implements the linear, bilinear, trilinear, and
// tetrahedral 3D LUT sampling kernels over a lutgrid.Grid.
package interp

import (
	"errors"
	"math"
	"sort"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

var ErrNotApplicable = errors.New("interp: kernel not applicable to this grid shape")

// axis holds the lower/upper grid index and fractional weight for one
// input channel, computed per spec §4.H's shared preamble.
type axis struct {
	i0, i1 int
	w      float64
}

func computeAxis(t float64, res int) axis {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if res == 1 {
		return axis{0, 0, 0}
	}
	fi := t * float64(res-1)
	i0 := int(math.Floor(fi))
	i1 := i0 + 1
	if i1 > res-1 {
		i1 = res - 1
	}
	return axis{i0, i1, fi - float64(i0)}
}

func clampColor(c lutgrid.Color, lo, hi lutgrid.Color) lutgrid.Color {
	return lutgrid.Color{
		R: clamp1(c.R, lo.R, hi.R),
		G: clamp1(c.G, lo.G, hi.G),
		B: clamp1(c.B, lo.B, hi.B),
	}
}

func clamp1(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b lutgrid.Color, w float64) lutgrid.Color {
	return lutgrid.Color{
		R: a.R + (b.R-a.R)*w,
		G: a.G + (b.G-a.G)*w,
		B: a.B + (b.B-a.B)*w,
	}
}

func addScaled(c, base lutgrid.Color, w float64) lutgrid.Color {
	return lutgrid.Color{
		R: c.R + base.R*w,
		G: c.G + base.G*w,
		B: c.B + base.B*w,
	}
}

func sub(a, b lutgrid.Color) lutgrid.Color {
	return lutgrid.Color{R: a.R - b.R, G: a.G - b.G, B: a.B - b.B}
}

// Linear interpolates along R only, snapping G and B to their nearest grid
// index (round-half-away-from-zero, matching the reference behavior).
func Linear(g *lutgrid.Grid, r, gch, b float64) lutgrid.Color {
	rr, rg, rb := g.Res()
	ar := computeAxis(r, rr)
	ig := snapNearest(gch, rg)
	ib := snapNearest(b, rb)

	c0 := g.Sample(ar.i0, ig, ib)
	c1 := g.Sample(ar.i1, ig, ib)
	return clampColor(lerp(c0, c1, ar.w), g.DomainMin(), g.DomainMax())
}

func snapNearest(t float64, res int) int {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if res == 1 {
		return 0
	}
	fi := t * float64(res-1)
	idx := int(math.Floor(fi + 0.5))
	if idx > res-1 {
		idx = res - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Bilinear interpolates the two non-degenerate axes when exactly one axis
// has resolution 1, per spec §4.H. It is ErrNotApplicable otherwise.
func Bilinear(g *lutgrid.Grid, r, gch, b float64) (lutgrid.Color, error) {
	rr, rg, rb := g.Res()
	degenerate := 0
	if rr == 1 {
		degenerate++
	}
	if rg == 1 {
		degenerate++
	}
	if rb == 1 {
		degenerate++
	}
	if degenerate != 1 {
		return lutgrid.Color{}, ErrNotApplicable
	}

	ar := computeAxis(r, rr)
	ag := computeAxis(gch, rg)
	ab := computeAxis(b, rb)

	switch {
	case rr == 1:
		c00 := g.Sample(0, ag.i0, ab.i0)
		c01 := g.Sample(0, ag.i0, ab.i1)
		c10 := g.Sample(0, ag.i1, ab.i0)
		c11 := g.Sample(0, ag.i1, ab.i1)
		out := lerp(lerp(c00, c01, ab.w), lerp(c10, c11, ab.w), ag.w)
		return clampColor(out, g.DomainMin(), g.DomainMax()), nil
	case rg == 1:
		c00 := g.Sample(ar.i0, 0, ab.i0)
		c01 := g.Sample(ar.i0, 0, ab.i1)
		c10 := g.Sample(ar.i1, 0, ab.i0)
		c11 := g.Sample(ar.i1, 0, ab.i1)
		out := lerp(lerp(c00, c01, ab.w), lerp(c10, c11, ab.w), ar.w)
		return clampColor(out, g.DomainMin(), g.DomainMax()), nil
	default: // rb == 1
		c00 := g.Sample(ar.i0, ag.i0, 0)
		c01 := g.Sample(ar.i0, ag.i1, 0)
		c10 := g.Sample(ar.i1, ag.i0, 0)
		c11 := g.Sample(ar.i1, ag.i1, 0)
		out := lerp(lerp(c00, c01, ag.w), lerp(c10, c11, ag.w), ar.w)
		return clampColor(out, g.DomainMin(), g.DomainMax()), nil
	}
}

// Trilinear reduces the 8 corner samples along R, then G, then B. When any
// axis is degenerate it falls back to Bilinear.
func Trilinear(g *lutgrid.Grid, r, gch, b float64) (lutgrid.Color, error) {
	rr, rg, rb := g.Res()
	if rr == 1 || rg == 1 || rb == 1 {
		return Bilinear(g, r, gch, b)
	}

	ar := computeAxis(r, rr)
	ag := computeAxis(gch, rg)
	ab := computeAxis(b, rb)

	c000 := g.Sample(ar.i0, ag.i0, ab.i0)
	c100 := g.Sample(ar.i1, ag.i0, ab.i0)
	c010 := g.Sample(ar.i0, ag.i1, ab.i0)
	c110 := g.Sample(ar.i1, ag.i1, ab.i0)
	c001 := g.Sample(ar.i0, ag.i0, ab.i1)
	c101 := g.Sample(ar.i1, ag.i0, ab.i1)
	c011 := g.Sample(ar.i0, ag.i1, ab.i1)
	c111 := g.Sample(ar.i1, ag.i1, ab.i1)

	c0jk0 := lerp(c000, c100, ar.w)
	c0jk1 := lerp(c010, c110, ar.w)
	c1jk0 := lerp(c001, c101, ar.w)
	c1jk1 := lerp(c011, c111, ar.w)

	c00k := lerp(c0jk0, c0jk1, ag.w)
	c01k := lerp(c1jk0, c1jk1, ag.w)

	out := lerp(c00k, c01k, ab.w)
	return clampColor(out, g.DomainMin(), g.DomainMax()), nil
}

// Tetrahedral decomposes the unit cube into six tetrahedra by the sorted
// order of wr, wg, wb and applies the corresponding affine formula from
// spec §4.H. Degenerate grids fall back to Trilinear (which itself falls
// back to Bilinear when needed).
func Tetrahedral(g *lutgrid.Grid, r, gch, b float64) (lutgrid.Color, error) {
	rr, rg, rb := g.Res()
	if rr == 1 || rg == 1 || rb == 1 {
		return Trilinear(g, r, gch, b)
	}

	ar := computeAxis(r, rr)
	ag := computeAxis(gch, rg)
	ab := computeAxis(b, rb)

	c000 := g.Sample(ar.i0, ag.i0, ab.i0)
	c100 := g.Sample(ar.i1, ag.i0, ab.i0)
	c010 := g.Sample(ar.i0, ag.i1, ab.i0)
	c110 := g.Sample(ar.i1, ag.i1, ab.i0)
	c001 := g.Sample(ar.i0, ag.i0, ab.i1)
	c101 := g.Sample(ar.i1, ag.i0, ab.i1)
	c011 := g.Sample(ar.i0, ag.i1, ab.i1)
	c111 := g.Sample(ar.i1, ag.i1, ab.i1)

	wr, wg, wb := ar.w, ag.w, ab.w

	type weighted struct {
		name string
		val  float64
	}
	order := []weighted{{"r", wr}, {"g", wg}, {"b", wb}}
	sort.SliceStable(order, func(i, j int) bool { return order[i].val > order[j].val })
	key := order[0].name + order[1].name + order[2].name

	var out lutgrid.Color
	switch key {
	case "rgb": // wr >= wg >= wb
		out = c000
		out = addScaled(out, sub(c100, c000), wr)
		out = addScaled(out, sub(c110, c100), wg)
		out = addScaled(out, sub(c111, c110), wb)
	case "rbg": // wr >= wb >= wg
		out = c000
		out = addScaled(out, sub(c100, c000), wr)
		out = addScaled(out, sub(c101, c100), wb)
		out = addScaled(out, sub(c111, c101), wg)
	case "brg": // wb >= wr >= wg
		out = c000
		out = addScaled(out, sub(c001, c000), wb)
		out = addScaled(out, sub(c101, c001), wr)
		out = addScaled(out, sub(c111, c101), wg)
	case "bgr": // wb >= wg >= wr
		out = c000
		out = addScaled(out, sub(c001, c000), wb)
		out = addScaled(out, sub(c011, c001), wg)
		out = addScaled(out, sub(c111, c011), wr)
	case "gbr": // wg >= wb >= wr
		out = c000
		out = addScaled(out, sub(c010, c000), wg)
		out = addScaled(out, sub(c011, c010), wb)
		out = addScaled(out, sub(c111, c011), wr)
	case "grb": // wg >= wr >= wb
		out = c000
		out = addScaled(out, sub(c010, c000), wg)
		out = addScaled(out, sub(c110, c010), wr)
		out = addScaled(out, sub(c111, c110), wb)
	default:
		// Unreachable: sort of three distinct-named weights always yields
		// one of the six permutations above.
		return Trilinear(g, r, gch, b)
	}
	return clampColor(out, g.DomainMin(), g.DomainMax()), nil
}
