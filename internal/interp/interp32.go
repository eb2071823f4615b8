package interp

import (
	"math"
	"sort"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

// The f32 kernels below mirror the f64 kernels above exactly in structure
// and formula, but read only from a lutgrid.Grid32 and compute only in
// float32: nothing here ever holds a float64 intermediate, so the f32 and
// f64 sampling paths are independent all the way from storage to result,
// per spec §9 ("do not internally widen").

type axis32 struct {
	i0, i1 int
	w      float32
}

func computeAxis32(t float32, res int) axis32 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if res == 1 {
		return axis32{0, 0, 0}
	}
	fi := t * float32(res-1)
	i0 := int(math.Floor(float64(fi)))
	i1 := i0 + 1
	if i1 > res-1 {
		i1 = res - 1
	}
	return axis32{i0, i1, fi - float32(i0)}
}

func clampColor32(c lutgrid.Color32, lo, hi lutgrid.Color32) lutgrid.Color32 {
	return lutgrid.Color32{
		R: clamp1f32(c.R, lo.R, hi.R),
		G: clamp1f32(c.G, lo.G, hi.G),
		B: clamp1f32(c.B, lo.B, hi.B),
	}
}

func clamp1f32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp32(a, b lutgrid.Color32, w float32) lutgrid.Color32 {
	return lutgrid.Color32{
		R: a.R + (b.R-a.R)*w,
		G: a.G + (b.G-a.G)*w,
		B: a.B + (b.B-a.B)*w,
	}
}

func addScaled32(c, base lutgrid.Color32, w float32) lutgrid.Color32 {
	return lutgrid.Color32{
		R: c.R + base.R*w,
		G: c.G + base.G*w,
		B: c.B + base.B*w,
	}
}

func sub32(a, b lutgrid.Color32) lutgrid.Color32 {
	return lutgrid.Color32{R: a.R - b.R, G: a.G - b.G, B: a.B - b.B}
}

func snapNearest32(t float32, res int) int {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if res == 1 {
		return 0
	}
	fi := t * float32(res-1)
	idx := int(math.Floor(float64(fi) + 0.5))
	if idx > res-1 {
		idx = res - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Linear32 is the float32 twin of Linear.
func Linear32(g *lutgrid.Grid32, r, gch, b float32) lutgrid.Color32 {
	rr, rg, rb := g.Res()
	ar := computeAxis32(r, rr)
	ig := snapNearest32(gch, rg)
	ib := snapNearest32(b, rb)

	c0 := g.Sample(ar.i0, ig, ib)
	c1 := g.Sample(ar.i1, ig, ib)
	return clampColor32(lerp32(c0, c1, ar.w), g.DomainMin(), g.DomainMax())
}

// Bilinear32 is the float32 twin of Bilinear.
func Bilinear32(g *lutgrid.Grid32, r, gch, b float32) (lutgrid.Color32, error) {
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
		return lutgrid.Color32{}, ErrNotApplicable
	}

	ar := computeAxis32(r, rr)
	ag := computeAxis32(gch, rg)
	ab := computeAxis32(b, rb)

	switch {
	case rr == 1:
		c00 := g.Sample(0, ag.i0, ab.i0)
		c01 := g.Sample(0, ag.i0, ab.i1)
		c10 := g.Sample(0, ag.i1, ab.i0)
		c11 := g.Sample(0, ag.i1, ab.i1)
		out := lerp32(lerp32(c00, c01, ab.w), lerp32(c10, c11, ab.w), ag.w)
		return clampColor32(out, g.DomainMin(), g.DomainMax()), nil
	case rg == 1:
		c00 := g.Sample(ar.i0, 0, ab.i0)
		c01 := g.Sample(ar.i0, 0, ab.i1)
		c10 := g.Sample(ar.i1, 0, ab.i0)
		c11 := g.Sample(ar.i1, 0, ab.i1)
		out := lerp32(lerp32(c00, c01, ab.w), lerp32(c10, c11, ab.w), ar.w)
		return clampColor32(out, g.DomainMin(), g.DomainMax()), nil
	default: // rb == 1
		c00 := g.Sample(ar.i0, ag.i0, 0)
		c01 := g.Sample(ar.i0, ag.i1, 0)
		c10 := g.Sample(ar.i1, ag.i0, 0)
		c11 := g.Sample(ar.i1, ag.i1, 0)
		out := lerp32(lerp32(c00, c01, ag.w), lerp32(c10, c11, ag.w), ar.w)
		return clampColor32(out, g.DomainMin(), g.DomainMax()), nil
	}
}

// Trilinear32 is the float32 twin of Trilinear.
func Trilinear32(g *lutgrid.Grid32, r, gch, b float32) (lutgrid.Color32, error) {
	rr, rg, rb := g.Res()
	if rr == 1 || rg == 1 || rb == 1 {
		return Bilinear32(g, r, gch, b)
	}

	ar := computeAxis32(r, rr)
	ag := computeAxis32(gch, rg)
	ab := computeAxis32(b, rb)

	c000 := g.Sample(ar.i0, ag.i0, ab.i0)
	c100 := g.Sample(ar.i1, ag.i0, ab.i0)
	c010 := g.Sample(ar.i0, ag.i1, ab.i0)
	c110 := g.Sample(ar.i1, ag.i1, ab.i0)
	c001 := g.Sample(ar.i0, ag.i0, ab.i1)
	c101 := g.Sample(ar.i1, ag.i0, ab.i1)
	c011 := g.Sample(ar.i0, ag.i1, ab.i1)
	c111 := g.Sample(ar.i1, ag.i1, ab.i1)

	c0jk0 := lerp32(c000, c100, ar.w)
	c0jk1 := lerp32(c010, c110, ar.w)
	c1jk0 := lerp32(c001, c101, ar.w)
	c1jk1 := lerp32(c011, c111, ar.w)

	c00k := lerp32(c0jk0, c0jk1, ag.w)
	c01k := lerp32(c1jk0, c1jk1, ag.w)

	out := lerp32(c00k, c01k, ab.w)
	return clampColor32(out, g.DomainMin(), g.DomainMax()), nil
}

// Tetrahedral32 is the float32 twin of Tetrahedral.
func Tetrahedral32(g *lutgrid.Grid32, r, gch, b float32) (lutgrid.Color32, error) {
	rr, rg, rb := g.Res()
	if rr == 1 || rg == 1 || rb == 1 {
		return Trilinear32(g, r, gch, b)
	}

	ar := computeAxis32(r, rr)
	ag := computeAxis32(gch, rg)
	ab := computeAxis32(b, rb)

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
		val  float32
	}
	order := []weighted{{"r", wr}, {"g", wg}, {"b", wb}}
	sort.SliceStable(order, func(i, j int) bool { return order[i].val > order[j].val })
	key := order[0].name + order[1].name + order[2].name

	var out lutgrid.Color32
	switch key {
	case "rgb": // wr >= wg >= wb
		out = c000
		out = addScaled32(out, sub32(c100, c000), wr)
		out = addScaled32(out, sub32(c110, c100), wg)
		out = addScaled32(out, sub32(c111, c110), wb)
	case "rbg": // wr >= wb >= wg
		out = c000
		out = addScaled32(out, sub32(c100, c000), wr)
		out = addScaled32(out, sub32(c101, c100), wb)
		out = addScaled32(out, sub32(c111, c101), wg)
	case "brg": // wb >= wr >= wg
		out = c000
		out = addScaled32(out, sub32(c001, c000), wb)
		out = addScaled32(out, sub32(c101, c001), wr)
		out = addScaled32(out, sub32(c111, c101), wg)
	case "bgr": // wb >= wg >= wr
		out = c000
		out = addScaled32(out, sub32(c001, c000), wb)
		out = addScaled32(out, sub32(c011, c001), wg)
		out = addScaled32(out, sub32(c111, c011), wr)
	case "gbr": // wg >= wb >= wr
		out = c000
		out = addScaled32(out, sub32(c010, c000), wg)
		out = addScaled32(out, sub32(c011, c010), wb)
		out = addScaled32(out, sub32(c111, c011), wr)
	case "grb": // wg >= wr >= wb
		out = c000
		out = addScaled32(out, sub32(c010, c000), wg)
		out = addScaled32(out, sub32(c110, c010), wr)
		out = addScaled32(out, sub32(c111, c110), wb)
	default:
		// Unreachable: sort of three distinct-named weights always yields
		// one of the six permutations above.
		return Trilinear32(g, r, gch, b)
	}
	return clampColor32(out, g.DomainMin(), g.DomainMax()), nil
}
