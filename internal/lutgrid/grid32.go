package lutgrid

import "math"

// Color32 is the float32 analogue of Color: an (r, g, b) triple carried at
// the precision the f32 interpolation kernels actually compute in. It is a
// distinct type, not a view over Color, so that f32 kernel arithmetic never
// has an float64 value to widen into.
type Color32 struct {
	R, G, B float32
}

// Grid32 is the float32 analogue of Grid: the same immutable Rr x Rg x Rb
// lattice, indexed identically (R fastest, G next, B slowest), but with
// every stored value and every read at float32 precision.
type Grid32 struct {
	rr, rg, rb int
	domainMin  Color32
	domainMax  Color32
	samples    []Color32
}

// New32 validates and constructs a Grid32 under the same invariants as New:
// shape must match rr*rg*rb, each axis resolution in [1,256], every sample
// and domain bound finite, and domainMin must not exceed domainMax on any
// channel.
func New32(rr, rg, rb int, domainMin, domainMax Color32, samples []Color32) (*Grid32, error) {
	if err := checkShape(rr, rg, rb, len(samples)); err != nil {
		return nil, err
	}
	if !finiteColor32(domainMin) || !finiteColor32(domainMax) {
		return nil, ErrGridDomain
	}
	if domainMin.R > domainMax.R || domainMin.G > domainMax.G || domainMin.B > domainMax.B {
		return nil, ErrGridDomain
	}
	for _, s := range samples {
		if !finiteColor32(s) {
			return nil, ErrGridDomain
		}
	}
	cp := make([]Color32, len(samples))
	copy(cp, samples)
	return &Grid32{rr: rr, rg: rg, rb: rb, domainMin: domainMin, domainMax: domainMax, samples: cp}, nil
}

func finiteColor32(c Color32) bool {
	return !math.IsNaN(float64(c.R)) && !math.IsInf(float64(c.R), 0) &&
		!math.IsNaN(float64(c.G)) && !math.IsInf(float64(c.G), 0) &&
		!math.IsNaN(float64(c.B)) && !math.IsInf(float64(c.B), 0)
}

// Res returns the per-axis resolution (Rr, Rg, Rb).
func (g *Grid32) Res() (int, int, int) { return g.rr, g.rg, g.rb }

// DomainMin returns the grid's minimum output bound per channel.
func (g *Grid32) DomainMin() Color32 { return g.domainMin }

// DomainMax returns the grid's maximum output bound per channel.
func (g *Grid32) DomainMax() Color32 { return g.domainMax }

// Sample returns the stored color at grid indices (ir, ig, ib).
func (g *Grid32) Sample(ir, ig, ib int) Color32 {
	return g.samples[ib*g.rg*g.rr+ig*g.rr+ir]
}

// ToGrid32 narrows a Grid to its float32 twin. This narrowing happens once,
// at the load boundary, never inside an interpolation kernel: every f32
// kernel in internal/interp reads only from a Grid32 and computes only in
// float32, so a loaded LUT's f32 and f64 sampling paths stay independent
// all the way from storage to result.
func (g *Grid) ToGrid32() *Grid32 {
	samples := make([]Color32, len(g.samples))
	for i, s := range g.samples {
		samples[i] = Color32{R: float32(s.R), G: float32(s.G), B: float32(s.B)}
	}
	return &Grid32{
		rr: g.rr, rg: g.rg, rb: g.rb,
		domainMin: Color32{R: float32(g.domainMin.R), G: float32(g.domainMin.G), B: float32(g.domainMin.B)},
		domainMax: Color32{R: float32(g.domainMax.R), G: float32(g.domainMax.G), B: float32(g.domainMax.B)},
		samples:   samples,
	}
}
