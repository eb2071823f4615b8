// Package lutgrid holds the immutable 3D LUT sample grid shared by every
// loader (HALD, .cube, .3dl, .csp) and consumed by the interpolation kernels.
package lutgrid

import (
	"errors"
	"math"
)

var (
	ErrGridShape  = errors.New("lutgrid: resolution out of range or sample count does not match it")
	ErrGridDomain = errors.New("lutgrid: non-finite sample or domain value, or inverted domain")
)

// Color is an (r, g, b) triple in the grid's native units.
type Color struct {
	R, G, B float64
}

// Grid is an immutable Rr x Rg x Rb lattice of Color samples, indexed with
// R varying fastest, then G, then B (matching the serialized sample order
// used by every loader in this module).
type Grid struct {
	rr, rg, rb       int
	domainMin        Color
	domainMax        Color
	samples          []Color
}

// New validates and constructs a Grid. samples must be ordered with R
// fastest, G next, B slowest, and its length must equal rr*rg*rb. Every
// sample and domain component must be finite, each per-axis resolution
// must be in [1,256], and domainMin must not exceed domainMax on any
// channel.
func New(rr, rg, rb int, domainMin, domainMax Color, samples []Color) (*Grid, error) {
	if err := checkShape(rr, rg, rb, len(samples)); err != nil {
		return nil, err
	}
	if !finiteColor(domainMin) || !finiteColor(domainMax) {
		return nil, ErrGridDomain
	}
	if domainMin.R > domainMax.R || domainMin.G > domainMax.G || domainMin.B > domainMax.B {
		return nil, ErrGridDomain
	}
	for _, s := range samples {
		if !finiteColor(s) {
			return nil, ErrGridDomain
		}
	}
	cp := make([]Color, len(samples))
	copy(cp, samples)
	return &Grid{rr: rr, rg: rg, rb: rb, domainMin: domainMin, domainMax: domainMax, samples: cp}, nil
}

// minRes and maxRes bound a single axis's grid resolution, per spec §3.
const (
	minRes = 1
	maxRes = 256
)

func checkShape(rr, rg, rb, sampleCount int) error {
	if rr < minRes || rr > maxRes || rg < minRes || rg > maxRes || rb < minRes || rb > maxRes {
		return ErrGridShape
	}
	if sampleCount != rr*rg*rb {
		return ErrGridShape
	}
	return nil
}

func finiteColor(c Color) bool {
	return !math.IsNaN(c.R) && !math.IsInf(c.R, 0) &&
		!math.IsNaN(c.G) && !math.IsInf(c.G, 0) &&
		!math.IsNaN(c.B) && !math.IsInf(c.B, 0)
}

// Res returns the per-axis resolution (Rr, Rg, Rb).
func (g *Grid) Res() (int, int, int) { return g.rr, g.rg, g.rb }

// DomainMin returns the grid's minimum output bound per channel.
func (g *Grid) DomainMin() Color { return g.domainMin }

// DomainMax returns the grid's maximum output bound per channel.
func (g *Grid) DomainMax() Color { return g.domainMax }

// Sample returns the stored color at grid indices (ir, ig, ib).
func (g *Grid) Sample(ir, ig, ib int) Color {
	return g.samples[ib*g.rg*g.rr+ig*g.rr+ir]
}
