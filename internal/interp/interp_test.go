package interp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

func identityGrid(t *testing.T, n int) *lutgrid.Grid {
	t.Helper()
	samples := make([]lutgrid.Color, n*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			for ir := 0; ir < n; ir++ {
				samples[ib*n*n+ig*n+ir] = lutgrid.Color{
					R: float64(ir) / float64(n-1),
					G: float64(ig) / float64(n-1),
					B: float64(ib) / float64(n-1),
				}
			}
		}
	}
	g, err := lutgrid.New(n, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New: %v", err)
	}
	return g
}

func almostEqual(a, b lutgrid.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func TestTrilinear_IdentityCubeIsExact(t *testing.T) {
	g := identityGrid(t, 2)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		r, gc, b := rng.Float64(), rng.Float64(), rng.Float64()
		out, err := Trilinear(g, r, gc, b)
		if err != nil {
			t.Fatalf("Trilinear: %v", err)
		}
		want := lutgrid.Color{R: r, G: gc, B: b}
		if !almostEqual(out, want, 1e-12) {
			t.Errorf("Trilinear(%v,%v,%v) = %v, want %v", r, gc, b, out, want)
		}
	}
}

func TestTetrahedral_IdentityCubeIsExact(t *testing.T) {
	g := identityGrid(t, 2)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		r, gc, b := rng.Float64(), rng.Float64(), rng.Float64()
		out, err := Tetrahedral(g, r, gc, b)
		if err != nil {
			t.Fatalf("Tetrahedral: %v", err)
		}
		want := lutgrid.Color{R: r, G: gc, B: b}
		if !almostEqual(out, want, 1e-12) {
			t.Errorf("Tetrahedral(%v,%v,%v) = %v, want %v", r, gc, b, out, want)
		}
	}
}

func TestTrilinear_AgreesWithTetrahedralOnDiagonalPlane(t *testing.T) {
	g := identityGrid(t, 3)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		r := rng.Float64()
		tri, err := Trilinear(g, r, r, r)
		if err != nil {
			t.Fatalf("Trilinear: %v", err)
		}
		tet, err := Tetrahedral(g, r, r, r)
		if err != nil {
			t.Fatalf("Tetrahedral: %v", err)
		}
		if !almostEqual(tri, tet, 1e-12) {
			t.Errorf("r=%v: trilinear=%v tetrahedral=%v disagree", r, tri, tet)
		}
	}
}

func TestBilinear_DegenerateAxisFallback(t *testing.T) {
	n := 2
	samples := make([]lutgrid.Color, 1*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			samples[ib*n+ig] = lutgrid.Color{R: 0.5, G: float64(ig), B: float64(ib)}
		}
	}
	g, err := lutgrid.New(1, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New: %v", err)
	}
	out, err := Bilinear(g, 0.5, 0.25, 0.75)
	if err != nil {
		t.Fatalf("Bilinear: %v", err)
	}
	want := lutgrid.Color{R: 0.5, G: 0.25, B: 0.75}
	if !almostEqual(out, want, 1e-12) {
		t.Errorf("Bilinear = %v, want %v", out, want)
	}
}

func TestBilinear_RejectsNonDegenerateGrid(t *testing.T) {
	g := identityGrid(t, 2)
	if _, err := Bilinear(g, 0.5, 0.5, 0.5); err != ErrNotApplicable {
		t.Errorf("got %v, want ErrNotApplicable", err)
	}
}

func TestTrilinear_FallsBackWhenDegenerate(t *testing.T) {
	n := 2
	samples := make([]lutgrid.Color, 1*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			samples[ib*n+ig] = lutgrid.Color{R: 0.5, G: float64(ig), B: float64(ib)}
		}
	}
	g, err := lutgrid.New(1, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New: %v", err)
	}
	out, err := Trilinear(g, 0.5, 0.25, 0.75)
	if err != nil {
		t.Fatalf("Trilinear: %v", err)
	}
	want := lutgrid.Color{R: 0.5, G: 0.25, B: 0.75}
	if !almostEqual(out, want, 1e-12) {
		t.Errorf("Trilinear fallback = %v, want %v", out, want)
	}
}

func TestLinear_SnapsGAndBToNearest(t *testing.T) {
	n := 4
	samples := make([]lutgrid.Color, n*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			for ir := 0; ir < n; ir++ {
				samples[ib*n*n+ig*n+ir] = lutgrid.Color{
					R: float64(ir) / float64(n-1),
					G: float64(ig),
					B: float64(ib),
				}
			}
		}
	}
	g, err := lutgrid.New(n, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, float64(n - 1), float64(n - 1)}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New: %v", err)
	}
	// g=0.4 of [0,3] normalized -> fi=1.2 -> nearest index 1; b=0.9 -> fi=2.7 -> nearest 3.
	out := Linear(g, 0.5, 0.4, 0.9)
	if out.G != 1 {
		t.Errorf("G snapped to %v, want 1", out.G)
	}
	if out.B != 3 {
		t.Errorf("B snapped to %v, want 3", out.B)
	}
}

func TestOutput_ClampedToDomain(t *testing.T) {
	n := 2
	samples := []lutgrid.Color{
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
	}
	g, err := lutgrid.New(n, n, n, lutgrid.Color{0, 0, 0}, lutgrid.Color{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New: %v", err)
	}
	out, err := Trilinear(g, 1, 0, 0)
	if err != nil {
		t.Fatalf("Trilinear: %v", err)
	}
	if out.R > 1 || out.R < 0 {
		t.Errorf("R = %v, want clamped to [0,1]", out.R)
	}
}
