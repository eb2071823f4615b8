package interp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/MaratShch/lutlib/internal/lutgrid"
)

// These tests mirror interp_test.go's f64 cases exactly, but exercise the
// f32 kernels over a Grid32 with the 1e-7 tolerance spec §8 names for f32
// (three to four orders of magnitude looser than f64's 1e-12), since
// float32 arithmetic accumulates rounding error the f64 path doesn't.

func identityGrid32(t *testing.T, n int) *lutgrid.Grid32 {
	t.Helper()
	samples := make([]lutgrid.Color32, n*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			for ir := 0; ir < n; ir++ {
				samples[ib*n*n+ig*n+ir] = lutgrid.Color32{
					R: float32(ir) / float32(n-1),
					G: float32(ig) / float32(n-1),
					B: float32(ib) / float32(n-1),
				}
			}
		}
	}
	g, err := lutgrid.New32(n, n, n, lutgrid.Color32{0, 0, 0}, lutgrid.Color32{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New32: %v", err)
	}
	return g
}

func almostEqual32(a, b lutgrid.Color32, tol float32) bool {
	return float32(math.Abs(float64(a.R-b.R))) <= tol &&
		float32(math.Abs(float64(a.G-b.G))) <= tol &&
		float32(math.Abs(float64(a.B-b.B))) <= tol
}

func TestTrilinear32_IdentityCubeIsExact(t *testing.T) {
	g := identityGrid32(t, 2)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		r, gc, b := rng.Float32(), rng.Float32(), rng.Float32()
		out, err := Trilinear32(g, r, gc, b)
		if err != nil {
			t.Fatalf("Trilinear32: %v", err)
		}
		want := lutgrid.Color32{R: r, G: gc, B: b}
		if !almostEqual32(out, want, 1e-7) {
			t.Errorf("Trilinear32(%v,%v,%v) = %v, want %v", r, gc, b, out, want)
		}
	}
}

func TestTetrahedral32_IdentityCubeIsExact(t *testing.T) {
	g := identityGrid32(t, 2)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		r, gc, b := rng.Float32(), rng.Float32(), rng.Float32()
		out, err := Tetrahedral32(g, r, gc, b)
		if err != nil {
			t.Fatalf("Tetrahedral32: %v", err)
		}
		want := lutgrid.Color32{R: r, G: gc, B: b}
		if !almostEqual32(out, want, 1e-7) {
			t.Errorf("Tetrahedral32(%v,%v,%v) = %v, want %v", r, gc, b, out, want)
		}
	}
}

func TestTrilinear32_AgreesWithTetrahedral32OnDiagonalPlane(t *testing.T) {
	g := identityGrid32(t, 3)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		r := rng.Float32()
		tri, err := Trilinear32(g, r, r, r)
		if err != nil {
			t.Fatalf("Trilinear32: %v", err)
		}
		tet, err := Tetrahedral32(g, r, r, r)
		if err != nil {
			t.Fatalf("Tetrahedral32: %v", err)
		}
		if !almostEqual32(tri, tet, 1e-7) {
			t.Errorf("r=%v: trilinear32=%v tetrahedral32=%v disagree", r, tri, tet)
		}
	}
}

func TestBilinear32_DegenerateAxisFallback(t *testing.T) {
	n := 2
	samples := make([]lutgrid.Color32, 1*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			samples[ib*n+ig] = lutgrid.Color32{R: 0.5, G: float32(ig), B: float32(ib)}
		}
	}
	g, err := lutgrid.New32(1, n, n, lutgrid.Color32{0, 0, 0}, lutgrid.Color32{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New32: %v", err)
	}
	out, err := Bilinear32(g, 0.5, 0.25, 0.75)
	if err != nil {
		t.Fatalf("Bilinear32: %v", err)
	}
	want := lutgrid.Color32{R: 0.5, G: 0.25, B: 0.75}
	if !almostEqual32(out, want, 1e-7) {
		t.Errorf("Bilinear32 = %v, want %v", out, want)
	}
}

func TestBilinear32_RejectsNonDegenerateGrid(t *testing.T) {
	g := identityGrid32(t, 2)
	if _, err := Bilinear32(g, 0.5, 0.5, 0.5); err != ErrNotApplicable {
		t.Errorf("got %v, want ErrNotApplicable", err)
	}
}

func TestTrilinear32_FallsBackWhenDegenerate(t *testing.T) {
	n := 2
	samples := make([]lutgrid.Color32, 1*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			samples[ib*n+ig] = lutgrid.Color32{R: 0.5, G: float32(ig), B: float32(ib)}
		}
	}
	g, err := lutgrid.New32(1, n, n, lutgrid.Color32{0, 0, 0}, lutgrid.Color32{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New32: %v", err)
	}
	out, err := Trilinear32(g, 0.5, 0.25, 0.75)
	if err != nil {
		t.Fatalf("Trilinear32: %v", err)
	}
	want := lutgrid.Color32{R: 0.5, G: 0.25, B: 0.75}
	if !almostEqual32(out, want, 1e-7) {
		t.Errorf("Trilinear32 fallback = %v, want %v", out, want)
	}
}

func TestLinear32_SnapsGAndBToNearest(t *testing.T) {
	n := 4
	samples := make([]lutgrid.Color32, n*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			for ir := 0; ir < n; ir++ {
				samples[ib*n*n+ig*n+ir] = lutgrid.Color32{
					R: float32(ir) / float32(n-1),
					G: float32(ig),
					B: float32(ib),
				}
			}
		}
	}
	g, err := lutgrid.New32(n, n, n, lutgrid.Color32{0, 0, 0}, lutgrid.Color32{1, float32(n - 1), float32(n - 1)}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New32: %v", err)
	}
	out := Linear32(g, 0.5, 0.4, 0.9)
	if out.G != 1 {
		t.Errorf("G snapped to %v, want 1", out.G)
	}
	if out.B != 3 {
		t.Errorf("B snapped to %v, want 3", out.B)
	}
}

func TestOutput32_ClampedToDomain(t *testing.T) {
	n := 2
	samples := []lutgrid.Color32{
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
		{R: -10, G: -10, B: -10}, {R: 10, G: 10, B: 10},
	}
	g, err := lutgrid.New32(n, n, n, lutgrid.Color32{0, 0, 0}, lutgrid.Color32{1, 1, 1}, samples)
	if err != nil {
		t.Fatalf("lutgrid.New32: %v", err)
	}
	out, err := Trilinear32(g, 1, 0, 0)
	if err != nil {
		t.Fatalf("Trilinear32: %v", err)
	}
	if out.R > 1 || out.R < 0 {
		t.Errorf("R = %v, want clamped to [0,1]", out.R)
	}
}
