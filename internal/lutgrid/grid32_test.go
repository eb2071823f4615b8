package lutgrid

import (
	"math"
	"testing"
)

func identitySamples32(n int) []Color32 {
	samples := make([]Color32, n*n*n)
	for ib := 0; ib < n; ib++ {
		for ig := 0; ig < n; ig++ {
			for ir := 0; ir < n; ir++ {
				samples[ib*n*n+ig*n+ir] = Color32{
					R: float32(ir) / float32(n-1),
					G: float32(ig) / float32(n-1),
					B: float32(ib) / float32(n-1),
				}
			}
		}
	}
	return samples
}

func TestNew32_ValidGrid(t *testing.T) {
	g, err := New32(2, 2, 2, Color32{0, 0, 0}, Color32{1, 1, 1}, identitySamples32(2))
	if err != nil {
		t.Fatalf("New32: %v", err)
	}
	rr, rg, rb := g.Res()
	if rr != 2 || rg != 2 || rb != 2 {
		t.Errorf("Res() = %d,%d,%d, want 2,2,2", rr, rg, rb)
	}
	if got := g.Sample(1, 0, 0); got != (Color32{1, 0, 0}) {
		t.Errorf("Sample(1,0,0) = %v, want {1,0,0}", got)
	}
}

func TestNew32_RejectsShapeMismatch(t *testing.T) {
	samples := identitySamples32(2)[:7]
	if _, err := New32(2, 2, 2, Color32{}, Color32{1, 1, 1}, samples); err != ErrGridShape {
		t.Errorf("got %v, want ErrGridShape", err)
	}
}

func TestNew32_RejectsNaNSample(t *testing.T) {
	samples := identitySamples32(2)
	samples[3].G = float32(math.NaN())
	if _, err := New32(2, 2, 2, Color32{}, Color32{1, 1, 1}, samples); err != ErrGridDomain {
		t.Errorf("got %v, want ErrGridDomain", err)
	}
}

func TestNew32_RejectsInvertedDomain(t *testing.T) {
	samples := identitySamples32(2)
	if _, err := New32(2, 2, 2, Color32{1, 0, 0}, Color32{0, 1, 1}, samples); err != ErrGridDomain {
		t.Errorf("got %v, want ErrGridDomain", err)
	}
}

func TestNew32_RejectsResolutionAboveMax(t *testing.T) {
	n := maxRes + 1
	if _, err := New32(n, 2, 2, Color32{}, Color32{1, 1, 1}, make([]Color32, n*2*2)); err != ErrGridShape {
		t.Errorf("got %v, want ErrGridShape", err)
	}
}

func TestToGrid32_NarrowsIndependently(t *testing.T) {
	g, err := New(2, 2, 2, Color{0, 0, 0}, Color{1, 1, 1}, identitySamples(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g32 := g.ToGrid32()
	rr, rg, rb := g32.Res()
	if rr != 2 || rg != 2 || rb != 2 {
		t.Errorf("Res() = %d,%d,%d, want 2,2,2", rr, rg, rb)
	}
	want := Color32{R: 1, G: 0, B: 0}
	if got := g32.Sample(1, 0, 0); got != want {
		t.Errorf("Sample(1,0,0) = %v, want %v", got, want)
	}
	if g32.DomainMax() != (Color32{1, 1, 1}) {
		t.Errorf("DomainMax() = %v, want {1,1,1}", g32.DomainMax())
	}
}
