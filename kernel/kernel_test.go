package kernel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/phil-mansfield/idwmap/grid"
)

func TestValueAt(t *testing.T) {
	table := []struct {
		xs, ys, vals  []float64
		power, radius float64
		x, y          float64
		v             float64
		ok            bool
	}{
		// Equidistant samples average out.
		{[]float64{0, 2}, []float64{0, 0}, []float64{10, 20},
			2, 0, 1, 0, 15, true},
		{[]float64{0, 0}, []float64{-1, 1}, []float64{4, 8},
			4, 0, 0, 0, 6, true},
		// A target on top of a sample takes its value exactly.
		{[]float64{0, 1}, []float64{0, 0}, []float64{10, 20},
			2, 0, 1, 0, 20, true},
		// A single sample fills everything with its own value.
		{[]float64{3}, []float64{4}, []float64{-2.5},
			2, 0, 100, -40, -2.5, true},
		// The cutoff drops the far sample entirely.
		{[]float64{0, 10}, []float64{0, 0}, []float64{1, 1000},
			2, 1, 0.5, 0, 1, true},
		// The cutoff can drop every sample.
		{[]float64{10, -10}, []float64{0, 0}, []float64{1, 2},
			2, 1, 0, 0, 0, false},
	}

	for i, test := range table {
		intr := NewInverseDistance(
			test.xs, test.ys, test.vals, test.power, test.radius,
		)
		v, ok := intr.ValueAt(test.x, test.y)

		if ok != test.ok {
			t.Errorf("%d) Expected ok = %v, got %v", i, test.ok, ok)
		}
		if math.Abs(v-test.v) > 1e-10 {
			t.Errorf("%d) Expected v = %g, got %g", i, test.v, v)
		}
	}
}

func TestWeightedTowardNearest(t *testing.T) {
	intr := NewInverseDistance(
		[]float64{0, 1, 0}, []float64{0, 0, 1}, []float64{10, 20, 30}, 2, 0,
	)

	v, ok := intr.ValueAt(0.1, 0.1)
	if !ok {
		t.Fatal("Expected a value near (0, 0)")
	}
	if math.Abs(v-10) >= math.Abs(v-20) || math.Abs(v-10) >= math.Abs(v-30) {
		t.Errorf("Expected value near (0, 0) to favor 10, got %g", v)
	}
}

func TestConvexCombination(t *testing.T) {
	rand.Seed(7)

	for i := 0; i < 100; i++ {
		n := rand.Intn(50) + 2
		xs, ys, vals := make([]float64, n), make([]float64, n), make([]float64, n)
		min, max := math.Inf(+1), math.Inf(-1)
		for j := range xs {
			xs[j] = rand.Float64() * 10
			ys[j] = rand.Float64() * 10
			vals[j] = rand.Float64()*200 - 100
			if vals[j] < min {
				min = vals[j]
			}
			if vals[j] > max {
				max = vals[j]
			}
		}

		power := []float64{1, 2, 3.5}[rand.Intn(3)]
		intr := NewInverseDistance(xs, ys, vals, power, 0)

		x, y := rand.Float64()*10, rand.Float64()*10
		v, ok := intr.ValueAt(x, y)
		if !ok {
			t.Fatalf("%d) Expected a value with the cutoff disabled", i)
		}
		if v < min-1e-9 || v > max+1e-9 {
			t.Errorf("%d) Value %g outside sample range [%g, %g]",
				i, v, min, max)
		}
	}
}

func TestPowerConvergence(t *testing.T) {
	// As power grows the nearest sample dominates, so the estimate must
	// approach its value.
	xs, ys := []float64{0, 1}, []float64{0, 0}
	vals := []float64{10, 20}
	x, y := 0.4, 0.0

	prevDiff := math.Inf(+1)
	for _, power := range []float64{2, 4, 8, 16, 32, 64} {
		intr := NewInverseDistance(xs, ys, vals, power, 0)
		v, ok := intr.ValueAt(x, y)
		if !ok {
			t.Fatalf("power = %g yielded no value", power)
		}

		diff := math.Abs(v - 10)
		if diff >= prevDiff {
			t.Errorf("power = %g: |v - 10| = %g did not shrink from %g",
				power, diff, prevDiff)
		}
		prevDiff = diff
	}

	if prevDiff > 1e-9 {
		t.Errorf("Expected convergence to the nearest sample, still %g away",
			prevDiff)
	}
}

func TestInterpolate(t *testing.T) {
	g := &grid.Grid{}
	g.Init(0, 0, 1, 1, 0.25)

	xs, ys := []float64{0.1, 0.9, 0.5}, []float64{0.1, 0.2, 0.9}
	vals := []float64{1, 2, 3}
	intr := NewInverseDistance(xs, ys, vals, 2, 0)

	// Strided writes across several workers must agree with direct
	// evaluation of every cell.
	jump := 3
	buf := make([]float64, g.Len())
	for low := 0; low < jump; low++ {
		intr.Interpolate(buf, g, low, g.Len(), jump)
	}

	for idx := 0; idx < g.Len(); idx++ {
		x, y := g.CellCoords(idx)
		v, ok := intr.ValueAt(x, y)
		if !ok {
			t.Fatalf("Cell %d has no support", idx)
		}
		if buf[idx] != v {
			t.Errorf("Cell %d: Expected %g, got %g", idx, v, buf[idx])
		}
	}
}

func TestInterpolateLeavesUnsupportedCells(t *testing.T) {
	g := &grid.Grid{}
	g.Init(0, 0, 2, 1, 1)

	// One sample within the cutoff of the cell at (0, 0), nothing within
	// reach of the cell at (1, 0).
	intr := NewInverseDistance(
		[]float64{0.25}, []float64{0}, []float64{5}, 2, 0.5,
	)

	fill := -9999.0
	buf := []float64{fill, fill}
	intr.Interpolate(buf, g, 0, g.Len(), 1)

	if buf[0] != 5 {
		t.Errorf("Expected supported cell to take the sample value, got %g",
			buf[0])
	}
	if buf[1] != fill {
		t.Errorf("Expected unsupported cell to keep its fill, got %g", buf[1])
	}
}

func BenchmarkInverseDistance(b *testing.B) {
	rand.Seed(11)

	n := 1000
	xs, ys, vals := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = rand.Float64()
		ys[i] = rand.Float64()
		vals[i] = rand.Float64()
	}

	g := &grid.Grid{}
	g.Init(0, 0, 1, 1, 0.1)
	buf := make([]float64, g.Len())
	intr := NewInverseDistance(xs, ys, vals, 2, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		intr.Interpolate(buf, g, 0, g.Len(), 1)
	}
}
