/*package kernel estimates the values of scattered point samples at the
cells of a regular grid by inverse distance weighting.
*/
package kernel

import (
	"math"

	"github.com/phil-mansfield/idwmap/grid"
)

type Interpolator interface {
	// Interpolate writes an estimate into buf for every grid cell index in
	// [low, high) which is separated from low by a multiple of jump. Cells
	// with no sample support are left at whatever value buf already holds.
	// Callers may run Interpolate concurrently as long as no two calls
	// share a cell index.
	Interpolate(buf []float64, g *grid.Grid, low, high, jump int)
}

// InverseDistance weights every sample by 1/d^power, normalizes the
// weights to a convex combination, and sums. A positive radius excludes
// samples strictly farther than that distance from the target point. A
// radius of zero or below disables the cutoff and lets every sample
// contribute no matter how far away it is.
type InverseDistance struct {
	xs, ys, vals []float64
	power        float64
	r2           float64
}

// NewInverseDistance creates an InverseDistance kernel over the given
// samples. The slices are retained, not copied, and must not be mutated
// while the kernel is in use.
func NewInverseDistance(
	xs, ys, vals []float64, power, radius float64,
) *InverseDistance {
	intr := &InverseDistance{xs: xs, ys: ys, vals: vals, power: power}
	if radius > 0 {
		intr.r2 = radius * radius
	}
	return intr
}

// ValueAt returns the interpolated value at the point (x, y). ok is false
// when no sample yields a usable weight there, which happens when the
// cutoff excludes everything or every weight underflows to zero.
func (intr *InverseDistance) ValueAt(x, y float64) (v float64, ok bool) {
	sumW, sumWV := 0.0, 0.0

	for i, sx := range intr.xs {
		dx, dy := x-sx, y-intr.ys[i]
		d2 := dx*dx + dy*dy

		// A sample sitting exactly on the target would get an infinite
		// weight, so short-circuit to its value instead.
		if d2 == 0 {
			return intr.vals[i], true
		}
		if intr.r2 > 0 && d2 > intr.r2 {
			continue
		}

		var w float64
		if intr.power == 2 {
			w = 1 / d2
		} else {
			w = 1 / math.Pow(math.Sqrt(d2), intr.power)
		}
		// Only strictly positive, finite weights are retained.
		if w <= 0 || math.IsInf(w, +1) || math.IsNaN(w) {
			continue
		}

		sumW += w
		sumWV += w * intr.vals[i]
	}

	if sumW == 0 {
		return 0, false
	}
	return sumWV / sumW, true
}

func (intr *InverseDistance) Interpolate(
	buf []float64, g *grid.Grid, low, high, jump int,
) {
	for idx := low; idx < high; idx += jump {
		x, y := g.CellCoords(idx)
		if v, ok := intr.ValueAt(x, y); ok {
			buf[idx] = v
		}
	}
}

// Typechecking
var (
	_ Interpolator = &InverseDistance{ }
)
