package idwmap

import (
	"runtime"

	"github.com/ctessum/sparse"

	"github.com/phil-mansfield/idwmap/grid"
)

// Config holds the parameters of one interpolation run. Managers copy
// what they need out of it, so several Managers with different
// parameters can run at the same time.
type Config struct {
	// Power is the exponent of the inverse distance weights.
	Power float64
	// Radius is the distance past which samples stop contributing to a
	// cell. Zero or negative turns the cutoff off and lets every sample
	// contribute everywhere.
	Radius float64
	// CellSize is the spacing of the output grid in coordinate units.
	CellSize float64
	// NoData is the value left in cells that no sample supports.
	NoData float64
	// Exclude lists attribute fields that should not be interpolated.
	Exclude []string
	// Workers is the number of goroutines interpolating each field.
	// Zero or negative means one per CPU.
	Workers int
}

// DefaultConfig returns the standard run parameters.
func DefaultConfig() Config {
	return Config{
		Power:    2,
		Radius:   1,
		CellSize: 0.01,
		Workers:  runtime.NumCPU(),
	}
}

// Surface is one attribute field interpolated onto a grid. Data is
// indexed [row][column] with row 0 at the grid's y minimum.
type Surface struct {
	Field string
	Data  *sparse.DenseArray
}

// Result holds everything one interpolation run produced. Fields lists
// the fields that actually interpolated, in dataset order: a field the
// dataset could not coerce to numbers is missing from it.
type Result struct {
	Grid     *grid.Grid
	SR       string
	Fields   []string
	Surfaces map[string]*Surface
}
