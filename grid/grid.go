package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid provides an interface for reasoning over a 1D value slice as if it
// were a 2D lattice of target points laid over the bounding extent of a
// point set. Rows step in y from YMin upward, columns step in x from XMin
// rightward, both by CellSize. The lattice covers [min, max) along each
// axis, so a coordinate exactly at the upper bound does not get a cell.
type Grid struct {
	XMin, YMin, XMax, YMax float64
	CellSize               float64
	Nx, Ny                 int
}

// Bound returns the Grid spanning the bounding extent of the given sample
// coordinates at the given cell size. It fails if no samples are given, if
// the coordinate slices are mismatched, or if cellSize is not positive.
func Bound(xs, ys []float64, cellSize float64) (*Grid, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("Cannot bound a grid around zero samples.")
	} else if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"Sample slice lengths do not match: %d xs, %d ys.",
			len(xs), len(ys),
		)
	} else if cellSize <= 0 {
		return nil, fmt.Errorf("Cell size is %g, must be positive.", cellSize)
	}

	g := &Grid{}
	g.Init(
		floats.Min(xs), floats.Min(ys),
		floats.Max(xs), floats.Max(ys), cellSize,
	)
	return g, nil
}

// Init initializes a Grid instance over an explicit extent. A degenerate
// axis (max == min) still gets a single cell at the min coordinate so that
// point-like extents interpolate instead of vanishing.
func (g *Grid) Init(xMin, yMin, xMax, yMax, cellSize float64) {
	g.XMin, g.YMin = xMin, yMin
	g.XMax, g.YMax = xMax, yMax
	g.CellSize = cellSize

	g.Nx = cellCount(xMin, xMax, cellSize)
	g.Ny = cellCount(yMin, yMax, cellSize)
}

func cellCount(min, max, cellSize float64) int {
	n := int(math.Ceil((max - min) / cellSize))
	if n < 1 {
		n = 1
	}
	return n
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int { return g.Nx * g.Ny }

// Idx returns the flattened grid index corresponding to a pair of cell
// indices.
func (g *Grid) Idx(ix, iy int) int { return ix + iy*g.Nx }

// Coords returns the ix, iy cell indices of a point from its grid index.
func (g *Grid) Coords(idx int) (ix, iy int) {
	return idx % g.Nx, idx / g.Nx
}

// CellCoords returns the world coordinates of the target point with the
// given flattened grid index.
func (g *Grid) CellCoords(idx int) (x, y float64) {
	ix, iy := g.Coords(idx)
	return g.XMin + float64(ix)*g.CellSize, g.YMin + float64(iy)*g.CellSize
}

// Xs returns the x coordinates of every column of the grid.
func (g *Grid) Xs() []float64 {
	xs := make([]float64, g.Nx)
	for i := range xs {
		xs[i] = g.XMin + float64(i)*g.CellSize
	}
	return xs
}

// Ys returns the y coordinates of every row of the grid.
func (g *Grid) Ys() []float64 {
	ys := make([]float64, g.Ny)
	for i := range ys {
		ys[i] = g.YMin + float64(i)*g.CellSize
	}
	return ys
}

// Origin returns the world coordinates of the upper left corner of the
// grid, the anchor of the raster transform. Rasters derived from the grid
// step rightward and downward from this corner.
func (g *Grid) Origin() (x, y float64) { return g.XMin, g.YMax }
