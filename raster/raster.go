/*package raster writes interpolated surfaces out as geospatial raster
files. Grids store their rows with y increasing, while raster formats
want the top row first, so every writer here walks the grid from its
last row down.
*/
package raster

import (
	"fmt"

	"github.com/phil-mansfield/idwmap/grid"
)

// Writer saves one surface of cell values laid out on a grid.
type Writer interface {
	Write(fname string, g *grid.Grid, vals []float64) error
}

func checkDims(g *grid.Grid, vals []float64) error {
	if len(vals) != g.Len() {
		return fmt.Errorf(
			"The surface has %d values, but the grid has %d cells.",
			len(vals), g.Len(),
		)
	}
	return nil
}

// topDown calls f once per raster row, top row first, with that row's
// cell values in left to right order. The slice passed to f is reused
// between calls.
func topDown(g *grid.Grid, vals []float64, f func(row []float64) error) error {
	row := make([]float64, g.Nx)
	for iy := g.Ny - 1; iy >= 0; iy-- {
		for ix := 0; ix < g.Nx; ix++ {
			row[ix] = vals[g.Idx(ix, iy)]
		}
		if err := f(row); err != nil {
			return err
		}
	}
	return nil
}
