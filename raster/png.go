package raster

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/idwmap/grid"
)

// PNG writes surfaces as heat map images. The output is a quick look
// preview, not a georeferenced raster.
type PNG struct {
	// Title is drawn over the image, usually the field name.
	Title string
}

func (w *PNG) Write(fname string, g *grid.Grid, vals []float64) error {
	if err := checkDims(g, vals); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = w.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	p.Add(plotter.NewHeatMap(surfaceGrid{g, vals}, palette.Heat(12, 1)))

	return p.Save(6*vg.Inch, 6*vg.Inch, fname)
}

// surfaceGrid adapts a grid and its cell values to the plotter's grid
// interface. Cell centers are the plotted coordinates, so no row
// flipping happens here: the plot's y axis already increases upward.
type surfaceGrid struct {
	g    *grid.Grid
	vals []float64
}

func (sg surfaceGrid) Dims() (int, int)   { return sg.g.Nx, sg.g.Ny }
func (sg surfaceGrid) Z(c, r int) float64 { return sg.vals[sg.g.Idx(c, r)] }

func (sg surfaceGrid) X(c int) float64 {
	return sg.g.XMin + (float64(c)+0.5)*sg.g.CellSize
}

func (sg surfaceGrid) Y(r int) float64 {
	return sg.g.YMin + (float64(r)+0.5)*sg.g.CellSize
}

// Typechecking
var (
	_ Writer          = &PNG{ }
	_ plotter.GridXYZ = surfaceGrid{ }
)
