package raster

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phil-mansfield/idwmap/grid"
)

// ESRIASCII writes surfaces as Arc ASCII grids, the plain text raster
// format. The spatial reference, when there is one, goes in a .prj
// sidecar next to the grid file.
type ESRIASCII struct {
	SR     string
	NoData *float64
}

func (w *ESRIASCII) Write(fname string, g *grid.Grid, vals []float64) error {
	if err := checkDims(g, vals); err != nil {
		return err
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	fmt.Fprintf(buf, "ncols %d\n", g.Nx)
	fmt.Fprintf(buf, "nrows %d\n", g.Ny)
	fmt.Fprintf(buf, "xllcorner %s\n", formatCell(g.XMin))
	fmt.Fprintf(buf, "yllcorner %s\n", formatCell(g.YMin))
	fmt.Fprintf(buf, "cellsize %s\n", formatCell(g.CellSize))
	if w.NoData != nil {
		fmt.Fprintf(buf, "NODATA_value %s\n", formatCell(*w.NoData))
	}

	err = topDown(g, vals, func(row []float64) error {
		for i, v := range row {
			if i > 0 {
				if err := buf.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := buf.WriteString(formatCell(v)); err != nil {
				return err
			}
		}
		return buf.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	if w.SR == "" {
		return nil
	}
	base := strings.TrimSuffix(fname, filepath.Ext(fname))
	return ioutil.WriteFile(base+".prj", []byte(w.SR), 0644)
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Typechecking
var (
	_ Writer = &ESRIASCII{ }
)
