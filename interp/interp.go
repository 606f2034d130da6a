/*package interp ties the point sources, the interpolation Manager, and
the raster writers together for the command line tool.
*/
package interp

import (
	"fmt"
	"math"
	"os"
	"path"
	"strings"

	"github.com/phil-mansfield/idwmap"
	"github.com/phil-mansfield/idwmap/kernel"
	"github.com/phil-mansfield/idwmap/points"
	"github.com/phil-mansfield/idwmap/raster"
)

// NewSource builds the point source an Interpolate config names.
func NewSource(con *InterpolateConfig, in *InputConfig) (points.Source, error) {
	format := in.Format
	if format == "" {
		var err error
		if format, err = inferFormat(con.Input); err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(format) {
	case "shapefile":
		return &points.ShapefileSource{
			Path: con.Input, XColumn: in.XColumn, YColumn: in.YColumn,
		}, nil
	case "csv":
		return &points.CSVSource{
			Path: con.Input, XColumn: in.XColumn, YColumn: in.YColumn,
		}, nil
	case "table":
		return &points.TableSource{
			Path: con.Input,
			XCol: in.XColumnIndex, YCol: in.YColumnIndex,
			Names: in.Columns, Cols: in.ColumnIndexes,
		}, nil
	case "postgres":
		return &points.PostgresSource{
			ConnInfo: in.ConnInfo, Table: con.Input,
			XColumn: in.XColumn, YColumn: in.YColumn,
		}, nil
	}

	return nil, fmt.Errorf("Unsupported input format '%s'.", format)
}

// inferFormat guesses an input format from a file extension.
func inferFormat(input string) (string, error) {
	switch strings.ToLower(path.Ext(input)) {
	case ".shp":
		return "Shapefile", nil
	case ".csv":
		return "CSV", nil
	case ".txt", ".dat", ".table":
		return "Table", nil
	}
	return "", fmt.Errorf(
		"Cannot infer an input format from '%s'. Set 'Format' in the "+
			"[Input] section.", input,
	)
}

// Config converts the file level configuration into run parameters.
func (con *InterpolateConfig) Config() idwmap.Config {
	cfg := idwmap.DefaultConfig()
	cfg.Power = con.Power
	cfg.Radius = con.Radius
	cfg.CellSize = con.CellSize
	cfg.Exclude = con.Exclude
	if nd := con.NoData(); nd != nil {
		cfg.NoData = *nd
	}
	return cfg
}

// WriteRasters writes one raster per interpolated field into the output
// directory. Fields the run skipped get no file at all.
func WriteRasters(res *idwmap.Result, con *InterpolateConfig) error {
	if err := os.MkdirAll(con.Output, 0777); err != nil {
		return err
	}

	for _, field := range res.Fields {
		w, ext := newWriter(con, res.SR, field)
		name := con.PrependName + "field_" + field + con.AppendName + ext
		err := w.Write(
			path.Join(con.Output, name),
			res.Grid, res.Surfaces[field].Data.Elements,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// newWriter picks the writer for the configured output format along with
// the extension its files get.
func newWriter(
	con *InterpolateConfig, sr, field string,
) (raster.Writer, string) {
	switch strings.ToLower(con.OutputFormat) {
	case "ascii":
		return &raster.ESRIASCII{SR: sr, NoData: con.NoData()}, ".asc"
	case "png":
		return &raster.PNG{Title: field}, ".png"
	}
	return &raster.GeoTIFF{
		SR: sr, NoData: con.NoData(), Compress: con.Compress,
	}, ".TIF"
}

// Transect samples one field along the segment between a transect's
// endpoints, interpolating straight from the samples rather than from a
// rasterized grid. It returns the distance along the segment and the
// value at each of the transect's points.
func Transect(
	ds *points.Dataset, cfg idwmap.Config, tc *TransectConfig,
) (dist, vals []float64, err error) {
	fieldVals, err := ds.FieldValues(tc.Field)
	if err != nil {
		return nil, nil, err
	}

	intr := kernel.NewInverseDistance(
		ds.X, ds.Y, fieldVals, cfg.Power, cfg.Radius,
	)

	dx, dy := tc.X1-tc.X0, tc.Y1-tc.Y0
	length := math.Sqrt(dx*dx + dy*dy)

	dist = make([]float64, tc.Points)
	vals = make([]float64, tc.Points)
	for i := range dist {
		t := float64(i) / float64(tc.Points-1)
		v, ok := intr.ValueAt(tc.X0+t*dx, tc.Y0+t*dy)
		if !ok {
			v = cfg.NoData
		}
		dist[i], vals[i] = t*length, v
	}

	return dist, vals, nil
}
