package points

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// ShapefileSource reads point samples from an ESRI shapefile. Coordinates
// come from the point geometry unless both XColumn and YColumn name
// attribute columns, which covers datasets that carry their coordinates
// redundantly as Long/Lat attributes. Either way the coordinate columns
// are dropped from the attribute-field list. The .prj sidecar, when
// present, supplies the spatial reference.
type ShapefileSource struct {
	Path             string
	XColumn, YColumn string
}

func (src *ShapefileSource) Read() (*Dataset, error) {
	base := strings.TrimSuffix(src.Path, filepath.Ext(src.Path))

	names, err := dbfFieldNames(base + ".dbf")
	if err != nil {
		return nil, err
	}

	useCols := src.XColumn != "" && src.YColumn != ""
	xi, yi := -1, -1
	if useCols {
		if xi, err = coordColumn(names, src.XColumn, xNames); err != nil {
			return nil, err
		}
		if yi, err = coordColumn(names, src.YColumn, yNames); err != nil {
			return nil, err
		}
	}

	dec, err := shp.NewDecoder(src.Path)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var x, y []float64
	rawCols := make([][]string, len(names))

	for row := 0; ; row++ {
		g, fields, more := dec.DecodeRowFields(names...)
		if !more {
			break
		}

		var px, py float64
		if useCols {
			if px, err = parseValue(fields[names[xi]]); err != nil {
				return nil, fmt.Errorf(
					"Row %d of %s: coordinate %q in column '%s' is not "+
						"a number.", row, src.Path,
					fields[names[xi]], names[xi],
				)
			}
			if py, err = parseValue(fields[names[yi]]); err != nil {
				return nil, fmt.Errorf(
					"Row %d of %s: coordinate %q in column '%s' is not "+
						"a number.", row, src.Path,
					fields[names[yi]], names[yi],
				)
			}
		} else {
			switch pt := g.(type) {
			case geom.Point:
				px, py = pt.X, pt.Y
			case *geom.Point:
				px, py = pt.X, pt.Y
			default:
				return nil, fmt.Errorf(
					"Row %d of %s holds a %T, not a point.", row, src.Path, g,
				)
			}
		}

		x, y = append(x, px), append(y, py)
		for i, name := range names {
			rawCols[i] = append(rawCols[i], fields[name])
		}
	}
	if err := dec.Error(); err != nil {
		return nil, err
	}

	ds := NewDataset(x, y)
	ds.SR = srText(base + ".prj")

	for i, name := range names {
		if i == xi || i == yi {
			continue
		}
		// Geometry already supplied the coordinates, so redundant
		// coordinate columns would only show up as bogus fields.
		if !useCols && isCoordName(name) {
			continue
		}
		if err := ds.AddColumn(name, rawCols[i]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// srText returns the WKT stored in a .prj sidecar file, or "" if there is
// no such file. The text is never interpreted here, only carried along.
func srText(fname string) string {
	b, err := ioutil.ReadFile(fname)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// dbfFieldNames scans the header of a dBASE attribute table and returns
// its column names in file order. The decoder wants field names up front,
// and the format keeps them in fixed 32 byte descriptors between the file
// header and a 0x0d terminator.
func dbfFieldNames(fname string) ([]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hd := make([]byte, 32)
	if _, err := io.ReadFull(f, hd); err != nil {
		return nil, fmt.Errorf(
			"Cannot read the header of %s: %s", fname, err.Error(),
		)
	}

	headerLen := int(binary.LittleEndian.Uint16(hd[8:10]))
	n := (headerLen - 33) / 32
	if n <= 0 {
		return nil, fmt.Errorf("%s does not describe any columns.", fname)
	}

	names := make([]string, n)
	desc := make([]byte, 32)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(f, desc); err != nil {
			return nil, fmt.Errorf(
				"Cannot read column descriptor %d of %s: %s",
				i, fname, err.Error(),
			)
		}
		names[i] = string(bytes.TrimRight(desc[:11], "\x00"))
	}

	return names, nil
}

// Typechecking
var (
	_ Source = &ShapefileSource{ }
)
