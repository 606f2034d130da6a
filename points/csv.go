package points

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads point samples from a comma separated file with a header
// row. XColumn and YColumn name the coordinate columns; when left empty
// the conventional Long/Lat style names are searched for instead. Every
// remaining column becomes an attribute field.
type CSVSource struct {
	Path             string
	XColumn, YColumn string
}

func (src *CSVSource) Read() (*Dataset, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf(
			"Cannot read the header row of %s: %s", src.Path, err.Error(),
		)
	}

	xi, err := coordColumn(header, src.XColumn, xNames)
	if err != nil {
		return nil, err
	}
	yi, err := coordColumn(header, src.YColumn, yNames)
	if err != nil {
		return nil, err
	}
	if xi == yi {
		return nil, fmt.Errorf(
			"'%s' was chosen as both the x and y column of %s.",
			header[xi], src.Path,
		)
	}

	var x, y []float64
	rawCols := make([][]string, len(header))

	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf(
				"Cannot read row %d of %s: %s", row, src.Path, err.Error(),
			)
		}

		px, err := parseValue(rec[xi])
		if err != nil {
			return nil, fmt.Errorf(
				"Row %d of %s: coordinate %q in column '%s' is not a number.",
				row, src.Path, rec[xi], header[xi],
			)
		}
		py, err := parseValue(rec[yi])
		if err != nil {
			return nil, fmt.Errorf(
				"Row %d of %s: coordinate %q in column '%s' is not a number.",
				row, src.Path, rec[yi], header[yi],
			)
		}

		x, y = append(x, px), append(y, py)
		for i, cell := range rec {
			if i == xi || i == yi {
				continue
			}
			rawCols[i] = append(rawCols[i], cell)
		}
	}

	ds := NewDataset(x, y)
	for i, name := range header {
		if i == xi || i == yi {
			continue
		}
		if err := ds.AddColumn(name, rawCols[i]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// Typechecking
var (
	_ Source = &CSVSource{ }
)
