/*package points loads scattered point datasets from vector files, text
tables, and databases, and negotiates which of their columns are
coordinates and which are attribute fields.
*/
package points

import (
	"fmt"
	"strconv"
	"strings"
)

// Source is a one-shot loader for a point dataset.
type Source interface {
	Read() (*Dataset, error)
}

// Dataset is one loaded set of point samples: a coordinate pair per sample
// plus zero or more named attribute columns. Attribute values stay in
// their raw text form until a field is first asked for, so a column that
// cannot be coerced to numbers only fails when it is interpolated, not
// when the file is read.
type Dataset struct {
	X, Y []float64
	// SR is the spatial reference of the coordinates as WKT text. It is
	// carried through to exporters unmodified and may be empty.
	SR string

	fields []string
	cols   map[string]*column
}

type column struct {
	raw  []string
	vals []float64
}

// NewDataset creates a Dataset around the given sample coordinates.
func NewDataset(x, y []float64) *Dataset {
	return &Dataset{X: x, Y: y, cols: map[string]*column{}}
}

// Len returns the number of samples in the dataset.
func (ds *Dataset) Len() int { return len(ds.X) }

// Fields returns the attribute-field names in the order the source
// supplied them.
func (ds *Dataset) Fields() []string { return ds.fields }

// AddColumn appends an attribute column of raw cell text.
func (ds *Dataset) AddColumn(name string, raw []string) error {
	if err := ds.checkColumn(name, len(raw)); err != nil {
		return err
	}
	ds.fields = append(ds.fields, name)
	ds.cols[name] = &column{raw: raw}
	return nil
}

// AddFloatColumn appends an attribute column which is already numeric.
func (ds *Dataset) AddFloatColumn(name string, vals []float64) error {
	if err := ds.checkColumn(name, len(vals)); err != nil {
		return err
	}
	ds.fields = append(ds.fields, name)
	ds.cols[name] = &column{vals: vals}
	return nil
}

func (ds *Dataset) checkColumn(name string, n int) error {
	if _, ok := ds.cols[name]; ok {
		return fmt.Errorf("The dataset already has a column named '%s'.", name)
	}
	if n != ds.Len() {
		return fmt.Errorf(
			"Column '%s' has %d values, but the dataset has %d samples.",
			name, n, ds.Len(),
		)
	}
	return nil
}

// FieldValues coerces one attribute field to numbers. The parse is cached,
// so asking for the same field twice does the work once.
func (ds *Dataset) FieldValues(name string) ([]float64, error) {
	col, ok := ds.cols[name]
	if !ok {
		return nil, fmt.Errorf("The dataset has no field named '%s'.", name)
	}
	if col.vals != nil {
		return col.vals, nil
	}

	vals := make([]float64, len(col.raw))
	for i, s := range col.raw {
		v, err := parseValue(s)
		if err != nil {
			return nil, fmt.Errorf(
				"Field '%s' is not numeric: row %d holds %q.", name, i, s,
			)
		}
		vals[i] = v
	}

	col.vals = vals
	return vals, nil
}

// parseValue converts one raw cell to a float after trimming the null
// padding and fill markers some dataset writers leave behind.
func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.Trim(s, "\x00* \t"), 64)
}

// Conventional coordinate column names, tried in order when the caller
// does not name the columns explicitly.
var (
	xNames = []string{"Long", "Lon", "Longitude", "X"}
	yNames = []string{"Lat", "Latitude", "Y"}
)

// coordColumn finds the index of a coordinate column: the configured name
// when one is given, otherwise the first case-insensitive match among the
// conventional candidates.
func coordColumn(
	names []string, configured string, candidates []string,
) (int, error) {
	if configured != "" {
		for i, name := range names {
			if strings.EqualFold(name, configured) {
				return i, nil
			}
		}
		return -1, fmt.Errorf(
			"No column named '%s' among the dataset columns %v.",
			configured, names,
		)
	}

	for _, cand := range candidates {
		for i, name := range names {
			if strings.EqualFold(name, cand) {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf(
		"Cannot find a coordinate column like %v among the dataset "+
			"columns %v.", candidates, names,
	)
}

// isCoordName reports whether an attribute column name looks like one of
// the conventional coordinate columns. Sources that take coordinates from
// geometry drop such columns so the redundant copies are not interpolated.
func isCoordName(name string) bool {
	for _, cand := range xNames {
		if strings.EqualFold(name, cand) {
			return true
		}
	}
	for _, cand := range yNames {
		if strings.EqualFold(name, cand) {
			return true
		}
	}
	return false
}
