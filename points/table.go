package points

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// TableSource reads point samples from a whitespace separated text table,
// the format halo catalogs and other plain numeric dumps come in. Such
// files carry no column names of their own, so the caller supplies a name
// for every attribute column it wants along with its 0-based index.
type TableSource struct {
	Path       string
	XCol, YCol int
	Names      []string
	Cols       []int
}

func (src *TableSource) Read() (*Dataset, error) {
	if len(src.Names) != len(src.Cols) {
		return nil, fmt.Errorf(
			"%d column names were given for %d column indices.",
			len(src.Names), len(src.Cols),
		)
	}

	colIdxs := append([]int{src.XCol, src.YCol}, src.Cols...)
	cols, err := table.ReadTable(src.Path, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(cols[0], cols[1])
	for i, name := range src.Names {
		if err := ds.AddFloatColumn(name, cols[i+2]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// Typechecking
var (
	_ Source = &TableSource{ }
)
