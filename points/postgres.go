package points

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSource reads point samples from a Postgres table. Every column
// other than the coordinate pair becomes an attribute field. Cell values
// are normalized back to text so numeric coercion behaves exactly the way
// it does for file sources: a text column is a recoverable field error,
// not a dead dataset.
type PostgresSource struct {
	// ConnInfo is a connection string of the usual
	// "host=... dbname=... user=..." form.
	ConnInfo         string
	Table            string
	XColumn, YColumn string
}

func (src *PostgresSource) Read() (*Dataset, error) {
	db, err := sqlx.Connect("postgres", src.ConnInfo)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Queryx("SELECT * FROM " + pq.QuoteIdentifier(src.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	xi, err := coordColumn(names, src.XColumn, xNames)
	if err != nil {
		return nil, err
	}
	yi, err := coordColumn(names, src.YColumn, yNames)
	if err != nil {
		return nil, err
	}

	var x, y []float64
	rawCols := make([][]string, len(names))

	for row := 0; rows.Next(); row++ {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}

		px, err := cellFloat(cells[xi])
		if err != nil {
			return nil, fmt.Errorf(
				"Row %d of table %s: column '%s': %s",
				row, src.Table, names[xi], err.Error(),
			)
		}
		py, err := cellFloat(cells[yi])
		if err != nil {
			return nil, fmt.Errorf(
				"Row %d of table %s: column '%s': %s",
				row, src.Table, names[yi], err.Error(),
			)
		}

		x, y = append(x, px), append(y, py)
		for i, cell := range cells {
			if i == xi || i == yi {
				continue
			}
			rawCols[i] = append(rawCols[i], cellString(cell))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ds := NewDataset(x, y)
	for i, name := range names {
		if i == xi || i == yi {
			continue
		}
		if err := ds.AddColumn(name, rawCols[i]); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// cellString renders a driver cell value as the text the same value would
// have had in a file source.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// cellFloat converts a driver cell value to a float64 or explains why it
// cannot be one.
func cellFloat(cell interface{}) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case []byte:
		return parseValue(string(v))
	case string:
		return parseValue(v)
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", cell, cell)
	}
}

// Typechecking
var (
	_ Source = &PostgresSource{ }
)
