package points

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// writeTemp dumps body to a throwaway file and returns its path.
func writeTemp(t *testing.T, body string) string {
	f, err := ioutil.TempFile("", "idw_points")
	if err != nil {
		t.Fatal(err.Error())
	}
	if _, err := f.Write([]byte(body)); err != nil {
		t.Fatal(err.Error())
	}
	if err := f.Close(); err != nil {
		t.Fatal(err.Error())
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestCSVRead(t *testing.T) {
	path := writeTemp(t, `Station,Long,Lat,Rain,Temp
north,1.0,2.0,10,20.5
south,3.0,4.0,30,40.5
`)

	src := &CSVSource{Path: path}
	ds, err := src.Read()
	if err != nil {
		t.Fatal(err.Error())
	}

	assert.Equal(t, 2, ds.Len(), "sample count")
	assert.Equal(t, []float64{1, 3}, ds.X, "x")
	assert.Equal(t, []float64{2, 4}, ds.Y, "y")
	assert.Equal(t, []string{"Station", "Rain", "Temp"}, ds.Fields(), "fields")

	rain, err := ds.FieldValues("Rain")
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, []float64{10, 30}, rain, "Rain")

	// the text column loads fine and only fails when coerced
	_, err = ds.FieldValues("Station")
	assert.NotNil(t, err, "text field")
}

func TestCSVConfiguredColumns(t *testing.T) {
	path := writeTemp(t, `easting,northing,Elev
100,200,5
300,400,15
`)

	src := &CSVSource{Path: path, XColumn: "Easting", YColumn: "northing"}
	ds, err := src.Read()
	if err != nil {
		t.Fatal(err.Error())
	}

	assert.Equal(t, []float64{100, 300}, ds.X, "x")
	assert.Equal(t, []float64{200, 400}, ds.Y, "y")
	assert.Equal(t, []string{"Elev"}, ds.Fields(), "fields")
}

func TestCSVErrors(t *testing.T) {
	table := []struct {
		body             string
		xColumn, yColumn string
	}{
		// no coordinate columns to find
		{"a,b\n1,2\n", "", ""},
		// the same column chosen for both axes
		{"Long,Lat\n1,2\n", "Long", "Long"},
		// a coordinate cell which is not a number
		{"Long,Lat\noops,2\n", "", ""},
		// a ragged row
		{"Long,Lat,Rain\n1,2,3\n4,5\n", "", ""},
	}

	for i, test := range table {
		src := &CSVSource{
			Path:    writeTemp(t, test.body),
			XColumn: test.xColumn,
			YColumn: test.yColumn,
		}
		if _, err := src.Read(); err == nil {
			t.Errorf("%d) Expected an error, but the read succeeded.", i)
		}
	}

	src := &CSVSource{Path: "does_not_exist.csv"}
	if _, err := src.Read(); err == nil {
		t.Errorf("Expected an error for a missing file.")
	}
}
