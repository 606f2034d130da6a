package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetColumns(t *testing.T) {
	ds := NewDataset([]float64{0, 1, 2}, []float64{3, 4, 5})

	assert.Equal(t, 3, ds.Len(), "sample count")
	assert.Nil(t, ds.AddColumn("Z", []string{"1", "2", "3"}), "add Z")
	assert.Nil(t, ds.AddFloatColumn("T", []float64{9, 8, 7}), "add T")
	assert.Equal(t, []string{"Z", "T"}, ds.Fields(), "field order")

	// duplicates and length mismatches are caught immediately
	assert.NotNil(t, ds.AddColumn("Z", []string{"0", "0", "0"}), "dup Z")
	assert.NotNil(t, ds.AddFloatColumn("Z", []float64{0, 0, 0}), "dup Z float")
	assert.NotNil(t, ds.AddColumn("W", []string{"1", "2"}), "short column")
	assert.Equal(t, []string{"Z", "T"}, ds.Fields(), "fields unchanged")
}

func TestFieldValues(t *testing.T) {
	ds := NewDataset([]float64{0, 1}, []float64{0, 1})
	err := ds.AddColumn("Rain", []string{"1.5", " 2.5\x00\x00"})
	if err != nil {
		t.Fatal(err.Error())
	}
	err = ds.AddColumn("Name", []string{"north", "south"})
	if err != nil {
		t.Fatal(err.Error())
	}
	err = ds.AddFloatColumn("Temp", []float64{20, 30})
	if err != nil {
		t.Fatal(err.Error())
	}

	vals, err := ds.FieldValues("Rain")
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, []float64{1.5, 2.5}, vals, "Rain values")

	// the parse is cached, so the second call returns the same slice
	again, err := ds.FieldValues("Rain")
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.True(t, &vals[0] == &again[0], "cached slice")

	vals, err = ds.FieldValues("Temp")
	if err != nil {
		t.Fatal(err.Error())
	}
	assert.Equal(t, []float64{20, 30}, vals, "Temp values")

	// a text column fails when asked for, not when loaded
	_, err = ds.FieldValues("Name")
	assert.NotNil(t, err, "text column")
	_, err = ds.FieldValues("Missing")
	assert.NotNil(t, err, "missing column")
}

func TestParseValue(t *testing.T) {
	table := []struct {
		s     string
		val   float64
		valid bool
	}{
		{"1.5", 1.5, true},
		{"-2", -2, true},
		{"1e3", 1000, true},
		{"  7 ", 7, true},
		{"3\x00\x00\x00", 3, true},
		{"****", 0, false},
		{"**4**", 4, true},
		{"", 0, false},
		{"north", 0, false},
	}

	for i, test := range table {
		val, err := parseValue(test.s)
		if test.valid && err != nil {
			t.Errorf("%d) Expected %q to parse, but got error '%s'.",
				i, test.s, err.Error())
		} else if !test.valid && err == nil {
			t.Errorf("%d) Expected %q to fail, but got %g.", i, test.s, val)
		} else if test.valid && val != test.val {
			t.Errorf("%d) Expected %q -> %g, but got %g.",
				i, test.s, test.val, val)
		}
	}
}

func TestCoordColumn(t *testing.T) {
	names := []string{"station", "long", "LAT", "Rain"}

	table := []struct {
		configured string
		candidates []string
		idx        int
		valid      bool
	}{
		{"", xNames, 1, true},
		{"", yNames, 2, true},
		{"Rain", xNames, 3, true},
		{"STATION", xNames, 0, true},
		{"easting", xNames, -1, false},
		{"", []string{"Elev"}, -1, false},
	}

	for i, test := range table {
		idx, err := coordColumn(names, test.configured, test.candidates)
		if test.valid && err != nil {
			t.Errorf("%d) Expected success, but got error '%s'.",
				i, err.Error())
		} else if !test.valid && err == nil {
			t.Errorf("%d) Expected an error, but got index %d.", i, idx)
		} else if test.valid && idx != test.idx {
			t.Errorf("%d) Expected index %d, but got %d.", i, test.idx, idx)
		}
	}
}

func TestIsCoordName(t *testing.T) {
	table := []struct {
		name string
		res  bool
	}{
		{"Long", true},
		{"LONGITUDE", true},
		{"x", true},
		{"lat", true},
		{"Y", true},
		{"Rain", false},
		{"Xs", false},
		{"", false},
	}

	for i, test := range table {
		if res := isCoordName(test.name); res != test.res {
			t.Errorf("%d) Expected isCoordName(%q) = %v, but got %v.",
				i, test.name, test.res, res)
		}
	}
}
