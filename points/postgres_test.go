package points

import (
	"testing"
)

func TestCellString(t *testing.T) {
	table := []struct {
		cell interface{}
		s    string
	}{
		{nil, ""},
		{[]byte("north"), "north"},
		{"south", "south"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{int64(-3), "-3"},
		{true, "true"},
	}

	for i, test := range table {
		if s := cellString(test.cell); s != test.s {
			t.Errorf("%d) Expected %v (%T) -> %q, but got %q.",
				i, test.cell, test.cell, test.s, s)
		}
	}
}

func TestCellFloat(t *testing.T) {
	table := []struct {
		cell  interface{}
		val   float64
		valid bool
	}{
		{1.5, 1.5, true},
		{int64(7), 7, true},
		{[]byte("2.25"), 2.25, true},
		{"-3", -3, true},
		{"north", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}

	for i, test := range table {
		val, err := cellFloat(test.cell)
		if test.valid && err != nil {
			t.Errorf("%d) Expected %v (%T) to convert, but got error '%s'.",
				i, test.cell, test.cell, err.Error())
		} else if !test.valid && err == nil {
			t.Errorf("%d) Expected %v (%T) to fail, but got %g.",
				i, test.cell, test.cell, val)
		} else if test.valid && val != test.val {
			t.Errorf("%d) Expected %v (%T) -> %g, but got %g.",
				i, test.cell, test.cell, test.val, val)
		}
	}
}
