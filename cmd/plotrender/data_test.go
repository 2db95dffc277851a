package main

import (
	"math"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestReadCSV(t *testing.T) {
	tbl, err := readCSV(strings.NewReader("# comment\nt, a; b\n0,1,2\n1,-1.5,x\n\n2\t3e2\t4\n"))
	test.Error(t, err)
	test.T(t, tbl.names, []string{"t", "a", "b"})
	test.T(t, len(tbl.cols), 3)
	test.Floats(t, tbl.cols[0], []float64{0.0, 1.0, 2.0})
	test.Floats(t, tbl.cols[1], []float64{1.0, -1.5, 300.0})
	test.That(t, math.IsNaN(tbl.cols[2][1]), "malformed cell")

	tbl, err = readCSV(strings.NewReader("0,1\n1,2\n"))
	test.Error(t, err)
	test.T(t, tbl.names, []string{"y0", "y1"})

	_, err = readCSV(strings.NewReader("0,1\n1\n"))
	test.That(t, err != nil, "ragged rows")
	_, err = readCSV(strings.NewReader("x,y\n"))
	test.That(t, err != nil, "no rows")
}
