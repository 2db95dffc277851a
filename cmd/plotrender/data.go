package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// table holds the numeric columns of a CSV file, the first column is X.
type table struct {
	names []string
	cols  [][]float64
}

// readCSV reads comma, semicolon or tab separated columns. When the first row does not start with a number it holds the column names. Empty or malformed cells become NaN and break connected lines.
func readCSV(r io.Reader) (*table, error) {
	t := &table{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		cells := bytes.FieldsFunc(b, func(r rune) bool { return r == ',' || r == ';' || r == '\t' })
		if t.cols == nil {
			t.cols = make([][]float64, len(cells))
			if _, ok := parseCell(cells[0]); !ok {
				for _, cell := range cells {
					t.names = append(t.names, string(bytes.TrimSpace(cell)))
				}
				continue
			}
		}
		if len(cells) != len(t.cols) {
			return nil, fmt.Errorf("line %d: %d columns instead of %d", line, len(cells), len(t.cols))
		}
		for i, cell := range cells {
			v, ok := parseCell(cell)
			if !ok {
				v = math.NaN()
			}
			t.cols[i] = append(t.cols[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	} else if len(t.cols) < 2 || len(t.cols[0]) == 0 {
		return nil, fmt.Errorf("need at least two columns and one row")
	}
	for i := len(t.names); i < len(t.cols); i++ {
		t.names = append(t.names, fmt.Sprintf("y%d", i))
	}
	return t, nil
}

func parseCell(b []byte) (float64, bool) {
	b = bytes.TrimSpace(b)
	v, n := strconv.ParseFloat(b)
	return v, 0 < n && n == len(b)
}
