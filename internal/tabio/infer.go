// Package tabio reads tabular sources (CSV, XLSX, shapefiles, SQL query
// results) into frame datasets.
package tabio

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/featureset/internal/frame"
)

// timeLayouts are tried in order when inferring date cells from text.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// inferCell converts a textual cell into a typed value. Empty text is a
// missing cell; otherwise integer, float, boolean, and timestamp forms are
// tried before falling back to the string itself.
func inferCell(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return s
}

// datasetFromStringRows builds a dataset from a header row and textual data
// rows. Short rows are padded with missing cells; long rows are an error.
// When infer is false every non-empty cell stays a string.
func datasetFromStringRows(header []string, rows [][]string, infer bool) (*frame.Dataset, error) {
	cols := make([]frame.Column, len(header))
	for i, name := range header {
		cols[i] = frame.Column{Name: name, Values: make([]any, len(rows))}
	}

	for r, row := range rows {
		if len(row) > len(header) {
			return nil, eris.Errorf("tabio: row %d has %d cells, header has %d", r, len(row), len(header))
		}
		for c, cell := range row {
			if infer {
				cols[c].Values[r] = inferCell(cell)
			} else if cell != "" {
				cols[c].Values[r] = cell
			}
		}
	}

	return frame.New(cols...)
}

// columnsFromRows pivots row-wise records into frame columns.
func columnsFromRows(names []string, rows [][]any) []frame.Column {
	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = frame.Column{Name: name, Values: make([]any, len(rows))}
	}
	for r, row := range rows {
		for c := range names {
			if c < len(row) {
				cols[c].Values[r] = row[c]
			}
		}
	}
	return cols
}
