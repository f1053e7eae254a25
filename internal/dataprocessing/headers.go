package dataprocessing

import (
	"fmt"
	"strings"
)

// FlatColumn ties a reconstructed column name to its position in the sheet,
// so dropped spacer columns never shift the alignment between header and data.
type FlatColumn struct {
	// Index is the zero-based column index in the sheet row.
	Index int
	// Name is the flattened identifier, outer and inner label joined by the
	// separator. For single-header sheets it is just the inner label.
	Name string
}

// ForwardFill replaces every blank entry with the nearest preceding non-blank
// value. Leading blanks have nothing to inherit and stay blank. The input is
// not modified.
func ForwardFill(labels []string) []string {
	filled := make([]string, len(labels))
	last := ""
	for i, label := range labels {
		if strings.TrimSpace(label) != "" {
			last = strings.TrimSpace(label)
		}
		filled[i] = last
	}
	return filled
}

// ReconstructHeader builds flat column names from two stacked header rows.
// The outer row carries merged group labels, present only in the first cell
// of each group; it is forward-filled. Columns whose inner label is blank are
// spacers and are dropped. firstCol skips the leading identifier columns.
func ReconstructHeader(outer, inner []string, firstCol int, sep string) []FlatColumn {
	width := len(inner)
	if len(outer) > width {
		width = len(outer)
	}

	outerFilled := ForwardFill(padTo(outer, width))
	innerPadded := padTo(inner, width)

	var columns []FlatColumn
	for i := firstCol; i < width; i++ {
		innerLabel := strings.TrimSpace(innerPadded[i])
		if innerLabel == "" {
			continue
		}
		name := innerLabel
		if outerFilled[i] != "" {
			name = outerFilled[i] + sep + innerLabel
		}
		columns = append(columns, FlatColumn{Index: i, Name: name})
	}
	return columns
}

// SingleHeader builds flat columns from one header row, skipping blank cells.
func SingleHeader(header []string, firstCol int) []FlatColumn {
	var columns []FlatColumn
	for i := firstCol; i < len(header); i++ {
		label := strings.TrimSpace(header[i])
		if label == "" {
			continue
		}
		columns = append(columns, FlatColumn{Index: i, Name: label})
	}
	return columns
}

// SplitFlatName recovers the outer and inner labels from a flattened column
// name built by ReconstructHeader.
func SplitFlatName(name, sep string) (outer, inner string, err error) {
	parts := strings.SplitN(name, sep, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("column name %q does not split on %q", name, sep)
	}
	return parts[0], parts[1], nil
}

// padTo extends a row with empty cells so ragged excelize rows can be indexed
// uniformly.
func padTo(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
