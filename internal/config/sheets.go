package config

// The OECD workbook layouts are pinned to the publisher's current sheet
// geometry. A change in the number of countries or years in the source
// requires updating these constants; the parser fails fast on a mismatch
// instead of guessing.

const (
	// MissingMarker is the literal the source uses for an absent value. It is
	// decoded as null, never as zero.
	MissingMarker = ".."

	// HeaderSep joins the outer and inner header labels into one flat column
	// name, and splits them back apart during the wide-to-long reshape.
	HeaderSep = "|"
)

// SheetLayout pins one sheet's geometry. All indices are zero-based and refer
// to the row/column grid returned by excelize.
type SheetLayout struct {
	// Name is the sheet name inside the workbook.
	Name string
	// HeaderRows are the stacked header rows, outer group label first.
	HeaderRows []int
	// DataStart and DataEnd bound the data body, both inclusive.
	DataStart int
	DataEnd   int
	// IDCols is the number of leading identifier columns (country, tenure).
	IDCols int
	// Rescale multiplies every parsed value; percentage sheets use 0.01 to
	// store fractions.
	Rescale float64
}

var (
	// TenureTrendsLayout covers the tenure-by-country-and-year sheet: rows are
	// country x tenure-mode blocks, columns are years under a single header
	// row. 44 countries x 5 tenure modes.
	TenureTrendsLayout = SheetLayout{
		Name:       "HM1.3.A1",
		HeaderRows: []int{3},
		DataStart:  5,
		DataEnd:    224,
		IDCols:     2,
		Rescale:    0.01,
	}

	// TenureIncomeLayout covers the tenure-by-income sheet: rows are country x
	// tenure-type blocks, columns carry a two-row merged header with the
	// income quintile above the year.
	TenureIncomeLayout = SheetLayout{
		Name:       "HM1.3.A2",
		HeaderRows: []int{3, 4},
		DataStart:  6,
		DataEnd:    225,
		IDCols:     2,
		Rescale:    0.01,
	}
)
