package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tenurecli/internal/config"
	"tenurecli/pkg/contracts/domain"
)

// OpenWorkbook opens the downloaded OECD workbook.
func OpenWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, nil
}

// ParseTenureTrends extracts the tenure-by-country-and-year sheet into tidy
// observations. The sheet has a single header row of years and country x
// tenure-mode rows with the country printed only once per block.
func ParseTenureTrends(f *excelize.File, layout config.SheetLayout) ([]domain.Observation, error) {
	rows, err := sheetRows(f, layout)
	if err != nil {
		return nil, err
	}

	columns := SingleHeader(rows[layout.HeaderRows[0]], layout.IDCols)
	if len(columns) == 0 {
		return nil, fmt.Errorf("sheet %q: header row %d has no year columns", layout.Name, layout.HeaderRows[0])
	}

	years := make(map[int]int, len(columns))
	for _, col := range columns {
		year, err := strconv.Atoi(col.Name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: header %q is not a year: %w", layout.Name, col.Name, err)
		}
		years[col.Index] = year
	}

	var observations []domain.Observation
	country := ""
	for i := layout.DataStart; i <= layout.DataEnd; i++ {
		row := padTo(rows[i], layout.IDCols)

		// Sheets print the country label only on the first row of each block.
		if label := strings.TrimSpace(row[0]); label != "" {
			country = label
		}
		if country == "" {
			return nil, fmt.Errorf("sheet %q row %d: no country label to inherit", layout.Name, i)
		}

		mode, err := domain.ParseTenureMode(row[1])
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", layout.Name, i, err)
		}

		for _, col := range columns {
			obs := domain.Observation{
				Country: country,
				Tenure:  mode,
				Year:    years[col.Index],
			}
			value, ok, err := parseCell(row, col.Index, layout.Rescale)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d col %d: %w", layout.Name, i, col.Index, err)
			}
			obs.Value, obs.Valid = value, ok
			observations = append(observations, obs)
		}
	}

	slog.Debug("parsed tenure trends sheet",
		"sheet", layout.Name,
		"observations", len(observations),
	)

	return observations, nil
}

// ParseTenureByIncome extracts the tenure-by-income sheet. Its header is two
// stacked rows, income quintile merged above the year, which are flattened
// into quintile|year names and split back apart per observation.
func ParseTenureByIncome(f *excelize.File, layout config.SheetLayout) ([]domain.Observation, error) {
	rows, err := sheetRows(f, layout)
	if err != nil {
		return nil, err
	}
	if len(layout.HeaderRows) != 2 {
		return nil, fmt.Errorf("sheet %q: layout needs two header rows, has %d", layout.Name, len(layout.HeaderRows))
	}

	outer := rows[layout.HeaderRows[0]]
	inner := rows[layout.HeaderRows[1]]
	columns := ReconstructHeader(outer, inner, layout.IDCols, config.HeaderSep)
	if len(columns) == 0 {
		return nil, fmt.Errorf("sheet %q: reconstructed header is empty", layout.Name)
	}

	type dims struct {
		quintile domain.IncomeQuintile
		year     int
	}
	colDims := make(map[int]dims, len(columns))
	for _, col := range columns {
		outerLabel, innerLabel, err := SplitFlatName(col.Name, config.HeaderSep)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", layout.Name, err)
		}
		quintile, err := domain.ParseIncomeQuintile(outerLabel)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", layout.Name, err)
		}
		year, err := strconv.Atoi(innerLabel)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: header %q is not a year: %w", layout.Name, innerLabel, err)
		}
		colDims[col.Index] = dims{quintile: quintile, year: year}
	}

	var observations []domain.Observation
	country := ""
	for i := layout.DataStart; i <= layout.DataEnd; i++ {
		row := padTo(rows[i], layout.IDCols)

		if label := strings.TrimSpace(row[0]); label != "" {
			country = label
		}
		if country == "" {
			return nil, fmt.Errorf("sheet %q row %d: no country label to inherit", layout.Name, i)
		}

		mode, err := domain.ParseTenureMode(row[1])
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", layout.Name, i, err)
		}

		for _, col := range columns {
			d := colDims[col.Index]
			obs := domain.Observation{
				Country:  country,
				Tenure:   mode,
				Quintile: d.quintile,
				Year:     d.year,
			}
			value, ok, err := parseCell(row, col.Index, layout.Rescale)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d col %d: %w", layout.Name, i, col.Index, err)
			}
			obs.Value, obs.Valid = value, ok
			observations = append(observations, obs)
		}
	}

	slog.Debug("parsed tenure by income sheet",
		"sheet", layout.Name,
		"observations", len(observations),
	)

	return observations, nil
}

// sheetRows loads a sheet and checks it is at least as tall as the layout
// expects. A shorter sheet means the publisher changed the geometry; that is
// a hard error, not something to paper over.
func sheetRows(f *excelize.File, layout config.SheetLayout) ([][]string, error) {
	rows, err := f.GetRows(layout.Name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", layout.Name, err)
	}
	if len(rows) <= layout.DataEnd {
		return nil, fmt.Errorf("sheet %q has %d rows, layout expects at least %d; the source layout changed",
			layout.Name, len(rows), layout.DataEnd+1)
	}
	for _, h := range layout.HeaderRows {
		if h >= len(rows) {
			return nil, fmt.Errorf("sheet %q: header row %d out of range", layout.Name, h)
		}
	}
	return rows, nil
}

// parseCell decodes one value cell. The ".." marker and empty cells are null.
// Values are parsed after stripping thousands separators, then rescaled.
func parseCell(row []string, index int, rescale float64) (float64, bool, error) {
	if index >= len(row) {
		return 0, false, nil
	}
	cell := strings.TrimSpace(row[index])
	if cell == "" || cell == config.MissingMarker {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0, false, fmt.Errorf("malformed value %q: %w", cell, err)
	}
	if rescale != 0 {
		value *= rescale
	}
	return value, true, nil
}
