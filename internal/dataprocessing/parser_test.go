package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tenurecli/internal/config"
	"tenurecli/pkg/contracts/domain"
)

var trendsTestLayout = config.SheetLayout{
	Name:       "Trends",
	HeaderRows: []int{1},
	DataStart:  3,
	DataEnd:    8,
	IDCols:     2,
	Rescale:    0.01,
}

var incomeTestLayout = config.SheetLayout{
	Name:       "Income",
	HeaderRows: []int{1, 2},
	DataStart:  4,
	DataEnd:    7,
	IDCols:     2,
	Rescale:    0.01,
}

// setRow writes values into a sheet starting at column A of the zero-based
// row index, mirroring the grid GetRows returns.
func setRow(t *testing.T, f *excelize.File, sheet string, rowIdx int, values ...interface{}) {
	t.Helper()
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowIdx+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
}

// newTrendsWorkbook builds a 2-country, 2-year, 3-mode sheet with a single
// missing cell (Belgium, Rent (private), 2020).
func newTrendsWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Trends"))

	setRow(t, f, "Trends", 0, "HM1.3.A1 Housing tenure distribution")
	setRow(t, f, "Trends", 1, "Country", "Tenure", 2019, 2020)
	// Row 2 left blank, as in the source.
	setRow(t, f, "Trends", 3, "Austria", "Own outright", 30.0, 31.0)
	setRow(t, f, "Trends", 4, nil, "Owner with mortgage", 25.0, 24.0)
	setRow(t, f, "Trends", 5, nil, "Rent (private)", 45.0, 45.0)
	setRow(t, f, "Trends", 6, "Belgium", "Own outright", 40.0, 42.0)
	setRow(t, f, "Trends", 7, nil, "Owner with mortgage", 35.0, 33.0)
	setRow(t, f, "Trends", 8, nil, "Rent (private)", 25.0, "..")

	return f
}

func newIncomeWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Income"))

	setRow(t, f, "Income", 0, "HM1.3.A2 Housing tenure by income")
	setRow(t, f, "Income", 1, nil, nil, "Bottom quintile", nil, "Top quintile")
	setRow(t, f, "Income", 2, "Country", "Tenure", 2019, 2020, 2019, 2020)
	// Row 3 left blank.
	setRow(t, f, "Income", 4, "Austria", "Own outright", 20.0, 21.0, 55.0, 56.0)
	setRow(t, f, "Income", 5, nil, "Rent (private)", 60.0, "..", 20.0, 19.0)
	setRow(t, f, "Income", 6, "Belgium", "Own outright", 30.0, 31.0, 62.0, 61.0)
	setRow(t, f, "Income", 7, nil, "Rent (private)", 50.0, 49.0, 15.0, 16.0)

	return f
}

func TestParseTenureTrends(t *testing.T) {
	f := newTrendsWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureTrends(f, trendsTestLayout)
	require.NoError(t, err)

	// 2 countries x 3 modes x 2 years, including the one null.
	require.Len(t, observations, 12)

	valid := 0
	for _, obs := range observations {
		if obs.Valid {
			valid++
		}
	}
	assert.Equal(t, 11, valid, "exactly one cell is the missing marker")

	first := observations[0]
	assert.Equal(t, "Austria", first.Country)
	assert.Equal(t, domain.TenureOwnOutright, first.Tenure)
	assert.Equal(t, 2019, first.Year)
	assert.InDelta(t, 0.30, first.Value, 1e-9, "percent rescaled to fraction")
	assert.True(t, first.Valid)
}

func TestParseTenureTrendsForwardFillsCountry(t *testing.T) {
	f := newTrendsWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureTrends(f, trendsTestLayout)
	require.NoError(t, err)

	countries := make(map[string]int)
	for _, obs := range observations {
		countries[obs.Country]++
	}
	assert.Equal(t, map[string]int{"Austria": 6, "Belgium": 6}, countries)
}

func TestParseTenureTrendsMissingMarkerIsNull(t *testing.T) {
	f := newTrendsWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureTrends(f, trendsTestLayout)
	require.NoError(t, err)

	for _, obs := range observations {
		if obs.Country == "Belgium" && obs.Tenure == domain.TenureRentPrivate && obs.Year == 2020 {
			assert.False(t, obs.Valid)
			assert.Zero(t, obs.Value)
			return
		}
	}
	t.Fatal("expected the null observation to be present")
}

func TestParseTenureTrendsProportionsSum(t *testing.T) {
	f := newTrendsWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureTrends(f, trendsTestLayout)
	require.NoError(t, err)

	sums := make(map[string]float64)
	nulls := make(map[string]bool)
	for _, obs := range observations {
		key := fmt.Sprintf("%s/%d", obs.Country, obs.Year)
		if !obs.Valid {
			nulls[key] = true
			continue
		}
		sums[key] += obs.Value
	}
	for key, sum := range sums {
		if nulls[key] {
			continue
		}
		assert.InDelta(t, 1.0, sum, 0.01, "shares for %s should sum to ~1", key)
	}
}

func TestParseTenureTrendsFailsFast(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, f *excelize.File)
		layout  config.SheetLayout
		wantErr string
	}{
		{
			name:    "missing sheet",
			mutate:  func(t *testing.T, f *excelize.File) {},
			layout:  config.SheetLayout{Name: "Nope", HeaderRows: []int{1}, DataStart: 3, DataEnd: 8, IDCols: 2},
			wantErr: "Nope",
		},
		{
			name: "sheet shorter than layout",
			mutate: func(t *testing.T, f *excelize.File) {
				require.NoError(t, f.RemoveRow("Trends", 9))
			},
			layout:  trendsTestLayout,
			wantErr: "layout expects",
		},
		{
			name: "unknown tenure label",
			mutate: func(t *testing.T, f *excelize.File) {
				require.NoError(t, f.SetCellValue("Trends", "B5", "Timeshare"))
			},
			layout:  trendsTestLayout,
			wantErr: "unknown tenure mode",
		},
		{
			name: "malformed value",
			mutate: func(t *testing.T, f *excelize.File) {
				require.NoError(t, f.SetCellValue("Trends", "C4", "n/a"))
			},
			layout:  trendsTestLayout,
			wantErr: "malformed value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTrendsWorkbook(t)
			defer f.Close()
			tt.mutate(t, f)

			_, err := ParseTenureTrends(f, tt.layout)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTenureByIncome(t *testing.T) {
	f := newIncomeWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureByIncome(f, incomeTestLayout)
	require.NoError(t, err)

	// 2 countries x 2 modes x 2 quintiles x 2 years.
	require.Len(t, observations, 16)

	valid := 0
	for _, obs := range observations {
		if obs.Valid {
			valid++
		}
		assert.NotEmpty(t, obs.Quintile)
	}
	assert.Equal(t, 15, valid)

	first := observations[0]
	assert.Equal(t, "Austria", first.Country)
	assert.Equal(t, domain.TenureOwnOutright, first.Tenure)
	assert.Equal(t, domain.QuintileBottom, first.Quintile)
	assert.Equal(t, 2019, first.Year)
	assert.InDelta(t, 0.20, first.Value, 1e-9)
}

func TestParseTenureByIncomeMergedHeader(t *testing.T) {
	f := newIncomeWorkbook(t)
	defer f.Close()

	observations, err := ParseTenureByIncome(f, incomeTestLayout)
	require.NoError(t, err)

	// The merged outer label must forward-fill across its year columns.
	quintiles := make(map[domain.IncomeQuintile]int)
	for _, obs := range observations {
		quintiles[obs.Quintile]++
	}
	assert.Equal(t, map[domain.IncomeQuintile]int{
		domain.QuintileBottom: 8,
		domain.QuintileTop:    8,
	}, quintiles)
}

func TestParseTenureByIncomeRejectsSingleHeaderLayout(t *testing.T) {
	f := newIncomeWorkbook(t)
	defer f.Close()

	layout := incomeTestLayout
	layout.HeaderRows = []int{2}

	_, err := ParseTenureByIncome(f, layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two header rows")
}
