package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenurecli/pkg/contracts/domain"
)

func sampleObservations() []domain.Observation {
	return []domain.Observation{
		{Country: "Austria", Tenure: domain.TenureOwnOutright, Year: 2019, Value: 0.30, Valid: true},
		{Country: "Austria", Tenure: domain.TenureRentPrivate, Year: 2019, Value: 0.70, Valid: true},
		{Country: "Austria", Tenure: domain.TenureOwnOutright, Year: 2020, Value: 0.31, Valid: true},
		{Country: "Austria", Tenure: domain.TenureRentPrivate, Year: 2020, Value: 0, Valid: false},
		{Country: "Belgium", Tenure: domain.TenureOwnOutright, Year: 2019, Value: 0.40, Valid: true},
	}
}

func TestPivotWide(t *testing.T) {
	rows := PivotWide(sampleObservations())

	require.Len(t, rows, 3)

	// Sorted by country, then year.
	assert.Equal(t, "Austria", rows[0].Country)
	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, "Austria", rows[1].Country)
	assert.Equal(t, 2020, rows[1].Year)
	assert.Equal(t, "Belgium", rows[2].Country)

	assert.InDelta(t, 0.30, rows[0].Values[domain.TenureOwnOutright], 1e-9)
	assert.InDelta(t, 0.70, rows[0].Values[domain.TenureRentPrivate], 1e-9)

	// The null cell must be absent, not zero.
	_, ok := rows[1].Values[domain.TenureRentPrivate]
	assert.False(t, ok)
}

func TestWideLongRoundTrip(t *testing.T) {
	original := sampleObservations()
	rows := PivotWide(original)

	// Every non-null long observation must reappear in the wide form with an
	// identical value.
	for _, obs := range original {
		if !obs.Valid {
			continue
		}
		found := false
		for _, row := range rows {
			if row.Country == obs.Country && row.Year == obs.Year {
				value, ok := row.Values[obs.Tenure]
				require.True(t, ok, "missing %s/%d/%s", obs.Country, obs.Year, obs.Tenure)
				assert.InDelta(t, obs.Value, value, 1e-9)
				found = true
			}
		}
		assert.True(t, found)
	}
}

func TestCountries(t *testing.T) {
	assert.Equal(t, []string{"Austria", "Belgium"}, Countries(sampleObservations()))
	assert.Empty(t, Countries(nil))
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2019, 2020}, Years(sampleObservations()))
}
