package dataprocessing

import (
	"sort"

	"tenurecli/pkg/contracts/domain"
)

// WideRow is one row of the wide-form table: a (country, year) pair with one
// value per tenure mode. Modes missing in the source are absent from Values.
type WideRow struct {
	Country string
	Year    int
	Values  map[domain.TenureMode]float64
}

// PivotWide reshapes tidy observations back to wide form, one column per
// tenure mode. Null observations contribute nothing. Rows come out sorted by
// country, then year.
func PivotWide(observations []domain.Observation) []WideRow {
	type key struct {
		country string
		year    int
	}

	cells := make(map[key]map[domain.TenureMode]float64)
	for _, obs := range observations {
		if !obs.Valid {
			continue
		}
		k := key{country: obs.Country, year: obs.Year}
		if cells[k] == nil {
			cells[k] = make(map[domain.TenureMode]float64, len(domain.TenureModes))
		}
		cells[k][obs.Tenure] = obs.Value
	}

	rows := make([]WideRow, 0, len(cells))
	for k, values := range cells {
		rows = append(rows, WideRow{Country: k.country, Year: k.year, Values: values})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// Countries returns the distinct countries in observation order-independent
// sorted form.
func Countries(observations []domain.Observation) []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, obs := range observations {
		if _, ok := seen[obs.Country]; !ok {
			seen[obs.Country] = struct{}{}
			countries = append(countries, obs.Country)
		}
	}
	sort.Strings(countries)
	return countries
}

// Years returns the distinct years, ascending.
func Years(observations []domain.Observation) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, obs := range observations {
		if _, ok := seen[obs.Year]; !ok {
			seen[obs.Year] = struct{}{}
			years = append(years, obs.Year)
		}
	}
	sort.Ints(years)
	return years
}
