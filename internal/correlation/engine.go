package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tenurecli/pkg/contracts/domain"
)

// GroupMatrix is the pairwise Pearson correlation matrix across tenure-type
// time series for one (country, income quintile) group. R is indexed by
// Modes on both axes and is symmetric with a unit diagonal for series with
// nonzero variance; undefined coefficients are reported as 0.
type GroupMatrix struct {
	Country  string
	Quintile domain.IncomeQuintile
	Modes    []domain.TenureMode
	R        [][]float64
}

// Engine computes correlation matrices over tidy income observations.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a correlation engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Compute groups observations by (country, quintile), pivots each group to
// one series per tenure mode indexed by year, and fills the full pairwise
// matrix. Correlations use pairwise-complete observations: each pair is
// evaluated over the years where both series have a value, so one missing
// year only affects the pairs it touches. Groups come out sorted by country,
// then quintile rank.
func (e *Engine) Compute(ctx context.Context, observations []domain.Observation) ([]GroupMatrix, error) {
	type key struct {
		country  string
		quintile domain.IncomeQuintile
	}

	series := make(map[key]map[domain.TenureMode]map[int]float64)
	for _, obs := range observations {
		if !obs.Valid {
			continue
		}
		if obs.Quintile == "" {
			return nil, fmt.Errorf("observation for %s/%s lacks an income quintile", obs.Country, obs.Tenure)
		}
		k := key{country: obs.Country, quintile: obs.Quintile}
		if series[k] == nil {
			series[k] = make(map[domain.TenureMode]map[int]float64, len(domain.TenureModes))
		}
		if series[k][obs.Tenure] == nil {
			series[k][obs.Tenure] = make(map[int]float64)
		}
		series[k][obs.Tenure][obs.Year] = obs.Value
	}

	keys := make([]key, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].country != keys[j].country {
			return keys[i].country < keys[j].country
		}
		return keys[i].quintile.Rank() < keys[j].quintile.Rank()
	})

	groups := make([]GroupMatrix, 0, len(keys))
	for _, k := range keys {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("correlation computation cancelled: %w", ctx.Err())
		default:
		}
		groups = append(groups, e.computeGroup(k.country, k.quintile, series[key{k.country, k.quintile}]))
	}

	e.logger.InfoContext(ctx, "correlation matrices computed",
		"groups", len(groups),
		"modes", len(domain.TenureModes),
	)

	return groups, nil
}

// computeGroup fills the matrix for one group. The diagonal is 1 for any
// series with at least two observations and nonzero variance, 0 otherwise.
func (e *Engine) computeGroup(country string, quintile domain.IncomeQuintile, byMode map[domain.TenureMode]map[int]float64) GroupMatrix {
	n := len(domain.TenureModes)
	r := make([][]float64, n)
	for i := range r {
		r[i] = make([]float64, n)
	}

	for i, x := range domain.TenureModes {
		for j, y := range domain.TenureModes {
			if j < i {
				r[i][j] = r[j][i]
				continue
			}
			r[i][j] = pairwiseCorrelation(byMode[x], byMode[y])
		}
	}

	return GroupMatrix{
		Country:  country,
		Quintile: quintile,
		Modes:    domain.TenureModes,
		R:        r,
	}
}

// pairwiseCorrelation computes the Pearson coefficient over the years present
// in both series. Fewer than two shared years, a constant series, or any
// other undefined case yields the neutral default 0.
func pairwiseCorrelation(x, y map[int]float64) float64 {
	years := make([]int, 0, len(x))
	for year := range x {
		if _, ok := y[year]; ok {
			years = append(years, year)
		}
	}
	if len(years) < 2 {
		return 0
	}
	sort.Ints(years)

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, year := range years {
		xs[i] = x[year]
		ys[i] = y[year]
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Flatten reshapes matrices into long relational records, every (x, y) pair
// including the diagonal, ordered by stacking rank within each group.
func Flatten(groups []GroupMatrix) []domain.CorrelationRecord {
	var records []domain.CorrelationRecord
	for _, g := range groups {
		for i, x := range g.Modes {
			for j, y := range g.Modes {
				records = append(records, domain.CorrelationRecord{
					Country:  g.Country,
					Quintile: g.Quintile,
					TenureX:  x,
					TenureY:  y,
					R:        g.R[i][j],
				})
			}
		}
	}
	return records
}
