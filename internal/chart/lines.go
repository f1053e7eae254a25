package chart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tenurecli/pkg/contracts/domain"
)

const incomeFacetCols = 3

// PointLineByQuintile renders tenure shares over time, one facet per income
// quintile, averaging across countries. Each tenure mode is a point+line
// series in its fixed color.
func PointLineByQuintile(observations []domain.Observation, path string) error {
	type cell struct {
		sum   float64
		count int
	}
	// quintile -> mode -> year -> running mean input
	means := make(map[domain.IncomeQuintile]map[domain.TenureMode]map[int]*cell)
	for _, obs := range observations {
		if !obs.Valid {
			continue
		}
		if means[obs.Quintile] == nil {
			means[obs.Quintile] = make(map[domain.TenureMode]map[int]*cell)
		}
		if means[obs.Quintile][obs.Tenure] == nil {
			means[obs.Quintile][obs.Tenure] = make(map[int]*cell)
		}
		c := means[obs.Quintile][obs.Tenure][obs.Year]
		if c == nil {
			c = &cell{}
			means[obs.Quintile][obs.Tenure][obs.Year] = c
		}
		c.sum += obs.Value
		c.count++
	}
	if len(means) == 0 {
		return fmt.Errorf("no observations to chart")
	}

	var plots []*plot.Plot
	for qi, quintile := range domain.IncomeQuintiles {
		byMode, ok := means[quintile]
		if !ok {
			plots = append(plots, nil)
			continue
		}

		p := plot.New()
		p.Title.Text = string(quintile)
		p.X.Label.Text = "Year"
		p.Y.Label.Text = "Mean share of households"
		p.Y.Min = 0

		for _, mode := range domain.TenureModes {
			cells := byMode[mode]
			if len(cells) == 0 {
				continue
			}
			years := make([]int, 0, len(cells))
			for year := range cells {
				years = append(years, year)
			}
			sort.Ints(years)

			xys := make(plotter.XYs, len(years))
			for i, year := range years {
				xys[i].X = float64(year)
				xys[i].Y = cells[year].sum / float64(cells[year].count)
			}

			line, points, err := plotter.NewLinePoints(xys)
			if err != nil {
				return fmt.Errorf("facet %s: %w", quintile, err)
			}
			line.Color = modeColor(mode)
			line.Width = vg.Points(1.5)
			points.GlyphStyle.Color = modeColor(mode)
			points.GlyphStyle.Radius = vg.Points(2)
			p.Add(line, points)
			if qi == 0 {
				p.Legend.Add(mode.Short(), line, points)
			}
		}
		if qi == 0 {
			p.Legend.Top = true
		}
		plots = append(plots, p)
	}

	return writeGrid(intoRows(plots, incomeFacetCols), 4*vg.Inch, 3*vg.Inch, path)
}
