package chart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tenurecli/internal/dataprocessing"
	"tenurecli/pkg/contracts/domain"
)

const areaFacetCols = 4

// StackedAreaByCountry renders one stacked-area facet per country from the
// long-form tenure table and writes them as a single grid image.
func StackedAreaByCountry(observations []domain.Observation, path string) error {
	byCountry := make(map[string][]domain.Observation)
	for _, obs := range observations {
		if obs.Valid {
			byCountry[obs.Country] = append(byCountry[obs.Country], obs)
		}
	}
	if len(byCountry) == 0 {
		return fmt.Errorf("no observations to chart")
	}

	// Countries whose sheet block is entirely missing get no facet.
	var countries []string
	for _, country := range dataprocessing.Countries(observations) {
		if len(byCountry[country]) > 0 {
			countries = append(countries, country)
		}
	}

	plots := make([]*plot.Plot, 0, len(countries))
	for i, country := range countries {
		p, err := stackedAreaPlot(country, byCountry[country], i == 0)
		if err != nil {
			return fmt.Errorf("facet %s: %w", country, err)
		}
		plots = append(plots, p)
	}

	return writeGrid(intoRows(plots, areaFacetCols), 4*vg.Inch, 3*vg.Inch, path)
}

// stackedAreaPlot draws the tenure composition of one country over time.
// Bands are cumulative shares in stacking order; drawing them from the top of
// the stack down lets each fill cover the one beneath it.
func stackedAreaPlot(country string, observations []domain.Observation, legend bool) (*plot.Plot, error) {
	series := make(map[domain.TenureMode]map[int]float64)
	for _, obs := range observations {
		if series[obs.Tenure] == nil {
			series[obs.Tenure] = make(map[int]float64)
		}
		series[obs.Tenure][obs.Year] = obs.Value
	}

	var modes []domain.TenureMode
	for _, mode := range domain.TenureModes {
		if len(series[mode]) > 0 {
			modes = append(modes, mode)
		}
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("no non-null values")
	}

	// A year enters the stack only when every reported mode has a value;
	// stacking around a hole would misstate the composition.
	var years []int
	for year := range series[modes[0]] {
		complete := true
		for _, mode := range modes[1:] {
			if _, ok := series[mode][year]; !ok {
				complete = false
				break
			}
		}
		if complete {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	if len(years) == 0 {
		return nil, fmt.Errorf("no year with a complete composition")
	}

	p := plot.New()
	p.Title.Text = country
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Share of households"
	p.Y.Min = 0
	p.Y.Max = 1.05

	cumulative := make([]plotter.XYs, len(modes))
	running := make(map[int]float64, len(years))
	for k, mode := range modes {
		xys := make(plotter.XYs, len(years))
		for i, year := range years {
			running[year] += series[mode][year]
			xys[i].X = float64(year)
			xys[i].Y = running[year]
		}
		cumulative[k] = xys
	}

	for k := len(modes) - 1; k >= 0; k-- {
		line, err := plotter.NewLine(cumulative[k])
		if err != nil {
			return nil, err
		}
		line.FillColor = modeColor(modes[k])
		line.Color = modeColor(modes[k])
		line.Width = vg.Points(0.5)
		p.Add(line)
		if legend {
			p.Legend.Add(modes[k].Short(), line)
		}
	}

	if legend {
		p.Legend.Top = true
		p.Legend.Left = true
	}

	return p, nil
}
