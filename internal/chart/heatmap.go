package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tenurecli/internal/correlation"
	"tenurecli/pkg/contracts/domain"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Columns and rows
// both index tenure modes in stacking order.
type corrGrid struct {
	r [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.r), len(g.r) }
func (g corrGrid) Z(c, r int) float64 { return g.r[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap renders every group matrix as one combined grid, rows
// keyed by country and columns by income quintile, and writes it to each of
// the given paths (PNG and SVG). The canvas height grows with the number of
// countries.
func CorrelationHeatmap(groups []correlation.GroupMatrix, paths ...string) error {
	if len(groups) == 0 {
		return fmt.Errorf("no correlation groups to chart")
	}

	byKey := make(map[string]map[domain.IncomeQuintile]correlation.GroupMatrix)
	var countries []string
	for _, g := range groups {
		if byKey[g.Country] == nil {
			byKey[g.Country] = make(map[domain.IncomeQuintile]correlation.GroupMatrix)
			countries = append(countries, g.Country)
		}
		byKey[g.Country][g.Quintile] = g
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	grid := make([][]*plot.Plot, len(countries))
	for i, country := range countries {
		row := make([]*plot.Plot, len(domain.IncomeQuintiles))
		for j, quintile := range domain.IncomeQuintiles {
			g, ok := byKey[country][quintile]
			if !ok {
				continue
			}

			p := plot.New()
			p.Title.Text = fmt.Sprintf("%s · %s", country, quintile.Short())
			p.Title.TextStyle.Font.Size = vg.Points(9)

			h := plotter.NewHeatMap(corrGrid{r: g.R}, pal)
			h.Min = -1
			h.Max = 1
			p.Add(h)

			ticks := make([]plot.Tick, len(g.Modes))
			for k, mode := range g.Modes {
				ticks[k] = plot.Tick{Value: float64(k), Label: mode.Short()}
			}
			p.X.Tick.Marker = plot.ConstantTicks(ticks)
			p.X.Tick.Label.Rotation = math.Pi / 4
			p.Y.Tick.Marker = plot.ConstantTicks(ticks)

			row[j] = p
		}
		grid[i] = row
	}

	for _, path := range paths {
		if err := writeGrid(grid, 3*vg.Inch, 2.6*vg.Inch, path); err != nil {
			return err
		}
	}
	return nil
}
