package chart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"tenurecli/internal/correlation"
)

var (
	positiveEdge = color.RGBA{R: 33, G: 102, B: 172, A: 255}
	negativeEdge = color.RGBA{R: 178, G: 24, B: 43, A: 255}
)

// RenderNetworks writes one correlation network diagram per group under
// baseDir/<country>/<quintile>.png. Groups are independent and write disjoint
// files, so rendering fans out across workers.
func RenderNetworks(ctx context.Context, groups []correlation.GroupMatrix, baseDir string, threshold float64, workers int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, group := range groups {
		group := group
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			dir := filepath.Join(baseDir, safeName(group.Country))
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create network directory: %w", err)
			}
			path := filepath.Join(dir, safeName(string(group.Quintile))+".png")
			if err := networkDiagram(group, threshold, path); err != nil {
				return fmt.Errorf("network %s/%s: %w", group.Country, group.Quintile, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "network diagrams rendered",
		"count", len(groups),
		"dir", baseDir,
	)
	return nil
}

// networkDiagram draws tenure modes as nodes on a circle with one edge per
// correlation above the threshold. Edge width tracks |r|; blue is positive,
// red negative.
func networkDiagram(group correlation.GroupMatrix, threshold float64, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s · %s", group.Country, group.Quintile)
	p.HideAxes()
	p.X.Min, p.X.Max = -1.6, 1.6
	p.Y.Min, p.Y.Max = -1.6, 1.6

	n := len(group.Modes)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range group.Modes {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		xs[i] = math.Cos(angle)
		ys[i] = math.Sin(angle)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := group.R[i][j]
			if math.Abs(r) < threshold {
				continue
			}
			edge, err := plotter.NewLine(plotter.XYs{
				{X: xs[i], Y: ys[i]},
				{X: xs[j], Y: ys[j]},
			})
			if err != nil {
				return err
			}
			edge.Width = vg.Points(0.5 + 3.5*math.Abs(r))
			if r > 0 {
				edge.Color = positiveEdge
			} else {
				edge.Color = negativeEdge
			}
			p.Add(edge)
		}
	}

	for i, mode := range group.Modes {
		node, err := plotter.NewScatter(plotter.XYs{{X: xs[i], Y: ys[i]}})
		if err != nil {
			return err
		}
		node.GlyphStyle.Color = modeColor(mode)
		node.GlyphStyle.Radius = vg.Points(8)
		node.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(node)
	}

	labels := make([]string, n)
	labelXYs := make(plotter.XYs, n)
	for i, mode := range group.Modes {
		labels[i] = mode.Short()
		labelXYs[i].X = xs[i] * 1.25
		labelXYs[i].Y = ys[i] * 1.25
	}
	nodeLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(nodeLabels)

	return p.Save(5*vg.Inch, 5*vg.Inch, path)
}
