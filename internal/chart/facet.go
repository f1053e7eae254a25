package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"tenurecli/pkg/contracts/domain"
)

// modeColors assigns one color per tenure mode, in stacking order. The same
// palette is used by every figure so modes stay recognizable across charts.
var modeColors = []color.RGBA{
	{R: 27, G: 158, B: 119, A: 255},
	{R: 217, G: 95, B: 2, A: 255},
	{R: 117, G: 112, B: 179, A: 255},
	{R: 231, G: 41, B: 138, A: 255},
	{R: 102, G: 102, B: 102, A: 255},
}

func modeColor(mode domain.TenureMode) color.RGBA {
	if rank := mode.Rank(); rank >= 0 && rank < len(modeColors) {
		return modeColors[rank]
	}
	return color.RGBA{A: 255}
}

// canvasWriter is a drawable canvas that can serialize itself to a file.
type canvasWriter interface {
	vg.CanvasSizer
	io.WriterTo
}

// newCanvas picks the backend from the file extension. PNG and SVG cover the
// raster and vector outputs.
func newCanvas(w, h vg.Length, path string) (canvasWriter, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case ".svg":
		return vgsvg.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported chart format %q", ext)
	}
}

// writeGrid lays a row-major grid of plots onto one canvas and writes it to
// path. Nil entries leave their tile empty.
func writeGrid(plots [][]*plot.Plot, cellW, cellH vg.Length, path string) error {
	rows := len(plots)
	if rows == 0 {
		return fmt.Errorf("no plots to render for %s", path)
	}
	cols := 0
	for _, row := range plots {
		if len(row) > cols {
			cols = len(row)
		}
	}

	c, err := newCanvas(cellW*vg.Length(cols), cellH*vg.Length(rows), path)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Points(6),
		PadY: vg.Points(6),
	}

	// Align shares tile geometry across the grid so facet axes line up.
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i, row := range plots {
		for j, p := range row {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}

// intoRows chops a flat list of plots into a grid with the given column
// count.
func intoRows(plots []*plot.Plot, cols int) [][]*plot.Plot {
	if cols < 1 {
		cols = 1
	}
	var grid [][]*plot.Plot
	for start := 0; start < len(plots); start += cols {
		end := start + cols
		if end > len(plots) {
			end = len(plots)
		}
		row := make([]*plot.Plot, cols)
		copy(row, plots[start:end])
		grid = append(grid, row)
	}
	return grid
}

// safeName makes a country or quintile label usable as a path component.
func safeName(label string) string {
	s := strings.TrimSpace(label)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
