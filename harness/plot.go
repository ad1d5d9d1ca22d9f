package harness

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/patflynngithub/pycnumanal/store"
)

// ErrNoTimings reports a plot request where none of the programs has timings.
var ErrNoTimings = errors.New("harness: none of the programs have timings")

// Plot dimensions.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// PlotResult lists which programs were drawn and which were left out.
type PlotResult struct {
	Plotted []string
	Skipped []string // unknown programs and programs without timings
}

// PlotTimings draws timing against problem size for each named program, one
// line per program with the program name in the legend, and saves the figure
// to path. The format follows the file extension (png, svg, pdf, ...).
// Unknown programs and programs without timings are skipped; if nothing is
// left to draw, ErrNoTimings is returned and no file is written.
func (h *Harness) PlotTimings(ctx context.Context, names []string, path string) (PlotResult, error) {
	var res PlotResult
	var series []interface{}
	for _, name := range names {
		timings, err := h.store.Timings(ctx, name)
		if err != nil {
			return res, err
		}
		if len(timings) == 0 {
			// Timings does not distinguish unknown programs from empty ones.
			if _, err := h.store.Program(ctx, name); errors.Is(err, store.ErrProgramNotFound) {
				h.logger.Warn("unknown program; not plotted", "program", name)
			} else {
				h.logger.Warn("program has no timings; not plotted", "program", name)
			}
			res.Skipped = append(res.Skipped, name)
			continue
		}
		pts := make(plotter.XYs, len(timings))
		for i, t := range timings {
			pts[i].X = float64(t.ProblemSize)
			pts[i].Y = t.Seconds
		}
		series = append(series, name, pts)
		res.Plotted = append(res.Plotted, name)
	}
	if len(res.Plotted) == 0 {
		return res, ErrNoTimings
	}

	p := plot.New()
	p.Title.Text = "Timing vs Problem Size"
	p.X.Label.Text = "problem size"
	p.Y.Label.Text = "timing (seconds)"
	p.Legend.Top = true
	p.Legend.Left = true
	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return res, fmt.Errorf("harness: plot: %w", err)
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return res, fmt.Errorf("harness: plot: save %s: %w", path, err)
	}
	h.logger.Info("timings plotted", "programs", res.Plotted, "file", path)
	return res, nil
}
