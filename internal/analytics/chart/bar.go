package chart

import (
	"fmt"
	"math"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	barCanvasWidth = 10 * vg.Inch
	maxBarWidth    = 40.0 // points
)

// Bar renders one bar per category in input order. Category labels
// longer than three characters are tilted 45 degrees.
func Bar(l Labels, counts aggregate.Counts) ([]byte, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	l.apply(p)

	values := make(plotter.Values, len(counts))
	tilt := false
	for i, c := range counts {
		values[i] = float64(c.Count)
		if len([]rune(c.Label)) > 3 {
			tilt = true
		}
	}

	width := math.Min(maxBarWidth, 500/float64(len(counts)))
	bars, err := plotter.NewBarChart(values, vg.Points(width))
	if err != nil {
		return nil, wrapRender(err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid, bars)
	p.NominalX(counts.Labels()...)
	p.Y.Min = 0

	if tilt {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}

	return encode(p, barCanvasWidth, 6*vg.Inch)
}

// Histogram renders per-cluster sizes with cluster ids 0..k-1 on the x axis.
func Histogram(l Labels, sizes []int) ([]byte, error) {
	counts := make(aggregate.Counts, len(sizes))
	for i, n := range sizes {
		counts[i] = aggregate.Count{Label: fmt.Sprint(i), Count: n}
	}
	return Bar(l, counts)
}

func wrapRender(err error) error {
	return fmt.Errorf("%w: %v", ErrRender, err)
}
