package chart

import (
	"math"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Line renders one point per district, joined in input order. District
// names run along the x axis, rotated to read bottom-up.
func Line(l Labels, totals []aggregate.DistrictTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	l.apply(p)

	xys := make(plotter.XYs, len(totals))
	names := make([]string, len(totals))
	for i, t := range totals {
		xys[i] = plotter.XY{X: float64(i), Y: t.Total}
		names[i] = t.District
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, wrapRender(err)
	}
	points.Shape = draw.CircleGlyph{}
	p.Add(plotter.NewGrid(), line, points)
	p.NominalX(names...)
	p.Y.Min = 0
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return encode(p, 12*vg.Inch, 6*vg.Inch)
}
