package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MaxLabelLen is the longest legend label drawn before truncation.
const MaxLabelLen = 20

const (
	pieSize      = 8 * vg.Inch
	donutHole    = 0.70 // inner radius as a fraction of the outer radius
	pctRadius    = 0.85 // where percentages sit, as a fraction of the outer radius
	pieAreaShare = 0.62 // share of the canvas width left of the legend
)

// Wedge is one slice of a pie, in drawing order.
type Wedge struct {
	Label       string // truncated legend label
	Count       int
	Fraction    float64 // share of the total, 0..1
	PercentText string  // Fraction formatted as "45.5%"
}

// TruncateLabel shortens s to n runes followed by "..." when it is longer
// than n runes.
func TruncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// PieWedges lays out counts as wedges in input order.
func PieWedges(counts aggregate.Counts) ([]Wedge, error) {
	total := counts.Total()
	if len(counts) == 0 || total <= 0 {
		return nil, ErrNoData
	}
	out := make([]Wedge, len(counts))
	for i, c := range counts {
		f := float64(c.Count) / float64(total)
		out[i] = Wedge{
			Label:       TruncateLabel(c.Label, MaxLabelLen),
			Count:       c.Count,
			Fraction:    f,
			PercentText: fmt.Sprintf("%.1f%%", f*100),
		}
	}
	return out, nil
}

// Pie renders counts as a donut chart. Wedges start at 12 o'clock and run
// counter-clockwise; labels go in the legend, percentages on the ring.
func Pie(title string, counts aggregate.Counts) ([]byte, error) {
	wedges, err := PieWedges(counts)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.Legend.Top = true

	d := donut{wedges: wedges, colors: make([]color.Color, len(wedges))}
	for i, w := range wedges {
		d.colors[i] = plotutil.Color(i)
		p.Legend.Add(w.Label, swatch{color: d.colors[i]})
	}
	p.Add(d)

	return encode(p, pieSize, pieSize)
}

// donut is a plot.Plotter that draws wedges straight onto the canvas.
type donut struct {
	wedges []Wedge
	colors []color.Color
}

func (d donut) Plot(c draw.Canvas, p *plot.Plot) {
	area := c.Rectangle
	width := (area.Max.X - area.Min.X) * pieAreaShare
	height := area.Max.Y - area.Min.Y
	radius := vg.Length(math.Min(float64(width), float64(height)) / 2 * 0.95)
	center := vg.Point{X: area.Min.X + width/2, Y: area.Min.Y + height/2}

	start := math.Pi / 2
	for i, w := range d.wedges {
		sweep := 2 * math.Pi * w.Fraction
		var path vg.Path
		path.Move(center)
		path.Line(polar(center, radius, start))
		path.Arc(center, radius, start, sweep)
		path.Close()
		c.SetColor(d.colors[i])
		c.Fill(path)
		start += sweep
	}

	var hole vg.Path
	inner := radius * donutHole
	hole.Move(polar(center, inner, 0))
	hole.Arc(center, inner, 0, 2*math.Pi)
	hole.Close()
	c.SetColor(color.White)
	c.Fill(hole)

	sty := p.Legend.TextStyle
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	start = math.Pi / 2
	for _, w := range d.wedges {
		sweep := 2 * math.Pi * w.Fraction
		c.FillText(sty, polar(center, radius*pctRadius, start+sweep/2), w.PercentText)
		start += sweep
	}
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}

// swatch is the legend thumbnail for a wedge.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}
