// Package chart renders aggregated accident series to PNG images.
//
// Every function builds its own plot and its own raster canvas, so
// concurrent calls never share drawing state. A panic inside the
// plotting library is recovered and reported as ErrRender.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("chart: no data")
	// ErrRender wraps any failure from the plotting library.
	ErrRender = errors.New("chart: render failed")
)

// skyBlue is the bar fill.
var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// Labels are the title and axis captions of a chart.
type Labels struct {
	Title string
	X     string
	Y     string
}

func (l Labels) apply(p *plot.Plot) {
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
}

// encode draws p onto a fresh PNG canvas of the given size.
func encode(p *plot.Plot, w, h vg.Length) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// DataURI returns png as an inline image source for templates.
func DataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
