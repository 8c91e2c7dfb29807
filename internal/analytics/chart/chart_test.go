package chart_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"github.com/dalemusser/accidentdash/internal/analytics/chart"
)

var locations = aggregate.Counts{
	{Label: "Highway", Count: 5},
	{Label: "Urban", Count: 3},
	{Label: "Rural", Count: 3},
}

func assertPNG(t *testing.T, b []byte) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		t.Fatalf("empty image: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPieWedges_Percentages(t *testing.T) {
	wedges, err := chart.PieWedges(locations)
	if err != nil {
		t.Fatalf("PieWedges: %v", err)
	}

	want := []struct {
		label string
		pct   string
	}{
		{"Highway", "45.5%"},
		{"Urban", "27.3%"},
		{"Rural", "27.3%"},
	}
	if len(wedges) != len(want) {
		t.Fatalf("got %d wedges, want %d", len(wedges), len(want))
	}
	sum := 0.0
	for i, w := range want {
		if wedges[i].Label != w.label {
			t.Errorf("wedge %d label: got %q, want %q", i, wedges[i].Label, w.label)
		}
		if wedges[i].PercentText != w.pct {
			t.Errorf("wedge %d percent: got %q, want %q", i, wedges[i].PercentText, w.pct)
		}
		sum += wedges[i].Fraction
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("fractions sum to %v, want 1", sum)
	}
}

func TestPieWedges_TruncatesLongLabels(t *testing.T) {
	long := "Near School Zone Crossing" // 25 chars
	wedges, err := chart.PieWedges(aggregate.Counts{{Label: long, Count: 1}})
	if err != nil {
		t.Fatalf("PieWedges: %v", err)
	}
	want := "Near School Zone Cro..."
	if wedges[0].Label != want {
		t.Errorf("label: got %q, want %q", wedges[0].Label, want)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Highway", "Highway"},
		{strings.Repeat("a", 20), strings.Repeat("a", 20)},
		{strings.Repeat("a", 21), strings.Repeat("a", 20) + "..."},
		{strings.Repeat("é", 25), strings.Repeat("é", 20) + "..."},
	}
	for _, tt := range tests {
		if got := chart.TruncateLabel(tt.in, chart.MaxLabelLen); got != tt.want {
			t.Errorf("TruncateLabel(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPieWedges_Empty(t *testing.T) {
	if _, err := chart.PieWedges(nil); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if _, err := chart.PieWedges(aggregate.Counts{{Label: "x", Count: 0}}); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("expected ErrNoData for zero total, got %v", err)
	}
}

func TestPie_RendersPNG(t *testing.T) {
	b, err := chart.Pie("Accident Location Distribution", locations)
	if err != nil {
		t.Fatalf("Pie: %v", err)
	}
	assertPNG(t, b)
}

func TestLine_RendersPNG(t *testing.T) {
	totals := []aggregate.DistrictTotal{
		{District: "North", Total: 12},
		{District: "South", Total: 4},
		{District: "East", Total: 9},
	}
	b, err := chart.Line(chart.Labels{Title: "Total Accidents per District", X: "District", Y: "Total Accidents"}, totals)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	assertPNG(t, b)
}

func TestBar_RendersPNG(t *testing.T) {
	b, err := chart.Bar(chart.Labels{Title: "Accidents by Road Type", X: "Road Type", Y: "Number of Accidents"}, locations)
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	assertPNG(t, b)
}

func TestHistogram_RendersPNG(t *testing.T) {
	b, err := chart.Histogram(chart.Labels{Title: "Distribution of Clusters"}, []int{4, 0, 7})
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	assertPNG(t, b)
}

func TestEmptyInput_ErrNoData(t *testing.T) {
	if _, err := chart.Pie("t", nil); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("Pie: expected ErrNoData, got %v", err)
	}
	if _, err := chart.Line(chart.Labels{}, nil); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("Line: expected ErrNoData, got %v", err)
	}
	if _, err := chart.Bar(chart.Labels{}, nil); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("Bar: expected ErrNoData, got %v", err)
	}
	if _, err := chart.Histogram(chart.Labels{}, nil); !errors.Is(err, chart.ErrNoData) {
		t.Errorf("Histogram: expected ErrNoData, got %v", err)
	}
}

// Renders from many goroutines must match a sequential render byte for byte.
func TestPie_ConcurrentRendersAreIsolated(t *testing.T) {
	want, err := chart.Pie("Locations", locations)
	if err != nil {
		t.Fatalf("Pie: %v", err)
	}

	other := aggregate.Counts{{Label: "A", Count: 1}, {Label: "B", Count: 9}}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := chart.Pie("Locations", locations)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(got, want) {
				errs <- errors.New("concurrent render differs from sequential render")
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := chart.Pie("Other", other); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDataURI(t *testing.T) {
	uri := string(chart.DataURI([]byte{0x89, 'P', 'N', 'G'}))
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("missing prefix: %q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "\x89PNG" {
		t.Errorf("payload: got %q", raw)
	}
}
