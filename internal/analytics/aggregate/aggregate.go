// Package aggregate turns a dataset.Table into the series the charts plot.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	"github.com/dalemusser/accidentdash/internal/domain/models"
)

// Count is one category and how many rows carried it.
type Count struct {
	Label string
	Count int
}

// Counts is an ordered category → count series.
type Counts []Count

// Total sums every count.
func (c Counts) Total() int {
	n := 0
	for _, e := range c {
		n += e.Count
	}
	return n
}

// Labels returns the labels in series order.
func (c Counts) Labels() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Label
	}
	return out
}

// DistrictTotal is one row of the per-district totals file.
type DistrictTotal struct {
	District string
	Total    float64
}

// CountValues groups values, counts them, and orders by descending count.
// Ties keep the order in which each category was first seen.
func CountValues(values []string) Counts {
	pos := make(map[string]int)
	var out Counts
	for _, v := range values {
		if i, ok := pos[v]; ok {
			out[i].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, Count{Label: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CountByCategory counts the values of column in t.
func CountByCategory(t *dataset.Table, column string) (Counts, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return CountValues(values), nil
}

// TotalsByDistrict reads the pre-aggregated per-district totals, keeping
// the file's row order.
func TotalsByDistrict(t *dataset.Table) ([]DistrictTotal, error) {
	if err := t.Require(models.ColDistrictName, models.ColTotalAccidents); err != nil {
		return nil, err
	}
	names, _ := t.Column(models.ColDistrictName)
	totals, _ := t.Column(models.ColTotalAccidents)

	out := make([]DistrictTotal, len(names))
	for i := range names {
		v, err := strconv.ParseFloat(strings.TrimSpace(totals[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d %s=%q is not a number",
				dataset.ErrParse, i+2, models.ColTotalAccidents, totals[i])
		}
		out[i] = DistrictTotal{District: names[i], Total: v}
	}
	return out, nil
}
