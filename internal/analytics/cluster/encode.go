package cluster

import (
	"fmt"

	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
)

// LabelEncode assigns each distinct value an integer code in the order it
// is first seen. It returns the per-value codes and the code table.
func LabelEncode(values []string) ([]int, []string) {
	codes := make([]int, len(values))
	index := make(map[string]int)
	var classes []string
	for i, v := range values {
		c, ok := index[v]
		if !ok {
			c = len(classes)
			index[v] = c
			classes = append(classes, v)
		}
		codes[i] = c
	}
	return codes, classes
}

// EncodeTable label-encodes each named column independently and returns a
// row-major matrix of the codes as float64.
func EncodeTable(t *dataset.Table, columns []string) ([][]float64, error) {
	if err := t.Require(columns...); err != nil {
		return nil, err
	}

	points := make([][]float64, t.Len())
	for i := range points {
		points[i] = make([]float64, len(columns))
	}
	for j, name := range columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		codes, _ := LabelEncode(col)
		for i, c := range codes {
			points[i][j] = float64(c)
		}
	}
	return points, nil
}
