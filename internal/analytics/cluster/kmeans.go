// Package cluster groups encoded accident records with k-means.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Defaults for Options fields left at zero.
const (
	DefaultK       = 3
	DefaultSeed    = 42
	DefaultMaxIter = 300
)

var (
	// ErrInvalidK is returned when K is not in 1..len(points).
	ErrInvalidK = errors.New("cluster: invalid k")
	// ErrShape is returned for an empty or ragged point matrix.
	ErrShape = errors.New("cluster: points must be a non-empty rectangular matrix")
)

// Options control a k-means run.
type Options struct {
	K       int
	Seed    uint64
	MaxIter int
}

// DefaultOptions returns K=3, Seed=42, MaxIter=300.
func DefaultOptions() Options {
	return Options{K: DefaultK, Seed: DefaultSeed, MaxIter: DefaultMaxIter}
}

func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	return o
}

// Assign partitions points into opts.K clusters and returns the cluster id
// of every point. Centroids are seeded with k-means++ from a PCG source
// seeded by opts.Seed, then refined with Lloyd iterations until no point
// changes cluster or MaxIter is reached. The same points and options
// always yield the same assignment.
func Assign(points [][]float64, opts Options) ([]int, error) {
	opts = opts.withDefaults()
	if len(points) == 0 {
		return nil, ErrShape
	}
	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim || dim == 0 {
			return nil, ErrShape
		}
	}
	if opts.K <= 0 || opts.K > len(points) {
		return nil, fmt.Errorf("%w: k=%d with %d points", ErrInvalidK, opts.K, len(points))
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	centroids := seed(points, opts.K, rng)

	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		changed := false
		for i, p := range points {
			c := nearest(p, centroids)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
		update(points, assign, centroids)
	}
	return assign, nil
}

// Histogram counts the points in each cluster id 0..k-1.
func Histogram(assign []int, k int) []int {
	if k < 0 {
		k = 0
	}
	out := make([]int, k)
	for _, c := range assign {
		if c >= 0 && c < k {
			out[c]++
		}
	}
	return out
}

// seed picks k initial centroids with k-means++.
func seed(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.IntN(len(points))]))

	d2 := make([]float64, len(points))
	for len(centroids) < k {
		for i, p := range points {
			d := floats.Distance(p, centroids[0], 2)
			for _, c := range centroids[1:] {
				d = math.Min(d, floats.Distance(p, c, 2))
			}
			d2[i] = d * d
		}

		total := floats.Sum(d2)
		if total == 0 {
			// Every point already sits on a centroid; take the next one
			// in order so duplicates do not stall seeding.
			centroids = append(centroids, clone(points[len(centroids)%len(points)]))
			continue
		}

		target := rng.Float64() * total
		pick := len(points) - 1
		for i, w := range d2 {
			target -= w
			if target < 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, clone(points[pick]))
	}
	return centroids
}

func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centroids {
		if d := floats.Distance(p, c, 2); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// update moves each centroid to the mean of its points. A centroid with no
// points keeps its position.
func update(points [][]float64, assign []int, centroids [][]float64) {
	sizes := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for j := range sums {
		sums[j] = make([]float64, len(centroids[j]))
	}
	for i, p := range points {
		floats.Add(sums[assign[i]], p)
		sizes[assign[i]]++
	}
	for j := range centroids {
		if sizes[j] == 0 {
			continue
		}
		floats.Scale(1/float64(sizes[j]), sums[j])
		copy(centroids[j], sums[j])
	}
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
