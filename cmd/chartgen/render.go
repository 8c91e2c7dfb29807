package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"github.com/dalemusser/accidentdash/internal/analytics/chart"
	"github.com/dalemusser/accidentdash/internal/analytics/cluster"
	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	"github.com/dalemusser/accidentdash/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	DataDir       string
	OutDir        string
	AccidentsFile string
	DistrictsFile string
	ClusterFile   string
	Cluster       cluster.Options
}

func (o options) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.DataDir, name)
}

// job is one PNG file and the function that draws it.
type job struct {
	file string
	draw func() ([]byte, error)
}

// renderAll loads the datasets, draws every chart and writes them under
// OutDir. It returns the written paths in a fixed order.
func renderAll(ctx context.Context, o options, logger *zap.Logger) ([]string, error) {
	accidents, err := dataset.Load(o.dataPath(o.AccidentsFile))
	if err != nil {
		return nil, err
	}
	districts, err := dataset.Load(o.dataPath(o.DistrictsFile))
	if err != nil {
		return nil, err
	}
	records, err := dataset.Load(o.dataPath(o.ClusterFile))
	if err != nil {
		return nil, err
	}

	locations, err := aggregate.CountByCategory(accidents, models.ColAccidentLocation)
	if err != nil {
		return nil, err
	}
	roads, err := aggregate.CountByCategory(accidents, models.ColRoadType)
	if err != nil {
		return nil, err
	}
	totals, err := aggregate.TotalsByDistrict(districts)
	if err != nil {
		return nil, err
	}
	points, err := cluster.EncodeTable(records, models.ClusterColumns)
	if err != nil {
		return nil, err
	}
	assign, err := cluster.Assign(points, o.Cluster)
	if err != nil {
		return nil, err
	}
	sizes := cluster.Histogram(assign, o.Cluster.K)
	logger.Debug("datasets prepared",
		zap.Int("accidents", accidents.Len()),
		zap.Int("districts", len(totals)),
		zap.Ints("cluster_sizes", sizes))

	jobs := []job{
		{"accident_location.png", func() ([]byte, error) {
			return chart.Pie("Accident Location Distribution", locations)
		}},
		{"district_totals.png", func() ([]byte, error) {
			return chart.Line(chart.Labels{Title: "Total Accidents per District", X: "District", Y: "Total Accidents"}, totals)
		}},
		{"road_type.png", func() ([]byte, error) {
			return chart.Bar(chart.Labels{Title: "Accidents by Road Type", X: "Road Type", Y: "Number of Accidents"}, roads)
		}},
		{"clusters.png", func() ([]byte, error) {
			return chart.Histogram(chart.Labels{Title: "Distribution of Clusters", X: "Cluster", Y: "Number of Data Points"}, sizes)
		}},
	}

	if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			png, err := j.draw()
			if err != nil {
				return fmt.Errorf("%s: %w", j.file, err)
			}
			p := filepath.Join(o.OutDir, j.file)
			if err := os.WriteFile(p, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", j.file, err)
			}
			logger.Info("chart written", zap.String("path", p), zap.Int("bytes", len(png)))
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
