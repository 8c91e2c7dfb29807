// Command chartgen renders the dashboard charts from the CSV datasets to
// PNG files, without starting the web server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/accidentdash/internal/analytics/cluster"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chartgen",
		Short:        "render accident dashboard charts to PNG files",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	var (
		o       options
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the location, district, road type and cluster charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.OutDir == "" {
				return fmt.Errorf("--out is required")
			}
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			written, err := renderAll(ctx, o, logger)
			if err != nil {
				logger.Error("render failed", zap.Error(err))
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	def := cluster.DefaultOptions()
	f := cmd.Flags()
	f.StringVar(&o.DataDir, "data", "data", "directory holding the CSV datasets")
	f.StringVar(&o.OutDir, "out", "", "directory the PNG files are written to")
	f.StringVar(&o.AccidentsFile, "accidents", "main.csv", "accident records file")
	f.StringVar(&o.DistrictsFile, "districts", "dis-no.csv", "per-district totals file")
	f.StringVar(&o.ClusterFile, "cluster", "black.csv", "records to cluster")
	f.IntVar(&o.Cluster.K, "k", def.K, "number of clusters")
	f.Uint64Var(&o.Cluster.Seed, "seed", def.Seed, "seed for centroid selection")
	f.IntVar(&o.Cluster.MaxIter, "max-iter", def.MaxIter, "maximum k-means iterations")
	f.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
