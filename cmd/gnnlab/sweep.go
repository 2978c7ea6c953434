// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// defaultSplits matches the number of stored splits every benchmark ships.
const defaultSplits = 10

func newSweepCmd(ro *rootOpts) *cobra.Command {
	exp := defaultExperiment()
	var (
		splits   int
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Train every stored split concurrently and report mean and spread",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if ro.config == "" {
				return nil
			}
			return applyConfigFile(cmd, &exp, ro.config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if splits < 1 {
				return fmt.Errorf("splits %d: need at least one", splits)
			}
			if parallel < 1 {
				return fmt.Errorf("parallel %d: need at least one", parallel)
			}
			log, err := ro.newLogger("sweep")
			if err != nil {
				return err
			}
			defer log.Close()

			names := make([]string, splits)
			metrics := make([]float64, splits)
			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.SetLimit(parallel)
			for split := 0; split < splits; split++ {
				grp.Go(func() error {
					e := exp
					e.Split = split
					sum, path, err := runExperiment(ctx, e, log)
					if err != nil {
						return fmt.Errorf("split %d: %w", split, err)
					}
					names[split] = sum.Metric
					metrics[split] = sum.TestMetric
					log.Info("split finished",
						"split", split, "metric", sum.Metric, "test_metric", sum.TestMetric, "record", path)
					return nil
				})
			}
			if err = grp.Wait(); err != nil {
				return err
			}

			mean := stat.Mean(metrics, nil)
			sd := 0.0
			if splits > 1 {
				sd = stat.StdDev(metrics, nil)
			}
			cmd.Printf("%s %s over %d splits: mean %s %.4f, sd %.4f\n",
				exp.Dataset, exp.Model, splits, names[0], mean, sd)
			return nil
		},
	}
	registerExperimentFlags(cmd, &exp)
	cmd.Flags().IntVar(&splits, "splits", defaultSplits, "number of stored splits to sweep")
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "concurrent training runs")
	return cmd
}
