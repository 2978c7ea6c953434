// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newTrainCmd(ro *rootOpts) *cobra.Command {
	exp := defaultExperiment()
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train one model on one stored split and record the test result",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if ro.config == "" {
				return nil
			}
			return applyConfigFile(cmd, &exp, ro.config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ro.newLogger("train")
			if err != nil {
				return err
			}
			defer log.Close()

			sum, path, err := runExperiment(cmd.Context(), exp, log)
			if err != nil {
				return err
			}

			cmd.Printf("%s split %d: test cost %.4f, test %s %.4f (%d epochs, best val %.4f)\n",
				exp.Dataset, exp.Split, sum.TestLoss, sum.Metric, sum.TestMetric, sum.EpochsRun, sum.BestVal)
			cmd.Printf("record: %s\n", path)
			return nil
		},
	}
	registerExperimentFlags(cmd, &exp)
	cmd.Flags().IntVar(&exp.Split, "split", exp.Split, "stored split index to train on")
	return cmd
}
