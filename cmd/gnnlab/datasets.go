// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gnnlab/dataset"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the registered benchmark datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dataset.Names() {
				scheme, err := dataset.Lookup(name)
				if err != nil {
					return err
				}
				cmd.Printf("%-32s %s\n", name, scheme)
			}
			return nil
		},
	}
}
