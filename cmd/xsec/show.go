package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hepkit/xsection/table"
)

var showInfoPath string

var showCmd = &cobra.Command{
	Use:   "show TABLE",
	Short: "Print a table with its combined uncertainties and its provenance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, info, err := resolvePaths(args[0], showInfoPath)
		if err != nil {
			return err
		}
		sink := newSink()
		f, err := table.Load(grid, info, sink)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), f.Dump())
		for _, w := range sink.Warnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %s\n", w.Scope, w.Message)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showInfoPath, "info", "", "annotation file overriding the default")
}
