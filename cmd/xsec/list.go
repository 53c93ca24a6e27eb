package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hepkit/xsection/config"
)

var (
	listAll  bool
	listFull bool
)

var listCmd = &cobra.Command{
	Use:   "list [SUBSTRING...]",
	Short: "List the preset cross-section tables",
	Long: `Lists the preset table keys, optionally filtered to those containing
every given substring. With --all, globs the data directory for grid
files instead, including ones without a preset key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listAll {
			return listDataDir(cmd, args)
		}
		for _, key := range config.Keys() {
			if !matchesAll(key, args) {
				continue
			}
			if listFull {
				grid, _, _ := config.TablePaths(key, dataDir)
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", key, grid)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "glob the data directory for grid files")
	listCmd.Flags().BoolVar(&listFull, "full", false, "show file paths next to the keys")
}

func matchesAll(s string, substrs []string) bool {
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func listDataDir(cmd *cobra.Command, args []string) error {
	var paths []string
	err := filepath.Walk(dataDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || strings.HasSuffix(path, ".info") {
			return nil
		}
		if matchesAll(path, args) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("globbing %s: %w", dataDir, err)
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
