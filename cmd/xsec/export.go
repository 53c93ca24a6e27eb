package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hepkit/xsection/table"
)

var (
	exportValueName string
	exportInfoPath  string
	exportFormat    string
)

var exportCmd = &cobra.Command{
	Use:   "export TABLE",
	Short: "Export a table with its combined uncertainties",
	Long: `Exports the named value of a table as TSV, CSV, or a Mathematica
association whose values carry their uncertainties as Around[...]
expressions.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportValueName, "name", "xsec", "value to export")
	exportCmd.Flags().StringVar(&exportInfoPath, "info", "", "annotation file overriding the default")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "tsv", "output format: tsv, csv or math")
}

func runExport(cmd *cobra.Command, args []string) error {
	grid, info, err := resolvePaths(args[0], exportInfoPath)
	if err != nil {
		return err
	}
	f, err := table.Load(grid, info, newSink())
	if err != nil {
		return err
	}
	tab, err := f.Table(exportValueName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "tsv", "csv":
		sep := '\t'
		if exportFormat == "csv" {
			sep = ','
		}
		w := csv.NewWriter(out)
		w.Comma = sep
		if err := w.Write(tab.Header()); err != nil {
			return err
		}
		for i := 0; i < tab.Len(); i++ {
			key, r := tab.Key(i), tab.Record(i)
			row := make([]string, 0, len(key)+3)
			for _, x := range key {
				row = append(row, fmt.Sprintf("%g", x))
			}
			row = append(row,
				fmt.Sprintf("%g", r.Value),
				fmt.Sprintf("%.5g", r.UncPlus),
				fmt.Sprintf("%.5g", r.UncMinus))
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	case "math":
		return exportMathematica(out, tab)
	}
	return fmt.Errorf("no export format %q", exportFormat)
}

// exportMathematica renders the table as a Mathematica association from
// parameter tuples to Around expressions. Asymmetric uncertainties use the
// Around[x, {minus, plus}] form.
func exportMathematica(out io.Writer, tab *table.Table) error {
	lines := make([]string, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		key, r := tab.Key(i), tab.Record(i)
		params := make([]string, len(key))
		for d, x := range key {
			params[d] = fmt.Sprintf("%g", x)
		}
		lines = append(lines, fmt.Sprintf("  {%s} -> Around[%.5g, {%.5g, %.5g}]",
			strings.Join(params, ", "), r.Value, -r.UncMinus, r.UncPlus))
	}
	_, err := fmt.Fprintf(out, "<|\n%s\n|>\n", strings.Join(lines, ",\n"))
	return err
}
