package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hepkit/xsection/format"
	"github.com/hepkit/xsection/interp"
	"github.com/hepkit/xsection/table"
)

var (
	getValueName string
	getInfoPath  string
	getSimplest  bool
	getSimple    bool
	getRelative  bool
	getNoUnit    bool
)

var getCmd = &cobra.Command{
	Use:   "get TABLE [PARAM...]",
	Short: "Interpolate a cross-section table at a parameter point",
	Long: `Interpolates the named table at the given parameter values and prints
the central value with its combined asymmetric uncertainty.

Run with a table but without parameters to see which parameters the
table expects.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&getValueName, "name", "xsec", "value to look up")
	getCmd.Flags().StringVar(&getInfoPath, "info", "", "annotation file overriding the default")
	getCmd.Flags().BoolVarP(&getSimplest, "simplest", "0", false, "show only the central value")
	getCmd.Flags().BoolVarP(&getSimple, "simple", "1", false, "show value and uncertainties as plain numbers")
	getCmd.Flags().BoolVarP(&getRelative, "relative", "2", false, "show uncertainties relative to the central value")
	getCmd.Flags().BoolVar(&getNoUnit, "no-unit", false, "suppress the unit in the output")
}

// defaultInterpolator picks the fitting strategy by dimensionality: a log-log
// cubic spline for one parameter, a log-log bivariate spline for two, and
// multilinear interpolation in log space above that.
func defaultInterpolator(dim int) (interp.Interpolator, error) {
	switch {
	case dim == 1:
		return &interp.OneDim{Kind: interp.Spline, Axes: interp.AxesLogLog}, nil
	case dim == 2:
		return interp.NewGrid("spline", []string{"log", "log"}, "log")
	default:
		wx := make([]string, dim)
		for i := range wx {
			wx[i] = "log"
		}
		return interp.NewGrid("linear", wx, "log")
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	grid, info, err := resolvePaths(args[0], getInfoPath)
	if err != nil {
		return err
	}
	f, err := table.Load(grid, info, newSink())
	if err != nil {
		return err
	}
	tab, err := f.Table(getValueName)
	if err != nil {
		return err
	}

	if len(args)-1 != tab.Dim() {
		printTableUsage(cmd, args[0], f)
		return fmt.Errorf("table %q expects %d parameter(s), got %d",
			getValueName, tab.Dim(), len(args)-1)
	}
	xs := make([]float64, tab.Dim())
	for i, arg := range args[1:] {
		if xs[i], err = strconv.ParseFloat(arg, 64); err != nil {
			return fmt.Errorf("parameter %q is not a number", arg)
		}
	}

	itp, err := defaultInterpolator(tab.Dim())
	if err != nil {
		return err
	}
	ip, err := itp.Interpolate(tab)
	if err != nil {
		return err
	}
	central, uncP, uncM, err := ip.TupleAt(xs...)
	if err != nil {
		return err
	}

	unit := tab.Unit
	if getNoUnit {
		unit = ""
	}
	switch {
	case getSimplest:
		fmt.Fprintf(cmd.OutOrStdout(), "%.6g\n", central)
	case getSimple:
		fmt.Fprintf(cmd.OutOrStdout(), "%.6g %.6g %.6g\n", central, uncP, uncM)
	case getRelative:
		fmt.Fprintln(cmd.OutOrStdout(), format.Relative(central, uncP, uncM, unit))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), format.Value(central, uncP, uncM, unit))
	}
	return nil
}

// printTableUsage shows the parameters and values of a table, for when a
// query has the wrong shape.
func printTableUsage(cmd *cobra.Command, name string, f *table.File) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Usage: xsec get %s", name)
	for _, p := range f.ParamMeta() {
		fmt.Fprintf(w, " %s", strings.ToUpper(p.Name))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parameters:")
	for _, p := range f.ParamMeta() {
		fmt.Fprintf(w, "  %-12s [%s]\n", p.Name, p.Unit)
	}
	fmt.Fprintln(w, "Values (--name):")
	for _, v := range f.ValueMeta() {
		fmt.Fprintf(w, "  %-12s [%s]\n", v.Name, v.Unit)
	}
}
