// xsec looks up production cross sections and their uncertainties from
// tabulated grid data, interpolating between the grid points.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hepkit/xsection/config"
	"github.com/hepkit/xsection/diag"
	"github.com/hepkit/xsection/version"
)

var (
	// Global flags
	verbose bool
	dataDir string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "xsec",
	Short: "Table-based cross-section calculator",
	Long: `xsec interpolates tabulated production cross sections and returns the
central value together with its combined asymmetric uncertainty.

Tables are referred to by preset keys such as "13TeV.n2x1+-.wino" (see
"xsec list") or by a path to a grid file with a matching ".info"
annotation file.`,
	Version:       version.SourceVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"show annotation warnings and debug output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(),
		"base directory for preset table data")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
}

func defaultDataDir() string {
	if dir := os.Getenv("XSEC_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// resolvePaths turns a table argument into grid and info paths. An existing
// file wins over a preset key of the same name.
func resolvePaths(arg, infoPath string) (string, string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, infoPath, nil
	}
	grid, presetInfo, err := config.TablePaths(arg, dataDir)
	if err != nil {
		return "", "", fmt.Errorf("%q is neither a file nor a preset table key", arg)
	}
	if infoPath == "" {
		infoPath = presetInfo
	}
	return grid, infoPath, nil
}

func newSink() *diag.Sink {
	if verbose {
		return diag.NewLogged(logger)
	}
	return diag.New()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
