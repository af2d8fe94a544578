// Package cli wires resiliencectl's cobra command tree: small demo
// subcommands that exercise the library packages (pkg/interval,
// pkg/metrics, pkg/registry, pkg/schedule) end to end, outside of tests.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resilientgo/core/cmd/resiliencectl/internal/cliconfig"
	"github.com/resilientgo/core/pkg/rlog"
)

var (
	cfgFile string
	verbose bool
	cfg     *cliconfig.Config
	logger  *rlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resiliencectl",
	Short: "Inspect and exercise the resilience core primitives",
	Long: `resiliencectl is a small operator CLI around the resilience core
library: retry-interval tables, metrics windows, the registry, and the
scheduled executor, each runnable as a standalone demo.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := cliconfig.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.Verbose = true
		}

		level := rlog.InfoLevel
		if cfg.Verbose {
			level = rlog.DebugLevel
		}
		logger = rlog.New(&rlog.Config{Level: level, Format: cfg.RlogFormat(), Output: os.Stderr, Component: "resiliencectl"})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./resilience.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}
