package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/logger"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "biddoc",
	Short: "Bid document production pipeline",
	Long: `BidDoc runs a gated document-production pipeline: anonymization,
tone normalization, section assembly and optional PDF export. Every stage
is followed by a validation gate; a gate failure halts the run and leaves
the full artifact trail in the run workspace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.AddCommand(runCmd, watchCmd, initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A failed run already reported itself through the console and the
		// persisted artifacts.
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger from it.
func setup(configPath string, verbose bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	if cfg.Logging.File.Enabled {
		logCfg.File = &logger.FileConfig{
			Enabled: true,
			Path:    cfg.Logging.File.Path,
		}
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
