package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/runner"
)

// errRunFailed marks a run that completed but did not pass every gate. It is
// mapped to exit code 1 in main, after the deferred log sync has run.
var errRunFailed = errors.New("run failed")

var (
	runConfigPath string
	runStep       string
	runDryRun     bool
	runVerbose    bool
	runQuiet      bool
	runBaseDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the document pipeline",
	Long: `Execute the full pipeline over the configured input file, or a
single stage with --step. Exits 0 only when every executed gate passed.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to configuration file (required)")
	runCmd.Flags().StringVar(&runStep, "step", "", "run only one stage (anonymize|tone|assemble|export)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "walk the stage sequence without file I/O")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress console presentation")
	runCmd.Flags().StringVar(&runBaseDir, "runs-dir", "", "base directory for run workspaces")
	_ = runCmd.MarkFlagRequired("config")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if err := validateStep(runStep); err != nil {
		return err
	}

	cfg, log, err := setup(runConfigPath, runVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	r := runner.New(cfg, log, runner.Options{
		ConfigFile: runConfigPath,
		BaseDir:    runBaseDir,
		Step:       runStep,
		DryRun:     runDryRun,
		Quiet:      runQuiet,
	})

	summary, err := r.Run()
	if err != nil {
		log.Error("Pipeline could not start", zap.Error(err))
		return err
	}

	if !summary.OverallPassed {
		return errRunFailed
	}
	return nil
}

func validateStep(step string) error {
	if step == "" {
		return nil
	}
	for _, s := range runner.AllStages {
		if s == step {
			return nil
		}
	}
	return fmt.Errorf("unknown step: %s (must be one of anonymize, tone, assemble, export)", step)
}
