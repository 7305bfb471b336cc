package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/export"
	"github.com/biddoc-ops/biddoc/internal/logger"
	"github.com/biddoc-ops/biddoc/internal/runner"
)

// unavailableExporter stands in for an environment with no PDF renderer.
type unavailableExporter struct{}

func (unavailableExporter) Export(markdown, outputPath string) error {
	return export.ErrUnavailable
}

// recordingExporter simulates a working renderer.
type recordingExporter struct {
	calls int
}

func (r *recordingExporter) Export(markdown, outputPath string) error {
	r.calls++
	return os.WriteFile(outputPath, []byte("%PDF-fake"), 0o644)
}

const passingInput = `1. 조직 구성
운영 조직을 구성하였다.

2. 지원 실적
지원 실적이 있다.

문의: 010-1234-5678
`

func testSetup(t *testing.T, input string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	inputPath := filepath.Join(dir, "business_plan.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	cfg := config.GetDefaults()
	cfg.InputFile = inputPath

	return cfg, filepath.Join(dir, "runs")
}

func TestRunFullPipeline(t *testing.T) {
	cfg, runsDir := testSetup(t, passingInput)

	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir:  runsDir,
		Quiet:    true,
		Exporter: unavailableExporter{},
	})

	summary, err := r.Run()
	require.NoError(t, err)

	assert.True(t, summary.OverallPassed)
	require.Len(t, summary.Steps, 4)
	require.Len(t, summary.Gates, 3)

	for _, g := range summary.Gates {
		assert.True(t, g.Passed, "gate %s failed: %v", g.Gate, g.Details)
	}

	exportStep := summary.Steps[3]
	assert.Equal(t, runner.StageExport, exportStep.Step)
	assert.True(t, exportStep.Skipped)
	assert.True(t, exportStep.Passed, "missing renderer must not fail the run")

	// Artifact trail
	root := filepath.Join(runsDir, summary.RunID)
	for _, rel := range []string{
		"inputs/business_plan.txt",
		"outputs/business_plan_anon.txt",
		"outputs/business_plan_tone.txt",
		"outputs/business_plan_final.md",
		"reports/qa_report.json",
		"reports/gate_results.json",
		"logs/run_summary.json",
	} {
		_, err := os.Stat(filepath.Join(root, rel))
		assert.NoError(t, err, "missing artifact %s", rel)
	}
}

func TestRunWithWorkingExporter(t *testing.T) {
	cfg, runsDir := testSetup(t, passingInput)

	exp := &recordingExporter{}
	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir:  runsDir,
		Quiet:    true,
		Exporter: exp,
	})

	summary, err := r.Run()
	require.NoError(t, err)

	assert.True(t, summary.OverallPassed)
	assert.Equal(t, 1, exp.calls)

	pdf := filepath.Join(runsDir, summary.RunID, "outputs", "business_plan_final.pdf")
	_, err = os.Stat(pdf)
	assert.NoError(t, err)
}

func TestRunGateFailureHalts(t *testing.T) {
	cfg, runsDir := testSetup(t, "여수여행센터 운영 계획이다.\n")
	// Without the custom masking rule the company fragment survives
	// anonymization and Gate 1 must stop the pipeline.
	cfg.Anonymize.CustomPatterns = nil

	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir:  runsDir,
		Quiet:    true,
		Exporter: unavailableExporter{},
	})

	summary, err := r.Run()
	require.NoError(t, err)

	assert.False(t, summary.OverallPassed)
	require.Len(t, summary.Steps, 1, "pipeline must halt at the failed gate")
	require.Len(t, summary.Gates, 1)
	assert.False(t, summary.Gates[0].Passed)

	// Later stage outputs must not exist.
	root := filepath.Join(runsDir, summary.RunID)
	_, err = os.Stat(filepath.Join(root, "outputs", "business_plan_tone.txt"))
	assert.True(t, os.IsNotExist(err))

	// The reports are still written on failure.
	_, err = os.Stat(filepath.Join(root, "reports", "gate_results.json"))
	assert.NoError(t, err)
}

func TestRunSingleStep(t *testing.T) {
	cfg, runsDir := testSetup(t, passingInput)

	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir:  runsDir,
		Step:     runner.StageAnonymize,
		Quiet:    true,
		Exporter: unavailableExporter{},
	})

	summary, err := r.Run()
	require.NoError(t, err)

	assert.True(t, summary.OverallPassed)
	require.Len(t, summary.Steps, 1)
	assert.Equal(t, runner.StageAnonymize, summary.Steps[0].Step)
}

func TestRunDry(t *testing.T) {
	cfg, runsDir := testSetup(t, passingInput)

	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir: runsDir,
		DryRun:  true,
		Quiet:   true,
	})

	summary, err := r.Run()
	require.NoError(t, err)

	assert.True(t, summary.OverallPassed)
	assert.Len(t, summary.Steps, 4)
	for _, step := range summary.Steps {
		assert.True(t, step.Passed)
	}

	// Dry runs perform no file I/O at all.
	_, err = os.Stat(runsDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunMissingInput(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.InputFile = filepath.Join(t.TempDir(), "does-not-exist.txt")
	runsDir := filepath.Join(t.TempDir(), "runs")

	r := runner.New(cfg, logger.NewNop(), runner.Options{
		BaseDir: runsDir,
		Quiet:   true,
	})

	_, err := r.Run()
	require.Error(t, err)

	// No workspace mutation on a missing input.
	_, statErr := os.Stat(runsDir)
	assert.True(t, os.IsNotExist(statErr))
}
