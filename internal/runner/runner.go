package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/anonymize"
	"github.com/biddoc-ops/biddoc/internal/assemble"
	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/export"
	"github.com/biddoc-ops/biddoc/internal/gate"
	"github.com/biddoc-ops/biddoc/internal/logger"
	"github.com/biddoc-ops/biddoc/internal/tone"
)

// PDFExporter renders the final markdown document to a portable format.
type PDFExporter interface {
	Export(markdown, outputPath string) error
}

// Options control one pipeline invocation.
type Options struct {
	ConfigFile string
	BaseDir    string // runs root, defaults to artifacts/biddoc/runs
	Step       string // restrict execution to one named stage
	DryRun     bool   // state transitions only, no file I/O
	Quiet      bool   // suppress console presentation
	Exporter   PDFExporter
}

// Runner sequences the pipeline stages over a run workspace. It is the only
// place holding mutable execution state; the stages themselves are pure
// functions over (text, config).
type Runner struct {
	cfg      *config.Config
	logger   *logger.Logger
	console  *Console
	exporter PDFExporter
	opts     Options
}

// New creates a pipeline runner.
func New(cfg *config.Config, log *logger.Logger, opts Options) *Runner {
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Join("artifacts", "biddoc", "runs")
	}

	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.New(cfg.Export, log)
	}

	return &Runner{
		cfg:      cfg,
		logger:   log,
		console:  NewConsole(!opts.Quiet),
		exporter: exporter,
		opts:     opts,
	}
}

// Run executes the pipeline: anonymize, gate 1, tone, gate 2, assemble,
// gate 3, export. A gate failure halts before the next stage; the summary
// and gate report are written in every case. The returned error covers only
// pre-stage conditions (missing input, workspace creation).
func (r *Runner) Run() (*Summary, error) {
	started := time.Now()

	summary := &Summary{
		ConfigFile:  r.opts.ConfigFile,
		ProjectName: r.cfg.ProjectName,
		StartedAt:   started.Format(time.RFC3339),
		Steps:       make([]StageResult, 0),
		Gates:       make([]gate.Result, 0),
	}

	stages := r.selectedStages()
	r.console.Banner(r.cfg.ProjectName)

	if r.opts.DryRun {
		return r.runDry(summary, stages, started), nil
	}

	// Input is verified before the workspace exists, so a missing file
	// mutates nothing on disk.
	if _, err := os.Stat(r.cfg.InputFile); err != nil {
		return nil, fmt.Errorf("input file not found: %s", r.cfg.InputFile)
	}

	ws, err := NewWorkspace(r.opts.BaseDir)
	if err != nil {
		return nil, err
	}
	summary.RunID = ws.ID

	log := r.logger.WithRunID(ws.ID)
	log.Info("Run workspace created", zap.String("dir", ws.Root))
	r.console.RunInfo(ws.ID, ws.Root)

	inputCopy, err := ws.CopyInput(r.cfg.InputFile)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(inputCopy), filepath.Ext(inputCopy))

	halted := false
	for _, stage := range stages {
		if halted {
			break
		}

		switch stage {
		case StageAnonymize:
			halted = !r.runAnonymize(summary, ws, inputCopy, base, log)
		case StageTone:
			halted = !r.runTone(summary, ws, base, log)
		case StageAssemble:
			halted = !r.runAssemble(summary, ws, base, log)
		case StageExport:
			r.runExport(summary, ws, base, log)
		}
	}

	r.finalize(summary, ws, started, log)
	return summary, nil
}

// runDry walks the same stage sequence without touching the filesystem.
func (r *Runner) runDry(summary *Summary, stages []string, started time.Time) *Summary {
	summary.RunID = newRunID(started)

	for i, stage := range stages {
		r.console.StepRunning(i+1, stage+" [dry-run]")
		summary.Steps = append(summary.Steps, StageResult{Step: stage, Passed: true})
		r.console.StepDone(i+1, stage+" [dry-run]", true)
	}

	summary.CompletedAt = time.Now().Format(time.RFC3339)
	summary.TotalDurationMs = time.Since(started).Milliseconds()
	summary.OverallPassed = true
	r.console.Final(true, "", summary.TotalDurationMs)

	return summary
}

func (r *Runner) runAnonymize(summary *Summary, ws *Workspace, inputPath, base string, log *logger.Logger) bool {
	log = log.WithComponent(StageAnonymize)
	r.console.StepRunning(1, "Anonymize")
	stageStart := time.Now()

	text, err := os.ReadFile(inputPath)
	if err != nil {
		return r.failStage(summary, StageAnonymize, stageStart, err, log)
	}

	anonymizer := anonymize.New(r.cfg.Anonymize, log)
	result := anonymizer.Mask(string(text))

	outPath := ws.OutputPath(base + "_anon.txt")
	if err := os.WriteFile(outPath, []byte(result.MaskedText), 0o644); err != nil {
		return r.failStage(summary, StageAnonymize, stageStart, err, log)
	}
	if err := writeJSON(ws.ReportPath("qa_report.json"), result.Report); err != nil {
		return r.failStage(summary, StageAnonymize, stageStart, err, log)
	}

	g := anonymize.CheckGate1(result.MaskedText, r.cfg, log)
	summary.Gates = append(summary.Gates, g)
	summary.Steps = append(summary.Steps, StageResult{
		Step:       StageAnonymize,
		Passed:     g.Passed,
		DurationMs: time.Since(stageStart).Milliseconds(),
		Output:     outPath,
	})

	r.console.StepDone(1, "Anonymize", g.Passed)
	remaining, _ := g.Details["remaining"].([]string)
	r.console.Gate("Gate1", g.Passed, fmt.Sprintf("(잔여 식별요소: %d건)", len(remaining)))

	if !g.Passed {
		log.Error("Gate1 failed", zap.Strings("remaining", remaining))
		r.console.FailDetail("Gate1 실패: 식별 요소 잔여", remaining)
		return false
	}

	log.Info("Anonymize stage passed", zap.Int("total_masked", result.Report.TotalMasked))
	return true
}

func (r *Runner) runTone(summary *Summary, ws *Workspace, base string, log *logger.Logger) bool {
	log = log.WithComponent(StageTone)
	r.console.StepRunning(2, "Tone Rewrite")
	stageStart := time.Now()

	anonText, err := os.ReadFile(ws.OutputPath(base + "_anon.txt"))
	if err != nil {
		return r.failStage(summary, StageTone, stageStart, err, log)
	}

	rewritten := tone.Rewrite(string(anonText), r.cfg.Tone)

	outPath := ws.OutputPath(base + "_tone.txt")
	if err := os.WriteFile(outPath, []byte(rewritten), 0o644); err != nil {
		return r.failStage(summary, StageTone, stageStart, err, log)
	}

	g := tone.CheckGate2(string(anonText), rewritten, r.cfg)
	summary.Gates = append(summary.Gates, g)
	summary.Steps = append(summary.Steps, StageResult{
		Step:       StageTone,
		Passed:     g.Passed,
		DurationMs: time.Since(stageStart).Milliseconds(),
		Output:     outPath,
	})

	r.console.StepDone(2, "Tone Rewrite", g.Passed)
	r.console.Gate("Gate2", g.Passed, "")

	if !g.Passed {
		log.Error("Gate2 failed", zap.Any("checks", g.Details["checks"]))
		r.console.FailDetail("Gate2 실패: 톤 검증", nil)
		return false
	}

	log.Info("Tone stage passed")
	return true
}

func (r *Runner) runAssemble(summary *Summary, ws *Workspace, base string, log *logger.Logger) bool {
	log = log.WithComponent(StageAssemble)
	r.console.StepRunning(3, "Assemble")
	stageStart := time.Now()

	tonedText, err := os.ReadFile(ws.OutputPath(base + "_tone.txt"))
	if err != nil {
		return r.failStage(summary, StageAssemble, stageStart, err, log)
	}

	document := assemble.Assemble(string(tonedText), r.cfg.Assemble, time.Now())

	outPath := ws.OutputPath(base + "_final.md")
	if err := os.WriteFile(outPath, []byte(document), 0o644); err != nil {
		return r.failStage(summary, StageAssemble, stageStart, err, log)
	}

	g := assemble.CheckGate3(document, r.cfg.Assemble)
	summary.Gates = append(summary.Gates, g)
	summary.Steps = append(summary.Steps, StageResult{
		Step:       StageAssemble,
		Passed:     g.Passed,
		DurationMs: time.Since(stageStart).Milliseconds(),
		Output:     outPath,
	})

	found, _ := g.Details["found"].(int)
	totalRequired, _ := g.Details["total_required"].(int)
	r.console.StepDone(3, "Assemble", g.Passed)
	r.console.Gate("Gate3", g.Passed, fmt.Sprintf("(%d/%d장)", found, totalRequired))

	if !g.Passed {
		missing, _ := g.Details["missing"].([]string)
		log.Error("Gate3 failed", zap.Strings("missing", missing))
		r.console.FailDetail("Gate3 실패: 누락 페이지", missing)
		return false
	}

	log.Info("Assemble stage passed", zap.Int("sections", found))
	return true
}

func (r *Runner) runExport(summary *Summary, ws *Workspace, base string, log *logger.Logger) {
	log = log.WithComponent(StageExport)
	r.console.StepRunning(4, "Export PDF")
	stageStart := time.Now()

	document, err := os.ReadFile(ws.OutputPath(base + "_final.md"))
	if err != nil {
		r.failStage(summary, StageExport, stageStart, err, log)
		return
	}

	outPath := ws.OutputPath(base + "_final.pdf")
	err = r.exporter.Export(string(document), outPath)

	switch {
	case err == nil:
		summary.Steps = append(summary.Steps, StageResult{
			Step:       StageExport,
			Passed:     true,
			DurationMs: time.Since(stageStart).Milliseconds(),
			Output:     outPath,
		})
		r.console.StepDone(4, "Export PDF", true)
		log.Info("Export stage passed", zap.String("output", outPath))

	case errors.Is(err, export.ErrUnavailable):
		// Absence of a renderer is not a pipeline failure.
		summary.Steps = append(summary.Steps, StageResult{
			Step:       StageExport,
			Passed:     true,
			DurationMs: time.Since(stageStart).Milliseconds(),
			Skipped:    true,
			Reason:     "pdf renderer not installed",
		})
		r.console.StepSkipped(4, "Export PDF", "pdf renderer not installed")
		log.Warn("Export skipped: no pdf renderer available")

	default:
		r.failStage(summary, StageExport, stageStart, err, log)
	}
}

// failStage records an unexpected stage error. The stage result keeps the
// error message; the caller halts the pipeline at the stage boundary.
func (r *Runner) failStage(summary *Summary, stage string, stageStart time.Time, err error, log *logger.Logger) bool {
	log.Error("Stage failed", zap.String("stage", stage), zap.Error(err))

	summary.Steps = append(summary.Steps, StageResult{
		Step:       stage,
		Passed:     false,
		DurationMs: time.Since(stageStart).Milliseconds(),
		Error:      err.Error(),
	})

	r.console.FailDetail(fmt.Sprintf("Stage %s error", stage), []string{err.Error()})
	return false
}

// finalize closes the summary and persists it together with the gate report,
// on success and failure alike.
func (r *Runner) finalize(summary *Summary, ws *Workspace, started time.Time, log *logger.Logger) {
	summary.CompletedAt = time.Now().Format(time.RFC3339)
	summary.TotalDurationMs = time.Since(started).Milliseconds()

	summary.OverallPassed = true
	for _, step := range summary.Steps {
		if !step.Passed {
			summary.OverallPassed = false
			break
		}
	}

	if err := writeJSON(ws.LogPath("run_summary.json"), summary); err != nil {
		log.Warn("Failed to write run summary", zap.Error(err))
	}

	gatesPassed := true
	for _, g := range summary.Gates {
		if !g.Passed {
			gatesPassed = false
			break
		}
	}

	report := GateReport{
		RunID:         summary.RunID,
		OverallPassed: gatesPassed,
		Gates:         summary.Gates,
		CompletedAt:   summary.CompletedAt,
	}
	if err := writeJSON(ws.ReportPath("gate_results.json"), report); err != nil {
		log.Warn("Failed to write gate report", zap.Error(err))
	}

	r.console.Final(summary.OverallPassed, ws.OutputPath(""), summary.TotalDurationMs)
	log.Info("Run completed",
		zap.Bool("overall_passed", summary.OverallPassed),
		zap.Int64("duration_ms", summary.TotalDurationMs),
	)
}

func (r *Runner) selectedStages() []string {
	if r.opts.Step == "" {
		return AllStages
	}
	for _, stage := range AllStages {
		if stage == r.opts.Step {
			return []string{stage}
		}
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
