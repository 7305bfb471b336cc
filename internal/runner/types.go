package runner

import "github.com/biddoc-ops/biddoc/internal/gate"

// Stage names in execution order.
const (
	StageAnonymize = "anonymize"
	StageTone      = "tone"
	StageAssemble  = "assemble"
	StageExport    = "export"
)

// AllStages lists the pipeline stages in their hard dependency order: each
// stage's input is the previous stage's output file.
var AllStages = []string{StageAnonymize, StageTone, StageAssemble, StageExport}

// StageResult records one stage execution. Appended to the run summary in
// execution order, never mutated afterwards.
type StageResult struct {
	Step       string `json:"step"`
	Passed     bool   `json:"passed"`
	DurationMs int64  `json:"duration_ms"`
	Output     string `json:"output,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Summary is the full run record written to logs/run_summary.json.
type Summary struct {
	RunID           string        `json:"run_id"`
	ConfigFile      string        `json:"config_file"`
	ProjectName     string        `json:"project_name"`
	StartedAt       string        `json:"started_at"`
	CompletedAt     string        `json:"completed_at"`
	OverallPassed   bool          `json:"overall_passed"`
	Steps           []StageResult `json:"steps"`
	Gates           []gate.Result `json:"gates"`
	TotalDurationMs int64         `json:"total_duration_ms"`
}

// GateReport is written to reports/gate_results.json.
type GateReport struct {
	RunID         string        `json:"run_id"`
	OverallPassed bool          `json:"overall_passed"`
	Gates         []gate.Result `json:"gates"`
	CompletedAt   string        `json:"completed_at"`
}
