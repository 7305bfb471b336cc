package anonymize

import "regexp"

// Rule represents a single PII masking rule
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Label   string
}

// Finding represents one masked occurrence
type Finding struct {
	Type     string `json:"type"`
	Original string `json:"original"`
	Masked   string `json:"masked"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Report aggregates all findings of a masking pass. It is written verbatim
// to the run's reports area as qa_report.json.
type Report struct {
	Findings    []Finding `json:"findings"`
	TotalMasked int       `json:"total_masked"`
}

// Result contains the masked text together with its report. The original
// text is kept for gate diagnostics but never serialized.
type Result struct {
	MaskedText string `json:"maskedText"`
	Report     Report `json:"report"`
	Original   string `json:"-"`
}
