package gate

import "encoding/json"

// Result is the outcome of a single validation gate. It is created once by
// the gate check, never mutated, and persisted verbatim into the run's gate
// report.
type Result struct {
	Gate    string
	Passed  bool
	Details map[string]interface{}
}

// New creates a gate result with the given detail map.
func New(name string, passed bool, details map[string]interface{}) Result {
	return Result{Gate: name, Passed: passed, Details: details}
}

// MarshalJSON flattens the detail map next to the gate name and pass flag so
// the persisted report keeps the flat shape tooling expects:
// {"gate": "...", "passed": true, "remaining": [...], ...}
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Details)+2)
	for k, v := range r.Details {
		out[k] = v
	}
	out["gate"] = r.Gate
	out["passed"] = r.Passed
	return json.Marshal(out)
}
