package runner

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Console prints the human-readable pipeline trace. The same detail is
// always persisted as structured JSON; this is only presentation. A disabled
// console (tests, --quiet) swallows everything.
type Console struct {
	enabled bool
}

// NewConsole creates a console printer.
func NewConsole(enabled bool) *Console {
	return &Console{enabled: enabled}
}

// Banner prints the pipeline header.
func (c *Console) Banner(project string) {
	if !c.enabled {
		return
	}
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("BidDoc Ops Center - Document Pipeline")
	pterm.Info.Println("Project: " + project)
	pterm.Println()
}

// RunInfo prints the run identity and workspace location.
func (c *Console) RunInfo(id, dir string) {
	if !c.enabled {
		return
	}
	pterm.Info.Printfln("Run ID: %s", id)
	pterm.Info.Printfln("Workspace: %s", dir)
	pterm.Println()
}

// StepRunning announces a stage start.
func (c *Console) StepRunning(n int, name string) {
	if !c.enabled {
		return
	}
	pterm.Printf("  [...] Step %d: %s\n", n, name)
}

// StepDone reports a finished stage.
func (c *Console) StepDone(n int, name string, passed bool) {
	if !c.enabled {
		return
	}
	if passed {
		pterm.Success.Printfln("Step %d: %s", n, name)
	} else {
		pterm.Error.Printfln("Step %d: %s", n, name)
	}
}

// StepSkipped reports a stage that was skipped with a reason.
func (c *Console) StepSkipped(n int, name, reason string) {
	if !c.enabled {
		return
	}
	pterm.Warning.Printfln("Step %d: %s skipped (%s)", n, name, reason)
}

// Gate reports a gate verdict with an optional detail suffix.
func (c *Console) Gate(name string, passed bool, detail string) {
	if !c.enabled {
		return
	}
	line := name
	if detail != "" {
		line = fmt.Sprintf("%s %s", name, detail)
	}
	if passed {
		pterm.Success.Printfln("  %s", line)
	} else {
		pterm.Error.Printfln("  %s", line)
	}
}

// FailDetail lists the exact offending items behind a gate failure.
func (c *Console) FailDetail(header string, items []string) {
	if !c.enabled {
		return
	}
	pterm.Error.Println(header)
	for _, item := range items {
		pterm.Printf("      - %s\n", item)
	}
	pterm.Println()
}

// Final prints the overall run verdict.
func (c *Console) Final(passed bool, outputsDir string, durationMs int64) {
	if !c.enabled {
		return
	}
	pterm.Println()
	if passed {
		pterm.Success.Println("Pipeline Complete")
		if outputsDir != "" {
			pterm.Info.Printfln("Output: %s", outputsDir)
		}
	} else {
		pterm.Error.Println("Pipeline Failed")
	}
	pterm.Info.Printfln("Duration: %dms", durationMs)
}
