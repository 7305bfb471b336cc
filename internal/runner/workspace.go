package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Workspace is the exclusive artifact directory tree of one run. It is
// created fresh per invocation and never deleted by the pipeline; the run
// trail stays inspectable after success and failure alike.
type Workspace struct {
	ID   string
	Root string
}

// newRunID derives a run identifier from the creation time plus a
// collision-resistant suffix, so two runs started in the same second still
// get distinct workspaces.
func newRunID(now time.Time) string {
	return now.Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

// NewWorkspace creates the run directory with its four fixed subareas.
func NewWorkspace(baseDir string) (*Workspace, error) {
	id := newRunID(time.Now())
	root := filepath.Join(baseDir, id)

	for _, sub := range []string{"inputs", "outputs", "reports", "logs"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create run workspace: %w", err)
		}
	}

	return &Workspace{ID: id, Root: root}, nil
}

// InputPath returns a path under the run's inputs area.
func (w *Workspace) InputPath(name string) string {
	return filepath.Join(w.Root, "inputs", name)
}

// OutputPath returns a path under the run's outputs area.
func (w *Workspace) OutputPath(name string) string {
	return filepath.Join(w.Root, "outputs", name)
}

// ReportPath returns a path under the run's reports area.
func (w *Workspace) ReportPath(name string) string {
	return filepath.Join(w.Root, "reports", name)
}

// LogPath returns a path under the run's logs area.
func (w *Workspace) LogPath(name string) string {
	return filepath.Join(w.Root, "logs", name)
}

// CopyInput copies the source file into the inputs area and returns the
// destination path.
func (w *Workspace) CopyInput(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	dest := w.InputPath(filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create input copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("failed to copy input file: %w", err)
	}

	return dest, nil
}
