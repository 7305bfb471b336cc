package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/logger"
)

// ErrUnavailable means no PDF rendering binary exists in the environment.
// The pipeline treats this as a skip, not a failure.
var ErrUnavailable = errors.New("no pdf renderer available")

// defaultRenderers are tried in order; each takes an HTML file and an output
// path as its two arguments.
var defaultRenderers = []string{"wkhtmltopdf", "weasyprint"}

// Exporter renders the assembled markdown document to a styled PDF through
// an external rendering binary.
type Exporter struct {
	cfg       config.ExportConfig
	logger    *logger.Logger
	md        goldmark.Markdown
	renderers []string
}

// New creates an exporter for the given export configuration.
func New(cfg config.ExportConfig, log *logger.Logger) *Exporter {
	return &Exporter{
		cfg:    cfg,
		logger: log,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
		renderers: defaultRenderers,
	}
}

// Export converts the markdown document into a paginated PDF at outputPath.
// Returns ErrUnavailable when no rendering binary can be found; any other
// error is a real export failure.
func (e *Exporter) Export(markdown, outputPath string) error {
	renderer, err := e.findRenderer()
	if err != nil {
		return err
	}

	html, err := e.renderHTML(markdown)
	if err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	tmp, err := os.CreateTemp("", "biddoc-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp html: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp html: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp html: %w", err)
	}

	cmd := exec.Command(renderer, tmp.Name(), outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", filepath.Base(renderer), err, out)
	}

	e.logger.Info("PDF exported",
		zap.String("renderer", filepath.Base(renderer)),
		zap.String("output", outputPath),
	)

	return nil
}

func (e *Exporter) findRenderer() (string, error) {
	for _, name := range e.renderers {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrUnavailable
}

// renderHTML converts markdown to a full HTML page carrying the document
// stylesheet, ready for the external renderer.
func (e *Exporter) renderHTML(markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &body); err != nil {
		return nil, err
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<style>")
	page.WriteString(e.stylesheet())
	page.WriteString("</style>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("\n</body>\n</html>\n")

	return page.Bytes(), nil
}

// stylesheet builds the print CSS from the configured page size and margins.
func (e *Exporter) stylesheet() string {
	pageSize := e.cfg.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	m := e.cfg.Margins

	return fmt.Sprintf(`
@page {
    size: %s;
    margin: %dmm %dmm %dmm %dmm;
}

body {
    font-family: 'Malgun Gothic', 'Apple SD Gothic Neo', sans-serif;
    font-size: 11pt;
    line-height: 1.6;
    color: #333;
}

h1 {
    font-size: 24pt;
    color: #1a1a1a;
    text-align: center;
    margin-bottom: 2em;
    page-break-after: avoid;
}

h1:first-of-type {
    margin-top: 40%%;
}

h2 {
    font-size: 16pt;
    color: #2c3e50;
    border-bottom: 2px solid #3498db;
    padding-bottom: 0.3em;
    margin-top: 2em;
    page-break-after: avoid;
}

h3 {
    font-size: 13pt;
    color: #34495e;
    margin-top: 1.5em;
    page-break-after: avoid;
}

p {
    text-align: justify;
    margin: 0.8em 0;
}

table {
    width: 100%%;
    border-collapse: collapse;
    margin: 1em 0;
}

th, td {
    border: 1px solid #ddd;
    padding: 8px;
    text-align: left;
}

th {
    background-color: #3498db;
    color: white;
}

tr:nth-child(even) {
    background-color: #f9f9f9;
}

hr {
    border: none;
    border-top: 1px solid #ddd;
    margin: 2em 0;
}

blockquote {
    border-left: 4px solid #3498db;
    padding-left: 1em;
    margin-left: 0;
    color: #666;
    font-style: italic;
}
`, pageSize, m.Top, m.Right, m.Bottom, m.Left)
}
