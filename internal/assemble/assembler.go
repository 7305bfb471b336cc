package assemble

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/biddoc-ops/biddoc/internal/config"
)

var topLevelHeading = regexp.MustCompile(`^\d+\.`)

// Assemble maps the transformed text into the configured ordered section
// list. Sections with no extractable content are still emitted with a
// placeholder so the document structure stays complete. Pure function of
// (text, config, now).
func Assemble(text string, cfg config.AssembleConfig, now time.Time) string {
	date := now.Format("2006년 01월 02일")

	var parts []string

	for _, page := range cfg.Pages {
		switch {
		case page.Source == "cover":
			parts = append(parts, fmt.Sprintf(pageTemplates["cover"], date))

		case pageTemplates[page.Source] != "":
			content := extractSectionContent(text, sectionKeywords[page.Source])
			if content == "" {
				content = emptySectionPlaceholder
			}
			parts = append(parts, fmt.Sprintf(pageTemplates[page.Source], content))

		default:
			parts = append(parts, fmt.Sprintf("## %s\n\n(내용 작성 필요)\n\n---\n", page.Title))
		}
	}

	document := strings.Join(parts, "\n")
	document += fmt.Sprintf(footerTemplate, date)

	return document
}

// extractSectionContent grabs a greedy line span: a line containing one of
// the keywords opens the span, a new top-level numbered heading closes it.
func extractSectionContent(text string, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}

	var relevant []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case containsAny(line, keywords):
			inSection = true
			relevant = append(relevant, line)
		case inSection && topLevelHeading.MatchString(strings.TrimSpace(line)):
			inSection = false
		case inSection:
			relevant = append(relevant, line)
		}
	}

	return strings.TrimSpace(strings.Join(relevant, "\n"))
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
