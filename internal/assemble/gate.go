package assemble

import (
	"strings"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/gate"
)

// GateName is the identifier persisted into the gate report.
const GateName = "gate3_assemble"

// CheckGate3 verifies every configured required section is present in the
// assembled document. A section counts as found by exact title, by its
// numeric prefix ("2장."), or by the normalized heading form ("## 2장").
func CheckGate3(document string, cfg config.AssembleConfig) gate.Result {
	foundCount := 0
	totalRequired := 0
	missing := make([]string, 0)
	pageChecks := make([]map[string]interface{}, 0, len(cfg.Pages))

	for _, page := range cfg.Pages {
		required := page.IsRequired()
		if required {
			totalRequired++
		}

		found := sectionPresent(document, page.Title)

		pageChecks = append(pageChecks, map[string]interface{}{
			"title":    page.Title,
			"found":    found,
			"required": required,
		})

		if found {
			foundCount++
		} else if required {
			missing = append(missing, page.Title)
		}
	}

	return gate.New(GateName, len(missing) == 0, map[string]interface{}{
		"total_required": totalRequired,
		"found":          foundCount,
		"missing":        missing,
		"pages":          pageChecks,
	})
}

func sectionPresent(document, title string) bool {
	if strings.Contains(document, title) {
		return true
	}

	prefix, _, ok := strings.Cut(title, ".")
	if !ok || prefix == "" {
		return false
	}

	if strings.Contains(document, prefix+".") {
		return true
	}
	return strings.Contains(document, "## "+prefix)
}
