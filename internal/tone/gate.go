package tone

import (
	"regexp"
	"strings"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/gate"
)

// GateName is the identifier persisted into the gate report.
const GateName = "gate2_tone"

// maskLabels is the fixed label vocabulary the rewrite must preserve.
var maskLabels = []string{
	"[회사명]", "[행사명]", "[발주처]", "[담당자]",
	"[EMAIL]", "[URL]", "[PHONE]",
}

// identifierPatterns are Korean organization-name shapes. A shape appearing
// in the rewritten text but not the original means the rewrite invented an
// identifier.
var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[가-힣]+센터`),
	regexp.MustCompile(`[가-힣]+회사`),
	regexp.MustCompile(`[가-힣]+기관`),
	regexp.MustCompile(`[가-힣]+협회`),
	regexp.MustCompile(`[가-힣]+박람회`),
}

var (
	headingLine   = regexp.MustCompile(`^\d+\.\s`)
	sentenceBreak = regexp.MustCompile(`[.?!]+`)
)

// CheckGate2 validates a tone rewrite against its input: mask labels must
// survive, no new organization-shaped identifiers may appear, and no section
// may exceed the configured sentence limit.
func CheckGate2(originalText, rewrittenText string, cfg *config.Config) gate.Result {
	// 1. Label preservation
	var labelsInOriginal []string
	for _, label := range maskLabels {
		if strings.Contains(originalText, label) {
			labelsInOriginal = append(labelsInOriginal, label)
		}
	}

	missingLabels := make([]string, 0)
	for _, label := range labelsInOriginal {
		if !strings.Contains(rewrittenText, label) {
			missingLabels = append(missingLabels, label)
		}
	}
	labelsPreserved := len(missingLabels) == 0

	// 2. No new identifiers
	newIdentifiers := make([]string, 0)
	for _, re := range identifierPatterns {
		originalSet := make(map[string]bool)
		for _, m := range re.FindAllString(originalText, -1) {
			originalSet[m] = true
		}

		seen := make(map[string]bool)
		for _, m := range re.FindAllString(rewrittenText, -1) {
			if originalSet[m] || seen[m] {
				continue
			}
			seen[m] = true
			if !strings.HasPrefix(m, "[") {
				newIdentifiers = append(newIdentifiers, m)
			}
		}
	}
	noNewIdentifiers := len(newIdentifiers) == 0

	// 3. Sentence count per section
	maxSentences := cfg.Tone.SentenceLimitPerSection
	sentencesOK := true
	sectionDetails := make([]map[string]interface{}, 0)

	for _, section := range splitSections(rewrittenText) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		count := countSentences(section)
		// The heading line is not a sentence.
		if count > 0 {
			count--
		}

		if count > maxSentences {
			sentencesOK = false
		}

		sectionDetails = append(sectionDetails, map[string]interface{}{
			"section":   truncate(section, 30),
			"sentences": count,
			"passed":    count <= maxSentences,
		})
	}

	passed := labelsPreserved && noNewIdentifiers && sentencesOK

	return gate.New(GateName, passed, map[string]interface{}{
		"checks": map[string]interface{}{
			"labels_preserved": map[string]interface{}{
				"expected": len(labelsInOriginal),
				"found":    len(labelsInOriginal) - len(missingLabels),
				"missing":  missingLabels,
				"passed":   labelsPreserved,
			},
			"new_identifiers": map[string]interface{}{
				"found":  newIdentifiers,
				"count":  len(newIdentifiers),
				"passed": noNewIdentifiers,
			},
			"sentence_limit": map[string]interface{}{
				"max_allowed": maxSentences,
				"sections":    sectionDetails,
				"passed":      sentencesOK,
			},
		},
	})
}

// splitSections splits text into sections, each starting at a line that
// begins with a numbered-heading marker ("1. ", "12. "). Content before the
// first heading forms its own section.
func splitSections(text string) []string {
	lines := strings.Split(text, "\n")

	var sections []string
	var current []string

	for i, line := range lines {
		if i > 0 && headingLine.MatchString(line) {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	sections = append(sections, strings.Join(current, "\n"))

	return sections
}

func countSentences(section string) int {
	count := 0
	for _, part := range sentenceBreak.Split(section, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
