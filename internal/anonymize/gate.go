package anonymize

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/gate"
	"github.com/biddoc-ops/biddoc/internal/logger"
)

// GateName is the identifier persisted into the gate report.
const GateName = "gate1_anonymize"

// maskLabelFor maps a raw indicator to the label that excuses it. A bare "@"
// is only a failure when no [EMAIL] label exists in the text; masked
// occurrences are fine, unmasked raw tokens are not.
var maskLabelFor = map[string]string{
	"@":    "[EMAIL]",
	"http": "[URL]",
	"www.": "[URL]",
	"010-": "[PHONE]",
	"02-":  "[PHONE]",
}

// CheckGate1 verifies that no identifying tokens survived masking. It scans
// the configured literal indicators and re-runs every custom pattern against
// the masked text; any custom match is a hard failure.
func CheckGate1(maskedText string, cfg *config.Config, log *logger.Logger) gate.Result {
	checkPatterns := cfg.Gates.Gate1Anonymize.CheckPatterns

	remaining := make([]string, 0)

	for _, pattern := range checkPatterns {
		if !strings.Contains(maskedText, pattern) {
			continue
		}

		if label, ok := maskLabelFor[pattern]; ok {
			if !strings.Contains(maskedText, label) {
				remaining = append(remaining, pattern)
			}
		} else {
			// Literal fragments (organization names, event names) are
			// never excused.
			remaining = append(remaining, pattern)
		}
	}

	for _, p := range cfg.Anonymize.CustomPatterns {
		if p.Pattern == "" {
			continue
		}

		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			log.Warn("Invalid custom pattern skipped during gate check",
				zap.String("name", p.Name),
				zap.Error(err),
			)
			continue
		}

		if re.MatchString(maskedText) {
			name := p.Name
			if name == "" {
				name = "unknown"
			}
			remaining = append(remaining, "pattern:"+name)
		}
	}

	return gate.New(GateName, len(remaining) == 0, map[string]interface{}{
		"remaining": remaining,
		"count":     len(remaining),
		"checks": map[string]interface{}{
			"patterns_checked": len(checkPatterns),
			"patterns_found":   len(remaining),
		},
	})
}
