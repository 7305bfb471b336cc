package anonymize

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/logger"
)

// Anonymizer handles PII detection and masking
type Anonymizer struct {
	builtin []Rule
	custom  []Rule
	types   []string
	logger  *logger.Logger
}

// New creates an anonymizer from configuration. Custom patterns are compiled
// here; a pattern that fails to compile is logged and skipped, never fatal.
func New(cfg config.AnonymizeConfig, log *logger.Logger) *Anonymizer {
	a := &Anonymizer{
		builtin: builtinRules(),
		types:   cfg.Types,
		logger:  log,
	}

	for _, p := range cfg.CustomPatterns {
		if p.Pattern == "" {
			continue
		}

		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			log.Warn("Invalid custom pattern skipped",
				zap.String("name", p.Name),
				zap.String("pattern", p.Pattern),
				zap.Error(err),
			)
			continue
		}

		label := p.Label
		if label == "" {
			label = "[REDACTED]"
		}
		name := p.Name
		if name == "" {
			name = "custom"
		}

		a.custom = append(a.custom, Rule{
			Name:    "korean_" + name,
			Pattern: re,
			Label:   label,
		})
	}

	log.Info("Anonymizer initialized",
		zap.Int("builtin_rules", len(a.builtin)),
		zap.Int("custom_rules", len(a.custom)),
	)

	return a
}

// Mask replaces every match of the enabled rules with its label and records
// a finding per occurrence. Pure over (text, config); the receiver holds no
// state between calls.
func (a *Anonymizer) Mask(text string) Result {
	masked := text
	findings := make([]Finding, 0)

	for _, rule := range a.builtin {
		if !alwaysApplied[rule.Name] && !a.typeEnabled(rule.Name) {
			continue
		}
		masked = applyRule(rule, masked, &findings, a.logger)
	}

	for _, rule := range a.custom {
		masked = applyRule(rule, masked, &findings, a.logger)
	}

	return Result{
		MaskedText: masked,
		Report: Report{
			Findings:    findings,
			TotalMasked: len(findings),
		},
		Original: text,
	}
}

// typeEnabled reports whether the rule is covered by the configured type
// allowlist. A configured type matches by substring, so "phone" enables both
// phone_kr and phone_mobile.
func (a *Anonymizer) typeEnabled(ruleName string) bool {
	for _, t := range a.types {
		if strings.Contains(ruleName, t) {
			return true
		}
	}
	return false
}

func applyRule(rule Rule, text string, findings *[]Finding, log *logger.Logger) string {
	spans := rule.Pattern.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	for _, span := range spans {
		*findings = append(*findings, Finding{
			Type:     rule.Name,
			Original: text[span[0]:span[1]],
			Masked:   rule.Label,
			Start:    span[0],
			End:      span[1],
		})
	}

	log.Debug("PII detected and masked",
		zap.String("rule", rule.Name),
		zap.Int("count", len(spans)),
		zap.String("label", rule.Label),
	)

	return rule.Pattern.ReplaceAllLiteralString(text, rule.Label)
}
