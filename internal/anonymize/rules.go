package anonymize

import "regexp"

// Built-in rule names. Order matters: rules are applied top to bottom and a
// later pattern never sees text already consumed by an earlier label.
const (
	RuleEmail       = "email"
	RuleURLHTTPS    = "url_https"
	RuleURLWWW      = "url_www"
	RulePhoneKR     = "phone_kr"
	RulePhoneMobile = "phone_mobile"
)

// builtinRules returns the fixed base pattern set: email, http/https URL,
// bare www URL, Korean landline and Korean mobile numbers.
func builtinRules() []Rule {
	return []Rule{
		{
			Name:    RuleEmail,
			Pattern: regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}`),
			Label:   "[EMAIL]",
		},
		{
			Name:    RuleURLHTTPS,
			Pattern: regexp.MustCompile(`(?i)https?://[^\s]+`),
			Label:   "[URL]",
		},
		{
			Name:    RuleURLWWW,
			Pattern: regexp.MustCompile(`(?i)www\.[^\s]+`),
			Label:   "[URL]",
		},
		{
			Name:    RulePhoneKR,
			Pattern: regexp.MustCompile(`0\d{1,2}[-.\s]?\d{3,4}[-.\s]?\d{4}`),
			Label:   "[PHONE]",
		},
		{
			Name:    RulePhoneMobile,
			Pattern: regexp.MustCompile(`\d{3}[-.\s]?\d{4}[-.\s]?\d{4}`),
			Label:   "[PHONE]",
		},
	}
}

// alwaysApplied lists the built-in rules that bypass the type allowlist.
// Only the email rule honors anonymize.types; URL and phone sub-patterns are
// applied unconditionally. Legacy behavior, kept until confirmed otherwise.
var alwaysApplied = map[string]bool{
	RuleURLHTTPS:    true,
	RuleURLWWW:      true,
	RulePhoneKR:     true,
	RulePhoneMobile: true,
}
