package tone

import (
	"regexp"
	"strings"

	"github.com/biddoc-ops/biddoc/internal/config"
)

// formalEndings converts colloquial polite verb endings to the formal written
// register used in public documents. Applied in order; the bare 습니다 entry
// last so the specific conversions win.
var formalEndings = []config.Replacement{
	{From: "했습니다", To: "하였다"},
	{From: "됩니다", To: "된다"},
	{From: "합니다", To: "한다"},
	{From: "입니다", To: "이다"},
	{From: "있습니다", To: "있다"},
	{From: "없습니다", To: "없다"},
	{From: "됐습니다", To: "되었다"},
	{From: "왔습니다", To: "왔다"},
	{From: "습니다.", To: "다."},
}

// vagueModifiers are intensifier/quantifier modifiers stripped outright.
// Each carries its trailing space so only the modifier position matches.
var vagueModifiers = []string{
	"다양한 ",
	"많은 ",
	"크게 ",
	"매우 ",
	"상당히 ",
}

var (
	spaceRuns   = regexp.MustCompile(` +`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// Rewrite normalizes the text toward a formal/public register. The rewrite
// sequence is order-sensitive: lexical replacements, forbidden-term removal,
// verb-ending conversion, modifier stripping, then whitespace cleanup.
// Pure function of (text, config).
func Rewrite(text string, cfg config.ToneConfig) string {
	result := text

	for _, r := range cfg.Replacements {
		if r.From != "" && r.To != "" {
			result = strings.ReplaceAll(result, r.From, r.To)
		}
	}

	for _, word := range cfg.ForbiddenWords {
		result = strings.ReplaceAll(result, word, "")
	}

	for _, r := range formalEndings {
		result = strings.ReplaceAll(result, r.From, r.To)
	}

	for _, mod := range vagueModifiers {
		result = strings.ReplaceAll(result, mod, "")
	}

	result = spaceRuns.ReplaceAllString(result, " ")
	result = newlineRuns.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}
