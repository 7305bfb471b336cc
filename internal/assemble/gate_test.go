package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biddoc-ops/biddoc/internal/config"
)

func TestCheckGate3(t *testing.T) {
	cfg := config.GetDefaults().Assemble

	t.Run("AssembledDocumentPasses", func(t *testing.T) {
		document := Assemble("", cfg, fixedNow)

		result := CheckGate3(document, cfg)
		require.True(t, result.Passed)
		assert.Equal(t, GateName, result.Gate)
		assert.Equal(t, 9, result.Details["found"])
		assert.Equal(t, 9, result.Details["total_required"])
		assert.Empty(t, result.Details["missing"])
	})

	t.Run("EmptyDocumentMissesEverything", func(t *testing.T) {
		result := CheckGate3("", cfg)

		require.False(t, result.Passed)
		found := result.Details["found"].(int)
		missing := result.Details["missing"].([]string)
		totalRequired := result.Details["total_required"].(int)

		// Structural completeness: found + missing covers every required page.
		assert.Equal(t, totalRequired, found+len(missing))
		assert.Equal(t, 0, found)
	})

	t.Run("NumericPrefixFallback", func(t *testing.T) {
		// Title text differs but the numeric prefix is present.
		document := "## 2장. 조직 체계 개요\n내용"
		pages := config.AssembleConfig{Pages: []config.Page{
			{Title: "2장. 조직/역할", Source: "organization"},
		}}

		result := CheckGate3(document, pages)
		assert.True(t, result.Passed)
	})

	t.Run("NormalizedHeadingFallback", func(t *testing.T) {
		document := "## 5장 협력 구조 소개\n내용"
		pages := config.AssembleConfig{Pages: []config.Page{
			{Title: "5장. 협력 구조(상세)", Source: "partnership"},
		}}

		result := CheckGate3(document, pages)
		assert.True(t, result.Passed)
	})

	t.Run("OptionalPageMayBeMissing", func(t *testing.T) {
		optional := false
		pages := config.AssembleConfig{Pages: []config.Page{
			{Title: "1장. 표지", Source: "cover"},
			{Title: "부록. 참고자료", Source: "appendix", Required: &optional},
		}}

		result := CheckGate3("## 1장. 표지\n", pages)
		require.True(t, result.Passed)
		assert.Equal(t, 1, result.Details["total_required"])
		assert.Equal(t, 1, result.Details["found"])
	})
}
