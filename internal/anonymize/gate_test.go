package anonymize

import (
	"reflect"
	"testing"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/logger"
)

func TestCheckGate1(t *testing.T) {
	log := logger.NewNop()
	cfg := config.GetDefaults()

	t.Run("CleanMaskedTextPasses", func(t *testing.T) {
		result := CheckGate1("문의: [EMAIL], [PHONE] 안내: [URL]", cfg, log)

		if !result.Passed {
			t.Errorf("expected pass, got details: %v", result.Details)
		}
		if result.Gate != GateName {
			t.Errorf("unexpected gate name: %s", result.Gate)
		}
	})

	t.Run("RawIndicatorWithoutLabelFails", func(t *testing.T) {
		result := CheckGate1("문의: someone@company.com", cfg, log)

		if result.Passed {
			t.Fatal("expected failure for unmasked email")
		}
		remaining := result.Details["remaining"].([]string)
		if !containsString(remaining, "@") {
			t.Errorf("expected @ in remaining, got %v", remaining)
		}
	})

	t.Run("RawIndicatorWithLabelIsExcused", func(t *testing.T) {
		// A bare @ is fine when an [EMAIL] label shows masking happened.
		result := CheckGate1("연락처 표기는 @ 형태, 실제 주소는 [EMAIL]", cfg, log)

		if !result.Passed {
			t.Errorf("expected pass, got details: %v", result.Details)
		}
	})

	t.Run("LiteralFragmentNeverExcused", func(t *testing.T) {
		result := CheckGate1("여수여행센터 운영 계획 [회사명]", cfg, log)

		if result.Passed {
			t.Fatal("expected failure for residual company fragment")
		}
		remaining := result.Details["remaining"].([]string)
		if !containsString(remaining, "여수여행센터") {
			t.Errorf("expected fragment in remaining, got %v", remaining)
		}
		// The custom regex re-scan flags the same fragment.
		if !containsString(remaining, "pattern:company_name") {
			t.Errorf("expected custom pattern hit in remaining, got %v", remaining)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		text := "문의: raw@mail http 잔여 여수여행센터"
		first := CheckGate1(text, cfg, log)
		second := CheckGate1(text, cfg, log)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("gate results differ across runs: %v vs %v", first, second)
		}
	})
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
