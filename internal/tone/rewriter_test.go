package tone

import (
	"testing"

	"github.com/biddoc-ops/biddoc/internal/config"
)

func TestRewrite(t *testing.T) {
	cfg := config.GetDefaults().Tone

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "FormalEndingConversion",
			input: "결과를 확인했습니다.",
			want:  "결과를 확인하였다.",
		},
		{
			name:  "GenericEndingFallback",
			input: "자료를 모았습니다.",
			want:  "자료를 모았다.",
		},
		{
			name:  "LexicalReplacement",
			input: "AI 기반 Control Tower 구축",
			want:  "표준화된 운영 기반 통합 관리 체계 구축",
		},
		{
			name:  "ForbiddenWordRemoved",
			input: "혁신적 운영 방안",
			want:  "운영 방안",
		},
		{
			name:  "VagueModifiersStripped",
			input: "매우 다양한 프로그램을 제공한다",
			want:  "프로그램을 제공한다",
		},
		{
			name:  "WhitespaceCollapsed",
			input: "운영  계획\n\n\n\n세부 내용",
			want:  "운영 계획\n\n세부 내용",
		},
		{
			name:  "LabelsSurvive",
			input: "담당: [담당자], 문의: [PHONE] 했습니다.",
			want:  "담당: [담당자], 문의: [PHONE] 하였다.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rewrite(tc.input, cfg)
			if got != tc.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRewriteIsPure(t *testing.T) {
	cfg := config.GetDefaults().Tone
	input := "결과를 확인했습니다. 매우 다양한 성과가 있습니다."

	first := Rewrite(input, cfg)
	second := Rewrite(input, cfg)

	if first != second {
		t.Errorf("rewrite not deterministic: %q vs %q", first, second)
	}
}
