package assemble

// Section templates keyed by source name. The cover takes the submission
// date; every other template takes extracted content. %s is the single
// substitution slot.
var pageTemplates = map[string]string{
	"cover": `
## 1장. 표지

# [행사명] 연계 여행상품 운영 제안서

**제안 기관:** [회사명]

**제출일:** %s

---
`,

	"organization": `
## 2장. 조직/역할

### 운영 조직 구성

%s

---
`,

	"track_record": `
## 3장. 유사 실적

### 주요 운영 실적

%s

---
`,

	"services": `
## 4장. 상품/서비스 구성

### 제공 서비스 개요

%s

---
`,

	"partnership": `
## 5장. 협력 구조

### 협력 네트워크

%s

---
`,

	"operations": `
## 6장. 운영 방식

### 통합 운영 체계

%s

---
`,

	"marketing": `
## 7장. 홍보/판매/통합 운영

### 마케팅 및 판매 전략

%s

---
`,

	"risk_management": `
## 8장. 리스크 관리

### 위험 요소 및 대응 방안

%s

---
`,

	"admin_settlement": `
## 9장. 행정/정산

### 행정 처리 및 정산 체계

%s

---
`,
}

// sectionKeywords drives content extraction: a source line containing any of
// the section's keywords opens that section's span.
var sectionKeywords = map[string][]string{
	"organization":     {"조직", "역할", "구성", "팀"},
	"track_record":     {"실적", "경험", "수행", "지원"},
	"services":         {"상품", "서비스", "프로그램", "여행"},
	"partnership":      {"협력", "파트너", "네트워크", "연계"},
	"operations":       {"운영", "방식", "관리", "체계"},
	"marketing":        {"홍보", "판매", "마케팅", "판촉"},
	"risk_management":  {"리스크", "위험", "대응", "안전"},
	"admin_settlement": {"행정", "정산", "기대", "효과"},
}

// emptySectionPlaceholder marks a section whose extraction yielded nothing.
// The structural slot must still exist for Gate 3.
const emptySectionPlaceholder = "(해당 내용은 별도 작성 필요)"

const footerTemplate = `
---

**문서 정보**
- 생성일: %s
- 버전: v1.0
- 상태: 초안

---
*본 문서는 BidDoc Ops Center에 의해 자동 생성되었습니다.*
`
