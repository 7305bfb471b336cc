package config

// Config represents the main configuration structure
type Config struct {
	ProjectName string          `yaml:"project_name" mapstructure:"project_name"`
	InputFile   string          `yaml:"input_file" mapstructure:"input_file"`
	Anonymize   AnonymizeConfig `yaml:"anonymize" mapstructure:"anonymize"`
	Tone        ToneConfig      `yaml:"tone" mapstructure:"tone"`
	Assemble    AssembleConfig  `yaml:"assemble" mapstructure:"assemble"`
	Export      ExportConfig    `yaml:"export" mapstructure:"export"`
	Gates       GatesConfig     `yaml:"gates" mapstructure:"gates"`
	Logging     LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// CustomPattern is a user-supplied masking rule. The pattern is compiled by
// the anonymizer; a pattern that fails to compile is skipped with a warning,
// never fatal.
type CustomPattern struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Label   string `yaml:"label" mapstructure:"label"`
}

// AnonymizeConfig contains PII detection and masking configuration
type AnonymizeConfig struct {
	Types          []string        `yaml:"types" mapstructure:"types"`
	CustomPatterns []CustomPattern `yaml:"custom_patterns" mapstructure:"custom_patterns"`
}

// Replacement is a verbatim substring substitution applied by the tone stage.
type Replacement struct {
	From string `yaml:"from" mapstructure:"from"`
	To   string `yaml:"to" mapstructure:"to"`
}

// ToneConfig contains tone rewrite configuration
type ToneConfig struct {
	SentenceLimitPerSection int           `yaml:"sentence_limit_per_section" mapstructure:"sentence_limit_per_section"`
	Replacements            []Replacement `yaml:"replacements" mapstructure:"replacements"`
	ForbiddenWords          []string      `yaml:"forbidden_words" mapstructure:"forbidden_words"`
}

// Page is one structural unit of the assembled document. Required is a
// pointer so that pages which omit the key default to required.
type Page struct {
	Title    string `yaml:"title" mapstructure:"title"`
	Source   string `yaml:"source" mapstructure:"source"`
	Required *bool  `yaml:"required,omitempty" mapstructure:"required"`
}

// IsRequired reports whether the page must be present in the final document.
func (p Page) IsRequired() bool {
	return p.Required == nil || *p.Required
}

// AssembleConfig contains the ordered section list for document assembly
type AssembleConfig struct {
	Pages []Page `yaml:"pages" mapstructure:"pages"`
}

// Margins are PDF page margins in millimeters.
type Margins struct {
	Top    int `yaml:"top" mapstructure:"top"`
	Bottom int `yaml:"bottom" mapstructure:"bottom"`
	Left   int `yaml:"left" mapstructure:"left"`
	Right  int `yaml:"right" mapstructure:"right"`
}

// ExportConfig contains PDF export configuration
type ExportConfig struct {
	PageSize string  `yaml:"page_size" mapstructure:"page_size"`
	Margins  Margins `yaml:"margins" mapstructure:"margins"`
}

// Gate1Config contains the literal indicator list checked after anonymization.
type Gate1Config struct {
	CheckPatterns []string `yaml:"check_patterns" mapstructure:"check_patterns"`
}

// GatesConfig contains per-gate configuration
type GatesConfig struct {
	Gate1Anonymize Gate1Config `yaml:"gate1_anonymize" mapstructure:"gate1_anonymize"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

func boolPtr(b bool) *bool { return &b }

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	return &Config{
		ProjectName: "BidDoc",
		InputFile:   "inputs/business_plan.txt",
		Anonymize: AnonymizeConfig{
			Types: []string{"email", "phone", "url"},
			CustomPatterns: []CustomPattern{
				{Name: "company_name", Pattern: "(여수여행센터|여수관광센터)", Label: "[회사명]"},
				{Name: "event_name", Pattern: "(여수세계섬박람회|세계섬박람회)", Label: "[행사명]"},
			},
		},
		Tone: ToneConfig{
			SentenceLimitPerSection: 2,
			Replacements: []Replacement{
				{From: "AI", To: "표준화된 운영"},
				{From: "Control Tower", To: "통합 관리 체계"},
			},
			ForbiddenWords: []string{"혁신적", "최첨단", "획기적"},
		},
		Assemble: AssembleConfig{
			Pages: []Page{
				{Title: "1장. 표지", Source: "cover", Required: boolPtr(true)},
				{Title: "2장. 조직/역할", Source: "organization", Required: boolPtr(true)},
				{Title: "3장. 유사 실적", Source: "track_record", Required: boolPtr(true)},
				{Title: "4장. 상품/서비스 구성", Source: "services", Required: boolPtr(true)},
				{Title: "5장. 협력 구조", Source: "partnership", Required: boolPtr(true)},
				{Title: "6장. 운영 방식", Source: "operations", Required: boolPtr(true)},
				{Title: "7장. 홍보/판매/통합 운영", Source: "marketing", Required: boolPtr(true)},
				{Title: "8장. 리스크 관리", Source: "risk_management", Required: boolPtr(true)},
				{Title: "9장. 행정/정산", Source: "admin_settlement", Required: boolPtr(true)},
			},
		},
		Export: ExportConfig{
			PageSize: "A4",
			Margins:  Margins{Top: 25, Bottom: 25, Left: 20, Right: 20},
		},
		Gates: GatesConfig{
			Gate1Anonymize: Gate1Config{
				CheckPatterns: []string{
					"여수여행센터", "여수세계섬박람회",
					"@", "http", "www.", "010-", "02-",
				},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
