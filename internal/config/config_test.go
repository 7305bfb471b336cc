package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/biddoc-ops/biddoc/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("MergesOverDefaults", func(t *testing.T) {
		path := writeConfig(t, `
project_name: "테스트 프로젝트"
input_file: "inputs/plan.txt"
tone:
  sentence_limit_per_section: 3
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.ProjectName != "테스트 프로젝트" {
			t.Errorf("project name not loaded: %q", cfg.ProjectName)
		}
		if cfg.Tone.SentenceLimitPerSection != 3 {
			t.Errorf("sentence limit not overridden: %d", cfg.Tone.SentenceLimitPerSection)
		}
		// Untouched keys keep their defaults.
		if len(cfg.Assemble.Pages) != 9 {
			t.Errorf("default pages lost: %d", len(cfg.Assemble.Pages))
		}
		if len(cfg.Gates.Gate1Anonymize.CheckPatterns) == 0 {
			t.Error("default gate patterns lost")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("InvalidSentenceLimit", func(t *testing.T) {
		path := writeConfig(t, `
tone:
  sentence_limit_per_section: -1
`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		path := writeConfig(t, `
logging:
  level: loud
`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestReload(t *testing.T) {
	t.Run("MergesOverDefaults", func(t *testing.T) {
		v := viper.New()
		v.SetConfigFile(writeConfig(t, "project_name: reloaded\n"))
		if err := v.ReadInConfig(); err != nil {
			t.Fatalf("read failed: %v", err)
		}

		cfg, err := reload(v)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if cfg.ProjectName != "reloaded" {
			t.Errorf("project name not reloaded: %q", cfg.ProjectName)
		}
		if len(cfg.Assemble.Pages) != 9 {
			t.Errorf("default pages lost on reload: %d", len(cfg.Assemble.Pages))
		}
	})

	t.Run("InvalidChangeSurfacesError", func(t *testing.T) {
		v := viper.New()
		v.SetConfigFile(writeConfig(t, "tone:\n  sentence_limit_per_section: -1\n"))
		if err := v.ReadInConfig(); err != nil {
			t.Fatalf("read failed: %v", err)
		}

		if _, err := reload(v); err == nil {
			t.Fatal("expected validation error to surface")
		}
	})
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, "project_name: before\n")

	updates := make(chan *Config, 4)
	err := Watch(path, logger.NewNop(), func(cfg *Config) {
		select {
		case updates <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Let the watcher goroutine arm before touching the file.
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(path, []byte("project_name: after\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.ProjectName == "after" {
				return
			}
		case <-deadline:
			t.Fatal("no updated config received")
		}
	}
}

func TestPageIsRequired(t *testing.T) {
	if !(Page{Title: "1장. 표지"}).IsRequired() {
		t.Error("pages default to required")
	}

	optional := false
	if (Page{Title: "부록", Required: &optional}).IsRequired() {
		t.Error("explicitly optional page reported required")
	}
}
