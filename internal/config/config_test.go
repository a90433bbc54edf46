package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Journal.DB != nil || cfg.Report.TrendDays != nil || cfg.Display.Color != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[journal]
db = "/tmp/journal.db"

[report]
trend-days = 14
min-report-days = 3

[display]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Journal.DB == nil || *cfg.Journal.DB != "/tmp/journal.db" {
		t.Fatalf("unexpected db: %v", cfg.Journal.DB)
	}
	if *cfg.Report.TrendDays != 14 || *cfg.Report.MinReportDays != 3 {
		t.Fatalf("unexpected report config: %+v", cfg.Report)
	}
	if cfg.Display.Color == nil || *cfg.Display.Color {
		t.Fatalf("expected color=false")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown.toml": "[journal]\npath = \"x\"\n",
		"trend.toml":   "[report]\ntrend-days = 0\n",
		"minDays.toml": "[report]\nmin-report-days = 8\n",
		"invalid.toml": "[report\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	if got := DefaultDBPath(); got != filepath.Join("/data", "moodpeek", "moodpeek.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join("/conf", "moodpeek", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	if got := ExpandHome("~/j.db"); !strings.HasSuffix(got, filepath.Join("someone", "j.db")) {
		t.Fatalf("unexpected expansion %s", got)
	}
	if got := ExpandHome("/abs/j.db"); got != "/abs/j.db" {
		t.Fatalf("absolute path changed: %s", got)
	}
}
