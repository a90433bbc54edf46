// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Journal JournalConfig `toml:"journal"`
	Report  ReportConfig  `toml:"report"`
	Display DisplayConfig `toml:"display"`
}

// JournalConfig maps storage settings.
type JournalConfig struct {
	DB *string `toml:"db"`
}

// ReportConfig maps report-related settings.
type ReportConfig struct {
	TrendDays     *int `toml:"trend-days"`
	MinReportDays *int `toml:"min-report-days"`
}

// DisplayConfig maps output settings.
type DisplayConfig struct {
	Color *bool `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if cfg.Report.TrendDays != nil && *cfg.Report.TrendDays <= 0 {
		return FileConfig{}, fmt.Errorf("report.trend-days must be positive")
	}
	if cfg.Report.MinReportDays != nil && (*cfg.Report.MinReportDays < 1 || *cfg.Report.MinReportDays > 7) {
		return FileConfig{}, fmt.Errorf("report.min-report-days must be between 1 and 7")
	}
	return cfg, nil
}
