package config

import "strings"

// Normalize fills empty fields with their defaults.
func Normalize(cfg *Config) {
	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if strings.TrimSpace(cfg.PDFToText) == "" {
		cfg.PDFToText = DefaultPDFToText
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}
