package config

import (
	"fmt"
	"strings"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/anchor"
	"quizharvest/internal/locale"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if _, ok := locale.Lookup(cfg.Locale); !ok {
		collector.add("locale", fmt.Sprintf("unsupported locale %q (expected one of %s)", cfg.Locale, strings.Join(locale.Names(), ", ")))
	} else if phrases, err := cfg.ResolvePhrases(); err != nil {
		collector.add("phrases", err.Error())
	} else if _, err := anchor.New(phrases); err != nil {
		collector.add("phrases", err.Error())
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		collector.add("output_dir", "is required")
	}
	if cfg.Workers < 1 {
		collector.add("workers", "must be >= 1")
	}
	if strings.TrimSpace(cfg.PDFToText) == "" {
		collector.add("pdftotext", "is required")
	}
	if !aggregate.Format(cfg.Format).Valid() {
		collector.add("format", fmt.Sprintf("unsupported format %q (expected json or yaml)", cfg.Format))
	}
	return collector.result()
}

// ResolvePhrases returns the locale profile with the configured overrides
// applied.
func (c Config) ResolvePhrases() (locale.Phrases, error) {
	base, ok := locale.Lookup(c.Locale)
	if !ok {
		return locale.Phrases{}, fmt.Errorf("unsupported locale %q", c.Locale)
	}
	phrases := locale.Override(base, c.Phrases)
	if err := phrases.Check(); err != nil {
		return locale.Phrases{}, err
	}
	return phrases, nil
}
