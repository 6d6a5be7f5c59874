package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultIsValid verifies the built-in defaults pass validation.
func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Locale != "es" || cfg.Workers != 1 || cfg.Format != "json" || cfg.OutputDir != DefaultOutputDir {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

// TestScaffoldRoundTrip verifies the scaffolded config loads cleanly.
func TestScaffoldRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Root != root {
		t.Fatalf("expected root %q, got %q", root, cfg.Root)
	}
	if got := cfg.OutputPath(); got != filepath.Join(root, "quizharvest-results") {
		t.Fatalf("unexpected output path %q", got)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected scaffold to refuse overwriting")
	}
}

// TestParseRejectsUnknownFields verifies strict decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nlanguage: es\n"))
	if err == nil || !strings.Contains(err.Error(), "language") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := Parse([]byte("version: 1\n---\nversion: 1\n")); err == nil {
		t.Fatalf("expected multiple documents to be rejected")
	}
}

// TestValidateCollectsIssues verifies every problem is reported at once.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := Config{Version: 2, Locale: "fr", Workers: -1, Format: "xml", OutputDir: "out", PDFToText: "pdftotext"}
	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{"version", "locale", "workers", "format"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

// TestPhraseOverrides verifies overrides patch the selected profile.
func TestPhraseOverrides(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\nlocale: en\nphrases:\n  heading_markers: [\"Item\"]\nformat: yaml\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	phrases, err := cfg.ResolvePhrases()
	if err != nil {
		t.Fatalf("resolve phrases: %v", err)
	}
	if len(phrases.HeadingMarkers) != 1 || phrases.HeadingMarkers[0] != "Item" {
		t.Fatalf("expected heading override, got %v", phrases.HeadingMarkers)
	}
	if phrases.SingleAnswer == "" || !strings.Contains(strings.ToLower(phrases.SingleAnswer), "correct answer") {
		t.Fatalf("expected english single answer phrase, got %q", phrases.SingleAnswer)
	}
}

// TestResolveWalksUp verifies the nearest config above the start directory is used.
func TestResolveWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "version: 1\nworkers: 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, path, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != ConfigPath(root) || cfg.Workers != 3 {
		t.Fatalf("unexpected config %q %+v", path, cfg)
	}
}

// TestResolveWithoutConfig verifies defaults apply when nothing is found.
func TestResolveWithoutConfig(t *testing.T) {
	cfg, path, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" || cfg.Version != 1 || cfg.Locale != DefaultLocale {
		t.Fatalf("expected defaults, got %q %+v", path, cfg)
	}
}
