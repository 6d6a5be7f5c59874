// Package pdftext loads exported review documents as plain text.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultBinary is the pdftotext executable looked up on PATH.
const DefaultBinary = "pdftotext"

// ErrUnsupported indicates a file extension that is neither PDF nor text.
var ErrUnsupported = errors.New("unsupported document type")

// Extractor converts documents to normalized text.
type Extractor struct {
	// Binary is the pdftotext executable. Empty means DefaultBinary.
	Binary string
}

// Extract returns the normalized text of a .pdf (via pdftotext) or a .txt
// file (read as is).
func (e Extractor) Extract(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		raw, err := e.run(ctx, path)
		if err != nil {
			return "", err
		}
		return Normalize(raw), nil
	case ".txt", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return Normalize(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

func (e Extractor) run(ctx context.Context, path string) (string, error) {
	binary := e.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-enc", "UTF-8", path, "-")
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pdftotext %s: %w: %s", path, err, msg)
		}
		return "", fmt.Errorf("pdftotext %s: %w", path, err)
	}
	return string(output), nil
}

// Normalize composes text to NFC, unifies line endings and turns page breaks
// into line breaks.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	return norm.NFC.String(text)
}
