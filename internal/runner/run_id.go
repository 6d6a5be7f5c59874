package runner

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const runIDSuffixLength = 8

// NewRunID returns a sortable run identifier such as 20260115T093000Z-1f2e3d4c.
func NewRunID() string {
	return NewRunIDAt(time.Now().UTC(), uuid.New())
}

// NewRunIDAt formats a run identifier from a timestamp and a random UUID.
func NewRunIDAt(now time.Time, id uuid.UUID) string {
	suffix := strings.ReplaceAll(id.String(), "-", "")[:runIDSuffixLength]
	return FormatRunID(now, suffix)
}

// FormatRunID joins a UTC timestamp and a suffix.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
