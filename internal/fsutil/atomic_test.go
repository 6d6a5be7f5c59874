package fsutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestWriteFileAtomicReplacesContent verifies the target holds the last write and no temp files remain.
func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "results.json")
	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected second, got %q", data)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "nested", "*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected temp files to be cleaned up, got %v", matches)
	}
}

// TestWriteFileAtomicConcurrentWriters verifies parallel writers leave one complete payload.
func TestWriteFileAtomicConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	payloads := []string{"aaaa", "bbbb", "cccc", "dddd"}
	var wg sync.WaitGroup
	for _, payload := range payloads {
		wg.Add(1)
		go func(payload string) {
			defer wg.Done()
			if err := WriteFileAtomic(path, []byte(payload), 0o644); err != nil {
				t.Errorf("write %s: %v", payload, err)
			}
		}(payload)
	}
	wg.Wait()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	found := false
	for _, payload := range payloads {
		if string(data) == payload {
			found = true
		}
	}
	if !found {
		t.Fatalf("unexpected content %q", data)
	}
}
