package runner

import (
	"io"
	"sync"
)

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write writes to the underlying writer with a mutex guard.
func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// lockedLogger returns a logger whose writers are safe for concurrent workers.
func lockedLogger(workers int, logger Logger) Logger {
	if workers <= 1 {
		return logger
	}
	if logger.Console != nil {
		logger.Console = &lockedWriter{w: logger.Console}
	}
	if logger.File != nil {
		logger.File = &lockedWriter{w: logger.File}
	}
	return logger
}
