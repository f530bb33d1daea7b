package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Setup points the standard logger at stderr and, when path is set, also at a
// rotating log file. The returned closer flushes and closes that file.
func Setup(path string, maxSizeMB int) (io.Closer, error) {
	log.SetFlags(log.LstdFlags)

	if path == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), fmt.Errorf("failed to create log directory: %w", err)
	}

	writer := newRotatingWriter(path, maxSizeMB)
	log.SetOutput(io.MultiWriter(os.Stderr, writer))
	return writer, nil
}

func newRotatingWriter(path string, maxSizeMB int) *lumberjack.Logger {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
}
