package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type fsWriter struct {
	dir string
}

// NewFSWriter writes documents into a local directory, creating it on demand.
func NewFSWriter(dir string) Writer {
	return &fsWriter{dir: dir}
}

func (w *fsWriter) Write(_ context.Context, filename string, data []byte) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", w.dir, err)
	}
	target := filepath.Join(w.dir, filename)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
