// Package export writes generated blog content to plain-text files named
// after the generation time.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phrazzld/blogcraft/internal/generation"
)

// ContentType is the media type of exported files.
const ContentType = "text/plain; charset=utf-8"

// FileName returns the export file name for content generated at t,
// e.g. "blog-1718000000000.txt".
func FileName(t time.Time) string {
	return fmt.Sprintf("blog-%d.txt", t.UnixMilli())
}

// WriteFile writes r.Content to dir under FileName(t) and returns the path.
// An existing file of the same name is not overwritten.
func WriteFile(dir string, r generation.Result, t time.Time) (string, error) {
	if r.Content == "" {
		return "", errors.New("nothing to export: content is empty")
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(t))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if _, err := f.WriteString(r.Content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}
