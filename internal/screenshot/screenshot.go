// Package screenshot saves rendered frames to text files.
package screenshot

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/watch/internal/errors"
)

// FileNameLayout is the time layout used to name screenshot files.
const FileNameLayout = "watch-20060102-150405.txt"

// Writer persists frames on Fs. Now defaults to time.Now.
type Writer struct {
	Fs  afero.Fs
	Now func() time.Time
}

// NewWriter returns a Writer on the OS filesystem.
func NewWriter() *Writer {
	return &Writer{Fs: afero.NewOsFs(), Now: time.Now}
}

// FileName returns the screenshot file name for t.
func FileName(t time.Time) string {
	return t.Format(FileNameLayout)
}

// Save creates dir if needed and writes lines to a timestamped file inside
// it, each line followed by a newline. A second screenshot in the same
// second replaces the first. It returns the path written.
func (w *Writer) Save(dir string, lines []string) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewIOError("create screenshot directory", fmt.Errorf("%w: %w", errors.ErrScreenshot, err)).WithPath(dir)
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	path := filepath.Join(dir, FileName(now()))
	if err := afero.WriteFile(w.Fs, path, buf.Bytes(), 0o644); err != nil {
		return "", errors.NewIOError("write screenshot", fmt.Errorf("%w: %w", errors.ErrScreenshot, err)).WithPath(path)
	}
	return path, nil
}
