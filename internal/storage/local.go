// Package storage keeps job artifacts on the local filesystem: raw uploads
// in one directory, finished results in another, one file per job id so
// concurrent jobs never collide.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/annotatr/remarks-service/constants"
)

// Local stores artifacts under a pair of directories created at startup.
type Local struct {
	uploadDir string
	resultDir string
	logger    *slog.Logger
}

func NewLocal(uploadDir, resultDir string, logger *slog.Logger) (*Local, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, dir := range []string{uploadDir, resultDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %q: %w", dir, err)
		}
	}
	return &Local{uploadDir: uploadDir, resultDir: resultDir, logger: logger}, nil
}

// SaveUpload streams the raw upload to a path derived from the job id and
// returns that path. O_EXCL guards against id reuse within the process.
func (l *Local) SaveUpload(jobID, ext string, r io.Reader) (string, error) {
	path := filepath.Join(l.uploadDir, jobID+"."+constants.NormalizeExt(ext))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		l.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		l.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path, nil
}

// WriteResult persists an encoded result for the job and returns its path.
func (l *Local) WriteResult(jobID, ext string, data []byte) (string, error) {
	path := filepath.Join(l.resultDir, jobID+constants.ModifiedSuffix+"."+constants.NormalizeExt(ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write result file: %w", err)
	}
	return path, nil
}

// Remove deletes an artifact. Failures are logged and swallowed; cleanup
// must never take down a worker or a request.
func (l *Local) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		l.logger.Warn("storage.remove.failed", "path", path, "error", err)
	}
}
