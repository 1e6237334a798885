package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	dir := t.TempDir()
	l, err := NewLocal(filepath.Join(dir, "uploads"), filepath.Join(dir, "results"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return l
}

func TestSaveUpload_WritesPerJobFile(t *testing.T) {
	l := newTestLocal(t)

	path, err := l.SaveUpload("job-1", ".csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "job-1.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestSaveUpload_RejectsDuplicateJobID(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.SaveUpload("job-1", ".csv", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = l.SaveUpload("job-1", ".csv", strings.NewReader("y"))
	require.Error(t, err)
}

func TestWriteResult_NamesResultAfterJob(t *testing.T) {
	l := newTestLocal(t)

	path, err := l.WriteResult("job-9", "xlsx", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "job-9_modified.xlsx", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestRemove_IsBestEffort(t *testing.T) {
	l := newTestLocal(t)

	path, err := l.WriteResult("job-2", "csv", []byte("x"))
	require.NoError(t, err)

	l.Remove(path)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Already gone and empty paths are quietly ignored.
	l.Remove(path)
	l.Remove("")
}
