package docs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMarkdownFallback(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 28, 7, 30, 15, 0, time.UTC)

	path, err := SaveMarkdownFallback(dir, "digest body", now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "drafts_20260828_073015.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "digest body", string(data))
}

func TestSaveMarkdownFallbackCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	path, err := SaveMarkdownFallback(dir, "body", time.Now())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
