package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: []\n"), 0o600))

	fs := NewRealFileSystem()

	assert.True(t, fs.Exists(path))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing.yaml")))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "steps: []\n", string(data))

	_, err = fs.ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
