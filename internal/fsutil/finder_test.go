package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByExtension(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.hcl", "b.txt", "nested/c.hcl"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	// Directories are walked recursively.
	files, err := FindByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// A matching file path returns itself.
	files, err = FindByExtension(filepath.Join(dir, "a.hcl"), ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.hcl")}, files)

	// A non-matching file path returns nothing.
	files, err = FindByExtension(filepath.Join(dir, "b.txt"), ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)

	// A missing path is an error.
	_, err = FindByExtension(filepath.Join(dir, "missing"), ".hcl")
	require.Error(t, err)
}
