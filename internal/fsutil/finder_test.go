package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", ".#a.hcl", "sub/c.hcl", ".git/x.hcl", "sub/deeper/d.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

func TestFindFilesByExtension(t *testing.T) {
	root := tree(t)

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "c.hcl"),
		filepath.Join(root, "sub", "deeper", "d.hcl"),
	}, files)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestDirs(t *testing.T) {
	root := tree(t)

	dirs, err := Dirs(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root, filepath.Join(root, "sub"), filepath.Join(root, "sub", "deeper")}, dirs)
}
