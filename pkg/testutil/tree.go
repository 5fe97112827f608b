// pkg/testutil/tree.go
// DEPENDENCIES: afero
// PURPOSE: Declarative file tree setup and inspection

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteTree creates every file in files (slash-separated path -> content)
// under fs, creating parent directories as needed.
func WriteTree(t testing.TB, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.FromSlash(name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

// ReadTree returns every regular file below root as a map of
// slash-separated path (relative to root) to content. A missing root
// yields an empty map.
func ReadTree(t testing.TB, fs afero.Fs, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)

	exists, err := afero.DirExists(fs, root)
	require.NoError(t, err)
	if !exists {
		return tree
	}

	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return tree
}
