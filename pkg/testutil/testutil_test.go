package testutil

import (
	"os"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeRoundTrip(t *testing.T) {
	fs := afero.NewBasePathFs(afero.NewMemMapFs(), "/root")
	files := map[string]string{
		"a.css":        "a",
		"sub/b.css":    "b",
		"sub/deep/c.s": "c",
	}
	WriteTree(t, fs, files)

	assert.Equal(t, files, ReadTree(t, fs, "."))
	assert.Equal(t, map[string]string{"b.css": "b", "deep/c.s": "c"}, ReadTree(t, fs, "sub"))
	assert.Empty(t, ReadTree(t, fs, "missing"))
}

func TestFaultyFs(t *testing.T) {
	base := afero.NewBasePathFs(afero.NewMemMapFs(), "/root")
	WriteTree(t, base, map[string]string{"pkg/a.css": "a", "pkg/b.css": "b"})

	fs := NewFaultyFs(base).
		FailRead("pkg/a.css", syscall.EACCES).
		FailWrite("out", syscall.EROFS)

	_, err := fs.Open("pkg/a.css")
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EACCES)

	// Stat is unaffected
	_, err = fs.Stat("pkg/a.css")
	assert.NoError(t, err)

	f, err := fs.OpenFile("pkg/b.css", os.O_RDONLY, 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = fs.MkdirAll("/out", 0755)
	assert.ErrorIs(t, err, syscall.EROFS)

	_, err = fs.OpenFile("out", os.O_CREATE|os.O_WRONLY, 0644)
	assert.ErrorIs(t, err, syscall.EROFS)

	assert.Equal(t, 1, fs.Opens())
}
