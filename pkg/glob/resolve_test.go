package glob

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/vendorcp/pkg/filesystem"
	"github.com/arthur-debert/vendorcp/pkg/testutil"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rels returns the relative paths of the matched files
func rels(matches []Match) []string {
	out := []string{}
	for _, m := range matches {
		if !m.Dir {
			out = append(out, filepath.ToSlash(m.Rel))
		}
	}
	return out
}

func dirs(matches []Match) []string {
	out := []string{}
	for _, m := range matches {
		if m.Dir {
			out = append(out, filepath.ToSlash(m.Rel))
		}
	}
	return out
}

func sources(matches []Match) []string {
	out := []string{}
	for _, m := range matches {
		if !m.Dir {
			out = append(out, filepath.ToSlash(m.Source))
		}
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		pattern string
		base    string
		rest    string
	}{
		{"bourbon/**/*", "bourbon", "**/*"},
		{"normalize.css/**", "normalize.css", "**"},
		{"**/*.css", ".", "**/*.css"},
		{"neat-1.8.0/app/assets/**/*.scss", "neat-1.8.0/app/assets", "**/*.scss"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			base, rest := Split(tt.pattern)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestResolve(t *testing.T) {
	fs := filesystem.NewMemory("/deps")
	testutil.WriteTree(t, fs, map[string]string{
		"pkgA/sub/b.css":         "b",
		"pkgA/a.css":             "a",
		"pkgA/README.md":         "readme",
		"pkgA/docs/guide.md":     "guide",
		"pkgA/.npmignore":        "ignore",
		"pkgA/.hidden/c.css":     "c",
		"pkgA/maps/a.css.map":    "map",
		"pkgA/.browserslistrc":   "defaults",
		"other/unrelated.css":    "x",
		"normalize.css/norm.css": "n",
	})

	t.Run("double_star_keeps_structure", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/**", Destination: "pkgA"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"README.md",
			"a.css",
			"docs/guide.md",
			"maps/a.css.map",
			"sub/b.css",
		}, rels(matches))
		assert.Equal(t, "pkgA/a.css", sources(matches)[1])
		assert.Equal(t, []string{"docs", "maps", "sub"}, dirs(matches))
	})

	t.Run("sorted_directories_before_contents", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/sub/**", Destination: "sub"})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.False(t, matches[0].Dir)
		assert.Equal(t, int64(1), matches[0].Size)

		matches, err = Resolve(fs, types.CopyTask{Source: "pkgA/**", Destination: "pkgA"})
		require.NoError(t, err)
		var order []string
		for _, m := range matches {
			order = append(order, filepath.ToSlash(m.Rel))
		}
		assert.Less(t, indexOf(order, "sub"), indexOf(order, "sub/b.css"))
	})

	t.Run("literal_dotfile_matches_without_dot", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/.browserslistrc", Destination: "pkgA"})
		require.NoError(t, err)
		assert.Equal(t, []string{".browserslistrc"}, rels(matches))

		matches, err = Resolve(fs, types.CopyTask{Source: "pkgA/.hidden/*.css", Destination: "pkgA"})
		require.NoError(t, err)
		assert.Equal(t, []string{".hidden/c.css"}, rels(matches))

		matches, err = Resolve(fs, types.CopyTask{Source: "pkgA/.*", Destination: "pkgA"})
		require.NoError(t, err)
		assert.Equal(t, []string{".browserslistrc", ".npmignore"}, rels(matches))
		assert.Equal(t, []string{".hidden"}, dirs(matches))
	})

	t.Run("wildcards_skip_dotfiles", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/*", Destination: "pkgA"})
		require.NoError(t, err)
		assert.Equal(t, []string{"README.md", "a.css"}, rels(matches))
		assert.NotContains(t, dirs(matches), ".hidden")
	})

	t.Run("dotfiles_included_on_request", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/**/*", Destination: "pkgA", Dot: true})
		require.NoError(t, err)
		assert.Contains(t, rels(matches), ".npmignore")
		assert.Contains(t, rels(matches), ".hidden/c.css")
	})

	t.Run("excludes", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{
			Source:      "pkgA/**/*",
			Destination: "pkgA",
			Exclude:     []string{"*.md", "maps/**"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.css", "sub/b.css"}, rels(matches))
	})

	t.Run("extension_glob_from_root", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "**/*.css", Destination: "all"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"normalize.css/norm.css",
			"other/unrelated.css",
			"pkgA/a.css",
			"pkgA/sub/b.css",
		}, rels(matches))
	})

	t.Run("dot_named_package_directory", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "normalize.css/**/*", Destination: "normalize.css"})
		require.NoError(t, err)
		assert.Equal(t, []string{"norm.css"}, rels(matches))
	})

	t.Run("missing_base_matches_nothing", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "nope/**/*", Destination: "nope"})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("literal_file", func(t *testing.T) {
		matches, err := Resolve(fs, types.CopyTask{Source: "pkgA/sub/b.css", Destination: "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b.css"}, rels(matches))
	})
}

func indexOf(items []string, item string) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	fs := filesystem.NewMemory("/deps")
	testutil.WriteTree(t, fs, map[string]string{"p/a": "a", "p/b": "b"})

	calls := 0
	err := Walk(fs, types.CopyTask{Source: "p/*", Destination: "p"}, func(Match) error {
		calls++
		return syscall.EIO
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EIO)
	assert.Equal(t, 1, calls)
}

func TestResolveUnreadableDirectory(t *testing.T) {
	base := filesystem.NewMemory("/deps")
	testutil.WriteTree(t, base, map[string]string{
		"pkg/a.css":     "a",
		"pkg/sub/b.css": "b",
	})
	fs := testutil.NewFaultyFs(base).FailRead("pkg/sub", syscall.EACCES)

	_, err := Resolve(fs, types.CopyTask{Source: "pkg/**/*", Destination: "pkg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EACCES)
}
