package glob

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// Match is one file selected by a task's source pattern.
type Match struct {
	// Source is the path relative to the dependency root.
	Source string
	// Rel is the path relative to the pattern base; the file is written
	// to the same path under the task destination.
	Rel  string
	Size int64
	Mode fs.FileMode
	// Dir is set for a matched directory, which is recreated empty.
	Dir bool
}

// Split returns the non-wildcard base of pattern and the remaining glob.
func Split(pattern string) (base, rest string) {
	return doublestar.SplitPattern(pattern)
}

// Walk calls fn for each file and directory matched by the task, in walk
// order. A pattern whose base does not exist matches nothing.
func Walk(fsys afero.Fs, task types.CopyTask, fn func(Match) error) error {
	logger := logging.GetLogger("glob").With().
		Str("task", task.DisplayName()).
		Str("pattern", task.Source).
		Logger()

	iofs := afero.NewIOFS(fsys)
	base, rest := Split(task.Source)

	if _, err := fs.Stat(iofs, base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("base", base).Msg("Pattern base does not exist")
			return nil
		}
		return eris.Wrapf(err, "failed to stat pattern base %s", base)
	}

	err := doublestar.GlobWalk(iofs, task.Source, func(p string, d fs.DirEntry) error {
		if p == base {
			return nil
		}

		rel := p
		if base != "." {
			rel = strings.TrimPrefix(p, base+"/")
		}

		if !task.Dot && hiddenByDot(rest, rel) {
			logger.Trace().Str("path", p).Msg("Skipping dotfile")
			return nil
		}

		excluded, err := isExcluded(task.Exclude, rel)
		if err != nil {
			return err
		}
		if excluded {
			logger.Trace().Str("path", p).Msg("Excluded")
			return nil
		}

		if d.IsDir() {
			return fn(Match{
				Source: filepath.FromSlash(p),
				Rel:    filepath.FromSlash(rel),
				Dir:    true,
			})
		}

		// Stat follows symlinks, so a link to a directory is skipped
		info, err := fs.Stat(iofs, p)
		if err != nil {
			return eris.Wrapf(err, "failed to stat %s", p)
		}
		if info.IsDir() {
			return nil
		}

		return fn(Match{
			Source: filepath.FromSlash(p),
			Rel:    filepath.FromSlash(rel),
			Size:   info.Size(),
			Mode:   info.Mode(),
		})
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return eris.Wrapf(err, "failed to resolve pattern %s", task.Source)
	}
	return nil
}

// Resolve returns every file and directory matched by the task, sorted by
// relative path so a directory precedes its contents.
func Resolve(fsys afero.Fs, task types.CopyTask) ([]Match, error) {
	var matches []Match
	err := Walk(fsys, task, func(m Match) error {
		matches = append(matches, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return filepath.ToSlash(matches[i].Rel) < filepath.ToSlash(matches[j].Rel)
	})
	return matches, nil
}

// hiddenByDot reports whether rel has a dot-prefixed element that only a
// wildcard matched. Elements named by a pattern segment starting with a
// dot are kept.
func hiddenByDot(pattern, rel string) bool {
	segments := strings.Split(pattern, "/")
	for _, elem := range strings.Split(rel, "/") {
		if strings.HasPrefix(elem, ".") && !namedByDotSegment(segments, elem) {
			return true
		}
	}
	return false
}

func namedByDotSegment(segments []string, elem string) bool {
	for _, seg := range segments {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		if ok, _ := doublestar.Match(seg, elem); ok {
			return true
		}
	}
	return false
}

func isExcluded(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, eris.Wrapf(err, "bad exclude pattern %s", pattern)
		}
		if ok {
			return true, nil
		}
		// A bare name also excludes by file name at any depth
		if !strings.Contains(pattern, "/") && path.Base(rel) != rel {
			if ok, _ := doublestar.Match(pattern, path.Base(rel)); ok {
				return true, nil
			}
		}
	}
	return false, nil
}
