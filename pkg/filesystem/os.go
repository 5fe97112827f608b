package filesystem

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// NewOS returns the OS filesystem rooted at root. Relative roots are
// resolved against the working directory.
func NewOS(root string) (afero.Fs, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to resolve root %s", root)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), abs), nil
}

// NewMemory returns an in-memory filesystem rooted at root. The root does
// not need to exist yet.
func NewMemory(root string) afero.Fs {
	return Rooted(afero.NewMemMapFs(), root)
}

// Rooted scopes base to root. Sharing one base between two rooted views
// lets tests observe a source and a destination tree side by side.
func Rooted(base afero.Fs, root string) afero.Fs {
	if !filepath.IsAbs(root) {
		root = filepath.Join(string(filepath.Separator), root)
	}
	return afero.NewBasePathFs(base, filepath.Clean(root))
}
