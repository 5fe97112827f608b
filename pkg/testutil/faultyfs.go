// pkg/testutil/faultyfs.go
// DEPENDENCIES: afero
// PURPOSE: Inject read and write failures into an afero filesystem

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

// FaultyFs wraps an afero.Fs and fails selected paths. Read failures apply
// to Open and read-only OpenFile; write failures apply to Create, Mkdir,
// MkdirAll and writable OpenFile. Stat is never affected, so a failing file
// still shows up in directory listings.
type FaultyFs struct {
	afero.Fs

	mu          sync.Mutex
	readErrors  map[string]error
	writeErrors map[string]error
	opens       int
}

// NewFaultyFs wraps base without any injected failure
func NewFaultyFs(base afero.Fs) *FaultyFs {
	return &FaultyFs{
		Fs:          base,
		readErrors:  make(map[string]error),
		writeErrors: make(map[string]error),
	}
}

// FailRead makes every read of path return err
func (f *FaultyFs) FailRead(path string, err error) *FaultyFs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErrors[normalize(path)] = err
	return f
}

// FailWrite makes every write to path return err
func (f *FaultyFs) FailWrite(path string, err error) *FaultyFs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErrors[normalize(path)] = err
	return f
}

// Opens returns how many files were opened through the wrapper
func (f *FaultyFs) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func (f *FaultyFs) check(table map[string]error, op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := table[normalize(name)]; ok {
		return &os.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

func (f *FaultyFs) Name() string { return "FaultyFs" }

func (f *FaultyFs) Open(name string) (afero.File, error) {
	if err := f.check(f.readErrors, "open", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	return f.Fs.Open(name)
}

func (f *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	table := f.readErrors
	if flag&writeFlags != 0 {
		table = f.writeErrors
	}
	if err := f.check(table, "open", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FaultyFs) Create(name string) (afero.File, error) {
	if err := f.check(f.writeErrors, "open", name); err != nil {
		return nil, err
	}
	return f.Fs.Create(name)
}

func (f *FaultyFs) Mkdir(name string, perm os.FileMode) error {
	if err := f.check(f.writeErrors, "mkdir", name); err != nil {
		return err
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *FaultyFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(f.writeErrors, "mkdir", path); err != nil {
		return err
	}
	return f.Fs.MkdirAll(path, perm)
}

func normalize(name string) string {
	name = filepath.FromSlash(name)
	name = strings.TrimPrefix(name, string(filepath.Separator))
	return filepath.Clean(name)
}
