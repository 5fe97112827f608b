package types

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// CopyTask copies every file matched by Source into Destination.
//
// Source is a slash-separated glob relative to the dependency root and
// Destination a directory relative to the vendor root. Matched files keep
// their path relative to the non-glob prefix of Source.
type CopyTask struct {
	Name        string   `json:"name" yaml:"name" koanf:"name" toml:"name"`
	Source      string   `json:"source" yaml:"source" koanf:"source" toml:"source"`
	Destination string   `json:"destination" yaml:"destination" koanf:"destination" toml:"destination"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" koanf:"exclude" toml:"exclude,omitempty"`
	Dot         bool     `json:"dot,omitempty" yaml:"dot,omitempty" koanf:"dot" toml:"dot,omitempty"`
}

// DisplayName returns Name, falling back to the last element of Destination.
func (t CopyTask) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return path.Base(filepath.ToSlash(t.Destination))
}

// String returns a representation of the task suitable for log lines
func (t CopyTask) String() string {
	return fmt.Sprintf("%s: %s -> %s", t.DisplayName(), t.Source, t.Destination)
}

// Validate checks that the task can be executed.
func (t CopyTask) Validate() error {
	if strings.TrimSpace(t.Source) == "" {
		return errors.New(errors.ErrInvalidInput, "task has no source pattern").
			WithDetail(errors.DetailTask, t.DisplayName())
	}
	if strings.TrimSpace(t.Destination) == "" {
		return errors.New(errors.ErrInvalidInput, "task has no destination").
			WithDetail(errors.DetailTask, t.DisplayName()).
			WithDetail(errors.DetailSource, t.Source)
	}
	if err := checkRelative(t.Source); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid source pattern %q", t.Source).
			WithDetail(errors.DetailTask, t.DisplayName())
	}
	if err := checkRelative(filepath.ToSlash(t.Destination)); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid destination %q", t.Destination).
			WithDetail(errors.DetailTask, t.DisplayName())
	}
	if !doublestar.ValidatePattern(t.Source) {
		return errors.Newf(errors.ErrPatternInvalid, "malformed glob %q", t.Source).
			WithDetail(errors.DetailTask, t.DisplayName())
	}
	for _, ex := range t.Exclude {
		if !doublestar.ValidatePattern(ex) {
			return errors.Newf(errors.ErrPatternInvalid, "malformed exclude glob %q", ex).
				WithDetail(errors.DetailTask, t.DisplayName())
		}
	}
	return nil
}

func checkRelative(p string) error {
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return fmt.Errorf("path must be relative")
	}
	for _, elem := range strings.Split(p, "/") {
		if elem == ".." {
			return fmt.Errorf("path must not contain '..'")
		}
	}
	return nil
}

// Pipeline is an ordered sequence of tasks, executed strictly in order.
type Pipeline []CopyTask

// Validate checks every task and rejects duplicate explicit task names.
// Unnamed tasks and shared destinations are allowed.
func (p Pipeline) Validate() error {
	seen := make(map[string]int, len(p))
	for i, task := range p {
		if err := task.Validate(); err != nil {
			if ce, ok := err.(*errors.CopyError); ok {
				ce.WithDetail(errors.DetailTaskIndex, i)
			}
			return err
		}
		name := task.Name
		if name == "" {
			continue
		}
		if prev, dup := seen[name]; dup {
			return errors.Newf(errors.ErrInvalidInput, "duplicate task name %q (tasks %d and %d)", name, prev, i).
				WithDetail(errors.DetailTask, name)
		}
		seen[name] = i
	}
	return nil
}

// Names returns the display names of the tasks in order
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, task := range p {
		names[i] = task.DisplayName()
	}
	return names
}
