package config

import (
	"path/filepath"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/types"
)

// Config is the resolved vendoring configuration
type Config struct {
	// SourceRoot is the dependency directory every task source is matched in.
	SourceRoot string `koanf:"source_root" toml:"source_root" yaml:"source_root"`
	// VendorRoot is the directory every task destination is created in.
	VendorRoot string         `koanf:"vendor_root" toml:"vendor_root" yaml:"vendor_root"`
	Policy     string         `koanf:"policy" toml:"policy" yaml:"policy"`
	Tasks      types.Pipeline `koanf:"tasks" toml:"tasks" yaml:"tasks"`

	// Path is the project file the configuration was read from. It is
	// empty when only the embedded defaults were used.
	Path string `koanf:"-" toml:"-" yaml:"-"`
	// Dir is the directory relative roots are resolved against.
	Dir string `koanf:"-" toml:"-" yaml:"-"`
}

// FailurePolicy returns the parsed policy
func (c *Config) FailurePolicy() (types.FailurePolicy, error) {
	return types.ParseFailurePolicy(c.Policy)
}

// SourcePath returns the source root resolved against Dir
func (c *Config) SourcePath() string {
	return c.resolve(c.SourceRoot)
}

// VendorPath returns the vendor root resolved against Dir
func (c *Config) VendorPath() string {
	return c.resolve(c.VendorRoot)
}

func (c *Config) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || c.Dir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Dir, p)
}

// Validate checks the roots, the policy and every task.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return c.invalid(errors.New(errors.ErrInvalidInput, "source_root is empty"))
	}
	if c.VendorRoot == "" {
		return c.invalid(errors.New(errors.ErrInvalidInput, "vendor_root is empty"))
	}
	if _, err := c.FailurePolicy(); err != nil {
		return c.invalid(err)
	}
	if err := c.Tasks.Validate(); err != nil {
		return c.invalid(err)
	}
	return nil
}

func (c *Config) invalid(err error) error {
	e := errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	if c.Path != "" {
		e.WithDetail(errors.DetailConfigPath, c.Path)
	}
	return e
}
