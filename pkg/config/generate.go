package config

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const generatedHeader = `# vendorcp configuration
#
# Each task copies the files matched by source (a glob relative to
# source_root) into destination (a directory under vendor_root), keeping
# the path of each file below the pattern's first wildcard.
`

// FileFormat is the encoding of a project file
type FileFormat string

const (
	FormatTOML FileFormat = "toml"
	FormatYAML FileFormat = "yaml"
)

// FormatForPath picks the file format from the file extension
func FormatForPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported config file type %q", filepath.Ext(path))
	}
}

// Generate writes cfg as a project file in the given format
func Generate(w io.Writer, cfg *Config, format FileFormat) error {
	if _, err := io.WriteString(w, generatedHeader+"\n"); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write config")
	}

	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode config as TOML")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode config as YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode config as YAML")
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown config format %q", format)
	}
	return nil
}
