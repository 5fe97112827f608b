package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProjectFiles are the file names searched for, in order
var ProjectFiles = []string{"vendorcp.toml", ".vendorcp.toml", "vendorcp.yaml", "vendorcp.yml"}

// Keys accepted as overrides
const (
	KeySourceRoot = "source_root"
	KeyVendorRoot = "vendor_root"
	KeyPolicy     = "policy"
)

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// Dir is searched for a project file and is the base for relative roots.
	Dir string
	// Path names a project file explicitly. It must exist.
	Path string
	// Overrides are applied last, keyed by configuration key.
	Overrides map[string]interface{}
	// NoProjectFile skips project file discovery.
	NoProjectFile bool
}

// Load reads and validates the configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. Project file
	path := opts.Path
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail(errors.DetailConfigPath, path)
		}
	} else if !opts.NoProjectFile {
		found, err := Find(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded project config")
	} else {
		logger.Debug().Str("dir", dir).Msg("No project config found, using defaults")
	}

	// 3. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to load overrides")
		}
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration").
			WithDetail(errors.DetailConfigPath, path)
	}

	cfg.Path = path
	cfg.Dir = dir
	if path != "" {
		cfg.Dir = filepath.Dir(path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source_root", cfg.SourcePath()).
		Str("vendor_root", cfg.VendorPath()).
		Int("tasks", len(cfg.Tasks)).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Defaults returns the embedded configuration without reading any file
func Defaults() (*Config, error) {
	return Load(LoadOptions{NoProjectFile: true})
}

// Find returns the first project file present in dir, or "" if there is
// none.
func Find(dir string) (string, error) {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail(errors.DetailConfigPath, path)
		}
	}
	return "", nil
}

func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail(errors.DetailConfigPath, path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return koanfyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail(errors.DetailConfigPath, path)
	}
}
