// Package config loads icongen settings from defaults, an optional config
// file, ICONGEN_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "icongen"
	// ConfigFileName is the name of the config file (without extension)
	// looked up in the working directory.
	ConfigFileName = "icongen"
	// EnvPrefix prefixes every environment variable, e.g. ICONGEN_TARGET.
	EnvPrefix = "ICONGEN"
)

var (
	// ErrInvalidTarget is returned when the target is not "tsx" or "go".
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidSize is returned when default_size is not positive.
	ErrInvalidSize = errors.New("invalid default size")
	// ErrInvalidWorkers is returned when workers is negative.
	ErrInvalidWorkers = errors.New("invalid workers")
)

// Keys lists every configuration key. A flag named like a key with dashes
// ("input-dir") overrides it.
var Keys = []string{
	"input_dir", "output_dir", "index_file", "target", "import_prefix", "default_size",
	"package", "strict", "manifest", "workers", "extensions", "verbose",
}

// Config holds the generation settings.
type Config struct {
	InputDir     string   `mapstructure:"input_dir"`
	OutputDir    string   `mapstructure:"output_dir"`
	IndexFile    string   `mapstructure:"index_file"`
	Target       string   `mapstructure:"target"`
	ImportPrefix string   `mapstructure:"import_prefix"`
	DefaultSize  int      `mapstructure:"default_size"`
	Package      string   `mapstructure:"package"`
	Strict       bool     `mapstructure:"strict"`
	Manifest     string   `mapstructure:"manifest"`
	Workers      int      `mapstructure:"workers"`
	Extensions   []string `mapstructure:"extensions"`
	Verbose      bool     `mapstructure:"verbose"`
}

// DefaultConfig returns the settings used when nothing is configured:
// bootstrap-icons from node_modules rendered as TSX into dist.
func DefaultConfig() *Config {
	return &Config{
		InputDir:     filepath.Join("node_modules", "bootstrap-icons", "icons"),
		OutputDir:    "dist",
		Target:       "tsx",
		ImportPrefix: "bootstrap-icons/icons/",
		DefaultSize:  16,
		Package:      "icons",
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist.
	ConfigFile string
	// Dir is the directory relative paths resolve against and where
	// icongen.yaml is looked up. Empty means the working directory.
	Dir string
	// Flags are bound on top of every other source.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("input_dir", defaults.InputDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("index_file", defaults.IndexFile)
	v.SetDefault("target", defaults.Target)
	v.SetDefault("import_prefix", defaults.ImportPrefix)
	v.SetDefault("default_size", defaults.DefaultSize)
	v.SetDefault("package", defaults.Package)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dirOrDot(opts.Dir))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !slices.Contains(Keys, key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolve(opts.Dir)
	return &cfg, nil
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// Validate checks values viper cannot type check.
func (c *Config) Validate() error {
	switch c.Target {
	case "tsx", "go":
	default:
		return fmt.Errorf("%w: %q (want tsx or go)", ErrInvalidTarget, c.Target)
	}
	if c.DefaultSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.DefaultSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

// resolve makes relative paths relative to dir.
func (c *Config) resolve(dir string) {
	if dir == "" {
		return
	}
	for _, p := range []*string{&c.InputDir, &c.OutputDir, &c.IndexFile, &c.Manifest} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// IndexPath returns the aggregator path, defaulting to defaultIndex inside
// the output directory.
func (c *Config) IndexPath(defaultIndex string) string {
	if c.IndexFile != "" {
		return c.IndexFile
	}
	return filepath.Join(c.OutputDir, defaultIndex)
}
