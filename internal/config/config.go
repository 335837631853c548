// Package config loads generator settings from defaults, a config file, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultSchemaURL is the metadata schema referenced by generated files.
const DefaultSchemaURL = "https://git.drupalcode.org/project/drupal/-/raw/HEAD/core/assets/schemas/v1/metadata.schema.json"

// EnvPrefix prefixes environment overrides: SDCGEN_ROOT, SDCGEN_LOG_LEVEL...
const EnvPrefix = "SDCGEN"

var (
	// ErrRootRequired is returned when no template root is configured.
	ErrRootRequired = errors.New("template root is required")
)

// ValidationError describes an invalid setting.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds the settings of a generator run.
type Config struct {
	Root             string            `mapstructure:"root"`
	IncludeRoot      string            `mapstructure:"include_root"`
	Exclude          []string          `mapstructure:"exclude"`
	Status           string            `mapstructure:"status"`
	SchemaURL        string            `mapstructure:"schema_url"`
	Groups           map[string]string `mapstructure:"groups"`
	DefaultGroup     string            `mapstructure:"default_group"`
	VocabularyFile   string            `mapstructure:"vocabulary_file"`
	EnumFirstDefault bool              `mapstructure:"enum_first_default"`
	Readme           bool              `mapstructure:"readme"`
	MaxIncludeDepth  int               `mapstructure:"max_include_depth"`
	Jobs             int               `mapstructure:"jobs"`
	Log              LogConfig         `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Exclude:   []string{"**/*.stories.twig"},
		Status:    "experimental",
		SchemaURL: DefaultSchemaURL,
		Groups: map[string]string{
			"atoms":     "Atoms",
			"molecules": "Molecules",
			"organisms": "Organisms",
			"templates": "Templates",
			"pages":     "Pages",
			"base":      "Base",
			"layouts":   "Layouts",
		},
		DefaultGroup:    "Components",
		Readme:          true,
		MaxIncludeDepth: 8,
		Jobs:            1,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SearchPaths returns config file candidates in precedence order.
func SearchPaths(workDir string) []string {
	paths := []string{filepath.Join(workDir, ".sdcgen.yaml")}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "sdcgen", "config.yaml"))
	}
	return paths
}

// SetDefaults registers the built-in settings on v.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("root", def.Root)
	v.SetDefault("include_root", def.IncludeRoot)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("status", def.Status)
	v.SetDefault("schema_url", def.SchemaURL)
	v.SetDefault("groups", def.Groups)
	v.SetDefault("default_group", def.DefaultGroup)
	v.SetDefault("vocabulary_file", def.VocabularyFile)
	v.SetDefault("enum_first_default", def.EnumFirstDefault)
	v.SetDefault("readme", def.Readme)
	v.SetDefault("max_include_depth", def.MaxIncludeDepth)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}

// Load reads settings into a Config. v may already carry bound flags. When
// file is empty the first existing search path under workDir is used.
func Load(v *viper.Viper, fs afero.Fs, file, workDir string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	v.SetFs(fs)
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		for _, candidate := range SearchPaths(workDir) {
			if ok, _ := afero.Exists(fs, candidate); ok {
				file = candidate
				break
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = file
	if cfg.IncludeRoot == "" {
		cfg.IncludeRoot = cfg.Root
	}
	return cfg, nil
}

// Validate checks the settings needed by a generator run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &ValidationError{Field: "root", Message: "is required", Err: ErrRootRequired}
	}
	if c.Jobs < 1 {
		return &ValidationError{Field: "jobs", Message: "must be at least 1"}
	}
	if c.MaxIncludeDepth < 1 {
		return &ValidationError{Field: "max_include_depth", Message: "must be at least 1"}
	}
	if strings.TrimSpace(c.Status) == "" {
		return &ValidationError{Field: "status", Message: "is required"}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}
