package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/none")
	cfg, err := Load(viper.New(), afero.NewMemMapFs(), "", "/work")
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Exclude, cfg.Exclude)
	assert.Equal(t, "experimental", cfg.Status)
	assert.Equal(t, DefaultSchemaURL, cfg.SchemaURL)
	assert.Equal(t, "Atoms", cfg.Groups["atoms"])
	assert.Equal(t, "Components", cfg.DefaultGroup)
	assert.True(t, cfg.Readme)
	assert.False(t, cfg.EnumFirstDefault)
	assert.Equal(t, 8, cfg.MaxIncludeDepth)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Empty(t, cfg.File)

	err = cfg.Validate()
	assert.True(t, errors.Is(err, ErrRootRequired))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "root", verr.Field)
}

func TestLoadProjectFileAndEnv(t *testing.T) {
	t.Setenv("HOME", "/home/none")
	t.Setenv("SDCGEN_JOBS", "4")
	t.Setenv("SDCGEN_LOG_LEVEL", "debug")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/.sdcgen.yaml", []byte(`
root: web/themes/custom/acme/components
status: stable
readme: false
groups:
  atoms: Base elements
`), 0o644))

	cfg, err := Load(viper.New(), fs, "", "/work")
	require.NoError(t, err)
	assert.Equal(t, "/work/.sdcgen.yaml", cfg.File)
	assert.Equal(t, "web/themes/custom/acme/components", cfg.Root)
	assert.Equal(t, cfg.Root, cfg.IncludeRoot)
	assert.Equal(t, "stable", cfg.Status)
	assert.False(t, cfg.Readme)
	assert.Equal(t, "Base elements", cfg.Groups["atoms"])
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(viper.New(), afero.NewMemMapFs(), "/nope.yaml", "/work")
	assert.Error(t, err)
}

func TestLoadFlagOverridesFile(t *testing.T) {
	t.Setenv("HOME", "/home/none")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("root: from-file\n"), 0o644))

	v := viper.New()
	v.Set("root", "from-flag")
	cfg, err := Load(v, fs, "/cfg.yaml", "/work")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Root)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"jobs", func(c *Config) { c.Jobs = 0 }, "jobs"},
		{"depth", func(c *Config) { c.MaxIncludeDepth = 0 }, "max_include_depth"},
		{"status", func(c *Config) { c.Status = " " }, "status"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Root = "components"
			tc.edit(cfg)

			var verr *ValidationError
			require.True(t, errors.As(cfg.Validate(), &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
