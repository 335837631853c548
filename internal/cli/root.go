// Package cli implements the sdcgen command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qed42/twig-sdc-yaml-generator/internal/config"
	"github.com/qed42/twig-sdc-yaml-generator/internal/logging"
)

var (
	cfgFile    string
	logLevel   string
	logFormat  string
	noProgress bool
	noColor    bool

	// settings collects flag bindings and overrides for config.Load.
	settings = viper.New()

	logger = zerolog.Nop()

	// appFs and workDirFunc are replaced in tests.
	appFs       afero.Fs = afero.NewOsFs()
	workDirFunc          = os.Getwd
)

var rootCmd = &cobra.Command{
	Use:   "sdcgen",
	Short: "Generate component schemas from Twig templates",
	Long: `sdcgen reads the variable documentation in Twig templates and writes a
<name>.component.yml schema (and optionally a README.md) beside each one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .sdcgen.yaml or ~/.config/sdcgen/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	mustBind(settings.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	mustBind(settings.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the layered configuration and sets up logging. overrides
// take precedence over every other source.
func loadConfig(overrides map[string]any) (*config.Config, error) {
	for key, value := range overrides {
		settings.Set(key, value)
	}

	wd, err := workDirFunc()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	cfg, err := config.Load(settings, appFs, cfgFile, wd)
	if err != nil {
		return nil, err
	}

	logger = logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Writer:  os.Stderr,
		NoColor: noColor,
	})
	logging.Init(logger)
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("config loaded")
	}

	return cfg, nil
}

func mustBind(err error) {
	if err != nil {
		panic(fmt.Sprintf("bind flag: %v", err))
	}
}
