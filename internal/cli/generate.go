package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
)

var (
	generateCheck  bool
	generateDryRun bool
	generateDiff   bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.String("include-root", "", "directory searched for included templates (default: root)")
	flags.StringSlice("exclude", nil, "glob patterns of templates to skip")
	flags.String("status", "", "component status written to every schema")
	flags.String("schema-url", "", "$schema reference of generated files")
	flags.String("group", "", "group used when no directory convention matches")
	flags.String("vocabulary", "", "YAML vocabulary file replacing the builtin one")
	flags.Bool("enum-first-default", false, "use the first enum value as default when none is declared")
	flags.Bool("readme", true, "write README.md beside each component")
	flags.Int("max-include-depth", 0, "maximum include nesting followed")
	flags.IntP("jobs", "j", 0, "templates processed concurrently")
	flags.BoolVar(&generateCheck, "check", false, "fail if any generated file is out of date; write nothing")
	flags.BoolVar(&generateDryRun, "dry-run", false, "report what would change; write nothing")
	flags.BoolVar(&generateDiff, "diff", false, "print a unified diff for each changed file")

	for key, name := range map[string]string{
		"include_root":       "include-root",
		"exclude":            "exclude",
		"status":             "status",
		"schema_url":         "schema-url",
		"default_group":      "group",
		"vocabulary_file":    "vocabulary",
		"enum_first_default": "enum-first-default",
		"readme":             "readme",
		"max_include_depth":  "max-include-depth",
		"jobs":               "jobs",
	} {
		mustBind(settings.BindPFlag(key, flags.Lookup(name)))
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Write component schemas for every template under root",
	Long: `Scan root for *.twig templates and write <name>.component.yml beside each.

With --check nothing is written and the command fails when any file would
change, which suits CI. With --dry-run the changes are only reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCheck && generateDryRun {
			return errors.New("--check and --dry-run are mutually exclusive")
		}

		overrides := map[string]any{}
		if len(args) == 1 {
			overrides["root"] = args[0]
		}
		cfg, err := loadConfig(overrides)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		mode := generator.ModeWrite
		switch {
		case generateCheck:
			mode = generator.ModeCheck
		case generateDryRun:
			mode = generator.ModeDryRun
		}

		progress := newResultProgress(cmd.ErrOrStderr())
		gen, v, err := newGenerator(cfg, generator.Options{
			Mode:     mode,
			Readme:   cfg.Readme,
			OnResult: progress.Observe,
		})
		if err != nil {
			return err
		}
		logger.Debug().Str("vocabulary", v.Source).Str("root", cfg.Root).Msg("generating")

		step := startProgress(fmt.Sprintf("Scanning %s", cfg.Root))
		report, runErr := gen.Run(cmd.Context())
		if report == nil {
			step.Fail(runErr)
			return runErr
		}
		step.Done()

		out := cmd.OutOrStdout()
		if generateDiff || mode != generator.ModeWrite {
			printDiffs(out, report)
		}
		if err := printSummary(out, report, mode); err != nil {
			return err
		}

		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d template(s) failed", len(failed))
		}
		return runErr
	},
}

func printDiffs(out io.Writer, report *generator.Report) {
	for _, res := range report.Results {
		for _, f := range res.Files {
			if f.Diff == "" {
				continue
			}
			fmt.Fprint(out, f.Diff)
			if f.Cosmetic {
				fmt.Fprintf(out, "(%s: layout only)\n", f.Path)
			}
		}
	}
}
