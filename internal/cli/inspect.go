package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qed42/twig-sdc-yaml-generator/internal/discovery"
	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
	"github.com/qed42/twig-sdc-yaml-generator/internal/readme"
	"github.com/qed42/twig-sdc-yaml-generator/internal/twig"
)

var (
	inspectReadme bool
	inspectTable  bool
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectReadme, "readme", false, "print the README instead of the schema")
	inspectCmd.Flags().BoolVar(&inspectTable, "table", false, "print the properties as a table")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <template.twig>",
	Short: "Print the schema of one template without writing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		if cfg.Root == "" {
			cfg.Root = filepath.Dir(path)
		}
		if cfg.IncludeRoot == "" {
			cfg.IncludeRoot = cfg.Root
		}

		gen, _, err := newGenerator(cfg, generator.Options{Mode: generator.ModeDryRun})
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(cfg.Root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(path)
		}
		name := twig.Stem(filepath.Base(path))
		hasScript, _ := existsOnFs(filepath.Join(filepath.Dir(path), name+".js"))
		tpl := discovery.Template{
			Path:        path,
			MachineName: name,
			Group:       discovery.NewClassifier(cfg.Groups, cfg.DefaultGroup).Group(filepath.ToSlash(rel)),
			HasScript:   hasScript,
		}

		c, data, err := gen.Render(tpl)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case inspectReadme:
			text, err := readme.Render(c)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		case inspectTable:
			required := make(map[string]bool)
			for _, n := range c.Required() {
				required[n] = true
			}
			rows := make([][]string, 0, c.Props.Len())
			for _, n := range c.Props.Names() {
				p := c.Props.Get(n)
				def := ""
				if p.HasDefault {
					def = fmt.Sprint(p.Default)
				}
				rows = append(rows, []string{n, p.Type, formatYesNo(required[n]), def, strings.Join(p.Enum, ",")})
			}
			return writeTable(out, []string{"NAME", "TYPE", "REQUIRED", "DEFAULT", "ENUM"}, rows)
		default:
			_, err = out.Write(data)
			return err
		}
	},
}
