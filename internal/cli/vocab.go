package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	vocabYAML bool
	vocabFile string
)

func init() {
	rootCmd.AddCommand(vocabCmd)

	vocabCmd.Flags().BoolVar(&vocabYAML, "yaml", false, "print the vocabulary as YAML")
	vocabCmd.Flags().StringVar(&vocabFile, "vocabulary", "", "YAML vocabulary file replacing the builtin one")
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the enum vocabulary in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		if vocabFile != "" {
			cfg.VocabularyFile = vocabFile
		}
		v, err := loadVocabulary(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if vocabYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}

		var rows [][]string
		for _, name := range v.Names() {
			entry, _ := v.Entry(name)
			if entry.ByComponent == nil {
				rows = append(rows, []string{name, "*", strings.Join(entry.Values, ", ")})
				continue
			}
			components := make([]string, 0, len(entry.ByComponent))
			for component := range entry.ByComponent {
				components = append(components, component)
			}
			sort.Strings(components)
			for _, component := range components {
				rows = append(rows, []string{name, component, strings.Join(entry.ByComponent[component], ", ")})
			}
		}
		if err := writeTable(out, []string{"VARIABLE", "COMPONENT", "VALUES"}, rows); err != nil {
			return err
		}
		logger.Debug().Str("source", v.Source).Msg("vocabulary")
		return nil
	},
}
