package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
)

func formatFileStatus(status generator.Status) string {
	label, style := statusLabelForFile(status)
	return style.Render(formatStatusLabel(label, string(status)))
}

func statusLabelForFile(status generator.Status) (string, lipgloss.Style) {
	s := styles()
	switch status {
	case generator.StatusCreated:
		return "NEW", s.Success
	case generator.StatusUpdated:
		return "OK", s.Info
	case generator.StatusUnchanged:
		return "OK", s.Muted
	case generator.StatusDrift:
		return "DIFF", s.Warning
	default:
		return "WARN", s.Warning
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}

// printSummary lists changed files and the per-status totals of a run.
func printSummary(out io.Writer, report *generator.Report, mode generator.Mode) error {
	s := styles()

	var rows [][]string
	for _, res := range report.Results {
		if res.Err != nil {
			rows = append(rows, []string{s.Error.Render("ERR failed"), res.Template.Path})
			continue
		}
		for _, f := range res.Files {
			if f.Status == generator.StatusUnchanged {
				continue
			}
			rows = append(rows, []string{formatFileStatus(f.Status), f.Path})
		}
	}
	if len(rows) > 0 {
		if err := writeTable(out, nil, rows); err != nil {
			return err
		}
	}

	verb := "written"
	switch mode {
	case generator.ModeCheck:
		verb = "out of date"
	case generator.ModeDryRun:
		verb = "would change"
	}
	changed := report.Count(generator.StatusCreated) + report.Count(generator.StatusUpdated) + report.Count(generator.StatusDrift)

	_, err := fmt.Fprintf(out, "%s %d template(s): %d %s, %d unchanged, %d failed\n",
		s.Title.Render("sdcgen"),
		len(report.Results),
		changed,
		verb,
		report.Count(generator.StatusUnchanged),
		len(report.Failed()),
	)
	return err
}
