package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
)

const buttonTwig = `{#
 * - label: [string] Button text
 * - icon_placement: [string] Where the icon goes
 * - is_disabled: [boolean] Render the button disabled
 * - icon: [string] Icon slot
#}
<button{{ is_disabled ? ' disabled' }}>{{ label }}</button>
`

// withTestEnv points the command line at an in-memory filesystem and
// restores the package state afterwards.
func withTestEnv(t *testing.T) afero.Fs {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SDCGEN_NO_PROGRESS", "1")

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/theme/components/01-atoms/button/button.twig", []byte(buttonTwig), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	originalFs, originalWd := appFs, workDirFunc
	workDir := t.TempDir()
	appFs = fs
	workDirFunc = func() (string, error) { return workDir, nil }
	t.Cleanup(func() {
		appFs, workDirFunc = originalFs, originalWd
		generateCheck, generateDryRun, generateDiff = false, false, false
		inspectReadme, inspectTable = false, false
		vocabYAML, vocabFile = false, ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return fs
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	fs := withTestEnv(t)

	out, err := run(t, "generate", "/theme/components", "--no-progress")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 template(s): 2 written") {
		t.Fatalf("unexpected summary: %s", out)
	}

	data, err := afero.ReadFile(fs, "/theme/components/01-atoms/button/button.component.yml")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	for _, want := range []string{
		"name: Button\n",
		"group: Atoms\n",
		"      enum:\n        - left\n        - right\n",
		"      title: Render the button disabled\n",
		"  icon:\n    title: Icon\n",
	} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("schema missing %q:\n%s", want, data)
		}
	}
	if ok, _ := afero.Exists(fs, "/theme/components/01-atoms/button/README.md"); !ok {
		t.Fatalf("expected README.md")
	}
}

func TestGenerateCheckCommand(t *testing.T) {
	fs := withTestEnv(t)

	if out, err := run(t, "generate", "/theme/components"); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if out, err := run(t, "generate", "/theme/components", "--check"); err != nil {
		t.Fatalf("check after generate: %v\n%s", err, out)
	}

	path := "/theme/components/01-atoms/button/button.component.yml"
	if err := afero.WriteFile(fs, path, []byte("name: Stale\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, "generate", "/theme/components", "--check")
	if !errors.Is(err, generator.ErrDrift) {
		t.Fatalf("expected drift error, got %v", err)
	}
	if !strings.Contains(out, "-name: Stale") {
		t.Fatalf("expected diff in output: %s", out)
	}
}

func TestGenerateRejectsCheckWithDryRun(t *testing.T) {
	withTestEnv(t)
	if _, err := run(t, "generate", "/theme/components", "--check", "--dry-run"); err == nil {
		t.Fatalf("expected error for --check with --dry-run")
	}
}

func TestInspectCommandTable(t *testing.T) {
	withTestEnv(t)

	out, err := run(t, "inspect", "/theme/components/01-atoms/button/button.twig", "--table")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "icon_placement") {
		t.Fatalf("unexpected table: %s", out)
	}
	if strings.Contains(out, "Icon slot") {
		t.Fatalf("slot listed as property: %s", out)
	}
}

func TestVocabCommand(t *testing.T) {
	withTestEnv(t)

	out, err := run(t, "vocab")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	if !strings.Contains(out, "VARIABLE") || !strings.Contains(out, "submit, reset, button, link") {
		t.Fatalf("unexpected vocabulary output: %s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	withTestEnv(t)

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "sdcgen dev") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestFormatStatusLabel(t *testing.T) {
	noColor = true
	defer func() { noColor = false }()

	if got := formatFileStatus(generator.StatusDrift); got != "DIFF drift" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := formatStatusLabel("OK", ""); got != "OK" {
		t.Fatalf("unexpected label %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrintSummaryReturnsWriteError(t *testing.T) {
	report := &generator.Report{Results: []generator.Result{{
		Files: []generator.File{{Path: "/c/a/a.component.yml", Status: generator.StatusCreated}},
	}}}
	if err := printSummary(failingWriter{}, report, generator.ModeWrite); err == nil {
		t.Fatalf("expected write error")
	}

	var out bytes.Buffer
	if err := printSummary(&out, report, generator.ModeWrite); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	if !strings.Contains(out.String(), "1 template(s): 1 written") {
		t.Fatalf("unexpected summary: %s", out.String())
	}
}

func TestVocabCommandReadsFileFromAppFs(t *testing.T) {
	fs := withTestEnv(t)
	if err := afero.WriteFile(fs, "/theme/vocabulary.yaml", []byte("theme: [neon, mono]\n"), 0o644); err != nil {
		t.Fatalf("write vocabulary: %v", err)
	}

	out, err := run(t, "vocab", "--vocabulary", "/theme/vocabulary.yaml")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	if !strings.Contains(out, "neon, mono") || strings.Contains(out, "submit") {
		t.Fatalf("expected vocabulary from file: %s", out)
	}
}
