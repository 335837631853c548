// Package generator runs the schema engine over a template tree and writes,
// checks or previews the resulting component files.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/qed42/twig-sdc-yaml-generator/internal/discovery"
	"github.com/qed42/twig-sdc-yaml-generator/internal/engine"
	"github.com/qed42/twig-sdc-yaml-generator/internal/readme"
	"github.com/qed42/twig-sdc-yaml-generator/internal/schema"
)

// ErrDrift is returned in check mode when any output is out of date.
var ErrDrift = errors.New("generated files are out of date")

// SchemaSuffix names the schema file written beside each template.
const SchemaSuffix = ".component.yml"

// Mode selects what Run does with rendered output.
type Mode int

const (
	// ModeWrite writes changed files.
	ModeWrite Mode = iota
	// ModeCheck compares without writing and reports drift.
	ModeCheck
	// ModeDryRun reports what would be written.
	ModeDryRun
)

// Status is the outcome for one output file.
type Status string

const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusDrift     Status = "drift"
)

// Options configures a Generator.
type Options struct {
	Mode   Mode
	Readme bool
	// Jobs bounds how many templates are processed at once.
	Jobs int
	// OnResult is called once per template as it completes.
	OnResult func(Result)
}

// File is the outcome for one output file.
type File struct {
	Path   string
	Status Status
	// Diff is a unified diff against the existing file, set unless unchanged.
	Diff string
	// Cosmetic is set when the existing file differs only in layout.
	Cosmetic bool
}

// Result is the outcome for one template.
type Result struct {
	Template  discovery.Template
	Component *schema.Component
	Files     []File
	Err       error
}

// Report collects the results of a run in template order.
type Report struct {
	Results []Result
}

// Count returns how many output files have status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		for _, f := range res.Files {
			if f.Status == status {
				n++
			}
		}
	}
	return n
}

// Failed returns the results that ended in an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Generator drives one run.
type Generator struct {
	fs     afero.Fs
	finder *discovery.Finder
	engine *engine.Engine
	opts   Options
	logger zerolog.Logger

	mu sync.Mutex
}

// New creates a Generator.
func New(fs afero.Fs, finder *discovery.Finder, eng *engine.Engine, opts Options, logger zerolog.Logger) *Generator {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Generator{
		fs:     fs,
		finder: finder,
		engine: eng,
		opts:   opts,
		logger: logger,
	}
}

// Run processes every discovered template. Per-template failures are recorded
// in the report; the returned error is reserved for discovery failures,
// cancellation and drift in check mode.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	templates, err := g.finder.Templates()
	if err != nil {
		return nil, err
	}
	g.logger.Debug().Int("templates", len(templates)).Int("jobs", g.opts.Jobs).Msg("processing templates")

	results := make([]Result, len(templates))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.Jobs)
	for i, tpl := range templates {
		i, tpl := i, tpl
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.process(tpl)
			g.notify(results[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	if g.opts.Mode == ModeCheck && report.Count(StatusDrift) > 0 {
		return report, ErrDrift
	}
	return report, nil
}

// Render builds and serializes the schema of one template.
func (g *Generator) Render(tpl discovery.Template) (*schema.Component, []byte, error) {
	text, err := g.finder.Read(tpl.Path)
	if err != nil {
		return nil, nil, err
	}

	c := g.engine.Build(engine.Source{
		MachineName: tpl.MachineName,
		Path:        tpl.Path,
		Text:        text,
		Group:       tpl.Group,
		HasScript:   tpl.HasScript,
	})
	data, err := schema.Encode(c)
	if err != nil {
		return nil, nil, err
	}
	return c, schema.Format(data), nil
}

type output struct {
	path string
	data []byte
}

func (g *Generator) process(tpl discovery.Template) Result {
	res := Result{Template: tpl}
	log := g.logger.With().Str("template", tpl.Path).Logger()

	c, data, err := g.Render(tpl)
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		res.Err = err
		return res
	}
	res.Component = c

	dir := filepath.Dir(tpl.Path)
	outputs := []output{{filepath.Join(dir, tpl.MachineName+SchemaSuffix), data}}
	if g.opts.Readme {
		text, err := readme.Render(c)
		if err != nil {
			log.Error().Err(err).Msg("readme failed")
			res.Err = err
			return res
		}
		outputs = append(outputs, output{readme.Path(dir, tpl.MachineName), []byte(text)})
	}

	for _, out := range outputs {
		f, err := g.emit(out.path, out.data)
		if err != nil {
			log.Error().Err(err).Str("path", out.path).Msg("write failed")
			res.Err = err
			return res
		}
		log.Debug().Str("path", f.Path).Str("status", string(f.Status)).Msg("output")
		res.Files = append(res.Files, f)
	}
	return res
}

// emit compares data with the file at path and acts according to the mode.
func (g *Generator) emit(path string, data []byte) (File, error) {
	f := File{Path: path}

	existing, err := afero.ReadFile(g.fs, path)
	exists := err == nil
	if exists && bytes.Equal(existing, data) {
		f.Status = StatusUnchanged
		return f, nil
	}

	f.Status = StatusCreated
	if exists {
		f.Status = StatusUpdated
		f.Cosmetic = sameYAML(path, existing, data)
	}
	f.Diff, err = unifiedDiff(path, existing, data)
	if err != nil {
		return f, err
	}

	switch g.opts.Mode {
	case ModeCheck:
		f.Status = StatusDrift
	case ModeWrite:
		if err := afero.WriteFile(g.fs, path, data, 0o644); err != nil {
			return f, fmt.Errorf("write %s: %w", path, err)
		}
		g.logger.Info().Str("path", path).Str("status", string(f.Status)).Msg("wrote")
	}
	return f, nil
}

func (g *Generator) notify(res Result) {
	if g.opts.OnResult == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opts.OnResult(res)
}

func unifiedDiff(path string, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return text, nil
}

// sameYAML reports whether two schema documents decode to the same value.
func sameYAML(path string, a, b []byte) bool {
	if filepath.Ext(path) != filepath.Ext(SchemaSuffix) {
		return false
	}
	var va, vb any
	if yaml.Unmarshal(a, &va) != nil || yaml.Unmarshal(b, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
