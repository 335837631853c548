// Package discovery finds component templates on disk and answers the
// engine's include lookups.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/qed42/twig-sdc-yaml-generator/internal/twig"
)

// ErrNotFound is returned by Locate when no template has the filename.
var ErrNotFound = errors.New("template not found")

// Extension marks template files.
const Extension = ".twig"

// Template is a discovered top-level component template.
type Template struct {
	Path        string
	MachineName string
	Group       string
	// HasScript is set when <machine name>.js sits beside the template.
	HasScript bool
}

// Options configures a Finder.
type Options struct {
	Root string
	// IncludeRoot is searched by Locate; it defaults to Root.
	IncludeRoot string
	Exclude     []string
	Classifier  *Classifier
}

// Finder walks template trees on an afero filesystem.
type Finder struct {
	fs   afero.Fs
	opts Options

	indexOnce sync.Once
	index     map[string]string
	indexErr  error
}

// NewFinder creates a Finder.
func NewFinder(fs afero.Fs, opts Options) *Finder {
	if opts.IncludeRoot == "" {
		opts.IncludeRoot = opts.Root
	}
	if opts.Classifier == nil {
		opts.Classifier = NewClassifier(nil, "")
	}
	return &Finder{fs: fs, opts: opts}
}

// Templates returns the component templates under the root in lexical path
// order, excluded patterns removed.
func (f *Finder) Templates() ([]Template, error) {
	var out []Template
	err := afero.Walk(f.fs, f.opts.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), Extension) {
			return nil
		}
		rel, err := filepath.Rel(f.opts.Root, path)
		if err != nil {
			return err
		}
		if Excluded(filepath.ToSlash(rel), f.opts.Exclude) {
			return nil
		}

		name := twig.Stem(info.Name())
		out = append(out, Template{
			Path:        path,
			MachineName: name,
			Group:       f.opts.Classifier.Group(filepath.ToSlash(rel)),
			HasScript:   f.exists(filepath.Join(filepath.Dir(path), name+".js")),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", f.opts.Root, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Locate returns the path and text of the first template under the include
// root whose base name is filename. The root is walked in lexical order and
// the first hit wins.
func (f *Finder) Locate(filename string) (string, string, error) {
	f.indexOnce.Do(f.buildIndex)
	if f.indexErr != nil {
		return "", "", f.indexErr
	}

	path, ok := f.index[filename]
	if !ok {
		return "", "", fmt.Errorf("%s: %w", filename, ErrNotFound)
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return path, string(data), nil
}

// Read returns the text of a template.
func (f *Finder) Read(path string) (string, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// buildIndex records the first path of every filename under the include root.
func (f *Finder) buildIndex() {
	f.index = make(map[string]string)
	err := afero.Walk(f.fs, f.opts.IncludeRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, seen := f.index[info.Name()]; !seen {
			f.index[info.Name()] = path
		}
		return nil
	})
	if err != nil {
		f.indexErr = fmt.Errorf("scan include root %s: %w", f.opts.IncludeRoot, err)
	}
}

func (f *Finder) exists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	return err == nil && ok
}
