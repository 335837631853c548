// Package engine assembles component schemas from template text. It resolves
// nested declaration scopes and, for arrays whose item shape lives in another
// template, follows the include that consumes the array.
//
// The engine never fails on template content: missing includes, cycles and
// malformed declarations degrade to empty schemas and are only logged.
package engine

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/qed42/twig-sdc-yaml-generator/internal/annotate"
	"github.com/qed42/twig-sdc-yaml-generator/internal/docblock"
	"github.com/qed42/twig-sdc-yaml-generator/internal/schema"
	"github.com/qed42/twig-sdc-yaml-generator/internal/twig"
)

// ErrIncludeCycle is logged when a template includes itself, directly or
// through a chain of includes.
var ErrIncludeCycle = errors.New("include cycle")

// ErrIncludeDepth is logged when include resolution exceeds the depth limit.
var ErrIncludeDepth = errors.New("include depth exceeded")

// DefaultMaxIncludeDepth bounds include recursion when Options leaves it unset.
const DefaultMaxIncludeDepth = 8

// Locator finds an included template by filename under the include root.
type Locator interface {
	Locate(filename string) (path string, text string, err error)
}

// Options configures an Engine.
type Options struct {
	Status          string
	SchemaURL       string
	MaxIncludeDepth int
}

// Source is one top-level template handed to the engine.
type Source struct {
	MachineName string
	Path        string
	Text        string
	Group       string
	// HasScript reports a companion <machine name>.js beside the template.
	HasScript bool
}

// Engine builds component schemas.
type Engine struct {
	opts     Options
	enricher *annotate.Enricher
	locator  Locator
	logger   zerolog.Logger
}

// New creates an Engine. locator may be nil, in which case no include is
// ever resolved.
func New(opts Options, enricher *annotate.Enricher, locator Locator, logger zerolog.Logger) *Engine {
	if opts.MaxIncludeDepth <= 0 {
		opts.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	return &Engine{
		opts:     opts,
		enricher: enricher,
		locator:  locator,
		logger:   logger,
	}
}

// Build assembles the schema of src. Each call starts from scratch; nothing
// is cached between calls.
func (e *Engine) Build(src Source) *schema.Component {
	r := &resolution{
		engine:  e,
		visited: make(map[string]bool),
		logger:  e.logger.With().Str("component", src.MachineName).Logger(),
	}
	if src.Path != "" {
		r.visited[src.Path] = true
	}

	doc := docblock.Scan(src.Text)
	props := r.assemble(src.MachineName, src.Text, doc)

	slots := make([]schema.Slot, 0)
	for _, decl := range doc.Slots() {
		slots = append(slots, e.enricher.Slot(decl))
	}

	return &schema.Component{
		SchemaURL:       e.opts.SchemaURL,
		MachineName:     src.MachineName,
		Name:            schema.Humanize(src.MachineName),
		Status:          e.opts.Status,
		Group:           src.Group,
		Props:           props,
		Slots:           slots,
		Conditional:     e.enricher.Conditionals(src.Text),
		LibraryOverride: src.HasScript,
	}
}

// resolution carries the state of one Build call across include recursion.
type resolution struct {
	engine  *Engine
	visited map[string]bool
	depth   int
	logger  zerolog.Logger
}

// assemble returns the top-level properties of a template with defaults
// applied.
func (r *resolution) assemble(component, text string, doc *docblock.Doc) *schema.Properties {
	props := r.properties(component, text, doc, doc)
	r.engine.enricher.ApplyDefaults(text, props)
	return props
}

// properties converts the declarations of scope. root is the template's
// top-level scope, used to filter include results.
func (r *resolution) properties(component, text string, scope, root *docblock.Doc) *schema.Properties {
	props := schema.NewProperties()
	for _, decl := range scope.Declarations() {
		p := r.engine.enricher.Property(component, decl)
		switch decl.Type {
		case docblock.TypeObject:
			p.Properties = schema.NewProperties()
			if nested, ok := scope.Scope(decl.Name); ok {
				p.Properties = r.properties(component, text, nested, root)
			}
		case docblock.TypeArray:
			p.Items = r.items(component, text, scope, root, decl.Name)
		}
		props.Set(decl.Name, p)
	}
	return props
}

// items resolves the element schema of array name: first through the include
// consuming it, then through its own nested declarations.
func (r *resolution) items(component, text string, scope, root *docblock.Doc, name string) *schema.Property {
	if inc, ok := twig.FindBinding(text, name); ok {
		if item := r.fromInclude(inc, root, name); item != nil {
			return item
		}
	}

	if nested, ok := scope.Scope(name); ok {
		return &schema.Property{Type: string(docblock.TypeObject), Properties: r.properties(component, text, nested, root)}
	}
	return &schema.Property{Type: string(docblock.TypeObject), Properties: schema.NewProperties()}
}

// fromInclude builds the item schema from the included template's properties
// that the include actually passes. Properties the caller documents itself
// are dropped, except the array's own name, which then gives the scalar
// element type.
func (r *resolution) fromInclude(inc twig.Include, root *docblock.Doc, array string) *schema.Property {
	included := r.include(inc)
	if included == nil {
		return nil
	}

	common := schema.NewProperties()
	for _, name := range included.Names() {
		if !inc.HasKey(name) {
			continue
		}
		p := included.Get(name)
		if root.Has(name) {
			if name == array {
				if t := p.ElementType(); t != "" {
					return &schema.Property{Type: t}
				}
			}
			continue
		}
		common.Set(name, p)
	}
	return &schema.Property{Type: string(docblock.TypeObject), Properties: common}
}

// include locates and assembles an included template. It returns nil when
// the template cannot be used.
func (r *resolution) include(inc twig.Include) *schema.Properties {
	log := r.logger.With().Str("include", inc.Template).Logger()
	if r.engine.locator == nil {
		return nil
	}
	if r.depth >= r.engine.opts.MaxIncludeDepth {
		log.Warn().Err(ErrIncludeDepth).Int("depth", r.depth).Msg("include not resolved")
		return nil
	}

	path, text, err := r.engine.locator.Locate(inc.Filename())
	if err != nil {
		log.Debug().Err(err).Msg("include not resolved")
		return nil
	}
	if r.visited[path] {
		log.Warn().Err(ErrIncludeCycle).Str("path", path).Msg("include not resolved")
		return nil
	}

	r.visited[path] = true
	r.depth++
	defer func() {
		delete(r.visited, path)
		r.depth--
	}()

	log.Debug().Str("path", path).Int("depth", r.depth).Msg("resolving include")
	return r.assemble(inc.Stem(), text, docblock.Scan(text))
}
