// Package annotate turns scanned declarations into property schemas and
// layers the template's enum, default and conditional-usage hints on top.
package annotate

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/qed42/twig-sdc-yaml-generator/internal/docblock"
	"github.com/qed42/twig-sdc-yaml-generator/internal/literal"
	"github.com/qed42/twig-sdc-yaml-generator/internal/schema"
	"github.com/qed42/twig-sdc-yaml-generator/internal/twig"
	"github.com/qed42/twig-sdc-yaml-generator/internal/vocab"
)

// Options configures an Enricher.
type Options struct {
	// Vocabulary supplies enums by variable name. It wins over an inline
	// enum clause for the same property.
	Vocabulary *vocab.Vocabulary
	// EnumFirstDefault makes the first enum entry the default when the
	// template declares none.
	EnumFirstDefault bool
}

// Enricher derives property schemas from declarations.
type Enricher struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an Enricher.
func New(opts Options, logger zerolog.Logger) *Enricher {
	return &Enricher{opts: opts, logger: logger}
}

// "Options: a, b, c." / "One of: a | b" ...
var inlineEnum = regexp.MustCompile(`(?i)\b(?:options|allowed values|one of|enum)\s*:\s*([^.;)\n]+)`)

// Property builds the schema of one declaration belonging to component, which
// is the machine name used to narrow vocabulary lookups. Nested properties
// and items are left to the caller.
func (e *Enricher) Property(component string, decl docblock.Declaration) *schema.Property {
	p := &schema.Property{
		Type:        string(decl.Type),
		Title:       schema.Humanize(decl.Name),
		Description: decl.Description,
	}

	switch decl.Type {
	case docblock.TypeString:
		if values, ok := e.opts.Vocabulary.Lookup(decl.Name, component); ok && len(values) > 0 {
			p.Enum = values
		} else if values := InlineEnum(decl.Description); len(values) > 0 {
			p.Enum = values
		}
		if e.opts.EnumFirstDefault && len(p.Enum) > 0 {
			p.SetDefault(p.Enum[0])
		}
	case docblock.TypeBoolean:
		if p.Description != "" {
			p.Title = p.Description
		}
		p.Description = ""
	}
	return p
}

// Slot builds the slot entry of a slot declaration.
func (e *Enricher) Slot(decl docblock.Declaration) schema.Slot {
	return schema.Slot{
		Name:        decl.Name,
		Title:       schema.Humanize(decl.Name),
		Description: decl.Description,
	}
}

// InlineEnum parses the enumerated values clause of a description, if any.
func InlineEnum(description string) []string {
	m := inlineEnum.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	fields := strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ',' || r == '|'
	})

	var values []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		v := strings.Trim(strings.TrimSpace(f), `'"`+"`")
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// ApplyDefaults attaches the defaults found in text to the known properties in
// props. Ternary assignments are applied before pipe defaults and a later
// default replaces an earlier one. A default outside a property's enum is
// dropped.
func (e *Enricher) ApplyDefaults(text string, props *schema.Properties) {
	found := append(twig.TernaryDefaults(text), twig.PipeDefaults(text)...)
	for _, a := range found {
		p := props.Get(a.Name)
		if p == nil {
			continue
		}
		value := literal.Parse(a.Raw)
		if !p.AllowsDefault(value) {
			e.logger.Warn().
				Str("property", a.Name).
				Interface("default", value).
				Strs("enum", p.Enum).
				Msg("default not in enum; dropped")
			continue
		}
		p.SetDefault(value)
	}
}

// Conditionals returns the conditional-usage set of text.
func (e *Enricher) Conditionals(text string) map[string]struct{} {
	names := twig.ConditionalNames(text)
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
