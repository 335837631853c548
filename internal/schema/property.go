// Package schema models the component metadata document produced for each
// template and serializes it as ordered YAML.
package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Property is one normalized property schema.
type Property struct {
	Type        string
	Title       string
	Description string
	// Default is only meaningful when HasDefault is set; nil then means null.
	Default    any
	HasDefault bool
	Enum       []string
	// Properties is set for objects and for object-shaped array items.
	Properties *Properties
	// Items is set for arrays.
	Items *Property
}

// SetDefault attaches a default value.
func (p *Property) SetDefault(value any) {
	p.Default = value
	p.HasDefault = true
}

// AllowsDefault reports whether value is acceptable given the property's enum.
func (p *Property) AllowsDefault(value any) bool {
	if len(p.Enum) == 0 {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, allowed := range p.Enum {
		if allowed == s {
			return true
		}
	}
	return false
}

// ElementType follows nested properties (first entry at each level) and array
// items down to the deepest declared type.
func (p *Property) ElementType() string {
	current := p
	for depth := 0; current != nil && depth < 64; depth++ {
		if current.Properties != nil && current.Properties.Len() > 0 {
			current = current.Properties.Get(current.Properties.Names()[0])
			continue
		}
		if current.Items != nil {
			current = current.Items
			continue
		}
		return current.Type
	}
	return ""
}

// Properties is a name-ordered set of properties. Setting an existing name
// keeps its original position.
type Properties struct {
	names  []string
	byName map[string]*Property
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{byName: make(map[string]*Property)}
}

// Set adds or replaces a property.
func (ps *Properties) Set(name string, p *Property) {
	if _, exists := ps.byName[name]; !exists {
		ps.names = append(ps.names, name)
	}
	ps.byName[name] = p
}

// Get returns the property named name, or nil.
func (ps *Properties) Get(name string) *Property {
	if ps == nil {
		return nil
	}
	return ps.byName[name]
}

// Has reports whether name is present.
func (ps *Properties) Has(name string) bool {
	return ps.Get(name) != nil
}

// Names returns property names in declaration order.
func (ps *Properties) Names() []string {
	if ps == nil {
		return nil
	}
	return append([]string(nil), ps.names...)
}

// Len returns the number of properties.
func (ps *Properties) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.names)
}

var lower = cases.Lower(language.Und)

// Humanize turns an identifier into a sentence-case title: "icon_placement"
// becomes "Icon placement".
func Humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return ""
	}
	text := lower.String(strings.Join(words, " "))
	first, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(first)) + text[size:]
}
