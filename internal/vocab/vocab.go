// Package vocab provides the controlled vocabularies (enum values) attached to
// well-known variable names.
package vocab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Entry is the vocabulary of one variable name. Either Values applies to every
// component, or ByComponent narrows it per component machine name.
type Entry struct {
	Values      []string
	ByComponent map[string][]string
}

// UnmarshalYAML accepts a sequence (shared values) or a mapping of component
// name to sequence.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&e.Values)
	case yaml.MappingNode:
		return node.Decode(&e.ByComponent)
	default:
		return fmt.Errorf("line %d: vocabulary entry must be a list or a mapping", node.Line)
	}
}

// MarshalYAML writes the entry back in the shape it was read.
func (e Entry) MarshalYAML() (any, error) {
	if e.ByComponent != nil {
		return e.ByComponent, nil
	}
	return e.Values, nil
}

// Vocabulary is a two-level lookup: variable name, then optionally component.
type Vocabulary struct {
	entries map[string]Entry
	order   []string
	Source  string // file path or "builtin"
}

// New builds a vocabulary from entries. Names are ordered alphabetically.
func New(entries map[string]Entry) *Vocabulary {
	v := &Vocabulary{entries: make(map[string]Entry, len(entries))}
	for name, entry := range entries {
		v.entries[name] = entry
		v.order = append(v.order, name)
	}
	sort.Strings(v.order)
	return v
}

// Lookup returns the allowed values of variable within component. A nil or
// empty vocabulary has no values.
func (v *Vocabulary) Lookup(variable, component string) ([]string, bool) {
	if v == nil {
		return nil, false
	}
	entry, ok := v.entries[variable]
	if !ok {
		return nil, false
	}
	values := entry.Values
	if entry.ByComponent != nil {
		values = entry.ByComponent[component]
	}
	if len(values) == 0 {
		return nil, false
	}
	return append([]string(nil), values...), true
}

// Names returns the variable names in file order.
func (v *Vocabulary) Names() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.order...)
}

// Entry returns the raw entry for a variable name.
func (v *Vocabulary) Entry(name string) (Entry, bool) {
	if v == nil {
		return Entry{}, false
	}
	entry, ok := v.entries[name]
	return entry, ok
}

// UnmarshalYAML keeps the mapping order of the document.
func (v *Vocabulary) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: vocabulary must be a mapping", node.Line)
	}
	v.entries = make(map[string]Entry, len(node.Content)/2)
	v.order = v.order[:0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := strings.TrimSpace(node.Content[i].Value)
		if name == "" {
			return fmt.Errorf("line %d: vocabulary name is required", node.Content[i].Line)
		}
		var entry Entry
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return fmt.Errorf("vocabulary %q: %w", name, err)
		}
		if _, exists := v.entries[name]; !exists {
			v.order = append(v.order, name)
		}
		v.entries[name] = entry
	}
	return nil
}

// MarshalYAML writes entries in vocabulary order.
func (v *Vocabulary) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range v.order {
		value := &yaml.Node{}
		if err := value.Encode(v.entries[name]); err != nil {
			return nil, fmt.Errorf("encode vocabulary %q: %w", name, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, value)
	}
	return node, nil
}

// Parse reads a vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.entries == nil {
		v.entries = make(map[string]Entry)
	}
	return &v, nil
}

// Load reads a vocabulary file from disk.
func Load(fs afero.Fs, path string) (*Vocabulary, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("vocabulary path is required")
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	v.Source = path
	return v, nil
}
