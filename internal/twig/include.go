// Package twig recognizes the handful of fixed Twig idioms the schema
// generator relies on. It is not a template parser: each idiom is matched
// structurally and everything else in the template is ignored.
package twig

import (
	"path"
	"regexp"
	"strings"
)

// Binding is one "key: value" pair of an include's variable map.
type Binding struct {
	Key   string
	Value string
}

// Include is an include relationship that passes an explicit, closed set of
// variables ("with {...} only" or "with_context = false").
type Include struct {
	Template string
	Bindings []Binding
	// Offset is the byte offset of the include in the scanned text.
	Offset int
}

// Filename returns the base filename of the included template, with any
// "@namespace/" prefix and directories removed.
func (inc Include) Filename() string {
	return path.Base(strings.ReplaceAll(inc.Template, "\\", "/"))
}

// Stem returns the machine name of the included template.
func (inc Include) Stem() string {
	return Stem(inc.Filename())
}

// Stem strips every extension from a template filename: "card.html.twig"
// yields "card".
func Stem(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// Keys returns the binding keys in source order.
func (inc Include) Keys() []string {
	keys := make([]string, 0, len(inc.Bindings))
	for _, b := range inc.Bindings {
		keys = append(keys, b.Key)
	}
	return keys
}

// HasKey reports whether key is passed to the included template.
func (inc Include) HasKey(key string) bool {
	for _, b := range inc.Bindings {
		if b.Key == key {
			return true
		}
	}
	return false
}

var (
	// {% include 'x.twig' with { ... } only %} and the embed equivalent.
	includeTagStart = regexp.MustCompile(`\{%-?\s*(?:include|embed)\s+(['"])([^'"]+)['"]\s+with\s*`)
	includeTagEnd   = regexp.MustCompile(`^\s*only\s*-?%\}`)

	// {{ include('x.twig', { ... }, with_context = false) }}
	includeFuncStart = regexp.MustCompile(`\{\{-?\s*include\(\s*(['"])([^'"]+)['"]\s*,\s*`)
	includeFuncEnd   = regexp.MustCompile(`^\s*,\s*with_context\s*=\s*false\s*\)`)
)

// FindIncludes returns every closed-scope include in text, in source order.
// Includes that inherit the caller's context are ignored.
func FindIncludes(text string) []Include {
	var out []Include
	out = append(out, findIncludes(text, includeTagStart, includeTagEnd)...)
	out = append(out, findIncludes(text, includeFuncStart, includeFuncEnd)...)
	sortByOffset(out)
	return out
}

func findIncludes(text string, start, end *regexp.Regexp) []Include {
	var out []Include
	for _, loc := range start.FindAllStringSubmatchIndex(text, -1) {
		mapStart := loc[1]
		if mapStart >= len(text) || text[mapStart] != '{' {
			continue
		}
		mapEnd, ok := balanced(text, mapStart)
		if !ok {
			continue
		}
		if !end.MatchString(text[mapEnd:]) {
			continue
		}
		out = append(out, Include{
			Template: text[loc[4]:loc[5]],
			Bindings: parseBindings(text[mapStart+1 : mapEnd-1]),
			Offset:   loc[0],
		})
	}
	return out
}

func sortByOffset(incs []Include) {
	for i := 1; i < len(incs); i++ {
		for j := i; j > 0 && incs[j].Offset < incs[j-1].Offset; j-- {
			incs[j], incs[j-1] = incs[j-1], incs[j]
		}
	}
}

// balanced returns the index just past the bracket closing the one at open,
// skipping quoted strings.
func balanced(text string, open int) (int, bool) {
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// parseBindings splits the body of a Twig hash literal into key/value pairs.
// Malformed entries are skipped.
func parseBindings(body string) []Binding {
	var out []Binding
	for _, entry := range splitTopLevel(body, ',') {
		parts := splitTopLevel(entry, ':')
		if len(parts) < 2 {
			continue
		}
		key := strings.Trim(strings.TrimSpace(parts[0]), `'"`)
		value := strings.TrimSpace(strings.Join(parts[1:], ":"))
		if key == "" || value == "" {
			continue
		}
		out = append(out, Binding{Key: key, Value: value})
	}
	return out
}

func splitTopLevel(text string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	if rest := text[start:]; strings.TrimSpace(rest) != "" {
		parts = append(parts, rest)
	}
	return parts
}

var rootPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`)

// Root returns the variable path an expression starts with, ignoring filters:
// "item.label|upper" yields "item.label". Literals yield "".
func Root(expr string) string {
	expr = strings.TrimSpace(expr)
	if i := strings.IndexByte(expr, '|'); i >= 0 {
		expr = strings.TrimSpace(expr[:i])
	}
	return rootPattern.FindString(expr)
}

// references reports whether expr reads variable name directly or one of its
// attributes.
func references(expr, name string) bool {
	root := Root(expr)
	return root == name || strings.HasPrefix(root, name+".")
}
