package twig

import (
	"regexp"
	"strings"
)

// Assignment is a default value captured for a variable, as raw source text.
type Assignment struct {
	Name string
	Raw  string
}

var (
	// {% set name = cond ? x : default %}
	setTernary = regexp.MustCompile(`\{%-?\s*set\s+([A-Za-z_]\w*)\s*=\s*[^?%]+\?[^:%?]*:\s*(.+?)\s*-?%\}`)

	// name|default(
	pipeDefault = regexp.MustCompile(`(?:^|[^\w.])([A-Za-z_]\w*)\s*\|\s*default\(`)

	// {% if name %}, {% if not name %}, {% elseif name is defined %} ...
	simpleCondition = regexp.MustCompile(`\{%-?\s*(?:if|elseif)\s+(?:not\s+)?([A-Za-z_]\w*)(?:\s+is\s+(?:not\s+)?(?:defined|empty|null|none))?\s*-?%\}`)

	// name ?? null
	nullish = regexp.MustCompile(`(?:^|[^\w.])([A-Za-z_]\w*)\s*\?\?\s*null\b`)
)

// TernaryDefaults returns the fallback branch of every
// "set NAME = COND ? X : DEFAULT" assignment, in source order.
func TernaryDefaults(text string) []Assignment {
	var out []Assignment
	for _, m := range setTernary.FindAllStringSubmatch(text, -1) {
		out = append(out, Assignment{Name: m[1], Raw: strings.TrimSpace(m[2])})
	}
	return out
}

// PipeDefaults returns the argument of every "NAME|default(VALUE)" filter, in
// source order. Attribute reads such as item.name|default(...) are skipped.
func PipeDefaults(text string) []Assignment {
	var out []Assignment
	for _, loc := range pipeDefault.FindAllStringSubmatchIndex(text, -1) {
		open := loc[1] - 1
		end, ok := balanced(text, open)
		if !ok {
			continue
		}
		out = append(out, Assignment{
			Name: text[loc[2]:loc[3]],
			Raw:  strings.TrimSpace(text[open+1 : end-1]),
		})
	}
	return out
}

// ConditionalNames returns, deduplicated in first-seen order, the variables
// used as the whole test of a simple conditional or as the left operand of a
// "?? null" coalesce.
func ConditionalNames(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, m := range simpleCondition.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range nullish.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return out
}
