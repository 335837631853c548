package twig

import (
	"regexp"
)

// Loop is a "{% for item in source %}...{% endfor %}" block.
type Loop struct {
	Key    string
	Item   string
	Source string
	Body   string
}

var (
	forOpen = regexp.MustCompile(`\{%-?\s*for\s+(?:([A-Za-z_]\w*)\s*,\s*)?([A-Za-z_]\w*)\s+in\s+([^%]+?)\s*-?%\}`)
	forTag  = regexp.MustCompile(`\{%-?\s*(for|endfor)\b[^%]*-?%\}`)
)

// FindLoops returns every for-loop in text, outer loops first. Loops without
// a matching endfor are ignored.
func FindLoops(text string) []Loop {
	var out []Loop
	for _, loc := range forOpen.FindAllStringSubmatchIndex(text, -1) {
		bodyStart := loc[1]
		bodyEnd, ok := matchEndfor(text, bodyStart)
		if !ok {
			continue
		}
		loop := Loop{
			Item:   text[loc[4]:loc[5]],
			Source: Root(text[loc[6]:loc[7]]),
			Body:   text[bodyStart:bodyEnd],
		}
		if loc[2] >= 0 {
			loop.Key = text[loc[2]:loc[3]]
		}
		out = append(out, loop)
	}
	return out
}

// matchEndfor returns the start offset of the endfor closing a loop whose body
// starts at from, honouring nested loops.
func matchEndfor(text string, from int) (int, bool) {
	depth := 1
	for _, loc := range forTag.FindAllStringSubmatchIndex(text[from:], -1) {
		switch text[from+loc[2] : from+loc[3]] {
		case "for":
			depth++
		case "endfor":
			depth--
			if depth == 0 {
				return from + loc[0], true
			}
		}
	}
	return 0, false
}

// FindBinding locates the include that consumes the array variable name.
//
// A direct match is an include passing name itself as one of its values. An
// indirect match is an include inside a loop over name whose values read the
// loop variable.
func FindBinding(text, name string) (Include, bool) {
	includes := FindIncludes(text)
	for _, inc := range includes {
		for _, b := range inc.Bindings {
			if Root(b.Value) == name {
				return inc, true
			}
		}
	}

	for _, loop := range FindLoops(text) {
		if loop.Source != name {
			continue
		}
		for _, inc := range FindIncludes(loop.Body) {
			for _, b := range inc.Bindings {
				if references(b.Value, loop.Item) {
					return inc, true
				}
			}
		}
	}
	return Include{}, false
}
