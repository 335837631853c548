package docblock

import (
	"bufio"
	"regexp"
	"strings"
)

// declPattern matches "* - name: [type] description". Group 1 is the
// whitespace between the star and the dash.
var declPattern = regexp.MustCompile(`^\s*\*([ \t]*)-\s+([A-Za-z_][A-Za-z0-9_]*)\s*:\s*\[([A-Za-z]+)\]\s*(.*?)\s*$`)

const tabWidth = 4

// Tokenize returns every well-formed declaration line in source order.
// Lines that do not match the grammar, or that name an unknown type, are
// skipped.
func Tokenize(text string) []Declaration {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	decls := []Declaration{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		match := declPattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		typ, ok := ParseType(match[3])
		if !ok {
			continue
		}
		decls = append(decls, Declaration{
			Name:        match[2],
			Type:        typ,
			Description: match[4],
			Line:        lineNo,
			Indent:      indentWidth(match[1]),
		})
	}
	return decls
}

func indentWidth(ws string) int {
	width := 0
	for _, r := range ws {
		if r == '\t' {
			width += tabWidth
			continue
		}
		width++
	}
	return width
}

// Doc is a scanned declaration scope: either a whole comment block or the
// nested declarations of one compound variable.
type Doc struct {
	tokens []Declaration
	base   int
}

// Scan tokenizes text and returns its top-level scope.
func Scan(text string) *Doc {
	return newDoc(Tokenize(text))
}

func newDoc(tokens []Declaration) *Doc {
	base := 0
	for i, tok := range tokens {
		if i == 0 || tok.Indent < base {
			base = tok.Indent
		}
	}
	return &Doc{tokens: tokens, base: base}
}

// Len returns the number of declaration lines in the scope, nested ones included.
func (d *Doc) Len() int {
	if d == nil {
		return 0
	}
	return len(d.tokens)
}

// top returns the scope's own declarations deduplicated by name. Iteration
// order is first occurrence; the value is the last occurrence.
func (d *Doc) top() []Declaration {
	if d == nil {
		return nil
	}
	index := make(map[string]int)
	out := make([]Declaration, 0, len(d.tokens))
	for _, tok := range d.tokens {
		if tok.Indent != d.base {
			continue
		}
		if i, exists := index[tok.Name]; exists {
			out[i] = tok
			continue
		}
		index[tok.Name] = len(out)
		out = append(out, tok)
	}
	return out
}

// Declarations returns the scope's property declarations in order. Slots are
// excluded.
func (d *Doc) Declarations() []Declaration {
	all := d.top()
	out := make([]Declaration, 0, len(all))
	for _, decl := range all {
		if decl.IsSlot() {
			continue
		}
		out = append(out, decl)
	}
	return out
}

// Slots returns the scope's slot declarations in order.
func (d *Doc) Slots() []Declaration {
	all := d.top()
	out := make([]Declaration, 0)
	for _, decl := range all {
		if decl.IsSlot() {
			out = append(out, decl)
		}
	}
	return out
}

// Has reports whether name is declared at the top of the scope, as a property
// or as a slot.
func (d *Doc) Has(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

// Lookup returns the effective top-level declaration for name.
func (d *Doc) Lookup(name string) (Declaration, bool) {
	for _, decl := range d.top() {
		if decl.Name == name {
			return decl, true
		}
	}
	return Declaration{}, false
}

// Scope returns the nested declarations of name: every line after its
// effective declaration up to the next declaration at the same or a shallower
// indent. ok is false when name is not declared here or has no nested lines.
func (d *Doc) Scope(name string) (*Doc, bool) {
	if d == nil {
		return nil, false
	}
	start := -1
	for i, tok := range d.tokens {
		if tok.Indent == d.base && tok.Name == name {
			start = i
		}
	}
	if start < 0 {
		return nil, false
	}

	owner := d.tokens[start]
	end := start + 1
	for end < len(d.tokens) && d.tokens[end].Indent > owner.Indent {
		end++
	}
	if end == start+1 {
		return nil, false
	}
	return newDoc(d.tokens[start+1 : end]), true
}
