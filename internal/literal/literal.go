// Package literal converts default-value text captured from templates into
// typed values. It only understands literals (null, booleans, numbers, quoted
// strings and flat or nested lists); it never evaluates expressions.
package literal

import (
	"strconv"
	"strings"
)

// Parse normalizes a raw default token. Surrounding quotes are stripped
// first; null/true/false become typed values; numbers and lists are parsed
// strictly. Anything else is returned unchanged as a string.
func Parse(raw string) any {
	text := strings.TrimSpace(raw)
	if unquoted, ok := unquote(text); ok {
		text = unquoted
	}

	if value, ok := keyword(text); ok {
		return value
	}
	if value, ok := number(text); ok {
		return value
	}
	if strings.HasPrefix(text, "[") {
		if value, ok := list(text); ok {
			return value
		}
	}
	return text
}

func keyword(text string) (any, bool) {
	switch strings.ToLower(text) {
	case "null", "none":
		return nil, true
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return nil, false
	}
}

func number(text string) (any, bool) {
	if text == "" || !isNumeric(text) {
		return nil, false
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return int(i), true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	return nil, false
}

// isNumeric rejects the words strconv accepts (inf, nan) and hex forms.
func isNumeric(text string) bool {
	digits := 0
	dot := false
	exp := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' || c == '-':
			if i != 0 && text[i-1] != 'e' && text[i-1] != 'E' {
				return false
			}
		case c == '.':
			if dot || exp {
				return false
			}
			dot = true
		case c == 'e' || c == 'E':
			if exp || digits == 0 {
				return false
			}
			exp = true
		default:
			return false
		}
	}
	return digits > 0
}

// unquote strips one pair of matching single or double quotes and resolves
// backslash escapes of the quote character and backslash itself.
func unquote(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}
	quote := text[0]
	if (quote != '\'' && quote != '"') || text[len(text)-1] != quote {
		return "", false
	}

	body := text[1 : len(text)-1]
	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) && (body[i+1] == quote || body[i+1] == '\\') {
			out.WriteByte(body[i+1])
			i++
			continue
		}
		if c == quote {
			return "", false
		}
		out.WriteByte(c)
	}
	return out.String(), true
}

// list parses "[elem, elem]". Every element must itself be a literal; a bare
// word anywhere makes the whole list unparseable.
func list(text string) ([]any, bool) {
	if !strings.HasSuffix(text, "]") {
		return nil, false
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	out := []any{}
	if inner == "" {
		return out, true
	}

	parts, ok := splitTopLevel(inner)
	if !ok {
		return nil, false
	}
	for _, part := range parts {
		value, ok := element(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		out = append(out, value)
	}
	return out, true
}

func element(text string) (any, bool) {
	if text == "" {
		return nil, false
	}
	if unquoted, ok := unquote(text); ok {
		return unquoted, true
	}
	if value, ok := keyword(text); ok {
		return value, true
	}
	if value, ok := number(text); ok {
		return value, true
	}
	if strings.HasPrefix(text, "[") {
		return list(text)
	}
	return nil, false
}

// splitTopLevel splits on commas outside quotes and brackets.
func splitTopLevel(text string) ([]string, bool) {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, false
			}
		case c == ',' && depth == 0:
			parts = append(parts, text[start:i])
			start = i + 1
		}
	}
	if quote != 0 || depth != 0 {
		return nil, false
	}
	last := text[start:]
	if strings.TrimSpace(last) != "" || len(parts) == 0 {
		parts = append(parts, last)
	}
	return parts, true
}
