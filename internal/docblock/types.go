// Package docblock scans the variable declarations documented in a template's
// leading comment block.
//
// The grammar is line oriented:
//
//	{#
//	 * - title: [string] The card title.
//	 * - link: [object] Target link.
//	 *   - url: [string] Link destination.
//	 *   - label: [string] Link text.
//	 * - content: [string] Body slot.
//	#}
//
// Indentation between the leading "*" and the "-" decides nesting: a
// declaration belongs to the closest preceding declaration with a smaller
// indent.
package docblock

import "strings"

// Type is a normalized declared type.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// ParseType normalizes a declared type name. Aliases commonly found in
// template docs are folded into the closed set; anything else is rejected.
func ParseType(raw string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "string", "str", "text":
		return TypeString, true
	case "boolean", "bool":
		return TypeBoolean, true
	case "number", "int", "integer", "float":
		return TypeNumber, true
	case "object", "map", "hash":
		return TypeObject, true
	case "array", "list":
		return TypeArray, true
	default:
		return "", false
	}
}

// Declaration is a single documented variable.
type Declaration struct {
	Name        string
	Type        Type
	Description string
	// Line is the 1-based source line of the declaration.
	Line int
	// Indent is the column width between the comment star and the dash.
	Indent int
}

// IsSlot reports whether the declaration documents a content slot rather than
// a data property. The check ignores the declared type.
func (d Declaration) IsSlot() bool {
	return strings.Contains(strings.ToLower(d.Description), "slot")
}
