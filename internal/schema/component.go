package schema

import "strings"

// Passthrough names are injected by the rendering layer for styling and
// attributes; they are never required.
var passthroughNames = map[string]struct{}{
	"attributes":       {},
	"modifier_classes": {},
}

// IsPassthrough reports whether name is a structural passthrough variable.
func IsPassthrough(name string) bool {
	_, ok := passthroughNames[name]
	return ok
}

// Slot is a named content injection point.
type Slot struct {
	Name        string
	Title       string
	Description string
}

// Component is the schema document of one template.
type Component struct {
	// SchemaURL is emitted as "$schema" when set.
	SchemaURL string
	// MachineName is the template file stem; it names the companion script.
	MachineName string
	Name        string
	Status      string
	Group       string
	Props       *Properties
	Slots       []Slot
	// Conditional holds names used as a conditional test or coalesced to null.
	Conditional map[string]struct{}
	// LibraryOverride is set when a companion <machine name>.js exists.
	LibraryOverride bool
}

// IsConditional reports whether name is in the conditional-usage set.
func (c *Component) IsConditional(name string) bool {
	_, ok := c.Conditional[name]
	return ok
}

// Required derives the required property names in declaration order. A
// property is required unless it is a passthrough name, is documented as
// optional, is boolean, has a default, or is conditionally used.
func (c *Component) Required() []string {
	required := []string{}
	for _, name := range c.Props.Names() {
		p := c.Props.Get(name)
		switch {
		case IsPassthrough(name):
		case strings.Contains(p.Description, "optional"):
		case p.Type == "boolean":
		case p.HasDefault:
		case c.IsConditional(name):
		default:
			required = append(required, name)
		}
	}
	return required
}

// ScriptName returns the companion script file name used in library
// overrides.
func (c *Component) ScriptName() string {
	return c.MachineName + ".js"
}
