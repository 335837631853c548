// Package readme renders the human-readable companion of a component schema.
package readme

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/qed42/twig-sdc-yaml-generator/internal/schema"
)

// FileName is the README of the component named after its directory.
const FileName = "README.md"

// Path returns where the README of machineName in dir is written. The
// component owning the directory gets FileName; any other template in the
// same directory gets "<machine>.README.md" so outputs never collide.
func Path(dir, machineName string) string {
	if filepath.Base(dir) == machineName {
		return filepath.Join(dir, FileName)
	}
	return filepath.Join(dir, machineName+"."+FileName)
}

//go:embed builtin/README.md.tmpl
var builtinTemplate string

var page = template.Must(template.New("readme").
	Funcs(template.FuncMap{"default": defaultValue}).
	Option("missingkey=zero").
	Parse(builtinTemplate))

type propRow struct {
	Name        string
	Type        string
	Required    bool
	Default     string
	Description string
}

type view struct {
	Name        string
	MachineName string
	Group       string
	Status      string
	Script      string
	Props       []propRow
	Slots       []schema.Slot
	Usage       string
}

// Render produces the README of c.
func Render(c *schema.Component) (string, error) {
	if c == nil {
		return "", fmt.Errorf("component is required")
	}

	required := make(map[string]bool)
	for _, name := range c.Required() {
		required[name] = true
	}

	v := view{
		Name:        c.Name,
		MachineName: c.MachineName,
		Group:       c.Group,
		Status:      c.Status,
		Slots:       c.Slots,
		Usage:       usage(c),
	}
	if c.LibraryOverride {
		v.Script = c.ScriptName()
	}
	for _, name := range c.Props.Names() {
		p := c.Props.Get(name)
		row := propRow{
			Name:        name,
			Type:        p.Type,
			Required:    required[name],
			Description: cell(p.Description),
		}
		if p.Type == "boolean" {
			row.Description = cell(p.Title)
		}
		if len(p.Enum) > 0 {
			row.Type = p.Type + ": " + strings.Join(p.Enum, ", ")
		}
		if p.HasDefault {
			row.Default = "`" + literal(p.Default) + "`"
		}
		v.Props = append(v.Props, row)
	}

	var out strings.Builder
	if err := page.Execute(&out, v); err != nil {
		return "", fmt.Errorf("render readme %q: %w", c.MachineName, err)
	}
	return out.String(), nil
}

// usage builds an include example passing every prop.
func usage(c *schema.Component) string {
	names := c.Props.Names()
	if len(names) == 0 {
		return fmt.Sprintf("{%% include '%s.twig' only %%}", c.MachineName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{%% include '%s.twig' with {\n", c.MachineName)
	for i, name := range names {
		p := c.Props.Get(name)
		value := placeholder(p.Type)
		if p.HasDefault {
			value = literal(p.Default)
		} else if len(p.Enum) > 0 {
			value = literal(p.Enum[0])
		}
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  %s: %s%s\n", name, value, sep)
	}
	b.WriteString("} only %}")
	return b.String()
}

func placeholder(typ string) string {
	switch typ {
	case "boolean":
		return "false"
	case "number":
		return "0"
	case "object":
		return "{}"
	case "array":
		return "[]"
	default:
		return "''"
	}
}

// literal formats a default value the way it would be written in Twig.
func literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, literal(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func cell(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "|", `\|`)
}

func defaultValue(def string, value any) string {
	if value == nil {
		return def
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return def
	}
	return text
}
