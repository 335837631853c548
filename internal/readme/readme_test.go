package readme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qed42/twig-sdc-yaml-generator/internal/schema"
)

func TestRender(t *testing.T) {
	props := schema.NewProperties()
	props.Set("label", &schema.Property{Type: "string", Title: "Label", Description: "Button | text"})
	theme := &schema.Property{Type: "string", Title: "Theme", Enum: []string{"light", "dark"}}
	theme.SetDefault("dark")
	props.Set("theme", theme)
	props.Set("disabled", &schema.Property{Type: "boolean", Title: "Disable the button"})

	c := &schema.Component{
		MachineName:     "button",
		Name:            "Button",
		Status:          "experimental",
		Group:           "Atoms",
		Props:           props,
		Slots:           []schema.Slot{{Name: "icon", Title: "Icon", Description: "Icon slot"}},
		LibraryOverride: true,
	}

	out, err := Render(c)
	require.NoError(t, err)
	assert.Contains(t, out, "# Button\n")
	assert.Contains(t, out, "- Script: `button.js`\n")
	assert.Contains(t, out, "| `label` | string | yes |  | Button \\| text |\n")
	assert.Contains(t, out, "| `theme` | string: light, dark | no | `'dark'` | - |\n")
	assert.Contains(t, out, "| `disabled` | boolean | no |  | Disable the button |\n")
	assert.Contains(t, out, "## Slots\n\n- `icon`: Icon slot\n")
	assert.Contains(t, out, "{% include 'button.twig' with {\n  label: '',\n  theme: 'dark',\n  disabled: false\n} only %}")
}

func TestRenderEmptyComponent(t *testing.T) {
	c := &schema.Component{MachineName: "divider", Name: "Divider", Status: "experimental", Group: "Atoms", Props: schema.NewProperties()}

	out, err := Render(c)
	require.NoError(t, err)
	assert.Contains(t, out, "This component takes no props.")
	assert.Contains(t, out, "This component has no slots.")
	assert.Contains(t, out, "{% include 'divider.twig' only %}")
	assert.NotContains(t, out, "Script")
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "null", literal(nil))
	assert.Equal(t, "'it\\'s'", literal("it's"))
	assert.Equal(t, "3", literal(3))
	assert.Equal(t, "true", literal(true))
	assert.Equal(t, "['a', 1]", literal([]any{"a", 1}))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/c/card/README.md", Path("/c/card", "card"))
	assert.Equal(t, "/c/card/card-item.README.md", Path("/c/card", "card-item"))
}
