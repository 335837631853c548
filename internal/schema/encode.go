package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode serializes c as a component metadata document. Key order is fixed
// so repeated runs over the same input produce identical bytes.
func Encode(c *Component) ([]byte, error) {
	root, err := ToYAMLNode(c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode component %s: %w", c.MachineName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode component %s: %w", c.MachineName, err)
	}
	return buf.Bytes(), nil
}

// ToYAMLNode converts c to an ordered yaml.Node tree.
func ToYAMLNode(c *Component) (*yaml.Node, error) {
	content := []*yaml.Node{}

	if c.SchemaURL != "" {
		content = append(content, scalar("$schema"), scalar(c.SchemaURL))
	}
	content = append(content,
		scalar("name"), scalar(c.Name),
		scalar("status"), scalar(c.Status),
		scalar("group"), scalar(c.Group),
	)

	properties, err := propertiesNode(c.Props)
	if err != nil {
		return nil, err
	}
	props := mapping(
		scalar("type"), scalar("object"),
		scalar("required"), strSliceToNode(c.Required()),
		scalar("properties"), properties,
	)
	content = append(content, scalar("props"), props)

	slots := mapping()
	for _, s := range c.Slots {
		slots.Content = append(slots.Content, scalar(s.Name), mapping(
			scalar("title"), scalar(s.Title),
			scalar("description"), scalar(s.Description),
		))
	}
	content = append(content, scalar("slots"), slots)

	if c.LibraryOverride {
		js := mapping(scalar(c.ScriptName()), mapping())
		content = append(content, scalar("libraryOverrides"), mapping(scalar("js"), js))
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: content}, nil
}

func propertiesNode(ps *Properties) (*yaml.Node, error) {
	node := mapping()
	for _, name := range ps.Names() {
		p, err := propertyNode(ps.Get(name))
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		node.Content = append(node.Content, scalar(name), p)
	}
	return node, nil
}

func propertyNode(p *Property) (*yaml.Node, error) {
	node := mapping()
	if p.Type != "" {
		node.Content = append(node.Content, scalar("type"), scalar(p.Type))
	}
	if p.Title != "" {
		node.Content = append(node.Content, scalar("title"), scalar(p.Title))
	}
	if p.Description != "" {
		node.Content = append(node.Content, scalar("description"), scalar(p.Description))
	}
	if p.HasDefault {
		value, err := anyToNode(p.Default)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalar("default"), value)
	}
	if len(p.Enum) > 0 {
		node.Content = append(node.Content, scalar("enum"), strSliceToNode(p.Enum))
	}
	if p.Properties != nil {
		properties, err := propertiesNode(p.Properties)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalar("properties"), properties)
	}
	if p.Items != nil {
		items, err := propertyNode(p.Items)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalar("items"), items)
	}
	return node, nil
}

// scalar returns a string node; the explicit tag makes the encoder quote
// values such as "true" or "1" that would otherwise change type.
func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

func strSliceToNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		node.Content = append(node.Content, scalar(v))
	}
	if len(values) == 0 {
		node.Style = yaml.FlowStyle
	}
	return node
}

func anyToNode(value any) (*yaml.Node, error) {
	if value == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	if s, ok := value.(string); ok {
		return scalar(s), nil
	}
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, fmt.Errorf("encode default %v: %w", value, err)
	}
	return node, nil
}
