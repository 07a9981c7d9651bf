package descriptor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts the full property mapping or the shorthand
// {<name>: <type>}. A single-pair mapping is always the shorthand since the
// full form needs both name and type.
func (p *Property) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected property mapping, got %v", node.Line, node.Kind)
	}

	if len(node.Content) == 2 {
		key, value := node.Content[0], node.Content[1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %s: expected type expression", value.Line, key.Value)
		}

		*p = Property{Name: key.Value, Type: value.Value}

		return nil
	}

	// Decode through an alias type to avoid recursing into this method.
	type plain Property

	var full plain
	if err := node.Decode(&full); err != nil {
		return err
	}

	*p = Property(full)

	return nil
}

// UnmarshalYAML accepts a scalar Go expression or a {value, type} mapping.
func (d *DefaultValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = DefaultValue{Value: node.Value}
		return nil
	case yaml.MappingNode:
		type plain DefaultValue

		var full plain
		if err := node.Decode(&full); err != nil {
			return err
		}

		*d = DefaultValue(full)

		return nil
	default:
		return fmt.Errorf("line %d: expected default value or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the scalar form when no type is given.
func (d DefaultValue) MarshalYAML() (any, error) {
	if d.Type == "" {
		return d.Value, nil
	}

	type plain DefaultValue

	return plain(d), nil
}
