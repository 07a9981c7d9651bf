package descriptor

// File is the root of a YAML descriptor.
type File struct {
	// Version of the descriptor schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the default package of the domains in the file.
	Package string `yaml:"package,omitempty"`

	// Domains in discovery order.
	Domains []Domain `yaml:"domains"`

	// Transforms apply to every property of the named type.
	Transforms []Transform `yaml:"transforms,omitempty"`
}

// Domain describes one domain type.
type Domain struct {
	Name      string `yaml:"name"`
	Package   string `yaml:"package,omitempty"`
	Root      bool   `yaml:"root,omitempty"`
	ListGroup bool   `yaml:"list_group,omitempty"`
	// MapGroup is one of none, single, list or all.
	MapGroup string `yaml:"map_group,omitempty"`
	// Marker is the qualified name of the DSL marker of the domain.
	Marker string `yaml:"marker,omitempty"`
	// Debug enables debug logging while the domain is generated.
	Debug      bool       `yaml:"debug,omitempty"`
	Properties []Property `yaml:"properties,omitempty"`
}

// Property describes one property. In YAML it is either a mapping with a
// name key or the shorthand {<name>: <type>}.
type Property struct {
	Name string `yaml:"name"`
	// Field is the struct field receiving the value. Defaults to the
	// upper-cased name.
	Field    string `yaml:"field,omitempty"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable,omitempty"`

	Default   *DefaultValue      `yaml:"default,omitempty"`
	Transform *PropertyTransform `yaml:"transform,omitempty"`
}

// DefaultValue is the initial value of a builder property. In YAML it is
// either a scalar Go expression or a mapping with value and type keys.
type DefaultValue struct {
	Value string `yaml:"value"`
	// Type of Value when it differs from the property type.
	Type string `yaml:"type,omitempty"`
}

// PropertyTransform lets an accessor take Input instead of the property
// type.
type PropertyTransform struct {
	Input    string `yaml:"input"`
	Template string `yaml:"template,omitempty"`
}

// Transform applies to every property of Type.
type Transform struct {
	Type     string `yaml:"type"`
	Input    string `yaml:"input"`
	Template string `yaml:"template,omitempty"`
}
