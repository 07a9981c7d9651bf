package domain

import (
	"strings"

	"dslbuilder-generator/internal/common"
)

// Qualified names that mark a nominal type as a list or map even when the
// reference carries no structural parameterization.
const (
	ListQualifiedName = "builtin.list"
	MapQualifiedName  = "builtin.map"
)

// Kind classifies a TypeRef.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindNumeric
	KindString
	KindChar
	KindCollection
	KindMap
	KindNominal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	case KindNominal:
		return "nominal"
	default:
		return common.UnknownStr
	}
}

// MapGroupMode says whether, and how, a domain type opts into being the value
// of a map group.
type MapGroupMode int

const (
	MapGroupNone MapGroupMode = iota
	MapGroupSingle
	MapGroupList
	MapGroupAll
)

// String returns the mode name as written in descriptors.
func (m MapGroupMode) String() string {
	switch m {
	case MapGroupNone:
		return "none"
	case MapGroupSingle:
		return "single"
	case MapGroupList:
		return "list"
	case MapGroupAll:
		return "all"
	default:
		return common.UnknownStr
	}
}

// Active reports whether the mode enables map-group generation.
func (m MapGroupMode) Active() bool {
	return m == MapGroupSingle || m == MapGroupList || m == MapGroupAll
}

// ParseMapGroupMode parses a mode name. The empty string is MapGroupNone.
func ParseMapGroupMode(s string) (MapGroupMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return MapGroupNone, true
	case "single":
		return MapGroupSingle, true
	case "list":
		return MapGroupList, true
	case "all":
		return MapGroupAll, true
	default:
		return MapGroupNone, false
	}
}

// TypeRef is the declared type of a property.
//
// Name holds the Go spelling for scalar kinds ("string", "int64", "rune")
// and the simple type name for nominal kinds.
type TypeRef struct {
	Kind    Kind
	PkgPath string
	Name    string

	// Elem is the element type of a collection.
	Elem *TypeRef
	// Key and Value are the type arguments of a map.
	Key   *TypeRef
	Value *TypeRef

	// Generable marks a nominal type that has its own generated builder.
	Generable bool
	// ListGroup marks a generable type that opted into list groups.
	ListGroup bool
	// MapGroup is the map-group mode of a generable type.
	MapGroup MapGroupMode
	// Members lists the property names of a generable type.
	Members []string
}

// Boolean returns the boolean type.
func Boolean() *TypeRef { return &TypeRef{Kind: KindBoolean, Name: "bool"} }

// String returns the string type.
func String() *TypeRef { return &TypeRef{Kind: KindString, Name: "string"} }

// Char returns the character type.
func Char() *TypeRef { return &TypeRef{Kind: KindChar, Name: "rune"} }

// Numeric returns a numeric type with the given Go spelling.
func Numeric(name string) *TypeRef { return &TypeRef{Kind: KindNumeric, Name: name} }

// ListOf returns a collection of elem.
func ListOf(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindCollection, Elem: elem} }

// MapOf returns a map from key to value.
func MapOf(key, value *TypeRef) *TypeRef { return &TypeRef{Kind: KindMap, Key: key, Value: value} }

// Nominal returns a user-defined type reference.
func Nominal(pkgPath, name string) *TypeRef {
	return &TypeRef{Kind: KindNominal, PkgPath: pkgPath, Name: name}
}

// QualifiedName returns pkgPath.Name for nominal types and the kind spelling
// for structural ones.
func (t *TypeRef) QualifiedName() string {
	if t == nil {
		return ""
	}

	switch t.Kind {
	case KindCollection:
		return ListQualifiedName
	case KindMap:
		return MapQualifiedName
	default:
		return common.QualifiedName(t.PkgPath, t.Name)
	}
}

// IsParameterizedList reports whether t is a collection with a known element.
func (t *TypeRef) IsParameterizedList() bool {
	return t != nil && t.Kind == KindCollection && t.Elem != nil
}

// IsParameterizedMap reports whether t is a map with known key and value.
func (t *TypeRef) IsParameterizedMap() bool {
	return t != nil && t.Kind == KindMap && t.Key != nil && t.Value != nil
}

// IsGenerableNominal reports whether t has its own generated builder.
func (t *TypeRef) IsGenerableNominal() bool {
	return t != nil && t.Kind == KindNominal && t.Generable
}

// String renders t in Go-like syntax.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindCollection:
		return "[]" + t.Elem.String()
	case KindMap:
		return "map[" + t.Key.String() + "]" + t.Value.String()
	case KindNominal:
		return t.QualifiedName()
	default:
		return t.Name
	}
}

// TransformHint lets a property accessor take Input and convert it to the
// stored type with Template. Template may reference the accessor parameter
// with %N and the stored type with %T; an empty template means "%T(%N)".
type TransformHint struct {
	Input    *TypeRef
	Template string
}

// DefaultValueHint is the initial value of a builder property. Raw is Go
// source. ValueType defaults to the declared type of the property.
type DefaultValueHint struct {
	Raw       string
	ValueType *TypeRef
}

// Property is one property of a domain type.
type Property struct {
	Name string
	// Field is the Go field of the domain struct receiving the value.
	// Empty means UpperFirst(Name).
	Field     string
	Type      *TypeRef
	Nullable  bool
	Ordinal   int
	IsLast    bool
	Transform *TransformHint
	Default   *DefaultValueHint
}

// FieldName returns the struct field the built value is assigned to.
func (p Property) FieldName() string {
	if p.Field != "" {
		return p.Field
	}

	return common.UpperFirst(p.Name)
}

// Type is a domain record type.
type Type struct {
	PkgPath    string
	PkgName    string
	Name       string
	Properties []Property
	IsRoot     bool
	ListGroup  bool
	MapGroup   MapGroupMode
	// Marker is the qualified name of the DSL marker applied to generated
	// types of this domain. It overrides the configured default marker.
	Marker string
	Debug  bool
}

// QualifiedName returns pkgPath.Name.
func (t Type) QualifiedName() string {
	return common.QualifiedName(t.PkgPath, t.Name)
}

// BuilderName returns the name of the generated builder type.
func (t Type) BuilderName() string {
	return t.Name + "DslBuilder"
}

// FileName returns the simple name of the generated builder file.
func (t Type) FileName() string {
	return t.Name + "Dsl"
}

// Ref returns a nominal reference to t carrying its generation flags.
func (t Type) Ref() *TypeRef {
	members := make([]string, 0, len(t.Properties))
	for _, p := range t.Properties {
		members = append(members, p.Name)
	}

	return &TypeRef{
		Kind:      KindNominal,
		PkgPath:   t.PkgPath,
		Name:      t.Name,
		Generable: true,
		ListGroup: t.ListGroup,
		MapGroup:  t.MapGroup,
		Members:   members,
	}
}

// Pass is the input of one generation pass.
type Pass struct {
	// Domains are in discovery order.
	Domains []Type
	// Transforms maps qualified type names to the transform applied to every
	// property of that type.
	Transforms map[string]TransformHint
}

// Roots returns the root domains in discovery order.
func (p *Pass) Roots() []Type {
	var roots []Type

	for _, d := range p.Domains {
		if d.IsRoot {
			roots = append(roots, d)
		}
	}

	return roots
}

// Lookup finds a domain by qualified name.
func (p *Pass) Lookup(qualifiedName string) (Type, bool) {
	for _, d := range p.Domains {
		if d.QualifiedName() == qualifiedName {
			return d, true
		}
	}

	return Type{}, false
}

// NormalizeOrdinals assigns Ordinal and IsLast from declaration order.
func NormalizeOrdinals(props []Property) {
	for i := range props {
		props[i].Ordinal = i
		props[i].IsLast = i == len(props)-1
	}
}
