package ir

import (
	"strings"

	"dslbuilder-generator/internal/common"
)

// TypeNameKind discriminates TypeName.
type TypeNameKind int

const (
	TypeClass TypeNameKind = iota
	TypeParameterized
	TypeLambda
	TypeVariable
)

// TypeName references a type. Class and parameterized names are identified by
// Package plus Names, where Names holds the enclosing types of a nested type
// followed by its own simple name. Builtin types have an empty Package.
type TypeName struct {
	Kind    TypeNameKind
	Package string
	Names   []string
	// Args are the type arguments of a parameterized type.
	Args []TypeName
	// Receiver, Params and Return describe a lambda. A lambda with a receiver
	// runs a block against the receiver value.
	Receiver *TypeName
	Params   []TypeName
	Return   *TypeName
	// Bound constrains a type variable.
	Bound    *TypeName
	Nullable bool
}

// Builtin types.
var (
	Bool       = ClassName("", "bool")
	String     = ClassName("", "string")
	Rune       = ClassName("", "rune")
	Int        = ClassName("", "int")
	Any        = ClassName("", "any")
	Comparable = ClassName("", "comparable")

	// ListType and MapType are the raw collection types. Parameterize them
	// with List and Map.
	ListType = ClassName("", "List")
	MapType  = ClassName("", "Map")
)

// ClassName returns a reference to a declared type.
func ClassName(pkg string, names ...string) TypeName {
	return TypeName{Kind: TypeClass, Package: pkg, Names: names}
}

// List returns a list of elem.
func List(elem TypeName) TypeName {
	return ListType.Parameterized(elem)
}

// Map returns a map from key to value.
func Map(key, value TypeName) TypeName {
	return MapType.Parameterized(key, value)
}

// TypeVar returns a type variable with an optional bound.
func TypeVar(name string, bound *TypeName) TypeName {
	return TypeName{Kind: TypeVariable, Names: []string{name}, Bound: bound}
}

// LambdaWithReceiver returns the type of a block executed against receiver.
func LambdaWithReceiver(receiver TypeName, params []TypeName, ret *TypeName) TypeName {
	return TypeName{Kind: TypeLambda, Receiver: &receiver, Params: params, Return: ret}
}

// Nested returns the type nested in t named name.
func (t TypeName) Nested(name string) TypeName {
	names := append(append([]string{}, t.Names...), name)
	return TypeName{Kind: TypeClass, Package: t.Package, Names: names}
}

// Parameterized returns t applied to args.
func (t TypeName) Parameterized(args ...TypeName) TypeName {
	return TypeName{
		Kind:     TypeParameterized,
		Package:  t.Package,
		Names:    t.Names,
		Args:     args,
		Nullable: t.Nullable,
	}
}

// Raw strips type arguments.
func (t TypeName) Raw() TypeName {
	if t.Kind != TypeParameterized {
		return t
	}

	return TypeName{Kind: TypeClass, Package: t.Package, Names: t.Names, Nullable: t.Nullable}
}

// Copy returns t with the given nullability.
func (t TypeName) Copy(nullable bool) TypeName {
	t.Nullable = nullable
	return t
}

// SimpleName returns the innermost name.
func (t TypeName) SimpleName() string {
	if len(t.Names) == 0 {
		return ""
	}

	return t.Names[len(t.Names)-1]
}

// FlatName joins the nesting path into a single identifier, so
// StarShipDslBuilder.Group becomes StarShipDslBuilderGroup.
func (t TypeName) FlatName() string {
	return strings.Join(t.Names, "")
}

// QualifiedName returns package.Outer.Inner.
func (t TypeName) QualifiedName() string {
	return common.QualifiedName(t.Package, strings.Join(t.Names, "."))
}

// IsBuiltin reports whether t is declared by no package.
func (t TypeName) IsBuiltin() bool {
	return (t.Kind == TypeClass || t.Kind == TypeParameterized) && t.Package == ""
}

// IsList reports whether t is the raw or parameterized list type.
func (t TypeName) IsList() bool {
	return t.IsBuiltin() && t.SimpleName() == ListType.SimpleName()
}

// IsMap reports whether t is the raw or parameterized map type.
func (t TypeName) IsMap() bool {
	return t.IsBuiltin() && t.SimpleName() == MapType.SimpleName()
}

// Equal compares two type names structurally.
func (t TypeName) Equal(o TypeName) bool {
	return t.String() == o.String()
}

// String renders t in a language-neutral notation used in diagnostics and
// dumps: pkg.Outer.Inner<Args>?.
func (t TypeName) String() string {
	var sb strings.Builder

	switch t.Kind {
	case TypeLambda:
		if t.Receiver != nil {
			sb.WriteString(t.Receiver.String())
			sb.WriteString(".")
		}

		sb.WriteString("(")

		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.String())
		}

		sb.WriteString(") -> ")

		if t.Return != nil {
			sb.WriteString(t.Return.String())
		} else {
			sb.WriteString("Unit")
		}
	case TypeVariable:
		sb.WriteString(t.SimpleName())
	default:
		sb.WriteString(t.QualifiedName())

		if len(t.Args) > 0 {
			sb.WriteString("<")

			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}

				sb.WriteString(a.String())
			}

			sb.WriteString(">")
		}
	}

	if t.Nullable {
		sb.WriteString("?")
	}

	return sb.String()
}

// MemberName references a package-level function or variable.
type MemberName struct {
	Package string
	Name    string
}

// Member returns a reference to a package-level member.
func Member(pkg, name string) MemberName {
	return MemberName{Package: pkg, Name: name}
}

// String returns package.Name.
func (m MemberName) String() string {
	return common.QualifiedName(m.Package, m.Name)
}
