package propschema

import (
	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/domain"
)

// Kind is the builder strategy of a property.
type Kind int

const (
	KindBoolean Kind = iota
	KindDefault
	KindMap
	KindCollection
	KindGroup
	KindMapGroup
	KindBuilder
	KindSingleTransform
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindDefault:
		return "Default"
	case KindMap:
		return "Map"
	case KindCollection:
		return "Collection"
	case KindGroup:
		return "Group"
	case KindMapGroup:
		return "MapGroup"
	case KindBuilder:
		return "Builder"
	case KindSingleTransform:
		return "SingleTransform"
	default:
		return common.UnknownStr
	}
}

// IterableType says which not-empty check a non-nullable property needs.
type IterableType int

const (
	IterableNone IterableType = iota
	IterableCollection
	IterableMap
)

// Schema is the resolved strategy for one property.
type Schema struct {
	Kind     Kind
	Property domain.Property

	// Elem is the element type of KindCollection and KindGroup.
	Elem *domain.TypeRef
	// Key and Value are the type arguments of KindMap and KindMapGroup.
	Key   *domain.TypeRef
	Value *domain.TypeRef
	// Nested is the generable type built by KindBuilder.
	Nested *domain.TypeRef
	// Transform is set for KindSingleTransform.
	Transform *domain.TransformHint
	// Doc lists the functions available inside a nested builder block.
	Doc string
	// Fallback is set when KindDefault was chosen because nothing else
	// matched.
	Fallback bool
}

// Name returns the property name.
func (s Schema) Name() string { return s.Property.Name }

// Nullable reports whether the property accepts an unset value.
func (s Schema) Nullable() bool { return s.Property.Nullable }

// Type returns the declared property type.
func (s Schema) Type() *domain.TypeRef { return s.Property.Type }

// Iterable returns the container shape checked by build.
func (s Schema) Iterable() IterableType {
	switch s.Kind {
	case KindCollection, KindGroup:
		return IterableCollection
	case KindMap, KindMapGroup:
		return IterableMap
	default:
		return IterableNone
	}
}
