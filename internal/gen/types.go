package gen

import (
	"fmt"

	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
)

// typeName converts a declared type into an IR type, ignoring nullability.
func typeName(t *domain.TypeRef) (ir.TypeName, error) {
	if t == nil {
		return ir.TypeName{}, &ir.MissingRequiredFieldError{Spec: "type reference", Field: "type"}
	}

	switch t.Kind {
	case domain.KindCollection:
		elem, err := typeName(t.Elem)
		if err != nil {
			return ir.TypeName{}, fmt.Errorf("element of %s: %w", t, err)
		}

		return ir.List(elem), nil
	case domain.KindMap:
		key, err := typeName(t.Key)
		if err != nil {
			return ir.TypeName{}, fmt.Errorf("key of %s: %w", t, err)
		}

		value, err := typeName(t.Value)
		if err != nil {
			return ir.TypeName{}, fmt.Errorf("value of %s: %w", t, err)
		}

		return ir.Map(key, value), nil
	case domain.KindNominal:
		return ir.ClassName(t.PkgPath, t.Name), nil
	case domain.KindBoolean, domain.KindNumeric, domain.KindString, domain.KindChar:
		return ir.ClassName("", t.Name), nil
	default:
		return ir.TypeName{}, &ir.MissingRequiredFieldError{Spec: "type reference", Name: t.Name, Field: "kind"}
	}
}

// domainTypeName returns the IR type of a domain record.
func domainTypeName(d domain.Type) ir.TypeName {
	return ir.ClassName(d.PkgPath, d.Name)
}

// builderTypeName returns the generated builder of a generable type.
func builderTypeName(t *domain.TypeRef) ir.TypeName {
	return ir.ClassName(t.PkgPath, t.Name+"DslBuilder")
}
