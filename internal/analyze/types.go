package analyze

import (
	"fmt"
	"go/types"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/domain"
)

// typeRef maps a Go type to a property type. Domain types map to their
// generable reference.
func (s *scan) typeRef(t types.Type) (*domain.TypeRef, error) {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return basicRef(tt)

	case *types.Slice:
		elem, err := s.typeRef(tt.Elem())
		if err != nil {
			return nil, err
		}

		return domain.ListOf(elem), nil

	case *types.Map:
		key, err := s.typeRef(tt.Key())
		if err != nil {
			return nil, err
		}

		value, err := s.typeRef(tt.Elem())
		if err != nil {
			return nil, err
		}

		return domain.MapOf(key, value), nil

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return nil, fmt.Errorf("unsupported type %s", t)
		}

		if tt.TypeArgs().Len() > 0 {
			return nil, fmt.Errorf("unsupported generic type %s", t)
		}

		q := common.QualifiedName(obj.Pkg().Path(), obj.Name())
		if ref, ok := s.refs[q]; ok {
			return ref, nil
		}

		return domain.Nominal(obj.Pkg().Path(), obj.Name()), nil

	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}

func basicRef(b *types.Basic) (*domain.TypeRef, error) {
	switch {
	case b.Kind() == types.Bool:
		return domain.Boolean(), nil
	case b.Kind() == types.String:
		return domain.String(), nil
	case b.Name() == "rune":
		return domain.Char(), nil
	case b.Info()&types.IsNumeric != 0:
		return domain.Numeric(b.Name()), nil
	default:
		return nil, fmt.Errorf("unsupported type %s", b)
	}
}
