package render

import (
	"github.com/dave/jennifer/jen"

	"dslbuilder-generator/internal/ir"
)

// typeCode renders t. Nullable scalars and declared types become pointers;
// nullable lists and maps keep their nil value.
func typeCode(t ir.TypeName) *jen.Statement {
	s := jen.Null()

	if t.Nullable && t.Kind != ir.TypeLambda && !t.IsList() && !t.IsMap() {
		s = jen.Op("*")
	}

	switch t.Kind {
	case ir.TypeLambda:
		params := make([]jen.Code, 0, len(t.Params)+1)
		if t.Receiver != nil {
			params = append(params, jen.Op("*").Add(typeCode(*t.Receiver)))
		}

		for _, p := range t.Params {
			params = append(params, typeCode(p))
		}

		s = jen.Func().Params(params...)
		if t.Return != nil {
			s.Add(typeCode(*t.Return))
		}

		return s
	case ir.TypeVariable:
		return s.Id(t.SimpleName())
	}

	switch {
	case t.IsList() && len(t.Args) == 1:
		return s.Index().Add(typeCode(t.Args[0]))
	case t.IsMap() && len(t.Args) == 2:
		return s.Map(typeCode(t.Args[0])).Add(typeCode(t.Args[1]))
	case t.Package == "":
		s.Id(t.FlatName())
	default:
		s.Qual(t.Package, t.FlatName())
	}

	if len(t.Args) > 0 {
		args := make([]jen.Code, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, typeCode(a))
		}

		s.Types(args...)
	}

	return s
}

// constructorCall renders a call of the New<Type> constructor of t.
func constructorCall(t ir.TypeName) *jen.Statement {
	var s *jen.Statement
	if t.Package == "" {
		s = jen.Id(constructorName(t.FlatName()))
	} else {
		s = jen.Qual(t.Package, constructorName(t.FlatName()))
	}

	if len(t.Args) > 0 {
		args := make([]jen.Code, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, typeCode(a))
		}

		s.Types(args...)
	}

	return s.Call()
}

func constructorName(flat string) string {
	return "New" + flat
}

// typeParams declares type variables with their bounds.
func typeParams(vars []ir.TypeName) []jen.Code {
	params := make([]jen.Code, 0, len(vars))

	for _, v := range vars {
		bound := jen.Id("any")
		if v.Bound != nil {
			bound = typeCode(*v.Bound)
		}

		params = append(params, jen.Id(v.SimpleName()).Add(bound))
	}

	return params
}

// typeArgs references type variables without their bounds.
func typeArgs(vars []ir.TypeName) []jen.Code {
	args := make([]jen.Code, 0, len(vars))
	for _, v := range vars {
		args = append(args, jen.Id(v.SimpleName()))
	}

	return args
}
