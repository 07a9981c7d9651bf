package ir

import (
	"cmp"
	"slices"
)

type importSet struct {
	self string
	seen map[Import]struct{}
}

func (s *importSet) add(pkg, symbol string) {
	if pkg == "" || pkg == s.self {
		return
	}

	s.seen[Import{Package: pkg, Symbol: symbol}] = struct{}{}
}

func (s *importSet) typeName(t TypeName) {
	switch t.Kind {
	case TypeLambda:
		if t.Receiver != nil {
			s.typeName(*t.Receiver)
		}

		for _, p := range t.Params {
			s.typeName(p)
		}

		if t.Return != nil {
			s.typeName(*t.Return)
		}
	case TypeVariable:
		if t.Bound != nil {
			s.typeName(*t.Bound)
		}
	default:
		if len(t.Names) > 0 {
			s.add(t.Package, t.Names[0])
		}

		for _, a := range t.Args {
			s.typeName(a)
		}
	}
}

func (s *importSet) code(c CodeBlock) {
	for _, arg := range c.Args {
		switch v := arg.(type) {
		case TypeName:
			s.typeName(v)
		case MemberName:
			s.add(v.Package, v.Name)
		case CodeBlock:
			s.code(v)
		}
	}
}

func (s *importSet) annotations(as []AnnotationSpec) {
	for _, a := range as {
		s.typeName(a.Type)

		for _, c := range a.Args {
			s.code(c)
		}
	}
}

func (s *importSet) function(f FunctionSpec) {
	s.annotations(f.Annotations)

	for _, v := range f.TypeVariables {
		s.typeName(v)
	}

	for _, p := range f.Params {
		s.typeName(p.Type)

		if p.Default != nil {
			s.code(*p.Default)
		}
	}

	if f.Returns != nil {
		s.typeName(*f.Returns)
	}

	for _, st := range f.Statements {
		if c, ok := st.(Construct); ok {
			s.typeName(c.Type)
		}

		for _, code := range st.Codes() {
			s.code(code)
		}
	}
}

func (s *importSet) typeSpec(t TypeSpec) {
	s.annotations(t.Annotations)

	for _, st := range t.SuperTypes {
		s.typeName(st)
	}

	for _, v := range t.TypeVariables {
		s.typeName(v)
	}

	for _, p := range t.Properties {
		s.typeName(p.Type)

		if p.Initializer != nil {
			s.code(*p.Initializer)
		}
	}

	for _, f := range t.Functions {
		s.function(f)
	}

	for _, n := range t.Nested {
		s.typeSpec(n)
	}
}

// collectImports walks every type and code reference of f. Builtins and
// symbols of f's own package are not imports.
func collectImports(f FileSpec) []Import {
	s := &importSet{self: f.Package, seen: map[Import]struct{}{}}

	for _, a := range f.TypeAliases {
		s.typeName(a.Type)

		for _, v := range a.TypeVariables {
			s.typeName(v)
		}
	}

	for _, t := range f.Types {
		s.typeSpec(t)
	}

	for _, fn := range f.Functions {
		s.function(fn)
	}

	imports := make([]Import, 0, len(s.seen))
	for imp := range s.seen {
		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b Import) int {
		if c := cmp.Compare(a.Package, b.Package); c != 0 {
			return c
		}

		return cmp.Compare(a.Symbol, b.Symbol)
	})

	return imports
}
