package render

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ir"
)

const receiverName = "b"

// markerDirective prefixes DSL marker annotations.
const markerDirective = "//dsl:marker "

// goName returns the Go identifier of a function.
func goName(name string, access ir.Modifier) string {
	if access == ir.ModifierPrivate {
		return name
	}

	return common.UpperFirst(name)
}

// fieldNames maps property names to struct fields. Public properties are
// exported unless a method already uses the exported name.
func fieldNames(t ir.TypeSpec) map[string]string {
	methods := make(map[string]bool, len(t.Functions))
	for _, f := range t.Functions {
		methods[goName(f.Name, f.Access())] = true
	}

	fields := make(map[string]string, len(t.Properties))

	for _, p := range t.Properties {
		name := safeField(p.Name)
		if exported := common.UpperFirst(p.Name); p.Access() == ir.ModifierPublic && !methods[exported] {
			name = exported
		}

		fields[p.Name] = name
	}

	return fields
}

func comments(doc, name, goName string) []jen.Code {
	if doc == "" {
		return nil
	}

	if goName != name && strings.HasPrefix(doc, name+" ") {
		doc = goName + strings.TrimPrefix(doc, name)
	}

	lines := strings.Split(doc, "\n")
	out := make([]jen.Code, 0, len(lines))

	for _, l := range lines {
		out = append(out, jen.Comment(l))
	}

	return out
}

func annotations(as []ir.AnnotationSpec) []jen.Code {
	out := make([]jen.Code, 0, len(as))
	for _, a := range as {
		out = append(out, jen.Comment(markerDirective+a.Type.QualifiedName()))
	}

	return out
}

// typeDecl renders t and its nested types, whose names are prefixed with
// the flattened name of their parent. Each element is one top-level
// declaration with its comments.
func typeDecl(prefix string, t ir.TypeSpec, imports map[string]bool) ([][]jen.Code, error) {
	name := prefix + t.Name
	fields := fieldNames(t)

	reserved := map[string]bool{receiverName: true}
	for n := range imports {
		reserved[n] = true
	}

	sc := scope{receiver: receiverName, fields: fields, reserved: reserved}

	head := comments(t.Doc, t.Name, name)
	head = append(head, annotations(t.Annotations)...)

	structFields := make([]jen.Code, 0, len(t.Properties))
	inits := make([]jen.Code, 0, len(t.Properties))

	for _, p := range t.Properties {
		field := fields[p.Name]
		if p.Doc != "" {
			structFields = append(structFields, jen.Comment(p.Doc))
		}

		structFields = append(structFields, jen.Id(field).Add(typeCode(p.Type)))

		if p.Initializer != nil {
			value, err := sc.codeBlock(*p.Initializer)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, p.Name, err)
			}

			inits = append(inits, jen.Id(field).Op(":").Add(value))
		}
	}

	out := [][]jen.Code{
		append(head, jen.Type().Id(name).Types(typeParams(t.TypeVariables)...).Struct(structFields...)),
	}

	self := jen.Id(name).Types(typeArgs(t.TypeVariables)...)

	if len(t.TypeVariables) == 0 {
		for _, st := range t.SuperTypes {
			out = append(out, []jen.Code{jen.Var().Id("_").Add(typeCode(st)).Op("=").
				Parens(jen.Op("*").Id(name)).Parens(jen.Nil())})
		}
	}

	ctor := constructorName(name)
	out = append(out, []jen.Code{
		jen.Comment(fmt.Sprintf("%s returns a %s with its initial values.", ctor, name)),
		jen.Func().Id(ctor).Types(typeParams(t.TypeVariables)...).Params().Op("*").Add(self.Clone()).Block(
			jen.Return(jen.Op("&").Add(self.Clone()).Values(inits...)),
		),
	})

	for _, f := range t.Functions {
		recv := jen.Id(receiverName).Op("*").Add(self.Clone())

		fn, err := funcDecl(sc, recv, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, fn)
	}

	for _, n := range t.Nested {
		nested, err := typeDecl(name, n, imports)
		if err != nil {
			return nil, err
		}

		out = append(out, nested...)
	}

	return out, nil
}

// funcDecl renders f as a method of recv, or as a function when recv is nil.
// A trailing parameter with a default value becomes variadic and is
// resolved in a prologue.
func funcDecl(sc scope, recv *jen.Statement, f ir.FunctionSpec) ([]jen.Code, error) {
	name := goName(f.Name, f.Access())
	sc = sc.withParams(f.Params)

	var (
		params   []jen.Code
		prologue []jen.Code
	)

	for i, p := range f.Params {
		id := sc.local(p.Name)

		switch {
		case p.Vararg:
			params = append(params, jen.Id(id).Op("...").Add(typeCode(p.Type)))
		case p.Default != nil && i == len(f.Params)-1:
			def, err := sc.codeBlock(*p.Default)
			if err != nil {
				return nil, fmt.Errorf("%s: default of %s: %w", name, p.Name, err)
			}

			opt := p.Name + "Opt"
			params = append(params, jen.Id(opt).Op("...").Add(typeCode(p.Type)))
			prologue = append(prologue,
				jen.Id(id).Op(":=").Add(def),
				jen.If(jen.Len(jen.Id(opt)).Op(">").Lit(0)).Block(
					jen.Id(id).Op("=").Id(opt).Index(jen.Lit(0)),
				),
			)
		default:
			params = append(params, jen.Id(id).Add(typeCode(p.Type)))
		}
	}

	body := prologue

	for _, st := range f.Statements {
		code, err := sc.statement(st)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		body = append(body, code)
	}

	decl := jen.Func()
	if recv != nil {
		decl.Params(recv)
	}

	decl.Id(name)

	if recv == nil {
		decl.Types(typeParams(f.TypeVariables)...)
	}

	decl.Params(params...)

	if f.Returns != nil {
		decl.Add(typeCode(*f.Returns))
	}

	decl.Block(body...)

	out := comments(f.Doc, f.Name, name)
	out = append(out, annotations(f.Annotations)...)

	return append(out, decl), nil
}

func aliasDecl(a ir.TypeAliasSpec) jen.Code {
	return jen.Type().Id(a.Name).Types(typeParams(a.TypeVariables)...).Op("=").Add(typeCode(a.Type))
}
