package render

import (
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"

	"dslbuilder-generator/internal/ir"
)

// scope resolves property accesses inside a method body.
type scope struct {
	// receiver is empty outside methods.
	receiver string
	fields   map[string]string

	// reserved holds identifiers parameters must not take: the receiver and
	// the names of the file's imports.
	reserved map[string]bool

	// locals maps parameter names to their Go identifiers.
	locals map[string]string
}

func (s scope) local(name string) string {
	if l, ok := s.locals[name]; ok {
		return l
	}

	return name
}

// withParams returns s with a Go identifier bound to every parameter name.
// Names that are keywords or reserved get a "_" suffix.
func (s scope) withParams(params []ir.ParameterSpec) scope {
	taken := make(map[string]bool, len(s.reserved)+len(params))
	for n := range s.reserved {
		taken[n] = true
	}

	for _, p := range params {
		taken[p.Name] = true
	}

	s.locals = make(map[string]string, len(params))

	for _, p := range params {
		id := p.Name
		if token.IsKeyword(id) || s.reserved[id] {
			id += "_"
			for taken[id] {
				id += "_"
			}

			taken[id] = true
		}

		s.locals[p.Name] = id
	}

	return s
}

// safeField returns name, suffixed with "_" when it is a Go keyword.
func safeField(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}

	return name
}

func (s scope) property(name string) *jen.Statement {
	field := name
	if f, ok := s.fields[name]; ok {
		field = f
	}

	if s.receiver == "" {
		return jen.Id(field)
	}

	return jen.Id(s.receiver).Dot(field)
}

// codeBlock renders c as a sequence of tokens. Literal text is emitted
// verbatim and spacing is left to gofmt.
func (s scope) codeBlock(c ir.CodeBlock) (*jen.Statement, error) {
	segs, err := c.Segments()
	if err != nil {
		return nil, err
	}

	out := jen.Null()

	for _, seg := range segs {
		switch seg.Verb {
		case 0:
			out.Op(seg.Text)
		case 'N':
			out.Id(s.local(seg.Arg.(string)))
		case 'P':
			out.Add(s.property(seg.Arg.(string)))
		case 'S':
			out.Lit(seg.Arg.(string))
		case 'T':
			out.Add(typeCode(seg.Arg.(ir.TypeName)))
		case 'C':
			out.Add(constructorCall(seg.Arg.(ir.TypeName)))
		case 'M':
			m := seg.Arg.(ir.MemberName)
			if m.Package == "" {
				out.Id(m.Name)
			} else {
				out.Qual(m.Package, m.Name)
			}
		case 'L':
			switch v := seg.Arg.(type) {
			case string:
				out.Op(v)
			case ir.CodeBlock:
				nested, err := s.codeBlock(v)
				if err != nil {
					return nil, err
				}

				out.Add(nested)
			}
		default:
			return nil, fmt.Errorf("unsupported verb %%%c", seg.Verb)
		}
	}

	return out, nil
}

func (s scope) statement(st ir.Statement) (jen.Code, error) {
	switch v := st.(type) {
	case ir.Line:
		return s.codeBlock(v.Code)
	case ir.Return:
		value, err := s.codeBlock(v.Value)
		if err != nil {
			return nil, err
		}

		return jen.Return(value), nil
	case ir.Construct:
		values := make([]jen.Code, 0, len(v.Args))

		for _, a := range v.Args {
			value, err := s.codeBlock(a.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", a.Field, err)
			}

			values = append(values, jen.Id(a.Field).Op(":").Add(value))
		}

		return jen.Return(typeCode(v.Type.Copy(false)).Values(values...)), nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", st)
	}
}
