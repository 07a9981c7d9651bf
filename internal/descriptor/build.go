package descriptor

import (
	"fmt"
	"strings"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/match"
)

// maxSuggestions bounds the alternatives offered for an unknown type.
const maxSuggestions = 3

var numericNames = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "float32": true, "float64": true,
}

// Build turns descriptors into a generation pass. Domains keep the order of
// files and of declarations within a file. The pass is nil when the
// diagnostics carry errors.
func Build(files ...*File) (*domain.Pass, *diagnostic.Diagnostics) {
	b := &builder{
		diags:  &diagnostic.Diagnostics{},
		refs:   map[string]*domain.TypeRef{},
		byName: map[string][]string{},
	}

	pass := &domain.Pass{Transforms: map[string]domain.TransformHint{}}

	// Declare every domain first so properties can reference domains
	// declared later.
	var decls []Domain

	for _, f := range files {
		for _, d := range f.Domains {
			t, ok := b.declare(d)
			if !ok {
				continue
			}

			pass.Domains = append(pass.Domains, t)
			decls = append(decls, d)
		}
	}

	for i, d := range decls {
		t := &pass.Domains[i]
		for j, p := range d.Properties {
			t.Properties[j] = b.property(*t, p)
		}

		domain.NormalizeOrdinals(t.Properties)
	}

	for _, f := range files {
		for _, tr := range f.Transforms {
			b.transform(pass, tr)
		}
	}

	if b.diags.HasErrors() {
		return nil, b.diags
	}

	return pass, b.diags
}

type builder struct {
	diags *diagnostic.Diagnostics
	// refs maps qualified names to references of declared domains.
	refs map[string]*domain.TypeRef
	// byName maps simple names to the qualified names declaring them.
	byName map[string][]string
	// names are the simple domain names in declaration order.
	names []string
}

// declare checks the domain header and registers its reference. Properties
// get their names only; types are resolved once every domain is known.
func (b *builder) declare(d Domain) (domain.Type, bool) {
	if d.Name == "" {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor, "domain has no name", "", "")
		return domain.Type{}, false
	}

	if d.Package == "" {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor,
			"domain has no package and the file declares none", d.Name, "")

		return domain.Type{}, false
	}

	mode, ok := domain.ParseMapGroupMode(d.MapGroup)
	if !ok {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor,
			fmt.Sprintf("invalid map_group %q, expected none, single, list or all", d.MapGroup), d.Name, "")
	}

	t := domain.Type{
		PkgPath:   d.Package,
		PkgName:   common.PackageName(d.Package),
		Name:      d.Name,
		IsRoot:    d.Root,
		ListGroup: d.ListGroup,
		MapGroup:  mode,
		Marker:    d.Marker,
		Debug:     d.Debug,
	}

	q := t.QualifiedName()
	if _, dup := b.refs[q]; dup {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor, "duplicate domain "+q, d.Name, "")
		return domain.Type{}, false
	}

	seen := map[string]bool{}

	for _, p := range d.Properties {
		switch {
		case p.Name == "":
			b.diags.AddError(diagnostic.CodeInvalidDescriptor, "property has no name", d.Name, "")
		case seen[p.Name]:
			b.diags.AddError(diagnostic.CodeInvalidDescriptor, "duplicate property", d.Name, p.Name)
		}

		seen[p.Name] = true
		t.Properties = append(t.Properties, domain.Property{Name: p.Name})
	}

	b.refs[q] = t.Ref()
	b.byName[d.Name] = append(b.byName[d.Name], q)
	b.names = append(b.names, d.Name)

	return t, true
}

func (b *builder) property(owner domain.Type, p Property) domain.Property {
	expr, nullable := strings.CutSuffix(strings.TrimSpace(p.Type), "?")

	out := domain.Property{
		Name:     p.Name,
		Field:    p.Field,
		Nullable: p.Nullable || nullable,
	}

	if expr == "" {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor, "property has no type", owner.Name, p.Name)
		return out
	}

	ctx := site{owner: owner, property: p.Name}
	out.Type = b.resolve(ctx, expr)

	if p.Default != nil {
		out.Default = &domain.DefaultValueHint{Raw: p.Default.Value}
		if p.Default.Type != "" {
			out.Default.ValueType = b.resolve(ctx, p.Default.Type)
		}
	}

	if p.Transform != nil {
		out.Transform = &domain.TransformHint{Template: p.Transform.Template}
		if p.Transform.Input != "" {
			out.Transform.Input = b.resolve(ctx, p.Transform.Input)
		}
	}

	return out
}

// transform registers a type-wide transform. A missing input is kept so the
// resolver reports it on every property of the type.
func (b *builder) transform(pass *domain.Pass, tr Transform) {
	target := b.resolve(site{}, tr.Type)
	if target == nil {
		return
	}

	if target.Kind != domain.KindNominal {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor,
			fmt.Sprintf("transform target %s is not a named type", tr.Type), "", "")

		return
	}

	hint := domain.TransformHint{Template: tr.Template}
	if tr.Input != "" {
		hint.Input = b.resolve(site{}, tr.Input)
	}

	q := target.QualifiedName()
	if _, dup := pass.Transforms[q]; dup {
		b.diags.AddError(diagnostic.CodeInvalidDescriptor, "duplicate transform for "+q, "", "")
		return
	}

	pass.Transforms[q] = hint
}

// site locates a type expression for diagnostics and short-name lookup.
type site struct {
	owner    domain.Type
	property string
}

// resolve parses a Go-like type expression. Errors are recorded and yield
// nil.
func (b *builder) resolve(at site, expr string) *domain.TypeRef {
	expr = strings.TrimSpace(expr)

	switch {
	case expr == "":
		b.invalid(at, "empty type expression")
		return nil
	case expr == "bool":
		return domain.Boolean()
	case expr == "string":
		return domain.String()
	case expr == "rune":
		return domain.Char()
	case numericNames[expr]:
		return domain.Numeric(expr)
	case strings.HasPrefix(expr, "*"):
		b.invalid(at, fmt.Sprintf("pointer type %s, mark the property nullable instead", expr))
		return nil
	case strings.HasPrefix(expr, "[]"):
		elem := b.resolve(at, expr[2:])
		if elem == nil {
			return nil
		}

		return domain.ListOf(elem)
	case strings.HasPrefix(expr, "map["):
		end := closingBracket(expr, len("map"))
		if end < 0 {
			b.invalid(at, "unbalanced brackets in "+expr)
			return nil
		}

		key := b.resolve(at, expr[len("map["):end])
		value := b.resolve(at, expr[end+1:])

		if key == nil || value == nil {
			return nil
		}

		return domain.MapOf(key, value)
	case strings.ContainsAny(expr, "[]{}() \t"):
		b.invalid(at, "unsupported type expression "+expr)
		return nil
	}

	return b.nominal(at, expr)
}

func (b *builder) nominal(at site, expr string) *domain.TypeRef {
	pkgPath, name := common.SplitQualifiedName(expr)
	if pkgPath != "" {
		if ref, ok := b.refs[expr]; ok {
			return ref
		}

		// Types outside the descriptors are opaque to the generator.
		return domain.Nominal(pkgPath, name)
	}

	if at.owner.PkgPath != "" {
		if ref, ok := b.refs[common.QualifiedName(at.owner.PkgPath, name)]; ok {
			return ref
		}
	}

	switch qs := b.byName[name]; len(qs) {
	case 1:
		return b.refs[qs[0]]
	case 0:
		b.diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        diagnostic.CodeUnknownType,
			Message:     "unknown type " + name,
			Domain:      at.owner.Name,
			Property:    at.property,
			Suggestions: match.Suggest(name, b.names, maxSuggestions),
		})
	default:
		b.invalid(at, fmt.Sprintf("%s is declared in several packages (%s), qualify it",
			name, strings.Join(qs, ", ")))
	}

	return nil
}

func (b *builder) invalid(at site, msg string) {
	b.diags.AddError(diagnostic.CodeInvalidDescriptor, msg, at.owner.Name, at.property)
}

// closingBracket returns the index of the ']' matching the '[' at open.
func closingBracket(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
