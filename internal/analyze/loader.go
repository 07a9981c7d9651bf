package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"reflect"

	"golang.org/x/tools/go/packages"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and discovers their domain types.
type Analyzer struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Load loads the packages matching patterns and builds a generation pass
// from their directives. Domains are in package, file and declaration
// order. The returned error reports packages that failed to load; directive
// problems are diagnostics, and the pass is nil when they include errors.
func (a *Analyzer) Load(ctx context.Context, patterns ...string) (*domain.Pass, *diagnostic.Diagnostics, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	s := &scan{
		logger: ctxlog.FromContext(ctx),
		diags:  &diagnostic.Diagnostics{},
		refs:   map[string]*domain.TypeRef{},
	}

	for _, pkg := range pkgs {
		s.collect(pkg)
	}

	pass := &domain.Pass{Transforms: map[string]domain.TransformHint{}}

	for _, c := range s.domains {
		d := s.domain(c)
		s.refs[d.QualifiedName()].Members = d.Ref().Members
		pass.Domains = append(pass.Domains, d)
	}

	for _, tr := range s.transforms {
		s.transform(pass, tr)
	}

	if s.diags.HasErrors() {
		return nil, s.diags, nil
	}

	return pass, s.diags, nil
}

// candidate is a struct carrying a generate directive.
type candidate struct {
	header domain.Type
	fields []pendingField
}

type pendingField struct {
	v    *types.Var
	name string
	opts fieldOptions
}

// pendingTransform is a named type carrying a transform directive.
type pendingTransform struct {
	pkg  *packages.Package
	obj  *types.TypeName
	pos  token.Pos
	args string
}

type scan struct {
	logger     *slog.Logger
	diags      *diagnostic.Diagnostics
	refs       map[string]*domain.TypeRef
	domains    []candidate
	transforms []pendingTransform
}

// collect registers the directives of pkg. Field types are mapped later so
// that fields can reference domains of packages loaded after pkg.
func (s *scan) collect(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				docs := []*ast.CommentGroup{ts.Doc}
				if !gd.Lparen.IsValid() {
					docs = append(docs, gd.Doc)
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				if args, ok := findDirective(docs, generateDirective); ok {
					s.declare(pkg, ts, obj, args)
				}

				if args, ok := findDirective(docs, transformDirective); ok {
					s.transforms = append(s.transforms, pendingTransform{pkg: pkg, obj: obj, pos: ts.Pos(), args: args})
				}
			}
		}
	}
}

func (s *scan) declare(pkg *packages.Package, ts *ast.TypeSpec, obj *types.TypeName, args string) {
	name := obj.Name()

	if ts.TypeParams != nil {
		s.diags.AddError(diagnostic.CodeInvalidDescriptor, "generic types cannot be domains", name, "")
		return
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		s.diags.AddError(diagnostic.CodeInvalidDescriptor, "only struct types can be domains", name, "")
		return
	}

	opts, err := parseGenerate(args)
	if err != nil {
		s.diags.AddError(diagnostic.CodeInvalidDescriptor, err.Error(), name, "")
		return
	}

	c := candidate{header: domain.Type{
		PkgPath:   pkg.PkgPath,
		PkgName:   pkg.Name,
		Name:      name,
		IsRoot:    opts.Root,
		ListGroup: opts.ListGroup,
		MapGroup:  opts.MapGroup,
		Marker:    opts.Marker,
		Debug:     opts.Debug,
	}}

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}

		if f.Embedded() {
			s.diags.AddWarning(diagnostic.CodeUnmappedType,
				"embedded field "+f.Name()+" is not a property", name, "")

			continue
		}

		fo, err := parseFieldTag(reflect.StructTag(st.Tag(i)).Get(tagKey))
		if err != nil {
			s.diags.AddError(diagnostic.CodeInvalidDescriptor, err.Error(), name, f.Name())
			continue
		}

		if fo.Skip {
			continue
		}

		prop := fo.Name
		if prop == "" {
			prop = common.LowerCamel(f.Name())
		}

		c.fields = append(c.fields, pendingField{v: f, name: prop, opts: fo})
	}

	// Members are filled once the fields are mapped.
	s.refs[c.header.QualifiedName()] = c.header.Ref()
	s.domains = append(s.domains, c)
}

// domain maps the fields of c now that every domain is known.
func (s *scan) domain(c candidate) domain.Type {
	t := c.header
	t.Properties = nil

	for _, f := range c.fields {
		ft := f.v.Type()
		nullable := false

		if ptr, ok := types.Unalias(ft).(*types.Pointer); ok {
			ft = ptr.Elem()
			nullable = true

			switch types.Unalias(ft).(type) {
			case *types.Slice, *types.Map:
				s.diags.AddWarning(diagnostic.CodeUnmappedType,
					fmt.Sprintf("field %s skipped: pointer to %s, use a nil-able slice or map", f.v.Name(), ft), t.Name, f.name)

				continue
			}
		}

		ref, err := s.typeRef(ft)
		if err != nil {
			s.diags.AddWarning(diagnostic.CodeUnmappedType,
				fmt.Sprintf("field %s skipped: %v", f.v.Name(), err), t.Name, f.name)

			continue
		}

		p := domain.Property{
			Name:     f.name,
			Field:    f.v.Name(),
			Type:     ref,
			Nullable: nullable,
		}

		if f.opts.Default != nil {
			p.Default = &domain.DefaultValueHint{Raw: *f.opts.Default}
		}

		t.Properties = append(t.Properties, p)
	}

	domain.NormalizeOrdinals(t.Properties)
	s.logger.Debug("discovered domain", "domain", t.QualifiedName(), "properties", len(t.Properties))

	return t
}

func (s *scan) transform(pass *domain.Pass, tr pendingTransform) {
	name := tr.obj.Name()

	opts, err := parseTransform(tr.args)
	if err != nil {
		s.diags.AddError(diagnostic.CodeInvalidDescriptor, err.Error(), name, "")
		return
	}

	hint := domain.TransformHint{Template: opts.Template}

	if opts.Input != "" {
		tv, err := types.Eval(tr.pkg.Fset, tr.pkg.Types, tr.pos, opts.Input)
		if err != nil || !tv.IsType() {
			s.diags.AddError(diagnostic.CodeUnknownType,
				fmt.Sprintf("transform input %s is not a type", opts.Input), name, "")

			return
		}

		if hint.Input, err = s.typeRef(tv.Type); err != nil {
			s.diags.AddError(diagnostic.CodeInvalidDescriptor,
				fmt.Sprintf("transform input %s: %v", opts.Input, err), name, "")

			return
		}
	}

	pass.Transforms[common.QualifiedName(tr.pkg.PkgPath, name)] = hint
}
