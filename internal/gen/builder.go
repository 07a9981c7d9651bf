package gen

import (
	"context"
	"fmt"

	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
	"dslbuilder-generator/internal/propschema"
)

// BuilderGenerator emits the builder type of a domain from its schemas.
type BuilderGenerator struct {
	settings Settings
	groups   []*GroupGenerator
}

// NewBuilderGenerator creates a BuilderGenerator with the list and map group
// generators.
func NewBuilderGenerator(settings Settings) *BuilderGenerator {
	return &BuilderGenerator{
		settings: settings,
		groups:   []*GroupGenerator{ListGroupGenerator(settings), MapGroupGenerator(settings)},
	}
}

// Generate returns the <Domain>DslBuilder type for d. schemas must be the
// resolved properties of d in declaration order.
func (g *BuilderGenerator) Generate(ctx context.Context, d domain.Type, schemas []propschema.Schema) (*ir.TypeSpec, error) {
	logger := ctxlog.FromContext(ctx).With("domain", d.Name)
	domainType := domainTypeName(d)

	tb := ir.NewTypeBuilder().
		Name(d.BuilderName()).
		Doc(fmt.Sprintf("%s builds %s values.", d.BuilderName(), d.Name)).
		SuperType(g.settings.contract(domainType))

	if marker, ok := g.settings.markerAnnotation(d.Marker); ok {
		tb.Annotation(marker)
	}

	args := make([]ir.ConstructArg, 0, len(schemas))

	for _, s := range schemas {
		e := schemaEmitter{settings: g.settings, schema: s}

		prop, err := e.property()
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", s.Name(), err)
		}

		accessor, err := e.accessor()
		if err != nil {
			return nil, fmt.Errorf("accessor %s: %w", s.Name(), err)
		}

		tb.Property(prop).Function(accessor)

		args = append(args, e.buildArg())

		logger.Debug("emitted property", "property", s.Name(), "schema", s.Kind.String())
	}

	build, err := ir.NewFunctionBuilder().
		Name("build").
		Override().
		Returns(domainType).
		Statement(ir.Construct{Type: domainType, Args: args}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build function: %w", err)
	}

	tb.Function(build)

	for _, group := range g.groups {
		nested, err := group.Generate(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.config.Namespace.TypeName, err)
		}

		if nested != nil {
			tb.Nested(*nested)
		}
	}

	spec, err := tb.Build()
	if err != nil {
		return nil, err
	}

	return &spec, nil
}

// GenerateFile returns the file holding the builder of d and the aliases of
// its block types.
func (g *BuilderGenerator) GenerateFile(ctx context.Context, d domain.Type, schemas []propschema.Schema) (*ir.FileSpec, error) {
	builder, err := g.Generate(ctx, d, schemas)
	if err != nil {
		return nil, err
	}

	aliases, err := g.scopeAliases(d)
	if err != nil {
		return nil, err
	}

	fb := ir.NewFileBuilder().ClassName(d.PkgPath, d.FileName())
	if d.PkgName != "" {
		fb.PackageName(d.PkgName)
	}

	for _, a := range aliases {
		fb.TypeAlias(a)
	}

	spec, err := fb.Type(*builder).Build()
	if err != nil {
		return nil, err
	}

	return &spec, nil
}

// scopeAliases names the block types of the builder and of its groups.
func (g *BuilderGenerator) scopeAliases(d domain.Type) ([]ir.TypeAliasSpec, error) {
	builder := ir.ClassName(d.PkgPath, d.BuilderName())

	aliases := []*ir.TypeAliasBuilder{
		ir.NewTypeAliasBuilder().
			Name(d.BuilderName() + "Scope").
			Type(ir.LambdaWithReceiver(builder, nil, nil)),
	}

	if d.ListGroup {
		aliases = append(aliases, ir.NewTypeAliasBuilder().
			Name(d.BuilderName()+listGroupNamespace.TypeName+"Scope").
			Type(ir.LambdaWithReceiver(builder.Nested(listGroupNamespace.TypeName), nil, nil)))
	}

	if d.MapGroup.Active() {
		key := ir.TypeVar(mapGroupNamespace.TypeVariable, &ir.Comparable)
		group := builder.Nested(mapGroupNamespace.TypeName).Parameterized(key)

		aliases = append(aliases, ir.NewTypeAliasBuilder().
			Name(d.BuilderName()+mapGroupNamespace.TypeName+"Scope").
			TypeVariable(key).
			Type(ir.LambdaWithReceiver(group, nil, nil)))
	}

	specs := make([]ir.TypeAliasSpec, 0, len(aliases))

	for _, a := range aliases {
		spec, err := a.Build()
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
