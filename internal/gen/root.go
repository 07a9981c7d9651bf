package gen

import (
	"context"
	"fmt"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
)

// RootAccessorGenerator emits the entry point functions of root domains.
type RootAccessorGenerator struct {
	settings Settings
}

// NewRootAccessorGenerator creates a RootAccessorGenerator.
func NewRootAccessorGenerator(settings Settings) *RootAccessorGenerator {
	return &RootAccessorGenerator{settings: settings}
}

// Generate returns one file with a function per root, in the given order.
// It returns nil when roots is empty.
func (g *RootAccessorGenerator) Generate(ctx context.Context, roots []domain.Type) (*ir.FileSpec, error) {
	if len(roots) == 0 {
		return nil, nil
	}

	logger := ctxlog.FromContext(ctx)
	fb := ir.NewFileBuilder().ClassName(g.settings.RootDslPackage(), RootDslFileName)

	for _, d := range roots {
		fn, err := g.accessor(d)
		if err != nil {
			return nil, fmt.Errorf("root accessor %s: %w", d.Name, err)
		}

		fb.Function(fn)
		logger.Debug("root accessor", "domain", d.Name, "function", fn.Name)
	}

	spec, err := fb.Build()
	if err != nil {
		return nil, err
	}

	return &spec, nil
}

func (g *RootAccessorGenerator) accessor(d domain.Type) (ir.FunctionSpec, error) {
	builder := ir.ClassName(d.PkgPath, d.BuilderName())

	return ir.NewFunctionBuilder().
		Name(common.LowerCamel(d.Name)).
		Doc(fmt.Sprintf("%s builds a %s configured by block.", common.LowerCamel(d.Name), d.Name)).
		ParamBuilder(blockParam(builder)).
		Returns(domainTypeName(d)).
		Line("builder := %C", builder).
		Line("block(builder)").
		Return("builder.Build()").
		Build()
}
