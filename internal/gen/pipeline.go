package gen

import (
	"context"
	"fmt"
	"log/slog"

	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
	"dslbuilder-generator/internal/propschema"
)

// DomainOutput is the result of generating one domain.
type DomainOutput struct {
	Domain  domain.Type
	Schemas []propschema.Schema
	File    *ir.FileSpec
}

// Output is the result of one generation pass.
type Output struct {
	// Domains holds one entry per domain, in discovery order. File is nil
	// for domains whose generation failed.
	Domains []DomainOutput
	// Root is the root accessor file, nil when no domain is a root.
	Root *ir.FileSpec
}

// Files returns every generated file, the root file last.
func (o Output) Files() []*ir.FileSpec {
	files := make([]*ir.FileSpec, 0, len(o.Domains)+1)

	for _, d := range o.Domains {
		if d.File != nil {
			files = append(files, d.File)
		}
	}

	if o.Root != nil {
		files = append(files, o.Root)
	}

	return files
}

// Pipeline runs one generation pass. A Pipeline holds no state between runs.
type Pipeline struct {
	settings Settings
}

// NewPipeline creates a Pipeline.
func NewPipeline(settings Settings) *Pipeline {
	return &Pipeline{settings: settings}
}

// Run resolves and generates every domain of pass. A domain whose IR cannot
// be built is reported as an error diagnostic and skipped; the others are
// still generated.
func (p *Pipeline) Run(ctx context.Context, pass *domain.Pass) (Output, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	resolver := propschema.NewResolver(pass.Transforms, diags)
	builders := NewBuilderGenerator(p.settings)
	logger := ctxlog.FromContext(ctx)

	var out Output

	for _, d := range pass.Domains {
		dctx := ctx
		if d.Debug {
			dctx = ctxlog.WithLogger(ctx, ctxlog.WithMinLevel(logger, slog.LevelDebug))
		}

		schemas := resolver.ResolveAll(dctx, d)
		result := DomainOutput{Domain: d, Schemas: schemas}

		file, err := builders.GenerateFile(dctx, d, schemas)
		if err != nil {
			diags.AddError(diagnostic.CodeIRConstructionFailed,
				fmt.Sprintf("builder not generated: %v", err), d.Name, "")
			logger.Error("builder not generated", "domain", d.Name, "error", err)
		} else {
			result.File = file
		}

		out.Domains = append(out.Domains, result)
	}

	roots := pass.Roots()
	if len(roots) == 0 {
		if len(pass.Domains) > 0 {
			diags.AddInfo(diagnostic.CodeNoRootDomains, "no domain is marked as root, root accessors not generated", "", "")
		}

		return out, diags
	}

	for _, d := range roots {
		if d.PkgPath == p.settings.RootDslPackage() {
			diags.AddError(diagnostic.CodeIRConstructionFailed,
				fmt.Sprintf("root accessor package %s is the package of the domain", d.PkgPath), d.Name, "")

			return out, diags
		}
	}

	root, err := NewRootAccessorGenerator(p.settings).Generate(ctx, roots)
	if err != nil {
		diags.AddError(diagnostic.CodeIRConstructionFailed, fmt.Sprintf("root accessors not generated: %v", err), "", "")
		logger.Error("root accessors not generated", "error", err)

		return out, diags
	}

	out.Root = root

	return out, diags
}
