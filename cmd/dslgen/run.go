package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dslbuilder-generator/internal/analyze"
	"dslbuilder-generator/internal/config"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/descriptor"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/gen"
	"dslbuilder-generator/internal/ir"
	"dslbuilder-generator/internal/render"
)

// run is one configured pass over the loaded domains.
type run struct {
	ctx   context.Context
	cmd   *cobra.Command
	cfg   config.BuilderConfig
	pass  *domain.Pass
	diags *diagnostic.Diagnostics

	// failed is set once an error diagnostic has been reported.
	failed bool
}

// prepare loads the configuration and the domains. It returns a nil run
// when the configuration is ignored.
func prepare(cmd *cobra.Command, opts *options) (*run, error) {
	cfg, err := config.Load(config.Options{File: opts.configFile})
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}

	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}

	logger, err := ctxlog.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	if cfg.Ignored {
		logger.Info("generation is ignored by configuration")
		return nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pass, diags, err := loadPass(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := &run{ctx: ctx, cmd: cmd, cfg: cfg, pass: pass, diags: diags}
	if !r.report() {
		return nil, errDiagnostics
	}

	return r, nil
}

func loadPass(ctx context.Context, opts *options) (*domain.Pass, *diagnostic.Diagnostics, error) {
	switch {
	case len(opts.descriptors) > 0 && len(opts.patterns) > 0:
		return nil, nil, errors.New("--descriptor and --pkg cannot be combined")
	case len(opts.descriptors) > 0:
		files, err := descriptor.LoadFiles(opts.descriptors...)
		if err != nil {
			return nil, nil, err
		}

		pass, diags := descriptor.Build(files...)

		return pass, diags, nil
	case len(opts.patterns) > 0:
		return analyze.NewAnalyzer().Load(ctx, opts.patterns...)
	default:
		return nil, nil, errors.New("nothing to generate, pass --descriptor or --pkg")
	}
}

// generate runs the pipeline and reports its diagnostics.
func (r *run) generate() (gen.Output, bool) {
	out, diags := gen.NewPipeline(r.cfg.Settings()).Run(r.ctx, r.pass)
	r.diags.Merge(*diags)

	return out, r.report()
}

// render renders every generated file on its own. A file that fails is
// reported as an error for its domain and left out; the others are kept.
func (r *run) render(renderer *render.Renderer, out gen.Output) []render.GeneratedFile {
	logger := ctxlog.FromContext(r.ctx)
	files := make([]render.GeneratedFile, 0, len(out.Domains)+1)

	one := func(spec *ir.FileSpec, domainName string) {
		file, err := renderer.Render(spec)
		if err != nil {
			r.diags.AddError(diagnostic.CodeIRConstructionFailed,
				fmt.Sprintf("file not rendered: %v", err), domainName, "")
			logger.Error("file not rendered", "file", spec.QualifiedName(), "error", err)

			return
		}

		files = append(files, file)
	}

	for _, d := range out.Domains {
		if d.File != nil {
			one(d.File, d.Domain.Name)
		}
	}

	if out.Root != nil {
		one(out.Root, "")
	}

	r.report()

	return files
}

// report prints the diagnostics collected since the previous report and
// tells whether the pass is still free of errors.
func (r *run) report() bool {
	w := r.cmd.ErrOrStderr()

	for _, d := range r.diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}

	if r.diags.HasErrors() {
		r.failed = true
	}

	r.diags = &diagnostic.Diagnostics{}

	return !r.failed
}
