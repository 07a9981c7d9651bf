package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dslbuilder-generator/internal/propschema"
	"dslbuilder-generator/internal/render"
)

// errDiagnostics fails a command whose pass reported error diagnostics.
// The diagnostics themselves are already printed.
var errDiagnostics = errors.New("generation reported errors")

// options are the flags shared by every command.
type options struct {
	configFile  string
	descriptors []string
	patterns    []string
	logLevel    string
	logFormat   string
	outputDir   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "dslgen <command> [--descriptor <file.yaml>...] [--pkg <pattern>...]",
		Short:        "Generate fluent builders for Go domain types",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "HCL config file (default dslgen.hcl when present)")
	flags.StringArrayVarP(&opts.descriptors, "descriptor", "d", nil, "YAML domain descriptor")
	flags.StringArrayVarP(&opts.patterns, "pkg", "p", nil, "Go package pattern to scan for //dsl:generate")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory mapped to project_root_package")

	rootCmd.AddCommand(
		newGenCmd(opts),
		newAnalyzeCmd(opts),
		newDumpCmd(opts),
		newCheckCmd(opts),
	)

	return rootCmd
}

func newGenCmd(opts *options) *cobra.Command {
	var debugUnformatted bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate and write builder files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepare(cmd, opts)
			if err != nil || r == nil {
				return err
			}

			out, _ := r.generate()

			renderer := render.NewRenderer(r.cfg.Layout())
			renderer.DebugUnformatted = debugUnformatted

			// Domains that failed are reported; the rest are still written.
			paths, err := render.WriteFiles(r.render(renderer, out), r.cfg.Layout())
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			if r.failed {
				return errDiagnostics
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&debugUnformatted, "debug-unformatted", false,
		"keep the raw source of files that fail to format next to their output path")

	return cmd
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print the discovered domains and the schema of every property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepare(cmd, opts)
			if err != nil || r == nil {
				return err
			}

			resolver := propschema.NewResolver(r.pass.Transforms, r.diags)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tPROPERTY\tTYPE\tNULLABLE\tSCHEMA")

			for _, d := range r.pass.Domains {
				for _, s := range resolver.ResolveAll(r.ctx, d) {
					kind := s.Kind.String()
					if s.Fallback {
						kind += " (fallback)"
					}

					fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", d.Name, s.Name(), s.Type(), s.Nullable(), kind)
				}
			}

			if err := w.Flush(); err != nil {
				return err
			}

			if !r.report() {
				return errDiagnostics
			}

			return nil
		},
	}
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the generated code model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepare(cmd, opts)
			if err != nil || r == nil {
				return err
			}

			out, ok := r.generate()

			dumper := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
			}
			dumper.Fdump(cmd.OutOrStdout(), out.Files())

			if !ok {
				return errDiagnostics
			}

			return nil
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a full pass without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := prepare(cmd, opts)
			if err != nil || r == nil {
				return err
			}

			out, _ := r.generate()

			// Rendering catches code gofmt rejects.
			files := r.render(render.NewRenderer(r.cfg.Layout()), out)
			if r.failed {
				return errDiagnostics
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d files\n", len(files))

			return nil
		},
	}
}
