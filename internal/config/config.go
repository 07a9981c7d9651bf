package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"

	"dslbuilder-generator/internal/gen"
	"dslbuilder-generator/internal/render"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "dslgen.hcl"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DSLGEN_"

// BuilderConfig holds the settings of one generation pass.
type BuilderConfig struct {
	// ProjectRootPackage is the import path every domain lives under.
	ProjectRootPackage string `hcl:"project_root_package,optional"`
	// DslBuilderPackage provides the Builder contract and runtime helpers.
	DslBuilderPackage string `hcl:"dsl_builder_package,optional"`
	// RootDslFilePackage receives the root accessors. Defaults to
	// <project_root_package>/dsl.
	RootDslFilePackage string `hcl:"root_dsl_file_package,optional"`
	// DslMarker is the qualified name of the default DSL marker.
	DslMarker string `hcl:"dsl_marker,optional"`
	// Ignored turns the pass into a no-op.
	Ignored   bool   `hcl:"ignored,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
}

// Default returns the configuration before any source is applied.
func Default() BuilderConfig {
	return BuilderConfig{
		OutputDir: ".",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// MissingKeyError reports a required setting with no value.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required setting %s (env %s%s)", e.Key, EnvPrefix, strings.ToUpper(e.Key))
}

// Validate reports every missing required setting. Ignored configurations
// are always valid.
func (c BuilderConfig) Validate() error {
	if c.Ignored {
		return nil
	}

	var errs []error

	if strings.TrimSpace(c.ProjectRootPackage) == "" {
		errs = append(errs, &MissingKeyError{Key: "project_root_package"})
	}

	if strings.TrimSpace(c.DslBuilderPackage) == "" {
		errs = append(errs, &MissingKeyError{Key: "dsl_builder_package"})
	}

	return errors.Join(errs...)
}

// Settings returns the generator settings.
func (c BuilderConfig) Settings() gen.Settings {
	return gen.Settings{
		ProjectRoot: c.ProjectRootPackage,
		CorePackage: c.DslBuilderPackage,
		RootPackage: c.RootDslFilePackage,
		Marker:      c.DslMarker,
	}
}

// Layout returns the placement of generated files.
func (c BuilderConfig) Layout() render.Layout {
	return render.Layout{ProjectRoot: c.ProjectRootPackage, OutputDir: c.OutputDir}
}

// Options select the sources of Load.
type Options struct {
	// File is the HCL file. Empty means DefaultFile, skipped when absent.
	File string
	// DotEnv lists .env files. Empty means ".env", skipped when absent.
	DotEnv []string
	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
	// Environ lists the environment exposed to HCL. Defaults to os.Environ.
	Environ func() []string
}

// Load reads the HCL file and the environment on top of Default.
func Load(opts Options) (BuilderConfig, error) {
	if len(opts.DotEnv) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(opts.DotEnv...); err != nil {
		return BuilderConfig{}, fmt.Errorf("loading env files: %w", err)
	}

	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}

	if opts.Environ == nil {
		opts.Environ = os.Environ
	}

	cfg := Default()

	file := opts.File
	explicit := file != ""

	if !explicit {
		file = DefaultFile
	}

	if _, err := os.Stat(file); err == nil {
		if err := decodeFile(file, opts.Environ(), &cfg); err != nil {
			return BuilderConfig{}, err
		}
	} else if explicit {
		return BuilderConfig{}, fmt.Errorf("reading config file %s: %w", file, err)
	}

	if err := applyEnv(&cfg, opts.Lookup); err != nil {
		return BuilderConfig{}, err
	}

	return cfg, nil
}

// Parse decodes HCL source on top of Default.
func Parse(src []byte, filename string, environ []string) (BuilderConfig, error) {
	cfg := Default()

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return BuilderConfig{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	if err := decodeBody(file, filename, environ, &cfg); err != nil {
		return BuilderConfig{}, err
	}

	return cfg, nil
}

func decodeFile(path string, environ []string, cfg *BuilderConfig) error {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config %s: %w", path, diags)
	}

	return decodeBody(file, path, environ, cfg)
}

func decodeBody(file *hcl.File, name string, environ []string, cfg *BuilderConfig) error {
	diags := gohcl.DecodeBody(file.Body, evalContext(environ), cfg)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode config %s: %w", name, diags)
	}

	return nil
}

// evalContext exposes environ as the env object.
func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func applyEnv(cfg *BuilderConfig, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PROJECT_ROOT_PACKAGE":  &cfg.ProjectRootPackage,
		"DSL_BUILDER_PACKAGE":   &cfg.DslBuilderPackage,
		"ROOT_DSL_FILE_PACKAGE": &cfg.RootDslFilePackage,
		"DSL_MARKER":            &cfg.DslMarker,
		"OUTPUT_DIR":            &cfg.OutputDir,
		"LOG_LEVEL":             &cfg.LogLevel,
		"LOG_FORMAT":            &cfg.LogFormat,
	}

	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPrefix + "IGNORED"); ok && strings.TrimSpace(v) != "" {
		ignored, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sIGNORED: %w", EnvPrefix, err)
		}

		cfg.Ignored = ignored
	}

	return nil
}
