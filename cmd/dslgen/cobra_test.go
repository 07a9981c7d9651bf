package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleConfig     = "../../examples/starship/dslgen.hcl"
	exampleDescriptor = "../../examples/starship/fleet.yaml"
	examplePackage    = "../../examples/starship"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestGen_Descriptor(t *testing.T) {
	out := t.TempDir()

	stdout, stderr, err := execute(t, "gen", "--config", exampleConfig, "--descriptor", exampleDescriptor, "--output-dir", out)
	require.NoError(t, err, stderr)

	paths := strings.Fields(stdout)
	assert.Equal(t, []string{
		filepath.Join(out, "examples", "starship", "fleet_dsl.go"),
		filepath.Join(out, "examples", "starship", "star_ship_dsl.go"),
		filepath.Join(out, "examples", "starship", "passenger_dsl.go"),
		filepath.Join(out, "examples", "starship", "port_dsl.go"),
		filepath.Join(out, "dsl", "root_dsl_accessor.go"),
	}, paths)

	content, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(content), "// Code generated by dslgen. DO NOT EDIT.")
	assert.Contains(t, string(content), "package starship")
	assert.Contains(t, string(content), "StarShipDslBuilder")

	root, err := os.ReadFile(paths[4])
	require.NoError(t, err)
	assert.Contains(t, string(root), "func Fleet(")
}

func TestGen_Packages(t *testing.T) {
	out := t.TempDir()

	stdout, stderr, err := execute(t, "gen", "-c", exampleConfig, "--pkg", examplePackage, "-o", out)
	require.NoError(t, err, stderr)
	assert.Len(t, strings.Fields(stdout), 5)
	assert.FileExists(t, filepath.Join(out, "examples", "starship", "port_dsl.go"))
}

func TestCheck(t *testing.T) {
	stdout, stderr, err := execute(t, "check", "-c", exampleConfig, "-d", exampleDescriptor)
	require.NoError(t, err, stderr)
	assert.Equal(t, "ok: 5 files\n", stdout)
}

func TestAnalyze(t *testing.T) {
	stdout, stderr, err := execute(t, "analyze", "-c", exampleConfig, "-d", exampleDescriptor)
	require.NoError(t, err, stderr)

	lines := strings.Split(stdout, "\n")
	assert.Equal(t, []string{"DOMAIN", "PROPERTY", "TYPE", "NULLABLE", "SCHEMA"}, strings.Fields(lines[0]))
	assert.Contains(t, stdout, "SingleTransform")
	assert.Contains(t, stdout, "MapGroup")

	// Class has no builder and no transform.
	assert.Contains(t, stdout, "Default (fallback)")
	assert.Contains(t, stderr, "unmapped_type")
}

func TestDump(t *testing.T) {
	stdout, stderr, err := execute(t, "dump", "-c", exampleConfig, "-d", exampleDescriptor)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "ir.FileSpec")
	assert.Contains(t, stdout, "StarShipDslBuilder")
}

func TestGen_Ignored(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "dslgen.hcl", "ignored = true\n")

	stdout, _, err := execute(t, "gen", "-c", cfg, "-d", exampleDescriptor, "-o", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.NoDirExists(t, filepath.Join(dir, "examples"))
}

func TestGen_MissingSettings(t *testing.T) {
	t.Setenv("DSLGEN_PROJECT_ROOT_PACKAGE", "")
	t.Setenv("DSLGEN_DSL_BUILDER_PACKAGE", "")

	dir := t.TempDir()
	cfg := writeFile(t, dir, "dslgen.hcl", "output_dir = \".\"\n")

	_, _, err := execute(t, "gen", "-c", cfg, "-d", exampleDescriptor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_root_package")
	assert.Contains(t, err.Error(), "dsl_builder_package")
}

func TestGen_ErrorDiagnostics(t *testing.T) {
	dir := t.TempDir()
	desc := writeFile(t, dir, "bad.yaml", `
package: dslbuilder-generator/examples/starship
domains:
  - name: Fleet
    root: true
    properties:
      - ships: "[]StarShp"
  - name: StarShip
`)

	_, stderr, err := execute(t, "gen", "-c", exampleConfig, "-d", desc, "-o", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "error: [Fleet] ships: [unknown_type] unknown type StarShp (did you mean StarShip?)")
}

func TestGen_IsolatesFailingDomains(t *testing.T) {
	dir := t.TempDir()
	desc := writeFile(t, dir, "model.yaml", `
package: dslbuilder-generator/model
domains:
  - name: Good
    properties:
      - name: string
  - name: Unbound
    properties:
      - {name: stamp, type: string, transform: {input: string, template: "parse(%Q)"}}
  - name: Garbled
    properties:
      - {name: stamp, type: string, transform: {input: string, template: "}{%N"}}
`)

	stdout, stderr, err := execute(t, "gen", "-c", exampleConfig, "-d", desc, "-o", dir)
	require.ErrorIs(t, err, errDiagnostics)

	good := filepath.Join(dir, "model", "good_dsl.go")
	assert.Equal(t, []string{good}, strings.Fields(stdout))
	assert.FileExists(t, good)
	assert.NoFileExists(t, filepath.Join(dir, "model", "unbound_dsl.go"))
	assert.NoFileExists(t, filepath.Join(dir, "model", "garbled_dsl.go"))

	assert.Contains(t, stderr, "error: [Unbound]: [ir_construction_failed] builder not generated")
	assert.Contains(t, stderr, "error: [Garbled]: [ir_construction_failed] file not rendered")

	_, _, err = execute(t, "check", "-c", exampleConfig, "-d", desc)
	require.ErrorIs(t, err, errDiagnostics)
}

func TestGen_SourceFlags(t *testing.T) {
	_, _, err := execute(t, "check", "-c", exampleConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to generate")

	_, _, err = execute(t, "check", "-c", exampleConfig, "-d", exampleDescriptor, "-p", examplePackage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestGen_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "check", "-c", exampleConfig, "-d", exampleDescriptor, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
