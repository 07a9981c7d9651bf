package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/gen"
	"dslbuilder-generator/internal/ir"
)

const fleetPkg = "example.com/fleet"

func fleetPass() *domain.Pass {
	passenger := domain.Type{
		PkgPath:  fleetPkg,
		PkgName:  "fleet",
		Name:     "Passenger",
		MapGroup: domain.MapGroupSingle,
		Properties: []domain.Property{
			{Name: "name", Type: domain.String()},
			{Name: "age", Type: domain.Numeric("int"), Nullable: true},
		},
	}

	ship := domain.Type{
		PkgPath: fleetPkg,
		PkgName: "fleet",
		Name:    "StarShip",
		IsRoot:  true,
		Properties: []domain.Property{
			{Name: "name", Type: domain.String()},
			{Name: "crewMap", Type: domain.MapOf(domain.String(), passenger.Ref())},
			{Name: "notes", Type: domain.ListOf(domain.String()), Nullable: true},
			{Name: "description", Type: domain.String(), Nullable: true},
		},
	}

	engine := domain.Type{
		PkgPath: fleetPkg,
		PkgName: "fleet",
		Name:    "Engine",
		Properties: []domain.Property{
			{Name: "warp", Type: domain.Boolean(), Default: &domain.DefaultValueHint{Raw: "false"}},
		},
	}

	return &domain.Pass{Domains: []domain.Type{passenger, ship, engine}}
}

func renderFleet(t *testing.T, settings gen.Settings) map[string]string {
	t.Helper()

	out, diags := gen.NewPipeline(settings).Run(context.Background(), fleetPass())
	require.True(t, diags.IsValid(), diags.Error())

	files, err := NewRenderer(Layout{ProjectRoot: fleetPkg}).RenderAll(context.Background(), out.Files())
	require.NoError(t, err)

	rendered := make(map[string]string, len(files))
	for _, f := range files {
		rendered[f.Filename] = string(f.Content)
	}

	return rendered
}

func TestRender_Builder(t *testing.T) {
	src := renderFleet(t, gen.DefaultSettings(fleetPkg))["star_ship_dsl.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, "// "+HeaderComment)
	assert.Contains(t, src, "package fleet\n")
	assert.Contains(t, src, "type StarShipDslBuilderScope = func(*StarShipDslBuilder)")
	assert.Contains(t, src, "var _ dslcore.Builder[StarShip] = (*StarShipDslBuilder)(nil)")
	assert.Regexp(t, `\tname\s+\*string\n`, src)
	assert.Regexp(t, `\tcrewMap\s+map\[string\]Passenger\n`, src)
	assert.Regexp(t, `\tnotes\s+\[\]string\n`, src)
	assert.Contains(t, src, "func NewStarShipDslBuilder() *StarShipDslBuilder {\n\treturn &StarShipDslBuilder{}\n}")
	assert.Contains(t, src, "func (b *StarShipDslBuilder) Name(name string) {\n\tb.name = dslcore.Ptr(name)\n}")
	assert.Contains(t, src, "func (b *StarShipDslBuilder) Notes(notes ...string) {\n\tb.notes = slices.Clone(notes)\n}")
	assert.Contains(t, src, "func (b *StarShipDslBuilder) CrewMap(block func(*PassengerDslBuilderMapGroup[string])) {\n"+
		"\tgroup := NewPassengerDslBuilderMapGroup[string]()\n"+
		"\tblock(group)\n"+
		"\tb.crewMap = group.Items()\n}")
	assert.Contains(t, src, "// Available builder functions:")
	assert.Contains(t, src, "func (b *StarShipDslBuilder) Build() StarShip {\n"+
		`	return StarShip{Name: dslcore.RequireNotNull("name", b.name), `+
		`CrewMap: dslcore.RequireMapNotEmpty("crewMap", b.crewMap), Notes: b.notes, Description: b.description}`)
	assert.NotContains(t, src, "RequireCollectionNotEmpty")
}

func TestRender_MapGroup(t *testing.T) {
	src := renderFleet(t, gen.DefaultSettings(fleetPkg))["passenger_dsl.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, "type PassengerDslBuilderMapGroupScope[K comparable] = func(*PassengerDslBuilderMapGroup[K])")
	assert.Contains(t, src, "type PassengerDslBuilderMapGroup[K comparable] struct {")
	assert.Contains(t, src, "func NewPassengerDslBuilderMapGroup[K comparable]() *PassengerDslBuilderMapGroup[K] {\n"+
		"\treturn &PassengerDslBuilderMapGroup[K]{items: make(map[K]Passenger)}\n}")
	assert.Contains(t, src, "func (b *PassengerDslBuilderMapGroup[K]) Items() map[K]Passenger {\n"+
		"\treturn maps.Clone(b.items)\n}")
	assert.Contains(t, src, "func (b *PassengerDslBuilderMapGroup[K]) Passenger(key K, block func(*PassengerDslBuilder)) {\n"+
		"\tbuilder := NewPassengerDslBuilder()\n"+
		"\tblock(builder)\n"+
		"\tb.items[key] = builder.Build()\n}")
	assert.Contains(t, src, "Age: b.age")
}

func TestRender_BooleanDefault(t *testing.T) {
	src := renderFleet(t, gen.DefaultSettings(fleetPkg))["engine_dsl.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, "return &EngineDslBuilder{warp: dslcore.Ptr[bool](false)}")
	assert.Contains(t, src, "func (b *EngineDslBuilder) Warp(warpOpt ...bool) {\n"+
		"\twarp := false\n"+
		"\tif len(warpOpt) > 0 {\n"+
		"\t\twarp = warpOpt[0]\n"+
		"\t}\n"+
		"\tb.warp = dslcore.Ptr(warp)\n}")
}

func TestRender_RootAccessors(t *testing.T) {
	src := renderFleet(t, gen.DefaultSettings(fleetPkg))["root_dsl_accessor.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, "package dsl\n")
	assert.Contains(t, src, "// StarShip builds a StarShip configured by block.\n"+
		"func StarShip(block func(*fleet.StarShipDslBuilder)) fleet.StarShip {\n"+
		"\tbuilder := fleet.NewStarShipDslBuilder()\n"+
		"\tblock(builder)\n"+
		"\treturn builder.Build()\n}")
	assert.Contains(t, src, `"example.com/fleet"`)
}

func TestRender_Marker(t *testing.T) {
	settings := gen.DefaultSettings(fleetPkg)
	settings.Marker = fleetPkg + "/dsl.FleetDsl"

	src := renderFleet(t, settings)["star_ship_dsl.go"]

	assert.Contains(t, src, "//dsl:marker example.com/fleet/dsl.FleetDsl\ntype StarShipDslBuilder struct {")
}

func TestRender_ParameterNamesAvoidClashes(t *testing.T) {
	item := domain.Type{
		PkgPath: fleetPkg,
		PkgName: "fleet",
		Name:    "Item",
		Properties: []domain.Property{
			{Name: "type", Type: domain.String()},
			{Name: "b", Type: domain.String()},
			{Name: "maps", Type: domain.MapOf(domain.String(), domain.Numeric("int"))},
			{Name: "map", Type: domain.Boolean(), Default: &domain.DefaultValueHint{Raw: "false"}},
		},
	}

	out, diags := gen.NewPipeline(gen.DefaultSettings(fleetPkg)).Run(context.Background(), &domain.Pass{Domains: []domain.Type{item}})
	require.True(t, diags.IsValid(), diags.Error())

	file, err := NewRenderer(Layout{ProjectRoot: fleetPkg}).Render(out.Domains[0].File)
	require.NoError(t, err)

	src := string(file.Content)
	assert.Regexp(t, `\ttype_\s+\*string\n`, src)
	assert.Contains(t, src, "func (b *ItemDslBuilder) Type(type_ string) {\n\tb.type_ = dslcore.Ptr(type_)\n}")
	assert.Contains(t, src, "func (b *ItemDslBuilder) B(b_ string) {\n\tb.b = dslcore.Ptr(b_)\n}")
	assert.Contains(t, src, "func (b *ItemDslBuilder) Maps(maps_ map[string]int) {\n\tb.maps = maps.Clone(maps_)\n}")
	assert.Contains(t, src, "func (b *ItemDslBuilder) Map(mapOpt ...bool) {\n"+
		"\tmap_ := false\n"+
		"\tif len(mapOpt) > 0 {\n"+
		"\t\tmap_ = mapOpt[0]\n"+
		"\t}\n"+
		"\tb.map_ = dslcore.Ptr(map_)\n}")
	assert.Contains(t, src, `Type: dslcore.RequireNotNull("type", b.type_)`)
}

func TestRenderAll_KeepsRenderedFiles(t *testing.T) {
	broken, err := ir.NewFunctionBuilder().Name("broken").Line("%L", "}{").Build()
	require.NoError(t, err)

	bad, err := ir.NewFileBuilder().ClassName(fleetPkg, "BrokenDsl").Function(broken).Build()
	require.NoError(t, err)

	fine, err := ir.NewFunctionBuilder().Name("fine").Build()
	require.NoError(t, err)

	good, err := ir.NewFileBuilder().ClassName(fleetPkg, "FineDsl").Function(fine).Build()
	require.NoError(t, err)

	files, err := NewRenderer(Layout{ProjectRoot: fleetPkg}).RenderAll(context.Background(), []*ir.FileSpec{&bad, &good})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BrokenDsl")
	require.Len(t, files, 1)
	assert.Equal(t, "fine_dsl.go", files[0].Filename)
}

func TestRender_DebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	fn, err := ir.NewFunctionBuilder().Name("broken").Line("%L", "}{").Build()
	require.NoError(t, err)

	spec, err := ir.NewFileBuilder().ClassName(fleetPkg, "BrokenDsl").Function(fn).Build()
	require.NoError(t, err)

	r := NewRenderer(Layout{ProjectRoot: fleetPkg, OutputDir: dir})
	r.DebugUnformatted = true

	_, err = r.Render(&spec)
	require.Error(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "broken_dsl.unformatted.go"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Broken")
	assert.Contains(t, string(raw), "}{")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "star_ship_dsl.go", FileName("StarShipDsl"))
	assert.Equal(t, "root_dsl_accessor.go", FileName(gen.RootDslFileName))
}
