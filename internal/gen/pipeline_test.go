package gen

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/propschema"
)

func fleetPass() *domain.Pass {
	return &domain.Pass{Domains: []domain.Type{
		passengerDomain(false, domain.MapGroupSingle),
		starShipDomain(),
	}}
}

func TestPipeline_Run(t *testing.T) {
	out, diags := NewPipeline(testSettings()).Run(context.Background(), fleetPass())

	require.True(t, diags.IsValid(), diags.Error())
	require.Len(t, out.Domains, 2)
	require.NotNil(t, out.Root)

	files := out.Files()
	require.Len(t, files, 3)
	assert.Equal(t, fleetPkg+".PassengerDsl", files[0].QualifiedName())
	assert.Equal(t, fleetPkg+".StarShipDsl", files[1].QualifiedName())
	assert.Equal(t, fleetPkg+"/dsl."+RootDslFileName, files[2].QualifiedName())

	ship := out.Domains[1]
	assert.Equal(t, []propschema.Kind{
		propschema.KindDefault, propschema.KindMapGroup, propschema.KindCollection, propschema.KindDefault,
	}, []propschema.Kind{ship.Schemas[0].Kind, ship.Schemas[1].Kind, ship.Schemas[2].Kind, ship.Schemas[3].Kind})

	passenger := out.Domains[0].File.Types[0]
	_, ok := passenger.NestedType("MapGroup")
	assert.True(t, ok)
}

func TestPipeline_Deterministic(t *testing.T) {
	p := NewPipeline(testSettings())

	first, _ := p.Run(context.Background(), fleetPass())
	second, _ := p.Run(context.Background(), fleetPass())

	assert.Equal(t, first, second)
}

func TestPipeline_IsolatesFailures(t *testing.T) {
	pass := fleetPass()
	pass.Domains = append(pass.Domains, domain.Type{
		PkgPath:    fleetPkg,
		Name:       "Broken",
		Properties: []domain.Property{{Name: "ghost"}},
	})

	out, diags := NewPipeline(testSettings()).Run(context.Background(), pass)

	require.Len(t, out.Domains, 3)
	assert.NotNil(t, out.Domains[0].File)
	assert.NotNil(t, out.Domains[1].File)
	assert.Nil(t, out.Domains[2].File)
	assert.NotNil(t, out.Root)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeIRConstructionFailed, diags.Errors[0].Code)
	assert.Equal(t, "Broken", diags.Errors[0].Domain)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnmappedType, diags.Warnings[0].Code)
}

func TestPipeline_NoRoots(t *testing.T) {
	pass := &domain.Pass{Domains: []domain.Type{passengerDomain(true, domain.MapGroupNone)}}

	out, diags := NewPipeline(testSettings()).Run(context.Background(), pass)

	assert.Nil(t, out.Root)
	assert.Len(t, out.Files(), 1)
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeNoRootDomains, diags.Infos[0].Code)
}

func TestPipeline_RootPackageClash(t *testing.T) {
	settings := testSettings()
	settings.RootPackage = fleetPkg

	out, diags := NewPipeline(settings).Run(context.Background(), fleetPass())

	assert.Nil(t, out.Root)
	assert.Len(t, out.Files(), 2)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "StarShip", diags.Errors[0].Domain)
}

func TestPipeline_DebugDomain(t *testing.T) {
	var buf bytes.Buffer

	logger, err := ctxlog.New(&buf, "text", "info")
	require.NoError(t, err)

	pass := fleetPass()
	pass.Domains[1].Debug = true

	ctx := ctxlog.WithLogger(context.Background(), logger)
	_, _ = NewPipeline(testSettings()).Run(ctx, pass)

	assert.Contains(t, buf.String(), "domain=StarShip")
	assert.NotContains(t, buf.String(), "domain=Passenger")
}
