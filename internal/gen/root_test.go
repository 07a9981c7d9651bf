package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
)

func TestRootAccessorGenerator_Generate(t *testing.T) {
	beacon := domain.Type{PkgPath: fleetPkg + "/nav", Name: "Beacon", IsRoot: true}

	file, err := NewRootAccessorGenerator(testSettings()).Generate(context.Background(),
		[]domain.Type{starShipDomain(), beacon})
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, fleetPkg+"/dsl."+RootDslFileName, file.QualifiedName())
	assert.Equal(t, "dsl", file.PackageName)
	require.Len(t, file.Functions, 2)

	ship := file.Functions[0]
	assert.Equal(t, "starShip", ship.Name)
	require.Len(t, ship.Params, 1)
	assert.Equal(t, fleetPkg+".StarShipDslBuilder.() -> Unit", ship.Params[0].Type.String())
	require.NotNil(t, ship.Returns)
	assert.Equal(t, fleetPkg+".StarShip", ship.Returns.String())
	assert.Equal(t, []string{
		"builder := " + fleetPkg + ".StarShipDslBuilder()",
		"block(builder)",
		"return builder.Build()",
	}, lines(t, ship))

	assert.Equal(t, "beacon", file.Functions[1].Name)

	assert.Equal(t, []ir.Import{
		{Package: fleetPkg, Symbol: "StarShip"},
		{Package: fleetPkg, Symbol: "StarShipDslBuilder"},
		{Package: fleetPkg + "/nav", Symbol: "Beacon"},
		{Package: fleetPkg + "/nav", Symbol: "BeaconDslBuilder"},
	}, file.Imports)
}

func TestRootAccessorGenerator_NoRoots(t *testing.T) {
	file, err := NewRootAccessorGenerator(testSettings()).Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestRootAccessorGenerator_PackageOverride(t *testing.T) {
	settings := testSettings()
	settings.RootPackage = "example.com/app/entry"

	file, err := NewRootAccessorGenerator(settings).Generate(context.Background(), []domain.Type{starShipDomain()})
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/entry", file.Package)
	assert.Equal(t, "entry", file.PackageName)
}
