package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
	"dslbuilder-generator/internal/propschema"
)

const (
	fleetPkg = "example.com/fleet"
	corePkg  = DefaultCorePackage
)

func passengerDomain(listGroup bool, mode domain.MapGroupMode) domain.Type {
	props := []domain.Property{
		{Name: "name", Type: domain.String()},
		{Name: "age", Type: domain.Numeric("int")},
	}
	domain.NormalizeOrdinals(props)

	return domain.Type{
		PkgPath:    fleetPkg,
		PkgName:    "fleet",
		Name:       "Passenger",
		Properties: props,
		ListGroup:  listGroup,
		MapGroup:   mode,
	}
}

func starShipDomain() domain.Type {
	passenger := passengerDomain(false, domain.MapGroupSingle).Ref()

	props := []domain.Property{
		{Name: "name", Type: domain.String()},
		{Name: "crewMap", Type: domain.MapOf(domain.String(), passenger)},
		{Name: "notes", Type: domain.ListOf(domain.String()), Nullable: true},
		{Name: "description", Type: domain.String(), Nullable: true},
	}
	domain.NormalizeOrdinals(props)

	return domain.Type{PkgPath: fleetPkg, PkgName: "fleet", Name: "StarShip", Properties: props, IsRoot: true}
}

func testSettings() Settings {
	return DefaultSettings(fleetPkg)
}

func resolve(d domain.Type) []propschema.Schema {
	return propschema.NewResolver(nil, nil).ResolveAll(context.Background(), d)
}

func generateBuilder(t *testing.T, d domain.Type) ir.TypeSpec {
	t.Helper()

	spec, err := NewBuilderGenerator(testSettings()).Generate(context.Background(), d, resolve(d))
	require.NoError(t, err)
	require.NotNil(t, spec)

	return *spec
}

func lines(t *testing.T, fn ir.FunctionSpec) []string {
	t.Helper()

	out := make([]string, 0, len(fn.Statements))

	for _, st := range fn.Statements {
		switch s := st.(type) {
		case ir.Line:
			out = append(out, s.Code.String())
		case ir.Return:
			out = append(out, "return "+s.Value.String())
		default:
			t.Fatalf("unexpected statement %T", st)
		}
	}

	return out
}

func construct(t *testing.T, spec ir.TypeSpec) ir.Construct {
	t.Helper()

	build, ok := spec.Function("build")
	require.True(t, ok, "build function")
	require.Len(t, build.Statements, 1)

	c, ok := build.Statements[0].(ir.Construct)
	require.True(t, ok, "build returns a construct")

	return c
}
