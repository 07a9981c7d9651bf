package propschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
)

const fleetPkg = "example.com/fleet"

func passenger(mode domain.MapGroupMode) *domain.TypeRef {
	return domain.Type{
		PkgPath:    fleetPkg,
		Name:       "Passenger",
		MapGroup:   mode,
		Properties: []domain.Property{{Name: "name"}, {Name: "age"}},
	}.Ref()
}

func starShip(mode domain.MapGroupMode) domain.Type {
	props := []domain.Property{
		{Name: "name", Type: domain.String()},
		{Name: "crewMap", Type: domain.MapOf(domain.String(), passenger(mode))},
		{Name: "notes", Type: domain.ListOf(domain.String()), Nullable: true},
		{Name: "description", Type: domain.String(), Nullable: true},
	}
	domain.NormalizeOrdinals(props)

	return domain.Type{PkgPath: fleetPkg, Name: "StarShip", Properties: props, IsRoot: true}
}

func kinds(schemas []Schema) []Kind {
	out := make([]Kind, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, s.Kind)
	}

	return out
}

func TestResolver_StarShip(t *testing.T) {
	r := NewResolver(nil, nil)

	schemas := r.ResolveAll(context.Background(), starShip(domain.MapGroupSingle))
	require.Len(t, schemas, 4)

	assert.Equal(t, []Kind{KindDefault, KindMapGroup, KindCollection, KindDefault}, kinds(schemas))
	assert.False(t, schemas[0].Nullable())
	assert.True(t, schemas[2].Nullable())
	assert.True(t, schemas[3].Nullable())
	assert.Equal(t, "Passenger", schemas[1].Value.Name)
	assert.Equal(t, IterableMap, schemas[1].Iterable())
	assert.Equal(t, IterableCollection, schemas[2].Iterable())
	assert.True(t, r.Diagnostics().IsValid())
	assert.Empty(t, r.Diagnostics().Warnings)
}

func TestResolver_MapGroupModes(t *testing.T) {
	for _, mode := range []domain.MapGroupMode{domain.MapGroupSingle, domain.MapGroupList, domain.MapGroupAll} {
		t.Run(mode.String(), func(t *testing.T) {
			schemas := NewResolver(nil, nil).ResolveAll(context.Background(), starShip(mode))
			assert.Equal(t, KindMapGroup, schemas[1].Kind)
		})
	}

	r := NewResolver(nil, nil)
	schemas := r.ResolveAll(context.Background(), starShip(domain.MapGroupNone))
	assert.Equal(t, KindMap, schemas[1].Kind)
	require.Len(t, r.Diagnostics().Infos, 1)
	assert.Equal(t, diagnostic.CodeGroupNotEnabled, r.Diagnostics().Infos[0].Code)
}

func TestResolver_Idempotent(t *testing.T) {
	ship := starShip(domain.MapGroupAll)
	r := NewResolver(nil, nil)

	for _, p := range ship.Properties {
		first := r.Resolve(context.Background(), ship, p)
		second := r.Resolve(context.Background(), ship, p)
		assert.Equal(t, first, second, p.Name)

		// Position does not influence the outcome.
		moved := p
		moved.Ordinal = 42
		moved.IsLast = !p.IsLast
		assert.Equal(t, first.Kind, r.Resolve(context.Background(), ship, moved).Kind, p.Name)
	}
}

func TestResolver_Group(t *testing.T) {
	ship := domain.Type{
		PkgPath:    fleetPkg,
		Name:       "StarShip",
		ListGroup:  true,
		Properties: []domain.Property{{Name: "name"}},
	}
	fleet := domain.Type{PkgPath: fleetPkg, Name: "Fleet"}

	s := NewResolver(nil, nil).Resolve(context.Background(), fleet,
		domain.Property{Name: "ships", Type: domain.ListOf(ship.Ref())})

	assert.Equal(t, KindGroup, s.Kind)
	assert.Equal(t, "StarShip", s.Elem.Name)
	assert.Equal(t, "Available builder functions:\n  - [StarShipDslBuilder.Name]", s.Doc)
}

func TestResolver_GenerableElementWithoutGroup(t *testing.T) {
	ship := domain.Type{PkgPath: fleetPkg, Name: "StarShip"}
	fleet := domain.Type{PkgPath: fleetPkg, Name: "Fleet"}
	r := NewResolver(nil, nil)

	s := r.Resolve(context.Background(), fleet, domain.Property{Name: "ships", Type: domain.ListOf(ship.Ref())})

	assert.Equal(t, KindCollection, s.Kind)
	require.Len(t, r.Diagnostics().Infos, 1)
}

func TestResolver_Scalars(t *testing.T) {
	d := domain.Type{Name: "Engine"}
	r := NewResolver(nil, nil)

	tests := []struct {
		typ  *domain.TypeRef
		want Kind
	}{
		{domain.Boolean(), KindBoolean},
		{domain.Numeric("int64"), KindDefault},
		{domain.Numeric("float32"), KindDefault},
		{domain.Char(), KindDefault},
		{domain.String(), KindDefault},
		{domain.MapOf(domain.String(), domain.Numeric("int")), KindMap},
		{domain.ListOf(domain.Numeric("int")), KindCollection},
	}

	for _, tt := range tests {
		s := r.Resolve(context.Background(), d, domain.Property{Name: "p", Type: tt.typ})
		assert.Equal(t, tt.want, s.Kind, tt.typ.String())
		assert.False(t, s.Fallback)
	}
}

func TestResolver_Builder(t *testing.T) {
	engine := domain.Type{PkgPath: "example.com/parts", Name: "Engine", Properties: []domain.Property{{Name: "power"}}}

	s := NewResolver(nil, nil).Resolve(context.Background(), domain.Type{Name: "StarShip"},
		domain.Property{Name: "engine", Type: engine.Ref(), Nullable: true})

	assert.Equal(t, KindBuilder, s.Kind)
	assert.Equal(t, "Engine", s.Nested.Name)
	assert.Contains(t, s.Doc, "[EngineDslBuilder.Power]")
}

func TestResolver_TransformWins(t *testing.T) {
	duration := domain.Nominal("time", "Duration")
	engine := domain.Type{PkgPath: "example.com/parts", Name: "Engine"}.Ref()

	r := NewResolver(nil, nil)

	s := r.Resolve(context.Background(), domain.Type{Name: "StarShip"}, domain.Property{
		Name:      "engine",
		Type:      engine,
		Transform: &domain.TransformHint{Input: domain.String()},
	})
	assert.Equal(t, KindSingleTransform, s.Kind)

	r = NewResolver(map[string]domain.TransformHint{
		"time.Duration": {Input: domain.Numeric("int64"), Template: "%T(%N) * %T(1000000)"},
	}, nil)

	s = r.Resolve(context.Background(), domain.Type{Name: "StarShip"}, domain.Property{Name: "timeout", Type: duration})
	require.Equal(t, KindSingleTransform, s.Kind)
	assert.Equal(t, "int64", s.Transform.Input.Name)
}

func TestResolver_TransformMissingInput(t *testing.T) {
	r := NewResolver(nil, nil)

	s := r.Resolve(context.Background(), domain.Type{Name: "StarShip"}, domain.Property{
		Name:      "launched",
		Type:      domain.Nominal("time", "Time"),
		Transform: &domain.TransformHint{Template: "%T(%N)"},
	})

	assert.Equal(t, KindDefault, s.Kind)
	assert.True(t, s.Fallback)
	assert.True(t, r.Diagnostics().IsValid())
	require.Len(t, r.Diagnostics().Warnings, 1)

	w := r.Diagnostics().Warnings[0]
	assert.Equal(t, diagnostic.CodeTransformInputMissing, w.Code)
	assert.Equal(t, "StarShip", w.Domain)
	assert.Equal(t, "launched", w.Property)
}

func TestResolver_UnmappedFallsBack(t *testing.T) {
	r := NewResolver(nil, nil)

	s := r.Resolve(context.Background(), domain.Type{Name: "StarShip"},
		domain.Property{Name: "launched", Type: domain.Nominal("time", "Time")})

	assert.Equal(t, KindDefault, s.Kind)
	assert.True(t, s.Fallback)
	require.Len(t, r.Diagnostics().Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnmappedType, r.Diagnostics().Warnings[0].Code)
}

func TestResolver_ConflictingCollectionSignals(t *testing.T) {
	r := NewResolver(nil, nil)

	s := r.Resolve(context.Background(), domain.Type{Name: "StarShip"},
		domain.Property{Name: "notes", Type: domain.Nominal("builtin", "list")})

	assert.Equal(t, KindDefault, s.Kind)
	require.True(t, r.Diagnostics().HasErrors())
	assert.Equal(t, diagnostic.CodeAmbiguousCollectionSignal, r.Diagnostics().Errors[0].Code)

	s = r.Resolve(context.Background(), domain.Type{Name: "StarShip"},
		domain.Property{Name: "crew", Type: domain.MapOf(domain.String(), nil)})
	assert.Equal(t, KindDefault, s.Kind)
	assert.Len(t, r.Diagnostics().Errors, 2)
}
