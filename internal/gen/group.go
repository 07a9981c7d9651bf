package gen

import (
	"context"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
)

// GroupNamespace names the nested container type.
type GroupNamespace struct {
	// CheckName labels the opt-in decision in logs.
	CheckName string
	// TypeName is the simple name of the nested type.
	TypeName string
	// TypeVariable, when set, makes the nested type generic over its key.
	TypeVariable string
}

// GroupTemplates are the code templates of a container kind.
type GroupTemplates struct {
	// Prop initializes the backing collection; %T is its type.
	Prop string
	// ItemsReturn returns the snapshot; %M is the clone function, %P the
	// backing collection.
	ItemsReturn string
	// BuilderAdd stores a built element; %P is the backing collection and %L
	// the built value.
	BuilderAdd string
}

// GroupConfig parameterizes GroupGenerator for one container kind.
type GroupConfig struct {
	Namespace GroupNamespace
	Templates GroupTemplates
	// Snapshot copies the backing collection in items().
	Snapshot ir.MemberName
	// IsGroup reports whether a domain opts into this container kind.
	IsGroup func(d domain.Type) bool
	// PropertyType and BuiltType give the backing and returned collection
	// types of the element type, parameterized by the type variable if any.
	PropertyType func(typeVar *ir.TypeName, element ir.TypeName) ir.TypeName
	BuiltType    func(typeVar *ir.TypeName, element ir.TypeName) ir.TypeName
}

var (
	listGroupNamespace = GroupNamespace{CheckName: "isListGroup", TypeName: "Group"}
	mapGroupNamespace  = GroupNamespace{CheckName: "isMapGroup", TypeName: "MapGroup", TypeVariable: "K"}
)

// ListGroupConfig returns the configuration of list groups.
func ListGroupConfig() GroupConfig {
	return GroupConfig{
		Namespace: listGroupNamespace,
		Templates: GroupTemplates{
			Prop:        "make(%T, 0)",
			ItemsReturn: "%M(%P)",
			BuilderAdd:  "%P = append(%P, %L)",
		},
		Snapshot: slicesClone,
		IsGroup:  func(d domain.Type) bool { return d.ListGroup },
		PropertyType: func(_ *ir.TypeName, element ir.TypeName) ir.TypeName {
			return ir.List(element)
		},
		BuiltType: func(_ *ir.TypeName, element ir.TypeName) ir.TypeName {
			return ir.List(element)
		},
	}
}

// MapGroupConfig returns the configuration of map groups.
func MapGroupConfig() GroupConfig {
	return GroupConfig{
		Namespace: mapGroupNamespace,
		Templates: GroupTemplates{
			Prop:        "make(%T)",
			ItemsReturn: "%M(%P)",
			BuilderAdd:  "%P[key] = %L",
		},
		Snapshot: mapsClone,
		IsGroup:  func(d domain.Type) bool { return d.MapGroup.Active() },
		PropertyType: func(typeVar *ir.TypeName, element ir.TypeName) ir.TypeName {
			return ir.Map(*typeVar, element)
		},
		BuiltType: func(typeVar *ir.TypeName, element ir.TypeName) ir.TypeName {
			return ir.Map(*typeVar, element)
		},
	}
}

// GroupGenerator emits the nested container type through which a block
// builds several elements of a domain type.
type GroupGenerator struct {
	config   GroupConfig
	settings Settings
}

// NewGroupGenerator creates a GroupGenerator.
func NewGroupGenerator(config GroupConfig, settings Settings) *GroupGenerator {
	return &GroupGenerator{config: config, settings: settings}
}

// ListGroupGenerator returns the generator of nested Group types.
func ListGroupGenerator(settings Settings) *GroupGenerator {
	return NewGroupGenerator(ListGroupConfig(), settings)
}

// MapGroupGenerator returns the generator of nested MapGroup types.
func MapGroupGenerator(settings Settings) *GroupGenerator {
	return NewGroupGenerator(MapGroupConfig(), settings)
}

// Generate returns the nested type for d, or nil when d does not opt in.
func (g *GroupGenerator) Generate(ctx context.Context, d domain.Type) (*ir.TypeSpec, error) {
	ns := g.config.Namespace
	isGroup := g.config.IsGroup(d)

	ctxlog.FromContext(ctx).Debug("group decision", "domain", d.Name, ns.CheckName, isGroup)

	if !isGroup {
		return nil, nil
	}

	element := domainTypeName(d)
	builder := ir.ClassName(d.PkgPath, d.BuilderName())

	var typeVar *ir.TypeName

	if ns.TypeVariable != "" {
		v := ir.TypeVar(ns.TypeVariable, &ir.Comparable)
		typeVar = &v
	}

	backing := g.config.PropertyType(typeVar, element)
	built := g.config.BuiltType(typeVar, element)

	items, err := ir.NewPropertyBuilder().
		Name("items").
		Type(backing).
		Modifier(ir.ModifierPrivate).
		Initializer(expand(g.config.Templates.Prop, map[byte]any{'T': backing})).
		Build()
	if err != nil {
		return nil, err
	}

	itemsFn, err := ir.NewFunctionBuilder().
		Name("items").
		Returns(built).
		Statement(ir.Return{Value: expand(g.config.Templates.ItemsReturn, map[byte]any{
			'M': g.config.Snapshot,
			'P': "items",
		})}).
		Build()
	if err != nil {
		return nil, err
	}

	add := ir.NewFunctionBuilder().Name(common.LowerCamel(d.Name))
	if typeVar != nil {
		add.ParamBuilder(ir.NewParameterBuilder().Name("key").Type(*typeVar))
	}

	addFn, err := add.
		ParamBuilder(blockParam(builder)).
		Line("builder := %C", builder).
		Line("block(builder)").
		Statement(ir.Line{Code: expand(g.config.Templates.BuilderAdd, map[byte]any{
			'P': "items",
			'L': ir.Code("builder.Build()"),
		})}).
		Build()
	if err != nil {
		return nil, err
	}

	tb := ir.NewTypeBuilder().
		Name(ns.TypeName).
		Doc(ns.TypeName + " collects " + d.Name + " values built by blocks.").
		Property(items).
		Function(itemsFn).
		Function(addFn)

	if typeVar != nil {
		tb.TypeVariable(*typeVar)
	}

	if marker, ok := g.settings.markerAnnotation(d.Marker); ok {
		tb.Annotation(marker)
	}

	spec, err := tb.Build()
	if err != nil {
		return nil, err
	}

	return &spec, nil
}
