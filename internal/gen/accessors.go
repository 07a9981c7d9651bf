package gen

import (
	"fmt"
	"regexp"
	"strings"

	"dslbuilder-generator/internal/domain"
	"dslbuilder-generator/internal/ir"
	"dslbuilder-generator/internal/propschema"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// schemaEmitter turns one schema into builder members.
type schemaEmitter struct {
	settings Settings
	schema   propschema.Schema
}

// access returns the visibility of the backing property.
func (e schemaEmitter) access() ir.Modifier {
	switch e.schema.Kind {
	case propschema.KindBoolean, propschema.KindDefault:
		return ir.ModifierPublic
	case propschema.KindGroup, propschema.KindMapGroup:
		return ir.ModifierPrivate
	case propschema.KindMap, propschema.KindCollection, propschema.KindBuilder, propschema.KindSingleTransform:
		return ir.ModifierProtected
	default:
		panic(fmt.Sprintf("unhandled schema kind %s", e.schema.Kind))
	}
}

// backingType returns the nullable type of the builder property.
func (e schemaEmitter) backingType() (ir.TypeName, error) {
	s := e.schema

	switch s.Kind {
	case propschema.KindBoolean:
		return ir.Bool.Copy(true), nil
	case propschema.KindDefault, propschema.KindBuilder, propschema.KindSingleTransform:
		t, err := typeName(s.Type())
		if err != nil {
			return ir.TypeName{}, err
		}

		return t.Copy(true), nil
	case propschema.KindCollection, propschema.KindGroup:
		elem, err := typeName(s.Elem)
		if err != nil {
			return ir.TypeName{}, err
		}

		return ir.List(elem).Copy(true), nil
	case propschema.KindMap, propschema.KindMapGroup:
		key, err := typeName(s.Key)
		if err != nil {
			return ir.TypeName{}, err
		}

		value, err := typeName(s.Value)
		if err != nil {
			return ir.TypeName{}, err
		}

		return ir.Map(key, value).Copy(true), nil
	default:
		return ir.TypeName{}, fmt.Errorf("unhandled schema kind %s", s.Kind)
	}
}

// pointerBacked reports whether the backing property is a pointer to the
// value rather than a nil-able container.
func (e schemaEmitter) pointerBacked() bool {
	return e.schema.Iterable() == propschema.IterableNone
}

// defaultValue renders the default value hint, if any.
func (e schemaEmitter) defaultValue() (ir.CodeBlock, bool) {
	h := e.schema.Property.Default
	if h == nil {
		return ir.CodeBlock{}, false
	}

	vt := h.ValueType
	if vt == nil {
		vt = e.schema.Type()
	}

	switch {
	case vt != nil && vt.Kind == domain.KindString:
		return ir.Code("%S", h.Raw), true
	case vt != nil && vt.Kind == domain.KindNominal && vt.PkgPath != "" && identRe.MatchString(h.Raw):
		return ir.Code("%M", ir.Member(vt.PkgPath, h.Raw)), true
	default:
		return ir.Code("%L", h.Raw), true
	}
}

func (e schemaEmitter) property() (ir.PropertySpec, error) {
	backing, err := e.backingType()
	if err != nil {
		return ir.PropertySpec{}, err
	}

	b := ir.NewPropertyBuilder().
		Name(e.schema.Name()).
		Type(backing).
		Modifier(e.access()).
		Mutable()

	if value, ok := e.defaultValue(); ok {
		if e.pointerBacked() {
			value = ir.Code("%M[%T](%L)", e.settings.member(ptr), backing.Copy(false), value)
		}

		b.Initializer(value)
	}

	return b.Build()
}

func (e schemaEmitter) accessor() (ir.FunctionSpec, error) {
	s := e.schema
	name := s.Name()
	fn := ir.NewFunctionBuilder().Name(name).Doc(s.Doc)

	switch s.Kind {
	case propschema.KindBoolean:
		def := ir.Code("true")
		if value, ok := e.defaultValue(); ok {
			def = value
		}

		fn.ParamBuilder(ir.NewParameterBuilder().Name(name).Type(ir.Bool).Default(def)).
			Line("%P = %M(%N)", name, e.settings.member(ptr), name)

	case propschema.KindDefault:
		t, err := typeName(s.Type())
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		fn.ParamBuilder(ir.NewParameterBuilder().Name(name).Type(t)).
			Line("%P = %M(%N)", name, e.settings.member(ptr), name)

	case propschema.KindMap:
		backing, err := e.backingType()
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		fn.ParamBuilder(ir.NewParameterBuilder().Name(name).Type(backing.Copy(false))).
			Line("%P = %M(%N)", name, mapsClone, name)

	case propschema.KindCollection:
		elem, err := typeName(s.Elem)
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		fn.ParamBuilder(ir.NewParameterBuilder().Name(name).Type(elem).Vararg()).
			Line("%P = %M(%N)", name, slicesClone, name)

	case propschema.KindGroup:
		group := builderTypeName(s.Elem).Nested(listGroupNamespace.TypeName)

		fn.ParamBuilder(blockParam(group)).
			Line("group := %C", group).
			Line("block(group)").
			Line("%P = group.Items()", name)

	case propschema.KindMapGroup:
		key, err := typeName(s.Key)
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		group := builderTypeName(s.Value).Nested(mapGroupNamespace.TypeName).Parameterized(key)

		fn.ParamBuilder(blockParam(group)).
			Line("group := %C", group).
			Line("block(group)").
			Line("%P = group.Items()", name)

	case propschema.KindBuilder:
		nested := builderTypeName(s.Nested)

		fn.ParamBuilder(blockParam(nested)).
			Line("builder := %C", nested).
			Line("block(builder)").
			Line("built := builder.Build()").
			Line("%P = &built", name)

	case propschema.KindSingleTransform:
		input, err := typeName(s.Transform.Input)
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		stored, err := typeName(s.Type())
		if err != nil {
			return ir.FunctionSpec{}, err
		}

		fn.ParamBuilder(ir.NewParameterBuilder().Name(name).Type(input)).
			Line("%P = %M[%T](%L)", name, e.settings.member(ptr), stored,
				transformCode(s.Transform.Template, name, stored))

	default:
		return ir.FunctionSpec{}, fmt.Errorf("unhandled schema kind %s", s.Kind)
	}

	return fn.Build()
}

// buildArg returns the value passed for the schema's field by build, wrapped
// in the check its nullability and shape require.
func (e schemaEmitter) buildArg() ir.ConstructArg {
	s := e.schema
	name := s.Name()
	arg := ir.ConstructArg{Field: s.Property.FieldName()}

	switch {
	case s.Nullable():
		arg.Value = ir.Code("%P", name)
	case s.Iterable() == propschema.IterableCollection:
		arg.Value = ir.Code("%M(%S, %P)", e.settings.member(requireCollectionNotEmpty), name, name)
	case s.Iterable() == propschema.IterableMap:
		arg.Value = ir.Code("%M(%S, %P)", e.settings.member(requireMapNotEmpty), name, name)
	default:
		arg.Value = ir.Code("%M(%S, %P)", e.settings.member(requireNotNull), name, name)
	}

	return arg
}

func blockParam(receiver ir.TypeName) *ir.ParameterBuilder {
	return ir.NewParameterBuilder().Name("block").Type(ir.LambdaWithReceiver(receiver, nil, nil))
}

// transformCode expands a transform template. %N is the accessor parameter
// and %T the stored type; an empty template converts with %T(%N).
func transformCode(template, param string, stored ir.TypeName) ir.CodeBlock {
	if strings.TrimSpace(template) == "" {
		template = "%T(%N)"
	}

	return expand(template, map[byte]any{'N': param, 'T': stored})
}

// expand binds every verb occurrence in template to the argument given for
// that verb. Verbs without an argument are left for Validate to report.
func expand(template string, bindings map[byte]any) ir.CodeBlock {
	var args []any

	for i := 0; i < len(template)-1; i++ {
		if template[i] != '%' {
			continue
		}

		if arg, ok := bindings[template[i+1]]; ok {
			args = append(args, arg)
		}

		i++
	}

	return ir.Code(template, args...)
}
