package propschema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/diagnostic"
	"dslbuilder-generator/internal/domain"
)

// Resolver turns domain properties into schemas. One Resolver serves one
// generation pass.
type Resolver struct {
	transforms map[string]domain.TransformHint
	diags      *diagnostic.Diagnostics
}

// NewResolver creates a Resolver. transforms maps qualified type names to the
// transform used by every property of that type; diags receives fallbacks.
func NewResolver(transforms map[string]domain.TransformHint, diags *diagnostic.Diagnostics) *Resolver {
	if diags == nil {
		diags = &diagnostic.Diagnostics{}
	}

	return &Resolver{transforms: transforms, diags: diags}
}

// Diagnostics returns the diagnostics recorded so far.
func (r *Resolver) Diagnostics() *diagnostic.Diagnostics {
	return r.diags
}

// ResolveAll resolves every property of d in declaration order.
func (r *Resolver) ResolveAll(ctx context.Context, d domain.Type) []Schema {
	schemas := make([]Schema, 0, len(d.Properties))
	for _, p := range d.Properties {
		schemas = append(schemas, r.Resolve(ctx, d, p))
	}

	return schemas
}

// Resolve classifies p, a property of d.
func (r *Resolver) Resolve(ctx context.Context, d domain.Type, p domain.Property) Schema {
	logger := ctxlog.FromContext(ctx).With("domain", d.Name, "property", p.Name, "last", p.IsLast)
	logger.Debug("mapping property", "type", p.Type.String(), "nullable", p.Nullable)

	s := Schema{Property: p}
	t := p.Type

	if hint, ok := r.transformFor(p); ok {
		if hint.Input == nil {
			msg := fmt.Sprintf("transform on %s has no input type, using Default", t)
			r.diags.AddWarning(diagnostic.CodeTransformInputMissing, msg, d.Name, p.Name)
			logger.Warn(msg, "fallback", KindDefault.String())

			return r.fallback(s)
		}

		s.Kind = KindSingleTransform
		s.Transform = &hint

		return r.decided(logger, s)
	}

	if t.IsGenerableNominal() {
		s.Kind = KindBuilder
		s.Nested = t
		s.Doc = builderDoc(t)

		return r.decided(logger, s)
	}

	if t != nil {
		switch t.Kind {
		case domain.KindBoolean:
			s.Kind = KindBoolean
			return r.decided(logger, s)
		case domain.KindNumeric, domain.KindString, domain.KindChar:
			s.Kind = KindDefault
			return r.decided(logger, s)
		}
	}

	if isMap, raw := collectionSignals(t, domain.MapQualifiedName, t.IsParameterizedMap()); isMap {
		if !raw {
			return r.conflict(logger, d, s, "map")
		}

		s.Key = t.Key
		s.Value = t.Value

		switch {
		case t.Value.IsGenerableNominal() && t.Value.MapGroup.Active():
			s.Kind = KindMapGroup
			s.Doc = builderDoc(t.Value)
		default:
			if t.Value.IsGenerableNominal() {
				r.diags.AddInfo(diagnostic.CodeGroupNotEnabled,
					fmt.Sprintf("%s does not enable map groups, using Map", t.Value.Name), d.Name, p.Name)
			}

			s.Kind = KindMap
		}

		return r.decided(logger, s)
	}

	if isList, raw := collectionSignals(t, domain.ListQualifiedName, t.IsParameterizedList()); isList {
		if !raw {
			return r.conflict(logger, d, s, "list")
		}

		s.Elem = t.Elem

		switch {
		case t.Elem.IsGenerableNominal() && t.Elem.ListGroup:
			s.Kind = KindGroup
			s.Doc = builderDoc(t.Elem)
		default:
			if t.Elem.IsGenerableNominal() {
				r.diags.AddInfo(diagnostic.CodeGroupNotEnabled,
					fmt.Sprintf("%s does not enable list groups, using Collection", t.Elem.Name), d.Name, p.Name)
			}

			s.Kind = KindCollection
		}

		return r.decided(logger, s)
	}

	msg := fmt.Sprintf("type %s could not be mapped to a known property schema, using Default", t)
	r.diags.AddWarning(diagnostic.CodeUnmappedType, msg, d.Name, p.Name)
	logger.Warn(msg, "fallback", KindDefault.String())

	return r.fallback(s)
}

func (r *Resolver) transformFor(p domain.Property) (domain.TransformHint, bool) {
	if p.Transform != nil {
		return *p.Transform, true
	}

	if p.Type == nil || p.Type.Kind != domain.KindNominal {
		return domain.TransformHint{}, false
	}

	hint, ok := r.transforms[p.Type.QualifiedName()]

	return hint, ok
}

// collectionSignals reports whether t is a list (or map) by either its
// structure or its qualified name, and whether the structure is usable.
func collectionSignals(t *domain.TypeRef, qualified string, parameterized bool) (matches, raw bool) {
	if t == nil {
		return false, false
	}

	byName := t.QualifiedName() == qualified

	return parameterized || byName, parameterized
}

func (r *Resolver) conflict(logger *slog.Logger, d domain.Type, s Schema, shape string) Schema {
	msg := fmt.Sprintf("type %s is named as a %s but carries no %s type arguments, using Default",
		s.Property.Type, shape, shape)
	r.diags.AddError(diagnostic.CodeAmbiguousCollectionSignal, msg, d.Name, s.Property.Name)
	logger.Warn(msg, "fallback", KindDefault.String())

	return r.fallback(s)
}

func (r *Resolver) fallback(s Schema) Schema {
	s.Kind = KindDefault
	s.Fallback = true

	return s
}

func (r *Resolver) decided(logger *slog.Logger, s Schema) Schema {
	logger.Debug("decision", "schema", s.Kind.String())
	return s
}

// builderDoc lists the accessors of the builder generated for t.
func builderDoc(t *domain.TypeRef) string {
	if len(t.Members) == 0 {
		return ""
	}

	members := slices.Clone(t.Members)
	slices.Sort(members)

	builder := t.Name + "DslBuilder"
	lines := make([]string, 0, len(members))

	for _, m := range members {
		lines = append(lines, "  - ["+builder+"."+common.UpperFirst(m)+"]")
	}

	return "Available builder functions:\n" + strings.Join(lines, "\n")
}
