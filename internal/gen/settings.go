package gen

import (
	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ir"
)

// DefaultCorePackage is the runtime package generated builders import.
const DefaultCorePackage = "dslbuilder-generator/dslcore"

// RootDslFileName is the simple name of the root accessor file.
const RootDslFileName = "RootDslAccessor"

// Settings holds the per-pass options of the generators.
type Settings struct {
	// ProjectRoot is the import path every domain package lives under.
	ProjectRoot string
	// CorePackage provides Builder, Ptr and the Require helpers.
	CorePackage string
	// RootPackage receives the root accessor file. Empty means
	// ProjectRoot + "/dsl".
	RootPackage string
	// Marker is the qualified name of the default DSL marker.
	Marker string
}

// DefaultSettings returns settings using the bundled runtime package.
func DefaultSettings(projectRoot string) Settings {
	return Settings{
		ProjectRoot: projectRoot,
		CorePackage: DefaultCorePackage,
	}
}

// RootDslPackage returns the package of the root accessor file.
func (s Settings) RootDslPackage() string {
	if s.RootPackage != "" {
		return s.RootPackage
	}

	return s.ProjectRoot + "/dsl"
}

func (s Settings) contract(domainType ir.TypeName) ir.TypeName {
	return ir.ClassName(s.CorePackage, "Builder").Parameterized(domainType)
}

func (s Settings) member(name string) ir.MemberName {
	return ir.Member(s.CorePackage, name)
}

// markerAnnotation returns the DSL marker for a domain, preferring its own.
func (s Settings) markerAnnotation(domainMarker string) (ir.AnnotationSpec, bool) {
	marker := domainMarker
	if marker == "" {
		marker = s.Marker
	}

	if marker == "" {
		return ir.AnnotationSpec{}, false
	}

	pkg, name := common.SplitQualifiedName(marker)

	return ir.AnnotationSpec{Type: ir.ClassName(pkg, name)}, true
}

// Runtime helper names.
const (
	requireNotNull            = "RequireNotNull"
	requireCollectionNotEmpty = "RequireCollectionNotEmpty"
	requireMapNotEmpty        = "RequireMapNotEmpty"
	ptr                       = "Ptr"
)

var (
	slicesClone = ir.Member("slices", "Clone")
	mapsClone   = ir.Member("maps", "Clone")
)
