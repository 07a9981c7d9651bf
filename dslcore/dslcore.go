package dslcore

import "fmt"

// Builder is implemented by every generated <Domain>DslBuilder.
type Builder[T any] interface {
	Build() T
}

// Requirement names the check a RequiredError reports.
type Requirement int

const (
	RequirementNotNull Requirement = iota
	RequirementCollectionNotEmpty
	RequirementMapNotEmpty
)

// String returns a human-readable requirement name.
func (r Requirement) String() string {
	switch r {
	case RequirementNotNull:
		return "not null"
	case RequirementCollectionNotEmpty:
		return "collection not empty"
	case RequirementMapNotEmpty:
		return "map not empty"
	default:
		return "unknown"
	}
}

// RequiredError is the panic value raised by Build when a mandatory property
// was left unset.
type RequiredError struct {
	Property    string
	Requirement Requirement
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("dsl property %q must be %s", e.Property, e.Requirement)
}

// RequireNotNull returns *v or panics with a *RequiredError when v is nil.
func RequireNotNull[T any](property string, v *T) T {
	if v == nil {
		panic(&RequiredError{Property: property, Requirement: RequirementNotNull})
	}

	return *v
}

// RequireCollectionNotEmpty returns s or panics with a *RequiredError when s
// is empty.
func RequireCollectionNotEmpty[S ~[]E, E any](property string, s S) S {
	if len(s) == 0 {
		panic(&RequiredError{Property: property, Requirement: RequirementCollectionNotEmpty})
	}

	return s
}

// RequireMapNotEmpty returns m or panics with a *RequiredError when m is
// empty.
func RequireMapNotEmpty[M ~map[K]V, K comparable, V any](property string, m M) M {
	if len(m) == 0 {
		panic(&RequiredError{Property: property, Requirement: RequirementMapNotEmpty})
	}

	return m
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
