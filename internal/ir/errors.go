package ir

import "fmt"

// AlreadySetError is returned when a single-assignment field of a spec is
// assigned twice.
type AlreadySetError struct {
	Spec  string
	Name  string
	Field string
}

func (e *AlreadySetError) Error() string {
	return fmt.Sprintf("%s already set on %s", e.Field, describe(e.Spec, e.Name))
}

// DuplicateAccessModifierError is returned when a second access modifier is
// added to a spec.
type DuplicateAccessModifierError struct {
	Spec     string
	Name     string
	Existing Modifier
	Added    Modifier
}

func (e *DuplicateAccessModifierError) Error() string {
	return fmt.Sprintf("%s already has access modifier %s, cannot add %s",
		describe(e.Spec, e.Name), e.Existing, e.Added)
}

// MissingRequiredFieldError is returned by Build when a required field was
// never set.
type MissingRequiredFieldError struct {
	Spec  string
	Name  string
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s requires %s", describe(e.Spec, e.Name), e.Field)
}

// FormatError is returned when a CodeBlock's verbs do not match its
// arguments.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed code %q: %s", e.Format, e.Reason)
}

func describe(spec, name string) string {
	if name == "" {
		return spec
	}

	return fmt.Sprintf("%s %q", spec, name)
}
