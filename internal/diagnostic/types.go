package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"dslbuilder-generator/internal/common"
)

// Diagnostic codes emitted by the generator.
const (
	CodeUnmappedType              = "unmapped_type"
	CodeTransformInputMissing     = "transform_input_missing"
	CodeAmbiguousCollectionSignal = "ambiguous_collection_signal"
	CodeGroupNotEnabled           = "group_not_enabled"
	CodeIRConstructionFailed      = "ir_construction_failed"
	CodeUnknownType               = "unknown_type"
	CodeInvalidDescriptor         = "invalid_descriptor"
	CodeNoRootDomains             = "no_root_domains"
)

// Diagnostics holds all diagnostic information from one pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Domain names the domain type this relates to (if any).
	Domain string
	// Property names the property this relates to (if any).
	Property string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, domain, property string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Domain: domain, Property: property})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, domain, property string) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Domain: domain, Property: property})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, domain, property string) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Domain: domain, Property: property})
}

// Add appends a fully built diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Domain != "" {
		prefix = append(prefix, "["+d.Domain+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
