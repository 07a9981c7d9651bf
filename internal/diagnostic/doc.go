// Package diagnostic collects the warnings and errors of one generation pass.
//
// A diagnostic always names the domain type it relates to and, when
// applicable, the property, so a report is actionable without source text.
// Classification fallbacks are warnings; IR construction failures and
// conflicting type signals are errors.
package diagnostic
