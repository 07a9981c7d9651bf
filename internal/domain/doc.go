// Package domain is the normalized input of a generation pass: the domain
// record types a builder is generated for, their properties and the declared
// type of each property.
//
// Front ends (YAML descriptors, Go source analysis) produce a Pass; the
// generator only reads it.
package domain
