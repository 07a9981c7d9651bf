// Package dslcore is the runtime support imported by generated builders.
//
// Every generated builder satisfies Builder for its domain type, and the
// Build method of a builder calls the Require helpers to verify that
// mandatory properties were configured.
package dslcore
