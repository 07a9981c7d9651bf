// Package propschema classifies domain properties into builder strategies.
//
// Every property resolves to exactly one Schema. The Resolver checks, in
// order: a transform hint, a generable nominal type, boolean, the scalar set,
// maps, lists. Anything else falls back to KindDefault with a warning, so
// resolution never fails.
package propschema
