// Package ir is the renderer-agnostic model of generated code.
//
// Specs (files, types, functions, properties, parameters, type aliases) are
// assembled through builders whose Build method validates the spec and
// returns an immutable value:
//   - a named spec must have a name;
//   - a typed spec must have a type, assigned exactly once;
//   - a spec carries at most one access modifier;
//   - a file has exactly one qualified name.
//
// Builder methods chain. The first violation is kept and returned by Build,
// so a generator reports the failure once, for the spec that caused it.
// Statements are CodeBlocks: a format string whose verbs reference names,
// types and package members, which lets a FileSpec compute the imports it
// really needs.
package ir
