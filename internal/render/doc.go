// Package render turns IR files into Go source with jennifer and writes them
// below the output directory.
//
// Nested types are flattened into their parent's name, functions of a type
// become pointer-receiver methods on receiver b, property initializers are
// applied by a generated New<Type> constructor, and nullable scalars are
// stored behind pointers.
package render
