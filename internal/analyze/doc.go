// Package analyze discovers domain types in Go packages.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A struct
// becomes a domain when its doc comment carries a generate directive:
//
//	//dsl:generate [root] [list_group] [map_group=single|list|all] [marker=<qualified>] [debug]
//
// Exported fields become properties in declaration order. A pointer field is
// nullable. The dsl struct tag holds ";"-separated options: name=<property>,
// default=<Go expression>, or "-" to skip the field.
//
// A named type whose doc comment carries
//
//	//dsl:transform input=<Go type> [template=<template>]
//
// is built from values of the input type. The template runs to the end of
// the line.
package analyze
