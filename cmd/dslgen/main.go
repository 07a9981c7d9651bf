// Package main provides the CLI entrypoint for dslgen.
//
// dslgen is a Go codegen tool that:
//   - Discovers domain types from YAML descriptors or Go directives
//   - Classifies every property into a builder strategy
//   - Generates fluent builders, list and map groups, and root accessors
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
