// Package gen builds the code model of DSL builders from resolved property
// schemas.
//
// Generators:
//   - BuilderGenerator: one builder type per domain, with an accessor per
//     property and a build function constructing the domain value
//   - GroupGenerator: list and map groups collecting values built by blocks
//   - RootAccessorGenerator: one entry function per root domain
//
// Pipeline runs them over a domain.Pass and isolates failures per domain.
// The output is ir.FileSpec values; package render turns them into Go.
package gen
