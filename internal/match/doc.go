// Package match ranks names by similarity to suggest fixes for unknown
// references.
//
// Key functions:
//   - NormalizeIdent: folds identifiers for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest candidates for a misspelled name
package match
