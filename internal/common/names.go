package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// LowerCamel lower-cases a leading initialism as a unit, so "ID" becomes
// "id" and "URLPath" becomes "urlPath". Other names behave like LowerFirst.
func LowerCamel(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == 1:
		return LowerFirst(s)
	case n == len(runes):
		return strings.ToLower(s)
	default:
		// The last upper-case rune starts the next word.
		return strings.ToLower(string(runes[:n-1])) + string(runes[n-1:])
	}
}

// QualifiedName joins a package path and a simple name with a dot.
func QualifiedName(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}

	return pkgPath + "." + name
}

// SplitQualifiedName splits "pkg/path.Name" at its last dot.
func SplitQualifiedName(qualified string) (pkgPath, name string) {
	i := strings.LastIndex(qualified, ".")
	if i < 0 {
		return "", qualified
	}

	// A dot inside the last path element belongs to the path ("example.com").
	if strings.Contains(qualified[i:], "/") {
		return "", qualified
	}

	return qualified[:i], qualified[i+1:]
}

// PackageName returns the conventional package name of an import path: its
// last element without a major version suffix ("hcl/v2" is "hcl", and
// "gopkg.in/yaml.v3" is "yaml").
func PackageName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	elems := strings.Split(pkgPath, "/")
	name := elems[len(elems)-1]

	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}

	if elems[0] == "gopkg.in" {
		name, _, _ = strings.Cut(name, ".")
	}

	return name
}

func isMajorVersion(s string) bool {
	digits, ok := strings.CutPrefix(s, "v")
	if !ok || digits == "" || digits == "0" || digits == "1" {
		return false
	}

	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
