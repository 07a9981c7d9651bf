package render

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout maps package import paths to directories. Packages below
// ProjectRoot are placed in the matching subdirectory of OutputDir.
type Layout struct {
	ProjectRoot string
	OutputDir   string
}

// Dir returns the directory of pkg.
func (l Layout) Dir(pkg string) (string, error) {
	out := l.OutputDir
	if out == "" {
		out = "."
	}

	switch {
	case pkg == l.ProjectRoot:
		return out, nil
	case strings.HasPrefix(pkg, l.ProjectRoot+"/"):
		rel := strings.TrimPrefix(pkg, l.ProjectRoot+"/")
		return filepath.Join(out, filepath.FromSlash(rel)), nil
	default:
		return "", fmt.Errorf("package %s is outside project root %s", pkg, l.ProjectRoot)
	}
}

// Path returns the output path of a generated file.
func (l Layout) Path(f GeneratedFile) (string, error) {
	dir, err := l.Dir(f.Package)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, f.Filename), nil
}
