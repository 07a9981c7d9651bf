package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"dslbuilder-generator/internal/common"
	"dslbuilder-generator/internal/ctxlog"
	"dslbuilder-generator/internal/ir"
)

// HeaderComment marks every rendered file as generated.
const HeaderComment = "Code generated by dslgen. DO NOT EDIT."

// GeneratedFile is a rendered Go source file.
type GeneratedFile struct {
	// Package is the import path of the file's package.
	Package string
	// Filename is the base name of the file (e.g., "star_ship_dsl.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// FileName returns the Go file name of an IR file name.
func FileName(name string) string {
	return inflect.Underscore(name) + ".go"
}

// Renderer renders IR files.
type Renderer struct {
	layout Layout
	// DebugUnformatted keeps the unformatted source of files gofmt rejects in
	// a sidecar next to their output path.
	DebugUnformatted bool
}

// NewRenderer creates a Renderer placing files according to layout.
func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Render renders one file.
func (r *Renderer) Render(spec *ir.FileSpec) (GeneratedFile, error) {
	filename := FileName(spec.Name)

	f, err := jenFile(spec)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", spec.QualifiedName(), err)
	}

	var buf bytes.Buffer

	if err := f.Render(&buf); err != nil {
		if r.DebugUnformatted {
			r.writeDebug(spec.Package, filename, f)
		}

		return GeneratedFile{}, fmt.Errorf("formatting %s: %w", spec.QualifiedName(), err)
	}

	return GeneratedFile{Package: spec.Package, Filename: filename, Content: buf.Bytes()}, nil
}

// RenderAll renders files in order. A file that fails does not stop the
// others: the rendered files are returned with the joined failures.
func (r *Renderer) RenderAll(ctx context.Context, specs []*ir.FileSpec) ([]GeneratedFile, error) {
	logger := ctxlog.FromContext(ctx)
	out := make([]GeneratedFile, 0, len(specs))

	var errs []error

	for _, spec := range specs {
		file, err := r.Render(spec)
		if err != nil {
			logger.Error("file not rendered", "file", spec.QualifiedName(), "error", err)
			errs = append(errs, err)

			continue
		}

		logger.Debug("rendered", "file", file.Filename, "package", file.Package, "bytes", len(file.Content))
		out = append(out, file)
	}

	return out, errors.Join(errs...)
}

// writeDebug keeps the unformatted source next to the intended output, as
// "<name>.unformatted.go". It is best-effort.
func (r *Renderer) writeDebug(pkg, filename string, f *jen.File) {
	dir, err := r.layout.Dir(pkg)
	if err != nil {
		return
	}

	f.NoFormat = true

	var raw bytes.Buffer
	if err := f.Render(&raw); err != nil {
		return
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	_ = os.WriteFile(filepath.Join(dir, name), raw.Bytes(), filePerm)
}

func jenFile(spec *ir.FileSpec) (*jen.File, error) {
	f := jen.NewFilePathName(spec.Package, spec.PackageName)
	f.HeaderComment(HeaderComment)

	imports := make(map[string]bool, len(spec.Imports))

	for _, imp := range spec.Imports {
		if name := common.PackageName(imp.Package); token.IsIdentifier(name) {
			f.ImportName(imp.Package, name)
			imports[name] = true
		}
	}

	for _, a := range spec.TypeAliases {
		f.Line()
		f.Add(aliasDecl(a))
	}

	for _, t := range spec.Types {
		decls, err := typeDecl("", t, imports)
		if err != nil {
			return nil, err
		}

		for _, d := range decls {
			f.Line()

			for _, c := range d {
				f.Add(c)
			}
		}
	}

	for _, fn := range spec.Functions {
		decls, err := funcDecl(scope{reserved: imports}, nil, fn)
		if err != nil {
			return nil, err
		}

		f.Line()

		for _, d := range decls {
			f.Add(d)
		}
	}

	return f, nil
}
