package analyze

import (
	"fmt"
	"go/ast"
	"strings"

	"dslbuilder-generator/internal/domain"
)

const (
	generateDirective  = "//dsl:generate"
	transformDirective = "//dsl:transform"
	tagKey             = "dsl"
)

// generateOptions are the arguments of a generate directive.
type generateOptions struct {
	Root      bool
	ListGroup bool
	MapGroup  domain.MapGroupMode
	Marker    string
	Debug     bool
}

// transformOptions are the arguments of a transform directive.
type transformOptions struct {
	Input    string
	Template string
}

// findDirective returns the arguments of the first comment line starting
// with directive.
func findDirective(groups []*ast.CommentGroup, directive string) (string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, directive)
			if !ok {
				continue
			}

			if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
				return strings.TrimSpace(rest), true
			}
		}
	}

	return "", false
}

func parseGenerate(args string) (generateOptions, error) {
	var opts generateOptions

	for _, tok := range strings.Fields(args) {
		key, value, _ := strings.Cut(tok, "=")

		switch key {
		case "root":
			opts.Root = true
		case "list_group":
			opts.ListGroup = true
		case "debug":
			opts.Debug = true
		case "map_group":
			mode, ok := domain.ParseMapGroupMode(value)
			if !ok || value == "" {
				return opts, fmt.Errorf("invalid map_group %q, expected none, single, list or all", value)
			}

			opts.MapGroup = mode
		case "marker":
			if value == "" {
				return opts, fmt.Errorf("marker needs a qualified name")
			}

			opts.Marker = value
		default:
			return opts, fmt.Errorf("unknown generate option %q", tok)
		}
	}

	return opts, nil
}

func parseTransform(args string) (transformOptions, error) {
	var opts transformOptions

	head, template, hasTemplate := strings.Cut(args, "template=")
	if hasTemplate {
		opts.Template = strings.TrimSpace(template)
		if opts.Template == "" {
			return opts, fmt.Errorf("empty template")
		}
	}

	for _, tok := range strings.Fields(head) {
		key, value, _ := strings.Cut(tok, "=")
		if key != "input" {
			return opts, fmt.Errorf("unknown transform option %q", tok)
		}

		opts.Input = value
	}

	return opts, nil
}

// fieldOptions are the options of a dsl struct tag.
type fieldOptions struct {
	Skip    bool
	Name    string
	Default *string
}

func parseFieldTag(tag string) (fieldOptions, error) {
	var opts fieldOptions

	if tag == "-" {
		opts.Skip = true
		return opts, nil
	}

	for _, part := range strings.Split(tag, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return opts, fmt.Errorf("tag option %q has no value", part)
		}

		switch strings.TrimSpace(key) {
		case "name":
			opts.Name = strings.TrimSpace(value)
		case "default":
			opts.Default = &value
		default:
			return opts, fmt.Errorf("unknown tag option %q", key)
		}
	}

	return opts, nil
}
