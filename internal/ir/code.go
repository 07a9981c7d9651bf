package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeBlock is a fragment of target code. Format may contain these verbs:
//
//	%N  a name, emitted verbatim (string)
//	%P  a property of the enclosing type, accessed through the receiver (string)
//	%S  a string literal (string)
//	%T  a type (TypeName)
//	%C  a call to the constructor of a type (TypeName)
//	%M  a package member (MemberName)
//	%L  raw code (string) or a nested CodeBlock
//	%%  a literal percent sign
type CodeBlock struct {
	Format string
	Args   []any
}

// Code returns a CodeBlock.
func Code(format string, args ...any) CodeBlock {
	return CodeBlock{Format: format, Args: args}
}

// IsEmpty reports whether c renders nothing.
func (c CodeBlock) IsEmpty() bool {
	return c.Format == ""
}

// Segment is either literal text or one verb with its argument.
type Segment struct {
	Text string
	Verb byte
	Arg  any
}

// Segments splits c into literal text and verbs, checking every argument.
func (c CodeBlock) Segments() ([]Segment, error) {
	var (
		segs []Segment
		text strings.Builder
		next int
	)

	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(c.Format); i++ {
		ch := c.Format[i]
		if ch != '%' {
			text.WriteByte(ch)
			continue
		}

		if i+1 >= len(c.Format) {
			return nil, &FormatError{Format: c.Format, Reason: "dangling %"}
		}

		i++
		verb := c.Format[i]

		if verb == '%' {
			text.WriteByte('%')
			continue
		}

		if next >= len(c.Args) {
			return nil, &FormatError{Format: c.Format, Reason: fmt.Sprintf("missing argument for %%%c", verb)}
		}

		arg := c.Args[next]
		next++

		if err := checkArg(verb, arg); err != nil {
			return nil, &FormatError{Format: c.Format, Reason: err.Error()}
		}

		flush()
		segs = append(segs, Segment{Verb: verb, Arg: arg})
	}

	if next != len(c.Args) {
		return nil, &FormatError{Format: c.Format, Reason: fmt.Sprintf("%d unused arguments", len(c.Args)-next)}
	}

	flush()

	return segs, nil
}

func checkArg(verb byte, arg any) error {
	switch verb {
	case 'N', 'P', 'S':
		if _, ok := arg.(string); !ok {
			return fmt.Errorf("%%%c expects a string, got %T", verb, arg)
		}
	case 'T', 'C':
		if _, ok := arg.(TypeName); !ok {
			return fmt.Errorf("%%%c expects a TypeName, got %T", verb, arg)
		}
	case 'M':
		if _, ok := arg.(MemberName); !ok {
			return fmt.Errorf("%%M expects a MemberName, got %T", arg)
		}
	case 'L':
		switch v := arg.(type) {
		case string:
		case CodeBlock:
			if _, err := v.Segments(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%%L expects a string or CodeBlock, got %T", arg)
		}
	default:
		return fmt.Errorf("unknown verb %%%c", verb)
	}

	return nil
}

// Validate reports a *FormatError when verbs and arguments disagree.
func (c CodeBlock) Validate() error {
	_, err := c.Segments()
	return err
}

// String renders c in the neutral notation of TypeName.String, for dumps and
// test assertions. Property access renders as this.name.
func (c CodeBlock) String() string {
	segs, err := c.Segments()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	var sb strings.Builder

	for _, s := range segs {
		switch s.Verb {
		case 0:
			sb.WriteString(s.Text)
		case 'N':
			sb.WriteString(s.Arg.(string))
		case 'P':
			sb.WriteString("this." + s.Arg.(string))
		case 'S':
			sb.WriteString(strconv.Quote(s.Arg.(string)))
		case 'T':
			sb.WriteString(s.Arg.(TypeName).String())
		case 'C':
			sb.WriteString(s.Arg.(TypeName).String() + "()")
		case 'M':
			sb.WriteString(s.Arg.(MemberName).String())
		case 'L':
			if nested, ok := s.Arg.(CodeBlock); ok {
				sb.WriteString(nested.String())
			} else {
				sb.WriteString(s.Arg.(string))
			}
		}
	}

	return sb.String()
}

// Statement is one statement in a function body.
type Statement interface {
	statement()
	// Codes returns the code blocks the statement is made of.
	Codes() []CodeBlock
}

// Line is a single statement.
type Line struct {
	Code CodeBlock
}

// Return returns Value from the function.
type Return struct {
	Value CodeBlock
}

// Construct returns a new value of Type with one argument per field, in
// order.
type Construct struct {
	Type TypeName
	Args []ConstructArg
}

// ConstructArg assigns Value to Field of the constructed value.
type ConstructArg struct {
	Field string
	Value CodeBlock
}

func (Line) statement()      {}
func (Return) statement()    {}
func (Construct) statement() {}

// Codes implements Statement.
func (l Line) Codes() []CodeBlock { return []CodeBlock{l.Code} }

// Codes implements Statement.
func (r Return) Codes() []CodeBlock { return []CodeBlock{r.Value} }

// Codes implements Statement.
func (c Construct) Codes() []CodeBlock {
	codes := make([]CodeBlock, 0, len(c.Args))
	for _, a := range c.Args {
		codes = append(codes, a.Value)
	}

	return codes
}

// AnnotationSpec annotates a declaration.
type AnnotationSpec struct {
	Type TypeName
	Args []CodeBlock
}
