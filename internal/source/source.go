// Package source defines the source-position and source-span types shared
// by every stage of the compiler, from the lexer through the backend.
package source

import "fmt"

// Position is a single point in source text, identified by its line and
// column (both 1-based) plus a byte Offset from the start of the file.
// Column counts runes, not bytes, so multi-byte UTF-8 sequences count once.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders a position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p occurs strictly earlier in the source than other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open region of source text: [Start, End). Every raw AST
// node and every typed expression/statement carries exactly one Span.
type Span struct {
	File  string
	Start Position
	End   Position
}

// New builds a span covering [start, end) within file.
func New(file string, start, end Position) Span {
	return Span{File: file, Start: start, End: end}
}

// String renders a span as "file:startLine:startCol".
func (s Span) String() string {
	if s.File == "" {
		return s.Start.String()
	}
	return fmt.Sprintf("%s:%s", s.File, s.Start.String())
}

// Union returns the smallest span that contains both s and other. Used to
// build a composite node's span out of its children's spans (e.g. a binary
// expression's span is the union of its operands' spans).
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start.Offset < start.Offset {
		start = other.Start
	}
	end := s.End
	if other.End.Offset > end.Offset {
		end = other.End
	}
	file := s.File
	if file == "" {
		file = other.File
	}
	return Span{File: file, Start: start, End: end}
}

// Before returns a zero-width span immediately preceding s, for diagnostics
// that point at "the place just before this token" (e.g. a missing
// initializer after an '=').
func (s Span) Before() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// After returns a zero-width span immediately following s, for diagnostics
// that point at "the place right after this node" (e.g. a missing
// semicolon, or the implied end of a function body).
func (s Span) After() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}

// Len reports the span's length in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}
