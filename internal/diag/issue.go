// Package diag implements CO's locale-aware diagnostic system: stable
// error codes, source-located messages, and notes, rendered in one of
// three locales (English, Belarusian, Russian) from a data-driven catalogue.
package diag

import "github.com/psenchanka/colang/internal/source"

// Severity classifies how serious an Issue is.
type Severity int

const (
	Error Severity = iota
	Warning
	Note_ // reserved for future use; no top-level issue is emitted at this severity yet
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}

// Code is a stable diagnostic identifier, e.g. "E0017". Codes are stable
// across releases: a message's wording may change, its code never does.
type Code string

// Note is a secondary annotation attached to an Issue, e.g. pointing at the
// first occurrence of a duplicated definition, or listing one overload
// candidate among several ambiguous ones. Span is optional: a Note with
// HasSpan false carries only explanatory text.
type Note struct {
	Span    source.Span
	HasSpan bool
	Text    string
}

// SpanNote builds a Note anchored at span.
func SpanNote(span source.Span, text string) Note {
	return Note{Span: span, HasSpan: true, Text: text}
}

// PlainNote builds a Note with no source location.
func PlainNote(text string) Note {
	return Note{Text: text}
}

// Issue is one diagnostic: a severity, a stable code, a primary source
// span, a message already rendered in the active locale, and zero or more
// notes.
type Issue struct {
	Severity Severity
	Code     Code
	Span     source.Span
	Message  string
	Notes    []Note
}

// Bag accumulates issues in the order they are raised. Passes append to a
// shared Bag rather than returning errors: analysers never throw.
type Bag struct {
	issues []Issue
}

// Add appends an issue to the bag.
func (b *Bag) Add(issue Issue) {
	b.issues = append(b.issues, issue)
}

// Issues returns all accumulated issues in emission order.
func (b *Bag) Issues() []Issue {
	return b.issues
}

// HasErrors reports whether any accumulated issue has Error severity.
func (b *Bag) HasErrors() bool {
	for _, issue := range b.issues {
		if issue.Severity == Error {
			return true
		}
	}
	return false
}
