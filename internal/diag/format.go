package diag

import (
	"fmt"
	"strings"

	"github.com/psenchanka/colang/internal/source"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[1;31m"
	ansiYellow = "\033[1;33m"
	ansiCyan   = "\033[1;36m"
)

// Format renders one issue with its source context: a header naming the
// severity, code, and position, the offending source line with a caret
// under the span's start column, the message, and any attached notes.
func Format(issue Issue, src string, color bool) string {
	var sb strings.Builder
	writeHeadline(&sb, issue, src, color)
	for _, note := range issue.Notes {
		writeNote(&sb, note, src, color)
	}
	return sb.String()
}

// FormatAll renders issues in order, blank-line separated. withNotes false
// drops every issue's notes, for callers that only want the headlines.
func FormatAll(issues []Issue, src string, color, withNotes bool) string {
	var sb strings.Builder
	for i, issue := range issues {
		if i > 0 {
			sb.WriteString("\n")
		}
		if !withNotes {
			trimmed := issue
			trimmed.Notes = nil
			sb.WriteString(Format(trimmed, src, color))
			continue
		}
		sb.WriteString(Format(issue, src, color))
	}
	return sb.String()
}

func writeHeadline(sb *strings.Builder, issue Issue, src string, color bool) {
	severityColor := ansiRed
	if issue.Severity == Warning {
		severityColor = ansiYellow
	}
	if color {
		sb.WriteString(severityColor)
	}
	sb.WriteString(issue.Severity.String())
	if issue.Code != "" {
		fmt.Fprintf(sb, "[%s]", issue.Code)
	}
	if color {
		sb.WriteString(ansiReset)
	}
	if issue.Span.Start.Line > 0 {
		fmt.Fprintf(sb, " at %s", issue.Span)
	}
	sb.WriteString("\n")

	writeSourceLine(sb, issue.Span, src, color, severityColor)

	if color {
		sb.WriteString(ansiBold)
	}
	sb.WriteString(issue.Message)
	if color {
		sb.WriteString(ansiReset)
	}
	sb.WriteString("\n")
}

func writeNote(sb *strings.Builder, note Note, src string, color bool) {
	if color {
		sb.WriteString(ansiCyan)
	}
	sb.WriteString("note")
	if color {
		sb.WriteString(ansiReset)
	}
	if note.HasSpan && note.Span.Start.Line > 0 {
		fmt.Fprintf(sb, " at %s", note.Span)
	}
	sb.WriteString(": ")
	sb.WriteString(note.Text)
	sb.WriteString("\n")
	if note.HasSpan {
		writeSourceLine(sb, note.Span, src, color, ansiCyan)
	}
}

// writeSourceLine prints the span's first source line with a caret under
// its start column, behind a "NNNN | " line-number gutter.
func writeSourceLine(sb *strings.Builder, span source.Span, src string, color bool, caretColor string) {
	line := sourceLine(src, span.Start.Line)
	if line == "" {
		return
	}
	gutter := fmt.Sprintf("%4d | ", span.Start.Line)
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")

	col := span.Start.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(gutter)+col-1))
	if color {
		sb.WriteString(caretColor)
	}
	width := caretWidth(span, line, col)
	sb.WriteString(strings.Repeat("^", width))
	if color {
		sb.WriteString(ansiReset)
	}
	sb.WriteString("\n")
}

// caretWidth underlines the whole span when it fits on one line, and just
// its first character otherwise.
func caretWidth(span source.Span, line string, col int) int {
	if span.End.Line != span.Start.Line || span.End.Column <= span.Start.Column {
		return 1
	}
	width := span.End.Column - span.Start.Column
	if remaining := len(line) - (col - 1); width > remaining && remaining > 0 {
		width = remaining
	}
	if width < 1 {
		width = 1
	}
	return width
}

func sourceLine(src string, lineNum int) string {
	if src == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
