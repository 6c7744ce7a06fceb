// Package serr formats SansScript's three error kinds — lexical, syntax,
// and runtime — with a source excerpt and a caret underline, the way the
// teacher's internal/errors package formats CompilerError.
package serr

import (
	"fmt"
	"strings"

	"github.com/omthedev001/sansscript/internal/srcpos"
)

// Kind names the broad category of error, used only for the header line.
type Kind string

const (
	IllegalCharacter Kind = "IllegalCharacter"
	ExpectedChar     Kind = "ExpectedCharacter"
	InvalidSyntax    Kind = "InvalidSyntax"
	Runtime          Kind = "RuntimeError"
)

// Error is a single SansScript diagnostic: a kind, a human-readable detail
// string, and the span of source it applies to. RuntimeErrors additionally
// carry a Trace walking the call stack active when the error was raised.
type Error struct {
	Kind    Kind
	Details string
	Span    srcpos.Span
	Trace   StackTrace
}

// New builds a lex/parse error (no traceback).
func New(kind Kind, details string, span srcpos.Span) *Error {
	return &Error{Kind: kind, Details: details, Span: span}
}

// NewRuntime builds a runtime error carrying the call stack active at the
// point of failure.
func NewRuntime(details string, span srcpos.Span, trace StackTrace) *Error {
	return &Error{Kind: Runtime, Details: details, Span: span, Trace: trace}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format()
}

// Format renders "<kind>: <details>", a "file <name>, line <n+1>" tag, and
// a source excerpt with a caret underline spanning Start to End — matching
// spec.md §7's rendering contract. Runtime errors prepend a traceback.
func (e *Error) Format() string {
	var sb strings.Builder

	if len(e.Trace) > 0 {
		sb.WriteString("Traceback (most recent call last):\n")
		sb.WriteString(e.Trace.String())
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Details))

	pos := e.Span.Start
	sb.WriteString(fmt.Sprintf("file %s, line %d\n", displayName(pos.Filename), pos.Line+1))

	sb.WriteString(e.sourceExcerpt())

	return sb.String()
}

func displayName(filename string) string {
	if filename == "" {
		return "<stdin>"
	}
	return filename
}

// sourceExcerpt renders the offending line with a caret underline from
// Start.Column to End.Column (clamped to the line's length). The line is
// printed as-is, leading whitespace included, so the caret lines up.
func (e *Error) sourceExcerpt() string {
	start, end := e.Span.Start, e.Span.End
	lines := strings.Split(start.Source, "\n")
	if start.Line < 0 || start.Line >= len(lines) {
		return ""
	}
	line := lines[start.Line]

	idxStart := max(start.Column, 0)
	idxEnd := end.Column
	if end.Line != start.Line || idxEnd <= idxStart {
		idxEnd = len(line)
	}
	if idxEnd > len(line) {
		idxEnd = len(line)
	}
	if idxStart > len(line) {
		idxStart = len(line)
	}

	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", idxStart))
	underline := idxEnd - idxStart
	if underline < 1 {
		underline = 1
	}
	sb.WriteString(strings.Repeat("^", underline))
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
