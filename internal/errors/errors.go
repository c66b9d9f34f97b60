// Package errors provides the shared error-formatting and call-stack
// plumbing used across the scan/parse/resolve/evaluate pipeline. Each
// stage defines its own error type, but formats it through the helpers
// here so all four kinds emit the same wire shape.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/token"
)

// Where renders the location suffix used in pipeline error messages: the
// end-of-file marker for an EOF token, otherwise the offending token's
// lexeme. Errors that only have a line pass an empty where to Format
// instead of calling Where.
func Where(tok token.Token) string {
	if tok.Type == token.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

// Format renders a single pipeline error line: `[line N] Error<where>:
// <message>`.
func Format(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}

// FormatErrors joins a batch of pipeline errors into a report, one per
// line, in the order they were recorded.
func FormatErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// RuntimeError is raised by the evaluator. Unlike scan/parse/resolve
// errors it carries the call stack in effect when it was raised, and it
// aborts the statement being executed rather than being merely recorded
// and continued past.
type RuntimeError struct {
	Token   token.Token
	Message string
	Trace   StackTrace
}

// NewRuntimeError builds a RuntimeError at the given token with no stack
// trace attached; the interpreter fills Trace in as the error unwinds
// through call frames.
func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return Format(e.Token.Line, "", e.Message)
}

// Report renders the error followed by its call stack, innermost frame
// first, the way a host REPL or file runner prints an uncaught runtime
// error to stderr.
func (e *RuntimeError) Report() string {
	if len(e.Trace) == 0 {
		return e.Error()
	}
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")
	sb.WriteString(e.Trace.String())
	return sb.String()
}
