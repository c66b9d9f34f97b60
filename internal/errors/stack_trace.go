package errors

import (
	"fmt"
	"strings"
)

// StackFrame is a single call-stack entry: the function being executed
// and a source line for it. The interpreter records the line of the
// function's declaration, not the line of the call site.
type StackFrame struct {
	FunctionName string
	Line         int
}

// String renders a frame as "name [line: N]", or just the name for the
// synthetic top-level frame (line 0).
func (sf StackFrame) String() string {
	if sf.Line == 0 {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d]", sf.FunctionName, sf.Line)
}

// StackTrace is a complete call stack, ordered oldest (bottom) to newest
// (top), the order frames are pushed as calls nest.
type StackTrace []StackFrame

// String renders the trace one frame per line, most recent call first.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString("  at ")
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy of the trace with frames in reverse order.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recently pushed frame, or nil if the trace is
// empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame builds a StackFrame for the given function at the given
// source line.
func NewStackFrame(functionName string, line int) StackFrame {
	return StackFrame{FunctionName: functionName, Line: line}
}
