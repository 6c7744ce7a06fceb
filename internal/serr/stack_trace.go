package serr

import (
	"fmt"
	"strings"

	"github.com/omthedev001/sansscript/internal/srcpos"
)

// StackFrame is one call-frame entry in a runtime traceback: the display
// name of the function (or "<program>" for the top level) and the
// position in the *caller* from which it was entered.
type StackFrame struct {
	DisplayName string
	EntryPos    *srcpos.Position
}

// String renders a frame the way a traceback line reads: the file/line of
// the call site followed by the frame's own name.
func (f StackFrame) String() string {
	if f.EntryPos == nil {
		return fmt.Sprintf("  in %s", f.DisplayName)
	}
	return fmt.Sprintf("  file %s, line %d, in %s",
		displayName(f.EntryPos.Filename), f.EntryPos.Line+1, f.DisplayName)
}

// StackTrace is a call stack, ordered oldest (outermost) first.
type StackTrace []StackFrame

// String renders the trace oldest-frame-first, one line each, matching the
// conventional "Traceback (most recent call last)" layout.
func (st StackTrace) String() string {
	lines := make([]string, len(st))
	for i, f := range st {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
