package interp

import "github.com/omthedev001/sansscript/internal/srcpos"

// maxCallDepth bounds recursion so a runaway `niyoga` can't overflow the
// Go goroutine stack; exceeding it raises a RuntimeError instead of a
// process crash (spec.md §4.4's stack-overflow guard).
const maxCallDepth = 1000

// Context is one call frame: a display name for tracebacks, the scope it
// executes in, a pointer to the calling Context, and the position of the
// call site in the caller (nil for the top-level program context).
type Context struct {
	DisplayName string
	Parent      *Context
	EntryPos    *srcpos.Position
	SymbolTable *Environment
}

// NewContext builds a Context. parent/entryPos are nil for the root
// program context.
func NewContext(displayName string, parent *Context, entryPos *srcpos.Position) *Context {
	return &Context{DisplayName: displayName, Parent: parent, EntryPos: entryPos}
}

// Depth counts frames from this Context up to the root, used to enforce
// maxCallDepth.
func (c *Context) Depth() int {
	n := 0
	for cur := c; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}
