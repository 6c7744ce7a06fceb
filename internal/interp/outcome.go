package interp

import "github.com/omthedev001/sansscript/internal/serr"

// outcomeKind tags which variant an Outcome holds.
type outcomeKind int

const (
	outcomeValue outcomeKind = iota
	outcomeError
	outcomeReturn
	outcomeBreak
	outcomeContinue
)

// Outcome is the non-local-exit sum type spec.md §9 asks for in place of
// the original's multi-flag RuntimeResult: evaluating a statement
// produces exactly one of a plain value, an error, a `pratyavartanam`
// (return), a `viramah` (break), or an `anuvartanam` (continue). Loops
// and function bodies use IsError/IsReturn/IsBreak/IsContinue and
// ShouldUnwind to decide whether to keep running,
// unwind one level, or propagate further.
type Outcome struct {
	kind        outcomeKind
	returnValue Value
	err         *serr.Error
}

// Ok wraps a plain value with no control-flow effect.
func Ok(v Value) *Outcome { return &Outcome{kind: outcomeValue, returnValue: v} }

// Err wraps a runtime error to propagate up through every enclosing
// statement, loop, and call frame.
func Err(e *serr.Error) *Outcome { return &Outcome{kind: outcomeError, err: e} }

// Return wraps a `pratyavartanam` value (the interpreter passes Null for
// a bare return).
func Return(v Value) *Outcome { return &Outcome{kind: outcomeReturn, returnValue: v} }

// Break represents a `viramah` unwinding to the nearest enclosing loop.
func Break() *Outcome { return &Outcome{kind: outcomeBreak} }

// Continue represents an `anuvartanam` unwinding to the nearest enclosing
// loop's next iteration.
func Continue() *Outcome { return &Outcome{kind: outcomeContinue} }

func (o *Outcome) IsError() bool    { return o.kind == outcomeError }
func (o *Outcome) IsReturn() bool   { return o.kind == outcomeReturn }
func (o *Outcome) IsBreak() bool    { return o.kind == outcomeBreak }
func (o *Outcome) IsContinue() bool { return o.kind == outcomeContinue }

// ShouldUnwind reports whether this outcome must stop normal statement
// sequencing in its enclosing block (any variant other than a plain
// value).
func (o *Outcome) ShouldUnwind() bool { return o.kind != outcomeValue }

// Value returns the carried value for the Ok and Return variants, and
// nil otherwise.
func (o *Outcome) Value() Value { return o.returnValue }

// Error returns the carried error, or nil if this is not the error variant.
func (o *Outcome) Error() *serr.Error { return o.err }
