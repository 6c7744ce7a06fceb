// Package interp is the tree-walking evaluator for SansScript: Value
// types, the lexical-scope Environment, call-stack bookkeeping, and the
// Interpreter itself (spec.md §4.3, §4.4).
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// Value is implemented by every runtime value: numbers, strings, lists,
// and functions (user-defined or built-in). Every value carries the span
// it was produced at and the Context it was produced in, so errors and
// tracebacks can point back at the right place (spec.md §4.4).
type Value interface {
	Type() string
	String() string
	Repr() string
	IsTruthy() bool
	span() srcpos.Span
	withSpan(srcpos.Span) Value
	context() *Context
	withContext(*Context) Value
}

type valueBase struct {
	Span srcpos.Span
	Ctx  *Context
}

func (v valueBase) span() srcpos.Span  { return v.Span }
func (v valueBase) context() *Context  { return v.Ctx }

// SetPos returns v with its span replaced: a copy for every value type
// except List, which is updated in place and returned as the same pointer.
// Used when a value already constructed (e.g. a seeded constant) needs to
// be attributed to the expression that produced it.
func SetPos(v Value, span srcpos.Span) Value { return v.withSpan(span) }

// SetContext returns v with its owning Context replaced (a copy, except
// for a List, which is updated in place).
func SetContext(v Value, ctx *Context) Value { return v.withContext(ctx) }

// Number is SansScript's sole numeric type; integers and floats share this
// representation, with IsInt recording which literal form produced it
// (spec.md §3's Number type).
type Number struct {
	valueBase
	Value float64
	IsInt bool
}

func NewInt(n int64) *Number   { return &Number{Value: float64(n), IsInt: true} }
func NewFloat(f float64) *Number { return &Number{Value: f, IsInt: false} }

func (n *Number) Type() string { return "Number" }

func (n *Number) String() string {
	if n.IsInt {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Number) Repr() string { return n.String() }

func (n *Number) IsTruthy() bool { return n.Value != 0 }

func (n *Number) withSpan(s srcpos.Span) Value {
	cp := *n
	cp.Span = s
	return &cp
}

func (n *Number) withContext(c *Context) Value {
	cp := *n
	cp.Ctx = c
	return &cp
}

// String is SansScript's string value; Quote records which quote
// character the literal was written with, so repr() round-trips it.
type String struct {
	valueBase
	Value string
	Quote lexer.QuoteStyle
}

// NewString builds a computed String (concatenation, builtin results,
// `json_of`...), which the original always renders double-quoted
// regardless of what produced it (original_source/SansScript.py's
// String.added_to/multiplied_by always construct TT_STRING_D).
func NewString(s string) *String { return &String{Value: s, Quote: lexer.DoubleQuote} }

// NewStringWithQuote builds a String literal remembering which quote
// character it was written with, so Repr() can round-trip it.
func NewStringWithQuote(s string, quote lexer.QuoteStyle) *String {
	return &String{Value: s, Quote: quote}
}

func (s *String) Type() string   { return "String" }
func (s *String) String() string { return s.Value }

// Repr mirrors original_source/SansScript.py's String.__repr__: an empty
// string always prints as '' regardless of quote style, otherwise the
// literal's own quote character is echoed back.
func (s *String) Repr() string {
	if s.Value == "" {
		return "''"
	}
	if s.Quote == lexer.SingleQuote {
		return "'" + s.Value + "'"
	}
	return "\"" + s.Value + "\""
}

func (s *String) IsTruthy() bool { return len(s.Value) > 0 }

func (s *String) withSpan(sp srcpos.Span) Value {
	cp := *s
	cp.Span = sp
	return &cp
}

func (s *String) withContext(c *Context) Value {
	cp := *s
	cp.Ctx = c
	return &cp
}

// List is SansScript's only compound data type: a mutable, ordered
// sequence of Values (spec.md §3's List type).
type List struct {
	valueBase
	Elements []Value
}

func NewList(elements []Value) *List { return &List{Elements: elements} }

func (l *List) Type() string { return "List" }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Repr()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Repr() string   { return l.String() }
func (l *List) IsTruthy() bool { return len(l.Elements) > 0 }

// withSpan/withContext mutate this List's position metadata in place and
// return the same pointer, unlike Number/String's copy-on-write: a List is
// SansScript's one mutable, reference-semantics value (spec.md §3), and
// samyojayati/apanayati/prasarayati must see their mutation reflected
// through every alias of the same list, not just a freshly repositioned
// copy.
func (l *List) withSpan(s srcpos.Span) Value {
	l.Span = s
	return l
}

func (l *List) withContext(c *Context) Value {
	l.Ctx = c
	return l
}

// Copy returns a shallow copy of the list with its own Elements slice;
// the element Values themselves are shared with the original.
func (l *List) Copy() *List {
	elems := make([]Value, len(l.Elements))
	copy(elems, l.Elements)
	cp := &List{valueBase: l.valueBase, Elements: elems}
	return cp
}

// Callable is implemented by values that can appear on the left of a
// CallNode: user-defined Function and BuiltinFunction.
type Callable interface {
	Value
	Name() string
	Call(interp *Interpreter, args []Value, callSpan srcpos.Span) (Value, *serr.Error)
}

// Function is a user-defined `niyoga` closure. It captures its defining
// Environment by reference, not by deep copy, so later mutations of
// enclosing variables are visible inside the closure (spec.md §4.3's
// closure-capture invariant).
type Function struct {
	valueBase
	FuncName         string
	ArgNames         []string
	Body             ast.Node
	ShouldAutoReturn bool
	ParentEnv        *Environment
}

func NewFunction(name string, argNames []string, body ast.Node, shouldAutoReturn bool, parentEnv *Environment) *Function {
	if name == "" {
		name = "<anonymous>"
	}
	return &Function{FuncName: name, ArgNames: argNames, Body: body, ShouldAutoReturn: shouldAutoReturn, ParentEnv: parentEnv}
}

func (f *Function) Type() string { return "Function" }
func (f *Function) Name() string { return f.FuncName }

func (f *Function) String() string { return fmt.Sprintf("<niyoga %s>", f.FuncName) }
func (f *Function) Repr() string   { return f.String() }
func (f *Function) IsTruthy() bool { return true }

// Call invokes the function with args, attributing the call to the
// Context the value is bound to (the root context when it has none).
func (f *Function) Call(interp *Interpreter, args []Value, callSpan srcpos.Span) (Value, *serr.Error) {
	ctx := f.Ctx
	if ctx == nil {
		ctx = interp.RootCtx
	}
	return interp.callFunction(f, args, callSpan, ctx)
}

func (f *Function) withSpan(s srcpos.Span) Value {
	cp := *f
	cp.Span = s
	return &cp
}

func (f *Function) withContext(c *Context) Value {
	cp := *f
	cp.Ctx = c
	return &cp
}

// BuiltinFunction wraps a native Go implementation of a SansScript
// builtin (spec.md §4.5).
type BuiltinFunction struct {
	valueBase
	FuncName string
	ArgNames []string
	Impl     func(interp *Interpreter, args []Value, callSpan srcpos.Span) (Value, *serr.Error)
}

func NewBuiltinFunction(name string, argNames []string, impl func(*Interpreter, []Value, srcpos.Span) (Value, *serr.Error)) *BuiltinFunction {
	return &BuiltinFunction{FuncName: name, ArgNames: argNames, Impl: impl}
}

func (b *BuiltinFunction) Type() string { return "BuiltinFunction" }
func (b *BuiltinFunction) Name() string { return b.FuncName }

func (b *BuiltinFunction) String() string { return fmt.Sprintf("<builtin %s>", b.FuncName) }
func (b *BuiltinFunction) Repr() string   { return b.String() }
func (b *BuiltinFunction) IsTruthy() bool { return true }

func (b *BuiltinFunction) withSpan(s srcpos.Span) Value {
	cp := *b
	cp.Span = s
	return &cp
}

func (b *BuiltinFunction) withContext(c *Context) Value {
	cp := *b
	cp.Ctx = c
	return &cp
}

func (b *BuiltinFunction) Call(interp *Interpreter, args []Value, callSpan srcpos.Span) (Value, *serr.Error) {
	return b.Impl(interp, args, callSpan)
}
