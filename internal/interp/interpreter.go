package interp

import (
	"math"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// Host is the set of blocking operations built-ins may invoke; the
// interpreter itself never touches stdio or the filesystem directly
// (spec.md §6's host-hook boundary).
type Host interface {
	ReadLine() (string, error)
	Write(s string)
	Clear()
	ReadFile(path string) (string, error)
}

// Interpreter owns the single shared global Environment and Context, per
// spec.md §9's "Global state" design note: one Interpreter per process,
// passed into every Run call, so `charah` assignments and `niyoga`
// definitions persist across repeated top-level evaluations (spec.md §8,
// law 3).
type Interpreter struct {
	Global  *Environment
	RootCtx *Context
	Host    Host
}

// New builds an Interpreter with a freshly seeded global scope (spec.md
// §4.5's globals table) and a Host for built-in I/O.
func New(host Host) *Interpreter {
	global := NewEnvironment(nil)
	seedGlobals(global)
	interp := &Interpreter{
		Global:  global,
		RootCtx: NewContext("<program>", nil, nil),
		Host:    host,
	}
	interp.RootCtx.SymbolTable = global
	return interp
}

// Run normalizes nothing itself (that happens upstream); it lexes,
// parses, and evaluates source against the shared global environment,
// returning the value of the last top-level statement, per spec.md §6.
func (interp *Interpreter) Run(filename, source string) (Value, *serr.Error) {
	tokens, lexErr := lexer.New(filename, source).Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}
	program, parseErr := parseTokens(tokens)
	if parseErr != nil {
		return nil, parseErr
	}
	return interp.evalProgram(program)
}

// evalProgram evaluates a parsed Program against the interpreter's global
// scope and root context, statement by statement, and returns the value
// of the last statement.
func (interp *Interpreter) evalProgram(program *ast.Program) (Value, *serr.Error) {
	var last Value = NewNull()
	for _, stmt := range program.Statements {
		outcome := interp.visit(stmt, interp.Global, interp.RootCtx)
		if outcome.IsError() {
			return nil, outcome.Error()
		}
		if outcome.IsReturn() || outcome.IsBreak() || outcome.IsContinue() {
			return nil, serr.NewRuntime("'pratyavartanam'/'viramah'/'anuvartanam' outside a function or loop", stmt.Span(), nil)
		}
		last = outcome.Value()
	}
	return last, nil
}

// parseTokens is a small indirection so interpreter.go does not import
// internal/parser directly (that package in turn does not depend on
// interp), keeping the dependency graph one-directional; the real parser
// is installed through SetParser (internal/sansscript does this at
// startup). Until then the default below reports a "no parser wired"
// syntax error.
func parseTokensDefault(tokens []lexer.Token) (*ast.Program, *serr.Error) {
	return nil, serr.New(serr.InvalidSyntax, "no parser wired", srcpos.Span{})
}

var parseTokens = parseTokensDefault

// SetParser lets internal/sansscript (which imports both interp and
// parser) install the real parser without interp importing parser.
func SetParser(fn func(tokens []lexer.Token) (*ast.Program, *serr.Error)) {
	parseTokens = fn
}

// visit dispatches on node kind, returning an Outcome (spec.md §4.3's
// visitor contract).
func (interp *Interpreter) visit(node ast.Node, env *Environment, ctx *Context) *Outcome {
	switch n := node.(type) {
	case *ast.Program:
		return interp.visitStatements(n.Statements, env, ctx)
	case *ast.NumberNode:
		return interp.visitNumberNode(n, ctx)
	case *ast.StringNode:
		return interp.visitStringNode(n, ctx)
	case *ast.ListNode:
		return interp.visitListNode(n, env, ctx)
	case *ast.VarAccessNode:
		return interp.visitVarAccessNode(n, env, ctx)
	case *ast.VarAssignNode:
		return interp.visitVarAssignNode(n, env, ctx)
	case *ast.BinaryOpNode:
		return interp.visitBinaryOpNode(n, env, ctx)
	case *ast.UnaryOpNode:
		return interp.visitUnaryOpNode(n, env, ctx)
	case *ast.IfNode:
		return interp.visitIfNode(n, env, ctx)
	case *ast.ForNode:
		return interp.visitForNode(n, env, ctx)
	case *ast.WhileNode:
		return interp.visitWhileNode(n, env, ctx)
	case *ast.FuncDefNode:
		return interp.visitFuncDefNode(n, env, ctx)
	case *ast.CallNode:
		return interp.visitCallNode(n, env, ctx)
	case *ast.ReturnNode:
		return interp.visitReturnNode(n, env, ctx)
	case *ast.BreakNode:
		return Break()
	case *ast.ContinueNode:
		return Continue()
	}
	return Err(serr.NewRuntime("unhandled node type", node.Span(), nil))
}

// visitStatements evaluates a block's statements top-to-bottom, halting
// and propagating the first non-plain outcome (spec.md §5's "Ordering
// guarantees").
func (interp *Interpreter) visitStatements(stmts []ast.Node, env *Environment, ctx *Context) *Outcome {
	var last *Outcome = Ok(NewNull())
	for _, s := range stmts {
		out := interp.visit(s, env, ctx)
		if out.ShouldUnwind() {
			return out
		}
		last = out
	}
	return last
}

func (interp *Interpreter) visitNumberNode(n *ast.NumberNode, ctx *Context) *Outcome {
	var v Value
	if iv, ok := n.Token.Value.(int64); ok {
		v = NewInt(iv)
	} else {
		v = NewFloat(n.Token.Value.(float64))
	}
	v = SetPos(v, n.Span())
	v = SetContext(v, ctx)
	return Ok(v)
}

func (interp *Interpreter) visitStringNode(n *ast.StringNode, ctx *Context) *Outcome {
	v := Value(NewStringWithQuote(n.Token.Value.(string), n.Token.Quote))
	v = SetPos(v, n.Span())
	v = SetContext(v, ctx)
	return Ok(v)
}

func (interp *Interpreter) visitListNode(n *ast.ListNode, env *Environment, ctx *Context) *Outcome {
	elems := make([]Value, 0, len(n.Elements))
	for _, e := range n.Elements {
		out := interp.visit(e, env, ctx)
		if out.ShouldUnwind() {
			return out
		}
		elems = append(elems, out.Value())
	}
	v := Value(NewList(elems))
	v = SetPos(v, n.Span())
	v = SetContext(v, ctx)
	return Ok(v)
}

func (interp *Interpreter) visitVarAccessNode(n *ast.VarAccessNode, env *Environment, ctx *Context) *Outcome {
	name := n.NameToken.Value.(string)
	v, ok := env.Get(name)
	if !ok {
		return Err(serr.NewRuntime("'"+name+"' avyakta nama (undefined name)", n.Span(), interp.trace(ctx)))
	}
	v = SetPos(v, n.Span())
	v = SetContext(v, ctx)
	return Ok(v)
}

func (interp *Interpreter) visitVarAssignNode(n *ast.VarAssignNode, env *Environment, ctx *Context) *Outcome {
	out := interp.visit(n.Value, env, ctx)
	if out.ShouldUnwind() {
		return out
	}
	name := n.NameToken.Value.(string)
	env.Define(name, out.Value())
	return Ok(out.Value())
}

func (interp *Interpreter) visitUnaryOpNode(n *ast.UnaryOpNode, env *Environment, ctx *Context) *Outcome {
	out := interp.visit(n.Operand, env, ctx)
	if out.ShouldUnwind() {
		return out
	}
	operand := out.Value()

	if n.OpToken.Kind == lexer.MINUS {
		num, ok := operand.(*Number)
		if !ok {
			return Err(illegalOperation(operand, n.Span()))
		}
		result := Value(NewFloatOrInt(-num.Value, num.IsInt))
		result = SetPos(result, n.Span())
		result = SetContext(result, ctx)
		return Ok(result)
	}

	if n.OpToken.Matches(lexer.KEYWORD, "nahi") {
		result := Value(boolNumber(!operand.IsTruthy()))
		result = SetPos(result, n.Span())
		result = SetContext(result, ctx)
		return Ok(result)
	}

	return Err(illegalOperation(operand, n.Span()))
}

func (interp *Interpreter) visitIfNode(n *ast.IfNode, env *Environment, ctx *Context) *Outcome {
	for _, c := range n.Cases {
		condOut := interp.visit(c.Condition, env, ctx)
		if condOut.ShouldUnwind() {
			return condOut
		}
		if condOut.Value().IsTruthy() {
			bodyOut := interp.visit(c.Body, env, ctx)
			if bodyOut.ShouldUnwind() {
				return bodyOut
			}
			if c.ShouldReturnNull {
				return Ok(NewNull())
			}
			return bodyOut
		}
	}
	if n.Else != nil {
		bodyOut := interp.visit(n.Else.Body, env, ctx)
		if bodyOut.ShouldUnwind() {
			return bodyOut
		}
		if n.Else.ShouldReturnNull {
			return Ok(NewNull())
		}
		return bodyOut
	}
	return Ok(NewNull())
}

func (interp *Interpreter) visitForNode(n *ast.ForNode, env *Environment, ctx *Context) *Outcome {
	startOut := interp.visit(n.Start, env, ctx)
	if startOut.ShouldUnwind() {
		return startOut
	}
	startNum, ok := startOut.Value().(*Number)
	if !ok {
		return Err(serr.NewRuntime("for-loop start must be a number", n.Start.Span(), interp.trace(ctx)))
	}

	endOut := interp.visit(n.End, env, ctx)
	if endOut.ShouldUnwind() {
		return endOut
	}
	endNum, ok := endOut.Value().(*Number)
	if !ok {
		return Err(serr.NewRuntime("for-loop end must be a number", n.End.Span(), interp.trace(ctx)))
	}

	step := 1.0
	if n.Step != nil {
		stepOut := interp.visit(n.Step, env, ctx)
		if stepOut.ShouldUnwind() {
			return stepOut
		}
		stepNum, ok := stepOut.Value().(*Number)
		if !ok {
			return Err(serr.NewRuntime("for-loop step must be a number", n.Step.Span(), interp.trace(ctx)))
		}
		step = stepNum.Value
	}

	varName := n.VarToken.Value.(string)
	i := startNum.Value

	condition := func() bool {
		if step >= 0 {
			return i < endNum.Value
		}
		return i > endNum.Value
	}

	var collected []Value
	for condition() {
		env.Define(varName, NewFloatOrInt(i, startNum.IsInt && step == math.Trunc(step)))
		i += step

		bodyOut := interp.visit(n.Body, env, ctx)
		if bodyOut.IsContinue() {
			continue
		}
		if bodyOut.IsBreak() {
			break
		}
		if bodyOut.ShouldUnwind() {
			return bodyOut
		}
		collected = append(collected, bodyOut.Value())
	}

	if n.ShouldReturnNull {
		return Ok(NewNull())
	}
	return Ok(NewList(collected))
}

func (interp *Interpreter) visitWhileNode(n *ast.WhileNode, env *Environment, ctx *Context) *Outcome {
	var collected []Value
	for {
		condOut := interp.visit(n.Condition, env, ctx)
		if condOut.ShouldUnwind() {
			return condOut
		}
		if !condOut.Value().IsTruthy() {
			break
		}

		bodyOut := interp.visit(n.Body, env, ctx)
		if bodyOut.IsContinue() {
			continue
		}
		if bodyOut.IsBreak() {
			break
		}
		if bodyOut.ShouldUnwind() {
			return bodyOut
		}
		collected = append(collected, bodyOut.Value())
	}

	if n.ShouldReturnNull {
		return Ok(NewNull())
	}
	return Ok(NewList(collected))
}

func (interp *Interpreter) visitFuncDefNode(n *ast.FuncDefNode, env *Environment, ctx *Context) *Outcome {
	argNames := make([]string, len(n.ArgTokens))
	for i, t := range n.ArgTokens {
		argNames[i] = t.Value.(string)
	}
	name := ""
	if n.HasName {
		name = n.NameToken.Value.(string)
	}

	fn := NewFunction(name, argNames, n.Body, n.ShouldAutoReturn, env)
	v := Value(fn)
	v = SetPos(v, n.Span())
	v = SetContext(v, ctx)

	if n.HasName {
		env.Define(name, v)
	}
	return Ok(v)
}

func (interp *Interpreter) visitCallNode(n *ast.CallNode, env *Environment, ctx *Context) *Outcome {
	calleeOut := interp.visit(n.Callee, env, ctx)
	if calleeOut.ShouldUnwind() {
		return calleeOut
	}
	callee := SetPos(calleeOut.Value(), n.Span())

	callable, ok := callee.(Callable)
	if !ok {
		return Err(serr.NewRuntime(callee.Type()+" is not callable", n.Span(), interp.trace(ctx)))
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		argOut := interp.visit(a, env, ctx)
		if argOut.ShouldUnwind() {
			return argOut
		}
		args = append(args, argOut.Value())
	}

	result, err := interp.call(callable, args, n.Span(), ctx)
	if err != nil {
		return Err(err)
	}
	return Ok(result)
}

// call dispatches to a Function or BuiltinFunction, enforcing the shared
// call-depth guard (spec.md §4.4's stack-overflow note).
func (interp *Interpreter) call(callable Callable, args []Value, callSpan srcpos.Span, callerCtx *Context) (Value, *serr.Error) {
	if callerCtx.Depth() >= maxCallDepth {
		return nil, serr.NewRuntime("maximum recursion depth exceeded", callSpan, interp.trace(callerCtx))
	}

	switch fn := callable.(type) {
	case *Function:
		return interp.callFunction(fn, args, callSpan, callerCtx)
	case *BuiltinFunction:
		return fn.Call(interp, args, callSpan)
	}
	return nil, serr.NewRuntime("value is not callable", callSpan, interp.trace(callerCtx))
}

func (interp *Interpreter) callFunction(fn *Function, args []Value, callSpan srcpos.Span, callerCtx *Context) (Value, *serr.Error) {
	if len(args) != len(fn.ArgNames) {
		delta := len(args) - len(fn.ArgNames)
		word := "too many"
		if delta < 0 {
			word = "too few"
		}
		return nil, serr.NewRuntime(
			word+" arguments passed into '"+fn.Name()+"'", callSpan, interp.trace(callerCtx))
	}

	entryPos := callSpan.Start
	execCtx := NewContext(fn.Name(), callerCtx, &entryPos)
	scope := NewEnvironment(fn.ParentEnv)
	execCtx.SymbolTable = scope

	for i, name := range fn.ArgNames {
		arg := SetContext(SetPos(args[i], callSpan), execCtx)
		scope.Define(name, arg)
	}

	bodyOut := interp.visit(fn.Body, scope, execCtx)
	if bodyOut.IsError() {
		return nil, bodyOut.Error()
	}

	if bodyOut.IsReturn() {
		v := bodyOut.Value()
		if v == nil {
			return NewNull(), nil
		}
		return v, nil
	}
	if fn.ShouldAutoReturn {
		return bodyOut.Value(), nil
	}
	return NewNull(), nil
}

// Call exposes function invocation to built-ins (e.g. a future
// higher-order builtin); for a user-defined Function each arg is
// re-positioned to callSpan, as on an ordinary call.
func (interp *Interpreter) Call(callable Callable, args []Value, callSpan srcpos.Span, ctx *Context) (Value, *serr.Error) {
	return interp.call(callable, args, callSpan, ctx)
}

func (interp *Interpreter) visitReturnNode(n *ast.ReturnNode, env *Environment, ctx *Context) *Outcome {
	if n.Value == nil {
		return Return(NewNull())
	}
	out := interp.visit(n.Value, env, ctx)
	if out.IsError() {
		return out
	}
	return Return(out.Value())
}

// trace walks ctx's call chain into a serr.StackTrace for rendering.
func (interp *Interpreter) trace(ctx *Context) serr.StackTrace {
	var frames []serr.StackFrame
	for c := ctx; c != nil; c = c.Parent {
		frames = append([]serr.StackFrame{{DisplayName: c.DisplayName, EntryPos: c.EntryPos}}, frames...)
	}
	return frames
}

func illegalOperation(v Value, span srcpos.Span) *serr.Error {
	return serr.NewRuntime("illegal operation on "+v.Type(), span, nil)
}
