package interp

import (
	"math"
	"strings"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/serr"
)

// NewNull returns SansScript's canonical "no value" result: Number(0)
// tagged as an integer (spec.md §3's Number.null).
func NewNull() *Number { return NewInt(0) }

// NewFloatOrInt builds a Number with the given float payload, tagged as
// an int when isInt is true. Used by ForNode to keep the loop variable's
// Number.IsInt faithful to its start value's kind.
func NewFloatOrInt(v float64, isInt bool) *Number {
	return &Number{Value: v, IsInt: isInt}
}

// boolNumber converts a Go bool into SansScript's 1/0 Number
// representation (spec.md §4.4's logical-op contract).
func boolNumber(b bool) *Number {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

func (interp *Interpreter) visitBinaryOpNode(n *ast.BinaryOpNode, env *Environment, ctx *Context) *Outcome {
	leftOut := interp.visit(n.Left, env, ctx)
	if leftOut.ShouldUnwind() {
		return leftOut
	}
	rightOut := interp.visit(n.Right, env, ctx)
	if rightOut.ShouldUnwind() {
		return rightOut
	}

	result, err := applyBinaryOp(leftOut.Value(), n.OpToken, rightOut.Value())
	if err != nil {
		return Err(err)
	}
	result = SetPos(result, n.Span())
	result = SetContext(result, ctx)
	return Ok(result)
}

// applyBinaryOp implements spec.md §4.4's operation contract table,
// double-dispatching on the left operand's runtime type.
func applyBinaryOp(left Value, op lexer.Token, right Value) (Value, *serr.Error) {
	switch l := left.(type) {
	case *Number:
		return numberOp(l, op, right)
	case *String:
		return stringOp(l, op, right)
	case *List:
		return listOp(l, op, right)
	}
	return nil, illegalOperation(left, op.Span)
}

func numberOp(l *Number, op lexer.Token, right Value) (Value, *serr.Error) {
	if isLogicalOp(op) {
		return logicalOp(l, op, right)
	}
	if isComparisonOp(op) {
		r, ok := right.(*Number)
		if !ok {
			return nil, illegalOperation(right, op.Span)
		}
		return boolNumber(compareNumbers(l.Value, op, r.Value)), nil
	}

	r, ok := right.(*Number)
	if !ok {
		return nil, illegalOperation(right, op.Span)
	}
	isInt := l.IsInt && r.IsInt

	switch op.Kind {
	case lexer.PLUS:
		return numResult(l.Value+r.Value, isInt), nil
	case lexer.MINUS:
		return numResult(l.Value-r.Value, isInt), nil
	case lexer.MUL:
		return numResult(l.Value*r.Value, isInt), nil
	case lexer.DIV:
		if r.Value == 0 {
			return nil, serr.NewRuntime("shunyen vibhagah (division by zero)", op.Span, nil)
		}
		return numResult(l.Value/r.Value, isInt && isExactDivision(l.Value, r.Value)), nil
	case lexer.POW:
		return numResult(math.Pow(l.Value, r.Value), isInt && r.Value >= 0), nil
	}
	return nil, illegalOperation(right, op.Span)
}

func isExactDivision(a, b float64) bool {
	if b == 0 {
		return false
	}
	q := a / b
	return q == float64(int64(q))
}

func numResult(v float64, isInt bool) *Number {
	return &Number{Value: v, IsInt: isInt}
}

func isComparisonOp(op lexer.Token) bool {
	switch op.Kind {
	case lexer.EE, lexer.NE, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return true
	}
	return false
}

func isLogicalOp(op lexer.Token) bool {
	return op.Matches(lexer.KEYWORD, "tatha") || op.Matches(lexer.KEYWORD, "tathA") ||
		op.Matches(lexer.KEYWORD, "va") || op.Matches(lexer.KEYWORD, "vA")
}

// logicalOp implements `tatha`/`va`, non-short-circuiting: both operands
// are always fully evaluated by the caller before this runs (spec.md §5,
// §9's frozen-behavior design note).
func logicalOp(l *Number, op lexer.Token, right Value) (Value, *serr.Error) {
	if op.Matches(lexer.KEYWORD, "tatha") || op.Matches(lexer.KEYWORD, "tathA") {
		return boolNumber(l.IsTruthy() && right.IsTruthy()), nil
	}
	return boolNumber(l.IsTruthy() || right.IsTruthy()), nil
}

func compareNumbers(l float64, op lexer.Token, r float64) bool {
	switch op.Kind {
	case lexer.EE:
		return l == r
	case lexer.NE:
		return l != r
	case lexer.LT:
		return l < r
	case lexer.GT:
		return l > r
	case lexer.LTE:
		return l <= r
	case lexer.GTE:
		return l >= r
	}
	return false
}

func stringOp(l *String, op lexer.Token, right Value) (Value, *serr.Error) {
	switch op.Kind {
	case lexer.PLUS:
		r, ok := right.(*String)
		if !ok {
			return nil, illegalOperation(right, op.Span)
		}
		return NewString(l.Value + r.Value), nil
	case lexer.MUL:
		r, ok := right.(*Number)
		if !ok {
			return nil, illegalOperation(right, op.Span)
		}
		if r.Value < 0 {
			return nil, illegalOperation(right, op.Span)
		}
		return NewString(strings.Repeat(l.Value, int(r.Value))), nil
	}
	return nil, illegalOperation(right, op.Span)
}

func listOp(l *List, op lexer.Token, right Value) (Value, *serr.Error) {
	switch op.Kind {
	case lexer.PLUS:
		elems := append(append([]Value{}, l.Elements...), right)
		return NewList(elems), nil

	case lexer.MINUS:
		idxNum, ok := right.(*Number)
		if !ok {
			return nil, illegalOperation(right, op.Span)
		}
		idx := int(idxNum.Value)
		if idx < 0 || idx >= len(l.Elements) {
			return nil, serr.NewRuntime("avaidh sthanam (index out of range)", op.Span, nil)
		}
		elems := make([]Value, 0, len(l.Elements)-1)
		elems = append(elems, l.Elements[:idx]...)
		elems = append(elems, l.Elements[idx+1:]...)
		return NewList(elems), nil

	case lexer.MUL:
		if r, ok := right.(*List); ok {
			n := len(l.Elements)
			if len(r.Elements) > n {
				n = len(r.Elements)
			}
			result := make([]Value, n)
			for i := 0; i < n; i++ {
				a := numberOrZero(l.Elements, i)
				b := numberOrZero(r.Elements, i)
				prod, err := numberOp(a, lexer.Token{Kind: lexer.MUL, Span: op.Span}, b)
				if err != nil {
					return nil, err
				}
				result[i] = prod
			}
			return NewList(result), nil
		}
		elems := append(append([]Value{}, l.Elements...), right)
		return NewList(elems), nil

	case lexer.DIV:
		idxNum, ok := right.(*Number)
		if !ok {
			return nil, illegalOperation(right, op.Span)
		}
		idx := int(idxNum.Value)
		if idx < 0 || idx >= len(l.Elements) {
			return nil, serr.NewRuntime("avaidh sthanam (index out of range)", op.Span, nil)
		}
		return l.Elements[idx], nil
	}
	return nil, illegalOperation(right, op.Span)
}

// numberOrZero reads elems[i] as a Number, substituting Number(0) when i
// is out of range (the "shorter padded with Number(0)" rule, spec.md
// §4.4) or the element isn't numeric.
func numberOrZero(elems []Value, i int) *Number {
	if i >= len(elems) {
		return NewInt(0)
	}
	if n, ok := elems[i].(*Number); ok {
		return n
	}
	return NewInt(0)
}
