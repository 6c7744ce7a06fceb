package ast

import (
	"strings"

	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// IfCase is one `yadi`/`anyadi` condition/body pair. ShouldReturnNull is
// true for the block form (body terminated by `anta`) and false for the
// single-expression form, per spec.md §4.2's `body` production.
type IfCase struct {
	Condition        Node
	Body             Node
	ShouldReturnNull bool
}

// ElseCase is the optional trailing `uta` body.
type ElseCase struct {
	Body             Node
	ShouldReturnNull bool
}

// IfNode is a `yadi ... anyadi ... uta ...` conditional chain.
type IfNode struct {
	base
	Cases []IfCase
	Else  *ElseCase
}

func NewIfNode(span srcpos.Span, cases []IfCase, elseCase *ElseCase) *IfNode {
	return &IfNode{base: base{span}, Cases: cases, Else: elseCase}
}

func (n *IfNode) String() string {
	var sb strings.Builder
	for i, c := range n.Cases {
		kw := "yadi"
		if i > 0 {
			kw = "anyadi"
		}
		sb.WriteString(kw + " " + c.Condition.String() + ": " + c.Body.String() + " ")
	}
	if n.Else != nil {
		sb.WriteString("uta: " + n.Else.Body.String())
	}
	return strings.TrimSpace(sb.String())
}

// ForNode is `krrite VAR = start ityasmai end (charana step)? : body`.
type ForNode struct {
	base
	VarToken         lexer.Token
	Start, End, Step Node // Step may be nil (defaults to Number(1) at eval time)
	Body             Node
	ShouldReturnNull bool
}

func NewForNode(span srcpos.Span, varToken lexer.Token, start, end, step, body Node, shouldReturnNull bool) *ForNode {
	return &ForNode{
		base: base{span}, VarToken: varToken,
		Start: start, End: end, Step: step,
		Body: body, ShouldReturnNull: shouldReturnNull,
	}
}

func (n *ForNode) String() string {
	return "krrite " + n.VarToken.Value.(string) + " = " + n.Start.String() +
		" ityasmai " + n.End.String() + ": " + n.Body.String()
}

// WhileNode is `sopanah condition : body`.
type WhileNode struct {
	base
	Condition        Node
	Body             Node
	ShouldReturnNull bool
}

func NewWhileNode(span srcpos.Span, condition, body Node, shouldReturnNull bool) *WhileNode {
	return &WhileNode{base: base{span}, Condition: condition, Body: body, ShouldReturnNull: shouldReturnNull}
}

func (n *WhileNode) String() string {
	return "sopanah " + n.Condition.String() + ": " + n.Body.String()
}

// ReturnNode is `pratyavartanam expr?`.
type ReturnNode struct {
	base
	Value Node // nil when bare `pratyavartanam`
}

func NewReturnNode(span srcpos.Span, value Node) *ReturnNode {
	return &ReturnNode{base: base{span}, Value: value}
}

func (n *ReturnNode) String() string {
	if n.Value == nil {
		return "pratyavartanam"
	}
	return "pratyavartanam " + n.Value.String()
}

// BreakNode is `viramah`.
type BreakNode struct{ base }

func NewBreakNode(span srcpos.Span) *BreakNode { return &BreakNode{base{span}} }
func (n *BreakNode) String() string            { return "viramah" }

// ContinueNode is `anuvartanam`.
type ContinueNode struct{ base }

func NewContinueNode(span srcpos.Span) *ContinueNode { return &ContinueNode{base{span}} }
func (n *ContinueNode) String() string               { return "anuvartanam" }
