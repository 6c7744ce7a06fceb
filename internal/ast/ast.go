// Package ast defines the SansScript abstract syntax tree: tagged node
// variants, each spanning the source tokens it was parsed from, per
// spec.md §3.
package ast

import (
	"strings"

	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// Node is implemented by every AST node. Span returns the source range the
// node was parsed from; spec.md §3's invariant that Start <= End and both
// lie within the source is established by the parser, not re-checked here.
type Node interface {
	Span() srcpos.Span
	String() string
}

// base embeds a Span and a String() helper into every concrete node so
// individual node types only need to supply their own text rendering.
type base struct {
	span srcpos.Span
}

func (b base) Span() srcpos.Span { return b.span }

// Program is the top-level node: the statement list produced by the
// `statements` grammar production (spec.md §4.2).
type Program struct {
	base
	Statements []Node
}

func NewProgram(span srcpos.Span, statements []Node) *Program {
	return &Program{base: base{span}, Statements: statements}
}

func (p *Program) String() string {
	var sb strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// NumberNode wraps an INT or FLOAT token.
type NumberNode struct {
	base
	Token lexer.Token
}

func NewNumberNode(tok lexer.Token) *NumberNode {
	return &NumberNode{base: base{tok.Span}, Token: tok}
}

func (n *NumberNode) String() string { return n.Token.String() }

// StringNode wraps a STRING token, preserving its quote style.
type StringNode struct {
	base
	Token lexer.Token
}

func NewStringNode(tok lexer.Token) *StringNode {
	return &StringNode{base: base{tok.Span}, Token: tok}
}

func (n *StringNode) String() string { return n.Token.String() }

// ListNode is a `[a, b, c]` literal.
type ListNode struct {
	base
	Elements []Node
}

func NewListNode(span srcpos.Span, elements []Node) *ListNode {
	return &ListNode{base: base{span}, Elements: elements}
}

func (n *ListNode) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VarAccessNode reads a variable by name.
type VarAccessNode struct {
	base
	NameToken lexer.Token
}

func NewVarAccessNode(tok lexer.Token) *VarAccessNode {
	return &VarAccessNode{base: base{tok.Span}, NameToken: tok}
}

func (n *VarAccessNode) String() string { return n.NameToken.Value.(string) }

// VarAssignNode is `charah NAME = value`.
type VarAssignNode struct {
	base
	NameToken lexer.Token
	Value     Node
}

func NewVarAssignNode(span srcpos.Span, nameToken lexer.Token, value Node) *VarAssignNode {
	return &VarAssignNode{base: base{span}, NameToken: nameToken, Value: value}
}

func (n *VarAssignNode) String() string {
	return "charah " + n.NameToken.Value.(string) + " = " + n.Value.String()
}

// BinaryOpNode is `left OP right`.
type BinaryOpNode struct {
	base
	Left, Right Node
	OpToken     lexer.Token
}

func NewBinaryOpNode(left Node, op lexer.Token, right Node) *BinaryOpNode {
	return &BinaryOpNode{
		base:    base{srcpos.NewSpan(left.Span().Start, right.Span().End)},
		Left:    left,
		Right:   right,
		OpToken: op,
	}
}

func (n *BinaryOpNode) String() string {
	return "(" + n.Left.String() + " " + n.OpToken.String() + " " + n.Right.String() + ")"
}

// UnaryOpNode is `OP operand` (e.g. `-x`, `nahi x`).
type UnaryOpNode struct {
	base
	OpToken lexer.Token
	Operand Node
}

func NewUnaryOpNode(op lexer.Token, operand Node) *UnaryOpNode {
	return &UnaryOpNode{
		base:    base{srcpos.NewSpan(op.Span.Start, operand.Span().End)},
		OpToken: op,
		Operand: operand,
	}
}

func (n *UnaryOpNode) String() string {
	return "(" + n.OpToken.String() + " " + n.Operand.String() + ")"
}

// CallNode is `callee(args...)`.
type CallNode struct {
	base
	Callee Node
	Args   []Node
}

func NewCallNode(span srcpos.Span, callee Node, args []Node) *CallNode {
	return &CallNode{base: base{span}, Callee: callee, Args: args}
}

func (n *CallNode) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
