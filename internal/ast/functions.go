package ast

import (
	"strings"

	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// FuncDefNode is `niyoga NAME?(args...): body`. NameToken is the zero
// Token when the function is anonymous. ShouldAutoReturn is true for the
// single-expression body form, mirroring spec.md §4.2's `body` production.
type FuncDefNode struct {
	base
	NameToken        lexer.Token
	HasName          bool
	ArgTokens        []lexer.Token
	Body             Node
	ShouldAutoReturn bool
}

func NewFuncDefNode(span srcpos.Span, nameToken lexer.Token, hasName bool, argTokens []lexer.Token, body Node, shouldAutoReturn bool) *FuncDefNode {
	return &FuncDefNode{
		base: base{span}, NameToken: nameToken, HasName: hasName,
		ArgTokens: argTokens, Body: body, ShouldAutoReturn: shouldAutoReturn,
	}
}

func (n *FuncDefNode) String() string {
	names := make([]string, len(n.ArgTokens))
	for i, t := range n.ArgTokens {
		names[i] = t.Value.(string)
	}
	name := ""
	if n.HasName {
		name = n.NameToken.Value.(string)
	}
	return "niyoga " + name + "(" + strings.Join(names, ", ") + "): " + n.Body.String()
}
