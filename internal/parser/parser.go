// Package parser implements SansScript's recursive-descent, precedence-
// climbing grammar (spec.md §4.2), producing internal/ast nodes.
package parser

import (
	"fmt"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// ParseResult is the bounded-backtracking envelope spec.md §4.2/§9 require:
// each parse procedure returns one of these so a caller can tell how many
// tokens were consumed before failing and rewind if needed. This is the
// same advance-count idiom the original interpreter uses, not replaced with
// "first error wins" (spec.md §9).
type ParseResult struct {
	Node                  ast.Node
	Err                   *serr.Error
	AdvanceCount          int
	LastRegisteredAdvance int
	ToReverseCount        int
}

func (r *ParseResult) registerAdvancement() {
	r.AdvanceCount++
	r.LastRegisteredAdvance = 1
}

// Register folds another ParseResult into this one: its advance count is
// added, and its error (if any) replaces ours.
func (r *ParseResult) Register(other *ParseResult) ast.Node {
	r.AdvanceCount += other.AdvanceCount
	if other.Err != nil {
		r.Err = other.Err
	}
	return other.Node
}

// TryRegister folds other in like Register, but on failure leaves a
// ToReverseCount instead of propagating the error, so the caller can
// rewind the parser and attempt a different production.
func (r *ParseResult) TryRegister(other *ParseResult) ast.Node {
	if other.Err != nil {
		r.ToReverseCount = other.AdvanceCount
		return nil
	}
	return r.Register(other)
}

func (r *ParseResult) success(node ast.Node) *ParseResult {
	r.Node = node
	return r
}

// failure only overwrites an earlier error when no advances have occurred
// since the last registered point, preserving the deepest informative
// diagnostic (spec.md §4.2's error policy).
func (r *ParseResult) failure(err *serr.Error) *ParseResult {
	if r.Err == nil || r.LastRegisteredAdvance == 0 {
		r.Err = err
	}
	return r
}

// Parser is a recursive-descent parser over a pre-scanned token stream.
type Parser struct {
	tokens   []lexer.Token
	tokenIdx int
	current  lexer.Token
}

// New builds a Parser over tokens, which must already end with an EOF
// token (spec.md §8, law 1).
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, tokenIdx: -1}
	p.advance()
	return p
}

func (p *Parser) advance() lexer.Token {
	p.tokenIdx++
	p.updateCurrent()
	return p.current
}

func (p *Parser) reverse(count int) lexer.Token {
	if count == 0 {
		count = 1
	}
	p.tokenIdx -= count
	p.updateCurrent()
	return p.current
}

func (p *Parser) updateCurrent() {
	if p.tokenIdx >= 0 && p.tokenIdx < len(p.tokens) {
		p.current = p.tokens[p.tokenIdx]
	}
}

// Parse runs the top-level `statements EOF` production.
func (p *Parser) Parse() (*ast.Program, *serr.Error) {
	res := p.statements()
	if res.Err != nil {
		return nil, res.Err
	}
	if p.current.Kind != lexer.EOF {
		return nil, serr.New(serr.InvalidSyntax,
			"expected an operator, keyword, or end of input", spanOf(p.current))
	}
	return res.Node.(*ast.Program), nil
}

func spanOf(tok lexer.Token) srcpos.Span { return tok.Span }

// statements parses `NEWLINE* statement (NEWLINE+ statement)* NEWLINE*`.
func (p *Parser) statements() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	var stmts []ast.Node

	for p.current.Kind == lexer.NEWLINE {
		res.registerAdvancement()
		p.advance()
	}

	first := res.Register(p.statement())
	if res.Err != nil {
		return res
	}
	stmts = append(stmts, first)

	moreStatements := true
	for {
		newlineCount := 0
		for p.current.Kind == lexer.NEWLINE {
			res.registerAdvancement()
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			moreStatements = false
		}
		if !moreStatements {
			break
		}
		if p.isBlockEnd() {
			break
		}
		stmtRes := p.statement()
		if stmtRes.Err != nil {
			p.reverse(stmtRes.ToReverseCount)
			moreStatements = false
			continue
		}
		stmts = append(stmts, stmtRes.Node)
		res.AdvanceCount += stmtRes.AdvanceCount
	}

	end := p.current.Span.Start
	return res.success(ast.NewProgram(srcpos.NewSpan(start, end), stmts))
}

// isBlockEnd reports whether the current token terminates a statement
// list started inside a block body (EOF or the `anta` family of
// block-end keywords, or `anyadi`/`uta` when closing an if-case body).
func (p *Parser) isBlockEnd() bool {
	if p.current.Kind == lexer.EOF {
		return true
	}
	if p.current.Matches(lexer.KEYWORD, "anta") || p.current.Matches(lexer.KEYWORD, "aMta") || p.current.Matches(lexer.KEYWORD, "amta") {
		return true
	}
	if p.current.Matches(lexer.KEYWORD, "anyadi") || p.current.Matches(lexer.KEYWORD, "uta") {
		return true
	}
	return false
}

// statement parses `pratyavartanam expr? | viramah | anuvartanam | expr`.
func (p *Parser) statement() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	if p.current.Matches(lexer.KEYWORD, "pratyavartanam") || p.current.Matches(lexer.KEYWORD, "pratyAvartanam") {
		res.registerAdvancement()
		p.advance()

		var value ast.Node
		if p.current.Kind != lexer.NEWLINE && p.current.Kind != lexer.EOF && !p.isBlockEnd() {
			v := res.Register(p.expr())
			if res.Err != nil {
				return res
			}
			value = v
		}
		return res.success(ast.NewReturnNode(srcpos.NewSpan(start, p.current.Span.Start), value))
	}

	if p.current.Matches(lexer.KEYWORD, "viramah") || p.current.Matches(lexer.KEYWORD, "virAmaH") {
		res.registerAdvancement()
		p.advance()
		return res.success(ast.NewBreakNode(srcpos.NewSpan(start, p.current.Span.Start)))
	}

	if p.current.Matches(lexer.KEYWORD, "anuvartanam") {
		res.registerAdvancement()
		p.advance()
		return res.success(ast.NewContinueNode(srcpos.NewSpan(start, p.current.Span.Start)))
	}

	expr := res.Register(p.expr())
	if res.Err != nil {
		return res
	}
	return res.success(expr)
}

// expr parses `charah IDENT '=' expr | comp_expr (('tatha'|'va') comp_expr)*`.
func (p *Parser) expr() *ParseResult {
	res := &ParseResult{}

	if p.current.Matches(lexer.KEYWORD, "charaH") || p.current.Matches(lexer.KEYWORD, "charah") {
		start := p.current.Span.Start
		res.registerAdvancement()
		p.advance()

		if p.current.Kind != lexer.IDENTIFIER {
			return res.failure(serr.New(serr.InvalidSyntax, "expected an identifier after 'charah'", spanOf(p.current)))
		}
		nameToken := p.current
		res.registerAdvancement()
		p.advance()

		if p.current.Kind != lexer.EQ {
			return res.failure(serr.New(serr.InvalidSyntax, "expected '='", spanOf(p.current)))
		}
		res.registerAdvancement()
		p.advance()

		value := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		return res.success(ast.NewVarAssignNode(srcpos.NewSpan(start, value.Span().End), nameToken, value))
	}

	left := res.Register(p.compExpr())
	if res.Err != nil {
		return res
	}

	for p.current.Matches(lexer.KEYWORD, "tathA") || p.current.Matches(lexer.KEYWORD, "tatha") ||
		p.current.Matches(lexer.KEYWORD, "vA") || p.current.Matches(lexer.KEYWORD, "va") {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		right := res.Register(p.compExpr())
		if res.Err != nil {
			return res
		}
		left = ast.NewBinaryOpNode(left, opToken, right)
	}

	return res.success(left)
}

// compExpr parses `'nahi' comp_expr | arith_expr (CMP arith_expr)*`.
func (p *Parser) compExpr() *ParseResult {
	res := &ParseResult{}

	if p.current.Matches(lexer.KEYWORD, "nahi") {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		operand := res.Register(p.compExpr())
		if res.Err != nil {
			return res
		}
		return res.success(ast.NewUnaryOpNode(opToken, operand))
	}

	left := res.Register(p.arithExpr())
	if res.Err != nil {
		return res
	}

	for isComparisonOp(p.current.Kind) {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		right := res.Register(p.arithExpr())
		if res.Err != nil {
			return res
		}
		left = ast.NewBinaryOpNode(left, opToken, right)
	}

	return res.success(left)
}

func isComparisonOp(k lexer.Kind) bool {
	switch k {
	case lexer.EE, lexer.NE, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return true
	}
	return false
}

// arithExpr parses `term (('+'|'-') term)*`.
func (p *Parser) arithExpr() *ParseResult {
	return p.binOpLeft(p.term, lexer.PLUS, lexer.MINUS)
}

// term parses `factor (('*'|'/') factor)*`.
func (p *Parser) term() *ParseResult {
	return p.binOpLeft(p.factor, lexer.MUL, lexer.DIV)
}

// binOpLeft factors out the common left-associative
// "operand (OP operand)*" shape shared by arithExpr and term.
func (p *Parser) binOpLeft(operand func() *ParseResult, kinds ...lexer.Kind) *ParseResult {
	res := &ParseResult{}

	left := res.Register(operand())
	if res.Err != nil {
		return res
	}

	for containsKind(kinds, p.current.Kind) {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		right := res.Register(operand())
		if res.Err != nil {
			return res
		}
		left = ast.NewBinaryOpNode(left, opToken, right)
	}

	return res.success(left)
}

func containsKind(kinds []lexer.Kind, k lexer.Kind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// factor parses `('+'|'-') factor | power`.
func (p *Parser) factor() *ParseResult {
	res := &ParseResult{}

	if p.current.Kind == lexer.PLUS || p.current.Kind == lexer.MINUS {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		operand := res.Register(p.factor())
		if res.Err != nil {
			return res
		}
		return res.success(ast.NewUnaryOpNode(opToken, operand))
	}

	return p.power()
}

// power parses `call ('^' factor)?`, right-associative.
func (p *Parser) power() *ParseResult {
	res := &ParseResult{}

	left := res.Register(p.call())
	if res.Err != nil {
		return res
	}

	if p.current.Kind == lexer.POW {
		opToken := p.current
		res.registerAdvancement()
		p.advance()

		right := res.Register(p.factor())
		if res.Err != nil {
			return res
		}
		return res.success(ast.NewBinaryOpNode(left, opToken, right))
	}

	return res.success(left)
}

// call parses `atom ('(' (expr (',' expr)*)? ')')?`.
func (p *Parser) call() *ParseResult {
	res := &ParseResult{}

	atomNode := res.Register(p.atom())
	if res.Err != nil {
		return res
	}

	if p.current.Kind == lexer.LPAREN {
		start := atomNode.Span().Start
		res.registerAdvancement()
		p.advance()

		var args []ast.Node

		if p.current.Kind == lexer.RPAREN {
			res.registerAdvancement()
			p.advance()
		} else {
			arg := res.Register(p.expr())
			if res.Err != nil {
				return res.failure(serr.New(serr.InvalidSyntax,
					"expected an expression, ')', or a value", spanOf(p.current)))
			}
			args = append(args, arg)

			for p.current.Kind == lexer.COMMA {
				res.registerAdvancement()
				p.advance()

				arg := res.Register(p.expr())
				if res.Err != nil {
					return res
				}
				args = append(args, arg)
			}

			if p.current.Kind != lexer.RPAREN {
				return res.failure(serr.New(serr.InvalidSyntax, "expected ',' or ')'", spanOf(p.current)))
			}
			res.registerAdvancement()
			p.advance()
		}

		return res.success(ast.NewCallNode(srcpos.NewSpan(start, p.current.Span.Start), atomNode, args))
	}

	return res.success(atomNode)
}

// atom parses literals, identifiers, parenthesized expressions, and the
// list/if/for/while/func-def compound forms.
func (p *Parser) atom() *ParseResult {
	res := &ParseResult{}
	tok := p.current

	switch tok.Kind {
	case lexer.INT, lexer.FLOAT:
		res.registerAdvancement()
		p.advance()
		return res.success(ast.NewNumberNode(tok))

	case lexer.STRING:
		res.registerAdvancement()
		p.advance()
		return res.success(ast.NewStringNode(tok))

	case lexer.IDENTIFIER:
		res.registerAdvancement()
		p.advance()
		return res.success(ast.NewVarAccessNode(tok))

	case lexer.LPAREN:
		res.registerAdvancement()
		p.advance()

		expr := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		if p.current.Kind != lexer.RPAREN {
			return res.failure(serr.New(serr.InvalidSyntax, "expected ')'", spanOf(p.current)))
		}
		res.registerAdvancement()
		p.advance()
		return res.success(expr)

	case lexer.LSQUARE:
		listNode := res.Register(p.listExpr())
		if res.Err != nil {
			return res
		}
		return res.success(listNode)
	}

	if tok.Matches(lexer.KEYWORD, "yadi") {
		node := res.Register(p.ifExpr())
		if res.Err != nil {
			return res
		}
		return res.success(node)
	}
	if tok.Matches(lexer.KEYWORD, "krrite") || tok.Matches(lexer.KEYWORD, "kRRite") {
		node := res.Register(p.forExpr())
		if res.Err != nil {
			return res
		}
		return res.success(node)
	}
	if tok.Matches(lexer.KEYWORD, "sopanah") || tok.Matches(lexer.KEYWORD, "sopAnaH") {
		node := res.Register(p.whileExpr())
		if res.Err != nil {
			return res
		}
		return res.success(node)
	}
	if tok.Matches(lexer.KEYWORD, "niyoga") {
		node := res.Register(p.funcDef())
		if res.Err != nil {
			return res
		}
		return res.success(node)
	}

	return res.failure(serr.New(serr.InvalidSyntax,
		fmt.Sprintf("expected an int, float, identifier, '+', '-', '(', '[', or a keyword, found %s", tok.Kind), spanOf(tok)))
}

// listExpr parses `'[' (expr (',' expr)*)? ']'`.
func (p *Parser) listExpr() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	if p.current.Kind != lexer.LSQUARE {
		return res.failure(serr.New(serr.InvalidSyntax, "expected '['", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	var elements []ast.Node

	if p.current.Kind == lexer.RSQUARE {
		res.registerAdvancement()
		p.advance()
	} else {
		el := res.Register(p.expr())
		if res.Err != nil {
			return res.failure(serr.New(serr.InvalidSyntax,
				"expected an expression, ']', or a value", spanOf(p.current)))
		}
		elements = append(elements, el)

		for p.current.Kind == lexer.COMMA {
			res.registerAdvancement()
			p.advance()

			el := res.Register(p.expr())
			if res.Err != nil {
				return res
			}
			elements = append(elements, el)
		}

		if p.current.Kind != lexer.RSQUARE {
			return res.failure(serr.New(serr.InvalidSyntax, "expected ',' or ']'", spanOf(p.current)))
		}
		res.registerAdvancement()
		p.advance()
	}

	return res.success(ast.NewListNode(srcpos.NewSpan(start, p.current.Span.Start), elements))
}

// body parses the `expr | NEWLINE statements 'anta'` shared grammar rule,
// returning the body node and whether it is the block (should-return-null)
// form.
func (p *Parser) body(res *ParseResult) (ast.Node, bool) {
	if p.current.Kind == lexer.NEWLINE {
		res.registerAdvancement()
		p.advance()

		stmts := res.Register(p.statements())
		if res.Err != nil {
			return nil, false
		}

		if !(p.current.Matches(lexer.KEYWORD, "anta") || p.current.Matches(lexer.KEYWORD, "aMta") || p.current.Matches(lexer.KEYWORD, "amta")) {
			res.failure(serr.New(serr.InvalidSyntax, "expected 'anta'", spanOf(p.current)))
			return nil, false
		}
		res.registerAdvancement()
		p.advance()

		return stmts, true
	}

	expr := res.Register(p.expr())
	if res.Err != nil {
		return nil, false
	}
	return expr, false
}

func (p *Parser) expectColon(res *ParseResult) bool {
	if !p.current.Matches(lexer.KEYWORD, ":") {
		res.failure(serr.New(serr.InvalidSyntax, "expected ':'", spanOf(p.current)))
		return false
	}
	res.registerAdvancement()
	p.advance()
	return true
}

// ifExpr parses `yadi expr ':' body ('anyadi' expr ':' body)* ('uta' ':' body)?`.
func (p *Parser) ifExpr() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	if !p.current.Matches(lexer.KEYWORD, "yadi") {
		return res.failure(serr.New(serr.InvalidSyntax, "expected 'yadi'", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	var cases []ast.IfCase
	var elseCase *ast.ElseCase

	for {
		condition := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		if !p.expectColon(res) {
			return res
		}
		body, shouldReturnNull := p.body(res)
		if res.Err != nil {
			return res
		}
		cases = append(cases, ast.IfCase{Condition: condition, Body: body, ShouldReturnNull: shouldReturnNull})

		if !(p.current.Matches(lexer.KEYWORD, "anyadi")) {
			break
		}
		res.registerAdvancement()
		p.advance()
	}

	if p.current.Matches(lexer.KEYWORD, "uta") {
		res.registerAdvancement()
		p.advance()
		if !p.expectColon(res) {
			return res
		}
		body, shouldReturnNull := p.body(res)
		if res.Err != nil {
			return res
		}
		elseCase = &ast.ElseCase{Body: body, ShouldReturnNull: shouldReturnNull}
	}

	return res.success(ast.NewIfNode(srcpos.NewSpan(start, p.current.Span.Start), cases, elseCase))
}

// forExpr parses `krrite IDENT '=' expr 'ityasmai' expr ('charana' expr)? ':' body`.
func (p *Parser) forExpr() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	res.registerAdvancement()
	p.advance() // 'krrite'

	if p.current.Kind != lexer.IDENTIFIER {
		return res.failure(serr.New(serr.InvalidSyntax, "expected an identifier", spanOf(p.current)))
	}
	varToken := p.current
	res.registerAdvancement()
	p.advance()

	if p.current.Kind != lexer.EQ {
		return res.failure(serr.New(serr.InvalidSyntax, "expected '='", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	startExpr := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	if !p.current.Matches(lexer.KEYWORD, "ityasmai") {
		return res.failure(serr.New(serr.InvalidSyntax, "expected 'ityasmai'", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	endExpr := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	var stepExpr ast.Node
	if p.current.Matches(lexer.KEYWORD, "charana") || p.current.Matches(lexer.KEYWORD, "charaNa") {
		res.registerAdvancement()
		p.advance()
		stepExpr = res.Register(p.expr())
		if res.Err != nil {
			return res
		}
	}

	if !p.expectColon(res) {
		return res
	}
	body, shouldReturnNull := p.body(res)
	if res.Err != nil {
		return res
	}

	return res.success(ast.NewForNode(srcpos.NewSpan(start, p.current.Span.Start),
		varToken, startExpr, endExpr, stepExpr, body, shouldReturnNull))
}

// whileExpr parses `sopanah expr ':' body`.
func (p *Parser) whileExpr() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	res.registerAdvancement()
	p.advance() // 'sopanah'

	condition := res.Register(p.expr())
	if res.Err != nil {
		return res
	}
	if !p.expectColon(res) {
		return res
	}
	body, shouldReturnNull := p.body(res)
	if res.Err != nil {
		return res
	}

	return res.success(ast.NewWhileNode(srcpos.NewSpan(start, p.current.Span.Start), condition, body, shouldReturnNull))
}

// funcDef parses `niyoga IDENT? '(' (IDENT (',' IDENT)*)? ')' ':' body`.
func (p *Parser) funcDef() *ParseResult {
	res := &ParseResult{}
	start := p.current.Span.Start

	res.registerAdvancement()
	p.advance() // 'niyoga'

	var nameToken lexer.Token
	hasName := false
	if p.current.Kind == lexer.IDENTIFIER {
		nameToken = p.current
		hasName = true
		res.registerAdvancement()
		p.advance()
	}

	if p.current.Kind != lexer.LPAREN {
		return res.failure(serr.New(serr.InvalidSyntax, "expected '('", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	var argTokens []lexer.Token

	if p.current.Kind == lexer.IDENTIFIER {
		argTokens = append(argTokens, p.current)
		res.registerAdvancement()
		p.advance()

		for p.current.Kind == lexer.COMMA {
			res.registerAdvancement()
			p.advance()
			if p.current.Kind != lexer.IDENTIFIER {
				return res.failure(serr.New(serr.InvalidSyntax, "expected an identifier", spanOf(p.current)))
			}
			argTokens = append(argTokens, p.current)
			res.registerAdvancement()
			p.advance()
		}
	}

	if p.current.Kind != lexer.RPAREN {
		return res.failure(serr.New(serr.InvalidSyntax, "expected ',' or ')'", spanOf(p.current)))
	}
	res.registerAdvancement()
	p.advance()

	if !p.expectColon(res) {
		return res
	}

	body, shouldReturnNull := p.body(res)
	if res.Err != nil {
		return res
	}

	return res.success(ast.NewFuncDefNode(srcpos.NewSpan(start, p.current.Span.Start),
		nameToken, hasName, argTokens, body, !shouldReturnNull))
}
