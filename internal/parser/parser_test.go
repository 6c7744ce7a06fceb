package parser

import (
	"testing"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErr := lexer.New("<test>", src).Tokenize()
	if lexErr != nil {
		t.Fatalf("unexpected lex error: %v", lexErr)
	}
	program, parseErr := New(toks).Parse()
	if parseErr != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, parseErr)
	}
	return program
}

func parseExprStatement(t *testing.T, src string) ast.Node {
	t.Helper()
	program := parseSource(t, src)
	if len(program.Statements) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(program.Statements))
	}
	return program.Statements[0]
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "INT:5"},
		{"3.5", "FLOAT:3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := parseExprStatement(t, tt.input).(*ast.NumberNode)
			if !ok {
				t.Fatalf("expected *ast.NumberNode, got %T", parseExprStatement(t, tt.input))
			}
			if n.String() != tt.want {
				t.Errorf("String() = %q, want %q", n.String(), tt.want)
			}
		})
	}
}

func TestVarAssignAndAccess(t *testing.T) {
	program := parseSource(t, "charah x = 5")
	stmt, ok := program.Statements[0].(*ast.VarAssignNode)
	if !ok {
		t.Fatalf("expected *ast.VarAssignNode, got %T", program.Statements[0])
	}
	if stmt.NameToken.Value.(string) != "x" {
		t.Errorf("NameToken = %v, want x", stmt.NameToken.Value)
	}
}

func TestBinaryOperatorPrecedence(t *testing.T) {
	n, ok := parseExprStatement(t, "1 + 2 * 3").(*ast.BinaryOpNode)
	if !ok {
		t.Fatalf("expected *ast.BinaryOpNode, got %T", parseExprStatement(t, "1 + 2 * 3"))
	}
	if n.OpToken.Kind != lexer.PLUS {
		t.Fatalf("top-level op should be '+', got %s", n.OpToken.Kind)
	}
	right, ok := n.Right.(*ast.BinaryOpNode)
	if !ok || right.OpToken.Kind != lexer.MUL {
		t.Fatalf("right side should be a '*' node, got %T", n.Right)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	n, ok := parseExprStatement(t, "2 ^ 3 ^ 2").(*ast.BinaryOpNode)
	if !ok {
		t.Fatalf("expected *ast.BinaryOpNode, got %T", parseExprStatement(t, "2 ^ 3 ^ 2"))
	}
	right, ok := n.Right.(*ast.BinaryOpNode)
	if !ok || right.OpToken.Kind != lexer.POW {
		t.Fatalf("2^3^2 should nest on the right, got %T", n.Right)
	}
}

func TestUnaryMinusAndLogicalNot(t *testing.T) {
	n, ok := parseExprStatement(t, "-5").(*ast.UnaryOpNode)
	if !ok || n.OpToken.Kind != lexer.MINUS {
		t.Fatalf("expected unary minus, got %T", parseExprStatement(t, "-5"))
	}

	n2, ok := parseExprStatement(t, "nahi satya").(*ast.UnaryOpNode)
	if !ok || !n2.OpToken.Matches(lexer.KEYWORD, "nahi") {
		t.Fatalf("expected 'nahi' unary node, got %T", parseExprStatement(t, "nahi satya"))
	}
}

func TestListLiteral(t *testing.T) {
	n, ok := parseExprStatement(t, "[1, 2, 3]").(*ast.ListNode)
	if !ok {
		t.Fatalf("expected *ast.ListNode, got %T", parseExprStatement(t, "[1, 2, 3]"))
	}
	if len(n.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(n.Elements))
	}
}

func TestFunctionCall(t *testing.T) {
	n, ok := parseExprStatement(t, "mudrayati(5)").(*ast.CallNode)
	if !ok {
		t.Fatalf("expected *ast.CallNode, got %T", parseExprStatement(t, "mudrayati(5)"))
	}
	if len(n.Args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(n.Args))
	}
}

func TestIfExpressionSingleLineForm(t *testing.T) {
	n, ok := parseExprStatement(t, "yadi satya: 1 uta: 2").(*ast.IfNode)
	if !ok {
		t.Fatalf("expected *ast.IfNode, got %T", parseExprStatement(t, "yadi satya: 1 uta: 2"))
	}
	if len(n.Cases) != 1 {
		t.Fatalf("expected 1 if-case, got %d", len(n.Cases))
	}
	if n.Cases[0].ShouldReturnNull {
		t.Error("single-expression if body should not set ShouldReturnNull")
	}
	if n.Else == nil || n.Else.ShouldReturnNull {
		t.Error("single-expression else body should not set ShouldReturnNull")
	}
}

func TestIfExpressionBlockForm(t *testing.T) {
	src := "yadi satya:\ncharah x = 1\nanta"
	n, ok := parseExprStatement(t, src).(*ast.IfNode)
	if !ok {
		t.Fatalf("expected *ast.IfNode, got %T", parseExprStatement(t, src))
	}
	if !n.Cases[0].ShouldReturnNull {
		t.Error("block if body should set ShouldReturnNull")
	}
}

func TestForExpressionWithStep(t *testing.T) {
	src := "krrite i = 0 ityasmai 10 charana 2: i"
	n, ok := parseExprStatement(t, src).(*ast.ForNode)
	if !ok {
		t.Fatalf("expected *ast.ForNode, got %T", parseExprStatement(t, src))
	}
	if n.Step == nil {
		t.Error("expected a step expression")
	}
	if n.ShouldReturnNull {
		t.Error("single-expression for body should not set ShouldReturnNull")
	}
}

func TestWhileExpression(t *testing.T) {
	src := "sopanah nahi satya: 1"
	n, ok := parseExprStatement(t, src).(*ast.WhileNode)
	if !ok {
		t.Fatalf("expected *ast.WhileNode, got %T", parseExprStatement(t, src))
	}
	if n.Condition == nil || n.Body == nil {
		t.Error("expected both condition and body to be set")
	}
}

func TestFuncDefSingleExpressionAutoReturns(t *testing.T) {
	n, ok := parseExprStatement(t, "niyoga add(a, b): a + b").(*ast.FuncDefNode)
	if !ok {
		t.Fatalf("expected *ast.FuncDefNode, got %T", parseExprStatement(t, "niyoga add(a, b): a + b"))
	}
	if !n.HasName || n.NameToken.Value.(string) != "add" {
		t.Error("expected named function 'add'")
	}
	if !n.ShouldAutoReturn {
		t.Error("single-expression func body should auto-return")
	}
}

func TestFuncDefBlockDoesNotAutoReturn(t *testing.T) {
	src := "niyoga add(a, b):\npratyavartanam a + b\nanta"
	n, ok := parseExprStatement(t, src).(*ast.FuncDefNode)
	if !ok {
		t.Fatalf("expected *ast.FuncDefNode, got %T", parseExprStatement(t, src))
	}
	if n.ShouldAutoReturn {
		t.Error("block func body should not auto-return")
	}
}

func TestAnonymousFuncDef(t *testing.T) {
	n, ok := parseExprStatement(t, "niyoga(x): x").(*ast.FuncDefNode)
	if !ok {
		t.Fatalf("expected *ast.FuncDefNode, got %T", parseExprStatement(t, "niyoga(x): x"))
	}
	if n.HasName {
		t.Error("expected an anonymous function")
	}
}

func TestReturnBreakContinueStatements(t *testing.T) {
	if _, ok := parseExprStatement(t, "viramah").(*ast.BreakNode); !ok {
		t.Fatal("expected *ast.BreakNode")
	}
	if _, ok := parseExprStatement(t, "anuvartanam").(*ast.ContinueNode); !ok {
		t.Fatal("expected *ast.ContinueNode")
	}
}

func TestBareReturnHasNilValue(t *testing.T) {
	src := "niyoga f():\npratyavartanam\nanta"
	program := parseSource(t, src)
	fn := program.Statements[0].(*ast.FuncDefNode)
	body := fn.Body.(*ast.Program)
	ret := body.Statements[0].(*ast.ReturnNode)
	if ret.Value != nil {
		t.Error("bare 'pratyavartanam' should have a nil Value")
	}
}

func TestMultipleStatementsSeparatedByNewlines(t *testing.T) {
	program := parseSource(t, "charah x = 1\ncharah y = 2\nx + y")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
}

func TestInvalidSyntaxReturnsError(t *testing.T) {
	toks, lexErr := lexer.New("<test>", "charah = 5").Tokenize()
	if lexErr != nil {
		t.Fatalf("unexpected lex error: %v", lexErr)
	}
	if _, err := New(toks).Parse(); err == nil {
		t.Fatal("expected a parse error for 'charah' without an identifier")
	}
}

func TestDiacriticAndPlainKeywordSpellingsBothParse(t *testing.T) {
	plain := parseSource(t, "charah x = 1\nyadi x: 1 uta: 2")
	diacritic := parseSource(t, "charaH x = 1\nyadi x: 1 uta: 2")
	if len(plain.Statements) != len(diacritic.Statements) {
		t.Fatal("plain and diacritic spellings should parse to the same statement count")
	}
}
