package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestParsePrintsProgramAST(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = "2 + 3"

	output, err := captureStdout(t, func() error {
		return parseScript(parseCmd, nil)
	})
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	if strings.TrimSpace(output) == "" {
		t.Error("expected non-empty AST output")
	}
}

func TestParseSyntaxErrorReturnsError(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = "charah = 5"

	if err := parseScript(parseCmd, nil); err == nil {
		t.Error("expected a parse error for invalid syntax")
	}
}

func TestParseReadsFromFile(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = ""

	dir := t.TempDir()
	path := dir + "/script.ss"
	if err := os.WriteFile(path, []byte("charah x = 1"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	output, err := captureStdout(t, func() error {
		return parseScript(parseCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	if strings.TrimSpace(output) == "" {
		t.Error("expected non-empty AST output")
	}
}
