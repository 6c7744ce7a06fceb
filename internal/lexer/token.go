package lexer

import (
	"fmt"

	"github.com/omthedev001/sansscript/internal/srcpos"
)

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	INT
	FLOAT
	STRING
	IDENTIFIER
	KEYWORD

	PLUS
	MINUS
	MUL
	DIV
	POW

	EQ
	EE
	NE
	LT
	GT
	LTE
	GTE

	LPAREN
	RPAREN
	LSQUARE
	RSQUARE

	COMMA
	NEWLINE
)

var kindNames = map[Kind]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MUL:        "MUL",
	DIV:        "DIV",
	POW:        "POW",
	EQ:         "EQ",
	EE:         "EE",
	NE:         "NE",
	LT:         "LT",
	GT:         "GT",
	LTE:        "LTE",
	GTE:        "GTE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LSQUARE:    "LSQUARE",
	RSQUARE:    "RSQUARE",
	COMMA:      "COMMA",
	NEWLINE:    "NEWLINE",
}

// String implements fmt.Stringer for debug output (e.g. `lex --show-type`).
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// QuoteStyle records which quote character delimited a STRING token, so the
// interpreter can round-trip string literals faithfully in repr().
type QuoteStyle int

const (
	SingleQuote QuoteStyle = iota
	DoubleQuote
)

// Token is one lexical unit: a kind, an optional value, and the span of
// source text it came from.
type Token struct {
	Kind  Kind
	Value any // int64, float64, or string depending on Kind
	Quote QuoteStyle
	Span  srcpos.Span
}

// NewToken builds a Token whose span starts at pos and extends exactly one
// position past it (the common case for single-character tokens; callers
// that consume more than one character override Span afterward).
func NewToken(kind Kind, value any, start srcpos.Position) Token {
	end := start.Advance(' ')
	return Token{Kind: kind, Value: value, Span: srcpos.NewSpan(start, end)}
}

// Matches reports whether the token is a KEYWORD (or IDENTIFIER, for
// flexibility in error messages) carrying exactly the given literal value.
// Unlike the original source's Token.matches, this is a plain equality
// check with no truthy-second-argument short-circuit: see DESIGN.md's
// "Open Questions" resolution for the `matches` bug.
func (t Token) Matches(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// String renders the token for debug output: "KIND:value" or just "KIND"
// when there is no associated value.
func (t Token) String() string {
	if t.Value == nil {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s:%v", t.Kind, t.Value)
}
