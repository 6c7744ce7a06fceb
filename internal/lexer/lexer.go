// Package lexer turns post-transliteration SansScript source into a token
// stream, per spec.md §4.1.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
)

// devanagariDigits maps the Devanāgarī digit block (०-९, U+0966-U+096F) to
// its ASCII 0-9 equivalent, since normalize() transliterates identifiers
// and keywords but leaves numeric literals untouched (spec.md §4.1).
var devanagariDigits = map[rune]rune{
	'०': '0', '१': '1', '२': '2', '३': '3', '४': '4',
	'५': '5', '६': '6', '७': '7', '८': '8', '९': '9',
}

// Lexer is a character-by-character scanner over already-normalized
// source text, maintaining a running srcpos.Position the way the teacher's
// internal/lexer.Lexer tracks position/readPosition/ch.
type Lexer struct {
	input      string
	byteOffset int // byte offset of ch within input
	pos        srcpos.Position
	ch         rune
	chByteSize int
	atEOF      bool
}

// New creates a Lexer for src. filename is attached to every position for
// error reporting.
func New(filename, src string) *Lexer {
	l := &Lexer{input: src, pos: srcpos.New(filename, src)}
	l.readChar()
	return l
}

// readChar advances position past the current rune and decodes the next
// UTF-8 rune, so pos is always the position of ch. Identifiers,
// keywords, numbers, and punctuation are ASCII post-normalization, but
// string literal contents may still carry arbitrary Unicode (spec.md
// §4.1), so decoding must be rune-aware rather than byte-aware.
func (l *Lexer) readChar() {
	if l.chByteSize > 0 {
		l.pos = l.pos.Advance(l.ch)
	}
	l.byteOffset += l.chByteSize
	if l.byteOffset >= len(l.input) {
		l.ch = 0
		l.chByteSize = 0
		l.atEOF = true
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.byteOffset:])
	l.ch = r
	l.chByteSize = size
}

func (l *Lexer) peekChar() rune {
	next := l.byteOffset + l.chByteSize
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

// Tokenize scans the entire input and returns the complete token stream,
// always terminated by exactly one EOF token (spec.md §8, law 1). Scanning
// halts at the first IllegalCharacter error, per spec.md §4.1.
func (l *Lexer) Tokenize() ([]Token, *serr.Error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// NextToken scans and returns the next token, or a lex error.
func (l *Lexer) NextToken() (Token, *serr.Error) {
	l.skipSpaceAndComments()

	start := l.pos

	switch {
	case l.ch == 0:
		return NewToken(EOF, nil, start), nil

	case l.ch == ';' || l.ch == '\n':
		tok := NewToken(NEWLINE, nil, start)
		l.readChar()
		return tok, nil

	case isLetter(l.ch):
		return l.readIdentifier(start), nil

	case isDigit(l.ch) || isDevanagariDigit(l.ch):
		return l.readNumber(start)

	case l.ch == '\'' || l.ch == '"':
		return l.readString(start)

	case l.ch == '+':
		l.readChar()
		return NewToken(PLUS, nil, start), nil
	case l.ch == '-':
		l.readChar()
		return NewToken(MINUS, nil, start), nil
	case l.ch == '*':
		l.readChar()
		return NewToken(MUL, nil, start), nil
	case l.ch == '/':
		l.readChar()
		return NewToken(DIV, nil, start), nil
	case l.ch == '^':
		l.readChar()
		return NewToken(POW, nil, start), nil
	case l.ch == '(':
		l.readChar()
		return NewToken(LPAREN, nil, start), nil
	case l.ch == ')':
		l.readChar()
		return NewToken(RPAREN, nil, start), nil
	case l.ch == '[':
		l.readChar()
		return NewToken(LSQUARE, nil, start), nil
	case l.ch == ']':
		l.readChar()
		return NewToken(RSQUARE, nil, start), nil
	case l.ch == ',':
		l.readChar()
		return NewToken(COMMA, nil, start), nil
	case l.ch == ':':
		l.readChar()
		return NewToken(KEYWORD, ":", start), nil

	case l.ch == '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok := NewToken(EE, nil, start)
			tok.Span = srcpos.NewSpan(start, l.pos)
			return tok, nil
		}
		return NewToken(EQ, nil, start), nil

	case l.ch == '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok := NewToken(NE, nil, start)
			tok.Span = srcpos.NewSpan(start, l.pos)
			return tok, nil
		}
		return Token{}, serr.New(serr.ExpectedChar, "expected '=' after '!'", srcpos.NewSpan(start, l.pos))

	case l.ch == '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok := NewToken(LTE, nil, start)
			tok.Span = srcpos.NewSpan(start, l.pos)
			return tok, nil
		}
		return NewToken(LT, nil, start), nil

	case l.ch == '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok := NewToken(GTE, nil, start)
			tok.Span = srcpos.NewSpan(start, l.pos)
			return tok, nil
		}
		return NewToken(GT, nil, start), nil
	}

	offender := l.ch
	l.readChar()
	return Token{}, serr.New(serr.IllegalCharacter, "illegal character '"+string(offender)+"'", srcpos.NewSpan(start, l.pos))
}

// skipSpaceAndComments consumes spaces, tabs, and '#'-to-end-of-line
// comments. Newlines are significant (NEWLINE tokens) and are not skipped
// here.
func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier(start srcpos.Position) Token {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	lit := sb.String()
	tok := NewToken(LookupIdentifier(lit), lit, start)
	tok.Span = srcpos.NewSpan(start, l.pos)
	return tok
}

func (l *Lexer) readNumber(start srcpos.Position) (Token, *serr.Error) {
	var sb strings.Builder
	dotSeen := false

	digit := func(ch rune) (rune, bool) {
		if isDigit(ch) {
			return ch, true
		}
		if d, ok := devanagariDigits[ch]; ok {
			return d, true
		}
		return 0, false
	}

	for {
		if d, ok := digit(l.ch); ok {
			sb.WriteRune(d)
			l.readChar()
			continue
		}
		if l.ch == '.' && !dotSeen {
			dotSeen = true
			sb.WriteRune('.')
			l.readChar()
			continue
		}
		break
	}

	lit := sb.String()
	span := srcpos.NewSpan(start, l.pos)

	if dotSeen {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return Token{}, serr.New(serr.InvalidSyntax, "invalid float literal '"+lit+"'", span)
		}
		tok := Token{Kind: FLOAT, Value: v, Span: span}
		return tok, nil
	}

	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Token{}, serr.New(serr.InvalidSyntax, "invalid int literal '"+lit+"'", span)
	}
	return Token{Kind: INT, Value: v, Span: span}, nil
}

func (l *Lexer) readString(start srcpos.Position) (Token, *serr.Error) {
	quote := l.ch
	style := SingleQuote
	if quote == '"' {
		style = DoubleQuote
	}
	l.readChar() // skip opening quote

	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 {
			return Token{}, serr.New(serr.InvalidSyntax, "unterminated string literal", srcpos.NewSpan(start, l.pos))
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote

	tok := Token{Kind: STRING, Value: sb.String(), Quote: style, Span: srcpos.NewSpan(start, l.pos)}
	return tok, nil
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isDevanagariDigit(ch rune) bool {
	_, ok := devanagariDigits[ch]
	return ok
}
