package parser

import (
	"fmt"
	"strconv"
)

// Lexer turns source chunks into tokens. The line counter survives between
// Tokenize calls so successive REPL chunks keep numbering lines; Reset
// rewinds it for a fresh session.
type Lexer struct {
	line int

	src       string
	pos       int
	column    int
	start     int
	startLine int
	startCol  int

	tokens []Token
	diags  []Diagnostic
}

// NewLexer returns a lexer positioned at line 1.
func NewLexer() *Lexer {
	return &Lexer{line: 1}
}

// Line reports the line the next chunk will start on.
func (lx *Lexer) Line() int { return lx.line }

// Reset rewinds the line counter to 1.
func (lx *Lexer) Reset() { lx.line = 1 }

// Tokenize scans src and returns its tokens, always terminated by TokenEOF,
// together with any non-fatal diagnostics met along the way.
func (lx *Lexer) Tokenize(src string) ([]Token, []Diagnostic) {
	if lx.line == 0 {
		lx.line = 1
	}
	lx.src = src
	lx.pos = 0
	lx.column = 1
	lx.tokens = nil
	lx.diags = nil

	for {
		lx.skipSpace()
		lx.start = lx.pos
		lx.startLine = lx.line
		lx.startCol = lx.column
		if lx.atEnd() {
			break
		}
		lx.scanToken()
	}
	lx.tokens = append(lx.tokens, Token{Type: TokenEOF, Pos: lx.startPos()})
	return lx.tokens, lx.diags
}

// Tokenize scans src with a throwaway lexer starting at line 1.
func Tokenize(src string) ([]Token, []Diagnostic) {
	return NewLexer().Tokenize(src)
}

func (lx *Lexer) atEnd() bool { return lx.pos >= len(lx.src) }

func (lx *Lexer) peek() byte {
	if lx.atEnd() {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) peekNext() byte {
	if lx.pos+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+1]
}

func (lx *Lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return c
}

func (lx *Lexer) match(expected byte) bool {
	if lx.atEnd() || lx.src[lx.pos] != expected {
		return false
	}
	lx.advance()
	return true
}

func (lx *Lexer) startPos() Position {
	return Position{Offset: lx.start, Line: lx.startLine, Column: lx.startCol}
}

func (lx *Lexer) skipSpace() {
	for !lx.atEnd() {
		switch c := lx.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
			lx.advance()
		case c == '/' && lx.peekNext() == '/':
			for !lx.atEnd() && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) emit(tt TokenType, literal any) {
	lx.tokens = append(lx.tokens, Token{
		Type:    tt,
		Lexeme:  lx.src[lx.start:lx.pos],
		Literal: literal,
		Pos:     lx.startPos(),
	})
}

func (lx *Lexer) report(incomplete bool, format string, args ...any) {
	lx.diags = append(lx.diags, Diagnostic{
		Pos:        lx.startPos(),
		Message:    fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	})
}

// either emits two if the next byte is second, one otherwise.
func (lx *Lexer) either(second byte, two, one TokenType) {
	if lx.match(second) {
		lx.emit(two, nil)
		return
	}
	lx.emit(one, nil)
}

func (lx *Lexer) scanToken() {
	c := lx.advance()
	switch c {
	case '(':
		lx.emit(TokenLeftParen, nil)
	case ')':
		lx.emit(TokenRightParen, nil)
	case '{':
		lx.emit(TokenLeftBrace, nil)
	case '}':
		lx.emit(TokenRightBrace, nil)
	case '[':
		lx.emit(TokenLeftBracket, nil)
	case ']':
		lx.emit(TokenRightBracket, nil)
	case ',':
		lx.emit(TokenComma, nil)
	case '.':
		lx.emit(TokenDot, nil)
	case ';':
		lx.emit(TokenSemicolon, nil)
	case '+':
		lx.emit(TokenPlus, nil)
	case '-':
		lx.emit(TokenMinus, nil)
	case '*':
		lx.emit(TokenStar, nil)
	case '/':
		lx.emit(TokenSlash, nil)
	case '~':
		lx.emit(TokenTilde, nil)
	case '^':
		lx.emit(TokenCaret, nil)
	case '!':
		lx.either('=', TokenBangEqual, TokenBang)
	case '=':
		lx.either('=', TokenEqualEqual, TokenAssign)
	case '&':
		lx.either('&', TokenAndAnd, TokenAmpersand)
	case '|':
		lx.either('|', TokenOrOr, TokenPipe)
	case '>':
		switch {
		case lx.match('='):
			lx.emit(TokenGreaterEqual, nil)
		case lx.match('>'):
			lx.emit(TokenShiftRight, nil)
		default:
			lx.emit(TokenGreater, nil)
		}
	case '<':
		switch {
		case lx.match('='):
			lx.emit(TokenLessEqual, nil)
		case lx.match('<'):
			lx.emit(TokenShiftLeft, nil)
		default:
			lx.emit(TokenLess, nil)
		}
	case '"':
		lx.quoted('"', TokenString)
	case '\'':
		lx.quoted('\'', TokenChar)
	default:
		switch {
		case isDigit(c):
			lx.number()
		case isIdentStart(c):
			lx.identifier()
		default:
			lx.report(false, "unexpected character %q", c)
			lx.emit(TokenUnknown, nil)
		}
	}
}

func (lx *Lexer) number() {
	for isDigit(lx.peek()) {
		lx.advance()
	}
	text := lx.src[lx.start:lx.pos]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		lx.report(false, "number literal %s out of range", text)
		lx.emit(TokenUnknown, nil)
		return
	}
	lx.emit(TokenNumber, n)
}

func (lx *Lexer) identifier() {
	for isIdentPart(lx.peek()) {
		lx.advance()
	}
	text := lx.src[lx.start:lx.pos]
	if tt, ok := keywords[text]; ok {
		lx.emit(tt, nil)
		return
	}
	lx.emit(TokenIdentifier, text)
}

// quoted copies the literal body verbatim. A backslash hides the byte after
// it from the closing-quote search; expansion happens in the parser.
func (lx *Lexer) quoted(quote byte, tt TokenType) {
	for !lx.atEnd() && lx.peek() != quote {
		if lx.advance() == '\\' && !lx.atEnd() {
			lx.advance()
		}
	}
	if lx.atEnd() {
		kind := "string"
		if tt == TokenChar {
			kind = "char"
		}
		lx.report(true, "unterminated %s literal", kind)
		lx.emit(tt, lx.src[lx.start+1:lx.pos])
		return
	}
	body := lx.src[lx.start+1 : lx.pos]
	lx.advance()
	lx.emit(tt, body)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
