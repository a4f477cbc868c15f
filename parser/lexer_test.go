package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, diags := Tokenize(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, diags)
	}
	return tokens
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	src := "else false function var for if nil extern return true while assert foo _bar baz123"
	tokens := mustTokenize(t, src)

	want := []TokenType{
		TokenElse, TokenFalse, TokenFunction, TokenVar, TokenFor, TokenIf,
		TokenNil, TokenExtern, TokenReturn, TokenTrue, TokenWhile, TokenAssert,
		TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenEOF,
	}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
	for i, name := range []string{"foo", "_bar", "baz123"} {
		tok := tokens[12+i]
		if tok.Literal != name || tok.Lexeme != name {
			t.Errorf("identifier %d: got lexeme %q literal %v, want %q", i, tok.Lexeme, tok.Literal, name)
		}
	}
}

func TestLexerOperatorsLongestMatch(t *testing.T) {
	src := "== != && || >> << >= <= = ! & | ^ ~ < > ( ) { } [ ] , . ; + - * /"
	tokens := mustTokenize(t, src)

	want := []TokenType{
		TokenEqualEqual, TokenBangEqual, TokenAndAnd, TokenOrOr, TokenShiftRight,
		TokenShiftLeft, TokenGreaterEqual, TokenLessEqual, TokenAssign, TokenBang,
		TokenAmpersand, TokenPipe, TokenCaret, TokenTilde, TokenLess, TokenGreater,
		TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace,
		TokenLeftBracket, TokenRightBracket, TokenComma, TokenDot, TokenSemicolon,
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF,
	}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := mustTokenize(t, "x = 12;\n  y")
	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 2, Line: 1, Column: 3},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 6, Line: 1, Column: 7},
		{Offset: 10, Line: 2, Column: 3},
		{Offset: 11, Line: 2, Column: 4},
	}
	got := make([]Position, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.Pos
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerLineCounterSpansChunks(t *testing.T) {
	lx := NewLexer()
	lx.Tokenize("a;\nb;\n")
	if got := lx.Line(); got != 3 {
		t.Fatalf("Line() after first chunk = %d, want 3", got)
	}
	tokens, _ := lx.Tokenize("c;")
	if tokens[0].Pos.Line != 3 || tokens[0].Pos.Column != 1 {
		t.Fatalf("second chunk starts at %+v, want line 3 column 1", tokens[0].Pos)
	}
	lx.Reset()
	tokens, _ = lx.Tokenize("d;")
	if tokens[0].Pos.Line != 1 {
		t.Fatalf("after Reset first token on line %d, want 1", tokens[0].Pos.Line)
	}
}

func TestLexerNumbers(t *testing.T) {
	tokens := mustTokenize(t, "42 007 9223372036854775807")
	want := []any{int64(42), int64(7), int64(9223372036854775807), nil}
	got := make([]any, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.Literal
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("number literals mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerNumberOverflow(t *testing.T) {
	tokens, diags := Tokenize("99999999999999999999;")
	if tokens[0].Type != TokenUnknown {
		t.Fatalf("expected unknown token for overflowing literal, got %s", tokens[0].Type)
	}
	if len(diags) != 1 || diags[0].String() != "[1:1] number literal 99999999999999999999 out of range" {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestLexerQuotedLiteralsAreVerbatim(t *testing.T) {
	tests := []struct {
		name string
		src  string
		typ  TokenType
		want string
	}{
		{"plain", `"hello"`, TokenString, "hello"},
		{"escape kept", `"a\nb"`, TokenString, `a\nb`},
		{"escaped quote", `"say \"hi\""`, TokenString, `say \"hi\"`},
		{"char", `'c'`, TokenChar, "c"},
		{"char with quote", `'\''`, TokenChar, `\'`},
		{"newline inside", "\"a\nb\"", TokenString, "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mustTokenize(t, tt.src)
			if tokens[0].Type != tt.typ {
				t.Fatalf("type = %s, want %s", tokens[0].Type, tt.typ)
			}
			if tokens[0].Literal != tt.want {
				t.Fatalf("literal = %q, want %q", tokens[0].Literal, tt.want)
			}
			if tokens[1].Type != TokenEOF {
				t.Fatalf("expected EOF after literal, got %s", tokens[1].Type)
			}
		})
	}
}

func TestLexerUnterminatedLiteral(t *testing.T) {
	tokens, diags := Tokenize(`print "abc`)
	if diff := cmp.Diff([]TokenType{TokenIdentifier, TokenString, TokenEOF}, tokenTypes(tokens)); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
	if tokens[1].Literal != "abc" {
		t.Fatalf("unterminated literal = %q, want %q", tokens[1].Literal, "abc")
	}
	want := []Diagnostic{{
		Pos:        Position{Offset: 6, Line: 1, Column: 7},
		Message:    "unterminated string literal",
		Incomplete: true,
	}}
	if diff := cmp.Diff(want, diags); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerUnknownByteIsNotFatal(t *testing.T) {
	tokens, diags := Tokenize("a @ b")
	want := []TokenType{TokenIdentifier, TokenUnknown, TokenIdentifier, TokenEOF}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if got := diags[0].String(); got != "[1:3] unexpected character '@'" {
		t.Fatalf("diagnostic = %q", got)
	}
	if diags[0].Incomplete {
		t.Fatalf("unknown byte must not mark input incomplete")
	}
}

func TestLexerComments(t *testing.T) {
	tokens := mustTokenize(t, "a // trailing note\nb / c")
	want := []TokenType{TokenIdentifier, TokenIdentifier, TokenSlash, TokenIdentifier, TokenEOF}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
	if tokens[1].Pos.Line != 2 || tokens[1].Pos.Column != 1 {
		t.Fatalf("token after comment at %+v, want line 2 column 1", tokens[1].Pos)
	}
}
