package parser

import "fmt"

// TokenType enumerates lexical categories recognised by the vispel lexer.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenUnknown

	TokenIdentifier
	TokenNumber
	TokenString
	TokenChar

	// Keywords
	TokenElse
	TokenFalse
	TokenFunction
	TokenVar
	TokenFor
	TokenIf
	TokenNil
	TokenExtern
	TokenReturn
	TokenTrue
	TokenWhile
	TokenAssert

	// Operators and punctuation
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenComma        // ,
	TokenDot          // .
	TokenSemicolon    // ;
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenBang         // !
	TokenTilde        // ~
	TokenAssign       // =
	TokenEqualEqual   // ==
	TokenBangEqual    // !=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenShiftLeft    // <<
	TokenShiftRight   // >>
	TokenAmpersand    // &
	TokenPipe         // |
	TokenCaret        // ^
	TokenAndAnd       // &&
	TokenOrOr         // ||
)

var tokenNames = [...]string{
	TokenEOF:          "EOF",
	TokenUnknown:      "unknown",
	TokenIdentifier:   "identifier",
	TokenNumber:       "number",
	TokenString:       "string",
	TokenChar:         "char",
	TokenElse:         "else",
	TokenFalse:        "false",
	TokenFunction:     "function",
	TokenVar:          "var",
	TokenFor:          "for",
	TokenIf:           "if",
	TokenNil:          "nil",
	TokenExtern:       "extern",
	TokenReturn:       "return",
	TokenTrue:         "true",
	TokenWhile:        "while",
	TokenAssert:       "assert",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenSemicolon:    ";",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenBang:         "!",
	TokenTilde:        "~",
	TokenAssign:       "=",
	TokenEqualEqual:   "==",
	TokenBangEqual:    "!=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenShiftLeft:    "<<",
	TokenShiftRight:   ">>",
	TokenAmpersand:    "&",
	TokenPipe:         "|",
	TokenCaret:        "^",
	TokenAndAnd:       "&&",
	TokenOrOr:         "||",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords is the fixed reserved-word set.
var keywords = map[string]TokenType{
	"else":     TokenElse,
	"false":    TokenFalse,
	"function": TokenFunction,
	"var":      TokenVar,
	"for":      TokenFor,
	"if":       TokenIf,
	"nil":      TokenNil,
	"extern":   TokenExtern,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"while":    TokenWhile,
	"assert":   TokenAssert,
}

// Keywords returns the reserved words of the language in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal any    // int64 for numbers, string for identifiers and quoted literals, nil otherwise
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	case TokenString, TokenChar:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	default:
		return t.Type.String()
	}
}
