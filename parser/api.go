package parser

import "errors"

// ParseString tokenizes and parses src with a fresh lexer. Lexical
// diagnostics come first in the returned errors, followed by syntax errors.
func ParseString(src string) ([]Stmt, []error) {
	return ParseChunk(NewLexer(), src)
}

// ParseChunk tokenizes src with lx, keeping its line counter, and parses the
// result.
func ParseChunk(lx *Lexer, src string) ([]Stmt, []error) {
	tokens, diags := lx.Tokenize(src)
	errs := make([]error, 0, len(diags))
	for _, d := range diags {
		errs = append(errs, d.Err())
	}
	stmts, perrs := Parse(tokens)
	return stmts, append(errs, perrs...)
}

// Incomplete reports whether src stops in the middle of a statement: an
// unterminated literal, an unclosed block or a dangling expression.
func Incomplete(src string) bool {
	_, errs := ParseString(src)
	return IsIncomplete(errors.Join(errs...))
}
