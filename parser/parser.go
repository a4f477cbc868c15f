package parser

// Parse builds statements from a token sequence ending in TokenEOF. A syntax
// error abandons only the statement being parsed: the parser skips past the
// next ';' (or to EOF) and carries on, so every error is returned alongside
// the statements that did parse.
func Parse(tokens []Token) ([]Stmt, []error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, Token{Type: TokenEOF, Pos: pos})
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

type parser struct {
	tokens []Token
	pos    int
	curr   Token
}

func (p *parser) parseProgram() ([]Stmt, []error) {
	p.curr = p.tokens[0]
	var (
		stmts []Stmt
		errs  []error
	)
	for p.curr.Type != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, errs
}

// synchronize discards tokens up to and including the next ';'.
func (p *parser) synchronize() {
	for p.curr.Type != TokenEOF {
		if p.curr.Type == TokenSemicolon {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *parser) advance() Token {
	tok := p.curr
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curr = p.tokens[p.pos]
	return tok
}

// rewind moves back to an earlier token index.
func (p *parser) rewind(pos int) {
	p.pos = pos
	p.curr = p.tokens[pos]
}

func (p *parser) check(types ...TokenType) bool {
	for _, tt := range types {
		if p.curr.Type == tt {
			return true
		}
	}
	return false
}

func (p *parser) expect(tt TokenType, context string) (Token, error) {
	if p.curr.Type != tt {
		return Token{}, p.errorf("expected %s %s, found %s", tt, context, describe(p.curr))
	}
	return p.advance(), nil
}

// expectTerminator accepts ';' or a missing one right before EOF.
func (p *parser) expectTerminator(context string) error {
	if p.curr.Type == TokenSemicolon {
		p.advance()
		return nil
	}
	if p.curr.Type == TokenEOF {
		return nil
	}
	return p.errorf("expected ; %s, found %s", context, describe(p.curr))
}

func (p *parser) parseStatement() (Stmt, error) {
	switch p.curr.Type {
	case TokenVar:
		return p.parseVarStmt()
	case TokenLeftBrace:
		return p.parseBlock()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenIf:
		return p.parseIfStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenFunction:
		return p.parseFunctionStmt()
	case TokenReturn:
		return p.parseReturnStmt()
	case TokenFor, TokenExtern:
		return nil, p.errorf("%s statements are not supported", p.curr.Type)
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectTerminator("after expression"); err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr, Posn: expr.Pos()}, nil
	}
}

func (p *parser) parseVarStmt() (Stmt, error) {
	varTok := p.advance()
	name, err := p.expect(TokenIdentifier, "after var")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.curr.Type == TokenAssign {
		p.advance()
		if init, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectTerminator("after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init, Posn: varTok.Pos}, nil
}

func (p *parser) parseBlock() (*BlockStmt, error) {
	brace, err := p.expect(TokenLeftBrace, "to open block")
	if err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.check(TokenRightBrace, TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokenRightBrace, "to close block"); err != nil {
		return nil, err
	}
	return &BlockStmt{Stmts: stmts, Posn: brace.Pos}, nil
}

func (p *parser) parseAssertStmt() (Stmt, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectTerminator("after assert"); err != nil {
		return nil, err
	}
	return &AssertStmt{Cond: cond, Posn: kw.Pos}, nil
}

func (p *parser) parseCondition(keyword TokenType) (Expr, error) {
	if _, err := p.expect(TokenLeftParen, "after "+keyword.String()); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "after "+keyword.String()+" condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *parser) parseIfStmt() (Stmt, error) {
	kw := p.advance()
	cond, err := p.parseCondition(TokenIf)
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, Posn: kw.Pos}
	if p.curr.Type == TokenElse {
		p.advance()
		if stmt.Else, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) parseWhileStmt() (Stmt, error) {
	kw := p.advance()
	cond, err := p.parseCondition(TokenWhile)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Posn: kw.Pos}, nil
}

func (p *parser) parseFunctionStmt() (Stmt, error) {
	kw := p.advance()
	name, err := p.expect(TokenIdentifier, "after function")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen, "after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen, "after parameters"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body, Posn: kw.Pos}, nil
}

func (p *parser) parseParams() ([]Token, error) {
	var params []Token
	if p.curr.Type == TokenRightParen {
		return params, nil
	}
	for {
		param, err := p.expect(TokenIdentifier, "in parameter list")
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.curr.Type != TokenComma {
			return params, nil
		}
		p.advance()
	}
}

func (p *parser) parseReturnStmt() (Stmt, error) {
	kw := p.advance()
	stmt := &ReturnStmt{Keyword: kw, Posn: kw.Pos}
	if !p.check(TokenSemicolon, TokenEOF) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.expectTerminator("after return"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

// parseAssignment tries IDENT '=' first and rewinds when the '=' is missing.
func (p *parser) parseAssignment() (Expr, error) {
	if p.curr.Type == TokenIdentifier {
		mark := p.pos
		name := p.advance()
		if p.curr.Type == TokenAssign {
			p.advance()
			value, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			return &AssignExpr{Name: name, Value: value, Posn: name.Pos}, nil
		}
		p.rewind(mark)
	}
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.curr.Type == TokenAssign {
		return nil, p.errorf("invalid assignment target")
	}
	return expr, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	return p.logical(p.parseLogicalAnd, TokenOrOr)
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	return p.logical(p.parseBitOr, TokenAndAnd)
}

func (p *parser) parseBitOr() (Expr, error) {
	return p.binary(p.parseBitXor, TokenPipe)
}

func (p *parser) parseBitXor() (Expr, error) {
	return p.binary(p.parseBitAnd, TokenCaret)
}

func (p *parser) parseBitAnd() (Expr, error) {
	return p.binary(p.parseEquality, TokenAmpersand)
}

func (p *parser) parseEquality() (Expr, error) {
	return p.binary(p.parseComparison, TokenEqualEqual, TokenBangEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.binary(p.parseShift, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *parser) parseShift() (Expr, error) {
	return p.binary(p.parseTerm, TokenShiftLeft, TokenShiftRight)
}

func (p *parser) parseTerm() (Expr, error) {
	return p.binary(p.parseFactor, TokenPlus, TokenMinus)
}

func (p *parser) parseFactor() (Expr, error) {
	return p.binary(p.parseUnary, TokenStar, TokenSlash)
}

func (p *parser) binary(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.check(ops...) {
		opTok := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: opTok, Right: right, Posn: opTok.Pos}
	}
	return left, nil
}

func (p *parser) logical(operand func() (Expr, error), op TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == op {
		opTok := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Left: left, Op: opTok, Right: right, Posn: opTok.Pos}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.check(TokenMinus, TokenBang, TokenTilde) {
		opTok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: opTok, Right: right, Posn: opTok.Pos}, nil
	}
	return p.parseCall()
}

// parseCall attaches argument lists to a primary. An identifier directly
// followed by a string or char literal is a one-argument call.
func (p *parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(*IdentifierExpr); ok && p.check(TokenString, TokenChar) {
		tok := p.curr
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr = &CallExpr{Callee: expr, Paren: tok, Args: []Expr{arg}, Posn: expr.Pos()}
	}
	for p.curr.Type == TokenLeftParen {
		paren := p.advance()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "after arguments"); err != nil {
			return nil, err
		}
		expr = &CallExpr{Callee: expr, Paren: paren, Args: args, Posn: expr.Pos()}
	}
	return expr, nil
}

func (p *parser) parseArguments() ([]Expr, error) {
	var args []Expr
	if p.curr.Type == TokenRightParen {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curr.Type != TokenComma {
			return args, nil
		}
		p.advance()
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.curr
	switch tok.Type {
	case TokenNumber:
		p.advance()
		n, _ := tok.Literal.(int64)
		return &NumberExpr{Value: n, Posn: tok.Pos}, nil
	case TokenString, TokenChar:
		p.advance()
		raw, _ := tok.Literal.(string)
		return &StringExpr{Value: Normalize(raw), Char: tok.Type == TokenChar, Posn: tok.Pos}, nil
	case TokenTrue, TokenFalse:
		p.advance()
		return &BoolExpr{Value: tok.Type == TokenTrue, Posn: tok.Pos}, nil
	case TokenNil:
		p.advance()
		return &NilExpr{Posn: tok.Pos}, nil
	case TokenIdentifier:
		p.advance()
		return &IdentifierExpr{Name: tok.Lexeme, Posn: tok.Pos}, nil
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("expected expression, found %s", describe(tok))
	}
}

// errorf reports at the current token. Running into EOF marks the error
// incomplete so an interactive reader can ask for more input.
func (p *parser) errorf(format string, args ...any) error {
	if p.curr.Type == TokenEOF {
		return newIncompleteError(p.curr.Pos, format, args...)
	}
	return newError(p.curr.Pos, format, args...)
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier, TokenNumber, TokenUnknown:
		return "`" + tok.Lexeme + "`"
	case TokenString, TokenChar:
		return tok.Type.String() + " literal"
	default:
		return "`" + tok.Type.String() + "`"
	}
}
