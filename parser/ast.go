package parser

// Position tracks a source location within a vispel chunk.
type Position struct {
	Offset int // zero-based byte offset within the chunk
	Line   int // one-based line number, continued across chunks
	Column int // one-based column number (byte count)
}

// Node represents any AST node with a source position.
type Node interface {
	Pos() Position
}

// Stmt represents a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression. Expression nodes are always pointers so
// their identity can key the resolver's side-table.
type Expr interface {
	Node
	exprNode()
}

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int64
	Posn  Position
}

func (e *NumberExpr) Pos() Position { return e.Posn }
func (*NumberExpr) exprNode()       {}

// StringExpr is a string or char literal with escapes already expanded.
type StringExpr struct {
	Value string
	Char  bool
	Posn  Position
}

func (e *StringExpr) Pos() Position { return e.Posn }
func (*StringExpr) exprNode()       {}

// BoolExpr is true or false.
type BoolExpr struct {
	Value bool
	Posn  Position
}

func (e *BoolExpr) Pos() Position { return e.Posn }
func (*BoolExpr) exprNode()       {}

// NilExpr is the nil literal.
type NilExpr struct {
	Posn Position
}

func (e *NilExpr) Pos() Position { return e.Posn }
func (*NilExpr) exprNode()       {}

// IdentifierExpr refers to a variable or function name.
type IdentifierExpr struct {
	Name string
	Posn Position
}

func (e *IdentifierExpr) Pos() Position { return e.Posn }
func (*IdentifierExpr) exprNode()       {}

// UnaryExpr applies -, ! or ~ to its operand.
type UnaryExpr struct {
	Op    Token
	Right Expr
	Posn  Position
}

func (e *UnaryExpr) Pos() Position { return e.Posn }
func (*UnaryExpr) exprNode()       {}

// BinaryExpr covers arithmetic, bitwise, shift, equality and comparison.
type BinaryExpr struct {
	Left  Expr
	Op    Token
	Right Expr
	Posn  Position
}

func (e *BinaryExpr) Pos() Position { return e.Posn }
func (*BinaryExpr) exprNode()       {}

// LogicalExpr is a short-circuiting && or ||.
type LogicalExpr struct {
	Left  Expr
	Op    Token
	Right Expr
	Posn  Position
}

func (e *LogicalExpr) Pos() Position { return e.Posn }
func (*LogicalExpr) exprNode()       {}

// AssignExpr stores Value into the variable Name.
type AssignExpr struct {
	Name  Token
	Value Expr
	Posn  Position
}

func (e *AssignExpr) Pos() Position { return e.Posn }
func (*AssignExpr) exprNode()       {}

// CallExpr invokes Callee with Args.
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
	Posn   Position
}

func (e *CallExpr) Pos() Position { return e.Posn }
func (*CallExpr) exprNode()       {}

// Arity is the number of arguments at the call site.
func (e *CallExpr) Arity() int { return len(e.Args) }

// VarStmt declares Name, optionally initialised.
type VarStmt struct {
	Name Token
	Init Expr // nil when absent
	Posn Position
}

func (s *VarStmt) Pos() Position { return s.Posn }
func (*VarStmt) stmtNode()       {}

// BlockStmt introduces a new scope around Stmts.
type BlockStmt struct {
	Stmts []Stmt
	Posn  Position
}

func (s *BlockStmt) Pos() Position { return s.Posn }
func (*BlockStmt) stmtNode()       {}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	Expr Expr
	Posn Position
}

func (s *ExprStmt) Pos() Position { return s.Posn }
func (*ExprStmt) stmtNode()       {}

// AssertStmt aborts the current top-level statement when Cond is falsy.
type AssertStmt struct {
	Cond Expr
	Posn Position
}

func (s *AssertStmt) Pos() Position { return s.Posn }
func (*AssertStmt) stmtNode()       {}

// IfStmt is if/else. Else may be nil.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Posn Position
}

func (s *IfStmt) Pos() Position { return s.Posn }
func (*IfStmt) stmtNode()       {}

// WhileStmt loops while Cond is truthy.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Posn Position
}

func (s *WhileStmt) Pos() Position { return s.Posn }
func (*WhileStmt) stmtNode()       {}

// FunctionStmt declares a named function.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   *BlockStmt
	Posn   Position
}

func (s *FunctionStmt) Pos() Position { return s.Posn }
func (*FunctionStmt) stmtNode()       {}

// Arity is the declared parameter count.
func (s *FunctionStmt) Arity() int { return len(s.Params) }

// ReturnStmt leaves the enclosing function. Value is nil for a bare return.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
	Posn    Position
}

func (s *ReturnStmt) Pos() Position { return s.Posn }
func (*ReturnStmt) stmtNode()       {}
