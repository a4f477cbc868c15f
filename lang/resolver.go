package lang

import (
	"log/slog"

	"github.com/sergev/vispel/log"
	"github.com/sergev/vispel/parser"
)

// Locals is the resolver's side-table: for every identifier reference and
// assignment target, the number of frames between the use site and the frame
// binding the name.
type Locals map[parser.Expr]int

type binding uint8

const (
	declared binding = iota // visible, no value yet
	defined                 // has a value
)

// Resolver computes Locals ahead of evaluation and reports static scope
// errors. Its root frame is reseeded from the live global frame on every
// call to Resolve, so names defined by earlier chunks resolve.
type Resolver struct {
	global *Env
	logger log.Logger

	scope     *Scope[binding]
	locals    Locals
	funcDepth int
}

// NewResolver creates a resolver whose root mirrors global.
func NewResolver(global *Env, opts ...Option) *Resolver {
	o := makeOptions(opts...)
	return &Resolver{global: global, logger: o.logger}
}

// Resolve walks stmts top to bottom. A failing top-level statement yields one
// error and resolution moves on to the next statement; the side-table is
// returned for the statements that resolved.
func (r *Resolver) Resolve(stmts []parser.Stmt) (Locals, []error) {
	root := NewScope[binding](nil)
	if r.global != nil {
		for _, name := range r.global.Names() {
			root.values[name] = defined
		}
	}
	r.locals = make(Locals)

	var errs []error
	for _, stmt := range stmts {
		r.scope = root
		r.funcDepth = 0
		if err := r.stmt(stmt); err != nil {
			errs = append(errs, err)
		}
	}
	r.scope = nil
	return r.locals, errs
}

func (r *Resolver) push() {
	r.scope = NewScope(r.scope)
}

func (r *Resolver) pop() {
	r.scope = r.scope.Parent()
}

func (r *Resolver) declare(name parser.Token, state binding) error {
	if err := r.scope.Define(name.Lexeme, state); err != nil {
		return &ResolveError{Pos: name.Pos, Err: err.(*Error)}
	}
	return nil
}

func (r *Resolver) define(name string) {
	r.scope.values[name] = defined
}

func (r *Resolver) bind(e parser.Expr, name string, pos parser.Position) error {
	hops, ok := r.scope.Lookup(name)
	if !ok {
		return resolvef(pos, ErrUndeclared, "var `%s` not declared", name)
	}
	r.locals[e] = hops
	if r.logger.Tracing() {
		r.logger.Trace("resolved",
			slog.String("name", name),
			slog.Int("hops", hops),
			slog.Int("line", pos.Line),
			slog.Int("column", pos.Column))
	}
	return nil
}

func (r *Resolver) stmts(stmts []parser.Stmt) error {
	for _, s := range stmts {
		if err := r.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) stmt(s parser.Stmt) error {
	switch s := s.(type) {
	case *parser.VarStmt:
		if s.Init == nil {
			return r.declare(s.Name, declared)
		}
		if err := r.expr(s.Init); err != nil {
			return err
		}
		return r.declare(s.Name, defined)

	case *parser.BlockStmt:
		r.push()
		defer r.pop()
		return r.stmts(s.Stmts)

	case *parser.ExprStmt:
		return r.expr(s.Expr)

	case *parser.AssertStmt:
		return r.expr(s.Cond)

	case *parser.IfStmt:
		if err := r.expr(s.Cond); err != nil {
			return err
		}
		if err := r.stmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.stmt(s.Else)
		}
		return nil

	case *parser.WhileStmt:
		if err := r.expr(s.Cond); err != nil {
			return err
		}
		return r.stmt(s.Body)

	case *parser.FunctionStmt:
		// Defined before the body so the function can call itself.
		if err := r.declare(s.Name, defined); err != nil {
			return err
		}
		return r.function(s)

	case *parser.ReturnStmt:
		if r.funcDepth == 0 {
			return resolvef(s.Pos(), ErrReturnOutside, "return outside function")
		}
		if s.Value != nil {
			return r.expr(s.Value)
		}
		return nil

	default:
		return resolvef(s.Pos(), ErrUnsupportedOperator, "unsupported statement %T", s)
	}
}

// function resolves params and body in one frame, the same frame a call
// creates at run time.
func (r *Resolver) function(fn *parser.FunctionStmt) error {
	r.push()
	r.funcDepth++
	defer func() {
		r.funcDepth--
		r.pop()
	}()
	for _, param := range fn.Params {
		if err := r.declare(param, declared); err != nil {
			return err
		}
		r.define(param.Lexeme)
	}
	return r.stmts(fn.Body.Stmts)
}

func (r *Resolver) expr(e parser.Expr) error {
	switch e := e.(type) {
	case *parser.NumberExpr, *parser.StringExpr, *parser.BoolExpr, *parser.NilExpr:
		return nil

	case *parser.IdentifierExpr:
		return r.bind(e, e.Name, e.Posn)

	case *parser.AssignExpr:
		if err := r.expr(e.Value); err != nil {
			return err
		}
		if err := r.bind(e, e.Name.Lexeme, e.Name.Pos); err != nil {
			return err
		}
		if state, ok := r.scope.Local(e.Name.Lexeme); ok && state == declared {
			r.define(e.Name.Lexeme)
		}
		return nil

	case *parser.UnaryExpr:
		return r.expr(e.Right)

	case *parser.BinaryExpr:
		if err := r.expr(e.Left); err != nil {
			return err
		}
		return r.expr(e.Right)

	case *parser.LogicalExpr:
		if err := r.expr(e.Left); err != nil {
			return err
		}
		return r.expr(e.Right)

	case *parser.CallExpr:
		if err := r.expr(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := r.expr(arg); err != nil {
				return err
			}
		}
		return nil

	default:
		return resolvef(e.Pos(), ErrUnsupportedOperator, "unsupported expression %T", e)
	}
}
