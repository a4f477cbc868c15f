package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/sergev/vispel/log"
	"github.com/sergev/vispel/parser"
)

// Evaluator walks resolved statements. Variable access follows the hop
// counts recorded by the Resolver.
type Evaluator struct {
	Global *Env

	locals   Locals
	out      io.Writer
	logger   log.Logger
	maxDepth int
	depth    int
}

// NewEvaluator constructs an evaluator over global. A nil global gets a
// fresh, empty frame.
func NewEvaluator(global *Env, opts ...Option) *Evaluator {
	if global == nil {
		global = NewEnv(nil)
	}
	o := makeOptions(opts...)
	return &Evaluator{
		Global:   global,
		locals:   make(Locals),
		out:      o.out,
		logger:   o.logger,
		maxDepth: o.maxDepth,
	}
}

// Bind merges a resolver side-table into the evaluator's.
func (ev *Evaluator) Bind(locals Locals) {
	maps.Copy(ev.locals, locals)
}

// completion is the outcome of executing a statement: either it ran to its
// end, or a return statement is unwinding to the nearest call.
type completion struct {
	value     Value
	returning bool
}

var normal = completion{value: None}

// Interpret runs each top-level statement in the global frame. A runtime
// error abandons only the statement that raised it; the others still run.
// The value of the final statement, when it is an expression that produced
// something other than none, is printed and returned.
func (ev *Evaluator) Interpret(stmts []parser.Stmt) (Value, []error) {
	var (
		last Value = None
		errs []error
	)
	for i, stmt := range stmts {
		ev.depth = 0
		var (
			v   Value = None
			err error
		)
		if es, ok := stmt.(*parser.ExprStmt); ok {
			v, err = ev.Eval(es.Expr, ev.Global)
		} else {
			_, err = ev.Execute(stmt, ev.Global)
		}
		if err != nil {
			errs = append(errs, asRuntime(stmt.Pos(), err))
			v = None
		}
		if i == len(stmts)-1 {
			last = v
		}
	}
	if !last.IsNone() {
		fmt.Fprintln(ev.out, last.String())
	}
	return last, errs
}

// Execute runs a single statement in env.
func (ev *Evaluator) Execute(stmt parser.Stmt, env *Env) (completion, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		_, err := ev.Eval(s.Expr, env)
		return normal, err

	case *parser.VarStmt:
		val := None
		if s.Init != nil {
			var err error
			if val, err = ev.Eval(s.Init, env); err != nil {
				return normal, err
			}
		}
		if err := env.Define(s.Name.Lexeme, val); err != nil {
			return normal, ev.fail(s.Name.Pos, err)
		}
		return normal, nil

	case *parser.BlockStmt:
		return ev.block(s.Stmts, NewEnv(env))

	case *parser.AssertStmt:
		v, err := ev.Eval(s.Cond, env)
		if err != nil {
			return normal, err
		}
		ok, err := Truthy(v)
		if err != nil {
			return normal, ev.fail(s.Cond.Pos(), err)
		}
		if !ok {
			return normal, Runtimef(s.Posn, ErrAssertion, "assert failed")
		}
		return normal, nil

	case *parser.IfStmt:
		ok, err := ev.condition(s.Cond, env)
		if err != nil {
			return normal, err
		}
		if ok {
			return ev.Execute(s.Then, env)
		}
		if s.Else != nil {
			return ev.Execute(s.Else, env)
		}
		return normal, nil

	case *parser.WhileStmt:
		for {
			ok, err := ev.condition(s.Cond, env)
			if err != nil || !ok {
				return normal, err
			}
			c, err := ev.Execute(s.Body, env)
			if err != nil || c.returning {
				return c, err
			}
		}

	case *parser.FunctionStmt:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		fn := &Callable{
			Name:    s.Name.Lexeme,
			Arity:   s.Arity(),
			Params:  params,
			Body:    s.Body,
			Closure: env,
		}
		if err := env.Define(fn.Name, CallableValue(fn)); err != nil {
			return normal, ev.fail(s.Name.Pos, err)
		}
		return normal, nil

	case *parser.ReturnStmt:
		val := None
		if s.Value != nil {
			var err error
			if val, err = ev.Eval(s.Value, env); err != nil {
				return normal, err
			}
		}
		return completion{value: val, returning: true}, nil

	default:
		return normal, Runtimef(stmt.Pos(), ErrUnsupportedOperator, "unsupported statement %T", stmt)
	}
}

// block runs stmts in frame, stopping at the first return or error.
func (ev *Evaluator) block(stmts []parser.Stmt, frame *Env) (completion, error) {
	if ev.logger.Tracing() {
		ev.logger.Trace("push frame", slog.Int("depth", frame.Depth()))
		defer ev.logger.Trace("pop frame", slog.Int("depth", frame.Depth()))
	}
	for _, stmt := range stmts {
		c, err := ev.Execute(stmt, frame)
		if err != nil || c.returning {
			return c, err
		}
	}
	return normal, nil
}

func (ev *Evaluator) condition(cond parser.Expr, env *Env) (bool, error) {
	v, err := ev.Eval(cond, env)
	if err != nil {
		return false, err
	}
	ok, err := Truthy(v)
	if err != nil {
		return false, ev.fail(cond.Pos(), err)
	}
	return ok, nil
}

// Eval evaluates an expression in env.
func (ev *Evaluator) Eval(expr parser.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *parser.NumberExpr:
		return IntValue(e.Value), nil

	case *parser.StringExpr:
		return StringValue(e.Value), nil

	case *parser.BoolExpr:
		return BoolValue(e.Value), nil

	case *parser.NilExpr:
		return None, nil

	case *parser.IdentifierExpr:
		return ev.lookup(e, e.Name, e.Posn, env)

	case *parser.AssignExpr:
		val, err := ev.Eval(e.Value, env)
		if err != nil {
			return None, err
		}
		if hops, ok := ev.locals[e]; ok {
			err = env.SetAt(hops, e.Name.Lexeme, val)
		} else {
			err = env.Set(e.Name.Lexeme, val)
		}
		if err != nil {
			return None, ev.fail(e.Name.Pos, err)
		}
		return val, nil

	case *parser.UnaryExpr:
		right, err := ev.Eval(e.Right, env)
		if err != nil {
			return None, err
		}
		v, err := unary(e.Op, right)
		if err != nil {
			return None, ev.fail(e.Posn, err)
		}
		return v, nil

	case *parser.BinaryExpr:
		left, err := ev.Eval(e.Left, env)
		if err != nil {
			return None, err
		}
		right, err := ev.Eval(e.Right, env)
		if err != nil {
			return None, err
		}
		v, err := binary(e.Op, left, right)
		if err != nil {
			return None, ev.fail(e.Posn, err)
		}
		return v, nil

	case *parser.LogicalExpr:
		return ev.logical(e, env)

	case *parser.CallExpr:
		return ev.call(e, env)

	default:
		return None, Runtimef(expr.Pos(), ErrUnsupportedOperator, "unsupported expression %T", expr)
	}
}

// EvalArgs evaluates args left to right in env.
func (ev *Evaluator) EvalArgs(args []parser.Expr, env *Env) ([]Value, error) {
	vals := make([]Value, len(args))
	for i, arg := range args {
		v, err := ev.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// lookup reads a variable through its hop count, or by name when the
// side-table has no entry for the node.
func (ev *Evaluator) lookup(e parser.Expr, name string, pos parser.Position, env *Env) (Value, error) {
	var (
		v   Value
		err error
	)
	if hops, ok := ev.locals[e]; ok {
		v, err = env.GetAt(hops, name)
	} else {
		v, err = env.Get(name)
	}
	if err != nil {
		return None, ev.fail(pos, err)
	}
	return v, nil
}

// logical implements && (yielding 1 or 0) and || (yielding the first truthy
// operand, or 0).
func (ev *Evaluator) logical(e *parser.LogicalExpr, env *Env) (Value, error) {
	left, err := ev.Eval(e.Left, env)
	if err != nil {
		return None, err
	}
	lt, err := Truthy(left)
	if err != nil {
		return None, ev.fail(e.Left.Pos(), err)
	}
	if e.Op.Type == parser.TokenOrOr && lt {
		return left, nil
	}
	if e.Op.Type == parser.TokenAndAnd && !lt {
		return BoolValue(false), nil
	}
	right, err := ev.Eval(e.Right, env)
	if err != nil {
		return None, err
	}
	rt, err := Truthy(right)
	if err != nil {
		return None, ev.fail(e.Right.Pos(), err)
	}
	if e.Op.Type == parser.TokenOrOr {
		if rt {
			return right, nil
		}
		return BoolValue(false), nil
	}
	return BoolValue(rt), nil
}

func (ev *Evaluator) call(e *parser.CallExpr, env *Env) (Value, error) {
	callee, err := ev.Eval(e.Callee, env)
	if err != nil {
		return None, err
	}
	fn := callee.Callable()
	if callee.Type != TypeCallable || fn == nil {
		return None, Runtimef(e.Posn, ErrNotCallable, "calling a non callable expression")
	}
	if fn.Arity != Variadic && fn.Arity != e.Arity() {
		return None, Runtimef(e.Posn, ErrArity, "function `%s` expects %d arguments, but got %d",
			fn.Name, fn.Arity, e.Arity())
	}

	if fn.IsNative() {
		if ev.logger.Tracing() {
			ev.logger.Trace("native call", slog.String("name", fn.Name), slog.Int("args", e.Arity()))
		}
		v, err := fn.Native(ev, env, e.Args)
		if err != nil {
			return None, asRuntime(e.Posn, err)
		}
		return v, nil
	}

	args, err := ev.EvalArgs(e.Args, env)
	if err != nil {
		return None, err
	}
	if ev.depth >= ev.maxDepth {
		return None, Runtimef(e.Posn, ErrStackOverflow, "maximum call depth %d exceeded in `%s`", ev.maxDepth, fn.Name)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	frame := NewEnv(fn.Closure)
	for i, name := range fn.Params {
		if err := frame.Define(name, args[i]); err != nil {
			return None, ev.fail(e.Posn, err)
		}
	}
	c, err := ev.block(fn.Body.Stmts, frame)
	if err != nil {
		return None, err
	}
	if c.returning {
		return c.value, nil
	}
	return None, nil
}

// fail positions a lang error as a RuntimeError. Errors that already carry
// a position pass through.
func (ev *Evaluator) fail(pos parser.Position, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return asRuntime(pos, err)
}
