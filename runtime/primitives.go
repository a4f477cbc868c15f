package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sergev/vispel/lang"
	"github.com/sergev/vispel/parser"
)

// Library provides the built-in functions. Console natives read from and
// write to the streams it was created with.
type Library struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLibrary creates a library bound to the given console streams. A nil
// reader behaves as an empty input; a nil writer discards output.
func NewLibrary(in io.Reader, out io.Writer) *Library {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Library{in: br, out: out}
}

// Natives lists every built-in with its arity.
func (lib *Library) Natives() []lang.Native {
	return []lang.Native{
		{Name: "print", Arity: 1, Fn: lib.primPrint},
		{Name: "input", Arity: 0, Fn: lib.primInput},
		{Name: "list", Arity: lang.Variadic, Fn: primList},
		{Name: "append", Arity: 2, Fn: primAppend},
		{Name: "insert", Arity: 3, Fn: primInsert},
		{Name: "remove", Arity: 2, Fn: primRemove},
		{Name: "destroy", Arity: 1, Fn: primDestroy},
		{Name: "length", Arity: 1, Fn: primLength},
		{Name: "get", Arity: 2, Fn: primGet},
		{Name: "str", Arity: 1, Fn: primStr},
		{Name: "type", Arity: 1, Fn: primType},
	}
}

// Registry builds a registry holding the library's natives.
func (lib *Library) Registry() (*lang.Registry, error) {
	return lang.NewRegistry(lib.Natives()...)
}

func (lib *Library) primPrint(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	if vals[0].IsNone() {
		return lang.None, nil
	}
	if _, err := fmt.Fprintln(lib.out, vals[0].String()); err != nil {
		return lang.None, fmt.Errorf("print: %w", err)
	}
	return lang.None, nil
}

func (lib *Library) primInput(*lang.Evaluator, *lang.Env, []parser.Expr) (lang.Value, error) {
	line, err := lib.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return lang.None, fmt.Errorf("input: %w", err)
	}
	if err != nil && line == "" {
		return lang.None, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return lang.StringValue(line), nil
}

func primList(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	return lang.AddressValue(NewList(vals...)), nil
}

func primAppend(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("append", vals[0])
	if err != nil {
		return lang.None, err
	}
	l.Append(vals[1])
	return lang.None, nil
}

func primInsert(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("insert", vals[0])
	if err != nil {
		return lang.None, err
	}
	i, err := indexArg("insert", vals[2])
	if err != nil {
		return lang.None, err
	}
	return lang.None, l.Insert(vals[1], i)
}

func primRemove(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("remove", vals[0])
	if err != nil {
		return lang.None, err
	}
	i, err := indexArg("remove", vals[1])
	if err != nil {
		return lang.None, err
	}
	return lang.None, l.Remove(i)
}

func primDestroy(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("destroy", vals[0])
	if err != nil {
		return lang.None, err
	}
	l.Clear()
	return lang.None, nil
}

func primLength(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("length", vals[0])
	if err != nil {
		return lang.None, err
	}
	return lang.IntValue(int64(l.Len())), nil
}

func primGet(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	l, err := listArg("get", vals[0])
	if err != nil {
		return lang.None, err
	}
	i, err := indexArg("get", vals[1])
	if err != nil {
		return lang.None, err
	}
	return l.Get(i)
}

func primStr(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	return lang.StringValue(vals[0].String()), nil
}

func primType(ev *lang.Evaluator, env *lang.Env, args []parser.Expr) (lang.Value, error) {
	vals, err := ev.EvalArgs(args, env)
	if err != nil {
		return lang.None, err
	}
	return lang.StringValue(vals[0].TypeName()), nil
}

func listArg(name string, v lang.Value) (*List, error) {
	if v.Type == lang.TypeAddress {
		if l, ok := v.Object().(*List); ok {
			return l, nil
		}
	}
	return nil, typeError(name, "l", "list", v)
}

func indexArg(name string, v lang.Value) (int64, error) {
	if v.Type != lang.TypeInt {
		return 0, typeError(name, "i", "int", v)
	}
	return v.Int(), nil
}

func typeError(name, param, expected string, got lang.Value) error {
	return lang.ErrTypeMismatch.Errorf("%s: argument `%s` of type %s incompatible with %s",
		name, param, got.TypeName(), expected)
}
