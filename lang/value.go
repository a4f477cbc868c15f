package lang

import (
	"strconv"

	"github.com/sergev/vispel/parser"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeInt
	TypeString
	TypeAddress
	TypeCallable
)

func (t ValueType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeAddress:
		return "address"
	case TypeCallable:
		return "function"
	default:
		return "unknown"
	}
}

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload any
}

// Object is a host-managed composite referenced by an address value.
type Object interface {
	// Kind names the object for type() and error messages.
	Kind() string
	String() string
}

// Variadic is the arity of natives that accept any number of arguments.
const Variadic = -1

// NativeFunc implements a built-in. It receives the unevaluated argument
// expressions and evaluates what it needs through ev in env.
type NativeFunc func(ev *Evaluator, env *Env, args []parser.Expr) (Value, error)

// Callable is a user closure or a native function.
type Callable struct {
	Name   string
	Arity  int
	Params []string

	// User functions.
	Body    *parser.BlockStmt
	Closure *Env

	// Natives.
	Native NativeFunc
}

// IsNative reports whether c is implemented by the host.
func (c *Callable) IsNative() bool { return c.Native != nil }

// None is the no-value sentinel.
var None = Value{Type: TypeNone}

// IntValue constructs an integer Value.
func IntValue(i int64) Value {
	return Value{Type: TypeInt, payload: i}
}

// BoolValue maps true and false onto the integers 1 and 0.
func BoolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// AddressValue references a host object.
func AddressValue(obj Object) Value {
	return Value{Type: TypeAddress, payload: obj}
}

// CallableValue wraps a function.
func CallableValue(c *Callable) Value {
	return Value{Type: TypeCallable, payload: c}
}

func (v Value) IsNone() bool { return v.Type == TypeNone }

func (v Value) Int() int64 {
	if i, ok := v.payload.(int64); ok {
		return i
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Object() Object {
	if o, ok := v.payload.(Object); ok {
		return o
	}
	return nil
}

func (v Value) Callable() *Callable {
	if c, ok := v.payload.(*Callable); ok {
		return c
	}
	return nil
}

// TypeName is the user-facing type name, with objects named by their kind.
func (v Value) TypeName() string {
	if v.Type == TypeAddress {
		if o := v.Object(); o != nil {
			return o.Kind()
		}
	}
	return v.Type.String()
}

// String renders v the way print shows it.
func (v Value) String() string {
	switch v.Type {
	case TypeNone:
		return "nil"
	case TypeInt:
		return strconv.FormatInt(v.Int(), 10)
	case TypeString:
		return v.Str()
	case TypeAddress:
		if o := v.Object(); o != nil {
			return o.String()
		}
		return "<address>"
	case TypeCallable:
		c := v.Callable()
		if c.IsNative() {
			return "<native " + c.Name + ">"
		}
		return "<function " + c.Name + ">"
	default:
		return "<unknown>"
	}
}
