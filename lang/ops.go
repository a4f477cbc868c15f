package lang

import (
	"strings"

	"github.com/sergev/vispel/parser"
)

// Truthy reports the truth of v: a non-zero int or a non-empty string. None
// is false. Other types cannot be used as conditions.
func Truthy(v Value) (bool, error) {
	switch v.Type {
	case TypeInt:
		return v.Int() != 0, nil
	case TypeString:
		return v.Str() != "", nil
	case TypeNone:
		return false, nil
	default:
		return false, ErrTypeMismatch.Errorf("%s has no truth value", v.TypeName())
	}
}

// Equal compares two values of the same type. Ints and strings compare by
// content, everything else by identity.
func Equal(a, b Value) (bool, error) {
	if a.Type != b.Type {
		return false, ErrTypeMismatch.Errorf("type mismatch in comparison: %s and %s", a.TypeName(), b.TypeName())
	}
	switch a.Type {
	case TypeNone:
		return true, nil
	case TypeInt:
		return a.Int() == b.Int(), nil
	case TypeString:
		return a.Str() == b.Str(), nil
	case TypeAddress:
		return a.Object() == b.Object(), nil
	case TypeCallable:
		return a.Callable() == b.Callable(), nil
	default:
		return false, ErrTypeMismatch.Errorf("cannot compare %s values", a.TypeName())
	}
}

// Greater orders ints numerically and strings lexicographically.
func Greater(a, b Value) (bool, error) {
	if a.Type != b.Type {
		return false, ErrTypeMismatch.Errorf("type mismatch in comparison: %s and %s", a.TypeName(), b.TypeName())
	}
	switch a.Type {
	case TypeInt:
		return a.Int() > b.Int(), nil
	case TypeString:
		return strings.Compare(a.Str(), b.Str()) > 0, nil
	default:
		return false, ErrTypeMismatch.Errorf("cannot order %s values", a.TypeName())
	}
}

// GreaterEqual is Equal || Greater. Less and LessEqual are its negations.
func GreaterEqual(a, b Value) (bool, error) {
	eq, err := Equal(a, b)
	if err != nil || eq {
		return eq, err
	}
	return Greater(a, b)
}

func binary(op parser.Token, l, r Value) (Value, error) {
	switch op.Type {
	case parser.TokenEqualEqual, parser.TokenBangEqual:
		eq, err := Equal(l, r)
		if err != nil {
			return None, err
		}
		return BoolValue(eq == (op.Type == parser.TokenEqualEqual)), nil
	case parser.TokenGreater:
		gt, err := Greater(l, r)
		return BoolValue(gt), err
	case parser.TokenGreaterEqual:
		ge, err := GreaterEqual(l, r)
		return BoolValue(ge), err
	case parser.TokenLess:
		ge, err := GreaterEqual(l, r)
		return BoolValue(!ge), err
	case parser.TokenLessEqual:
		gt, err := Greater(l, r)
		return BoolValue(!gt), err
	}

	if l.Type != TypeInt || r.Type != TypeInt {
		return None, ErrTypeMismatch.Errorf("invalid binary operation %s between %s and %s",
			op.Type, l.TypeName(), r.TypeName())
	}
	a, b := l.Int(), r.Int()
	switch op.Type {
	case parser.TokenPlus:
		return IntValue(a + b), nil
	case parser.TokenMinus:
		return IntValue(a - b), nil
	case parser.TokenStar:
		return IntValue(a * b), nil
	case parser.TokenSlash:
		if b == 0 {
			return None, ErrDivisionByZero.Errorf("division by zero")
		}
		return IntValue(a / b), nil
	case parser.TokenAmpersand:
		return IntValue(a & b), nil
	case parser.TokenPipe:
		return IntValue(a | b), nil
	case parser.TokenCaret:
		return IntValue(a ^ b), nil
	case parser.TokenShiftLeft, parser.TokenShiftRight:
		if b < 0 {
			return None, ErrTypeMismatch.Errorf("negative shift count %d", b)
		}
		if op.Type == parser.TokenShiftLeft {
			return IntValue(a << uint64(b)), nil
		}
		return IntValue(a >> uint64(b)), nil
	default:
		return None, ErrUnsupportedOperator.Errorf("unsupported binary operator %s", op.Type)
	}
}

func unary(op parser.Token, v Value) (Value, error) {
	if op.Type == parser.TokenBang {
		t, err := Truthy(v)
		if err != nil {
			return None, err
		}
		return BoolValue(!t), nil
	}
	if v.Type != TypeInt {
		return None, ErrTypeMismatch.Errorf("invalid unary operation %s for %s", op.Type, v.TypeName())
	}
	switch op.Type {
	case parser.TokenMinus:
		return IntValue(-v.Int()), nil
	case parser.TokenTilde:
		return IntValue(^v.Int()), nil
	default:
		return None, ErrUnsupportedOperator.Errorf("unsupported unary operator %s", op.Type)
	}
}
