package lang

import (
	"errors"
	"testing"

	"github.com/sergev/vispel/parser"
)

type stubObject struct{ name string }

func (o *stubObject) Kind() string   { return "stub" }
func (o *stubObject) String() string { return o.name }

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
		err  error
	}{
		{"zero", IntValue(0), false, nil},
		{"negative", IntValue(-1), true, nil},
		{"empty string", StringValue(""), false, nil},
		{"string", StringValue("x"), true, nil},
		{"none", None, false, nil},
		{"address", AddressValue(&stubObject{}), false, ErrTypeMismatch},
		{"callable", CallableValue(&Callable{Name: "f"}), false, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Truthy(tt.v)
			if !errors.Is(err, tt.err) && err != tt.err {
				t.Fatalf("Truthy(%v) error = %v, want %v", tt.v, err, tt.err)
			}
			if got != tt.want {
				t.Fatalf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	obj := &stubObject{name: "a"}
	fn := &Callable{Name: "f"}
	tests := []struct {
		name    string
		a, b    Value
		want    bool
		wantErr bool
	}{
		{"ints", IntValue(3), IntValue(3), true, false},
		{"strings", StringValue("a"), StringValue("b"), false, false},
		{"none", None, None, true, false},
		{"same object", AddressValue(obj), AddressValue(obj), true, false},
		{"distinct objects", AddressValue(obj), AddressValue(&stubObject{name: "a"}), false, false},
		{"same function", CallableValue(fn), CallableValue(fn), true, false},
		{"mixed", IntValue(1), StringValue("1"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Equal error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestComparisonsDeriveFromGreater(t *testing.T) {
	values := [][]Value{
		{IntValue(-2), IntValue(0), IntValue(0), IntValue(7)},
		{StringValue(""), StringValue("a"), StringValue("ab"), StringValue("b")},
	}
	tok := func(tt parser.TokenType) parser.Token { return parser.Token{Type: tt} }
	for _, group := range values {
		for _, a := range group {
			for _, b := range group {
				lt, err := binary(tok(parser.TokenLess), a, b)
				if err != nil {
					t.Fatalf("%v < %v: %v", a, b, err)
				}
				ge, _ := GreaterEqual(a, b)
				if lt.Int() == 1 == ge {
					t.Errorf("%v < %v = %v but >= is %v", a, b, lt, ge)
				}
				le, _ := binary(tok(parser.TokenLessEqual), a, b)
				gt, _ := Greater(a, b)
				if le.Int() == 1 == gt {
					t.Errorf("%v <= %v = %v but > is %v", a, b, le, gt)
				}
			}
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	tok := func(tt parser.TokenType) parser.Token { return parser.Token{Type: tt} }
	tests := []struct {
		name string
		op   parser.TokenType
		l, r Value
		kind *Error
	}{
		{"add string", parser.TokenPlus, IntValue(1), StringValue("a"), ErrTypeMismatch},
		{"divide by zero", parser.TokenSlash, IntValue(1), IntValue(0), ErrDivisionByZero},
		{"negative shift", parser.TokenShiftLeft, IntValue(1), IntValue(-1), ErrTypeMismatch},
		{"order none", parser.TokenGreater, None, None, ErrTypeMismatch},
		{"compare mixed", parser.TokenEqualEqual, None, IntValue(0), ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binary(tok(tt.op), tt.l, tt.r)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("got %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestUnary(t *testing.T) {
	tok := func(tt parser.TokenType) parser.Token { return parser.Token{Type: tt} }
	if v, _ := unary(tok(parser.TokenMinus), IntValue(5)); v.Int() != -5 {
		t.Fatalf("-5 = %v", v)
	}
	if v, _ := unary(tok(parser.TokenTilde), IntValue(0)); v.Int() != -1 {
		t.Fatalf("~0 = %v", v)
	}
	if v, _ := unary(tok(parser.TokenBang), StringValue("")); v.Int() != 1 {
		t.Fatalf(`!"" = %v`, v)
	}
	_, err := unary(tok(parser.TokenMinus), StringValue("x"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf(`-"x": got %v, want ErrTypeMismatch`, err)
	}
	if got, want := err.Error(), "invalid unary operation - for string"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}
