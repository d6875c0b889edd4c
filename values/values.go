// Package values defines the symbolic arguments a motion step amount
// may depend on, and the amounts themselves.
//
// An amount is either a Literal number or an Expression: a rational
// coefficient times one Argument. Arguments are Variables (never
// valued), Parameters (optionally with a default value) and Constants
// (always valued).
package values

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Kind identifies the flavor of an Argument.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindConstant:
		return "constant"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Argument is a named symbolic argument.
type Argument interface {
	Name() string
	Kind() Kind
	String() string
}

// Key identifies an argument by kind and name.
type Key struct {
	Kind Kind
	Name string
}

// KeyOf returns the identity key of a.
func KeyOf(a Argument) Key {
	return Key{Kind: a.Kind(), Name: a.Name()}
}

// Same reports whether a and b denote the same argument.
func Same(a, b Argument) bool {
	if a == nil || b == nil {
		return a == b
	}
	return KeyOf(a) == KeyOf(b)
}

// Variable is a free argument that is never assigned a value.
type Variable struct {
	name string
}

// NewVariable returns a Variable called name.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

func (v *Variable) Name() string   { return v.name }
func (v *Variable) Kind() Kind     { return KindVariable }
func (v *Variable) String() string { return v.name }

// Parameter is an argument that may carry a default value.
type Parameter struct {
	name   string
	def    float64
	hasDef bool
}

// NewParameter returns a Parameter with no default value.
func NewParameter(name string) *Parameter {
	return &Parameter{name: name}
}

// NewParameterWithDefault returns a Parameter defaulting to def.
func NewParameterWithDefault(name string, def float64) *Parameter {
	return &Parameter{name: name, def: def, hasDef: true}
}

func (p *Parameter) Name() string   { return p.name }
func (p *Parameter) Kind() Kind     { return KindParameter }
func (p *Parameter) String() string { return p.name }

// Default returns the default value of p, if any.
func (p *Parameter) Default() (float64, bool) {
	return p.def, p.hasDef
}

// Constant is a named argument with a fixed value.
type Constant struct {
	name  string
	value float64
}

// NewConstant returns a Constant called name with the given value.
func NewConstant(name string, value float64) *Constant {
	return &Constant{name: name, value: value}
}

func (c *Constant) Name() string   { return c.name }
func (c *Constant) Kind() Kind     { return KindConstant }
func (c *Constant) String() string { return c.name }

// Value returns the value of c.
func (c *Constant) Value() float64 {
	return c.value
}

// Pi is the predefined constant π.
var Pi = NewConstant("pi", math.Pi)

var (
	// ErrUnresolvedSymbol is matched by every UnresolvedSymbolError.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	// ErrMalformedExpression indicates an expression that is not a
	// non-zero coefficient times an argument.
	ErrMalformedExpression = errors.New("malformed expression")
)

// UnresolvedSymbolError reports an argument that has no numerical
// value.
type UnresolvedSymbolError struct {
	Argument Argument
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("%v: %s %q has no value", ErrUnresolvedSymbol, e.Argument.Kind(), e.Argument.Name())
}

// Is makes errors.Is(err, ErrUnresolvedSymbol) hold.
func (e *UnresolvedSymbolError) Is(target error) bool {
	return target == ErrUnresolvedSymbol
}

// Amount is the size of a motion step: a Literal or an Expression.
type Amount interface {
	// Evalf returns the numerical value of the amount. It fails for
	// expressions of Variables and Parameters.
	Evalf() (float64, error)
	// Neg returns the amount with its sign flipped.
	Neg() Amount
	String() string
}

// Literal is a plain numerical amount.
type Literal float64

func (l Literal) Evalf() (float64, error) { return float64(l), nil }
func (l Literal) Neg() Amount             { return -l }

func (l Literal) String() string {
	return strconv.FormatFloat(float64(l), 'g', -1, 64)
}

// Expression is coefficient*argument, the coefficient being the
// rational number num/den. Expressions are comparable with ==: the
// coefficient is kept reduced with a positive denominator, and the
// arguments of one model are shared by a Registry.
type Expression struct {
	arg      Argument
	num, den int64
}

// NewExpression returns the expression 1*arg.
func NewExpression(arg Argument) Expression {
	return Expression{arg: arg, num: 1, den: 1}
}

// Scaled returns the expression num/den*e. It panics on a zero
// denominator.
func (e Expression) Scaled(num, den int64) Expression {
	if den == 0 {
		panic("values: zero denominator")
	}
	r := big.NewRat(num, den)
	r.Mul(r, e.Coeff())
	return e.withCoeff(r)
}

func (e Expression) withCoeff(r *big.Rat) Expression {
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		panic(fmt.Sprintf("values: coefficient %s overflows", r.RatString()))
	}
	e.num, e.den = r.Num().Int64(), r.Denom().Int64()
	return e
}

// WithCoeff returns the expression r*arg.
func (e Expression) WithCoeff(r *big.Rat) Expression {
	return e.withCoeff(r)
}

// Argument returns the argument of e.
func (e Expression) Argument() Argument {
	return e.arg
}

// Coeff returns the coefficient of e. The zero Expression has a zero
// coefficient.
func (e Expression) Coeff() *big.Rat {
	if e.den == 0 {
		return new(big.Rat)
	}
	return big.NewRat(e.num, e.den)
}

// Neg returns -e.
func (e Expression) Neg() Amount {
	e.num = -e.num
	return e
}

// Check confirms that e is a non-zero coefficient times an argument.
func (e Expression) Check() error {
	if e.arg == nil {
		return fmt.Errorf("%w: no argument", ErrMalformedExpression)
	}
	if e.num == 0 || e.den <= 0 {
		return fmt.Errorf("%w: coefficient %d/%d of %q", ErrMalformedExpression, e.num, e.den, e.arg.Name())
	}
	return nil
}

// Evalf returns the value of e. Only expressions of constants have
// one: Parameters never evaluate, even with a default value.
func (e Expression) Evalf() (float64, error) {
	if err := e.Check(); err != nil {
		return 0, err
	}
	c, ok := e.arg.(*Constant)
	if !ok {
		return 0, &UnresolvedSymbolError{Argument: e.arg}
	}
	return float64(e.num) / float64(e.den) * c.value, nil
}

// String renders e as "2*p1", "-1/2*TZ" or just "q0".
func (e Expression) String() string {
	name := "<nil>"
	if e.arg != nil {
		name = e.arg.Name()
	}
	switch {
	case e.num == e.den:
		return name
	case e.num == -e.den:
		return "-" + name
	}
	return e.Coeff().RatString() + "*" + name
}
