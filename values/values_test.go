package values

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantValue(t *testing.T) {
	value := rand.New(rand.NewSource(1)).Float64()
	c := NewConstant("c", value)
	assert.Equal(t, value, c.Value())

	v, err := NewExpression(c).Evalf()
	require.NoError(t, err)
	assert.Equal(t, value, v)

	v, err = NewExpression(c).Scaled(-3, 2).Evalf()
	require.NoError(t, err)
	assert.InDelta(t, -1.5*value, v, 1e-15)
}

func TestPiExpression(t *testing.T) {
	v, err := NewExpression(Pi).Scaled(1, 2).Evalf()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, v, 1e-15)
}

func TestNoEvalf(t *testing.T) {
	for _, arg := range []Argument{
		NewVariable("v"),
		NewParameter("p"),
		NewParameterWithDefault("p", 0),
	} {
		_, err := NewExpression(arg).Evalf()
		require.Error(t, err, arg.Name())
		assert.True(t, errors.Is(err, ErrUnresolvedSymbol))
		var unresolved *UnresolvedSymbolError
		require.True(t, errors.As(err, &unresolved))
		assert.Same(t, arg, unresolved.Argument)
	}
}

func TestExpressionAttributes(t *testing.T) {
	v1 := NewVariable("v1")
	e := NewExpression(v1).Scaled(3, 1)
	assert.Same(t, v1, e.Argument())
	assert.Equal(t, "3", e.Coeff().RatString())
	assert.Equal(t, "3*v1", e.String())

	n := e.Neg().(Expression)
	assert.Equal(t, "-3*v1", n.String())
	assert.Equal(t, e, n.Neg())
	assert.NotEqual(t, e, n)

	assert.Equal(t, "v1", NewExpression(v1).String())
	assert.Equal(t, "-v1", NewExpression(v1).Neg().String())
	assert.Equal(t, "-1/2*v1", NewExpression(v1).Scaled(2, -4).String())
	assert.Equal(t, NewExpression(v1).Scaled(1, 2), NewExpression(v1).Scaled(2, 4))
}

func TestLiteral(t *testing.T) {
	l := Literal(0.1234)
	v, err := l.Evalf()
	require.NoError(t, err)
	assert.Equal(t, 0.1234, v)
	assert.Equal(t, Literal(-0.1234), l.Neg())
	assert.Equal(t, "0.1234", l.String())
}

func TestMalformed(t *testing.T) {
	var e Expression
	assert.ErrorIs(t, e.Check(), ErrMalformedExpression)
	_, err := e.Evalf()
	assert.ErrorIs(t, err, ErrMalformedExpression)

	zero := NewExpression(NewVariable("x")).Scaled(0, 1)
	assert.ErrorIs(t, zero.Check(), ErrMalformedExpression)
	assert.NoError(t, NewExpression(NewVariable("x")).Check())
}

func TestSame(t *testing.T) {
	assert.True(t, Same(NewVariable("a"), NewVariable("a")))
	assert.False(t, Same(NewVariable("a"), NewParameter("a")))
	assert.False(t, Same(NewVariable("a"), nil))
	assert.Equal(t, Key{Kind: KindConstant, Name: "pi"}, KeyOf(Pi))
}
