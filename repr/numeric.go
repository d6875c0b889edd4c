package repr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"zappem.net/pub/math/poses/values"
)

// Numeric is the float64 domain. Variables and Parameters take their
// values from Bindings, keyed by name. An unbound Parameter falls back
// on its default unless StrictParameters is set. Constants always have
// their own value.
type Numeric struct {
	Bindings         map[string]float64
	StrictParameters bool
}

// Value returns the numerical value of a.
func (d Numeric) Value(a values.Amount) (float64, error) {
	e, ok := a.(values.Expression)
	if !ok {
		return a.Evalf()
	}
	if err := e.Check(); err != nil {
		return 0, err
	}
	k, _ := e.Coeff().Float64()
	switch arg := e.Argument().(type) {
	case *values.Constant:
		return k * arg.Value(), nil
	case *values.Parameter:
		if v, ok := d.Bindings[arg.Name()]; ok {
			return k * v, nil
		}
		if def, ok := arg.Default(); ok && !d.StrictParameters {
			return k * def, nil
		}
	default:
		if v, ok := d.Bindings[arg.Name()]; ok && arg.Kind() == values.KindVariable {
			return k * v, nil
		}
	}
	return 0, &values.UnresolvedSymbolError{Argument: e.Argument()}
}

// Identity returns the n x n identity matrix.
func (Numeric) Identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Mul returns a*b.
func (Numeric) Mul(a, b *mat.Dense) *mat.Dense {
	var c mat.Dense
	c.Mul(a, b)
	return &c
}

// Build evaluates the cells for amount.
func (d Numeric) Build(n int, cells []Cell, amount values.Amount, negate bool) (*mat.Dense, error) {
	v, err := d.Value(amount)
	if err != nil {
		return nil, err
	}
	if negate {
		v = -v
	}
	m := mat.NewDense(n, n, nil)
	for _, c := range cells {
		var x float64
		switch c.Kind {
		case One:
			x = 1
		case Cos:
			x = math.Cos(v)
		case Sin:
			x = math.Sin(v)
		case Length:
			x = v
		default:
			return nil, fmt.Errorf("unknown cell kind %d", c.Kind)
		}
		if c.Neg {
			x = -x
		}
		m.Set(c.Row, c.Col, x)
	}
	return m, nil
}

// NewNumeric returns the representation of shape s in domain d.
func NewNumeric(s Shape, d Numeric) Representation[*mat.Dense] {
	return Representation[*mat.Dense]{Domain: d, Shape: s}
}
