package repr

import (
	"fmt"
	"math/big"
	"sort"

	"zappem.net/pub/math/poses/factor"
	"zappem.net/pub/math/poses/matrix"
	"zappem.net/pub/math/poses/rotation"
	"zappem.net/pub/math/poses/terms"
	"zappem.net/pub/math/poses/values"
)

// Symbolic is the domain of exact algebraic matrices. Arguments are
// symbols named after them; literal amounts become exact rationals.
// Constants stay symbols unless SubstituteConstants is set, in which
// case their value is used.
type Symbolic struct {
	SubstituteConstants bool
}

// Split returns the rational coefficient and symbol of a. The symbol
// is "" for a number.
func (d Symbolic) Split(a values.Amount) (*big.Rat, string, error) {
	switch x := a.(type) {
	case values.Literal:
		k, err := factor.Rat(float64(x))
		return k, "", err
	case values.Expression:
		if err := x.Check(); err != nil {
			return nil, "", err
		}
		if c, ok := x.Argument().(*values.Constant); ok && d.SubstituteConstants {
			k, err := factor.Rat(c.Value())
			if err != nil {
				return nil, "", fmt.Errorf("constant %q: %w", c.Name(), err)
			}
			return k.Mul(k, x.Coeff()), "", nil
		}
		return x.Coeff(), x.Argument().Name(), nil
	}
	return nil, "", fmt.Errorf("%w: amount %v of %T", values.ErrMalformedExpression, a, a)
}

// Identity returns the n x n identity matrix.
func (Symbolic) Identity(n int) *matrix.Matrix {
	m, err := matrix.Identity(n)
	if err != nil {
		panic(err)
	}
	return m
}

// Mul returns a*b.
func (Symbolic) Mul(a, b *matrix.Matrix) *matrix.Matrix {
	return a.Mx(b)
}

// Build evaluates the cells for amount.
func (d Symbolic) Build(n int, cells []Cell, amount values.Amount, negate bool) (*matrix.Matrix, error) {
	k, sym, err := d.Split(amount)
	if err != nil {
		return nil, err
	}
	if negate {
		k = new(big.Rat).Neg(k)
	}
	m, err := matrix.NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	c, s := rotation.Trig(k, sym)
	length := terms.Rat(k)
	if sym != "" {
		length = terms.Sym(k, sym)
	}
	for _, cell := range cells {
		var e *terms.Exp
		switch cell.Kind {
		case One:
			e = terms.Int(1)
		case Cos:
			e = c
		case Sin:
			e = s
		case Length:
			e = length
		default:
			return nil, fmt.Errorf("unknown cell kind %d", cell.Kind)
		}
		if cell.Neg {
			e = e.Neg()
		}
		if err := m.Set(cell.Row, cell.Col, e); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewSymbolic returns the representation of shape s in domain d.
func NewSymbolic(s Shape, d Symbolic) Representation[*matrix.Matrix] {
	return Representation[*matrix.Matrix]{Domain: d, Shape: s}
}

// FreeArguments returns the sorted names of the arguments the entries
// of m depend on, looking inside the angles of trigonometric symbols.
func FreeArguments(m *matrix.Matrix) ([]string, error) {
	seen := make(map[string]bool)
	for _, sym := range m.Symbols() {
		_, angle, ok := rotation.Angle(sym)
		if !ok {
			seen[sym] = true
			continue
		}
		vs, _, err := factor.Parse(angle)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		for _, v := range vs {
			if s := v.Symbol(); s != "" {
				seen[s] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for s := range seen {
		names = append(names, s)
	}
	sort.Strings(names)
	return names, nil
}
