// Package metadata classifies the symbolic arguments coordinate
// transforms depend on.
package metadata

import (
	"fmt"
	"math/big"
	"strings"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/values"
)

// CanonicalExpression is an expression with its sign removed. The
// amounts k*x and -k*x have the same canonical expression.
type CanonicalExpression struct {
	expr     values.Expression
	rotation bool
}

// Canonical returns the canonical form of e.
func Canonical(e values.Expression) (CanonicalExpression, error) {
	if err := e.Check(); err != nil {
		return CanonicalExpression{}, err
	}
	return CanonicalExpression{expr: e.WithCoeff(new(big.Rat).Abs(e.Coeff()))}, nil
}

// CanonicalOf returns the canonical form of the amount of p, which
// must be an Expression, remembering whether p is a rotation.
func CanonicalOf(p ct.PrimitiveCTransform) (CanonicalExpression, error) {
	e, ok := p.Amount.(values.Expression)
	if !ok {
		return CanonicalExpression{}, fmt.Errorf("%w: amount %v of %T", values.ErrMalformedExpression, p.Amount, p.Amount)
	}
	c, err := Canonical(e)
	c.rotation = p.Kind == motions.Rotation
	return c, err
}

// Equal reports whether c and o scale the same argument by the same
// coefficient. Arguments are compared by name and kind.
func (c CanonicalExpression) Equal(o CanonicalExpression) bool {
	return values.Same(c.Argument(), o.Argument()) && c.expr.Coeff().Cmp(o.expr.Coeff()) == 0
}

// IsRotation reports whether the expression is the angle of a
// rotation. It plays no part in Equal.
func (c CanonicalExpression) IsRotation() bool { return c.rotation }

// Expression returns the sign-normalized expression.
func (c CanonicalExpression) Expression() values.Expression { return c.expr }

// Argument returns the argument of the expression.
func (c CanonicalExpression) Argument() values.Argument { return c.expr.Argument() }

// IsIdentity reports whether the expression is the bare argument.
func (c CanonicalExpression) IsIdentity() bool {
	return c.expr.Coeff().Cmp(big.NewRat(1, 1)) == 0
}

func (c CanonicalExpression) String() string { return c.expr.String() }

// ArgumentMap maps arguments to the canonical expressions they appear
// in. Arguments and expressions are kept in order of first insertion,
// without duplicates.
type ArgumentMap struct {
	args  []values.Argument
	exprs map[values.Key][]CanonicalExpression
}

// NewArgumentMap returns an empty map.
func NewArgumentMap() *ArgumentMap {
	return &ArgumentMap{exprs: make(map[values.Key][]CanonicalExpression)}
}

// Len returns the number of arguments in m.
func (m *ArgumentMap) Len() int { return len(m.args) }

// IsEmpty reports whether m holds no argument.
func (m *ArgumentMap) IsEmpty() bool { return len(m.args) == 0 }

// Arguments returns the arguments of m in order.
func (m *ArgumentMap) Arguments() []values.Argument {
	return append([]values.Argument(nil), m.args...)
}

// Expressions returns the canonical expressions of a in order.
func (m *ArgumentMap) Expressions(a values.Argument) []CanonicalExpression {
	return append([]CanonicalExpression(nil), m.exprs[values.KeyOf(a)]...)
}

// Add records that c appears in the transform.
func (m *ArgumentMap) Add(c CanonicalExpression) {
	a := c.Argument()
	k := values.KeyOf(a)
	es, seen := m.exprs[k]
	if !seen {
		m.args = append(m.args, a)
	}
	for _, e := range es {
		if e.Equal(c) {
			return
		}
	}
	m.exprs[k] = append(es, c)
}

// Merge adds every expression of n to m.
func (m *ArgumentMap) Merge(n *ArgumentMap) {
	for _, a := range n.args {
		for _, c := range n.exprs[values.KeyOf(a)] {
			m.Add(c)
		}
	}
}

// String renders m as "q0{q0, 2*q0}, p1{p1}".
func (m *ArgumentMap) String() string {
	var parts []string
	for _, a := range m.args {
		var es []string
		for _, c := range m.exprs[values.KeyOf(a)] {
			es = append(es, c.String())
		}
		parts = append(parts, fmt.Sprintf("%s{%s}", a.Name(), strings.Join(es, ", ")))
	}
	return strings.Join(parts, ", ")
}

// SymbolicArgumentsOf scans the primitives of t in order and sorts
// the canonical expressions of their amounts by argument kind.
// Literal amounts carry no argument and are skipped.
func SymbolicArgumentsOf(t ct.CoordinateTransform) (vars, pars, consts *ArgumentMap, err error) {
	vars, pars, consts = NewArgumentMap(), NewArgumentMap(), NewArgumentMap()
	for _, p := range t.Primitives {
		if _, ok := p.Amount.(values.Literal); ok {
			continue
		}
		c, err := CanonicalOf(p)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%v: %w", t, err)
		}
		switch c.Argument().Kind() {
		case values.KindVariable:
			vars.Add(c)
		case values.KindParameter:
			pars.Add(c)
		case values.KindConstant:
			consts.Add(c)
		default:
			return nil, nil, nil, fmt.Errorf("%w: argument %q of unknown kind", values.ErrMalformedExpression, c.Argument().Name())
		}
	}
	return vars, pars, consts, nil
}

// TransformMetadata describes the arguments of one transform.
type TransformMetadata struct {
	Transform                        ct.CoordinateTransform
	Variables, Parameters, Constants *ArgumentMap

	// Parametric is set when the transform depends on a Parameter.
	Parametric bool
	// Constant is set when the transform depends on neither Variables
	// nor Parameters.
	Constant bool
}

// NewTransformMetadata collects the metadata of t.
func NewTransformMetadata(t ct.CoordinateTransform) (*TransformMetadata, error) {
	vars, pars, consts, err := SymbolicArgumentsOf(t)
	if err != nil {
		return nil, err
	}
	return &TransformMetadata{
		Transform:  t,
		Variables:  vars,
		Parameters: pars,
		Constants:  consts,
		Parametric: !pars.IsEmpty(),
		Constant:   vars.IsEmpty() && pars.IsEmpty(),
	}, nil
}

// Name returns the name of the transform, "A_X_B".
func (md *TransformMetadata) Name() string { return md.Transform.String() }

// TransformsModelMetadata gathers the arguments of every transform of
// a model. An argument's expressions are the union of its expressions
// over all transforms.
type TransformsModelMetadata struct {
	Model                            ct.Model
	Transforms                       []*TransformMetadata
	Variables, Parameters, Constants *ArgumentMap
}

// NewTransformsModelMetadata collects the metadata of m, visiting its
// transforms in order.
func NewTransformsModelMetadata(m ct.Model) (*TransformsModelMetadata, error) {
	md := &TransformsModelMetadata{
		Model:      m,
		Variables:  NewArgumentMap(),
		Parameters: NewArgumentMap(),
		Constants:  NewArgumentMap(),
	}
	for _, t := range m.Transforms {
		tm, err := NewTransformMetadata(t)
		if err != nil {
			return nil, err
		}
		md.Transforms = append(md.Transforms, tm)
		md.Variables.Merge(tm.Variables)
		md.Parameters.Merge(tm.Parameters)
		md.Constants.Merge(tm.Constants)
	}
	return md, nil
}

// IsParametric reports whether any transform of the model depends on a
// Parameter.
func (md *TransformsModelMetadata) IsParametric() bool {
	return !md.Parameters.IsEmpty()
}
