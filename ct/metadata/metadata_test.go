package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/values"
)

func transform(amounts ...values.Amount) ct.CoordinateTransform {
	t := ct.CoordinateTransform{Left: motions.Frame{Name: "A"}, Right: motions.Frame{Name: "B"}}
	for i, a := range amounts {
		t.Primitives = append(t.Primitives, ct.PrimitiveCTransform{
			Kind:   motions.Kind(i % 2),
			Axis:   motions.Axis(i % 3),
			Amount: a,
		})
	}
	return t
}

func TestCanonicalSign(t *testing.T) {
	p := values.NewParameter("p")
	e := values.NewExpression(p).Scaled(3, 1)
	c1, err := Canonical(e)
	require.NoError(t, err)
	c2, err := Canonical(e.Neg().(values.Expression))
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	assert.Equal(t, "3*p", c2.String())
	assert.Equal(t, 1, c2.Expression().Coeff().Sign())
	assert.False(t, c1.IsIdentity())

	id, err := Canonical(values.NewExpression(p).Neg().(values.Expression))
	require.NoError(t, err)
	assert.True(t, id.IsIdentity())
	assert.Equal(t, "p", id.String())

	_, err = Canonical(values.Expression{})
	assert.ErrorIs(t, err, values.ErrMalformedExpression)
	_, err = Canonical(values.NewExpression(p).Scaled(0, 1))
	assert.ErrorIs(t, err, values.ErrMalformedExpression)
}

func TestSymbolicArgumentsOf(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	p := values.NewExpression(values.NewParameter("p"))
	c := values.NewExpression(values.NewConstant("c1", 2.5))

	tr := transform(
		q,
		p.Scaled(3, 1),
		values.Literal(1.5),
		c.Scaled(1, 2),
		p.Scaled(-3, 1),
		q.Scaled(-1, 2),
		c.Scaled(-1, 2),
	)
	vars, pars, consts, err := SymbolicArgumentsOf(tr)
	require.NoError(t, err)

	require.Equal(t, 1, vars.Len())
	assert.Equal(t, []values.Argument{q.Argument()}, vars.Arguments())
	var got []string
	for _, e := range vars.Expressions(q.Argument()) {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"q", "1/2*q"}, got)

	require.Equal(t, 1, pars.Len())
	es := pars.Expressions(p.Argument())
	require.Len(t, es, 1)
	assert.Equal(t, "3*p", es[0].String())

	require.Equal(t, 1, consts.Len())
	assert.Equal(t, "c1{1/2*c1}", consts.String())

	_, _, _, err = SymbolicArgumentsOf(transform(q, values.Expression{}))
	assert.ErrorIs(t, err, values.ErrMalformedExpression)
}

func TestArgumentsByName(t *testing.T) {
	p1 := values.NewExpression(values.NewParameter("p")).Scaled(3, 1)
	p2 := values.NewExpression(values.NewParameter("p")).Scaled(-3, 1)
	c1, err := Canonical(p1)
	require.NoError(t, err)
	c2, err := Canonical(p2)
	require.NoError(t, err)
	assert.True(t, c1.Equal(c2))

	_, pars, _, err := SymbolicArgumentsOf(transform(p1, p2))
	require.NoError(t, err)
	assert.Equal(t, 1, pars.Len())
	assert.Len(t, pars.Expressions(p2.Argument()), 1)
	assert.Equal(t, "p{3*p}", pars.String())

	// A variable and a parameter of the same name stay apart.
	q := values.NewExpression(values.NewVariable("p")).Scaled(3, 1)
	cq, err := Canonical(q)
	require.NoError(t, err)
	assert.False(t, c1.Equal(cq))
}

func TestIsRotation(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	rot := ct.PrimitiveCTransform{Kind: motions.Rotation, Axis: motions.X, Amount: q.Neg()}
	tr := ct.PrimitiveCTransform{Kind: motions.Translation, Axis: motions.Y, Amount: q}

	cr, err := CanonicalOf(rot)
	require.NoError(t, err)
	cl, err := CanonicalOf(tr)
	require.NoError(t, err)
	assert.True(t, cr.IsRotation())
	assert.False(t, cl.IsRotation())
	assert.True(t, cr.Equal(cl))

	_, err = CanonicalOf(ct.PrimitiveCTransform{Amount: values.Literal(1)})
	assert.ErrorIs(t, err, values.ErrMalformedExpression)

	vars, _, _, err := SymbolicArgumentsOf(transform(q, q.Neg()))
	require.NoError(t, err)
	es := vars.Expressions(q.Argument())
	require.Len(t, es, 1)
	assert.True(t, es[0].IsRotation())
}

func TestTransformMetadata(t *testing.T) {
	q := values.NewExpression(values.NewVariable("q"))
	p := values.NewExpression(values.NewParameter("p"))
	c := values.NewExpression(values.NewConstant("c1", 2.5))

	tests := []struct {
		name                 string
		amounts              []values.Amount
		parametric, constant bool
	}{
		{"empty", nil, false, true},
		{"literal", []values.Amount{values.Literal(1)}, false, true},
		{"constant", []values.Amount{c, values.Literal(1)}, false, true},
		{"variable", []values.Amount{q, c}, false, false},
		{"parameter", []values.Amount{p}, true, false},
		{"both", []values.Amount{p, q}, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			md, err := NewTransformMetadata(transform(tc.amounts...))
			require.NoError(t, err)
			assert.Equal(t, tc.parametric, md.Parametric)
			assert.Equal(t, tc.constant, md.Constant)
			assert.Equal(t, "A_X_B", md.Name())
		})
	}
}

func TestTransformsModelMetadata(t *testing.T) {
	q0 := values.NewExpression(values.NewVariable("q0"))
	q1 := values.NewExpression(values.NewVariable("q1"))
	p := values.NewExpression(values.NewParameter("p"))

	m := ct.Model{Name: "m", Transforms: []ct.CoordinateTransform{
		transform(q1, values.Literal(2)),
		transform(q0, q1.Scaled(2, 1)),
		transform(q1.Neg()),
	}}
	md, err := NewTransformsModelMetadata(m)
	require.NoError(t, err)
	require.Len(t, md.Transforms, 3)
	assert.False(t, md.IsParametric())
	assert.Equal(t, "q1{q1, 2*q1}, q0{q0}", md.Variables.String())
	assert.True(t, md.Parameters.IsEmpty())

	m.Transforms = append(m.Transforms, transform(p))
	md, err = NewTransformsModelMetadata(m)
	require.NoError(t, err)
	assert.True(t, md.IsParametric())
	assert.True(t, md.Transforms[0].Parameters.IsEmpty())
}
