// Package repr evaluates coordinate transforms into matrices.
//
// A Representation pairs a value Domain, numeric or symbolic, with a
// Shape: the homogeneous 4x4 transform, its 3x3 rotation block, or the
// 6x6 spatial motion and force transforms. The matrix of a transform
// is the product of the matrices of its primitives in stored order.
package repr

import (
	"fmt"

	"zappem.net/pub/math/poses/ct"
	"zappem.net/pub/math/poses/values"
)

// Domain builds and multiplies matrices of type M.
type Domain[M any] interface {
	// Identity returns the n x n identity matrix.
	Identity(n int) M
	// Mul returns the product a*b.
	Mul(a, b M) M
	// Build returns the n x n matrix with the given cells evaluated
	// for amount, or for its opposite when negate is set.
	Build(n int, cells []Cell, amount values.Amount, negate bool) (M, error)
}

// Representation computes matrices of shape Shape in Domain.
type Representation[M any] struct {
	Domain Domain[M]
	Shape  Shape
}

// Primitive returns the matrix of p. The matrix of a
// MovedFrameOnTheLeft primitive is that of the opposite step.
func (r Representation[M]) Primitive(p ct.PrimitiveCTransform) (M, error) {
	cells := r.Shape.Cells(p.Kind, p.Axis)
	m, err := r.Domain.Build(r.Shape.Size(), cells, p.Amount, p.Polarity == ct.MovedFrameOnTheLeft)
	if err != nil {
		return m, fmt.Errorf("%v: %w", p, err)
	}
	return m, nil
}

// Matrix returns the matrix of t. A transform without primitives is
// the identity.
func (r Representation[M]) Matrix(t ct.CoordinateTransform) (M, error) {
	m := r.Domain.Identity(r.Shape.Size())
	for _, p := range t.Primitives {
		x, err := r.Primitive(p)
		if err != nil {
			return m, fmt.Errorf("%v: %w", t, err)
		}
		m = r.Domain.Mul(m, x)
	}
	return m, nil
}
