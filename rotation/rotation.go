// Package rotation lays out 3D rotation matrices and names the
// trigonometric symbols of their entries.
//
// The cosine and sine of an angle are symbols of their own, named
// "cos(a)" and "sin(a)" where a is the angle with its sign removed:
// cos(-a) is cos(a) and sin(-a) is -sin(a). The only identity assumed
// among them is cos(a)^2 + sin(a)^2 = 1, which Normalize applies.
package rotation

import (
	"math/big"
	"strings"

	"zappem.net/pub/math/poses/factor"
	"zappem.net/pub/math/poses/matrix"
	"zappem.net/pub/math/poses/terms"
)

// Cos returns the name of the cosine symbol of angle.
func Cos(angle string) string {
	return "cos(" + angle + ")"
}

// Sin returns the name of the sine symbol of angle.
func Sin(angle string) string {
	return "sin(" + angle + ")"
}

// Angle decomposes a trigonometric symbol into its function name,
// "cos" or "sin", and its angle.
func Angle(sym string) (fn, angle string, ok bool) {
	for _, fn := range []string{"cos", "sin"} {
		if strings.HasPrefix(sym, fn+"(") && strings.HasSuffix(sym, ")") {
			return fn, sym[len(fn)+1 : len(sym)-1], true
		}
	}
	return "", "", false
}

// Trig returns the cosine and sine of the angle k*sym, or of the
// number k when sym is "".
func Trig(k *big.Rat, sym string) (c, s *terms.Exp) {
	if k.Sign() == 0 {
		return terms.Int(1), terms.NewExp()
	}
	abs := new(big.Rat).Abs(k)
	angle := abs.RatString()
	if sym != "" {
		angle = factor.Prod(factor.R(abs), factor.S(sym))
	}
	return terms.Sym(big.NewRat(1, 1), Cos(angle)), terms.Sym(big.NewRat(int64(k.Sign()), 1), Sin(angle))
}

// Fn says what an entry of an elementary rotation matrix holds.
type Fn int

const (
	Unit Fn = iota
	Cosine
	Sine
)

// Entry is a non-zero element of an elementary rotation matrix. Neg
// negates it.
type Entry struct {
	Row, Col int
	Fn       Fn
	Neg      bool
}

// Layout returns the non-zero entries of the 3x3 matrix rotating
// anticlockwise about the axis with index axis (0 for X, 1 for Y and
// 2 for Z).
func Layout(axis int) []Entry {
	i, j, l := axis, (axis+1)%3, (axis+2)%3
	return []Entry{
		{Row: i, Col: i, Fn: Unit},
		{Row: j, Col: j, Fn: Cosine},
		{Row: l, Col: l, Fn: Cosine},
		{Row: j, Col: l, Fn: Sine, Neg: true},
		{Row: l, Col: j, Fn: Sine},
	}
}

// NormalizeExp rewrites every cos(a)^2 in e as 1-sin(a)^2. Two
// expressions are equal modulo the Pythagorean identity exactly when
// their normalized forms are equal.
func NormalizeExp(e *terms.Exp) *terms.Exp {
	for _, sym := range e.Symbols() {
		fn, angle, ok := Angle(sym)
		if !ok || fn != "cos" {
			continue
		}
		s := factor.Sp(Sin(angle), 2)
		e = e.Substitute([]factor.Value{factor.Sp(sym, 2)}, terms.NewExp([]factor.Value{factor.D(1, 1)}, []factor.Value{factor.D(-1, 1), s}))
	}
	return e
}

// Normalize applies NormalizeExp to every element of m.
func Normalize(m *matrix.Matrix) *matrix.Matrix {
	return m.Map(func(e *terms.Exp) *terms.Exp {
		if e.IsZero() {
			return e
		}
		return NormalizeExp(e)
	})
}
