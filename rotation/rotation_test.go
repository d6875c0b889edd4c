package rotation

import (
	"math/big"
	"testing"

	"zappem.net/pub/math/poses/matrix"
	"zappem.net/pub/math/poses/terms"
)

// rot builds the rotation by k*sym about axis from its layout.
func rot(axis int, k *big.Rat, sym string) *matrix.Matrix {
	m, _ := matrix.NewMatrix(3, 3)
	c, s := Trig(k, sym)
	for _, e := range Layout(axis) {
		x := terms.Int(1)
		switch e.Fn {
		case Cosine:
			x = c
		case Sine:
			x = s
		}
		if e.Neg {
			x = x.Neg()
		}
		m.Set(e.Row, e.Col, x)
	}
	return m
}

func TestLayout(t *testing.T) {
	half := big.NewRat(1, 2)
	minusHalf := big.NewRat(-1, 2)
	id, _ := matrix.Identity(3)
	for i := 0; i < 3; i++ {
		r := rot(i, half, "q")
		if got := Normalize(r.Mx(r.Transpose())); !got.Equals(id) {
			t.Errorf("[%d] r*r^T got=%v, want=identity", i, got)
		}
		inv := rot(i, minusHalf, "q")
		if !inv.Equals(r.Transpose()) {
			t.Errorf("[%d] r(-t)=%v, want r^T=%v", i, inv, r.Transpose())
		}
		if got := Normalize(inv.Mx(r)); !got.Equals(id) {
			t.Errorf("[%d] r(-t)*r(t) got=%v, want=identity", i, got)
		}
	}
}

func TestLayoutX(t *testing.T) {
	vs := []struct {
		k   *big.Rat
		sym string
		s   string
	}{
		{k: big.NewRat(1, 1), sym: "q0", s: "[[1, 0, 0], [0, cos(q0), -sin(q0)], [0, sin(q0), cos(q0)]]"},
		{k: big.NewRat(-3, 1), sym: "p1", s: "[[1, 0, 0], [0, cos(3*p1), sin(3*p1)], [0, -sin(3*p1), cos(3*p1)]]"},
		{k: big.NewRat(1, 2), sym: "", s: "[[1, 0, 0], [0, cos(1/2), -sin(1/2)], [0, sin(1/2), cos(1/2)]]"},
		{k: new(big.Rat), sym: "q0", s: "[[1, 0, 0], [0, 1, 0], [0, 0, 1]]"},
	}
	for i, v := range vs {
		if got := rot(0, v.k, v.sym).String(); got != v.s {
			t.Errorf("[%d] got=%q want=%q", i, got, v.s)
		}
	}
}

func TestAngle(t *testing.T) {
	vs := []struct {
		sym, fn, angle string
		ok             bool
	}{
		{sym: "cos(q0)", fn: "cos", angle: "q0", ok: true},
		{sym: "sin(1/2*TZ)", fn: "sin", angle: "1/2*TZ", ok: true},
		{sym: "q0"},
		{sym: "cosq"},
	}
	for i, v := range vs {
		fn, angle, ok := Angle(v.sym)
		if fn != v.fn || angle != v.angle || ok != v.ok {
			t.Errorf("[%d] Angle(%q) got=(%q,%q,%v)", i, v.sym, fn, angle, ok)
		}
	}
}
