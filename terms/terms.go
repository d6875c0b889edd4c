// Package terms abstracts sums of products of factors. These are the
// entries of symbolic transform matrices.
package terms

import (
	"math/big"
	"sort"
	"strings"

	"zappem.net/pub/math/poses/factor"
)

// Term is a product of a coefficient and a set of non-numerical factors.
type Term struct {
	Coeff *big.Rat
	Fact  []factor.Value
}

// Exp is an expression, a sum of terms. A nil *Exp is zero.
type Exp struct {
	terms map[string]Term
}

func newExp() *Exp {
	return &Exp{terms: make(map[string]Term)}
}

// NewExp creates an expression summing each of the products ts.
func NewExp(ts ...[]factor.Value) *Exp {
	e := newExp()
	for _, t := range ts {
		n, fs, s := factor.Segment(t...)
		if n == nil {
			continue
		}
		e.insert(n, fs, s)
	}
	return e
}

// Rat generates an expression of a rational number.
func Rat(r *big.Rat) *Exp {
	return NewExp([]factor.Value{factor.R(r)})
}

// Int generates an expression of an integer.
func Int(n int64) *Exp {
	return NewExp([]factor.Value{factor.D(n, 1)})
}

// Sym generates the expression coeff*sym.
func Sym(coeff *big.Rat, sym string) *Exp {
	return NewExp([]factor.Value{factor.R(coeff), factor.S(sym)})
}

// IsZero confirms a simplified expression is zero.
func (e *Exp) IsZero() bool {
	return e == nil || len(e.terms) == 0
}

// String represents an expression of Terms as a string. Terms are
// ordered by the text of their symbolic factors.
func (e *Exp) String() string {
	if e.IsZero() {
		return "0"
	}
	keys := make([]string, 0, len(e.terms))
	for x := range e.terms {
		keys = append(keys, x)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, x := range keys {
		f := e.terms[x]
		t := factor.Prod(append([]factor.Value{factor.R(f.Coeff)}, f.Fact...)...)
		if i != 0 && t[0] != '-' {
			t = "+" + t
		}
		parts[i] = t
	}
	return strings.Join(parts, "")
}

// insert merges n*fs into e under the key s, taking ownership of n.
func (e *Exp) insert(n *big.Rat, fs []factor.Value, s string) {
	old, ok := e.terms[s]
	if !ok {
		e.terms[s] = Term{Coeff: n, Fact: fs}
		return
	}
	old.Coeff = n.Add(n, old.Coeff)
	if old.Coeff.Sign() == 0 {
		delete(e.terms, s)
		return
	}
	e.terms[s] = old
}

// scaled accumulates k times each term of a into e.
func (e *Exp) scaled(a *Exp, k *big.Rat) {
	if a == nil {
		return
	}
	for s, t := range a.terms {
		e.insert(new(big.Rat).Mul(t.Coeff, k), t.Fact, s)
	}
}

var (
	plus  = big.NewRat(1, 1)
	minus = big.NewRat(-1, 1)
)

// Sum adds together expressions. With only one argument, Sum is a
// simple duplicate function.
func Sum(as ...*Exp) *Exp {
	e := newExp()
	for _, a := range as {
		e.scaled(a, plus)
	}
	return e
}

// Add adds together two expressions and returns a single expression:
// a+b.
func (e *Exp) Add(b *Exp) *Exp {
	return Sum(e, b)
}

// Sub subtracts b from e into a new expression.
func (e *Exp) Sub(b *Exp) *Exp {
	d := Sum(e)
	d.scaled(b, minus)
	return d
}

// Neg returns -e.
func (e *Exp) Neg() *Exp {
	d := newExp()
	d.scaled(e, minus)
	return d
}

// Mul computes the product of a series of expressions. A nil
// expression anywhere in the series makes the product zero.
func Mul(as ...*Exp) *Exp {
	if len(as) == 0 {
		return newExp()
	}
	e := Sum(as[0])
	for _, a := range as[1:] {
		f := newExp()
		if a != nil {
			for _, p := range a.terms {
				for _, q := range e.terms {
					x := make([]factor.Value, 0, 2+len(p.Fact)+len(q.Fact))
					x = append(x, factor.R(p.Coeff), factor.R(q.Coeff))
					x = append(append(x, p.Fact...), q.Fact...)
					n, fs, s := factor.Segment(x...)
					if n != nil {
						f.insert(n, fs, s)
					}
				}
			}
		}
		e = f
	}
	return e
}

// Mul computes the product of this expression with some others.
func (e *Exp) Mul(es ...*Exp) *Exp {
	return Mul(append([]*Exp{e}, es...)...)
}

// Substituted replaces each occurrence of the product b in e with
// the expression c, repeating until no occurrence remains. The
// returned boolean reports whether anything was substituted.
func (e *Exp) Substituted(b []factor.Value, c *Exp) (*Exp, bool) {
	if len(b) == 0 || e == nil {
		return e, false
	}
	var subs [][]factor.Value
	if c != nil {
		for _, t := range c.terms {
			subs = append(subs, append([]factor.Value{factor.R(t.Coeff)}, t.Fact...))
		}
	}
	unit := []factor.Value{factor.D(1, 1)}
	g := e
	acted := false
	for {
		again := false
		f := newExp()
		for _, x := range g.terms {
			a := append([]factor.Value{factor.R(x.Coeff)}, x.Fact...)
			if hit, _ := factor.Replace(a, b, unit, 1); hit == 0 {
				n, fs, tag := factor.Segment(a...)
				f.insert(n, fs, tag)
				continue
			}
			again = true
			for _, t := range subs {
				_, y := factor.Replace(a, b, t, 1)
				if n, fs, tag := factor.Segment(y...); n != nil {
					f.insert(n, fs, tag)
				}
			}
		}
		g = f
		if !again {
			break
		}
		acted = true
	}
	return g, acted
}

// Substitute unconditionally attempts to substitute occurrences of b
// in e with expression c.
func (e *Exp) Substitute(b []factor.Value, c *Exp) *Exp {
	e2, _ := e.Substituted(b, c)
	return e2
}

// Equals determines if two expressions are identical after
// expansion. No identities among the symbols are assumed.
func (e *Exp) Equals(x *Exp) bool {
	return e.Sub(x).IsZero()
}

// Symbols returns the sorted unique symbols found in an expression.
func (e *Exp) Symbols() []string {
	if e == nil {
		return nil
	}
	seen := make(map[string]bool)
	var syms []string
	for _, t := range e.terms {
		for _, v := range t.Fact {
			if s := v.Symbol(); s != "" && !seen[s] {
				seen[s] = true
				syms = append(syms, s)
			}
		}
	}
	sort.Strings(syms)
	return syms
}
