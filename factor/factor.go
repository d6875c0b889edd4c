// Package factor defines the atoms of the symbolic value domain:
// exact rational numbers and (powers of) named symbols.
//
// Symbols are opaque strings. Argument names (q0, p1, TZ) are plain
// identifiers, while derived quantities such as "cos(1/2*q0)" are
// also symbols as far as this package is concerned.
package factor

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a single factor of a product: a number or a symbol raised
// to a non-zero integer power.
type Value struct {
	num *big.Rat

	pow int
	sym string
}

// IsNum indicates that v is a rational number.
func (v Value) IsNum() bool {
	return v.num != nil
}

// Num returns the numerical value of v, or nil for a symbol.
func (v Value) Num() *big.Rat {
	return v.num
}

// Symbol returns the symbol of v or "" if v is a number.
func (v Value) Symbol() string {
	return v.sym
}

// Pow returns the power of the symbol held by v.
func (v Value) Pow() int {
	return v.pow
}

// String displays a single factor.
func (v Value) String() string {
	switch {
	case v.num != nil:
		return v.num.RatString()
	case v.sym == "":
		return "<ERROR>"
	case v.pow == 1:
		return v.sym
	default:
		return fmt.Sprintf("%s^%d", v.sym, v.pow)
	}
}

var (
	zero     = big.NewRat(0, 1)
	one      = big.NewRat(1, 1)
	minusOne = big.NewRat(-1, 1)
)

// R copies a rational value into a number value.
func R(n *big.Rat) Value {
	return Value{num: new(big.Rat).Set(n)}
}

// D converts a numerator and denominator pair to a number value.
func D(num, den int64) Value {
	return Value{num: big.NewRat(num, den)}
}

// ErrNotFinite indicates an infinite or NaN float64.
var ErrNotFinite = errors.New("not a finite number")

// Rat converts a float64 into the rational number its shortest
// decimal representation denotes, so 1.1 becomes 11/10 and not the
// binary approximation 2476979795053773/2251799813685248.
func Rat(f float64) (*big.Rat, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, f)
	}
	return decimal.NewFromFloat(f).Rat(), nil
}

// S converts a string into a symbol value.
func S(sym string) Value {
	return Value{sym: sym, pow: 1}
}

// Sp converts a string and a power to a symbol value. A zero power
// is the number 1.
func Sp(sym string, pow int) Value {
	if pow == 0 {
		return D(1, 1)
	}
	return Value{sym: sym, pow: pow}
}

// ByAlpha sorts symbols alphabetically, higher powers first.
type ByAlpha []Value

func (a ByAlpha) Len() int      { return len(a) }
func (a ByAlpha) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a ByAlpha) Less(i, j int) bool {
	if a[i].sym != a[j].sym {
		return a[i].sym < a[j].sym
	}
	return a[i].pow > a[j].pow
}

// Simplify condenses an unsorted product of values into its
// canonical form: a leading rational coefficient followed by the
// symbols in alphabetical order, each appearing once. A zero product
// is returned as nil.
func Simplify(vs ...Value) []Value {
	if len(vs) == 0 {
		return nil
	}
	n := big.NewRat(1, 1)
	var syms []Value
	for _, v := range vs {
		if v.num == nil {
			syms = append(syms, v)
			continue
		}
		if v.num.Sign() == 0 {
			return nil
		}
		n.Mul(n, v.num)
	}
	sort.Sort(ByAlpha(syms))

	res := []Value{{num: n}}
	for _, s := range syms {
		i := len(res) - 1
		last := res[i]
		if last.sym != s.sym {
			res = append(res, s)
			continue
		}
		last.pow += s.pow
		if last.pow == 0 {
			res = res[:i]
		} else {
			res[i] = last
		}
	}
	return res
}

// Prod renders a product of values. No simplification is attempted,
// but a leading coefficient of 1 or -1 is folded into the text.
func Prod(vs ...Value) string {
	if len(vs) == 0 {
		return "0"
	}
	var x []string
	prefix := ""
	for i, v := range vs {
		if i == 0 && v.num != nil && len(vs) != 1 {
			if one.Cmp(v.num) == 0 {
				continue
			}
			if minusOne.Cmp(v.num) == 0 {
				prefix = "-"
				continue
			}
		}
		x = append(x, v.String())
	}
	return prefix + strings.Join(x, "*")
}

// Segment simplifies a product and splits it into its numerical
// coefficient, the symbolic factors and the text of those factors.
// A zero product has a nil coefficient.
func Segment(vs ...Value) (*big.Rat, []Value, string) {
	x := Simplify(vs...)
	if len(x) == 0 {
		return nil, nil, ""
	}
	return x[0].num, x[1:], Prod(x[1:]...)
}

// Replace replaces up to max (all if max <= 0) copies of the product
// b found in a with the product c. It returns the number of
// replacements made and the simplified result.
func Replace(a, b, c []Value, max int) (int, []Value) {
	pn, pf, _ := Segment(b...)
	qf := Simplify(a...)
	if pn == nil {
		return 0, qf
	}
	r := new(big.Rat).Inv(pn)
	n := 0
	for len(pf) > 0 && (max <= 0 || n < max) {
		var nf []Value
		i, j := 0, 0
	mismatch:
		for i < len(pf) && j < len(qf) {
			t := pf[i]
			for j < len(qf) {
				u := qf[j]
				j++
				if u.num != nil || t.sym != u.sym {
					nf = append(nf, u)
					continue
				}
				// Only powers of matching sign may be
				// consumed, and never more than present.
				if t.pow*u.pow < 0 {
					break mismatch
				}
				np := u.pow - t.pow
				if np*t.pow < 0 {
					break mismatch
				}
				if np != 0 {
					nf = append(nf, Sp(t.sym, np))
				}
				i++
				break
			}
		}
		if i != len(pf) {
			break
		}
		qf = Simplify(append(append(nf, qf[j:]...), append(c, R(r))...)...)
		n++
	}
	return n, qf
}

var (
	// ErrDone indicates that Parse reached the end of a product.
	ErrDone = errors.New("factor parsing done")
	// ErrSyntax indicates an unparsable product.
	ErrSyntax = errors.New("syntax problem")
)

const (
	allLetters = "abcdefghijklmnopqrstuvwxyz_"
	allDigits  = "0123456789"
)

func isLetter(c byte) bool {
	return strings.IndexByte(allLetters, c|0x20) >= 0 || c == '_'
}

func isDigit(c byte) bool {
	return strings.IndexByte(allDigits, c) >= 0
}

// skipSpace counts the leading white space of s.
func skipSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(" \t\n\r", rune(s[i])) {
			return i
		}
	}
	return len(s)
}

// nextToken returns the next token of s along with the number of
// bytes consumed. A leading sign is only accepted when signOK.
func nextToken(signOK bool, s string) (string, int, error) {
	base := skipSpace(s)
	if base == len(s) {
		return "", 0, ErrDone
	}
	if strings.ContainsRune("^*/", rune(s[base])) {
		return s[base : base+1], base + 1, nil
	}
	sign := ""
	if c := s[base]; c == '+' || c == '-' {
		if !signOK {
			return "", base, ErrDone
		}
		sign = s[base : base+1]
		base++
		base += skipSpace(s[base:])
		if base == len(s) {
			return "", 0, ErrSyntax
		}
	}
	if isDigit(s[base]) {
		i := base + 1
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		return sign + s[base:i], i, nil
	}
	if sign != "" {
		return sign, base, nil
	}
	if !isLetter(s[base]) {
		return "", 0, ErrDone
	}
	i := base + 1
	for i < len(s) && (isLetter(s[i]) || isDigit(s[i])) {
		i++
	}
	return s[base:i], i, nil
}

const (
	parseNone = iota
	parseMul
	parsePow
	parseDiv
)

// Parse parses a product of factors such as "-1/2*q0" or "3*x^2/y".
// It returns the simplified product and the number of bytes of s it
// consumed. The product ends at a '+' or '-' that follows a factor,
// in which case ErrDone is returned along with the partial product.
func Parse(s string) ([]Value, int, error) {
	modifier := parseMul
	signOK := true
	var vs []Value
	i := 0
	for i < len(s) {
		tok, d, err := nextToken(signOK, s[i:])
		if err != nil {
			if err == ErrDone && modifier == parseNone {
				return Simplify(vs...), i, ErrDone
			}
			if err == ErrDone {
				return nil, 0, ErrSyntax
			}
			return nil, 0, err
		}
		c := tok[0]
		switch {
		case isLetter(c):
			switch modifier {
			case parseMul:
				vs = append(vs, S(tok))
			case parseDiv:
				vs = append(vs, Sp(tok, -1))
			default:
				return nil, 0, ErrSyntax
			}
			modifier, signOK = parseNone, false
		case tok == "+" || tok == "-":
			if tok == "-" {
				vs = append(vs, D(-1, 1))
			}
		case c == '+' || c == '-' || isDigit(c):
			switch modifier {
			case parsePow:
				p, err := strconv.Atoi(tok)
				if err != nil || len(vs) == 0 {
					return nil, 0, ErrSyntax
				}
				last := &vs[len(vs)-1]
				if last.num != nil {
					return nil, 0, ErrSyntax
				}
				last.pow *= p
				if last.pow == 0 {
					*last = D(1, 1)
				}
			case parseMul, parseDiv:
				num, ok := new(big.Rat).SetString(tok)
				if !ok {
					return nil, 0, ErrSyntax
				}
				if modifier == parseDiv {
					if num.Sign() == 0 {
						return nil, 0, ErrSyntax
					}
					num.Inv(num)
				}
				vs = append(vs, Value{num: num})
			default:
				return nil, 0, ErrSyntax
			}
			modifier, signOK = parseNone, false
		default:
			if modifier != parseNone {
				return nil, 0, ErrSyntax
			}
			switch c {
			case '^':
				modifier = parsePow
			case '*':
				modifier = parseMul
			case '/':
				modifier = parseDiv
			}
			signOK = true
		}
		i += d
	}
	if modifier != parseNone {
		return nil, 0, ErrSyntax
	}
	return Simplify(vs...), i, nil
}
