// Package matrix manages matrices of expressions.
package matrix

import (
	"fmt"
	"sort"
	"strings"

	"zappem.net/pub/math/poses/factor"
	"zappem.net/pub/math/poses/terms"
)

// Matrix is a dense matrix of expressions. A nil element is zero.
type Matrix struct {
	// row count and col count
	rows, cols int
	// The matrix elements arranged, [r=0,c=0], [0,1], [0,2] ...
	data []*terms.Exp
}

// NewMatrix creates a rows x cols matrix of zeros.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("need positive dimensions, not %dx%d", rows, cols)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]*terms.Exp, rows*cols),
	}, nil
}

// Identity returns a square identity matrix of dimension n.
func Identity(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid identity matrix of dimension n=%d", n)
	}
	m, _ := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*(n+1)] = terms.Int(1)
	}
	return m, nil
}

// Dims returns the row and column counts of m.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// String serializes a matrix for displaying.
func (m *Matrix) String() string {
	rs := make([]string, m.rows)
	for r := range rs {
		rs[r] = "[" + strings.Join(m.row(r), ", ") + "]"
	}
	return "[" + strings.Join(rs, ", ") + "]"
}

// Format renders m one row per line with each row prefixed by
// indent, for terminal output.
func (m *Matrix) Format(indent string) string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		fmt.Fprintf(&b, "%s[%s]\n", indent, strings.Join(m.row(r), ", "))
	}
	return b.String()
}

func (m *Matrix) row(r int) []string {
	cs := make([]string, m.cols)
	for c := range cs {
		cs[c] = m.data[c+m.cols*r].String()
	}
	return cs
}

// Set sets the value of a matrix element.
func (m *Matrix) Set(row, col int, e *terms.Exp) error {
	if row < 0 || col < 0 || row >= m.rows || col >= m.cols {
		return fmt.Errorf("bad cell: [%d,%d] in %dx%d matrix", row, col, m.rows, m.cols)
	}
	m.data[col+m.cols*row] = e
	return nil
}

// El returns the row,col element of the matrix.
func (m *Matrix) El(row, col int) *terms.Exp {
	return m.data[col+m.cols*row]
}

// Transpose returns the transpose of a specified matrix.
func (m *Matrix) Transpose() *Matrix {
	n, err := NewMatrix(m.cols, m.rows)
	if err != nil {
		panic(err)
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			n.data[i+n.cols*j] = m.El(i, j)
		}
	}
	return n
}

// Mul multiplies m x n with conventional matrix multiplication.
func (m *Matrix) Mul(n *Matrix) (*Matrix, error) {
	if m.cols != n.rows {
		return nil, fmt.Errorf("a cols(%d) != b rows(%d)", m.cols, n.rows)
	}
	a, err := NewMatrix(m.rows, n.cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			var e []*terms.Exp
			for i := 0; i < m.cols; i++ {
				x, y := m.El(r, i), n.El(i, c)
				if !x.IsZero() && !y.IsZero() {
					e = append(e, terms.Mul(x, y))
				}
			}
			if len(e) != 0 {
				a.data[c+a.cols*r] = terms.Sum(e...)
			}
		}
	}
	return a, nil
}

// Mx multiplies two matrices and panics on error.
func (m *Matrix) Mx(n *Matrix) *Matrix {
	a, err := m.Mul(n)
	if err != nil {
		panic(err)
	}
	return a
}

// Map returns a matrix with fn applied to every element of m. Zero
// elements are passed to fn as nil.
func (m *Matrix) Map(fn func(*terms.Exp) *terms.Exp) *Matrix {
	n, _ := NewMatrix(m.rows, m.cols)
	for i, e := range m.data {
		n.data[i] = fn(e)
	}
	return n
}

// Substitute performs a substitution on all elements of a matrix.
func (m *Matrix) Substitute(b []factor.Value, s *terms.Exp) *Matrix {
	return m.Map(func(e *terms.Exp) *terms.Exp {
		return e.Substitute(b, s)
	})
}

// Equals confirms that m and n have the same dimensions and equal
// elements.
func (m *Matrix) Equals(n *Matrix) bool {
	if m.rows != n.rows || m.cols != n.cols {
		return false
	}
	for i, e := range m.data {
		if !e.Equals(n.data[i]) {
			return false
		}
	}
	return true
}

// Symbols returns the sorted unique symbols found in the elements of
// m.
func (m *Matrix) Symbols() []string {
	seen := make(map[string]bool)
	var syms []string
	for _, e := range m.data {
		for _, s := range e.Symbols() {
			if !seen[s] {
				seen[s] = true
				syms = append(syms, s)
			}
		}
	}
	sort.Strings(syms)
	return syms
}
