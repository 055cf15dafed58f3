// Package sparse provides a coordinate-format container for sparse complex
// matrices accumulated entry by entry.
package sparse

import (
	"errors"
	"fmt"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrShape indicates an operation between containers whose dimensions do not
// line up.
var ErrShape = errors.New("sparse: dimension mismatch")

// A COO is a sparse complex matrix holding (value, row, column) triples in
// coordinate format. Triples may repeat a coordinate; the matrix element at
// a coordinate is the sum of every triple naming it. Compact folds repeats
// away and orders what remains.
type COO struct {
	rows, cols int

	row []int
	col []int
	val []complex128
}

// New returns an empty rows-by-cols matrix. It panics if either dimension is
// negative.
func New(rows, cols int) *COO {
	if rows < 0 || cols < 0 {
		panic("sparse: negative matrix dimension")
	}
	return &COO{rows: rows, cols: cols}
}

// Dims returns the dimensions of m.
func (m *COO) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored triples, counting repeats of a coordinate
// separately until Compact folds them.
func (m *COO) NNZ() int {
	return len(m.val)
}

// Append adds v to the element at (i, j). It panics if the coordinate is out
// of range.
func (m *COO) Append(i, j int, v complex128) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("sparse: entry (%d, %d) outside %dx%d matrix", i, j, m.rows, m.cols))
	}
	m.row = append(m.row, i)
	m.col = append(m.col, j)
	m.val = append(m.val, v)
}

// At returns the element at (i, j), summing every triple that names it. It
// panics if the coordinate is out of range.
func (m *COO) At(i, j int) complex128 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("sparse: entry (%d, %d) outside %dx%d matrix", i, j, m.rows, m.cols))
	}
	var sum complex128
	for k, v := range m.val {
		if m.row[k] == i && m.col[k] == j {
			sum += v
		}
	}
	return sum
}

// Do calls fn for every stored triple in storage order.
func (m *COO) Do(fn func(i, j int, v complex128)) {
	for k, v := range m.val {
		fn(m.row[k], m.col[k], v)
	}
}

// Add folds every triple of other into m.
func (m *COO) Add(other *COO) error {
	if m.rows != other.rows || m.cols != other.cols {
		return fmt.Errorf("adding %dx%d and %dx%d matrices: %w", m.rows, m.cols, other.rows, other.cols, ErrShape)
	}
	m.row = append(m.row, other.row...)
	m.col = append(m.col, other.col...)
	m.val = append(m.val, other.val...)
	return nil
}

// Scale multiplies every stored triple by k.
func (m *COO) Scale(k complex128) {
	for i := range m.val {
		m.val[i] *= k
	}
}

// Compact sorts the stored triples by row, then column, and merges triples
// sharing a coordinate into one by summing their values. After Compact each
// coordinate appears at most once.
func (m *COO) Compact() {
	m.row, m.col, m.val = compacted(m.row, m.col, m.val)
}

// MulVec computes the matrix-vector product m*x.
func (m *COO) MulVec(x []complex128) ([]complex128, error) {
	if len(x) != m.cols {
		return nil, fmt.Errorf("multiplying %dx%d matrix into %d-dim vector: %w", m.rows, m.cols, len(x), ErrShape)
	}
	y := make([]complex128, m.rows)
	for k, v := range m.val {
		y[m.row[k]] += v * x[m.col[k]]
	}
	return y, nil
}

// Dense expands m into a gonum CDense matrix. It panics if either dimension
// of m is zero, which mat.NewCDense rejects.
func (m *COO) Dense() *mat.CDense {
	d := mat.NewCDense(m.rows, m.cols, nil)
	for k, v := range m.val {
		i, j := m.row[k], m.col[k]
		d.Set(i, j, d.At(i, j)+v)
	}
	return d
}

// EqualApprox reports whether m and other agree element-wise within tol.
// Matrices of different dimensions never agree.
func (m *COO) EqualApprox(other *COO, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	mr, mc, mv := compacted(m.row, m.col, m.val)
	or, oc, ov := compacted(other.row, other.col, other.val)

	i, j := 0, 0
	for i < len(mv) && j < len(ov) {
		switch c := cmpCoord(mr[i], mc[i], or[j], oc[j]); {
		case c < 0:
			if cmplx.Abs(mv[i]) > tol {
				return false
			}
			i++
		case c > 0:
			if cmplx.Abs(ov[j]) > tol {
				return false
			}
			j++
		default:
			if cmplx.Abs(mv[i]-ov[j]) > tol {
				return false
			}
			i++
			j++
		}
	}
	for ; i < len(mv); i++ {
		if cmplx.Abs(mv[i]) > tol {
			return false
		}
	}
	for ; j < len(ov); j++ {
		if cmplx.Abs(ov[j]) > tol {
			return false
		}
	}
	return true
}

// compacted returns sorted, duplicate-free copies of a triple list.
func compacted(row, col []int, val []complex128) ([]int, []int, []complex128) {
	s := &tripleSorter{
		row: append([]int(nil), row...),
		col: append([]int(nil), col...),
		val: append([]complex128(nil), val...),
	}
	sort.Sort(s)

	var w int
	for k := range s.val {
		if w > 0 && s.row[k] == s.row[w-1] && s.col[k] == s.col[w-1] {
			s.val[w-1] += s.val[k]
			continue
		}
		s.row[w], s.col[w], s.val[w] = s.row[k], s.col[k], s.val[k]
		w++
	}
	return s.row[:w], s.col[:w], s.val[:w]
}

func cmpCoord(r1, c1, r2, c2 int) int {
	switch {
	case r1 != r2 && r1 < r2:
		return -1
	case r1 != r2:
		return 1
	case c1 < c2:
		return -1
	case c1 > c2:
		return 1
	}
	return 0
}

type tripleSorter struct {
	row []int
	col []int
	val []complex128
}

func (s *tripleSorter) Len() int { return len(s.val) }

func (s *tripleSorter) Less(i, j int) bool {
	return cmpCoord(s.row[i], s.col[i], s.row[j], s.col[j]) < 0
}

func (s *tripleSorter) Swap(i, j int) {
	s.row[i], s.row[j] = s.row[j], s.row[i]
	s.col[i], s.col[j] = s.col[j], s.col[i]
	s.val[i], s.val[j] = s.val[j], s.val[i]
}
