package pauli

import (
	"fmt"
	"math"
	"sort"
)

// An Op is a weighted sum of Pauli strings over a common qubit register.
// Terms are held in insertion order and may repeat a string; Collect folds
// repeats into one term each.
type Op struct {
	n      int
	strs   []String
	coeffs []complex128
}

// NewOp returns an operator over n qubits with no terms. It panics if n is
// negative.
func NewOp(n int) *Op {
	if n < 0 {
		panic("pauli: negative qubit count")
	}
	return &Op{n: n}
}

// Qubits returns the number of qubits o acts on.
func (o *Op) Qubits() int {
	return o.n
}

// NumTerms returns the number of weighted strings in o.
func (o *Op) NumTerms() int {
	return len(o.strs)
}

// Term returns the i-th weighted string of o. It panics if i is out of
// range.
func (o *Op) Term(i int) (String, complex128) {
	return o.strs[i], o.coeffs[i]
}

// Append parses label and adds it to o with coefficient c.
func (o *Op) Append(label string, c complex128) error {
	s, err := Parse(label)
	if err != nil {
		return err
	}
	return o.AppendString(s, c)
}

// AppendString adds the weighted string (s, c) to o. The string must act on
// exactly o's qubit count.
func (o *Op) AppendString(s String, c complex128) error {
	if s.Qubits() != o.n {
		return fmt.Errorf("appending %d-qubit string to %d-qubit operator: %w", s.Qubits(), o.n, ErrQubitMismatch)
	}
	o.push(s, c)
	return nil
}

// Collect returns a copy of o with repeated strings folded into single terms
// by summing their coefficients. Terms are ordered by label.
func (o *Op) Collect() *Op {
	sums := make(map[string]complex128, len(o.strs))
	for i, s := range o.strs {
		sums[s.String()] += o.coeffs[i]
	}
	labels := make([]string, 0, len(sums))
	for l := range sums {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	r := NewOp(o.n)
	for _, l := range labels {
		r.push(MustParse(l), sums[l])
	}
	return r
}

// IsHermitian reports whether o is Hermitian within tol. Pauli strings are
// Hermitian, so a sum of them is Hermitian exactly when its collected
// coefficients are real.
func (o *Op) IsHermitian(tol float64) bool {
	for _, c := range o.Collect().coeffs {
		if math.Abs(imag(c)) > tol {
			return false
		}
	}
	return true
}

func (o *Op) push(s String, c complex128) {
	o.strs = append(o.strs, s)
	o.coeffs = append(o.coeffs, c)
}
