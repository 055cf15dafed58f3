// Package qproj projects weighted sums of Pauli strings onto subspaces
// spanned by explicit computational basis states.
//
// A Pauli string maps every basis state to a single basis state with a unit
// phase, so its action restricted to a d-dimensional subspace is a sparse
// matrix with at most d entries. qproj computes those matrices over the
// subspace basis, without ever touching the full 2^n-dimensional space.
package qproj

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/m-lowitz/qproj/basis"
	"github.com/m-lowitz/qproj/pauli"
	"github.com/m-lowitz/qproj/sparse"
)

// ErrQubitMismatch indicates an operator applied to a subspace over a
// different qubit count.
var ErrQubitMismatch = errors.New("qproj: operator and subspace qubit counts differ")

// MatrixElements projects the single weighted Pauli string (s, coeff) onto
// sub. For each basis state of sub, the entry coeff*amp lands at the row of
// the original state and the column of its image under s; images outside sub
// contribute nothing. The result is compact, with at most sub.Dim() entries.
func MatrixElements(sub basis.Subspace, s pauli.String, coeff complex128) (*sparse.COO, error) {
	if sub.Dim() == 0 {
		return sparse.New(0, 0), nil
	}
	if sub.Qubits() != s.Qubits() {
		return nil, fmt.Errorf("projecting %d-qubit string onto %d-qubit subspace: %w", s.Qubits(), sub.Qubits(), ErrQubitMismatch)
	}
	m := sparse.New(sub.Dim(), sub.Dim())
	if err := project(m, sub, s, coeff); err != nil {
		return nil, err
	}
	m.Compact()
	return m, nil
}

// Project projects the whole operator op onto sub, summing the matrix
// elements of every term into one compact matrix. It is equivalent to
// accumulating MatrixElements term by term.
func Project(sub basis.Subspace, op *pauli.Op) (*sparse.COO, error) {
	if sub.Dim() == 0 {
		return sparse.New(0, 0), nil
	}
	if sub.Qubits() != op.Qubits() {
		return nil, fmt.Errorf("projecting %d-qubit operator onto %d-qubit subspace: %w", op.Qubits(), sub.Qubits(), ErrQubitMismatch)
	}
	m := sparse.New(sub.Dim(), sub.Dim())
	for k := 0; k < op.NumTerms(); k++ {
		s, c := op.Term(k)
		if err := project(m, sub, s, c); err != nil {
			return nil, err
		}
	}
	m.Compact()
	return m, nil
}

// Expectation computes <psi|m|psi> for a state psi expressed over the same
// subspace basis as m.
func Expectation(m *sparse.COO, psi []complex128) (complex128, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return 0, fmt.Errorf("taking expectation of %dx%d matrix: %w", rows, cols, sparse.ErrShape)
	}
	mpsi, err := m.MulVec(psi)
	if err != nil {
		return 0, err
	}
	var e complex128
	for i, v := range mpsi {
		e += cmplx.Conj(psi[i]) * v
	}
	return e, nil
}

// project appends the matrix elements of (s, coeff) over sub to m.
func project(m *sparse.COO, sub basis.Subspace, s pauli.String, coeff complex128) error {
	for i := 0; i < sub.Dim(); i++ {
		t, amp, err := s.Apply(sub.State(i))
		if err != nil {
			return err
		}
		j, ok := sub.Index(t)
		if !ok {
			continue
		}
		m.Append(i, j, coeff*amp)
	}
	return nil
}
