// Package pauli provides Pauli strings and weighted sums of Pauli strings
// over a fixed register of qubits.
package pauli

import (
	"errors"
	"fmt"

	"github.com/m-lowitz/qproj/basis"
)

var (
	// ErrBadLabel indicates a Pauli label containing characters outside
	// {I, X, Y, Z}.
	ErrBadLabel = errors.New("pauli: invalid pauli label")

	// ErrQubitMismatch indicates an operation between objects defined over
	// different qubit counts.
	ErrQubitMismatch = errors.New("pauli: qubit counts differ")
)

// A String is an n-qubit tensor product of single-qubit Pauli operators. It
// is stored symplectically: the x mask marks qubits acted on by X or Y, the
// z mask marks qubits acted on by Z or Y. A factor i is assigned per Y so
// that the string equals i^|x AND z| * X^x * Z^z.
type String struct {
	x basis.Bitstring
	z basis.Bitstring
}

// Identity returns the n-qubit identity string.
func Identity(n int) String {
	return String{x: basis.New(n), z: basis.New(n)}
}

// FromMasks builds a String from its x and z masks, which must have the same
// length.
func FromMasks(x, z basis.Bitstring) (String, error) {
	if x.Size() != z.Size() {
		return String{}, fmt.Errorf("building pauli from %d-bit x mask and %d-bit z mask: %w", x.Size(), z.Size(), ErrQubitMismatch)
	}
	return String{x: x, z: z}, nil
}

// Parse converts a label like "XIZY" into a String. The rightmost character
// acts on qubit 0, matching the ket convention |b_{n-1} ... b_1 b_0>.
func Parse(label string) (String, error) {
	n := len(label)
	x, z := basis.New(n), basis.New(n)
	for i := 0; i < n; i++ {
		q := n - 1 - i
		switch label[i] {
		case 'I':
		case 'X':
			x.Set(q, true)
		case 'Y':
			x.Set(q, true)
			z.Set(q, true)
		case 'Z':
			z.Set(q, true)
		default:
			return String{}, fmt.Errorf("parsing %q: %w", label, ErrBadLabel)
		}
	}
	return String{x: x, z: z}, nil
}

// MustParse is like Parse but panics on malformed labels.
func MustParse(label string) String {
	s, err := Parse(label)
	if err != nil {
		panic(err)
	}
	return s
}

// Qubits returns the number of qubits s acts on.
func (s String) Qubits() int {
	return s.x.Size()
}

// At returns the single-qubit operator acting on qubit i as one of 'I', 'X',
// 'Y', or 'Z'.
func (s String) At(i int) byte {
	switch {
	case s.x.Get(i) && s.z.Get(i):
		return 'Y'
	case s.x.Get(i):
		return 'X'
	case s.z.Get(i):
		return 'Z'
	}
	return 'I'
}

// Weight returns the number of qubits s acts on non-trivially.
func (s String) Weight() int {
	return s.x.Or(s.z).CountOnes()
}

// String renders the label of s, inverting Parse.
func (s String) String() string {
	n := s.Qubits()
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[n-1-i] = s.At(i)
	}
	return string(buf)
}

// Apply maps the basis state b through s. Pauli strings permute the
// computational basis, so the image of b is a single basis state t with a
// unit amplitude: s|b> = amp |t>. The x mask flips bits while the z mask
// contributes a sign per set bit it meets, with a factor of i per Y.
func (s String) Apply(b basis.Bitstring) (t basis.Bitstring, amp complex128, err error) {
	if b.Size() != s.Qubits() {
		return basis.Bitstring{}, 0, fmt.Errorf("applying %d-qubit pauli to %d-bit state: %w", s.Qubits(), b.Size(), ErrQubitMismatch)
	}
	amp = iPow(s.x.And(s.z).CountOnes())
	if b.And(s.z).Parity() {
		amp = -amp
	}
	return b.Xor(s.x), amp, nil
}

// iPow returns i^k.
func iPow(k int) complex128 {
	switch k % 4 {
	case 1:
		return 1i
	case 2:
		return -1
	case 3:
		return -1i
	}
	return 1
}
