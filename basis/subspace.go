package basis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// A Subspace is a duplicate-free set of equal-length basis states held in
// ascending order of integer value. The position of a state in that order is
// its index in the subspace basis. The zero value is the empty subspace.
type Subspace struct {
	states []Bitstring
}

// Canonicalize builds a Subspace from states by removing duplicates and
// sorting ascending by integer value. All states must share one length;
// otherwise it reports ErrLengthMismatch. Canonicalizing the states of an
// already canonical subspace reproduces it exactly.
func Canonicalize(states []Bitstring) (Subspace, error) {
	if len(states) == 0 {
		return Subspace{}, nil
	}
	n := states[0].Size()
	for i, s := range states {
		if s.Size() != n {
			return Subspace{}, fmt.Errorf("state %d has %d bits, want %d: %w", i, s.Size(), n, ErrLengthMismatch)
		}
	}

	sorted := make([]Bitstring, len(states))
	for i, s := range states {
		sorted[i] = s.clone()
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Cmp(sorted[j]) < 0
	})

	dedup := sorted[:1]
	for _, s := range sorted[1:] {
		if !s.Equal(dedup[len(dedup)-1]) {
			dedup = append(dedup, s)
		}
	}
	return Subspace{states: dedup}, nil
}

// FixedWeight returns the subspace spanned by every n-bit basis state of
// Hamming weight k, i.e. all configurations of k particles in n modes.
func FixedWeight(n, k int) (Subspace, error) {
	if n < 0 || k < 0 || k > n {
		return Subspace{}, fmt.Errorf("basis: no weight-%d states in %d bits", k, n)
	}
	states := make([]Bitstring, 0, combin.Binomial(n, k))
	for _, positions := range combin.Combinations(n, k) {
		s := New(n)
		for _, p := range positions {
			s.Set(p, true)
		}
		states = append(states, s)
	}
	return Canonicalize(states)
}

// Dim returns the number of basis states spanning s.
func (s Subspace) Dim() int {
	return len(s.states)
}

// Qubits returns the common length of the states in s, or 0 if s is empty.
func (s Subspace) Qubits() int {
	if len(s.states) == 0 {
		return 0
	}
	return s.states[0].Size()
}

// State returns a copy of the basis state at index i. It panics if i is out
// of range.
func (s Subspace) State(i int) Bitstring {
	return s.states[i].clone()
}

// Index locates b in s by binary search, returning its basis index and
// whether it is a member.
func (s Subspace) Index(b Bitstring) (int, bool) {
	i := sort.Search(len(s.states), func(i int) bool {
		return s.states[i].Cmp(b) >= 0
	})
	if i == len(s.states) || !s.states[i].Equal(b) {
		return 0, false
	}
	return i, true
}

// Merge returns the union of s and other. Unless one of the two is empty,
// their states must share one length.
func (s Subspace) Merge(other Subspace) (Subspace, error) {
	if s.Dim() == 0 {
		return other, nil
	}
	if other.Dim() == 0 {
		return s, nil
	}
	if s.Qubits() != other.Qubits() {
		return Subspace{}, fmt.Errorf("merging %d-bit and %d-bit subspaces: %w", s.Qubits(), other.Qubits(), ErrLengthMismatch)
	}

	merged := make([]Bitstring, 0, len(s.states)+len(other.states))
	i, j := 0, 0
	for i < len(s.states) && j < len(other.states) {
		switch c := s.states[i].Cmp(other.states[j]); {
		case c < 0:
			merged = append(merged, s.states[i])
			i++
		case c > 0:
			merged = append(merged, other.states[j])
			j++
		default:
			merged = append(merged, s.states[i])
			i++
			j++
		}
	}
	merged = append(merged, s.states[i:]...)
	merged = append(merged, other.states[j:]...)
	return Subspace{states: merged}, nil
}

// CheckUniformWeight verifies that every state in s shares one Hamming
// weight, reporting the first state that breaks the pattern. Fixed particle
// number sectors have this property.
func (s Subspace) CheckUniformWeight() error {
	if len(s.states) == 0 {
		return nil
	}
	want := s.states[0].CountOnes()
	for i, st := range s.states[1:] {
		if w := st.CountOnes(); w != want {
			return fmt.Errorf("state %d has weight %d, want %d: %w", i+1, w, want, ErrWeightMismatch)
		}
	}
	return nil
}
