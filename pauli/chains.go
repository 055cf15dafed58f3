package pauli

import "bytes"

// TransverseIsing returns the transverse-field Ising Hamiltonian on an open
// chain of n qubits,
//
//	H = -j * sum_i Z_i Z_{i+1} - h * sum_i X_i,
//
// with i running over nearest neighbours for the couplings and over all
// sites for the field.
func TransverseIsing(n int, j, h float64) *Op {
	op := NewOp(n)
	for i := 0; i+1 < n; i++ {
		op.push(twoSite(n, i, i+1, 'Z'), complex(-j, 0))
	}
	for i := 0; i < n; i++ {
		op.push(oneSite(n, i, 'X'), complex(-h, 0))
	}
	return op
}

// XYZChain returns the anisotropic Heisenberg Hamiltonian on an open chain
// of n qubits,
//
//	H = sum_i (jx X_i X_{i+1} + jy Y_i Y_{i+1} + jz Z_i Z_{i+1}) + h * sum_i Z_i.
func XYZChain(n int, jx, jy, jz, h float64) *Op {
	op := NewOp(n)
	for i := 0; i+1 < n; i++ {
		op.push(twoSite(n, i, i+1, 'X'), complex(jx, 0))
		op.push(twoSite(n, i, i+1, 'Y'), complex(jy, 0))
		op.push(twoSite(n, i, i+1, 'Z'), complex(jz, 0))
	}
	for i := 0; i < n; i++ {
		op.push(oneSite(n, i, 'Z'), complex(h, 0))
	}
	return op
}

func oneSite(n, i int, ax byte) String {
	label := bytes.Repeat([]byte{'I'}, n)
	label[n-1-i] = ax
	return MustParse(string(label))
}

func twoSite(n, i, j int, ax byte) String {
	label := bytes.Repeat([]byte{'I'}, n)
	label[n-1-i] = ax
	label[n-1-j] = ax
	return MustParse(string(label))
}
