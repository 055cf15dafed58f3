package qproj

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/m-lowitz/qproj/basis"
	"github.com/m-lowitz/qproj/pauli"
	"github.com/m-lowitz/qproj/sparse"
)

func subspaceOf(t testing.TB, states ...string) basis.Subspace {
	t.Helper()
	bs := make([]basis.Bitstring, len(states))
	for i, s := range states {
		bs[i] = basis.MustParse(s)
	}
	sub, err := basis.Canonicalize(bs)
	require.NoError(t, err)
	return sub
}

func TestMatrixElementsSwap(t *testing.T) {
	// X(x)X maps |00> <-> |11>, both inside the subspace.
	sub := subspaceOf(t, "00", "11")
	m, err := MatrixElements(sub, pauli.MustParse("XX"), 1)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, m.NNZ())
	assert.Equal(t, complex128(0), m.At(0, 0))
	assert.Equal(t, complex128(1), m.At(0, 1))
	assert.Equal(t, complex128(1), m.At(1, 0))
	assert.Equal(t, complex128(0), m.At(1, 1))
}

func TestMatrixElementsDiagonal(t *testing.T) {
	sub := subspaceOf(t, "00", "01", "10", "11")
	m, err := MatrixElements(sub, pauli.MustParse("ZI"), 1)
	require.NoError(t, err)

	require.Equal(t, 4, m.NNZ())
	want := []complex128{1, 1, -1, -1}
	for i, w := range want {
		assert.Equal(t, w, m.At(i, i), "diagonal %d", i)
	}
}

func TestMatrixElementsEscape(t *testing.T) {
	// X(x)X sends |00> out of the subspace entirely.
	sub := subspaceOf(t, "00")
	m, err := MatrixElements(sub, pauli.MustParse("XX"), 1)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 0, m.NNZ())
}

func TestMatrixElementsIdentity(t *testing.T) {
	sub := subspaceOf(t, "00", "01", "11")
	m, err := MatrixElements(sub, pauli.Identity(2), 0.5)
	require.NoError(t, err)

	require.Equal(t, 3, m.NNZ())
	for i := 0; i < 3; i++ {
		assert.Equal(t, complex128(0.5), m.At(i, i), "diagonal %d", i)
	}
}

func TestMatrixElementsCoefficient(t *testing.T) {
	sub := subspaceOf(t, "00", "11")
	m, err := MatrixElements(sub, pauli.MustParse("YY"), 2i)
	require.NoError(t, err)

	// YY carries amplitude -1 between |00> and |11>.
	assert.Equal(t, complex128(-2i), m.At(0, 1))
	assert.Equal(t, complex128(-2i), m.At(1, 0))
}

func TestProjectMatchesTermAccumulation(t *testing.T) {
	sub, err := basis.FixedWeight(4, 2)
	require.NoError(t, err)
	op := pauli.TransverseIsing(4, 1, 0.7)

	whole, err := Project(sub, op)
	require.NoError(t, err)

	acc := sparse.New(sub.Dim(), sub.Dim())
	for k := 0; k < op.NumTerms(); k++ {
		s, c := op.Term(k)
		term, err := MatrixElements(sub, s, c)
		require.NoError(t, err)
		require.NoError(t, acc.Add(term))
	}
	acc.Compact()

	assert.True(t, whole.EqualApprox(acc, 1e-12), "term accumulation disagrees with whole-operator projection")
}

func TestProjectHermitian(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	states := make([]basis.Bitstring, 10)
	for i := range states {
		states[i] = basis.Random(rnd, 5)
	}
	sub, err := basis.Canonicalize(states)
	require.NoError(t, err)

	op := pauli.XYZChain(5, 0.8, 0.3, 1.1, 0.4)
	require.True(t, op.IsHermitian(0))

	m, err := Project(sub, op)
	require.NoError(t, err)

	d := m.Dense()
	assert.True(t, mat.CEqualApprox(d, d.H(), 1e-12), "projection of a Hermitian operator is not Hermitian")
}

func TestProjectCollectsRepeats(t *testing.T) {
	sub := subspaceOf(t, "00", "11")
	op := pauli.NewOp(2)
	require.NoError(t, op.Append("XX", 0.5))
	require.NoError(t, op.Append("XX", 0.5))
	require.NoError(t, op.Append("ZZ", 1))

	m, err := Project(sub, op)
	require.NoError(t, err)

	// After compaction each coordinate appears once.
	assert.Equal(t, 4, m.NNZ())
	assert.Equal(t, complex128(1), m.At(0, 1))
	assert.Equal(t, complex128(1), m.At(1, 0))
	assert.Equal(t, complex128(1), m.At(0, 0))
	assert.Equal(t, complex128(1), m.At(1, 1))
}

func TestProjectQubitMismatch(t *testing.T) {
	sub := subspaceOf(t, "00", "11")

	_, err := MatrixElements(sub, pauli.MustParse("XXX"), 1)
	require.ErrorIs(t, err, ErrQubitMismatch)

	_, err = Project(sub, pauli.TransverseIsing(3, 1, 1))
	require.ErrorIs(t, err, ErrQubitMismatch)
}

func TestProjectEmptySubspace(t *testing.T) {
	m, err := Project(basis.Subspace{}, pauli.TransverseIsing(3, 1, 1))
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
	assert.Equal(t, 0, m.NNZ())
}

func TestExpectation(t *testing.T) {
	sub := subspaceOf(t, "00", "01", "10", "11")
	m, err := MatrixElements(sub, pauli.MustParse("ZI"), 1)
	require.NoError(t, err)

	e, err := Expectation(m, []complex128{1, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, complex128(1), e)

	half := complex(0.5, 0)
	e, err = Expectation(m, []complex128{half, half, half, half})
	require.NoError(t, err)
	assert.InDelta(t, 0, real(e), 1e-12)
	assert.InDelta(t, 0, imag(e), 1e-12)

	_, err = Expectation(m, []complex128{1, 0})
	require.ErrorIs(t, err, sparse.ErrShape)

	_, err = Expectation(sparse.New(2, 3), []complex128{1, 0, 0})
	require.ErrorIs(t, err, sparse.ErrShape)
}

func TestExpectationUniformIsing(t *testing.T) {
	// On the uniform superposition over the full basis, every Z_iZ_{i+1}
	// term averages to zero and every X_i term contributes -h.
	n, h := 3, 0.7
	states := make([]basis.Bitstring, 1<<n)
	for v := range states {
		states[v] = basis.FromUint64(uint64(v), n)
	}
	sub, err := basis.Canonicalize(states)
	require.NoError(t, err)

	m, err := Project(sub, pauli.TransverseIsing(n, 1, h))
	require.NoError(t, err)

	amp := complex(1/math.Sqrt(float64(sub.Dim())), 0)
	psi := make([]complex128, sub.Dim())
	for i := range psi {
		psi[i] = amp
	}
	e, err := Expectation(m, psi)
	require.NoError(t, err)
	assert.InDelta(t, -h*float64(n), real(e), 1e-12)
	assert.InDelta(t, 0, imag(e), 1e-12)
}

func BenchmarkProject(b *testing.B) {
	sub, err := basis.FixedWeight(12, 6)
	if err != nil {
		b.Fatal(err)
	}
	op := pauli.TransverseIsing(12, 1, 0.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Project(sub, op); err != nil {
			b.Fatal(err)
		}
	}
}
