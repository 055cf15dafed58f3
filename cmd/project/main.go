// project builds a spin-chain Hamiltonian, spans a subspace with sampled
// computational basis states, and projects the operator onto it, checking
// that term-by-term accumulation agrees with whole-operator projection and
// reporting the uniform-state energy over the subspace.
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/m-lowitz/qproj"
	"github.com/m-lowitz/qproj/basis"
	"github.com/m-lowitz/qproj/pauli"
	"github.com/m-lowitz/qproj/sparse"
)

var (
	qubits   = flag.Int("qubits", 6, "Width of the qubit register.")
	samples  = flag.Int("samples", 20, "Number of random basis states to sample for the subspace.")
	weight   = flag.Int("weight", -1, "If non-negative, span the subspace with every state of this Hamming weight instead of sampling.")
	seed     = flag.Int64("seed", 42, "PRNG seed for subspace sampling.")
	coupling = flag.Float64("coupling", 1.0, "Nearest-neighbour ZZ coupling strength.")
	field    = flag.Float64("field", 0.7, "Transverse field strength.")
	tol      = flag.Float64("tol", 1e-9, "Tolerance when comparing accumulation strategies.")
	maxPrint = flag.Int("max-print", 8, "Largest subspace dimension for which the dense matrix is printed.")
)

func main() {
	flag.Parse()
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Building logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("projection run failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	op := pauli.TransverseIsing(*qubits, *coupling, *field)
	logger.Info("built transverse-field Ising chain",
		zap.Int("qubits", *qubits),
		zap.Int("terms", op.NumTerms()),
		zap.Float64("coupling", *coupling),
		zap.Float64("field", *field))

	sub, err := buildSubspace(logger)
	if err != nil {
		return err
	}
	if sub.Dim() == 0 {
		return fmt.Errorf("subspace is empty, nothing to project onto")
	}

	whole, err := qproj.Project(sub, op)
	if err != nil {
		return err
	}

	acc := sparse.New(sub.Dim(), sub.Dim())
	for k := 0; k < op.NumTerms(); k++ {
		s, c := op.Term(k)
		term, err := qproj.MatrixElements(sub, s, c)
		if err != nil {
			return err
		}
		if err := acc.Add(term); err != nil {
			return err
		}
	}
	acc.Compact()

	match := whole.EqualApprox(acc, *tol)
	logger.Info("compared accumulation strategies",
		zap.Int("dim", sub.Dim()),
		zap.Int("nnz", whole.NNZ()),
		zap.Bool("match", match))
	if !match {
		return fmt.Errorf("term accumulation and whole-operator projection disagree beyond %g", *tol)
	}

	energy, err := qproj.Expectation(whole, uniform(sub.Dim()))
	if err != nil {
		return err
	}
	logger.Info("evaluated uniform-state energy",
		zap.Float64("real", real(energy)),
		zap.Float64("imag", imag(energy)))

	if sub.Dim() <= *maxPrint {
		printProjection(sub, whole)
	}
	return nil
}

func buildSubspace(logger *zap.Logger) (basis.Subspace, error) {
	if *weight >= 0 {
		sub, err := basis.FixedWeight(*qubits, *weight)
		if err != nil {
			return basis.Subspace{}, err
		}
		logger.Info("spanned fixed-weight sector",
			zap.Int("weight", *weight),
			zap.Int("dim", sub.Dim()))
		return sub, nil
	}

	rnd := rand.New(rand.NewSource(*seed))
	states := make([]basis.Bitstring, *samples)
	for i := range states {
		states[i] = basis.Random(rnd, *qubits)
	}
	sub, err := basis.Canonicalize(states)
	if err != nil {
		return basis.Subspace{}, err
	}
	logger.Info("canonicalized sampled subspace",
		zap.Int("sampled", *samples),
		zap.Int("dim", sub.Dim()))
	return sub, nil
}

// uniform returns the normalized equal superposition over a d-dimensional
// basis.
func uniform(d int) []complex128 {
	amp := complex(1/math.Sqrt(float64(d)), 0)
	psi := make([]complex128, d)
	for i := range psi {
		psi[i] = amp
	}
	return psi
}

func printProjection(sub basis.Subspace, m *sparse.COO) {
	fmt.Println("subspace basis:")
	for i := 0; i < sub.Dim(); i++ {
		fmt.Printf("  %3d  |%s>\n", i, sub.State(i))
	}
	fmt.Println("triples (value, row, col):")
	m.Do(func(i, j int, v complex128) {
		fmt.Printf("  (%g%+gi, %d, %d)\n", real(v), imag(v), i, j)
	})
	fmt.Println("projected operator:")
	for i := 0; i < sub.Dim(); i++ {
		for j := 0; j < sub.Dim(); j++ {
			v := m.At(i, j)
			fmt.Printf("  %+6.2f%+.2fi", real(v), imag(v))
		}
		fmt.Println()
	}
}
