// Package basis provides packed bitstring representations of computational
// basis states and canonically ordered subspaces built from them.
package basis

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand"
)

// TODO: blocks wider than a byte would speed up Cmp and Parity on registers
//   past a few hundred qubits.

var (
	// ErrLengthMismatch indicates an operation over bitstrings of differing
	// lengths.
	ErrLengthMismatch = errors.New("basis: bitstring lengths differ")

	// ErrBadLiteral indicates a bitstring literal containing characters other
	// than '0' and '1'.
	ErrBadLiteral = errors.New("basis: invalid bitstring literal")

	// ErrOddLength indicates an odd-length bitstring where an even one is
	// required.
	ErrOddLength = errors.New("basis: odd-length bitstring")

	// ErrWeightMismatch indicates a set of bitstrings whose Hamming weights
	// were expected to agree but do not.
	ErrWeightMismatch = errors.New("basis: hamming weights differ")
)

const blockSize = 8

// A Bitstring is a fixed-length array of bits identifying a computational
// basis state. Bit i carries integer weight 2^i, so the string as a whole
// names an unsigned integer. The trailing bits of the final block are kept
// zero.
type Bitstring struct {
	bits []byte
	len  int
}

// New returns an all-zero bitstring of n bits. It panics if n is negative.
func New(n int) Bitstring {
	if n < 0 {
		panic("basis: negative bitstring length")
	}
	return Bitstring{
		bits: make([]byte, blocksFor(n)),
		len:  n,
	}
}

// FromBytes returns a bitstring whose data is a copy of data and whose length
// is bitLen. If bitLen is longer than data, trailing zeros are added. If
// bitLen is negative, it is inferred from data.
func FromBytes(data []byte, bitLen int) Bitstring {
	if bitLen < 0 {
		bitLen = len(data) * blockSize
	}
	b := make([]byte, blocksFor(bitLen))
	copy(b, data)
	r := Bitstring{bits: b, len: bitLen}
	r.clearTail()
	return r
}

// FromUint64 returns the n-bit bitstring holding the n lowest bits of v.
func FromUint64(v uint64, n int) Bitstring {
	r := New(n)
	for i := 0; i < len(r.bits) && i < 8; i++ {
		r.bits[i] = byte(v >> (i * blockSize))
	}
	r.clearTail()
	return r
}

// Parse converts a string of '0' and '1' characters into a Bitstring. The
// leftmost character corresponds to the highest bit, matching the ket
// convention |b_{n-1} ... b_1 b_0>. Spaces are ignored.
func Parse(s string) (Bitstring, error) {
	var chars []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0', '1':
			chars = append(chars, s[i])
		case ' ':
		default:
			return Bitstring{}, fmt.Errorf("parsing %q: %w", s, ErrBadLiteral)
		}
	}
	r := New(len(chars))
	for i, c := range chars {
		if c == '1' {
			r.Set(len(chars)-1-i, true)
		}
	}
	return r, nil
}

// MustParse is like Parse but panics on malformed literals.
func MustParse(s string) Bitstring {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Random returns a uniformly random n-bit bitstring drawn from rnd.
func Random(rnd *rand.Rand, n int) Bitstring {
	buf := make([]byte, blocksFor(n))
	rnd.Read(buf)
	return FromBytes(buf, n)
}

// Size returns the number of bits in b.
func (b Bitstring) Size() int {
	return b.len
}

// Get returns the bit at idx. Bits beyond the end of b read as zero.
func (b Bitstring) Get(idx int) bool {
	if idx >= b.len {
		return false
	}
	block := b.bits[idx/blockSize]
	pos := idx % blockSize
	return 0 < block&(1<<pos)
}

// Set assigns the bit at idx. It panics if idx is out of range.
func (b *Bitstring) Set(idx int, bit bool) {
	if idx < 0 || idx >= b.len {
		panic(fmt.Sprintf("basis: setting bit %d of a %d-bit string", idx, b.len))
	}
	pos := idx % blockSize
	if bit {
		b.bits[idx/blockSize] |= 1 << pos
		return
	}
	b.bits[idx/blockSize] &^= 1 << pos
}

// Xor computes a bitwise XOR between b and other. If one of the two is
// shorter than the other, trailing zeros are implicitly added to make the
// sizes match.
func (b Bitstring) Xor(other Bitstring) Bitstring {
	short, long := other, b
	if b.len < other.len {
		short, long = b, other
	}
	r := Bitstring{
		bits: make([]byte, 0, blocksFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, short.bits[i]^long.bits[i])
	}
	for j := len(short.bits); j < len(long.bits); j++ {
		r.bits = append(r.bits, long.bits[j]) // 0^v == v
	}
	return r
}

// And computes a bitwise AND between b and other. The result is truncated to
// the shorter of the two.
func (b Bitstring) And(other Bitstring) Bitstring {
	short := other
	if b.len < other.len {
		short = b
	}
	r := Bitstring{
		bits: make([]byte, 0, blocksFor(short.len)),
		len:  short.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, b.bits[i]&other.bits[i])
	}
	return r
}

// Or computes a bitwise OR between b and other. If one of the two is shorter
// than the other, trailing zeros are implicitly added to make the sizes
// match.
func (b Bitstring) Or(other Bitstring) Bitstring {
	short, long := other, b
	if b.len < other.len {
		short, long = b, other
	}
	r := Bitstring{
		bits: make([]byte, 0, blocksFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, short.bits[i]|long.bits[i])
	}
	for j := len(short.bits); j < len(long.bits); j++ {
		r.bits = append(r.bits, long.bits[j])
	}
	return r
}

// Parity returns the overall parity of b, with true corresponding to odd.
func (b Bitstring) Parity() bool {
	var sum byte
	for _, blk := range b.bits {
		sum ^= blk
	}
	return bits.OnesCount8(sum)%2 == 1
}

// CountOnes returns the Hamming weight of b.
func (b Bitstring) CountOnes() int {
	var sum int
	for _, blk := range b.bits {
		sum += bits.OnesCount8(blk)
	}
	return sum
}

// Cmp compares b and other by unsigned integer value, returning -1, 0, or +1
// as b is less than, equal to, or greater than other. Strings of different
// lengths compare by value, with missing high bits reading as zero.
func (b Bitstring) Cmp(other Bitstring) int {
	n := len(b.bits)
	if len(other.bits) > n {
		n = len(other.bits)
	}
	for i := n - 1; i >= 0; i-- {
		var bb, ob byte
		if i < len(b.bits) {
			bb = b.bits[i]
		}
		if i < len(other.bits) {
			ob = other.bits[i]
		}
		if bb < ob {
			return -1
		}
		if bb > ob {
			return 1
		}
	}
	return 0
}

// Equal reports whether b and other have the same length and the same bits.
func (b Bitstring) Equal(other Bitstring) bool {
	return b.len == other.len && b.Cmp(other) == 0
}

// Uint64 returns the integer value of b. It panics if b is longer than 64
// bits.
func (b Bitstring) Uint64() uint64 {
	if b.len > 64 {
		panic(fmt.Sprintf("basis: %d-bit string exceeds uint64", b.len))
	}
	var v uint64
	for i, blk := range b.bits {
		v |= uint64(blk) << (i * blockSize)
	}
	return v
}

// Halves splits an even-length bitstring into its low and high halves, with
// lo holding bits [0, n/2) and hi holding bits [n/2, n).
func (b Bitstring) Halves() (lo, hi Bitstring, err error) {
	if b.len%2 != 0 {
		return Bitstring{}, Bitstring{}, fmt.Errorf("halving a %d-bit string: %w", b.len, ErrOddLength)
	}
	half := b.len / 2
	lo, hi = New(half), New(half)
	for i := 0; i < half; i++ {
		if b.Get(i) {
			lo.Set(i, true)
		}
		if b.Get(half + i) {
			hi.Set(i, true)
		}
	}
	return lo, hi, nil
}

// String renders b with its highest bit leftmost, so that the text reads as
// the binary expansion of b's integer value. Parse inverts it.
func (b Bitstring) String() string {
	buf := make([]byte, b.len)
	for i := 0; i < b.len; i++ {
		c := byte('0')
		if b.Get(i) {
			c = '1'
		}
		buf[b.len-1-i] = c
	}
	return string(buf)
}

func (b Bitstring) clone() Bitstring {
	bits := make([]byte, len(b.bits))
	copy(bits, b.bits)
	return Bitstring{bits: bits, len: b.len}
}

// clearTail zeroes the unused bits of the final block, preserving the
// representation invariant that Cmp and Parity rely on.
func (b *Bitstring) clearTail() {
	if b.len%blockSize == 0 || len(b.bits) == 0 {
		return
	}
	b.bits[len(b.bits)-1] &= byte(1<<(b.len%blockSize)) - 1
}

func blocksFor(bits int) int {
	return (bits + blockSize - 1) / blockSize
}
