// Package valueset implements a fixed-width bitset over {1..N} used to
// represent the remaining candidate values of a single Sudoku cell.
package valueset

import (
	"errors"
	"math/bits"
)

// ErrInvalidUniverse is the panic value raised when an operation combines
// two ValueSets whose universe sizes (N) do not match.
var ErrInvalidUniverse = errors.New("valueset: mismatched universe size")

// ValueSet is a bitset over the values 1..N, N <= 64. Bit (v-1) is set iff
// value v is a candidate. Bits at or above N are always zero.
type ValueSet struct {
	bits uint64
	n    int
}

// Init returns an empty ValueSet over the universe {1..n}.
func Init(n int) ValueSet {
	return ValueSet{bits: 0, n: n}
}

// Full returns the ValueSet containing every value in {1..n}.
func Full(n int) ValueSet {
	return Init(n).Complement()
}

// Singleton returns the ValueSet containing only v (1-based).
func Singleton(n int, v int) ValueSet {
	return ValueSet{bits: uint64(1) << uint(v-1), n: n}
}

// N returns the universe size this set was constructed with.
func (a ValueSet) N() int { return a.n }

func (a ValueSet) mask() uint64 {
	if a.n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(a.n)) - 1
}

func mustMatch(a, b ValueSet) {
	if a.n != b.n {
		panic(ErrInvalidUniverse)
	}
}

// Union returns the set union a ∪ b.
func (a ValueSet) Union(b ValueSet) ValueSet {
	mustMatch(a, b)
	return ValueSet{bits: a.bits | b.bits, n: a.n}
}

// Add is an alias for Union, mirroring the original's `+` operator.
func (a ValueSet) Add(b ValueSet) ValueSet { return a.Union(b) }

// Intersect returns the set intersection a ∩ b.
func (a ValueSet) Intersect(b ValueSet) ValueSet {
	mustMatch(a, b)
	return ValueSet{bits: a.bits & b.bits, n: a.n}
}

// Complement returns the complement of a within {1..N}.
func (a ValueSet) Complement() ValueSet {
	return ValueSet{bits: ^a.bits & a.mask(), n: a.n}
}

// Minus returns the set difference a \ b (values in a but not in b).
func (a ValueSet) Minus(b ValueSet) ValueSet {
	mustMatch(a, b)
	return ValueSet{bits: a.bits &^ b.bits, n: a.n}
}

// Xor returns the symmetric difference a ^ b.
func (a ValueSet) Xor(b ValueSet) ValueSet {
	mustMatch(a, b)
	return ValueSet{bits: (a.bits ^ b.bits) & a.mask(), n: a.n}
}

// Count returns the number of candidate values still present.
func (a ValueSet) Count() int {
	return bits.OnesCount64(a.bits)
}

// Empty reports whether no candidate values remain.
func (a ValueSet) Empty() bool {
	return a.bits == 0
}

// Fixed reports whether exactly one candidate value remains.
func (a ValueSet) Fixed() bool {
	return a.Count() == 1
}

// Index returns the 0-based index of the sole candidate value. The result
// is undefined if the set is not Fixed.
func (a ValueSet) Index() int {
	return bits.TrailingZeros64(a.bits)
}

// Has reports whether value v (1-based) is a candidate.
func (a ValueSet) Has(v int) bool {
	return a.bits&(uint64(1)<<uint(v-1)) != 0
}

// ToString renders the set as the concatenation of alphabet[i] for every
// set bit i, in ascending order.
func (a ValueSet) ToString(alphabet string) string {
	out := make([]byte, 0, a.Count())
	for i := 0; i < a.n; i++ {
		if a.bits&(uint64(1)<<uint(i)) != 0 {
			out = append(out, alphabet[i])
		}
	}
	return string(out)
}
