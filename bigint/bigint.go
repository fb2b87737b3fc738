// Copyright 2021 Aleksandr Demakin. All rights reserved.

// Package bigint implements fixed-width multi-word unsigned integers.
// A value is a little-endian array of 64-bit words whose width is fixed
// by its type; arithmetic that would leave the declared width reports an
// explicit flag instead of wrapping silently.
package bigint

import (
	"fmt"
	"math/bits"
	"strings"
)

// Width is the closed set of supported backing arrays, in 64-bit words.
// The widths cover every precision the float package instantiates, plus
// double-width scratch for products and quotients.
type Width interface {
	[1]uint64 | [2]uint64 | [3]uint64 | [4]uint64 | [6]uint64 | [8]uint64 | [12]uint64
}

// Uint is an unsigned integer of 64*len(W) bits. The zero value is zero.
// Values are freely copyable; the in-place operators are the only mutators.
type Uint[W Width] struct {
	words W // words[0] is the least significant.
}

// Convenience aliases for the widths used by package apfloat.
type (
	U128 = Uint[[2]uint64]
	U256 = Uint[[4]uint64]
	U384 = Uint[[6]uint64]
	U768 = Uint[[12]uint64]
)

// FromUint64 places v in the low word.
func FromUint64[W Width](v uint64) Uint[W] {
	var u Uint[W]
	u.words[0] = v
	return u
}

// FromWords builds a value from a raw little-endian word array.
func FromWords[W Width](words W) Uint[W] {
	return Uint[W]{words: words}
}

// One returns the value 1.
func One[W Width]() Uint[W] {
	return FromUint64[W](1)
}

// Ones returns a value with the low bits bits set.
func Ones[W Width](bits int) Uint[W] {
	var u Uint[W]
	for i := 0; i < len(u.words); i++ {
		u.words[i] = ^uint64(0)
	}
	u.Mask(bits)
	return u
}

// Truncate copies the low words of x into a narrower value.
// Truncating to a larger width is a contract violation.
func Truncate[To, From Width](x Uint[From]) Uint[To] {
	var out Uint[To]
	if len(out.words) > len(x.words) {
		panic("bigint: can't truncate to a larger width")
	}
	for i := 0; i < len(out.words); i++ {
		out.words[i] = x.words[i]
	}
	return out
}

// Extend copies x into a wider value, zero-filling the high words.
// Extending to a smaller width is a contract violation.
func Extend[To, From Width](x Uint[From]) Uint[To] {
	var out Uint[To]
	if len(out.words) < len(x.words) {
		panic("bigint: can't extend to a smaller width")
	}
	for i := 0; i < len(x.words); i++ {
		out.words[i] = x.words[i]
	}
	return out
}

// Uint64 returns the value as a uint64.
// A value with significant bits above the low word is a contract violation.
func (u Uint[W]) Uint64() uint64 {
	for i := 1; i < len(u.words); i++ {
		if u.words[i] != 0 {
			panic("bigint: value does not fit in 64 bits")
		}
	}
	return u.words[0]
}

// Words returns a copy of the backing array.
func (u Uint[W]) Words() W {
	return u.words
}

// Word returns the idx-th 64-bit word, word 0 being the least significant.
func (u Uint[W]) Word(idx int) uint64 {
	return u.words[idx]
}

// BitWidth returns the total width in bits.
func (u Uint[W]) BitWidth() int {
	return 64 * len(u.words)
}

// Bit returns true if bit i (0-based) is set. Bits outside the width read
// as zero.
func (u Uint[W]) Bit(i int) bool {
	if i < 0 || i >= u.BitWidth() {
		return false
	}
	return u.words[i/64]>>(uint(i)%64)&1 == 1
}

func (u *Uint[W]) setBit(i int) {
	u.words[i/64] |= 1 << (uint(i) % 64)
}

// IsZero returns true if the value is zero.
func (u Uint[W]) IsZero() bool {
	for i := 0; i < len(u.words); i++ {
		if u.words[i] != 0 {
			return false
		}
	}
	return true
}

// IsEven returns true if the lowest bit is clear.
func (u Uint[W]) IsEven() bool {
	return u.words[0]&1 == 0
}

// IsOdd returns true if the lowest bit is set.
func (u Uint[W]) IsOdd() bool {
	return !u.IsEven()
}

// Mask zeroes all bits at or above position bits.
func (u *Uint[W]) Mask(bits int) {
	for i := 0; i < len(u.words); i++ {
		switch {
		case bits >= 64:
			bits -= 64
		case bits == 0:
			u.words[i] = 0
		default:
			u.words[i] &= 1<<uint(bits) - 1
			bits = 0
		}
	}
}

// MsbIndex returns the 1-based index of the highest set bit,
// or 0 for a zero value.
func (u Uint[W]) MsbIndex() int {
	for i := len(u.words) - 1; i >= 0; i-- {
		if w := u.words[i]; w != 0 {
			return i*64 + 64 - bits.LeadingZeros64(w)
		}
	}
	return 0
}

// Cmp compares two values, scanning from the most significant word down.
// Returns -1 if u < other, 0 if equal, 1 if u > other.
func (u Uint[W]) Cmp(other Uint[W]) int {
	for i := len(u.words) - 1; i >= 0; i-- {
		switch {
		case u.words[i] < other.words[i]:
			return -1
		case u.words[i] > other.words[i]:
			return 1
		}
	}
	return 0
}

// Add adds rhs to u in place and returns true if the sum wrapped.
// On wrap the stored result is the sum mod 2^width.
func (u *Uint[W]) Add(rhs Uint[W]) bool {
	var carry uint64
	for i := 0; i < len(u.words); i++ {
		u.words[i], carry = bits.Add64(u.words[i], rhs.words[i], carry)
	}
	return carry != 0
}

// Sub subtracts rhs from u in place and returns true if the
// subtraction borrowed.
func (u *Uint[W]) Sub(rhs Uint[W]) bool {
	var borrow uint64
	for i := 0; i < len(u.words); i++ {
		u.words[i], borrow = bits.Sub64(u.words[i], rhs.words[i], borrow)
	}
	return borrow != 0
}

// Mul multiplies u by rhs in place, accumulating partial products in a
// double-width scratch, and returns true if any non-zero bits landed
// above the declared width.
func (u *Uint[W]) Mul(rhs Uint[W]) bool {
	n := len(u.words)
	prod := make([]uint64, 2*n)
	for i := 0; i < n; i++ {
		var carry uint64
		x := u.words[i]
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(x, rhs.words[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(prod[i+j], lo, 0)
			hi += c
			prod[i+j] = lo
			carry = hi
		}
		prod[i+n] = carry
	}
	var over uint64
	for i := 0; i < n; i++ {
		u.words[i] = prod[i]
		over |= prod[i+n]
	}
	return over != 0
}

// Shl shifts the value left by b bits, shifting in zeros.
func (u *Uint[W]) Shl(b int) {
	n := len(u.words)
	wordShift, bitShift := b/64, uint(b%64)
	if bitShift == 0 {
		for i := n - 1; i >= 0; i-- {
			if i >= wordShift {
				u.words[i] = u.words[i-wordShift]
			} else {
				u.words[i] = 0
			}
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		var left, right uint64
		if i >= wordShift {
			left = u.words[i-wordShift]
		}
		if i > wordShift {
			right = u.words[i-wordShift-1]
		}
		u.words[i] = left<<bitShift | right>>(64-bitShift)
	}
}

// Shr shifts the value right by b bits, shifting in zeros.
func (u *Uint[W]) Shr(b int) {
	n := len(u.words)
	wordShift, bitShift := b/64, uint(b%64)
	if bitShift == 0 {
		for i := 0; i < n; i++ {
			if i+wordShift < n {
				u.words[i] = u.words[i+wordShift]
			} else {
				u.words[i] = 0
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		var left, right uint64
		if i+wordShift < n {
			left = u.words[i+wordShift]
		}
		if i+1+wordShift < n {
			right = u.words[i+1+wordShift]
		}
		u.words[i] = left>>bitShift | right<<(64-bitShift)
	}
}

// ShrLoss shifts the value right by b bits and classifies the
// discarded fraction.
func (u *Uint[W]) ShrLoss(b int) Loss {
	loss := u.LossForTruncation(b)
	u.Shr(b)
	return loss
}

// LossForTruncation classifies the fraction that truncating the value at
// bit would discard, by comparing the remainder to the half point
// 1 << (bit-1). Past the representable width everything that is left is
// known to be below half.
func (u Uint[W]) LossForTruncation(bit int) Loss {
	if u.IsZero() {
		return LossExactlyZero
	}
	if bit > u.BitWidth() {
		return LossLessThanHalf
	}
	rem := u
	rem.Mask(bit)
	if rem.IsZero() {
		return LossExactlyZero
	}
	half := One[W]()
	half.Shl(bit - 1)
	switch rem.Cmp(half) {
	case -1:
		return LossLessThanHalf
	case 0:
		return LossExactlyHalf
	default:
		return LossMoreThanHalf
	}
}

// DivMod divides num by den with a restoring shift-subtract loop and
// returns the quotient and remainder. Division by zero is a contract
// violation.
func DivMod[W Width](num, den Uint[W]) (q, r Uint[W]) {
	if den.IsZero() {
		panic("bigint: division by zero")
	}
	for i := num.MsbIndex() - 1; i >= 0; i-- {
		r.Shl(1)
		if num.Bit(i) {
			r.words[0] |= 1
		}
		if r.Cmp(den) >= 0 {
			r.Sub(den)
			q.setBit(i)
		}
	}
	return q, r
}

// String returns the value as hex words, most significant first.
func (u Uint[W]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := len(u.words) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "|%016x", u.words[i])
	}
	b.WriteByte(']')
	return b.String()
}
