// Copyright 2021 Aleksandr Demakin. All rights reserved.

// Package apfloat emulates IEEE-754-style binary floating point with
// configurable exponent and mantissa widths. A Semantics value describes a
// format, a Float carries one value of such a format. The mantissa is kept
// with an explicit leading bit, so normalization and casting share one
// shift-and-round routine for every format.
package apfloat

import (
	"fmt"

	"github.com/avdva/apfloat/bigint"
)

// LossFraction classifies the information discarded by a truncating shift.
// See the bigint package for the classification and combination rules.
type LossFraction = bigint.Loss

// Re-exported loss classifications.
const (
	LossExactlyZero  = bigint.LossExactlyZero
	LossLessThanHalf = bigint.LossLessThanHalf
	LossExactlyHalf  = bigint.LossExactlyHalf
	LossMoreThanHalf = bigint.LossMoreThanHalf
)

// RoundingMode selects the policy applied when a result cannot be
// represented exactly.
type RoundingMode uint8

const (
	// RoundNearestTiesToEven rounds to nearest, breaking ties toward the
	// candidate with an even lowest bit.
	RoundNearestTiesToEven RoundingMode = iota
	// RoundNearestTiesToAway rounds to nearest, breaking ties away from zero.
	RoundNearestTiesToAway
	// RoundTowardZero truncates.
	RoundTowardZero
	// RoundTowardPositive rounds toward +infinity.
	RoundTowardPositive
	// RoundTowardNegative rounds toward -infinity.
	RoundTowardNegative
)

func (m RoundingMode) String() string {
	switch m {
	case RoundNearestTiesToEven:
		return "NearestTiesToEven"
	case RoundNearestTiesToAway:
		return "NearestTiesToAway"
	case RoundTowardZero:
		return "TowardZero"
	case RoundTowardPositive:
		return "TowardPositive"
	case RoundTowardNegative:
		return "TowardNegative"
	}
	return "Unknown"
}

// Category tells how the sign, exponent and mantissa fields of a Float are
// to be interpreted. For Zero, Infinity and NaN only the sign matters; the
// exponent and mantissa are kept at zero.
type Category uint8

const (
	// CategoryZero is a signed zero.
	CategoryZero Category = iota
	// CategoryNormal is an ordinary finite non-zero value.
	CategoryNormal
	// CategoryInfinity is a signed infinity.
	CategoryInfinity
	// CategoryNaN is a not-a-number.
	CategoryNaN
)

func (c Category) String() string {
	switch c {
	case CategoryZero:
		return "zero"
	case CategoryNormal:
		return "normal"
	case CategoryInfinity:
		return "inf"
	case CategoryNaN:
		return "nan"
	}
	return "unknown"
}

const (
	// mantissa storage is 6 words wide, enough for the largest precision.
	mantissaWords = 6
	mantissaBits  = mantissaWords * 64

	minExpBits = 2
	maxExpBits = 24
	// Three bits of headroom are kept above the largest precision for the
	// guard bits and carries of the arithmetic operators.
	maxPrecision = 240
)

type mantissa = bigint.U384

// Semantics describes a binary floating point format: the width of the
// exponent field and the width of the mantissa field, in bits.
type Semantics struct {
	ebits, mbits int
}

// Predefined formats. FP16/FP32/FP64/FP128/FP256 are the IEEE-754 binary
// interchange formats, BF16 is the truncated bfloat16 format.
var (
	FP16  = Semantics{ebits: 5, mbits: 10}
	BF16  = Semantics{ebits: 8, mbits: 7}
	FP32  = Semantics{ebits: 8, mbits: 23}
	FP64  = Semantics{ebits: 11, mbits: 52}
	FP128 = Semantics{ebits: 15, mbits: 112}
	FP256 = Semantics{ebits: 19, mbits: 236}
)

// NewSemantics returns a Semantics with the given field widths.
// Widths outside the supported range are a contract violation.
func NewSemantics(ebits, mbits int) Semantics {
	if ebits < minExpBits || ebits > maxExpBits {
		panic(fmt.Sprintf("apfloat: exponent width %d out of range [%d, %d]", ebits, minExpBits, maxExpBits))
	}
	if mbits < 1 || mbits+1 > maxPrecision {
		panic(fmt.Sprintf("apfloat: mantissa width %d out of range [1, %d]", mbits, maxPrecision-1))
	}
	return Semantics{ebits: ebits, mbits: mbits}
}

// ExpBits returns the width of the exponent field.
func (s Semantics) ExpBits() int { return s.ebits }

// MantBits returns the width of the mantissa field.
func (s Semantics) MantBits() int { return s.mbits }

// Precision returns the number of significand bits, including the explicit
// leading bit.
func (s Semantics) Precision() int { return s.mbits + 1 }

// Width returns the total encoded width: sign, exponent and mantissa fields.
func (s Semantics) Width() int { return 1 + s.ebits + s.mbits }

// Bias returns the exponent bias, as a positive number.
func (s Semantics) Bias() int64 {
	return 1<<uint(s.ebits-1) - 1
}

// ExpBounds returns the lowest and highest legal unbiased exponents. The
// top exponent code is reserved for Inf/NaN, the bottom one for zero and
// the subnormal encoding.
func (s Semantics) ExpBounds() (min, max int64) {
	return -s.Bias() + 1, 1<<uint(s.ebits) - s.Bias() - 2
}

func (s Semantics) String() string {
	return fmt.Sprintf("binary(%d,%d)", s.ebits, s.mbits)
}

// Float is a floating point value of some Semantics: a sign, an unbiased
// exponent and a mantissa stored with an explicit leading bit. After
// normalization a Normal value keeps the invariant
//
//	value = (-1)^sign * mantissa * 2^(exp - precision + 1)
//
// with the mantissa's most significant bit at index precision.
// Values are immutable except through Normalize.
type Float struct {
	sem  Semantics
	sign bool
	exp  int64
	mant mantissa
	cat  Category
}

func raw(sem Semantics, sign bool, exp int64, mant mantissa, cat Category) Float {
	return Float{sem: sem, sign: sign, exp: exp, mant: mant, cat: cat}
}

// New returns a Normal value with the given exponent and mantissa.
// A zero mantissa canonicalizes to a signed zero.
func New(sem Semantics, negative bool, exp int64, mant mantissa) Float {
	if mant.IsZero() {
		return Zero(sem, negative)
	}
	return raw(sem, negative, exp, mant, CategoryNormal)
}

// Zero returns a signed zero.
func Zero(sem Semantics, negative bool) Float {
	return raw(sem, negative, 0, mantissa{}, CategoryZero)
}

// Inf returns a signed infinity.
func Inf(sem Semantics, negative bool) Float {
	return raw(sem, negative, 0, mantissa{}, CategoryInfinity)
}

// NaN returns a not-a-number.
func NaN(sem Semantics, negative bool) Float {
	return raw(sem, negative, 0, mantissa{}, CategoryNaN)
}

// MaxFinite returns the largest finite value of the format.
func MaxFinite(sem Semantics, negative bool) Float {
	_, max := sem.ExpBounds()
	return New(sem, negative, max, bigint.Ones[[mantissaWords]uint64](sem.Precision()))
}

// Semantics returns the format of the value.
func (f Float) Semantics() Semantics { return f.sem }

// Negative returns true if the sign bit is set.
func (f Float) Negative() bool { return f.sign }

// Exp returns the unbiased exponent. It is meaningful only for Normal
// values.
func (f Float) Exp() int64 { return f.exp }

// Mantissa returns the significand, explicit leading bit included.
func (f Float) Mantissa() bigint.U384 { return f.mant }

// Category returns the kind of number this Float represents.
func (f Float) Category() Category { return f.cat }

// IsNaN returns true if the value is a NaN.
func (f Float) IsNaN() bool { return f.cat == CategoryNaN }

// IsInf returns true if the value is +-Inf.
func (f Float) IsInf() bool { return f.cat == CategoryInfinity }

// IsZero returns true if the value is +-0.
func (f Float) IsZero() bool { return f.cat == CategoryZero }

// IsNormal returns true for ordinary finite non-zero values.
func (f Float) IsNormal() bool { return f.cat == CategoryNormal }

// Neg returns the value with the sign flipped.
func (f Float) Neg() Float {
	f.sign = !f.sign
	return f
}

// GoString returns a debug representation of the value.
func (f Float) GoString() string {
	sign := "+"
	if f.sign {
		sign = "-"
	}
	switch f.cat {
	case CategoryNaN:
		return fmt.Sprintf("[%sNaN]", sign)
	case CategoryInfinity:
		return fmt.Sprintf("[%sInf]", sign)
	case CategoryZero:
		return fmt.Sprintf("[%s0.0]", sign)
	default:
		return fmt.Sprintf("FP[%s E=%d M=%v]", sign, f.exp, f.mant)
	}
}

// checkBounds verifies the post-normalization invariants.
func (f Float) checkBounds() {
	if f.cat != CategoryNormal {
		return
	}
	min, max := f.sem.ExpBounds()
	if f.exp < min || f.exp > max {
		panic(fmt.Sprintf("apfloat: exponent %d out of [%d, %d]", f.exp, min, max))
	}
	if f.mant.MsbIndex() > f.sem.Precision() {
		panic("apfloat: mantissa wider than precision")
	}
}

func mant64(v uint64) mantissa {
	return bigint.FromUint64[[mantissaWords]uint64](v)
}

func mantOne() mantissa {
	return mant64(1)
}
