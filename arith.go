// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

import (
	"github.com/avdva/apfloat/bigint"
)

// The operators compute an exact wide intermediate mantissa/exponent pair
// plus the fraction discarded while computing it, then hand both to
// Normalize for the final rounding. Operands must share semantics;
// mixing formats is a contract violation.

func checkSemantics(a, b Float) {
	if a.sem != b.sem {
		panic("apfloat: mismatched semantics")
	}
}

// Add returns f+rhs rounded to nearest-even.
func (f Float) Add(rhs Float) Float {
	return f.AddWithMode(rhs, RoundNearestTiesToEven)
}

// Sub returns f-rhs rounded to nearest-even.
func (f Float) Sub(rhs Float) Float {
	return f.SubWithMode(rhs, RoundNearestTiesToEven)
}

// SubWithMode returns f-rhs rounded with the given mode.
func (f Float) SubWithMode(rhs Float, mode RoundingMode) Float {
	return f.AddWithMode(rhs.Neg(), mode)
}

// AddWithMode returns f+rhs rounded with the given mode.
func (f Float) AddWithMode(rhs Float, mode RoundingMode) Float {
	checkSemantics(f, rhs)
	switch {
	case f.IsNaN():
		return f
	case rhs.IsNaN():
		return rhs
	case f.IsInf() && rhs.IsInf():
		if f.sign != rhs.sign {
			return NaN(f.sem, false)
		}
		return f
	case f.IsInf():
		return f
	case rhs.IsInf():
		return rhs
	case f.IsZero() && rhs.IsZero():
		// Exact zero sums keep the IEEE sign rules.
		neg := f.sign && rhs.sign || mode == RoundTowardNegative && (f.sign || rhs.sign)
		return Zero(f.sem, neg)
	case f.IsZero():
		return rhs
	case rhs.IsZero():
		return f
	}

	x, y := f, rhs
	if x.absLess(y) {
		x, y = y, x
	}

	// Two guard bits below the result grid; the smaller operand is aligned
	// with the full discarded fraction classified, so the sticky
	// information is never lost no matter how far apart the exponents are.
	mx, my := x.mant, y.mant
	mx.Shl(2)
	my.Shl(2)
	loss := my.ShrLoss(int(x.exp - y.exp))

	if x.sign == y.sign {
		mx.Add(my)
	} else {
		if !loss.IsExactlyZero() {
			// The subtrahend was truncated, so the true difference is one
			// grid unit lower and the fraction flips around.
			my.Add(mantOne())
			loss = loss.Invert()
		}
		mx.Sub(my)
		if mx.IsZero() && loss.IsExactlyZero() {
			return Zero(f.sem, mode == RoundTowardNegative)
		}
	}

	res := New(f.sem, x.sign, x.exp-2, mx)
	res.Normalize(mode, loss)
	return res
}

// Mul returns f*rhs rounded to nearest-even.
func (f Float) Mul(rhs Float) Float {
	return f.MulWithMode(rhs, RoundNearestTiesToEven)
}

// MulWithMode returns f*rhs rounded with the given mode.
func (f Float) MulWithMode(rhs Float, mode RoundingMode) Float {
	checkSemantics(f, rhs)
	sign := f.sign != rhs.sign
	switch {
	case f.IsNaN():
		return f
	case rhs.IsNaN():
		return rhs
	case f.IsInf() && rhs.IsZero() || f.IsZero() && rhs.IsInf():
		return NaN(f.sem, sign)
	case f.IsInf() || rhs.IsInf():
		return Inf(f.sem, sign)
	case f.IsZero() || rhs.IsZero():
		return Zero(f.sem, sign)
	}

	precision := int64(f.sem.Precision())
	prod := bigint.Extend[[12]uint64](f.mant)
	prod.Mul(bigint.Extend[[12]uint64](rhs.mant))

	// Fold the double-width product back to the working width, keeping the
	// discarded fraction for the rounding step.
	loss := LossExactlyZero
	shift := int64(prod.MsbIndex()) - precision
	if shift > 0 {
		loss = prod.ShrLoss(int(shift))
	} else {
		shift = 0
	}

	res := New(f.sem, sign, f.exp+rhs.exp-precision+1+shift, bigint.Truncate[[6]uint64](prod))
	res.Normalize(mode, loss)
	return res
}

// Div returns f/rhs rounded to nearest-even.
func (f Float) Div(rhs Float) Float {
	return f.DivWithMode(rhs, RoundNearestTiesToEven)
}

// DivWithMode returns f/rhs rounded with the given mode.
func (f Float) DivWithMode(rhs Float, mode RoundingMode) Float {
	checkSemantics(f, rhs)
	sign := f.sign != rhs.sign
	switch {
	case f.IsNaN():
		return f
	case rhs.IsNaN():
		return rhs
	case f.IsInf() && rhs.IsInf() || f.IsZero() && rhs.IsZero():
		return NaN(f.sem, sign)
	case f.IsInf():
		return Inf(f.sem, sign)
	case rhs.IsInf():
		return Zero(f.sem, sign)
	case f.IsZero():
		return Zero(f.sem, sign)
	case rhs.IsZero():
		// IEEE division by zero: an exact infinity.
		return Inf(f.sem, sign)
	}

	precision := int64(f.sem.Precision())
	num := bigint.Extend[[12]uint64](f.mant)
	den := bigint.Extend[[12]uint64](rhs.mant)
	// Shift the numerator so that the quotient comes out a couple of bits
	// above the precision whatever the operands' widths; a short quotient
	// with a nonzero remainder would otherwise lose the trailing bits.
	shift := precision + 2 + int64(rhs.mant.MsbIndex()) - int64(f.mant.MsbIndex())
	if shift < 0 {
		shift = 0
	}
	num.Shl(int(shift))
	q, r := bigint.DivMod(num, den)

	loss := LossExactlyZero
	if !r.IsZero() {
		// The remainder r/den is the fraction below the quotient's last
		// bit; classify it against one half.
		r.Shl(1)
		switch r.Cmp(den) {
		case -1:
			loss = LossLessThanHalf
		case 0:
			loss = LossExactlyHalf
		default:
			loss = LossMoreThanHalf
		}
	}

	exp := f.exp - rhs.exp - shift + precision - 1
	// Fold a long quotient back to the working width before rounding.
	if fold := int64(q.MsbIndex()) - precision - 3; fold > 0 {
		loss = q.ShrLoss(int(fold)).Combine(loss)
		exp += fold
	}

	res := New(f.sem, sign, exp, bigint.Truncate[[6]uint64](q))
	res.Normalize(mode, loss)
	return res
}
