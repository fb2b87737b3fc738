// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

// absLess reports |f| < |rhs| for finite values. Mantissas share the
// canonical alignment, so the exponent decides and the mantissa breaks
// ties; clamped below-minimum values only occur at the lowest exponent,
// where the mantissa comparison is exact.
func (f Float) absLess(rhs Float) bool {
	if f.exp != rhs.exp {
		return f.exp < rhs.exp
	}
	return f.mant.Cmp(rhs.mant) < 0
}

// absLessOrInf is absLess extended to infinities.
func (f Float) absLessOrInf(rhs Float) bool {
	if f.IsInf() {
		return false
	}
	if rhs.IsInf() {
		return true
	}
	return f.absLess(rhs)
}

// Eq returns true if both values represent the same number, following
// IEEE equality: NaN compares unequal to everything, +0 equals -0.
func (f Float) Eq(rhs Float) bool {
	checkSemantics(f, rhs)
	if f.IsNaN() || rhs.IsNaN() {
		return false
	}
	if f.IsZero() && rhs.IsZero() {
		return true
	}
	return f.cat == rhs.cat && f.sign == rhs.sign &&
		f.exp == rhs.exp && f.mant.Cmp(rhs.mant) == 0
}

// Less returns true if f is ordered before rhs. NaN is unordered:
// comparisons involving it return false.
func (f Float) Less(rhs Float) bool {
	checkSemantics(f, rhs)
	if f.IsNaN() || rhs.IsNaN() {
		return false
	}
	fz, rz := f.IsZero(), rhs.IsZero()
	switch {
	case fz && rz:
		return false
	case fz:
		return !rhs.sign
	case rz:
		return f.sign
	case f.sign != rhs.sign:
		return f.sign
	case f.sign:
		return rhs.absLessOrInf(f)
	default:
		return f.absLessOrInf(rhs)
	}
}

// AbsLess returns true if |f| < |rhs|. NaN is unordered.
func (f Float) AbsLess(rhs Float) bool {
	checkSemantics(f, rhs)
	if f.IsNaN() || rhs.IsNaN() {
		return false
	}
	if rhs.IsZero() {
		return false
	}
	if f.IsZero() {
		return true
	}
	return f.absLessOrInf(rhs)
}
