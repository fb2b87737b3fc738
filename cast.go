// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

import (
	"math"
	"math/bits"

	"github.com/avdva/apfloat/internal/mathutil"
)

// FromUint64 returns the value of v in the given format, rounding to
// nearest-even if the format's mantissa is narrower than v.
func FromUint64(sem Semantics, v uint64) Float {
	if v == 0 {
		return Zero(sem, false)
	}
	size := int64(63 - bits.LeadingZeros64(v))
	if _, max := sem.ExpBounds(); size > max {
		return Inf(sem, false)
	}
	f := New(sem, false, int64(sem.Precision())-1, mant64(v))
	f.Normalize(RoundNearestTiesToEven, LossExactlyZero)
	return f
}

// FromInt64 returns the value of v in the given format.
func FromInt64(sem Semantics, v int64) Float {
	if v < 0 {
		f := FromUint64(sem, uint64(-v))
		f.sign = true
		return f
	}
	return FromUint64(sem, uint64(v))
}

// FromBits decodes a packed native-style representation laid out with src's
// field widths into a value of the to format. An all-ones exponent field
// classifies Inf (zero mantissa field) or NaN. Subnormal inputs keep their
// IEEE scale (the minimum normal exponent) and a leading 0; values below
// the target's own subnormal range round to signed zero. The src format
// must fit into 64 bits; wider formats are a contract violation.
func FromBits(to, src Semantics, raw uint64) Float {
	if src.Width() > 64 {
		panic("apfloat: format wider than 64 bits")
	}
	mantField := raw & mathutil.Mask64(src.mbits)
	biased := raw >> uint(src.mbits) & mathutil.Mask64(src.ebits)
	sign := raw>>uint(src.ebits+src.mbits)&1 == 1

	if biased == mathutil.Mask64(src.ebits) {
		if mantField == 0 {
			return Inf(to, sign)
		}
		return NaN(to, sign)
	}

	exp := int64(biased) - src.Bias()
	if biased == 0 {
		// Subnormals share the scale of the lowest normal exponent.
		exp = 1 - src.Bias()
	}
	if _, max := to.ExpBounds(); exp > max {
		return Inf(to, sign)
	}

	// Expand to the explicit-leading-bit layout and restate the exponent
	// for the target's precision.
	mant := mant64(mantField)
	if biased != 0 {
		one := mantOne()
		one.Shl(src.mbits)
		mant.Add(one)
	}
	f := New(to, sign, exp+int64(to.Precision())-int64(src.Precision()), mant)
	f.Normalize(RoundNearestTiesToEven, LossExactlyZero)
	return f
}

// FromFloat32 returns the value of f in the given format.
func FromFloat32(sem Semantics, f float32) Float {
	return FromBits(sem, FP32, uint64(math.Float32bits(f)))
}

// FromFloat64 returns the value of f in the given format.
func FromFloat64(sem Semantics, f float64) Float {
	return FromBits(sem, FP64, uint64(math.Float64bits(f)))
}

// Cast converts the value to another format, rounding to nearest-even.
func (f Float) Cast(to Semantics) Float {
	return f.CastWithMode(to, RoundNearestTiesToEven)
}

// CastWithMode converts the value to another format with the given rounding
// mode. The mantissa is carried over at full internal width, so no
// information is discarded before normalization; the rounding step itself
// performs the precision reduction. Zero, Inf and NaN pass through.
func (f Float) CastWithMode(to Semantics, mode RoundingMode) Float {
	if f.cat != CategoryNormal {
		return raw(to, f.sign, 0, mantissa{}, f.cat)
	}
	exp := f.exp + int64(to.Precision()) - int64(f.sem.Precision())
	x := raw(to, f.sign, exp, f.mant, f.cat)
	x.Normalize(mode, LossExactlyZero)
	return x
}

// Bits packs the value into its native representation. The format must fit
// into 64 bits; wider formats are a contract violation. NaNs encode as the
// single canonical quiet NaN: payloads are not preserved.
func (f Float) Bits() uint64 {
	if f.sem.Width() > 64 {
		panic("apfloat: format wider than 64 bits")
	}
	var mantField, expField uint64
	switch f.cat {
	case CategoryInfinity:
		expField = mathutil.Mask64(f.sem.ebits)
	case CategoryNaN:
		expField = mathutil.Mask64(f.sem.ebits)
		mantField = 1 << uint(f.sem.mbits-1)
	case CategoryZero:
	case CategoryNormal:
		mantField = f.mant.Uint64() & mathutil.Mask64(f.sem.mbits)
		if f.mant.Bit(f.sem.mbits) {
			expField = uint64(f.exp + f.sem.Bias())
		}
		// Without the explicit leading bit the value sits at the minimum
		// exponent and encodes as a subnormal: exponent field zero, same
		// scale.
	}
	result := uint64(0)
	if f.sign {
		result = 1
	}
	result = result<<uint(f.sem.ebits) | expField
	result = result<<uint(f.sem.mbits) | mantField
	return result
}

// Float32 converts the value to a float32, rounding to nearest-even.
func (f Float) Float32() float32 {
	return math.Float32frombits(uint32(f.Cast(FP32).Bits()))
}

// Float64 converts the value to a float64, rounding to nearest-even.
func (f Float) Float64() float64 {
	return math.Float64frombits(f.Cast(FP64).Bits())
}
