// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

// shiftSignificandLeft moves the mantissa up without changing the value.
func (f *Float) shiftSignificandLeft(amt int64) {
	f.exp -= amt
	f.mant.Shl(int(amt))
}

// shiftSignificandRight moves the mantissa down without changing the value
// and reports the discarded fraction.
func (f *Float) shiftSignificandRight(amt int64) LossFraction {
	f.exp += amt
	return f.mant.ShrLoss(int(amt))
}

// needRoundAwayFromZero decides whether the mantissa must be incremented,
// given the rounding mode and the discarded fraction.
func (f *Float) needRoundAwayFromZero(mode RoundingMode, loss LossFraction) bool {
	switch mode {
	case RoundTowardPositive:
		return !f.sign
	case RoundTowardNegative:
		return f.sign
	case RoundTowardZero:
		return false
	case RoundNearestTiesToAway:
		return loss.IsGTEHalf()
	default: // RoundNearestTiesToEven
		if loss.IsMoreThanHalf() {
			return true
		}
		return loss.IsExactlyHalf() && f.mant.IsOdd()
	}
}

// overflowTo resolves an exponent overflow according to the rounding mode:
// infinity for the nearest modes, the largest finite value for truncation,
// and for the directed modes whichever of the two the direction selects.
func (f *Float) overflowTo(mode RoundingMode) {
	inf := Inf(f.sem, f.sign)
	max := MaxFinite(f.sem, f.sign)
	switch mode {
	case RoundNearestTiesToEven, RoundNearestTiesToAway:
		*f = inf
	case RoundTowardZero:
		*f = max
	case RoundTowardPositive:
		if f.sign {
			*f = max
		} else {
			*f = inf
		}
	case RoundTowardNegative:
		if f.sign {
			*f = inf
		} else {
			*f = max
		}
	}
}

// Normalize aligns the mantissa to the canonical position, applies the
// rounding policy to the combined loss and canonicalizes zero. Callers that
// computed an exact intermediate (the arithmetic operators) pass the
// fraction they discarded as loss; Normalize guarantees correct final
// rounding provided that classification is correct.
//
// Asking to reduce the exponent while a loss is pending is a contract
// violation: a left shift adds precision and can never absorb one.
func (f *Float) Normalize(mode RoundingMode, loss LossFraction) {
	if f.cat != CategoryNormal {
		return
	}
	min, max := f.sem.ExpBounds()
	precision := int64(f.sem.Precision())

	if nmsb := int64(f.mant.MsbIndex()); nmsb > 0 {
		// Step I - align the top bit of the mantissa with the precision.
		expChange := nmsb - precision

		if f.exp+expChange > max {
			f.overflowTo(mode)
			f.checkBounds()
			return
		}

		// Values below the legal exponent range are pushed down to the
		// minimum exponent; the extra precision loss is picked up by the
		// shift below. There is no true subnormal representation.
		if f.exp+expChange < min {
			expChange = min - f.exp
		}

		if expChange < 0 {
			if !loss.IsExactlyZero() {
				panic("apfloat: losing information on an exact shift")
			}
			f.shiftSignificandLeft(-expChange)
			return
		}

		if expChange > 0 {
			loss = f.shiftSignificandRight(expChange).Combine(loss)
		}
	}

	// Step II - round.
	if loss.IsExactlyZero() {
		if f.mant.IsZero() {
			*f = Zero(f.sem, f.sign)
		}
		return
	}

	if f.needRoundAwayFromZero(mode, loss) {
		// If the underflow clamp shifted everything out, the increment
		// recreates the smallest representable magnitude.
		if f.mant.IsZero() {
			f.exp = min
		}
		f.mant.Add(mantOne())
		overflow := f.mant
		overflow.Shr(int(precision))
		if !overflow.IsZero() {
			if f.exp < max {
				f.shiftSignificandRight(1)
			} else {
				*f = Inf(f.sem, f.sign)
				return
			}
		}
	}

	if f.mant.IsZero() {
		*f = Zero(f.sem, f.sign)
	}
}
