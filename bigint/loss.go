// Copyright 2021 Aleksandr Demakin. All rights reserved.

package bigint

// Loss classifies the fraction discarded by a truncating right shift,
// relative to one unit in the last surviving place. It is the currency
// rounding decisions are made in.
type Loss uint8

const (
	// LossExactlyZero: the discarded bits were 0000000.
	LossExactlyZero Loss = iota
	// LossLessThanHalf: the discarded bits were 0xxxxxx.
	LossLessThanHalf
	// LossExactlyHalf: the discarded bits were 1000000.
	LossExactlyHalf
	// LossMoreThanHalf: the discarded bits were 1xxxxxx.
	LossMoreThanHalf
)

// IsExactlyZero returns true for LossExactlyZero.
func (l Loss) IsExactlyZero() bool { return l == LossExactlyZero }

// IsLessThanHalf returns true for LossLessThanHalf.
func (l Loss) IsLessThanHalf() bool { return l == LossLessThanHalf }

// IsExactlyHalf returns true for LossExactlyHalf.
func (l Loss) IsExactlyHalf() bool { return l == LossExactlyHalf }

// IsMoreThanHalf returns true for LossMoreThanHalf.
func (l Loss) IsMoreThanHalf() bool { return l == LossMoreThanHalf }

// IsGTEHalf returns true if at least half of an ulp was discarded.
func (l Loss) IsGTEHalf() bool { return l == LossExactlyHalf || l == LossMoreThanHalf }

// Combine merges the loss of two successive truncations, l being the more
// significant stage and lsb the less significant one. A two-step shift must
// report the same loss as the single equivalent shift: any non-zero bits
// lost in the second stage push an exact first-stage result off its mark.
func (l Loss) Combine(lsb Loss) Loss {
	if !lsb.IsExactlyZero() {
		switch l {
		case LossExactlyZero:
			return LossLessThanHalf
		case LossExactlyHalf:
			return LossMoreThanHalf
		}
	}
	return l
}

// Invert returns the fraction as seen from the next value up, which is the
// loss to report after borrowing one ulp in a subtraction.
func (l Loss) Invert() Loss {
	switch l {
	case LossLessThanHalf:
		return LossMoreThanHalf
	case LossMoreThanHalf:
		return LossLessThanHalf
	}
	return l
}

func (l Loss) String() string {
	switch l {
	case LossExactlyZero:
		return "ExactlyZero"
	case LossLessThanHalf:
		return "LessThanHalf"
	case LossExactlyHalf:
		return "ExactlyHalf"
	case LossMoreThanHalf:
		return "MoreThanHalf"
	}
	return "Unknown"
}
