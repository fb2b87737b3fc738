// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avdva/apfloat/bigint"
	"github.com/avdva/apfloat/internal/mathutil"
)

var (
	errNotFinite = fmt.Errorf("not a finite number")

	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

func bigFromMantissa(m mantissa) *big.Int {
	result := new(big.Int)
	for i := mantissaWords - 1; i >= 0; i-- {
		result.Lsh(result, 64)
		result.Or(result, new(big.Int).SetUint64(m.Word(i)))
	}
	return result
}

func mantissaFromBig(n *big.Int) mantissa {
	if n.BitLen() > mantissaBits {
		panic("apfloat: value does not fit the mantissa")
	}
	var words [mantissaWords]uint64
	rest := new(big.Int).Set(n)
	for i := 0; i < mantissaWords; i++ {
		words[i] = rest.Uint64() // low 64 bits
		rest.Rsh(rest, 64)
	}
	return bigint.FromWords(words)
}

func lossForBigRem(rem, half *big.Int) LossFraction {
	if rem.Sign() == 0 {
		return LossExactlyZero
	}
	switch rem.Cmp(half) {
	case -1:
		return LossLessThanHalf
	case 0:
		return LossExactlyHalf
	default:
		return LossMoreThanHalf
	}
}

// fromBigInt builds the value n * 2^scale, with loss describing a fraction
// already discarded below n's lowest bit.
func fromBigInt(sem Semantics, negative bool, n *big.Int, scale int64, mode RoundingMode, loss LossFraction) Float {
	precision := sem.Precision()
	if bl := n.BitLen(); bl > precision {
		shift := uint(bl - precision)
		rem := new(big.Int).And(n, new(big.Int).Sub(new(big.Int).Lsh(bigOne, shift), bigOne))
		half := new(big.Int).Lsh(bigOne, shift-1)
		loss = lossForBigRem(rem, half).Combine(loss)
		n = new(big.Int).Rsh(n, shift)
		scale += int64(shift)
	}
	f := raw(sem, negative, scale+int64(precision)-1, mantissaFromBig(n), CategoryNormal)
	f.Normalize(mode, loss)
	return f
}

// FromDecimal returns the decimal value d converted to the given format
// with correct rounding.
func FromDecimal(sem Semantics, d decimal.Decimal, mode RoundingMode) Float {
	coeff := new(big.Int).Set(d.Coefficient())
	negative := coeff.Sign() < 0
	coeff.Abs(coeff)
	if coeff.Sign() == 0 {
		return Zero(sem, false)
	}
	e10 := int64(d.Exponent())
	min, max := sem.ExpBounds()
	precision := int64(sem.Precision())

	// Magnitude guards: 10^e lies between 2^(3e) and 2^(4e), so decimal
	// exponents far outside the format cannot change the rounded result
	// and only differ in how much memory the exact scaling would burn.
	if e10 > 0 && 3*e10 >= max+1 {
		f := raw(sem, negative, 0, mantissa{}, CategoryNormal)
		f.overflowTo(mode)
		return f
	}
	if e10 < 0 && int64(coeff.BitLen())-3*mathutil.Abs(e10) < min-precision {
		f := raw(sem, negative, min, mantissa{}, CategoryNormal)
		f.Normalize(mode, LossLessThanHalf)
		return f
	}

	if e10 >= 0 {
		n := new(big.Int).Exp(bigTen, big.NewInt(e10), nil)
		n.Mul(n, coeff)
		return fromBigInt(sem, negative, n, 0, mode, LossExactlyZero)
	}

	// value = coeff / 10^|e10|: divide with a few bits to spare and
	// classify the remainder.
	den := new(big.Int).Exp(bigTen, big.NewInt(mathutil.Abs(e10)), nil)
	shift := precision + 2 + int64(den.BitLen()) - int64(coeff.BitLen())
	if shift < 0 {
		shift = 0
	}
	num := new(big.Int).Lsh(coeff, uint(shift))
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	r.Lsh(r, 1)
	var loss LossFraction
	if r.Sign() == 0 {
		loss = LossExactlyZero
	} else {
		switch r.Cmp(den) {
		case -1:
			loss = LossLessThanHalf
		case 0:
			loss = LossExactlyHalf
		default:
			loss = LossMoreThanHalf
		}
	}
	return fromBigInt(sem, negative, q, -shift, mode, loss)
}

// FromString parses a decimal string (shopspring/decimal syntax, plus
// NaN/Inf spellings) into the given format with correct rounding.
func FromString(sem Semantics, s string) (Float, error) {
	switch strings.TrimSpace(s) {
	case "NaN", "nan":
		return NaN(sem, false), nil
	case "Inf", "+Inf", "inf":
		return Inf(sem, false), nil
	case "-Inf", "-inf":
		return Inf(sem, true), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Float{}, fmt.Errorf("parsing failed: %w", err)
	}
	return FromDecimal(sem, d, RoundNearestTiesToEven), nil
}

// Decimal returns the exact decimal expansion of a finite value. Binary
// fractions are finite decimals: m*2^-k equals m*5^k*10^-k.
// Returns an error for NaN and infinities.
func (f Float) Decimal() (decimal.Decimal, error) {
	switch f.cat {
	case CategoryNaN, CategoryInfinity:
		return decimal.Decimal{}, errNotFinite
	case CategoryZero:
		return decimal.Decimal{}, nil
	}
	k := f.exp - int64(f.sem.Precision()) + 1
	n := bigFromMantissa(f.mant)
	var d decimal.Decimal
	if k >= 0 {
		n.Lsh(n, uint(k))
		d = decimal.NewFromBigInt(n, 0)
	} else {
		n.Mul(n, new(big.Int).Exp(bigFive, big.NewInt(mathutil.Abs(k)), nil))
		d = decimal.NewFromBigInt(n, int32(k))
	}
	if f.sign {
		d = d.Neg()
	}
	return d, nil
}

// String returns a decimal representation of the value: the exact decimal
// expansion for finite values, NaN/+Inf/-Inf otherwise.
func (f Float) String() string {
	switch f.cat {
	case CategoryNaN:
		return "NaN"
	case CategoryInfinity:
		if f.sign {
			return "-Inf"
		}
		return "+Inf"
	case CategoryZero:
		if f.sign {
			return "-0"
		}
		return "0"
	}
	d, _ := f.Decimal()
	return d.String()
}
