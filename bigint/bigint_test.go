// Copyright 2021 Aleksandr Demakin. All rights reserved.

package bigint

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bigFromU128(u U128) *big.Int {
	result := new(big.Int).SetUint64(u.Word(1))
	result.Lsh(result, 64)
	return result.Or(result, new(big.Int).SetUint64(u.Word(0)))
}

func u128FromBig(b *big.Int) U128 {
	lo := new(big.Int).And(b, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(b, 64)
	return FromWords([2]uint64{lo.Uint64(), new(big.Int).And(hi, new(big.Int).SetUint64(^uint64(0))).Uint64()})
}

func TestShl(t *testing.T) {
	a := assert.New(t)
	x := FromUint64[[4]uint64](0xff00ff)
	a.Equal(uint64(0xff00ff), x.Word(0))
	x.Shl(17)
	a.Equal(uint64(0x1fe01fe0000), x.Word(0))
	x.Shl(17)
	a.Equal(uint64(0x3fc03fc00000000), x.Word(0))
	x.Shl(64)
	a.Equal(uint64(0x3fc03fc00000000), x.Word(1))
	a.Equal(uint64(0), x.Word(0))
}

func TestShr(t *testing.T) {
	a := assert.New(t)
	x := FromUint64[[4]uint64](0xff00ff)
	x.Shl(128)
	a.Equal(uint64(0xff00ff), x.Word(2))
	x.Shr(17)
	a.Equal(uint64(0x807f800000000000), x.Word(1))
	x.Shr(17)
	a.Equal(uint64(0x03fc03fc0000000), x.Word(1))
	x.Shr(64)
	a.Equal(uint64(0x03fc03fc0000000), x.Word(0))
}

func TestShlShrRoundTrip(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 500; i++ {
		x := FromWords([2]uint64{rng.Uint64(), rng.Uint64()})
		n := rng.Intn(128)
		masked := x
		masked.Mask(128 - n)
		y := x
		y.Shl(n)
		y.Shr(n)
		a.Equal(masked, y, "n=%d x=%v", n, x)
	}
}

func TestAddBasic(t *testing.T) {
	a := assert.New(t)
	x := FromUint64[[2]uint64](0xffffffff00000000)
	y := FromUint64[[2]uint64](0xffffffff)
	z := FromUint64[[2]uint64](0xf)
	a.False(x.Add(y))
	a.Equal(uint64(0xffffffffffffffff), x.Word(0))
	// The carry ripples into the high word without leaving the value.
	a.False(x.Add(z))
	a.Equal(uint64(0xe), x.Word(0))
	a.Equal(uint64(0x1), x.Word(1))
}

func TestAddOverflow(t *testing.T) {
	a := assert.New(t)
	// A single-word value wraps and reports it.
	x := FromUint64[[1]uint64](0xffffffffffffffff)
	a.True(x.Add(One[[1]uint64]()))
	a.Equal(uint64(0), x.Word(0))
	// The same operands fit in two words.
	y := FromUint64[[2]uint64](0xffffffffffffffff)
	a.False(y.Add(One[[2]uint64]()))
	a.Equal(uint64(0), y.Word(0))
	a.Equal(uint64(1), y.Word(1))
}

func TestSubBasic(t *testing.T) {
	a := assert.New(t)
	x := FromWords([2]uint64{0x0, 0x1})
	a.False(x.Sub(One[[2]uint64]()))
	a.Equal(uint64(0xffffffffffffffff), x.Word(0))
	a.Equal(uint64(0), x.Word(1))

	y := FromUint64[[2]uint64](0xffffffffffffffff)
	a.False(y.Sub(One[[2]uint64]()))
	a.Equal(uint64(0xfffffffffffffffe), y.Word(0))

	z := FromUint64[[2]uint64](0)
	a.True(z.Sub(One[[2]uint64]()))
}

func TestMaskBasic(t *testing.T) {
	a := assert.New(t)
	x := FromWords([3]uint64{0b11111, 0b10101010101010, 0b111})
	x.Mask(69)
	a.Equal(uint64(0b11111), x.Word(0)) // no change
	a.Equal(uint64(0b01010), x.Word(1)) // keep the bottom 5 bits
	a.Equal(uint64(0b0), x.Word(2))     // zero
}

func TestMsbIndex(t *testing.T) {
	a := assert.New(t)
	a.Equal(64, FromUint64[[6]uint64](0xffffffff00000000).MsbIndex())
	a.Equal(0, FromUint64[[6]uint64](0).MsbIndex())
	a.Equal(1, FromUint64[[6]uint64](1).MsbIndex())
	for i := 0; i < 384; i++ {
		x := One[[6]uint64]()
		x.Shl(i)
		a.Equal(i+1, x.MsbIndex())
	}
}

func TestRandomAgainstBig(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	for i := 0; i < 500; i++ {
		x := FromWords([2]uint64{rng.Uint64(), rng.Uint64()})
		y := FromWords([2]uint64{rng.Uint64(), rng.Uint64()})
		bx, by := bigFromU128(x), bigFromU128(y)

		sum := x
		carry := sum.Add(y)
		bsum := new(big.Int).Add(bx, by)
		a.Equal(bsum.Cmp(mod) >= 0, carry)
		a.Equal(u128FromBig(new(big.Int).Mod(bsum, mod)), sum)

		diff := x
		borrow := diff.Sub(y)
		bdiff := new(big.Int).Sub(bx, by)
		a.Equal(bdiff.Sign() < 0, borrow)
		a.Equal(u128FromBig(new(big.Int).Mod(bdiff, mod)), diff)

		prod := x
		over := prod.Mul(y)
		bprod := new(big.Int).Mul(bx, by)
		a.Equal(bprod.Cmp(mod) >= 0, over)
		a.Equal(u128FromBig(new(big.Int).Mod(bprod, mod)), prod)

		a.Equal(bx.Cmp(by), x.Cmp(y))
	}
}

func TestDivMod(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 200; i++ {
		x := FromWords([2]uint64{rng.Uint64(), rng.Uint64()})
		y := FromWords([2]uint64{rng.Uint64(), uint64(rng.Intn(2)) * rng.Uint64()})
		if y.IsZero() {
			y = One[[2]uint64]()
		}
		q, r := DivMod(x, y)
		bq, br := new(big.Int).QuoRem(bigFromU128(x), bigFromU128(y), new(big.Int))
		a.Equal(u128FromBig(bq), q)
		a.Equal(u128FromBig(br), r)
	}
	a.Panics(func() { DivMod(One[[2]uint64](), U128{}) })
}

func TestUint64Contract(t *testing.T) {
	a := assert.New(t)
	x := FromUint64[[2]uint64](42)
	a.Equal(uint64(42), x.Uint64())
	x.Shl(64)
	a.Panics(func() { x.Uint64() })
}

func TestTruncateExtend(t *testing.T) {
	a := assert.New(t)
	x := FromWords([4]uint64{1, 2, 3, 4})
	tr := Truncate[[2]uint64](x)
	a.Equal(uint64(1), tr.Word(0))
	a.Equal(uint64(2), tr.Word(1))
	ex := Extend[[6]uint64](tr)
	a.Equal(uint64(1), ex.Word(0))
	a.Equal(uint64(2), ex.Word(1))
	a.Equal(uint64(0), ex.Word(5))
	a.Panics(func() { Truncate[[6]uint64](tr) })
	a.Panics(func() { Extend[[2]uint64](x) })
}

func TestOnes(t *testing.T) {
	a := assert.New(t)
	x := Ones[[2]uint64](70)
	a.Equal(uint64(0xffffffffffffffff), x.Word(0))
	a.Equal(uint64(0x3f), x.Word(1))
	a.Equal(70, x.MsbIndex())
}

func TestLossForTruncation(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v    uint64
		bit  int
		loss Loss
	}{
		{0b10000000, 3, LossExactlyZero},
		{0b10000111, 3, LossMoreThanHalf},
		{0b10000100, 3, LossExactlyHalf},
		{0b10000001, 3, LossLessThanHalf},
		{0, 100, LossExactlyZero},
		{1, 500, LossLessThanHalf},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x := FromUint64[[6]uint64](test.v)
			a.Equal(test.loss, x.LossForTruncation(test.bit))
			shifted := x
			a.Equal(test.loss, shifted.ShrLoss(test.bit))
			want := x
			want.Shr(test.bit)
			a.Equal(want, shifted)
		})
	}
}

func TestLossCombine(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		msb, lsb, res Loss
	}{
		{LossExactlyZero, LossExactlyZero, LossExactlyZero},
		{LossExactlyZero, LossLessThanHalf, LossLessThanHalf},
		{LossExactlyHalf, LossMoreThanHalf, LossMoreThanHalf},
		{LossExactlyHalf, LossExactlyZero, LossExactlyHalf},
		{LossLessThanHalf, LossMoreThanHalf, LossLessThanHalf},
		{LossMoreThanHalf, LossLessThanHalf, LossMoreThanHalf},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, test.msb.Combine(test.lsb))
		})
	}
}

func TestLossInvert(t *testing.T) {
	a := assert.New(t)
	a.Equal(LossMoreThanHalf, LossLessThanHalf.Invert())
	a.Equal(LossLessThanHalf, LossMoreThanHalf.Invert())
	a.Equal(LossExactlyHalf, LossExactlyHalf.Invert())
	a.Equal(LossExactlyZero, LossExactlyZero.Invert())
}
