// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeString
)

const (
	// JSONModeString produces decimal strings, like `"1234.5678"`.
	// Unmarshaling needs a receiver that already carries a format.
	JSONModeString = iota
	// JSONModeObject produces a self-describing object with the format,
	// sign, exponent, and a hex mantissa.
	JSONModeObject
	// JSONModeBits produces the raw encoding as an integer.
	// Only formats up to 64 bits wide can be marshaled this way.
	JSONModeBits
)

type jsonFloat struct {
	EBits int    `json:"ebits"`
	MBits int    `json:"mbits"`
	Cat   string `json:"cat"`
	Neg   bool   `json:"neg"`
	Exp   int64  `json:"exp,omitempty"`
	Mant  string `json:"mant,omitempty"`
}

// MarshalJSON marshals the value according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (f Float) MarshalJSON() ([]byte, error) {
	switch JSONMode {
	case JSONModeObject:
		obj := jsonFloat{
			EBits: f.sem.ExpBits(),
			MBits: f.sem.MantBits(),
			Cat:   f.cat.String(),
			Neg:   f.sign,
		}
		if f.cat == CategoryNormal {
			obj.Exp = f.exp
			obj.Mant = "0x" + bigFromMantissa(f.mant).Text(16)
		}
		return json.Marshal(obj)
	case JSONModeBits:
		if f.sem.Width() > 64 {
			return nil, fmt.Errorf("format is %d bits wide, does not fit a bit pattern", f.sem.Width())
		}
		return []byte(strconv.FormatUint(f.Bits(), 10)), nil
	default: // marshal as a string
		var builder strings.Builder
		builder.WriteRune('"')
		builder.WriteString(f.String())
		builder.WriteRune('"')
		return []byte(builder.String()), nil
	}
}

// UnmarshalJSON unmarshals a string, a bit pattern, or an object into a value.
// String and bit pattern forms reuse the receiver's format, so the receiver
// must be initialized, e.g. with Zero, before unmarshaling.
func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty json")
	}
	switch data[0] {
	case '{':
		var obj jsonFloat
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		return f.fromJSONObject(obj)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if f.sem.ebits == 0 {
			return fmt.Errorf("unmarshaling a string needs an initialized receiver")
		}
		parsed, err := FromString(f.sem, s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	default:
		if f.sem.ebits == 0 {
			return fmt.Errorf("unmarshaling a bit pattern needs an initialized receiver")
		}
		if f.sem.Width() > 64 {
			return fmt.Errorf("format is %d bits wide, does not fit a bit pattern", f.sem.Width())
		}
		bits, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return err
		}
		*f = FromBits(f.sem, f.sem, bits)
		return nil
	}
}

func (f *Float) fromJSONObject(obj jsonFloat) error {
	if obj.EBits < minExpBits || obj.EBits > maxExpBits {
		return fmt.Errorf("bad exponent width %d", obj.EBits)
	}
	if obj.MBits < 1 || obj.MBits+1 > maxPrecision {
		return fmt.Errorf("bad mantissa width %d", obj.MBits)
	}
	sem := NewSemantics(obj.EBits, obj.MBits)
	switch obj.Cat {
	case CategoryZero.String():
		*f = Zero(sem, obj.Neg)
	case CategoryInfinity.String():
		*f = Inf(sem, obj.Neg)
	case CategoryNaN.String():
		*f = NaN(sem, obj.Neg)
	case CategoryNormal.String():
		n, ok := new(big.Int).SetString(strings.TrimPrefix(obj.Mant, "0x"), 16)
		if !ok {
			return fmt.Errorf("bad mantissa %q", obj.Mant)
		}
		if n.BitLen() > mantissaBits {
			return fmt.Errorf("mantissa %q is too wide", obj.Mant)
		}
		v := New(sem, obj.Neg, obj.Exp, mantissaFromBig(n))
		v.Normalize(RoundNearestTiesToEven, LossExactlyZero)
		*f = v
	default:
		return fmt.Errorf("bad category %q", obj.Cat)
	}
	return nil
}
