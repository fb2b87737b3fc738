// Copyright 2021 Aleksandr Demakin. All rights reserved.

package apfloat

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJSONMode(mode int, f func()) {
	old := JSONMode
	JSONMode = mode
	defer func() { JSONMode = old }()
	f()
}

func TestJSONString(t *testing.T) {
	a := assert.New(t)
	data, err := json.Marshal(FromFloat64(FP64, 1.5))
	a.NoError(err)
	a.Equal(`"1.5"`, string(data))

	f := Zero(FP64, false)
	a.NoError(json.Unmarshal([]byte(`"-2.5"`), &f))
	a.Equal(-2.5, f.Float64())

	a.NoError(json.Unmarshal([]byte(`"+Inf"`), &f))
	a.True(f.IsInf())

	var bare Float
	a.Error(json.Unmarshal([]byte(`"1.5"`), &bare))
}

func TestJSONBits(t *testing.T) {
	a := assert.New(t)
	withJSONMode(JSONModeBits, func() {
		data, err := json.Marshal(FromFloat64(FP16, 1))
		a.NoError(err)
		a.Equal("15360", string(data)) // 0x3c00

		f := Zero(FP16, false)
		a.NoError(json.Unmarshal([]byte("15360"), &f))
		a.Equal(1.0, f.Float64())

		_, err = json.Marshal(FromFloat64(FP128, 1))
		a.Error(err)
	})
}

func TestJSONObject(t *testing.T) {
	a := assert.New(t)
	values := []Float{
		FromFloat64(FP64, 1.5),
		FromFloat64(FP32, -math.Pi),
		FromFloat64(FP128, 0.1),
		Zero(FP16, true),
		Inf(FP64, true),
		NaN(BF16, false),
		MaxFinite(FP256, false),
	}
	withJSONMode(JSONModeObject, func() {
		for _, v := range values {
			data, err := json.Marshal(v)
			require.NoError(t, err)
			// The object form is self-describing: no receiver setup needed.
			var f Float
			require.NoError(t, json.Unmarshal(data, &f))
			a.Equal(v.Semantics(), f.Semantics())
			if v.IsNaN() {
				a.True(f.IsNaN())
				continue
			}
			a.True(v.Eq(f), "%v", string(data))
			a.Equal(v.Negative(), f.Negative())
		}
	})
}

func TestJSONObjectErrors(t *testing.T) {
	a := assert.New(t)
	var f Float
	a.Error(json.Unmarshal([]byte(`{"ebits":1,"mbits":10,"cat":"zero"}`), &f))
	a.Error(json.Unmarshal([]byte(`{"ebits":8,"mbits":23,"cat":"what"}`), &f))
	a.Error(json.Unmarshal([]byte(`{"ebits":8,"mbits":23,"cat":"normal","mant":"xyz"}`), &f))
	a.Error(f.UnmarshalJSON(nil))
}
