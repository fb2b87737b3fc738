// Copyright 2021 Aleksandr Demakin. All rights reserved.

// Package mathutil contains small bit helpers shared by the float engine.
package mathutil

import (
	"golang.org/x/exp/constraints"
)

// Mask64 returns a value with the low bits bits set.
// Mask64(64) is all ones.
func Mask64(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
