// SPDX-License-Identifier: GPL-2.0-or-later

// Package fix implements the 16.16 fixed-point scalar type used by
// serialized polygon model data.
package fix

import (
	"github.com/chewxy/math32"
)

// Fix is a signed 16.16 fixed-point number.
type Fix int32

// Ang is a binary angle, 65536 steps per revolution.
type Ang int16

const One Fix = 0x10000

func FromInt(i int) Fix {
	return Fix(i << 16)
}

func (f Fix) Int() int {
	return int(f >> 16)
}

func FromFloat32(v float32) Fix {
	return Fix(v * 65536)
}

func (f Fix) Float32() float32 {
	return float32(f) / 65536
}

// Mul returns a*b with a 64bit intermediate.
func Mul(a, b Fix) Fix {
	return Fix((int64(a) * int64(b)) >> 16)
}

// Div returns a/b. b must not be 0.
func Div(a, b Fix) Fix {
	return Fix((int64(a) << 16) / int64(b))
}

// MulDiv returns a*b/c without losing the intermediate precision of
// the product.
func MulDiv(a, b, c Fix) Fix {
	return Fix(int64(a) * int64(b) / int64(c))
}

const angScale = math32.Pi * 2 / 65536

// SinCos returns the sine and cosine of a as fixed-point values.
func SinCos(a Ang) (Fix, Fix) {
	s, c := math32.Sincos(float32(a) * angScale)
	return FromFloat32(s), FromFloat32(c)
}

// Sqrt returns the square root of f. Negative input yields 0.
func Sqrt(f Fix) Fix {
	if f <= 0 {
		return 0
	}
	return FromFloat32(math32.Sqrt(f.Float32()))
}
