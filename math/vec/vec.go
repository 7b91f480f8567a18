// SPDX-License-Identifier: GPL-2.0-or-later

// Package vec provides the fixed-point vectors, angles and rotation
// matrices that polygon model data is expressed in.
package vec

import (
	"github.com/chewxy/math32"

	"gopoly/fix"
)

// Vec3 is a fixed-point 3-vector. On the wire it is three consecutive
// little-endian 16.16 values, 12 bytes total.
type Vec3 struct {
	X, Y, Z fix.Fix
}

// Size is the serialized size of a Vec3 in bytes.
const Size = 12

// Angles holds pitch, bank and heading as binary angles.
type Angles struct {
	P, B, H fix.Ang
}

// ZeroAngles is the identity orientation.
var ZeroAngles = Angles{}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X + b.X,
		Y: a.Y + b.Y,
		Z: a.Z + b.Z,
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X - b.X,
		Y: a.Y - b.Y,
		Z: a.Z - b.Z,
	}
}

// Dot returns a dot b, accumulated in 64 bit before renormalizing.
func Dot(a, b Vec3) fix.Fix {
	d := int64(a.X)*int64(b.X) + int64(a.Y)*int64(b.Y) + int64(a.Z)*int64(b.Z)
	return fix.Fix(d >> 16)
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: fix.Mul(a.Y, b.Z) - fix.Mul(a.Z, b.Y),
		Y: fix.Mul(a.Z, b.X) - fix.Mul(a.X, b.Z),
		Z: fix.Mul(a.X, b.Y) - fix.Mul(a.Y, b.X),
	}
}

// Scale returns the vector multiplied by the scalar s
func (v Vec3) Scale(s fix.Fix) Vec3 {
	return Vec3{
		X: fix.Mul(v.X, s),
		Y: fix.Mul(v.Y, s),
		Z: fix.Mul(v.Z, s),
	}
}

// Length returns the length of the vector
func (v Vec3) Length() fix.Fix {
	x := v.X.Float32()
	y := v.Y.Float32()
	z := v.Z.Float32()
	return fix.FromFloat32(math32.Sqrt(x*x + y*y + z*z))
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{
		X: fix.Div(v.X, l),
		Y: fix.Div(v.Y, l),
		Z: fix.Div(v.Z, l),
	}
}

// Equal returns a == b
func Equal(a, b Vec3) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

// Matrix is a rotation matrix with row basis vectors: R is the right
// vector, U the up vector, F the forward vector.
type Matrix struct {
	R, U, F Vec3
}

// Identity is the identity rotation.
var Identity = Matrix{
	R: Vec3{X: fix.One},
	U: Vec3{Y: fix.One},
	F: Vec3{Z: fix.One},
}

// Rotate returns m * v.
func (m Matrix) Rotate(v Vec3) Vec3 {
	return Vec3{
		X: Dot(m.R, v),
		Y: Dot(m.U, v),
		Z: Dot(m.F, v),
	}
}

// TransposeRotate returns transpose(m) * v, the inverse rotation for
// an orthonormal m.
func (m Matrix) TransposeRotate(v Vec3) Vec3 {
	return Vec3{
		X: Dot(Vec3{m.R.X, m.U.X, m.F.X}, v),
		Y: Dot(Vec3{m.R.Y, m.U.Y, m.F.Y}, v),
		Z: Dot(Vec3{m.R.Z, m.U.Z, m.F.Z}, v),
	}
}

// Transpose returns the transposed matrix, the inverse rotation for
// an orthonormal m.
func Transpose(m Matrix) Matrix {
	return Matrix{
		R: Vec3{m.R.X, m.U.X, m.F.X},
		U: Vec3{m.R.Y, m.U.Y, m.F.Y},
		F: Vec3{m.R.Z, m.U.Z, m.F.Z},
	}
}

// Mul returns a * b.
func Mul(a, b Matrix) Matrix {
	col := func(x, y, z fix.Fix) Vec3 { return Vec3{x, y, z} }
	bx := col(b.R.X, b.U.X, b.F.X)
	by := col(b.R.Y, b.U.Y, b.F.Y)
	bz := col(b.R.Z, b.U.Z, b.F.Z)
	row := func(r Vec3) Vec3 {
		return Vec3{Dot(r, bx), Dot(r, by), Dot(r, bz)}
	}
	return Matrix{R: row(a.R), U: row(a.U), F: row(a.F)}
}

// AnglesToMatrix builds the rotation matrix for the given pitch, bank
// and heading.
func AnglesToMatrix(a Angles) Matrix {
	sp, cp := fix.SinCos(a.P)
	sb, cb := fix.SinCos(a.B)
	sh, ch := fix.SinCos(a.H)

	sbsh := fix.Mul(sb, sh)
	cbch := fix.Mul(cb, ch)
	cbsh := fix.Mul(cb, sh)
	sbch := fix.Mul(sb, ch)

	return Matrix{
		R: Vec3{
			X: cbch + fix.Mul(sp, sbsh),
			Y: fix.Mul(sb, cp),
			Z: fix.Mul(sp, sbch) - cbsh,
		},
		U: Vec3{
			X: fix.Mul(sp, cbsh) - sbch,
			Y: fix.Mul(cb, cp),
			Z: sbsh + fix.Mul(sp, cbch),
		},
		F: Vec3{
			X: fix.Mul(sh, cp),
			Y: -sp,
			Z: fix.Mul(ch, cp),
		},
	}
}
