// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"bytes"
	"errors"
	"testing"

	"gopoly/fix"
	"gopoly/g3"
	"gopoly/math/vec"
)

// fullModel builds a stream exercising every opcode, including
// recursion through SORTNORM and SUBCALL.
func fullModel() []byte {
	var b builder
	b.defPoints(origin, vec.Vec3{X: fix.One})
	b.defPStart(2, vec.Vec3{Y: fix.One})
	b.flatPoly(origin, facingNrm, 5, 0, 1, 2)
	b.tmapPoly(origin, facingNrm, 1, []int16{0, 1, 2, 1}, []g3.UVL{
		{U: 1, V: 2, L: 3}, {U: 4, V: 5, L: 6}, {U: 7, V: 8, L: 9}, {U: 10, V: 11, L: 12},
	})
	b.rodBM(2, vec.Vec3{Y: fix.One}, fix.One/2, origin, fix.One/4)
	b.glow(1)
	sn := b.sortNorm(facingNrm, origin)
	sc := b.subCall(0, vec.Vec3{X: fix.One})
	b.eof()
	front := b.pos()
	b.flatPoly(origin, facingNrm, 1, 0, 1, 2)
	b.eof()
	back := b.pos()
	b.flatPoly(origin, facingNrm, 2, 0, 1, 2)
	b.eof()
	sub := b.pos()
	b.tmapPoly(origin, facingNrm, 3, []int16{0, 1, 2}, []g3.UVL{
		{U: 1, V: 2}, {U: 3, V: 4}, {U: 5, V: 6},
	})
	b.eof()
	b.patchWord(sn+28, int16(front-sn))
	b.patchWord(sn+30, int16(back-sn))
	b.patchWord(sc+16, int16(sub-sc))
	return b.buf
}

func TestSwapRoundTrip(t *testing.T) {
	orig := fullModel()
	data := append([]byte(nil), orig...)

	if err := SwapEndian(data, 0); err != nil {
		t.Fatalf("first swap: %v", err)
	}
	if bytes.Equal(data, orig) {
		t.Fatalf("swap left the buffer unchanged")
	}
	if err := SwapEndian(data, 0); err != nil {
		t.Fatalf("second swap: %v", err)
	}
	if !bytes.Equal(data, orig) {
		t.Fatalf("double swap did not restore the original bytes")
	}
}

func TestSwapKeepsUvlLight(t *testing.T) {
	var b builder
	b.tmapPoly(origin, facingNrm, 0, []int16{0, 1, 2}, []g3.UVL{
		{U: 1, V: 2, L: 0x01020304}, {U: 3, V: 4, L: 0x01020304}, {U: 5, V: 6, L: 0x01020304},
	})
	b.eof()
	data := append([]byte(nil), b.buf...)

	if err := SwapEndian(data, 0); err != nil {
		t.Fatalf("SwapEndian: %v", err)
	}
	// l slots are render-time scratch and keep their stored order
	uvlPos := uvlOffset(3)
	for i := 0; i < 3; i++ {
		if got := getFix(data, uvlPos+i*12+8); got != 0x01020304 {
			t.Errorf("uvl[%d].l = %#x, want %#x", i, got, 0x01020304)
		}
	}
}

func TestSwapRecursionCeiling(t *testing.T) {
	var b builder
	b.subCall(0, origin)
	b.eof()
	data := append([]byte(nil), b.buf...)
	err := SwapEndian(data, 0)
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("err = %v, want ErrNestingTooDeep", err)
	}
}
