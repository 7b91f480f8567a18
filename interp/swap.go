// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"encoding/binary"
	"math/bits"

	"gopoly/math/vec"
)

// SwapEndian reverses the byte order of every multi-byte field of the
// model records at pos, in place, recursing into sub-models. It is
// the one-time correction applied when a buffer's encoding does not
// match the reader's expectation; applying it twice restores the
// original bytes. The caller must hold exclusive access to data.
func SwapEndian(data []byte, pos int) error {
	var nest nesting
	st := &swapState{nest: &nest}
	_, err := iterate(data, pos, st)
	return err
}

type swapState struct {
	baseOps
	nest *nesting
}

func swap16(data []byte, pos int) {
	v := binary.LittleEndian.Uint16(data[pos:])
	binary.LittleEndian.PutUint16(data[pos:], bits.ReverseBytes16(v))
}

func swap32(data []byte, pos int) {
	v := binary.LittleEndian.Uint32(data[pos:])
	binary.LittleEndian.PutUint32(data[pos:], bits.ReverseBytes32(v))
}

func swapVec(data []byte, pos int) {
	swap32(data, pos)
	swap32(data, pos+4)
	swap32(data, pos+8)
}

// translateOpcode swaps the opcode in place so dispatch sees the
// corrected value.
func (s *swapState) translateOpcode(data []byte, pos int, op uint16) uint16 {
	op = bits.ReverseBytes16(op)
	binary.LittleEndian.PutUint16(data[pos:], op)
	return op
}

// subCount reads the count in its stored, not yet swapped order. The
// dispatcher needs it to size the record before the handler below
// swaps it.
func (s *swapState) subCount(data []byte, pos int) int {
	return int(int16(bits.ReverseBytes16(binary.LittleEndian.Uint16(data[pos+2:]))))
}

func (s *swapState) defPoints(data []byte, pos, n int) error {
	swap16(data, pos+2)
	for i := 0; i < n; i++ {
		swapVec(data, pos+4+i*vec.Size)
	}
	return nil
}

func (s *swapState) defPStart(data []byte, pos, n int) error {
	swap16(data, pos+2)
	swap16(data, pos+4)
	for i := 0; i < n; i++ {
		swapVec(data, pos+8+i*vec.Size)
	}
	return nil
}

func (s *swapState) flatPoly(data []byte, pos, n int) error {
	swap16(data, pos+2)
	swapVec(data, pos+4)
	swapVec(data, pos+16)
	swap16(data, pos+28)
	for i := 0; i < n; i++ {
		swap16(data, pos+30+i*2)
	}
	return nil
}

func (s *swapState) tmapPoly(data []byte, pos, n int) error {
	swap16(data, pos+2)
	swapVec(data, pos+4)
	swapVec(data, pos+16)
	swap16(data, pos+28)
	for i := 0; i < n; i++ {
		swap16(data, pos+30+i*2)
	}
	// l is filled in at render time, only u and v carry data
	uvlPos := pos + uvlOffset(n)
	for i := 0; i < n; i++ {
		swap32(data, uvlPos+i*12)
		swap32(data, uvlPos+i*12+4)
	}
	return nil
}

func (s *swapState) sortNorm(data []byte, pos int) error {
	swapVec(data, pos+4)
	swapVec(data, pos+16)
	swap16(data, pos+28)
	swap16(data, pos+30)
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	if _, err := iterate(data, pos+int(getWord(data, pos+28)), s); err != nil {
		return err
	}
	_, err := iterate(data, pos+int(getWord(data, pos+30)), s)
	return err
}

func (s *swapState) rodBM(data []byte, pos int) error {
	swap16(data, pos+2)
	swapVec(data, pos+4)
	swap32(data, pos+16)
	swapVec(data, pos+20)
	swap32(data, pos+32)
	return nil
}

func (s *swapState) subCall(data []byte, pos int) error {
	swap16(data, pos+2)
	swapVec(data, pos+4)
	swap16(data, pos+16)
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	_, err := iterate(data, pos+int(getWord(data, pos+16)), s)
	return err
}

func (s *swapState) glow(data []byte, pos int) error {
	swap16(data, pos+2)
	return nil
}
