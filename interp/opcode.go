// SPDX-License-Identifier: GPL-2.0-or-later

// Package interp is the generic interpreter for serialized polygon
// model data: a little-endian stream of opcode-tagged records forming
// point lists, polygons, glow state, normal-sorted subtrees and
// recursive sub-model references. One dispatch loop drives every
// consumer (rendering, color sampling, endian conversion, relocation
// discovery, load-time validation), so all of them agree on record
// boundaries and traversal order.
package interp

import (
	"encoding/binary"

	"gopoly/fix"
	"gopoly/math/vec"
)

type opcode uint16

const (
	opEOF       opcode = iota // end of stream
	opDefPoints               // define points starting at index 0
	opFlatPoly                // flat-shaded polygon
	opTmapPoly                // texture-mapped polygon
	opSortNorm                // normal-sorted binary subtree
	opRodBM                   // rod billboard
	opSubCall                 // sub-model reference
	opDefPStart               // define points at a given start index
	opGlow                    // glow value for the next polygon
)

// Record layouts, byte offsets from the record start. Every field is
// little-endian.
//
//	DEFPOINTS:  0 op, 2 count n, 4 n vectors
//	DEFP_START: 0 op, 2 count n, 4 start index, 8 n vectors
//	FLATPOLY:   0 op, 2 count n, 4 point, 16 normal, 28 color,
//	            30 n indices (odd-rounded slots)
//	TMAPPOLY:   0 op, 2 count n, 4 point, 16 normal, 28 texture,
//	            30 n indices (odd-rounded slots), then n uvl triples
//	SORTNORM:   0 op, 4 normal, 16 point, 28 front offset,
//	            30 back offset
//	RODBM:      0 op, 2 texture, 4 top, 16 top width, 20 bottom,
//	            32 bottom width
//	SUBCALL:    0 op, 2 angle index, 4 translation, 16 offset
//	GLOW:       0 op, 2 glow index

// indexSlots returns how many int16 slots the vertex index array of
// an n vertex polygon occupies. The encoder rounds the slot count up
// to odd so the data following the array stays 4-aligned.
func indexSlots(n int) int {
	return (n &^ 1) + 1
}

// uvlOffset returns the offset of the uvl array within a TMAPPOLY
// record of n vertices.
func uvlOffset(n int) int {
	return 30 + indexSlots(n)*2
}

// recordSize returns the byte length of a record. n is the declared
// vertex count for the opcodes that carry one and ignored otherwise.
// The stream stores no explicit lengths; this must match the encoder
// exactly or the cursor desynchronizes.
func recordSize(op opcode, n int) int {
	switch op {
	case opDefPoints:
		return 4 + n*vec.Size
	case opDefPStart:
		return 8 + n*vec.Size
	case opFlatPoly:
		return 30 + indexSlots(n)*2
	case opTmapPoly:
		return 30 + indexSlots(n)*2 + n*12
	case opSortNorm:
		return 32
	case opRodBM:
		return 36
	case opSubCall:
		return 20
	case opGlow:
		return 4
	}
	return 0
}

func getWord(data []byte, pos int) int16 {
	return int16(binary.LittleEndian.Uint16(data[pos:]))
}

func putWord(data []byte, pos int, v int16) {
	binary.LittleEndian.PutUint16(data[pos:], uint16(v))
}

func getFix(data []byte, pos int) fix.Fix {
	return fix.Fix(binary.LittleEndian.Uint32(data[pos:]))
}

func getVec(data []byte, pos int) vec.Vec3 {
	return vec.Vec3{
		X: getFix(data, pos),
		Y: getFix(data, pos+4),
		Z: getFix(data, pos+8),
	}
}
