// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// state is the behavior a traversal substitutes into the dispatch
// loop: one handler per opcode plus the two accessors the loop needs
// before it can size a record. Behaviors embed baseOps and override
// only the handlers they care about.
type state interface {
	// translateOpcode may normalize the raw opcode before dispatch.
	translateOpcode(data []byte, pos int, op uint16) uint16
	// subCount reads the declared vertex count of the record at pos.
	subCount(data []byte, pos int) int

	defPoints(data []byte, pos, n int) error
	defPStart(data []byte, pos, n int) error
	flatPoly(data []byte, pos, n int) error
	tmapPoly(data []byte, pos, n int) error
	sortNorm(data []byte, pos int) error
	rodBM(data []byte, pos int) error
	subCall(data []byte, pos int) error
	glow(data []byte, pos int) error

	// unknown fires for an unrecognized opcode.
	unknown(data []byte, pos int, op uint16) error
}

// baseOps ignores every opcode and fails on unknown ones.
type baseOps struct{}

func (baseOps) translateOpcode(data []byte, pos int, op uint16) uint16 {
	return op
}

func (baseOps) subCount(data []byte, pos int) int {
	return int(getWord(data, pos+2))
}

func (baseOps) defPoints(data []byte, pos, n int) error { return nil }
func (baseOps) defPStart(data []byte, pos, n int) error { return nil }
func (baseOps) flatPoly(data []byte, pos, n int) error  { return nil }
func (baseOps) tmapPoly(data []byte, pos, n int) error  { return nil }
func (baseOps) sortNorm(data []byte, pos int) error     { return nil }
func (baseOps) rodBM(data []byte, pos int) error        { return nil }
func (baseOps) subCall(data []byte, pos int) error      { return nil }
func (baseOps) glow(data []byte, pos int) error         { return nil }

func (baseOps) unknown(data []byte, pos int, op uint16) error {
	return errors.Wrapf(ErrInvalidModel, "opcode %#04x at offset %#x", op, pos)
}

// iterate runs the dispatch loop over the records starting at pos and
// returns the offset of the end-of-stream marker. Callers that need
// the offset past the marker add its 2 bytes themselves.
func iterate(data []byte, pos int, st state) (int, error) {
	for {
		raw := binary.LittleEndian.Uint16(data[pos:])
		if raw == uint16(opEOF) {
			return pos, nil
		}
		op := opcode(st.translateOpcode(data, pos, raw))
		var n int
		var err error
		switch op {
		case opDefPoints:
			n = st.subCount(data, pos)
			err = st.defPoints(data, pos, n)
		case opDefPStart:
			n = st.subCount(data, pos)
			err = st.defPStart(data, pos, n)
		case opFlatPoly:
			n = st.subCount(data, pos)
			err = st.flatPoly(data, pos, n)
		case opTmapPoly:
			n = st.subCount(data, pos)
			err = st.tmapPoly(data, pos, n)
		case opSortNorm:
			err = st.sortNorm(data, pos)
		case opRodBM:
			err = st.rodBM(data, pos)
		case opSubCall:
			err = st.subCall(data, pos)
		case opGlow:
			err = st.glow(data, pos)
		default:
			return pos, st.unknown(data, pos, raw)
		}
		if err != nil {
			return pos, err
		}
		pos += recordSize(op, n)
	}
}
