// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"github.com/pkg/errors"
)

// MaxChunks bounds one relocation pass.
const MaxChunks = 100

// Chunk records one relative-offset field inside a SORTNORM or
// SUBCALL record so a relocation pass can correct it after the model
// data is copied into a differently aligned allocation.
type Chunk struct {
	// OldBase is the record start in the source buffer.
	OldBase int
	// NewBase is the record start in the destination buffer.
	NewBase int
	// Offset is the position of the int16 offset field within the
	// record.
	Offset int
	// Correction is filled in by the relocation pass.
	Correction int
}

// ChunkList is a fixed-capacity collection of chunks.
type ChunkList struct {
	chunks [MaxChunks]Chunk
	n      int
}

func (l *ChunkList) add(c Chunk) error {
	if l.n >= len(l.chunks) {
		return errors.Wrapf(ErrTooManyChunks, "capacity %d", len(l.chunks))
	}
	l.chunks[l.n] = c
	l.n++
	return nil
}

// Chunks returns the recorded chunks.
func (l *ChunkList) Chunks() []Chunk {
	return l.chunks[:l.n]
}

// FindChunks walks the sub-model at pos without mutating it, adds one
// chunk per embedded relative offset, and returns the byte length of
// the sub-model including its end marker. newBase is where this
// sub-model will start in the relocated buffer.
func FindChunks(data []byte, pos, newBase int, list *ChunkList) (int, error) {
	st := &chunkState{base: pos, newBase: newBase, list: list}
	end, err := iterate(data, pos, st)
	if err != nil {
		return 0, err
	}
	return end + 2 - pos, nil
}

type chunkState struct {
	baseOps
	base    int
	newBase int
	list    *ChunkList
}

func (s *chunkState) add(pos, off int) error {
	return s.list.add(Chunk{
		OldBase: pos,
		NewBase: s.newBase + (pos - s.base),
		Offset:  off,
	})
}

func (s *chunkState) sortNorm(data []byte, pos int) error {
	if err := s.add(pos, 28); err != nil {
		return err
	}
	return s.add(pos, 30)
}

func (s *chunkState) subCall(data []byte, pos int) error {
	return s.add(pos, 16)
}
