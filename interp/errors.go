// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidModel marks an unrecognized opcode. The format has no
	// skip lengths, so the traversal cannot resynchronize and aborts.
	ErrInvalidModel = errors.New("invalid polygon model")
	// ErrNestingTooDeep marks a model whose sub-model references nest
	// past the supported ceiling, usually a corrupt or cyclic stream.
	ErrNestingTooDeep = errors.New("polygon model nested too deeply")
	// ErrDegeneratePolygon marks a polygon record with fewer than 3
	// points.
	ErrDegeneratePolygon = errors.New("polygon has fewer than 3 points")
	// ErrTooManyChunks marks a relocation list that ran out of room.
	ErrTooManyChunks = errors.New("too many relocation chunks")
)

// maxNesting bounds recursive traversal so malformed input fails with
// an error instead of exhausting the stack.
const maxNesting = 1000

type nesting struct {
	depth int
}

func (d *nesting) enter() error {
	d.depth++
	if d.depth > maxNesting {
		return errors.Wrapf(ErrNestingTooDeep, "depth %d", d.depth)
	}
	return nil
}

func (d *nesting) leave() {
	d.depth--
}
