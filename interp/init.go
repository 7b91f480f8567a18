// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"github.com/pkg/errors"

	"gopoly/palette"
)

// InitModel runs the one-time load validation over the model at pos
// and returns the highest texture index referenced anywhere in its
// sub-model tree, -1 if none. Polygons with fewer than 3 points are a
// corrupt asset and fail. When pal is non-nil, flat polygon colors
// are additionally rewritten in place to their closest displayable
// palette index; that mutates data and requires exclusive access. A
// model rewritten this way is drawn with DrawParams.Palette nil, the
// stored value is already an index. Draw-time conversion via
// DrawParams.Palette is the alternative; use one or the other.
func InitModel(data []byte, pos int, pal *palette.Palette) (int16, error) {
	var nest nesting
	return initModelSub(data, pos, -1, pal, &nest)
}

func initModelSub(data []byte, pos int, highest int16, pal *palette.Palette, nest *nesting) (int16, error) {
	if err := nest.enter(); err != nil {
		return highest, err
	}
	defer nest.leave()
	st := &initState{highest: highest, pal: pal, nest: nest}
	_, err := iterate(data, pos, st)
	return st.highest, err
}

type initState struct {
	baseOps
	highest int16
	pal     *palette.Palette
	nest    *nesting
}

func (s *initState) flatPoly(data []byte, pos, n int) error {
	if n < 3 {
		return errors.Wrapf(ErrDegeneratePolygon, "flat polygon with %d points at offset %#x", n, pos)
	}
	if s.pal != nil {
		c := uint16(getWord(data, pos+28))
		putWord(data, pos+28, int16(s.pal.Closest15bpp(c)))
	}
	return nil
}

func (s *initState) tmapPoly(data []byte, pos, n int) error {
	if n < 3 {
		return errors.Wrapf(ErrDegeneratePolygon, "textured polygon with %d points at offset %#x", n, pos)
	}
	if t := getWord(data, pos+28); t > s.highest {
		s.highest = t
	}
	return nil
}

func (s *initState) sortNorm(data []byte, pos int) error {
	h, err := initModelSub(data, pos+int(getWord(data, pos+28)), s.highest, s.pal, s.nest)
	if err != nil {
		return err
	}
	h, err = initModelSub(data, pos+int(getWord(data, pos+30)), h, s.pal, s.nest)
	if err != nil {
		return err
	}
	s.highest = h
	return nil
}

func (s *initState) subCall(data []byte, pos int) error {
	h, err := initModelSub(data, pos+int(getWord(data, pos+16)), s.highest, s.pal, s.nest)
	if err != nil {
		return err
	}
	s.highest = h
	return nil
}
