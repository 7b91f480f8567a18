// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"gopoly/g3"
	"gopoly/palette"
)

// ColorPolicy configures color sampling. The two shipped game
// variants disagree on whether SUBCALL propagates a sub-model's color
// to its parent; both behaviors are kept selectable.
type ColorPolicy struct {
	PropagateSubmodel bool
	// Palette enables closest-match reduction of sampled colors. Nil
	// reports the stored value unchanged.
	Palette *palette.Palette
}

// ModelColor returns a representative color for the model at pos: the
// color of the last viewer-facing flat polygon found, resolving
// SORTNORM records through their facing-dependent child. The data is
// only read.
func ModelColor(data []byte, pos int, view *g3.Viewer, policy ColorPolicy) (int, error) {
	var nest nesting
	return modelColor(data, pos, view, policy, &nest)
}

func modelColor(data []byte, pos int, view *g3.Viewer, policy ColorPolicy, nest *nesting) (int, error) {
	st := &colorState{view: view, policy: policy, nest: nest}
	_, err := iterate(data, pos, st)
	return st.color, err
}

type colorState struct {
	baseOps
	view   *g3.Viewer
	policy ColorPolicy
	nest   *nesting
	color  int
}

func (s *colorState) flatPoly(data []byte, pos, n int) error {
	if n > g3.MaxPointsPerPoly {
		return nil
	}
	if !s.view.NormalFacing(getVec(data, pos+4), getVec(data, pos+16)) {
		return nil
	}
	c := uint16(getWord(data, pos+28))
	if s.policy.Palette != nil {
		s.color = int(s.policy.Palette.Closest15bpp(c))
	} else {
		s.color = int(c)
	}
	return nil
}

func (s *colorState) sortNorm(data []byte, pos int) error {
	off := int(getWord(data, pos+30))
	if s.view.NormalFacing(getVec(data, pos+16), getVec(data, pos+4)) {
		off = int(getWord(data, pos+28))
	}
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	c, err := modelColor(data, pos+off, s.view, s.policy, s.nest)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

func (s *colorState) subCall(data []byte, pos int) error {
	if !s.policy.PropagateSubmodel {
		return nil
	}
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	c, err := modelColor(data, pos+int(getWord(data, pos+16)), s.view, s.policy, s.nest)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}
