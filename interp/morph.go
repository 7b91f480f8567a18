// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"gopoly/g3"
	"gopoly/math/vec"
)

// DrawMorphing renders the model with vertex positions taken from
// morphPoints instead of the stream, used while an object is morphing
// between shapes. Polygons are drawn without the facing test (the
// morph target may momentarily be degenerate), flat polygons as
// triangle fans, and glow records are ignored.
func DrawMorphing(data []byte, pos int, morphPoints []vec.Vec3, p DrawParams) error {
	st := &morphState{
		drawState: drawState{DrawParams: p, glowNum: -1},
		morph:     morphPoints,
	}
	_, err := iterate(data, pos, st)
	return err
}

type morphState struct {
	drawState
	morph []vec.Vec3
}

func (s *morphState) rotateMorph(dst, n int) {
	for i := 0; i < n; i++ {
		s.Points[dst+i] = s.View.RotatePoint(s.morph[i])
	}
}

func (s *morphState) defPoints(data []byte, pos, n int) error {
	s.rotateMorph(0, n)
	return nil
}

func (s *morphState) defPStart(data []byte, pos, n int) error {
	s.rotateMorph(int(getWord(data, pos+4)), n)
	return nil
}

func (s *morphState) flatPoly(data []byte, pos, n int) error {
	color := uint8(getWord(data, pos+28))
	a := &s.Points[getWord(data, pos+30)]
	b := &s.Points[getWord(data, pos+32)]
	for i := 2; i < n; i++ {
		c := &s.Points[getWord(data, pos+30+i*2)]
		s.Canvas.FlatPoly([]*g3.Point{a, b, c}, color)
		b = c
	}
	return nil
}

func (s *morphState) tmapPoly(data []byte, pos, n int) error {
	if n > g3.MaxPointsPerPoly {
		return nil
	}
	light := s.noGlowLight(getVec(data, pos+16))
	uvlPos := pos + uvlOffset(n)
	var uvls [g3.MaxPointsPerPoly]g3.UVL
	var lights [g3.MaxPointsPerPoly]g3.LRGB
	for i := 0; i < n; i++ {
		uvls[i] = g3.UVL{
			U: getFix(data, uvlPos+i*12),
			V: getFix(data, uvlPos+i*12+4),
			L: getFix(data, uvlPos+i*12+8),
		}
		lights[i] = light
	}
	var pts [g3.MaxPointsPerPoly]*g3.Point
	s.pointRefs(data, pos, n, pts[:])
	s.Canvas.TexturedPoly(pts[:n], uvls[:n], lights[:n], s.Textures[getWord(data, pos+28)])
	return nil
}

func (s *morphState) sortNorm(data []byte, pos int) error {
	first, second := sortNormOffsets(data, pos, s.View)
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	if _, err := iterate(data, pos+first, s); err != nil {
		return err
	}
	_, err := iterate(data, pos+second, s)
	return err
}

func (s *morphState) subCall(data []byte, pos int) error {
	a := vec.ZeroAngles
	if s.Angles != nil {
		a = s.Angles[getWord(data, pos+2)]
	}
	s.View.StartInstanceAngles(getVec(data, pos+4), a)
	defer s.View.DoneInstance()
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	_, err := iterate(data, pos+int(getWord(data, pos+16)), s)
	return err
}

func (s *morphState) glow(data []byte, pos int) error {
	return nil
}
