// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"gopoly/fix"
	"gopoly/g3"
	"gopoly/math/vec"
	"gopoly/palette"
)

// DrawParams carries the collaborators one model render needs. The
// point list is shared across the whole recursive traversal of one
// call; the caller owns it and should size it g3.MaxInterpPoints.
type DrawParams struct {
	Canvas   g3.Rasterizer
	View     *g3.Viewer
	Textures []g3.Texture
	Points   []g3.Point
	// Angles are per-submodel joint angles indexed by SUBCALL
	// records. Nil means all zero.
	Angles []vec.Angles
	Light  g3.LRGB
	// Glow is the optional glow intensity table indexed by GLOW
	// records.
	Glow []fix.Fix
	// Palette enables closest-match color reduction for flat fills
	// at draw time. Nil draws the stored color value directly. A
	// model whose colors were already rewritten by InitModel must be
	// drawn with Palette nil, or every color is converted twice.
	Palette *palette.Palette
}

// DrawModel interprets the model records at pos and renders them
// through p.Canvas. Glow state starts off and is confined to this
// call.
func DrawModel(data []byte, pos int, p DrawParams) error {
	st := &drawState{DrawParams: p, glowNum: -1}
	_, err := iterate(data, pos, st)
	return err
}

type drawState struct {
	baseOps
	DrawParams
	glowNum int
	nest    nesting
}

func (s *drawState) rotate(dst int, data []byte, pos, n int) {
	for i := 0; i < n; i++ {
		s.Points[dst+i] = s.View.RotatePoint(getVec(data, pos+i*vec.Size))
	}
}

func (s *drawState) defPoints(data []byte, pos, n int) error {
	s.rotate(0, data, pos+4, n)
	return nil
}

func (s *drawState) defPStart(data []byte, pos, n int) error {
	s.rotate(int(getWord(data, pos+4)), data, pos+8, n)
	return nil
}

func (s *drawState) glowValue() (fix.Fix, bool) {
	if s.Glow == nil || s.glowNum < 0 || s.glowNum >= len(s.Glow) {
		return 0, false
	}
	return s.Glow[s.glowNum], true
}

func (s *drawState) pointRefs(data []byte, pos, n int, pts []*g3.Point) {
	for i := 0; i < n; i++ {
		pts[i] = &s.Points[getWord(data, pos+30+i*2)]
	}
}

func (s *drawState) flatPoly(data []byte, pos, n int) error {
	if n > g3.MaxPointsPerPoly {
		return nil
	}
	if !s.View.NormalFacing(getVec(data, pos+4), getVec(data, pos+16)) {
		return nil
	}
	g, glowing := s.glowValue()
	if glowing && g == g3.GlowNoFlatFill {
		return nil
	}
	var color uint8
	c := uint16(getWord(data, pos+28))
	switch {
	case glowing && g == g3.GlowFullBright:
		color = 255
	case s.Palette != nil:
		color = s.Palette.Closest15bpp(c)
	default:
		color = uint8(c)
	}
	var pts [g3.MaxPointsPerPoly]*g3.Point
	s.pointRefs(data, pos, n, pts[:])
	s.Canvas.FlatPoly(pts[:n], color)
	return nil
}

func (s *drawState) noGlowLight(normal vec.Vec3) g3.LRGB {
	negdot := -vec.Dot(s.View.Matrix.F, normal)
	c := fix.One/4 + negdot*3/4
	return g3.LRGB{
		R: fix.Mul(c, s.Light.R),
		G: fix.Mul(c, s.Light.G),
		B: fix.Mul(c, s.Light.B),
	}
}

func (s *drawState) tmapPoly(data []byte, pos, n int) error {
	if n > g3.MaxPointsPerPoly {
		return nil
	}
	normal := getVec(data, pos+16)
	if !s.View.NormalFacing(getVec(data, pos+4), normal) {
		return nil
	}
	var light g3.LRGB
	if g, glowing := s.glowValue(); glowing {
		// glow lights exactly one polygon
		s.glowNum = -1
		light = g3.LRGB{R: g, G: g, B: g}
	} else {
		light = s.noGlowLight(normal)
	}
	avg := (light.R + light.G + light.B) / 3
	uvlPos := pos + uvlOffset(n)
	var uvls [g3.MaxPointsPerPoly]g3.UVL
	var lights [g3.MaxPointsPerPoly]g3.LRGB
	for i := 0; i < n; i++ {
		uvls[i] = g3.UVL{
			U: getFix(data, uvlPos+i*12),
			V: getFix(data, uvlPos+i*12+4),
			L: avg,
		}
		lights[i] = light
	}
	var pts [g3.MaxPointsPerPoly]*g3.Point
	s.pointRefs(data, pos, n, pts[:])
	s.Canvas.TexturedPoly(pts[:n], uvls[:n], lights[:n], s.Textures[getWord(data, pos+28)])
	return nil
}

// sortNormOffsets returns the child offsets of a SORTNORM record in
// draw order, far side first.
func sortNormOffsets(data []byte, pos int, v *g3.Viewer) (int, int) {
	front := int(getWord(data, pos+28))
	back := int(getWord(data, pos+30))
	if v.NormalFacing(getVec(data, pos+16), getVec(data, pos+4)) {
		return back, front
	}
	return front, back
}

func (s *drawState) sortNorm(data []byte, pos int) error {
	first, second := sortNormOffsets(data, pos, s.View)
	if err := s.nest.enter(); err != nil {
		return err
	}
	defer s.nest.leave()
	// each branch starts with glow off; a pending glow lights the
	// next polygon at this level, not one inside a branch
	glow := s.glowNum
	defer func() { s.glowNum = glow }()
	s.glowNum = -1
	if _, err := iterate(data, pos+first, s); err != nil {
		return err
	}
	s.glowNum = -1
	_, err := iterate(data, pos+second, s)
	return err
}

func (s *drawState) rodBM(data []byte, pos int) error {
	bot := s.View.RotatePoint(getVec(data, pos+20))
	top := s.View.RotatePoint(getVec(data, pos+4))
	light := g3.LRGB{R: fix.One, G: fix.One, B: fix.One}
	// the widths occupy 32 bit fix slots but only the low word is read
	s.Canvas.Rod(s.Textures[getWord(data, pos+2)], &bot, fix.Fix(getWord(data, pos+16)), &top, fix.Fix(getWord(data, pos+32)), light)
	return nil
}

func (s *drawState) subCall(data []byte, pos int) error {
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
	// the sub-model starts with glow off; a pending glow lights the
	// next polygon at the calling level
	glow := s.glowNum
	defer func() { s.glowNum = glow }()
	s.glowNum = -1
	_, err := iterate(data, pos+int(getWord(data, pos+16)), s)
	return err
}

func (s *drawState) glow(data []byte, pos int) error {
	s.glowNum = int(getWord(data, pos+2))
	return nil
}
