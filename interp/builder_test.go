// SPDX-License-Identifier: GPL-2.0-or-later
package interp

import (
	"encoding/binary"

	"gopoly/fix"
	"gopoly/g3"
	"gopoly/math/vec"
)

// builder assembles model streams for tests.
type builder struct {
	buf []byte
}

func (b *builder) pos() int {
	return len(b.buf)
}

func (b *builder) word(v int16) {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, uint16(v))
}

func (b *builder) fix(v fix.Fix) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

func (b *builder) vec(v vec.Vec3) {
	b.fix(v.X)
	b.fix(v.Y)
	b.fix(v.Z)
}

func (b *builder) patchWord(pos int, v int16) {
	binary.LittleEndian.PutUint16(b.buf[pos:], uint16(v))
}

func (b *builder) eof() {
	b.word(int16(opEOF))
}

func (b *builder) defPoints(pts ...vec.Vec3) {
	b.word(int16(opDefPoints))
	b.word(int16(len(pts)))
	for _, p := range pts {
		b.vec(p)
	}
}

func (b *builder) defPStart(start int16, pts ...vec.Vec3) {
	b.word(int16(opDefPStart))
	b.word(int16(len(pts)))
	b.word(start)
	b.word(0) // pad
	for _, p := range pts {
		b.vec(p)
	}
}

func (b *builder) indices(idx []int16) {
	for _, i := range idx {
		b.word(i)
	}
	for s := len(idx); s < indexSlots(len(idx)); s++ {
		b.word(0)
	}
}

func (b *builder) flatPoly(point, normal vec.Vec3, color int16, idx ...int16) {
	b.word(int16(opFlatPoly))
	b.word(int16(len(idx)))
	b.vec(point)
	b.vec(normal)
	b.word(color)
	b.indices(idx)
}

func (b *builder) tmapPoly(point, normal vec.Vec3, tex int16, idx []int16, uvls []g3.UVL) {
	b.word(int16(opTmapPoly))
	b.word(int16(len(idx)))
	b.vec(point)
	b.vec(normal)
	b.word(tex)
	b.indices(idx)
	for _, u := range uvls {
		b.fix(u.U)
		b.fix(u.V)
		b.fix(u.L)
	}
}

// sortNorm writes a SORTNORM record with placeholder child offsets
// and returns the record position for patching via patchWord at
// pos+28 and pos+30.
func (b *builder) sortNorm(normal, point vec.Vec3) int {
	p := b.pos()
	b.word(int16(opSortNorm))
	b.word(0) // unused
	b.vec(normal)
	b.vec(point)
	b.word(0) // front offset
	b.word(0) // back offset
	return p
}

// subCall writes a SUBCALL record with a placeholder child offset and
// returns the record position for patching at pos+16.
func (b *builder) subCall(angleIdx int16, trans vec.Vec3) int {
	p := b.pos()
	b.word(int16(opSubCall))
	b.word(angleIdx)
	b.vec(trans)
	b.word(0) // child offset
	b.word(0) // pad
	return p
}

// rodBM writes the record in wire order: the width slot after the top
// point holds the bottom width and vice versa.
func (b *builder) rodBM(tex int16, top vec.Vec3, bottomWidth fix.Fix, bottom vec.Vec3, topWidth fix.Fix) {
	b.word(int16(opRodBM))
	b.word(tex)
	b.vec(top)
	b.fix(bottomWidth)
	b.vec(bottom)
	b.fix(topWidth)
}

func (b *builder) glow(idx int16) {
	b.word(int16(opGlow))
	b.word(idx)
}

// frontViewer looks at the origin from -z. A polygon at the origin
// with normal -z faces it.
func frontViewer() *g3.Viewer {
	return g3.NewViewer(vec.Identity, vec.Vec3{Z: -fix.FromInt(10)})
}

var (
	origin     = vec.Vec3{}
	facingNrm  = vec.Vec3{Z: -fix.One}
	awayNrm    = vec.Vec3{Z: fix.One}
	fullBright = g3.LRGB{R: fix.One, G: fix.One, B: fix.One}
)

type flatCall struct {
	n     int
	color uint8
}

type tmapCall struct {
	n     int
	light g3.LRGB
	tex   g3.Texture
}

type rodCall struct {
	bottomWidth fix.Fix
	topWidth    fix.Fix
}

// recordingCanvas captures rasterizer calls.
type recordingCanvas struct {
	flats []flatCall
	tmaps []tmapCall
	rods  []rodCall
}

func (c *recordingCanvas) FlatPoly(points []*g3.Point, color uint8) {
	c.flats = append(c.flats, flatCall{n: len(points), color: color})
}

func (c *recordingCanvas) TexturedPoly(points []*g3.Point, uvls []g3.UVL, lights []g3.LRGB, tex g3.Texture) {
	c.tmaps = append(c.tmaps, tmapCall{n: len(points), light: lights[0], tex: tex})
}

func (c *recordingCanvas) Rod(tex g3.Texture, bottom *g3.Point, bottomWidth fix.Fix, top *g3.Point, topWidth fix.Fix, light g3.LRGB) {
	c.rods = append(c.rods, rodCall{bottomWidth: bottomWidth, topWidth: topWidth})
}

func drawParams(c *recordingCanvas) DrawParams {
	return DrawParams{
		Canvas:   c,
		View:     frontViewer(),
		Textures: []g3.Texture{"tex0", "tex1", "tex2", "tex3"},
		Points:   make([]g3.Point, g3.MaxInterpPoints),
		Light:    fullBright,
	}
}
