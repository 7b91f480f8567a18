// SPDX-License-Identifier: GPL-2.0-or-later

// Package ggrast is a reference rasterizer backend over the gg 2D
// canvas. It projects view-space points with a simple pinhole model
// and path-fills polygons; texture sampling is not attempted, a
// textured polygon is shaded by its light level.
package ggrast

import (
	"github.com/gogpu/gg"

	"gopoly/fix"
	"gopoly/g3"
	"gopoly/palette"
)

type Canvas struct {
	ctx   *gg.Context
	pal   *palette.Palette
	focal float64
}

// New returns a canvas of the given pixel size. pal resolves color
// indices; nil falls back to a gray ramp.
func New(width, height int, pal *palette.Palette) *Canvas {
	return &Canvas{
		ctx:   gg.NewContext(width, height),
		pal:   pal,
		focal: float64(height),
	}
}

// Context exposes the underlying gg context, e.g. for SavePNG.
func (c *Canvas) Context() *gg.Context {
	return c.ctx
}

func (c *Canvas) project(p *g3.Point) (float64, float64, bool) {
	z := float64(p.Pos.Z.Float32())
	if z <= 0 {
		return 0, 0, false
	}
	x := float64(p.Pos.X.Float32())/z*c.focal + float64(c.ctx.Width())/2
	y := float64(c.ctx.Height())/2 - float64(p.Pos.Y.Float32())/z*c.focal
	return x, y, true
}

func (c *Canvas) path(points []*g3.Point) bool {
	c.ctx.ClearPath()
	for i, p := range points {
		x, y, ok := c.project(p)
		if !ok {
			return false
		}
		if i == 0 {
			c.ctx.MoveTo(x, y)
		} else {
			c.ctx.LineTo(x, y)
		}
	}
	c.ctx.ClosePath()
	return true
}

func (c *Canvas) setColor(color uint8, light g3.LRGB) {
	var r, g, b float64
	if c.pal != nil {
		pr, pg, pb := c.pal.At(color)
		r, g, b = float64(pr)/255, float64(pg)/255, float64(pb)/255
	} else {
		v := float64(color) / 255
		r, g, b = v, v, v
	}
	c.ctx.SetRGB(r*float64(light.R.Float32()), g*float64(light.G.Float32()), b*float64(light.B.Float32()))
}

func (c *Canvas) FlatPoly(points []*g3.Point, color uint8) {
	if !c.path(points) {
		return
	}
	c.setColor(color, g3.LRGB{R: fix.One, G: fix.One, B: fix.One})
	c.ctx.Fill()
}

func (c *Canvas) TexturedPoly(points []*g3.Point, uvls []g3.UVL, lights []g3.LRGB, tex g3.Texture) {
	if !c.path(points) {
		return
	}
	c.setColor(255, lights[0])
	c.ctx.Fill()
}

func (c *Canvas) Rod(tex g3.Texture, bottom *g3.Point, bottomWidth fix.Fix, top *g3.Point, topWidth fix.Fix, light g3.LRGB) {
	bx, by, ok := c.project(bottom)
	if !ok {
		return
	}
	tx, ty, ok := c.project(top)
	if !ok {
		return
	}
	w := float64((bottomWidth + topWidth).Float32()) / 2 * c.focal
	bz := float64(bottom.Pos.Z.Float32())
	if bz > 0 {
		w /= bz
	}
	c.setColor(255, light)
	c.ctx.SetLineWidth(w)
	c.ctx.DrawLine(bx, by, tx, ty)
	c.ctx.Stroke()
}
