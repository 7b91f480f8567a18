// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"github.com/pkg/errors"
)

// Palette is a 256 entry RGB color table, 8 bit per channel.
type Palette struct {
	rgb [256 * 3]uint8
}

// New builds a palette from a raw 768 byte rgb table.
func New(b []byte) (*Palette, error) {
	p := &Palette{}
	if len(b) != len(p.rgb) {
		return nil, errors.Errorf("palette has wrong size: %v", len(b))
	}
	copy(p.rgb[:], b)
	return p, nil
}

// At returns the rgb triple of index i.
func (p *Palette) At(i uint8) (uint8, uint8, uint8) {
	return p.rgb[int(i)*3], p.rgb[int(i)*3+1], p.rgb[int(i)*3+2]
}

func (p *Palette) closest(r, g, b int) uint8 {
	best := 0
	bestDist := int(^uint(0) >> 1)
	for i := 0; i < 256; i++ {
		dr := r - int(p.rgb[i*3])
		dg := g - int(p.rgb[i*3+1])
		db := b - int(p.rgb[i*3+2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// Closest15bpp returns the palette index closest to a 15bpp
// 0rrrrrgggggbbbbb color value.
func (p *Palette) Closest15bpp(c uint16) uint8 {
	r := int(c>>10&0x1f) << 3
	g := int(c>>5&0x1f) << 3
	b := int(c&0x1f) << 3
	return p.closest(r, g, b)
}
