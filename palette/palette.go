/*
Package palette implements the NIP palette format used by the Next engine.

A palette holds up to 256 colors with each channel reduced to the engine's
3-bit range, plus the index reserved to represent transparent pixels. On
disk a palette is a "NIP0" tag, a color count (0 meaning 256), a flags byte
and one packed RRRGGGBB byte per color, followed by the transparency index.
In extended 9-bit form every color carries a second byte holding a real low
blue bit; otherwise that bit is rebuilt on load by replicating the two
stored blue bits.

Palettes can also be loaded from the plain-text JASC-PAL format, in which
case each raw 0-255 channel is snapped to its 3-bit index first.
*/
package palette

import "github.com/bodgit/nextimg/quant"

const maxColors = 256

// DefaultTransparent is the palette position reserved for transparent
// pixels unless overridden.
const DefaultTransparent = 0xe3

// Color is a single palette entry. Each channel holds a reduced 3-bit
// index, not a raw 0-255 sample.
type Color struct {
	R, G, B uint8
}

// Palette is an ordered set of up to 256 colors plus a transparency index.
type Palette struct {
	colors      []Color
	transparent uint8
}

// New returns a palette holding the given colors and the default
// transparency index.
func New(colors ...Color) *Palette {
	return &Palette{
		colors:      colors,
		transparent: DefaultTransparent,
	}
}

// Default returns the full 256 color RRRGGGBB palette where every entry is
// derived from its own index, with blue widened from two bits to three by
// replicating the low bit.
func Default() *Palette {
	p := &Palette{
		colors:      make([]Color, maxColors),
		transparent: DefaultTransparent,
	}

	for i := range p.colors {
		p.colors[i] = Color{
			R: uint8(i&0xe0) >> 5,
			G: uint8(i&0x1c) >> 2,
			B: uint8(i&0x03)<<1 + (uint8(i&0x02)>>1 | uint8(i&0x01)),
		}
	}

	return p
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns the color at position i, which must be in range.
func (p *Palette) At(i int) Color {
	return p.colors[i]
}

// Transparent returns the transparency index.
func (p *Palette) Transparent() uint8 {
	return p.transparent
}

// SetTransparent overrides the transparency index.
func (p *Palette) SetTransparent(i uint8) {
	p.transparent = i
}

// Nearest returns the index of the entry closest to the given raw 0-255
// RGB triple by squared Euclidean distance, measured against each entry
// expanded back to its representative 8-bit levels. The transparency entry
// is never a candidate and ties resolve to the lower index.
func (p *Palette) Nearest(r, g, b uint8) uint8 {
	best := 0
	bestDist := 256 * 256 * 256

	for i, c := range p.colors {
		if i == int(p.transparent) {
			continue
		}

		dr := int(quant.Levels3[c.R]) - int(r)
		dg := int(quant.Levels3[c.G]) - int(g)
		db := int(quant.Levels3[c.B]) - int(b)

		if dist := dr*dr + dg*dg + db*db; dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	return uint8(best)
}
