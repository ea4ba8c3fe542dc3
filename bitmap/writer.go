package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/nextimg/palette"
)

var (
	// ErrTooManyColors is returned when 4-bit packing is requested with a
	// palette of more than 16 colors.
	ErrTooManyColors = errors.New("bitmap: palette must be 16 colors or less for 4-bit mode")
	// ErrOddWidth is returned when 4-bit packing is requested for an image
	// whose width is not a multiple of 2.
	ErrOddWidth = errors.New("bitmap: width must be a multiple of 2 for 4-bit mode")
)

type encoder struct {
	w       io.Writer
	p       *palette.Palette
	fourBit bool
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()

	hdr := header{
		Tag:    nimTag,
		Width:  uint16(b.Dx()),
		Height: uint16(b.Dy()),
	}
	if err := binary.Write(e.w, binary.LittleEndian, &hdr); err != nil {
		return err
	}

	size := b.Dx() * b.Dy()
	if e.fourBit {
		size >>= 1
	}

	buf := make([]byte, 0, size)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		var pending byte
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)

			var idx uint8
			if c.A != 0xff {
				idx = e.p.Transparent()
			} else {
				idx = e.p.Nearest(c.R, c.G, c.B)
			}

			switch {
			case !e.fourBit:
				buf = append(buf, idx)
			case (x-b.Min.X)%2 == 0:
				pending = idx & 0x0f << 4
			default:
				buf = append(buf, pending|idx&0x0f)
			}
		}
	}

	_, err := e.w.Write(buf)
	return err
}

// Encode writes m to w as a NIM bitmap, mapping every pixel to an index in
// the palette p. With fourBit set two indices pack into each output byte,
// which requires an even width and no more than 16 colors in p.
func Encode(w io.Writer, m image.Image, p *palette.Palette, fourBit bool) error {
	if fourBit {
		if p.Len() > fourBitMaxColors {
			return ErrTooManyColors
		}
		if m.Bounds().Dx()%2 != 0 {
			return ErrOddWidth
		}
	}

	e := encoder{w: w, p: p, fourBit: fourBit}

	return e.encode(m)
}
