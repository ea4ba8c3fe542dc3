package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
)

var (
	errBadTag    = errors.New("bitmap: missing NIM0 tag")
	errNotEnough = errors.New("bitmap: not enough pixel data")
	errTooMuch   = errors.New("bitmap: too much pixel data")
)

// Image is a decoded NIM bitmap holding one palette index per pixel in
// row-major order, regardless of whether the file packed them as nibbles.
type Image struct {
	Width   int
	Height  int
	FourBit bool
	Pixels  []byte
}

type decoder struct {
	r io.Reader

	width  int
	height int
}

func (d *decoder) readHeader() error {
	var hdr header
	if err := binary.Read(d.r, binary.LittleEndian, &hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}
	if hdr.Tag != nimTag {
		return errBadTag
	}

	d.width, d.height = int(hdr.Width), int(hdr.Height)

	return nil
}

// Decode reads a NIM bitmap from r. Whether the pixel data is packed as
// nibbles is inferred from its length.
func Decode(r io.Reader) (*Image, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return nil, err
	}

	b, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}

	m := &Image{Width: d.width, Height: d.height}

	switch {
	case len(b) == d.width*d.height:
		m.Pixels = b
	case d.width%2 == 0 && len(b) == d.width/2*d.height:
		m.FourBit = true
		m.Pixels = make([]byte, 0, d.width*d.height)
		for _, v := range b {
			m.Pixels = append(m.Pixels, v>>4, v&0x0f)
		}
	case len(b) < d.width*d.height:
		return nil, errNotEnough
	default:
		return nil, errTooMuch
	}

	return m, nil
}

// DecodeConfig returns the dimensions of a NIM bitmap without reading the
// pixel data. The color model is unknown as the palette lives in a
// separate NIP file.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := decoder{r: r}
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:  d.width,
		Height: d.height,
	}, nil
}
