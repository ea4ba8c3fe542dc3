package palette

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bodgit/nextimg/quant"
)

const (
	jascMagic   = "JASC-PAL"
	jascVersion = "0100"
)

var nipTag = [4]byte{'N', 'I', 'P', '0'}

var (
	// ErrUnknownFormat is returned when the input is neither a NIP
	// palette nor a JASC-PAL text palette.
	ErrUnknownFormat = errors.New("palette: unrecognized palette format")
	// ErrBadVersion is returned for a JASC-PAL version other than 0100.
	ErrBadVersion = errors.New("palette: unsupported JASC-PAL version")
	// ErrColorRange is returned when a JASC-PAL channel is outside 0-255.
	ErrColorRange = errors.New("palette: color channel out of range")
	// ErrColorCount is returned when a JASC-PAL palette holds a different
	// number of colors than it declares, or declares more than 256.
	ErrColorCount = errors.New("palette: invalid number of colors")

	errNotEnough = errors.New("palette: not enough palette data")
)

type format int

const (
	formatUnknown format = iota
	formatNIP
	formatJASC
)

func sniff(b []byte) format {
	switch {
	case bytes.HasPrefix(b, nipTag[:]):
		return formatNIP
	case bytes.HasPrefix(b, []byte(jascMagic)):
		return formatJASC
	}
	return formatUnknown
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = errNotEnough
	}
	return err
}

// Decode reads a palette from r in either NIP binary or JASC-PAL text
// form, detected from the leading bytes.
func Decode(r io.Reader) (*Palette, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch sniff(b) {
	case formatNIP:
		return decodeNIP(bytes.NewReader(b[len(nipTag):]))
	case formatJASC:
		return decodeJASC(bytes.NewReader(b))
	}

	return nil, ErrUnknownFormat
}

func decodeNIP(r io.Reader) (*Palette, error) {
	var hdr struct {
		Colors uint8
		Flags  uint8
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}

	n := int(hdr.Colors)
	if n == 0 {
		n = maxColors
	}
	extended := hdr.Flags&flagExtended != 0

	p := &Palette{colors: make([]Color, n)}

	var tmp [2]byte
	for i := range p.colors {
		if extended {
			if err := readFull(r, tmp[:]); err != nil {
				return nil, err
			}
		} else {
			if err := readFull(r, tmp[:1]); err != nil {
				return nil, err
			}
			// No real low blue bit on disk; rebuild it by
			// replicating the two stored bits.
			tmp[1] = tmp[0]&0x02>>1 | tmp[0]&0x01
		}

		p.colors[i] = Color{
			R: tmp[0] & 0xe0 >> 5,
			G: tmp[0] & 0x1c >> 2,
			B: tmp[0]&0x03<<1 | tmp[1]&0x01,
		}
	}

	if err := readFull(r, tmp[:1]); err != nil {
		return nil, err
	}
	p.transparent = tmp[0]

	return p, nil
}

func decodeJASC(r io.Reader) (*Palette, error) {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return "", err
			}
			return "", ErrColorCount
		}
		return s.Text(), nil
	}

	// The magic token has already been sniffed
	if _, err := next(); err != nil {
		return nil, err
	}

	version, err := next()
	if err != nil {
		return nil, err
	}
	if version != jascVersion {
		return nil, ErrBadVersion
	}

	count, err := next()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 || n > maxColors {
		return nil, ErrColorCount
	}

	p := &Palette{
		colors:      make([]Color, n),
		transparent: DefaultTransparent,
	}

	for i := range p.colors {
		var channels [3]uint8
		for j := range channels {
			tok, err := next()
			if err != nil {
				return nil, err
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("palette: invalid color value %q", tok)
			}
			if v < 0 || v > 255 {
				return nil, ErrColorRange
			}
			channels[j] = quant.Reduce3(uint8(v))
		}
		p.colors[i] = Color{channels[0], channels[1], channels[2]}
	}

	return p, nil
}
