package palette

import (
	"encoding/binary"
	"io"
)

const flagExtended = 0x01

// Encode writes p to w in NIP form. With extended set each color carries a
// second byte holding the real low blue bit, doubling the payload.
func Encode(w io.Writer, p *Palette, extended bool) error {
	hdr := struct {
		Tag    [4]byte
		Colors uint8
		Flags  uint8
	}{
		Tag:    nipTag,
		Colors: uint8(len(p.colors)), // 256 wraps to 0
	}
	if extended {
		hdr.Flags = flagExtended
	}

	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return err
	}

	var tmp [2]byte
	for _, c := range p.colors {
		tmp[0] = c.R<<5 | c.G<<2 | c.B>>1
		tmp[1] = c.B & 0x01

		n := 1
		if extended {
			n = 2
		}
		if _, err := w.Write(tmp[:n]); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte{p.transparent}); err != nil {
		return err
	}

	return nil
}
