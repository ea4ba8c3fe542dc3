package palette_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bodgit/nextimg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	p := palette.Default()

	require.Equal(t, 256, p.Len())
	assert.Equal(t, uint8(0xe3), p.Transparent())

	for i := 0; i < p.Len(); i++ {
		want := palette.Color{
			R: uint8(i&0xe0) >> 5,
			G: uint8(i&0x1c) >> 2,
			B: uint8(i&0x03)<<1 + (uint8(i&0x02)>>1 | uint8(i&0x01)),
		}
		assert.Equal(t, want, p.At(i), "index %d", i)
	}

	assert.Equal(t, palette.Color{R: 7, G: 0, B: 7}, p.At(0xe3))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	p := palette.New(palette.Color{}, palette.Color{R: 7, G: 7, B: 7})
	p.SetTransparent(1)

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, p, false))

	assert.Equal(t, []byte{'N', 'I', 'P', '0', 0x02, 0x00, 0x00, 0xff, 0x01}, b.Bytes())
}

func TestEncodeExtended(t *testing.T) {
	t.Parallel()

	p := palette.New(palette.Color{}, palette.Color{R: 7, G: 7, B: 7})
	p.SetTransparent(1)

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, p, true))

	assert.Equal(t, []byte{'N', 'I', 'P', '0', 0x02, 0x01, 0x00, 0x00, 0xff, 0x01, 0x01}, b.Bytes())
}

func TestRoundTripExtended(t *testing.T) {
	t.Parallel()

	p := palette.New(
		palette.Color{R: 1, G: 2, B: 3},
		palette.Color{R: 7, G: 0, B: 6},
		palette.Color{R: 4, G: 5, B: 1},
	)
	p.SetTransparent(2)

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, p, true))

	q, err := palette.Decode(b)
	require.NoError(t, err)

	require.Equal(t, p.Len(), q.Len())
	for i := 0; i < p.Len(); i++ {
		assert.Equal(t, p.At(i), q.At(i), "index %d", i)
	}
	assert.Equal(t, p.Transparent(), q.Transparent())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Without the extra blue bit only blues whose low bit replicates
	// their second bit survive intact
	p := palette.New(
		palette.Color{R: 1, G: 2, B: 0},
		palette.Color{R: 7, G: 0, B: 3},
		palette.Color{R: 4, G: 5, B: 5},
		palette.Color{R: 3, G: 6, B: 7},
	)
	p.SetTransparent(0)

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, p, false))

	q, err := palette.Decode(b)
	require.NoError(t, err)

	require.Equal(t, p.Len(), q.Len())
	for i := 0; i < p.Len(); i++ {
		assert.Equal(t, p.At(i), q.At(i), "index %d", i)
	}
	assert.Equal(t, p.Transparent(), q.Transparent())
}

func TestRoundTrip256Colors(t *testing.T) {
	t.Parallel()

	b := new(bytes.Buffer)
	require.NoError(t, palette.Encode(b, palette.Default(), false))

	// 256 colors encode as a zero count byte
	assert.Equal(t, uint8(0), b.Bytes()[4])

	p, err := palette.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, 256, p.Len())
}

func TestDecodeJASC(t *testing.T) {
	t.Parallel()

	p, err := palette.Decode(strings.NewReader("JASC-PAL\r\n0100\r\n2\r\n255 255 255\r\n0 36 109\r\n"))
	require.NoError(t, err)

	require.Equal(t, 2, p.Len())
	assert.Equal(t, palette.Color{R: 7, G: 7, B: 7}, p.At(0))
	assert.Equal(t, palette.Color{R: 0, G: 1, B: 3}, p.At(1))
	assert.Equal(t, uint8(0xe3), p.Transparent())
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tables := []struct {
		name string
		in   string
		err  error
	}{
		{"unknown format", "RIFF....", palette.ErrUnknownFormat},
		{"bad version", "JASC-PAL\n0200\n1\n0 0 0\n", palette.ErrBadVersion},
		{"count mismatch", "JASC-PAL\n0100\n3\n0 0 0\n255 255 255\n", palette.ErrColorCount},
		{"count too big", "JASC-PAL\n0100\n257\n", palette.ErrColorCount},
		{"channel out of range", "JASC-PAL\n0100\n1\n0 256 0\n", palette.ErrColorRange},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			t.Parallel()
			_, err := palette.Decode(strings.NewReader(table.in))
			assert.ErrorIs(t, err, table.err)
		})
	}
}

func TestDecodeTruncatedNIP(t *testing.T) {
	t.Parallel()

	// Declares two colors but holds one and no transparency byte
	_, err := palette.Decode(bytes.NewReader([]byte{'N', 'I', 'P', '0', 0x02, 0x00, 0xff}))
	assert.Error(t, err)
}

func TestNearest(t *testing.T) {
	t.Parallel()

	p := palette.New(
		palette.Color{},                  // black
		palette.Color{R: 7, G: 7, B: 7}, // white
		palette.Color{R: 7},             // red
	)
	p.SetTransparent(0xff)

	assert.Equal(t, uint8(0), p.Nearest(10, 10, 10))
	assert.Equal(t, uint8(1), p.Nearest(250, 250, 250))
	assert.Equal(t, uint8(2), p.Nearest(200, 30, 30))
}

func TestNearestSkipsTransparent(t *testing.T) {
	t.Parallel()

	p := palette.New(
		palette.Color{R: 7, G: 7, B: 7},
		palette.Color{},
	)
	p.SetTransparent(1)

	// Even a perfect black match may not land on the transparency entry
	assert.Equal(t, uint8(0), p.Nearest(0, 0, 0))
}

func TestNearestTies(t *testing.T) {
	t.Parallel()

	p := palette.New(
		palette.Color{R: 3, G: 3, B: 3},
		palette.Color{R: 3, G: 3, B: 3},
	)
	p.SetTransparent(0xff)

	assert.Equal(t, uint8(0), p.Nearest(109, 109, 109))
}
