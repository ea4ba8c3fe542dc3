package nextimg

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/nextimg/bitmap"
	"github.com/bodgit/nextimg/palette"
	"github.com/sirupsen/logrus"
)

// ParseIndex parses a palette index given either as a decimal number or as
// hex prefixed with '$'.
func ParseIndex(s string) (uint8, error) {
	base := 10
	if strings.HasPrefix(s, "$") {
		s, base = s[1:], 16
	}

	v, err := strconv.ParseUint(s, base, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid palette index %q", s)
	}

	return uint8(v), nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func loadPalette(file string) (*palette.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return palette.Decode(f)
}

// PaletteOptions control how ConvertPalette builds its output.
type PaletteOptions struct {
	// Default derives the fixed RRRGGGBB palette instead of reading the
	// input file.
	Default bool
	// Extended writes 9-bit colors.
	Extended bool
	// Transparent is the transparency index recorded in the output.
	Transparent uint8
}

// ConvertPalette builds a palette, either from file or from the default
// formula, and writes it next to file with a .nip extension.
func (n *NextImg) ConvertPalette(file string, opts PaletteOptions) error {
	p := palette.Default()
	if !opts.Default {
		var err error
		if p, err = loadPalette(file); err != nil {
			return err
		}
	}
	p.SetTransparent(opts.Transparent)

	out := replaceExt(file, ".nip")

	n.logger.WithFields(logrus.Fields{
		"colors":      p.Len(),
		"transparent": p.Transparent(),
		"out":         out,
	}).Info("writing palette")

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	return palette.Encode(f, p, opts.Extended)
}

// ImageOptions control how images are converted to NIM bitmaps.
type ImageOptions struct {
	// Palette names a NIP or JASC-PAL file to convert with; when empty
	// the default RRRGGGBB palette is used.
	Palette string
	// FourBit packs two pixel indices per output byte.
	FourBit bool
}

// ConvertImage converts the image at file into a NIM bitmap written next
// to it with a .nim extension.
func (n *NextImg) ConvertImage(file string, opts ImageOptions) error {
	p, err := resolvePalette(opts.Palette)
	if err != nil {
		return err
	}

	return n.convertImageFile(file, p, opts.FourBit)
}

func resolvePalette(file string) (*palette.Palette, error) {
	if file == "" {
		return palette.Default(), nil
	}
	return loadPalette(file)
}

func (n *NextImg) convertImageFile(file string, p *palette.Palette, fourBit bool) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("could not load image %s: %w", file, err)
	}

	out := replaceExt(file, ".nim")

	n.logger.WithFields(logrus.Fields{
		"width":  m.Bounds().Dx(),
		"height": m.Bounds().Dy(),
		"out":    out,
	}).Info("writing bitmap")

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	return bitmap.Encode(w, m, p, fourBit)
}
