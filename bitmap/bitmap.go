/*
Package bitmap implements the NIM indexed bitmap encoder and decoder.

A NIM file is a "NIM0" tag followed by the pixel dimensions as two
little-endian 16-bit values and one palette index per pixel in row-major
order. In 4-bit form two indices pack into each byte, high nibble first,
which requires an even image width and a palette of no more than 16 colors.
Pixels that are not fully opaque are stored as the palette's transparency
index; every other pixel maps to the nearest palette entry by Euclidean
distance in raw RGB space.
*/
package bitmap

const fourBitMaxColors = 16

var nimTag = [4]byte{'N', 'I', 'M', '0'}

type header struct {
	Tag    [4]byte
	Width  uint16
	Height uint16
}
