/*
Package quant implements the fixed channel quantization used by the Next
engine palette formats.

A full 8-bit channel sample is snapped to the nearest of eight evenly
spaced levels for the 3-bit RRRGGGBB encodings, or four levels for 2-bit
channels. The level tables are also used in the opposite direction to
expand a stored channel index back to its representative 8-bit value.
*/
package quant

// Levels3 holds the representative 8-bit value for each 3-bit channel index.
var Levels3 = [8]uint8{0, 36, 73, 109, 146, 182, 219, 255}

// Levels2 holds the representative 8-bit value for each 2-bit channel index.
var Levels2 = [4]uint8{0, 85, 170, 255}

func reduce(v uint8, levels []uint8) uint8 {
	minIdx := 0
	minDiff := 255

	for i, l := range levels {
		diff := int(v) - int(l)
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			minIdx = i
			break
		}
		if diff < minDiff {
			minDiff = diff
			minIdx = i
		}
	}

	return uint8(minIdx)
}

// Reduce3 returns the index of the closest 3-bit level for v. Ties resolve
// to the lower index.
func Reduce3(v uint8) uint8 {
	return reduce(v, Levels3[:])
}

// Reduce2 returns the index of the closest 2-bit level for v. Ties resolve
// to the lower index.
func Reduce2(v uint8) uint8 {
	return reduce(v, Levels2[:])
}
