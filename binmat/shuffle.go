package binmat

import "math/bits"

// Shuffle is the portable bit-extract/pack step behind Shuffle3 and
// Shuffle30: bits of x selected by mask are packed, in ascending
// bit-index order, into the top bits of the result; the complementary
// bits are packed into the low bits. The top/low split point is
// 64-popcount(mask), which works out to a shift of 34 for a
// popcount-30 mask and a shift of 61 for a popcount-3 mask.
//
// This walks all 64 bit positions once, routing each bit of x into the
// selected or rest accumulator depending on mask; an AVX2 build may use
// PEXT for both halves instead (not implemented here).
// Non-constant-time in mask is acceptable since mask is a public parameter.
func Shuffle(x, mask uint64) uint64 {
	popcount := bits.OnesCount64(mask)
	shift := uint(64 - popcount)

	var selected, rest uint64
	var selIdx, restIdx uint
	for i := 0; i < 64; i++ {
		b := (x >> uint(i)) & 1
		if (mask>>uint(i))&1 == 1 {
			selected |= b << selIdx
			selIdx++
		} else {
			rest |= b << restIdx
			restIdx++
		}
	}
	return (selected << shift) | rest
}

// Shuffle3 requires popcount(mask) == 3.
func Shuffle3(x, mask uint64) uint64 {
	if bits.OnesCount64(mask) != 3 {
		panic("binmat: shuffle3 requires popcount(mask)==3")
	}
	return Shuffle(x, mask)
}

// Shuffle30 requires popcount(mask) == 30.
func Shuffle30(x, mask uint64) uint64 {
	if bits.OnesCount64(mask) != 30 {
		panic("binmat: shuffle30 requires popcount(mask)==30")
	}
	return Shuffle(x, mask)
}
