package binmat

import "github.com/templexxx/xor"

// Xor computes res[i,j] = a[i,j] ^ b[i,j] for every row, dispatching
// through the selected backend's Xor entry point (populated in
// backend.go). res, a and b must share shape; res may alias a or b.
func Xor(res, a, b *Matrix) {
	Selected.Xor(res, a, b)
}

// xorScalarWords XORs two equal-length word slices into dst, one 64-bit
// lane at a time. This is the always-available reference implementation
// that every other backend must agree with bit-for-bit.
func xorScalarWords(dst, a, b []uint64) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// xorScalar is the portable Xor backend.
func xorScalar(res, a, b *Matrix) {
	requireSameShape(res, a, b)
	for i := 0; i < res.NRows; i++ {
		xorScalarWords(res.Row(i)[:res.Width], a.Row(i)[:a.Width], b.Row(i)[:b.Width])
	}
}

// xorBytewise XORs via templexxx/xor.BytesSameLen over the raw row bytes.
// It is bit-identical to xorScalar (GF(2) addition is associative over any
// chunking of the same bit string) and is the backend selected whenever
// the running CPU advertises wide byte-XOR support (see backend.go); the
// flat-buffer XOR shape it wants is exactly the one the lookup-table
// accumulator merge in lookup.go also needs.
func xorBytewise(res, a, b *Matrix) {
	requireSameShape(res, a, b)
	for i := 0; i < res.NRows; i++ {
		rw, aw, bw := res.Row(i)[:res.Width], a.Row(i)[:a.Width], b.Row(i)[:b.Width]
		xor.BytesSameLen(bytesOf(rw), bytesOf(aw), bytesOf(bw))
	}
}

func requireSameShape(res, a, b *Matrix) {
	if res.NRows != a.NRows || res.NRows != b.NRows ||
		res.NCols != a.NCols || res.NCols != b.NCols {
		panic("binmat: xor shape mismatch")
	}
}
