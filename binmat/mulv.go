package binmat

import "math/bits"

// MulV computes c = v*A: clears c, then accumulates.
func MulV(c, v, A *Matrix) {
	Clear(c)
	AddMulV(c, v, A)
}

// AddMulV computes c ^= v*A: v has width w, A has w*64 rows and c.NCols
// columns. Bit i of v (LSB-first across words, LSB-first within a word)
// selects row i of A; a bit-mask of all-ones or all-zeros formed by
// arithmetic negation of bit_i gates whether A's row i is XORed into c.
func AddMulV(c, v, A *Matrix) {
	Selected.AddMulV(c, v, A)
}

// addMulVScalar is the portable reference implementation of AddMulV; every
// other backend must agree with it bit-for-bit (the "backend equivalence"
// testable property).
func addMulVScalar(c, v, A *Matrix) {
	if v.NRows != 1 {
		panic("binmat: v must be a row vector")
	}
	wantRows := v.Width * 64
	if A.NRows != wantRows {
		panic("binmat: A row count must equal 64*width(v)")
	}
	if c.NCols != A.NCols {
		panic("binmat: c/A column mismatch")
	}
	vrow := v.Row(0)
	cw := c.Width
	dst := c.Row(0)[:cw]
	for word := 0; word < v.Width; word++ {
		vw := vrow[word]
		for bitInWord := 0; bitInWord < 64; bitInWord++ {
			rowIdx := word*64 + bitInWord
			if rowIdx >= A.NRows {
				break
			}
			bit := (vw >> uint(bitInWord)) & 1
			mask := -bit // all-ones if bit==1, all-zeros if bit==0
			if mask == 0 {
				continue
			}
			arow := A.Row(rowIdx)[:cw]
			for j := range dst {
				dst[j] ^= arow[j] & mask
			}
		}
	}
}

// addMulVUnrolled4 is functionally identical to addMulVScalar but unrolls
// the inner bit loop four bits at a time, the Go-level analogue of the
// wider-register accumulation an AVX2/SSE2 backend performs; it is
// selected on CPUs advertising the corresponding feature (see backend.go)
// and must remain bit-identical to the scalar path.
func addMulVUnrolled4(c, v, A *Matrix) {
	if v.NRows != 1 {
		panic("binmat: v must be a row vector")
	}
	wantRows := v.Width * 64
	if A.NRows != wantRows {
		panic("binmat: A row count must equal 64*width(v)")
	}
	if c.NCols != A.NCols {
		panic("binmat: c/A column mismatch")
	}
	vrow := v.Row(0)
	cw := c.Width
	dst := c.Row(0)[:cw]
	rowIdx := 0
	for word := 0; word < v.Width; word++ {
		vw := vrow[word]
		for b := 0; b < 64 && rowIdx < A.NRows; b += 4 {
			for k := 0; k < 4 && b+k < 64 && rowIdx < A.NRows; k++ {
				bit := (vw >> uint(b+k)) & 1
				mask := -bit
				if mask != 0 {
					arow := A.Row(rowIdx)[:cw]
					for j := range dst {
						dst[j] ^= arow[j] & mask
					}
				}
				rowIdx++
			}
		}
	}
}

// parity64 returns the XOR-parity of the bits of x.
func parity64(x uint64) uint64 {
	return uint64(bits.OnesCount64(x) & 1)
}
