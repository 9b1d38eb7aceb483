package binmat

// MulVParity writes the last k bits of c's last word (k in {3,30}) by
// computing, for i = 0..k-1, bit_{63-i} = parity(<v, At_i>) where At_i is
// row i of At (a column of the untransposed matrix). Bits below the top k
// of the last word are left zero. width is the word width of v and c
// (2, 3, or 4 for 128/192/256-bit state).
//
// This single generic routine backs six named specializations
// (MulVParity128_3, MulVParity128_30, MulVParity192_3, ..., 256_30); the
// named wrappers below simply pin width and k for call-site clarity, the
// way BinMat's C reference names six near-identical functions for the
// same reason.
func MulVParity(c, v, At *Matrix, width, k int) {
	if v.Width != width || c.Width != width {
		panic("binmat: parity width mismatch")
	}
	if At.NRows != k {
		panic("binmat: parity selector row count mismatch")
	}
	vrow := v.Row(0)[:width]
	last := width - 1
	var word uint64
	for i := 0; i < k; i++ {
		row := At.Row(i)[:width]
		var acc uint64
		for j := 0; j < width; j++ {
			acc ^= vrow[j] & row[j]
		}
		bit := parity64(acc)
		word |= bit << uint(63-i)
	}
	dst := c.Row(0)[:width]
	dst[last] = word
}

func MulVParity128_3(c, v, At *Matrix)  { MulVParity(c, v, At, 2, 3) }
func MulVParity128_30(c, v, At *Matrix) { MulVParity(c, v, At, 2, 30) }
func MulVParity192_3(c, v, At *Matrix)  { MulVParity(c, v, At, 3, 3) }
func MulVParity192_30(c, v, At *Matrix) { MulVParity(c, v, At, 3, 30) }
func MulVParity256_3(c, v, At *Matrix)  { MulVParity(c, v, At, 4, 3) }
func MulVParity256_30(c, v, At *Matrix) { MulVParity(c, v, At, 4, 30) }
