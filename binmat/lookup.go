package binmat

// Precompute expands A into a 256-row-per-byte lookup table B:
// B[8k+combo] = XOR over bit in combo of A[8k+bit], for combo in 0..255.
// A.NRows must be a multiple of 8. The result has A.NRows*32 rows (8
// source rows expand to 256 combinations) and the same column count as A.
func Precompute(A *Matrix) *Matrix {
	if A.NRows%8 != 0 {
		panic("binmat: lookup precompute requires a row count multiple of 8")
	}
	blocks := A.NRows / 8
	B := Alloc(blocks*256, A.NCols, true)
	cw := A.Width
	for k := 0; k < blocks; k++ {
		base := k * 8
		for combo := 0; combo < 256; combo++ {
			dst := B.Row(k*256 + combo)[:cw]
			for bit := 0; bit < 8; bit++ {
				if combo&(1<<uint(bit)) == 0 {
					continue
				}
				src := A.Row(base + bit)[:cw]
				for j := range dst {
					dst[j] ^= src[j]
				}
			}
		}
	}
	return B
}

// MulVL computes c = v*A using the lookup-table expansion B = Precompute(A).
func MulVL(c, v, B *Matrix) {
	Clear(c)
	AddMulVL(c, v, B)
}

// AddMulVL computes c ^= v*A using B, one byte-indexed row lookup and one
// XOR per byte of v in place of eight mask-XORs.
func AddMulVL(c, v, B *Matrix) {
	Selected.AddMulVL(c, v, B)
}

func addMulVLScalar(c, v, B *Matrix) {
	if v.NRows != 1 {
		panic("binmat: v must be a row vector")
	}
	nBytes := v.Width * 8
	blocks := nBytes // one byte of v per 256-row block
	if B.NRows != blocks*256 {
		panic("binmat: lookup table shape mismatch")
	}
	if c.NCols != B.NCols {
		panic("binmat: c/B column mismatch")
	}
	cw := c.Width
	dst := c.Row(0)[:cw]
	vbytes := bytesOf(v.Row(0)[:v.Width])
	for k := 0; k < blocks; k++ {
		combo := int(vbytes[k])
		src := B.Row(k*256 + combo)[:cw]
		for j := range dst {
			dst[j] ^= src[j]
		}
	}
}
