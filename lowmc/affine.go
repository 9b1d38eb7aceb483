// Package lowmc supplies the cipher-specific pieces of the MPC-in-the-head
// core: the affine layer, the 3-bit S-box, a plain (unshared) block-cipher
// evaluation for key generation, and the shared/masked circuit walk that
// AuxEngine and the online simulator both drive.
package lowmc

import (
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/shares"
)

// AffineLayer computes out = in . linear XOR roundConstant, built on
// binmat.MulV and binmat.Xor. in, out, and roundConstant are 1-row
// vectors; linear is the square matrix for this round.
func AffineLayer(out, in *binmat.Matrix, linear, roundConstant *binmat.Matrix) {
	binmat.MulV(out, in, linear)
	binmat.Xor(out, out, roundConstant)
}

func pubGetBit(v *binmat.Matrix, i int) int {
	row := v.Row(0)
	return int((row[i/64] >> uint(i%64)) & 1)
}

func pubSetBit(v *binmat.Matrix, i, bit int) {
	row := v.Row(0)
	word, mask := i/64, uint64(1)<<uint(i%64)
	if bit != 0 {
		row[word] |= mask
	} else {
		row[word] &^= mask
	}
}

// ApplyLinearToMask propagates an additively-shared wire bundle through a
// linear layer. Input mask word i is XORed into every output wire k for
// which row i of linear has column k set, exactly the same GF(2) linear
// combination binmat.MulV computes for a single plain vector, generalized
// here to 64 parties carried in parallel inside each word: XOR-ing two
// share words XORs every party's bit independently, so the same
// row-selection rule that picks which rows of A contribute to mul_v's
// output picks which mask words contribute to each output wire's mask.
func ApplyLinearToMask(linear *binmat.Matrix, in shares.Bundle) shares.Bundle {
	out := make(shares.Bundle, linear.NCols)
	for i := 0; i < linear.NRows; i++ {
		row := linear.Row(i)
		for k := 0; k < linear.NCols; k++ {
			if (row[k/64]>>uint(k%64))&1 == 1 {
				out[k] ^= in[i]
			}
		}
	}
	return out
}

// roundKeyPub returns maskedKey . keyMatrix, the public component of this
// round's key-schedule contribution (see RunCipher in cipher.go for the
// pub/mask split).
func roundKeyPub(keyMatrix *binmat.Matrix, maskedKey *binmat.Matrix) *binmat.Matrix {
	out := binmat.Alloc(1, keyMatrix.NRows, true)
	binmat.MulV(out, maskedKey, keyMatrix)
	return out
}

func roundKeyMask(keyMatrix *binmat.Matrix, keyMask shares.Bundle) shares.Bundle {
	return ApplyLinearToMask(keyMatrix, keyMask)
}
