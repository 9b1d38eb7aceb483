package lowmc

import "Picnic2-Signature/binmat"

// sboxTriple applies the cipher's 3-bit nonlinear transform directly to a
// concrete (a,b,c) bit triple: (a',b',c') = (a^bc, a^b^ca, a^b^c^ab).
// Used by the plain (unshared) cipher evaluation in cipher.go; the
// masked/shared circuit walk computes the same recombination from
// per-gate AND results instead of calling this directly (see
// RunCipher/runGate in cipher.go).
func sboxTriple(a, b, c int) (int, int, int) {
	ab := a & b
	bc := b & c
	ca := c & a
	return a ^ bc, a ^ b ^ ca, a ^ b ^ c ^ ab
}

// sboxDirect applies sboxTriple to the first 3*numSboxes bits of state (in
// place), leaving the remaining high bits untouched, matching LowMC's
// convention of a narrow nonlinear layer followed by a full-width affine
// mix.
func sboxDirect(state *binmat.Matrix, numSboxes int) {
	for s := 0; s < numSboxes; s++ {
		base := 3 * s
		a, b, c := pubGetBit(state, base), pubGetBit(state, base+1), pubGetBit(state, base+2)
		a2, b2, c2 := sboxTriple(a, b, c)
		pubSetBit(state, base, a2)
		pubSetBit(state, base+1, b2)
		pubSetBit(state, base+2, c2)
	}
}
