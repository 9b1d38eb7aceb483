package auxengine

import (
	"Picnic2-Signature/params"
	"Picnic2-Signature/tape"
)

// ExtractBits packs party N-1's finalized aux bits (one per AND gate, via
// tape.Tapes.GetAuxBit) into a p.ViewSize-byte buffer, LSB-first, for
// inclusion in that party's commitment or in a proof's aux field.
func ExtractBits(p *params.ParamSet, t *tape.Tapes) []byte {
	out := make([]byte, p.ViewSize)
	for gate := 0; gate < p.NumGates(); gate++ {
		if t.GetAuxBit(p.StateBits, gate) != 0 {
			out[gate/8] |= 1 << uint(gate%8)
		}
	}
	return out
}

// InstallBits writes aux (as produced by ExtractBits, e.g. from a
// deserialized proof) back into party N-1's tape region: the verifier's
// counterpart to Run's in-place aux-bit rewrite, used when party N-1 is
// not the round's hidden party.
func InstallBits(p *params.ParamSet, t *tape.Tapes, aux []byte) {
	for gate := 0; gate < p.NumGates(); gate++ {
		bit := int((aux[gate/8] >> uint(gate%8)) & 1)
		t.SetAuxBit(p.StateBits, gate, bit)
	}
}
