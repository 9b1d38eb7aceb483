// Package auxengine produces party N-1's AND-gate correction ("aux")
// bits: the values that make the N parties' additively shared
// and-helper words reconstruct to exactly mask_a AND mask_b at every AND
// gate of the cipher's S-box layer, for every gate in a round's tape.
//
// Grounded on lowmc.RunCipher, which this package drives in its
// mask-only mode (no plain/public state, no key-schedule public
// component) purely to walk the gate order and the mask algebra; the
// actual aux computation happens in the onGate callback below.
package auxengine

import (
	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/params"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

// Run finalizes party N-1's aux bits in t for one round, given the
// already-drawn key mask bundle keyMask (the first p.StateBits words
// consumed from t by the caller via t.Words(p.StateBits)). After Run
// returns, t's cursor has been rewound to 0 so the online phase can
// re-read the same gate order from the start, per the tape's
// consume-once-then-reset discipline.
func Run(p *params.ParamSet, keyMask shares.Bundle, t *tape.Tapes) {
	onGate := func(gate int, maskA, maskB, h, _ uint64, _, _ int) {
		// maskA and maskB arrive already reconstructed to a single 0/1 bit
		// (see lowmc.RunCipher's runGate), so their AND is the gate's
		// mask_a . mask_b term directly.
		maskAB := int(maskA & maskB)
		helperParity := shares.Reconstruct(h &^ (1 << 63))
		aux := maskAB ^ helperParity
		t.SetAuxBit(p.StateBits, gate, aux)
	}
	lowmc.RunCipher(p, nil, nil, keyMask, t, nil, nil, onGate)
	t.Reset()
}
