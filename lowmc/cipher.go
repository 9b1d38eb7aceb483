package lowmc

import (
	"Picnic2-Signature/backend"
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/params"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

func init() {
	backend.Register(AffineLayer, sboxDirect)
}

// Encrypt runs the plain (unshared) cipher once; key generation uses it
// to compute the public ciphertext. It is a single-key-whitening LowMC instance: the affine
// layer's own round constants carry round-to-round diffusion, and the
// key schedule (KeyMatrices) re-injects the fixed private key at every
// round boundary the same way the matrix-vector kernel (binmat.MulV)
// injects it at round 0. The affine layer and S-box run through
// backend.Selected rather than calling AffineLayer/sboxDirect directly,
// so a build that swaps in a different cipher backend changes both
// without touching this walk.
func Encrypt(p *params.ParamSet, key, plaintext *binmat.Matrix) *binmat.Matrix {
	state := binmat.Alloc(1, p.StateBits, true)
	binmat.Xor(state, plaintext, roundKeyPub(p.KeyMatrices[0], key))
	for i := 0; i < p.NumLowMCRounds; i++ {
		backend.Selected.Sbox(state, p.NumSboxes)
		next := binmat.Alloc(1, p.StateBits, true)
		backend.Selected.Affine(next, state, p.LinearMatrices[i], p.RoundConstants[i])
		binmat.Xor(next, next, roundKeyPub(p.KeyMatrices[i+1], key))
		state = next
	}
	return state
}

// GateFunc observes one AND gate of the masked circuit walk, in the fixed
// order tape words are consumed (matching tape.GetAuxBit/SetAuxBit's
// offset formula): maskA/maskB are the reconstructed (parity) mask bits
// of the gate's two input wires, h is the and-helper word as currently
// stored in the tape (post-aux-install once AuxEngine has run), rOut is
// the fresh output-mask word, and pubA/pubB are the gate's two input
// wires' public components (0 when the caller runs in mask-only mode).
type GateFunc func(gateIndex int, maskA, maskB, h, rOut uint64, pubA, pubB int)

// VerifierPatch carries the one piece of information a verifier has that
// a prover does not: the hidden party's own message bit for every gate,
// taken directly from a proof's msgs field rather than computed from
// that party's (unknown) tape. Hidden is the hidden party's index;
// Msgs holds its revealed per-gate message bits (GetBit(Hidden, gate)).
// A nil *VerifierPatch means RunCipher is running with full knowledge of
// every party's tape (the prover's case, or AuxEngine's mask-only case).
type VerifierPatch struct {
	Hidden int
	Msgs   *tape.Tapes
}

// RunCipher walks the full masked circuit (all rounds, all S-boxes, all
// AND gates) once, in the exact order the tape is consumed by both
// AuxEngine's preprocessing pass and the online simulator's re-read after
// tape.Reset. keyPub is the constant maskedKey vector used for every
// round's key-schedule injection (nil in AuxEngine's mask-only
// preprocessing mode, where pub is also nil); pub, when non-nil, is
// mutated in place to the cipher's real output state. maskInit is the
// initial key mask bundle (already consumed from the tape by the caller
// via tape.Words(p.StateBits)); it is not mutated, and a patched copy of
// it is also the constant used for every round's key-schedule mask
// injection. msgs, when non-nil, receives every party's message bits:
// the key mask bundle's own bits at offsets [0, p.StateBits), then one
// bit per AND gate at offset p.StateBits+gateIndex — together exactly
// the input_size+view_size-byte "msgs" buffer of the signature's proof
// field; this is the online simulator's only use of RunCipher (nil in
// AuxEngine's preprocessing pass, which has no public component to
// derive a message from). patch, when non-nil, is the verifier's
// substitute for the one party whose tape it never learns: every bit
// the hidden party would have contributed — to the key mask bundle or
// to a gate's message — defaults to 0 (the hidden party's tape region is conventionally
// zero-filled by the caller), and RunCipher patches in patch.Msgs's
// recorded bit for that party before using the value, which is
// algebraically equivalent to knowing the hidden party's real
// contribution (XOR-parity is linear, so replacing a zeroed term with
// the externally supplied true term reproduces the same parity).
func RunCipher(p *params.ParamSet, keyPub, pub *binmat.Matrix, maskInit shares.Bundle, t *tape.Tapes, msgs *tape.Tapes, patch *VerifierPatch, onGate GateFunc) shares.Bundle {
	keyMask := append(shares.Bundle(nil), maskInit...)
	if patch != nil {
		patchBundle(keyMask, patch.Hidden, patch.Msgs, 0)
	}
	if msgs != nil {
		for i, w := range keyMask {
			for j := 0; j < t.N(); j++ {
				msgs.SetBit(j, i, int((w>>uint(j))&1))
			}
		}
	}

	// The state's initial mask is the key mask through KeyMatrices[0],
	// matching the plaintext XOR maskedKey.KeyMatrices[0] public start.
	mask := roundKeyMask(p.KeyMatrices[0], keyMask)
	gate := 0

	for i := 0; i < p.NumLowMCRounds; i++ {
		for s := 0; s < p.NumSboxes; s++ {
			base := 3 * s
			maskA, maskB, maskC := mask[base], mask[base+1], mask[base+2]

			var pubA, pubB, pubC int
			if pub != nil {
				pubA, pubB, pubC = pubGetBit(pub, base), pubGetBit(pub, base+1), pubGetBit(pub, base+2)
			}

			pubAB, maskAB := runGate(p, t, msgs, patch, onGate, gate, maskA, maskB, pubA, pubB, pub != nil)
			gate++
			pubBC, maskBC := runGate(p, t, msgs, patch, onGate, gate, maskB, maskC, pubB, pubC, pub != nil)
			gate++
			pubCA, maskCA := runGate(p, t, msgs, patch, onGate, gate, maskC, maskA, pubC, pubA, pub != nil)
			gate++

			mask[base] = maskA ^ maskBC
			mask[base+1] = maskA ^ maskB ^ maskCA
			mask[base+2] = maskA ^ maskB ^ maskC ^ maskAB

			if pub != nil {
				pubSetBit(pub, base, pubA^pubBC)
				pubSetBit(pub, base+1, pubA^pubB^pubCA)
				pubSetBit(pub, base+2, pubA^pubB^pubC^pubAB)
			}
		}

		afterLinear := ApplyLinearToMask(p.LinearMatrices[i], mask)
		roundKeyM := roundKeyMask(p.KeyMatrices[i+1], keyMask)
		shares.XorInto(afterLinear, roundKeyM)
		mask = afterLinear

		if pub != nil {
			next := binmat.Alloc(1, p.StateBits, true)
			backend.Selected.Affine(next, pub, p.LinearMatrices[i], p.RoundConstants[i])
			binmat.Xor(next, next, roundKeyPub(p.KeyMatrices[i+1], keyPub))
			CopyMatrixInto(pub, next)
		}
	}
	return mask
}

// patchBundle overwrites hidden's bit of every word in bundle with the
// corresponding bit recorded in source starting at source bit offset
// base, the shared mechanism runGate and RunCipher's key-mask setup use
// to substitute a verifier's unknown party contribution with the
// signer-supplied true value.
func patchBundle(bundle shares.Bundle, hidden int, source *tape.Tapes, base int) {
	for i := range bundle {
		bit := uint64(source.GetBit(hidden, base+i))
		bundle[i] = (bundle[i] &^ (1 << uint(hidden))) | bit<<uint(hidden)
	}
}

// runGate draws the gate's two tape words, invokes onGate, and returns
// the gate's real-value public component and fresh output mask (the
// values the S-box recombination step needs regardless of caller). When
// msgs is non-nil it records every party's bit of this gate's message
// word at offset p.StateBits+gate (after the leading key-mask bits
// RunCipher writes at offsets [0, p.StateBits)), the one value of the
// online phase a verifier later needs to see without learning any
// single party's mask share on its own.
func runGate(p *params.ParamSet, t, msgs *tape.Tapes, patch *VerifierPatch, onGate GateFunc, gate int, maskA, maskB uint64, pubA, pubB int, wantPub bool) (int, uint64) {
	rOut := t.Word()
	h := t.Word()

	reconMaskA, reconMaskB := shares.Reconstruct(maskA), shares.Reconstruct(maskB)
	if onGate != nil {
		onGate(gate, uint64(reconMaskA), uint64(reconMaskB), h, rOut, pubA, pubB)
	}

	if !wantPub {
		return 0, rOut
	}
	pubAnd := pubA & pubB
	msg := bcast(pubA)&maskB ^ bcast(pubB)&maskA ^ h ^ rOut
	if patch != nil {
		bit := uint64(patch.Msgs.GetBit(patch.Hidden, p.StateBits+gate))
		msg = (msg &^ (1 << uint(patch.Hidden))) | bit<<uint(patch.Hidden)
	}
	if msgs != nil {
		for j := 0; j < t.N(); j++ {
			msgs.SetBit(j, p.StateBits+gate, int((msg>>uint(j))&1))
		}
	}
	newPub := pubAnd ^ shares.Reconstruct(msg)
	return newPub, rOut
}

func bcast(bit int) uint64 {
	return -uint64(bit)
}

// CopyMatrixInto copies src's row content into dst; both must be 1-row
// vectors of identical width. Exposed here (rather than reaching into
// binmat.CopyInto for a 1-row special case at every call site) because
// the masked circuit walk swaps the running public state every round.
func CopyMatrixInto(dst, src *binmat.Matrix) {
	binmat.CopyInto(dst, src)
}
