package lowmc

import (
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/params"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

// NewMessageSink allocates the per-party message buffer Simulate fills:
// p.StateBits bits of key-mask share, then one bit per AND gate, per
// party — input_size+view_size bytes total, the wire shape of the
// signature's "msgs" proof field. It reuses tape.Tapes's N-party
// byte-buffer shape (viewSize 0, inputSize = InputSize+ViewSize), since a
// message buffer is the same structure as a tape with a different
// meaning for its bits.
func NewMessageSink(p *params.ParamSet) *tape.Tapes {
	return tape.Allocate(shares.N, 0, p.InputSize+p.ViewSize)
}

// Simulate runs the online phase of the MPC-in-the-head evaluation: given
// the key's additive mask shares (keyMask, already drawn from t by the
// caller) and the matching masked key value maskedKey = privateKey XOR
// reconstruct(keyMask), it walks the cipher once computing the real
// (unmasked) ciphertext alongside the output mask shares, and fills msgs
// with every party's AND-gate message bit. The returned ciphertext is the
// value a verifier checks against the claimed public key; the returned
// mask bundle is discarded by honest parties (the output's masked value
// is never revealed) but is exposed for test harnesses that want to
// confirm pub XOR reconstruct(mask) reproduces Encrypt's result.
func Simulate(p *params.ParamSet, maskedKey *binmat.Matrix, keyMask shares.Bundle, plaintext *binmat.Matrix, t, msgs *tape.Tapes) (*binmat.Matrix, shares.Bundle) {
	pub := binmat.Alloc(1, p.StateBits, true)
	binmat.Xor(pub, plaintext, roundKeyPub(p.KeyMatrices[0], maskedKey))
	mask := RunCipher(p, maskedKey, pub, keyMask, t, msgs, nil, nil)
	return pub, mask
}

// SimulateVerify replays the online phase as a verifier: t carries the
// N-1 opened parties' real tapes (derived from their revealed seeds)
// plus a zero-filled region for the hidden party's own buffer, which the
// caller must have zeroed before calling SimulateVerify. hiddenMsgs
// carries that one party's revealed per-gate message bits from the
// proof. maskedKey is the proof's disclosed input field, not recomputed
// from any mask reconstruction (the verifier never learns the true
// keyMask). Drawing the key mask bundle from t then naturally yields the
// correct bit for every opened party and 0 for the hidden party at every
// position the tape is read (key mask, every gate's rOut, every gate's
// and-helper) — the exact precondition RunCipher's VerifierPatch needs
// to reproduce the prover's real trajectory exactly via XOR-parity's
// linearity. When outMsgs is non-nil it receives every party's
// reconstructed message bits, including the hidden party's (which come
// out bit-identical to hiddenMsgs's, since the patch substitutes them
// before outMsgs is written), ready to feed commit.V for the round's Cv
// leaf.
func SimulateVerify(p *params.ParamSet, maskedKey, plaintext *binmat.Matrix, t *tape.Tapes, hidden int, hiddenMsgs, outMsgs *tape.Tapes) *binmat.Matrix {
	pub := binmat.Alloc(1, p.StateBits, true)
	binmat.Xor(pub, plaintext, roundKeyPub(p.KeyMatrices[0], maskedKey))
	keyMask := shares.Bundle(t.Words(p.StateBits))
	patch := &VerifierPatch{Hidden: hidden, Msgs: hiddenMsgs}
	RunCipher(p, maskedKey, pub, keyMask, t, outMsgs, patch, nil)
	return pub
}
