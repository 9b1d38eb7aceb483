package mpcproto

import (
	"encoding/binary"

	"Picnic2-Signature/binmat"
	"Picnic2-Signature/kdf"
	"Picnic2-Signature/params"
)

const prefixSaltRoot byte = 0x42

// SaltSize is the fixed signature salt length.
const SaltSize = 32

// computeSaltAndRoot deterministically derives the salt and the MPC
// round seed tree's root from the private key, the message, and the
// public key/plaintext pair, grounded on
// original_source/picnic2_impl.c's computeSaltAndRootSeed: absorb the
// private key, the message, the public key, the plaintext, and the
// cipher's state width, then squeeze salt followed by the root seed.
func computeSaltAndRoot(p *params.ParamSet, privateKey, pubKey, plaintext *binmat.Matrix, message []byte) (salt, root []byte) {
	h := kdf.NewWithPrefix(prefixSaltRoot)
	h.Update(binmat.VectorBytes(privateKey, p.InputSize))
	h.Update(message)
	h.Update(binmat.VectorBytes(pubKey, p.InputSize))
	h.Update(binmat.VectorBytes(plaintext, p.InputSize))
	var stateLE [2]byte
	binary.LittleEndian.PutUint16(stateLE[:], uint16(p.StateBits))
	h.Update(stateLE[:])
	h.Final()
	out := h.Squeeze(SaltSize + p.SeedSize)
	return out[:SaltSize], out[SaltSize:]
}
