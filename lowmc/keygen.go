package lowmc

import (
	"crypto/rand"

	"Picnic2-Signature/binmat"
	"Picnic2-Signature/params"
)

// KeyPair is a LowMC private key together with the plaintext/ciphertext
// pair that forms the public key, mirroring the teacher's
// ntru/signverify.GenerateKeypair shape (a single struct bundling
// everything Sign/Verify need, rather than separate opaque handles).
type KeyPair struct {
	Private   *binmat.Matrix
	Plaintext *binmat.Matrix
	PubKey    *binmat.Matrix
}

// Keygen draws a uniformly random private key and plaintext and computes
// the corresponding ciphertext by running Encrypt once. Key generation
// sits outside the MPC-in-the-head core proper but is required for the
// module to be usable end-to-end.
func Keygen(p *params.ParamSet) (*KeyPair, error) {
	key := binmat.Alloc(1, p.StateBits, true)
	if err := randomizeVector(key); err != nil {
		return nil, err
	}
	plaintext := binmat.Alloc(1, p.StateBits, true)
	if err := randomizeVector(plaintext); err != nil {
		return nil, err
	}
	pub := Encrypt(p, key, plaintext)
	return &KeyPair{Private: key, Plaintext: plaintext, PubKey: pub}, nil
}

func randomizeVector(v *binmat.Matrix) error {
	row := v.Row(0)
	buf := make([]byte, v.Width*8)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	for w := 0; w < v.Width; w++ {
		var word uint64
		for b := 0; b < 8; b++ {
			word |= uint64(buf[w*8+b]) << uint(8*b)
		}
		row[w] = word
	}
	binmat.MaskRow(v, 0)
	return nil
}
