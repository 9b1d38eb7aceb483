// Package signature exposes the Picnic2-style MPC-in-the-head scheme as
// a plain generate/sign/verify API, the way the teacher's
// ntru/signverify package wraps NTRU's keygen/sign/verify primitives
// behind three top-level functions rather than exposing the protocol
// internals directly.
package signature

import (
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/measure"
	"Picnic2-Signature/mpcproto"
	"Picnic2-Signature/params"
	"Picnic2-Signature/pcerr"
)

// KeyPair is a generated private/public key pair for one parameter set.
type KeyPair struct {
	Params  *params.ParamSet
	Private *binmat.Matrix
	Public  *PublicKey
}

// PublicKey is the plaintext/ciphertext pair a Picnic2 verifier needs;
// the private key never appears in it.
type PublicKey struct {
	Plaintext *binmat.Matrix
	Cipher    *binmat.Matrix
}

// GenerateKeyPair draws a fresh LowMC key pair under p.
func GenerateKeyPair(p *params.ParamSet) (*KeyPair, error) {
	kp, err := lowmc.Keygen(p)
	if err != nil {
		return nil, pcerr.Wrap(pcerr.ErrAllocationFailed, err.Error())
	}
	return &KeyPair{
		Params:  p,
		Private: kp.Private,
		Public:  &PublicKey{Plaintext: kp.Plaintext, Cipher: kp.PubKey},
	}, nil
}

// Sign produces a serialized Picnic2 signature over message under kp's
// private key, ready to hand to Verify or to transmit on the wire.
func Sign(kp *KeyPair, message []byte) ([]byte, error) {
	lkp := &lowmc.KeyPair{Private: kp.Private, Plaintext: kp.Public.Plaintext, PubKey: kp.Public.Cipher}
	sig, err := mpcproto.Sign(kp.Params, lkp, message)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, mpcproto.BytesRequired(kp.Params, sig))
	n, err := mpcproto.Serialize(kp.Params, sig, buf)
	if err != nil {
		return nil, err
	}
	measure.Global.Add("signature/sign/bytes", int64(n))
	return buf[:n], nil
}

// Verify checks a serialized signature produced by Sign against pub and
// message, returning nil on acceptance or one of pcerr's sentinel kinds
// on rejection.
func Verify(p *params.ParamSet, pub *PublicKey, message, sig []byte) error {
	parsed, err := mpcproto.Deserialize(p, sig)
	if err != nil {
		return err
	}
	measure.Global.Add("signature/verify/bytes", int64(len(sig)))
	return mpcproto.Verify(p, pub.Cipher, pub.Plaintext, message, parsed)
}
