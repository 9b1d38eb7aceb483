package mpcproto

import (
	"errors"
	"testing"

	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/params"
	"Picnic2-Signature/pcerr"
)

func testKeyPair(t *testing.T) (*params.ParamSet, *lowmc.KeyPair) {
	t.Helper()
	p := params.L1FS
	kp, err := lowmc.Keygen(p)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	return p, kp
}

func TestSignVerifyRoundTrip(t *testing.T) {
	p, kp := testKeyPair(t)
	message := []byte("the quick brown fox")

	sig, err := Sign(p, kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(p, kp.PubKey, kp.Plaintext, message, sig); err != nil {
		t.Fatalf("Verify rejected a genuine signature: %v", err)
	}
}

func TestSignVerifyRoundTripAllParamSets(t *testing.T) {
	sets := []*params.ParamSet{params.L1FS, params.L3FS, params.L5FS}
	for _, p := range sets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			kp, err := lowmc.Keygen(p)
			if err != nil {
				t.Fatalf("Keygen: %v", err)
			}
			message := []byte("the quick brown fox jumps over the lazy dog")

			sig, err := Sign(p, kp, message)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if err := Verify(p, kp.PubKey, kp.Plaintext, message, sig); err != nil {
				t.Fatalf("Verify rejected a genuine signature: %v", err)
			}

			buf := make([]byte, BytesRequired(p, sig))
			if _, err := Serialize(p, sig, buf); err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			got, err := Deserialize(p, buf)
			if err != nil {
				t.Fatalf("Deserialize: %v", err)
			}
			if err := Verify(p, kp.PubKey, kp.Plaintext, message, got); err != nil {
				t.Fatalf("Verify on deserialized signature: %v", err)
			}
		})
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	p, kp := testKeyPair(t)
	sig, err := Sign(p, kp, []byte("original message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(p, kp.PubKey, kp.Plaintext, []byte("tampered message"), sig); err == nil {
		t.Fatal("Verify accepted a signature under a different message")
	}
}

func TestVerifyRejectsChallengeOutOfRange(t *testing.T) {
	p, kp := testKeyPair(t)
	message := []byte("msg")
	sig, err := Sign(p, kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sig.ChallengeC[0] = p.NumRounds // one past the valid range

	err = Verify(p, kp.PubKey, kp.Plaintext, message, sig)
	if !errors.Is(err, pcerr.ErrChallengeOutOfRange) {
		t.Fatalf("Verify error = %v, want ErrChallengeOutOfRange", err)
	}
}

func TestVerifyRejectsTamperedInput(t *testing.T) {
	p, kp := testKeyPair(t)
	message := []byte("msg")
	sig, err := Sign(p, kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	for _, proof := range sig.Proofs {
		proof.Input[0] ^= 0x01
		break
	}
	if err := Verify(p, kp.PubKey, kp.Plaintext, message, sig); err == nil {
		t.Fatal("Verify accepted a signature with a tampered proof input")
	}
}

func TestVerifyRejectsNonZeroPaddingBit(t *testing.T) {
	// L1-FS has ViewSize*8 == NumGates (no aux padding bit); L3-FS has four.
	p := params.L3FS
	kp, err := lowmc.Keygen(p)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	message := []byte("msg")
	sig, err := Sign(p, kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	found := false
	for _, proof := range sig.Proofs {
		if proof.Aux == nil {
			continue
		}
		lastBit := p.NumGates()
		proof.Aux[lastBit/8] |= 1 << uint(lastBit%8)
		found = true
		break
	}
	if !found {
		t.Skip("no opened round had a hidden party other than N-1")
	}

	err = Verify(p, kp.PubKey, kp.Plaintext, message, sig)
	if !errors.Is(err, pcerr.ErrPaddingBitsNonZero) {
		t.Fatalf("Verify error = %v, want ErrPaddingBitsNonZero", err)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	p, kp := testKeyPair(t)
	message := []byte("roundtrip message")
	sig, err := Sign(p, kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	buf := make([]byte, BytesRequired(p, sig))
	n, err := Serialize(p, sig, buf)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Serialize wrote %d bytes, want %d", n, len(buf))
	}

	got, err := Deserialize(p, buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if err := Verify(p, kp.PubKey, kp.Plaintext, message, got); err != nil {
		t.Fatalf("Verify on deserialized signature: %v", err)
	}
}

func TestDeserializeRejectsTruncatedBuffer(t *testing.T) {
	p, kp := testKeyPair(t)
	sig, err := Sign(p, kp, []byte("msg"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	buf := make([]byte, BytesRequired(p, sig))
	if _, err := Serialize(p, sig, buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err = Deserialize(p, buf[:len(buf)-1])
	if !errors.Is(err, pcerr.ErrInvalidSignatureSize) {
		t.Fatalf("Deserialize error = %v, want ErrInvalidSignatureSize", err)
	}
}

func TestHCPChallengeCIsDistinctAndInRange(t *testing.T) {
	p := params.L1FS
	ch := make([][]byte, p.NumRounds)
	for i := range ch {
		ch[i] = make([]byte, p.DigestSize)
		ch[i][0] = byte(i)
	}
	cvRoot := make([]byte, p.DigestSize)
	salt := make([]byte, SaltSize)
	pub := make([]byte, p.InputSize)
	pt := make([]byte, p.InputSize)

	challengeC, challengeP := HCP(p, ch, cvRoot, salt, pub, pt, []byte("m"))
	if len(challengeC) != p.NumOpenedRounds || len(challengeP) != p.NumOpenedRounds {
		t.Fatalf("HCP returned %d/%d entries, want %d", len(challengeC), len(challengeP), p.NumOpenedRounds)
	}
	seen := make(map[int]bool, len(challengeC))
	for _, c := range challengeC {
		if c < 0 || c >= p.NumRounds {
			t.Fatalf("challengeC entry %d out of range [0,%d)", c, p.NumRounds)
		}
		if seen[c] {
			t.Fatalf("challengeC contains duplicate entry %d", c)
		}
		seen[c] = true
	}
	for _, party := range challengeP {
		if party < 0 || party >= p.N {
			t.Fatalf("challengeP entry %d out of range [0,%d)", party, p.N)
		}
	}
}
