package signature

import (
	"testing"

	"Picnic2-Signature/params"
)

func TestGenerateSignVerifyRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair(params.L1FS)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	message := []byte("the quick brown fox jumps over the lazy dog")

	sig, err := Sign(kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(params.L1FS, kp.Public, message, sig); err != nil {
		t.Fatalf("Verify rejected a genuine signature: %v", err)
	}
}

func TestGenerateSignVerifyRoundTripAllParamSets(t *testing.T) {
	sets := []*params.ParamSet{params.L1FS, params.L3FS, params.L5FS}
	for _, p := range sets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			kp, err := GenerateKeyPair(p)
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			message := []byte("the quick brown fox jumps over the lazy dog")

			sig, err := Sign(kp, message)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if err := Verify(p, kp.Public, message, sig); err != nil {
				t.Fatalf("Verify rejected a genuine signature: %v", err)
			}
		})
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	kp, err := GenerateKeyPair(params.L1FS)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	sig, err := Sign(kp, []byte("original"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(params.L1FS, kp.Public, []byte("tampered"), sig); err == nil {
		t.Fatal("Verify accepted a signature under a different message")
	}
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	kp, err := GenerateKeyPair(params.L1FS)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	other, err := GenerateKeyPair(params.L1FS)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	message := []byte("msg")
	sig, err := Sign(kp, message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(params.L1FS, other.Public, message, sig); err == nil {
		t.Fatal("Verify accepted a signature under the wrong public key")
	}
}
