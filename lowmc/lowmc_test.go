package lowmc

import (
	"testing"

	"Picnic2-Signature/binmat"
	"Picnic2-Signature/params"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

func zeroVec(stateBits int) *binmat.Matrix {
	return binmat.Alloc(1, stateBits, true)
}

func TestEncryptDeterministic(t *testing.T) {
	p := params.L1FS
	key := zeroVec(p.StateBits)
	key.Row(0)[0] = 0x0102030405060708
	plaintext := zeroVec(p.StateBits)
	plaintext.Row(0)[0] = 0xAABBCCDDEEFF0011

	c1 := Encrypt(p, key, plaintext)
	c2 := Encrypt(p, key, plaintext)
	if !binmat.Equal(c1, c2) {
		t.Fatal("Encrypt is not deterministic for identical inputs")
	}
}

func TestEncryptChangesWithKey(t *testing.T) {
	p := params.L1FS
	plaintext := zeroVec(p.StateBits)
	plaintext.Row(0)[0] = 0x1

	key1 := zeroVec(p.StateBits)
	key2 := zeroVec(p.StateBits)
	key2.Row(0)[0] = 1

	c1 := Encrypt(p, key1, plaintext)
	c2 := Encrypt(p, key2, plaintext)
	if binmat.Equal(c1, c2) {
		t.Fatal("flipping one key bit did not change the ciphertext")
	}
}

func TestSboxTripleTruthTable(t *testing.T) {
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				a2, b2, c2 := sboxTriple(a, b, c)
				wantA := a ^ (b & c)
				wantB := a ^ b ^ (c & a)
				wantC := a ^ b ^ c ^ (a & b)
				if a2 != wantA || b2 != wantB || c2 != wantC {
					t.Fatalf("sboxTriple(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
						a, b, c, a2, b2, c2, wantA, wantB, wantC)
				}
			}
		}
	}
}

func TestApplyLinearToMaskIsLinear(t *testing.T) {
	p := params.L1FS
	linear := p.LinearMatrices[0]

	a := make(shares.Bundle, p.StateBits)
	b := make(shares.Bundle, p.StateBits)
	for i := range a {
		a[i] = uint64(i) * 0x9E3779B97F4A7C15
		b[i] = uint64(i+1) * 0xBF58476D1CE4E5B9
	}

	sum := append(shares.Bundle(nil), a...)
	shares.XorInto(sum, b)

	left := ApplyLinearToMask(linear, sum)
	right := ApplyLinearToMask(linear, a)
	shares.XorInto(right, ApplyLinearToMask(linear, b))

	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("linearity broken at output wire %d: %x != %x", i, left[i], right[i])
		}
	}
}

// TestSimulateMatchesEncryptWithZeroMask checks the pub/mask split of
// RunCipher against the plain cipher for the degenerate case where the
// key carries no mask at all: every party's share word is zero for every
// wire, so the masked circuit walk and the plain walk must compute
// bit-identical public states at every round.
func TestSimulateMatchesEncryptWithZeroMask(t *testing.T) {
	p := params.L1FS
	key := zeroVec(p.StateBits)
	key.Row(0)[0] = 0x1122334455667788
	plaintext := zeroVec(p.StateBits)
	plaintext.Row(0)[0] = 0xDEADBEEFCAFEBABE

	want := Encrypt(p, key, plaintext)

	zeroMask := make(shares.Bundle, p.StateBits)
	tapes := tape.Allocate(shares.N, p.ViewSize, p.InputSize)
	msgs := NewMessageSink(p)

	got, _ := Simulate(p, key, zeroMask, plaintext, tapes, msgs)
	if !binmat.Equal(got, want) {
		t.Fatalf("Simulate with zero key mask diverged from Encrypt:\n got row0=%x\n want row0=%x", got.Row(0)[0], want.Row(0)[0])
	}
}

func TestMessageSinkShape(t *testing.T) {
	p := params.L1FS
	sink := NewMessageSink(p)
	if sink.N() != shares.N {
		t.Fatalf("message sink has %d lanes, want %d", sink.N(), shares.N)
	}
	wantBits := (p.InputSize + p.ViewSize) * 8
	if sink.BitLen() != wantBits {
		t.Fatalf("message sink BitLen() = %d, want %d", sink.BitLen(), wantBits)
	}
}
