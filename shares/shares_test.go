package shares

import (
	"bytes"
	"testing"
)

func TestReconstructParity(t *testing.T) {
	cases := []struct {
		word uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{0b11, 0},
		{0b111, 1},
		{^uint64(0), 0}, // 64 set bits, even parity
	}
	for _, c := range cases {
		if got := Reconstruct(c.word); got != c.want {
			t.Fatalf("Reconstruct(%b) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestBundleReconstructBits(t *testing.T) {
	b := Bundle{0b1, 0b0, 0b11, 0b111, 0b1, 0b1, 0b1, 0b1}
	got := b.ReconstructBits()
	want := []byte{0b11111001}
	if !bytes.Equal(got, want) {
		t.Fatalf("ReconstructBits() = %08b, want %08b", got[0], want[0])
	}
}

func TestXorIntoIsSelfCancelling(t *testing.T) {
	a := Bundle{1, 2, 3}
	b := Bundle{1, 2, 3}
	XorInto(a, b)
	for i, w := range a {
		if w != 0 {
			t.Fatalf("a[%d] = %d, want 0", i, w)
		}
	}
}

func TestXorIntoLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	XorInto(Bundle{1, 2}, Bundle{1})
}
