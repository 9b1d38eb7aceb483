package tape

import "testing"

func TestAllocateShape(t *testing.T) {
	tp := Allocate(64, 16, 16)
	if tp.N() != 64 {
		t.Fatalf("N()=%d want 64", tp.N())
	}
	if tp.BitLen() != (2*16+16)*8 {
		t.Fatalf("BitLen()=%d want %d", tp.BitLen(), (2*16+16)*8)
	}
}

func TestWordPacksPartyIntoBit(t *testing.T) {
	tp := Allocate(4, 8, 8)
	setBit(tp.PartyBuf(0), 5, 1)
	setBit(tp.PartyBuf(2), 5, 1)
	for i := 0; i < 5; i++ {
		tp.Word()
	}
	w := tp.Word()
	want := uint64(1)<<0 | uint64(1)<<2
	if w != want {
		t.Fatalf("word = %b, want %b", w, want)
	}
	if tp.Pos() != 6 {
		t.Fatalf("pos = %d, want 6", tp.Pos())
	}
}

func TestWordsAdvancesCursorByN(t *testing.T) {
	tp := Allocate(8, 8, 8)
	tp.Words(10)
	if tp.Pos() != 10 {
		t.Fatalf("pos = %d, want 10", tp.Pos())
	}
}

func TestResetRewindsCursor(t *testing.T) {
	tp := Allocate(8, 8, 8)
	tp.Words(20)
	tp.Reset()
	if tp.Pos() != 0 {
		t.Fatalf("pos after reset = %d, want 0", tp.Pos())
	}
}

func TestAuxBitRoundTrip(t *testing.T) {
	tp := Allocate(64, 16, 16)
	numInputBits := 8
	for gate := 0; gate < 5; gate++ {
		tp.SetAuxBit(numInputBits, gate, gate%2)
	}
	for gate := 0; gate < 5; gate++ {
		got := tp.GetAuxBit(numInputBits, gate)
		if got != gate%2 {
			t.Fatalf("gate %d: got %d want %d", gate, got, gate%2)
		}
	}
}

func TestAuxBitDoesNotDisturbAdjacentOutputMaskBit(t *testing.T) {
	tp := Allocate(64, 16, 16)
	numInputBits := 8
	last := tp.N() - 1
	setBit(tp.PartyBuf(last), numInputBits, 1) // output-mask bit for gate 0
	tp.SetAuxBit(numInputBits, 0, 1)
	if getBit(tp.PartyBuf(last), numInputBits) != 1 {
		t.Fatal("SetAuxBit clobbered the adjacent output-mask bit")
	}
}
