package binmat

import "testing"

func TestAllocZeroedAndAligned(t *testing.T) {
	m := Alloc(10, 200, true)
	if m.Width != 4 {
		t.Fatalf("width = %d, want 4", m.Width)
	}
	if m.RowStride < m.Width {
		t.Fatalf("rowstride %d < width %d", m.RowStride, m.Width)
	}
	for i := 0; i < m.NRows; i++ {
		for _, w := range m.Row(i) {
			if w != 0 {
				t.Fatalf("row %d not zeroed", i)
			}
		}
	}
}

func TestAllocManyShares(t *testing.T) {
	ms := AllocMany(4, 5, 128, true)
	if len(ms) != 4 {
		t.Fatalf("got %d matrices, want 4", len(ms))
	}
	for _, m := range ms {
		if m.NRows != 5 || m.NCols != 128 {
			t.Fatalf("unexpected shape %+v", m)
		}
	}
}

func TestCopyAndEqual(t *testing.T) {
	a := Alloc(3, 192, true)
	for i := 0; i < 3; i++ {
		row := a.Row(i)
		row[0] = uint64(i) + 1
	}
	b := a.Copy()
	if !Equal(a, b) {
		t.Fatal("copy not equal to source")
	}
	b.Row(0)[0] ^= 1
	if Equal(a, b) {
		t.Fatal("mutated copy compared equal")
	}
}

func TestEqualShapeMismatch(t *testing.T) {
	a := Alloc(2, 128, true)
	b := Alloc(3, 128, true)
	if Equal(a, b) {
		t.Fatal("matrices of different shape compared equal")
	}
}

func TestClear(t *testing.T) {
	a := Alloc(2, 128, true)
	a.Row(0)[0] = 0xFF
	Clear(a)
	for _, w := range a.Row(0) {
		if w != 0 {
			t.Fatal("clear left nonzero word")
		}
	}
}

func TestXorIdentities(t *testing.T) {
	a := Alloc(4, 256, true)
	for i := 0; i < 4; i++ {
		row := a.Row(i)
		for j := range row[:a.Width] {
			row[j] = uint64(i*7 + j*13 + 1)
		}
	}
	zero := Alloc(4, 256, true)
	res := Alloc(4, 256, true)
	Xor(res, a, a)
	if !Equal(res, zero) {
		t.Fatal("xor(x,x) != 0")
	}

	b := Alloc(4, 256, true)
	for i := 0; i < 4; i++ {
		row := b.Row(i)
		for j := range row[:b.Width] {
			row[j] = uint64(i + j*3 + 5)
		}
	}
	ab := Alloc(4, 256, true)
	ba := Alloc(4, 256, true)
	Xor(ab, a, b)
	Xor(ba, b, a)
	if !Equal(ab, ba) {
		t.Fatal("xor not commutative")
	}
}
