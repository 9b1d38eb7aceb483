package binmat

import (
	"math/bits"
	"math/rand"
	"testing"
)

// TestBackendEquivalence sweeps width in {2,3,4} (128/192/256-bit state)
// against a battery of pseudo-random vectors and matrices, asserting that
// every compiled backend agrees bit-for-bit with the scalar reference
// (the battery size here is reduced to keep unit-test runtime small; the
// same check runs at package init() over a smaller battery against the
// backend actually selected at runtime).
func TestBackendEquivalence(t *testing.T) {
	backends := []Table{scalarTable, wideTable}
	rng := rand.New(rand.NewSource(42))
	for _, width := range []int{2, 3, 4} {
		ncols := width * 64
		for trial := 0; trial < 64; trial++ {
			A := Alloc(ncols, ncols, true)
			for i := 0; i < A.NRows; i++ {
				row := A.Row(i)[:A.Width]
				for j := range row {
					row[j] = rng.Uint64()
				}
			}
			v := Alloc(1, ncols, true)
			vrow := v.Row(0)[:v.Width]
			for j := range vrow {
				vrow[j] = rng.Uint64()
			}
			B := Precompute(A)

			want := Alloc(1, ncols, true)
			scalarTable.mulV(want, v, A)

			for _, be := range backends {
				got := Alloc(1, ncols, true)
				be.mulV(got, v, A)
				if !Equal(want, got) {
					t.Fatalf("backend %s mul_v mismatch width=%d trial=%d", be.Name, width, trial)
				}
				gotL := Alloc(1, ncols, true)
				be.mulVL(gotL, v, B)
				if !Equal(want, gotL) {
					t.Fatalf("backend %s mul_vl mismatch width=%d trial=%d", be.Name, width, trial)
				}
			}
		}
	}
}

func TestMulVEquivalentToAddMulVFromClear(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ncols := 192
	A := Alloc(ncols, ncols, true)
	for i := 0; i < A.NRows; i++ {
		row := A.Row(i)[:A.Width]
		for j := range row {
			row[j] = rng.Uint64()
		}
	}
	v := Alloc(1, ncols, true)
	vrow := v.Row(0)[:v.Width]
	for j := range vrow {
		vrow[j] = rng.Uint64()
	}

	c1 := Alloc(1, ncols, true)
	MulV(c1, v, A)

	c2 := Alloc(1, ncols, true)
	c2.Row(0)[0] = 0xDEADBEEF // garbage, must be cleared by AddMulV's caller contract via MulV semantics
	Clear(c2)
	AddMulV(c2, v, A)

	if !Equal(c1, c2) {
		t.Fatal("mul_v(c,v,A) != addmul_v(clear(c),v,A)")
	}
}

func TestLookupFormMatchesDirectForm(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ncols := 256
	A := Alloc(ncols, ncols, true)
	for i := 0; i < A.NRows; i++ {
		row := A.Row(i)[:A.Width]
		for j := range row {
			row[j] = rng.Uint64()
		}
	}
	B := Precompute(A)
	for trial := 0; trial < 16; trial++ {
		v := Alloc(1, ncols, true)
		vrow := v.Row(0)[:v.Width]
		for j := range vrow {
			vrow[j] = rng.Uint64()
		}
		direct := Alloc(1, ncols, true)
		MulV(direct, v, A)
		viaLookup := Alloc(1, ncols, true)
		MulVL(viaLookup, v, B)
		if !Equal(direct, viaLookup) {
			t.Fatalf("mul_vl != mul_v at trial %d", trial)
		}
	}
}

// refExtractBits ports mzd_additional.c's extract_bits bit-for-bit: it walks
// the set bits of mask from lowest to highest, clearing the lowest set bit
// each step, and for the k-th such bit records whether x has that bit set
// into bit k of the result.
func refExtractBits(x, mask uint64) uint64 {
	var res uint64
	for bb := uint64(1); mask != 0; bb <<= 1 {
		low := mask & (-mask)
		if x&low != 0 {
			res |= bb
		}
		mask &= mask - 1
	}
	return res
}

func refShuffle3(x, mask uint64) uint64 {
	return refExtractBits(x, mask)<<61 | refExtractBits(x, ^mask)
}

func refShuffle30(x, mask uint64) uint64 {
	return refExtractBits(x, mask)<<34 | refExtractBits(x, ^mask)
}

// TestShuffleMatchesReference checks Shuffle3/Shuffle30 against a direct
// port of mzd_shuffle_3/mzd_shuffle_30 and their shared extract_bits helper.
func TestShuffleMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 256; trial++ {
		x := rng.Uint64()

		mask3 := pickMaskWithPopcount(rng, 3)
		if got, want := Shuffle3(x, mask3), refShuffle3(x, mask3); got != want {
			t.Fatalf("shuffle3 mismatch trial=%d mask=%064b x=%064b: got %064b want %064b", trial, mask3, x, got, want)
		}

		mask30 := pickMaskWithPopcount(rng, 30)
		if got, want := Shuffle30(x, mask30), refShuffle30(x, mask30); got != want {
			t.Fatalf("shuffle30 mismatch trial=%d mask=%064b x=%064b: got %064b want %064b", trial, mask30, x, got, want)
		}
	}
}

// TestShufflePreservesPopcount checks that Shuffle only ever permutes bit
// positions: since no bit value is flipped, the number of set bits in x and
// in Shuffle(x, mask) must always agree, for any mask.
func TestShufflePreservesPopcount(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 256; trial++ {
		x := rng.Uint64()
		mask := rng.Uint64()
		y := Shuffle(x, mask)
		if bits.OnesCount64(y) != bits.OnesCount64(x) {
			t.Fatalf("shuffle changed popcount trial=%d mask=%064b x=%064b y=%064b", trial, mask, x, y)
		}
	}
}

// pickMaskWithPopcount draws a uniformly random 64-bit mask with exactly k
// bits set, by shuffling a fixed set of k marked positions among 64 slots.
func pickMaskWithPopcount(rng *rand.Rand, k int) uint64 {
	perm := rng.Perm(64)
	var mask uint64
	for i := 0; i < k; i++ {
		mask |= 1 << uint(perm[i])
	}
	return mask
}

func TestMulVParityTopBitsZeroBelowK(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	width := 2
	ncols := width * 64
	At := Alloc(3, ncols, true)
	for i := 0; i < 3; i++ {
		row := At.Row(i)[:width]
		for j := range row {
			row[j] = rng.Uint64()
		}
	}
	v := Alloc(1, ncols, true)
	vrow := v.Row(0)[:width]
	for j := range vrow {
		vrow[j] = rng.Uint64()
	}
	c := Alloc(1, ncols, true)
	MulVParity128_3(c, v, At)
	last := c.Row(0)[width-1]
	if last&((1<<61)-1) != 0 {
		t.Fatalf("bits below top 3 are not zero: %064b", last)
	}
}
