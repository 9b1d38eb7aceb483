// Package binmat implements the dense GF(2) vector-by-matrix kernel: a
// fixed-size binary linear algebra engine specialized for the state widths
// of the LowMC-style cipher (128, 192, 256 bits).
//
// Rows are stored as contiguous 64-bit words, LSB-first within a word and
// word 0 first within a row (little-endian at byte level). Every row is
// padded out to rowWords(ncols) words and any bits beyond column ncols-1
// are kept zero by construction; every operation in this package
// preserves that invariant.
package binmat

import (
	"unsafe"
)

// alignBytes is the payload alignment matrix storage requires. 32 bytes
// covers both the 16-byte (128-bit) and 32-byte (256-bit) SIMD lane
// widths the backends below are built around.
const alignBytes = 32

// Matrix is a dense row-major GF(2) matrix (or, when NRows==1, a Vector).
type Matrix struct {
	NRows     int
	NCols     int
	Width     int // words needed to hold NCols bits: ceil(NCols/64)
	RowStride int // words allocated per row, >= Width, alignment-padded
	Data      []uint64
	raw       []uint64 // the unaligned backing allocation; keeps it reachable
}

// rowWords returns ceil(ncols/64).
func rowWords(ncols int) int {
	return (ncols + 63) / 64
}

// rowStride returns the word stride for a row of the given column count,
// rounded up so that each row begins at a 16- or 32-byte boundary: widths
// above 2 words (128 bits) round up to a 32-byte (4-word) stride, narrower
// rows round up to a 16-byte (2-word) stride, so that every row starts
// 16- or 32-byte aligned regardless of column count.
func rowStride(ncols int) int {
	w := rowWords(ncols)
	if w > 2 {
		return (w + 3) &^ 3
	}
	return (w + 1) &^ 1
}

// alignedUint64s returns a slice of n uint64s whose first element starts at
// a alignBytes-byte boundary, together with the raw over-allocation backing
// it. This is the module's one piece of manual aligned allocation (see
// DESIGN.md).
func alignedUint64s(n int) (aligned, raw []uint64) {
	padWords := alignBytes / 8
	raw = make([]uint64, n+padWords)
	if len(raw) == 0 {
		return raw, raw
	}
	addr := uintptr(unsafe.Pointer(&raw[0]))
	misalign := addr % alignBytes
	var offsetWords int
	if misalign != 0 {
		offsetWords = int(alignBytes-misalign) / 8
	}
	return raw[offsetWords : offsetWords+n : offsetWords+n], raw
}

// Alloc returns a new matrix with nrows rows of ncols columns, 32-byte
// aligned storage, zeroed when clear is true (it is always zeroed in this
// Go implementation, since make([]uint64, ...) zero-fills; clear only
// controls whether callers may rely on that without an explicit Clear
// call, per the C reference's distinction between calloc- and
// malloc-backed allocation).
func Alloc(nrows, ncols int, clear bool) *Matrix {
	if nrows < 0 || ncols < 0 {
		panic("binmat: negative dimension")
	}
	stride := rowStride(ncols)
	aligned, raw := alignedUint64s(nrows * stride)
	m := &Matrix{
		NRows:     nrows,
		NCols:     ncols,
		Width:     rowWords(ncols),
		RowStride: stride,
		Data:      aligned,
		raw:       raw,
	}
	if !clear {
		// Still deterministic (Go zeroes all allocations); kept as a no-op
		// branch so callers can still be explicit about not relying on it.
	}
	return m
}

// AllocMany packs n matrices of identical shape into one contiguous
// allocation: operand matrices used in hot loops benefit from locality
// and from amortized allocator overhead.
// Freeing any one of the returned matrices does not reclaim storage early
// in this Go implementation (there is no explicit free); the batch is
// simply one allocation shared by n header structs, matching "freeing the
// first frees all" in spirit (they are collected together, not before).
func AllocMany(n, nrows, ncols int, clear bool) []*Matrix {
	if n <= 0 {
		return nil
	}
	stride := rowStride(ncols)
	perMatrix := nrows * stride
	aligned, raw := alignedUint64s(perMatrix * n)
	out := make([]*Matrix, n)
	for i := 0; i < n; i++ {
		out[i] = &Matrix{
			NRows:     nrows,
			NCols:     ncols,
			Width:     rowWords(ncols),
			RowStride: stride,
			Data:      aligned[i*perMatrix : (i+1)*perMatrix : (i+1)*perMatrix],
			raw:       raw,
		}
	}
	return out
}

// Row returns the word slice backing row i (length RowStride, only the
// first Width words are meaningful).
func (m *Matrix) Row(i int) []uint64 {
	off := i * m.RowStride
	return m.Data[off : off+m.RowStride]
}

// Copy returns a deep duplicate of m; the result owns its own storage
// independently of m.
func (m *Matrix) Copy() *Matrix {
	dst := Alloc(m.NRows, m.NCols, false)
	CopyInto(dst, m)
	return dst
}

// CopyInto copies src's row content into dst in place. dst and src must
// have identical shape.
func CopyInto(dst, src *Matrix) {
	if dst.NRows != src.NRows || dst.NCols != src.NCols {
		panic("binmat: copy shape mismatch")
	}
	for i := 0; i < dst.NRows; i++ {
		copy(dst.Row(i)[:dst.Width], src.Row(i)[:src.Width])
	}
}

// Clear zeros every row of m (only the meaningful Width words; padding
// words beyond Width are already zero and stay zero).
func Clear(m *Matrix) {
	for i := 0; i < m.NRows; i++ {
		row := m.Row(i)
		for j := range row[:m.Width] {
			row[j] = 0
		}
	}
}

// Equal reports whether a and b have identical shape and row content.
// Shape mismatch short-circuits to false.
func Equal(a, b *Matrix) bool {
	if a.NRows != b.NRows || a.NCols != b.NCols {
		return false
	}
	for i := 0; i < a.NRows; i++ {
		ra, rb := a.Row(i)[:a.Width], b.Row(i)[:b.Width]
		for j := range ra {
			if ra[j] != rb[j] {
				return false
			}
		}
	}
	return true
}

// MaskRow zeros the bits of row i beyond column NCols-1, restoring the
// zero-padding invariant after a caller has written raw words into a row
// (e.g. from an external PRG) without already respecting the column
// count. A no-op when NCols is a multiple of 64.
func MaskRow(m *Matrix, i int) {
	extra := m.Width*64 - m.NCols
	if extra == 0 {
		return
	}
	row := m.Row(i)
	row[m.Width-1] &= (1 << uint(64-extra)) - 1
}

// bytesOf reinterprets a matrix's meaningful storage as a byte slice for
// byte-oriented backends (see xor.go). The returned slice aliases m.Data.
func bytesOf(words []uint64) []byte {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*8)
}
