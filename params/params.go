// Package params defines the fixed parameter sets for the three security
// levels (L1-FS, L3-FS, L5-FS) as literal-table ParamSet values, the way
// the teacher's prf/params.go defines a Params struct with a Validate
// method rather than scattering magic numbers through the codebase.
//
// The LowMC linear layer, round-constant, and key-schedule matrices are
// not the official Picnic byte-exact constants (those are a published
// table external to this module's concerns); they are derived
// deterministically from a fixed label through kdf, which gives a
// parameter set that is internally consistent and reproducible without
// vendoring a third-party constant table. See DESIGN.md's Open Question
// entry for params.
package params

import (
	"fmt"

	"Picnic2-Signature/binmat"
	"Picnic2-Signature/kdf"
)

// ParamSet fixes every size that the rest of the module treats as a
// compile-time constant elsewhere but which the module instead threads
// explicitly, so the same code runs all three security levels without
// recompilation.
type ParamSet struct {
	Name string

	StateBits int // LowMC state width: 128, 192, or 256
	Width     int // StateBits/64, one of {2,3,4}

	N               int // party count, fixed at 64
	NumRounds       int // total MPC repetitions
	NumOpenedRounds int // tau, repetitions opened to the verifier

	NumLowMCRounds int // r, LowMC cipher rounds
	NumSboxes      int // m, 3-bit S-boxes applied per LowMC round

	ViewSize   int // bytes needed to hold one bit per AND gate (aux length); tape length is 2*ViewSize+InputSize, holding the rOut and and-helper bit streams side by side
	InputSize  int // bytes of the (masked) cipher state
	SeedSize   int // bytes of one seed-tree node; equal to InputSize for every parameter set here
	DigestSize int // commitment / Merkle digest length in bytes

	LinearMatrices   []*binmat.Matrix // NumLowMCRounds matrices, StateBits x StateBits
	RoundConstants   []*binmat.Matrix // NumLowMCRounds vectors, 1 x StateBits
	KeyMatrices      []*binmat.Matrix // NumLowMCRounds+1 matrices, StateBits x StateBits
}

// Validate checks internal consistency of a ParamSet, the way the
// teacher's prf.Params.Validate checks its own table before use.
func (p *ParamSet) Validate() error {
	if p.Width*64 != p.StateBits {
		return fmt.Errorf("params %s: Width*64 (%d) != StateBits (%d)", p.Name, p.Width*64, p.StateBits)
	}
	if p.N != 64 {
		return fmt.Errorf("params %s: N must be 64, got %d", p.Name, p.N)
	}
	if p.NumOpenedRounds <= 0 || p.NumOpenedRounds > p.NumRounds {
		return fmt.Errorf("params %s: NumOpenedRounds (%d) out of range for NumRounds (%d)", p.Name, p.NumOpenedRounds, p.NumRounds)
	}
	if len(p.LinearMatrices) != p.NumLowMCRounds {
		return fmt.Errorf("params %s: got %d linear matrices, want %d", p.Name, len(p.LinearMatrices), p.NumLowMCRounds)
	}
	if len(p.RoundConstants) != p.NumLowMCRounds {
		return fmt.Errorf("params %s: got %d round constants, want %d", p.Name, len(p.RoundConstants), p.NumLowMCRounds)
	}
	if len(p.KeyMatrices) != p.NumLowMCRounds+1 {
		return fmt.Errorf("params %s: got %d key matrices, want %d", p.Name, len(p.KeyMatrices), p.NumLowMCRounds+1)
	}
	expectedGates := p.NumLowMCRounds * p.NumSboxes * 3
	if p.ViewSize*8 < expectedGates {
		return fmt.Errorf("params %s: ViewSize %d bytes cannot hold %d AND-gate aux bits", p.Name, p.ViewSize, expectedGates)
	}
	if p.InputSize*8 < p.StateBits {
		return fmt.Errorf("params %s: InputSize %d bytes cannot hold a %d-bit state", p.Name, p.InputSize, p.StateBits)
	}
	return nil
}

// NumGates returns the total number of AND gates evaluated per round:
// three per S-box, NumSboxes S-boxes per LowMC round, NumLowMCRounds
// rounds.
func (p *ParamSet) NumGates() int { return p.NumLowMCRounds * p.NumSboxes * 3 }

func deriveMatrix(label string, idx, rows, cols int) *binmat.Matrix {
	m := binmat.Alloc(rows, cols, true)
	h := kdf.NewWithPrefix(0xFE)
	h.Update([]byte(label))
	h.Update([]byte{byte(idx), byte(idx >> 8)})
	h.Final()
	width := m.Width
	for r := 0; r < rows; r++ {
		raw := h.Squeeze(width * 8)
		row := m.Row(r)[:width]
		for w := 0; w < width; w++ {
			var word uint64
			for b := 0; b < 8; b++ {
				word |= uint64(raw[w*8+b]) << uint(8*b)
			}
			row[w] = word
		}
		binmat.MaskRow(m, r)
	}
	return m
}

func buildLowMCTables(name string, stateBits, numLowMCRounds, numSboxes int) ([]*binmat.Matrix, []*binmat.Matrix, []*binmat.Matrix) {
	linear := make([]*binmat.Matrix, numLowMCRounds)
	constants := make([]*binmat.Matrix, numLowMCRounds)
	keys := make([]*binmat.Matrix, numLowMCRounds+1)

	keys[0] = deriveMatrix(name+"-key", 0, stateBits, stateBits)
	for i := 0; i < numLowMCRounds; i++ {
		linear[i] = deriveMatrix(name+"-lin", i, stateBits, stateBits)
		constants[i] = deriveMatrix(name+"-const", i, 1, stateBits)
		keys[i+1] = deriveMatrix(name+"-key", i+1, stateBits, stateBits)
	}
	return linear, constants, keys
}

func newParamSet(name string, stateBits, width, numRounds, numOpenedRounds, numLowMCRounds, numSboxes, digestSize int) *ParamSet {
	linear, constants, keys := buildLowMCTables(name, stateBits, numLowMCRounds, numSboxes)
	p := &ParamSet{
		Name:            name,
		StateBits:       stateBits,
		Width:           width,
		N:               64,
		NumRounds:       numRounds,
		NumOpenedRounds: numOpenedRounds,
		NumLowMCRounds:  numLowMCRounds,
		NumSboxes:       numSboxes,
		DigestSize:      digestSize,
		InputSize:       stateBits / 8,
		SeedSize:        stateBits / 8,
		LinearMatrices:  linear,
		RoundConstants:  constants,
		KeyMatrices:     keys,
	}
	p.ViewSize = (p.NumGates() + 7) / 8
	if err := p.Validate(); err != nil {
		panic("params: " + name + ": " + err.Error())
	}
	return p
}

// L1FS is the 128-bit-state, L1-security parameter set.
var L1FS = newParamSet("L1-FS", 128, 2, 219, 36, 20, 10, 32)

// L3FS is the 192-bit-state, L3-security parameter set.
var L3FS = newParamSet("L3-FS", 192, 3, 329, 52, 30, 10, 48)

// L5FS is the 256-bit-state, L5-security parameter set.
var L5FS = newParamSet("L5-FS", 256, 4, 438, 68, 38, 10, 64)
