// Package backend holds the process-wide dispatch table that binds the
// two capability sets the rest of the module selects at startup rather
// than re-deciding on every call: binmat's width-specialized
// matrix-vector kernel, and the cipher's affine-layer and S-box
// implementations that lowmc.Encrypt and lowmc.RunCipher drive. Binding
// both together under one Selected value means a consumer never ends up
// pairing a matrix kernel from one backend generation with a cipher
// routine from another.
//
// lowmc registers its own affine-layer and S-box functions from its own
// init(), so this package never needs to import lowmc; binmat.Selected
// is itself finalized by binmat's init() before lowmc's runs, since
// lowmc imports binmat.
package backend

import "Picnic2-Signature/binmat"

// AffineFunc evaluates the cipher's affine layer (linear map plus round
// constant) over a public state vector.
type AffineFunc func(out, in, linear, roundConstant *binmat.Matrix)

// SboxFunc applies the cipher's 3-bit nonlinear layer to numSboxes
// triples of a public state vector, in place.
type SboxFunc func(state *binmat.Matrix, numSboxes int)

// Table binds one backend generation's full capability set.
type Table struct {
	Name   string
	BinMat binmat.Table
	Affine AffineFunc
	Sbox   SboxFunc
}

// Selected is the dispatch table bound once at process start and
// thereafter read-only.
var Selected Table

// Register installs the cipher half of the dispatch table, pairing it
// with whatever binmat backend was already selected. Called exactly
// once, from lowmc's init, before any signature operation runs.
func Register(affine AffineFunc, sbox SboxFunc) {
	Selected = Table{
		Name:   binmat.Selected.Name,
		BinMat: binmat.Selected,
		Affine: affine,
		Sbox:   sbox,
	}
}
