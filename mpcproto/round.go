package mpcproto

import (
	"Picnic2-Signature/auxengine"
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/commit"
	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/params"
	"Picnic2-Signature/seedtree"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

// signRound carries everything one round's preprocessing and online
// simulation produce, kept around until proof assembly needs the
// eventually-opened rounds' detail.
type signRound struct {
	tree  *seedtree.Tree
	tapes *tape.Tapes
	msgs  *tape.Tapes
	c     [][]byte
	input []byte
	ch    []byte
	cv    []byte
}

// preprocessAndSimulate runs one round's full preprocessing (seed
// expansion, tape derivation, AuxEngine, per-party commitment) followed
// by the online simulation, per the per-round signer state machine
// SEEDED -> TAPED -> AUX_DONE -> COMMITTED -> SIMULATED.
func preprocessAndSimulate(p *params.ParamSet, iSeed, salt []byte, t int, privateKey, plaintext *binmat.Matrix) *signRound {
	tree := seedtree.GenerateSeeds(p.N, iSeed, salt, t)
	tapes := tape.Allocate(p.N, p.ViewSize, p.InputSize)
	fillTapes(p, tapes, tree, salt, t)

	keyMask := shares.Bundle(tapes.Words(p.StateBits))
	auxengine.Run(p, keyMask, tapes)

	c := commitAllParties(p, tree, tapes, salt, t)

	keyMask = shares.Bundle(tapes.Words(p.StateBits))
	maskedKey := binmat.VectorFromBytes(p.StateBits, keyMask.ReconstructBits())
	binmat.Xor(maskedKey, maskedKey, privateKey)

	msgs := lowmc.NewMessageSink(p)
	_, _ = lowmc.Simulate(p, maskedKey, keyMask, plaintext, tapes, msgs)

	input := binmat.VectorBytes(maskedKey, p.InputSize)
	ch := commit.H(c, p.DigestSize)
	cv := commit.V(input, partyBufs(msgs), p.DigestSize)

	return &signRound{tree: tree, tapes: tapes, msgs: msgs, c: c, input: input, ch: ch, cv: cv}
}
