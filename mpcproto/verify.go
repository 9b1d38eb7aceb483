package mpcproto

import (
	"Picnic2-Signature/auxengine"
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/commit"
	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/measure"
	"Picnic2-Signature/merkletree"
	"Picnic2-Signature/params"
	"Picnic2-Signature/pcerr"
	"Picnic2-Signature/seedtree"
	"Picnic2-Signature/shares"
	"Picnic2-Signature/tape"
)

// Verify runs the full MPC-in-the-head verifier: seed-tree and tape
// reconstruction for every round, per-round commitment recomputation,
// online re-simulation for opened rounds, Merkle root recomputation, and
// a byte-exact challenge recomputation check. It returns nil on
// acceptance or, on rejection, one of pcerr's sentinel kinds, either
// wrapped in a *pcerr.Verdict or bare (ErrPaddingBitsNonZero,
// ErrChallengeMismatch); no partial result is ever returned.
func Verify(p *params.ParamSet, pubKey, plaintext *binmat.Matrix, message []byte, sig *Signature) error {
	if err := p.Validate(); err != nil {
		return pcerr.Wrap(pcerr.ErrAllocationFailed, err.Error())
	}
	if len(sig.ChallengeC) != p.NumOpenedRounds || len(sig.ChallengeP) != p.NumOpenedRounds {
		return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "challenge list length mismatch")
	}
	if len(sig.Salt) != SaltSize {
		return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "salt length mismatch")
	}

	seenC := make(map[int]bool, len(sig.ChallengeC))
	for _, c := range sig.ChallengeC {
		if c < 0 || c >= p.NumRounds {
			return pcerr.Wrap(pcerr.ErrChallengeOutOfRange, "challengeC entry out of range")
		}
		if seenC[c] {
			return pcerr.Wrap(pcerr.ErrChallengeDuplicate, "duplicate challengeC entry")
		}
		seenC[c] = true
	}
	for _, party := range sig.ChallengeP {
		if party < 0 || party >= p.N {
			return pcerr.Wrap(pcerr.ErrChallengeOutOfRange, "challengeP entry out of range")
		}
	}
	positionInC := make(map[int]int, len(sig.ChallengeC))
	for i, t := range sig.ChallengeC {
		positionInC[t] = i
	}
	for _, t := range sig.ChallengeC {
		if sig.Proofs[t] == nil {
			return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "missing proof for opened round")
		}
	}

	iSeedsTree, err := seedtree.ReconstructSeeds(p.NumRounds, p.SeedSize, sig.ISeedInfo, sig.Salt, 0, sig.ChallengeC)
	if err != nil {
		return err
	}

	ch := make([][]byte, p.NumRounds)
	cvLeaves := make(map[int][]byte, p.NumOpenedRounds)

	for t := 0; t < p.NumRounds; t++ {
		if !seenC[t] {
			iSeed := iSeedsTree.GetLeaf(t)
			if iSeed == nil {
				return pcerr.Wrap(pcerr.ErrSeedReconstructionFailed, "missing iSeed for unopened round")
			}
			tree := seedtree.GenerateSeeds(p.N, iSeed, sig.Salt, t)
			tapes := tape.Allocate(p.N, p.ViewSize, p.InputSize)
			fillTapes(p, tapes, tree, sig.Salt, t)
			keyMask := shares.Bundle(tapes.Words(p.StateBits))
			auxengine.Run(p, keyMask, tapes)
			c := commitAllParties(p, tree, tapes, sig.Salt, t)
			ch[t] = commit.H(c, p.DigestSize)
			continue
		}

		proof := sig.Proofs[t]
		hidden := sig.ChallengeP[positionInC[t]]

		if hidden != p.N-1 {
			if len(proof.Aux) != p.ViewSize {
				return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "aux length mismatch")
			}
			if !paddingZero(proof.Aux, p.NumGates()) {
				return pcerr.ErrPaddingBitsNonZero
			}
		} else if proof.Aux != nil {
			return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "aux present for hidden party N-1")
		}
		if len(proof.Input) != p.InputSize {
			return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "input length mismatch")
		}
		if len(proof.Msgs) != p.InputSize+p.ViewSize {
			return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "msgs length mismatch")
		}
		if !paddingZero(proof.Msgs[p.InputSize:], p.NumGates()) {
			return pcerr.ErrPaddingBitsNonZero
		}
		if len(proof.C) != p.DigestSize {
			return pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "commitment length mismatch")
		}

		tree, err := seedtree.ReconstructSeeds(p.N, p.SeedSize, proof.SeedInfo, sig.Salt, t, []int{hidden})
		if err != nil {
			return err
		}
		tapes := tape.Allocate(p.N, p.ViewSize, p.InputSize)
		fillTapes(p, tapes, tree, sig.Salt, t)
		if proof.Aux != nil {
			auxengine.InstallBits(p, tapes, proof.Aux)
		}

		c := commitOpenedRound(p, tree, proof.Aux, proof.C, hidden, sig.Salt, t)
		ch[t] = commit.H(c, p.DigestSize)

		hiddenMsgs := tape.Allocate(p.N, 0, p.InputSize+p.ViewSize)
		copy(hiddenMsgs.PartyBuf(hidden), proof.Msgs)

		outMsgs := lowmc.NewMessageSink(p)
		maskedKey := binmat.VectorFromBytes(p.StateBits, proof.Input)
		pub := lowmc.SimulateVerify(p, maskedKey, plaintext, tapes, hidden, hiddenMsgs, outMsgs)
		if !binmat.Equal(pub, pubKey) {
			return pcerr.Wrap(pcerr.ErrSimulationFailed, "reconstructed ciphertext does not match public key")
		}

		cvLeaves[t] = commit.V(proof.Input, partyBufs(outMsgs), p.DigestSize)
	}
	measure.Global.Add("mpcproto/verify/rounds", int64(p.NumRounds))

	nodes, err := merkletree.AddMerkleNodes(sig.CvInfo, p.DigestSize)
	if err != nil {
		return err
	}
	cvRoot, err := merkletree.RecoverRoot(p.NumRounds, p.DigestSize, cvLeaves, nodes)
	if err != nil {
		return err
	}

	pubKeyBytes := binmat.VectorBytes(pubKey, p.InputSize)
	plaintextBytes := binmat.VectorBytes(plaintext, p.InputSize)
	challengeC, challengeP := HCP(p, ch, cvRoot, sig.Salt, pubKeyBytes, plaintextBytes, message)

	if !intSliceEqual(challengeC, sig.ChallengeC) || !intSliceEqual(challengeP, sig.ChallengeP) {
		return pcerr.ErrChallengeMismatch
	}
	return nil
}
