package mpcproto

import (
	"Picnic2-Signature/auxengine"
	"Picnic2-Signature/binmat"
	"Picnic2-Signature/lowmc"
	"Picnic2-Signature/measure"
	"Picnic2-Signature/merkletree"
	"Picnic2-Signature/params"
	"Picnic2-Signature/pcerr"
	"Picnic2-Signature/seedtree"
)

// Sign runs the full MPC-in-the-head signer: preprocessing and online
// simulation for every round, a Merkle commitment over the per-round
// Cv leaves, Fiat-Shamir challenge derivation, and proof assembly for
// the challenged rounds.
func Sign(p *params.ParamSet, kp *lowmc.KeyPair, message []byte) (*Signature, error) {
	if err := p.Validate(); err != nil {
		return nil, pcerr.Wrap(pcerr.ErrAllocationFailed, err.Error())
	}

	salt, rootSeed := computeSaltAndRoot(p, kp.Private, kp.PubKey, kp.Plaintext, message)
	iSeedTree := seedtree.GenerateSeeds(p.NumRounds, rootSeed, salt, 0)

	rounds := make([]*signRound, p.NumRounds)
	ch := make([][]byte, p.NumRounds)
	cvLeaves := make([][]byte, p.NumRounds)
	for t := 0; t < p.NumRounds; t++ {
		r := preprocessAndSimulate(p, iSeedTree.GetLeaf(t), salt, t, kp.Private, kp.Plaintext)
		rounds[t] = r
		ch[t] = r.ch
		cvLeaves[t] = r.cv
	}
	measure.Global.Add("mpcproto/sign/rounds", int64(p.NumRounds))

	cvTree := merkletree.BuildMerkleTree(cvLeaves, p.DigestSize)
	pubKeyBytes := binmat.VectorBytes(kp.PubKey, p.InputSize)
	plaintextBytes := binmat.VectorBytes(kp.Plaintext, p.InputSize)
	challengeC, challengeP := HCP(p, ch, cvTree.Root(), salt, pubKeyBytes, plaintextBytes, message)

	cvInfo := merkletree.OpenMerkleTree(cvTree, challengeC)
	iSeedInfo := seedtree.RevealSeeds(iSeedTree, challengeC)

	positionInC := make(map[int]int, len(challengeC))
	for i, t := range challengeC {
		positionInC[t] = i
	}

	proofs := make(map[int]*Proof, len(challengeC))
	for _, t := range challengeC {
		r := rounds[t]
		hidden := challengeP[positionInC[t]]
		seedInfo := seedtree.RevealSeeds(r.tree, []int{hidden})

		var aux []byte
		if hidden != p.N-1 {
			aux = auxengine.ExtractBits(p, r.tapes)
		}

		msgsBytes := append([]byte(nil), r.msgs.PartyBuf(hidden)...)

		proofs[t] = &Proof{
			SeedInfo: seedInfo,
			Aux:      aux,
			Input:    append([]byte(nil), r.input...),
			Msgs:     msgsBytes,
			C:        append([]byte(nil), r.c[hidden]...),
		}
	}
	measure.Global.Add("mpcproto/sign/opened_rounds", int64(len(proofs)))

	return &Signature{
		ChallengeC: challengeC,
		ChallengeP: challengeP,
		Salt:       salt,
		ISeedInfo:  iSeedInfo,
		CvInfo:     cvInfo,
		Proofs:     proofs,
	}, nil
}
