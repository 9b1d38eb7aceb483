package mpcproto

import (
	"Picnic2-Signature/auxengine"
	"Picnic2-Signature/commit"
	"Picnic2-Signature/params"
	"Picnic2-Signature/seedtree"
	"Picnic2-Signature/tape"
)

// commitAllParties commits every one of the N parties' seeds for round t,
// batching groups of four, and folds party N-1's finalized aux bits into
// that party's own commitment. Used both by the signer and by the
// verifier's unopened-round recomputation: both hold a full seed tree
// and a freshly-derived, aux-finalized tape at this point, so the inputs
// and the computation are identical.
func commitAllParties(p *params.ParamSet, tree *seedtree.Tree, tapes *tape.Tapes, salt []byte, t int) [][]byte {
	aux := auxengine.ExtractBits(p, tapes)
	c := make([][]byte, p.N)
	for j := 0; j < p.N; j += 4 {
		var seeds [4][]byte
		var auxes [4][]byte
		for i := 0; i < 4; i++ {
			seeds[i] = tree.GetLeaf(j + i)
		}
		if j+3 == p.N-1 {
			auxes[3] = aux
		}
		res := commit.CommitX4(seeds, auxes, salt, t, j, p.DigestSize)
		for i := 0; i < 4; i++ {
			c[j+i] = res[i]
		}
	}
	return c
}

// commitOpenedRound recomputes every party's commitment for an opened
// round from the verifier's partial view: every seed but the hidden
// party's (reconstructed from the proof's seed reveal), the
// signer-supplied aux bits for party N-1 (nil iff hidden == N-1), and the
// signer-supplied commitment for the hidden party itself, which the
// verifier has no way to recompute and must simply trust as one of the
// round's N commitments feeding Ch.
func commitOpenedRound(p *params.ParamSet, tree *seedtree.Tree, aux, hiddenCommit []byte, hidden int, salt []byte, t int) [][]byte {
	c := make([][]byte, p.N)
	for j := 0; j < p.N; j += 4 {
		if hidden >= j && hidden < j+4 {
			for i := 0; i < 4; i++ {
				idx := j + i
				if idx == hidden {
					continue
				}
				var a []byte
				if idx == p.N-1 {
					a = aux
				}
				c[idx] = commit.Commit(tree.GetLeaf(idx), a, salt, t, idx, p.DigestSize)
			}
			continue
		}
		var seeds [4][]byte
		var auxes [4][]byte
		for i := 0; i < 4; i++ {
			seeds[i] = tree.GetLeaf(j + i)
		}
		if j+3 == p.N-1 {
			auxes[3] = aux
		}
		res := commit.CommitX4(seeds, auxes, salt, t, j, p.DigestSize)
		for i := 0; i < 4; i++ {
			c[j+i] = res[i]
		}
	}
	c[hidden] = hiddenCommit
	return c
}

func partyBufs(t *tape.Tapes) [][]byte {
	out := make([][]byte, t.N())
	for j := range out {
		out[j] = t.PartyBuf(j)
	}
	return out
}
