package mpcproto

import (
	"encoding/binary"

	"Picnic2-Signature/kdf"
	"Picnic2-Signature/params"
	"Picnic2-Signature/seedtree"
	"Picnic2-Signature/tape"
)

const prefixTape byte = 0x43

func u16le(v int) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return b[:]
}

func allLeavesPresent(tree *seedtree.Tree, start, n int) bool {
	for i := 0; i < n; i++ {
		if tree.GetLeaf(start+i) == nil {
			return false
		}
	}
	return true
}

// fillTapes expands every party's seed-tree leaf into its tape content,
// batched four-wide when all four leaves of a group are present
// (absorbing seed, salt, round, and party index into one SHAKE256 lane
// per party, matching commit.CommitX4's grouping). A party whose leaf is
// nil — the verifier's hidden party, or any leaf under a hidden subtree
// — is left at its zero-initialized tape content; the caller never reads
// that party's tape region for anything but zero-fill purposes.
func fillTapes(p *params.ParamSet, tapes *tape.Tapes, tree *seedtree.Tree, salt []byte, t int) {
	tapeLen := 2*p.ViewSize + p.InputSize
	for j := 0; j < p.N; j += 4 {
		if allLeavesPresent(tree, j, 4) {
			b := kdf.NewBatch4WithPrefix(prefixTape)
			for i := 0; i < 4; i++ {
				b.UpdateLane(i, tree.GetLeaf(j+i))
			}
			b.UpdateShared(salt)
			b.UpdateShared(u16le(t))
			for i := 0; i < 4; i++ {
				b.UpdateLane(i, u16le(j+i))
			}
			b.Final()
			outs := b.Squeeze(tapeLen)
			for i := 0; i < 4; i++ {
				copy(tapes.PartyBuf(j+i), outs[i])
			}
			continue
		}
		for i := 0; i < 4; i++ {
			seed := tree.GetLeaf(j + i)
			if seed == nil {
				continue
			}
			h := kdf.NewWithPrefix(prefixTape)
			h.Update(seed)
			h.Update(salt)
			h.Update(u16le(t))
			h.Update(u16le(j + i))
			h.Final()
			copy(tapes.PartyBuf(j+i), h.Squeeze(tapeLen))
		}
	}
}
