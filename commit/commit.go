// Package commit implements the Fiat-Shamir style commitments the
// signer and verifier exchange in place of interaction: per-party seed
// (and aux) commitments, a commitment-tree digest over all N parties of
// a round, and a digest over one round's revealed input and message
// transcripts.
//
// Grounded on DECS/merkle.go's shake16 (open a SHAKE256 state, write
// once, read a fixed digest) and on the teacher's domain-separation
// byte convention (leafPrefix/nodePrefix in merkle.go); here the
// separation byte is the role of the commitment (seed, party-hash,
// view) rather than leaf-vs-node, absorbed through kdf.
package commit

import (
	"encoding/binary"

	"Picnic2-Signature/kdf"
)

const (
	prefixSeed byte = 0x00
	prefixH    byte = 0x01
	prefixV    byte = 0x02
)

// Commit absorbs, in order, seed, an optional aux (nil when this party
// carries none), salt, round t, and party j, then squeezes digestSize
// bytes. t and j are absorbed as little-endian u16, matching the wire
// layout's integer convention.
func Commit(seed, aux, salt []byte, t, j int, digestSize int) []byte {
	h := kdf.NewWithPrefix(prefixSeed)
	h.Update(seed)
	if aux != nil {
		h.Update(aux)
	}
	h.Update(salt)
	h.Update(u16le(t))
	h.Update(u16le(j))
	h.Final()
	return h.Squeeze(digestSize)
}

// CommitX4 computes four party commitments in parallel, sharing salt and
// t and differing in seed[i] and in party index j+i. auxes[i] may be nil
// independently per lane.
func CommitX4(seeds [4][]byte, auxes [4][]byte, salt []byte, t, j, digestSize int) [4][]byte {
	b := kdf.NewBatch4WithPrefix(prefixSeed)
	for i := 0; i < 4; i++ {
		b.UpdateLane(i, seeds[i])
		if auxes[i] != nil {
			b.UpdateLane(i, auxes[i])
		}
	}
	b.UpdateShared(salt)
	b.UpdateShared(u16le(t))
	for i := 0; i < 4; i++ {
		b.UpdateLane(i, u16le(j+i))
	}
	b.Final()
	return b.Squeeze(digestSize)
}

// H absorbs all N party commitments of a round, in party order, and
// squeezes digestSize bytes: the per-round "Ch" digest.
func H(partyCommitments [][]byte, digestSize int) []byte {
	h := kdf.NewWithPrefix(prefixH)
	for _, c := range partyCommitments {
		h.Update(c)
	}
	h.Final()
	return h.Squeeze(digestSize)
}

// V absorbs the round's input (the masked cipher state) followed by
// every party's message buffer truncated to its meaningful byte length,
// and squeezes digestSize bytes: the per-round "Cv" leaf digest fed into
// the Merkle tree over all rounds.
func V(input []byte, partyMessages [][]byte, digestSize int) []byte {
	h := kdf.NewWithPrefix(prefixV)
	h.Update(input)
	for _, m := range partyMessages {
		h.Update(m)
	}
	h.Final()
	return h.Squeeze(digestSize)
}

func u16le(v int) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return b[:]
}
