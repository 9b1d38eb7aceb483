package mpcproto

import (
	"Picnic2-Signature/kdf"
	"Picnic2-Signature/params"
)

const (
	prefixHCP       byte = 0x40
	prefixHCPExpand byte = 0x41
)

// drbg is the digest-chaining expansion HCP repeatedly rehashes to draw
// as many fixed-width chunks as a challenge phase needs, grounded on
// picnic2_impl.c's HCP: scan the current digest for chunks below limit,
// and whenever a scan does not finish the phase, rehash (H of the whole
// digest, under a distinct domain byte) before scanning again. The
// rehash happens once per outer iteration unconditionally, including the
// iteration that completes a phase, so a second phase sharing the same
// drbg picks up from that already-advanced digest.
type drbg struct {
	h          []byte
	digestSize int
}

func (d *drbg) rehash() {
	h := kdf.NewWithPrefix(prefixHCPExpand)
	h.Update(d.h)
	h.Final()
	d.h = h.Squeeze(d.digestSize)
}

// draw selects count chunk values below limit from the drbg's digest
// stream, chunkLenBits wide each. dedup drops repeats (challengeC's
// distinct round indices); challengeP draws independently, one party
// index per opened round, allowing repeats.
func (d *drbg) draw(chunkLenBits, limit, count int, dedup bool) []int {
	out := make([]int, 0, count)
	seen := make(map[int]bool, count)
	for len(out) < count {
		for _, c := range bitsToChunks(d.h, chunkLenBits) {
			if c < limit {
				if dedup {
					if !seen[c] {
						seen[c] = true
						out = append(out, c)
					}
				} else {
					out = append(out, c)
				}
			}
			if len(out) == count {
				break
			}
		}
		d.rehash()
	}
	return out
}

// HCP derives the Fiat-Shamir challenge from every round's Ch digest, the
// Cv Merkle root, the salt, and the message being signed together with
// the public key material: challengeC selects num_opened_rounds distinct
// round indices, and challengeP selects one party index per opened round
// (independently, without deduplication against challengeC's order).
func HCP(p *params.ParamSet, ch [][]byte, cvRoot, salt, pubKey, plaintext, message []byte) (challengeC, challengeP []int) {
	h := kdf.NewWithPrefix(prefixHCP)
	for t := 0; t < p.NumRounds; t++ {
		h.Update(ch[t])
	}
	h.Update(cvRoot)
	h.Update(salt)
	h.Update(pubKey)
	h.Update(plaintext)
	h.Update(message)
	h.Final()

	d := &drbg{h: h.Squeeze(p.DigestSize), digestSize: p.DigestSize}
	challengeC = d.draw(ceilLog2(p.NumRounds), p.NumRounds, p.NumOpenedRounds, true)
	challengeP = d.draw(ceilLog2(p.N), p.N, p.NumOpenedRounds, false)
	return challengeC, challengeP
}
