package mpcproto

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"Picnic2-Signature/merkletree"
	"Picnic2-Signature/params"
	"Picnic2-Signature/pcerr"
	"Picnic2-Signature/seedtree"

	"github.com/bwesterb/byteswriter"
)

// BytesRequired returns sig's exact serialized length under p: the
// verifier recomputes this from the challenge indices alone rather than
// having it carried on the wire.
func BytesRequired(p *params.ParamSet, sig *Signature) int {
	n := 2*len(sig.ChallengeC) + 2*len(sig.ChallengeP)
	n += SaltSize
	n += len(sig.ISeedInfo)
	n += len(sig.CvInfo)
	for _, t := range sig.ChallengeC {
		proof := sig.Proofs[t]
		n += len(proof.SeedInfo)
		if proof.Aux != nil {
			n += p.ViewSize
		}
		n += p.InputSize
		n += p.InputSize + p.ViewSize
		n += p.DigestSize
	}
	return n
}

// Serialize writes sig's wire encoding into buf, returning the number of
// bytes written. An undersized buf is a plain caller error, not one of
// pcerr's verification-sentinel kinds.
func Serialize(p *params.ParamSet, sig *Signature, buf []byte) (int, error) {
	required := BytesRequired(p, sig)
	if len(buf) < required {
		return 0, fmt.Errorf("mpcproto: serialize: buffer too small: have %d, need %d", len(buf), required)
	}
	w := byteswriter.NewWriter(buf)

	for _, c := range sig.ChallengeC {
		if err := binary.Write(w, binary.LittleEndian, uint16(c)); err != nil {
			return 0, err
		}
	}
	for _, party := range sig.ChallengeP {
		if err := binary.Write(w, binary.LittleEndian, uint16(party)); err != nil {
			return 0, err
		}
	}
	if _, err := w.Write(sig.Salt); err != nil {
		return 0, err
	}
	if _, err := w.Write(sig.ISeedInfo); err != nil {
		return 0, err
	}
	if _, err := w.Write(sig.CvInfo); err != nil {
		return 0, err
	}

	sorted := append([]int(nil), sig.ChallengeC...)
	sort.Ints(sorted)
	for _, t := range sorted {
		proof := sig.Proofs[t]
		if _, err := w.Write(proof.SeedInfo); err != nil {
			return 0, err
		}
		if proof.Aux != nil {
			if _, err := w.Write(proof.Aux); err != nil {
				return 0, err
			}
		}
		if _, err := w.Write(proof.Input); err != nil {
			return 0, err
		}
		if _, err := w.Write(proof.Msgs); err != nil {
			return 0, err
		}
		if _, err := w.Write(proof.C); err != nil {
			return 0, err
		}
	}
	return required, nil
}

// Deserialize parses buf into a Signature under p, rejecting any size,
// range, or duplication problem deterministically before touching a
// single byte of cryptographic material.
func Deserialize(p *params.ParamSet, buf []byte) (*Signature, error) {
	fixedLen := 4*p.NumOpenedRounds + SaltSize
	if len(buf) < fixedLen {
		return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "buffer shorter than fixed-size prefix")
	}
	r := bytes.NewReader(buf)

	challengeC := make([]int, p.NumOpenedRounds)
	for i := range challengeC {
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated challengeC")
		}
		challengeC[i] = int(v)
	}
	challengeP := make([]int, p.NumOpenedRounds)
	for i := range challengeP {
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated challengeP")
		}
		challengeP[i] = int(v)
	}
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated salt")
	}

	seen := make(map[int]bool, len(challengeC))
	for _, c := range challengeC {
		if c < 0 || c >= p.NumRounds {
			return nil, pcerr.Wrap(pcerr.ErrChallengeOutOfRange, "challengeC entry out of range")
		}
		if seen[c] {
			return nil, pcerr.Wrap(pcerr.ErrChallengeDuplicate, "duplicate challengeC entry")
		}
		seen[c] = true
	}
	for _, party := range challengeP {
		if party < 0 || party >= p.N {
			return nil, pcerr.Wrap(pcerr.ErrChallengeOutOfRange, "challengeP entry out of range")
		}
	}

	iSeedInfoLen := seedtree.RevealSeedsSize(p.NumRounds, p.SeedSize, challengeC)
	iSeedInfo := make([]byte, iSeedInfoLen)
	if _, err := io.ReadFull(r, iSeedInfo); err != nil {
		return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated iSeedInfo")
	}

	cvInfoLen := merkletree.OpenMerkleTreeSize(p.NumRounds, p.DigestSize, challengeC)
	cvInfo := make([]byte, cvInfoLen)
	if _, err := io.ReadFull(r, cvInfo); err != nil {
		return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated cvInfo")
	}

	positionInC := make(map[int]int, len(challengeC))
	for i, t := range challengeC {
		positionInC[t] = i
	}
	sorted := append([]int(nil), challengeC...)
	sort.Ints(sorted)

	proofs := make(map[int]*Proof, len(challengeC))
	for _, t := range sorted {
		hidden := challengeP[positionInC[t]]
		seedInfoLen := seedtree.RevealSeedsSize(p.N, p.SeedSize, []int{hidden})
		seedInfo := make([]byte, seedInfoLen)
		if _, err := io.ReadFull(r, seedInfo); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated seedInfo")
		}
		var aux []byte
		if hidden != p.N-1 {
			aux = make([]byte, p.ViewSize)
			if _, err := io.ReadFull(r, aux); err != nil {
				return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated aux")
			}
		}
		input := make([]byte, p.InputSize)
		if _, err := io.ReadFull(r, input); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated input")
		}
		msgs := make([]byte, p.InputSize+p.ViewSize)
		if _, err := io.ReadFull(r, msgs); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated msgs")
		}
		c := make([]byte, p.DigestSize)
		if _, err := io.ReadFull(r, c); err != nil {
			return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "truncated commitment")
		}
		proofs[t] = &Proof{SeedInfo: seedInfo, Aux: aux, Input: input, Msgs: msgs, C: c}
	}

	if r.Len() != 0 {
		return nil, pcerr.Wrap(pcerr.ErrInvalidSignatureSize, "trailing bytes after signature")
	}

	return &Signature{
		ChallengeC: challengeC,
		ChallengeP: challengeP,
		Salt:       salt,
		ISeedInfo:  iSeedInfo,
		CvInfo:     cvInfo,
		Proofs:     proofs,
	}, nil
}
