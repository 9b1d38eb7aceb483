// Package mpcproto implements the MPC-in-the-head signing and
// verification protocol: round preprocessing over a seed tree, online
// LowMC simulation, Fiat-Shamir challenge derivation, Merkle-committed
// view openings, and the signature's wire encoding.
//
// Grounded on original_source/picnic2_impl.c's sign_picnic2/verify_picnic2
// control flow, built on top of this module's own params, lowmc, tape,
// shares, auxengine, commit, seedtree, and merkletree packages.
package mpcproto

// Proof carries one opened round's disclosed transcript, per the
// signature's per-round proof record: a reveal of every party's seed
// except the hidden party's, party N-1's aux bits (nil exactly when the
// hidden party is N-1, which never needs aux since N-1 is where aux
// bits live directly), the round's masked input, the hidden party's
// message bits, and that party's own commitment.
type Proof struct {
	SeedInfo []byte
	Aux      []byte
	Input    []byte
	Msgs     []byte
	C        []byte
}

// Signature is the in-memory form of a completed MPC-in-the-head
// signature: the two Fiat-Shamir challenges, the randomizing salt, the
// revealed portion of the round seed tree, the Merkle opening over the
// unopened rounds' Cv leaves, and one Proof per opened round.
type Signature struct {
	ChallengeC []int
	ChallengeP []int
	Salt       []byte
	ISeedInfo  []byte
	CvInfo     []byte
	Proofs     map[int]*Proof
}
