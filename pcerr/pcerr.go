// Package pcerr defines the sentinel error kinds produced at the public
// verify/sign boundary.
package pcerr

import "errors"

var (
	// ErrInvalidSignatureSize means the serialized signature's length does
	// not match the length computed from its own challenge indices.
	ErrInvalidSignatureSize = errors.New("picnic2: invalid signature size")
	// ErrChallengeOutOfRange means a challengeC or challengeP entry fell
	// outside [0, num_rounds) or [0, N) respectively.
	ErrChallengeOutOfRange = errors.New("picnic2: challenge index out of range")
	// ErrChallengeDuplicate means challengeC contained a repeated round index.
	ErrChallengeDuplicate = errors.New("picnic2: duplicate challenge round")
	// ErrSeedReconstructionFailed means the seed tree could not be
	// reconstructed from the supplied reveal information.
	ErrSeedReconstructionFailed = errors.New("picnic2: seed reconstruction failed")
	// ErrMerkleVerificationFailed means the opened Cv leaves did not
	// authenticate against the recomputed root.
	ErrMerkleVerificationFailed = errors.New("picnic2: merkle verification failed")
	// ErrSimulationFailed means the online MPC simulator returned non-zero.
	ErrSimulationFailed = errors.New("picnic2: online simulation failed")
	// ErrPaddingBitsNonZero means a reserved padding bit in aux or msgs was
	// set, which is a deterministic reject regardless of round outcome.
	ErrPaddingBitsNonZero = errors.New("picnic2: non-zero padding bit")
	// ErrChallengeMismatch means the HCP challenge recomputed from the
	// opened transcript did not match the challenge embedded in the
	// signature.
	ErrChallengeMismatch = errors.New("picnic2: challenge mismatch")
	// ErrAllocationFailed means a BinMat allocation could not be satisfied.
	// This is treated as unrecoverable; callers of binmat see it only as a
	// panic value, but it is defined here so higher layers can recognize it
	// with errors.Is if they choose to recover.
	ErrAllocationFailed = errors.New("picnic2: allocation failed")
)

// Verdict aggregates the error kinds above into the single "invalid"
// verdict Verify returns at its public boundary: internal functions may
// distinguish the kind, but a caller of signature.Verify only ever
// observes one of the sentinels above, never a partial result.
type Verdict struct {
	Kind error
	Detail string
}

func (v *Verdict) Error() string {
	if v.Detail == "" {
		return v.Kind.Error()
	}
	return v.Kind.Error() + ": " + v.Detail
}

func (v *Verdict) Unwrap() error { return v.Kind }

// Wrap builds a Verdict carrying kind with an explanatory detail string,
// mirroring the teacher's fmt.Errorf("pkg: %s", detail) prefixing style
// while staying errors.Is-compatible with the sentinel kinds above.
func Wrap(kind error, detail string) error {
	return &Verdict{Kind: kind, Detail: detail}
}
