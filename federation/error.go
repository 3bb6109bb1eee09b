package federation

import "github.com/pkg/errors"

// The federation error kinds. They are all terminal for the operation that
// produced them; retrying (for example re-requesting a replacement partial
// signature from a member) is the signing coordinator's concern.
var (
	// ErrInsufficientSigners is returned when a participant set is empty
	// or smaller than the federation threshold. Aggregation never
	// silently produces an unverifiable signature from too few signers.
	ErrInsufficientSigners = errors.New("participant set is below the signer threshold")

	// ErrInvalidPartialSignature is returned when a partial signature
	// fails individual verification. Partials are always verified before
	// aggregation since a single bad partial corrupts the whole aggregate
	// with no way to identify the culprit afterwards.
	ErrInvalidPartialSignature = errors.New("partial signature failed verification")

	// ErrParticipantMismatch is returned when the supplied partial
	// signatures or public nonces do not correspond exactly to the
	// declared participant set.
	ErrParticipantMismatch = errors.New("partial signatures do not match the participant set")

	// ErrUnknownMember is returned when a member index or public key is
	// not part of the federation.
	ErrUnknownMember = errors.New("not a federation member")

	// ErrDuplicateMember is returned when constructing a federation from
	// a key list containing the same public key twice.
	ErrDuplicateMember = errors.New("duplicate federation member key")

	// ErrFederationMismatch is returned when a proof was produced under a
	// federation of a different size than the one verifying it.
	ErrFederationMismatch = errors.New("proof federation size mismatch")

	// ErrInvalidProof is returned when an aggregate signature does not
	// verify against the participant subset's aggregate public key.
	ErrInvalidProof = errors.New("aggregate signature verification failed")

	// ErrNonceMismatch is returned when a signer's derived secret nonce
	// does not correspond to the public nonce registered for it in the
	// signing session.
	ErrNonceMismatch = errors.New("secret nonce does not match registered public nonce")
)
