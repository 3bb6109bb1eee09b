package federation

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/fedchain/fedchaind/schnorr"
	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// PartialSignature is one member's share of a block proof: the member's
// canonical index and its signature scalar for the session challenge. The
// matching nonce point lives in the Session's public-nonce registry; the
// aggregate signature's point component is the sum of all registered nonce
// points, canonicalized once for the whole session.
type PartialSignature struct {
	MemberIndex int
	S           secp256k1.ModNScalar
}

// SecretNonce is a member's secret signing nonce for one digest, with the
// matching public nonce point other participants need to assemble the
// session. The nonce is deterministic per (key, digest), so re-signing the
// same digest can never leak the private key through nonce reuse.
type SecretNonce struct {
	k   secp256k1.ModNScalar
	pub *secp256k1.PublicKey
}

// PubNonce returns the public nonce point to publish to the coordinator.
func (n *SecretNonce) PubNonce() *secp256k1.PublicKey {
	return n.pub
}

// NewSecretNonce derives a member's signing nonce for the given digest.
func NewSecretNonce(privKey *secp256k1.PrivateKey, digest *chainhash.Hash) (*SecretNonce, error) {
	k, err := schnorr.NonceScalar(privKey, digest[:])
	if err != nil {
		return nil, err
	}

	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k, &r)
	r.ToAffine()

	return &SecretNonce{
		k:   k,
		pub: secp256k1.NewPublicKey(&r.X, &r.Y),
	}, nil
}

// Session is the pure signing-session state for one digest and one
// participant subset: the aggregate nonce point (canonicalized to even y by
// negating every member's nonce when the raw sum has odd y), the aggregate
// public key, and the shared challenge scalar every partial signature must
// use. All participants and the combiner derive an identical Session from
// the same collected public nonces.
type Session struct {
	fed          *Federation
	digest       chainhash.Hash
	participants *bitset.BitSet
	pubNonces    map[int]*secp256k1.PublicKey

	aggNonce     secp256k1.JacobianPoint // affine, even y
	negateNonces bool
	aggKey       *secp256k1.PublicKey
	challenge    secp256k1.ModNScalar
}

// NewSession assembles a signing session from the digest, the participant
// subset and the participants' published public nonces (keyed by member
// index). The participant set must meet the federation threshold and the
// nonce registry must cover exactly the participant set.
func NewSession(fed *Federation, digest *chainhash.Hash, participants *bitset.BitSet,
	pubNonces map[int]*secp256k1.PublicKey) (*Session, error) {

	if int(participants.Count()) < fed.Threshold() {
		return nil, errors.Wrapf(ErrInsufficientSigners,
			"%d participants, threshold %d", participants.Count(),
			fed.Threshold())
	}

	if len(pubNonces) != int(participants.Count()) {
		return nil, errors.Wrapf(ErrParticipantMismatch,
			"%d public nonces for %d participants", len(pubNonces),
			participants.Count())
	}

	// Sum the participants' nonce points. The sum is order-independent,
	// so iterating in index order is just a convention.
	var sum secp256k1.JacobianPoint
	for i, ok := participants.NextSet(0); ok; i, ok = participants.NextSet(i + 1) {
		if int(i) >= fed.Size() {
			return nil, errors.Wrapf(ErrUnknownMember, "participant bit %d", i)
		}
		nonce, exists := pubNonces[int(i)]
		if !exists {
			return nil, errors.Wrapf(ErrParticipantMismatch,
				"no public nonce for member %d", i)
		}
		var p secp256k1.JacobianPoint
		nonce.AsJacobian(&p)
		secp256k1.AddNonConst(&sum, &p, &sum)
	}
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, errors.New("aggregate nonce is the point at infinity")
	}
	sum.ToAffine()

	// Canonicalize the aggregate nonce to even y. When the raw sum has
	// odd y every participant negates its secret nonce instead; the two
	// views stay consistent because -(a+b) = (-a)+(-b).
	s := &Session{
		fed:          fed,
		digest:       *digest,
		participants: participants.Clone(),
		pubNonces:    pubNonces,
	}
	if sum.Y.IsOdd() {
		s.negateNonces = true
		sum.Y.Negate(1).Normalize()
	}
	s.aggNonce = sum

	aggKey, err := fed.AggregateKey(participants)
	if err != nil {
		return nil, err
	}
	s.aggKey = aggKey

	var rBytes [32]byte
	s.aggNonce.X.PutBytes(&rBytes)
	s.challenge = schnorr.ComputeChallenge(rBytes[:], aggKey, digest[:])

	return s, nil
}

// AggregateKey returns the aggregate public key of the session's
// participants.
func (s *Session) AggregateKey() *secp256k1.PublicKey {
	return s.aggKey
}

// PartialSign produces the member's partial signature
//
//	s_i = k_i + e * d_i mod N
//
// over the session challenge. The supplied secret nonce must match the
// public nonce registered for the member when the session was assembled;
// signing with a different nonce would make the aggregate unverifiable with
// no way to attribute the failure.
func (s *Session) PartialSign(memberIndex int, privKey *secp256k1.PrivateKey,
	nonce *SecretNonce) (*PartialSignature, error) {

	if !s.participants.Test(uint(memberIndex)) {
		return nil, errors.Wrapf(ErrUnknownMember,
			"member %d is not a session participant", memberIndex)
	}

	memberKey, err := s.fed.MemberKey(memberIndex)
	if err != nil {
		return nil, err
	}
	if !memberKey.IsEqual(privKey.PubKey()) {
		return nil, errors.Wrapf(ErrUnknownMember,
			"private key does not belong to member %d", memberIndex)
	}

	registered := s.pubNonces[memberIndex]
	if registered == nil || !registered.IsEqual(nonce.pub) {
		return nil, errors.WithStack(ErrNonceMismatch)
	}

	k := nonce.k
	if s.negateNonces {
		k.Negate()
	}

	// s_i = k_i + e * d_i
	d := privKey.Key
	partial := new(secp256k1.ModNScalar).Mul2(&s.challenge, &d).Add(&k)
	k.Zero()

	return &PartialSignature{
		MemberIndex: memberIndex,
		S:           *partial,
	}, nil
}

// VerifyPartial checks one member's partial signature against its registered
// public nonce and member key:
//
//	s_i*G == R_i + e*P_i
//
// where R_i is the registered nonce point, session-canonicalized. A partial
// that fails here must never reach aggregation.
func (s *Session) VerifyPartial(partial *PartialSignature) error {
	if !s.participants.Test(uint(partial.MemberIndex)) {
		return errors.Wrapf(ErrUnknownMember,
			"member %d is not a session participant", partial.MemberIndex)
	}

	memberKey, err := s.fed.MemberKey(partial.MemberIndex)
	if err != nil {
		return err
	}
	registered := s.pubNonces[partial.MemberIndex]
	if registered == nil {
		return errors.Wrapf(ErrParticipantMismatch,
			"no public nonce for member %d", partial.MemberIndex)
	}

	// Left side: s_i*G.
	var sG secp256k1.JacobianPoint
	sScalar := partial.S
	secp256k1.ScalarBaseMultNonConst(&sScalar, &sG)

	// Right side: R_i + e*P_i with R_i negated when the session
	// canonicalized the aggregate nonce.
	var rPoint, eP, rhs secp256k1.JacobianPoint
	registered.AsJacobian(&rPoint)
	if s.negateNonces {
		rPoint.Y.Negate(1).Normalize()
	}
	var p secp256k1.JacobianPoint
	memberKey.AsJacobian(&p)
	e := s.challenge
	secp256k1.ScalarMultNonConst(&e, &p, &eP)
	secp256k1.AddNonConst(&rPoint, &eP, &rhs)

	sG.ToAffine()
	rhs.ToAffine()
	if !sG.X.Equals(&rhs.X) || !sG.Y.Equals(&rhs.Y) {
		return errors.Wrapf(ErrInvalidPartialSignature, "member %d",
			partial.MemberIndex)
	}
	return nil
}

// Aggregate combines the participants' partial signatures into the block
// proof. Every partial is individually verified first and the set must cover
// the session's participant set exactly - missing, duplicate or unknown
// partials are rejected rather than summed into an unattributable failure.
func (s *Session) Aggregate(partials []*PartialSignature) (*wire.Proof, error) {
	if len(partials) != int(s.participants.Count()) {
		return nil, errors.Wrapf(ErrParticipantMismatch,
			"%d partial signatures for %d participants", len(partials),
			s.participants.Count())
	}

	seen := bitset.New(uint(s.fed.Size()))
	for _, partial := range partials {
		if seen.Test(uint(partial.MemberIndex)) {
			return nil, errors.Wrapf(ErrParticipantMismatch,
				"duplicate partial signature from member %d",
				partial.MemberIndex)
		}
		seen.Set(uint(partial.MemberIndex))

		if err := s.VerifyPartial(partial); err != nil {
			return nil, err
		}
	}

	// Sum the scalar components. The nonce-point components were already
	// summed (and canonicalized) when the session was assembled.
	var sum secp256k1.ModNScalar
	for _, partial := range partials {
		sum.Add(&partial.S)
	}

	sig := schnorr.NewSignature(&s.aggNonce.X, &sum)

	proof := wire.NewProof(uint16(s.fed.Size()))
	participantsToProofBitmap(s.participants, proof)
	proof.Signature = sig.Serialize()

	// A session assembled from verified partials must produce a valid
	// proof; check anyway so an internal inconsistency can never leak an
	// unverifiable signature to the caller.
	if err := VerifyProof(s.fed, &s.digest, proof); err != nil {
		return nil, err
	}

	return proof, nil
}

// VerifyProof checks a block proof against the federation: the participant
// subset must meet the threshold and the aggregate signature must verify
// against the subset's aggregate public key over the digest. Verification
// cost does not grow with the number of signers - that is the entire point
// of aggregating.
func VerifyProof(fed *Federation, digest *chainhash.Hash, proof *wire.Proof) error {
	participants, err := fed.ParticipantsFromProof(proof)
	if err != nil {
		return err
	}

	if int(participants.Count()) < fed.Threshold() {
		return errors.Wrapf(ErrInsufficientSigners,
			"%d participants, threshold %d", participants.Count(),
			fed.Threshold())
	}

	sig, err := schnorr.ParseSignature(proof.Signature)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	aggKey, err := fed.AggregateKey(participants)
	if err != nil {
		return err
	}

	if !sig.Verify(digest[:], aggKey) {
		return errors.WithStack(ErrInvalidProof)
	}
	return nil
}
