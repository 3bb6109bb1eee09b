// Package federation implements the threshold aggregate-signature scheme
// that finalizes fedchain blocks in place of proof-of-work.
//
// A Federation is an ordered set of member public keys together with a
// signing threshold. Any subset of members at or above the threshold may
// finalize a block: each participant produces a partial Schnorr signature
// over the header's signing hash, and the partials are combined into a
// single 64-byte aggregate that verifies - in constant time in the number of
// signers - against the curve-point sum of the participants' public keys.
//
// The package is pure computation over collected values. Distributing
// digests, exchanging public nonces and transporting partial signatures
// between members is the signing coordinator's concern.
//
// Membership is permissioned: every member key is vetted out of band, which
// is what makes plain key-sum aggregation (no per-key coefficients) safe to
// use here. Rogue-key hardening would be required before opening membership
// to untrusted parties.
package federation

import (
	"bytes"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/fedchain/fedchaind/wire"
)

// Federation is an ordered set of member public keys and the minimum number
// of them that must co-sign a block. It is immutable; membership changes
// produce a new Federation via New, which also rederives the cached full-set
// aggregate key (the aggregate is derived data, never ground truth).
type Federation struct {
	members   []*secp256k1.PublicKey
	threshold int

	// aggKey is the aggregate of the full member set, precomputed since
	// full participation is the common case.
	aggKey *secp256k1.PublicKey
}

// New constructs a Federation from the given member public keys and signing
// threshold. The keys are sorted by their compressed serialization so that
// the same membership always yields the same ordering (and therefore the
// same participant bitmaps and aggregate keys) regardless of input order.
// Duplicate keys are rejected: a doubled key would silently double its
// weight in every aggregate.
func New(memberKeys []*secp256k1.PublicKey, threshold int) (*Federation, error) {
	if len(memberKeys) == 0 {
		return nil, errors.Wrap(ErrInsufficientSigners, "empty member set")
	}
	if len(memberKeys) > wire.MaxFederationMembers {
		return nil, errors.Errorf("federation of %d members exceeds the "+
			"maximum of %d", len(memberKeys), wire.MaxFederationMembers)
	}
	if threshold < 1 || threshold > len(memberKeys) {
		return nil, errors.Errorf("threshold %d is not in [1, %d]",
			threshold, len(memberKeys))
	}

	members := make([]*secp256k1.PublicKey, len(memberKeys))
	copy(members, memberKeys)
	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i].SerializeCompressed(),
			members[j].SerializeCompressed()) < 0
	})
	for i := 1; i < len(members); i++ {
		if members[i].IsEqual(members[i-1]) {
			return nil, errors.Wrapf(ErrDuplicateMember, "member key %x",
				members[i].SerializeCompressed())
		}
	}

	f := &Federation{
		members:   members,
		threshold: threshold,
	}

	all := bitset.New(uint(len(members)))
	for i := range members {
		all.Set(uint(i))
	}
	aggKey, err := f.AggregateKey(all)
	if err != nil {
		return nil, err
	}
	f.aggKey = aggKey

	return f, nil
}

// Size returns the number of federation members.
func (f *Federation) Size() int {
	return len(f.members)
}

// Threshold returns the minimum number of members that must co-sign a block.
func (f *Federation) Threshold() int {
	return f.threshold
}

// MemberKey returns the public key of the member at the given index in the
// federation's canonical ordering.
func (f *Federation) MemberKey(index int) (*secp256k1.PublicKey, error) {
	if index < 0 || index >= len(f.members) {
		return nil, errors.Wrapf(ErrUnknownMember, "index %d", index)
	}
	return f.members[index], nil
}

// MemberIndex returns the canonical index of the member with the given
// public key, or ErrUnknownMember.
func (f *Federation) MemberIndex(pubKey *secp256k1.PublicKey) (int, error) {
	serialized := pubKey.SerializeCompressed()
	idx := sort.Search(len(f.members), func(i int) bool {
		return bytes.Compare(f.members[i].SerializeCompressed(), serialized) >= 0
	})
	if idx < len(f.members) && f.members[idx].IsEqual(pubKey) {
		return idx, nil
	}
	return 0, errors.Wrapf(ErrUnknownMember, "key %x", serialized)
}

// FullSet returns a participant set containing every member.
func (f *Federation) FullSet() *bitset.BitSet {
	all := bitset.New(uint(len(f.members)))
	for i := range f.members {
		all.Set(uint(i))
	}
	return all
}

// AggregateKey returns the aggregate public key of the given participant
// subset: the curve-point sum of the selected members' keys. Point addition
// is commutative, so the result depends only on set membership. An empty
// subset, an out-of-range bit, or a subset whose keys cancel to the point at
// infinity is an error.
func (f *Federation) AggregateKey(participants *bitset.BitSet) (*secp256k1.PublicKey, error) {
	if participants.Count() == 0 {
		return nil, errors.Wrap(ErrInsufficientSigners, "empty participant set")
	}

	var sum secp256k1.JacobianPoint
	for i, ok := participants.NextSet(0); ok; i, ok = participants.NextSet(i + 1) {
		if int(i) >= len(f.members) {
			return nil, errors.Wrapf(ErrUnknownMember, "participant bit %d", i)
		}
		var p secp256k1.JacobianPoint
		f.members[i].AsJacobian(&p)
		secp256k1.AddNonConst(&sum, &p, &sum)
	}

	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, errors.New("aggregate public key is the point at infinity")
	}
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y), nil
}

// AggregateKeyForProof derives the aggregate public key for the participant
// subset recorded in a block proof.
func (f *Federation) AggregateKeyForProof(proof *wire.Proof) (*secp256k1.PublicKey, error) {
	participants, err := f.ParticipantsFromProof(proof)
	if err != nil {
		return nil, err
	}
	return f.AggregateKey(participants)
}

// ParticipantsFromProof converts a wire proof's participant bitmap into a
// bitset over this federation's member indices.
func (f *Federation) ParticipantsFromProof(proof *wire.Proof) (*bitset.BitSet, error) {
	if int(proof.MemberCount) != len(f.members) {
		return nil, errors.Wrapf(ErrFederationMismatch,
			"proof describes %d members, federation has %d",
			proof.MemberCount, len(f.members))
	}

	participants := bitset.New(uint(len(f.members)))
	for i := 0; i < len(f.members); i++ {
		if proof.Bit(i) {
			participants.Set(uint(i))
		}
	}
	return participants, nil
}

// participantsToProofBitmap fills a wire proof's bitmap from a bitset.
func participantsToProofBitmap(participants *bitset.BitSet, proof *wire.Proof) {
	for i, ok := participants.NextSet(0); ok; i, ok = participants.NextSet(i + 1) {
		proof.SetBit(int(i))
	}
}
