package wire

import (
	"fmt"
	"io"
)

const (
	// AggregateSignatureSize is the serialized size of the federation's
	// aggregate Schnorr signature (R.x || s).
	AggregateSignatureSize = 64

	// MaxFederationMembers is the maximum number of member slots a block
	// proof participant bitmap may describe. It bounds the bitmap
	// allocation during decode; actual federations are far smaller.
	MaxFederationMembers = 1024
)

// Proof is the federation signature that finalizes a block in place of
// proof-of-work. It records which subset of the ordered federation member
// list participated and the single aggregate signature those members
// produced over the header's signing hash.
//
// The participant subset is explicit on the wire rather than inferred from
// the signature: bit i of Participants (little-endian bit order within each
// byte) corresponds to member i of the ordered federation set. Verifiers
// need the subset to derive the matching aggregate public key.
//
// A zero-valued Proof (no members, no signature) is a valid encoding - it is
// what an unsigned block template carries - but it never passes validation.
type Proof struct {
	// MemberCount is the number of member slots the bitmap describes,
	// which is the size of the federation the block was signed under.
	MemberCount uint16

	// Participants is the bitmap of participating members,
	// ceil(MemberCount/8) bytes.
	Participants []byte

	// Signature is the 64-byte aggregate signature, or empty for an
	// unsigned template.
	Signature []byte
}

// participantsSize returns the bitmap byte length for a member count.
func participantsSize(memberCount uint16) int {
	return (int(memberCount) + 7) / 8
}

// Bit returns whether member i participated according to the bitmap. Indices
// out of range of either the member count or the bitmap (a hand-built proof
// may carry a bitmap shorter than MemberCount implies) read as false.
func (p *Proof) Bit(i int) bool {
	if i < 0 || i >= int(p.MemberCount) || i/8 >= len(p.Participants) {
		return false
	}
	return p.Participants[i/8]&(1<<(uint(i)%8)) != 0
}

// SetBit marks member i as a participant. It is a no-op for indices out of
// range of the member count or the bitmap.
func (p *Proof) SetBit(i int) {
	if i < 0 || i >= int(p.MemberCount) || i/8 >= len(p.Participants) {
		return
	}
	p.Participants[i/8] |= 1 << (uint(i) % 8)
}

// ParticipantCount returns the number of set bits in the bitmap.
func (p *Proof) ParticipantCount() int {
	count := 0
	for i := 0; i < int(p.MemberCount); i++ {
		if p.Bit(i) {
			count++
		}
	}
	return count
}

// IsEmpty returns whether the proof is the unsigned-template placeholder.
func (p *Proof) IsEmpty() bool {
	return p.MemberCount == 0 && len(p.Signature) == 0
}

// SerializeSize returns the number of bytes it would take to serialize the
// proof.
func (p *Proof) SerializeSize() int {
	return VarIntSerializeSize(uint64(p.MemberCount)) +
		participantsSize(p.MemberCount) +
		VarIntSerializeSize(uint64(len(p.Signature))) +
		len(p.Signature)
}

// Copy returns a deep copy of the proof.
func (p *Proof) Copy() Proof {
	newProof := Proof{MemberCount: p.MemberCount}
	if len(p.Participants) > 0 {
		newProof.Participants = make([]byte, len(p.Participants))
		copy(newProof.Participants, p.Participants)
	}
	if len(p.Signature) > 0 {
		newProof.Signature = make([]byte, len(p.Signature))
		copy(newProof.Signature, p.Signature)
	}
	return newProof
}

// NewProof returns an all-zero-bitmap proof for a federation of the given
// size. Callers mark participants with SetBit and fill in Signature.
func NewProof(memberCount uint16) *Proof {
	return &Proof{
		MemberCount:  memberCount,
		Participants: make([]byte, participantsSize(memberCount)),
	}
}

// readProof reads a federation proof from r.
func readProof(r io.Reader, pver uint32, p *Proof) error {
	memberCount, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if memberCount > MaxFederationMembers {
		str := fmt.Sprintf("proof member count is larger than the max "+
			"allowed [count %d, max %d]", memberCount,
			MaxFederationMembers)
		return messageError("readProof", str)
	}
	p.MemberCount = uint16(memberCount)

	p.Participants = make([]byte, participantsSize(p.MemberCount))
	if len(p.Participants) > 0 {
		if _, err := io.ReadFull(r, p.Participants); err != nil {
			return messageError("readProof", err.Error())
		}
	}

	// Reject stray bits beyond MemberCount so each participant subset has
	// exactly one encoding.
	if extra := int(p.MemberCount) % 8; extra != 0 && len(p.Participants) > 0 {
		last := p.Participants[len(p.Participants)-1]
		if last>>uint(extra) != 0 {
			return messageError("readProof", "participant bitmap has "+
				"bits set beyond the member count")
		}
	}

	p.Signature, err = ReadVarBytes(r, pver, AggregateSignatureSize,
		"proof aggregate signature")
	if err != nil {
		return err
	}
	if len(p.Signature) != 0 && len(p.Signature) != AggregateSignatureSize {
		str := fmt.Sprintf("proof aggregate signature has invalid "+
			"length [len %d, want 0 or %d]", len(p.Signature),
			AggregateSignatureSize)
		return messageError("readProof", str)
	}

	return nil
}

// writeProof writes a federation proof to w.
func writeProof(w io.Writer, pver uint32, p *Proof) error {
	err := WriteVarInt(w, pver, uint64(p.MemberCount))
	if err != nil {
		return err
	}

	// The in-memory bitmap may legitimately be nil for a zero member
	// count; for any other count it must be exactly the declared size.
	if len(p.Participants) != participantsSize(p.MemberCount) {
		str := fmt.Sprintf("proof participant bitmap has invalid "+
			"length [len %d, want %d]", len(p.Participants),
			participantsSize(p.MemberCount))
		return messageError("writeProof", str)
	}
	if len(p.Participants) > 0 {
		if _, err := w.Write(p.Participants); err != nil {
			return messageError("writeProof", err.Error())
		}
	}

	return WriteVarBytes(w, pver, p.Signature)
}
