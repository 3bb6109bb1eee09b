// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/fedchain/fedchaind/util/chainhash"
)

// MaxXFieldSize is the maximum size of the header extension field. The field
// is reserved for protocol upgrades (such as announcing a federation key
// rotation) and is immutable for a given block once the proof covers it.
const MaxXFieldSize = 256

// baseBlockHeaderPayload is the base number of bytes a block header can be,
// not including the variable-length XField and Proof.
// Version 4 bytes + PrevBlock hash + MerkleRoot hash + Timestamp 4 bytes +
// XField varint 1 byte.
const baseBlockHeaderPayload = 9 + (chainhash.HashSize * 2)

// MaxBlockHeaderPayload is the maximum number of bytes a block header can be.
// There is no proof-of-work nonce or difficulty target; the variable parts
// are the extension field and the federation proof.
const MaxBlockHeaderPayload = baseBlockHeaderPayload + MaxXFieldSize +
	9 + (MaxFederationMembers / 8) + 9 + AggregateSignatureSize

// BlockHeader defines information about a block and is used in the fedchain
// block (MsgBlock) message. Block validity is established by the federation
// Proof rather than proof-of-work, so there are no difficulty bits and no
// nonce.
type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created. This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// XField is an opaque extension field reserved for protocol upgrades.
	// It is covered by both the block hash and the signing hash, so it is
	// immutable once the block is signed.
	XField []byte

	// Proof is the federation aggregate signature that finalizes the
	// block.
	Proof Proof
}

// BlockHash computes the block identifier hash for the given block header.
// The hash covers the entire serialized header, proof included.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	// Encode the header and double sha256 everything. Ignore the error
	// returns since there is no way the encode could fail except being out
	// of memory which would cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, h.SerializeSize()))
	_ = writeBlockHeader(buf, 0, h)

	return chainhash.DoubleHashH(buf.Bytes())
}

// SigningHash computes the digest each federation member signs to produce
// its share of the block proof. It is the double sha256 of the header
// serialized with an empty proof, since the proof cannot cover itself. It is
// deliberately distinct from BlockHash, which does cover the proof.
func (h *BlockHeader) SigningHash() chainhash.Hash {
	unsigned := *h
	unsigned.Proof = Proof{}

	buf := bytes.NewBuffer(make([]byte, 0, unsigned.SerializeSize()))
	_ = writeBlockHeader(buf, 0, &unsigned)

	return chainhash.DoubleHashH(buf.Bytes())
}

// BtcDecode decodes r using the fedchain protocol encoding into the receiver.
// This is part of the Message interface implementation.
// See Deserialize for decoding block headers stored to disk, such as in a
// database, as opposed to decoding block headers from the wire.
func (h *BlockHeader) BtcDecode(r io.Reader, pver uint32) error {
	return readBlockHeader(r, pver, h)
}

// BtcEncode encodes the receiver to w using the fedchain protocol encoding.
// This is part of the Message interface implementation.
// See Serialize for encoding block headers to be stored to disk, such as in
// a database, as opposed to encoding block headers for the wire.
func (h *BlockHeader) BtcEncode(w io.Writer, pver uint32) error {
	return writeBlockHeader(w, pver, h)
}

// Deserialize decodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database while respecting
// the Version field.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format. As
	// a result, make use of readBlockHeader.
	return readBlockHeader(r, 0, h)
}

// Serialize encodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database while respecting
// the Version field.
func (h *BlockHeader) Serialize(w io.Writer) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format. As
	// a result, make use of writeBlockHeader.
	return writeBlockHeader(w, 0, h)
}

// SerializeSize returns the number of bytes it would take to serialize the
// block header.
func (h *BlockHeader) SerializeSize() int {
	// Version 4 bytes + PrevBlock and MerkleRoot hashes + Timestamp 4
	// bytes + varint-prefixed XField + proof.
	return 8 + (chainhash.HashSize * 2) +
		VarIntSerializeSize(uint64(len(h.XField))) + len(h.XField) +
		h.Proof.SerializeSize()
}

// NewBlockHeader returns a new BlockHeader using the provided version,
// previous block hash, merkle root hash and extension field, with defaults
// for the remaining fields. The proof starts empty; it is filled in once the
// federation has signed the header's SigningHash.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash,
	xField []byte) *BlockHeader {

	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		XField:     xField,
	}
}

// readBlockHeader reads a fedchain block header from r. See Deserialize for
// decoding block headers stored to disk, such as in a database, as opposed
// to decoding from the wire.
func readBlockHeader(r io.Reader, pver uint32, bh *BlockHeader) error {
	err := readElements(r, &bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		(*uint32Time)(&bh.Timestamp))
	if err != nil {
		return err
	}

	bh.XField, err = ReadVarBytes(r, pver, MaxXFieldSize,
		"block header extension field")
	if err != nil {
		return err
	}

	return readProof(r, pver, &bh.Proof)
}

// writeBlockHeader writes a fedchain block header to w. See Serialize for
// encoding block headers to be stored to disk, such as in a database, as
// opposed to encoding for the wire.
func writeBlockHeader(w io.Writer, pver uint32, bh *BlockHeader) error {
	sec := uint32(bh.Timestamp.Unix())
	err := writeElements(w, bh.Version, &bh.PrevBlock, &bh.MerkleRoot, sec)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, pver, bh.XField)
	if err != nil {
		return err
	}

	return writeProof(w, pver, &bh.Proof)
}
