// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

// TestProofBitmap exercises the participant bitmap accessors.
func TestProofBitmap(t *testing.T) {
	proof := NewProof(10)
	if got := len(proof.Participants); got != 2 {
		t.Fatalf("NewProof bitmap length: got %d, want 2", got)
	}

	proof.SetBit(0)
	proof.SetBit(7)
	proof.SetBit(9)
	proof.SetBit(10) // out of range, no-op
	proof.SetBit(-1) // out of range, no-op

	wantSet := map[int]bool{0: true, 7: true, 9: true}
	for i := -1; i <= 10; i++ {
		if proof.Bit(i) != wantSet[i] {
			t.Errorf("Bit(%d): got %v, want %v", i, proof.Bit(i),
				wantSet[i])
		}
	}
	if count := proof.ParticipantCount(); count != 3 {
		t.Fatalf("ParticipantCount: got %d, want 3", count)
	}
}

// TestProofShortBitmap ensures the bitmap accessors tolerate a hand-built
// proof whose bitmap is shorter than the member count implies.
func TestProofShortBitmap(t *testing.T) {
	proof := &Proof{
		MemberCount:  16,
		Participants: []byte{0x81},
	}

	proof.SetBit(9) // beyond the bitmap, no-op
	for i := 0; i < int(proof.MemberCount); i++ {
		want := i == 0 || i == 7
		if proof.Bit(i) != want {
			t.Errorf("Bit(%d): got %v, want %v", i, proof.Bit(i), want)
		}
	}
	if count := proof.ParticipantCount(); count != 2 {
		t.Fatalf("ParticipantCount: got %d, want 2", count)
	}
}

// TestProofWire tests the proof wire encode and decode round trip.
func TestProofWire(t *testing.T) {
	proof := NewProof(9)
	proof.SetBit(1)
	proof.SetBit(8)
	proof.Signature = bytes.Repeat([]byte{0x24}, AggregateSignatureSize)

	var buf bytes.Buffer
	if err := writeProof(&buf, 0, proof); err != nil {
		t.Fatalf("writeProof: %v", err)
	}
	if got := buf.Len(); got != proof.SerializeSize() {
		t.Fatalf("SerializeSize: got %d, want %d",
			proof.SerializeSize(), got)
	}

	var decoded Proof
	if err := readProof(bytes.NewReader(buf.Bytes()), 0, &decoded); err != nil {
		t.Fatalf("readProof: %v", err)
	}
	if decoded.MemberCount != proof.MemberCount ||
		!bytes.Equal(decoded.Participants, proof.Participants) ||
		!bytes.Equal(decoded.Signature, proof.Signature) {

		t.Fatalf("readProof mismatch: got %+v, want %+v", decoded, *proof)
	}

	// The empty placeholder proof must round trip as well.
	empty := Proof{}
	buf.Reset()
	if err := writeProof(&buf, 0, &empty); err != nil {
		t.Fatalf("writeProof empty: %v", err)
	}
	var decodedEmpty Proof
	if err := readProof(bytes.NewReader(buf.Bytes()), 0, &decodedEmpty); err != nil {
		t.Fatalf("readProof empty: %v", err)
	}
	if !decodedEmpty.IsEmpty() {
		t.Fatalf("decoded empty proof is not empty: %+v", decodedEmpty)
	}
}

// TestProofDecodeErrors ensures malformed proof encodings are rejected.
func TestProofDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{
			// 9 members needs 2 bitmap bytes; the second byte sets
			// bits 9-15 which exceed the member count.
			name: "stray bits beyond member count",
			buf:  []byte{0x09, 0x00, 0x02, 0x00},
		},
		{
			name: "member count beyond maximum",
			buf:  []byte{0xfd, 0x01, 0x05},
		},
		{
			// 1 member, empty bitmap byte, 1-byte signature.
			name: "signature with invalid length",
			buf:  []byte{0x01, 0x00, 0x01, 0xab},
		},
	}

	for _, test := range tests {
		var proof Proof
		err := readProof(bytes.NewReader(test.buf), 0, &proof)
		if _, ok := err.(*MessageError); !ok {
			t.Errorf("%s: expected MessageError, got %v", test.name,
				err)
		}
	}
}

// TestProofCopy ensures Copy produces an independent deep copy.
func TestProofCopy(t *testing.T) {
	proof := NewProof(3)
	proof.SetBit(1)
	proof.Signature = bytes.Repeat([]byte{0x55}, AggregateSignatureSize)

	dup := proof.Copy()
	dup.Participants[0] ^= 0xff
	dup.Signature[0] ^= 0xff

	if proof.Participants[0] == dup.Participants[0] {
		t.Fatal("Copy shares the participant bitmap")
	}
	if proof.Signature[0] == dup.Signature[0] {
		t.Fatal("Copy shares the signature")
	}
}
