// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schnorr

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

const (
	// SignatureSize is the size of an encoded Schnorr signature: the
	// 32-byte x coordinate of the nonce point followed by the 32-byte
	// scalar.
	SignatureSize = 64

	// scalarSize is the size of an encoded big endian scalar.
	scalarSize = 32
)

// Signature is a type representing a Schnorr signature.
type Signature struct {
	r secp256k1.FieldVal
	s secp256k1.ModNScalar
}

// NewSignature instantiates a new signature given some r and s values.
func NewSignature(r *secp256k1.FieldVal, s *secp256k1.ModNScalar) *Signature {
	var sig Signature
	sig.r.Set(r).Normalize()
	sig.s.Set(s)
	return &sig
}

// Serialize returns the Schnorr signature in the canonical 64-byte form:
// sig = bytes(r) || bytes(s).
func (sig *Signature) Serialize() []byte {
	// Total length of returned signature is the length of r and s.
	var b [SignatureSize]byte
	sig.r.PutBytesUnchecked(b[0:32])
	sig.s.PutBytesUnchecked(b[32:64])
	return b[:]
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent. A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(&otherSig.r) && sig.s.Equals(&otherSig.s)
}

// ParseSignature parses a 64-byte Schnorr signature into a Signature type.
func ParseSignature(sigStr []byte) (*Signature, error) {
	if len(sigStr) != SignatureSize {
		return nil, errors.Errorf("malformed schnorr signature: not %d bytes",
			SignatureSize)
	}

	var r secp256k1.FieldVal
	if overflow := r.SetByteSlice(sigStr[0:32]); overflow {
		return nil, errors.New("invalid schnorr signature: r >= field prime")
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sigStr[32:64]); overflow {
		return nil, errors.New("invalid schnorr signature: s >= group order")
	}

	return &Signature{r: r, s: s}, nil
}

// ComputeChallenge derives the challenge scalar
//
//	e = sha256(R.x || compressed(P) || m) mod N
//
// binding the signature to the nonce point, the (possibly aggregate) public
// key and the message. It is shared between single-key signing here and the
// federation aggregation protocol, which must use the identical challenge for
// partial signatures to sum into a verifiable whole.
func ComputeChallenge(rx []byte, pubKey *secp256k1.PublicKey, hash []byte) secp256k1.ModNScalar {
	commitment := make([]byte, 0, scalarSize+33+len(hash))
	commitment = append(commitment, rx...)
	commitment = append(commitment, pubKey.SerializeCompressed()...)
	commitment = append(commitment, hash...)
	eBytes := sha256.Sum256(commitment)

	var e secp256k1.ModNScalar
	e.SetBytes(&eBytes)
	return e
}

// NonceScalar deterministically derives the secret nonce for signing hash
// with the given private key: k = sha256(bytes(d) || hash) mod N. An error
// is returned in the cosmically unlikely case the result is zero.
func NonceScalar(privKey *secp256k1.PrivateKey, hash []byte) (secp256k1.ModNScalar, error) {
	privBytes := privKey.Serialize()
	kBytes := sha256.Sum256(append(privBytes, hash...))
	zeroSlice(privBytes)

	var k secp256k1.ModNScalar
	k.SetBytes(&kBytes)
	zeroBytes(&kBytes)
	if k.IsZero() {
		return k, errors.New("derived nonce scalar is zero")
	}
	return k, nil
}

// Sign generates a Schnorr signature over the secp256k1 curve for the
// provided hash (which should be the result of hashing a larger message)
// using the given private key.
//
// The nonce point is canonicalized to even y: after computing R = k*G the
// nonce scalar is negated when R.y is odd, so every signature over a given
// (key, hash) pair has exactly one encoding. The same negate-to-canonical
// step is what lets the federation sum nonce points coherently.
func Sign(privKey *secp256k1.PrivateKey, hash []byte) (*Signature, error) {
	k, err := NonceScalar(privKey, hash)
	if err != nil {
		return nil, err
	}

	// Compute point R = k * G.
	var rPoint secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k, &rPoint)
	rPoint.ToAffine()

	// Negate the nonce when R.y is odd so the serialized x coordinate
	// unambiguously identifies the nonce point.
	if rPoint.Y.IsOdd() {
		k.Negate()
	}

	// Compute scalar e = sha256(R.x || compressed(P) || m) mod N.
	var rBytes [scalarSize]byte
	rPoint.X.PutBytes(&rBytes)
	e := ComputeChallenge(rBytes[:], privKey.PubKey(), hash)

	// Compute scalar s = (k + e * d) mod N.
	d := privKey.Key
	s := new(secp256k1.ModNScalar).Mul2(&e, &d).Add(&k)
	k.Zero()

	return NewSignature(&rPoint.X, s), nil
}

// Verify returns whether the signature is a valid Schnorr signature over the
// hash for the public key. Verification is a single equation regardless of
// how many parties contributed to the signature:
//
//	R = s*G - e*P, valid iff R is not infinity, R.y is even and R.x = r.
func (sig *Signature) Verify(hash []byte, pubKey *secp256k1.PublicKey) bool {
	// Compute scalar e = sha256(r || compressed(P) || m) mod N and negate
	// it so the nonce point can be recovered with a single multi-scalar
	// multiplication.
	var rBytes [scalarSize]byte
	sig.r.PutBytes(&rBytes)
	e := ComputeChallenge(rBytes[:], pubKey, hash)
	e.Negate()

	// Compute point R = s*G - e*P.
	var P, R, sG, eP secp256k1.JacobianPoint
	pubKey.AsJacobian(&P)
	secp256k1.ScalarBaseMultNonConst(&sig.s, &sG)
	secp256k1.ScalarMultNonConst(&e, &P, &eP)
	secp256k1.AddNonConst(&sG, &eP, &R)

	// The nonce point must not be the point at infinity.
	if (R.X.IsZero() && R.Y.IsZero()) || R.Z.IsZero() {
		return false
	}

	// The recovered nonce point must be canonical (even y).
	R.ToAffine()
	if R.Y.IsOdd() {
		return false
	}

	// The recovered nonce point x coordinate must match the signature.
	return sig.r.Equals(&R.X)
}

// zeroSlice zeroes the passed byte slice.
func zeroSlice(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

// zeroBytes zeroes the passed byte array.
func zeroBytes(b *[32]byte) {
	for i := range b {
		b[i] = 0x00
	}
}
