// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// testSigHashTx returns a transaction with two inputs and two outputs for
// exercising the signature hash calculation.
func testSigHashTx() *wire.MsgTx {
	prevHash1, _ := chainhash.NewHashFromStr(
		"0437cd7f8525ceed2324359c2d0ba26006d92d856a9c20fa0241106ee5a597c9")
	prevHash2, _ := chainhash.NewHashFromStr(
		"d3ad39fa52a89997ac7381c95eeffeaf40b66af7a57e9eba144be0a175a12b11")

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(prevHash1, 0), nil))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(prevHash2, 1), nil))
	tx.AddTxOut(wire.NewTxOut(100000000, hexToBytes(
		"76a914fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c88ac")))
	tx.AddTxOut(wire.NewTxOut(200000000, hexToBytes(
		"76a914f4d03b42b8f12a1642d81e04fdaa18e1b4f3c82c88ac")))
	return tx
}

// mustSigHash calculates the signature hash and fails the test on error.
func mustSigHash(t *testing.T, script []byte, hashType SigHashType,
	tx *wire.MsgTx, idx int) []byte {

	t.Helper()
	hash, err := CalcSignatureHash(script, hashType, tx, idx)
	if err != nil {
		t.Fatalf("CalcSignatureHash: unexpected error: %v", err)
	}
	return hash
}

// TestCalcSignatureHashSingleIndex ensures the explicit error is returned
// when the SigHashSingle hash type is used with an input index for which no
// corresponding output exists.
func TestCalcSignatureHashSingleIndex(t *testing.T) {
	t.Parallel()

	tx := testSigHashTx()
	script := hexToBytes("76a914fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c88ac")

	// Strip the second output so input 1 has no matching output.
	tx.TxOut = tx.TxOut[:1]

	_, err := CalcSignatureHash(script, SigHashSingle, tx, 1)
	if !IsErrorCode(err, ErrInvalidSigHashSingleIndex) {
		t.Fatalf("CalcSignatureHash: expected "+
			"ErrInvalidSigHashSingleIndex, got %v", err)
	}

	// The same applies when combined with SigHashAnyOneCanPay.
	_, err = CalcSignatureHash(script, SigHashSingle|SigHashAnyOneCanPay,
		tx, 1)
	if !IsErrorCode(err, ErrInvalidSigHashSingleIndex) {
		t.Fatalf("CalcSignatureHash: expected "+
			"ErrInvalidSigHashSingleIndex, got %v", err)
	}

	// Input 0 still has a matching output and must succeed.
	if _, err := CalcSignatureHash(script, SigHashSingle, tx, 0); err != nil {
		t.Fatalf("CalcSignatureHash: unexpected error: %v", err)
	}
}

// TestCalcSignatureHashCommitments verifies which parts of the transaction
// each hash type commits to by mutating the transaction and checking whether
// the digest changes.
func TestCalcSignatureHashCommitments(t *testing.T) {
	t.Parallel()

	script := hexToBytes("76a914fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c88ac")

	// SigHashAll commits to every output.
	tx := testSigHashTx()
	allHash := mustSigHash(t, script, SigHashAll, tx, 0)
	tx.TxOut[1].Value++
	if bytes.Equal(allHash, mustSigHash(t, script, SigHashAll, tx, 0)) {
		t.Fatal("SigHashAll digest unchanged after output mutation")
	}

	// SigHashNone commits to no outputs.
	tx = testSigHashTx()
	noneHash := mustSigHash(t, script, SigHashNone, tx, 0)
	tx.TxOut[0].Value++
	tx.TxOut[1].PkScript = nil
	if !bytes.Equal(noneHash, mustSigHash(t, script, SigHashNone, tx, 0)) {
		t.Fatal("SigHashNone digest changed after output mutation")
	}

	// SigHashSingle commits only to the output at the input index.
	tx = testSigHashTx()
	singleHash := mustSigHash(t, script, SigHashSingle, tx, 0)
	tx.TxOut[1].Value++
	if !bytes.Equal(singleHash, mustSigHash(t, script, SigHashSingle, tx, 0)) {
		t.Fatal("SigHashSingle digest changed after mutating another output")
	}
	tx.TxOut[0].Value++
	if bytes.Equal(singleHash, mustSigHash(t, script, SigHashSingle, tx, 0)) {
		t.Fatal("SigHashSingle digest unchanged after mutating own output")
	}

	// SigHashAnyOneCanPay commits only to the input being signed.
	tx = testSigHashTx()
	acpHash := mustSigHash(t, script, SigHashAll|SigHashAnyOneCanPay, tx, 0)
	tx.TxIn[1].PreviousOutPoint.Index = 7
	tx.TxIn[1].Sequence = 42
	if !bytes.Equal(acpHash, mustSigHash(t, script,
		SigHashAll|SigHashAnyOneCanPay, tx, 0)) {
		t.Fatal("anyonecanpay digest changed after mutating another input")
	}
	tx.TxIn[0].PreviousOutPoint.Index = 7
	if bytes.Equal(acpHash, mustSigHash(t, script,
		SigHashAll|SigHashAnyOneCanPay, tx, 0)) {
		t.Fatal("anyonecanpay digest unchanged after mutating own input")
	}

	// Without anyonecanpay, every input is committed to.
	tx = testSigHashTx()
	allHash = mustSigHash(t, script, SigHashAll, tx, 0)
	tx.TxIn[1].PreviousOutPoint.Index = 7
	if bytes.Equal(allHash, mustSigHash(t, script, SigHashAll, tx, 0)) {
		t.Fatal("SigHashAll digest unchanged after mutating another input")
	}
}

// TestCalcSignatureHashCodeSeparator ensures OP_CODESEPARATOR is removed from
// the script before hashing, so its presence does not change the digest.
func TestCalcSignatureHashCodeSeparator(t *testing.T) {
	t.Parallel()

	tx := testSigHashTx()

	plain, err := NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(hexToBytes("fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c")).
		AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
	if err != nil {
		t.Fatalf("ScriptBuilder: %v", err)
	}
	withSep, err := NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(hexToBytes("fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c")).
		AddOp(OP_CODESEPARATOR).AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).Script()
	if err != nil {
		t.Fatalf("ScriptBuilder: %v", err)
	}

	plainHash := mustSigHash(t, plain, SigHashAll, tx, 0)
	sepHash := mustSigHash(t, withSep, SigHashAll, tx, 0)
	if !bytes.Equal(plainHash, sepHash) {
		t.Fatal("OP_CODESEPARATOR changed the signature hash")
	}
}

// TestCalcSignatureHashUndefinedType ensures undefined hash type low bits are
// hashed like SigHashAll rather than rejected.
func TestCalcSignatureHashUndefinedType(t *testing.T) {
	t.Parallel()

	tx := testSigHashTx()
	script := hexToBytes("76a914fcc9b36d38cf55d7d5b4ee4dddb6b2c17612f48c88ac")

	if _, err := CalcSignatureHash(script, SigHashType(0x04), tx, 0); err != nil {
		t.Fatalf("CalcSignatureHash: unexpected error for undefined "+
			"hash type: %v", err)
	}
}
