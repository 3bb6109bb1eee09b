// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/fedchain/fedchaind/chaincfg"
	"github.com/fedchain/fedchaind/federation"
	"github.com/fedchain/fedchaind/txscript"
	"github.com/fedchain/fedchaind/util"
	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// testFederation returns the regression test network federation along with
// the member private keys, ordered by canonical member index.
func testFederation(t *testing.T) (*federation.Federation, []*secp256k1.PrivateKey) {
	t.Helper()

	params := &chaincfg.RegressionNetParams
	fed, err := federation.New(params.FederationPubKeys, params.SignerThreshold)
	require.NoError(t, err)

	// The regression test federation keys are derived from the well-known
	// private keys 1, 2 and 3.
	privKeys := make([]*secp256k1.PrivateKey, fed.Size())
	for i := byte(1); i <= 3; i++ {
		var buf [32]byte
		buf[31] = i
		privKey := secp256k1.PrivKeyFromBytes(buf[:])
		idx, err := fed.MemberIndex(privKey.PubKey())
		require.NoError(t, err)
		privKeys[idx] = privKey
	}
	return fed, privKeys
}

// newCoinbaseTx returns a minimal coinbase transaction paying the subsidy to
// an anyone-can-spend output.
func newCoinbaseTx() *wire.MsgTx {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{},
			Index: wire.MaxPrevOutIndex,
		},
		SignatureScript: []byte{txscript.OP_1, txscript.OP_1},
		Sequence:        wire.MaxTxInSequenceNum,
	})
	msgTx.AddTxOut(wire.NewTxOut(50*chaincfg.SatoshiPerCoin,
		[]byte{txscript.OP_TRUE}))
	return msgTx
}

// signBlock produces a federation proof for the header's signing hash using
// the first two members (the regression test threshold) and installs it in
// the header.
func signBlock(t *testing.T, fed *federation.Federation,
	privKeys []*secp256k1.PrivateKey, header *wire.BlockHeader) {

	t.Helper()

	digest := header.SigningHash()

	participants := bitset.New(uint(fed.Size()))
	participants.Set(0)
	participants.Set(1)

	nonces := make(map[int]*federation.SecretNonce)
	pubNonces := make(map[int]*secp256k1.PublicKey)
	for _, idx := range []int{0, 1} {
		nonce, err := federation.NewSecretNonce(privKeys[idx], &digest)
		require.NoError(t, err)
		nonces[idx] = nonce
		pubNonces[idx] = nonce.PubNonce()
	}

	session, err := federation.NewSession(fed, &digest, participants, pubNonces)
	require.NoError(t, err)

	var partials []*federation.PartialSignature
	for _, idx := range []int{0, 1} {
		partial, err := session.PartialSign(idx, privKeys[idx], nonces[idx])
		require.NoError(t, err)
		partials = append(partials, partial)
	}

	proof, err := session.Aggregate(partials)
	require.NoError(t, err)
	header.Proof = *proof
}

// assembleBlock builds a signed block on top of the regression test genesis
// block containing a coinbase plus the passed spending transactions.
func assembleBlock(t *testing.T, fed *federation.Federation,
	privKeys []*secp256k1.PrivateKey, spends []*wire.MsgTx) *util.Block {

	t.Helper()

	txns := []*util.Tx{util.NewTx(newCoinbaseTx())}
	for _, spend := range spends {
		txns = append(txns, util.NewTx(spend))
	}
	merkleRoot := CalcMerkleRoot(txns)

	header := wire.NewBlockHeader(1, chaincfg.RegressionNetParams.GenesisHash,
		&merkleRoot, nil)
	signBlock(t, fed, privKeys, header)

	msgBlock := wire.NewMsgBlock(header)
	for _, tx := range txns {
		msgBlock.AddTransaction(tx.MsgTx())
	}
	return util.NewBlock(msgBlock)
}

// spendableOutput pairs an outpoint with the output it references for
// building test views.
type spendableOutput struct {
	outPoint wire.OutPoint
	txOut    *wire.TxOut
}

// newTestView returns a view containing the passed outputs.
func newTestView(outputs ...spendableOutput) *UtxoViewpoint {
	view := NewUtxoViewpoint()
	for _, output := range outputs {
		view.entries[output.outPoint] = output.txOut
	}
	return view
}

// newSignedSpend builds a transaction spending the passed pay-to-pubkey-hash
// output with the provided key.
func newSignedSpend(t *testing.T, outPoint wire.OutPoint, txOut *wire.TxOut,
	privKey *secp256k1.PrivateKey) *wire.MsgTx {

	t.Helper()

	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(wire.NewTxIn(&outPoint, nil))
	msgTx.AddTxOut(wire.NewTxOut(txOut.Value-1000, []byte{txscript.OP_TRUE}))

	sigScript, err := txscript.SignatureScript(msgTx, 0, txOut.PkScript,
		txscript.SigHashAll, privKey, true)
	require.NoError(t, err)
	msgTx.TxIn[0].SignatureScript = sigScript
	return msgTx
}

// p2pkhOutput returns a pay-to-pubkey-hash output locked to the passed key.
func p2pkhOutput(t *testing.T, privKey *secp256k1.PrivateKey, value int64) *wire.TxOut {
	t.Helper()

	pkHash := util.Hash160(privKey.PubKey().SerializeCompressed())
	pkScript, err := txscript.PayToPubKeyHashScript(pkHash)
	require.NoError(t, err)
	return wire.NewTxOut(value, pkScript)
}

// TestBlockProofEndToEnd builds a two-transaction block, signs it with two of
// the three regression test federation members, verifies the full validation
// pipeline accepts it and that corrupting the aggregate signature is reported
// as a proof failure rather than a decoding failure.
func TestBlockProofEndToEnd(t *testing.T) {
	fed, privKeys := testFederation(t)
	params := &chaincfg.RegressionNetParams

	// Two spendable pay-to-pubkey-hash outputs, one per spender key.
	keyA := secp256k1.PrivKeyFromBytes([]byte{
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
	})
	keyB := secp256k1.PrivKeyFromBytes([]byte{
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
	})
	outA := spendableOutput{
		outPoint: wire.OutPoint{Hash: chainhash.Hash{0x0a}, Index: 0},
		txOut:    p2pkhOutput(t, keyA, 10*chaincfg.SatoshiPerCoin),
	}
	outB := spendableOutput{
		outPoint: wire.OutPoint{Hash: chainhash.Hash{0x0b}, Index: 1},
		txOut:    p2pkhOutput(t, keyB, 20*chaincfg.SatoshiPerCoin),
	}
	view := newTestView(outA, outB)

	spendA := newSignedSpend(t, outA.outPoint, outA.txOut, keyA)
	spendB := newSignedSpend(t, outB.outPoint, outB.txOut, keyB)
	block := assembleBlock(t, fed, privKeys, []*wire.MsgTx{spendA, spendB})

	// The signed block must pass the full pipeline.
	err := CheckBlock(block, params, fed, view, BFNone)
	require.NoError(t, err)

	// Corrupting a byte of the aggregate signature must surface as a
	// block proof rule violation, not a decoding error: the proof still
	// decodes, it just no longer verifies.
	corrupted := block.MsgBlock().Header
	corrupted.Proof = block.MsgBlock().Header.Proof.Copy()
	corrupted.Proof.Signature[17] ^= 0x20
	corruptedBlock := wire.NewMsgBlock(&corrupted)
	for _, tx := range block.MsgBlock().Transactions {
		corruptedBlock.AddTransaction(tx)
	}

	err = CheckBlock(util.NewBlock(corruptedBlock), params, fed, view, BFNone)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrBadBlockProof),
		"expected ErrBadBlockProof, got %v", err)
}

// TestCheckBlockScriptFailure ensures an input signed with the wrong key is
// rejected as a script validation failure.
func TestCheckBlockScriptFailure(t *testing.T) {
	fed, privKeys := testFederation(t)
	params := &chaincfg.RegressionNetParams

	keyA := secp256k1.PrivKeyFromBytes([]byte{
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
	})
	wrongKey := secp256k1.PrivKeyFromBytes([]byte{
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
		0x77, 0x16, 0x25, 0x34, 0x43, 0x52, 0x61, 0x70,
	})
	out := spendableOutput{
		outPoint: wire.OutPoint{Hash: chainhash.Hash{0x0a}, Index: 0},
		txOut:    p2pkhOutput(t, keyA, 10*chaincfg.SatoshiPerCoin),
	}
	view := newTestView(out)

	spend := newSignedSpend(t, out.outPoint, out.txOut, wrongKey)
	block := assembleBlock(t, fed, privKeys, []*wire.MsgTx{spend})

	err := CheckBlock(block, params, fed, view, BFNone)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrScriptValidation),
		"expected ErrScriptValidation, got %v", err)
}

// TestCheckBlockMissingTxOut ensures a spend of an unknown output is rejected.
func TestCheckBlockMissingTxOut(t *testing.T) {
	fed, privKeys := testFederation(t)
	params := &chaincfg.RegressionNetParams

	keyA := secp256k1.PrivKeyFromBytes([]byte{
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
	})
	out := spendableOutput{
		outPoint: wire.OutPoint{Hash: chainhash.Hash{0x0a}, Index: 0},
		txOut:    p2pkhOutput(t, keyA, 10*chaincfg.SatoshiPerCoin),
	}

	spend := newSignedSpend(t, out.outPoint, out.txOut, keyA)
	block := assembleBlock(t, fed, privKeys, []*wire.MsgTx{spend})

	// An empty view knows nothing about the referenced output.
	err := CheckBlock(block, params, fed, NewUtxoViewpoint(), BFNone)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrMissingTxOut),
		"expected ErrMissingTxOut, got %v", err)
}

// TestCheckBlockDoubleSpend ensures two transactions spending the same output
// within one block are rejected.
func TestCheckBlockDoubleSpend(t *testing.T) {
	fed, privKeys := testFederation(t)
	params := &chaincfg.RegressionNetParams

	keyA := secp256k1.PrivKeyFromBytes([]byte{
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
		0x2a, 0xab, 0xbc, 0xcd, 0xde, 0xef, 0xf0, 0x01,
	})
	out := spendableOutput{
		outPoint: wire.OutPoint{Hash: chainhash.Hash{0x0a}, Index: 0},
		txOut:    p2pkhOutput(t, keyA, 10*chaincfg.SatoshiPerCoin),
	}
	view := newTestView(out)

	spend1 := newSignedSpend(t, out.outPoint, out.txOut, keyA)
	spend2 := newSignedSpend(t, out.outPoint, out.txOut, keyA)
	// Make the second spend a distinct transaction so it is not a simple
	// duplicate of the first.
	spend2.TxOut[0].Value -= 500
	sigScript, err := txscript.SignatureScript(spend2, 0, out.txOut.PkScript,
		txscript.SigHashAll, keyA, true)
	require.NoError(t, err)
	spend2.TxIn[0].SignatureScript = sigScript

	block := assembleBlock(t, fed, privKeys, []*wire.MsgTx{spend1, spend2})

	err = CheckBlock(block, params, fed, view, BFNone)
	require.Error(t, err)
	require.True(t, IsErrorCode(err, ErrDoubleSpend),
		"expected ErrDoubleSpend, got %v", err)
}

// TestCheckBlockGenesis ensures the genesis block identified by the network
// parameters validates without a proof.
func TestCheckBlockGenesis(t *testing.T) {
	fed, _ := testFederation(t)
	params := &chaincfg.RegressionNetParams

	genesis := util.NewBlock(params.GenesisBlock)
	err := CheckBlock(genesis, params, fed, NewUtxoViewpoint(), BFNone)
	require.NoError(t, err)
}

// TestCheckTransactionSanity ensures the context free transaction checks
// classify malformed transactions with the expected rule error codes.
func TestCheckTransactionSanity(t *testing.T) {
	t.Parallel()

	maxMoney := chaincfg.MainNetParams.MaxMoney

	newSpend := func() *wire.MsgTx {
		msgTx := wire.NewMsgTx(wire.TxVersion)
		msgTx.AddTxIn(wire.NewTxIn(
			wire.NewOutPoint(&chainhash.Hash{0x01}, 0), nil))
		msgTx.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))
		return msgTx
	}

	tests := []struct {
		name string
		tx   func() *wire.MsgTx
		code ErrorCode
		ok   bool
	}{
		{
			name: "valid spend",
			tx:   newSpend,
			ok:   true,
		},
		{
			name: "valid coinbase",
			tx:   newCoinbaseTx,
			ok:   true,
		},
		{
			name: "no inputs",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.TxIn = nil
				return msgTx
			},
			code: ErrNoTxInputs,
		},
		{
			name: "no outputs",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.TxOut = nil
				return msgTx
			},
			code: ErrNoTxOutputs,
		},
		{
			name: "negative output value",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.TxOut[0].Value = -1
				return msgTx
			},
			code: ErrBadTxOutValue,
		},
		{
			name: "output value above max money",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.TxOut[0].Value = maxMoney + 1
				return msgTx
			},
			code: ErrBadTxOutValue,
		},
		{
			name: "total output value above max money",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.TxOut[0].Value = maxMoney
				msgTx.AddTxOut(wire.NewTxOut(maxMoney,
					[]byte{txscript.OP_TRUE}))
				return msgTx
			},
			code: ErrBadTxOutValue,
		},
		{
			name: "duplicate inputs",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.AddTxIn(wire.NewTxIn(
					wire.NewOutPoint(&chainhash.Hash{0x01}, 0),
					nil))
				return msgTx
			},
			code: ErrDuplicateTxInputs,
		},
		{
			name: "null previous outpoint in non-coinbase",
			tx: func() *wire.MsgTx {
				msgTx := newSpend()
				msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(
					&chainhash.Hash{}, wire.MaxPrevOutIndex),
					nil))
				return msgTx
			},
			code: ErrBadTxInput,
		},
	}

	for _, test := range tests {
		err := CheckTransactionSanity(util.NewTx(test.tx()), maxMoney)
		if test.ok {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		if !IsErrorCode(err, test.code) {
			t.Errorf("%s: expected %v, got %v", test.name, test.code,
				err)
		}
	}
}

// TestCheckBlockSanity ensures the structural block checks classify malformed
// blocks with the expected rule error codes.
func TestCheckBlockSanity(t *testing.T) {
	t.Parallel()

	maxMoney := chaincfg.MainNetParams.MaxMoney

	// A block with no transactions.
	header := wire.NewBlockHeader(1, chaincfg.RegressionNetParams.GenesisHash,
		&chainhash.Hash{}, nil)
	emptyBlock := util.NewBlock(wire.NewMsgBlock(header))
	err := checkBlockSanity(emptyBlock, maxMoney)
	require.True(t, IsErrorCode(err, ErrNoTransactions),
		"expected ErrNoTransactions, got %v", err)

	// A block whose first transaction is not a coinbase.
	spend := wire.NewMsgTx(wire.TxVersion)
	spend.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x01}, 0), nil))
	spend.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))
	noCoinbase := wire.NewMsgBlock(header)
	noCoinbase.AddTransaction(spend)
	err = checkBlockSanity(util.NewBlock(noCoinbase), maxMoney)
	require.True(t, IsErrorCode(err, ErrFirstTxNotCoinbase),
		"expected ErrFirstTxNotCoinbase, got %v", err)

	// A block with two coinbases.
	twoCoinbases := wire.NewMsgBlock(header)
	twoCoinbases.AddTransaction(newCoinbaseTx())
	second := newCoinbaseTx()
	second.TxOut[0].Value = 25 * chaincfg.SatoshiPerCoin
	twoCoinbases.AddTransaction(second)
	err = checkBlockSanity(util.NewBlock(twoCoinbases), maxMoney)
	require.True(t, IsErrorCode(err, ErrMultipleCoinbases),
		"expected ErrMultipleCoinbases, got %v", err)

	// A block whose header merkle root does not commit to its
	// transactions.
	badRoot := wire.NewMsgBlock(header)
	badRoot.AddTransaction(newCoinbaseTx())
	err = checkBlockSanity(util.NewBlock(badRoot), maxMoney)
	require.True(t, IsErrorCode(err, ErrBadMerkleRoot),
		"expected ErrBadMerkleRoot, got %v", err)
}
