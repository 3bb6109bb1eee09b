// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements block and transaction validation for a
// federation-finalized chain. A block is valid when it is structurally sane,
// its header commits to its transactions through the merkle root, its
// federation proof verifies over the header's signing hash and every input
// script executes successfully against the output it spends. There is no
// proof-of-work and therefore no difficulty validation.
package blockchain

import (
	"fmt"

	"github.com/fedchain/fedchaind/chaincfg"
	"github.com/fedchain/fedchaind/federation"
	"github.com/fedchain/fedchaind/util"
	"github.com/fedchain/fedchaind/wire"
)

// BehaviorFlags is a bitmask defining tweaks to the normal behavior of
// CheckBlock.
type BehaviorFlags uint32

const (
	// BFNoProofCheck may be set to indicate the federation proof check
	// should not be performed. This is useful for block templates that
	// have not been signed yet.
	BFNoProofCheck BehaviorFlags = 1 << iota

	// BFNoScriptCheck may be set to indicate input scripts should not
	// be executed. This is useful when the scripts are known to be valid
	// already, such as for blocks restored from trusted local storage.
	BFNoScriptCheck

	// BFNone is a convenience value to specifically indicate no flags.
	BFNone BehaviorFlags = 0
)

// zeroHash is the zero value for a chainhash.Hash and is defined as a
// package level variable to avoid the need to create a new instance every
// time a check is needed.
var zeroHash = [32]byte{}

// IsCoinBaseTx determines whether or not a transaction is a coinbase. A
// coinbase is a special transaction created by the block signer which has no
// real inputs. This is represented in the block chain by a transaction with a
// single input that has a previous output transaction index set to the
// maximum value along with a zero hash.
func IsCoinBaseTx(msgTx *wire.MsgTx) bool {
	// A coin base must only have one transaction input.
	if len(msgTx.TxIn) != 1 {
		return false
	}

	// The previous output of a coin base must have a max value index and
	// a zero hash.
	prevOut := &msgTx.TxIn[0].PreviousOutPoint
	if prevOut.Index != wire.MaxPrevOutIndex || prevOut.Hash != zeroHash {
		return false
	}

	return true
}

// IsCoinBase determines whether or not a transaction is a coinbase. A
// coinbase is a special transaction created by the block signer which has no
// real inputs.
//
// This function only differs from IsCoinBaseTx in that it works with a higher
// level util transaction as opposed to a raw wire transaction.
func IsCoinBase(tx *util.Tx) bool {
	return IsCoinBaseTx(tx.MsgTx())
}

// CheckTransactionSanity performs some preliminary checks on a transaction to
// ensure it is sane. These checks are context free: they depend only on the
// transaction itself and the network's monetary limits.
func CheckTransactionSanity(tx *util.Tx, maxMoney int64) error {
	// A transaction must have at least one input.
	msgTx := tx.MsgTx()
	if len(msgTx.TxIn) == 0 {
		return ruleError(ErrNoTxInputs, "transaction has no inputs")
	}

	// A transaction must have at least one output.
	if len(msgTx.TxOut) == 0 {
		return ruleError(ErrNoTxOutputs, "transaction has no outputs")
	}

	// A transaction must not exceed the maximum allowed block payload when
	// serialized.
	serializedTxSize := msgTx.SerializeSize()
	if serializedTxSize > wire.MaxBlockPayload {
		str := fmt.Sprintf("serialized transaction is too big - got "+
			"%d, max %d", serializedTxSize, wire.MaxBlockPayload)
		return ruleError(ErrTxTooBig, str)
	}

	// Ensure the transaction amounts are in range. Each transaction output
	// must not be negative or more than the max allowed per transaction.
	// Also, the total of all outputs must abide by the same restrictions.
	// All amounts in a transaction are in a unit value known as a satoshi.
	var totalSatoshi int64
	for _, txOut := range msgTx.TxOut {
		satoshi := txOut.Value
		if satoshi < 0 {
			str := fmt.Sprintf("transaction output has negative "+
				"value of %v", satoshi)
			return ruleError(ErrBadTxOutValue, str)
		}
		if satoshi > maxMoney {
			str := fmt.Sprintf("transaction output value of %v is "+
				"higher than max allowed value of %v", satoshi,
				maxMoney)
			return ruleError(ErrBadTxOutValue, str)
		}

		// Binary arithmetic guarantees that any overflow is detected
		// and reported. This is impossible for fedchain, but perhaps
		// possible if an alternative implementation allows invalid
		// amounts into the chain.
		totalSatoshi += satoshi
		if totalSatoshi < 0 {
			str := fmt.Sprintf("total value of all transaction "+
				"outputs exceeds max allowed value of %v",
				maxMoney)
			return ruleError(ErrBadTxOutValue, str)
		}
		if totalSatoshi > maxMoney {
			str := fmt.Sprintf("total value of all transaction "+
				"outputs is %v which is higher than max "+
				"allowed value of %v", totalSatoshi, maxMoney)
			return ruleError(ErrBadTxOutValue, str)
		}
	}

	// Check for duplicate transaction inputs.
	existingTxOut := make(map[wire.OutPoint]struct{})
	for _, txIn := range msgTx.TxIn {
		if _, exists := existingTxOut[txIn.PreviousOutPoint]; exists {
			return ruleError(ErrDuplicateTxInputs, "transaction "+
				"contains duplicate inputs")
		}
		existingTxOut[txIn.PreviousOutPoint] = struct{}{}
	}

	// Coinbase transactions reference no real previous output, so they
	// are exempt from the null-outpoint check below.
	if IsCoinBase(tx) {
		return nil
	}

	// Previous transaction outputs referenced by the inputs to this
	// transaction must not be null.
	for _, txIn := range msgTx.TxIn {
		if txIn.PreviousOutPoint.Index == wire.MaxPrevOutIndex &&
			txIn.PreviousOutPoint.Hash == zeroHash {

			return ruleError(ErrBadTxInput, "transaction input "+
				"refers to previous output that is null")
		}
	}

	return nil
}

// checkBlockSanity performs the context free checks on a block: a non-empty
// transaction list that starts with exactly one coinbase, per-transaction
// sanity and a header merkle root that commits to the transaction list.
func checkBlockSanity(block *util.Block, maxMoney int64) error {
	// A block must have at least one transaction.
	msgBlock := block.MsgBlock()
	transactions := block.Transactions()
	if len(transactions) == 0 {
		return ruleError(ErrNoTransactions, "block does not contain "+
			"any transactions")
	}

	// The first transaction in a block must be a coinbase.
	if !IsCoinBase(transactions[0]) {
		return ruleError(ErrFirstTxNotCoinbase, "first transaction in "+
			"block is not a coinbase")
	}

	// A block must not have more than one coinbase.
	for i, tx := range transactions[1:] {
		if IsCoinBase(tx) {
			str := fmt.Sprintf("block contains second coinbase at "+
				"index %d", i+1)
			return ruleError(ErrMultipleCoinbases, str)
		}
	}

	// Do some preliminary checks on each transaction to ensure they are
	// sane before continuing.
	for _, tx := range transactions {
		if err := CheckTransactionSanity(tx, maxMoney); err != nil {
			return err
		}
	}

	// Build merkle tree and ensure the calculated merkle root matches the
	// entry in the block header. This also has the effect of caching all
	// of the transaction hashes in the block to speed up future hash
	// checks.
	calculatedMerkleRoot := CalcMerkleRoot(transactions)
	if !msgBlock.Header.MerkleRoot.IsEqual(&calculatedMerkleRoot) {
		str := fmt.Sprintf("block merkle root is invalid - block "+
			"header indicates %v, but calculated value is %v",
			msgBlock.Header.MerkleRoot, calculatedMerkleRoot)
		return ruleError(ErrBadMerkleRoot, str)
	}

	return nil
}

// checkBlockProof verifies the header's federation proof over the header's
// signing hash. The signing hash deliberately excludes the proof itself, so
// the proof covers every other header field including the merkle root.
func checkBlockProof(block *util.Block, fed *federation.Federation) error {
	header := &block.MsgBlock().Header
	signingHash := header.SigningHash()
	if err := federation.VerifyProof(fed, &signingHash, &header.Proof); err != nil {
		str := fmt.Sprintf("block federation proof is invalid: %v", err)
		return ruleError(ErrBadBlockProof, str)
	}
	return nil
}

// checkDoubleSpends ensures no two inputs within the block spend the same
// previous transaction output. Spends of outputs from earlier chain state
// are the UtxoView's concern; this check only covers conflicts inside the
// block itself.
func checkDoubleSpends(block *util.Block) error {
	spent := make(map[wire.OutPoint]struct{})
	for _, tx := range block.Transactions() {
		if IsCoinBase(tx) {
			continue
		}
		for _, txIn := range tx.MsgTx().TxIn {
			prevOut := txIn.PreviousOutPoint
			if _, exists := spent[prevOut]; exists {
				str := fmt.Sprintf("output %v is spent more "+
					"than once in block %v", prevOut,
					block.Hash())
				return ruleError(ErrDoubleSpend, str)
			}
			spent[prevOut] = struct{}{}
		}
	}
	return nil
}

// CheckBlock performs the full stateless block validation pipeline against
// the given network parameters and federation:
//
//  1. Sanity: non-empty transaction list, exactly one leading coinbase,
//     per-transaction sanity and a matching merkle root.
//  2. Federation proof verification over the header's signing hash, unless
//     BFNoProofCheck is set. The genesis block identified by the network
//     parameters is valid by identity and carries no proof.
//  3. Script execution of every input against the spent output from the
//     provided view, unless BFNoScriptCheck is set.
//  4. Rejection of same-block double spends.
//
// Cross-block chain state - whether the referenced outputs are actually
// unspent at this point of the chain - is the UtxoView implementation's
// responsibility.
func CheckBlock(block *util.Block, params *chaincfg.Params,
	fed *federation.Federation, view UtxoView, flags BehaviorFlags) error {

	if err := checkBlockSanity(block, params.MaxMoney); err != nil {
		return err
	}

	blockHash := block.Hash()
	isGenesis := params.GenesisHash != nil && blockHash.IsEqual(params.GenesisHash)

	if flags&BFNoProofCheck == 0 && !isGenesis {
		if err := checkBlockProof(block, fed); err != nil {
			return err
		}
	}

	if err := checkDoubleSpends(block); err != nil {
		return err
	}

	if flags&BFNoScriptCheck == 0 && !isGenesis {
		err := checkBlockScripts(block, view, txscriptStandardFlags)
		if err != nil {
			return err
		}
	}

	log.Debugf("Block %v passed validation with %d transactions",
		blockHash, len(block.Transactions()))
	return nil
}
