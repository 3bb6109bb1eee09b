// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"bytes"
	"testing"
)

// TestGenesisBlock tests the genesis block of the main network for validity
// by checking the encoded hashes against the block and transaction contents.
func TestGenesisBlock(t *testing.T) {
	// The merkle root of a single-transaction block is the transaction
	// hash itself.
	merkleRoot := genesisCoinbaseTx.TxHash()
	if !genesisMerkleRoot.IsEqual(&merkleRoot) {
		t.Fatalf("TestGenesisBlock: genesis merkle root does not "+
			"appear valid - got %v, want %v", merkleRoot,
			genesisMerkleRoot)
	}

	// Check hash of the block against expected hash.
	hash := genesisBlock.BlockHash()
	if !genesisHash.IsEqual(&hash) {
		t.Fatalf("TestGenesisBlock: genesis block hash does not "+
			"appear valid - got %v, want %v", hash, genesisHash)
	}

	// The genesis block carries the empty placeholder proof.
	if !genesisBlock.Header.Proof.IsEmpty() {
		t.Fatal("TestGenesisBlock: genesis block proof is not the " +
			"empty placeholder")
	}
}

// TestRegTestGenesisBlock tests the genesis block of the regression test
// network for validity by checking the encoded hashes against the block and
// transaction contents.
func TestRegTestGenesisBlock(t *testing.T) {
	merkleRoot := regTestGenesisCoinbaseTx.TxHash()
	if !regTestGenesisMerkleRoot.IsEqual(&merkleRoot) {
		t.Fatalf("TestRegTestGenesisBlock: genesis merkle root does "+
			"not appear valid - got %v, want %v", merkleRoot,
			regTestGenesisMerkleRoot)
	}

	hash := regTestGenesisBlock.BlockHash()
	if !regTestGenesisHash.IsEqual(&hash) {
		t.Fatalf("TestRegTestGenesisBlock: genesis block hash does "+
			"not appear valid - got %v, want %v", hash,
			regTestGenesisHash)
	}
}

// TestGenesisCoinbaseScript ensures both networks share the same coinbase
// signature script and that it carries the expected timestamping message.
func TestGenesisCoinbaseScript(t *testing.T) {
	mainScript := genesisCoinbaseTx.TxIn[0].SignatureScript
	regScript := regTestGenesisCoinbaseTx.TxIn[0].SignatureScript
	if !bytes.Equal(mainScript, regScript) {
		t.Fatal("TestGenesisCoinbaseScript: networks do not share " +
			"the coinbase signature script")
	}

	wantMsg := []byte("FT 01/Oct/2019 Finance pursues settlement " +
		"without mining")
	if !bytes.Contains(mainScript, wantMsg) {
		t.Fatalf("TestGenesisCoinbaseScript: timestamping message "+
			"not found in %x", mainScript)
	}
}
