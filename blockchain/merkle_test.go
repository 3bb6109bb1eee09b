// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/fedchain/fedchaind/util"
	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// testTx returns a transaction whose hash is unique per seed, for use as a
// merkle tree leaf.
func testTx(seed byte) *util.Tx {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{seed}, 0), nil))
	msgTx.AddTxOut(wire.NewTxOut(int64(seed)*1000, []byte{0x51}))
	return util.NewTx(msgTx)
}

// TestMerkleSingleTransaction ensures the merkle root of a single-transaction
// block is the transaction hash itself.
func TestMerkleSingleTransaction(t *testing.T) {
	t.Parallel()

	tx := testTx(1)
	root := CalcMerkleRoot([]*util.Tx{tx})
	if !root.IsEqual(tx.Hash()) {
		t.Fatalf("merkle root of single transaction is %v, want the "+
			"transaction hash %v", root, tx.Hash())
	}
}

// TestMerkleTwoTransactions ensures a two-leaf tree is the hash of the
// concatenated leaves.
func TestMerkleTwoTransactions(t *testing.T) {
	t.Parallel()

	tx1, tx2 := testTx(1), testTx(2)
	want := HashMerkleBranches(tx1.Hash(), tx2.Hash())

	root := CalcMerkleRoot([]*util.Tx{tx1, tx2})
	if !root.IsEqual(want) {
		t.Fatalf("merkle root is %v, want %v", root, want)
	}
}

// TestMerkleDuplicateLastNode ensures an odd level duplicates its last node:
// for three leaves the root must be h(h(h1+h2) + h(h3+h3)).
func TestMerkleDuplicateLastNode(t *testing.T) {
	t.Parallel()

	tx1, tx2, tx3 := testTx(1), testTx(2), testTx(3)

	left := HashMerkleBranches(tx1.Hash(), tx2.Hash())
	right := HashMerkleBranches(tx3.Hash(), tx3.Hash())
	want := HashMerkleBranches(left, right)

	root := CalcMerkleRoot([]*util.Tx{tx1, tx2, tx3})
	if !root.IsEqual(want) {
		t.Fatalf("merkle root is %v, want %v", root, want)
	}

	// The store must keep the merkle root as its final entry.
	merkles := BuildMerkleTreeStore([]*util.Tx{tx1, tx2, tx3})
	if !merkles[len(merkles)-1].IsEqual(want) {
		t.Fatalf("merkle store root is %v, want %v",
			merkles[len(merkles)-1], want)
	}
}
