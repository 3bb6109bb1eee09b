// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"testing"

	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// testMsgBlock returns a block with two simple transactions suitable for
// exercising the Block wrapper.
func testMsgBlock() *wire.MsgBlock {
	header := wire.NewBlockHeader(1, &chainhash.Hash{0x01},
		&chainhash.Hash{0x02}, nil)

	block := wire.NewMsgBlock(header)
	for seed := byte(1); seed <= 2; seed++ {
		tx := wire.NewMsgTx(1)
		prevOut := wire.NewOutPoint(&chainhash.Hash{seed}, 0)
		tx.AddTxIn(wire.NewTxIn(prevOut, []byte{0x51}))
		tx.AddTxOut(wire.NewTxOut(int64(seed)*5000, []byte{0x51}))
		block.AddTransaction(tx)
	}
	return block
}

// TestBlock ensures the Block wrapper caches hashes and exposes wrapped
// transactions correctly.
func TestBlock(t *testing.T) {
	t.Parallel()

	msgBlock := testMsgBlock()
	b := NewBlock(msgBlock)

	if b.MsgBlock() != msgBlock {
		t.Fatal("MsgBlock: wrong underlying block")
	}
	if b.Height() != BlockHeightUnknown {
		t.Fatalf("Height: got %d, want %d", b.Height(), BlockHeightUnknown)
	}
	b.SetHeight(42)
	if b.Height() != 42 {
		t.Fatalf("Height: got %d, want 42", b.Height())
	}

	wantHash := msgBlock.BlockHash()
	if !b.Hash().IsEqual(&wantHash) {
		t.Fatalf("Hash: got %v, want %v", b.Hash(), wantHash)
	}
	// Second access hits the cache.
	if !b.Hash().IsEqual(&wantHash) {
		t.Fatalf("Hash: cached hash %v differs from %v", b.Hash(), wantHash)
	}

	txns := b.Transactions()
	if len(txns) != len(msgBlock.Transactions) {
		t.Fatalf("Transactions: got %d, want %d", len(txns),
			len(msgBlock.Transactions))
	}
	for i, tx := range txns {
		if tx.Index() != i {
			t.Fatalf("transaction %d has index %d", i, tx.Index())
		}
		wantTxHash := msgBlock.Transactions[i].TxHash()
		if !tx.Hash().IsEqual(&wantTxHash) {
			t.Fatalf("transaction %d hash mismatch", i)
		}

		hash, err := b.TxHash(i)
		if err != nil {
			t.Fatalf("TxHash(%d): %v", i, err)
		}
		if !hash.IsEqual(&wantTxHash) {
			t.Fatalf("TxHash(%d) mismatch", i)
		}
	}

	if _, err := b.Tx(-1); err == nil {
		t.Fatal("Tx(-1): no error")
	}
}

// TestBlockFromBytes ensures serialized round trips through the Block
// wrapper preserve the block.
func TestBlockFromBytes(t *testing.T) {
	t.Parallel()

	msgBlock := testMsgBlock()
	b := NewBlock(msgBlock)

	serialized, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	b2, err := NewBlockFromBytes(serialized)
	if err != nil {
		t.Fatalf("NewBlockFromBytes: %v", err)
	}
	if !b2.Hash().IsEqual(b.Hash()) {
		t.Fatalf("block hash mismatch after round trip: %v != %v",
			b2.Hash(), b.Hash())
	}

	serialized2, err := b2.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(serialized, serialized2) {
		t.Fatal("serialized bytes differ after round trip")
	}

	locs, err := b2.TxLoc()
	if err != nil {
		t.Fatalf("TxLoc: %v", err)
	}
	if len(locs) != len(msgBlock.Transactions) {
		t.Fatalf("TxLoc: got %d locations, want %d", len(locs),
			len(msgBlock.Transactions))
	}

	if _, err := NewBlockFromBytes(serialized[:10]); err == nil {
		t.Fatal("NewBlockFromBytes on truncated bytes: no error")
	}
}

// TestTxWrapper ensures the Tx wrapper caches hashes and tracks indices.
func TestTxWrapper(t *testing.T) {
	t.Parallel()

	msgTx := wire.NewMsgTx(1)
	prevOut := wire.NewOutPoint(&chainhash.Hash{0xaa}, 3)
	msgTx.AddTxIn(wire.NewTxIn(prevOut, []byte{0x51}))
	msgTx.AddTxOut(wire.NewTxOut(1234, []byte{0x51}))

	tx := NewTx(msgTx)
	if tx.MsgTx() != msgTx {
		t.Fatal("MsgTx: wrong underlying transaction")
	}
	if tx.Index() != TxIndexUnknown {
		t.Fatalf("Index: got %d, want %d", tx.Index(), TxIndexUnknown)
	}
	tx.SetIndex(7)
	if tx.Index() != 7 {
		t.Fatalf("Index: got %d, want 7", tx.Index())
	}

	wantHash := msgTx.TxHash()
	if !tx.Hash().IsEqual(&wantHash) {
		t.Fatalf("Hash: got %v, want %v", tx.Hash(), wantHash)
	}

	var buf bytes.Buffer
	if err := msgTx.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	tx2, err := NewTxFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewTxFromBytes: %v", err)
	}
	if !tx2.Hash().IsEqual(&wantHash) {
		t.Fatal("hash mismatch after round trip")
	}
}
