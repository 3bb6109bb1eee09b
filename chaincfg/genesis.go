// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// genesisCoinbaseScript is the signature script of the coinbase transaction
// in every genesis block. It pushes the block height (zero) followed by the
// timestamping message:
//
//	FT 01/Oct/2019 Finance pursues settlement without mining
var genesisCoinbaseScript = []byte{
	0x00, /* height 0 */
	0x38, /* push 56 bytes */
	0x46, 0x54, 0x20, 0x30, 0x31, 0x2f, 0x4f, 0x63, /* |FT 01/Oc| */
	0x74, 0x2f, 0x32, 0x30, 0x31, 0x39, 0x20, 0x46, /* |t/2019 F| */
	0x69, 0x6e, 0x61, 0x6e, 0x63, 0x65, 0x20, 0x70, /* |inance p| */
	0x75, 0x72, 0x73, 0x75, 0x65, 0x73, 0x20, 0x73, /* |ursues s| */
	0x65, 0x74, 0x74, 0x6c, 0x65, 0x6d, 0x65, 0x6e, /* |ettlemen| */
	0x74, 0x20, 0x77, 0x69, 0x74, 0x68, 0x6f, 0x75, /* |t withou| */
	0x74, 0x20, 0x6d, 0x69, 0x6e, 0x69, 0x6e, 0x67, /* |t mining| */
}

// genesisCoinbaseTx is the coinbase transaction for the main network genesis
// block. Its single output pays the initial subsidy to the federation's era
// zero aggregate public key with a pay-to-pubkey script.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: genesisCoinbaseScript,
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value: 0x12a05f200, // 50 * COIN
			PkScript: []byte{
				0x21, /* push 33 bytes */
				0x03, 0xea, 0xb9, 0x77, 0x71, 0x7b, 0x7c, 0xce,
				0xc1, 0xe8, 0x61, 0x02, 0x3f, 0xa0, 0x92, 0x4b,
				0x19, 0x7b, 0xa0, 0x37, 0xe0, 0x3b, 0x39, 0x53,
				0x50, 0x0c, 0x79, 0xf9, 0xed, 0x1d, 0x6e, 0x2e,
				0x96,
				0xac, /* OP_CHECKSIG */
			},
		},
	},
	LockTime: 0,
}

// genesisHash is the hash of the first block in the block chain for the main
// network (genesis block).
var genesisHash = chainhash.Hash([chainhash.HashSize]byte{
	0x29, 0x8d, 0xca, 0xba, 0xdc, 0x0e, 0x4b, 0xe5,
	0x69, 0x17, 0xb9, 0x80, 0x5e, 0x13, 0x2c, 0x70,
	0x15, 0xd6, 0xde, 0xa7, 0x3d, 0xce, 0xcf, 0xe3,
	0x84, 0x19, 0xde, 0x2a, 0xb3, 0xae, 0xd7, 0xcd,
})

// genesisMerkleRoot is the hash of the first transaction in the genesis block
// for the main network.
var genesisMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{
	0x94, 0x17, 0x3f, 0xfe, 0x7c, 0x58, 0xaa, 0x34,
	0x26, 0x2f, 0x12, 0x0c, 0xb4, 0xcb, 0x42, 0x35,
	0x56, 0x3e, 0x12, 0x99, 0x7a, 0x1f, 0x2e, 0x1b,
	0xe8, 0x7f, 0x71, 0x14, 0x9e, 0x38, 0xba, 0x62,
})

// genesisBlock defines the genesis block of the block chain which serves as
// the public transaction ledger for the main network. The genesis block is
// the only block whose validity is established by identity rather than by a
// federation proof, so its proof is the empty placeholder.
var genesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: genesisMerkleRoot,
		Timestamp:  time.Unix(0x5d93e880, 0), // 2019-10-02 00:00:00 +0000 UTC
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// regTestGenesisCoinbaseTx is the coinbase transaction for the regression
// test network genesis block. It differs from the main network coinbase only
// in the federation aggregate key its output pays to.
var regTestGenesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: genesisCoinbaseScript,
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value: 0x12a05f200, // 50 * COIN
			PkScript: []byte{
				0x21, /* push 33 bytes */
				0x03, 0xff, 0xf9, 0x7b, 0xd5, 0x75, 0x5e, 0xee,
				0xa4, 0x20, 0x45, 0x3a, 0x14, 0x35, 0x52, 0x35,
				0xd3, 0x82, 0xf6, 0x47, 0x2f, 0x85, 0x68, 0xa1,
				0x8b, 0x2f, 0x05, 0x7a, 0x14, 0x60, 0x29, 0x75,
				0x56,
				0xac, /* OP_CHECKSIG */
			},
		},
	},
	LockTime: 0,
}

// regTestGenesisHash is the hash of the first block in the block chain for
// the regression test network (genesis block).
var regTestGenesisHash = chainhash.Hash([chainhash.HashSize]byte{
	0xe0, 0x41, 0x29, 0x35, 0x54, 0x3f, 0x9a, 0x1c,
	0xde, 0x3e, 0x63, 0x85, 0xa3, 0x09, 0xf8, 0xd3,
	0x0b, 0xcd, 0x6d, 0x3e, 0x77, 0x9f, 0xdb, 0xb9,
	0x57, 0x01, 0x2c, 0x3d, 0xcf, 0x0c, 0x77, 0xff,
})

// regTestGenesisMerkleRoot is the hash of the first transaction in the
// genesis block for the regression test network.
var regTestGenesisMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{
	0xc1, 0x0b, 0x77, 0x35, 0xe4, 0x81, 0x42, 0x9f,
	0xc3, 0xa6, 0xa7, 0x17, 0xad, 0x81, 0xed, 0x57,
	0x37, 0x55, 0xf3, 0xab, 0x12, 0x56, 0x46, 0x97,
	0x3c, 0xca, 0x2e, 0xab, 0x9e, 0x56, 0x91, 0xe3,
})

// regTestGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the regression test network.
var regTestGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: regTestGenesisMerkleRoot,
		Timestamp:  time.Unix(0x4d49e5da, 0), // 2011-02-02 23:16:42 +0000 UTC
	},
	Transactions: []*wire.MsgTx{&regTestGenesisCoinbaseTx},
}
