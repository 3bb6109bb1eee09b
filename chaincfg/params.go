// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main fedchain network, which is intended for the
// transfer of monetary value, there is a regression test network whose
// federation is generated from well-known test keys so that new blocks can
// be signed in tests and local development.
package chaincfg

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/fedchain/fedchaind/util/chainhash"
	"github.com/fedchain/fedchaind/wire"
)

// Constants that define monetary limits and input finality for all networks.
const (
	// SatoshiPerCoin is the number of base monetary units in one coin.
	SatoshiPerCoin = 1e8

	// MaxSatoshi is the maximum number of base monetary units that will
	// ever exist on any network.
	MaxSatoshi = 21e6 * SatoshiPerCoin

	// MaxSequence is the transaction input sequence number that marks the
	// input as final.
	MaxSequence uint32 = 0xffffffff
)

var (
	// ErrUnknownNet describes an error where a lookup by network magic
	// failed because the magic is not registered.
	ErrUnknownNet = errors.New("unknown fedchain network")
)

// Params defines a fedchain network by its parameters. These parameters may
// be used by fedchain applications to differentiate networks as well as
// addresses and keys for one network from those intended for use on another
// network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net uint32

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// FederationPubKeys is the ordered set of federation member public
	// keys for the network's era zero. Blocks are finalized by an
	// aggregate signature from a threshold subset of these keys.
	FederationPubKeys []*secp256k1.PublicKey

	// SignerThreshold is the minimum number of federation members that
	// must co-sign a block for its proof to be valid.
	SignerThreshold int

	// MaxMoney is the maximum number of base monetary units on this
	// network. Any transaction output value above it is invalid.
	MaxMoney int64
}

// MainNetParams defines the network parameters for the main fedchain network.
var MainNetParams = Params{
	Name: "mainnet",
	Net:  0xd9b4bef9,

	// Chain parameters.
	GenesisBlock: &genesisBlock,
	GenesisHash:  &genesisHash,

	// Federation parameters.
	FederationPubKeys: []*secp256k1.PublicKey{
		mustParsePubKey("0243076aebc911374de473fcc4ffd2dcfb359299c167e73cd3b4471c816ba6e85c"),
		mustParsePubKey("03112081da5126e32cf1a019e74896e51c0ef638035f809df361c2f8fff95470b4"),
		mustParsePubKey("03c338270679b60c79f741afce33e7ee45bf877327a9ba8496c3d96f3abaf134e7"),
	},
	SignerThreshold: 2,

	MaxMoney: MaxSatoshi,
}

// RegressionNetParams defines the network parameters for the regression test
// network. Its federation keys are derived from the well-known private keys
// 1, 2 and 3 so that tests and local development nodes can produce valid
// block proofs.
var RegressionNetParams = Params{
	Name: "regtest",
	Net:  0xdab5bffa,

	// Chain parameters.
	GenesisBlock: &regTestGenesisBlock,
	GenesisHash:  &regTestGenesisHash,

	// Federation parameters.
	FederationPubKeys: []*secp256k1.PublicKey{
		mustParsePubKey("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		mustParsePubKey("02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"),
		mustParsePubKey("02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"),
	},
	SignerThreshold: 2,

	MaxMoney: MaxSatoshi,
}

// registeredNets tracks the known networks by their magic so callers can
// look parameters up from serialized data.
var registeredNets = map[uint32]*Params{
	MainNetParams.Net:       &MainNetParams,
	RegressionNetParams.Net: &RegressionNetParams,
}

// ParamsForNet returns the network parameters registered for the given
// network magic, or ErrUnknownNet.
func ParamsForNet(net uint32) (*Params, error) {
	params, ok := registeredNets[net]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "magic %08x", net)
	}
	return params, nil
}

// mustParsePubKey converts the passed hex string into a parsed secp256k1
// public key. It only differs from the one available in the secp256k1
// package in that it panics on an error since it will only (and must only)
// be called with hard-coded, and therefore known good, keys.
func mustParsePubKey(pubKeyHex string) *secp256k1.PublicKey {
	serialized, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		panic(err)
	}
	pubKey, err := secp256k1.ParsePubKey(serialized)
	if err != nil {
		panic(err)
	}
	return pubKey
}
