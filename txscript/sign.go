// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/fedchain/fedchaind/schnorr"
	"github.com/fedchain/fedchaind/wire"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RawTxInSignature returns the serialized signature for the input idx of the
// given transaction, with hashType appended to it.
func RawTxInSignature(tx *wire.MsgTx, idx int, subScript []byte,
	hashType SigHashType, key *secp256k1.PrivateKey) ([]byte, error) {

	hash, err := CalcSignatureHash(subScript, hashType, tx, idx)
	if err != nil {
		return nil, err
	}
	signature, err := schnorr.Sign(key, hash)
	if err != nil {
		return nil, fmt.Errorf("cannot sign tx input: %s", err)
	}

	return append(signature.Serialize(), byte(hashType)), nil
}

// SignatureScript creates an input signature script for tx to spend coins
// sent from a previous output to the owner of privKey. tx must include all
// transaction inputs and outputs, however txin scripts are allowed to be
// filled or empty. The returned script is calculated to be used as the idx'th
// txin sigscript for tx. subScript is the PkScript of the previous output
// being used as the idx'th input. privKey is serialized in either a
// compressed or uncompressed format based on compress. This format must match
// the same format used to generate the payment address, or the script
// validation will fail.
func SignatureScript(tx *wire.MsgTx, idx int, subScript []byte,
	hashType SigHashType, privKey *secp256k1.PrivateKey,
	compress bool) ([]byte, error) {

	sig, err := RawTxInSignature(tx, idx, subScript, hashType, privKey)
	if err != nil {
		return nil, err
	}

	pk := privKey.PubKey()
	var pkData []byte
	if compress {
		pkData = pk.SerializeCompressed()
	} else {
		pkData = pk.SerializeUncompressed()
	}

	return NewScriptBuilder().AddData(sig).AddData(pkData).Script()
}

// signMultiSig signs as many of the outputs in the provided multisig script
// as possible. It returns the generated script and a boolean if the script
// fulfills the contract (i.e. nrequired signatures are provided). Since it
// is arguably legal to not be able to sign any of the outputs, no error is
// returned.
func signMultiSig(tx *wire.MsgTx, idx int, subScript []byte,
	hashType SigHashType, pubKeys [][]byte, nRequired int,
	kdb KeyDB) ([]byte, bool) {

	// We start with a single OP_FALSE to work around the (now standard)
	// but in the reference implementation that causes a spurious pop at
	// the end of OP_CHECKMULTISIG.
	builder := NewScriptBuilder().AddOp(OP_FALSE)
	signed := 0
	for _, pubKey := range pubKeys {
		key, _, err := kdb.GetKey(pubKey)
		if err != nil {
			continue
		}
		sig, err := RawTxInSignature(tx, idx, subScript, hashType, key)
		if err != nil {
			continue
		}

		builder.AddData(sig)
		signed++
		if signed == nRequired {
			break
		}

	}

	script, _ := builder.Script()
	return script, signed == nRequired
}

// sign is the internal function that signs the transaction input idx of tx
// based on the script class of the previous output script.
func sign(tx *wire.MsgTx, idx int, subScript []byte, hashType SigHashType,
	kdb KeyDB, sdb ScriptDB) ([]byte, ScriptClass, error) {

	class := GetScriptClass(subScript)
	switch class {
	case PubKeyTy:
		// Pubkey scripts carry the serialized key directly.
		pubKey, err := PushedData(subScript)
		if err != nil {
			return nil, class, err
		}
		key, _, err := kdb.GetKey(pubKey[0])
		if err != nil {
			return nil, class, err
		}
		sig, err := RawTxInSignature(tx, idx, subScript, hashType, key)
		if err != nil {
			return nil, class, err
		}

		script, err := NewScriptBuilder().AddData(sig).Script()
		if err != nil {
			return nil, class, err
		}
		return script, class, nil

	case PubKeyHashTy:
		// Pubkey hash scripts identify the key by its hash160.
		data, err := PushedData(subScript)
		if err != nil {
			return nil, class, err
		}
		key, compressed, err := kdb.GetKey(data[0])
		if err != nil {
			return nil, class, err
		}
		script, err := SignatureScript(tx, idx, subScript, hashType,
			key, compressed)
		if err != nil {
			return nil, class, err
		}
		return script, class, nil

	case ScriptHashTy:
		data, err := PushedData(subScript)
		if err != nil {
			return nil, class, err
		}
		script, err := sdb.GetScript(data[0])
		if err != nil {
			return nil, class, err
		}

		return script, class, nil

	case MultiSigTy:
		pubKeys, err := PushedData(subScript)
		if err != nil {
			return nil, class, err
		}
		_, nRequired, err := CalcMultiSigStats(subScript)
		if err != nil {
			return nil, class, err
		}
		script, _ := signMultiSig(tx, idx, subScript, hashType,
			pubKeys, nRequired, kdb)
		return script, class, nil

	case NullDataTy:
		return nil, class, scriptError(ErrUnsupportedAddress,
			"can't sign NULLDATA transactions")

	default:
		return nil, class, scriptError(ErrUnsupportedAddress,
			"can't sign unknown transactions")
	}
}

// mergeScripts merges sigScript and prevScript assuming they are both
// partial solutions for pkScript spending output idx of tx. class, nRequired
// inform merging. The return value is the best effort merging of the two
// scripts. Calling this function with scripts that do not represent the same
// output (to err is human) will have undefined behavior.
func mergeScripts(tx *wire.MsgTx, idx int, pkScript []byte,
	class ScriptClass, sigScript, prevScript []byte) []byte {

	switch class {
	case ScriptHashTy:
		// Remove the last push in the script and then recurse. This is
		// the redeem script.
		sigPops, err := parseScript(sigScript)
		if err != nil || len(sigPops) == 0 {
			return prevScript
		}
		prevPops, err := parseScript(prevScript)
		if err != nil || len(prevPops) == 0 {
			return sigScript
		}

		// Assume that the script passed the standardness check and
		// therefore the redeem script is the final data push.
		script := sigPops[len(sigPops)-1].data

		// We already know this information somewhere up the stack,
		// therefore the error is ignored.
		scriptClass := GetScriptClass(script)

		// Regenerate scripts.
		sigScript, _ = unparseScript(sigPops[:len(sigPops)-1])
		prevScript, _ = unparseScript(prevPops[:len(prevPops)-1])

		// Merge, and add back in the redeem script.
		mergedScript := mergeScripts(tx, idx, script, scriptClass,
			sigScript, prevScript)

		// Reappend the script and return the result.
		builder := NewScriptBuilder()
		builder.AddOps(mergedScript)
		builder.AddData(script)
		finalScript, _ := builder.Script()
		return finalScript

	case MultiSigTy:
		return mergeMultiSig(tx, idx, pkScript, sigScript, prevScript)

	// It doesn't actually make sense to merge anything other than multisig
	// and p2sh (because it could contain multisig). Everything else has
	// either zero signatures, can't be spent, or has a single signature
	// which is either present or not. The other two cases are handled
	// above. In the conflicting case here we just assume the longest is
	// correct (this matches behavior of the reference implementation).
	default:
		if len(sigScript) > len(prevScript) {
			return sigScript
		}
		return prevScript
	}
}

// mergeMultiSig combines the two signature scripts sigScript and prevScript
// that both provide signatures for pkScript in output idx of tx. It merges
// the signatures in the order of the public keys in pkScript, dropping any
// signature that does not verify.
func mergeMultiSig(tx *wire.MsgTx, idx int, pkScript, sigScript,
	prevScript []byte) []byte {

	pkPops, err := parseScript(pkScript)
	if err != nil || !isMultiSig(pkPops) {
		if len(sigScript) > len(prevScript) {
			return sigScript
		}
		return prevScript
	}

	pubKeys := make([][]byte, 0, len(pkPops)-3)
	for _, pop := range pkPops[1 : len(pkPops)-2] {
		pubKeys = append(pubKeys, pop.data)
	}
	nRequired := asSmallInt(pkPops[0].opcode)

	// Gather all candidate signatures from both scripts.
	var possibleSigs [][]byte
	for _, script := range [][]byte{sigScript, prevScript} {
		pops, err := parseScript(script)
		if err != nil {
			continue
		}
		for _, pop := range pops {
			if len(pop.data) != 0 {
				possibleSigs = append(possibleSigs, pop.data)
			}
		}
	}

	// Map each signature to the public key it validates against by
	// checking it against every key. Signature hash computation depends on
	// the hash type carried by each signature, so the digest is computed
	// per signature.
	sigsByKey := make(map[string][]byte)
	for _, sig := range possibleSigs {
		if len(sig) < 2 {
			continue
		}
		hashType := SigHashType(sig[len(sig)-1])
		parsedSig, err := schnorr.ParseSignature(sig[:len(sig)-1])
		if err != nil {
			continue
		}
		hash, err := CalcSignatureHash(pkScript, hashType, tx, idx)
		if err != nil {
			continue
		}
		for _, pubKey := range pubKeys {
			parsedKey, err := secp256k1.ParsePubKey(pubKey)
			if err != nil {
				continue
			}
			if parsedSig.Verify(hash, parsedKey) {
				sigsByKey[string(pubKey)] = sig
				break
			}
		}
	}

	// Extract signatures in the order of the public keys in the script.
	builder := NewScriptBuilder().AddOp(OP_FALSE)
	added := 0
	for _, pubKey := range pubKeys {
		if added == nRequired {
			break
		}
		if sig, ok := sigsByKey[string(pubKey)]; ok {
			builder.AddData(sig)
			added++
		}
	}

	script, _ := builder.Script()
	return script
}

// KeyDB is an interface type provided to SignTxOutput, it encapsulates any
// user state required to get the private keys for signing. The id passed to
// GetKey is either the serialized public key or the 20-byte pubkey hash,
// depending on the class of script being signed.
type KeyDB interface {
	GetKey(id []byte) (*secp256k1.PrivateKey, bool, error)
}

// KeyClosure implements KeyDB with a closure.
type KeyClosure func(id []byte) (*secp256k1.PrivateKey, bool, error)

// GetKey implements KeyDB by returning the result of calling the closure.
func (kc KeyClosure) GetKey(id []byte) (*secp256k1.PrivateKey, bool, error) {
	return kc(id)
}

// ScriptDB is an interface type provided to SignTxOutput, it encapsulates
// any user state required to get the scripts for pay-to-script-hash
// outputs. The id passed to GetScript is the 20-byte script hash.
type ScriptDB interface {
	GetScript(id []byte) ([]byte, error)
}

// ScriptClosure implements ScriptDB with a closure.
type ScriptClosure func(id []byte) ([]byte, error)

// GetScript implements ScriptDB by returning the result of calling the
// closure.
func (sc ScriptClosure) GetScript(id []byte) ([]byte, error) {
	return sc(id)
}

// SignTxOutput signs output idx of the given tx to resolve the script given
// in pkScript with a signature type of hashType. Any keys required will be
// looked up by calling getKey() with the id of the requested key. Any pay-to-
// script-hash signatures will be similarly looked up by calling getScript. If
// previousScript is provided then the results in previousScript will be
// merged in a type-dependent manner with the newly generated signature
// script.
func SignTxOutput(tx *wire.MsgTx, idx int, pkScript []byte,
	hashType SigHashType, kdb KeyDB, sdb ScriptDB,
	previousScript []byte) ([]byte, error) {

	sigScript, class, err := sign(tx, idx, pkScript, hashType, kdb, sdb)
	if err != nil {
		return nil, err
	}

	if class == ScriptHashTy {
		// Sign the redeem script itself and then append it as the
		// final push so the engine can extract and execute it.
		realSigScript, _, err := sign(tx, idx, sigScript, hashType,
			kdb, sdb)
		if err != nil {
			return nil, err
		}

		builder := NewScriptBuilder()
		builder.AddOps(realSigScript)
		builder.AddData(sigScript)

		sigScript, _ = builder.Script()
	}

	// Merge scripts. with any previous data, if any.
	mergedScript := mergeScripts(tx, idx, pkScript, class, sigScript,
		previousScript)
	return mergedScript, nil
}
