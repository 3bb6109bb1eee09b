// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// ErrorCode identifies a kind of block or transaction rule violation.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrNoTransactions indicates the block does not have at least one
	// transaction. A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions ErrorCode = iota

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases

	// ErrBadMerkleRoot indicates the calculated merkle root does not
	// match the expected value in the block header.
	ErrBadMerkleRoot

	// ErrBadBlockProof indicates the federation proof in the block header
	// does not verify against the federation over the header's signing
	// hash.
	ErrBadBlockProof

	// ErrNoTxInputs indicates a transaction does not have any inputs. A
	// valid transaction must have at least one input.
	ErrNoTxInputs

	// ErrNoTxOutputs indicates a transaction does not have any outputs.
	// A valid transaction must have at least one output.
	ErrNoTxOutputs

	// ErrTxTooBig indicates a transaction exceeds the maximum allowed
	// size when serialized.
	ErrTxTooBig

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue

	// ErrDuplicateTxInputs indicates a transaction references the same
	// input more than once.
	ErrDuplicateTxInputs

	// ErrBadTxInput indicates a transaction input is invalid in some way
	// such as referencing a previous transaction outpoint which is
	// invalid.
	ErrBadTxInput

	// ErrMissingTxOut indicates a transaction output referenced by an
	// input either does not exist or has already been spent.
	ErrMissingTxOut

	// ErrDoubleSpend indicates two transactions in the same block spend
	// the same transaction output.
	ErrDoubleSpend

	// ErrScriptValidation indicates the combined signature script and
	// public key script for an input failed to execute successfully.
	ErrScriptValidation

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrNoTransactions:     "ErrNoTransactions",
	ErrFirstTxNotCoinbase: "ErrFirstTxNotCoinbase",
	ErrMultipleCoinbases:  "ErrMultipleCoinbases",
	ErrBadMerkleRoot:      "ErrBadMerkleRoot",
	ErrBadBlockProof:      "ErrBadBlockProof",
	ErrNoTxInputs:         "ErrNoTxInputs",
	ErrNoTxOutputs:        "ErrNoTxOutputs",
	ErrTxTooBig:           "ErrTxTooBig",
	ErrBadTxOutValue:      "ErrBadTxOutValue",
	ErrDuplicateTxInputs:  "ErrDuplicateTxInputs",
	ErrBadTxInput:         "ErrBadTxInput",
	ErrMissingTxOut:       "ErrMissingTxOut",
	ErrDoubleSpend:        "ErrDoubleSpend",
	ErrScriptValidation:   "ErrScriptValidation",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many
// validation rules. The caller can use type assertions to determine if a
// failure was specifically due to a rule violation and access the ErrorCode
// field to ascertain the specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a rule error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	e, ok := err.(RuleError)
	return ok && e.ErrorCode == c
}
