// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"runtime"

	"github.com/fedchain/fedchaind/txscript"
	"github.com/fedchain/fedchaind/util"
	"github.com/fedchain/fedchaind/wire"
)

// txscriptStandardFlags are the script flags blocks are validated with.
const txscriptStandardFlags = txscript.StandardVerifyFlags

// UtxoView provides access to the unspent transaction outputs a block's
// inputs reference. Implementations decide where the outputs come from: a
// database, an in-memory chain state, or a hand-built map in tests.
// LookupEntry must return nil when the referenced output does not exist or
// has already been spent by an earlier block.
type UtxoView interface {
	LookupEntry(outpoint wire.OutPoint) *wire.TxOut
}

// UtxoViewpoint is a map-backed UtxoView. It additionally resolves spends of
// outputs created earlier in the same block, which the caller-provided view
// cannot know about.
type UtxoViewpoint struct {
	entries map[wire.OutPoint]*wire.TxOut
}

// LookupEntry returns the output referenced by the passed outpoint, or nil
// when it is unknown.
func (view *UtxoViewpoint) LookupEntry(outpoint wire.OutPoint) *wire.TxOut {
	return view.entries[outpoint]
}

// AddTxOuts adds all outputs of the passed transaction to the view.
func (view *UtxoViewpoint) AddTxOuts(tx *util.Tx) {
	prevOut := wire.OutPoint{Hash: *tx.Hash()}
	for txOutIdx, txOut := range tx.MsgTx().TxOut {
		prevOut.Index = uint32(txOutIdx)
		view.entries[prevOut] = txOut
	}
}

// NewUtxoViewpoint returns a new empty unspent transaction output view.
func NewUtxoViewpoint() *UtxoViewpoint {
	return &UtxoViewpoint{
		entries: make(map[wire.OutPoint]*wire.TxOut),
	}
}

// txValidateItem holds a transaction along with which input to validate.
type txValidateItem struct {
	txInIndex int
	txIn      *wire.TxIn
	tx        *util.Tx
}

// txValidator provides a type which asynchronously validates transaction
// inputs. It provides several channels for communication and a processing
// function that is intended to be in run multiple goroutines.
type txValidator struct {
	validateChan chan *txValidateItem
	quitChan     chan struct{}
	resultChan   chan error
	view         UtxoView
	flags        txscript.ScriptFlags
}

// sendResult sends the result of a script pair validation on the internal
// result channel while respecting the quit channel. This allows orderly
// shutdown when the validation process is aborted early due to a validation
// error in one of the other goroutines.
func (v *txValidator) sendResult(result error) {
	select {
	case v.resultChan <- result:
	case <-v.quitChan:
	}
}

// validateHandler consumes items to validate from the internal validate
// channel and returns the result of the validation on the internal result
// channel. It must be run as a goroutine.
func (v *txValidator) validateHandler() {
out:
	for {
		select {
		case txVI := <-v.validateChan:
			// Ensure the referenced input output is available.
			txIn := txVI.txIn
			txOut := v.view.LookupEntry(txIn.PreviousOutPoint)
			if txOut == nil {
				str := fmt.Sprintf("unable to find unspent "+
					"output %v referenced from "+
					"transaction %s:%d",
					txIn.PreviousOutPoint, txVI.tx.Hash(),
					txVI.txInIndex)
				err := ruleError(ErrMissingTxOut, str)
				v.sendResult(err)
				break out
			}

			// Create a new script engine for the script pair.
			sigScript := txIn.SignatureScript
			pkScript := txOut.PkScript
			vm, err := txscript.NewEngine(pkScript, txVI.tx.MsgTx(),
				txVI.txInIndex, v.flags)
			if err != nil {
				str := fmt.Sprintf("failed to parse input "+
					"%s:%d which references output %v - "+
					"%v (input script bytes %x, prev "+
					"output script bytes %x)",
					txVI.tx.Hash(), txVI.txInIndex,
					txIn.PreviousOutPoint, err, sigScript,
					pkScript)
				err := ruleError(ErrScriptValidation, str)
				v.sendResult(err)
				break out
			}

			// Execute the script pair.
			if err := vm.Execute(); err != nil {
				str := fmt.Sprintf("failed to validate input "+
					"%s:%d which references output %v - "+
					"%v (input script bytes %x, prev "+
					"output script bytes %x)",
					txVI.tx.Hash(), txVI.txInIndex,
					txIn.PreviousOutPoint, err, sigScript,
					pkScript)
				err := ruleError(ErrScriptValidation, str)
				v.sendResult(err)
				break out
			}

			// Validation succeeded.
			v.sendResult(nil)

		case <-v.quitChan:
			break out
		}
	}
}

// Validate validates the scripts for all of the passed transaction inputs
// using multiple goroutines.
func (v *txValidator) Validate(items []*txValidateItem) error {
	if len(items) == 0 {
		return nil
	}

	// Limit the number of goroutines to do script validation based on the
	// number of processor cores. This helps ensure the system stays
	// reasonably responsive under heavy load.
	maxGoRoutines := runtime.NumCPU() * 3
	if maxGoRoutines <= 0 {
		maxGoRoutines = 1
	}
	if maxGoRoutines > len(items) {
		maxGoRoutines = len(items)
	}

	// Start up validation handlers that are used to asynchronously
	// validate each transaction input.
	for i := 0; i < maxGoRoutines; i++ {
		go v.validateHandler()
	}

	// Validate each of the inputs. The quit channel is closed when any
	// errors occur so all processing goroutines exit regardless of which
	// input had the validation error.
	numInputs := len(items)
	currentItem := 0
	processedItems := 0
	for processedItems < numInputs {
		// Only send items while there are still items that need to
		// be processed. The select statement will never select a nil
		// channel.
		var validateChan chan *txValidateItem
		var item *txValidateItem
		if currentItem < numInputs {
			validateChan = v.validateChan
			item = items[currentItem]
		}

		select {
		case validateChan <- item:
			currentItem++

		case err := <-v.resultChan:
			processedItems++
			if err != nil {
				close(v.quitChan)
				return err
			}
		}
	}

	close(v.quitChan)
	return nil
}

// newTxValidator returns a new instance of txValidator to be used for
// validating transaction scripts asynchronously.
func newTxValidator(view UtxoView, flags txscript.ScriptFlags) *txValidator {
	return &txValidator{
		validateChan: make(chan *txValidateItem),
		quitChan:     make(chan struct{}),
		resultChan:   make(chan error),
		view:         view,
		flags:        flags,
	}
}

// ValidateTransactionScripts validates the scripts for the passed transaction
// using multiple goroutines.
func ValidateTransactionScripts(tx *util.Tx, view UtxoView,
	flags txscript.ScriptFlags) error {

	// Collect all of the transaction inputs and required information for
	// validation.
	txIns := tx.MsgTx().TxIn
	txValItems := make([]*txValidateItem, 0, len(txIns))
	for txInIdx, txIn := range txIns {
		txVI := &txValidateItem{
			txInIndex: txInIdx,
			txIn:      txIn,
			tx:        tx,
		}
		txValItems = append(txValItems, txVI)
	}

	// Validate all of the inputs.
	validator := newTxValidator(view, flags)
	return validator.Validate(txValItems)
}

// checkBlockScripts executes and validates the scripts for all transactions
// in the passed block against the outputs they spend. Outputs created by
// earlier transactions within the same block are made visible to later
// transactions through an overlay on the caller's view.
func checkBlockScripts(block *util.Block, view UtxoView,
	flags txscript.ScriptFlags) error {

	// Build an overlay view that also resolves outputs created earlier in
	// this block. Collect all of the transaction inputs and required
	// information for validation for all transactions in the block into a
	// single slice.
	numInputs := 0
	for _, tx := range block.Transactions() {
		numInputs += len(tx.MsgTx().TxIn)
	}
	overlay := newBlockUtxoOverlay(view)
	txValItems := make([]*txValidateItem, 0, numInputs)
	for _, tx := range block.Transactions() {
		if !IsCoinBase(tx) {
			for txInIdx, txIn := range tx.MsgTx().TxIn {
				txVI := &txValidateItem{
					txInIndex: txInIdx,
					txIn:      txIn,
					tx:        tx,
				}
				txValItems = append(txValItems, txVI)
			}
		}
		overlay.created.AddTxOuts(tx)
	}

	// Validate all of the inputs.
	validator := newTxValidator(overlay, flags)
	return validator.Validate(txValItems)
}

// blockUtxoOverlay is a UtxoView that resolves outputs created within the
// block being validated before falling back to the caller's view.
type blockUtxoOverlay struct {
	created *UtxoViewpoint
	back    UtxoView
}

// LookupEntry returns the output referenced by the passed outpoint, or nil
// when it is unknown to both the block overlay and the backing view.
func (view *blockUtxoOverlay) LookupEntry(outpoint wire.OutPoint) *wire.TxOut {
	if txOut := view.created.LookupEntry(outpoint); txOut != nil {
		return txOut
	}
	if view.back == nil {
		return nil
	}
	return view.back.LookupEntry(outpoint)
}

func newBlockUtxoOverlay(back UtxoView) *blockUtxoOverlay {
	return &blockUtxoOverlay{
		created: NewUtxoViewpoint(),
		back:    back,
	}
}
