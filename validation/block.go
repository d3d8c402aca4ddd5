// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/storage"
)

// Block - a block with the outputs spent by each of its transactions
type Block struct {
	Ref          BlockRef
	Transactions []*wire.MsgTx
	Previous     [][]PreviousOutput // one entry per input of each transaction
}

func (b *Block) check() error {
	if len(b.Previous) != len(b.Transactions) {
		return fault.ErrMissingPreviousOutputs
	}
	for i, tx := range b.Transactions {
		if len(b.Previous[i]) != len(tx.TxIn) {
			return fault.ErrMissingPreviousOutputs
		}
	}
	return nil
}

// ConnectBlock - validate and apply every transaction of a block
//
// all registry writes go into trx; on error the caller must abort
// trx so no part of the block is applied
func (e *Engine) ConnectBlock(trx storage.Transaction, block *Block) error {
	if err := block.check(); nil != err {
		return err
	}

	for i, tx := range block.Transactions {
		if err := e.CheckTransaction(tx); nil != err {
			return errors.Wrapf(err, "block: %s  transaction: %d", block.Ref.Hash, i)
		}
		if err := e.ConnectInputs(trx, tx, block.Previous[i], block.Ref, uint32(i), Connect); nil != err {
			return errors.Wrapf(err, "block: %s  transaction: %d", block.Ref.Hash, i)
		}
	}

	e.log.Debugf("connected block: %d  %s  transactions: %d", block.Ref.Height, block.Ref.Hash, len(block.Transactions))
	return nil
}

// DisconnectBlock - undo ConnectBlock, last transaction first
func (e *Engine) DisconnectBlock(trx storage.Transaction, block *Block) error {
	for i := len(block.Transactions) - 1; i >= 0; i -= 1 {
		if err := e.DisconnectInputs(trx, block.Transactions[i]); nil != err {
			return errors.Wrapf(err, "block: %s  transaction: %d", block.Ref.Hash, i)
		}
	}

	e.log.Debugf("disconnected block: %d  %s", block.Ref.Height, block.Ref.Hash)
	return nil
}

// AcceptToPool - full check of a transaction for the memory pool
//
// tip is the current best block; the registry is not modified
func (e *Engine) AcceptToPool(tx *wire.MsgTx, previous []PreviousOutput, tip BlockRef) error {
	if err := e.CheckTransaction(tx); nil != err {
		return err
	}
	return e.ConnectInputs(nil, tx, previous, tip, 0, Pool)
}

// CheckForMining - full check of a transaction for a block being built
//
// candidate is the block being built: its Previous is the current tip
func (e *Engine) CheckForMining(tx *wire.MsgTx, previous []PreviousOutput, candidate BlockRef) error {
	if err := e.CheckTransaction(tx); nil != err {
		return err
	}
	return e.ConnectInputs(nil, tx, previous, candidate, 0, Miner)
}
