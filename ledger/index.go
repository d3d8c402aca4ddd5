// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/storage"
	"github.com/bitmark-inc/nameregd/validation"
)

// number of transaction records read per cursor fetch
const fetchSize = 100

// Index - read access to the followed chain
//
// all data comes from storage; callers hold the chain lock
type Index struct {
	log *logger.L
}

// NewIndex - create an index over the ledger pools
func NewIndex(log *logger.L) *Index {
	return &Index{
		log: log,
	}
}

// Current - the last connected block
//
// false if no block has been connected
func (x *Index) Current() (validation.BlockRef, bool, error) {
	e, found, err := storage.Pool.BlockHash.LastElement()
	if nil != err || !found {
		return validation.BlockRef{}, false, err
	}
	if heightSize != len(e.Key) {
		return validation.BlockRef{}, false, errors.Wrapf(fault.ErrStorageCorrupt, "block key: %x", e.Key)
	}
	ref, err := unpackBlock(binary.BigEndian.Uint64(e.Key), e.Value)
	if nil != err {
		return validation.BlockRef{}, false, err
	}
	return ref, true, nil
}

// Tip - the last connected block, zero if none
func (x *Index) Tip() validation.BlockRef {
	ref, _, err := x.Current()
	if nil != err {
		x.log.Criticalf("tip: error: %s", err)
	}
	return ref
}

// Block - the active chain block at a height
func (x *Index) Block(height uint64) (validation.BlockRef, bool, error) {
	record, err := storage.Pool.BlockHash.Get(heightKey(height))
	if nil != err || nil == record {
		return validation.BlockRef{}, false, err
	}
	ref, err := unpackBlock(height, record)
	if nil != err {
		return validation.BlockRef{}, false, err
	}
	return ref, true, nil
}

// Height - height of an active chain block
func (x *Index) Height(hash chainhash.Hash) (uint64, bool, error) {
	return storage.Pool.BlockHeight.GetN(hash[:])
}

// Ancestor - hash of the block at height below tip
//
// only the active chain is indexed, so a tip that is not on it has
// no known ancestors
func (x *Index) Ancestor(tip chainhash.Hash, height uint64) (chainhash.Hash, bool, error) {
	tipHeight, found, err := x.Height(tip)
	if nil != err || !found || height > tipHeight {
		return chainhash.Hash{}, false, err
	}
	ref, found, err := x.Block(height)
	if nil != err || !found {
		return chainhash.Hash{}, false, err
	}
	return ref.Hash, true, nil
}

// Transaction - the name transaction at a confirmed position
func (x *Index) Transaction(p registry.Position) (*wire.MsgTx, error) {
	record, err := storage.Pool.Transactions.Get(transactionKey(p.Block, p.Index))
	if nil != err {
		return nil, err
	}
	if nil == record {
		return nil, fault.ErrPositionNotFound
	}
	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(record)); nil != err {
		return nil, errors.Wrapf(fault.ErrStorageCorrupt, "position: %s  error: %s", p, err)
	}
	return tx, nil
}

// PreviousOutputs - the confirmed name outputs spent by a transaction
//
// inputs spending anything else get an empty entry
func (x *Index) PreviousOutputs(tx *wire.MsgTx) ([]validation.PreviousOutput, error) {
	previous := make([]validation.PreviousOutput, len(tx.TxIn))
	for i, in := range tx.TxIn {
		record, err := storage.Pool.NameOutputs.Get(outpointKey(in.PreviousOutPoint))
		if nil != err {
			return nil, err
		}
		if nil == record {
			continue
		}
		o, err := unpackNameOutput(record)
		if nil != err {
			return nil, err
		}
		previous[i] = o.previous()
	}
	return previous, nil
}

type blockTransaction struct {
	key []byte
	tx  *wire.MsgTx
}

// name transactions stored for a block, in block order
func (x *Index) blockTransactions(block chainhash.Hash) ([]blockTransaction, error) {
	result := make([]blockTransaction, 0, 8)

	cursor := storage.Pool.Transactions.NewFetchCursor().Seek(block[:])
	for {
		elements, err := cursor.Fetch(fetchSize)
		if nil != err {
			return nil, err
		}
		for _, e := range elements {
			if !bytes.HasPrefix(e.Key, block[:]) {
				return result, nil
			}
			tx := &wire.MsgTx{}
			if err := tx.Deserialize(bytes.NewReader(e.Value)); nil != err {
				return nil, errors.Wrapf(fault.ErrStorageCorrupt, "transaction: %x  error: %s", e.Key, err)
			}
			result = append(result, blockTransaction{key: e.Key, tx: tx})
		}
		if len(elements) < fetchSize {
			return result, nil
		}
	}
}
