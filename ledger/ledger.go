// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - follow the active chain of a ledger node
//
// blocks are fetched over JSON-RPC and connected one at a time, each
// in its own storage transaction under the chain write lock, so the
// registry always matches a prefix of the active chain
package ledger

import (
	"bytes"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/background"
	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/mode"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/storage"
	"github.com/bitmark-inc/nameregd/validation"
)

// Observer - told of every transaction in each newly connected block
//
// on disconnect the block's name transactions are unobserved in
// reverse order, then each name output they had spent is restored
type Observer interface {
	Observe(*wire.MsgTx) bool
	Unobserve(*wire.MsgTx) bool
	Restore(chainhash.Hash, []byte) bool
	Save() error
}

// Ledger - the chain follower
type Ledger struct {
	log      *logger.L
	node     Node
	engine   *validation.Engine
	index    *Index
	chain    *sync.RWMutex
	observer Observer
	interval time.Duration
	batch    int
	stopped  bool
}

// New - create a follower
//
// chain is the lock shared with all registry readers; observer may be nil
func New(log *logger.L, conf Configuration, node Node, engine *validation.Engine, index *Index, chain *sync.RWMutex, observer Observer) *Ledger {
	return &Ledger{
		log:      log,
		node:     node,
		engine:   engine,
		index:    index,
		chain:    chain,
		observer: observer,
		interval: conf.interval(),
		batch:    conf.batch(),
	}
}

// Run - background process loop
func (l *Ledger) Run(args interface{}, shutdown <-chan struct{}) {
	l.log.Info("starting…")
	background.Poll(shutdown, l.interval, l.poll)
	l.log.Info("stopped")
}

func (l *Ledger) poll() bool {
	if l.stopped {
		return false
	}

	more, err := l.Synchronise()
	if nil == err {
		return more
	}

	if fault.IsErrStorage(err) || fault.IsErrInvalid(err) || fault.IsErrSequence(err) || fault.IsErrTiming(err) || fault.IsErrExists(err) {
		l.log.Criticalf("stop following: %s", err)
		l.stopped = true
		mode.Set(mode.Stopped)
		return false
	}

	l.log.Warnf("synchronise: %s", err)
	return false
}

// Synchronise - bring the index up to date with the node
//
// unwinds blocks the node no longer has on its active chain then
// connects at most one batch of new blocks; returns true if more
// blocks remain
func (l *Ledger) Synchronise() (bool, error) {
	count, err := l.node.GetBlockCount()
	if nil != err {
		return false, errors.Wrap(fault.ErrNodeNotConnected, err.Error())
	}
	if count < 0 {
		return false, nil
	}
	last := uint64(count)

	tip, found, err := l.current()
	if nil != err {
		return false, err
	}

	// unwind to the fork point
	for found {
		if tip.Height <= last {
			hash, err := l.node.GetBlockHash(int64(tip.Height))
			if nil != err {
				return false, errors.Wrap(fault.ErrNodeNotConnected, err.Error())
			}
			if *hash == tip.Hash {
				break
			}
		}
		if 0 == tip.Height {
			l.log.Criticalf("genesis block: %s  not on the node's chain", tip.Hash)
			return false, fault.ErrInvalidChain
		}
		if err := l.disconnect(tip); nil != err {
			return false, err
		}
		tip, found, err = l.current()
		if nil != err {
			return false, err
		}
	}

	next := uint64(0)
	previous := chainhash.Hash{}
	if found {
		next = tip.Height + 1
		previous = tip.Hash
	}

	for n := 0; n < l.batch && next <= last; n += 1 {
		hash, err := l.node.GetBlockHash(int64(next))
		if nil != err {
			return false, errors.Wrap(fault.ErrNodeNotConnected, err.Error())
		}
		block, err := l.node.GetBlock(hash)
		if nil != err {
			return false, errors.Wrap(fault.ErrNodeNotConnected, err.Error())
		}

		// node switched branches since the count was read
		if block.Header.PrevBlock != previous {
			l.log.Infof("block: %d  %s  does not follow: %s", next, hash, previous)
			return true, nil
		}

		ref := validation.BlockRef{
			Hash:     block.BlockHash(),
			Previous: previous,
			Height:   next,
		}
		if err := l.connect(ref, block); nil != err {
			return false, err
		}
		previous = ref.Hash
		next += 1
	}

	if next <= last {
		mode.Set(mode.Resynchronise)
		return true, nil
	}
	mode.Set(mode.Normal)
	return false, nil
}

// Check - would a transaction be accepted to the memory pool now
//
// advisory only: the registry is not modified
func (l *Ledger) Check(tx *wire.MsgTx) error {
	l.chain.RLock()
	defer l.chain.RUnlock()

	previous, err := l.index.PreviousOutputs(tx)
	if nil != err {
		return err
	}
	tip, _, err := l.index.Current()
	if nil != err {
		return err
	}
	return l.engine.AcceptToPool(tx, previous, tip)
}

func (l *Ledger) current() (validation.BlockRef, bool, error) {
	l.chain.RLock()
	defer l.chain.RUnlock()
	return l.index.Current()
}

// connect one block on top of the current tip
func (l *Ledger) connect(ref validation.BlockRef, block *wire.MsgBlock) error {
	l.chain.Lock()
	defer l.chain.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = l.connectBlock(trx, ref, block)
	if nil != err {
		trx.Abort()
		l.log.Errorf("connect block: %d  %s  error: %s", ref.Height, ref.Hash, err)
		return err
	}
	if err := trx.Commit(); nil != err {
		l.log.Criticalf("connect block: %d  %s  commit error: %s", ref.Height, ref.Hash, err)
		return err
	}

	l.log.Infof("connected block: %d  %s", ref.Height, ref.Hash)
	l.observe(block)
	return nil
}

func (l *Ledger) connectBlock(trx storage.Transaction, ref validation.BlockRef, block *wire.MsgBlock) error {
	b := &validation.Block{
		Ref:          ref,
		Transactions: block.Transactions,
		Previous:     make([][]validation.PreviousOutput, len(block.Transactions)),
	}

	u := undo{}

	// name outputs created in this block, in creation order
	created := make(map[string]nameOutput)
	createdKeys := make([][]byte, 0)

	for i, tx := range block.Transactions {
		previous := make([]validation.PreviousOutput, len(tx.TxIn))
		for j, in := range tx.TxIn {
			key := outpointKey(in.PreviousOutPoint)
			if o, ok := created[string(key)]; ok {
				previous[j] = o.previous()
				delete(created, string(key))
				continue
			}

			record, err := trx.Get(storage.Pool.NameOutputs, key)
			if nil != err {
				return err
			}
			if nil == record {
				continue
			}
			o, err := unpackNameOutput(record)
			if nil != err {
				return err
			}
			previous[j] = o.previous()
			trx.Delete(storage.Pool.NameOutputs, key)
			u.spent = append(u.spent, spentOutput{key: key, record: record})
		}
		b.Previous[i] = previous

		txHash := tx.TxHash()
		for k, out := range tx.TxOut {
			if _, _, ok := nameop.Decode(out.PkScript); !ok {
				continue
			}
			key := outpointKey(wire.OutPoint{Hash: txHash, Index: uint32(k)})
			created[string(key)] = nameOutput{
				height: ref.Height,
				block:  ref.Hash,
				script: out.PkScript,
			}
			createdKeys = append(createdKeys, key)
		}

		if nameop.IsNameTransaction(tx) {
			buffer := &bytes.Buffer{}
			if err := tx.Serialize(buffer); nil != err {
				return err
			}
			trx.Put(storage.Pool.Transactions, transactionKey(ref.Hash, uint32(i)), buffer.Bytes())
		}
	}

	for _, key := range createdKeys {
		o, ok := created[string(key)]
		if !ok {
			continue
		}
		trx.Put(storage.Pool.NameOutputs, key, o.pack())
		u.created = append(u.created, key)
	}

	if err := l.engine.ConnectBlock(trx, b); nil != err {
		return err
	}

	trx.Put(storage.Pool.BlockHash, heightKey(ref.Height), packBlock(ref))
	trx.PutN(storage.Pool.BlockHeight, ref.Hash[:], ref.Height)
	trx.Put(storage.Pool.BlockUndo, ref.Hash[:], u.pack())
	return nil
}

// disconnect the current tip
func (l *Ledger) disconnect(tip validation.BlockRef) error {
	l.chain.Lock()
	defer l.chain.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	b, u, err := l.disconnectBlock(trx, tip)
	if nil != err {
		trx.Abort()
		l.log.Criticalf("disconnect block: %d  %s  error: %s", tip.Height, tip.Hash, err)
		return err
	}
	if err := trx.Commit(); nil != err {
		l.log.Criticalf("disconnect block: %d  %s  commit error: %s", tip.Height, tip.Hash, err)
		return err
	}

	l.log.Infof("disconnected block: %d  %s", tip.Height, tip.Hash)
	l.unobserve(b.Transactions, u.spent)
	return nil
}

// returns the name transactions removed and the undo record applied
func (l *Ledger) disconnectBlock(trx storage.Transaction, tip validation.BlockRef) (*validation.Block, undo, error) {
	record, err := trx.Get(storage.Pool.BlockUndo, tip.Hash[:])
	if nil != err {
		return nil, undo{}, err
	}
	if nil == record {
		return nil, undo{}, errors.Wrapf(fault.ErrStorageCorrupt, "block: %s  missing undo record", tip.Hash)
	}
	u, err := unpackUndo(record)
	if nil != err {
		return nil, undo{}, err
	}

	stored, err := l.index.blockTransactions(tip.Hash)
	if nil != err {
		return nil, undo{}, err
	}
	b := &validation.Block{
		Ref:          tip,
		Transactions: make([]*wire.MsgTx, len(stored)),
	}
	for i, s := range stored {
		b.Transactions[i] = s.tx
	}
	if err := l.engine.DisconnectBlock(trx, b); nil != err {
		return nil, undo{}, err
	}

	for _, key := range u.created {
		trx.Delete(storage.Pool.NameOutputs, key)
	}
	for _, s := range u.spent {
		trx.Put(storage.Pool.NameOutputs, s.key, s.record)
	}
	for _, s := range stored {
		trx.Delete(storage.Pool.Transactions, s.key)
	}
	trx.Delete(storage.Pool.BlockUndo, tip.Hash[:])
	trx.Delete(storage.Pool.BlockHeight, tip.Hash[:])
	trx.Delete(storage.Pool.BlockHash, heightKey(tip.Height))
	return b, u, nil
}

func (l *Ledger) observe(block *wire.MsgBlock) {
	if nil == l.observer {
		return
	}
	changed := false
	for _, tx := range block.Transactions {
		if l.observer.Observe(tx) {
			changed = true
		}
	}
	l.saveObserver(changed)
}

func (l *Ledger) unobserve(transactions []*wire.MsgTx, spent []spentOutput) {
	if nil == l.observer {
		return
	}
	changed := false
	for i := len(transactions) - 1; i >= 0; i -= 1 {
		if l.observer.Unobserve(transactions[i]) {
			changed = true
		}
	}
	for _, s := range spent {
		o, err := unpackNameOutput(s.record)
		if nil != err {
			l.log.Errorf("restore my names: error: %s", err)
			continue
		}
		var txID chainhash.Hash
		copy(txID[:], s.key[:chainhash.HashSize])
		if l.observer.Restore(txID, o.script) {
			changed = true
		}
	}
	l.saveObserver(changed)
}

func (l *Ledger) saveObserver(changed bool) {
	if !changed {
		return
	}
	if err := l.observer.Save(); nil != err {
		l.log.Errorf("save my names: error: %s", err)
	}
}
