// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validation

import (
	"bytes"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/storage"
)

// depths in blocks
const (
	MinimumFirstUpdateDepth = 12
	ExpirationDepth         = 12000
)

// Mode - the context a transaction is validated in
type Mode int

// all possible modes
const (
	Pool    Mode = iota // acceptance to the memory pool
	Miner               // inclusion in a block being built
	Connect             // connection of a block to the active chain
)

func (m Mode) String() string {
	switch m {
	case Pool:
		return "pool"
	case Miner:
		return "miner"
	case Connect:
		return "connect"
	default:
		return "*unknown*"
	}
}

// BlockRef - the block a transaction is validated against
//
// the block itself need not be in the chain index yet, but its
// parent must be
type BlockRef struct {
	Hash     chainhash.Hash
	Previous chainhash.Hash
	Height   uint64
}

// Confirmation - the block containing a transaction
type Confirmation struct {
	Block  chainhash.Hash
	Height uint64
}

// PreviousOutput - the output consumed by a transaction input
type PreviousOutput struct {
	PkScript  []byte
	Confirmed *Confirmation // nil if not in the chain
}

// ChainIndex - block lookups provided by the ledger
//
//go:generate mockgen -source=engine.go -destination=mocks/chain_index.go -package=mocks
type ChainIndex interface {
	// Ancestor - the hash of the block at height on the chain that
	// ends with the block tip
	Ancestor(tip chainhash.Hash, height uint64) (chainhash.Hash, bool, error)
}

// Engine - validates name transactions against the registry
type Engine struct {
	log      *logger.L
	registry *registry.Registry
	chain    ChainIndex
	testing  bool
}

// New - create a validation engine
func New(log *logger.L, r *registry.Registry, chain ChainIndex, testing bool) *Engine {
	return &Engine{
		log:      log,
		registry: r,
		chain:    chain,
		testing:  testing,
	}
}

// CheckTransaction - structural checks, independent of chain state
func (e *Engine) CheckTransaction(tx *wire.MsgTx) error {
	err := nameop.CheckTransaction(tx)
	if nil != err {
		e.log.Infof("check: tx: %s  error: %s", tx.TxHash(), err)
	}
	return err
}

// ConnectInputs - apply the name rules to a transaction
//
// previous holds the output spent by each input; index is the
// position of tx within the block and is only used in Connect mode,
// the only mode that appends to the registry
func (e *Engine) ConnectInputs(trx storage.Transaction, tx *wire.MsgTx, previous []PreviousOutput, ref BlockRef, index uint32, mode Mode) error {
	err := e.connectInputs(trx, tx, previous, ref, index, mode)
	if nil != err {
		if fault.IsErrStorage(err) {
			e.log.Criticalf("%s: tx: %s  height: %d  error: %s", mode, tx.TxHash(), ref.Height, err)
		} else {
			e.log.Infof("%s: reject tx: %s  height: %d  error: %s", mode, tx.TxHash(), ref.Height, err)
		}
	}
	return err
}

func (e *Engine) connectInputs(trx storage.Transaction, tx *wire.MsgTx, previous []PreviousOutput, ref BlockRef, index uint32, mode Mode) error {

	var prevOp *nameop.Operation
	var prevOut PreviousOutput
	for _, p := range previous {
		op, _, ok := nameop.Decode(p.PkScript)
		if !ok {
			continue
		}
		if nil != prevOp {
			return fault.ErrMultipleNameInputs
		}
		prevOp = op
		prevOut = p
	}

	if !nameop.IsNameTransaction(tx) {
		// spending a name output without the name rules would
		// silently drop the name
		if nil != prevOp {
			return fault.ErrNotNameTransaction
		}
		return nil
	}

	op, _, err := nameop.Extract(tx)
	if nil != err {
		return fault.ErrInvalidNameScript
	}

	switch op.Kind {
	case nameop.New:
		if nil != prevOp {
			return fault.ErrNewSpendsName
		}

	case nameop.FirstUpdate:
		if nameop.NetworkFee(tx) < fee.Minimum(ref.Height, e.testing) {
			return fault.ErrFeeTooLow
		}
		if nil == prevOp || nameop.New != prevOp.Kind {
			return fault.ErrFirstUpdateWithoutNew
		}
		if !op.Matches(prevOp.Commitment()) {
			return fault.ErrCommitmentMismatch
		}

		last, found, err := e.registry.LastPosition(op.Name())
		if nil != err {
			return err
		}
		if found && !IsExpired(last.Height, ref.Height) {
			return fault.ErrNameExists
		}

		if Pool != mode {
			d, err := e.depth(ref, prevOut.Confirmed, MinimumFirstUpdateDepth)
			if nil != err {
				return err
			}
			if d >= 0 && d < MinimumFirstUpdateDepth {
				return fault.ErrFirstUpdateTooEarly
			}
		}

		// the reservation must be confirmed and unexpired to be mined
		if Miner == mode {
			d, err := e.depth(ref, prevOut.Confirmed, ExpirationDepth)
			if nil != err {
				return err
			}
			if d < 0 {
				return fault.ErrReservationNotVisible
			}
		}

	case nameop.Update:
		if nil == prevOp || (nameop.FirstUpdate != prevOp.Kind && nameop.Update != prevOp.Kind) {
			return fault.ErrNameUpdateWithoutName
		}
		if !bytes.Equal(prevOp.Name(), op.Name()) {
			return fault.ErrNameMismatch
		}
		if Pool != mode {
			d, err := e.depth(ref, prevOut.Confirmed, ExpirationDepth)
			if nil != err {
				return err
			}
			if d < 0 {
				return fault.ErrExpiredNameUpdate
			}
		}

	default:
		return fault.ErrUnknownNameOperation
	}

	if Connect != mode || nameop.New == op.Kind {
		return nil
	}

	p := registry.Position{
		Block:  ref.Hash,
		Height: ref.Height,
		Index:  index,
	}
	return e.registry.Append(trx, op.Name(), p)
}

// DisconnectInputs - undo the registry change made by ConnectInputs in Connect mode
//
// transactions must be disconnected in the reverse of connect order
func (e *Engine) DisconnectInputs(trx storage.Transaction, tx *wire.MsgTx) error {
	if !nameop.IsNameTransaction(tx) {
		return nil
	}

	op, _, err := nameop.Extract(tx)
	if nil != err {
		e.log.Errorf("disconnect: tx: %s  error: %s", tx.TxHash(), err)
		return fault.ErrInvalidNameScript
	}

	switch op.Kind {
	case nameop.FirstUpdate, nameop.Update:
		_, _, err = e.registry.Pop(trx, op.Name())
		if nil != err {
			e.log.Criticalf("disconnect: tx: %s  name: %q  error: %s", tx.TxHash(), op.Name(), err)
		}
		return err
	default:
		return nil
	}
}

// depth of a confirmed transaction below the reference block
//
// returns -1 if it is not on the chain ending at ref or is maxDepth
// or more blocks deep
func (e *Engine) depth(ref BlockRef, c *Confirmation, maxDepth uint64) (int, error) {
	if nil == c || c.Height > ref.Height {
		return -1, nil
	}
	d := ref.Height - c.Height
	if d >= maxDepth {
		return -1, nil
	}
	if 0 == d {
		if ref.Hash == c.Block {
			return 0, nil
		}
		return -1, nil
	}

	hash, found, err := e.chain.Ancestor(ref.Previous, c.Height)
	if nil != err {
		return -1, err
	}
	if !found || hash != c.Block {
		return -1, nil
	}
	return int(d), nil
}

// IsExpired - true if a name last touched at height is expired at reference
func IsExpired(height uint64, reference uint64) bool {
	return reference >= height && reference-height >= ExpirationDepth
}

// ExpiresIn - blocks remaining before a name last touched at height expires
func ExpiresIn(height uint64, reference uint64) int64 {
	return int64(height) + ExpirationDepth - int64(reference)
}
