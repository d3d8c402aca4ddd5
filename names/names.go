// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package names - read only queries over the name registry
//
// each logical read holds the chain lock; a scan followed by value
// lookups is not atomic and may observe blocks connected in between
package names

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/wire"
	lru "github.com/hashicorp/golang-lru"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/validation"
)

// number of decoded values kept
const cacheSize = 4096

//go:generate mockgen -source=names.go -destination=mocks/names.go -package=mocks

// TransactionReader - fetch a confirmed transaction
type TransactionReader interface {
	Transaction(registry.Position) (*wire.MsgTx, error)
}

// Tip - the current best block
type Tip interface {
	Tip() validation.BlockRef
}

// Value - the current state of a name
type Value struct {
	Name      []byte
	Value     []byte
	Height    uint64
	ExpiresIn int64
	Expired   bool
}

// Entry - one row of a scan
type Entry struct {
	Name      []byte
	Value     []byte
	ExpiresIn int64
	Expired   bool
}

// Query - registry queries
type Query struct {
	log      *logger.L
	lock     sync.Locker
	registry *registry.Registry
	reader   TransactionReader
	tip      Tip
	cache    *lru.Cache
	testing  bool
}

// New - create the query interface
//
// lock is the reader side of the chain lock
func New(log *logger.L, lock sync.Locker, r *registry.Registry, reader TransactionReader, tip Tip, testing bool) (*Query, error) {
	cache, err := lru.New(cacheSize)
	if nil != err {
		return nil, err
	}
	return &Query{
		log:      log,
		lock:     lock,
		registry: r,
		reader:   reader,
		tip:      tip,
		cache:    cache,
		testing:  testing,
	}, nil
}

// CurrentValue - value, height and blocks to expiry of a name
//
// an expired name is returned with Expired set and no value
func (q *Query) CurrentValue(name []byte) (*Value, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	p, found, err := q.registry.LastPosition(name)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrNameNotFound
	}

	tip := q.tip.Tip()
	result := &Value{
		Name:      name,
		Height:    p.Height,
		ExpiresIn: validation.ExpiresIn(p.Height, tip.Height),
	}
	if validation.IsExpired(p.Height, tip.Height) {
		result.Expired = true
		return result, nil
	}

	result.Value, err = q.valueAt(p)
	if nil != err {
		return nil, err
	}
	return result, nil
}

// Scan - names in byte order from start with their values
//
// blocks to expiry are reported for every name that has history;
// names without history, expired names and names whose transaction
// cannot be read are all marked expired
func (q *Query) Scan(start []byte, limit int) ([]Entry, error) {
	q.lock.Lock()
	rows, err := q.registry.Scan(start, limit)
	tip := q.tip.Tip()
	q.lock.Unlock()

	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry := Entry{
			Name:    row.Name,
			Expired: true,
		}
		if nil != row.Last {
			entry.ExpiresIn = validation.ExpiresIn(row.Last.Height, tip.Height)
		}
		if nil != row.Last && !validation.IsExpired(row.Last.Height, tip.Height) {
			q.lock.Lock()
			value, err := q.valueAt(*row.Last)
			q.lock.Unlock()

			switch {
			case nil == err:
				entry.Value = value
				entry.Expired = false
			case fault.IsErrStorage(err):
				return nil, err
			default:
				q.log.Warnf("scan: name: %q  position: %s  error: %s", row.Name, row.Last, err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MinimumFee - smallest network fee for a name_firstupdate confirmed at height
func (q *Query) MinimumFee(height uint64) int64 {
	return fee.Minimum(height, q.testing)
}

// NextBlockFee - smallest network fee for the next block
func (q *Query) NextBlockFee() int64 {
	q.lock.Lock()
	tip := q.tip.Tip()
	q.lock.Unlock()
	return q.MinimumFee(tip.Height + 1)
}

// value recorded at a confirmed position, caller holds the lock
func (q *Query) valueAt(p registry.Position) ([]byte, error) {
	if v, ok := q.cache.Get(p); ok {
		return v.([]byte), nil
	}

	tx, err := q.reader.Transaction(p)
	if nil != err {
		return nil, err
	}
	value, ok := nameop.ValueOf(tx)
	if !ok {
		q.log.Errorf("position: %s  tx: %s  has no value", p, tx.TxHash())
		return nil, fault.ErrInvalidTransaction
	}

	q.cache.Add(p, value)
	return value, nil
}
