// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the persistent table of name histories
//
// each name maps to the ordered positions of the FirstUpdate and
// Update transactions that touched it; the last position is the
// current state of the name.  Only the validation engine writes,
// always inside the storage transaction of the block being connected
// or disconnected.
package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/storage"
)

// Entry - one row of a scan
type Entry struct {
	Name []byte
	Last *Position // nil if the name has no history
}

// Registry - access to the names pool
type Registry struct {
	log  *logger.L
	pool *storage.PoolHandle
}

// New - registry over a pool
func New(log *logger.L, pool *storage.PoolHandle) *Registry {
	return &Registry{
		log:  log,
		pool: pool,
	}
}

// Exists - true if the name has a record, even an empty one
func (r *Registry) Exists(name []byte) (bool, error) {
	return r.pool.Has(name)
}

// Read - the history of a name
//
// found is false if the name has no record
func (r *Registry) Read(name []byte) (History, bool, error) {
	packed, err := r.pool.Get(name)
	if nil != err {
		return nil, false, err
	}
	if nil == packed {
		return nil, false, nil
	}
	h, err := UnpackHistory(packed)
	if nil != err {
		r.log.Criticalf("name: %q  history: %x  error: %s", name, packed, err)
		return nil, false, err
	}
	return h, true, nil
}

// LastPosition - the most recent position of a name
func (r *Registry) LastPosition(name []byte) (Position, bool, error) {
	h, _, err := r.Read(name)
	if nil != err {
		return Position{}, false, err
	}
	p, ok := h.Last()
	return p, ok, nil
}

// Write - replace the full history of a name
//
// an empty history removes the record
func (r *Registry) Write(trx storage.Transaction, name []byte, h History) error {
	if nil == trx || !trx.InUse() {
		return fault.ErrTransactionNotInUse
	}
	if 0 == len(h) {
		trx.Delete(r.pool, name)
		return nil
	}
	trx.Put(r.pool, name, h.Pack())
	return nil
}

// Append - add a position to the end of a name's history
func (r *Registry) Append(trx storage.Transaction, name []byte, p Position) error {
	h, _, err := r.Read(name)
	if nil != err {
		return err
	}
	h = append(h, p)

	r.log.Debugf("append: %q  position: %s  depth: %d", name, p, len(h))
	return r.Write(trx, name, h)
}

// Pop - remove the most recent position of a name's history
//
// popping an empty history does nothing and returns false
func (r *Registry) Pop(trx storage.Transaction, name []byte) (Position, bool, error) {
	h, _, err := r.Read(name)
	if nil != err {
		return Position{}, false, err
	}
	p, ok := h.Last()
	if !ok {
		r.log.Warnf("pop: %q  history already empty", name)
		return Position{}, false, nil
	}

	r.log.Debugf("pop: %q  position: %s  depth: %d", name, p, len(h)-1)
	return p, true, r.Write(trx, name, h[:len(h)-1])
}

// Scan - names in lexicographic order starting at start, at most limit
func (r *Registry) Scan(start []byte, limit int) ([]Entry, error) {
	elements, err := r.pool.NewFetchCursor().Seek(start).Fetch(limit)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(elements))
	for _, e := range elements {
		h, err := UnpackHistory(e.Value)
		if nil != err {
			r.log.Criticalf("name: %q  history: %x  error: %s", e.Key, e.Value, err)
			return nil, err
		}
		entry := Entry{
			Name: e.Key,
		}
		if p, ok := h.Last(); ok {
			entry.Last = &p
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
