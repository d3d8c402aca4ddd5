// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/nameregd/fault"
)

// Access - buffered access to the database
//
// reads see the uncommitted writes of the current transaction,
// iteration only sees committed data
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Last([]byte, []byte) ([]byte, []byte, error)
	Iterate([]byte, []byte, func([]byte, []byte) (bool, error)) error
	Put([]byte, []byte)
}

type AccessData struct {
	sync.Mutex
	inUse   bool
	db      engine
	pending []operation
	cache   Cache
}

func newDA(db engine, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		cache: cache,
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionInUse
	}

	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.Lock()
	defer d.Unlock()

	v := append([]byte{}, value...)
	d.cache.Set(dbPut, string(key), v)
	d.pending = append(d.pending, operation{op: dbPut, key: key, value: v})
}

func (d *AccessData) Delete(key []byte) {
	d.Lock()
	defer d.Unlock()

	d.cache.Set(dbDelete, string(key), nil)
	d.pending = append(d.pending, operation{op: dbDelete, key: key})
}

func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotInUse
	}

	var err error
	if 0 != len(d.pending) {
		err = d.db.write(d.pending)
	}
	d.reset()
	return err
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	d.Lock()
	value, present, cached := d.cache.Get(string(key))
	d.Unlock()

	if cached {
		if present {
			return value, nil
		}
		return nil, nil
	}
	return d.db.get(key)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	d.Lock()
	_, present, cached := d.cache.Get(string(key))
	d.Unlock()

	if cached {
		return present, nil
	}
	return d.db.has(key)
}

func (d *AccessData) Iterate(start []byte, limit []byte, f func([]byte, []byte) (bool, error)) error {
	return d.db.iterate(start, limit, f)
}

func (d *AccessData) Last(start []byte, limit []byte) ([]byte, []byte, error) {
	return d.db.last(start, limit)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *AccessData) reset() {
	d.pending = nil
	d.cache.Clear()
	d.inUse = false
}
