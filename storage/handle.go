// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
)

// Handle - the read interface to a pool
type Handle interface {
	Get([]byte) ([]byte, error)
	GetN([]byte) (uint64, bool, error)
	Has([]byte) (bool, error)
	LastElement() (Element, bool, error)
	NewFetchCursor() *FetchCursor
}

// PoolHandle - the structure for a pool of a particular prefix
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// store a key/value bytes pair to the database
func (p *PoolHandle) put(key []byte, value []byte) {
	p.dataAccess.Put(p.prefixKey(key), value)
}

// store a big endian uint64 value
func (p *PoolHandle) putN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.dataAccess.Put(p.prefixKey(key), buffer)
}

// remove a key from the database
func (p *PoolHandle) remove(key []byte) {
	p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// nil value if the key is absent
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	if nil == p || nil == p.dataAccess {
		return nil, fault.ErrNotInitialised
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if nil != err {
		return nil, errors.Wrapf(fault.ErrStorageRead, "pool: %c  key: %x  error: %s", p.prefix, key, err)
	}
	return value, nil
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer, err := p.Get(key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if len(buffer) < 8 {
		return 0, false, errors.Wrapf(fault.ErrStorageCorrupt, "pool: %c  truncated record for: %x", p.prefix, key)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	if nil == p || nil == p.dataAccess {
		return false, fault.ErrNotInitialised
	}
	found, err := p.dataAccess.Has(p.prefixKey(key))
	if nil != err {
		return false, errors.Wrapf(fault.ErrStorageRead, "pool: %c  key: %x  error: %s", p.prefix, key, err)
	}
	return found, nil
}

// LastElement - get the last committed element in a pool
func (p *PoolHandle) LastElement() (Element, bool, error) {
	if nil == p || nil == p.dataAccess {
		return Element{}, false, fault.ErrNotInitialised
	}

	key, value, err := p.dataAccess.Last([]byte{p.prefix}, p.limit)
	if nil != err {
		return Element{}, false, errors.Wrapf(fault.ErrStorageRead, "pool: %c  last element  error: %s", p.prefix, err)
	}
	if nil == key {
		return Element{}, false, nil
	}
	return Element{Key: key[1:], Value: value}, true, nil
}
