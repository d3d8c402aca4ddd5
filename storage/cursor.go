// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool  *PoolHandle
	start []byte
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool:  p,
		start: []byte{p.prefix}, // start of key range, included in the range
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return some elements starting from key
//
// the cursor advances past the last element returned
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if nil == cursor.pool.dataAccess {
		return nil, nil
	}

	results := make([]Element, 0, count)
	err := cursor.pool.dataAccess.Iterate(cursor.start, cursor.pool.limit, func(key []byte, value []byte) (bool, error) {
		results = append(results, copyElement(key, value))
		return len(results) < count, nil
	})
	if nil != err {
		return nil, errors.Wrapf(fault.ErrStorageRead, "pool: %c  fetch  error: %s", cursor.pool.prefix, err)
	}

	if n := len(results); n > 0 {
		// the smallest key strictly after the last one
		cursor.start = append(cursor.pool.prefixKey(results[n-1].Key), 0x00)
	}
	return results, nil
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	if nil == cursor.pool.dataAccess {
		return nil
	}

	var fErr error
	err := cursor.pool.dataAccess.Iterate(cursor.start, cursor.pool.limit, func(key []byte, value []byte) (bool, error) {
		e := copyElement(key, value)
		fErr = f(e.Key, e.Value)
		return nil == fErr, nil
	})
	if nil != fErr {
		return fErr
	}
	if nil != err {
		return errors.Wrapf(fault.ErrStorageRead, "pool: %c  map  error: %s", cursor.pool.prefix, err)
	}
	return nil
}

// strip the prefix and copy out of the engine's buffers
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
