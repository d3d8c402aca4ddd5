// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/nameregd/fault"
)

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

// a single buffered write
type operation struct {
	op    dbOperation
	key   []byte
	value []byte
}

// the minimal set of primitives required from an on-disk key/value store
//
// get returns nil, nil for an absent key
// write must apply all operations atomically
// iterate visits keys in [start, limit) in ascending order until f returns false
// last returns the highest key in [start, limit), nil key if the range is empty
type engine interface {
	get(key []byte) ([]byte, error)
	has(key []byte) (bool, error)
	write(ops []operation) error
	iterate(start []byte, limit []byte, f func(key []byte, value []byte) (bool, error)) error
	last(start []byte, limit []byte) ([]byte, []byte, error)
	close() error
}

func openEngine(name string, path string, readOnly bool) (engine, error) {
	switch name {
	case EngineLevelDB, "":
		return openLevelDB(path+".leveldb", readOnly)
	case EnginePebble:
		return openPebble(path+".pebble", readOnly)
	case EngineBolt:
		return openBolt(path+".bbolt", readOnly)
	default:
		return nil, fault.ErrInvalidDatabaseEngine
	}
}
