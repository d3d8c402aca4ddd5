// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	db *leveldb.DB
}

func openLevelDB(name string, readOnly bool) (engine, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (l *levelDB) has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *levelDB) write(ops []operation) error {
	batch := new(leveldb.Batch)
	for _, o := range ops {
		switch o.op {
		case dbPut:
			batch.Put(o.key, o.value)
		case dbDelete:
			batch.Delete(o.key)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *levelDB) iterate(start []byte, limit []byte, f func([]byte, []byte) (bool, error)) error {
	iter := l.db.NewIterator(&ldb_util.Range{Start: start, Limit: limit}, nil)

	var err error
iterating:
	for iter.Next() {
		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		more := false
		more, err = f(iter.Key(), iter.Value())
		if nil != err || !more {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

func (l *levelDB) last(start []byte, limit []byte) ([]byte, []byte, error) {
	iter := l.db.NewIterator(&ldb_util.Range{Start: start, Limit: limit}, nil)
	defer iter.Release()

	if !iter.Last() {
		return nil, nil, iter.Error()
	}
	key := append([]byte{}, iter.Key()...)
	value := append([]byte{}, iter.Value()...)
	return key, value, nil
}

func (l *levelDB) close() error {
	return l.db.Close()
}
