// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"

	"github.com/cockroachdb/pebble"
)

type pebbleDB struct {
	db *pebble.DB
}

func openPebble(name string, readOnly bool) (engine, error) {
	opt := &pebble.Options{
		ReadOnly:         readOnly,
		ErrorIfNotExists: readOnly,
	}
	db, err := pebble.Open(name, opt)
	if nil != err {
		return nil, err
	}
	return &pebbleDB{db: db}, nil
}

func (p *pebbleDB) get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	defer closer.Close()

	return append([]byte{}, value...), nil
}

func (p *pebbleDB) has(key []byte) (bool, error) {
	value, err := p.get(key)
	return nil != value, err
}

func (p *pebbleDB) write(ops []operation) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, o := range ops {
		var err error
		switch o.op {
		case dbPut:
			err = batch.Set(o.key, o.value, nil)
		case dbDelete:
			err = batch.Delete(o.key, nil)
		}
		if nil != err {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (p *pebbleDB) iterate(start []byte, limit []byte, f func([]byte, []byte) (bool, error)) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: limit,
	})
	if nil != err {
		return err
	}

iterating:
	for ok := iter.First(); ok; ok = iter.Next() {
		more := false
		more, err = f(iter.Key(), iter.Value())
		if nil != err || !more {
			break iterating
		}
	}
	if nil == err {
		err = iter.Error()
	}
	if closeErr := iter.Close(); nil == err {
		err = closeErr
	}
	return err
}

func (p *pebbleDB) last(start []byte, limit []byte) ([]byte, []byte, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: limit,
	})
	if nil != err {
		return nil, nil, err
	}
	defer iter.Close()

	if !iter.Last() {
		return nil, nil, iter.Error()
	}
	key := append([]byte{}, iter.Key()...)
	value := append([]byte{}, iter.Value()...)
	return key, value, nil
}

func (p *pebbleDB) close() error {
	return p.db.Close()
}
