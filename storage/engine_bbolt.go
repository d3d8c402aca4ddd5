// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"
)

// all pools share one bucket, the prefix byte separates them
var boltBucket = []byte("nameregd")

type boltDB struct {
	db *bolt.DB
}

func openBolt(name string, readOnly bool) (engine, error) {
	opt := &bolt.Options{
		Timeout:  1 * time.Second,
		ReadOnly: readOnly,
	}
	db, err := bolt.Open(name, 0600, opt)
	if nil != err {
		return nil, err
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltBucket)
			return err
		})
		if nil != err {
			db.Close()
			return nil, err
		}
	}
	return &boltDB{db: db}, nil
}

func (b *boltDB) get(key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if nil == bucket {
			return nil
		}
		if v := bucket.Get(key); nil != v {
			value = append([]byte{}, v...)
		}
		return nil
	})
	return value, err
}

func (b *boltDB) has(key []byte) (bool, error) {
	value, err := b.get(key)
	return nil != value, err
}

func (b *boltDB) write(ops []operation) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		for _, o := range ops {
			var err error
			switch o.op {
			case dbPut:
				err = bucket.Put(o.key, o.value)
			case dbDelete:
				err = bucket.Delete(o.key)
			}
			if nil != err {
				return err
			}
		}
		return nil
	})
}

func (b *boltDB) iterate(start []byte, limit []byte, f func([]byte, []byte) (bool, error)) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if nil == bucket {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.Seek(start); nil != k; k, v = c.Next() {
			if nil != limit && bytes.Compare(k, limit) >= 0 {
				return nil
			}
			more, err := f(k, v)
			if nil != err || !more {
				return err
			}
		}
		return nil
	})
}

func (b *boltDB) last(start []byte, limit []byte) ([]byte, []byte, error) {
	var key, value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if nil == bucket {
			return nil
		}
		c := bucket.Cursor()

		var k, v []byte
		if nil == limit {
			k, v = c.Last()
		} else if k, v = c.Seek(limit); nil == k {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		if nil == k || bytes.Compare(k, start) < 0 {
			return nil
		}
		key = append([]byte{}, k...)
		value = append([]byte{}, v...)
		return nil
	})
	return key, value, err
}

func (b *boltDB) close() error {
	return b.db.Close()
}
