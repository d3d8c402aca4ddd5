// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
)

// Transaction - a set of writes committed or aborted together
//
// reads through a transaction see its own uncommitted writes
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) ([]byte, error)
	GetN(*PoolHandle, []byte) (uint64, bool, error)
	Has(*PoolHandle, []byte) (bool, error)
	Commit() error
	Abort()
	InUse() bool
}

type TransactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		access: access,
	}
}

func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

func (t *TransactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (t *TransactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	handle.putN(key, value)
}

func (t *TransactionData) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

func (t *TransactionData) Get(handle *PoolHandle, key []byte) ([]byte, error) {
	return handle.Get(key)
}

func (t *TransactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool, error) {
	return handle.GetN(key)
}

func (t *TransactionData) Has(handle *PoolHandle, key []byte) (bool, error) {
	return handle.Has(key)
}

func (t *TransactionData) Commit() error {
	err := t.access.Commit()
	if nil != err && !fault.IsErrProcess(err) {
		return errors.Wrapf(fault.ErrStorageWrite, "commit: %s", err)
	}
	return err
}

func (t *TransactionData) Abort() {
	t.access.Abort()
}

func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}
