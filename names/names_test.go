// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package names_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/fixtures"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/names/mocks"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/storage"
	"github.com/bitmark-inc/nameregd/validation"
)

var spending = nameop.PayToPubKeyHash(bytes.Repeat([]byte{0x22}, 20))

type env struct {
	query    *names.Query
	registry *registry.Registry
	reader   *mocks.MockTransactionReader
	tip      *mocks.MockTip
}

func setup(t *testing.T, ctl *gomock.Controller) *env {
	if err := fixtures.SetupTestDatabase(storage.EngineLevelDB); nil != err {
		t.Fatalf("database setup error: %s", err)
	}
	log := logger.New(fixtures.LogCategory)
	r := registry.New(log, storage.Pool.Names)
	reader := mocks.NewMockTransactionReader(ctl)
	tip := mocks.NewMockTip(ctl)

	lock := &sync.RWMutex{}
	q, err := names.New(log, lock.RLocker(), r, reader, tip, true)
	if nil != err {
		t.Fatalf("query setup error: %s", err)
	}
	return &env{
		query:    q,
		registry: r,
		reader:   reader,
		tip:      tip,
	}
}

func at(height uint64) validation.BlockRef {
	return validation.BlockRef{
		Hash:     fixtures.BlockHash(height, 0),
		Previous: fixtures.BlockHash(height-1, 0),
		Height:   height,
	}
}

func position(height uint64) registry.Position {
	return registry.Position{
		Block:  fixtures.BlockHash(height, 0),
		Height: height,
		Index:  1,
	}
}

func valueTx(t *testing.T, kind nameop.Kind, name string, value string) *wire.MsgTx {
	var op *nameop.Operation
	var err error
	if nameop.FirstUpdate == kind {
		op, err = nameop.FirstUpdateOperation([]byte(name), []byte("salt"), []byte(value))
	} else {
		op, err = nameop.UpdateOperation([]byte(name), []byte(value))
	}
	if nil != err {
		t.Fatalf("operation error: %s", err)
	}
	tx := wire.NewMsgTx(nameop.NameTransactionVersion)
	tx.AddTxOut(wire.NewTxOut(fee.MinimumAmount, op.Script(spending)))
	return tx
}

func appendPosition(t *testing.T, r *registry.Registry, name string, p registry.Position) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	if err := r.Append(trx, []byte(name), p); nil != err {
		t.Fatalf("append error: %s", err)
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestCurrentValueScenario(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	const h = 112

	// registered at h
	appendPosition(t, e.registry, "alice", position(h))
	e.reader.EXPECT().Transaction(position(h)).Return(valueTx(t, nameop.FirstUpdate, "alice", "hello"), nil).Times(1)
	e.tip.EXPECT().Tip().Return(at(h)).Times(2)

	for i := 0; i < 2; i += 1 {
		v, err := e.query.CurrentValue([]byte("alice"))
		assert.Nil(t, err)
		assert.Equal(t, &names.Value{
			Name:      []byte("alice"),
			Value:     []byte("hello"),
			Height:    h,
			ExpiresIn: validation.ExpirationDepth,
		}, v, "lookup: %d", i)
	}

	// updated at h+100
	appendPosition(t, e.registry, "alice", position(h+100))
	e.reader.EXPECT().Transaction(position(h+100)).Return(valueTx(t, nameop.Update, "alice", "world"), nil).Times(1)
	e.tip.EXPECT().Tip().Return(at(h + 100)).Times(1)

	v, err := e.query.CurrentValue([]byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("world"), v.Value)
	assert.Equal(t, uint64(h+100), v.Height)
	assert.Equal(t, int64(validation.ExpirationDepth), v.ExpiresIn)
	assert.False(t, v.Expired)

	// one block before expiry
	e.tip.EXPECT().Tip().Return(at(h + 100 + validation.ExpirationDepth - 1)).Times(1)
	v, err = e.query.CurrentValue([]byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("world"), v.Value)
	assert.Equal(t, int64(1), v.ExpiresIn)

	// expired
	e.tip.EXPECT().Tip().Return(at(h + 100 + validation.ExpirationDepth)).Times(1)
	v, err = e.query.CurrentValue([]byte("alice"))
	assert.Nil(t, err)
	assert.True(t, v.Expired)
	assert.Nil(t, v.Value)
	assert.Equal(t, int64(0), v.ExpiresIn)
}

func TestCurrentValueNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	_, err := e.query.CurrentValue([]byte("nobody"))
	assert.Equal(t, fault.ErrNameNotFound, err)
}

func TestCurrentValueUnreadable(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	appendPosition(t, e.registry, "bob", position(50))
	e.tip.EXPECT().Tip().Return(at(60)).Times(2)

	gomock.InOrder(
		e.reader.EXPECT().Transaction(position(50)).Return(nil, fault.ErrPositionNotFound),
		e.reader.EXPECT().Transaction(position(50)).Return(wire.NewMsgTx(1), nil),
	)

	_, err := e.query.CurrentValue([]byte("bob"))
	assert.Equal(t, fault.ErrPositionNotFound, err)

	_, err = e.query.CurrentValue([]byte("bob"))
	assert.Equal(t, fault.ErrInvalidTransaction, err)
}

func TestScan(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	appendPosition(t, e.registry, "d/alice", position(100))
	appendPosition(t, e.registry, "d/bob", position(5))
	appendPosition(t, e.registry, "d/carol", position(200))
	appendPosition(t, e.registry, "d/dave", position(300))

	tip := uint64(5 + validation.ExpirationDepth)
	e.tip.EXPECT().Tip().Return(at(tip)).AnyTimes()
	e.reader.EXPECT().Transaction(position(100)).Return(valueTx(t, nameop.FirstUpdate, "d/alice", "a"), nil).Times(1)
	e.reader.EXPECT().Transaction(position(200)).Return(nil, fault.ErrPositionNotFound).Times(2)
	e.reader.EXPECT().Transaction(position(300)).Return(valueTx(t, nameop.Update, "d/dave", "d"), nil).Times(1)

	entries, err := e.query.Scan(nil, 10)
	assert.Nil(t, err)
	assert.Equal(t, []names.Entry{
		{Name: []byte("d/alice"), Value: []byte("a"), ExpiresIn: 95},
		{Name: []byte("d/bob"), ExpiresIn: 0, Expired: true},
		{Name: []byte("d/carol"), ExpiresIn: 195, Expired: true},
		{Name: []byte("d/dave"), Value: []byte("d"), ExpiresIn: 295},
	}, entries)

	// cached values, bounded from a start name
	entries, err = e.query.Scan([]byte("d/b"), 3)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(entries))
	assert.Equal(t, []byte("d/bob"), entries[0].Name)
	assert.Equal(t, []byte("d/dave"), entries[2].Name)
	assert.Equal(t, []byte("d"), entries[2].Value)
}

func TestScanStorageFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	appendPosition(t, e.registry, "d/alice", position(100))
	e.tip.EXPECT().Tip().Return(at(101)).Times(1)
	e.reader.EXPECT().Transaction(position(100)).Return(nil, fault.ErrStorageRead).Times(1)

	_, err := e.query.Scan(nil, 10)
	assert.Equal(t, fault.ErrStorageRead, err)
}

func TestMinimumFee(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(t, ctl)
	defer fixtures.TeardownTestDatabase()

	assert.Equal(t, fee.Minimum(0, true), e.query.MinimumFee(0))
	assert.Equal(t, fee.Minimum(9000, true), e.query.MinimumFee(9000))

	e.tip.EXPECT().Tip().Return(at(8191)).Times(1)
	assert.Equal(t, fee.Minimum(8192, true), e.query.NextBlockFee())
}
