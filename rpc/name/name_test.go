// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package name_test

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/fixtures"
	"github.com/bitmark-inc/nameregd/mynames"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/rpc/name"
	"github.com/bitmark-inc/nameregd/rpc/name/mocks"
)

const addressVersion = 111

var (
	ownerHash = bytes.Repeat([]byte{0x42}, 20)
	owner     = nameop.EncodeAddress(addressVersion, ownerHash)
)

type env struct {
	service *name.Name
	query   *mocks.MockQuery
	checker *mocks.MockChecker
	wallet  *mocks.MockWallet
}

func setup(ctl *gomock.Controller) *env {
	fixtures.SetupTestLogger()

	e := &env{
		query:   mocks.NewMockQuery(ctl),
		checker: mocks.NewMockChecker(ctl),
		wallet:  mocks.NewMockWallet(ctl),
	}
	e.service = name.New(logger.New(fixtures.LogCategory), e.query, e.checker, e.wallet, addressVersion)
	return e
}

func TestShow(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	e.query.EXPECT().CurrentValue([]byte("d/alice")).Return(&names.Value{
		Name:      []byte("d/alice"),
		Value:     []byte("hello"),
		Height:    112,
		ExpiresIn: 11900,
	}, nil).Times(1)

	var reply name.ShowReply
	err := e.service.Show(&name.ShowArguments{Name: "d/alice"}, &reply)
	assert.Nil(t, err, "wrong Show")
	assert.Equal(t, "d/alice", reply.Name, "wrong name")
	assert.Equal(t, "hello", reply.Value, "wrong value")
	assert.Equal(t, uint64(112), reply.Height, "wrong height")
	assert.Equal(t, int64(11900), reply.ExpiresIn, "wrong expiry")
	assert.False(t, reply.Expired, "wrong expired")

	e.query.EXPECT().CurrentValue([]byte("d/bob")).Return(nil, fault.ErrNameNotFound).Times(1)

	err = e.service.Show(&name.ShowArguments{Name: "d/bob"}, &reply)
	assert.Equal(t, fault.ErrNameNotFound, err, "wrong missing name error")

	err = e.service.Show(&name.ShowArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "accepted blank name")

	err = e.service.Show(&name.ShowArguments{NameHex: "zz"}, &reply)
	assert.Equal(t, fault.ErrInvalidHex, err, "accepted bad hex name")
}

func TestShowBinaryName(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	binary := []byte{0xff, 0x00, 'd', 0xc3}
	value := []byte{0x80, 0x81}
	e.query.EXPECT().CurrentValue(binary).Return(&names.Value{
		Name:      binary,
		Value:     value,
		Height:    7,
		ExpiresIn: 42,
	}, nil).Times(1)

	var reply name.ShowReply
	err := e.service.Show(&name.ShowArguments{Name: "ignored", NameHex: "ff0064c3"}, &reply)
	assert.Nil(t, err, "wrong Show")
	assert.Equal(t, "ff0064c3", reply.NameHex, "wrong name hex")
	assert.Equal(t, "8081", reply.ValueHex, "wrong value hex")
	assert.Equal(t, int64(42), reply.ExpiresIn, "wrong expiry")

	decoded, err := hex.DecodeString(reply.NameHex)
	assert.Nil(t, err, "wrong name hex")
	assert.Equal(t, binary, decoded, "name bytes not preserved")
}

func TestScan(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	e.query.EXPECT().Scan([]byte(""), name.DefaultScanCount).Return([]names.Entry{
		{Name: []byte("d/alice"), Value: []byte("hello"), ExpiresIn: 95},
		{Name: []byte("d/bob"), Expired: true},
	}, nil).Times(1)

	var reply name.ScanReply
	err := e.service.Scan(&name.ScanArguments{}, &reply)
	assert.Nil(t, err, "wrong Scan")
	assert.Equal(t, []name.ScanEntry{
		{Name: "d/alice", NameHex: hex.EncodeToString([]byte("d/alice")), Value: "hello", ValueHex: hex.EncodeToString([]byte("hello")), ExpiresIn: 95},
		{Name: "d/bob", NameHex: hex.EncodeToString([]byte("d/bob")), Expired: true},
	}, reply.Names, "wrong entries")

	e.query.EXPECT().Scan([]byte{0xfe, 0x01}, 3).Return([]names.Entry{
		{Name: []byte{0xfe, 0x01, 0xff}, Value: []byte{0x00}, ExpiresIn: 1},
	}, nil).Times(1)

	err = e.service.Scan(&name.ScanArguments{StartHex: "fe01", Count: 3}, &reply)
	assert.Nil(t, err, "wrong Scan")
	assert.Equal(t, []name.ScanEntry{
		{Name: string([]byte{0xfe, 0x01, 0xff}), NameHex: "fe01ff", Value: "\x00", ValueHex: "00", ExpiresIn: 1},
	}, reply.Names, "wrong binary entries")

	err = e.service.Scan(&name.ScanArguments{StartHex: "f"}, &reply)
	assert.Equal(t, fault.ErrInvalidHex, err, "accepted odd hex start")

	e.query.EXPECT().Scan([]byte("d/b"), 10).Return([]names.Entry{}, nil).Times(1)

	err = e.service.Scan(&name.ScanArguments{Start: "d/b", Count: 10}, &reply)
	assert.Nil(t, err, "wrong Scan")
	assert.Equal(t, 0, len(reply.Names), "wrong entry count")

	err = e.service.Scan(&name.ScanArguments{Count: name.MaximumScanCount + 1}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted excess count")

	e.query.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, fault.ErrStorageRead).Times(1)

	err = e.service.Scan(&name.ScanArguments{Count: 5}, &reply)
	assert.Equal(t, fault.ErrStorageRead, err, "wrong storage error")
}

func TestList(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	e.wallet.EXPECT().List([]byte(""), name.DefaultScanCount).Return([]mynames.Item{
		{Name: "d/alice", TxID: "aa"},
		{Name: "d/bob", TxID: "bb"},
		{Name: "d/carol", Salt: []byte{1, 2}, Reserved: true},
	}).Times(1)
	e.query.EXPECT().CurrentValue([]byte("d/alice")).Return(&names.Value{
		Name:      []byte("d/alice"),
		Value:     []byte("hello"),
		Height:    112,
		ExpiresIn: 100,
	}, nil).Times(1)
	e.query.EXPECT().CurrentValue([]byte("d/bob")).Return(nil, fault.ErrNameNotFound).Times(1)

	var reply name.ListReply
	err := e.service.List(&name.ScanArguments{}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, []name.ListEntry{
		{Name: "d/alice", NameHex: hex.EncodeToString([]byte("d/alice")), TxID: "aa", Value: "hello", ValueHex: hex.EncodeToString([]byte("hello")), ExpiresIn: 100},
		{Name: "d/bob", NameHex: hex.EncodeToString([]byte("d/bob")), TxID: "bb", Expired: true},
		{Name: "d/carol", NameHex: hex.EncodeToString([]byte("d/carol")), Reserved: true},
	}, reply.Names, "wrong entries")
}

func TestNew(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	var reserved []byte
	e.wallet.EXPECT().Reserve([]byte("d/alice"), gomock.Any(), "").Do(func(_ []byte, salt []byte, _ string) {
		reserved = salt
	}).Times(1)

	var reply name.NewReply
	err := e.service.New(&name.NewArguments{Name: "d/alice", Address: owner}, &reply)
	assert.Nil(t, err, "wrong New")

	salt, err := hex.DecodeString(reply.Salt)
	assert.Nil(t, err, "wrong salt hex")
	assert.Equal(t, reserved, salt, "reserved salt differs")
	assert.Equal(t, hex.EncodeToString(nameop.Commitment(salt, []byte("d/alice"))), reply.Commitment, "wrong commitment")
	assert.Equal(t, int64(fee.MinimumAmount), reply.Amount, "wrong amount")

	script, err := hex.DecodeString(reply.Script)
	assert.Nil(t, err, "wrong script hex")
	op, consumed, ok := nameop.Decode(script)
	assert.True(t, ok, "script is not a name operation")
	assert.Equal(t, nameop.New, op.Kind, "wrong kind")
	assert.Equal(t, nameop.PayToPubKeyHash(ownerHash), script[consumed:], "wrong spending script")

	err = e.service.New(&name.NewArguments{Name: "d/alice", Address: nameop.EncodeAddress(52, ownerHash)}, &reply)
	assert.Equal(t, fault.ErrWrongNetworkForAddress, err, "accepted wrong network")

	err = e.service.New(&name.NewArguments{Name: strings.Repeat("x", nameop.MaximumNameLength+1)}, &reply)
	assert.Equal(t, fault.ErrNameTooLong, err, "accepted long name")

	binary := []byte{0x00, 0xff}
	e.wallet.EXPECT().Reserve(binary, gomock.Any(), "").Times(1)
	err = e.service.New(&name.NewArguments{NameHex: "00ff"}, &reply)
	assert.Nil(t, err, "wrong New")
	assert.Equal(t, "00ff", reply.NameHex, "wrong name hex")
}

func TestFirstUpdate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	salt := []byte("12345678")
	e.wallet.EXPECT().Get([]byte("d/alice")).Return(mynames.Item{Name: "d/alice", Salt: salt, Reserved: true}, true).Times(1)
	e.query.EXPECT().NextBlockFee().Return(int64(12345678)).Times(2)

	var reply name.UpdateReply
	err := e.service.FirstUpdate(&name.FirstUpdateArguments{Name: "d/alice", Value: "hello", Address: owner}, &reply)
	assert.Nil(t, err, "wrong FirstUpdate")
	assert.Equal(t, int64(13*fee.Cent), reply.NetworkFee, "wrong network fee")
	assert.Equal(t, int64(fee.MinimumAmount), reply.Amount, "wrong amount")

	script, _ := hex.DecodeString(reply.Script)
	op, _, ok := nameop.Decode(script)
	assert.True(t, ok, "script is not a name operation")
	assert.Equal(t, nameop.FirstUpdate, op.Kind, "wrong kind")
	assert.Equal(t, salt, op.Salt(), "wrong salt")
	assert.Equal(t, []byte("hello"), op.Value(), "wrong value")

	// explicit salt
	err = e.service.FirstUpdate(&name.FirstUpdateArguments{Name: "d/alice", Salt: hex.EncodeToString(salt), Value: "hello"}, &reply)
	assert.Nil(t, err, "wrong FirstUpdate")

	e.wallet.EXPECT().Get([]byte("d/bob")).Return(mynames.Item{}, false).Times(1)
	err = e.service.FirstUpdate(&name.FirstUpdateArguments{Name: "d/bob", Value: "hello"}, &reply)
	assert.Equal(t, fault.ErrSaltNotFound, err, "wrong missing salt error")

	err = e.service.FirstUpdate(&name.FirstUpdateArguments{Name: "d/bob", Salt: "xyz", Value: "hello"}, &reply)
	assert.Equal(t, fault.ErrInvalidHex, err, "accepted bad hex")

	err = e.service.FirstUpdate(&name.FirstUpdateArguments{Name: "d/bob", Salt: hex.EncodeToString(make([]byte, 21))}, &reply)
	assert.Equal(t, fault.ErrSaltTooLong, err, "accepted long salt")
}

func TestUpdate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	var reply name.UpdateReply
	err := e.service.Update(&name.UpdateArguments{Name: "d/alice", Value: "world"}, &reply)
	assert.Nil(t, err, "wrong Update")
	assert.Equal(t, int64(0), reply.NetworkFee, "update has no network fee")

	script, _ := hex.DecodeString(reply.Script)
	op, consumed, ok := nameop.Decode(script)
	assert.True(t, ok, "script is not a name operation")
	assert.Equal(t, nameop.Update, op.Kind, "wrong kind")
	assert.Equal(t, len(script), consumed, "unexpected spending script")

	err = e.service.Update(&name.UpdateArguments{Name: "d/alice", Value: strings.Repeat("v", nameop.MaximumValueLength+1)}, &reply)
	assert.Equal(t, fault.ErrValueTooLong, err, "accepted long value")

	err = e.service.Update(&name.UpdateArguments{Name: "d/alice", Address: "not-an-address"}, &reply)
	assert.Equal(t, fault.ErrInvalidAddress, err, "accepted bad address")

	err = e.service.Update(&name.UpdateArguments{NameHex: "64", ValueHex: "0080ff"}, &reply)
	assert.Nil(t, err, "wrong Update")
	script, _ = hex.DecodeString(reply.Script)
	op, _, ok = nameop.Decode(script)
	assert.True(t, ok, "script is not a name operation")
	assert.Equal(t, []byte("d"), op.Name(), "wrong binary name")
	assert.Equal(t, []byte{0x00, 0x80, 0xff}, op.Value(), "wrong binary value")

	err = e.service.Update(&name.UpdateArguments{Name: "d/alice", ValueHex: "0g"}, &reply)
	assert.Equal(t, fault.ErrInvalidHex, err, "accepted bad hex value")
}

func TestFee(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	e.query.EXPECT().NextBlockFee().Return(int64(10 * fee.Cent)).Times(1)
	e.query.EXPECT().MinimumFee(uint64(8192)).Return(int64(5*fee.Cent + 1)).Times(1)

	var reply name.FeeReply
	err := e.service.Fee(&name.FeeArguments{}, &reply)
	assert.Nil(t, err, "wrong Fee")
	assert.Equal(t, uint64(0), reply.Height, "wrong height")
	assert.Equal(t, int64(10*fee.Cent), reply.Fee, "wrong fee")
	assert.Equal(t, int64(10*fee.Cent), reply.Rounded, "wrong rounded fee")
	assert.Equal(t, 0.1, reply.Coins, "wrong coins")

	reply = name.FeeReply{}
	err = e.service.Fee(&name.FeeArguments{Height: 8192}, &reply)
	assert.Nil(t, err, "wrong Fee")
	assert.Equal(t, uint64(8192), reply.Height, "wrong height")
	assert.Equal(t, int64(6*fee.Cent), reply.Rounded, "wrong rounded fee")
}

func TestCheck(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := setup(ctl)
	defer fixtures.TeardownTestLogger()

	op, err := nameop.UpdateOperation([]byte("d/alice"), []byte("world"))
	assert.Nil(t, err, "wrong operation")

	tx := wire.NewMsgTx(nameop.NameTransactionVersion)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Hash: chainhash.Hash{0x11}}, nil, nil))
	tx.AddTxOut(wire.NewTxOut(fee.MinimumAmount, op.Script(nameop.PayToPubKeyHash(ownerHash))))
	tx.AddTxOut(wire.NewTxOut(fee.Cent, []byte{txscript.OP_RETURN}))
	tx.AddTxOut(wire.NewTxOut(fee.Cent, []byte{txscript.OP_TRUE}))

	buffer := &bytes.Buffer{}
	assert.Nil(t, tx.Serialize(buffer), "wrong serialise")
	packed := hex.EncodeToString(buffer.Bytes())

	e.checker.EXPECT().Check(gomock.Any()).DoAndReturn(func(received *wire.MsgTx) error {
		assert.Equal(t, tx.TxHash(), received.TxHash(), "wrong transaction checked")
		return nil
	}).Times(1)

	var reply name.CheckReply
	err = e.service.Check(&name.CheckArguments{Transaction: packed}, &reply)
	assert.Nil(t, err, "wrong Check")
	assert.Equal(t, tx.TxHash().String(), reply.TxID, "wrong txid")
	assert.Equal(t, "name_update", reply.Operation, "wrong operation")
	assert.Equal(t, "d/alice", reply.Name, "wrong name")
	assert.Equal(t, []string{
		"name_update: d/alice to " + owner,
		"network fee",
		"51",
	}, reply.Outputs, "wrong outputs")

	e.checker.EXPECT().Check(gomock.Any()).Return(fault.ErrNameMismatch).Times(1)
	err = e.service.Check(&name.CheckArguments{Transaction: packed}, &reply)
	assert.Equal(t, fault.ErrNameMismatch, err, "wrong rejection")

	err = e.service.Check(&name.CheckArguments{Transaction: "zz"}, &reply)
	assert.Equal(t, fault.ErrInvalidHex, err, "accepted bad hex")

	err = e.service.Check(&name.CheckArguments{Transaction: "0100"}, &reply)
	assert.Equal(t, fault.ErrInvalidTransaction, err, "accepted truncated transaction")

	err = e.service.Check(&name.CheckArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "accepted blank transaction")
}
