// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop_test

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/nameop"
)

func nameTransaction(scripts ...[]byte) *wire.MsgTx {
	tx := wire.NewMsgTx(nameop.NameTransactionVersion)
	for _, s := range scripts {
		tx.AddTxOut(wire.NewTxOut(1000000, s))
	}
	return tx
}

func updateScript(name string, value string) []byte {
	op := &nameop.Operation{
		Kind:      nameop.Update,
		Arguments: [][]byte{[]byte(name), []byte(value)},
	}
	return op.Script(spending)
}

func TestExtract(t *testing.T) {
	tx := nameTransaction(spending, updateScript("d/alice", "world"), []byte{txscript.OP_RETURN})

	op, index, err := nameop.Extract(tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, nameop.Update, op.Kind)
	assert.Equal(t, []byte("d/alice"), op.Name())

	assert.True(t, nameop.IsNameTransaction(tx))
	value, ok := nameop.ValueOf(tx)
	assert.True(t, ok)
	assert.Equal(t, []byte("world"), value)
	assert.Equal(t, 1, nameop.OutputIndex(tx))
}

func TestExtractAmbiguous(t *testing.T) {
	tx := nameTransaction(updateScript("d/alice", "one"), updateScript("d/bob", "two"))

	_, index, err := nameop.Extract(tx)
	assert.Equal(t, fault.ErrMultipleNameOutputs, err)
	assert.Equal(t, -1, index)

	_, ok := nameop.ValueOf(tx)
	assert.False(t, ok)
}

func TestExtractMissing(t *testing.T) {
	tx := nameTransaction(spending)

	_, _, err := nameop.Extract(tx)
	assert.Equal(t, fault.ErrMissingNameOutput, err)
	assert.Equal(t, -1, nameop.OutputIndex(tx))
}

func TestValueOfPlainTransaction(t *testing.T) {
	tx := wire.NewMsgTx(1)
	tx.AddTxOut(wire.NewTxOut(1000000, updateScript("d/alice", "one")))

	_, ok := nameop.ValueOf(tx)
	assert.False(t, ok, "value of a transaction without the name version")
}

func TestNetworkFee(t *testing.T) {
	tx := wire.NewMsgTx(nameop.NameTransactionVersion)
	tx.AddTxOut(wire.NewTxOut(100, []byte{txscript.OP_RETURN}))
	tx.AddTxOut(wire.NewTxOut(1000, spending))
	tx.AddTxOut(wire.NewTxOut(250, []byte{txscript.OP_RETURN}))
	// OP_RETURN followed by data is not a network fee
	tx.AddTxOut(wire.NewTxOut(5000, []byte{txscript.OP_RETURN, 0x01, 0x00}))

	assert.Equal(t, int64(350), nameop.NetworkFee(tx))
	assert.Equal(t, int64(0), nameop.NetworkFee(wire.NewMsgTx(nameop.NameTransactionVersion)))
}
