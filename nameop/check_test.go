// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/nameop"
)

func repeat(n int) []byte {
	return bytes.Repeat([]byte{'x'}, n)
}

func TestCheck(t *testing.T) {
	items := []struct {
		op  nameop.Operation
		err error
	}{
		{nameop.Operation{Kind: nameop.New, Arguments: [][]byte{repeat(20)}}, nil},
		{nameop.Operation{Kind: nameop.New, Arguments: [][]byte{repeat(19)}}, fault.ErrInvalidCommitmentLength},
		{nameop.Operation{Kind: nameop.New, Arguments: [][]byte{repeat(21)}}, fault.ErrInvalidCommitmentLength},
		{nameop.Operation{Kind: nameop.FirstUpdate, Arguments: [][]byte{repeat(255), repeat(20), repeat(1023)}}, nil},
		{nameop.Operation{Kind: nameop.FirstUpdate, Arguments: [][]byte{repeat(256), repeat(8), repeat(1)}}, fault.ErrNameTooLong},
		{nameop.Operation{Kind: nameop.FirstUpdate, Arguments: [][]byte{repeat(5), repeat(21), repeat(1)}}, fault.ErrSaltTooLong},
		{nameop.Operation{Kind: nameop.FirstUpdate, Arguments: [][]byte{repeat(5), repeat(8), repeat(1024)}}, fault.ErrValueTooLong},
		{nameop.Operation{Kind: nameop.Update, Arguments: [][]byte{repeat(255), repeat(1023)}}, nil},
		{nameop.Operation{Kind: nameop.Update, Arguments: [][]byte{repeat(256), repeat(1)}}, fault.ErrNameTooLong},
		{nameop.Operation{Kind: nameop.Update, Arguments: [][]byte{repeat(5), repeat(1024)}}, fault.ErrValueTooLong},
		{nameop.Operation{Kind: nameop.Kind(9), Arguments: [][]byte{repeat(5)}}, fault.ErrUnknownNameOperation},
	}

	for i, item := range items {
		assert.Equal(t, item.err, item.op.Check(), "%d: %s", i, item.op.Kind)
	}
}

func TestCheckTransaction(t *testing.T) {
	good := nameTransaction(updateScript("d/alice", "hello"))
	assert.Nil(t, nameop.CheckTransaction(good))

	long := nameTransaction(updateScript("d/alice", string(repeat(1024))))
	assert.Equal(t, fault.ErrValueTooLong, nameop.CheckTransaction(long))

	missing := nameTransaction(spending)
	assert.Equal(t, fault.ErrInvalidNameScript, nameop.CheckTransaction(missing))

	double := nameTransaction(updateScript("a", "1"), updateScript("b", "2"))
	assert.Equal(t, fault.ErrInvalidNameScript, nameop.CheckTransaction(double))

	plain := wire.NewMsgTx(1)
	plain.AddTxOut(wire.NewTxOut(1, spending))
	assert.Nil(t, nameop.CheckTransaction(plain), "plain transactions are not checked")
}
