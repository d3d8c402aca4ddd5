// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/validation"
)

func TestBlockRecord(t *testing.T) {
	ref := validation.BlockRef{
		Hash:     chainhash.Hash{1, 2, 3},
		Previous: chainhash.Hash{4, 5, 6},
		Height:   77,
	}
	unpacked, err := unpackBlock(77, packBlock(ref))
	assert.Nil(t, err)
	assert.Equal(t, ref, unpacked)

	_, err = unpackBlock(77, packBlock(ref)[1:])
	assert.True(t, fault.IsErrStorage(err), "error: %v", err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}, heightKey(0x0102))

	op := wire.OutPoint{Hash: chainhash.Hash{0xaa}, Index: 0x01020304}
	key := outpointKey(op)
	assert.Equal(t, outpointSize, len(key))
	assert.Equal(t, byte(0xaa), key[0])
	assert.Equal(t, []byte{1, 2, 3, 4}, key[chainhash.HashSize:])

	// keys of one block sort by transaction index
	a := transactionKey(chainhash.Hash{0xbb}, 2)
	b := transactionKey(chainhash.Hash{0xbb}, 256)
	assert.Equal(t, -1, bytes.Compare(a, b))
}

func TestNameOutputRecord(t *testing.T) {
	o := nameOutput{
		height: 1234,
		block:  chainhash.Hash{9},
		script: []byte{0x51, 0x01, 0xff, 0x6d},
	}
	unpacked, err := unpackNameOutput(o.pack())
	assert.Nil(t, err)
	assert.Equal(t, o, unpacked)

	p := o.previous()
	assert.Equal(t, o.script, p.PkScript)
	assert.Equal(t, &validation.Confirmation{Block: o.block, Height: 1234}, p.Confirmed)

	_, err = unpackNameOutput(make([]byte, 39))
	assert.True(t, fault.IsErrStorage(err), "error: %v", err)
}

func TestUndoRecord(t *testing.T) {
	key1 := outpointKey(wire.OutPoint{Hash: chainhash.Hash{1}, Index: 0})
	key2 := outpointKey(wire.OutPoint{Hash: chainhash.Hash{2}, Index: 5})
	key3 := outpointKey(wire.OutPoint{Hash: chainhash.Hash{3}, Index: 1})

	items := []undo{
		{},
		{
			spent: []spentOutput{
				{key: key1, record: []byte("record one")},
				{key: key2, record: bytes.Repeat([]byte{7}, 300)},
			},
		},
		{
			spent:   []spentOutput{{key: key1, record: []byte{}}},
			created: [][]byte{key2, key3},
		},
	}

	for i, u := range items {
		packed := u.pack()
		unpacked, err := unpackUndo(packed)
		assert.Nil(t, err, "%d", i)
		assert.Equal(t, len(u.spent), len(unpacked.spent), "%d", i)
		assert.Equal(t, len(u.created), len(unpacked.created), "%d", i)
		for j := range u.spent {
			assert.Equal(t, u.spent[j].key, unpacked.spent[j].key, "%d.%d", i, j)
			assert.Equal(t, u.spent[j].record, unpacked.spent[j].record, "%d.%d", i, j)
		}
		for j := range u.created {
			assert.Equal(t, u.created[j], unpacked.created[j], "%d.%d", i, j)
		}

		if len(packed) > 2 {
			_, err = unpackUndo(packed[:len(packed)-1])
			assert.True(t, fault.IsErrStorage(err), "%d: truncated: %v", i, err)
		}
	}

	_, err := unpackUndo(nil)
	assert.True(t, fault.IsErrStorage(err))
}
