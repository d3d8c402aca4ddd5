// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/util"
	"github.com/bitmark-inc/nameregd/validation"
)

const (
	heightSize   = 8
	indexSize    = 4
	outpointSize = chainhash.HashSize + indexSize
	blockSize    = 2 * chainhash.HashSize
)

func heightKey(height uint64) []byte {
	key := make([]byte, heightSize)
	binary.BigEndian.PutUint64(key, height)
	return key
}

func outpointKey(op wire.OutPoint) []byte {
	key := make([]byte, outpointSize)
	copy(key, op.Hash[:])
	binary.BigEndian.PutUint32(key[chainhash.HashSize:], op.Index)
	return key
}

func transactionKey(block chainhash.Hash, index uint32) []byte {
	key := make([]byte, chainhash.HashSize+indexSize)
	copy(key, block[:])
	binary.BigEndian.PutUint32(key[chainhash.HashSize:], index)
	return key
}

// B record: block hash ++ previous block hash
func packBlock(ref validation.BlockRef) []byte {
	record := make([]byte, 0, blockSize)
	record = append(record, ref.Hash[:]...)
	return append(record, ref.Previous[:]...)
}

func unpackBlock(height uint64, record []byte) (validation.BlockRef, error) {
	ref := validation.BlockRef{
		Height: height,
	}
	if blockSize != len(record) {
		return ref, errors.Wrapf(fault.ErrStorageCorrupt, "block: %d  record length: %d", height, len(record))
	}
	copy(ref.Hash[:], record[:chainhash.HashSize])
	copy(ref.Previous[:], record[chainhash.HashSize:])
	return ref, nil
}

// an unspent output carrying a name script
type nameOutput struct {
	height uint64
	block  chainhash.Hash
	script []byte
}

// O record: height ++ block hash ++ script
func (o nameOutput) pack() []byte {
	record := make([]byte, 0, heightSize+chainhash.HashSize+len(o.script))
	record = append(record, heightKey(o.height)...)
	record = append(record, o.block[:]...)
	return append(record, o.script...)
}

func unpackNameOutput(record []byte) (nameOutput, error) {
	o := nameOutput{}
	if len(record) < heightSize+chainhash.HashSize {
		return o, errors.Wrapf(fault.ErrStorageCorrupt, "name output record length: %d", len(record))
	}
	o.height = binary.BigEndian.Uint64(record[:heightSize])
	copy(o.block[:], record[heightSize:heightSize+chainhash.HashSize])
	o.script = append([]byte{}, record[heightSize+chainhash.HashSize:]...)
	return o, nil
}

func (o nameOutput) previous() validation.PreviousOutput {
	return validation.PreviousOutput{
		PkScript: o.script,
		Confirmed: &validation.Confirmation{
			Block:  o.block,
			Height: o.height,
		},
	}
}

type spentOutput struct {
	key    []byte
	record []byte
}

// U record: what a block did to the name output set
type undo struct {
	spent   []spentOutput
	created [][]byte
}

func (u undo) pack() []byte {
	record := util.ToVarint64(uint64(len(u.spent)))
	for _, s := range u.spent {
		record = append(record, s.key...)
		record = append(record, util.ToVarint64(uint64(len(s.record)))...)
		record = append(record, s.record...)
	}
	record = append(record, util.ToVarint64(uint64(len(u.created)))...)
	for _, key := range u.created {
		record = append(record, key...)
	}
	return record
}

func unpackUndo(record []byte) (undo, error) {
	u := undo{}
	corrupt := errors.Wrapf(fault.ErrStorageCorrupt, "undo record: %x", record)

	n, rest, ok := util.SplitVarint64(record)
	if !ok {
		return u, corrupt
	}
	for i := uint64(0); i < n; i += 1 {
		if len(rest) < outpointSize {
			return u, corrupt
		}
		s := spentOutput{
			key: rest[:outpointSize],
		}
		length, r, ok := util.SplitVarint64(rest[outpointSize:])
		if !ok || uint64(len(r)) < length {
			return u, corrupt
		}
		s.record = r[:length]
		rest = r[length:]
		u.spent = append(u.spent, s)
	}

	n, rest, ok = util.SplitVarint64(rest)
	if !ok || uint64(len(rest)) != n*outpointSize {
		return u, corrupt
	}
	for i := uint64(0); i < n; i += 1 {
		u.created = append(u.created, rest[:outpointSize])
		rest = rest[outpointSize:]
	}
	return u, nil
}
