// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/util"
)

// Position - where a confirmed transaction is in the chain
type Position struct {
	Block  chainhash.Hash `json:"block"`
	Height uint64         `json:"height"`
	Index  uint32         `json:"index"`
}

// History - the positions of the name operations of one name, oldest first
type History []Position

func (p Position) String() string {
	return fmt.Sprintf("%d:%d@%s", p.Height, p.Index, p.Block)
}

// Pack - block hash ++ varint(height) ++ varint(index)
func (p Position) Pack() []byte {
	buffer := make([]byte, 0, chainhash.HashSize+2*util.Varint64MaximumBytes)
	buffer = append(buffer, p.Block[:]...)
	buffer = append(buffer, util.ToVarint64(p.Height)...)
	return append(buffer, util.ToVarint64(uint64(p.Index))...)
}

// UnpackPosition - decode one position and return the rest of the buffer
func UnpackPosition(buffer []byte) (Position, []byte, error) {
	p := Position{}
	if len(buffer) < chainhash.HashSize {
		return p, nil, fault.ErrInvalidPosition
	}
	copy(p.Block[:], buffer[:chainhash.HashSize])

	height, rest, ok := util.SplitVarint64(buffer[chainhash.HashSize:])
	if !ok {
		return p, nil, fault.ErrInvalidPosition
	}
	index, rest, ok := util.SplitVarint64(rest)
	if !ok || index > 0xffffffff {
		return p, nil, fault.ErrInvalidPosition
	}

	p.Height = height
	p.Index = uint32(index)
	return p, rest, nil
}

// Pack - varint(count) ++ positions
func (h History) Pack() []byte {
	buffer := util.ToVarint64(uint64(len(h)))
	for _, p := range h {
		buffer = append(buffer, p.Pack()...)
	}
	return buffer
}

// UnpackHistory - decode a complete history record
func UnpackHistory(buffer []byte) (History, error) {
	count, rest, ok := util.SplitVarint64(buffer)
	if !ok || count > uint64(len(rest)) {
		return nil, errors.Wrap(fault.ErrStorageCorrupt, "history count")
	}

	h := make(History, 0, count)
	for i := uint64(0); i < count; i += 1 {
		var p Position
		var err error
		p, rest, err = UnpackPosition(rest)
		if nil != err {
			return nil, errors.Wrapf(fault.ErrStorageCorrupt, "history position: %d", i)
		}
		h = append(h, p)
	}
	if 0 != len(rest) {
		return nil, errors.Wrapf(fault.ErrStorageCorrupt, "history has %d trailing bytes", len(rest))
	}
	return h, nil
}

// Last - the most recent position
func (h History) Last() (Position, bool) {
	if 0 == len(h) {
		return Position{}, false
	}
	return h[len(h)-1], true
}
