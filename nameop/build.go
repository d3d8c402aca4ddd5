// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/bitmark-inc/nameregd/fault"
)

// SaltLength - size of a freshly generated salt
const SaltLength = 8

// Commitment - hash160(salt ++ name)
func Commitment(salt []byte, name []byte) []byte {
	buffer := make([]byte, 0, len(salt)+len(name))
	buffer = append(buffer, salt...)
	buffer = append(buffer, name...)
	return btcutil.Hash160(buffer)
}

// Matches - true if a FirstUpdate reveals the salt and name of a commitment
func (op *Operation) Matches(commitment []byte) bool {
	if FirstUpdate != op.Kind {
		return false
	}
	return bytes.Equal(Commitment(op.Salt(), op.Name()), commitment)
}

// NewOperation - reserve a name with a random salt read from rand
//
// the salt must be kept to reveal the name later
func NewOperation(name []byte, rand io.Reader) (*Operation, []byte, error) {
	if len(name) > MaximumNameLength {
		return nil, nil, fault.ErrNameTooLong
	}
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand, salt); nil != err {
		return nil, nil, err
	}
	op := &Operation{
		Kind:      New,
		Arguments: [][]byte{Commitment(salt, name)},
	}
	return op, salt, nil
}

// FirstUpdateOperation - reveal a reserved name and set its value
func FirstUpdateOperation(name []byte, salt []byte, value []byte) (*Operation, error) {
	op := &Operation{
		Kind:      FirstUpdate,
		Arguments: [][]byte{name, salt, value},
	}
	if err := op.Check(); nil != err {
		return nil, err
	}
	return op, nil
}

// UpdateOperation - change the value of a registered name
func UpdateOperation(name []byte, value []byte) (*Operation, error) {
	op := &Operation{
		Kind:      Update,
		Arguments: [][]byte{name, value},
	}
	if err := op.Check(); nil != err {
		return nil, err
	}
	return op, nil
}

// BuildNewScript - name prefix and salt for a reservation
func BuildNewScript(name []byte, rand io.Reader) ([]byte, []byte, error) {
	op, salt, err := NewOperation(name, rand)
	if nil != err {
		return nil, nil, err
	}
	return op.Encode(), salt, nil
}

// BuildFirstUpdateScript - name prefix revealing a reservation
func BuildFirstUpdateScript(name []byte, salt []byte, value []byte) ([]byte, error) {
	op, err := FirstUpdateOperation(name, salt, value)
	if nil != err {
		return nil, err
	}
	return op.Encode(), nil
}

// BuildUpdateScript - name prefix changing a value
func BuildUpdateScript(name []byte, value []byte) ([]byte, error) {
	op, err := UpdateOperation(name, value)
	if nil != err {
		return nil, err
	}
	return op.Encode(), nil
}
