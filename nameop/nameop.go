// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nameop - name operations carried in transaction output scripts
//
// A name output script is a prefix
//
//	<kind> <argument> ... <drop opcodes>
//
// followed by an ordinary spending script.  The kind is a small
// integer opcode, each argument is a data push and the drops remove
// the kind and the arguments from the stack so the spending script
// executes unchanged.
package nameop

import (
	"fmt"
)

// NameTransactionVersion - transaction version marking a name transaction
const NameTransactionVersion = 0x7100

// argument limits
const (
	MaximumNameLength  = 255
	MaximumValueLength = 1023
	CommitmentLength   = 20
	MaximumSaltLength  = 20
)

// Kind - the operation carried by a name script
type Kind uint8

// all possible kinds
const (
	New         Kind = 1
	FirstUpdate Kind = 2
	Update      Kind = 3
)

// number of arguments required by each kind
var arity = map[Kind]int{
	New:         1,
	FirstUpdate: 3,
	Update:      2,
}

func (k Kind) String() string {
	switch k {
	case New:
		return "name_new"
	case FirstUpdate:
		return "name_firstupdate"
	case Update:
		return "name_update"
	default:
		return fmt.Sprintf("name_op(%d)", uint8(k))
	}
}

// Operation - a decoded name operation
//
// after a successful decode the argument count always matches the
// kind so the accessors need not check lengths
type Operation struct {
	Kind      Kind
	Arguments [][]byte
}

// Commitment - hash160(salt ++ name) of a New
func (op *Operation) Commitment() []byte {
	if New != op.Kind {
		return nil
	}
	return op.Arguments[0]
}

// Name - the name of a FirstUpdate or Update
func (op *Operation) Name() []byte {
	if New == op.Kind {
		return nil
	}
	return op.Arguments[0]
}

// Salt - the revealed salt of a FirstUpdate
func (op *Operation) Salt() []byte {
	if FirstUpdate != op.Kind {
		return nil
	}
	return op.Arguments[1]
}

// Value - the value of a FirstUpdate or Update
func (op *Operation) Value() []byte {
	switch op.Kind {
	case FirstUpdate:
		return op.Arguments[2]
	case Update:
		return op.Arguments[1]
	default:
		return nil
	}
}
