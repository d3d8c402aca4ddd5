// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/nameregd/fault"
)

// Check - argument length limits of a decoded operation
func (op *Operation) Check() error {
	if len(op.Arguments[0]) > MaximumNameLength {
		return fault.ErrNameTooLong
	}

	switch op.Kind {
	case New:
		if CommitmentLength != len(op.Arguments[0]) {
			return fault.ErrInvalidCommitmentLength
		}
	case FirstUpdate:
		if len(op.Arguments[1]) > MaximumSaltLength {
			return fault.ErrSaltTooLong
		}
		if len(op.Arguments[2]) > MaximumValueLength {
			return fault.ErrValueTooLong
		}
	case Update:
		if len(op.Arguments[1]) > MaximumValueLength {
			return fault.ErrValueTooLong
		}
	default:
		return fault.ErrUnknownNameOperation
	}
	return nil
}

// CheckTransaction - structural validation independent of chain state
//
// transactions without the name version are not checked
func CheckTransaction(tx *wire.MsgTx) error {
	if !IsNameTransaction(tx) {
		return nil
	}

	op, _, err := Extract(tx)
	if nil != err {
		return fault.ErrInvalidNameScript
	}
	return op.Check()
}
