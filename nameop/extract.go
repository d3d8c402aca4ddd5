// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/nameregd/fault"
)

// IsNameTransaction - true if the transaction version marks it as a name transaction
func IsNameTransaction(tx *wire.MsgTx) bool {
	return NameTransactionVersion == tx.Version
}

// Extract - find the single name operation among the outputs
//
// returns the operation and the index of its output; more than one
// name output is ambiguous and treated as no name operation
func Extract(tx *wire.MsgTx) (*Operation, int, error) {
	var found *Operation
	index := -1

	for i, out := range tx.TxOut {
		op, _, ok := Decode(out.PkScript)
		if !ok {
			continue
		}
		if nil != found {
			return nil, -1, fault.ErrMultipleNameOutputs
		}
		found = op
		index = i
	}
	if nil == found {
		return nil, -1, fault.ErrMissingNameOutput
	}
	return found, index, nil
}

// IsNetworkFeeScript - a script consisting of a lone OP_RETURN
func IsNetworkFeeScript(script []byte) bool {
	return 1 == len(script) && txscript.OP_RETURN == script[0]
}

// NetworkFee - total value burned to provably unspendable outputs
func NetworkFee(tx *wire.MsgTx) int64 {
	fee := int64(0)
	for _, out := range tx.TxOut {
		if IsNetworkFeeScript(out.PkScript) {
			fee += out.Value
		}
	}
	return fee
}

// ValueOf - the value carried by a name transaction, if any
func ValueOf(tx *wire.MsgTx) ([]byte, bool) {
	if !IsNameTransaction(tx) {
		return nil, false
	}
	op, _, err := Extract(tx)
	if nil != err || New == op.Kind {
		return nil, false
	}
	return op.Value(), true
}

// OutputIndex - index of the single name output, -1 if there is none
func OutputIndex(tx *wire.MsgTx) int {
	_, index, err := Extract(tx)
	if nil != err {
		return -1
	}
	return index
}
