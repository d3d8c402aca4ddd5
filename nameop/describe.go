// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"encoding/hex"
)

// Describe - a one line label for an output script
//
// returns false for scripts that are neither a network fee, a name
// operation nor pay-to-pubkey-hash
func Describe(script []byte, addressVersion byte) (string, bool) {
	if IsNetworkFeeScript(script) {
		return "network fee", true
	}

	label := ""
	spending := script
	op, consumed, ok := Decode(script)
	if ok {
		spending = script[consumed:]
		if New == op.Kind {
			label = op.Kind.String() + ": " + hex.EncodeToString(op.Commitment())
		} else {
			label = op.Kind.String() + ": " + string(op.Name())
		}
	}

	hash, isAddress := PubKeyHash(spending)
	switch {
	case ok && isAddress:
		return label + " to " + EncodeAddress(addressVersion, hash), true
	case ok:
		return label, true
	case isAddress:
		return EncodeAddress(addressVersion, hash), true
	default:
		return "", false
	}
}
