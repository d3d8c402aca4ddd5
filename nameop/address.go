// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/nameregd/fault"
)

const (
	pubKeyHashLength = 20
	checksumLength   = 4
)

// PubKeyHash - the key hash of a pay-to-pubkey-hash spending script
//
//	OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
func PubKeyHash(script []byte) ([]byte, bool) {
	if 25 != len(script) ||
		txscript.OP_DUP != script[0] ||
		txscript.OP_HASH160 != script[1] ||
		txscript.OP_DATA_20 != script[2] ||
		txscript.OP_EQUALVERIFY != script[23] ||
		txscript.OP_CHECKSIG != script[24] {
		return nil, false
	}
	return script[3:23], true
}

// PayToPubKeyHash - the standard spending script for a key hash
func PayToPubKeyHash(hash []byte) []byte {
	script := make([]byte, 0, 25)
	script = append(script, txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20)
	script = append(script, hash...)
	return append(script, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
}

// EncodeAddress - base58check of version ++ key hash
func EncodeAddress(version byte, hash []byte) string {
	payload := make([]byte, 0, 1+len(hash)+checksumLength)
	payload = append(payload, version)
	payload = append(payload, hash...)
	checksum := chainhash.DoubleHashB(payload)[:checksumLength]
	return base58.Encode(append(payload, checksum...))
}

// DecodeAddress - key hash from a base58check address of the given version
func DecodeAddress(version byte, address string) ([]byte, error) {
	decoded, err := base58.Decode(address)
	if nil != err {
		return nil, fault.ErrInvalidAddress
	}
	if 1+pubKeyHashLength+checksumLength != len(decoded) {
		return nil, fault.ErrInvalidAddress
	}
	payload := decoded[:1+pubKeyHashLength]
	checksum := chainhash.DoubleHashB(payload)[:checksumLength]
	if !bytes.Equal(checksum, decoded[1+pubKeyHashLength:]) {
		return nil, fault.ErrInvalidAddress
	}
	if version != payload[0] {
		return nil, fault.ErrWrongNetworkForAddress
	}
	return payload[1:], nil
}
