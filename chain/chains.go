// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names and parameters of the supported chains
package chain

// names of all chains
const (
	Namecoin = "namecoin"
	Testing  = "testing"
	Local    = "local"
)

// version bytes of pay-to-pubkey-hash addresses
const (
	namecoinAddressVersion = 52
	testingAddressVersion  = 111
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Namecoin, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - chains with reduced fees and test addresses
func IsTesting(name string) bool {
	return Testing == name || Local == name
}

// AddressVersion - base58check version byte for the chain
func AddressVersion(name string) byte {
	if IsTesting(name) {
		return testingAddressVersion
	}
	return namecoinAddressVersion
}
