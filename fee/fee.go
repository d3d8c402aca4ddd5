// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fee - minimum network fee for registering a name
package fee

import (
	"github.com/btcsuite/btcd/btcutil"
)

// base units
const (
	Coin = 100000000
	Cent = 1000000
)

// MinimumAmount - value carried by a name output
const MinimumAmount = Cent

// fee at height zero
const (
	startLive    = 50 * Coin
	startTesting = 10 * Cent
)

const (
	halvingShift   = 13
	intervalLength = 1 << halvingShift
	taperShift     = 14
)

// Minimum - the smallest network fee a FirstUpdate confirmed at height must burn
//
// halves every 8192 blocks and decays linearly within each interval
func Minimum(height uint64, testing bool) int64 {
	start := uint64(startLive)
	if testing {
		start = startTesting
	}

	fee := uint64(0)
	if shift := height >> halvingShift; shift < 64 {
		fee = start >> shift
	}
	fee -= (fee >> taperShift) * (height % intervalLength)
	return int64(fee)
}

// RoundUp - round an amount up to a whole cent
func RoundUp(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return (amount + Cent - 1) / Cent * Cent
}

// Amount - an amount in coin units for display
func Amount(amount int64) float64 {
	return btcutil.Amount(amount).ToBTC()
}
