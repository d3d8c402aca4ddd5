// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/nameregd/fault"
)

// common errors - keep in alphabetic order
var (
	ErrInvalidHeight       = fault.InvalidError("invalid block height")
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredName        = fault.InvalidError("name is required")
	ErrRequiredTransaction = fault.InvalidError("transaction is required")
)
