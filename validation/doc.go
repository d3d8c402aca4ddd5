// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validation - consensus rules for name transactions
//
// per name state is derived from the registry history and the chain:
//
//	Unclaimed -> Reserved  name_new commits hash160(salt ++ name)
//	Reserved  -> Active    name_firstupdate reveals salt and name
//	Active    -> Active    name_update renews the name
//	Active    -> Expired   no operation for ExpirationDepth blocks
//	Expired   -> Reserved  the cycle restarts
//
// The engine keeps no state of its own.  Callers serialise all
// connects and disconnects under one lock and pass the storage
// transaction of the block being processed; the registry is only
// written in Connect mode.
package validation
