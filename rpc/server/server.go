// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/counter"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/rpc/name"
	"github.com/bitmark-inc/nameregd/rpc/node"
)

// Wallet - the local name index
type Wallet interface {
	name.Wallet
	node.Owned
}

// Services - collaborators shared by the RPC services
type Services struct {
	Query          name.Query
	Checker        name.Checker
	Wallet         Wallet
	Tip            names.Tip
	AddressVersion byte
}

// Create - an RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services Services) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(name.New(log, services.Query, services.Checker, services.Wallet, services.AddressVersion))
	_ = server.Register(node.New(log, services.Tip, services.Wallet, start, version, rpcCount))

	return server
}
