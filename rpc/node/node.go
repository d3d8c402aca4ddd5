// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC service reporting the state of this node
package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/nameregd/counter"
	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/mode"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

//go:generate mockgen -source=node.go -destination=mocks/node.go -package=mocks

// Owned - size of the local name index
type Owned interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	tip     names.Tip
	owned   Owned
	counter *counter.Counter
}

// New - create the node RPC service
func New(log *logger.L, tip names.Tip, owned Owned, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		tip:     tip,
		owned:   owned,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string    `json:"chain"`
	Mode    string    `json:"mode"`
	Block   BlockInfo `json:"block"`
	RPCs    uint64    `json:"rpcs"`
	MyNames int       `json:"myNames"`
	Version string    `json:"version"`
	Uptime  string    `json:"uptime"`
}

// BlockInfo - the highest block connected to the registry
type BlockInfo struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.tip {
		return fault.ErrDatabaseIsNotSet
	}

	tip := node.tip.Tip()

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Block = BlockInfo{
		Height: tip.Height,
		Hash:   tip.Hash.String(),
	}
	reply.RPCs = node.counter.Uint64()
	if nil != node.owned {
		reply.MyNames = node.owned.Count()
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()

	return nil
}
