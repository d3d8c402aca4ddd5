// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"net/url"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/nameregd/fault"
)

// defaults
const (
	DefaultPollInterval = 10 * time.Second
	DefaultBatch        = 100
)

// Configuration - connection to the ledger node
type Configuration struct {
	URL          string `gluamapper:"url" json:"url"`
	Username     string `gluamapper:"username" json:"username"`
	Password     string `gluamapper:"password" json:"password"`
	DisableTLS   bool   `gluamapper:"disable_tls" json:"disable_tls"`
	PollInterval int    `gluamapper:"poll_interval" json:"poll_interval"` // seconds
	Batch        int    `gluamapper:"batch" json:"batch"`                 // blocks per poll
}

//go:generate mockgen -source=node.go -destination=mocks/node.go -package=mocks

// Node - the block source
type Node interface {
	GetBlockCount() (int64, error)
	GetBlockHash(int64) (*chainhash.Hash, error)
	GetBlock(*chainhash.Hash) (*wire.MsgBlock, error)
}

// NewNode - JSON-RPC connection to a ledger node
//
// the client uses HTTP POST mode so no websocket notifications are
// needed, blocks are found by polling
func NewNode(conf Configuration) (*rpcclient.Client, error) {
	u, err := url.Parse(conf.URL)
	if nil != err || "" == u.Host {
		return nil, fault.ErrInvalidNodeURL
	}

	connection := &rpcclient.ConnConfig{
		Host:         u.Host,
		Endpoint:     u.Path,
		User:         conf.Username,
		Pass:         conf.Password,
		HTTPPostMode: true,
		DisableTLS:   conf.DisableTLS || "http" == u.Scheme,
	}
	return rpcclient.New(connection, nil)
}

func (conf Configuration) interval() time.Duration {
	if conf.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(conf.PollInterval) * time.Second
}

func (conf Configuration) batch() int {
	if conf.Batch <= 0 {
		return DefaultBatch
	}
	return conf.Batch
}
