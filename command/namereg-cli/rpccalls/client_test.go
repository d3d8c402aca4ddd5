// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/chain"
	"github.com/bitmark-inc/nameregd/counter"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/fixtures"
	"github.com/bitmark-inc/nameregd/mode"
	"github.com/bitmark-inc/nameregd/mynames"
	"github.com/bitmark-inc/nameregd/names"
	namesmocks "github.com/bitmark-inc/nameregd/names/mocks"
	"github.com/bitmark-inc/nameregd/rpc/name/mocks"
	"github.com/bitmark-inc/nameregd/rpc/server"
	"github.com/bitmark-inc/nameregd/validation"
)

func setupClient(t *testing.T, ctl *gomock.Controller, verbose bool) (*Client, *mocks.MockQuery, *namesmocks.MockTip, *bytes.Buffer) {
	log := logger.New(fixtures.LogCategory)

	query := mocks.NewMockQuery(ctl)
	tip := namesmocks.NewMockTip(ctl)
	wallet, err := mynames.New(log, "", nil)
	assert.Nil(t, err, "wrong mynames")

	c := counter.Counter(0)
	s := server.Create(log, "2.1", &c, server.Services{
		Query:          query,
		Checker:        mocks.NewMockChecker(ctl),
		Wallet:         wallet,
		Tip:            tip,
		AddressVersion: chain.AddressVersion(chain.Local),
	})

	serverSide, clientSide := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverSide))

	out := &bytes.Buffer{}
	return newClient(clientSide, verbose, out), query, tip, out
}

func TestGetInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_ = mode.Initialise(chain.Local)
	defer mode.Finalise()

	client, _, tip, out := setupClient(t, ctl, false)
	defer client.Close()

	tip.EXPECT().Tip().Return(validation.BlockRef{Height: 99}).Times(1)

	reply, err := client.GetInfo()
	assert.Nil(t, err, "wrong GetInfo")
	assert.Equal(t, uint64(99), reply.Block.Height, "wrong height")
	assert.Equal(t, "2.1", reply.Version, "wrong version")
	assert.Equal(t, 0, out.Len(), "unexpected verbose output")
}

func TestShowVerbose(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_ = mode.Initialise(chain.Local)
	defer mode.Finalise()

	client, query, _, out := setupClient(t, ctl, true)
	defer client.Close()

	query.EXPECT().CurrentValue([]byte("d/example")).Return(&names.Value{
		Name:      []byte("d/example"),
		Value:     []byte("hello"),
		Height:    150,
		ExpiresIn: 11950,
	}, nil).Times(1)

	reply, err := client.Show("d/example", false)
	assert.Nil(t, err, "wrong Show")
	assert.Equal(t, "hello", reply.Value, "wrong value")
	assert.Equal(t, uint64(150), reply.Height, "wrong height")
	assert.Contains(t, out.String(), "Name.Show:", "missing request")
	assert.Contains(t, out.String(), "reply:", "missing reply")
}

func TestShowHexName(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_ = mode.Initialise(chain.Local)
	defer mode.Finalise()

	client, query, _, _ := setupClient(t, ctl, false)
	defer client.Close()

	binary := []byte{0xff, 0xfe, 0x00}
	query.EXPECT().CurrentValue(binary).Return(&names.Value{
		Name:   binary,
		Value:  []byte{0xc0},
		Height: 150,
	}, nil).Times(1)

	reply, err := client.Show("fffe00", true)
	assert.Nil(t, err, "wrong Show")
	assert.Equal(t, "fffe00", reply.NameHex, "wrong name hex")
	assert.Equal(t, "c0", reply.ValueHex, "wrong value hex")

	query.EXPECT().Scan([]byte{0xff}, 2).Return([]names.Entry{
		{Name: binary, Value: []byte{0xc0}, ExpiresIn: 10},
	}, nil).Times(1)

	scanned, err := client.Scan("ff", true, 2)
	assert.Nil(t, err, "wrong Scan")
	assert.Equal(t, 1, len(scanned.Names), "wrong entry count")
	assert.Equal(t, "fffe00", scanned.Names[0].NameHex, "wrong scanned name")
	assert.Equal(t, int64(10), scanned.Names[0].ExpiresIn, "wrong scanned expiry")
}

func TestFee(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_ = mode.Initialise(chain.Local)
	defer mode.Finalise()

	client, query, _, _ := setupClient(t, ctl, false)
	defer client.Close()

	query.EXPECT().MinimumFee(uint64(500)).Return(int64(3 * fee.Cent)).Times(1)

	reply, err := client.Fee(500)
	assert.Nil(t, err, "wrong Fee")
	assert.Equal(t, int64(3*fee.Cent), reply.Fee, "wrong fee")
}
