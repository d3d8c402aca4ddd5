// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/nameregd/rpc/name"
)

// Show - current value of a name, isHex selects hex encoded input
func (client *Client) Show(n string, isHex bool) (*name.ShowReply, error) {
	arguments := name.ShowArguments{}
	if isHex {
		arguments.NameHex = n
	} else {
		arguments.Name = n
	}
	var reply name.ShowReply
	if err := client.call("Name.Show", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Scan - registered names in order from start
func (client *Client) Scan(start string, isHex bool, count int) (*name.ScanReply, error) {
	arguments := scanArguments(start, isHex, count)
	var reply name.ScanReply
	if err := client.call("Name.Scan", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - names owned or reserved by the node
func (client *Client) List(start string, isHex bool, count int) (*name.ListReply, error) {
	arguments := scanArguments(start, isHex, count)
	var reply name.ListReply
	if err := client.call("Name.List", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

func scanArguments(start string, isHex bool, count int) name.ScanArguments {
	if isHex {
		return name.ScanArguments{StartHex: start, Count: count}
	}
	return name.ScanArguments{Start: start, Count: count}
}

// New - name_new script and salt
func (client *Client) New(n string, address string) (*name.NewReply, error) {
	arguments := name.NewArguments{
		Name:    n,
		Address: address,
	}
	var reply name.NewReply
	if err := client.call("Name.New", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// FirstUpdate - name_firstupdate script
//
// a blank salt is looked up in the node's reservations
func (client *Client) FirstUpdate(n string, salt string, value string, address string) (*name.UpdateReply, error) {
	arguments := name.FirstUpdateArguments{
		Name:    n,
		Salt:    salt,
		Value:   value,
		Address: address,
	}
	var reply name.UpdateReply
	if err := client.call("Name.FirstUpdate", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Update - name_update script
func (client *Client) Update(n string, value string, address string) (*name.UpdateReply, error) {
	arguments := name.UpdateArguments{
		Name:    n,
		Value:   value,
		Address: address,
	}
	var reply name.UpdateReply
	if err := client.call("Name.Update", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Fee - network fee at a height, zero for the next block
func (client *Client) Fee(height uint64) (*name.FeeReply, error) {
	var reply name.FeeReply
	if err := client.call("Name.Fee", name.FeeArguments{Height: height}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Check - test a raw transaction against the memory pool rules
func (client *Client) Check(transaction string) (*name.CheckReply, error) {
	var reply name.CheckReply
	if err := client.call("Name.Check", name.CheckArguments{Transaction: transaction}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
