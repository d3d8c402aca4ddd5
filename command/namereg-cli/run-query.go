// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/nameregd/command/namereg-cli/rpccalls"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.String("name"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Show(name, c.Bool("hex"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runScan(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count, err := checkRecordCount(c.String("count"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Scan(c.String("start"), c.Bool("hex"), count)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count, err := checkRecordCount(c.String("count"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.List(c.String("start"), c.Bool("hex"), count)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runFee(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	height, err := checkHeight(c.String("height"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Fee(height)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
