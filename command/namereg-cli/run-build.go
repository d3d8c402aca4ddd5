// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runNew(c *cli.Context) error {

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

	reply, err := client.New(name, c.String("address"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runFirstUpdate(c *cli.Context) error {

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

	reply, err := client.FirstUpdate(name, c.String("salt"), c.String("value"), c.String("address"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runUpdate(c *cli.Context) error {

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

	reply, err := client.Update(name, c.String("value"), c.String("address"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runCheck(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	tx, err := checkTransaction(c.String("transaction"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Check(tx)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
