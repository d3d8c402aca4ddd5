// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

const defaultConnect = "127.0.0.1:2130"

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "namereg-cli"
	app.Usage = "query and build name registry transactions"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " nameregd RPC `HOST:PORT`",
			EnvVar: "NAMEREG_CONNECT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "display nameregd status",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "show",
			Usage:     "display the current value of a name",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*registered `NAME`",
				},
				cli.BoolFlag{
					Name:  "hex, x",
					Usage: " `NAME` is hex encoded",
				},
			},
			Action: runShow,
		},
		{
			Name:      "scan",
			Usage:     "list registered names in order",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " first `NAME` to list",
				},
				cli.BoolFlag{
					Name:  "hex, x",
					Usage: " `NAME` is hex encoded",
				},
				cli.StringFlag{
					Name:  "count, n",
					Value: "",
					Usage: " number of names to list `COUNT`",
				},
			},
			Action: runScan,
		},
		{
			Name:      "list",
			Usage:     "list names owned or reserved by nameregd",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " first `NAME` to list",
				},
				cli.BoolFlag{
					Name:  "hex, x",
					Usage: " `NAME` is hex encoded",
				},
				cli.StringFlag{
					Name:  "count, n",
					Value: "",
					Usage: " number of names to list `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "new",
			Usage:     "create a name_new output script and reserve its salt",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*name to reserve `NAME`",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: " owner `ADDRESS`",
				},
			},
			Action: runNew,
		},
		{
			Name:      "firstupdate",
			Usage:     "create a name_firstupdate output script",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*reserved `NAME`",
				},
				cli.StringFlag{
					Name:  "salt, s",
					Value: "",
					Usage: " hex `SALT` from name_new [default: reserved salt]",
				},
				cli.StringFlag{
					Name:  "value, d",
					Value: "",
					Usage: " initial `VALUE`",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: " owner `ADDRESS`",
				},
			},
			Action: runFirstUpdate,
		},
		{
			Name:      "update",
			Usage:     "create a name_update output script",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*registered `NAME`",
				},
				cli.StringFlag{
					Name:  "value, d",
					Value: "",
					Usage: " new `VALUE`",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: " new owner `ADDRESS`",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "fee",
			Usage:     "display the network fee for a name_firstupdate",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "height, b",
					Value: "",
					Usage: " block `HEIGHT` [default: next block]",
				},
			},
			Action: runFee,
		},
		{
			Name:      "check",
			Usage:     "check a signed transaction against the memory pool rules",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "transaction, t",
					Value: "",
					Usage: "*hex encoded `TX`",
				},
			},
			Action: runCheck,
		},
		{
			Name:      "version",
			Usage:     "display namereg-cli version",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		connect := c.GlobalString("connect")
		if "" == connect {
			return ErrRequiredConnect
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	if err := app.Run(os.Args); nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
