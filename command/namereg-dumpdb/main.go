// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/chain"
	"github.com/bitmark-inc/nameregd/ledger"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1 = "\033[1;36m"
	keyColour2 = "\033[1;31m"
	valColour1 = "\033[1;33m"
	valColour2 = "\033[1;34m"
	endColour  = "\033[0m"
)

type colours struct {
	k1, k2, v1, v2, e string
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "names", HasArg: getoptions.NO_ARGUMENT, Short: 'n'},
		{Long: "early", HasArg: getoptions.NO_ARGUMENT, Short: 'e'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "engine", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'E'},
		{Long: "chain", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'C'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {

		// this will be a struct type
		poolType := reflect.TypeOf(storage.Pool)

		// print all available tags
		fmt.Printf(" tags:\n")
		for i := 0; i < poolType.NumField(); i += 1 {
			fieldInfo := poolType.Field(i)
			prefixTag := fieldInfo.Tag.Get("prefix")
			fmt.Printf("       %s → %s\n", prefixTag, fieldInfo.Name)
		}
		return
	}

	names := len(options["names"]) > 0

	if len(options["help"]) > 0 || (0 == len(arguments) && !names) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--engine=E] [--count=N] --file=FILE (tag [key-prefix] | --names [--chain=C] [start-name]) | --list", program)
	}

	earlyStop := len(options["early"]) > 0
	ascii := len(options["ascii"]) > 0
	verbose := len(options["verbose"]) > 0

	c := colours{}
	if len(options["colour"]) > 0 {
		c = colours{k1: keyColour1, k2: keyColour2, v1: valColour1, v2: valColour2, e: endColour}
	}

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	engine := storage.EngineLevelDB
	if len(options["engine"]) > 0 {
		engine = options["engine"][0]
	}

	chainName := chain.Namecoin
	if len(options["chain"]) > 0 {
		chainName = options["chain"][0]
		if !chain.Valid(chainName) {
			exitwithstatus.Message("%s: invalid chain: %q", program, chainName)
		}
	}

	filename := options["file"][0]
	if verbose {
		fmt.Printf("read: %s database: %q\n", engine, filename)
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "namereg-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// start of main processing
	err = storage.Initialise(engine, filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer storage.Finalise()

	if names {
		start := []byte(nil)
		if len(arguments) > 0 {
			start = []byte(arguments[0])
		}
		dumpNames(program, start, count, chain.AddressVersion(chainName), c)
		return
	}

	tag := arguments[0]
	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	dumpPool(program, tag, prefix, count, earlyStop, ascii, c)
}

// raw keys and values of one pool
func dumpPool(program string, tag string, prefix []byte, count int, earlyStop bool, ascii bool, c colours) {

	// this will be a struct type
	poolType := reflect.TypeOf(storage.Pool)

	// read-only access
	poolValue := reflect.ValueOf(storage.Pool)

	// scan each field to locate tag
	var p *storage.PoolHandle
tag_scan:
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if tag == prefixTag {
			p = poolValue.Field(i).Interface().(*storage.PoolHandle)
			break tag_scan
		}
	}
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	l := len(prefix)

print_loop:
	for i, e := range data {
		if earlyStop && len(e.Key) >= l && !bytes.Equal(prefix, e.Key[:l]) {
			fmt.Printf("*** early stop\n")
			break print_loop
		}

		fmt.Printf("%d: %sKey: %s%x%s\n", i, c.k1, c.k2, e.Key, c.e)
		if ascii {
			hexDump(fmt.Sprintf("%d: %sVal: %s", i, c.v1, c.v2), c.e, e.Value)
		} else {
			fmt.Printf("%d: %sVal: %s%x%s\n", i, c.v1, c.v2, e.Value, c.e)
		}
	}
}

// decoded registry rows with the transaction behind each position
func dumpNames(program string, start []byte, count int, addressVersion byte, c colours) {

	log := logger.New("dumpdb")
	r := registry.New(log, storage.Pool.Names)
	index := ledger.NewIndex(log)

	tip, found, err := index.Current()
	if nil != err {
		exitwithstatus.Message("%s: read tip error: %s", program, err)
	}
	if found {
		fmt.Printf("tip: %d  %s\n", tip.Height, tip.Hash)
	} else {
		fmt.Printf("tip: none\n")
	}

	rows, err := r.Scan(start, count)
	if nil != err {
		exitwithstatus.Message("%s: scan error: %s", program, err)
	}

	for i, row := range rows {
		fmt.Printf("%d: %sName: %s%q%s\n", i, c.k1, c.k2, row.Name, c.e)

		history, _, err := r.Read(row.Name)
		if nil != err {
			exitwithstatus.Message("%s: read name: %q error: %s", program, row.Name, err)
		}
		for _, p := range history {
			fmt.Printf("%d:   %sAt: %s%s%s\n", i, c.v1, c.v2, p, c.e)

			tx, err := index.Transaction(p)
			if nil != err {
				fmt.Printf("%d:     tx error: %s\n", i, err)
				continue
			}
			fmt.Printf("%d:     tx: %s\n", i, tx.TxHash())
			for n, out := range tx.TxOut {
				if label, ok := nameop.Describe(out.PkScript, addressVersion); ok {
					fmt.Printf("%d:     out[%d]: %d  %s\n", i, n, out.Value, label)
				}
			}
			if value, ok := nameop.ValueOf(tx); ok {
				fmt.Printf("%d:     value: %q\n", i, value)
			}
		}
	}
}

// dump hex data on stdout
func hexDump(prefix string, suffix string, data []byte) {
	address := 0
	const bytesPerLine = 32
	for i := 0; i < len(data); i += bytesPerLine {
		fmt.Printf("%s%04x  ", prefix, address)
		address += bytesPerLine
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				fmt.Printf(" ")
			}
			if i+j < len(data) {
				fmt.Printf("%02x ", data[i+j])
			} else {
				fmt.Printf("   ")
			}
		}
		fmt.Printf(" |")
	ascii_loop:
		for j := 0; j < bytesPerLine; j += 1 {
			if i+j < len(data) {
				c := data[i+j]
				if c < 32 || c >= 127 {
					c = '.'
				}
				fmt.Printf("%c", c)

			} else {
				break ascii_loop
			}
		}
		fmt.Printf("|%s\n", suffix)
	}
}
