// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/background"
	"github.com/bitmark-inc/nameregd/chain"
	"github.com/bitmark-inc/nameregd/ledger"
	"github.com/bitmark-inc/nameregd/mode"
	"github.com/bitmark-inc/nameregd/mynames"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/registry"
	"github.com/bitmark-inc/nameregd/rpc"
	"github.com/bitmark-inc/nameregd/rpc/server"
	"github.com/bitmark-inc/nameregd/storage"
	"github.com/bitmark-inc/nameregd/validation"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// KEY=VALUE pairs become globals in the configuration script
	variables := make(map[string]string)
	for _, d := range options["define"] {
		kv := strings.SplitN(d, "=", 2)
		if 2 != len(kv) || "" == kv[0] {
			exitwithstatus.Message("%s: invalid define: %q", program, d)
		}
		variables[kv[0]] = kv[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	testing := mode.IsTesting()
	addressVersion := chain.AddressVersion(mode.ChainName())

	log.Infof("test mode: %v", testing)
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Ledger", theConfiguration.Ledger.URL)

	// addresses whose names are tracked locally
	owned := make([][]byte, 0, len(theConfiguration.MyNames.Addresses))
	for _, address := range theConfiguration.MyNames.Addresses {
		hash, err := nameop.DecodeAddress(addressVersion, address)
		if nil != err {
			log.Criticalf("my_names address: %q  error: %s", address, err)
			exitwithstatus.Message("my_names address: %q  error: %s", address, err)
		}
		owned = append(owned, hash)
	}

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Engine, theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// all registry readers share the read side of this lock with
	// the follower holding the write side while a block connects
	chainLock := &sync.RWMutex{}

	nameRegistry := registry.New(logger.New("registry"), storage.Pool.Names)
	index := ledger.NewIndex(logger.New("index"))
	engine := validation.New(logger.New("validation"), nameRegistry, index, testing)

	query, err := names.New(logger.New("names"), chainLock.RLocker(), nameRegistry, index, index, testing)
	if nil != err {
		log.Criticalf("names initialise error: %s", err)
		exitwithstatus.Message("names initialise error: %s", err)
	}

	log.Info("initialise my names")
	myNames, err := mynames.New(logger.New("mynames"), theConfiguration.MyNames.File, owned)
	if nil != err {
		log.Criticalf("my names initialise error: %s", err)
		exitwithstatus.Message("my names initialise error: %s", err)
	}
	defer func() {
		if err := myNames.Save(); nil != err {
			log.Errorf("my names save error: %s", err)
		}
	}()

	// connect to the ledger node
	log.Info("initialise ledger")
	node, err := ledger.NewNode(theConfiguration.Ledger)
	if nil != err {
		log.Criticalf("ledger node error: %s", err)
		exitwithstatus.Message("ledger node error: %s", err)
	}
	defer node.Shutdown()

	follower := ledger.New(logger.New("ledger"), theConfiguration.Ledger, node, engine, index, chainLock, myNames)

	processes := background.Start(background.Processes{follower}, nil)
	defer processes.Stop()

	// start up the rpc background processes
	services := server.Services{
		Query:          query,
		Checker:        follower,
		Wallet:         myNames,
		Tip:            index,
		AddressVersion: addressVersion,
	}
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, services)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
