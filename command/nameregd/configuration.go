// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/chain"
	"github.com/bitmark-inc/nameregd/configuration"
	"github.com/bitmark-inc/nameregd/ledger"
	"github.com/bitmark-inc/nameregd/rpc/listeners"
	"github.com/bitmark-inc/nameregd/storage"
	"github.com/bitmark-inc/nameregd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultDatabaseDirectory = "data"
	defaultDatabaseEngine    = storage.EngineLevelDB

	defaultMyNamesFile = "mynames.msgpack"

	defaultLogDirectory = "log"
	defaultLogFile      = "nameregd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// default ledger node for each chain
var defaultLedgerURL = map[string]string{
	chain.Namecoin: "http://127.0.0.1:8336",
	chain.Testing:  "http://127.0.0.1:18336",
	chain.Local:    "http://127.0.0.1:18443",
}

// DatabaseType - registry database location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
	Engine    string `gluamapper:"engine" json:"engine"`
}

// MyNamesType - local name index
type MyNamesType struct {
	File      string   `gluamapper:"file" json:"file"`
	Addresses []string `gluamapper:"addresses" json:"addresses"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string                     `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                     `gluamapper:"pidfile" json:"pidfile"`
	Chain         string                     `gluamapper:"chain" json:"chain"`
	Database      DatabaseType               `gluamapper:"database" json:"database"`
	ClientRPC     listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Ledger        ledger.Configuration       `gluamapper:"ledger" json:"ledger"`
	MyNames       MyNamesType                `gluamapper:"my_names" json:"my_names"`
	Logging       logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Namecoin,

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      "",
			Engine:    defaultDatabaseEngine,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Ledger: ledger.Configuration{
			PollInterval: int(ledger.DefaultPollInterval.Seconds()),
			Batch:        ledger.DefaultBatch,
		},

		MyNames: MyNamesType{
			File: defaultMyNamesFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	switch options.Database.Engine {
	case storage.EngineLevelDB, storage.EnginePebble, storage.EngineBolt:
	default:
		return nil, fmt.Errorf("database engine: %q is not supported", options.Database.Engine)
	}

	// if database was not set choose a default from chain and engine
	if "" == options.Database.Name {
		options.Database.Name = options.Chain + "." + options.Database.Engine
	}

	if "" == options.Ledger.URL {
		options.Ledger.URL = defaultLedgerURL[options.Chain]
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.MyNames.File,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	directories := []string{
		options.Database.Directory,
		options.Logging.Directory,
	}
	if "" != options.MyNames.File {
		directories = append(directories, filepath.Dir(options.MyNames.File))
	}
	for _, d := range directories {
		if err := util.EnsureDirectory(d); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
