// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for package tests
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/nameregd/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - log into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// SetupTestDatabase - logger plus an empty database in the scratch directory
func SetupTestDatabase(engine string) error {
	SetupTestLogger()
	return storage.Initialise(engine, filepath.Join(dir, "names"), storage.ReadWrite)
}

// TeardownTestDatabase - close the database, then the logger
func TeardownTestDatabase() {
	storage.Finalise()
	TeardownTestLogger()
}

// Path - a file name inside the scratch directory
func Path(name string) string {
	return filepath.Join(dir, name)
}

// BlockHash - a distinct, recognisable block hash
func BlockHash(height uint64, fork byte) chainhash.Hash {
	h := chainhash.Hash{}
	h[0] = fork
	for i := 0; i < 8; i += 1 {
		h[31-i] = byte(height >> (8 * uint(i)))
	}
	return h
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
