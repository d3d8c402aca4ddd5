// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nameregd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Names        *PoolHandle `prefix:"n"`
	BlockHash    *PoolHandle `prefix:"B"`
	BlockHeight  *PoolHandle `prefix:"H"`
	NameOutputs  *PoolHandle `prefix:"O"`
	BlockUndo    *PoolHandle `prefix:"U"`
	Transactions *PoolHandle `prefix:"T"`
	TestData     *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// names of the supported database engines
const (
	EngineLevelDB = "leveldb"
	EnginePebble  = "pebble"
	EngineBolt    = "bbolt"
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db     engine
	access Access
	trx    Transaction
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(engineName string, database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, err := openEngine(engineName, database, readOnly)
	if nil != err {
		return err
	}
	poolData.db = db

	version, err := getVersion(db)
	if nil != err {
		return err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			logger.Criticalf("database: %s is not initialised", database)
			return fault.ErrDatabaseNotInitialised
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return err
		}
	} else if version < currentDBVersion {
		logger.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return fault.ErrIncompatibleDatabaseVersion
	}

	poolData.access = newDA(db, newCache())
	poolData.trx = newTransaction(poolData.access)

	err = setupPools(poolData.access)
	if nil != err {
		return err
	}

	ok = true // prevent db close
	return nil
}

// bind each field of Pool to its prefix
func setupPools(access Access) error {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

func dbClose() {
	if nil != poolData.db {
		if err := poolData.db.close(); nil != err {
			logger.Criticalf("close database error: %s", err)
		}
		poolData.db = nil
	}
	poolData.access = nil
	poolData.trx = nil
	Pool = pools{}
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// return the stored version number, zero if absent
func getVersion(db engine) (int, error) {
	versionValue, err := db.get(versionKey)
	if nil != err {
		return 0, err
	}
	if nil == versionValue {
		return 0, nil
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db engine, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.write([]operation{{op: dbPut, key: versionKey, value: currentVersion}})
}

// NewDBTransaction - start the single write transaction
//
// fails if another transaction is in progress
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.ErrNotInitialised
	}

	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
