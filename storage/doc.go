// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a single key/value database (LevelDB, Pebble or
// bbolt) split into a series of tables.  Each table is defined by a
// prefix byte that is obtained from the prefix tag in the struct
// defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. block hash   = 32 byte double SHA-256 in internal byte order
// 5. outpoint     = transaction hash (32 bytes) ++ output index (big endian uint32)
// 6. varint       = unsigned LEB128 as util.ToVarint64
// 7. position     = block hash ++ varint(height) ++ varint(transaction index)
//
// Names:
//
//	n ++ name                 - name registry
//	                            data: varint(count) ++ position ++ position ...
//
// Ledger:
//
//	B ++ height               - active chain
//	                            data: block hash ++ previous block hash
//	H ++ block hash           - block height index
//	                            data: height
//	O ++ outpoint             - unspent name outputs
//	                            data: height ++ block hash ++ script
//	T ++ block hash ++ index  - name transactions, index is big endian uint32
//	                            data: serialised transaction
//	U ++ block hash           - name outputs spent and created by a block (for disconnect)
//	                            data: varint(count) ++ (outpoint ++ varint(len) ++ O record) ...
//	                                  ++ varint(count) ++ outpoint ...
//
// Testing:
//
//	Z ++ key                  - testing data
package storage
