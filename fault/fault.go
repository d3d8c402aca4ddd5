// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type SequenceError GenericError
type StorageError GenericError
type TimingError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrCommitmentMismatch           = SequenceError("name_firstupdate does not match the committed hash")
	ErrConfigurationNotTable        = InvalidError("configuration did not return a table")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDatabaseNotInitialised       = NotFoundError("database is not initialised")
	ErrExpiredNameUpdate            = TimingError("name_update on an expired name")
	ErrFeeTooLow                    = TimingError("network fee below minimum")
	ErrFirstUpdateTooEarly          = TimingError("name_firstupdate before commitment matured")
	ErrFirstUpdateWithoutNew        = SequenceError("name_firstupdate does not spend a name_new")
	ErrIncompatibleDatabaseVersion  = InvalidError("incompatible database version")
	ErrInvalidAddress               = InvalidError("invalid address")
	ErrInvalidChain                 = InvalidError("invalid chain")
	ErrInvalidCommitmentLength      = InvalidError("invalid commitment length")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidCursor                = InvalidError("invalid cursor")
	ErrInvalidDatabaseEngine        = InvalidError("invalid database engine")
	ErrInvalidHex                   = InvalidError("invalid hex")
	ErrInvalidIPAddress             = InvalidError("invalid IP address")
	ErrInvalidKeyLength             = InvalidError("invalid key length")
	ErrInvalidLoggerChannel         = InvalidError("invalid logger channel")
	ErrInvalidNameScript            = InvalidError("name transaction has unknown script format")
	ErrInvalidNodeURL               = InvalidError("invalid ledger node url")
	ErrInvalidPosition              = InvalidError("invalid position record")
	ErrInvalidSnapshot              = InvalidError("invalid name snapshot")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrInvalidTransaction           = InvalidError("invalid transaction")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrMissingNameOutput            = InvalidError("name transaction has no name output")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrMissingPreviousOutputs       = InvalidError("previous outputs do not match inputs")
	ErrMultipleNameInputs           = SequenceError("transaction spends more than one name output")
	ErrMultipleNameOutputs          = InvalidError("transaction has more than one name output")
	ErrNameExists                   = ExistsError("name is registered and unexpired")
	ErrNameMismatch                 = SequenceError("name_update spends a different name")
	ErrNameNotFound                 = NotFoundError("name not found")
	ErrNameTooLong                  = InvalidError("name too long")
	ErrNameUpdateWithoutName        = SequenceError("name_update does not spend a registered name")
	ErrNewSpendsName                = SequenceError("name_new spends a name output")
	ErrNodeNotConnected             = ProcessError("ledger node is not connected")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrNotNameTransaction           = SequenceError("non-name transaction spends a name output")
	ErrPositionNotFound             = NotFoundError("transaction position not found")
	ErrRateLimiting                 = InvalidError("rate limiting")
	ErrReservationNotVisible        = TimingError("name_new is not confirmed or has expired")
	ErrSaltNotFound                 = NotFoundError("no salt recorded for name")
	ErrSaltTooLong                  = InvalidError("salt too long")
	ErrStorageCorrupt               = StorageError("storage record is corrupt")
	ErrStorageRead                  = StorageError("storage read failed")
	ErrStorageWrite                 = StorageError("storage write failed")
	ErrTransactionInUse             = ProcessError("transaction already in use")
	ErrTransactionNotInUse          = ProcessError("transaction not in use")
	ErrUnknownNameOperation         = InvalidError("unknown name operation")
	ErrValueTooLong                 = InvalidError("value too long")
	ErrWrongNetworkForAddress       = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e SequenceError) Error() string { return string(e) }
func (e StorageError) Error() string  { return string(e) }
func (e TimingError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrSequence(e error) bool { _, ok := errors.Cause(e).(SequenceError); return ok }
func IsErrStorage(e error) bool  { _, ok := errors.Cause(e).(StorageError); return ok }
func IsErrTiming(e error) bool   { _, ok := errors.Cause(e).(TimingError); return ok }
