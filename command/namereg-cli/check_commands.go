// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/nameregd/fault"
)

// name is required
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredName
	}
	return name, nil
}

// blank leaves the choice to the server
func checkRecordCount(count string) (int, error) {
	if "" == count {
		return 0, nil
	}

	i, err := strconv.Atoi(count)
	if nil != err || i < 0 {
		return 0, fault.ErrInvalidCount
	}
	return i, nil
}

// blank means the next block
func checkHeight(height string) (uint64, error) {
	if "" == height {
		return 0, nil
	}

	h, err := strconv.ParseUint(height, 10, 64)
	if nil != err {
		return 0, ErrInvalidHeight
	}
	return h, nil
}

// hex is required, surrounding white space is ignored
func checkTransaction(tx string) (string, error) {
	tx = strings.TrimSpace(tx)
	if "" == tx {
		return "", ErrRequiredTransaction
	}
	return tx, nil
}
