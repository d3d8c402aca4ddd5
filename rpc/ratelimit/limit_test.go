// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(1000, 10)
	for i := 0; i < 5; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "wrong limit: %d", i)
	}
}

func TestLimitN(t *testing.T) {
	limiter := rate.NewLimiter(1000, 100)

	assert.Nil(t, ratelimit.LimitN(limiter, 10, 100), "wrong valid count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 0, 100), "accepted zero count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, -1, 100), "accepted negative count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 101, 100), "accepted excess count")
}

func TestLimitNExceedsBurst(t *testing.T) {
	limiter := rate.NewLimiter(1000, 5)

	// a reservation larger than the burst can never be satisfied
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.LimitN(limiter, 10, 100), "wrong burst error")
}
