// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	assert.Equal(t, uint64(0), c.Uint64(), "not zero at start")
	assert.Equal(t, uint64(1), c.Increment())
	assert.Equal(t, uint64(2), c.Increment())
	assert.Equal(t, uint64(1), c.Decrement())
	assert.Equal(t, uint64(0), c.Decrement())
}

func TestAcquire(t *testing.T) {
	var c counter.Counter
	const limit = 5

	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(limit) {
				mu.Lock()
				acquired += 1
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, acquired, "acquired beyond limit")
	assert.Equal(t, uint64(limit), c.Uint64())

	c.Decrement()
	assert.True(t, c.Acquire(limit), "released slot not available")
}
